package host

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/quickfind/internal/engine/span"
)

// FindAll returns every non-overlapping match of pattern in document order.
// With literal the pattern is matched as plain text. With wholeWord a match
// must start and end on a word boundary, where word characters are Unicode
// letters, digits and underscore. Empty matches are skipped.
func (d *Document) FindAll(pattern string, literal, wholeWord, ignoreCase bool) ([]span.Span, error) {
	re, err := compilePattern(pattern, literal, ignoreCase)
	if err != nil {
		return nil, err
	}
	if wholeWord {
		return span.Build(d.wholeWordMatches(re)), nil
	}
	var matches [][]int
	for _, loc := range re.FindAllStringIndex(d.text, -1) {
		if loc[0] == loc[1] {
			continue
		}
		matches = append(matches, loc)
	}
	return span.Build(matches), nil
}

// wholeWordMatches scans for re one match at a time. A match rejected for
// its boundaries resumes the scan one rune after its start, so a bounded
// match overlapping it is still found.
func (d *Document) wholeWordMatches(re *regexp.Regexp) [][]int {
	var matches [][]int
	for pos := 0; pos < len(d.text); {
		loc := re.FindStringIndex(d.text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if start < end && d.wordBoundary(start) && d.wordBoundary(end) {
			matches = append(matches, []int{start, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(d.text[start:])
		pos = start + max(size, 1)
	}
	return matches
}

// wordBoundary reports whether exactly one side of offset i is a word rune.
func (d *Document) wordBoundary(i int) bool {
	before, _ := utf8.DecodeLastRuneInString(d.text[:i])
	after, _ := utf8.DecodeRuneInString(d.text[i:])
	return isWordRune(before) != isWordRune(after)
}

// compilePattern builds the search regexp.
func compilePattern(pattern string, literal, ignoreCase bool) (*regexp.Regexp, error) {
	if literal {
		pattern = regexp.QuoteMeta(pattern)
	}
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}
	return re, nil
}

// ExpandToWord returns the word enclosing the point s, preferring the word
// that starts at s over the one that ends there. A non-empty span, or a
// point not touching a word, is returned unchanged.
func (d *Document) ExpandToWord(s span.Span) span.Span {
	if !s.IsEmpty() {
		return s
	}
	pos := clamp(s.Start, len(d.text))

	var before span.Span
	found := false
	offset := 0
	rest := d.text
	state := -1
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		w := span.New(offset, offset+len(word))
		offset = w.End

		if !isWord(word) {
			if w.Start > pos {
				break
			}
			continue
		}
		if w.Start <= pos && pos < w.End {
			return w
		}
		if w.End == pos {
			before, found = w, true
		}
		if w.Start > pos {
			break
		}
	}
	if found {
		return before
	}
	return s
}

// isWord reports whether a UAX #29 word segment is a word rather than
// whitespace or punctuation.
func isWord(seg string) bool {
	r, _ := utf8.DecodeRuneInString(seg)
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

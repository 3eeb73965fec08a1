package span

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	re := regexp.MustCompile(`\bcat\b`)
	text := "cat dog cat bird cat"

	spans := Build(re.FindAllStringIndex(text, -1))
	require.Equal(t, []Span{{0, 3}, {8, 11}, {17, 20}}, spans)
	require.True(t, IsSorted(spans))
}

func TestBuildEmpty(t *testing.T) {
	require.Nil(t, Build(nil))
	require.Nil(t, Build([][]int{}))
	require.Nil(t, Build([][]int{{1}}))
}

func TestNewSwapsBounds(t *testing.T) {
	require.Equal(t, Span{Start: 2, End: 5}, New(5, 2))
	require.True(t, Point(4).IsEmpty())
	require.Equal(t, "[2:5)", New(2, 5).String())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Span
		want int
	}{
		{Span{0, 3}, Span{0, 3}, 0},
		{Span{0, 3}, Span{1, 2}, -1},
		{Span{1, 2}, Span{0, 3}, 1},
		{Span{0, 2}, Span{0, 3}, -1},
		{Span{0, 4}, Span{0, 3}, 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFindFirstAtOrAfter(t *testing.T) {
	spans := []Span{{0, 3}, {8, 11}, {17, 20}}

	tests := []struct {
		name   string
		target Span
		want   int
	}{
		{"exact first", Span{0, 3}, 0},
		{"exact middle", Span{8, 11}, 1},
		{"point before middle", Point(5), 1},
		{"inside first", Span{1, 2}, 1},
		{"same start shorter", Span{8, 9}, 1},
		{"past the end wraps", Point(25), 0},
		{"after last start wraps", Span{17, 21}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FindFirstAtOrAfter(spans, tt.target))
		})
	}
}

func TestFindFirstAfter(t *testing.T) {
	spans := []Span{{0, 3}, {8, 11}, {17, 20}}

	tests := []struct {
		name   string
		target Span
		want   int
	}{
		{"skips exact first", Span{0, 3}, 1},
		{"skips exact middle", Span{8, 11}, 2},
		{"exact last wraps", Span{17, 20}, 0},
		{"point", Point(4), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FindFirstAfter(spans, tt.target))
		})
	}
}

// The result is the minimal index satisfying the bound, or 0 when none does.
func TestFindMinimality(t *testing.T) {
	spans := []Span{{0, 1}, {2, 3}, {4, 5}, {6, 7}, {8, 9}}
	for off := -1; off <= 10; off++ {
		target := Point(off)

		ge := FindFirstAtOrAfter(spans, target)
		gt := FindFirstAfter(spans, target)

		for name, got := range map[string]int{"ge": ge, "gt": gt} {
			ok := func(s Span) bool {
				if name == "ge" {
					return s.Compare(target) >= 0
				}
				return s.Compare(target) > 0
			}
			first := -1
			for i, s := range spans {
				if ok(s) {
					first = i
					break
				}
			}
			if first < 0 {
				require.Equal(t, 0, got, "%s for %v", name, target)
				continue
			}
			require.Equal(t, first, got, "%s for %v", name, target)
		}
	}
}

func TestFindOnEmpty(t *testing.T) {
	require.Equal(t, 0, FindFirstAtOrAfter(nil, Point(3)))
	require.Equal(t, 0, FindFirstAfter(nil, Point(3)))
}

func TestClone(t *testing.T) {
	orig := []Span{{0, 1}, {2, 3}}
	c := Clone(orig)
	c[0] = Span{5, 6}
	require.Equal(t, Span{0, 1}, orig[0])
	require.Nil(t, Clone(nil))
}

func TestIsSorted(t *testing.T) {
	require.True(t, IsSorted(nil))
	require.False(t, IsSorted([]Span{{2, 3}, {0, 1}}))
	require.False(t, IsSorted([]Span{{0, 3}, {2, 4}}))
}

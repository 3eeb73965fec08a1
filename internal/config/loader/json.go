package loader

import (
	"bytes"
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var (
	errInvalidJSON   = errors.New("invalid JSON")
	errNotJSONObject = errors.New("top level value is not an object")
)

// JSONCodec reads and writes JSON settings files, including .sublime-settings.
//
// Saving edits only the given keys in place, so unrelated keys keep their
// order and formatting.
type JSONCodec struct{}

// Name returns the format name.
func (JSONCodec) Name() string { return "json" }

// Decode parses a JSON object into a map.
func (JSONCodec) Decode(data []byte) (map[string]any, error) {
	config := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return config, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, errInvalidJSON
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, errNotJSONObject
	}
	result.ForEach(func(key, value gjson.Result) bool {
		config[key.String()] = value.Value()
		return true
	})
	return config, nil
}

// Encode sets each key of values on the existing document.
func (JSONCodec) Encode(existing []byte, values map[string]any) ([]byte, error) {
	fresh := len(bytes.TrimSpace(existing)) == 0
	out := existing
	if fresh {
		out = []byte("{}")
	} else if !gjson.ValidBytes(out) {
		return nil, errInvalidJSON
	}

	var err error
	for _, k := range sortedKeys(values) {
		out, err = sjson.SetBytes(out, escapeKey(k), values[k])
		if err != nil {
			return nil, err
		}
	}
	if fresh {
		out = pretty.Pretty(out)
	}
	return out, nil
}

// escapeKey quotes path syntax so a settings key is always one object member.
func escapeKey(k string) string {
	var b bytes.Buffer
	for _, r := range k {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

package loader

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"
)

// TOMLCodec reads and writes TOML settings files.
type TOMLCodec struct{}

// Name returns the format name.
func (TOMLCodec) Name() string { return "toml" }

// Decode parses TOML data into a map.
func (TOMLCodec) Decode(data []byte) (map[string]any, error) {
	config := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return config, nil
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return config, nil
}

// Encode rewrites the document with values merged in.
// TOML has no comment-preserving edit API, so the document is re-marshaled.
func (c TOMLCodec) Encode(existing []byte, values map[string]any) ([]byte, error) {
	config, err := c.Decode(existing)
	if err != nil {
		return nil, err
	}
	for k, v := range values {
		config[k] = v
	}
	return toml.Marshal(config)
}

package loader

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

var errNotYAMLMapping = errors.New("top level value is not a mapping")

// YAMLCodec reads and writes YAML settings files.
type YAMLCodec struct{}

// Name returns the format name.
func (YAMLCodec) Name() string { return "yaml" }

// Decode parses a YAML mapping into a map.
func (YAMLCodec) Decode(data []byte) (map[string]any, error) {
	config := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return config, nil
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return config, nil
}

// Encode updates the existing document through its node tree so comments
// and key order survive.
func (c YAMLCodec) Encode(existing []byte, values map[string]any) ([]byte, error) {
	var doc yaml.Node
	if len(bytes.TrimSpace(existing)) > 0 {
		if err := yaml.Unmarshal(existing, &doc); err != nil {
			return nil, err
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errNotYAMLMapping
	}

	for _, k := range sortedKeys(values) {
		var value yaml.Node
		if err := value.Encode(values[k]); err != nil {
			return nil, err
		}
		if i := mappingIndex(root, k); i >= 0 {
			value.HeadComment = root.Content[i+1].HeadComment
			value.LineComment = root.Content[i+1].LineComment
			root.Content[i+1] = &value
			continue
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		root.Content = append(root.Content, key, &value)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mappingIndex(m *yaml.Node, key string) int {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return i
		}
	}
	return -1
}

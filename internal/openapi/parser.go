package openapi

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Parse decodes an OpenAPI document. JSON documents are accepted as well,
// being a subset of YAML. Key order of paths, properties and literals is kept.
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty document")
	}
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if doc.OpenAPI == "" {
		return nil, errors.New("not an OpenAPI document: missing openapi version")
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		return nil, fmt.Errorf("unsupported OpenAPI version %q", doc.OpenAPI)
	}
	return doc, nil
}

// ParseMediaType decodes a single Media Type Object.
func ParseMediaType(data []byte) (*MediaType, error) {
	mt := &MediaType{}
	if len(bytes.TrimSpace(data)) == 0 {
		return mt, nil
	}
	if err := yaml.Unmarshal(data, mt); err != nil {
		return nil, fmt.Errorf("failed to decode media type: %w", err)
	}
	return mt, nil
}

// literal converts a decoded YAML node into a JSON-like value. Mappings become
// ordered maps. Absent nodes yield nil.
func literal(n *yaml.Node) any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) > 0 {
			return literal(n.Content[0])
		}
	case yaml.AliasNode:
		return literal(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			out = append(out, literal(c))
		}
		return out
	case yaml.MappingNode:
		om := orderedmap.New[string, any](len(n.Content) / 2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			om.Set(n.Content[i].Value, literal(n.Content[i+1]))
		}
		return om
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return n.Value
		}
		return v
	}
	return nil
}

// literals converts a sequence node. Anything else yields nil.
func literals(n *yaml.Node) []any {
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out, _ := literal(n).([]any)
	return out
}

// mappingValue returns the value of key in a mapping node.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// ToCamelCase convert string to CamelCase.
func ToCamelCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	for i, word := range words {
		if word != "" {
			r, size := utf8.DecodeRuneInString(word)
			words[i] = string(unicode.ToUpper(r)) + word[size:]
		}
	}

	return strings.Join(words, "")
}

package openapi

import (
	"log/slog"
	"strings"

	"github.com/bakito/example-gen/internal/example"
	"gopkg.in/yaml.v3"
)

const (
	schemasPrefix       = "#/components/schemas/"
	requestBodiesPrefix = "#/components/requestBodies/"
	responsesPrefix     = "#/components/responses/"
	examplesPrefix      = "#/components/examples/"
)

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// converter turns raw schemas into example nodes, resolving local references
// against the components of doc.
type converter struct {
	doc       *Document
	resolving map[string]bool
}

func newConverter(doc *Document) *converter {
	if doc == nil {
		doc = &Document{}
	}
	return &converter{doc: doc, resolving: make(map[string]bool)}
}

// SchemaNode converts a schema of doc. doc may be nil when s has no references.
func SchemaNode(doc *Document, s *Schema) *example.Node {
	return newConverter(doc).schema(s)
}

// MediaWrapper converts a media type of doc. doc may be nil when mt has no references.
func MediaWrapper(doc *Document, mt *MediaType) example.MediaWrapper {
	return newConverter(doc).media(mt)
}

func (c *converter) media(mt *MediaType) example.MediaWrapper {
	if mt == nil {
		return example.MediaWrapper{}
	}
	mw := example.MediaWrapper{
		Example:  literal(&mt.Example),
		Examples: c.mediaExamples(&mt.Examples),
	}
	if mt.Schema != nil {
		mw.Schema = c.schema(mt.Schema)
	}
	return mw
}

// mediaExamples accepts a plain sequence as well as a map of named Example Objects.
func (c *converter) mediaExamples(n *yaml.Node) []any {
	switch n.Kind {
	case yaml.SequenceNode:
		return literals(n)
	case yaml.MappingNode:
		var out []any
		for i := 1; i < len(n.Content); i += 2 {
			if v := c.exampleValue(n.Content[i]); v != nil {
				out = append(out, literal(v))
			}
		}
		return out
	}
	return nil
}

func (c *converter) exampleValue(n *yaml.Node) *yaml.Node {
	ref := mappingValue(n, "$ref")
	if ref == nil {
		return mappingValue(n, "value")
	}
	name, ok := strings.CutPrefix(ref.Value, examplesPrefix)
	if !ok || c.doc.Components == nil || c.doc.Components.Examples == nil {
		slog.Warn("Unresolvable example reference", "ref", ref.Value)
		return nil
	}
	ex, ok := c.doc.Components.Examples.Get(pointerUnescaper.Replace(name))
	if !ok || ex == nil {
		slog.Warn("Unresolvable example reference", "ref", ref.Value)
		return nil
	}
	if ex.Value.Kind == 0 {
		return nil
	}
	return &ex.Value
}

func (c *converter) schema(s *Schema) *example.Node {
	if s == nil {
		return &example.Node{Shape: example.Untyped{}}
	}
	if s.Ref != "" {
		return c.ref(s.Ref)
	}
	return &example.Node{
		Example:  literal(&s.Example),
		Examples: literals(&s.Examples),
		Shape:    c.shape(s),
	}
}

func (c *converter) shape(s *Schema) example.Shape {
	if s.Boolean != nil {
		return example.Untyped{}
	}
	// type: [] is still a mixed type and yields an empty sequence.
	if s.Type != nil && s.Type.Mixed {
		kinds := make([]example.Kind, 0, len(s.Type.Names))
		for _, name := range s.Type.Names {
			kinds = append(kinds, example.Kind(name))
		}
		return example.Mixed{Kinds: kinds, Fields: c.fields(s), Items: c.items(s)}
	}

	if s.Type == nil || len(s.Type.Names) == 0 {
		if f := composition(s); f != "" {
			return example.Unsupported{Feature: f}
		}
		return example.Untyped{}
	}

	k := example.Kind(s.Type.Names[0])
	switch {
	case k.Primitive():
		return example.Primitive{Kind: k}
	case k == example.KindObject:
		return example.Object{Fields: c.fields(s)}
	case k == example.KindArray:
		return example.Array{Items: c.items(s)}
	}
	return example.Unsupported{Feature: "type " + string(k)}
}

func (c *converter) fields(s *Schema) []example.Field {
	if s.Properties == nil {
		return nil
	}
	fields := make([]example.Field, 0, s.Properties.Len())
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		fields = append(fields, example.Field{Name: pair.Key, Node: c.schema(pair.Value)})
	}
	return fields
}

func (c *converter) items(s *Schema) *example.Node {
	if s.Items == nil {
		return nil
	}
	return c.schema(s.Items)
}

// ref resolves a local schema reference. A reference already being resolved
// further up the tree is cut off instead of recursing forever.
func (c *converter) ref(ref string) *example.Node {
	name, ok := strings.CutPrefix(ref, schemasPrefix)
	if !ok {
		slog.Warn("Only local schema references are supported", "ref", ref)
		return &example.Node{Shape: example.Unsupported{Feature: "external $ref"}}
	}
	name = pointerUnescaper.Replace(name)
	if c.resolving[name] {
		slog.Debug("Circular schema reference", "ref", ref)
		return &example.Node{Shape: example.Unsupported{Feature: "circular $ref"}}
	}

	var target *Schema
	if c.doc.Components != nil && c.doc.Components.Schemas != nil {
		target, _ = c.doc.Components.Schemas.Get(name)
	}
	if target == nil {
		slog.Warn("Unresolved schema reference", "ref", ref)
		return &example.Node{Shape: example.Unsupported{Feature: "unresolved $ref"}}
	}

	c.resolving[name] = true
	defer delete(c.resolving, name)
	return c.schema(target)
}

func composition(s *Schema) string {
	switch {
	case len(s.OneOf) > 0:
		return "oneOf"
	case len(s.AnyOf) > 0:
		return "anyOf"
	case len(s.AllOf) > 0:
		return "allOf"
	}
	return ""
}

package openapi

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Document is the part of an OpenAPI 3.x document needed to build examples.
type Document struct {
	OpenAPI    string                                    `yaml:"openapi"`
	Info       Info                                      `yaml:"info,omitempty"`
	Paths      *orderedmap.OrderedMap[string, *PathItem] `yaml:"paths,omitempty"`
	Components *Components                               `yaml:"components,omitempty"`
}

type Info struct {
	Title   string `yaml:"title,omitempty"`
	Version string `yaml:"version,omitempty"`
}

// PathItem holds the operations of a single path.
type PathItem struct {
	Get     *Operation `yaml:"get,omitempty"`
	Put     *Operation `yaml:"put,omitempty"`
	Post    *Operation `yaml:"post,omitempty"`
	Delete  *Operation `yaml:"delete,omitempty"`
	Options *Operation `yaml:"options,omitempty"`
	Head    *Operation `yaml:"head,omitempty"`
	Patch   *Operation `yaml:"patch,omitempty"`
	Trace   *Operation `yaml:"trace,omitempty"`
}

type Operation struct {
	OperationID string                                    `yaml:"operationId,omitempty"`
	Summary     string                                    `yaml:"summary,omitempty"`
	RequestBody *RequestBody                              `yaml:"requestBody,omitempty"`
	Responses   *orderedmap.OrderedMap[string, *Response] `yaml:"responses,omitempty"`
}

type RequestBody struct {
	Ref         string                                     `yaml:"$ref,omitempty"`
	Description string                                     `yaml:"description,omitempty"`
	Required    bool                                       `yaml:"required,omitempty"`
	Content     *orderedmap.OrderedMap[string, *MediaType] `yaml:"content,omitempty"`
}

type Response struct {
	Ref         string                                     `yaml:"$ref,omitempty"`
	Description string                                     `yaml:"description,omitempty"`
	Content     *orderedmap.OrderedMap[string, *MediaType] `yaml:"content,omitempty"`
}

// MediaType is the OpenAPI Media Type Object. Examples is either a sequence of
// literals or a map of named Example Objects.
type MediaType struct {
	Schema   *Schema   `yaml:"schema,omitempty"`
	Example  yaml.Node `yaml:"example,omitempty"`
	Examples yaml.Node `yaml:"examples,omitempty"`
}

// ExampleObject is a named example of components.examples.
type ExampleObject struct {
	Ref     string    `yaml:"$ref,omitempty"`
	Summary string    `yaml:"summary,omitempty"`
	Value   yaml.Node `yaml:"value,omitempty"`
}

type Components struct {
	Schemas       *orderedmap.OrderedMap[string, *Schema]        `yaml:"schemas,omitempty"`
	RequestBodies *orderedmap.OrderedMap[string, *RequestBody]   `yaml:"requestBodies,omitempty"`
	Responses     *orderedmap.OrderedMap[string, *Response]      `yaml:"responses,omitempty"`
	Examples      *orderedmap.OrderedMap[string, *ExampleObject] `yaml:"examples,omitempty"`
}

// Schema is the OpenAPI 3.1 Schema Object subset the synthesizer looks at.
type Schema struct {
	Ref         string                                  `yaml:"$ref,omitempty"`
	Type        *SchemaType                             `yaml:"type,omitempty"`
	Format      string                                  `yaml:"format,omitempty"`
	Description string                                  `yaml:"description,omitempty"`
	Properties  *orderedmap.OrderedMap[string, *Schema] `yaml:"properties,omitempty"`
	Items       *Schema                                 `yaml:"items,omitempty"`
	OneOf       []*Schema                               `yaml:"oneOf,omitempty"`
	AnyOf       []*Schema                               `yaml:"anyOf,omitempty"`
	AllOf       []*Schema                               `yaml:"allOf,omitempty"`
	Example     yaml.Node                               `yaml:"example,omitempty"`
	Examples    yaml.Node                               `yaml:"examples,omitempty"`

	// Boolean is set for the boolean schemas true and false.
	Boolean *bool `yaml:"-"`
}

type schemaAlias Schema

// UnmarshalYAML accepts boolean schemas besides schema objects.
func (s *Schema) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!bool" {
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		*s = Schema{Boolean: &b}
		return nil
	}
	return value.Decode((*schemaAlias)(s))
}

// SchemaType is the type keyword: a single name or a list of names.
type SchemaType struct {
	Names []string
	Mixed bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *SchemaType) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		t.Names = []string{value.Value}
		t.Mixed = false
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return fmt.Errorf("invalid type list: %w", err)
		}
		t.Names = names
		t.Mixed = true
		return nil
	}
	return fmt.Errorf("invalid type at line %d: expected a string or a list of strings", value.Line)
}

package example

// Value is a synthesized example: a string, number, bool, nil, []any or an
// *orderedmap.OrderedMap[string, any].
type Value = any

// Kind is a single JSON Schema type name.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindNull    Kind = "null"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
)

// Primitive reports whether the kind is a scalar kind.
func (k Kind) Primitive() bool {
	switch k {
	case KindString, KindNumber, KindInteger, KindBoolean, KindNull:
		return true
	}
	return false
}

// Placeholder returns the fixed stand-in value of a primitive kind.
func (k Kind) Placeholder() Value {
	switch k {
	case KindNumber:
		return 0.0
	case KindInteger:
		return 0
	case KindString:
		return "string"
	case KindBoolean:
		return true
	}
	return nil
}

// Node is a parsed schema: the literal examples of the schema plus its shape.
type Node struct {
	Example  Value
	Examples []Value
	Shape    Shape
}

// MediaWrapper is one content type's worth of body description.
type MediaWrapper struct {
	Example  Value
	Examples []Value
	Schema   *Node
}

// Shape is one of Untyped, Primitive, Object, Array, Mixed or Unsupported.
type Shape interface {
	shape()
}

// Untyped is a schema without a type.
type Untyped struct{}

// Primitive is a schema of a single scalar kind.
type Primitive struct {
	Kind Kind
}

// Object is a schema with type object. Fields keep their declared order.
type Object struct {
	Fields []Field
}

type Field struct {
	Name string
	Node *Node
}

// Array is a schema with type array.
type Array struct {
	Items *Node
}

// Mixed is a schema whose type lists multiple kinds.
// Fields and Items carry the node's properties and items, they are only
// consulted when mixed object and array kinds get expanded.
type Mixed struct {
	Kinds  []Kind
	Fields []Field
	Items  *Node
}

// Unsupported is a schema relying on a feature the synthesizer does not
// understand, e.g. oneOf or an unknown type name.
type Unsupported struct {
	Feature string
}

func (Untyped) shape()     {}
func (Primitive) shape()   {}
func (Object) shape()      {}
func (Array) shape()       {}
func (Mixed) shape()       {}
func (Unsupported) shape() {}

package example

import (
	"log/slog"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Options tune the synthesizer.
type Options struct {
	// ExpandMixed expands object and array kinds of a mixed type from the
	// node's properties and items instead of dropping them.
	ExpandMixed bool
}

// Synthesizer produces placeholder values from parsed schemas.
// It holds no state besides its options and is safe for concurrent use.
type Synthesizer struct {
	opts Options
}

func New(opts Options) *Synthesizer {
	return &Synthesizer{opts: opts}
}

// Synthesize returns an example for the media wrapper with the default options.
func Synthesize(media MediaWrapper) Value {
	return New(Options{}).Synthesize(media)
}

// FromSchema returns an example for the node with the default options.
func FromSchema(node *Node) Value {
	return New(Options{}).FromSchema(node)
}

// Synthesize prefers the literal examples of the media wrapper and falls back
// to the schema.
func (s *Synthesizer) Synthesize(media MediaWrapper) Value {
	if isSet(media.Example) {
		return clone(media.Example)
	}
	if len(media.Examples) > 0 {
		return clone(media.Examples[0])
	}
	if media.Schema == nil {
		return ""
	}
	return s.FromSchema(media.Schema)
}

// FromSchema walks the node recursively. A nil node yields the empty string.
func (s *Synthesizer) FromSchema(node *Node) Value {
	if node == nil {
		return ""
	}
	if isSet(node.Example) {
		return clone(node.Example)
	}
	if len(node.Examples) > 0 {
		return clone(node.Examples[0])
	}

	switch shape := node.Shape.(type) {
	case nil, Untyped:
		return ""
	case Primitive:
		return shape.Kind.Placeholder()
	case Object:
		return s.object(shape.Fields)
	case Array:
		return []Value{s.FromSchema(shape.Items)}
	case Mixed:
		return s.mixed(shape)
	case Unsupported:
		slog.Debug("Unsupported schema feature, using empty value", "feature", shape.Feature)
		return ""
	default:
		slog.Debug("Unknown schema shape, using empty value", "shape", shape)
		return ""
	}
}

func (s *Synthesizer) object(fields []Field) Value {
	om := orderedmap.New[string, Value](len(fields))
	for _, f := range fields {
		om.Set(f.Name, s.FromSchema(f.Node))
	}
	return om
}

func (s *Synthesizer) mixed(m Mixed) Value {
	out := make([]Value, 0, len(m.Kinds))
	for _, k := range m.Kinds {
		switch {
		case k.Primitive():
			out = append(out, k.Placeholder())
		case s.opts.ExpandMixed && k == KindObject:
			out = append(out, s.object(m.Fields))
		case s.opts.ExpandMixed && k == KindArray:
			out = append(out, []Value{s.FromSchema(m.Items)})
		default:
			slog.Debug("Skipping non primitive kind of mixed type", "kind", k)
		}
	}
	return out
}

// isSet follows JSON truthiness: nil, false, zero numbers and the empty
// string count as not set.
func isSet(v Value) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int8:
		return t != 0
	case int16:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint8:
		return t != 0
	case uint16:
		return t != 0
	case uint32:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	}
	return true
}

// clone deep copies literal values so callers never share state with the input.
func clone(v Value) Value {
	switch t := v.(type) {
	case []Value:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = clone(e)
		}
		return out
	case map[string]Value:
		out := make(map[string]Value, len(t))
		for k, e := range t {
			out[k] = clone(e)
		}
		return out
	case *orderedmap.OrderedMap[string, Value]:
		if t == nil {
			return t
		}
		out := orderedmap.New[string, Value](t.Len())
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, clone(pair.Value))
		}
		return out
	}
	return v
}

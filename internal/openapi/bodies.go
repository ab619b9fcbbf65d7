package openapi

import (
	"log/slog"
	"strings"

	"github.com/bakito/example-gen/internal/example"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Target tells whether a body is sent or received.
type Target string

const (
	TargetRequest  Target = "request"
	TargetResponse Target = "response"
)

// Body is one media entry of a request body or response.
type Body struct {
	OperationID string
	Method      string
	Path        string
	Target      Target
	Status      string
	MediaType   string
	Media       example.MediaWrapper
}

// Name identifies the operation of the body: its operationId or "METHOD /path".
func (b Body) Name() string {
	if b.OperationID != "" {
		return b.OperationID
	}
	return b.Method + " " + b.Path
}

// Matches reports whether the body belongs to the operation given by
// operationId or "METHOD /path".
func (b Body) Matches(operation string) bool {
	if b.OperationID != "" && b.OperationID == operation {
		return true
	}
	method, path, ok := strings.Cut(strings.TrimSpace(operation), " ")
	return ok && strings.EqualFold(method, b.Method) && strings.TrimSpace(path) == b.Path
}

type methodOperation struct {
	method string
	op     *Operation
}

func (p *PathItem) operations() []methodOperation {
	all := []methodOperation{
		{"GET", p.Get},
		{"PUT", p.Put},
		{"POST", p.Post},
		{"DELETE", p.Delete},
		{"OPTIONS", p.Options},
		{"HEAD", p.Head},
		{"PATCH", p.Patch},
		{"TRACE", p.Trace},
	}
	ops := all[:0]
	for _, mo := range all {
		if mo.op != nil {
			ops = append(ops, mo)
		}
	}
	return ops
}

// Bodies lists every request and response media entry of the document in
// document order. Per operation the request comes before the responses.
func (d *Document) Bodies() []Body {
	if d.Paths == nil {
		return nil
	}
	c := newConverter(d)
	var bodies []Body
	for pair := d.Paths.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			continue
		}
		for _, mo := range pair.Value.operations() {
			base := Body{OperationID: mo.op.OperationID, Method: mo.method, Path: pair.Key}

			if rb := c.requestBody(mo.op.RequestBody); rb != nil {
				bodies = append(bodies, c.content(base, TargetRequest, "", rb.Content)...)
			}
			if mo.op.Responses == nil {
				continue
			}
			for resp := mo.op.Responses.Oldest(); resp != nil; resp = resp.Next() {
				if r := c.response(resp.Value); r != nil {
					bodies = append(bodies, c.content(base, TargetResponse, resp.Key, r.Content)...)
				}
			}
		}
	}
	return bodies
}

func (c *converter) content(
	base Body,
	target Target,
	status string,
	content *orderedmap.OrderedMap[string, *MediaType],
) []Body {
	if content == nil {
		return nil
	}
	var bodies []Body
	for pair := content.Oldest(); pair != nil; pair = pair.Next() {
		b := base
		b.Target = target
		b.Status = status
		b.MediaType = pair.Key
		b.Media = c.media(pair.Value)
		bodies = append(bodies, b)
	}
	return bodies
}

func (c *converter) requestBody(rb *RequestBody) *RequestBody {
	if rb == nil || rb.Ref == "" {
		return rb
	}
	name, ok := strings.CutPrefix(rb.Ref, requestBodiesPrefix)
	if ok && c.doc.Components != nil && c.doc.Components.RequestBodies != nil {
		if target, found := c.doc.Components.RequestBodies.Get(pointerUnescaper.Replace(name)); found && target != nil {
			return target
		}
	}
	slog.Warn("Unresolved request body reference", "ref", rb.Ref)
	return nil
}

func (c *converter) response(r *Response) *Response {
	if r == nil || r.Ref == "" {
		return r
	}
	name, ok := strings.CutPrefix(r.Ref, responsesPrefix)
	if ok && c.doc.Components != nil && c.doc.Components.Responses != nil {
		if target, found := c.doc.Components.Responses.Get(pointerUnescaper.Replace(name)); found && target != nil {
			return target
		}
	}
	slog.Warn("Unresolved response reference", "ref", r.Ref)
	return nil
}

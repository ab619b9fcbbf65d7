package generate

import (
	"log/slog"
	"slices"

	"github.com/bakito/example-gen/internal/example"
	"github.com/bakito/example-gen/internal/openapi"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TargetResource marks the example of a custom resource.
const TargetResource openapi.Target = "resource"

// Result is the synthesized example of one body.
type Result struct {
	Operation string         `json:"operation"           yaml:"operation"`
	Method    string         `json:"method,omitempty"    yaml:"method,omitempty"`
	Path      string         `json:"path,omitempty"      yaml:"path,omitempty"`
	Target    openapi.Target `json:"target"              yaml:"target"`
	Status    string         `json:"status,omitempty"    yaml:"status,omitempty"`
	MediaType string         `json:"mediaType,omitempty" yaml:"mediaType,omitempty"`
	Example   example.Value  `json:"example"             yaml:"example"`
}

type Options struct {
	// Operations limits the result to the given operationIds or "METHOD /path" entries.
	Operations []string
	Synth      example.Options
}

// Document synthesizes an example for every body of the document.
func Document(doc *openapi.Document, opts Options) []Result {
	s := example.New(opts.Synth)
	var results []Result
	for _, b := range doc.Bodies() {
		if !selected(b, opts.Operations) {
			continue
		}
		results = append(results, Result{
			Operation: b.Name(),
			Method:    b.Method,
			Path:      b.Path,
			Target:    b.Target,
			Status:    b.Status,
			MediaType: b.MediaType,
			Example:   s.Synthesize(b.Media),
		})
	}
	slog.Debug("Synthesized examples", "title", doc.Info.Title, "count", len(results))
	return results
}

// CustomResource synthesizes a complete resource manifest of the CRD.
func CustomResource(cr *openapi.CustomResource, opts Options) Result {
	value := example.New(opts.Synth).FromSchema(cr.Schema)

	manifest := orderedmap.New[string, example.Value]()
	manifest.Set("apiVersion", cr.APIVersion())
	manifest.Set("kind", cr.Kind)
	metadata := orderedmap.New[string, example.Value]()
	metadata.Set("name", "example")
	manifest.Set("metadata", metadata)
	if om, ok := value.(*orderedmap.OrderedMap[string, example.Value]); ok {
		for pair := om.Oldest(); pair != nil; pair = pair.Next() {
			if _, reserved := manifest.Get(pair.Key); !reserved {
				manifest.Set(pair.Key, pair.Value)
			}
		}
	}

	return Result{
		Operation: cr.Kind,
		Target:    TargetResource,
		Example:   manifest,
	}
}

func selected(b openapi.Body, operations []string) bool {
	if len(operations) == 0 {
		return true
	}
	return slices.ContainsFunc(operations, b.Matches)
}

package openapi

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/bakito/example-gen/internal/example"
	"gopkg.in/yaml.v3"
	apiv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	k8syaml "k8s.io/apimachinery/pkg/util/yaml"
)

// CustomResource is the schema of one version of a CRD.
type CustomResource struct {
	Kind    string
	Group   string
	Version string
	Schema  *example.Node
}

// APIVersion returns group/version of the resource.
func (cr *CustomResource) APIVersion() string {
	return cr.Group + "/" + cr.Version
}

// ParseCRD reads a CustomResourceDefinition and converts the schema of the
// desired version. Without a desired version the storage version is used.
func ParseCRD(crdData []byte, desiredVersion string) (*CustomResource, error) {
	var crd apiv1.CustomResourceDefinition
	if err := k8syaml.Unmarshal(crdData, &crd); err != nil {
		return nil, err
	}
	if crd.Spec.Names.Kind == "" {
		return nil, errors.New("not a CustomResourceDefinition: missing spec.names.kind")
	}

	schema, version, err := extractSchemas(crd, desiredVersion)
	if err != nil {
		return nil, err
	}

	return &CustomResource{
		Kind:    crd.Spec.Names.Kind,
		Group:   crd.Spec.Group,
		Version: version,
		Schema:  crdNode(schema),
	}, nil
}

// Extract schemas from CRD.
func extractSchemas(
	crd apiv1.CustomResourceDefinition,
	desiredVersion string,
) (schema *apiv1.JSONSchemaProps, version string, err error) {
	for _, v := range crd.Spec.Versions {
		if v.Schema == nil || v.Schema.OpenAPIV3Schema == nil {
			continue
		}
		if (desiredVersion == "" && v.Storage) || desiredVersion == v.Name {
			return v.Schema.OpenAPIV3Schema, v.Name, nil
		}
	}

	return nil, "", fmt.Errorf("could not find desired version %q in CRD", desiredVersion)
}

// crdNode converts a CRD schema. Properties are sorted by name, the CRD
// decoder does not keep their order.
func crdNode(prop *apiv1.JSONSchemaProps) *example.Node {
	if prop == nil {
		return &example.Node{Shape: example.Untyped{}}
	}
	n := &example.Node{}
	if prop.Example != nil {
		n.Example = rawLiteral(prop.Example.Raw)
	}

	switch {
	case prop.XIntOrString:
		n.Shape = example.Primitive{Kind: example.KindString}
	case prop.Type == "":
		switch {
		case len(prop.OneOf) > 0:
			n.Shape = example.Unsupported{Feature: "oneOf"}
		case len(prop.AnyOf) > 0:
			n.Shape = example.Unsupported{Feature: "anyOf"}
		case len(prop.AllOf) > 0:
			n.Shape = example.Unsupported{Feature: "allOf"}
		default:
			n.Shape = example.Untyped{}
		}
	case prop.Type == string(example.KindObject):
		var fields []example.Field
		for _, name := range slices.Sorted(maps.Keys(prop.Properties)) {
			p := prop.Properties[name]
			fields = append(fields, example.Field{Name: name, Node: crdNode(&p)})
		}
		n.Shape = example.Object{Fields: fields}
	case prop.Type == string(example.KindArray):
		var items *example.Node
		if prop.Items != nil && prop.Items.Schema != nil {
			items = crdNode(prop.Items.Schema)
		}
		n.Shape = example.Array{Items: items}
	case example.Kind(prop.Type).Primitive():
		n.Shape = example.Primitive{Kind: example.Kind(prop.Type)}
	default:
		n.Shape = example.Unsupported{Feature: "type " + prop.Type}
	}
	return n
}

// rawLiteral decodes raw JSON into ordered values.
func rawLiteral(raw []byte) any {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil
	}
	return literal(&node)
}

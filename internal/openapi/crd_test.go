package openapi

import (
	"testing"

	"github.com/bakito/example-gen/internal/example"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetCRD = `
apiVersion: apiextensions.k8s.io/v1
kind: CustomResourceDefinition
metadata:
  name: widgets.testing.example-gen
spec:
  group: testing.example-gen
  names:
    kind: Widget
    listKind: WidgetList
    plural: widgets
    singular: widget
  scope: Namespaced
  versions:
    - name: v1alpha1
      served: true
      storage: false
      schema:
        openAPIV3Schema:
          type: object
          properties:
            spec:
              type: string
    - name: v1
      served: true
      storage: true
      schema:
        openAPIV3Schema:
          type: object
          properties:
            spec:
              type: object
              properties:
                size:
                  type: integer
                port:
                  x-kubernetes-int-or-string: true
                labels:
                  type: array
                  items:
                    type: string
                mode:
                  type: string
                  example: fast
                enabled:
                  type: boolean
                ratio:
                  type: number
                choice:
                  oneOf:
                    - required: [a]
                    - required: [b]
                raw:
                  x-kubernetes-preserve-unknown-fields: true
                selector:
                  type: object
                  example: {zone: b, app: a}
`

func TestParseCRD(t *testing.T) {
	cr, err := ParseCRD([]byte(widgetCRD), "")
	require.NoError(t, err)
	assert.Equal(t, "Widget", cr.Kind)
	assert.Equal(t, "v1", cr.Version)
	assert.Equal(t, "testing.example-gen/v1", cr.APIVersion())

	assert.Equal(t,
		`{"spec":{"choice":"","enabled":true,"labels":["string"],"mode":"fast","port":"string","ratio":0,`+
			`"raw":"","selector":{"app":"a","zone":"b"},"size":0}}`,
		toJSON(t, example.FromSchema(cr.Schema)),
	)
}

func TestParseCRD_Version(t *testing.T) {
	cr, err := ParseCRD([]byte(widgetCRD), "v1alpha1")
	require.NoError(t, err)
	assert.Equal(t, "v1alpha1", cr.Version)
	assert.Equal(t, `{"spec":"string"}`, toJSON(t, example.FromSchema(cr.Schema)))

	_, err = ParseCRD([]byte(widgetCRD), "v2")
	require.ErrorContains(t, err, `could not find desired version "v2" in CRD`)
}

func TestParseCRD_Invalid(t *testing.T) {
	_, err := ParseCRD([]byte("kind: ConfigMap"), "")
	require.ErrorContains(t, err, "not a CustomResourceDefinition")
}

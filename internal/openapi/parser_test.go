package openapi

import (
	"testing"
	"unicode/utf8"

	"github.com/bakito/example-gen/internal/example"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstore = `
openapi: 3.1.0
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    post:
      operationId: createPet
      requestBody:
        $ref: '#/components/requestBodies/Pet'
      responses:
        "201":
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
        default:
          $ref: '#/components/responses/Error'
    get:
      operationId: listPets
      responses:
        "200":
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
  /pets/{id}:
    delete:
      responses:
        "204":
          description: deleted
components:
  requestBodies:
    Pet:
      content:
        application/json:
          schema:
            $ref: '#/components/schemas/Pet'
        application/xml:
          examples:
            doggie:
              value:
                name: doggie
  responses:
    Error:
      content:
        application/json:
          example:
            code: 500
            message: boom
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
        id:
          type: integer
        tags:
          type: array
          items:
            type: string
        owner:
          $ref: '#/components/schemas/Owner'
    Owner:
      type: object
      properties:
        nick:
          type: [string, "null"]
        pets:
          type: array
          items:
            $ref: '#/components/schemas/Pet'
`

func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(petstore))
	require.NoError(t, err)
	assert.Equal(t, "3.1.0", doc.OpenAPI)
	assert.Equal(t, "Petstore", doc.Info.Title)
	require.NotNil(t, doc.Paths)
	assert.Equal(t, 2, doc.Paths.Len())
	assert.Equal(t, "/pets", doc.Paths.Oldest().Key)

	pet, ok := doc.Components.Schemas.Get("Pet")
	require.True(t, ok)
	var names []string
	for pair := pet.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	assert.Equal(t, []string{"name", "id", "tags", "owner"}, names)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)

	_, err = Parse([]byte("foo: bar"))
	require.ErrorContains(t, err, "missing openapi version")

	_, err = Parse([]byte("openapi: 2.0"))
	require.ErrorContains(t, err, "unsupported OpenAPI version")

	_, err = Parse([]byte("openapi: [3"))
	require.ErrorContains(t, err, "failed to decode document")

	_, err = Parse([]byte("openapi: 3.1.0\ncomponents:\n  schemas:\n    A:\n      type: {a: b}\n"))
	require.ErrorContains(t, err, "invalid type")
}

func TestParse_JSON(t *testing.T) {
	doc, err := Parse([]byte(`{
	"openapi": "3.1.0",
	"paths": {
		"/b": {"put": {"requestBody": {"content": {"application/json": {"schema": {"type": "object", "properties": {"z": {"type": "number"}, "a": {"type": ["integer", "boolean"]}}}}}}}},
		"/a": {}
	}
}`))
	require.NoError(t, err)
	bodies := doc.Bodies()
	require.Len(t, bodies, 1)
	assert.Equal(t, "PUT /b", bodies[0].Name())
	assert.Equal(t, `{"z":0,"a":[0,true]}`, toJSON(t, example.Synthesize(bodies[0].Media)))
}

func TestDocument_Bodies(t *testing.T) {
	doc, err := Parse([]byte(petstore))
	require.NoError(t, err)

	bodies := doc.Bodies()
	type key struct {
		name, target, status, media string
	}
	var keys []key
	for _, b := range bodies {
		keys = append(keys, key{b.Name(), string(b.Target), b.Status, b.MediaType})
	}
	assert.Equal(t, []key{
		{"listPets", "response", "200", "application/json"},
		{"createPet", "request", "", "application/json"},
		{"createPet", "request", "", "application/xml"},
		{"createPet", "response", "201", "application/json"},
		{"createPet", "response", "default", "application/json"},
	}, keys)

	pet := `{"name":"string","id":0,"tags":["string"],"owner":{"nick":["string",null],"pets":[""]}}`
	assert.Equal(t, "["+pet+"]", toJSON(t, example.Synthesize(bodies[0].Media)))
	assert.Equal(t, pet, toJSON(t, example.Synthesize(bodies[1].Media)))
	assert.Equal(t, `{"name":"doggie"}`, toJSON(t, example.Synthesize(bodies[2].Media)))
	assert.Equal(t, pet, toJSON(t, example.Synthesize(bodies[3].Media)))
	assert.Equal(t, `{"code":500,"message":"boom"}`, toJSON(t, example.Synthesize(bodies[4].Media)))
}

func TestBody_Matches(t *testing.T) {
	b := Body{OperationID: "createPet", Method: "POST", Path: "/pets"}
	assert.True(t, b.Matches("createPet"))
	assert.True(t, b.Matches("post /pets"))
	assert.True(t, b.Matches("POST /pets"))
	assert.False(t, b.Matches("GET /pets"))
	assert.False(t, b.Matches("listPets"))

	anonymous := Body{Method: "DELETE", Path: "/pets/{id}"}
	assert.Equal(t, "DELETE /pets/{id}", anonymous.Name())
	assert.False(t, anonymous.Matches(""))
}

func TestSchemaNode(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   example.Shape
	}{
		{name: "untyped", schema: `{}`, want: example.Untyped{}},
		{name: "boolean schema", schema: `true`, want: example.Untyped{}},
		{name: "primitive", schema: `{type: integer}`, want: example.Primitive{Kind: example.KindInteger}},
		{name: "null", schema: `{type: "null"}`, want: example.Primitive{Kind: example.KindNull}},
		{name: "unknown type", schema: `{type: date}`, want: example.Unsupported{Feature: "type date"}},
		{name: "oneOf", schema: `{oneOf: [{type: string}]}`, want: example.Unsupported{Feature: "oneOf"}},
		{name: "anyOf", schema: `{anyOf: [{type: string}]}`, want: example.Unsupported{Feature: "anyOf"}},
		{name: "allOf", schema: `{allOf: [{type: string}]}`, want: example.Unsupported{Feature: "allOf"}},
		{name: "typed composition", schema: `{type: string, oneOf: [{type: integer}]}`, want: example.Primitive{Kind: example.KindString}},
		{name: "external ref", schema: `{$ref: 'other.yaml#/Pet'}`, want: example.Unsupported{Feature: "external $ref"}},
		{name: "unresolved ref", schema: `{$ref: '#/components/schemas/Missing'}`, want: example.Unsupported{Feature: "unresolved $ref"}},
		{name: "object", schema: `{type: object}`, want: example.Object{Fields: nil}},
		{name: "array without items", schema: `{type: array}`, want: example.Array{}},
		{
			name:   "mixed",
			schema: `{type: [string, object]}`,
			want:   example.Mixed{Kinds: []example.Kind{example.KindString, example.KindObject}},
		},
		{name: "empty type list", schema: `{type: []}`, want: example.Mixed{Kinds: []example.Kind{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mt, err := ParseMediaType([]byte("schema: " + tt.schema))
			require.NoError(t, err)
			require.NotNil(t, mt.Schema)
			n := SchemaNode(nil, mt.Schema)
			assert.Equal(t, tt.want, n.Shape)
		})
	}
}

func TestSchemaNode_Synthesized(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   string
	}{
		{name: "empty type list", schema: `{type: []}`, want: `[]`},
		{name: "mixed primitives", schema: `{type: [string, integer]}`, want: `["string",0]`},
		{name: "unknown type", schema: `{type: foo}`, want: `""`},
		{name: "unknown kind in mixed", schema: `{type: [foo, boolean]}`, want: `[true]`},
		{name: "untyped", schema: `{}`, want: `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mt, err := ParseMediaType([]byte("schema: " + tt.schema))
			require.NoError(t, err)
			assert.Equal(t, tt.want, toJSON(t, example.FromSchema(SchemaNode(nil, mt.Schema))))
		})
	}
}

func TestSchemaNode_Literals(t *testing.T) {
	mt, err := ParseMediaType([]byte(`
schema:
  type: object
  examples:
    - {b: 1, a: [x, 2.5]}
    - ignored
  properties:
    id:
      type: integer
      example: 7
`))
	require.NoError(t, err)

	n := SchemaNode(nil, mt.Schema)
	require.Len(t, n.Examples, 2)
	assert.Equal(t, `{"b":1,"a":["x",2.5]}`, toJSON(t, n.Examples[0]))
	assert.Equal(t, `{"b":1,"a":["x",2.5]}`, toJSON(t, example.FromSchema(n)))

	obj, ok := n.Shape.(example.Object)
	require.True(t, ok)
	require.Len(t, obj.Fields, 1)
	assert.Equal(t, 7, obj.Fields[0].Node.Example)
}

func TestMediaWrapper(t *testing.T) {
	mt, err := ParseMediaType([]byte(`
examples:
  first:
    $ref: '#/components/examples/Named'
  second:
    value: 2
schema:
  type: string
`))
	require.NoError(t, err)

	doc, err := Parse([]byte(`
openapi: 3.1.0
components:
  examples:
    Named:
      value: {hello: world}
`))
	require.NoError(t, err)

	mw := MediaWrapper(doc, mt)
	require.Len(t, mw.Examples, 2)
	assert.Equal(t, `{"hello":"world"}`, toJSON(t, example.Synthesize(mw)))

	mw = MediaWrapper(nil, mt)
	assert.Equal(t, []any{2}, mw.Examples)

	empty, err := ParseMediaType(nil)
	require.NoError(t, err)
	assert.Equal(t, "", example.Synthesize(MediaWrapper(nil, empty)))
}

func TestSchemaNode_CircularRef(t *testing.T) {
	doc, err := Parse([]byte(`
openapi: 3.1.0
components:
  schemas:
    Node:
      type: object
      properties:
        value:
          type: integer
        next:
          $ref: '#/components/schemas/Node'
`))
	require.NoError(t, err)

	n := SchemaNode(doc, &Schema{Ref: "#/components/schemas/Node"})
	assert.Equal(t, `{"value":0,"next":""}`, toJSON(t, example.FromSchema(n)))
}

func TestToCamelCase(t *testing.T) {
	assert.Equal(t, "CreatePet", ToCamelCase("createPet"))
	assert.Equal(t, "GETPetsId", ToCamelCase("GET /pets/{id}"))
	assert.Equal(t, "ApplicationJson", ToCamelCase("application/json"))
	assert.Equal(t, "ÉditerPet", ToCamelCase("éditer pet"))
	assert.True(t, utf8.ValidString(ToCamelCase("über_ÿes")))
}

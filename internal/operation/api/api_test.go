package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDescription() *NodeDescription {
	return &NodeDescription{
		Name: "typesense",
		Resources: []ResourceInfo{
			{Name: "collection", Operations: []OperationInfo{{Name: "get"}, {Name: "create"}}},
			{Name: "document", Operations: []OperationInfo{{Name: "get"}}},
		},
		Parameters: []ParameterInfo{
			{Name: "resource", Type: "options", Default: "collection"},
			{Name: "operation", Type: "options", Default: "get", Show: &DisplayOptions{Resource: []string{"collection"}}},
			{Name: "operation", Type: "options", Default: "get", Show: &DisplayOptions{Resource: []string{"document"}}},
			{Name: "limit", Type: "number", Default: 10, Show: &DisplayOptions{Resource: []string{"document"}, Operation: []string{"get"}}},
			{Name: "limit", Type: "number", Default: 50, Show: &DisplayOptions{Resource: []string{"collection"}}},
		},
		Credentials: []CredentialDescriptor{{
			Name: "typesenseApi",
			Properties: []CredentialProperty{
				{Name: "host", Default: "localhost"},
				{Name: "port", Default: 8108},
				{Name: "apiKey", Password: true},
			},
		}},
	}
}

func TestNodeDescription_Lookup(t *testing.T) {
	d := testDescription()

	assert.Equal(t, "collection", d.DefaultResource())
	require.NotNil(t, d.Operation("document", "get"))
	assert.Nil(t, d.Operation("document", "create"))
	assert.Nil(t, d.Operation("search", "search"))

	p := d.Parameter("limit", "document", "get")
	require.NotNil(t, p)
	assert.Equal(t, 10, p.Default)

	p = d.Parameter("limit", "collection", "create")
	require.NotNil(t, p)
	assert.Equal(t, 50, p.Default)

	assert.Nil(t, d.Parameter("missing", "document", "get"))
	assert.Len(t, d.ParametersFor("document", "get"), 2)
}

func TestCredentialDescriptor_WithDefaults(t *testing.T) {
	c := testDescription().Credential("typesenseApi")
	require.NotNil(t, c)

	got := c.WithDefaults(map[string]any{"apiKey": "k", "host": ""})
	assert.Equal(t, map[string]any{"apiKey": "k", "host": "localhost", "port": 8108}, got)

	assert.Nil(t, testDescription().Credential("other"))
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8108/collections", BuildURL("http://localhost:8108", "collections"))
	assert.Equal(t, "http://localhost:8108/collections", BuildURL("http://localhost:8108/", "/collections"))
	assert.Equal(t, "https://other.example/x", BuildURL("http://localhost", "https://other.example/x"))
}

func TestEncodeBody(t *testing.T) {
	b, err := EncodeBody("GET", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = EncodeBody("DELETE", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = EncodeBody("POST", map[string]any{})
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = EncodeBody("POST", map[string]any{"name": "books"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"books"}`, string(b))

	b, err = EncodeBody("POST", []any{map[string]any{"q": "x"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"q":"x"}]`, string(b))
}

func TestDecodeBody(t *testing.T) {
	v, err := DecodeBody(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = DecodeBody([]byte(`[{"id":"1"}]`))
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": "1"}}, v)

	_, err = DecodeBody([]byte(`{`))
	assert.Error(t, err)
}

package mcpserver

import (
	"context"
	"os"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadAPISpec(t *testing.T) *SwaggerSpec {
	t.Helper()
	data, err := os.ReadFile("../api/docs/swagger.json")
	require.NoError(t, err)
	spec, err := ParseSpec(data)
	require.NoError(t, err)
	return spec
}

func noopProxy(ToolOperation) server.ToolHandlerFunc {
	return func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}
}

func toolByName(tools []server.ServerTool, name string) *mcp.Tool {
	for i := range tools {
		if tools[i].Tool.Name == name {
			return &tools[i].Tool
		}
	}
	return nil
}

func TestParseSpec_Errors(t *testing.T) {
	_, err := ParseSpec([]byte("not json"))
	assert.Error(t, err)

	_, err = ParseSpec([]byte(`{"swagger":"2.0","paths":{}}`))
	assert.Error(t, err)
}

func TestBuildTools_CustomerAPI(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)

	tools, ops, err := BuildTools(loadAPISpec(t), cfg, noopProxy)
	require.NoError(t, err)

	var names []string
	for _, tool := range tools {
		names = append(names, tool.Tool.Name)
	}
	assert.Equal(t, []string{"create_customer", "delete_customer", "find_customer", "get_customer", "update_customer"}, names)

	assert.Equal(t, ToolOperation{
		Method:     "GET",
		Path:       "/api/v1/customers/{id}",
		Parameters: ops["get_customer"].Parameters,
	}, ops["get_customer"])
	assert.Equal(t, "POST", ops["create_customer"].Method)
	assert.Equal(t, "/api/v1/customers", ops["find_customer"].Path)
}

func TestBuildTools_FlattensBody(t *testing.T) {
	cfg, _ := ParseConfig(nil)
	tools, ops, err := BuildTools(loadAPISpec(t), cfg, noopProxy)
	require.NoError(t, err)

	create := toolByName(tools, "create_customer")
	require.NotNil(t, create)
	assert.ElementsMatch(t, []string{"name", "email", "annual_spend", "last_purchase_date"}, create.InputSchema.Required)
	assert.Contains(t, create.InputSchema.Properties, "annual_spend")

	update := toolByName(tools, "update_customer")
	require.NotNil(t, update)
	assert.Contains(t, update.InputSchema.Required, "id")
	assert.Contains(t, update.InputSchema.Required, "name")

	var in []string
	for _, p := range ops["update_customer"].Parameters {
		in = append(in, p.Name+":"+p.In)
	}
	assert.Equal(t, []string{"id:path", "annual_spend:body", "email:body", "last_purchase_date:body", "name:body"}, in)

	find := toolByName(tools, "find_customer")
	require.NotNil(t, find)
	assert.Empty(t, find.InputSchema.Required)
	assert.Contains(t, find.InputSchema.Properties, "name")
	assert.Contains(t, find.InputSchema.Properties, "email")
}

func TestBuildTools_Annotations(t *testing.T) {
	cfg, _ := ParseConfig(nil)
	tools, _, err := BuildTools(loadAPISpec(t), cfg, noopProxy)
	require.NoError(t, err)

	get := toolByName(tools, "get_customer")
	require.NotNil(t, get.Annotations.ReadOnlyHint)
	assert.True(t, *get.Annotations.ReadOnlyHint)

	del := toolByName(tools, "delete_customer")
	require.NotNil(t, del.Annotations.DestructiveHint)
	assert.True(t, *del.Annotations.DestructiveHint)
	require.NotNil(t, del.Annotations.IdempotentHint)
	assert.True(t, *del.Annotations.IdempotentHint)
}

func TestBuildTools_Overrides(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
overrides:
  find_customer:
    name: lookup_customer
    description: Look a customer up
    readonly: false
`))
	require.NoError(t, err)

	tools, ops, err := BuildTools(loadAPISpec(t), cfg, noopProxy)
	require.NoError(t, err)

	assert.Nil(t, toolByName(tools, "find_customer"))
	lookup := toolByName(tools, "lookup_customer")
	require.NotNil(t, lookup)
	assert.Equal(t, "Look a customer up", lookup.Description)
	assert.False(t, *lookup.Annotations.ReadOnlyHint)
	assert.Contains(t, ops, "lookup_customer")
}

func TestBuildTools_TagFilter(t *testing.T) {
	cfg, _ := ParseConfig([]byte("tags: [Orders]\n"))

	tools, ops, err := BuildTools(loadAPISpec(t), cfg, noopProxy)
	require.NoError(t, err)
	assert.Empty(t, tools)
	assert.Empty(t, ops)
}

func TestBuildTools_DuplicateName(t *testing.T) {
	cfg, _ := ParseConfig([]byte(`
overrides:
  get_customer:
    name: find_customer
`))

	_, _, err := BuildTools(loadAPISpec(t), cfg, noopProxy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate tool name")
}

func TestBuildTools_UnknownDefinition(t *testing.T) {
	spec, err := ParseSpec([]byte(`{
		"paths": {"/things": {"post": {"parameters": [
			{"name": "body", "in": "body", "schema": {"$ref": "#/definitions/Missing"}}
		]}}}
	}`))
	require.NoError(t, err)
	cfg, _ := ParseConfig(nil)

	_, _, err = BuildTools(spec, cfg, noopProxy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown definition")
}

func TestDeriveName(t *testing.T) {
	query := Operation{Parameters: []Parameter{{Name: "q", In: "query"}}}
	tests := []struct {
		method, path string
		op           Operation
		want         string
	}{
		{"GET", "/customers/{id}", Operation{}, "get_customer"},
		{"GET", "/customers", query, "find_customer"},
		{"GET", "/customers", Operation{}, "list_customers"},
		{"POST", "/customers", Operation{}, "create_customer"},
		{"PUT", "/customers/{id}", Operation{}, "update_customer"},
		{"DELETE", "/customers/{id}", Operation{}, "delete_customer"},
		{"POST", "/loyalty-tiers", Operation{}, "create_loyalty_tier"},
		{"GET", "/", Operation{}, "get"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, deriveName(tt.method, tt.path, tt.op), "%s %s", tt.method, tt.path)
	}
}

func TestSingularize(t *testing.T) {
	assert.Equal(t, "customer", singularize("customers"))
	assert.Equal(t, "category", singularize("categories"))
	assert.Equal(t, "address", singularize("addresses"))
	assert.Equal(t, "box", singularize("boxes"))
	assert.Equal(t, "status", singularize("status"))
	assert.Equal(t, "class", singularize("class"))
}

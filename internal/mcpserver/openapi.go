package mcpserver

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SwaggerSpec is the subset of a Swagger 2.0 document the tool builder reads.
type SwaggerSpec struct {
	BasePath    string                          `json:"basePath"`
	Paths       map[string]map[string]Operation `json:"paths"`
	Definitions map[string]Definition           `json:"definitions"`
}

// Operation represents a single API operation.
type Operation struct {
	Tags        []string    `json:"tags"`
	Summary     string      `json:"summary"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
}

// Parameter represents an API parameter.
type Parameter struct {
	Name        string     `json:"name"`
	In          string     `json:"in"`
	Required    bool       `json:"required"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Schema      *SchemaRef `json:"schema"`
	Enum        []any      `json:"enum"`
}

type SchemaRef struct {
	Ref string `json:"$ref"`
}

// Definition is an object schema from the definitions section.
type Definition struct {
	Required   []string            `json:"required"`
	Properties map[string]Property `json:"properties"`
}

type Property struct {
	Type        string `json:"type"`
	Format      string `json:"format"`
	Description string `json:"description"`
	Enum        []any  `json:"enum"`
}

// ToolOperation holds the data needed to proxy a tool call. Body parameters
// are flattened into one parameter per field of the body schema.
type ToolOperation struct {
	Method     string
	Path       string // URL path template with {param} placeholders
	Parameters []Parameter
}

// ParseSpec parses a Swagger 2.0 JSON spec.
func ParseSpec(data []byte) (*SwaggerSpec, error) {
	var spec SwaggerSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse swagger spec: %w", err)
	}
	if len(spec.Paths) == 0 {
		return nil, fmt.Errorf("parse swagger spec: no paths")
	}
	return &spec, nil
}

// BuildTools generates one MCP tool per exposed API operation, sorted by tool
// name, along with the operation each tool proxies to.
func BuildTools(spec *SwaggerSpec, cfg *Config, proxyFn func(op ToolOperation) server.ToolHandlerFunc) ([]server.ServerTool, map[string]ToolOperation, error) {
	var tools []server.ServerTool
	operations := make(map[string]ToolOperation)

	for path, methods := range spec.Paths {
		for method, op := range methods {
			method = strings.ToUpper(method)
			if !cfg.exposes(op.Tags) {
				continue
			}

			toolName := deriveName(method, path, op)
			override, hasOverride := cfg.Overrides[toolName]
			if hasOverride && override.Name != "" {
				toolName = override.Name
			}
			if _, dup := operations[toolName]; dup {
				return nil, nil, fmt.Errorf("duplicate tool name %q for %s %s", toolName, method, path)
			}

			desc := op.Description
			if desc == "" {
				desc = op.Summary
			}
			if hasOverride && override.Description != "" {
				desc = override.Description
			}

			params, err := flattenParams(spec, op.Parameters)
			if err != nil {
				return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
			}

			toolOpts := []mcp.ToolOption{mcp.WithDescription(desc)}
			toolOpts = append(toolOpts, buildAnnotations(method, cfg, override, hasOverride)...)
			toolOpts = append(toolOpts, buildParams(params)...)

			toolOp := ToolOperation{
				Method:     method,
				Path:       spec.BasePath + path,
				Parameters: params,
			}
			tools = append(tools, server.ServerTool{
				Tool:    mcp.NewTool(toolName, toolOpts...),
				Handler: proxyFn(toolOp),
			})
			operations[toolName] = toolOp
		}
	}

	sort.Slice(tools, func(i, j int) bool { return tools[i].Tool.Name < tools[j].Tool.Name })
	return tools, operations, nil
}

// flattenParams replaces each body parameter with the fields of its schema.
func flattenParams(spec *SwaggerSpec, params []Parameter) ([]Parameter, error) {
	var out []Parameter
	for _, p := range params {
		if p.In != "body" {
			out = append(out, p)
			continue
		}
		if p.Schema == nil || p.Schema.Ref == "" {
			return nil, fmt.Errorf("body parameter %q has no schema reference", p.Name)
		}
		name := strings.TrimPrefix(p.Schema.Ref, "#/definitions/")
		def, ok := spec.Definitions[name]
		if !ok {
			return nil, fmt.Errorf("unknown definition %q", name)
		}

		required := make(map[string]bool, len(def.Required))
		for _, r := range def.Required {
			required[r] = true
		}
		fields := make([]string, 0, len(def.Properties))
		for field := range def.Properties {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			prop := def.Properties[field]
			out = append(out, Parameter{
				Name:        field,
				In:          "body",
				Required:    required[field],
				Type:        prop.Type,
				Description: prop.Description,
				Enum:        prop.Enum,
			})
		}
	}
	return out, nil
}

// buildAnnotations creates MCP annotation options from config defaults and overrides.
func buildAnnotations(method string, cfg *Config, override ToolOverride, hasOverride bool) []mcp.ToolOption {
	var opts []mcp.ToolOption

	defaults := cfg.Defaults[method]

	readOnly := defaults.ReadOnly
	destructive := defaults.Destructive
	idempotent := defaults.Idempotent

	if hasOverride {
		if override.ReadOnly != nil {
			readOnly = override.ReadOnly
		}
		if override.Destructive != nil {
			destructive = override.Destructive
		}
		if override.Idempotent != nil {
			idempotent = override.Idempotent
		}
	}

	if readOnly != nil {
		opts = append(opts, mcp.WithReadOnlyHintAnnotation(*readOnly))
	}
	if destructive != nil {
		opts = append(opts, mcp.WithDestructiveHintAnnotation(*destructive))
	}
	if idempotent != nil {
		opts = append(opts, mcp.WithIdempotentHintAnnotation(*idempotent))
	}

	return opts
}

// buildParams converts API parameters to MCP tool parameter options.
func buildParams(params []Parameter) []mcp.ToolOption {
	var opts []mcp.ToolOption
	for _, p := range params {
		popts := paramOpts(p)
		switch p.Type {
		case "integer", "number":
			opts = append(opts, mcp.WithNumber(p.Name, popts...))
		case "boolean":
			opts = append(opts, mcp.WithBoolean(p.Name, popts...))
		default:
			opts = append(opts, mcp.WithString(p.Name, popts...))
		}
	}
	return opts
}

// paramOpts builds PropertyOption slice from a Parameter.
func paramOpts(p Parameter) []mcp.PropertyOption {
	desc := p.Description
	if desc == "" {
		desc = p.Name
	}
	opts := []mcp.PropertyOption{mcp.Description(desc)}

	if p.Required {
		opts = append(opts, mcp.Required())
	}

	if len(p.Enum) > 0 {
		var vals []string
		for _, v := range p.Enum {
			vals = append(vals, fmt.Sprintf("%v", v))
		}
		opts = append(opts, mcp.Enum(vals...))
	}

	return opts
}

// deriveName generates a tool name from the HTTP method and path.
// GET on a collection is a lookup by query ("find_"), GET on an item is
// "get_".
func deriveName(method, path string, op Operation) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")

	var resources []string
	for _, p := range parts {
		if p != "" && !strings.HasPrefix(p, "{") {
			resources = append(resources, strings.ReplaceAll(p, "-", "_"))
		}
	}
	if len(resources) == 0 {
		return strings.ToLower(method)
	}

	resource := singularize(resources[len(resources)-1])
	endsWithParam := strings.HasPrefix(parts[len(parts)-1], "{")

	switch method {
	case "GET":
		if endsWithParam {
			return "get_" + resource
		}
		for _, p := range op.Parameters {
			if p.In == "query" {
				return "find_" + resource
			}
		}
		return "list_" + resources[len(resources)-1]
	case "POST":
		return "create_" + resource
	case "PUT", "PATCH":
		return "update_" + resource
	case "DELETE":
		return "delete_" + resource
	}
	return strings.ToLower(method) + "_" + resource
}

// singularize performs a simple English singularization.
func singularize(s string) string {
	switch {
	case strings.HasSuffix(s, "ies"):
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(s, "sses"), strings.HasSuffix(s, "xes"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "us"), strings.HasSuffix(s, "ss"):
		return s
	case strings.HasSuffix(s, "s"):
		return s[:len(s)-1]
	}
	return s
}

package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// ProxyHandler creates MCP tool handlers that proxy to the REST API.
type ProxyHandler struct {
	apiURL string
	client *http.Client
	logger zerolog.Logger
}

// NewProxyHandler creates a new proxy handler targeting the given API URL.
func NewProxyHandler(apiURL string, logger zerolog.Logger) *ProxyHandler {
	return &ProxyHandler{
		apiURL: strings.TrimRight(apiURL, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Handler returns an MCP tool handler function for the given operation.
func (p *ProxyHandler) Handler(op ToolOperation) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		target := op.Path
		query := url.Values{}
		body := map[string]any{}
		for _, param := range op.Parameters {
			val, ok := args[param.Name]
			if !ok || val == nil {
				if param.Required {
					return mcp.NewToolResultError(fmt.Sprintf("missing required parameter: %s", param.Name)), nil
				}
				continue
			}
			switch param.In {
			case "path":
				target = strings.ReplaceAll(target, "{"+param.Name+"}", url.PathEscape(fmt.Sprintf("%v", val)))
			case "query":
				query.Set(param.Name, fmt.Sprintf("%v", val))
			case "body":
				body[param.Name] = val
			}
		}

		target = p.apiURL + target
		if len(query) > 0 {
			target += "?" + query.Encode()
		}

		var bodyReader io.Reader
		if len(body) > 0 {
			data, err := json.Marshal(body)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("encode body: %s", err)), nil
			}
			bodyReader = bytes.NewReader(data)
		}

		httpReq, err := http.NewRequestWithContext(ctx, op.Method, target, bodyReader)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("build request: %s", err)), nil
		}
		if bodyReader != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}

		p.logger.Debug().
			Str("method", op.Method).
			Str("url", target).
			Str("tool", req.Params.Name).
			Msg("proxying MCP tool call")

		resp, err := p.client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %s", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("read response: %s", err)), nil
		}

		if resp.StatusCode >= 400 {
			return mcp.NewToolResultError(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))), nil
		}

		if resp.StatusCode == http.StatusNoContent {
			return mcp.NewToolResultText(`{"status":"success"}`), nil
		}

		return mcp.NewToolResultText(string(respBody)), nil
	}
}

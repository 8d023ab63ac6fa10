package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// Server is the MCP server that proxies tool calls to the REST API.
type Server struct {
	router chi.Router
	logger zerolog.Logger
	cfg    *Config
	tools  []string
}

// New creates and configures a new MCP server from the given config and swagger spec.
func New(cfg *Config, specData []byte, logger zerolog.Logger) (*Server, error) {
	spec, err := ParseSpec(specData)
	if err != nil {
		return nil, err
	}

	proxy := NewProxyHandler(cfg.APIURL, logger)
	tools, _, err := BuildTools(spec, cfg, proxy.Handler)
	if err != nil {
		return nil, fmt.Errorf("build tools: %w", err)
	}

	mcpSrv := server.NewMCPServer(
		"customer-api",
		"1.0.0",
		server.WithInstructions("Customer records with loyalty tiers: create, look up by id, name or email, update and delete customers."),
	)
	mcpSrv.AddTools(tools...)

	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Tool.Name
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Tool index for humans and health checks.
	router.Get("/tools", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"endpoint": "/mcp", "tools": names})
	})

	router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv, server.WithEndpointPath("/")))
	logger.Info().Strs("tools", names).Msg("mounted MCP endpoint at /mcp")

	return &Server{
		router: router,
		logger: logger,
		cfg:    cfg,
		tools:  names,
	}, nil
}

// Tools returns the registered tool names in sorted order.
func (s *Server) Tools() []string {
	return s.tools
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// FetchSpec downloads the customer API's OpenAPI document.
func FetchSpec(ctx context.Context, apiURL, specPath string) ([]byte, error) {
	url := strings.TrimRight(apiURL, "/") + specPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch spec from %s: %w", url, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch spec from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch spec from %s: HTTP %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// WaitForSpec calls FetchSpec every interval until it succeeds or ctx ends.
// The MCP server usually starts alongside the customer API.
func WaitForSpec(ctx context.Context, logger zerolog.Logger, apiURL, specPath string, interval time.Duration) ([]byte, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		data, err := FetchSpec(ctx, apiURL, specPath)
		if err == nil {
			return data, nil
		}
		logger.Warn().Err(err).Dur("retry_in", interval).Msg("customer API spec not available yet")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("wait for customer API spec: %w", err)
		case <-ticker.C:
		}
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/edvin/customer-api/internal/config"
	"github.com/edvin/customer-api/internal/logging"
	"github.com/edvin/customer-api/internal/mcpserver"
)

func main() {
	configPath := flag.String("config", "mcp.yaml", "MCP tool configuration file")
	specFile := flag.String("spec", "", "Read the customer API OpenAPI document from this file instead of the API")
	addr := flag.String("addr", ":8090", "Listen address")
	waitFor := flag.Duration("wait", 60*time.Second, "How long to wait for the customer API to serve its OpenAPI document")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error); LOG_LEVEL overrides")
	flag.Parse()

	if env := os.Getenv("LOG_LEVEL"); env != "" {
		*logLevel = env
	}
	logger := logging.NewLogger(&config.Config{LogLevel: *logLevel, ServiceName: "customer-mcp"})

	cfg, err := mcpserver.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load MCP config")
	}
	if apiURL := os.Getenv("MCP_API_URL"); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if envAddr := os.Getenv("MCP_ADDR"); envAddr != "" {
		*addr = envAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	specData, err := loadSpec(ctx, logger, *specFile, cfg, *waitFor)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load customer API spec")
	}

	srv, err := mcpserver.New(cfg, specData, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create MCP server")
	}

	httpSrv := &http.Server{
		Addr:         *addr,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", *addr).Str("api_url", cfg.APIURL).Strs("tools", srv.Tools()).Msg("MCP server starting")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve %s: %w", *addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down MCP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}

// loadSpec reads the OpenAPI document from path, or waits up to wait for the
// customer API to serve it.
func loadSpec(ctx context.Context, logger zerolog.Logger, path string, cfg *mcpserver.Config, wait time.Duration) ([]byte, error) {
	if path != "" {
		logger.Info().Str("path", path).Msg("loading spec from file")
		return os.ReadFile(path)
	}

	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	logger.Info().Str("url", cfg.APIURL+cfg.SpecPath).Msg("fetching spec from customer API")
	return mcpserver.WaitForSpec(ctx, logger, cfg.APIURL, cfg.SpecPath, 2*time.Second)
}

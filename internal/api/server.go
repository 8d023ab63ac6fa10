package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/customer-api/internal/api/handler"
	mw "github.com/edvin/customer-api/internal/api/middleware"
	"github.com/edvin/customer-api/internal/config"
	"github.com/edvin/customer-api/internal/core"
)

//go:embed docs/swagger.json
var swaggerJSON []byte

// Store is the customer record store. Ping backs /readyz.
type Store interface {
	core.CustomerStore
	Ping(ctx context.Context) error
}

type Server struct {
	router    chi.Router
	logger    zerolog.Logger
	customers *core.CustomerService
	store     Store
	cfg       *config.Config
}

func NewServer(logger zerolog.Logger, store Store, cfg *config.Config) (*Server, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger,
		customers: core.NewCustomerService(store, loc),
		store:     store,
		cfg:       cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// API documentation
	s.router.Get("/docs/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(swaggerJSON)
	})
	s.router.Get("/docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(scalarHTML))
	})

	s.router.Route("/api/v1", func(r chi.Router) {
		customer := handler.NewCustomer(s.customers, s.cfg.StrictCreateEmailCheck)
		r.Post("/customers", customer.Create)
		r.Get("/customers", customer.Find)
		r.Get("/customers/{id}", customer.Get)
		r.Put("/customers/{id}", customer.Update)
		r.Delete("/customers/{id}", customer.Delete)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.store.Ping(ctx); err != nil {
		checks["customer_store"] = err.Error()
		healthy = false
	} else {
		checks["customer_store"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

const scalarHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Customer API</title>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
</head>
<body>
  <script id="api-reference" data-url="/docs/openapi.json"></script>
  <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`

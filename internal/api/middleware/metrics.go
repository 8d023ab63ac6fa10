package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	customerAPIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_api_http_requests_total",
			Help: "Customer API requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	customerAPIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "customer_api_http_request_duration_seconds",
			Help:    "Customer API request latency by method and route",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	customerAPIInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "customer_api_http_requests_in_flight",
		Help: "Customer API requests currently being served",
	})
)

// Metrics records request count, latency and concurrency per chi route.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customerAPIInFlight.Inc()
		defer customerAPIInFlight.Dec()

		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		route := routePattern(r)
		customerAPIRequests.WithLabelValues(r.Method, route, strconv.Itoa(ww.status)).Inc()
		customerAPIDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// routePattern returns the matched chi route pattern, or "unmatched" when no
// route matched. Patterns keep customer IDs out of metric labels.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return "unmatched"
}

// statusWriter remembers the status code written by the handler.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

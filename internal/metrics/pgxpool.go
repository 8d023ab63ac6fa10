package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// customerStoreLabels tags every pool gauge with the store it backs.
var customerStoreLabels = prometheus.Labels{"store": "customers"}

// RegisterPgxPoolMetrics registers gauges for the customer database pool on
// reg. It fails if the gauges are already registered there.
func RegisterPgxPoolMetrics(reg prometheus.Registerer, pool *pgxpool.Pool) error {
	stat := func(fn func(*pgxpool.Stat) float64) func() float64 {
		return func() float64 { return fn(pool.Stat()) }
	}

	collectors := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "customer_db_acquired_conns",
			Help:        "Connections currently checked out of the customer database pool",
			ConstLabels: customerStoreLabels,
		}, stat(func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "customer_db_idle_conns",
			Help:        "Idle connections in the customer database pool",
			ConstLabels: customerStoreLabels,
		}, stat(func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "customer_db_total_conns",
			Help:        "Open connections in the customer database pool",
			ConstLabels: customerStoreLabels,
		}, stat(func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "customer_db_max_conns",
			Help:        "Connection limit of the customer database pool",
			ConstLabels: customerStoreLabels,
		}, stat(func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) })),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name:        "customer_db_empty_acquire_total",
			Help:        "Customer store queries that had to wait for a free connection",
			ConstLabels: customerStoreLabels,
		}, stat(func(s *pgxpool.Stat) float64 { return float64(s.EmptyAcquireCount()) })),
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

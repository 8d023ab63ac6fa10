package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/edvin/customer-api/internal/model"
)

// TierAssigned counts the tiers handed out in customer views.
var TierAssigned = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "customer_tier_assigned_total",
		Help: "Number of customer views returned, by computed loyalty tier",
	},
	[]string{"tier"},
)

func init() {
	// Every tier is exported from startup, at zero until first assigned.
	for _, t := range model.Tiers {
		TierAssigned.WithLabelValues(string(t))
	}
}

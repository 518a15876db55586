package tenant

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Strategy names the path Resolve took to reach its answer.
type Strategy string

const (
	StrategySingle    Strategy = "single"
	StrategyDomain    Strategy = "domain"
	StrategySubdomain Strategy = "subdomain"
	StrategyDefault   Strategy = "default"
)

// Resolution outcomes.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics records resolution outcomes. A nil *Metrics is valid and records nothing.
type Metrics struct {
	resolutions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg when reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tenancy",
				Name:      "resolutions_total",
				Help:      "Tenant resolutions by strategy and outcome.",
			},
			[]string{"strategy", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tenancy",
				Name:      "resolution_duration_seconds",
				Help:      "Time spent resolving a hostname to a tenant.",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"strategy"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.resolutions, m.duration)
	}
	return m
}

func (m *Metrics) observe(strategy Strategy, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(string(strategy), outcome).Inc()
	m.duration.WithLabelValues(string(strategy)).Observe(time.Since(started).Seconds())
}

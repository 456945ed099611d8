// Package metrics exposes a small ambient observability surface via
// prometheus/client_golang. This is not part of the replication
// contract — the spec's Non-goals exclude building out a metrics
// subsystem as core functionality — so it is kept intentionally thin:
// health state per secondary, current log length, and the quorum
// boolean, which is exactly what an operator polling /health would
// otherwise have to scrape out of JSON by hand.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"replicated-log/internal/health"
)

// StateValue maps a health.State to the numeric value the
// replicated_log_secondary_health gauge uses.
func StateValue(s health.State) float64 {
	switch s {
	case health.Healthy:
		return 1
	case health.Suspected:
		return 2
	case health.Unhealthy:
		return 3
	default:
		return 0
	}
}

// Primary bundles the gauges exposed by a primary node.
type Primary struct {
	registry       *prometheus.Registry
	LogLength      prometheus.Gauge
	Quorum         prometheus.Gauge
	SecondaryState *prometheus.GaugeVec
}

// NewPrimary registers and returns a fresh Primary metrics set.
func NewPrimary() *Primary {
	reg := prometheus.NewRegistry()
	p := &Primary{
		registry: reg,
		LogLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "replicated_log_primary_entries",
			Help: "Number of entries currently in the primary log.",
		}),
		Quorum: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "replicated_log_quorum",
			Help: "1 if the quorum gate currently allows writes, else 0.",
		}),
		SecondaryState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "replicated_log_secondary_health",
			Help: "Secondary health classification: 0=Unknown,1=Healthy,2=Suspected,3=Unhealthy.",
		}, []string{"secondary"}),
	}
	reg.MustRegister(p.LogLength, p.Quorum, p.SecondaryState)
	return p
}

// Handler returns the HTTP handler that serves this registry's metrics.
func (p *Primary) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Secondary bundles the gauges exposed by a secondary node.
type Secondary struct {
	registry  *prometheus.Registry
	LogLength prometheus.Gauge
}

// NewSecondary registers and returns a fresh Secondary metrics set.
func NewSecondary() *Secondary {
	reg := prometheus.NewRegistry()
	s := &Secondary{
		registry: reg,
		LogLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "replicated_log_secondary_entries",
			Help: "Number of distinct entry ids currently stored on this secondary.",
		}),
	}
	reg.MustRegister(s.LogLength)
	return s
}

// Handler returns the HTTP handler that serves this registry's metrics.
func (s *Secondary) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

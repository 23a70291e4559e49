// SPDX-License-Identifier: MIT

package moyo

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Analysis kinds and outcomes used as label values.
const (
	kindCrystal  = "crystal"
	kindMagnetic = "magnetic"

	outcomeOK    = "ok"
	outcomeError = "error"
)

// Metrics holds the Prometheus collectors of the analysis entry points.
type Metrics struct {
	duration   *prometheus.HistogramVec
	results    *prometheus.CounterVec
	operations *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg:
//
//	moyo_analysis_duration_seconds{kind}
//	moyo_analysis_results_total{kind,outcome}
//	moyo_analysis_operations{kind}
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "moyo",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Wall time of one analysis.",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 4, 10),
		}, []string{"kind"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moyo",
			Subsystem: "analysis",
			Name:      "results_total",
			Help:      "Analyses by kind and outcome.",
		}, []string{"kind", "outcome"}),
		operations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "moyo",
			Subsystem: "analysis",
			Name:      "operations",
			Help:      "Symmetry operations found in the input cell.",
			Buckets:   []float64{1, 2, 4, 8, 16, 24, 48, 96, 192, 384},
		}, []string{"kind"}),
	}
	for _, c := range []prometheus.Collector{m.duration, m.results, m.operations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// observe records one analysis; a nil receiver records nothing.
func (m *Metrics) observe(kind string, start time.Time, numOperations int, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		m.results.WithLabelValues(kind, outcomeError).Inc()
		return
	}
	m.results.WithLabelValues(kind, outcomeOK).Inc()
	m.operations.WithLabelValues(kind).Observe(float64(numOperations))
}

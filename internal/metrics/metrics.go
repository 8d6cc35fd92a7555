// Package metrics exposes the prometheus collectors the service
// registers for ingest, sweep, and collaborator dispatch activity.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles every collector the service increments.
type Metrics struct {
	IngestTotal         *prometheus.CounterVec
	SweepDuration        prometheus.Histogram
	TransfersEmittedTotal prometheus.Counter
	CollaboratorFailures *prometheus.CounterVec
}

// New constructs and registers the collectors against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		IngestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orderbook",
			Name:      "ingest_total",
			Help:      "Count of bid/ask ingest calls by side and outcome.",
		}, []string{"side", "outcome"}),
		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "orderbook",
			Name:      "sweep_duration_seconds",
			Help:      "Wall-clock duration of a matching sweep.",
			Buckets:   prometheus.DefBuckets,
		}),
		TransfersEmittedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orderbook",
			Name:      "transfers_emitted_total",
			Help:      "Count of transfer records emitted by completed sweeps.",
		}),
		CollaboratorFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orderbook",
			Name:      "collaborator_dispatch_failures_total",
			Help:      "Count of failed collaborator dispatch attempts by collaborator name.",
		}, []string{"collaborator"}),
	}

	reg.MustRegister(m.IngestTotal, m.SweepDuration, m.TransfersEmittedTotal, m.CollaboratorFailures)
	return m
}

// Package metrics defines the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CooccurrenceRebuilds counts precompute runs by outcome.
	CooccurrenceRebuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "amiokay_cooccurrence_rebuilds_total",
		Help: "Co-occurrence cache rebuild runs by outcome",
	}, []string{"outcome"})

	// GenerationCalls counts text-generation calls by outcome. A fallback
	// outcome means deterministic template text was served instead.
	GenerationCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "amiokay_generation_calls_total",
		Help: "Text-generation collaborator calls by outcome",
	}, []string{"outcome"})

	// ResultsAssembled counts full result bundles produced.
	ResultsAssembled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "amiokay_results_assembled_total",
		Help: "Result bundles assembled",
	})
)

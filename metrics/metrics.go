// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package metrics holds the prometheus collectors recorded by toolenv.
// Collectors register on the default registry; exposing them is up to the host.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Probe outcomes.
const (
	OutcomeFound     = "found"
	OutcomeNoVersion = "no_version"
	OutcomeExcluded  = "excluded"
	OutcomeDuplicate = "duplicate"
)

// Version query outcomes.
const (
	QueryParsed   = "parsed"
	QueryFailed   = "failed"
	QueryTimeout  = "timeout"
	QueryNoOutput = "unparsable"
)

// Search path enhancement results.
const (
	EnhanceApplied   = "applied"
	EnhanceUnchanged = "unchanged"
)

var (
	probeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolenv_probe_total",
			Help: "Candidate locations probed during discovery, by outcome",
		},
		[]string{"tool", "kind", "outcome"},
	)

	versionQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toolenv_version_query_duration_seconds",
			Help:    "Duration of candidate version queries in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"tool", "outcome"},
	)

	pathEnhancements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolenv_path_enhancements_total",
			Help: "Search path enhancement attempts, by result",
		},
		[]string{"result"},
	)
)

// RecordProbe counts one probed candidate.
func RecordProbe(tool, kind, outcome string) {
	ProbeCounter(tool, kind, outcome).Inc()
}

// RecordVersionQuery observes the duration of one version query.
func RecordVersionQuery(tool, outcome string, elapsed time.Duration) {
	versionQueryDuration.With(prometheus.Labels{
		"tool":    tool,
		"outcome": outcome,
	}).Observe(elapsed.Seconds())
}

// RecordEnhancement counts one search path enhancement attempt.
func RecordEnhancement(applied bool) {
	result := EnhanceUnchanged
	if applied {
		result = EnhanceApplied
	}
	EnhancementCounter(result).Inc()
}

// ProbeCounter returns the probe counter for a label set.
func ProbeCounter(tool, kind, outcome string) prometheus.Counter {
	return probeTotal.With(prometheus.Labels{
		"tool":    tool,
		"kind":    kind,
		"outcome": outcome,
	})
}

// EnhancementCounter returns the enhancement counter for a result.
func EnhancementCounter(result string) prometheus.Counter {
	return pathEnhancements.WithLabelValues(result)
}

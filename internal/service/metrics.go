package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	extractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nestfinder",
		Subsystem: "extractor",
		Name:      "extractions_total",
		Help:      "Messages parsed, by outcome",
	}, []string{"outcome"})

	extractionRulesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nestfinder",
		Subsystem: "extractor",
		Name:      "rules_total",
		Help:      "Rule evaluations by rule and result (matched, defaulted, skipped)",
	}, []string{"rule", "result"})

	extractionCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nestfinder",
		Subsystem: "extractor",
		Name:      "cache_lookups_total",
		Help:      "Extraction cache lookups by result (hit, miss)",
	}, []string{"result"})

	extractionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "nestfinder",
		Subsystem: "extractor",
		Name:      "latency_seconds",
		Help:      "Extraction latency, cache lookups included",
		Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
	})
)

func recordRules(results []RuleResult) {
	for _, r := range results {
		result := "defaulted"
		switch {
		case r.Skipped:
			result = "skipped"
		case r.Matched:
			result = "matched"
		}
		extractionRulesTotal.WithLabelValues(r.Rule, result).Inc()
	}
}

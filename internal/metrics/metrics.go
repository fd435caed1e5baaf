package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_analyses_total",
		Help: "Total combo analyses by outcome",
	}, []string{"outcome"})

	combosGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "insight_combos_generated_total",
		Help: "Total candidate combinations generated across analyses",
	})

	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "insight_analysis_duration_seconds",
		Help:    "End-to-end combo analysis duration",
		Buckets: prometheus.DefBuckets,
	})
)

// RecordAnalysis records one completed analysis run.
func RecordAnalysis(outcome string, generated int, duration time.Duration) {
	analysesTotal.WithLabelValues(outcome).Inc()
	combosGenerated.Add(float64(generated))
	analysisDuration.Observe(duration.Seconds())
}

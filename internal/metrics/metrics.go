// Package metrics exposes Prometheus counters and histograms for the
// engine's category processing, grounded on the teacher pack's promauto
// wiring pattern.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CategoriesProcessed counts each category run per technician, labeled
	// by category and its terminal state (complete, skipped, error).
	CategoriesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payroll_categories_processed_total",
			Help: "Total category runs by category and terminal state.",
		},
		[]string{"category", "status"},
	)

	// CategoryDuration tracks how long a single category takes to compute
	// and write for one technician, labeled by category.
	CategoryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payroll_category_duration_seconds",
			Help:    "Duration of a single category run, by category.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"category"},
	)

	// RunDuration tracks the wall-clock time of a full batch run, labeled
	// by its overall outcome.
	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payroll_run_duration_seconds",
			Help:    "Duration of a full run (run-all or run-tech), by outcome.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"outcome"},
	)
)

// RecordCategory records one category's terminal state and duration.
func RecordCategory(category, status string, seconds float64) {
	CategoriesProcessed.WithLabelValues(category, status).Inc()
	CategoryDuration.WithLabelValues(category).Observe(seconds)
}

// RecordRun records a full run's outcome and duration.
func RecordRun(outcome string, seconds float64) {
	RunDuration.WithLabelValues(outcome).Observe(seconds)
}

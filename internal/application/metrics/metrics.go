package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the application workflow.
type Metrics struct {
	// Submission attempts by outcome
	SubmitTotal *prometheus.CounterVec

	// Full submit latency including completeness evaluation
	SubmitLatency prometheus.Histogram

	// Review transitions by action
	ReviewTotal *prometheus.CounterVec

	// Official listing latency including hydration
	ListLatency prometheus.Histogram
}

// New creates a new Metrics instance with all workflow metrics registered.
func New() *Metrics {
	return &Metrics{
		SubmitTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "udyam_application_submit_total",
			Help: "Submission attempts by outcome",
		}, []string{"outcome"}), // outcome: "submitted", "incomplete", "forbidden", "invalid_state", "error"

		SubmitLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "udyam_application_submit_duration_seconds",
			Help:    "Duration of submission handling including completeness evaluation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		ReviewTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "udyam_application_review_total",
			Help: "Review transitions by action",
		}, []string{"action"}),

		ListLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "udyam_application_list_duration_seconds",
			Help:    "Duration of official listing including summary hydration",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// RecordSubmit records a submission outcome.
func (m *Metrics) RecordSubmit(outcome string, d time.Duration) {
	if m != nil {
		m.SubmitTotal.WithLabelValues(outcome).Inc()
		m.SubmitLatency.Observe(d.Seconds())
	}
}

// RecordReview records a review transition.
func (m *Metrics) RecordReview(action string) {
	if m != nil {
		m.ReviewTotal.WithLabelValues(action).Inc()
	}
}

// ObserveList records the listing duration.
func (m *Metrics) ObserveList(d time.Duration) {
	if m != nil {
		m.ListLatency.Observe(d.Seconds())
	}
}

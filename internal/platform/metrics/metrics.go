package metrics

import (
	"time"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the record integrity engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Duplicate lookups and the number of candidates they returned, by variant
	DuplicateCandidates *prometheus.HistogramVec

	// Human confirmations by variant and action ("mark", "unmark")
	DuplicateMarks *prometheus.CounterVec

	// Single-expense evaluations by outcome ("created", "updated", "removed", "clean")
	ReceiptEvaluations *prometheus.CounterVec

	// Active alerts by severity, refreshed on scans and stats reads
	ActiveAlerts *prometheus.GaugeVec

	ScanDuration prometheus.Histogram
}

// New registers all integrity metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DuplicateCandidates: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "books_duplicate_candidates",
			Help:    "Number of duplicate candidates returned per lookup",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		}, []string{"variant"}),

		DuplicateMarks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "books_duplicate_marks_total",
			Help: "Duplicate mark and unmark actions by variant",
		}, []string{"variant", "action"}),

		ReceiptEvaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "books_receipt_evaluations_total",
			Help: "Missing-receipt evaluations by outcome",
		}, []string{"outcome"}),

		ActiveAlerts: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "books_missing_receipt_alerts_active",
			Help: "Active (non-dismissed) missing-receipt alerts by severity",
		}, []string{"severity"}),

		ScanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "books_receipt_scan_duration_seconds",
			Help:    "Duration of the daily missing-receipt scan",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// ObserveCandidates records the size of a duplicate lookup result.
func (m *Metrics) ObserveCandidates(variant domain.RecordVariant, n int) {
	if m != nil {
		m.DuplicateCandidates.WithLabelValues(string(variant)).Observe(float64(n))
	}
}

// IncrementMark records a mark or unmark action.
func (m *Metrics) IncrementMark(variant domain.RecordVariant, action string) {
	if m != nil {
		m.DuplicateMarks.WithLabelValues(string(variant), action).Inc()
	}
}

// IncrementEvaluation records the outcome of a single-expense evaluation.
func (m *Metrics) IncrementEvaluation(outcome string) {
	if m != nil {
		m.ReceiptEvaluations.WithLabelValues(outcome).Inc()
	}
}

// SetActiveAlerts publishes the current active alert counts.
func (m *Metrics) SetActiveAlerts(stats domain.AlertStats) {
	if m != nil {
		m.ActiveAlerts.WithLabelValues(string(domain.SeverityLow)).Set(float64(stats.Low))
		m.ActiveAlerts.WithLabelValues(string(domain.SeverityMedium)).Set(float64(stats.Medium))
		m.ActiveAlerts.WithLabelValues(string(domain.SeverityHigh)).Set(float64(stats.High))
	}
}

// ObserveScan records the duration of a daily scan.
func (m *Metrics) ObserveScan(d time.Duration) {
	if m != nil {
		m.ScanDuration.Observe(d.Seconds())
	}
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision module.
type Metrics struct {
	// Outcomes by kind and operation
	Outcomes *prometheus.CounterVec

	// Amounts rounded to two decimal places, by operation
	AmountSanitized *prometheus.CounterVec

	// Amounts rejected by reason
	AmountRejected *prometheus.CounterVec

	EvaluateLatency *prometheus.HistogramVec
}

// NewWith registers the decision metrics with reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bankapi_decision_outcomes_total",
			Help: "Total evaluated outcomes by kind and operation",
		}, []string{"kind", "operation"}),

		AmountSanitized: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bankapi_decision_amount_sanitized_total",
			Help: "Amounts that had to be rounded before evaluation",
		}, []string{"operation"}),

		AmountRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bankapi_decision_amount_rejected_total",
			Help: "Amounts rejected by the normalizer, by reason",
		}, []string{"operation", "reason"}),

		EvaluateLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bankapi_decision_evaluate_duration_seconds",
			Help:    "Duration of a full evaluation including collaborator calls",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
	}
}

// IncrementOutcome records an evaluated outcome.
func (m *Metrics) IncrementOutcome(kind, operation string) {
	if m != nil {
		m.Outcomes.WithLabelValues(kind, operation).Inc()
	}
}

func (m *Metrics) IncrementAmountSanitized(operation string) {
	if m != nil {
		m.AmountSanitized.WithLabelValues(operation).Inc()
	}
}

func (m *Metrics) IncrementAmountRejected(operation, reason string) {
	if m != nil {
		m.AmountRejected.WithLabelValues(operation, reason).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(operation string, d time.Duration) {
	if m != nil {
		m.EvaluateLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the KYC workflow.
type Metrics struct {
	Transitions      *prometheus.CounterVec
	Decisions        *prometheus.CounterVec
	StoreFailures    *prometheus.CounterVec
	OutboundFailures *prometheus.CounterVec
	Sessions         *prometheus.GaugeVec
}

// New creates the workflow metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_workflow_transitions_total",
			Help: "Workflow state transitions by target state",
		}, []string{"state"}),

		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_review_decisions_total",
			Help: "Reviewer decisions by outcome",
		}, []string{"decision"}), // decision: "approved", "rejected"

		StoreFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_store_write_failures_total",
			Help: "Record store write-through failures by operation",
		}, []string{"operation"}),

		OutboundFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_outbound_failures_total",
			Help: "Failed outbound transport calls by operation",
		}, []string{"operation"}),

		Sessions: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kyc_sessions",
			Help: "In-memory sessions by workflow state",
		}, []string{"state"}),
	}
}

// IncrementTransition records a move into state.
func (m *Metrics) IncrementTransition(state string) {
	if m != nil {
		m.Transitions.WithLabelValues(state).Inc()
	}
}

// IncrementDecision records a reviewer outcome.
func (m *Metrics) IncrementDecision(decision string) {
	if m != nil {
		m.Decisions.WithLabelValues(decision).Inc()
	}
}

// IncrementStoreFailure records a failed write-through.
func (m *Metrics) IncrementStoreFailure(operation string) {
	if m != nil {
		m.StoreFailures.WithLabelValues(operation).Inc()
	}
}

// IncrementOutboundFailure records a failed transport call.
func (m *Metrics) IncrementOutboundFailure(operation string) {
	if m != nil {
		m.OutboundFailures.WithLabelValues(operation).Inc()
	}
}

// SetSessions sets the session gauge for state.
func (m *Metrics) SetSessions(state string, n int) {
	if m != nil {
		m.Sessions.WithLabelValues(state).Set(float64(n))
	}
}

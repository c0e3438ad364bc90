package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for entity and feedback intake.
type Metrics struct {
	SubmissionsCreated  *prometheus.CounterVec
	Transitions         *prometheus.CounterVec
	ReferenceCollisions prometheus.Counter
	ReferenceExhausted  prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		SubmissionsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civicdesk_submissions_created_total",
			Help: "Submissions recorded in the ledger, by type",
		}, []string{"type"}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civicdesk_workflow_transitions_total",
			Help: "Staff workflow actions applied, by action",
		}, []string{"action"}),
		ReferenceCollisions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civicdesk_reference_collisions_total",
			Help: "Generated reference numbers that were already taken",
		}),
		ReferenceExhausted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civicdesk_reference_exhausted_total",
			Help: "Submissions that failed after exhausting reference attempts",
		}),
	}
}

func (m *Metrics) IncrementSubmissionsCreated(submissionType string) {
	m.SubmissionsCreated.WithLabelValues(submissionType).Inc()
}

func (m *Metrics) IncrementTransition(action string) {
	m.Transitions.WithLabelValues(action).Inc()
}

func (m *Metrics) IncrementReferenceCollisions() {
	m.ReferenceCollisions.Inc()
}

func (m *Metrics) IncrementReferenceExhausted() {
	m.ReferenceExhausted.Inc()
}

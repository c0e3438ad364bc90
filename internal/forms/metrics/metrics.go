package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the forms module.
type Metrics struct {
	FormsCreated       prometheus.Counter
	ResponsesSubmitted prometheus.Counter
	ResponsesRejected  *prometheus.CounterVec
	SubmitDuration     prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		FormsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civicdesk_forms_created_total",
			Help: "Total number of form definitions created, including duplicates",
		}),
		ResponsesSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civicdesk_form_responses_submitted_total",
			Help: "Total number of form responses stored",
		}),
		ResponsesRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civicdesk_form_responses_rejected_total",
			Help: "Form responses rejected by the validator, by error code",
		}, []string{"code"}),
		SubmitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "civicdesk_form_submit_duration_seconds",
			Help:    "Duration of response validation and storage",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementFormsCreated() {
	m.FormsCreated.Inc()
}

func (m *Metrics) IncrementResponsesSubmitted() {
	m.ResponsesSubmitted.Inc()
}

func (m *Metrics) IncrementResponsesRejected(code string) {
	m.ResponsesRejected.WithLabelValues(code).Inc()
}

// ObserveSubmit records the duration of a submission. Call with time.Now()
// taken at the start of the operation.
func (m *Metrics) ObserveSubmit(start time.Time) {
	m.SubmitDuration.Observe(time.Since(start).Seconds())
}

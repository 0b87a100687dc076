package metrics

import "github.com/prometheus/client_golang/prometheus"

// FormMetrics exposes counters/histograms for the public form endpoints.
type FormMetrics struct {
	submissionsTotal *prometheus.CounterVec
	emailSendsTotal  *prometheus.CounterVec
	submitDuration   *prometheus.HistogramVec
}

func NewFormMetrics(reg prometheus.Registerer) *FormMetrics {
	m := &FormMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jua",
			Subsystem: "forms",
			Name:      "submissions_total",
			Help:      "Total form submissions by outcome",
		}, []string{"form", "status"}),
		emailSendsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jua",
			Subsystem: "forms",
			Name:      "email_sends_total",
			Help:      "Total notification email sends",
		}, []string{"audience", "status"}),
		submitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jua",
			Subsystem: "forms",
			Name:      "submit_duration_seconds",
			Help:      "Latency of accepted form submissions, including email dispatch",
			Buckets:   prometheus.DefBuckets,
		}, []string{"form"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.emailSendsTotal, m.submitDuration)
	return m
}

func (m *FormMetrics) ObserveSubmission(form, status string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(form, status).Inc()
}

func (m *FormMetrics) ObserveEmailSend(audience, status string) {
	if m == nil {
		return
	}
	m.emailSendsTotal.WithLabelValues(audience, status).Inc()
}

func (m *FormMetrics) ObserveDuration(form string, seconds float64) {
	if m == nil {
		return
	}
	m.submitDuration.WithLabelValues(form).Observe(seconds)
}

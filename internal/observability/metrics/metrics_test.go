package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestFormMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFormMetrics(reg)
	m.ObserveSubmission("consultation", "accepted")
	m.ObserveEmailSend("staff", "sent")
	m.ObserveDuration("consultation", 0.25)
}

func TestFormMetricsNilSafe(t *testing.T) {
	var m *FormMetrics
	m.ObserveSubmission("consultation", "accepted")
	m.ObserveEmailSend("customer", "failed")
	m.ObserveDuration("talent", 0.1)
}

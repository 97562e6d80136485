package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementSubmitted()
	m.IncrementSubmitted()
	m.IncrementFailed()
	m.ObserveLogin("failure")
	m.IncrementExport("csv")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RegistrationsSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationsFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdminLoginAttempts.WithLabelValues("failure")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.AdminLoginAttempts.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Exports.WithLabelValues("csv")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementSubmitted()
		m.IncrementFailed()
		m.ObserveLogin("success")
		m.IncrementExport("xlsx")
	})
}

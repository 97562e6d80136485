package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service counters. A nil *Metrics records nothing.
type Metrics struct {
	RegistrationsSubmitted prometheus.Counter
	RegistrationsFailed    prometheus.Counter
	AdminLoginAttempts     *prometheus.CounterVec
	Exports                *prometheus.CounterVec
}

// New registers all counters with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RegistrationsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "urex_registrations_submitted_total",
			Help: "Total number of registrations stored",
		}),
		RegistrationsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "urex_registrations_failed_total",
			Help: "Total number of registrations rejected by the store",
		}),
		AdminLoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "urex_admin_login_attempts_total",
			Help: "Admin login attempts by result",
		}, []string{"result"}),
		Exports: f.NewCounterVec(prometheus.CounterOpts{
			Name: "urex_registration_exports_total",
			Help: "Registration exports by format",
		}, []string{"format"}),
	}
}

func (m *Metrics) IncrementSubmitted() {
	if m == nil {
		return
	}
	m.RegistrationsSubmitted.Inc()
}

func (m *Metrics) IncrementFailed() {
	if m == nil {
		return
	}
	m.RegistrationsFailed.Inc()
}

// ObserveLogin records a login attempt; result is "success", "failure" or "error".
func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.AdminLoginAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementExport(format string) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(format).Inc()
}

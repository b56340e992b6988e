package handlers

import (
	"signup_portal/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth operations, used as the "operation" label.
const (
	opSignUp = "signup"
	opLogin  = "login"
	opLogout = "logout"
)

const outcomeSuccess = "success"

// AuthAttempts counts auth transitions by operation and outcome
// (success or a service.FailureKind name).
// Use RegisterMetrics to register this with a Prometheus registry.
var AuthAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signup_portal_auth_attempts_total",
		Help: "Total number of signup, login and logout attempts",
	},
	[]string{"operation", "outcome"},
)

// RegisterMetrics registers handler metrics with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(AuthAttempts)
}

// ExposeMetrics serves g on /metrics. Call before InitRoutes.
func (h *Handler) ExposeMetrics(g prometheus.Gatherer) {
	h.metrics = promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func recordAuth(op string, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = service.KindOf(err).String()
	}
	AuthAttempts.WithLabelValues(op, outcome).Inc()
}

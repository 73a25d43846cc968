package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of successful account registrations",
		},
	)

	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	NoteOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "note_operations_total",
			Help: "Successful note operations by kind",
		},
		[]string{"op"},
	)
)

// Init registers the collectors. Call once at startup.
func Init() {
	prometheus.MustRegister(RegistrationsTotal, LoginAttempts, NoteOperations)
}

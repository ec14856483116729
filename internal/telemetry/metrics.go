package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_provider_attempts_total",
		Help: "Provider gateway attempts by provider and outcome.",
	}, []string{"provider", "outcome"})

	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_sessions_created_total",
		Help: "Payment sessions created.",
	})

	SessionsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_sessions_confirmed_total",
		Help: "Payment sessions confirmed by the payer.",
	})

	SessionsCanceled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_sessions_canceled_total",
		Help: "Payment sessions canceled before confirmation.",
	})
)

// Package metrics registers the Prometheus collectors for the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reconciler entry outcomes.
const (
	OutcomeCreated   = "created"
	OutcomeUpdated   = "updated"
	OutcomeUnchanged = "unchanged"
	OutcomeSkipped   = "skipped"
)

var (
	// ReconcilerEntries counts processed reconciliation entries by outcome.
	ReconcilerEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_reconciler_entries_total",
		Help: "Reconciliation entries processed, labelled by outcome.",
	}, []string{"outcome"})

	// ReconcilerRuns counts reconciliation calls.
	ReconcilerRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_reconciler_runs_total",
		Help: "Reconciliation calls handled.",
	})

	// HTTPRequestDuration observes request latency by route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// LoginAttempts counts login attempts by result.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_login_attempts_total",
		Help: "Admin login attempts by result.",
	}, []string{"result"})
)

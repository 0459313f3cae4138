// Package metrics holds Prometheus instruments used across the
// platform.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SignupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signups_total",
			Help: "Cumulative number of client records created.",
		})

	SignupConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signup_conflicts_total",
			Help: "Create-site requests rejected on a duplicate subdomain.",
		})

	SubdomainChecksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "subdomain_checks_total",
			Help: "Cumulative number of availability checks served.",
		})

	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_total",
			Help: "Availability checks refused by the rate limiter.",
		})

	DeployCallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deploy_callbacks_total",
			Help: "Deploy-workflow status callbacks received, labelled by reported status.",
		}, []string{"status"})

	OutboxDeliveriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "outbox_deliveries_total",
			Help: "Deploy notifications delivered by the outbox worker.",
		})

	OutboxDeliveryErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "outbox_delivery_errors_total",
			Help: "Deploy notification attempts that failed and will be retried.",
		})

	EmailsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Transactional emails dispatched, labelled by kind.",
		}, []string{"kind"})

	EmailErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_errors_total",
			Help: "Transactional email dispatches that reported failure, labelled by kind.",
		}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(
		SignupsTotal,
		SignupConflictsTotal,
		SubdomainChecksTotal,
		RateLimitedTotal,
		DeployCallbacksTotal,
		OutboxDeliveriesTotal,
		OutboxDeliveryErrorsTotal,
		EmailsSentTotal,
		EmailErrorsTotal,
	)
}

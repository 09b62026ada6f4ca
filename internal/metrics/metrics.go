// Package metrics holds the Prometheus instruments of the server. All
// collectors are registered with the global registry and exposed by the
// HTTP server on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pds",
			Name:      "http_requests_total",
			Help:      "Cumulative number of handled HTTP requests.",
		}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pds",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of handled HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"})

	AccountsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pds",
			Name:      "accounts_created_total",
			Help:      "Cumulative number of accounts created.",
		})

	SessionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pds",
			Name:      "sessions_created_total",
			Help:      "Cumulative number of sessions opened.",
		})

	MailsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pds",
			Name:      "mails_sent_total",
			Help:      "Cumulative number of mails by outcome (sent, failed, rate_limited).",
		}, []string{"outcome"})

	BlobBytesStoredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pds",
			Name:      "blob_bytes_stored_total",
			Help:      "Cumulative number of uploaded blob bytes.",
		})
)

// Mail outcomes.
const (
	MailSent        = "sent"
	MailFailed      = "failed"
	MailRateLimited = "rate_limited"
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AccountsCreatedTotal,
		SessionsCreatedTotal,
		MailsSentTotal,
		BlobBytesStoredTotal,
	)
}

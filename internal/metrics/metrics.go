// Package metrics holds the Prometheus instruments shared by the API server
// and the console. Collectors are registered with the global registry, so
// importing this package is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BackendOnline = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "led_backend_online",
			Help: "1 when the last backend probe succeeded, 0 when it failed.",
		})

	BackendProbesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "led_backend_probes_total",
			Help: "Backend availability probes by outcome.",
		}, []string{"status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "led_http_requests_total",
			Help: "HTTP requests served by the content API.",
		}, []string{"method", "route", "code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "led_http_request_duration_seconds",
			Help:    "Latency of content API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})

	LeadsCapturedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "led_leads_captured_total",
			Help: "Leads accepted by the content API, by source.",
		}, []string{"source"})

	NotificationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "led_notification_errors_total",
			Help: "Failed lead notifications, by notifier.",
		}, []string{"notifier"})

	SSESubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "led_sse_subscribers",
			Help: "Consoles currently streaming lead events.",
		})

	SSEDroppedEventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "led_sse_dropped_events_total",
			Help: "Lead events not delivered because a console lagged.",
		})
)

func init() {
	prometheus.MustRegister(
		BackendOnline,
		BackendProbesTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
		LeadsCapturedTotal,
		NotificationErrorsTotal,
		SSESubscribers,
		SSEDroppedEventsTotal,
	)
}

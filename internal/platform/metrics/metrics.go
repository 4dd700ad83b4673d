// Package metrics exposes the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	recordsSavedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "attendance_records_saved_total",
			Help: "Total number of attendance records added to the roster",
		},
	)

	validationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_validation_failures_total",
			Help: "Total number of rejected form submissions",
		},
		[]string{"field"},
	)

	exportsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "attendance_exports_total",
			Help: "Total number of exported documents",
		},
	)

	padEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signature_pad_events_total",
			Help: "Total number of input events delivered to the signature pad",
		},
		[]string{"kind"},
	)
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(
		apiRequestsTotal,
		apiRequestDuration,
		recordsSavedTotal,
		validationFailuresTotal,
		exportsTotal,
		padEventsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// RecordAPIRequest is called once per HTTP request by the request logger.
func RecordAPIRequest(method, path string, status int, duration float64) {
	apiRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSaved() { recordsSavedTotal.Inc() }

// RecordValidationFailure counts a rejected submission by offending field.
func RecordValidationFailure(field string) {
	if field == "" {
		field = "unknown"
	}
	validationFailuresTotal.WithLabelValues(field).Inc()
}

func RecordExport() { exportsTotal.Inc() }

func RecordPadEvent(kind string) { padEventsTotal.WithLabelValues(kind).Inc() }

// Package observability holds the Prometheus metrics of the journal and
// the gateway decorators that record them.
package observability

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/mental-clarity/internal/domain"
)

// Submission outcome label values.
const (
	OutcomeSucceeded     = "succeeded"
	OutcomeAnalysisError = "analysis_error"
	OutcomeStoreError    = "store_error"
	OutcomeError         = "error"
)

// Collector holds all Prometheus metrics for the application.
type Collector struct {
	registry *prometheus.Registry

	Submissions    *prometheus.CounterVec
	RemoteCalls    *prometheus.CounterVec
	RemoteDuration *prometheus.HistogramVec
	HTTPRequests   *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry, so tests and
// multiple servers never collide on registration.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Finished capture sessions by outcome",
			},
			[]string{"outcome"},
		),
		RemoteCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "remote_calls_total",
				Help:      "Calls to the analysis and store gateways",
			},
			[]string{"gateway", "operation", "status"},
		),
		RemoteDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "remote_call_duration_seconds",
				Help:      "Latency of gateway calls",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 40, 60},
			},
			[]string{"gateway", "operation"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
	}

	registry.MustRegister(
		c.Submissions,
		c.RemoteCalls,
		c.RemoteDuration,
		c.HTTPRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Registry returns the Prometheus registry for this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// RecordSubmission counts one finished capture session.
func (c *Collector) RecordSubmission(err error) {
	c.Submissions.WithLabelValues(SubmissionOutcome(err)).Inc()
}

// RecordRemoteCall counts one gateway call and its latency.
func (c *Collector) RecordRemoteCall(gateway, operation string, took time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.RemoteCalls.WithLabelValues(gateway, operation, status).Inc()
	c.RemoteDuration.WithLabelValues(gateway, operation).Observe(took.Seconds())
}

// SubmissionOutcome maps a session error to its outcome label.
func SubmissionOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSucceeded
	case errors.Is(err, domain.ErrRemoteAnalysis):
		return OutcomeAnalysisError
	case errors.Is(err, domain.ErrRemoteStore):
		return OutcomeStoreError
	default:
		return OutcomeError
	}
}

// Package metrics exposes sandbox activity as Prometheus collectors. The
// Recorder consumes session events and HTTP request observations and is
// served from its own registry.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tekmux/gatelab/internal/events"
)

const namespace = "gatelab"

// Recorder owns the sandbox collectors.
type Recorder struct {
	registry *prometheus.Registry

	events       *prometheus.CounterVec
	gatesPlaced  *prometheus.CounterVec
	checks       *prometheus.CounterVec
	requests     *prometheus.CounterVec
	requestTimes *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with a fresh registry. liveSessions, when
// non-nil, is sampled on every scrape for the live session gauge.
func NewRecorder(liveSessions func() int) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sandbox",
			Name:      "events_total",
			Help:      "Sandbox events by type",
		}, []string{"type"}),
		gatesPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sandbox",
			Name:      "gates_placed_total",
			Help:      "Gates placed by kind and workspace",
		}, []string{"kind", "workspace"}),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "challenge",
			Name:      "checks_total",
			Help:      "Challenge checks by challenge and result",
		}, []string{"challenge", "result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
		requestTimes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "method"}),
	}

	r.registry.MustRegister(
		r.events,
		r.gatesPlaced,
		r.checks,
		r.requests,
		r.requestTimes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if liveSessions != nil {
		r.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sandbox",
			Name:      "live_sessions",
			Help:      "Sessions currently held in the store",
		}, func() float64 { return float64(liveSessions()) }))
	}
	return r
}

// Registry returns the registry the collectors are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// HandleEvent counts event and, for placements and checks, their details.
func (r *Recorder) HandleEvent(_ context.Context, event *events.SandboxEvent) error {
	r.events.WithLabelValues(event.Type).Inc()

	switch event.Type {
	case events.GatePlaced:
		var p events.GatePayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		r.gatesPlaced.WithLabelValues(p.Kind, p.Workspace).Inc()
	case events.ChallengeChecked:
		var p events.ChallengePayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		result := "incorrect"
		if p.Correct {
			result = "correct"
		}
		r.checks.WithLabelValues(p.ChallengeID, result).Inc()
	}
	return nil
}

// ObserveRequest records one served HTTP request.
func (r *Recorder) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	r.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	r.requestTimes.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Package metrics holds the Prometheus collectors of the pricing service.
// Collectors are registered against an explicit registerer so that no
// process-wide state leaks into callers that do not want it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder groups the domain and HTTP collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	recalculations      *prometheus.CounterVec
	recordsWritten      *prometheus.CounterVec
	flaggedTiers        *prometheus.GaugeVec
	transitions         *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge
}

// New registers every collector with reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		recalculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_recalculations_total",
				Help: "Recalculation runs partitioned by transport mode and outcome",
			},
			[]string{"transport_mode", "outcome"},
		),
		recordsWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_records_written_total",
				Help: "Derived pricing records written, by kind",
			},
			[]string{"kind"},
		),
		flaggedTiers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pricing_flagged_tiers",
				Help: "SKUs flagged by the last recalculation of each transport mode",
			},
			[]string{"transport_mode"},
		),
		transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authorization_transitions_total",
				Help: "Authorization request transitions by action, acting role and outcome",
			},
			[]string{"action", "role", "outcome"},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		httpInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_inflight_requests",
				Help: "Number of HTTP requests currently being served",
			},
		),
	}
}

// Recalculation records one run and, on success, how many records were written.
func (r *Recorder) Recalculation(mode string, err error, landed, tiers, flagged int) {
	if r == nil {
		return
	}
	if err != nil {
		r.recalculations.WithLabelValues(mode, OutcomeFailure).Inc()
		return
	}
	r.recalculations.WithLabelValues(mode, OutcomeSuccess).Inc()
	r.recordsWritten.WithLabelValues("landed_cost").Add(float64(landed))
	r.recordsWritten.WithLabelValues("price_tier").Add(float64(tiers))
	r.flaggedTiers.WithLabelValues(mode).Set(float64(flagged))
}

// Transition records one authorization create/approve/reject attempt.
func (r *Recorder) Transition(action, role string, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	r.transitions.WithLabelValues(action, role, outcome).Inc()
}

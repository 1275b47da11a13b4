// Package metrics exposes Prometheus counters for authentication, quota
// decisions, session closes and attribution records.
//
// A Recorder owns its registry so that tests and the status CLI never touch
// the global default registry. A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crimewatch"

// Label values used by the services.
const (
	OutcomeSuccess       = "success"
	OutcomeNotFound      = "not_found"
	OutcomeInactive      = "inactive"
	OutcomeBadCredential = "bad_credential"

	ReasonLogout  = "logout"
	ReasonExpired = "expired"

	KindPrediction = "prediction"
	KindReport     = "report"
)

type Recorder struct {
	registry *prometheus.Registry

	// authAttempts counts authenticate calls by outcome.
	authAttempts *prometheus.CounterVec

	// quotaDecisions counts check-and-consume results by action and outcome.
	// outcome: allowed | quota_exceeded | forbidden
	quotaDecisions *prometheus.CounterVec

	// sessionsClosed counts closed sessions by reason.
	// reason: logout | expired
	sessionsClosed *prometheus.CounterVec

	// attributionRecords counts stored prediction and report records.
	attributionRecords *prometheus.CounterVec
}

// NewRecorder registers all collectors, plus the Go runtime and process
// collectors, on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		authAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "attempts_total",
				Help:      "Total number of authentication attempts by outcome.",
			},
			[]string{"outcome"},
		),
		quotaDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "quota",
				Name:      "decisions_total",
				Help:      "Total number of quota decisions by action and outcome.",
			},
			[]string{"action", "outcome"},
		),
		sessionsClosed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sessions",
				Name:      "closed_total",
				Help:      "Total number of closed sessions by reason.",
			},
			[]string{"reason"},
		),
		attributionRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "attribution",
				Name:      "records_total",
				Help:      "Total number of stored attribution records by kind.",
			},
			[]string{"kind"},
		),
	}
}

func (r *Recorder) AuthAttempt(outcome string) {
	if r == nil {
		return
	}
	r.authAttempts.WithLabelValues(outcome).Inc()
}

func (r *Recorder) QuotaDecision(action, outcome string) {
	if r == nil {
		return
	}
	r.quotaDecisions.WithLabelValues(action, outcome).Inc()
}

func (r *Recorder) SessionsClosed(reason string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.sessionsClosed.WithLabelValues(reason).Add(float64(n))
}

func (r *Recorder) AttributionRecord(kind string) {
	if r == nil {
		return
	}
	r.attributionRecords.WithLabelValues(kind).Inc()
}

// Registry returns the registry backing r, or nil for a nil Recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cngcare"

// Registry holds every cngcare collector plus the Go and process collectors.
var Registry = prometheus.NewRegistry()

var (
	// MaintenanceChecksTotal counts maintenance checks by resulting status (DUE/NOT_DUE).
	MaintenanceChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "maintenance_checks_total",
			Help:      "Total number of maintenance checks by status.",
		},
		[]string{"status"},
	)

	// RiskAssessmentsTotal counts risk assessments by tier.
	RiskAssessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_assessments_total",
			Help:      "Total number of risk assessments by tier.",
		},
		[]string{"tier"},
	)

	// ReportsTotal counts report requests by result:
	// generated, precondition_failed, rate_limited, render_failed.
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Total number of report requests by result.",
		},
		[]string{"result"},
	)

	// SideEffectsTotal counts report side effects (log, archive, notify, history) by status.
	SideEffectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_side_effects_total",
			Help:      "Total number of report side effects by effect and status.",
		},
		[]string{"effect", "status"},
	)

	// SideEffectLatency records how long each side effect call took.
	SideEffectLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_side_effect_duration_seconds",
			Help:      "Latency of report side effects.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"effect"},
	)

	// ActiveSessions is the number of form sessions held in memory.
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of form sessions held in memory.",
		},
	)

	// HTTPRequestsTotal counts requests by method, route template and status code.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route, and status.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration is the request latency by method and route template.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2.5, 10),
		},
		[]string{"method", "route"},
	)
)

// Side effect label values.
const (
	EffectLog     = "log"
	EffectArchive = "archive"
	EffectNotify  = "notify"
	EffectHistory = "history"

	StatusSuccess = "success"
	StatusFailed  = "failed"
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		MaintenanceChecksTotal,
		RiskAssessmentsTotal,
		ReportsTotal,
		SideEffectsTotal,
		SideEffectLatency,
		ActiveSessions,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}

// Handler serves Registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// ObserveSideEffect records the outcome and latency of one side effect.
func ObserveSideEffect(effect string, seconds float64, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailed
	}
	SideEffectsTotal.WithLabelValues(effect, status).Inc()
	SideEffectLatency.WithLabelValues(effect).Observe(seconds)
}

// Package metrics provides Prometheus metrics for the attendance sync service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for sync runs.
type Metrics struct {
	registry *prometheus.Registry

	SyncRuns               *prometheus.CounterVec
	PunchesRead            prometheus.Counter
	SessionsCreated        prometheus.Counter
	SessionsSkipped        prometheus.Counter
	UnresolvedEmployeeDays prometheus.Counter
	LastRunUnix            prometheus.Gauge
}

// New builds the collectors on a dedicated registry so the /metrics
// endpoint only exposes what this service owns.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	m := &Metrics{registry: registry}

	m.SyncRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Subsystem: "sync",
		Name:      "runs_total",
		Help:      "Total number of device sync runs by outcome",
	}, []string{"status"})

	m.PunchesRead = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance",
		Subsystem: "sync",
		Name:      "punches_read_total",
		Help:      "Total raw punch records read from devices",
	})

	m.SessionsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance",
		Subsystem: "sync",
		Name:      "sessions_created_total",
		Help:      "Total attendance sessions inserted",
	})

	m.SessionsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance",
		Subsystem: "sync",
		Name:      "sessions_skipped_total",
		Help:      "Total sessions skipped because an identical record already existed",
	})

	m.UnresolvedEmployeeDays = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance",
		Subsystem: "sync",
		Name:      "unresolved_employee_days_total",
		Help:      "Total employee-days skipped because the device user ID had no directory mapping",
	})

	m.LastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: "attendance",
		Subsystem: "sync",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the most recent completed sync run",
	})

	return m
}

// Handler exposes the registry for the /metrics route.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

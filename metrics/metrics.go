// Package metrics holds the prometheus collectors of quickaudit
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quickaudit"

// Metrics groups all collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	TableToggles     *prometheus.CounterVec
	Reverts          *prometheus.CounterVec
	DiscoveredTables prometheus.Counter
	RequestDuration  *prometheus.HistogramVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TableToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_audit_toggles_total",
			Help:      "Audit configuration changes by resulting state.",
		}, []string{"state"}),
		Reverts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reverts_total",
			Help:      "Revert attempts by table and outcome.",
		}, []string{"table", "outcome"}),
		DiscoveredTables: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discovered_tables_total",
			Help:      "Schema tables added to the audit configuration.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(
		m.TableToggles,
		m.Reverts,
		m.DiscoveredTables,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware observes the latency of every request labeled by its chi route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestDuration.
			With(prometheus.Labels{"method": r.Method, "route": route, "status": strconv.Itoa(status)}).
			Observe(time.Since(start).Seconds())
	}
	return http.HandlerFunc(fn)
}

// Package metrics exposes HTTP request metrics on a private Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fund_cashflow"

// Collector owns the registry and the request instruments.
type Collector struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	importedRows    *prometheus.CounterVec
}

// NewCollector creates a Collector with Go and process collectors registered.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
	)

	c := &Collector{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		importedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Rows processed by CSV imports by format and outcome.",
		}, []string{"format", "outcome"}),
	}
	registry.MustRegister(c.requestsTotal, c.requestDuration, c.importedRows)

	return c
}

// ObserveRequest records one finished HTTP request.
// route is the matched route pattern, not the raw path, to keep cardinality bounded.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveImport records the row counts of one import batch.
func (c *Collector) ObserveImport(format string, imported, skipped int) {
	c.importedRows.WithLabelValues(format, "imported").Add(float64(imported))
	c.importedRows.WithLabelValues(format, "skipped").Add(float64(skipped))
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

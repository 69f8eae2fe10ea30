// Package metrics holds the Prometheus collectors for the admin API. All
// collectors are registered on a caller-supplied registry so tests and
// multiple App instances never share global state.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "restadmin"

// Whitelist change outcomes
const (
	WhitelistAdded     = "added"
	WhitelistUnchanged = "unchanged"
	WhitelistRemoved   = "removed"
)

// Metrics holds all collectors
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	WhitelistChanges *prometheus.CounterVec
	RedisOpsTotal    *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status_code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		WhitelistChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "whitelist",
			Name:      "changes_total",
			Help:      "Whitelist add and remove requests by outcome.",
		}, []string{"outcome"}),
		RedisOpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "operations_total",
			Help:      "Redis directory commands by command and status.",
		}, []string{"operation", "status"}),
		gatherer: reg,
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.WhitelistChanges, m.RedisOpsTotal)
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// WhitelistChanged records the outcome of an add or remove
func (m *Metrics) WhitelistChanged(outcome string) {
	if m == nil {
		return
	}
	m.WhitelistChanges.WithLabelValues(outcome).Inc()
}

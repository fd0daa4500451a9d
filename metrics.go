package devserve

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are the server's internal counters, exposed at MetricsPath.
// Each server owns its registry, so tests never collide.
type metrics struct {
	registry *prometheus.Registry
	requests prometheus.Counter
	streams  prometheus.Gauge
	reloads  prometheus.Counter
	pings    prometheus.Counter
	scans    prometheus.Counter
	changes  prometheus.Counter
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &metrics{
		registry: registry,
		requests: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "devserve",
			Name:      "requests_total",
			Help:      "Static requests served",
		}),
		streams: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "devserve",
			Name:      "open_streams",
			Help:      "Open live-reload event streams",
		}),
		reloads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "devserve",
			Name:      "reload_events_total",
			Help:      "Reload events delivered to browsers",
		}),
		pings: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "devserve",
			Name:      "ping_events_total",
			Help:      "Keep-alive pings delivered to browsers",
		}),
		scans: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "devserve",
			Name:      "watcher_scans_total",
			Help:      "Filesystem snapshot scans",
		}),
		changes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "devserve",
			Name:      "watcher_changes_total",
			Help:      "Poll cycles that detected a change",
		}),
	}
}

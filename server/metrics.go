package server

import (
	"github.com/etnz/consortium"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "consortium"

// metrics are registered on a dedicated registry, so that tests can create
// as many servers as they need.
type metrics struct {
	registry *prometheus.Registry

	clients  prometheus.Gauge
	invested prometheus.Gauge
	profit   prometheus.Gauge
	events   prometheus.Gauge

	compute  *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

func newMetrics(registry *prometheus.Registry) *metrics {
	auto := promauto.With(registry)
	return &metrics{
		registry: registry,
		clients: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "clients",
			Help:      "Number of clients in the pool at the last snapshot.",
		}),
		invested: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "invested",
			Help:      "Total invested capital at the last snapshot, in the pool currency.",
		}),
		profit: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "profit",
			Help:      "Sum of all profit events at the last snapshot, in the pool currency.",
		}),
		events: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "events",
			Help:      "Number of profit events at the last snapshot.",
		}),
		compute: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compute_duration_seconds",
			Help:      "Time to snapshot the pool and compute a report.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"report"}),
		requests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}
}

// observe records the pool gauges.
func (m *metrics) observe(s consortium.Summary) {
	m.clients.Set(float64(s.TotalClients))
	m.invested.Set(s.TotalInvested.AsFloat())
	m.profit.Set(s.TotalProfit.AsFloat())
	m.events.Set(float64(s.Events))
}

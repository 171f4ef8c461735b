package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Broadcast request outcomes
const (
	ResultAccepted     = "accepted"
	ResultUnauthorized = "unauthorized"
)

// Collector records internal API metrics using Prometheus
type Collector struct {
	broadcastRequests *prometheus.CounterVec
	healthChecks      prometheus.Counter
	requestDuration   *prometheus.HistogramVec
}

// NewCollector creates a new Prometheus metrics collector registered on reg.
// A nil reg registers on the default registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		broadcastRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broadcastd_broadcast_requests_total",
				Help: "Total number of broadcast trigger requests by result",
			},
			[]string{"result"},
		),
		healthChecks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "broadcastd_health_checks_total",
				Help: "Total number of health check requests",
			},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "broadcastd_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"route", "status"},
		),
	}
}

// RecordBroadcast increments the broadcast counter for the given result
func (c *Collector) RecordBroadcast(result string) {
	c.broadcastRequests.WithLabelValues(result).Inc()
}

// RecordHealthCheck increments the health check counter
func (c *Collector) RecordHealthCheck() {
	c.healthChecks.Inc()
}

// ObserveRequest records the duration of a served HTTP request
func (c *Collector) ObserveRequest(route string, status int, duration time.Duration) {
	c.requestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(duration.Seconds())
}

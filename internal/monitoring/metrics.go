// Package monitoring exposes Prometheus metrics for buffets, weeks and HTTP
// requests, plus a small status snapshot for the health endpoint.
package monitoring

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector handles metrics collection and reporting
type Collector struct {
	registry *prometheus.Registry

	buffets  *prometheus.CounterVec
	guests   prometheus.Histogram
	calories prometheus.Histogram
	weeks    *prometheus.CounterVec
	requests *prometheus.CounterVec

	mu        sync.RWMutex
	status    map[string]interface{}
	startTime time.Time
}

// NewCollector creates a collector registered on its own registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		buffets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buffet_computations_total",
				Help: "Buffets computed, by selection kind",
			},
			[]string{"kind"},
		),
		guests: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "buffet_guests",
				Help:    "Guest count of computed buffets",
				Buckets: []float64{5, 10, 20, 30, 50, 100, 200, 500},
			},
		),
		calories: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "buffet_total_calories",
				Help:    "Total calories of computed buffets",
				Buckets: prometheus.ExponentialBuckets(500, 2, 10),
			},
		),
		weeks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planner_weeks_total",
				Help: "Weeks served, by source",
			},
			[]string{"source"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		status:    make(map[string]interface{}),
		startTime: time.Now(),
	}

	c.registry.MustRegister(c.buffets, c.guests, c.calories, c.weeks, c.requests)
	return c
}

// ObserveBuffet records a computed buffet
func (c *Collector) ObserveBuffet(kind string, guests int, totalCalories float64) {
	c.buffets.WithLabelValues(kind).Inc()
	c.guests.Observe(float64(guests))
	c.calories.Observe(totalCalories)
	c.record("last_buffet_kind", kind)
	c.record("last_buffet_at", time.Now().Format(time.RFC3339))
}

// ObserveWeek records a served week
func (c *Collector) ObserveWeek(source string) {
	c.weeks.WithLabelValues(source).Inc()
	c.record("last_week_source", source)
}

// ObserveRequest records a handled HTTP request
func (c *Collector) ObserveRequest(method, route string, status int) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Registry returns the registry the metrics are registered on
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registered metrics
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) record(name string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status[name] = value
}

// Status returns a copy of the latest recorded values plus the uptime
func (c *Collector) Status() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := make(map[string]interface{}, len(c.status)+1)
	for k, v := range c.status {
		status[k] = v
	}
	status["uptime_seconds"] = time.Since(c.startTime).Seconds()
	return status
}

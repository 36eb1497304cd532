package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitor collects metrics for the chat service: a snapshot map served on
// the API plus prometheus collectors for the metrics endpoint. Each Monitor
// owns its registry so instances stay independent.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time

	registry      *prometheus.Registry
	turnsTotal    *prometheus.CounterVec
	turnDuration  prometheus.Histogram
	backendErrors prometheus.Counter
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
		registry:  registry,
		turnsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Chat turns processed, labeled by routing node.",
		}, []string{"node"}),
		turnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "chat_turn_duration_seconds",
			Help:    "End-to-end duration of one chat turn.",
			Buckets: prometheus.DefBuckets,
		}),
		backendErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "chat_backend_errors_total",
			Help: "Data service failures degraded into error payloads.",
		}),
	}
}

// Handler returns the prometheus scrape handler for this monitor
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordMetric records a metric value in the snapshot map
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current snapshot metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all snapshot metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

// RecordTurn records the outcome of one chat turn
func (m *Monitor) RecordTurn(node string, duration time.Duration) {
	m.turnsTotal.WithLabelValues(node).Inc()
	m.turnDuration.Observe(duration.Seconds())

	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	key := "turns_" + node
	count, _ := m.metrics[key].(int)
	m.metrics[key] = count + 1
	m.metrics["last_node"] = node
	m.metrics["last_turn_at"] = time.Now().Format(time.RFC3339)
}

// RecordBackendError counts a data service failure
func (m *Monitor) RecordBackendError() {
	m.backendErrors.Inc()
}

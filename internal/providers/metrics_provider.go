package providers

import (
	"tabsleep/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SourceSweep  = "sweep"
	SourcePanel  = "panel"
	SourceResume = "resume"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncSweeps()
	IncDiscarded(source string)
	IncDiscardFailures(source string)
	IncSkipped(reason string)
	SetMemory(capacityMB, availableMB float64)
}

// TabCounter reports the number of tabs currently tracked for activity.
type TabCounter interface {
	Count() int
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	sweeps              prometheus.Counter
	discarded           *prometheus.CounterVec
	discardFailures     *prometheus.CounterVec
	skipped             *prometheus.CounterVec
	memoryCapacity      prometheus.Gauge
	memoryAvailable     prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncSweeps() {
	m.sweeps.Inc()
}

func (m *MetricsProvider) IncDiscarded(source string) {
	m.discarded.WithLabelValues(source).Inc()
}

func (m *MetricsProvider) IncDiscardFailures(source string) {
	m.discardFailures.WithLabelValues(source).Inc()
}

func (m *MetricsProvider) IncSkipped(reason string) {
	m.skipped.WithLabelValues(reason).Inc()
}

func (m *MetricsProvider) SetMemory(capacityMB, availableMB float64) {
	m.memoryCapacity.Set(capacityMB)
	m.memoryAvailable.Set(availableMB)
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, tracker TabCounter) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tabsleep_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tabsleep_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tabsleep_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tabsleep_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tabsleep_persistence_duration_seconds",
			Help:    "Duration of store writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		sweeps: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tabsleep_sweeps_total",
			Help: "Total number of inactivity sweeps",
		}),

		discarded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tabsleep_tabs_discarded_total",
			Help: "Tabs discarded, by source",
		}, []string{"source"}),

		discardFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tabsleep_discard_failures_total",
			Help: "Failed tab actions, by source",
		}, []string{"source"}),

		skipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tabsleep_tabs_skipped_total",
			Help: "Tabs left alone by the sweeper, by reason",
		}, []string{"reason"}),

		memoryCapacity: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tabsleep_memory_capacity_megabytes",
			Help: "Total system memory",
		}),

		memoryAvailable: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tabsleep_memory_available_megabytes",
			Help: "Available system memory",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tabsleep_tracked_tabs",
		Help: "Number of tabs with a recorded activity timestamp",
	}, func() float64 {
		return float64(tracker.Count())
	})

	return m
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncSweeps()                                       {}
func (n *noopMetrics) IncDiscarded(_ string)                            {}
func (n *noopMetrics) IncDiscardFailures(_ string)                      {}
func (n *noopMetrics) IncSkipped(_ string)                              {}
func (n *noopMetrics) SetMemory(_, _ float64)                           {}

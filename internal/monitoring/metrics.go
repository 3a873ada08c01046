package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector handles metrics collection and reporting for the planner.
type Collector struct {
	registry *prometheus.Registry

	optimizeRuns     *prometheus.CounterVec
	optimizeDuration prometheus.Histogram
	subsetsEvaluated prometheus.Counter
	recommendations  prometheus.Histogram
	guestPoolSize    prometheus.Gauge
	catalogSize      prometheus.Gauge
}

// NewCollector creates a metrics collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		optimizeRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optimize_runs_total",
				Help: "Optimization runs by outcome",
			},
			[]string{"outcome"},
		),
		optimizeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "optimize_duration_seconds",
				Help:    "Wall-clock time of optimization runs",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
		),
		subsetsEvaluated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "optimize_subsets_evaluated_total",
				Help: "Guest subsets evaluated across all runs",
			},
		),
		recommendations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "optimize_recommendations",
				Help:    "Recommendations produced per run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		guestPoolSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "guest_pool_size",
				Help: "Guests currently stored",
			},
		),
		catalogSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalog_size",
				Help: "Menu items currently stored",
			},
		),
	}

	c.registry.MustRegister(
		c.optimizeRuns,
		c.optimizeDuration,
		c.subsetsEvaluated,
		c.recommendations,
		c.guestPoolSize,
		c.catalogSize,
	)
	return c
}

// Registry exposes the collector's registry for the metrics endpoint.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordOptimizeRun records one completed optimization run.
func (c *Collector) RecordOptimizeRun(duration time.Duration, subsets int64, recommendations int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.optimizeRuns.WithLabelValues(outcome).Inc()
	c.optimizeDuration.Observe(duration.Seconds())
	c.subsetsEvaluated.Add(float64(subsets))
	if err == nil {
		c.recommendations.Observe(float64(recommendations))
	}
}

// SetPoolSizes records the current stored guest and catalog counts.
func (c *Collector) SetPoolSizes(guests, items int) {
	c.guestPoolSize.Set(float64(guests))
	c.catalogSize.Set(float64(items))
}

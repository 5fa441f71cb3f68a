package simulator

import "github.com/prometheus/client_golang/prometheus"

// PrometheusCollector publishes a running simulation's counters to a
// Prometheus registry: a registry of local gauges/counters rather than
// an API client for a remote server, since there is nothing external
// to query here.
type PrometheusCollector struct {
	registry       *prometheus.Registry
	testCount      prometheus.Counter
	falseNegatives prometheus.Counter
	terminations   prometheus.Counter
	remaining      prometheus.Gauge

	lastTestCount      int
	lastFalseNegatives int
	lastTerminations   int
}

// NewPrometheusCollector registers the simulator's metric family on a
// fresh registry and returns a collector ready to be attached to a
// Simulator via WithMetrics.
func NewPrometheusCollector() *PrometheusCollector {
	registry := prometheus.NewRegistry()

	c := &PrometheusCollector{
		registry: registry,
		testCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vcube_test_count_total",
			Help: "Total number of pairwise tests executed.",
		}),
		falseNegatives: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vcube_false_negative_count_total",
			Help: "Total number of false-negative test outcomes.",
		}),
		terminations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vcube_termination_count_total",
			Help: "Total number of processes that self-terminated.",
		}),
		remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vcube_remaining_processes",
			Help: "Number of processes still up.",
		}),
	}

	registry.MustRegister(c.testCount, c.falseNegatives, c.terminations, c.remaining)
	return c
}

// Registry exposes the underlying registry, e.g. for promhttp.Handler
// wiring by a caller that wants to scrape a live run.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}

// update syncs the collector's exported metrics with the engine's
// cumulative counters. Counters only support Add, so each call adds the
// delta since the last update rather than the running total.
func (c *PrometheusCollector) update(testCount, falseNegatives, terminations, processCount int) {
	c.testCount.Add(float64(testCount - c.lastTestCount))
	c.falseNegatives.Add(float64(falseNegatives - c.lastFalseNegatives))
	c.terminations.Add(float64(terminations - c.lastTerminations))
	c.remaining.Set(float64(processCount - terminations))

	c.lastTestCount = testCount
	c.lastFalseNegatives = falseNegatives
	c.lastTerminations = terminations
}

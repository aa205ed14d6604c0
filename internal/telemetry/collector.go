// Package telemetry adapts the root package's atomic Metrics counters
// into a prometheus.Collector, so a long-running host can expose them on
// a /metrics endpoint the way a production motion server would (spec.md
// §9 ambient stack; this package has no analog in the teacher repo,
// which exposes its Metrics struct directly with no exporter).
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Counters is the narrow view of the root package's *motion.Metrics this
// package needs: the exact fields a Collector scrapes on every /metrics
// request. Defined as an interface so internal/telemetry does not import
// the root package (which itself must not import internal/telemetry).
type Counters interface {
	SegmentCounts() map[string]uint64
	RegionOutcomeCounts() map[string]uint64
	ConvergenceFailures() uint64
	JunctionDowngrades() uint64
	DispatchRetries() uint64
	AvgDispatchLatencyNs() uint64
}

// Collector exports Counters as Prometheus metrics.
type Collector struct {
	counters Counters

	segments           *prometheus.Desc
	regionOutcomes     *prometheus.Desc
	convergenceFailures *prometheus.Desc
	junctionDowngrades *prometheus.Desc
	dispatchRetries    *prometheus.Desc
	avgLatency         *prometheus.Desc
}

// NewCollector builds a Collector reading from counters.
func NewCollector(counters Counters) *Collector {
	return &Collector{
		counters: counters,
		segments: prometheus.NewDesc(
			"tinyg_motion_segments_total",
			"Segments emitted downstream, by move type.",
			[]string{"move_type"}, nil,
		),
		regionOutcomes: prometheus.NewDesc(
			"tinyg_motion_region_outcomes_total",
			"Region-planner outcomes, by region count (3/2/1/0).",
			[]string{"outcome"}, nil,
		),
		convergenceFailures: prometheus.NewDesc(
			"tinyg_motion_convergence_failures_total",
			"Region-planner iterations that did not converge.",
			nil, nil,
		),
		junctionDowngrades: prometheus.NewDesc(
			"tinyg_motion_junction_downgrades_total",
			"Path-control-mode downgrades at junction planning.",
			nil, nil,
		),
		dispatchRetries: prometheus.NewDesc(
			"tinyg_motion_dispatch_retries_total",
			"Dispatcher ticks that returned Retry.",
			nil, nil,
		),
		avgLatency: prometheus.NewDesc(
			"tinyg_motion_dispatch_latency_ns_avg",
			"Mean per-segment dispatch latency in nanoseconds.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.segments
	ch <- c.regionOutcomes
	ch <- c.convergenceFailures
	ch <- c.junctionDowngrades
	ch <- c.dispatchRetries
	ch <- c.avgLatency
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for moveType, count := range c.counters.SegmentCounts() {
		ch <- prometheus.MustNewConstMetric(c.segments, prometheus.CounterValue, float64(count), moveType)
	}
	for outcome, count := range c.counters.RegionOutcomeCounts() {
		ch <- prometheus.MustNewConstMetric(c.regionOutcomes, prometheus.CounterValue, float64(count), outcome)
	}
	ch <- prometheus.MustNewConstMetric(c.convergenceFailures, prometheus.CounterValue, float64(c.counters.ConvergenceFailures()))
	ch <- prometheus.MustNewConstMetric(c.junctionDowngrades, prometheus.CounterValue, float64(c.counters.JunctionDowngrades()))
	ch <- prometheus.MustNewConstMetric(c.dispatchRetries, prometheus.CounterValue, float64(c.counters.DispatchRetries()))
	ch <- prometheus.MustNewConstMetric(c.avgLatency, prometheus.GaugeValue, float64(c.counters.AvgDispatchLatencyNs()))
}

var _ prometheus.Collector = (*Collector)(nil)

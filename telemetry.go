package motion

import "github.com/tinygcore/motion/internal/telemetry"

// metricsCounters adapts *Metrics to internal/telemetry.Counters: a
// thin rename layer, since Metrics already has atomic fields named
// JunctionDowngrades/DispatchRetries and Go forbids a method sharing a
// field's name on the same type.
type metricsCounters struct {
	m *Metrics
}

func (c metricsCounters) SegmentCounts() map[string]uint64       { return c.m.SegmentCounts() }
func (c metricsCounters) RegionOutcomeCounts() map[string]uint64 { return c.m.RegionOutcomeCounts() }
func (c metricsCounters) ConvergenceFailures() uint64            { return c.m.ConvergenceFailures() }
func (c metricsCounters) JunctionDowngrades() uint64             { return c.m.JunctionDowngradeCount() }
func (c metricsCounters) DispatchRetries() uint64                { return c.m.DispatchRetryCount() }
func (c metricsCounters) AvgDispatchLatencyNs() uint64           { return c.m.AvgDispatchLatencyNs() }

// NewTelemetryCollector wraps m as a prometheus.Collector, for hosts
// that want to expose motion-core metrics on a /metrics endpoint
// (spec.md §11).
func NewTelemetryCollector(m *Metrics) *telemetry.Collector {
	return telemetry.NewCollector(metricsCounters{m: m})
}

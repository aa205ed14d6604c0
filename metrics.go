package motion

import (
	"sync/atomic"

	"github.com/tinygcore/motion/internal/interfaces"
)

// LatencyBuckets are the segment-emission latency histogram boundaries,
// in nanoseconds (spec.md §9 ambient stack: adapted from the teacher's
// logarithmic I/O-latency buckets to per-segment dispatch latency).
var LatencyBuckets = []uint64{
	1_000,          // 1us
	10_000,         // 10us
	100_000,        // 100us
	1_000_000,      // 1ms
	10_000_000,     // 10ms
	100_000_000,    // 100ms
	1_000_000_000,  // 1s
	10_000_000_000, // 10s
}

const numLatencyBuckets = 8

// Metrics tracks motion-core operational statistics: segments emitted
// per move type, region-planner outcomes, junction downgrades, and
// dispatcher retries (spec.md §7, §9).
type Metrics struct {
	LineSegments   atomic.Uint64
	ArcSegments    atomic.Uint64
	RampSegments   atomic.Uint64
	CruiseSegments atomic.Uint64
	DwellSegments  atomic.Uint64

	RegionOutcomeThree atomic.Uint64
	RegionOutcomeTwo   atomic.Uint64
	RegionOutcomeOne   atomic.Uint64
	RegionOutcomeZero  atomic.Uint64
	ConvergenceFailure atomic.Uint64

	JunctionDowngrades atomic.Uint64
	DispatchRetries    atomic.Uint64

	TotalDispatchLatencyNs atomic.Uint64
	DispatchCount          atomic.Uint64
	LatencyBuckets         [numLatencyBuckets]atomic.Uint64
}

// NewMetrics creates a zeroed Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordSegment increments the per-move-type segment counter and the
// latency histogram for one dispatcher tick that emitted a segment.
func (m *Metrics) RecordSegment(moveType string, latencyNs uint64) {
	switch moveType {
	case "line":
		m.LineSegments.Add(1)
	case "arc":
		m.ArcSegments.Add(1)
	case "accel", "decel":
		m.RampSegments.Add(1)
	case "cruise":
		m.CruiseSegments.Add(1)
	case "dwell":
		m.DwellSegments.Add(1)
	}
	m.recordLatency(latencyNs)
}

func (m *Metrics) recordLatency(latencyNs uint64) {
	m.TotalDispatchLatencyNs.Add(latencyNs)
	m.DispatchCount.Add(1)
	for i, bucket := range LatencyBuckets {
		if latencyNs <= bucket {
			m.LatencyBuckets[i].Add(1)
		}
	}
}

// RecordRegionOutcome tallies which of the 3/2/1/0-region solutions the
// region planner produced (spec.md §4.3).
func (m *Metrics) RecordRegionOutcome(outcome int) {
	switch outcome {
	case 3:
		m.RegionOutcomeThree.Add(1)
	case 2:
		m.RegionOutcomeTwo.Add(1)
	case 1:
		m.RegionOutcomeOne.Add(1)
	case 0:
		m.RegionOutcomeZero.Add(1)
	}
}

// RecordConvergenceFailure tallies a region-planner iteration that did
// not converge within the iteration bound (spec.md §4.3), in strict and
// lenient mode alike.
func (m *Metrics) RecordConvergenceFailure() {
	m.ConvergenceFailure.Add(1)
}

// RecordJunctionDowngrade tallies a path-control-mode downgrade
// (Continuous→ExactPath→ExactStop, spec.md §4.2).
func (m *Metrics) RecordJunctionDowngrade() {
	m.JunctionDowngrades.Add(1)
}

// RecordDispatchRetry tallies a dispatcher Tick that returned Retry,
// whether because the downstream motor queue was full or because a
// multi-segment record still has segments to emit (spec.md §4.5).
func (m *Metrics) RecordDispatchRetry() {
	m.DispatchRetries.Add(1)
}

// AvgDispatchLatencyNs returns the mean per-segment dispatch latency.
func (m *Metrics) AvgDispatchLatencyNs() uint64 {
	count := m.DispatchCount.Load()
	if count == 0 {
		return 0
	}
	return m.TotalDispatchLatencyNs.Load() / count
}

// SegmentCounts returns the per-move-type segment tallies, keyed by
// RecordSegment's moveType names except that "accel" and "decel" share
// the "ramp" key (spec.md §11: consumed by internal/telemetry.Collector).
func (m *Metrics) SegmentCounts() map[string]uint64 {
	return map[string]uint64{
		"line":   m.LineSegments.Load(),
		"arc":    m.ArcSegments.Load(),
		"ramp":   m.RampSegments.Load(),
		"cruise": m.CruiseSegments.Load(),
		"dwell":  m.DwellSegments.Load(),
	}
}

// RegionOutcomeCounts returns the region-planner outcome tallies, keyed
// by outcome name.
func (m *Metrics) RegionOutcomeCounts() map[string]uint64 {
	return map[string]uint64{
		"three": m.RegionOutcomeThree.Load(),
		"two":   m.RegionOutcomeTwo.Load(),
		"one":   m.RegionOutcomeOne.Load(),
		"zero":  m.RegionOutcomeZero.Load(),
	}
}

// ConvergenceFailures returns the total count of non-converging
// region-planner iterations.
func (m *Metrics) ConvergenceFailures() uint64 { return m.ConvergenceFailure.Load() }

// JunctionDowngradeCount returns the total count of path-control-mode
// downgrades.
func (m *Metrics) JunctionDowngradeCount() uint64 { return m.JunctionDowngrades.Load() }

// DispatchRetryCount returns the total count of Retry dispatcher ticks.
func (m *Metrics) DispatchRetryCount() uint64 { return m.DispatchRetries.Load() }

// Reset zeroes every counter (useful for testing).
func (m *Metrics) Reset() {
	m.LineSegments.Store(0)
	m.ArcSegments.Store(0)
	m.RampSegments.Store(0)
	m.CruiseSegments.Store(0)
	m.DwellSegments.Store(0)
	m.RegionOutcomeThree.Store(0)
	m.RegionOutcomeTwo.Store(0)
	m.RegionOutcomeOne.Store(0)
	m.RegionOutcomeZero.Store(0)
	m.ConvergenceFailure.Store(0)
	m.JunctionDowngrades.Store(0)
	m.DispatchRetries.Store(0)
	m.TotalDispatchLatencyNs.Store(0)
	m.DispatchCount.Store(0)
	for i := 0; i < numLatencyBuckets; i++ {
		m.LatencyBuckets[i].Store(0)
	}
}

// MetricsObserver implements internal/interfaces.Observer by recording
// to a built-in Metrics, the same adapter pattern the teacher uses to
// bridge its atomic counters to a pluggable Observer (spec.md §9
// ambient stack).
type MetricsObserver struct {
	metrics *Metrics
}

// NewMetricsObserver creates an observer that records to m.
func NewMetricsObserver(m *Metrics) *MetricsObserver {
	return &MetricsObserver{metrics: m}
}

func (o *MetricsObserver) ObserveSegment(moveType string, microseconds uint32) {
	o.metrics.RecordSegment(moveType, uint64(microseconds)*1000)
}

func (o *MetricsObserver) ObserveRegionOutcome(outcome int) {
	o.metrics.RecordRegionOutcome(outcome)
}

func (o *MetricsObserver) ObserveConvergenceFailure() {
	o.metrics.RecordConvergenceFailure()
}

func (o *MetricsObserver) ObserveJunctionDowngrade(from, to string) {
	_ = from
	_ = to
	o.metrics.RecordJunctionDowngrade()
}

func (o *MetricsObserver) ObserveDispatchRetry() {
	o.metrics.RecordDispatchRetry()
}

// NoOpObserver discards every observation; the default when no metrics
// collection is wired up.
type NoOpObserver struct{}

func (NoOpObserver) ObserveSegment(string, uint32)       {}
func (NoOpObserver) ObserveRegionOutcome(int)             {}
func (NoOpObserver) ObserveConvergenceFailure()           {}
func (NoOpObserver) ObserveJunctionDowngrade(string, string) {}
func (NoOpObserver) ObserveDispatchRetry()                {}

var (
	_ interfaces.Observer = (*MetricsObserver)(nil)
	_ interfaces.Observer = NoOpObserver{}
)

package motion

import "testing"

func TestRecordSegmentTalliesByMoveType(t *testing.T) {
	m := NewMetrics()
	m.RecordSegment("line", 5000)
	m.RecordSegment("accel", 2000)
	m.RecordSegment("decel", 2000)
	m.RecordSegment("cruise", 1000)

	if got := m.LineSegments.Load(); got != 1 {
		t.Errorf("LineSegments = %d, want 1", got)
	}
	if got := m.RampSegments.Load(); got != 2 {
		t.Errorf("RampSegments = %d, want 2", got)
	}
	if got := m.CruiseSegments.Load(); got != 1 {
		t.Errorf("CruiseSegments = %d, want 1", got)
	}
}

func TestRecordRegionOutcomeTalliesByOutcome(t *testing.T) {
	m := NewMetrics()
	m.RecordRegionOutcome(3)
	m.RecordRegionOutcome(3)
	m.RecordRegionOutcome(1)
	m.RecordRegionOutcome(0)

	if got := m.RegionOutcomeThree.Load(); got != 2 {
		t.Errorf("RegionOutcomeThree = %d, want 2", got)
	}
	if got := m.RegionOutcomeOne.Load(); got != 1 {
		t.Errorf("RegionOutcomeOne = %d, want 1", got)
	}
	if got := m.RegionOutcomeZero.Load(); got != 1 {
		t.Errorf("RegionOutcomeZero = %d, want 1", got)
	}
}

func TestAvgDispatchLatencyNsIsZeroWithNoSamples(t *testing.T) {
	m := NewMetrics()
	if got := m.AvgDispatchLatencyNs(); got != 0 {
		t.Errorf("AvgDispatchLatencyNs = %d, want 0", got)
	}
}

func TestAvgDispatchLatencyNsAverages(t *testing.T) {
	m := NewMetrics()
	m.RecordSegment("line", 1000)
	m.RecordSegment("line", 3000)

	if got := m.AvgDispatchLatencyNs(); got != 2000 {
		t.Errorf("AvgDispatchLatencyNs = %d, want 2000", got)
	}
}

func TestResetZeroesAllCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordSegment("arc", 1500)
	m.RecordRegionOutcome(2)
	m.RecordJunctionDowngrade()
	m.RecordDispatchRetry()

	m.Reset()

	if got := m.ArcSegments.Load(); got != 0 {
		t.Errorf("ArcSegments after Reset = %d, want 0", got)
	}
	if got := m.RegionOutcomeTwo.Load(); got != 0 {
		t.Errorf("RegionOutcomeTwo after Reset = %d, want 0", got)
	}
	if got := m.JunctionDowngrades.Load(); got != 0 {
		t.Errorf("JunctionDowngrades after Reset = %d, want 0", got)
	}
	if got := m.DispatchRetries.Load(); got != 0 {
		t.Errorf("DispatchRetries after Reset = %d, want 0", got)
	}
}

func TestMetricsObserverBridgesToMetrics(t *testing.T) {
	m := NewMetrics()
	obs := NewMetricsObserver(m)

	obs.ObserveSegment("line", 100)
	obs.ObserveRegionOutcome(3)
	obs.ObserveConvergenceFailure()
	obs.ObserveJunctionDowngrade("continuous", "exact-path")
	obs.ObserveDispatchRetry()

	if got := m.LineSegments.Load(); got != 1 {
		t.Errorf("LineSegments = %d, want 1", got)
	}
	if got := m.RegionOutcomeThree.Load(); got != 1 {
		t.Errorf("RegionOutcomeThree = %d, want 1", got)
	}
	if got := m.ConvergenceFailure.Load(); got != 1 {
		t.Errorf("ConvergenceFailure = %d, want 1", got)
	}
	if got := m.JunctionDowngrades.Load(); got != 1 {
		t.Errorf("JunctionDowngrades = %d, want 1", got)
	}
	if got := m.DispatchRetries.Load(); got != 1 {
		t.Errorf("DispatchRetries = %d, want 1", got)
	}
}

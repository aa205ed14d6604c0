// Package types holds the domain types shared by the buffer pool,
// planner, and runtime packages: the move buffer record, its lifecycle
// enums, and the status codes the core surfaces upward (spec.md §3, §7).
package types

import "fmt"

// Axes is the fixed per-move axis count (spec.md §3: "typically 4: X,
// Y, Z, A").
const Axes = 4

// Vector is a fixed-size per-axis quantity: a target, a unit vector, or
// a step-delta, depending on context.
type Vector [Axes]float64

// BufferState is a MoveBuffer's pool-lifecycle state (spec.md §3/§4.1).
type BufferState int

const (
	Empty BufferState = iota
	Loading
	Queued
	Running
)

func (s BufferState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loading:
		return "loading"
	case Queued:
		return "queued"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("BufferState(%d)", int(s))
	}
}

// MoveType is the dispatch discriminator for a queued record (spec.md §3).
type MoveType int

const (
	None MoveType = iota
	Accel
	Cruise
	Decel
	Line
	Arc
	Dwell
	Start
	Stop
	End
)

func (t MoveType) String() string {
	switch t {
	case None:
		return "none"
	case Accel:
		return "accel"
	case Cruise:
		return "cruise"
	case Decel:
		return "decel"
	case Line:
		return "line"
	case Arc:
		return "arc"
	case Dwell:
		return "dwell"
	case Start:
		return "start"
	case Stop:
		return "stop"
	case End:
		return "end"
	default:
		return fmt.Sprintf("MoveType(%d)", int(t))
	}
}

// IsRegion reports whether t is one of the jerk-ramp region types
// (Accel, Cruise, Decel) that the region and junction planners produce.
func (t MoveType) IsRegion() bool {
	return t == Accel || t == Cruise || t == Decel
}

// MoveState is a queued record's per-record continuation state
// (spec.md §3, §4.10).
type MoveState int

const (
	New MoveState = iota
	Running1
	Running2
	Finalize
	ForceEnd
)

func (s MoveState) String() string {
	switch s {
	case New:
		return "new"
	case Running1:
		return "running1"
	case Running2:
		return "running2"
	case Finalize:
		return "finalize"
	case ForceEnd:
		return "force-end"
	default:
		return fmt.Sprintf("MoveState(%d)", int(s))
	}
}

// PathControlMode is the junction-blending strategy (spec.md §4.2, GLOSSARY).
type PathControlMode int

const (
	Continuous PathControlMode = iota
	ExactPath
	ExactStop
)

func (m PathControlMode) String() string {
	switch m {
	case Continuous:
		return "continuous"
	case ExactPath:
		return "exact-path"
	case ExactStop:
		return "exact-stop"
	default:
		return fmt.Sprintf("PathControlMode(%d)", int(m))
	}
}

// ConvergenceMode selects strict-vs-lenient region-planner iteration
// behavior (spec.md §4.3, §9 — deliberately a runtime switch, not a
// build flag).
type ConvergenceMode int

const (
	ConvergenceStrict ConvergenceMode = iota
	ConvergenceLenient
)

// Status is the result code every upward operation returns (spec.md §6.1, §7).
type Status string

const (
	Ok                Status = "ok"
	Retry             Status = "retry"
	NoOp              Status = "noop"
	ZeroLengthMove    Status = "zero-length-move"
	BufferFullFatal   Status = "buffer-full-fatal"
	FailedToConverge  Status = "failed-to-converge"
	Err               Status = "err"
)

// Error lets a bare Status satisfy the error interface, so a runtime
// function can return (Status, error) with error == status itself when
// no extra context is warranted.
func (s Status) Error() string { return string(s) }

// RegionOutcome records how many of {head, body, tail} the region
// planner populated, for metrics and tests (spec.md §4.3).
type RegionOutcome int

const (
	RegionOutcomeThree RegionOutcome = 3
	RegionOutcomeTwo   RegionOutcome = 2
	RegionOutcomeOne   RegionOutcome = 1
	RegionOutcomeZero  RegionOutcome = 0
)

// MoveBuffer is one ring slot: either a region (Accel/Cruise/Decel), a
// simple Line, an Arc, a Dwell, or a program-flow Start/Stop/End
// (spec.md §3).
type MoveBuffer struct {
	// Linkage is informational only; the pool itself is indexed by
	// position, not by pointer-chasing (spec.md §9: "cyclic ring links
	// -> index arithmetic").
	Index int

	PlanID string // unique id minted for each queued Line, Arc, or aline region buffer

	BufferState BufferState
	MoveType    MoveType
	MoveState   MoveState

	Target  Vector
	UnitVec Vector
	Length  float64
	Time    float64

	StartingVelocity float64
	EndingVelocity   float64

	// Arc-only fields (spec.md §3).
	Theta         float64
	Radius        float64
	AngularTravel float64
	LinearTravel  float64
	Axis1         int
	Axis2         int
	AxisLinear    int

	// Run is the per-record continuation state a runtime threads across
	// Retry returns (spec.md §9: "per-record state held on the record
	// itself, so a runtime can be interrupted and resumed without
	// consulting external state").
	Run RunState
}

// RunState holds a single record's in-flight runtime continuation:
// segment counters and elapsed time for the jerk-ramp runtime (C5), and
// segment count / center / theta for the arc runtime (C3). It is valid
// only while MoveState is between New and Finalize for this record.
type RunState struct {
	Initialized bool

	// Jerk-ramp runtime (C5) fields.
	SegmentsPerHalf int
	SegmentIndex    int // 0..2*SegmentsPerHalf-1 across both halves
	DeltaT          float64
	ElapsedTime     float64
	MidVelocity     float64
	MidAccel        float64
	MicrosPerSeg    uint32

	// Arc runtime (C3) fields.
	SegmentsRemaining int
	Theta             float64
	DeltaTheta        float64
	DeltaLinear       float64
	Center1           float64
	Center2           float64
	SegmentMicros     uint32
}

// Reset clears a slot's move-specific fields while keeping Index and
// BufferState under the caller's control (spec.md §4.1: "zero the slot
// (preserving link fields)").
func (b *MoveBuffer) Reset() {
	index := b.Index
	*b = MoveBuffer{Index: index, BufferState: Empty}
}

// Package interfaces provides internal interface definitions for the
// motion core. Kept separate from the root package to avoid circular
// imports between it and the internal planner/queue/runtime packages
// (spec.md §6.2: C1, the motor queue, is named only by the interface it
// exposes — everything downstream of it is out of scope).
package interfaces

import "github.com/tinygcore/motion/internal/types"

// Steps is a per-axis integer step delta, the unit C1 consumes
// (spec.md §3: "converted to integer steps per axis").
type Steps [types.Axes]int32

// MotorQueue is C1, the downstream motor queue. It is an external
// collaborator: the motion core never implements it, only calls it.
// motorsim.Queue and gpiostep.Queue are the two concrete
// implementations this repository ships (spec.md §6.2).
type MotorQueue interface {
	// TestMotorBuffer reports whether there is capacity for one more
	// segment. false means the caller must return Retry without side
	// effects (spec.md §4.5).
	TestMotorBuffer() bool

	// QueueLine emits one step segment.
	QueueLine(steps Steps, microseconds uint32) error

	// QueueDwell emits one timed hold.
	QueueDwell(microseconds uint32) error

	// QueueStops emits a program-flow event of the given kind. The
	// runtime does not use it for queued Start, Stop, and End records;
	// those go through Stop, Start, and End below.
	QueueStops(kind string) error

	// Stop, Start, and End are immediate control passthroughs, called by
	// the async-* upward operations and also by the runtime when a
	// queued Start, Stop, or End record is dispatched (spec.md §6.2).
	Stop() error
	Start() error
	End() error
}

// Logger is the leveled logging surface the core calls into. A nil
// Logger is legal and silences logging.
type Logger interface {
	Debugf(format string, args ...interface{})
	Printf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Observer is the pluggable metrics-collection surface (spec.md §11).
// The root package's MetricsObserver implements it over Metrics and
// NoOpObserver discards every observation; internal/telemetry exports
// those Metrics to Prometheus but does not implement Observer.
type Observer interface {
	ObserveSegment(moveType string, microseconds uint32)
	ObserveRegionOutcome(outcome int)
	ObserveConvergenceFailure()
	ObserveJunctionDowngrade(from, to string)
	ObserveDispatchRetry()
}

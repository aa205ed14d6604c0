// Package motion implements the TinyG-style motion core: jerk-limited
// trajectory planning ("alines"), arc segmentation, and the cooperative
// dispatcher that drains the move buffer pool into a downstream motor
// queue (spec.md §1–§2).
package motion

import (
	"math"

	"github.com/google/uuid"

	"github.com/tinygcore/motion/internal/config"
	"github.com/tinygcore/motion/internal/interfaces"
	"github.com/tinygcore/motion/internal/kinematics"
	"github.com/tinygcore/motion/internal/planner"
	"github.com/tinygcore/motion/internal/queue"
	"github.com/tinygcore/motion/internal/types"
)

// Core owns every piece of motion-core state: the buffer pool, the
// dispatcher (and through it the runtime's shared position), the axis
// and global configuration, and the observer metrics are reported to.
// There are no package-level globals (spec.md §9: "global singletons ->
// explicit state") — callers construct and own a Core.
type Core struct {
	pool       *queue.Pool
	dispatcher *queue.Dispatcher
	cfg        config.GlobalConfig
	axes       config.AxisTable
	motor      interfaces.MotorQueue
	logger     interfaces.Logger
	observer   interfaces.Observer

	plannerPosition types.Vector
}

// New constructs a Core over motor with ringSize move-buffer slots.
// logger and observer may be nil, in which case logging and metrics
// observation are no-ops (spec.md §6.1 init).
func New(ringSize int, cfg GlobalConfig, axes AxisTable, motor interfaces.MotorQueue, logger interfaces.Logger, observer interfaces.Observer) *Core {
	pool := queue.NewPool(ringSize, logger)
	dispatcher := queue.NewDispatcher(pool, cfg, axes, motor, logger)
	if observer == nil {
		observer = NoOpObserver{}
	}
	return &Core{
		pool:       pool,
		dispatcher: dispatcher,
		cfg:        cfg,
		axes:       axes,
		motor:      motor,
		logger:     logger,
		observer:   observer,
	}
}

// SetPosition overwrites both the planner's and the runtime's current
// position, for datum resets (spec.md §6.1 set_position).
func (c *Core) SetPosition(pos types.Vector) {
	c.plannerPosition = pos
	c.dispatcher.Scratch().Set(pos)
}

// Line queues a simple (non-jerk-planned) line to target over minutes
// (spec.md §4.4 is not applicable here; this bypasses the planner
// entirely and emits a single Line record).
func (c *Core) Line(target types.Vector, minutes float64) (Status, error) {
	length := kinematics.Length(kinematics.Sub(target, c.plannerPosition))
	if length < c.cfg.MinLineLength {
		return ZeroLengthMove, nil
	}
	if !c.pool.TestWrite(1) {
		return BufferFullFatal, NewError("line", BufferFullFatal, "move buffer pool full")
	}

	buf, ok := c.pool.GetWriteBuffer()
	if !ok {
		return BufferFullFatal, NewError("line", BufferFullFatal, "move buffer pool full")
	}
	buf.Target = target
	buf.Time = minutes
	buf.PlanID = uuid.NewString()
	c.plannerPosition = target
	c.pool.QueueWriteBuffer(types.Line)
	return Ok, nil
}

// Aline queues a jerk-planned line to target over minutes, running
// junction planning (C7), previous-tail rewrite, and region planning
// (C6) before publishing head/body/tail records (spec.md §4.2–§4.4).
func (c *Core) Aline(target types.Vector, minutes float64) (Status, error) {
	delta := kinematics.Sub(target, c.plannerPosition)
	length := kinematics.Length(delta)
	if length < c.cfg.MinLineLength {
		return ZeroLengthMove, nil
	}
	if !c.pool.TestWrite(constantsMaxBuffersNeeded) {
		return BufferFullFatal, NewError("aline", BufferFullFatal, "insufficient buffers for worst-case aline")
	}

	unitVec := kinematics.Unit(delta, length)
	targetVelocity := length / minutes

	prevSlot := c.pool.GetPrevBuffer()
	prevView := newPrevBufferView(prevSlot)

	jplan := planner.PlanJunction(unitVec, targetVelocity, prevView, c.cfg)
	if jplan.PathMode != c.cfg.PathControlMode {
		c.observer.ObserveJunctionDowngrade(c.cfg.PathControlMode.String(), jplan.PathMode.String())
	}

	initialVelocity := jplan.InitialVelocity
	finalTargetVelocity := jplan.TargetVelocity

	if !jplan.PreviousIsArc {
		previousVelocity := 0.0
		if prevSlot.BufferState == types.Queued || prevSlot.BufferState == types.Running {
			previousVelocity = prevSlot.StartingVelocity
		}
		planner.RewritePreviousTail(prevView, previousVelocity, initialVelocity, c.cfg, func(unitVec, target types.Vector, length, vStart, vEnd float64) {
			c.queueRegion(types.Decel, unitVec, target, length, vStart, vEnd)
		})
	}

	rplan := planner.PlanRegions(length, initialVelocity, finalTargetVelocity, c.cfg)
	c.observer.ObserveRegionOutcome(int(rplan.Outcome))
	if !rplan.Converged {
		c.observer.ObserveConvergenceFailure()
		if c.cfg.ConvergenceMode == types.ConvergenceStrict {
			return FailedToConverge, NewError("aline", FailedToConverge, "region planner did not converge")
		}
	}

	position := c.plannerPosition
	if rplan.Head > 0 {
		position = c.publishRegion(types.Accel, unitVec, position, rplan.Head, rplan.InitialVelocity, rplan.TargetVelocity)
	}
	if rplan.Body > 0 {
		position = c.publishRegion(types.Cruise, unitVec, position, rplan.Body, rplan.TargetVelocity, rplan.TargetVelocity)
	}
	if rplan.Tail > 0 {
		position = c.publishRegion(types.Decel, unitVec, position, rplan.Tail, rplan.TargetVelocity, rplan.FinalVelocity)
	}
	c.plannerPosition = position

	return Ok, nil
}

// publishRegion reserves and queues one head/body/tail record, advancing
// and returning the planner's running position (spec.md §4.4 step 5).
func (c *Core) publishRegion(moveType types.MoveType, unitVec, from types.Vector, length, vStart, vEnd float64) types.Vector {
	to := kinematics.Add(from, kinematics.Scale(unitVec, length))
	c.queueRegion(moveType, unitVec, to, length, vStart, vEnd)
	return to
}

func (c *Core) queueRegion(moveType types.MoveType, unitVec, target types.Vector, length, vStart, vEnd float64) {
	buf, ok := c.pool.GetWriteBuffer()
	if !ok {
		return
	}
	buf.UnitVec = unitVec
	buf.Target = target
	buf.Length = length
	buf.StartingVelocity = vStart
	buf.EndingVelocity = vEnd
	buf.PlanID = uuid.NewString()
	c.pool.QueueWriteBuffer(moveType)
}

// Arc queues a helical or planar arc (spec.md §6.1 arc).
func (c *Core) Arc(target types.Vector, theta, radius, angularTravel, linearTravel float64, axis1, axis2, axisLinear int, minutes float64) (Status, error) {
	length := math.Hypot(angularTravel*radius, linearTravel)
	if length < c.cfg.MinLineLength {
		return ZeroLengthMove, nil
	}
	if !c.pool.TestWrite(1) {
		return BufferFullFatal, NewError("arc", BufferFullFatal, "move buffer pool full")
	}

	buf, ok := c.pool.GetWriteBuffer()
	if !ok {
		return BufferFullFatal, NewError("arc", BufferFullFatal, "move buffer pool full")
	}
	buf.Target = target
	buf.Length = length
	buf.Theta = theta
	buf.Radius = radius
	buf.AngularTravel = angularTravel
	buf.LinearTravel = linearTravel
	buf.Axis1 = axis1
	buf.Axis2 = axis2
	buf.AxisLinear = axisLinear
	buf.Time = minutes
	buf.PlanID = uuid.NewString()
	c.plannerPosition = target
	c.pool.QueueWriteBuffer(types.Arc)
	return Ok, nil
}

// Dwell queues a timed non-motion hold of seconds (spec.md §6.1 dwell).
func (c *Core) Dwell(seconds float64) (Status, error) {
	if !c.pool.TestWrite(1) {
		return BufferFullFatal, NewError("dwell", BufferFullFatal, "move buffer pool full")
	}
	buf, ok := c.pool.GetWriteBuffer()
	if !ok {
		return BufferFullFatal, NewError("dwell", BufferFullFatal, "move buffer pool full")
	}
	buf.Time = seconds
	c.pool.QueueWriteBuffer(types.Dwell)
	return Ok, nil
}

// QueuedStop, QueuedStart, and QueuedEnd queue in-order program-flow
// transitions (spec.md §6.1).
func (c *Core) QueuedStop() (Status, error)  { return c.queueFlow(types.Stop) }
func (c *Core) QueuedStart() (Status, error) { return c.queueFlow(types.Start) }
func (c *Core) QueuedEnd() (Status, error)   { return c.queueFlow(types.End) }

func (c *Core) queueFlow(moveType types.MoveType) (Status, error) {
	if !c.pool.TestWrite(1) {
		return BufferFullFatal, NewError("queued-flow", BufferFullFatal, "move buffer pool full")
	}
	_, ok := c.pool.GetWriteBuffer()
	if !ok {
		return BufferFullFatal, NewError("queued-flow", BufferFullFatal, "move buffer pool full")
	}
	c.pool.QueueWriteBuffer(moveType)
	return Ok, nil
}

// AsyncStop, AsyncStart issue immediate, out-of-queue control directly
// to the motor queue, bypassing the move buffer pool (spec.md §6.1).
func (c *Core) AsyncStop() (Status, error) {
	if err := c.motor.Stop(); err != nil {
		return Err, WrapError("async-stop", Err, err)
	}
	return Ok, nil
}

func (c *Core) AsyncStart() (Status, error) {
	if err := c.motor.Start(); err != nil {
		return Err, WrapError("async-start", Err, err)
	}
	return Ok, nil
}

// AsyncEnd orders the downstream to halt immediately and asks the
// dispatcher to tear down the currently running record on the next tick
// (spec.md §4.9: "side-channel kill path that bypasses the queue").
func (c *Core) AsyncEnd() (Status, error) {
	if err := c.motor.End(); err != nil {
		return Err, WrapError("async-end", Err, err)
	}
	c.dispatcher.RequestKill()
	return Ok, nil
}

// Dispatch runs one cooperative dispatcher tick (spec.md §6.1 dispatch,
// §4.5).
func (c *Core) Dispatch(kill bool) (Status, error) {
	if kill {
		c.dispatcher.RequestKill()
	}
	status, err := c.dispatcher.Tick()
	if status == types.Retry {
		c.observer.ObserveDispatchRetry()
	}
	return status, err
}

// IsBusy reports whether C1 is busy or a record is currently running
// (spec.md §6.1 is_busy).
func (c *Core) IsBusy() bool {
	return c.dispatcher.IsBusy() || !c.motor.TestMotorBuffer()
}

// Logger exposes the configured logger for callers that want to emit
// their own leveled messages into the same sink.
func (c *Core) Logger() interfaces.Logger { return c.logger }

// Position returns the planner's current running position, the
// endpoint of the most recently queued (not yet necessarily run) move
// (spec.md §4.2: "position").
func (c *Core) Position() types.Vector { return c.plannerPosition }

// QueueSnapshot returns the move types and velocities of every
// currently queued or running record, in FIFO order (spec.md §8
// testable properties).
func (c *Core) QueueSnapshot() []queue.SlotSnapshot {
	return c.pool.Snapshot()
}

const constantsMaxBuffersNeeded = 4

package runtime

import (
	"math"

	"github.com/tinygcore/motion/internal/config"
	"github.com/tinygcore/motion/internal/interfaces"
	"github.com/tinygcore/motion/internal/kinematics"
	"github.com/tinygcore/motion/internal/types"
)

// RunCruise executes a Cruise region as a single segment at constant
// velocity (spec.md §4.8).
func RunCruise(buf *types.MoveBuffer, scratch *Scratch, axes config.AxisTable, motor interfaces.MotorQueue) (types.Status, error) {
	if !motor.TestMotorBuffer() {
		return types.Retry, nil
	}

	endpoint := kinematics.Add(scratch.Position, kinematics.Scale(buf.UnitVec, buf.Length))
	microseconds := uint32(buf.Length / buf.EndingVelocity * minutesToMicros)

	steps := stepsBetween(axes, scratch.Position, endpoint)
	if err := motor.QueueLine(steps, microseconds); err != nil {
		return types.Err, err
	}

	scratch.Position = endpoint
	return types.Ok, nil
}

// RunRamp executes an Accel or Decel region as a series of constant-time
// cubic-velocity segments split at the midpoint, finishing with a
// position-correcting finalize segment (spec.md §4.8, §9).
func RunRamp(buf *types.MoveBuffer, scratch *Scratch, cfg config.GlobalConfig, axes config.AxisTable, motor interfaces.MotorQueue) (types.Status, error) {
	if !motor.TestMotorBuffer() {
		return types.Retry, nil
	}

	isAccel := buf.MoveType == types.Accel

	switch buf.MoveState {
	case types.New:
		initRamp(buf, cfg)
		if buf.Run.SegmentsPerHalf == 0 {
			// Δt non-finite or zero segment count: accept the move as
			// complete and go straight to the finalize fix-up.
			buf.MoveState = types.Finalize
			return runFinalize(buf, scratch, cfg, axes, motor)
		}
		buf.MoveState = types.Running1
		return emitRampSegment(buf, scratch, cfg, axes, motor, isAccel, 0)

	case types.Running1, types.Running2:
		return emitRampSegment(buf, scratch, cfg, axes, motor, isAccel, buf.Run.SegmentIndex)

	case types.Finalize:
		return runFinalize(buf, scratch, cfg, axes, motor)

	default:
		return types.Err, types.Err
	}
}

// initRamp computes N, Δt, V_m, and a_m (spec.md §4.8).
func initRamp(buf *types.MoveBuffer, cfg config.GlobalConfig) {
	vs, ve := buf.StartingVelocity, buf.EndingVelocity
	vm := (vs + ve) / 2
	linearJerkDiv2 := cfg.MaxLinearJerk / 2

	var t float64
	if vm > 0 {
		t = buf.Length / vm
	}
	aM := t * linearJerkDiv2

	n := 0
	if cfg.MinSegmentTime > 0 && t > 0 {
		n = int(math.Round(math.Round(t/cfg.MinSegmentTime) / 2))
	}
	var deltaT float64
	if n > 0 {
		deltaT = t / float64(2*n)
	}
	if !isFinite(deltaT) || n <= 0 {
		buf.Run = types.RunState{Initialized: true}
		return
	}

	buf.Run = types.RunState{
		Initialized:     true,
		SegmentsPerHalf: n,
		SegmentIndex:    0,
		DeltaT:          deltaT,
		ElapsedTime:     deltaT / 2,
		MidVelocity:     vm,
		MidAccel:        aM,
		MicrosPerSeg:    uint32(deltaT * minutesToMicros),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// velocityAt evaluates the cubic velocity curve at local half-time t
// (spec.md §4.8).
func velocityAt(buf *types.MoveBuffer, cfg config.GlobalConfig, t float64, secondHalf bool) float64 {
	linearJerkDiv2 := cfg.MaxLinearJerk / 2
	isAccel := buf.MoveType == types.Accel
	vs := buf.StartingVelocity

	if !secondHalf {
		if isAccel {
			return vs + linearJerkDiv2*t*t
		}
		return vs - linearJerkDiv2*t*t
	}

	vm := buf.Run.MidVelocity
	aM := buf.Run.MidAccel
	if isAccel {
		return vm + t*aM - linearJerkDiv2*t*t
	}
	return vm - t*aM + linearJerkDiv2*t*t
}

// emitRampSegment emits the segment at the given global index (0..2N-1)
// across both halves and advances RunState. It always returns Retry;
// after the last segment it moves the record to Finalize, so the
// finalize segment runs on the next call (spec.md §4.8).
func emitRampSegment(buf *types.MoveBuffer, scratch *Scratch, cfg config.GlobalConfig, axes config.AxisTable, motor interfaces.MotorQueue, isAccel bool, index int) (types.Status, error) {
	_ = isAccel
	n := buf.Run.SegmentsPerHalf
	secondHalf := index >= n
	localIndex := index
	if secondHalf {
		localIndex = index - n
	}

	// elapsed_time restarts at Δt/2 at the top of each half (spec.md §4.8).
	if localIndex == 0 {
		buf.Run.ElapsedTime = buf.Run.DeltaT / 2
	}
	t := buf.Run.ElapsedTime

	velocity := velocityAt(buf, cfg, t, secondHalf)
	delta := kinematics.Scale(buf.UnitVec, velocity*buf.Run.DeltaT)
	target := kinematics.Add(scratch.Position, delta)

	steps := stepsBetween(axes, scratch.Position, target)
	if err := motor.QueueLine(steps, buf.Run.MicrosPerSeg); err != nil {
		return types.Err, err
	}

	scratch.Position = target
	buf.Run.ElapsedTime += buf.Run.DeltaT
	buf.Run.SegmentIndex = index + 1

	if buf.Run.SegmentIndex >= 2*n {
		buf.MoveState = types.Finalize
		return types.Retry, nil
	}
	if buf.Run.SegmentIndex == n {
		buf.MoveState = types.Running2
	}
	return types.Retry, nil
}

// runFinalize emits the position-correcting finalize segment, closing
// any step-rounding gap accumulated across the ramp (spec.md §4.8, §9:
// "semantically load-bearing... do not omit").
func runFinalize(buf *types.MoveBuffer, scratch *Scratch, cfg config.GlobalConfig, axes config.AxisTable, motor interfaces.MotorQueue) (types.Status, error) {
	residual := kinematics.Length(kinematics.Sub(buf.Target, scratch.Position))
	if residual < cfg.MinLineLength {
		return types.Ok, nil
	}

	closingVelocity := buf.EndingVelocity
	if closingVelocity < cfg.RoundingError {
		// EndingVelocity is ~0 for essentially every decel-to-stop tail,
		// the exact case where a finalize segment is needed most; fall
		// back to the ramp's own mid-velocity rather than divide by it.
		closingVelocity = buf.Run.MidVelocity
	}
	if closingVelocity < cfg.RoundingError {
		closingVelocity = buf.StartingVelocity
	}
	if closingVelocity < cfg.RoundingError {
		return types.Ok, nil
	}

	microseconds := uint32(residual / closingVelocity * minutesToMicros)
	steps := stepsBetween(axes, scratch.Position, buf.Target)
	if err := motor.QueueLine(steps, microseconds); err != nil {
		return types.Err, err
	}
	scratch.Position = buf.Target
	return types.Ok, nil
}

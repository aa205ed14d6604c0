package planner

import (
	"math"

	"github.com/tinygcore/motion/internal/config"
	"github.com/tinygcore/motion/internal/kinematics"
	"github.com/tinygcore/motion/internal/types"
)

// PreviousBuffer is the narrow view of the pool's previous-tail slot the
// junction planner needs: enough to read its velocity/geometry and
// rewrite it in place (spec.md §4.1 get_prev_buffer, §4.2).
type PreviousBuffer interface {
	MoveTypeValue() types.MoveType
	BufferStateValue() types.BufferState
	StartingVelocityValue() float64
	UnitVecValue() types.Vector
	LengthValue() float64
	TargetValue() types.Vector

	RewriteAsCruise(velocity float64)
	ShortenTailToCruise(newLength, velocity float64)
}

// JunctionPlan is the outcome of junction planning for one aline: the
// selected initial velocity, the (possibly downgraded) path mode, and
// whether the previous move was an arc. After an arc the angular-jerk
// downgrade is skipped and Core.Aline skips the previous-tail rewrite;
// the region plan, head included, is still computed and published
// (spec.md §4.2).
type JunctionPlan struct {
	InitialVelocity float64
	TargetVelocity  float64
	PathMode        types.PathControlMode
	PreviousIsArc   bool
	AngularJerk     float64
}

// PlanJunction selects the initial velocity for a new aline and any
// path-control downgrade, per the angular-jerk estimate and the table in
// spec.md §4.2.
func PlanJunction(unitVec types.Vector, targetVelocity float64, prev PreviousBuffer, cfg config.GlobalConfig) JunctionPlan {
	previousVelocity := 0.0
	pathMode := cfg.PathControlMode

	prevQueuedOrRunning := prev != nil && (prev.BufferStateValue() == types.Queued || prev.BufferStateValue() == types.Running)
	if prevQueuedOrRunning {
		previousVelocity = prev.StartingVelocityValue()
	} else {
		pathMode = types.ExactStop
	}

	if prev != nil && prev.MoveTypeValue() == types.Arc && prevQueuedOrRunning {
		return JunctionPlan{
			InitialVelocity: previousVelocity,
			TargetVelocity:  targetVelocity,
			PathMode:        pathMode,
			PreviousIsArc:   true,
		}
	}

	var angularJerk float64
	if prevQueuedOrRunning {
		angularJerk = kinematics.AngularJerkEstimate(unitVec, prev.UnitVecValue(), previousVelocity, cfg.MaxVelocity)
	}

	initialVelocity := 0.0
	switch pathMode {
	case types.Continuous:
		if angularJerk > cfg.AngularJerkLower {
			pathMode = types.ExactPath
			initialVelocity = exactPathVelocity(angularJerk, previousVelocity, cfg, &pathMode)
		} else if targetVelocity > previousVelocity {
			initialVelocity = previousVelocity
		} else {
			initialVelocity = math.Min(previousVelocity, targetVelocity)
		}
	case types.ExactPath:
		initialVelocity = exactPathVelocity(angularJerk, previousVelocity, cfg, &pathMode)
	case types.ExactStop:
		initialVelocity = 0
	}

	return JunctionPlan{
		InitialVelocity: initialVelocity,
		TargetVelocity:  targetVelocity,
		PathMode:        pathMode,
		PreviousIsArc:   false,
		AngularJerk:     angularJerk,
	}
}

// exactPathVelocity applies the ExactPath row of the downgrade table,
// further downgrading to ExactStop when the jerk estimate exceeds the
// upper threshold (spec.md §4.2).
func exactPathVelocity(angularJerk, previousVelocity float64, cfg config.GlobalConfig, mode *types.PathControlMode) float64 {
	if angularJerk > cfg.AngularJerkUpper {
		*mode = types.ExactStop
		return 0
	}
	*mode = types.ExactPath
	return previousVelocity * (1 - angularJerk)
}

// RewritePreviousTail applies the previous-tail rewrite described in
// spec.md §4.2. queueDecel is called only when the rewrite needs to
// append a fresh Decel buffer; it must reserve and queue it with the
// given starting/ending velocity, unit vector, length, and endpoint.
func RewritePreviousTail(prev PreviousBuffer, previousVelocity, initialVelocity float64, cfg config.GlobalConfig, queueDecel func(unitVec types.Vector, target types.Vector, length, vStart, vEnd float64)) {
	if prev == nil || prev.BufferStateValue() != types.Queued {
		return
	}
	if math.Abs(initialVelocity) <= cfg.RoundingError {
		return
	}
	if math.Abs(initialVelocity-previousVelocity) <= cfg.RoundingError {
		prev.RewriteAsCruise(previousVelocity)
		return
	}

	decelLength := RegionLength(previousVelocity, initialVelocity, cfg.MaxLinearJerk)
	if decelLength < cfg.MinLineLength {
		return
	}

	remainder := prev.LengthValue() - decelLength
	prev.ShortenTailToCruise(remainder, previousVelocity)

	unitVec := prev.UnitVecValue()
	oldEndpoint := prev.TargetValue()
	queueDecel(unitVec, oldEndpoint, decelLength, previousVelocity, initialVelocity)
}

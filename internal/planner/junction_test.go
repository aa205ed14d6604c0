package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinygcore/motion/internal/config"
	"github.com/tinygcore/motion/internal/types"
)

type fakePrevBuffer struct {
	moveType   types.MoveType
	bufState   types.BufferState
	startVel   float64
	unitVec    types.Vector
	length     float64
	target     types.Vector
	rewrote    bool
	rewriteVel float64
	shortened  bool
	newLength  float64
	cruiseVel  float64
}

func (f *fakePrevBuffer) MoveTypeValue() types.MoveType       { return f.moveType }
func (f *fakePrevBuffer) BufferStateValue() types.BufferState { return f.bufState }
func (f *fakePrevBuffer) StartingVelocityValue() float64      { return f.startVel }
func (f *fakePrevBuffer) UnitVecValue() types.Vector          { return f.unitVec }
func (f *fakePrevBuffer) LengthValue() float64                { return f.length }
func (f *fakePrevBuffer) TargetValue() types.Vector           { return f.target }
func (f *fakePrevBuffer) RewriteAsCruise(velocity float64)    { f.rewrote = true; f.rewriteVel = velocity }
func (f *fakePrevBuffer) ShortenTailToCruise(newLength, velocity float64) {
	f.shortened = true
	f.newLength = newLength
	f.cruiseVel = velocity
}

func TestPlanJunctionNoPreviousDowngradesToExactStop(t *testing.T) {
	cfg := config.DefaultGlobalConfig()
	plan := PlanJunction(types.Vector{1, 0, 0, 0}, 3000, nil, cfg)

	require.Equal(t, types.ExactStop, plan.PathMode)
	require.Zero(t, plan.InitialVelocity)
}

func TestPlanJunctionArcPreviousBypassesDowngrade(t *testing.T) {
	cfg := config.DefaultGlobalConfig()
	prev := &fakePrevBuffer{
		moveType: types.Arc,
		bufState: types.Queued,
		startVel: 1500,
		unitVec:  types.Vector{0, 1, 0, 0},
	}

	plan := PlanJunction(types.Vector{1, 0, 0, 0}, 3000, prev, cfg)
	require.True(t, plan.PreviousIsArc)
	require.Equal(t, 1500.0, plan.InitialVelocity)
}

func TestPlanJunctionContinuousAccelTakesPreviousVelocity(t *testing.T) {
	cfg := config.DefaultGlobalConfig()
	cfg.PathControlMode = types.Continuous
	prev := &fakePrevBuffer{
		moveType: types.Line,
		bufState: types.Queued,
		startVel: 1000,
		unitVec:  types.Vector{1, 0, 0, 0},
	}

	// Collinear unit vectors: angular jerk is ~0, stays in Continuous.
	plan := PlanJunction(types.Vector{1, 0, 0, 0}, 3000, prev, cfg)
	require.Equal(t, types.Continuous, plan.PathMode)
	require.Equal(t, 1000.0, plan.InitialVelocity)
}

func TestPlanJunctionSharpTurnDowngradesToExactPath(t *testing.T) {
	cfg := config.DefaultGlobalConfig()
	cfg.PathControlMode = types.Continuous
	prev := &fakePrevBuffer{
		moveType: types.Line,
		bufState: types.Queued,
		startVel: 18000,
		unitVec:  types.Vector{1, 0, 0, 0},
	}

	// Reversal: a full 180-degree turn gives |Δ|/2 = 1; at half of the
	// default MaxVelocity the estimate is 0.5, above the 0.20 lower
	// threshold and below the 0.70 upper one.
	plan := PlanJunction(types.Vector{-1, 0, 0, 0}, 3000, prev, cfg)
	require.Equal(t, types.ExactPath, plan.PathMode)
}

func TestRewritePreviousTailConvertsToCruiseWhenVelocityMatches(t *testing.T) {
	cfg := config.DefaultGlobalConfig()
	prev := &fakePrevBuffer{bufState: types.Queued, length: 100}

	called := false
	RewritePreviousTail(prev, 1000, 1000, cfg, func(types.Vector, types.Vector, float64, float64, float64) {
		called = true
	})

	require.True(t, prev.rewrote)
	require.Equal(t, 1000.0, prev.rewriteVel)
	require.False(t, called)
}

func TestRewritePreviousTailQueuesDecelWhenVelocityDiffers(t *testing.T) {
	cfg := config.DefaultGlobalConfig()
	prev := &fakePrevBuffer{
		bufState: types.Queued,
		length:   100,
		unitVec:  types.Vector{1, 0, 0, 0},
		target:   types.Vector{100, 0, 0, 0},
	}

	var gotLength, gotVStart, gotVEnd float64
	RewritePreviousTail(prev, 3000, 1000, cfg, func(unitVec, target types.Vector, length, vStart, vEnd float64) {
		gotLength, gotVStart, gotVEnd = length, vStart, vEnd
	})

	require.True(t, prev.shortened)
	require.InDelta(t, 100-gotLength, prev.newLength, 1e-9)
	require.Equal(t, 3000.0, prev.cruiseVel)
	require.Equal(t, 3000.0, gotVStart)
	require.Equal(t, 1000.0, gotVEnd)
}

func TestRewritePreviousTailSkipsWhenPreviousNotQueued(t *testing.T) {
	cfg := config.DefaultGlobalConfig()
	prev := &fakePrevBuffer{bufState: types.Running, length: 100}

	RewritePreviousTail(prev, 1000, 500, cfg, func(types.Vector, types.Vector, float64, float64, float64) {
		t.Fatal("queueDecel should not be called when previous is not Queued")
	})

	require.False(t, prev.rewrote)
	require.False(t, prev.shortened)
}

package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinygcore/motion/internal/config"
	"github.com/tinygcore/motion/internal/types"
)

func TestRegionLengthMatchesClosedForm(t *testing.T) {
	got := RegionLength(1000, 0, 50_000_000)
	want := math.Abs(1000-0) * math.Sqrt(math.Abs(1000-0)/50_000_000)
	require.InDelta(t, want, got, 1e-9)
}

func TestRegionLengthIsZeroWhenVelocitiesEqual(t *testing.T) {
	require.Zero(t, RegionLength(500, 500, 50_000_000))
}

func TestPlanRegionsThreeRegionWhenLongEnough(t *testing.T) {
	cfg := config.DefaultGlobalConfig()
	plan := PlanRegions(1000, 0, 3000, cfg)

	require.Equal(t, types.RegionOutcomeThree, plan.Outcome)
	require.True(t, plan.Converged)
	require.Greater(t, plan.Body, 0.0)
	require.InDelta(t, 1000, plan.Head+plan.Body+plan.Tail, cfg.RoundingError)
}

func TestPlanRegionsTwoRegionWhenBodyNegative(t *testing.T) {
	cfg := config.DefaultGlobalConfig()
	// head+tail alone exceed L but L still exceeds tail alone, forcing
	// the two-region (no-cruise) branch rather than tail-only.
	plan := PlanRegions(200, 2000, 10000, cfg)

	require.Equal(t, types.RegionOutcomeTwo, plan.Outcome)
	require.Zero(t, plan.Body)
	require.Less(t, plan.TargetVelocity, 10000.0)
	require.InDelta(t, 200, plan.Head+plan.Tail, cfg.RoundingError*10)
}

func TestPlanRegionsOneRegionWhenVeryShort(t *testing.T) {
	cfg := config.DefaultGlobalConfig()
	plan := PlanRegions(0.05, 0, 20000, cfg)

	require.Equal(t, types.RegionOutcomeOne, plan.Outcome)
	require.Zero(t, plan.Head)
	require.Zero(t, plan.Body)
	require.InDelta(t, 0.05, plan.Tail, 1e-9)
}

func TestPlanRegionsZeroRegionWhenBelowMinLength(t *testing.T) {
	cfg := config.DefaultGlobalConfig()
	plan := PlanRegions(cfg.MinLineLength/2, 0, 3000, cfg)

	require.Equal(t, types.RegionOutcomeZero, plan.Outcome)
}

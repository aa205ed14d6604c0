// Package planner implements the region planner (C6) and the junction
// planner with previous-tail rewrite (C7) from spec.md §4.2–§4.4: the
// two algorithms that turn a requested aline endpoint and duration into
// a sequence of jerk-bounded head/body/tail region records.
package planner

import (
	"math"

	"github.com/tinygcore/motion/internal/config"
	"github.com/tinygcore/motion/internal/constants"
	"github.com/tinygcore/motion/internal/types"
)

// RegionLength is the closed-form path length needed to move between two
// velocities under a symmetric third-order (jerk-limited) motion profile
// (spec.md §4.3).
func RegionLength(va, vb, maxLinearJerk float64) float64 {
	delta := math.Abs(va - vb)
	if delta == 0 {
		return 0
	}
	return delta * math.Sqrt(delta/maxLinearJerk)
}

// RegionPlan is the (head, body, tail) solution for one aline, along
// with any revised target/initial velocity (spec.md §4.3).
type RegionPlan struct {
	Head, Body, Tail float64
	InitialVelocity  float64
	TargetVelocity   float64
	FinalVelocity    float64
	Outcome          types.RegionOutcome
	Converged        bool
}

// PlanRegions solves head/body/tail lengths (and, in the degenerate
// cases, a revised V_t or V_i) so the move of length L fits under
// max_linear_jerk (spec.md §4.3).
func PlanRegions(length, vi, vt float64, cfg config.GlobalConfig) RegionPlan {
	if length < cfg.MinLineLength {
		return RegionPlan{Outcome: types.RegionOutcomeZero, Converged: true}
	}

	tail := RegionLength(vt, 0, cfg.MaxLinearJerk)
	head := RegionLength(vt, vi, cfg.MaxLinearJerk)
	if head < cfg.RoundingError {
		head = 0
	}
	body := length - head - tail

	if body >= 0 {
		return RegionPlan{
			Head: head, Body: body, Tail: tail,
			InitialVelocity: vi, TargetVelocity: vt, FinalVelocity: 0,
			Outcome: types.RegionOutcomeThree, Converged: true,
		}
	}

	if length > tail {
		return planTwoRegion(length, vi, vt, cfg)
	}

	return planOneRegion(length, vt, cfg)
}

// planTwoRegion iteratively scales V_t down so head+tail == L, damping
// the update each pass (spec.md §4.3 step 3).
func planTwoRegion(length, vi, vt float64, cfg config.GlobalConfig) RegionPlan {
	head := RegionLength(vt, vi, cfg.MaxLinearJerk)
	tail := RegionLength(vt, 0, cfg.MaxLinearJerk)
	converged := false

	for i := 0; i < constants.RegionConvergenceIterations; i++ {
		sum := head + tail
		if sum <= 0 {
			converged = true
			break
		}
		if math.Abs(sum-length) <= cfg.RoundingError {
			converged = true
			break
		}
		vt = (vt + vt*length/sum) / 2
		head = RegionLength(vt, vi, cfg.MaxLinearJerk)
		tail = RegionLength(vt, 0, cfg.MaxLinearJerk)
	}

	if head < cfg.MinLineLength {
		return planOneRegion(length, vt, cfg)
	}

	outcome := types.RegionOutcomeTwo
	return RegionPlan{
		Head: head, Body: 0, Tail: length - head,
		InitialVelocity: vi, TargetVelocity: vt, FinalVelocity: 0,
		Outcome: outcome, Converged: converged,
	}
}

// planOneRegion iteratively reduces V_t so a tail-only decel covers the
// entire length L, absorbing moves too short to reach the requested V_i
// (spec.md §4.3 step 4).
func planOneRegion(length, vt float64, cfg config.GlobalConfig) RegionPlan {
	tail := RegionLength(vt, 0, cfg.MaxLinearJerk)
	converged := false

	for i := 0; i < constants.RegionConvergenceIterations; i++ {
		if tail <= 0 {
			converged = true
			break
		}
		if math.Abs(tail-length) <= cfg.RoundingError {
			converged = true
			break
		}
		vt = (vt + vt*length/tail) / 2
		tail = RegionLength(vt, 0, cfg.MaxLinearJerk)
	}

	return RegionPlan{
		Head: 0, Body: 0, Tail: length,
		InitialVelocity: vt, TargetVelocity: vt, FinalVelocity: 0,
		Outcome: types.RegionOutcomeOne, Converged: converged,
	}
}

// Package config holds the axis table and global tuning constants read
// by the planner and runtime at motion time (spec.md §3, §6.3). These
// are treated as read-only once a Core is constructed.
package config

import (
	"github.com/tinygcore/motion/internal/constants"
	"github.com/tinygcore/motion/internal/types"
)

// AxisConfig is one axis's static configuration (spec.md §3).
type AxisConfig struct {
	StepsPerUnit      float64
	MaxFeedRate       float64
	MaxSeekRate       float64
	DirectionPolarity int8 // +1 or -1
	Radius            float64 // for rotary-with-linear-equivalent axes; 0 otherwise
}

// DefaultAxisConfig returns a linear axis with unit polarity and no
// rotary radius.
func DefaultAxisConfig(stepsPerUnit, maxFeedRate, maxSeekRate float64) AxisConfig {
	return AxisConfig{
		StepsPerUnit:      stepsPerUnit,
		MaxFeedRate:       maxFeedRate,
		MaxSeekRate:       maxSeekRate,
		DirectionPolarity: 1,
	}
}

// ToSteps converts an absolute axis position in machine units to
// integer steps (spec.md §4.6).
func (a AxisConfig) ToSteps(units float64) int32 {
	return int32(units*a.StepsPerUnit*float64(a.DirectionPolarity) + 0.5*sign(units))
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// AxisTable is the per-axis configuration for all Axes axes.
type AxisTable [types.Axes]AxisConfig

// GlobalConfig is the process-wide tuning surface (spec.md §3, §6.3).
type GlobalConfig struct {
	MaxLinearJerk    float64
	MMPerArcSegment  float64
	MinSegmentTime   float64 // minutes
	AngularJerkLower float64
	AngularJerkUpper float64
	MinLineLength    float64
	RoundingError    float64
	MaxVelocity      float64

	PathControlMode types.PathControlMode
	ConvergenceMode types.ConvergenceMode
}

// DefaultGlobalConfig returns the defaults named in spec.md §3 and
// internal/constants.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		MaxLinearJerk:    constants.DefaultMaxLinearJerk,
		MMPerArcSegment:  constants.DefaultMMPerArcSegment,
		MinSegmentTime:   constants.DefaultMinSegmentTime.Minutes(),
		AngularJerkLower: constants.DefaultAngularJerkLower,
		AngularJerkUpper: constants.DefaultAngularJerkUpper,
		MinLineLength:    constants.DefaultMinLineLength,
		RoundingError:    constants.DefaultRoundingError,
		MaxVelocity:      constants.DefaultMaxVelocity,
		PathControlMode:  types.Continuous,
		ConvergenceMode:  types.ConvergenceLenient,
	}
}

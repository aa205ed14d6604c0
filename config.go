package motion

import (
	"github.com/tinygcore/motion/internal/config"
	"github.com/tinygcore/motion/internal/types"
)

// AxisConfig is one axis's static configuration (spec.md §3).
type AxisConfig = config.AxisConfig

// AxisTable is the per-axis configuration for all axes.
type AxisTable = config.AxisTable

// GlobalConfig is the process-wide tuning surface (spec.md §3, §6.3).
type GlobalConfig = config.GlobalConfig

// PathControlMode is the junction-blending strategy (spec.md §4.2).
type PathControlMode = types.PathControlMode

// ConvergenceMode selects strict-vs-lenient region-planner iteration
// behavior (spec.md §4.3, §9).
type ConvergenceMode = types.ConvergenceMode

const (
	Continuous = types.Continuous
	ExactPath  = types.ExactPath
	ExactStop  = types.ExactStop

	ConvergenceStrict  = types.ConvergenceStrict
	ConvergenceLenient = types.ConvergenceLenient
)

// DefaultAxisConfig returns a linear axis with unit polarity and no
// rotary radius.
func DefaultAxisConfig(stepsPerUnit, maxFeedRate, maxSeekRate float64) AxisConfig {
	return config.DefaultAxisConfig(stepsPerUnit, maxFeedRate, maxSeekRate)
}

// DefaultGlobalConfig returns the defaults named in spec.md §3.
func DefaultGlobalConfig() GlobalConfig {
	return config.DefaultGlobalConfig()
}

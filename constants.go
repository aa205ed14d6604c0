package motion

import "github.com/tinygcore/motion/internal/constants"

// Re-exported tuning defaults (spec.md §3).
const (
	DefaultMinLineLength    = constants.DefaultMinLineLength
	DefaultRoundingError    = constants.DefaultRoundingError
	DefaultMinSegmentTime   = constants.DefaultMinSegmentTime
	DefaultMMPerArcSegment  = constants.DefaultMMPerArcSegment
	DefaultAngularJerkLower = constants.DefaultAngularJerkLower
	DefaultAngularJerkUpper = constants.DefaultAngularJerkUpper
	DefaultMaxVelocity      = constants.DefaultMaxVelocity
	DefaultMaxLinearJerk    = constants.DefaultMaxLinearJerk
	MaxBuffersNeeded        = constants.MaxBuffersNeeded
	DefaultRingSize         = constants.DefaultRingSize
	DefaultAxes             = constants.DefaultAxes
)

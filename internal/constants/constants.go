// Package constants holds the motion core's compile-time defaults:
// floor values, epsilons, and buffer sizing that the planner and
// runtime packages share.
package constants

import "time"

// Floors and epsilons shared by the planner and runtime (spec.md §3).
const (
	// MinLineLength is the length floor below which a move is rejected
	// as zero-length (ZeroLengthMove) or a region is treated as absent.
	DefaultMinLineLength = 0.0001 // mm

	// RoundingError is the float epsilon used for unit-vector and
	// length-conservation comparisons.
	DefaultRoundingError = 0.0005

	// DefaultMinSegmentTime is the floor on a single jerk-ramp segment's
	// duration (spec.md §3), ~10ms.
	DefaultMinSegmentTime = 10 * time.Millisecond

	// DefaultMMPerArcSegment bounds how finely an arc is chopped into
	// line segments by the arc runtime (C3).
	DefaultMMPerArcSegment = 0.3 // mm

	// DefaultAngularJerkLower/Upper are the Continuous->ExactPath and
	// ExactPath->ExactStop downgrade thresholds (spec.md §4.2).
	DefaultAngularJerkLower = 0.20
	DefaultAngularJerkUpper = 0.70

	// DefaultMaxVelocity normalizes the angular-jerk estimate's velocity
	// term into [0,1].
	DefaultMaxVelocity = 36000.0 // mm/min

	// DefaultMaxLinearJerk is the default third-derivative bound used to
	// shape head/tail cubic velocity curves.
	DefaultMaxLinearJerk = 50_000_000.0 // mm/min^3

	// MaxBuffersNeeded is the worst case a single aline planning pass can
	// reserve: a rewritten previous tail's replacement Decel, plus this
	// move's head, body, and tail (spec.md §4.1/§4.4).
	MaxBuffersNeeded = 4

	// RegionConvergenceIterations bounds the region planner's damped
	// fixed-point iteration (spec.md §4.3/§9).
	RegionConvergenceIterations = 20
)

// DefaultRingSize is the move buffer pool's slot count. It must be able
// to hold MaxBuffersNeeded worst-case reservations plus whatever is
// still queued/running ahead of them.
const DefaultRingSize = 32

// DefaultAxes is the axis count this rewrite is exercised against
// (X, Y, Z, A), matching spec.md §3's "typically 4".
const DefaultAxes = 4

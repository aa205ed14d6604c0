// Package runtime implements the per-move-type execution functions
// (C3 arc, C4 line, C5 jerk-ramp) that the dispatcher (C8) binds to a
// running record and calls until completion, retry, or cancellation
// (spec.md §4.6–§4.9).
package runtime

import "github.com/tinygcore/motion/internal/types"

// Scratch is the runtime's shared running position: the machine's
// current absolute position, threaded across sequential moves. It is
// the one piece of state that is genuinely shared across records (as
// opposed to RunState, which lives on the record); everything else a
// runtime needs to resume across a Retry is carried on the record
// itself (spec.md §9: "global singletons -> explicit state").
type Scratch struct {
	Position types.Vector
}

// NewScratch returns a Scratch at the origin.
func NewScratch() *Scratch {
	return &Scratch{}
}

// Set overwrites the current position (spec.md §6.1 set_position).
func (s *Scratch) Set(p types.Vector) {
	s.Position = p
}

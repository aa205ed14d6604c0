package motion

import (
	"github.com/tinygcore/motion/internal/kinematics"
	"github.com/tinygcore/motion/internal/planner"
	"github.com/tinygcore/motion/internal/types"
)

// prevBufferView adapts a *types.MoveBuffer pool slot to
// internal/planner.PreviousBuffer, so the junction planner can read and
// rewrite the previous-tail record without depending on internal/queue
// (spec.md §4.1 get_prev_buffer, §4.2).
type prevBufferView struct {
	buf *types.MoveBuffer
}

// newPrevBufferView wraps buf, the slot GetPrevBuffer returned.
func newPrevBufferView(buf *types.MoveBuffer) planner.PreviousBuffer {
	return &prevBufferView{buf: buf}
}

func (v *prevBufferView) MoveTypeValue() types.MoveType          { return v.buf.MoveType }
func (v *prevBufferView) BufferStateValue() types.BufferState    { return v.buf.BufferState }
func (v *prevBufferView) StartingVelocityValue() float64         { return v.buf.StartingVelocity }
func (v *prevBufferView) UnitVecValue() types.Vector             { return v.buf.UnitVec }
func (v *prevBufferView) LengthValue() float64                   { return v.buf.Length }
func (v *prevBufferView) TargetValue() types.Vector              { return v.buf.Target }

// RewriteAsCruise converts the previous record to a constant-velocity
// Cruise in place, used when the new junction's initial velocity matches
// the previous record's velocity exactly (spec.md §4.2).
func (v *prevBufferView) RewriteAsCruise(velocity float64) {
	v.buf.MoveType = types.Cruise
	v.buf.StartingVelocity = velocity
	v.buf.EndingVelocity = velocity
}

// ShortenTailToCruise trims the previous record's geometry to newLength,
// pulling its endpoint back along its own unit vector, and converts the
// kept portion to a constant-velocity Cruise at velocity so it no longer
// decelerates to zero at the junction — the fresh Decel buffer queued to
// cover the trimmed remainder picks up from velocity down to the new
// junction's initial velocity, preserving velocity continuity across the
// rewrite (spec.md §4.2).
func (v *prevBufferView) ShortenTailToCruise(newLength, velocity float64) {
	trimmed := v.buf.Length - newLength
	v.buf.Target = kinematics.Sub(v.buf.Target, kinematics.Scale(v.buf.UnitVec, trimmed))
	v.buf.Length = newLength
	v.buf.MoveType = types.Cruise
	v.buf.StartingVelocity = velocity
	v.buf.EndingVelocity = velocity
}

// Package queue implements the move buffer pool (C2) and the
// cooperative dispatcher (C8) from spec.md §4.1 and §4.5: a fixed-size
// ring of MoveBuffer records with write-reservation, publish, and
// run-release cursors, and the per-invocation continuation loop that
// drains it into the downstream motor queue.
//
// There is no locking here by design: spec.md §5 ("Concurrency &
// Resource Model") specifies a single-threaded cooperative model where
// write cursors are touched only by planner code and the run cursor
// only by the dispatcher.
package queue

import (
	"github.com/tinygcore/motion/internal/interfaces"
	"github.com/tinygcore/motion/internal/types"
)

// Pool is the move buffer ring (C2). Slot identity is the array index
// (spec.md §9: "cyclic ring links -> index arithmetic"), not a pointer
// chain.
type Pool struct {
	slots []types.MoveBuffer

	w int // next slot to reserve for writing
	q int // next slot to publish from among reserved ones
	r int // current running slot

	gotWrite bool // true iff the most recent GetWriteBuffer has not been queued or unget
	logger   interfaces.Logger
}

// NewPool creates a ring of size slots, all Empty, with all cursors at
// slot 0 (spec.md §4.1).
func NewPool(size int, logger interfaces.Logger) *Pool {
	slots := make([]types.MoveBuffer, size)
	for i := range slots {
		slots[i] = types.MoveBuffer{Index: i, BufferState: types.Empty}
	}
	return &Pool{slots: slots, logger: logger}
}

func (p *Pool) size() int { return len(p.slots) }

func (p *Pool) advance(i int) int { return (i + 1) % p.size() }

func (p *Pool) back(i int) int { return (i - 1 + p.size()) % p.size() }

// TestWrite reports whether the next n slots starting at w are all
// Empty. It never moves cursors (spec.md §4.1).
func (p *Pool) TestWrite(n int) bool {
	if n > p.size() {
		return false
	}
	idx := p.w
	for i := 0; i < n; i++ {
		if p.slots[idx].BufferState != types.Empty {
			return false
		}
		idx = p.advance(idx)
	}
	return true
}

// GetWriteBuffer reserves the slot at w if it is Empty: zeroes it
// (preserving Index), marks it Loading, advances w, and returns it. It
// returns (nil, false) if the slot is not Empty (spec.md §4.1).
func (p *Pool) GetWriteBuffer() (*types.MoveBuffer, bool) {
	slot := &p.slots[p.w]
	if slot.BufferState != types.Empty {
		return nil, false
	}
	slot.Reset()
	slot.BufferState = types.Loading
	p.gotWrite = true
	if p.logger != nil {
		p.logger.Debugf("buffer pool: reserved slot %d for writing (w now %d)", slot.Index, p.advance(p.w))
	}
	p.w = p.advance(p.w)
	return slot, true
}

// UngetWriteBuffer releases the most-recently-reserved write slot back
// to Empty and rolls w back by one. It is only valid immediately after
// a successful GetWriteBuffer that has not yet been queued (spec.md
// §4.1, §7: used to release a reserved-but-unqueued buffer on
// ZeroLengthMove).
func (p *Pool) UngetWriteBuffer() {
	if !p.gotWrite {
		return
	}
	p.w = p.back(p.w)
	p.slots[p.w].Reset()
	p.gotWrite = false
	if p.logger != nil {
		p.logger.Debugf("buffer pool: ungot slot %d (w now %d)", p.slots[p.w].Index, p.w)
	}
}

// QueueWriteBuffer publishes the slot at q as Queued with the given
// move type and MoveState New, and advances q (spec.md §4.1).
func (p *Pool) QueueWriteBuffer(moveType types.MoveType) *types.MoveBuffer {
	slot := &p.slots[p.q]
	slot.BufferState = types.Queued
	slot.MoveType = moveType
	slot.MoveState = types.New
	p.gotWrite = false
	if p.logger != nil {
		p.logger.Debugf("buffer pool: queued slot %d as %s", slot.Index, moveType)
	}
	p.q = p.advance(p.q)
	return slot
}

// GetPrevBuffer returns the slot immediately before w: the most
// recently queued or still-loading predecessor, used by the junction
// planner for look-back (spec.md §4.1).
func (p *Pool) GetPrevBuffer() *types.MoveBuffer {
	return &p.slots[p.back(p.w)]
}

// GetRunBuffer returns the slot at r if it is Queued (promoting it to
// Running) or already Running, else (nil, false). It does not advance r
// — only EndRunBuffer does that (spec.md §4.1, §4.5).
func (p *Pool) GetRunBuffer() (*types.MoveBuffer, bool) {
	slot := &p.slots[p.r]
	switch slot.BufferState {
	case types.Queued:
		slot.BufferState = types.Running
		return slot, true
	case types.Running:
		return slot, true
	default:
		return nil, false
	}
}

// EndRunBuffer marks the slot at r Empty and advances r (spec.md §4.1).
func (p *Pool) EndRunBuffer() {
	slot := &p.slots[p.r]
	slot.Reset()
	if p.logger != nil {
		p.logger.Debugf("buffer pool: released slot %d (r now %d)", slot.Index, p.advance(p.r))
	}
	p.r = p.advance(p.r)
}

// Idle reports whether the pool holds no work: the run, publish, and
// write cursors coincide (spec.md §8 invariant 5: "r == w == q").
func (p *Pool) Idle() bool {
	return p.r == p.w && p.w == p.q
}

// SlotSnapshot is a read-only view of one occupied slot, for tests and
// diagnostics that need to observe queue contents without touching
// cursors (spec.md §8: testable properties over sequences of Queued
// records).
type SlotSnapshot struct {
	MoveType         types.MoveType
	BufferState      types.BufferState
	Length           float64
	StartingVelocity float64
	EndingVelocity   float64
	Target           types.Vector
}

// Snapshot returns every non-Empty slot from r up to (but not including)
// q, in FIFO order: the records currently running or waiting to run.
func (p *Pool) Snapshot() []SlotSnapshot {
	var out []SlotSnapshot
	for i := p.r; i != p.q; i = p.advance(i) {
		slot := p.slots[i]
		if slot.BufferState == types.Empty {
			continue
		}
		out = append(out, SlotSnapshot{
			MoveType:         slot.MoveType,
			BufferState:      slot.BufferState,
			Length:           slot.Length,
			StartingVelocity: slot.StartingVelocity,
			EndingVelocity:   slot.EndingVelocity,
			Target:           slot.Target,
		})
	}
	return out
}

// Package motorsim provides an in-memory C1 (motor queue) implementation
// for tests and the demo CLI: a capacity-bounded ring of pulse-segment
// records, adapted from the teacher's sharded in-memory backend (shape
// only — single mutex here, since the motion core is itself
// single-threaded per spec.md §5).
package motorsim

import (
	"fmt"
	"sync"

	"github.com/tinygcore/motion/internal/interfaces"
)

// Segment is one recorded pulse-segment or timed-wait record handed to
// C1 (spec.md §2: "(Δsteps[axes], duration_µs) and timed waits").
type Segment struct {
	Kind         string // "line", "dwell", "start", "stop", "end"
	Steps        interfaces.Steps
	Microseconds uint32
}

// Queue is a bounded in-memory recorder standing in for the real
// stepper-driver ISR queue (C1). Segments accumulate in Records until
// Drain removes them, simulating the downstream ISR consuming at its own
// pace.
type Queue struct {
	mu       sync.Mutex
	capacity int
	records  []Segment
}

// NewQueue returns a Queue with room for capacity outstanding segments
// before TestMotorBuffer reports full.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{capacity: capacity}
}

// TestMotorBuffer reports whether there is room for one more segment
// (spec.md §4.5: "poll downstream capacity... if full, return Retry").
func (q *Queue) TestMotorBuffer() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.records) < q.capacity
}

// QueueLine records a pulse-segment for steps/microseconds.
func (q *Queue) QueueLine(steps interfaces.Steps, microseconds uint32) error {
	return q.push(Segment{Kind: "line", Steps: steps, Microseconds: microseconds})
}

// QueueDwell records a timed wait.
func (q *Queue) QueueDwell(microseconds uint32) error {
	return q.push(Segment{Kind: "dwell", Microseconds: microseconds})
}

// QueueStops records a generic stop-family record under kind.
func (q *Queue) QueueStops(kind string) error {
	return q.push(Segment{Kind: kind})
}

// Stop records a feed-hold stop record.
func (q *Queue) Stop() error { return q.push(Segment{Kind: "stop"}) }

// Start records a resume-from-hold record.
func (q *Queue) Start() error { return q.push(Segment{Kind: "start"}) }

// End records a program-end record.
func (q *Queue) End() error { return q.push(Segment{Kind: "end"}) }

func (q *Queue) push(seg Segment) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.records) >= q.capacity {
		return fmt.Errorf("motorsim: queue full at capacity %d", q.capacity)
	}
	q.records = append(q.records, seg)
	return nil
}

// Drain removes and returns every recorded segment, simulating the ISR
// consuming the queue in one pass.
func (q *Queue) Drain() []Segment {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.records
	q.records = nil
	return out
}

// Len reports the number of outstanding recorded segments.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.records)
}

// Stats reports simple counters for the demo CLI and tests, in the
// teacher's map[string]interface{} convention.
func (q *Queue) Stats() map[string]interface{} {
	q.mu.Lock()
	defer q.mu.Unlock()
	return map[string]interface{}{
		"capacity":  q.capacity,
		"occupancy": len(q.records),
	}
}

var _ interfaces.MotorQueue = (*Queue)(nil)

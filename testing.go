package motion

import (
	"sync"

	"github.com/tinygcore/motion/internal/interfaces"
)

// MockMotorQueue is a test double for the downstream C1 motor queue. It
// implements interfaces.MotorQueue, records every call for assertions,
// and can be made to report full on demand (spec.md §9 ambient stack,
// adapted from the teacher's MockBackend call-tracking convention).
type MockMotorQueue struct {
	mu sync.Mutex

	full bool

	lineCalls  int
	dwellCalls int
	stopsCalls int
	startCalls int
	stopCalls  int
	endCalls   int

	lineSteps []interfaces.Steps
	lineMicro []uint32
}

// NewMockMotorQueue returns an always-ready mock motor queue.
func NewMockMotorQueue() *MockMotorQueue {
	return &MockMotorQueue{}
}

// SetFull controls whether TestMotorBuffer reports capacity.
func (m *MockMotorQueue) SetFull(full bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.full = full
}

func (m *MockMotorQueue) TestMotorBuffer() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.full
}

func (m *MockMotorQueue) QueueLine(steps interfaces.Steps, microseconds uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lineCalls++
	m.lineSteps = append(m.lineSteps, steps)
	m.lineMicro = append(m.lineMicro, microseconds)
	return nil
}

func (m *MockMotorQueue) QueueDwell(microseconds uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dwellCalls++
	return nil
}

func (m *MockMotorQueue) QueueStops(kind string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopsCalls++
	return nil
}

func (m *MockMotorQueue) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
	return nil
}

func (m *MockMotorQueue) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startCalls++
	return nil
}

func (m *MockMotorQueue) End() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.endCalls++
	return nil
}

// CallCounts returns how many times each motor queue method was called,
// in the teacher's map[string]int convention.
func (m *MockMotorQueue) CallCounts() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]int{
		"line":  m.lineCalls,
		"dwell": m.dwellCalls,
		"stops": m.stopsCalls,
		"start": m.startCalls,
		"stop":  m.stopCalls,
		"end":   m.endCalls,
	}
}

// LineSegments returns a copy of every (steps, microseconds) pair passed
// to QueueLine so far, in call order.
func (m *MockMotorQueue) LineSegments() ([]interfaces.Steps, []uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	steps := make([]interfaces.Steps, len(m.lineSteps))
	copy(steps, m.lineSteps)
	micros := make([]uint32, len(m.lineMicro))
	copy(micros, m.lineMicro)
	return steps, micros
}

// Reset clears all call counters and recorded segments.
func (m *MockMotorQueue) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lineCalls, m.dwellCalls, m.stopsCalls = 0, 0, 0
	m.startCalls, m.stopCalls, m.endCalls = 0, 0, 0
	m.lineSteps, m.lineMicro = nil, nil
}

var _ interfaces.MotorQueue = (*MockMotorQueue)(nil)

// Package gpiostep implements C1, the downstream motor queue, over real
// step/direction GPIO pins via periph.io (spec.md §6.2, §11). It is the
// hardware counterpart to internal/motorsim's in-memory recorder: same
// interfaces.MotorQueue surface, real pulses instead of recorded
// segments.
package gpiostep

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/tinygcore/motion/internal/interfaces"
)

// AxisPins names the step and direction pins driving one axis.
type AxisPins struct {
	Step      string // e.g. "GPIO17"
	Direction string // e.g. "GPIO27"
}

// axisDriver holds the resolved gpio.PinIO handles for one axis.
type axisDriver struct {
	step gpio.PinIO
	dir  gpio.PinIO
}

// Queue drives axis step/dir pins directly, implementing
// interfaces.MotorQueue against real hardware. Host() must be called
// once, process-wide, before NewQueue. cmd/tinyg-sim selects it with its
// -gpio command-line flag.
type Queue struct {
	mu     sync.Mutex
	axes   []axisDriver
	halted bool

	// PulseWidth is the high-time of each step pulse; most stepper
	// drivers need at least a few microseconds.
	PulseWidth time.Duration
}

// Host initializes the periph.io host drivers. Call once at process
// startup before NewQueue.
func Host() error {
	_, err := host.Init()
	if err != nil {
		return fmt.Errorf("gpiostep: host init: %w", err)
	}
	return nil
}

// NewQueue resolves pins and returns a Queue ready to drive them. axes
// must be in the same order as the motion core's AxisTable.
func NewQueue(axes []AxisPins) (*Queue, error) {
	drivers := make([]axisDriver, len(axes))
	for i, a := range axes {
		step := gpioreg.ByName(a.Step)
		if step == nil {
			return nil, fmt.Errorf("gpiostep: unknown step pin %q", a.Step)
		}
		dir := gpioreg.ByName(a.Direction)
		if dir == nil {
			return nil, fmt.Errorf("gpiostep: unknown direction pin %q", a.Direction)
		}
		if err := step.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("gpiostep: init step pin %q: %w", a.Step, err)
		}
		if err := dir.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("gpiostep: init direction pin %q: %w", a.Direction, err)
		}
		drivers[i] = axisDriver{step: step, dir: dir}
	}
	return &Queue{axes: drivers, PulseWidth: 5 * time.Microsecond}, nil
}

// TestMotorBuffer reports ready unless the queue is halted (by Stop or
// End): this synchronous driver has no ISR backlog to poll, so capacity
// is never the reason it reports not ready (spec.md §4.5).
func (q *Queue) TestMotorBuffer() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return !q.halted
}

// QueueLine pulses each axis' step pin |steps[axis]| times, toggling
// direction first, spread evenly across microseconds.
func (q *Queue) QueueLine(steps interfaces.Steps, microseconds uint32) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.halted {
		return fmt.Errorf("gpiostep: queue halted")
	}

	maxSteps := int32(0)
	for _, s := range steps {
		if abs32(s) > maxSteps {
			maxSteps = abs32(s)
		}
	}
	if maxSteps == 0 {
		return nil
	}
	interval := time.Duration(microseconds) * time.Microsecond / time.Duration(maxSteps)

	for i, driver := range q.axes {
		n := steps[i]
		if n == 0 {
			continue
		}
		level := gpio.High
		if n < 0 {
			level = gpio.Low
		}
		if err := driver.dir.Out(level); err != nil {
			return fmt.Errorf("gpiostep: set direction: %w", err)
		}
	}

	remaining := make([]int32, len(q.axes))
	for i := range remaining {
		remaining[i] = abs32(steps[i])
	}
	for step := int32(0); step < maxSteps; step++ {
		for i, driver := range q.axes {
			if remaining[i] <= 0 {
				continue
			}
			if err := driver.step.Out(gpio.High); err != nil {
				return fmt.Errorf("gpiostep: pulse high: %w", err)
			}
		}
		time.Sleep(q.PulseWidth)
		for i, driver := range q.axes {
			if remaining[i] <= 0 {
				continue
			}
			if err := driver.step.Out(gpio.Low); err != nil {
				return fmt.Errorf("gpiostep: pulse low: %w", err)
			}
			remaining[i]--
		}
		time.Sleep(interval)
	}
	return nil
}

// QueueDwell sleeps for microseconds, holding position.
func (q *Queue) QueueDwell(microseconds uint32) error {
	time.Sleep(time.Duration(microseconds) * time.Microsecond)
	return nil
}

// QueueStops is a no-op passthrough; real stop-family control happens
// via Stop/Start/End.
func (q *Queue) QueueStops(kind string) error { return nil }

// Stop halts pulse emission until Start is called.
func (q *Queue) Stop() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.halted = true
	return nil
}

// Start resumes pulse emission.
func (q *Queue) Start() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.halted = false
	return nil
}

// End halts the queue exactly as Stop does (no distinction at the GPIO
// level); Start resumes it.
func (q *Queue) End() error {
	return q.Stop()
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

var _ interfaces.MotorQueue = (*Queue)(nil)

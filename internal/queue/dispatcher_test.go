package queue

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinygcore/motion/internal/config"
	"github.com/tinygcore/motion/internal/interfaces"
	"github.com/tinygcore/motion/internal/types"
)

type fakeMotor struct {
	full      bool
	lineCalls int
	started   bool
	stopped   bool
	ended     bool
}

func (m *fakeMotor) TestMotorBuffer() bool { return !m.full }
func (m *fakeMotor) QueueLine(steps interfaces.Steps, microseconds uint32) error {
	m.lineCalls++
	return nil
}
func (m *fakeMotor) QueueDwell(microseconds uint32) error { return nil }
func (m *fakeMotor) QueueStops(kind string) error         { return nil }
func (m *fakeMotor) Stop() error                          { m.stopped = true; return nil }
func (m *fakeMotor) Start() error                         { m.started = true; return nil }
func (m *fakeMotor) End() error                           { m.ended = true; return nil }

func testAxes() config.AxisTable {
	var axes config.AxisTable
	for i := range axes {
		axes[i] = config.DefaultAxisConfig(100, 10000, 20000)
	}
	return axes
}

func TestDispatcherTickNoOpWhenNothingQueued(t *testing.T) {
	pool := NewPool(4, nil)
	motor := &fakeMotor{}
	d := NewDispatcher(pool, config.DefaultGlobalConfig(), testAxes(), motor, nil)

	status, err := d.Tick()
	require.NoError(t, err)
	require.Equal(t, types.NoOp, status)
	require.False(t, d.IsBusy())
}

func TestDispatcherRunsLineToCompletionAndReleasesSlot(t *testing.T) {
	pool := NewPool(4, nil)
	motor := &fakeMotor{}
	d := NewDispatcher(pool, config.DefaultGlobalConfig(), testAxes(), motor, nil)

	buf, _ := pool.GetWriteBuffer()
	buf.Target = types.Vector{10, 0, 0, 0}
	buf.Time = 0.01
	pool.QueueWriteBuffer(types.Line)

	require.True(t, d.IsBusy())

	status, err := d.Tick()
	require.NoError(t, err)
	require.Equal(t, types.Ok, status)
	require.Equal(t, 1, motor.lineCalls)
	require.False(t, d.IsBusy())
}

func TestDispatcherRetriesWithoutReleasingWhenMotorFull(t *testing.T) {
	pool := NewPool(4, nil)
	motor := &fakeMotor{full: true}
	d := NewDispatcher(pool, config.DefaultGlobalConfig(), testAxes(), motor, nil)

	buf, _ := pool.GetWriteBuffer()
	buf.Target = types.Vector{10, 0, 0, 0}
	buf.Time = 0.01
	pool.QueueWriteBuffer(types.Line)

	status, err := d.Tick()
	require.NoError(t, err)
	require.Equal(t, types.Retry, status)
	require.True(t, d.IsBusy())
}

func TestDispatcherKillForceEndsRunningRecord(t *testing.T) {
	pool := NewPool(4, nil)
	motor := &fakeMotor{}
	d := NewDispatcher(pool, config.DefaultGlobalConfig(), testAxes(), motor, nil)

	buf, _ := pool.GetWriteBuffer()
	buf.Target = types.Vector{10, 0, 0, 0}
	buf.Time = 0.01
	pool.QueueWriteBuffer(types.Line)

	d.RequestKill()
	status, err := d.Tick()
	require.NoError(t, err)
	require.Equal(t, types.Ok, status)
	require.Equal(t, 0, motor.lineCalls)
	require.False(t, d.IsBusy())
}

func TestDispatcherRunsStopFamilyRecord(t *testing.T) {
	pool := NewPool(4, nil)
	motor := &fakeMotor{}
	d := NewDispatcher(pool, config.DefaultGlobalConfig(), testAxes(), motor, nil)

	_, _ = pool.GetWriteBuffer()
	pool.QueueWriteBuffer(types.Start)

	status, err := d.Tick()
	require.NoError(t, err)
	require.Equal(t, types.Ok, status)
	require.True(t, motor.started)
}

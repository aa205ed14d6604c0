package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinygcore/motion/internal/types"
)

type stopRecordingMotor struct {
	recordingMotor
	started, stopped, ended bool
	dwellMicros             uint32
}

func (m *stopRecordingMotor) Start() error       { m.started = true; return nil }
func (m *stopRecordingMotor) Stop() error        { m.stopped = true; return nil }
func (m *stopRecordingMotor) End() error         { m.ended = true; return nil }
func (m *stopRecordingMotor) QueueDwell(microseconds uint32) error {
	m.dwellMicros = microseconds
	return nil
}

func TestRunDwellEmitsMicrosecondRecord(t *testing.T) {
	buf := &types.MoveBuffer{MoveType: types.Dwell, Time: 0.25}
	motor := &stopRecordingMotor{}

	status, err := RunDwell(buf, motor)
	require.NoError(t, err)
	require.Equal(t, types.Ok, status)
	require.EqualValues(t, 250000, motor.dwellMicros)
}

func TestRunFlowDispatchesToMatchingMotorCall(t *testing.T) {
	for _, tc := range []struct {
		moveType types.MoveType
		check    func(*stopRecordingMotor) bool
	}{
		{types.Start, func(m *stopRecordingMotor) bool { return m.started }},
		{types.Stop, func(m *stopRecordingMotor) bool { return m.stopped }},
		{types.End, func(m *stopRecordingMotor) bool { return m.ended }},
	} {
		buf := &types.MoveBuffer{MoveType: tc.moveType}
		motor := &stopRecordingMotor{}

		status, err := RunFlow(buf, motor)
		require.NoError(t, err)
		require.Equal(t, types.Ok, status)
		require.True(t, tc.check(motor))
	}
}

func TestRunFlowRetriesWhenMotorFull(t *testing.T) {
	buf := &types.MoveBuffer{MoveType: types.Stop}
	motor := &stopRecordingMotor{recordingMotor: recordingMotor{full: true}}

	status, err := RunFlow(buf, motor)
	require.NoError(t, err)
	require.Equal(t, types.Retry, status)
	require.False(t, motor.stopped)
}

package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinygcore/motion/internal/types"
)

func TestRunLineQueuesOneSegmentAndAdvancesPosition(t *testing.T) {
	buf := &types.MoveBuffer{
		MoveType: types.Line,
		Target:   types.Vector{10, 20, 0, 0},
		Time:     0.01,
	}
	scratch := NewScratch()
	motor := &recordingMotor{}
	axes := testAxes()

	status, err := RunLine(buf, scratch, axes, motor)
	require.NoError(t, err)
	require.Equal(t, types.Ok, status)
	require.Len(t, motor.calls, 1)
	require.Equal(t, buf.Target, scratch.Position)
}

func TestRunLineRetriesWhenMotorFull(t *testing.T) {
	buf := &types.MoveBuffer{
		MoveType: types.Line,
		Target:   types.Vector{10, 0, 0, 0},
		Time:     0.01,
	}
	scratch := NewScratch()
	motor := &recordingMotor{full: true}
	axes := testAxes()

	status, err := RunLine(buf, scratch, axes, motor)
	require.NoError(t, err)
	require.Equal(t, types.Retry, status)
	require.Empty(t, motor.calls)
	require.Equal(t, types.Vector{}, scratch.Position)
}

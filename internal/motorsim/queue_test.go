package motorsim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinygcore/motion/internal/interfaces"
)

func TestQueueReportsFullAtCapacity(t *testing.T) {
	q := NewQueue(2)
	require.True(t, q.TestMotorBuffer())

	require.NoError(t, q.QueueLine(interfaces.Steps{1, 0, 0, 0}, 100))
	require.True(t, q.TestMotorBuffer())

	require.NoError(t, q.QueueLine(interfaces.Steps{1, 0, 0, 0}, 100))
	require.False(t, q.TestMotorBuffer())

	require.Error(t, q.QueueLine(interfaces.Steps{1, 0, 0, 0}, 100))
}

func TestQueueDrainEmptiesRecords(t *testing.T) {
	q := NewQueue(4)
	require.NoError(t, q.QueueDwell(250000))
	require.NoError(t, q.QueueStops("start"))

	segs := q.Drain()
	require.Len(t, segs, 2)
	require.Equal(t, "dwell", segs[0].Kind)
	require.EqualValues(t, 250000, segs[0].Microseconds)
	require.Zero(t, q.Len())
}

func TestQueueStartStopEndRecordKinds(t *testing.T) {
	q := NewQueue(4)
	require.NoError(t, q.Start())
	require.NoError(t, q.Stop())
	require.NoError(t, q.End())

	segs := q.Drain()
	require.Len(t, segs, 3)
	require.Equal(t, "start", segs[0].Kind)
	require.Equal(t, "stop", segs[1].Kind)
	require.Equal(t, "end", segs[2].Kind)
}

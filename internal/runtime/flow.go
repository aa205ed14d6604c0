package runtime

import (
	"github.com/tinygcore/motion/internal/interfaces"
	"github.com/tinygcore/motion/internal/types"
)

// RunDwell emits one downstream dwell record for seconds·10⁶ microseconds
// and completes (spec.md §4.9).
func RunDwell(buf *types.MoveBuffer, motor interfaces.MotorQueue) (types.Status, error) {
	if !motor.TestMotorBuffer() {
		return types.Retry, nil
	}

	microseconds := uint32(buf.Time * 1_000_000)
	if err := motor.QueueDwell(microseconds); err != nil {
		return types.Err, err
	}
	return types.Ok, nil
}

// RunFlow emits one stop-family record (Start, Stop, or End) downstream
// and completes (spec.md §4.9).
func RunFlow(buf *types.MoveBuffer, motor interfaces.MotorQueue) (types.Status, error) {
	if !motor.TestMotorBuffer() {
		return types.Retry, nil
	}

	var err error
	switch buf.MoveType {
	case types.Start:
		err = motor.Start()
	case types.Stop:
		err = motor.Stop()
	case types.End:
		err = motor.End()
	default:
		err = motor.QueueStops(buf.MoveType.String())
	}
	if err != nil {
		return types.Err, err
	}
	return types.Ok, nil
}

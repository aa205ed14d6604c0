package runtime

import (
	"github.com/tinygcore/motion/internal/config"
	"github.com/tinygcore/motion/internal/interfaces"
	"github.com/tinygcore/motion/internal/types"
)

// RunLine executes a simple (non-jerk-planned) line as a single segment
// (spec.md §4.6, C4).
func RunLine(buf *types.MoveBuffer, scratch *Scratch, axes config.AxisTable, motor interfaces.MotorQueue) (types.Status, error) {
	if !motor.TestMotorBuffer() {
		return types.Retry, nil
	}

	steps := stepsBetween(axes, scratch.Position, buf.Target)
	microseconds := uint32(buf.Time * minutesToMicros)

	if err := motor.QueueLine(steps, microseconds); err != nil {
		return types.Err, err
	}

	scratch.Position = buf.Target
	return types.Ok, nil
}

package runtime

import (
	"math"

	"github.com/tinygcore/motion/internal/config"
	"github.com/tinygcore/motion/internal/interfaces"
	"github.com/tinygcore/motion/internal/types"
)

// RunArc chops a queued arc record into N short straight segments along
// the plane's circle, advancing the linear axis by an equal fraction
// each call (spec.md §4.7, C3).
func RunArc(buf *types.MoveBuffer, scratch *Scratch, cfg config.GlobalConfig, axes config.AxisTable, motor interfaces.MotorQueue) (types.Status, error) {
	if !motor.TestMotorBuffer() {
		return types.Retry, nil
	}

	if buf.MoveState == types.New {
		initArc(buf, scratch, cfg)
		buf.MoveState = types.Running1
	}

	if buf.Run.SegmentsRemaining <= 0 {
		scratch.Position = buf.Target
		return types.Ok, nil
	}

	buf.Run.Theta += buf.Run.DeltaTheta
	planar := types.Vector{}
	planar[buf.Axis1] = buf.Run.Center1 + math.Sin(buf.Run.Theta)*buf.Radius
	planar[buf.Axis2] = buf.Run.Center2 + math.Cos(buf.Run.Theta)*buf.Radius

	target := scratch.Position
	target[buf.Axis1] = planar[buf.Axis1]
	target[buf.Axis2] = planar[buf.Axis2]
	target[buf.AxisLinear] = scratch.Position[buf.AxisLinear] + buf.Run.DeltaLinear

	steps := stepsBetween(axes, scratch.Position, target)
	if err := motor.QueueLine(steps, buf.Run.SegmentMicros); err != nil {
		return types.Err, err
	}

	scratch.Position = target
	buf.Run.SegmentsRemaining--

	if buf.Run.SegmentsRemaining > 0 {
		return types.Retry, nil
	}

	scratch.Position = buf.Target
	return types.Ok, nil
}

// initArc computes the per-segment angular and linear increments and the
// plane's centre point from the arc's starting position (spec.md §4.7).
func initArc(buf *types.MoveBuffer, scratch *Scratch, cfg config.GlobalConfig) {
	n := int(math.Ceil(buf.Length / cfg.MMPerArcSegment))
	if n < 1 {
		n = 1
	}

	deltaTheta := buf.AngularTravel / float64(n)
	deltaLinear := buf.LinearTravel / float64(n)
	segmentMicros := uint32(buf.Time / float64(n) * minutesToMicros)

	theta := buf.Theta
	center1 := scratch.Position[buf.Axis1] - math.Sin(theta)*buf.Radius
	center2 := scratch.Position[buf.Axis2] - math.Cos(theta)*buf.Radius

	buf.Run = types.RunState{
		Initialized:       true,
		SegmentsRemaining: n,
		Theta:             theta,
		DeltaTheta:        deltaTheta,
		DeltaLinear:       deltaLinear,
		Center1:           center1,
		Center2:           center2,
		SegmentMicros:     segmentMicros,
	}
}

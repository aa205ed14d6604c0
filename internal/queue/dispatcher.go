package queue

import (
	"github.com/tinygcore/motion/internal/config"
	"github.com/tinygcore/motion/internal/interfaces"
	"github.com/tinygcore/motion/internal/runtime"
	"github.com/tinygcore/motion/internal/types"
)

// Dispatcher is the cooperative continuation loop (C8, spec.md §4.5): it
// picks the currently running record and, on every tick, calls the
// runtime function selected by the record's MoveType, until that
// function signals completion, a retry, or a cancellation.
type Dispatcher struct {
	pool    *Pool
	scratch *runtime.Scratch
	cfg     config.GlobalConfig
	axes    config.AxisTable
	motor   interfaces.MotorQueue
	logger  interfaces.Logger

	kill bool
}

// NewDispatcher builds a dispatcher over pool, driving motor through the
// given axis table and global tuning config.
func NewDispatcher(pool *Pool, cfg config.GlobalConfig, axes config.AxisTable, motor interfaces.MotorQueue, logger interfaces.Logger) *Dispatcher {
	return &Dispatcher{
		pool:    pool,
		scratch: runtime.NewScratch(),
		cfg:     cfg,
		axes:    axes,
		motor:   motor,
		logger:  logger,
	}
}

// Scratch exposes the dispatcher's shared running position, so callers
// can seed it (spec.md §6.1 set_position) before any motion is queued.
func (d *Dispatcher) Scratch() *runtime.Scratch { return d.scratch }

// RequestKill arms the async-kill path: the next Tick tears down the
// currently running record instead of continuing it (spec.md §4.9
// AsyncEnd, §4.5 step 2).
func (d *Dispatcher) RequestKill() { d.kill = true }

// Tick runs one dispatcher invocation (spec.md §4.5):
//  1. If there is no running record, return NoOp.
//  2. If a kill was requested, force-end the current record and release it.
//  3. Select the runtime function by the record's MoveType (no binding
//     is stored between ticks).
//  4. Call that runtime; on Retry, return Retry without advancing
//     the queue; otherwise release the slot and return the runtime's
//     status.
func (d *Dispatcher) Tick() (types.Status, error) {
	buf, ok := d.pool.GetRunBuffer()
	if !ok {
		return types.NoOp, nil
	}

	if d.kill {
		d.kill = false
		buf.MoveState = types.ForceEnd
		d.pool.EndRunBuffer()
		if d.logger != nil {
			d.logger.Warnf("dispatcher: force-ended slot %d", buf.Index)
		}
		return types.Ok, nil
	}

	status, err := d.runBound(buf)
	if status == types.Retry {
		return types.Retry, err
	}

	d.pool.EndRunBuffer()
	return status, err
}

// runBound calls the runtime function for buf.MoveType (spec.md §4.5
// "Runtime per type").
func (d *Dispatcher) runBound(buf *types.MoveBuffer) (types.Status, error) {
	switch buf.MoveType {
	case types.Line:
		return runtime.RunLine(buf, d.scratch, d.axes, d.motor)
	case types.Arc:
		return runtime.RunArc(buf, d.scratch, d.cfg, d.axes, d.motor)
	case types.Accel, types.Decel:
		return runtime.RunRamp(buf, d.scratch, d.cfg, d.axes, d.motor)
	case types.Cruise:
		return runtime.RunCruise(buf, d.scratch, d.axes, d.motor)
	case types.Dwell:
		return runtime.RunDwell(buf, d.motor)
	case types.Start, types.Stop, types.End:
		return runtime.RunFlow(buf, d.motor)
	default:
		return types.Err, types.Err
	}
}

// IsBusy reports whether the dispatcher has a record to run or the pool
// holds queued work (spec.md §6.1 is_busy).
func (d *Dispatcher) IsBusy() bool {
	return !d.pool.Idle()
}

package runtime

import (
	"github.com/tinygcore/motion/internal/config"
	"github.com/tinygcore/motion/internal/interfaces"
	"github.com/tinygcore/motion/internal/types"
)

// stepsBetween converts a from->to absolute-position move into the
// per-axis integer step delta C1 consumes (spec.md §4.6).
func stepsBetween(axes config.AxisTable, from, to types.Vector) interfaces.Steps {
	var out interfaces.Steps
	for i := 0; i < types.Axes; i++ {
		out[i] = axes[i].ToSteps(to[i]) - axes[i].ToSteps(from[i])
	}
	return out
}

const minutesToMicros = 60_000_000.0

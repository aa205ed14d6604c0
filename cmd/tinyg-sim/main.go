// Command tinyg-sim drives a motion.Core through a small hardcoded move
// program and logs, at debug level, each dispatch tick that completes a
// record, the way a host controller
// loop would (spec.md §9: "dispatch loop is an external collaborator").
package main

import (
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sys/unix"

	"github.com/tinygcore/motion"
	"github.com/tinygcore/motion/internal/gpiostep"
	"github.com/tinygcore/motion/internal/interfaces"
	"github.com/tinygcore/motion/internal/logging"
	"github.com/tinygcore/motion/internal/motorsim"
	"github.com/tinygcore/motion/internal/types"
)

func main() {
	var (
		verbose    = flag.Bool("v", false, "verbose (debug-level) logging")
		metricsAddr = flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
		useGPIO    = flag.Bool("gpio", false, "drive real GPIO step/dir pins instead of the in-memory simulator")
		cpu        = flag.Int("cpu", -1, "pin the dispatch loop to this CPU index (-1 disables affinity)")
	)
	flag.Parse()

	logConfig := logging.DefaultConfig()
	if *verbose {
		logConfig.Level = logging.LevelDebug
	}
	logger := logging.NewLogger(logConfig)
	logging.SetDefault(logger)

	var motorQueue interfaces.MotorQueue
	if *useGPIO {
		if err := gpiostep.Host(); err != nil {
			logger.Error("gpio host init failed", "error", err)
			os.Exit(1)
		}
		queue, err := gpiostep.NewQueue([]gpiostep.AxisPins{
			{Step: "GPIO17", Direction: "GPIO27"},
			{Step: "GPIO22", Direction: "GPIO23"},
			{Step: "GPIO24", Direction: "GPIO25"},
			{Step: "GPIO5", Direction: "GPIO6"},
		})
		if err != nil {
			logger.Error("gpio queue init failed", "error", err)
			os.Exit(1)
		}
		motorQueue = queue
		logger.Info("driving real GPIO step/dir pins")
	} else {
		motorQueue = motorsim.NewQueue(64)
		logger.Info("driving the in-memory motor simulator")
	}

	metrics := motion.NewMetrics()
	observer := motion.NewMetricsObserver(metrics)

	if *metricsAddr != "" {
		registry := prometheus.NewRegistry()
		registry.MustRegister(motion.NewTelemetryCollector(metrics))
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
			logger.Info("serving metrics", "addr", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	cfg := motion.DefaultGlobalConfig()
	cfg.MaxLinearJerk = 5e7
	var axes motion.AxisTable
	for i := range axes {
		axes[i] = motion.DefaultAxisConfig(100, 6000, 10000)
	}

	core := motion.New(32, cfg, axes, motorQueue, logger, observer)

	pinDispatchLoop(*cpu, logger)
	runProgram(core, logger)

	logger.Info("program complete", "position", fmt.Sprintf("%v", core.Position()))
	logger.Info("segments by type", "counts", metrics.SegmentCounts())
}

// pinDispatchLoop locks this goroutine to its OS thread and optionally
// sets CPU affinity, for jitter-free dispatch timing (spec.md §11,
// adapted from this codebase's queue runner affinity pattern).
func pinDispatchLoop(cpu int, logger *logging.Logger) {
	runtime.LockOSThread()
	if cpu < 0 {
		return
	}
	var mask unix.CPUSet
	mask.Set(cpu)
	if err := unix.SchedSetaffinity(0, &mask); err != nil {
		logger.Printf("failed to set CPU affinity to CPU %d: %v", cpu, err)
		return
	}
	logger.Debugf("pinned dispatch loop to CPU %d", cpu)
}

// runProgram feeds a handful of moves covering the spec's concrete
// scenarios through core, ticking Dispatch until the queue drains after
// each one.
func runProgram(core *motion.Core, logger *logging.Logger) {
	type move struct {
		name string
		run  func() (motion.Status, error)
	}

	program := []move{
		{"line to (10,0,0,0)", func() (motion.Status, error) {
			return core.Aline(types.Vector{10, 0, 0, 0}, 0.1)
		}},
		{"short follow-on to (10.3,0,0,0)", func() (motion.Status, error) {
			return core.Aline(types.Vector{10.3, 0, 0, 0}, 0.01)
		}},
		{"90-degree corner to (10.3,10,0,0)", func() (motion.Status, error) {
			return core.Aline(types.Vector{10.3, 10, 0, 0}, 0.1)
		}},
		{"quarter-circle arc", func() (motion.Status, error) {
			return core.Arc(types.Vector{20.3, 20, 0, 0}, -math.Pi/2, 10, math.Pi/2, 0, 0, 1, 2, 0.5)
		}},
		{"dwell 0.25s", func() (motion.Status, error) {
			return core.Dwell(0.25)
		}},
	}

	for _, m := range program {
		status, err := m.run()
		if err != nil {
			logger.Error("move failed", "name", m.name, "error", err)
			continue
		}
		logger.Info("queued move", "name", m.name, "status", string(status))
		drainDispatch(core, logger)
	}
}

func drainDispatch(core *motion.Core, logger *logging.Logger) {
	for core.IsBusy() {
		status, err := core.Dispatch(false)
		if err != nil {
			logger.Error("dispatch failed", "error", err)
			return
		}
		if status == motion.Ok {
			logger.Debugf("segment dispatched")
		}
	}
}

// Package pipeline owns the stage list, issues monotonically increasing
// frame ids, spawns and joins worker goroutines, and drives each frame
// through every policy executor in declaration order.
package pipeline

import (
	"errors"
	"math"
	"runtime"

	"go.uber.org/zap"
)

// ErrAlreadyStarted is returned by Add when called after Start.
var ErrAlreadyStarted = errors.New("pipeline: add called after start")

// Budget returns a pointer to n, for populating Config.FrameBudget
// (including the boundary value 0) without a throwaway local variable.
func Budget(n uint64) *uint64 { return &n }

// Config mirrors the teacher's scheduler.Config shape (DataDirs, Mode,
// ThreadCount, SubThreadCount, ChunkSize), generalized from
// image-editing flags to runtime flags: worker count and frame budget
// replace thread count and chunk size, and a logger/auto-stamp flag
// replace the mode string.
type Config struct {
	// Workers is the number of worker goroutines. Zero means use
	// runtime.GOMAXPROCS(0), matching the "defaults to the host's
	// hardware parallelism, minimum 1" spec default.
	Workers int
	// FrameBudget caps the number of frames processed. Nil means "run
	// until externally stopped" (math.MaxUint64); a non-nil pointer is
	// honored as given, including an explicit 0 (start returns
	// immediately, no stage is ever invoked).
	FrameBudget *uint64
	// AutoStamp, when true, has the worker loop call ctx.SetTime after
	// SetFrameID. Default false: timestamping is left to a source stage.
	AutoStamp bool
	// Logger receives structured diagnostics. A no-op logger is used if
	// nil.
	Logger *zap.Logger
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}

func (c Config) frameBudget() uint64 {
	if c.FrameBudget != nil {
		return *c.FrameBudget
	}
	return math.MaxUint64
}

func (c Config) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

package executor

import (
	"fmt"

	"framepipe/frame"
	"framepipe/stage"
)

// Parallel adds no synchronization of its own: every worker calls
// Process directly. Grounded on the teacher's bare Run1/Run2/Run3 phase
// callers (scheduler/PipeBSP.go), which invoke task.Execute(0) with no
// coordination beyond the channel handoff that delivered the task; here
// the handoff is the pipeline's own per-stage dispatch, so the executor
// itself has nothing to add. Stages wrapped this way are responsible for
// their own internal synchronization if they share state across calls.
type Parallel struct {
	stg stage.Stage
}

// NewParallel wraps s, which must declare stage.Parallel.
func NewParallel(s stage.Stage) (*Parallel, error) {
	if s.Policy() != stage.Parallel {
		return nil, fmt.Errorf("%w: stage %q declares %v", ErrPolicyMismatch, s.Name(), s.Policy())
	}
	return &Parallel{stg: s}, nil
}

// Stage returns the wrapped stage.
func (p *Parallel) Stage() stage.Stage { return p.stg }

// Run calls Process directly with no locking.
func (p *Parallel) Run(ctx *frame.Context) {
	p.stg.Process(ctx)
}

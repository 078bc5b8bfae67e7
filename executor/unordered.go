package executor

import (
	"fmt"

	"framepipe/frame"
	"framepipe/mysync"
	"framepipe/stage"
)

// Unordered enforces mutual exclusion around its wrapped stage: at most
// one worker executes Process at a time, with arrival order deciding who
// goes next. Grounded on the teacher's mysync.TASLock spinlock
// (mysync/mysync.go), which is cheaper than a sync.Mutex for the short,
// CPU-bound critical sections this policy is meant for.
type Unordered struct {
	stg  stage.Stage
	lock mysync.TASLock
}

// NewUnordered wraps s, which must declare stage.Unordered.
func NewUnordered(s stage.Stage) (*Unordered, error) {
	if s.Policy() != stage.Unordered {
		return nil, fmt.Errorf("%w: stage %q declares %v", ErrPolicyMismatch, s.Name(), s.Policy())
	}
	return &Unordered{stg: s, lock: mysync.NewTASLock()}, nil
}

// Stage returns the wrapped stage.
func (u *Unordered) Stage() stage.Stage { return u.stg }

// Run acquires the executor's exclusive lock, calls Process, and
// releases it.
func (u *Unordered) Run(ctx *frame.Context) {
	u.lock.Lock()
	defer u.lock.Unlock()
	u.stg.Process(ctx)
}

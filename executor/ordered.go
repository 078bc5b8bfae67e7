package executor

import (
	"fmt"
	"sync"

	"framepipe/frame"
	"framepipe/stage"
)

// Ordered enforces that its wrapped stage processes frames strictly in
// ascending frame-id order starting from 0. Grounded on the teacher's
// scheduler.syncContext barrier (scheduler/pipeutils.go): a mutex, a
// condition variable, and a counter — here the counter is the next
// expected frame id rather than a thread-arrival count, and the
// condition gates one frame through at a time instead of releasing a
// whole group at once.
type Ordered struct {
	stg   stage.Stage
	mu    sync.Mutex
	cond  *sync.Cond
	next  uint64
}

// NewOrdered wraps s, which must declare stage.Ordered.
func NewOrdered(s stage.Stage) (*Ordered, error) {
	if s.Policy() != stage.Ordered {
		return nil, fmt.Errorf("%w: stage %q declares %v", ErrPolicyMismatch, s.Name(), s.Policy())
	}
	o := &Ordered{stg: s}
	o.cond = sync.NewCond(&o.mu)
	return o, nil
}

// Stage returns the wrapped stage.
func (o *Ordered) Stage() stage.Stage { return o.stg }

// Run blocks until ctx's frame id equals the executor's next-expected
// counter, invokes Process, advances the counter, and wakes any other
// worker waiting on this executor. The wait predicate re-checks on every
// wake to tolerate spurious wakeups.
func (o *Ordered) Run(ctx *frame.Context) {
	id := ctx.FrameID()

	o.mu.Lock()
	if id < o.next {
		o.mu.Unlock()
		panic(fmt.Errorf("%w: stage %q saw frame %d but next-expected is already %d", ErrInvariantViolation, o.stg.Name(), id, o.next))
	}
	for id != o.next {
		o.cond.Wait()
	}
	o.mu.Unlock()

	o.stg.Process(ctx)

	o.mu.Lock()
	o.next++
	o.cond.Broadcast()
	o.mu.Unlock()
}

// Package executor wraps a stage.Stage in the concurrency discipline its
// declared policy requires: strict frame-id order, mutual exclusion, or
// no synchronization at all. Exactly one of the three wrapper types below
// is constructed per stage, chosen by New based on the stage's declared
// policy.
package executor

import (
	"errors"
	"fmt"

	"framepipe/frame"
	"framepipe/stage"
)

// ErrPolicyMismatch is returned by NewOrdered, NewUnordered and
// NewParallel when a stage's declared policy does not match the
// executor kind, and by New when the stage declares an unknown policy.
var ErrPolicyMismatch = errors.New("executor: stage policy does not match executor kind")

// ErrInvariantViolation marks a fatal logic bug: an Ordered executor
// observed a frame id below its next-expected counter, which can only
// happen if some driver other than pipeline.Pipeline issued duplicate or
// out-of-order frame ids.
var ErrInvariantViolation = errors.New("executor: ordered executor observed a frame id below next-expected")

// Executor is the uniform interface every policy wrapper implements.
type Executor interface {
	Run(ctx *frame.Context)
	Stage() stage.Stage
}

// New wraps s in the executor matching its declared policy.
func New(s stage.Stage) (Executor, error) {
	switch s.Policy() {
	case stage.Ordered:
		return NewOrdered(s)
	case stage.Unordered:
		return NewUnordered(s)
	case stage.Parallel:
		return NewParallel(s)
	default:
		return nil, fmt.Errorf("%w: stage %q declares unknown policy %v", ErrPolicyMismatch, s.Name(), s.Policy())
	}
}

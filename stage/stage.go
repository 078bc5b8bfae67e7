// Package stage defines the contract every pipeline stage implements.
// Stages are user code: the core only ever calls Policy, Name, and
// Process on them through a policy executor (see package executor).
package stage

import "framepipe/frame"

// Policy is the concurrency discipline a stage declares.
type Policy int

const (
	// Ordered stages process frames strictly in ascending frame-id order.
	Ordered Policy = iota
	// Unordered stages run under mutual exclusion, arrival order.
	Unordered
	// Parallel stages run with no additional synchronization.
	Parallel
)

// String renders the policy for logs and test failure messages.
func (p Policy) String() string {
	switch p {
	case Ordered:
		return "ordered"
	case Unordered:
		return "unordered"
	case Parallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// Stage is the capability set a pipeline node must satisfy. Process may
// allocate, perform I/O, block on external resources, or mutate ctx
// arbitrarily, but it must not hand ctx to a goroutine that outlives the
// call.
type Stage interface {
	Policy() Policy
	Name() string
	Process(ctx *frame.Context)
}

// Base is an embeddable helper that implements Policy and Name, so a
// concrete stage only needs to define Process. Replaces the teacher's
// pattern of throwaway "not used, just to implement the interface"
// stub methods with a real reusable helper.
type Base struct {
	StageName string
	StagePolicy Policy
}

// Policy returns the stage's declared policy.
func (b Base) Policy() Policy { return b.StagePolicy }

// Name returns the stage's name.
func (b Base) Name() string { return b.StageName }

// Package mysync holds small synchronization primitives shared by the
// executor and pipeline packages: an atomic boolean, a test-and-set spinlock,
// and a goroutine-id helper for diagnostics.
package mysync

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
)

//==============================================================================
// atomicBoolean struct and methods
//==============================================================================

// atomicBoolean represents a boolean that can be atomically set and read.
// value: 0 = false, >0 = true.
type atomicBoolean struct {
	value uint32
}

func intToBool(value uint32) bool {
	return value != 0
}

func boolToInt(value bool) uint32 {
	if value {
		return 1
	}
	return 0
}

// NewAtomicBool creates a new atomicBoolean.
func NewAtomicBool(value bool) atomicBoolean {
	return atomicBoolean{value: boolToInt(value)}
}

// GetAndSet atomically stores newVal and returns the previous value.
func (aBool *atomicBoolean) GetAndSet(newVal bool) bool {
	oldVal := atomic.SwapUint32(&aBool.value, boolToInt(newVal))
	return intToBool(oldVal)
}

// Get atomically reads the current value.
func (aBool *atomicBoolean) Get() bool {
	return intToBool(atomic.LoadUint32(&aBool.value))
}

// Set sets the value of the atomicBoolean.
func (aBool *atomicBoolean) Set(newVal bool) {
	atomic.StoreUint32(&aBool.value, boolToInt(newVal))
}

//==============================================================================
// StopFlag: cooperative shutdown signal observed by workers between frames
//==============================================================================

// StopFlag is an atomicBoolean used by the pipeline runtime to let an
// external caller ask workers to stop drawing new frame ids. Checking it
// is optional for a worker; the frame-budget exit condition alone is
// sufficient to terminate a run.
type StopFlag struct {
	flag atomicBoolean
}

// NewStopFlag returns a StopFlag initialized to false.
func NewStopFlag() *StopFlag {
	f := NewAtomicBool(false)
	return &StopFlag{flag: f}
}

// Stop raises the flag.
func (s *StopFlag) Stop() {
	s.flag.Set(true)
}

// Stopped reports whether Stop has been called.
func (s *StopFlag) Stopped() bool {
	return s.flag.Get()
}

//==============================================================================
// TAS lock struct and methods
//==============================================================================

// TASLock is a test-and-set spinlock. Cheaper than a sync.Mutex for very
// short critical sections under low contention because it never parks the
// goroutine with the runtime scheduler.
type TASLock struct {
	state *atomicBoolean
}

// NewTASLock returns a new, unlocked TASLock.
func NewTASLock() TASLock {
	state := NewAtomicBool(false)
	return TASLock{state: &state}
}

// Lock spins until the lock is acquired, yielding the processor between
// attempts.
func (lock *TASLock) Lock() {
	for lock.state.GetAndSet(true) {
		runtime.Gosched()
	}
}

// Unlock releases the lock.
func (lock *TASLock) Unlock() {
	lock.state.Set(false)
}

//==============================================================================
// Methods for debugging
//==============================================================================

// GetGID returns the goroutine id of the caller. Parses the runtime's
// stack trace header; only meant for log fields, never for control flow.
func GetGID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

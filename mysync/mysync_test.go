package mysync

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtomicBool_GetSetGetAndSet(t *testing.T) {
	b := NewAtomicBool(false)
	assert.False(t, b.Get())

	b.Set(true)
	assert.True(t, b.Get())

	old := b.GetAndSet(false)
	assert.True(t, old)
	assert.False(t, b.Get())
}

func TestStopFlag_StartsUnstopped(t *testing.T) {
	f := NewStopFlag()
	assert.False(t, f.Stopped())
	f.Stop()
	assert.True(t, f.Stopped())
}

func TestTASLock_MutualExclusion(t *testing.T) {
	lock := NewTASLock()
	var counter int64
	var wg sync.WaitGroup
	const n = 100

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			lock.Lock()
			counter++
			lock.Unlock()
		}()
	}
	wg.Wait()

	assert.EqualValues(t, n, counter)
}

func TestGetGID_ReturnsNonZero(t *testing.T) {
	assert.NotZero(t, GetGID())
}

func TestAtomicBool_ConcurrentAccessIsSafe(t *testing.T) {
	b := NewAtomicBool(false)
	var wg sync.WaitGroup
	var toggles int64
	wg.Add(50)
	for i := 0; i < 50; i++ {
		go func() {
			defer wg.Done()
			b.GetAndSet(true)
			atomic.AddInt64(&toggles, 1)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 50, toggles)
}

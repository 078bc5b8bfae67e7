package executor

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framepipe/frame"
	"framepipe/stage"
)

// TestUnordered_MutualExclusion runs many concurrent frames through the
// same executor and asserts the wrapped stage never observes two
// overlapping calls, per spec.md §8's mutual-exclusion invariant.
func TestUnordered_MutualExclusion(t *testing.T) {
	var inside int32
	var violated int32

	s := newFakeStage(stage.Unordered, func(_ *frame.Context) {
		if atomic.AddInt32(&inside, 1) > 1 {
			atomic.StoreInt32(&violated, 1)
		}
		atomic.AddInt32(&inside, -1)
	})
	ex, err := NewUnordered(s)
	require.NoError(t, err)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(id uint64) {
			defer wg.Done()
			ctx := frame.New()
			ctx.SetFrameID(id)
			ex.Run(ctx)
		}(uint64(i))
	}
	wg.Wait()

	assert.Zero(t, violated, "two frames ran inside the stage concurrently")
}

func TestUnordered_StageReturned(t *testing.T) {
	s := newFakeStage(stage.Unordered, nil)
	ex, err := NewUnordered(s)
	require.NoError(t, err)
	assert.Same(t, s, ex.Stage())
}

package executor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framepipe/frame"
	"framepipe/stage"
)

// TestOrdered_ProcessesStrictlyInFrameIDOrder submits frames out of
// arrival order from concurrent goroutines and asserts the wrapped
// stage still observes them in ascending frame-id order, per spec.md
// §8's ordering invariant.
func TestOrdered_ProcessesStrictlyInFrameIDOrder(t *testing.T) {
	var mu sync.Mutex
	var seen []uint64

	s := newFakeStage(stage.Ordered, func(ctx *frame.Context) {
		mu.Lock()
		seen = append(seen, ctx.FrameID())
		mu.Unlock()
	})
	ord, err := NewOrdered(s)
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	// Submit in reverse order from separate goroutines; Run must still
	// serialize delivery by ascending frame id.
	for i := n - 1; i >= 0; i-- {
		go func(id uint64) {
			defer wg.Done()
			ctx := frame.New()
			ctx.SetFrameID(id)
			ord.Run(ctx)
		}(uint64(i))
	}
	wg.Wait()

	require.Len(t, seen, n)
	for i, id := range seen {
		assert.EqualValues(t, i, id)
	}
}

func TestOrdered_PanicsOnFrameIDBelowNextExpected(t *testing.T) {
	s := newFakeStage(stage.Ordered, nil)
	ord, err := NewOrdered(s)
	require.NoError(t, err)

	ctx0 := frame.New()
	ctx0.SetFrameID(0)
	ord.Run(ctx0)

	ctx0again := frame.New()
	ctx0again.SetFrameID(0)
	assert.Panics(t, func() { ord.Run(ctx0again) })
}

func TestOrdered_BlocksUntilPredecessorArrives(t *testing.T) {
	s := newFakeStage(stage.Ordered, nil)
	ord, err := NewOrdered(s)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		ctx1 := frame.New()
		ctx1.SetFrameID(1)
		ord.Run(ctx1)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("frame 1 ran before frame 0 arrived")
	case <-time.After(30 * time.Millisecond):
	}

	ctx0 := frame.New()
	ctx0.SetFrameID(0)
	ord.Run(ctx0)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("frame 1 never ran after frame 0 arrived")
	}
}

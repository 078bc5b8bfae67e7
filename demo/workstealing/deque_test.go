package workstealing

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTile struct {
	ran int32
}

func (t *countingTile) Run(workerID int) {
	atomic.AddInt32(&t.ran, 1)
}

func TestDeque_PushBottomPopBottomLIFO(t *testing.T) {
	d := NewDeque(2)
	assert.True(t, d.IsEmpty())

	a, b := &countingTile{}, &countingTile{}
	d.pushBottom(a)
	d.pushBottom(b)

	assert.Same(t, Tile(b), d.popBottom())
	assert.Same(t, Tile(a), d.popBottom())
	assert.Nil(t, d.popBottom())
}

func TestDeque_PopTopStealsOldest(t *testing.T) {
	d := NewDeque(2)
	a, b := &countingTile{}, &countingTile{}
	d.pushBottom(a)
	d.pushBottom(b)

	stolen := d.PopTop()
	assert.Same(t, Tile(a), stolen)
}

func TestDeque_ResizeGrowsPastInitialCapacity(t *testing.T) {
	d := NewDeque(1) // capacity 2
	for i := 0; i < 10; i++ {
		d.pushBottom(&countingTile{})
	}
	count := 0
	for {
		tile := d.popBottom()
		if tile == nil {
			break
		}
		count++
	}
	assert.Equal(t, 10, count)
}

func TestPool_RunWorkerDrainsOwnQueue(t *testing.T) {
	pool := NewPool(1)
	tiles := make([]*countingTile, 5)
	for i := range tiles {
		tiles[i] = &countingTile{}
		pool.Submit(0, tiles[i])
	}

	remaining := int64(len(tiles))
	pool.RunWorker(0, &remaining)

	for _, tile := range tiles {
		assert.EqualValues(t, 1, tile.ran)
	}
	assert.Zero(t, remaining)
}

func TestDeque_LastElementRaceYieldsExactlyOneWinner(t *testing.T) {
	// Owner's popBottom and a thief's PopTop race for the single
	// remaining tile many times; the CAS on top must let exactly one of
	// them win each round, never both and never neither.
	for round := 0; round < 500; round++ {
		d := NewDeque(2)
		d.pushBottom(&countingTile{})

		var ownerResult, thiefResult Tile
		done := make(chan struct{})
		go func() {
			thiefResult = d.PopTop()
			close(done)
		}()
		ownerResult = d.popBottom()
		<-done

		wins := 0
		if ownerResult != nil {
			wins++
		}
		if thiefResult != nil {
			wins++
		}
		assert.Equal(t, 1, wins, "round %d: exactly one of owner/thief must win the last tile", round)
		assert.True(t, d.IsEmpty())
	}
}

func TestPool_RunWorkerStealsFromOtherQueues(t *testing.T) {
	pool := NewPool(2)
	tiles := make([]*countingTile, 8)
	for i := range tiles {
		tiles[i] = &countingTile{}
		pool.Submit(0, tiles[i]) // all submitted to worker 0's own queue
	}

	remaining := int64(len(tiles))
	done := make(chan struct{})
	go func() {
		pool.RunWorker(1, &remaining)
		close(done)
	}()
	pool.RunWorker(0, &remaining)
	<-done

	require.Zero(t, remaining)
	for _, tile := range tiles {
		assert.EqualValues(t, 1, tile.ran)
	}
}

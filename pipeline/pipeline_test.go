package pipeline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framepipe/frame"
	"framepipe/stage"
)

type countingStage struct {
	stage.Base
	mu    sync.Mutex
	count int
}

func (s *countingStage) Process(ctx *frame.Context) {
	s.mu.Lock()
	s.count++
	s.mu.Unlock()
}

func newCountingStage(name string, policy stage.Policy) *countingStage {
	return &countingStage{Base: stage.Base{StageName: name, StagePolicy: policy}}
}

func TestPipeline_RunsExactlyFrameBudgetFrames(t *testing.T) {
	s := newCountingStage("count", stage.Unordered)
	p := New(Config{Workers: 4, FrameBudget: Budget(100)}, nil)
	require.NoError(t, p.Add(s))

	p.Start()

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Equal(t, 100, s.count)
}

func TestPipeline_ZeroFrameBudgetInvokesNoStage(t *testing.T) {
	s := newCountingStage("count", stage.Unordered)
	p := New(Config{Workers: 4, FrameBudget: Budget(0)}, nil)
	require.NoError(t, p.Add(s))

	p.Start()

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Equal(t, 0, s.count)
}

func TestPipeline_AddAfterStartFails(t *testing.T) {
	p := New(Config{Workers: 1, FrameBudget: Budget(1)}, nil)
	require.NoError(t, p.Add(newCountingStage("a", stage.Unordered)))
	p.Start()

	err := p.Add(newCountingStage("b", stage.Unordered))
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestPipeline_AddRejectsExecutorConstructionError(t *testing.T) {
	p := New(Config{Workers: 1, FrameBudget: Budget(1)}, nil)
	bad := &brokenPolicyStage{Base: stage.Base{StageName: "bad", StagePolicy: stage.Policy(99)}}
	err := p.Add(bad)
	assert.Error(t, err)
}

type brokenPolicyStage struct {
	stage.Base
}

func (brokenPolicyStage) Process(_ *frame.Context) {}

func TestPipeline_StopHaltsBeforeBudgetExhausted(t *testing.T) {
	s := newCountingStage("count", stage.Unordered)
	p := New(Config{Workers: 1, FrameBudget: Budget(1_000_000)}, nil)
	require.NoError(t, p.Add(s))

	go func() {
		p.Stop()
	}()
	p.Start()

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Less(t, s.count, 1_000_000)
}

func TestPipeline_EveryFrameGetsStrictlyIncreasingID(t *testing.T) {
	var mu sync.Mutex
	var seen []uint64

	recorder := newCountingStage("noop", stage.Parallel)
	// reuse countingStage's Process but capture ids via a second stage
	idStage := &idCapturingStage{
		Base: stage.Base{StageName: "ids", StagePolicy: stage.Ordered},
		record: func(id uint64) {
			mu.Lock()
			seen = append(seen, id)
			mu.Unlock()
		},
	}

	p := New(Config{Workers: 8, FrameBudget: Budget(50)}, nil)
	require.NoError(t, p.Add(recorder))
	require.NoError(t, p.Add(idStage))

	p.Start()

	require.Len(t, seen, 50)
	for i, id := range seen {
		assert.EqualValues(t, i, id)
	}
}

type idCapturingStage struct {
	stage.Base
	record func(id uint64)
}

func (s *idCapturingStage) Process(ctx *frame.Context) {
	s.record(ctx.FrameID())
}

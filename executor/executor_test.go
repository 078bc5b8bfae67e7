package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framepipe/frame"
	"framepipe/stage"
)

type fakeStage struct {
	stage.Base
	process func(ctx *frame.Context)
}

func (s *fakeStage) Process(ctx *frame.Context) {
	if s.process != nil {
		s.process(ctx)
	}
}

func newFakeStage(policy stage.Policy, process func(ctx *frame.Context)) *fakeStage {
	return &fakeStage{Base: stage.Base{StageName: "fake", StagePolicy: policy}, process: process}
}

func TestNew_DispatchesByPolicy(t *testing.T) {
	ord, err := New(newFakeStage(stage.Ordered, nil))
	require.NoError(t, err)
	assert.IsType(t, &Ordered{}, ord)

	unord, err := New(newFakeStage(stage.Unordered, nil))
	require.NoError(t, err)
	assert.IsType(t, &Unordered{}, unord)

	par, err := New(newFakeStage(stage.Parallel, nil))
	require.NoError(t, err)
	assert.IsType(t, &Parallel{}, par)
}

func TestNewOrdered_RejectsWrongPolicy(t *testing.T) {
	_, err := NewOrdered(newFakeStage(stage.Parallel, nil))
	assert.ErrorIs(t, err, ErrPolicyMismatch)
}

func TestNewUnordered_RejectsWrongPolicy(t *testing.T) {
	_, err := NewUnordered(newFakeStage(stage.Ordered, nil))
	assert.ErrorIs(t, err, ErrPolicyMismatch)
}

func TestNewParallel_RejectsWrongPolicy(t *testing.T) {
	_, err := NewParallel(newFakeStage(stage.Unordered, nil))
	assert.ErrorIs(t, err, ErrPolicyMismatch)
}

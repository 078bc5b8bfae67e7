package demo

import (
	"framepipe/frame"
	"framepipe/stage"
)

// GrayscaleStage is a direct adaptation of png.Image.Grayscale
// (png/effects.go) onto an imagebuf.Buffer. Its Parallel policy is
// sound because it only reads/writes the buffer belonging to the
// FrameContext it was handed, which no other worker touches
// concurrently.
type GrayscaleStage struct {
	stage.Base
	ImageName string
}

// NewGrayscaleStage returns a Parallel GrayscaleStage over ImageName.
func NewGrayscaleStage(name, imageName string) *GrayscaleStage {
	return &GrayscaleStage{
		Base:      stage.Base{StageName: name, StagePolicy: stage.Parallel},
		ImageName: imageName,
	}
}

// Process implements stage.Stage.
func (s *GrayscaleStage) Process(ctx *frame.Context) {
	buf := ctx.Image(s.ImageName)
	bounds := buf.Bounds()
	in, out := buf.InputOutput()
	grayscale(in, out, bounds.Min.Y, bounds.Max.Y, bounds.Min.X, bounds.Max.X)
	buf.Swap()
}

// ConvolveStage adapts png.Image.ConvolveFlat (png/effects.go) with a
// kernel fixed at construction time, demonstrating the Parallel
// contract's "private state is immutable after construction" clause.
type ConvolveStage struct {
	stage.Base
	ImageName string
	Kernel    *Kernel
}

// NewConvolveStage returns a Parallel ConvolveStage applying kernel to
// ImageName.
func NewConvolveStage(name, imageName string, kernel *Kernel) *ConvolveStage {
	return &ConvolveStage{
		Base:      stage.Base{StageName: name, StagePolicy: stage.Parallel},
		ImageName: imageName,
		Kernel:    kernel,
	}
}

// Process implements stage.Stage.
func (s *ConvolveStage) Process(ctx *frame.Context) {
	buf := ctx.Image(s.ImageName)
	bounds := buf.Bounds()
	in, out := buf.InputOutput()
	convolveRegion(s.Kernel, in, out, bounds.Min.Y, bounds.Max.Y, bounds.Min.X, bounds.Max.X)
	buf.Swap()
}

// FrameCounterStage is an Unordered test/demo stage: it increments a
// shared counter once per frame under the Unordered executor's lock,
// giving property tests something observable to assert mutual
// exclusion against (spec.md §8).
type FrameCounterStage struct {
	stage.Base
	ResultName string
	count      int
}

// NewFrameCounterStage returns an Unordered FrameCounterStage that
// records its running count into ResultName.
func NewFrameCounterStage(name, resultName string) *FrameCounterStage {
	return &FrameCounterStage{
		Base:       stage.Base{StageName: name, StagePolicy: stage.Unordered},
		ResultName: resultName,
	}
}

// Process implements stage.Stage. Not safe for concurrent calls on its
// own: correctness depends entirely on the Unordered executor's lock.
func (s *FrameCounterStage) Process(ctx *frame.Context) {
	s.count++
	ctx.Result(s.ResultName).Set(s.count)
}

// OrderedAppendStage is an Ordered test/demo stage: it appends its
// frame id to a private slice, giving property tests something to
// assert strict ascending order against (spec.md §8).
type OrderedAppendStage struct {
	stage.Base
	ResultName string
	seen       []uint64
}

// NewOrderedAppendStage returns an Ordered OrderedAppendStage.
func NewOrderedAppendStage(name, resultName string) *OrderedAppendStage {
	return &OrderedAppendStage{
		Base:       stage.Base{StageName: name, StagePolicy: stage.Ordered},
		ResultName: resultName,
	}
}

// Process implements stage.Stage.
func (s *OrderedAppendStage) Process(ctx *frame.Context) {
	s.seen = append(s.seen, ctx.FrameID())
	ctx.Result(s.ResultName).Set(append([]uint64(nil), s.seen...))
}

// Seen returns the frame ids this stage has processed so far, in the
// order Process was called.
func (s *OrderedAppendStage) Seen() []uint64 { return s.seen }

package demo

import (
	"image/color"

	"framepipe/frame"
	"framepipe/stage"
)

// SourceStage is a Parallel stage that stands in for a real capture
// device: every frame it fills ImageName with a deterministic
// procedural pattern (a diagonal gradient plus a frame-id-indexed
// moving stripe), so the rest of the demo pipeline and its tests have
// something to grayscale/convolve without depending on file I/O. Real
// capture stages are user code per spec.md §1's Non-goals; this one
// only exists to make the demo binary and tests runnable end to end.
type SourceStage struct {
	stage.Base
	ImageName     string
	Width, Height int
}

// NewSourceStage returns a Parallel SourceStage writing width x height
// frames into ImageName.
func NewSourceStage(name, imageName string, width, height int) *SourceStage {
	return &SourceStage{
		Base:      stage.Base{StageName: name, StagePolicy: stage.Parallel},
		ImageName: imageName,
		Width:     width,
		Height:    height,
	}
}

// Process implements stage.Stage.
func (s *SourceStage) Process(ctx *frame.Context) {
	buf := ctx.Image(s.ImageName)
	buf.Resize(s.Width, s.Height)

	stripe := int(ctx.FrameID()) % s.Height
	cur := buf.Current()
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			g := uint16((x + y) * 65535 / (s.Width + s.Height + 1))
			if y == stripe {
				cur.Set(x, y, color.RGBA64{R: 65535, G: g, B: g, A: 65535})
				continue
			}
			cur.Set(x, y, color.RGBA64{R: g, G: g, B: g, A: 65535})
		}
	}
}

// Package imagebuf provides the opaque image buffer used by FrameContext
// image slots. The frame-scheduling core only ever sees these as opaque
// blobs carrying width/height/element-type metadata; decode/encode and
// pixel effects live here and in the demo package as concrete,
// swappable "user code."
//
// Adapted from the teacher's png.Image (dual in/out buffer with a Final
// flip flag for applying effects sequentially without reallocating).
package imagebuf

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// ElementType describes the per-channel sample type carried by a Buffer.
type ElementType int

const (
	U8 ElementType = iota
	U16
	F32
)

// Buffer is an RGBA64 image with two swappable pixel planes (in/out).
// Final selects which plane holds the most recently written pixels,
// mirroring the teacher's png.Image buffer-swap trick so that a chain
// of effects can run without reallocating on every step.
type Buffer struct {
	in, out *image.RGBA64
	Final   int // 0: in is current; 1: out is current
	Width   int
	Height  int
	Elem    ElementType
}

// New allocates an empty width x height buffer.
func New(width, height int, elem ElementType) *Buffer {
	bounds := image.Rect(0, 0, width, height)
	return &Buffer{
		in:     image.NewRGBA64(bounds),
		out:    image.NewRGBA64(bounds),
		Final:  0,
		Width:  width,
		Height: height,
		Elem:   elem,
	}
}

// Empty returns a zero-sized buffer, used to seed an image slot on first
// access before any stage has written real pixels into it.
func Empty() *Buffer {
	return New(0, 0, U8)
}

// Bounds returns the pixel rectangle of the buffer.
func (b *Buffer) Bounds() image.Rectangle {
	return b.in.Bounds()
}

// Current returns the RGBA64 plane holding the most recently written
// pixels (read-only use expected outside this package and demo).
func (b *Buffer) Current() *image.RGBA64 {
	if b.Final == 0 {
		return b.in
	}
	return b.out
}

// InputOutput returns (input, output) planes for the next effect pass:
// input is the current plane, output is the other one. Mirrors
// png.Image.GetInputOutputPixels.
func (b *Buffer) InputOutput() (*image.RGBA64, *image.RGBA64) {
	if b.Final == 0 {
		return b.in, b.out
	}
	return b.out, b.in
}

// Swap flips which plane is considered current, the way the teacher's
// effect-application loop inverts Final after each kernel pass.
func (b *Buffer) Swap() {
	b.Final = 1 - b.Final
}

// Reset empties the buffer in place (used by FrameContext.Clear), keeping
// the allocated planes so the next frame doesn't need to reallocate.
func (b *Buffer) Reset() {
	bounds := b.in.Bounds()
	draw := image.NewRGBA64(bounds)
	copy(b.in.Pix, draw.Pix)
	copy(b.out.Pix, draw.Pix)
	b.Final = 0
}

// Resize reallocates the buffer's planes to width x height if the
// current size differs, discarding existing pixels. A no-op if the size
// is already width x height. Used by source stages that must size an
// image-slot's lazily-created empty buffer on first touch.
func (b *Buffer) Resize(width, height int) {
	if b.Width == width && b.Height == height {
		return
	}
	bounds := image.Rect(0, 0, width, height)
	b.in = image.NewRGBA64(bounds)
	b.out = image.NewRGBA64(bounds)
	b.Width, b.Height = width, height
	b.Final = 0
}

// Load decodes a PNG from r into a new Buffer, adapted from png.Load.
func Load(r io.Reader) (*Buffer, error) {
	decoded, err := png.Decode(r)
	if err != nil {
		return nil, err
	}
	bounds := decoded.Bounds()
	in := image.NewRGBA64(bounds)
	out := image.NewRGBA64(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := decoded.At(x, y).RGBA()
			in.Set(x, y, color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)})
		}
	}
	return &Buffer{
		in:     in,
		out:    out,
		Final:  0,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Elem:   U16,
	}, nil
}

// Save encodes the current plane as a PNG to w, adapted from png.Save.
func (b *Buffer) Save(w io.Writer) error {
	return png.Encode(w, b.Current())
}

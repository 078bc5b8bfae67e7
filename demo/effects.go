package demo

import (
	"image"
	"image/color"
)

// grayscale and convolveRegion are adapted from the teacher's
// png.Image.Grayscale/ConvolveFlat (png/effects.go): same pixel math,
// operating over an explicit [yStart,yEnd) x [xStart,xEnd) rectangle so
// both a whole-frame stage and a single tile task can call the same
// code.

func grayscale(in, out *image.RGBA64, yStart, yEnd, xStart, xEnd int) {
	for y := yStart; y < yEnd; y++ {
		for x := xStart; x < xEnd; x++ {
			r, g, b, a := in.At(x, y).RGBA()
			grey := clamp(float64(r+g+b) / 3)
			out.Set(x, y, color.RGBA64{R: grey, G: grey, B: grey, A: uint16(a)})
		}
	}
}

func convolveRegion(k *Kernel, in, out *image.RGBA64, yStart, yEnd, xStart, xEnd int) {
	bounds := in.Bounds()
	for y := yStart; y < yEnd; y++ {
		for x := xStart; x < xEnd; x++ {
			var rNew, gNew, bNew float64
			for i := 0; i < len(k.Values); i++ {
				m := i / k.dim
				n := i % k.dim
				mm := k.dim - 1 - m
				nn := k.dim - 1 - n
				yy := y + (k.center - mm)
				xx := x + (k.center - nn)
				if xx >= bounds.Min.X && xx < bounds.Max.X && yy >= bounds.Min.Y && yy < bounds.Max.Y {
					r, g, b, _ := in.At(xx, yy).RGBA()
					rNew += float64(r) * k.Values[i]
					gNew += float64(g) * k.Values[i]
					bNew += float64(b) * k.Values[i]
				}
			}
			out.Set(x, y, color.RGBA64{R: clamp(rNew), G: clamp(gNew), B: clamp(bNew), A: 65535})
		}
	}
}

func clamp(v float64) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}

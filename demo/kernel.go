package demo

import "math"

// Kernel is a square convolution kernel, adapted from the teacher's
// png.Kernel (png/effects.go): same flat-array/center-index
// representation, renamed field names to exported form since this
// package's stages construct kernels directly rather than looking them
// up by a single-letter effect code.
type Kernel struct {
	Values []float64
	dim    int
	center int
}

// NewKernel builds a Kernel from a flat, square list of values.
func NewKernel(values []float64) *Kernel {
	dim := int(math.Sqrt(float64(len(values))))
	return &Kernel{Values: values, dim: dim, center: dim / 2}
}

// Sharpen, Edge, and Blur are the teacher's three built-in kernels
// (png/effects.go's "S", "E", "B" entries in its effects map).
var (
	Sharpen = NewKernel([]float64{0, -1, 0, -1, 5, -1, 0, -1, 0})
	Edge    = NewKernel([]float64{-1, -1, -1, -1, 8, -1, -1, -1, -1})
	Blur    = NewKernel([]float64{
		1.0 / 9, 1.0 / 9, 1.0 / 9,
		1.0 / 9, 1.0 / 9, 1.0 / 9,
		1.0 / 9, 1.0 / 9, 1.0 / 9,
	})
)

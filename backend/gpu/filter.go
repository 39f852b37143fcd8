package gpu

import (
	"image"

	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/internal/filter"
)

// ColorMatrixFilter transforms the colors of the subtree it is attached to.
// The matrix is 4x5, row-major, with offsets normalized to 0..1.
type ColorMatrixFilter struct {
	Enabled bool

	matrix filter.Matrix
}

// NewColorMatrixFilter returns an enabled identity filter.
func NewColorMatrixFilter() *ColorMatrixFilter {
	return &ColorMatrixFilter{Enabled: true, matrix: filter.Identity()}
}

// Engine reports the owning engine.
func (f *ColorMatrixFilter) Engine() string { return backend.NameGPU }

// Matrix returns a copy of the 20 matrix entries.
func (f *ColorMatrixFilter) Matrix() []float64 {
	return append([]float64(nil), f.matrix[:]...)
}

// SetMatrix loads m, truncated to 20 entries. Missing entries are taken
// from the identity matrix.
func (f *ColorMatrixFilter) SetMatrix(m []float64) {
	f.matrix = filter.Identity()
	copy(f.matrix[:], m)
}

// Hue replaces the matrix with a hue rotation by degrees.
func (f *ColorMatrixFilter) Hue(degrees float64) *ColorMatrixFilter {
	f.matrix = filter.Hue(degrees)
	return f
}

// Brightness replaces the matrix with a multiplicative brightness.
// b = 1 leaves colors unchanged.
func (f *ColorMatrixFilter) Brightness(b float64) *ColorMatrixFilter {
	f.matrix = filter.Matrix{
		b, 0, 0, 0, 0,
		0, b, 0, 0, 0,
		0, 0, b, 0, 0,
		0, 0, 0, 1, 0,
	}
	return f
}

// Saturate replaces the matrix with a saturation adjustment in [-1, 1].
func (f *ColorMatrixFilter) Saturate(amount float64) *ColorMatrixFilter {
	f.matrix = filter.Saturation(amount * 100)
	return f
}

func (f *ColorMatrixFilter) apply(img *image.RGBA) {
	if !f.Enabled {
		return
	}
	m := f.matrix.ScaleOffsets(255)
	m.Apply(img)
}

package ge

import (
	"math"

	"github.com/entrylabs/ge/backend"
)

// ColorFilter builds color filters for the active engine. Offsets are
// given in 0..255 units and converted to the engine's units.
type ColorFilter struct {
	h *Helper
}

// Hue returns a hue rotation by degrees. Values outside [-180, 180] wrap
// around. Both engines produce the same color transform.
func (f *ColorFilter) Hue(degrees float64) backend.Object {
	return f.h.mustBackend().HueFilter(wrapDegrees(degrees))
}

// Brightness returns a filter adding v, in 0..255 units, to the red,
// green and blue channels. Brightness(0) changes nothing.
func (f *ColorFilter) Brightness(v float64) backend.Object {
	b := f.h.mustBackend()
	o := v * b.OffsetScale()
	return b.ColorMatrixFilter([]float64{
		1, 0, 0, 0, o,
		0, 1, 0, 0, o,
		0, 0, 1, 0, o,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 1,
	})
}

// Saturation returns a saturation adjustment by v in [-100, 100].
func (f *ColorFilter) Saturation(v float64) backend.Object {
	return f.h.mustBackend().SaturationFilter(v)
}

// ColorMatrixFilter wraps m, a row-major matrix with five columns. The GPU
// engine keeps 20 entries and the canvas engine 25; missing entries come
// from the identity. m is not modified.
func (f *ColorFilter) ColorMatrixFilter(m []float64) backend.Object {
	return f.h.mustBackend().ColorMatrixFilter(m)
}

// SetCache caches or uncaches target. Canvas filters only show on cached
// objects; the GPU engine ignores the call.
func (f *ColorFilter) SetCache(target backend.Object, enabled bool) error {
	return f.h.mustBackend().SetCache(target, enabled)
}

// wrapDegrees maps d into [-180, 180).
func wrapDegrees(d float64) float64 {
	d = math.Mod(d+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

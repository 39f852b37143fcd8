// Package compose draws engine nodes onto RGBA frames.
//
// Both engines keep their frames as *image.RGBA. Bitmaps are composited
// through an affine transform with golang.org/x/image/draw; vector content
// and text are rasterized by gg into a scratch context and blended over.
package compose

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// NewFrame returns a transparent frame of the given size.
func NewFrame(width, height int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// Clear resets every pixel of dst to transparent.
func Clear(dst *image.RGBA) {
	clear(dst.Pix)
}

// Image draws src onto dst. m maps source pixels, counted from the top-left
// corner of src's bounds, to destination pixels.
func Image(dst *image.RGBA, src image.Image, m gg.Matrix, alpha float64) {
	if src == nil || alpha <= 0 {
		return
	}
	if o := src.Bounds().Min; o != (image.Point{}) {
		m = m.Multiply(gg.Translate(float64(-o.X), float64(-o.Y)))
	}
	aff := f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
	xdraw.BiLinear.Transform(dst, aff, src, src.Bounds(), xdraw.Over, maskOptions(alpha))
}

// Vector rasterizes paint with gg under m and blends the result onto dst.
func Vector(dst *image.RGBA, m gg.Matrix, alpha float64, paint func(dc *gg.Context)) {
	if alpha <= 0 {
		return
	}
	b := dst.Bounds()
	if b.Empty() {
		return
	}
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetTransform(gg.Translate(float64(-b.Min.X), float64(-b.Min.Y)).Multiply(m))
	paint(dc)
	_ = dc.FlushGPU()

	layer := dc.Image()
	if alpha >= 1 {
		xdraw.Draw(dst, b, layer, image.Point{}, xdraw.Over)
		return
	}
	xdraw.DrawMask(dst, b, layer, image.Point{}, uniformAlpha(alpha), image.Point{}, xdraw.Over)
}

// labelPad leaves room for glyph overhang around a measured text box.
const labelPad = 2

// Label rasterizes content covering the local rectangle (x, y, w, h) and
// draws it onto dst under m. gg draws text without the context transform,
// so paint receives the local point (ox, oy) that lands on pixel (0, 0)
// and offsets its coordinates by hand.
func Label(dst *image.RGBA, m gg.Matrix, alpha float64, x, y, w, h float64, paint func(dc *gg.Context, ox, oy float64)) {
	if alpha <= 0 || w <= 0 || h <= 0 {
		return
	}
	ox, oy := math.Floor(x)-labelPad, math.Floor(y)-labelPad
	pw := int(math.Ceil(x+w)-ox) + labelPad
	ph := int(math.Ceil(y+h)-oy) + labelPad

	dc := gg.NewContext(pw, ph)
	paint(dc, ox, oy)
	_ = dc.FlushGPU()
	Image(dst, dc.Image(), m.Multiply(gg.Translate(ox, oy)), alpha)
}

// Over blends src onto dst at its own bounds.
func Over(dst *image.RGBA, src *image.RGBA, at image.Point, alpha float64) {
	if src == nil || alpha <= 0 {
		return
	}
	r := src.Bounds().Add(at.Sub(src.Bounds().Min))
	if alpha >= 1 {
		xdraw.Draw(dst, r, src, src.Bounds().Min, xdraw.Over)
		return
	}
	xdraw.DrawMask(dst, r, src, src.Bounds().Min, uniformAlpha(alpha), image.Point{}, xdraw.Over)
}

// AlphaAt returns the alpha of the pixel at (x, y), or 0 outside img.
func AlphaAt(img *image.RGBA, x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return 0
	}
	return img.Pix[img.PixOffset(x, y)+3]
}

// TransformRect returns the axis-aligned bounds of r under m.
func TransformRect(m gg.Matrix, x, y, w, h float64) (minX, minY, maxX, maxY float64) {
	corners := [4]gg.Point{
		m.TransformPoint(gg.Pt(x, y)),
		m.TransformPoint(gg.Pt(x+w, y)),
		m.TransformPoint(gg.Pt(x, y+h)),
		m.TransformPoint(gg.Pt(x+w, y+h)),
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// Invertible reports whether m has an inverse. gg.Matrix.Invert falls back
// to the identity for singular matrices, so callers check first.
func Invertible(m gg.Matrix) bool {
	return math.Abs(m.A*m.E-m.B*m.D) >= 1e-10
}

func maskOptions(alpha float64) *xdraw.Options {
	if alpha >= 1 {
		return nil
	}
	return &xdraw.Options{SrcMask: uniformAlpha(alpha)}
}

func uniformAlpha(alpha float64) *image.Uniform {
	return image.NewUniform(color.Alpha{A: uint8(math.Round(math.Min(alpha, 1) * 255))})
}

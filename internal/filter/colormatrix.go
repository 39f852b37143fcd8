package filter

import (
	"image"
	"math"
)

// Matrix is a 4x5 color transformation matrix in row-major order:
//
//	[R']   [m00 m01 m02 m03 m04]   [R]
//	[G'] = [m10 m11 m12 m13 m14] * [G]
//	[B']   [m20 m21 m22 m23 m24]   [B]
//	[A']   [m30 m31 m32 m33 m34]   [A]
//	                               [1]
//
// Channels are in [0, 255] during transformation, so the fifth column is
// an offset in 0..255 units.
type Matrix [20]float64

// Identity returns the pass-through matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0, 0, // R
		0, 1, 0, 0, 0, // G
		0, 0, 1, 0, 0, // B
		0, 0, 0, 1, 0, // A
	}
}

// Hue returns a luminance-preserving hue rotation by degrees.
func Hue(degrees float64) Matrix {
	rad := degrees * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)

	const (
		lumR = 0.213
		lumG = 0.715
		lumB = 0.072
	)

	return Matrix{
		lumR + cos*(1-lumR) + sin*(-lumR), lumG + cos*(-lumG) + sin*(-lumG), lumB + cos*(-lumB) + sin*(1-lumB), 0, 0,
		lumR + cos*(-lumR) + sin*(0.143), lumG + cos*(1-lumG) + sin*(0.140), lumB + cos*(-lumB) + sin*(-0.283), 0, 0,
		lumR + cos*(-lumR) + sin*(-(1 - lumR)), lumG + cos*(-lumG) + sin*(lumG), lumB + cos*(1-lumB) + sin*(lumB), 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Saturation returns a saturation matrix for value in [-100, 100].
// -100 is grayscale, 0 is unchanged, 100 quadruples saturation.
func Saturation(value float64) Matrix {
	value = Clean(value, 100)
	x := 1 + value/100
	if value > 0 {
		x = 1 + 3*value/100
	}

	const (
		lumR = 0.3086
		lumG = 0.6094
		lumB = 0.0820
	)

	inv := 1 - x
	return Matrix{
		lumR*inv + x, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + x, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + x, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Brightness returns the additive brightness matrix: identity with the RGB
// offsets set to offset. Alpha is untouched.
func Brightness(offset float64) Matrix {
	return Matrix{
		1, 0, 0, 0, offset,
		0, 1, 0, 0, offset,
		0, 0, 1, 0, offset,
		0, 0, 0, 1, 0,
	}
}

// Clean clamps v to [-limit, limit]. NaN becomes 0.
func Clean(v, limit float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(limit, math.Max(-limit, v))
}

// ScaleOffsets returns m with the offset column multiplied by s.
// Engines whose offsets are normalized to 0..1 use s = 255.
func (m Matrix) ScaleOffsets(s float64) Matrix {
	for row := 0; row < 4; row++ {
		m[row*5+4] *= s
	}
	return m
}

// Multiply returns the matrix that applies m first, then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	a := &other
	b := &m

	var r Matrix
	// 4x5 * 4x5, treating the implicit fifth row as (0 0 0 0 1)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a[row*5+k] * b[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = a[row*5+0]*b[4] + a[row*5+1]*b[9] +
			a[row*5+2]*b[14] + a[row*5+3]*b[19] + a[row*5+4]
	}
	return r
}

// Transform maps one straight-alpha color (channels in 0..255) through m
// without clamping.
func (m *Matrix) Transform(r, g, b, a float64) (float64, float64, float64, float64) {
	return m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4],
		m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9],
		m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14],
		m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]
}

// Apply applies the color matrix to img in place. img holds premultiplied
// pixels, as image.RGBA does.
func (m *Matrix) Apply(img *image.RGBA) {
	if img == nil {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i+3 < len(row); i += 4 {
			pr := float64(row[i+0])
			pg := float64(row[i+1])
			pb := float64(row[i+2])
			a := float64(row[i+3])

			// The coefficients assume straight-alpha values.
			var r, g, bl float64
			if a > 0 {
				r = pr * 255 / a
				g = pg * 255 / a
				bl = pb * 255 / a
			}

			nr, ng, nb, na := m.Transform(r, g, bl, a)
			na = clamp255(na)

			factor := na / 255
			row[i+0] = clampUint8(clamp255(nr) * factor)
			row[i+1] = clampUint8(clamp255(ng) * factor)
			row[i+2] = clampUint8(clamp255(nb) * factor)
			row[i+3] = clampUint8(na)
		}
	}
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// clampUint8 clamps v to [0, 255] and rounds to the nearest uint8.
func clampUint8(v float64) uint8 {
	return uint8(clamp255(v) + 0.5)
}

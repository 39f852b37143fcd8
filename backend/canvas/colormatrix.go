package canvas

import (
	"image"

	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/internal/filter"
)

// ColorMatrix is a 5x5 row-major color matrix. The fifth column holds
// offsets in 0..255 units; the fifth row is normally 0 0 0 0 1.
type ColorMatrix [25]float64

var identityMatrix = ColorMatrix{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
	0, 0, 0, 0, 1,
}

// deltaIndex maps contrast 0..100 to a channel multiplier.
var deltaIndex = [...]float64{
	0, 0.01, 0.02, 0.04, 0.05, 0.06, 0.07, 0.08, 0.1, 0.11,
	0.12, 0.14, 0.15, 0.16, 0.17, 0.18, 0.20, 0.21, 0.22, 0.24,
	0.25, 0.27, 0.28, 0.30, 0.32, 0.34, 0.36, 0.38, 0.40, 0.42,
	0.44, 0.46, 0.48, 0.5, 0.53, 0.56, 0.59, 0.62, 0.65, 0.68,
	0.71, 0.74, 0.77, 0.80, 0.83, 0.86, 0.89, 0.92, 0.95, 0.98,
	1.0, 1.06, 1.12, 1.18, 1.24, 1.30, 1.36, 1.42, 1.48, 1.54,
	1.60, 1.66, 1.72, 1.78, 1.84, 1.90, 1.96, 2.0, 2.12, 2.25,
	2.37, 2.50, 2.62, 2.75, 2.87, 3.0, 3.2, 3.4, 3.6, 3.8,
	4.0, 4.3, 4.7, 4.9, 5.0, 5.5, 6.0, 6.5, 6.8, 7.0,
	7.3, 7.5, 7.8, 8.0, 8.4, 8.7, 9.0, 9.4, 9.6, 9.8,
	10.0,
}

// NewColorMatrix returns an identity matrix.
func NewColorMatrix() *ColorMatrix {
	cm := identityMatrix
	return &cm
}

// Reset restores the identity.
func (cm *ColorMatrix) Reset() *ColorMatrix {
	*cm = identityMatrix
	return cm
}

// AdjustColor applies hue, contrast, brightness and saturation in that
// order. Zero values are skipped.
func (cm *ColorMatrix) AdjustColor(brightness, contrast, saturation, hue float64) *ColorMatrix {
	return cm.AdjustHue(hue).AdjustContrast(contrast).AdjustBrightness(brightness).AdjustSaturation(saturation)
}

// AdjustBrightness adds v, clamped to [-255, 255], to the color channels.
func (cm *ColorMatrix) AdjustBrightness(v float64) *ColorMatrix {
	v = filter.Clean(v, 255)
	if v == 0 {
		return cm
	}
	return cm.multiply(extend(filter.Brightness(v)))
}

// AdjustContrast scales contrast by v in [-100, 100].
func (cm *ColorMatrix) AdjustContrast(v float64) *ColorMatrix {
	v = filter.Clean(v, 100)
	if v == 0 {
		return cm
	}
	var x float64
	if v < 0 {
		x = 127 + v/100*127
	} else {
		i := int(v)
		frac := v - float64(i)
		if frac == 0 {
			x = deltaIndex[i]
		} else {
			x = deltaIndex[i]*(1-frac) + deltaIndex[i+1]*frac
		}
		x = x*127 + 127
	}
	s, o := x/127, 0.5*(127-x)
	return cm.multiply(ColorMatrix{
		s, 0, 0, 0, o,
		0, s, 0, 0, o,
		0, 0, s, 0, o,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 1,
	})
}

// AdjustSaturation changes saturation by v in [-100, 100].
func (cm *ColorMatrix) AdjustSaturation(v float64) *ColorMatrix {
	v = filter.Clean(v, 100)
	if v == 0 {
		return cm
	}
	return cm.multiply(extend(filter.Saturation(v)))
}

// AdjustHue rotates hue by v degrees, clamped to [-180, 180].
func (cm *ColorMatrix) AdjustHue(v float64) *ColorMatrix {
	v = filter.Clean(v, 180)
	if v == 0 {
		return cm
	}
	return cm.multiply(extend(filter.Hue(v)))
}

// Copy loads m. Entries past 25 are ignored and missing entries are taken
// from the identity. m is not modified.
func (cm *ColorMatrix) Copy(m []float64) *ColorMatrix {
	*cm = identityMatrix
	copy(cm[:], m)
	return cm
}

// Matrix4x5 returns the first four rows.
func (cm *ColorMatrix) Matrix4x5() filter.Matrix {
	var m filter.Matrix
	copy(m[:], cm[:20])
	return m
}

// multiply sets cm to cm x other.
func (cm *ColorMatrix) multiply(other ColorMatrix) *ColorMatrix {
	var col [5]float64
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			col[j] = cm[j+i*5]
		}
		for j := 0; j < 5; j++ {
			v := 0.0
			for k := 0; k < 5; k++ {
				v += other[j+k*5] * col[k]
			}
			cm[j+i*5] = v
		}
	}
	return cm
}

func extend(m filter.Matrix) ColorMatrix {
	var cm ColorMatrix
	copy(cm[:20], m[:])
	cm[24] = 1
	return cm
}

// ColorMatrixFilter recolors the pixels of a cached object.
type ColorMatrixFilter struct {
	Matrix ColorMatrix
}

// NewColorMatrixFilter wraps cm. A nil matrix is the identity.
func NewColorMatrixFilter(cm *ColorMatrix) *ColorMatrixFilter {
	if cm == nil {
		cm = NewColorMatrix()
	}
	return &ColorMatrixFilter{Matrix: *cm}
}

// Engine reports the owning engine.
func (f *ColorMatrixFilter) Engine() string { return backend.NameCanvas }

func (f *ColorMatrixFilter) apply(img *image.RGBA) {
	m := f.Matrix.Matrix4x5()
	m.Apply(img)
}

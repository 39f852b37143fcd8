package compose

import (
	"strings"

	"github.com/gogpu/gg/text"
)

// Wrap splits s into lines on newlines and, when maxWidth > 0, greedily
// on spaces so that no line exceeds maxWidth. A single word wider than
// maxWidth keeps its own line.
func Wrap(face text.Face, s string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		if maxWidth <= 0 || face.Advance(para) <= maxWidth {
			lines = append(lines, para)
			continue
		}
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if line != "" && face.Advance(candidate) > maxWidth {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// BaselineShift returns how far below the anchor y the alphabetic baseline
// sits for the named canvas text baseline.
func BaselineShift(face text.Face, baseline string) float64 {
	m := face.Metrics()
	switch baseline {
	case "top":
		return m.Ascent
	case "hanging":
		return m.Ascent * 0.8
	case "middle":
		return (m.Ascent - m.Descent) / 2
	case "bottom", "ideographic":
		return -m.Descent
	default: // "alphabetic"
		return 0
	}
}

// AlignShift returns the horizontal offset of a line of the given width
// for the named alignment.
func AlignShift(align string, width float64) float64 {
	switch align {
	case "center":
		return -width / 2
	case "right", "end":
		return -width
	default: // "left", "start"
		return 0
	}
}

package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color: #rgb, #rgba, #rrggbb, #rrggbbaa,
// rgb(r, g, b), rgba(r, g, b, a) or an SVG color name.
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return gg.RGBA{}, fmt.Errorf("compose: empty color")
	case s == "transparent":
		return gg.RGBA{}, nil
	case strings.HasPrefix(s, "#"):
		switch len(s) {
		case 4, 5, 7, 9:
			if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
				return gg.RGBA{}, fmt.Errorf("compose: bad color %q", s)
			}
			return gg.Hex(s), nil
		}
		return gg.RGBA{}, fmt.Errorf("compose: bad color %q", s)
	case strings.HasPrefix(s, "rgb"):
		return parseFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return gg.FromColor(c), nil
	}
	return gg.RGBA{}, fmt.Errorf("compose: unknown color %q", s)
}

func parseFunc(s string) (gg.RGBA, error) {
	open, closing := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || closing < open {
		return gg.RGBA{}, fmt.Errorf("compose: bad color %q", s)
	}
	parts := strings.Split(s[open+1:closing], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return gg.RGBA{}, fmt.Errorf("compose: bad color %q", s)
	}
	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		p = strings.TrimSpace(p)
		pct := strings.HasSuffix(p, "%")
		f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return gg.RGBA{}, fmt.Errorf("compose: bad color %q: %w", s, err)
		}
		switch {
		case pct:
			f /= 100
		case i < 3:
			f /= 255
		}
		v[i] = min(1, max(0, f))
	}
	return gg.RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

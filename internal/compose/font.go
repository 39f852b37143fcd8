package compose

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the size used when a font string names none, in pixels.
const DefaultFontSize = 10

// Font is a parsed CSS-style font shorthand such as "bold 20px NanumGothic"
// or "10pt NanumGothic".
type Font struct {
	Size   float64 // pixels
	Family string
	Bold   bool
	Italic bool
}

// ParseFont parses the subset of the CSS font shorthand both engines
// accept: optional style and weight keywords, a size in px or pt, then the
// family. Unparseable parts are ignored.
func ParseFont(s string) Font {
	f := Font{Size: DefaultFontSize, Family: "sans-serif"}
	fields := strings.Fields(s)
	for i, field := range fields {
		lower := strings.ToLower(field)
		switch {
		case lower == "italic" || lower == "oblique":
			f.Italic = true
		case lower == "bold" || lower == "bolder":
			f.Bold = true
		case lower == "normal":
		case isWeight(lower):
			w, _ := strconv.Atoi(lower)
			f.Bold = w >= 600
		default:
			if size, ok := parseSize(lower); ok {
				f.Size = size
				if rest := strings.Join(fields[i+1:], " "); rest != "" {
					f.Family = strings.Trim(rest, `"'`)
				}
				return f
			}
		}
	}
	return f
}

func isWeight(s string) bool {
	w, err := strconv.Atoi(s)
	return err == nil && w >= 100 && w <= 900 && w%100 == 0
}

func parseSize(s string) (float64, bool) {
	// "12px/1.5" carries a line height after the slash.
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	// 1pt is 96/72 px. Multiplying before dividing keeps whole point sizes
	// such as 9pt or 12pt exact.
	var num, den float64
	switch {
	case strings.HasSuffix(s, "px"):
		s, num, den = strings.TrimSuffix(s, "px"), 1, 1
	case strings.HasSuffix(s, "pt"):
		s, num, den = strings.TrimSuffix(s, "pt"), 96, 72
	default:
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * num / den, true
}

// String formats f back into shorthand form.
func (f Font) String() string {
	var b strings.Builder
	if f.Italic {
		b.WriteString("italic ")
	}
	if f.Bold {
		b.WriteString("bold ")
	}
	fmt.Fprintf(&b, "%gpx %s", f.Size, f.Family)
	return b.String()
}

type faceKey struct {
	data *[]byte
	size float64
}

var (
	facesMu sync.Mutex
	sources = map[*[]byte]*text.FontSource{}
	faces   = map[faceKey]text.Face{}
)

var (
	regularTTF    = goregular.TTF
	boldTTF       = gobold.TTF
	italicTTF     = goitalic.TTF
	boldItalicTTF = gobolditalic.TTF
	monoTTF       = gomono.TTF
)

// Face returns a face for f. Families are mapped onto the embedded Go
// fonts; only monospace families get a different typeface.
func Face(f Font) (text.Face, error) {
	data := fontData(f)
	key := faceKey{data: data, size: f.Size}

	facesMu.Lock()
	defer facesMu.Unlock()

	if face, ok := faces[key]; ok {
		return face, nil
	}
	src, ok := sources[data]
	if !ok {
		var err error
		src, err = text.NewFontSource(*data)
		if err != nil {
			return nil, fmt.Errorf("compose: font %q: %w", f.Family, err)
		}
		sources[data] = src
	}
	face := src.Face(f.Size)
	faces[key] = face
	return face, nil
}

func fontData(f Font) *[]byte {
	switch family := strings.ToLower(f.Family); {
	case family == "monospace" || strings.Contains(family, "mono") || strings.Contains(family, "courier"):
		return &monoTTF
	case f.Bold && f.Italic:
		return &boldItalicTTF
	case f.Bold:
		return &boldTTF
	case f.Italic:
		return &italicTTF
	default:
		return &regularTTF
	}
}

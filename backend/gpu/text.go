package gpu

import (
	"image"
	"strings"

	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/internal/compose"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// TextStyle is the style of a Text node.
type TextStyle struct {
	// Font is a CSS font shorthand, e.g. "bold 20px NanumGothic".
	Font string
	// Fill is a CSS hex color.
	Fill string
	// TextBaseline is a canvas baseline naming where the first line sits
	// relative to the anchored box top. Empty or "top" keeps the box top at
	// the anchor; "alphabetic" puts the first baseline there.
	TextBaseline string
	// Align aligns lines within the text box: "left", "center" or "right".
	Align string
}

// Text draws a string. Lines are split on newlines.
type Text struct {
	Node
	noChildren

	Text  string
	Style TextStyle

	AnchorX, AnchorY float64
}

// NewText creates a text node.
func NewText(str string, style TextStyle) *Text {
	return &Text{Node: newNode(""), Text: str, Style: style}
}

func (t *Text) face() text.Face {
	face, err := compose.Face(compose.ParseFont(t.Style.Font))
	if err != nil {
		Logger().Warn("text face unavailable", "font", t.Style.Font, "err", err)
		return nil
	}
	return face
}

// Measure returns the text box size.
func (t *Text) Measure() (width, height float64) {
	face := t.face()
	if face == nil {
		return 0, 0
	}
	lines := strings.Split(t.Text, "\n")
	for _, l := range lines {
		width = max(width, face.Advance(l))
	}
	return width, float64(len(lines)) * face.Metrics().LineHeight()
}

// baselineOffset is the vertical shift of the text box for the style's
// baseline.
func (t *Text) baselineOffset(face text.Face) float64 {
	if face == nil || t.Style.TextBaseline == "" {
		return 0
	}
	return compose.BaselineShift(face, t.Style.TextBaseline) - face.Metrics().Ascent
}

func (t *Text) localBounds() (backend.Rect, bool) {
	w, h := t.Measure()
	r := backend.Rect{
		X:     -t.AnchorX * w,
		Y:     -t.AnchorY*h + t.baselineOffset(t.face()),
		Width: w, Height: h,
	}
	return r, !r.Empty()
}

func (t *Text) containsLocal(x, y float64) bool {
	r, ok := t.localBounds()
	return ok && r.Contains(x, y)
}

func (t *Text) drawSelf(dst *image.RGBA, world gg.Matrix, alpha float64) {
	face := t.face()
	if face == nil || t.Text == "" {
		return
	}
	box, ok := t.localBounds()
	if !ok {
		return
	}
	fill, err := compose.ParseColor(t.Style.Fill)
	if err != nil {
		fill = gg.Black
	}
	lineHeight := face.Metrics().LineHeight()
	ascent := face.Metrics().Ascent

	compose.Label(dst, world, alpha, box.X, box.Y, box.Width, box.Height, func(dc *gg.Context, ox, oy float64) {
		dc.SetFont(face)
		dc.SetColor(fill.Color())
		for i, line := range strings.Split(t.Text, "\n") {
			x := box.X
			switch t.Style.Align {
			case "center":
				x += (box.Width - face.Advance(line)) / 2
			case "right":
				x += box.Width - face.Advance(line)
			}
			dc.DrawString(line, x-ox, box.Y+float64(i)*lineHeight+ascent-oy)
		}
	})
}

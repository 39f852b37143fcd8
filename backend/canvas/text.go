package canvas

import (
	"image"
	"math"

	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/internal/compose"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Text draws one or more lines of text. Lines break on newlines and, when
// LineWidth is set, on spaces so no line is wider than *LineWidth.
type Text struct {
	Display
	noChildren

	Text string
	// Font is a CSS font shorthand, e.g. "bold 20px NanumGothic".
	Font string
	// Color is a CSS color.
	Color string
	// TextBaseline is a canvas baseline: "top", "hanging", "middle",
	// "alphabetic", "ideographic" or "bottom".
	TextBaseline string
	// TextAlign is "left", "start", "center", "right" or "end".
	TextAlign string
	// LineHeight overrides the font's line height when non-zero.
	LineHeight float64
	// LineWidth is the wrap width; nil means no wrapping.
	LineWidth *float64
	// MaxHeight, when non-zero, drops lines that would end below it.
	// The first line is always drawn.
	MaxHeight float64

	UnderLine bool
	Strike    bool
}

// NewText creates a text object.
func NewText(str, font, color string) *Text {
	return &Text{
		Display:      newDisplay(),
		Text:         str,
		Font:         font,
		Color:        color,
		TextBaseline: "top",
		TextAlign:    "left",
	}
}

type textLayout struct {
	face       text.Face
	lines      []string
	lineHeight float64
	width      float64
	top        float64
}

func (t *Text) layout() (textLayout, bool) {
	face, err := compose.Face(compose.ParseFont(t.Font))
	if err != nil {
		Logger().Warn("text face unavailable", "font", t.Font, "err", err)
		return textLayout{}, false
	}
	l := textLayout{face: face, lineHeight: t.LineHeight}
	if l.lineHeight == 0 {
		l.lineHeight = face.Metrics().LineHeight()
	}
	maxWidth := 0.0
	if t.LineWidth != nil {
		maxWidth = *t.LineWidth
	}
	lines := compose.Wrap(face, t.Text, maxWidth)
	if t.MaxHeight > 0 {
		n := max(1, int(math.Floor(t.MaxHeight/l.lineHeight)))
		if n < len(lines) {
			lines = lines[:n]
		}
	}
	l.lines = lines
	for _, line := range lines {
		l.width = max(l.width, face.Advance(line))
	}
	l.top = compose.BaselineShift(face, t.TextBaseline) - face.Metrics().Ascent
	return l, true
}

// GetMeasuredWidth returns the width of the widest line.
func (t *Text) GetMeasuredWidth() float64 {
	l, ok := t.layout()
	if !ok {
		return 0
	}
	return l.width
}

// GetMeasuredLineHeight returns the distance between baselines.
func (t *Text) GetMeasuredLineHeight() float64 {
	l, ok := t.layout()
	if !ok {
		return 0
	}
	return l.lineHeight
}

// GetMeasuredHeight returns the height of all drawn lines.
func (t *Text) GetMeasuredHeight() float64 {
	l, ok := t.layout()
	if !ok {
		return 0
	}
	return float64(len(l.lines)) * l.lineHeight
}

func (t *Text) bounds() (backend.Rect, bool) {
	if t.Text == "" {
		return backend.Rect{}, false
	}
	l, ok := t.layout()
	if !ok {
		return backend.Rect{}, false
	}
	r := backend.Rect{
		X:      compose.AlignShift(t.TextAlign, l.width),
		Y:      l.top,
		Width:  l.width,
		Height: float64(len(l.lines)) * l.lineHeight,
	}
	return r, !r.Empty()
}

func (t *Text) draw(dst *image.RGBA, m gg.Matrix, alpha float64) {
	box, ok := t.bounds()
	if !ok {
		return
	}
	l, _ := t.layout()
	col, err := compose.ParseColor(t.Color)
	if err != nil {
		col = gg.Black
	}
	metrics := l.face.Metrics()
	shift := compose.BaselineShift(l.face, t.TextBaseline)
	thickness := max(1, l.face.Size()/15)

	compose.Label(dst, m, alpha, box.X, box.Y, box.Width, box.Height, func(dc *gg.Context, ox, oy float64) {
		dc.SetFont(l.face)
		dc.SetColor(col.Color())
		for i, line := range l.lines {
			w := l.face.Advance(line)
			x := compose.AlignShift(t.TextAlign, w) - ox
			baseline := float64(i)*l.lineHeight + shift - oy
			dc.DrawString(line, x, baseline)
			if t.UnderLine {
				dc.DrawRectangle(x, baseline+metrics.Descent/2, w, thickness)
			}
			if t.Strike {
				dc.DrawRectangle(x, baseline-metrics.Ascent*0.3, w, thickness)
			}
		}
		if t.UnderLine || t.Strike {
			t.fillDecorations(dc.Fill)
		}
	})
}

// fillDecorations fills the underline and strike rectangles. A failed fill
// leaves the glyphs undecorated and is logged.
func (t *Text) fillDecorations(fill func() error) {
	if err := fill(); err != nil {
		Logger().Warn("text decoration fill failed", "font", t.Font, "err", err)
	}
}

func (t *Text) clone() DisplayObject {
	n := *t
	t.Display.copyTo(&n.Display)
	if t.LineWidth != nil {
		w := *t.LineWidth
		n.LineWidth = &w
	}
	return &n
}

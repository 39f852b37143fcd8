package canvas

import (
	"image"
	"math"

	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/internal/compose"
	"github.com/gogpu/gg"
)

type opKind int

const (
	opMoveTo opKind = iota
	opLineTo
	opClosePath
	opRect
	opRoundRect
	opCircle
	opEllipse
	opFill
	opStroke
)

// instruction is one recorded drawing command. Coordinates are in local
// space; fill and stroke instructions carry their style.
type instruction struct {
	kind       opKind
	x, y, w, h float64
	r          float64
	color      gg.RGBA
	width      float64
}

// Graphics records drawing instructions with CSS colors. Each path is
// filled and stroked with the styles active when the next path begins or
// the style changes.
type Graphics struct {
	ops []instruction

	fill        *gg.RGBA
	stroke      *gg.RGBA
	strokeWidth float64
	pathOpen    bool
}

// NewGraphics returns an empty Graphics.
func NewGraphics() *Graphics {
	return &Graphics{strokeWidth: 1}
}

func (g *Graphics) color(css string) *gg.RGBA {
	if css == "" {
		return nil
	}
	c, err := compose.ParseColor(css)
	if err != nil {
		Logger().Warn("invalid color", "color", css, "err", err)
		return nil
	}
	return &c
}

// endPath closes out the current path with the active styles.
func (g *Graphics) endPath() {
	if !g.pathOpen {
		return
	}
	if g.fill != nil {
		g.ops = append(g.ops, instruction{kind: opFill, color: *g.fill})
	}
	if g.stroke != nil && g.strokeWidth > 0 {
		g.ops = append(g.ops, instruction{kind: opStroke, color: *g.stroke, width: g.strokeWidth})
	}
	g.pathOpen = false
}

func (g *Graphics) add(in instruction) *Graphics {
	g.ops = append(g.ops, in)
	g.pathOpen = true
	return g
}

// BeginFill starts filling subsequent paths with a CSS color. An empty
// color ends filling.
func (g *Graphics) BeginFill(color string) *Graphics {
	g.endPath()
	g.fill = g.color(color)
	return g
}

// EndFill ends filling.
func (g *Graphics) EndFill() *Graphics { return g.BeginFill("") }

// BeginStroke starts stroking subsequent paths with a CSS color.
func (g *Graphics) BeginStroke(color string) *Graphics {
	g.endPath()
	g.stroke = g.color(color)
	return g
}

// EndStroke ends stroking.
func (g *Graphics) EndStroke() *Graphics { return g.BeginStroke("") }

// SetStrokeStyle sets the stroke thickness.
func (g *Graphics) SetStrokeStyle(thickness float64) *Graphics {
	g.endPath()
	g.strokeWidth = thickness
	return g
}

// MoveTo starts a new subpath.
func (g *Graphics) MoveTo(x, y float64) *Graphics {
	return g.add(instruction{kind: opMoveTo, x: x, y: y})
}

// LineTo adds a line to (x, y).
func (g *Graphics) LineTo(x, y float64) *Graphics {
	return g.add(instruction{kind: opLineTo, x: x, y: y})
}

// ClosePath closes the current subpath.
func (g *Graphics) ClosePath() *Graphics {
	return g.add(instruction{kind: opClosePath})
}

// DrawRect adds a rectangle.
func (g *Graphics) DrawRect(x, y, w, h float64) *Graphics {
	return g.add(instruction{kind: opRect, x: x, y: y, w: w, h: h})
}

// DrawRoundRect adds a rectangle with rounded corners.
func (g *Graphics) DrawRoundRect(x, y, w, h, radius float64) *Graphics {
	return g.add(instruction{kind: opRoundRect, x: x, y: y, w: w, h: h, r: radius})
}

// DrawCircle adds a circle centered on (x, y).
func (g *Graphics) DrawCircle(x, y, radius float64) *Graphics {
	return g.add(instruction{kind: opCircle, x: x, y: y, r: radius})
}

// DrawEllipse adds the ellipse inscribed in the rectangle (x, y, w, h).
func (g *Graphics) DrawEllipse(x, y, w, h float64) *Graphics {
	return g.add(instruction{kind: opEllipse, x: x, y: y, w: w, h: h})
}

// Clear removes all instructions and resets the styles.
func (g *Graphics) Clear() *Graphics {
	*g = Graphics{strokeWidth: 1}
	return g
}

// instructions returns the recorded instructions with the open path
// closed out.
func (g *Graphics) instructions() []instruction {
	ops := g.ops
	if g.pathOpen {
		if g.fill != nil {
			ops = append(ops[:len(ops):len(ops)], instruction{kind: opFill, color: *g.fill})
		}
		if g.stroke != nil && g.strokeWidth > 0 {
			ops = append(ops[:len(ops):len(ops)], instruction{kind: opStroke, color: *g.stroke, width: g.strokeWidth})
		}
	}
	return ops
}

func (g *Graphics) paint(dc *gg.Context) {
	ops := g.instructions()
	for i, in := range ops {
		switch in.kind {
		case opMoveTo:
			dc.MoveTo(in.x, in.y)
		case opLineTo:
			dc.LineTo(in.x, in.y)
		case opClosePath:
			dc.ClosePath()
		case opRect:
			dc.DrawRectangle(in.x, in.y, in.w, in.h)
		case opRoundRect:
			dc.DrawRoundedRectangle(in.x, in.y, in.w, in.h, in.r)
		case opCircle:
			dc.DrawCircle(in.x, in.y, in.r)
		case opEllipse:
			dc.DrawEllipse(in.x+in.w/2, in.y+in.h/2, in.w/2, in.h/2)
		case opFill, opStroke:
			dc.SetColor(in.color.Color())
			if in.kind == opFill {
				_ = dc.FillPreserve()
			} else {
				dc.SetLineWidth(in.width)
				_ = dc.StrokePreserve()
			}
			// A painted path ends unless another style paints it too.
			if i+1 < len(ops) && !isPaint(ops[i+1].kind) {
				dc.ClearPath()
			}
		}
	}
	dc.ClearPath()
}

func isPaint(k opKind) bool { return k == opFill || k == opStroke }

// bounds covers every recorded geometry, widened by half the largest
// stroke.
func (g *Graphics) bounds() (backend.Rect, bool) {
	var r backend.Rect
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x0, y0, x1, y1 float64) {
		minX, minY = math.Min(minX, math.Min(x0, x1)), math.Min(minY, math.Min(y0, y1))
		maxX, maxY = math.Max(maxX, math.Max(x0, x1)), math.Max(maxY, math.Max(y0, y1))
	}
	stroke := 0.0
	for _, in := range g.instructions() {
		switch in.kind {
		case opMoveTo, opLineTo:
			grow(in.x, in.y, in.x, in.y)
		case opRect, opRoundRect, opEllipse:
			grow(in.x, in.y, in.x+in.w, in.y+in.h)
		case opCircle:
			grow(in.x-in.r, in.y-in.r, in.x+in.r, in.y+in.r)
		case opStroke:
			stroke = math.Max(stroke, in.width)
		}
	}
	if math.IsInf(minX, 1) {
		return r, false
	}
	hw := stroke / 2
	r = backend.Rect{X: minX - hw, Y: minY - hw, Width: maxX - minX + stroke, Height: maxY - minY + stroke}
	return r, !r.Empty()
}

func (g *Graphics) clone() *Graphics {
	n := *g
	n.ops = append([]instruction(nil), g.ops...)
	return &n
}

// Shape draws a Graphics.
type Shape struct {
	Display
	noChildren

	Graphics *Graphics
}

// NewShape creates a shape with empty graphics.
func NewShape() *Shape {
	return &Shape{Display: newDisplay(), Graphics: NewGraphics()}
}

func (s *Shape) bounds() (backend.Rect, bool) {
	if s.Graphics == nil {
		return backend.Rect{}, false
	}
	return s.Graphics.bounds()
}

func (s *Shape) draw(dst *image.RGBA, m gg.Matrix, alpha float64) {
	if s.Graphics == nil || len(s.Graphics.ops) == 0 {
		return
	}
	compose.Vector(dst, m, alpha, s.Graphics.paint)
}

// The clone shares nothing with s.
func (s *Shape) clone() DisplayObject {
	n := &Shape{}
	s.Display.copyTo(&n.Display)
	if s.Graphics != nil {
		n.Graphics = s.Graphics.clone()
	}
	return n
}

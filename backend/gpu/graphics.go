package gpu

import (
	"image"
	"math"

	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/internal/compose"
	"github.com/gogpu/gg"
)

type shapeKind int

const (
	shapeRect shapeKind = iota
	shapeCircle
	shapeEllipse
	shapePolygon
)

type fillStyle struct {
	color uint32
	alpha float64
}

type lineStyle struct {
	width float64
	color uint32
	alpha float64
}

type shape struct {
	kind   shapeKind
	x, y   float64
	w, h   float64 // rect size, or ellipse radii
	points []gg.Point
	closed bool

	fill *fillStyle
	line lineStyle
}

// Graphics records vector shapes. Colors are 0xRRGGBB.
type Graphics struct {
	Node
	noChildren

	shapes  []shape
	fill    *fillStyle
	line    lineStyle
	current *shape // open polygon started by MoveTo
}

// NewGraphics creates an empty graphics object.
func NewGraphics() *Graphics {
	return &Graphics{Node: newNode("")}
}

// BeginFill fills subsequent shapes with color.
func (g *Graphics) BeginFill(color uint32, alpha float64) *Graphics {
	g.current = nil
	g.fill = &fillStyle{color: color, alpha: alpha}
	return g
}

// EndFill stops filling subsequent shapes.
func (g *Graphics) EndFill() *Graphics {
	g.current = nil
	g.fill = nil
	return g
}

// LineStyle strokes subsequent shapes. A zero width disables stroking.
func (g *Graphics) LineStyle(width float64, color uint32, alpha float64) *Graphics {
	g.line = lineStyle{width: width, color: color, alpha: alpha}
	return g
}

// DrawRect adds a rectangle.
func (g *Graphics) DrawRect(x, y, w, h float64) *Graphics {
	return g.add(shape{kind: shapeRect, x: x, y: y, w: w, h: h})
}

// DrawCircle adds a circle centered at (x, y).
func (g *Graphics) DrawCircle(x, y, r float64) *Graphics {
	return g.add(shape{kind: shapeCircle, x: x, y: y, w: r, h: r})
}

// DrawEllipse adds an ellipse centered at (x, y) with radii rx and ry.
func (g *Graphics) DrawEllipse(x, y, rx, ry float64) *Graphics {
	return g.add(shape{kind: shapeEllipse, x: x, y: y, w: rx, h: ry})
}

// MoveTo starts a new polygon.
func (g *Graphics) MoveTo(x, y float64) *Graphics {
	g.add(shape{kind: shapePolygon, points: []gg.Point{gg.Pt(x, y)}})
	g.current = &g.shapes[len(g.shapes)-1]
	return g
}

// LineTo extends the current polygon, starting one at the origin if none.
func (g *Graphics) LineTo(x, y float64) *Graphics {
	if g.current == nil {
		g.MoveTo(0, 0)
	}
	g.current.points = append(g.current.points, gg.Pt(x, y))
	return g
}

// ClosePath closes the current polygon.
func (g *Graphics) ClosePath() *Graphics {
	if g.current != nil {
		g.current.closed = true
		g.current = nil
	}
	return g
}

// Clear removes every shape and resets styles.
func (g *Graphics) Clear() *Graphics {
	*g = Graphics{Node: g.Node}
	g.boundsValid = false
	return g
}

func (g *Graphics) add(s shape) *Graphics {
	g.current = nil
	if g.fill != nil {
		f := *g.fill
		s.fill = &f
	}
	s.line = g.line
	g.shapes = append(g.shapes, s)
	g.boundsValid = false
	return g
}

func (s *shape) bounds() backend.Rect {
	var r backend.Rect
	switch s.kind {
	case shapeRect:
		r = backend.Rect{X: math.Min(s.x, s.x+s.w), Y: math.Min(s.y, s.y+s.h), Width: math.Abs(s.w), Height: math.Abs(s.h)}
	case shapeCircle, shapeEllipse:
		r = backend.Rect{X: s.x - s.w, Y: s.y - s.h, Width: 2 * s.w, Height: 2 * s.h}
	case shapePolygon:
		if len(s.points) == 0 {
			return r
		}
		minX, minY := s.points[0].X, s.points[0].Y
		maxX, maxY := minX, minY
		for _, p := range s.points[1:] {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
		r = backend.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	}
	if s.line.width > 0 {
		hw := s.line.width / 2
		r = backend.Rect{X: r.X - hw, Y: r.Y - hw, Width: r.Width + s.line.width, Height: r.Height + s.line.width}
	}
	return r
}

func (s *shape) contains(x, y float64) bool {
	if s.fill == nil {
		return false
	}
	switch s.kind {
	case shapeRect:
		return s.bounds().Contains(x, y)
	case shapeCircle, shapeEllipse:
		if s.w <= 0 || s.h <= 0 {
			return false
		}
		dx, dy := (x-s.x)/s.w, (y-s.y)/s.h
		return dx*dx+dy*dy <= 1
	case shapePolygon:
		return pointInPolygon(s.points, x, y)
	}
	return false
}

// pointInPolygon is the even-odd crossing test.
func pointInPolygon(pts []gg.Point, x, y float64) bool {
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		pi, pj := pts[i], pts[j]
		if (pi.Y > y) != (pj.Y > y) && x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

func (g *Graphics) localBounds() (backend.Rect, bool) {
	var r backend.Rect
	for i := range g.shapes {
		r = r.Union(g.shapes[i].bounds())
	}
	return r, !r.Empty()
}

func (g *Graphics) containsLocal(x, y float64) bool {
	for i := range g.shapes {
		if g.shapes[i].contains(x, y) {
			return true
		}
	}
	return false
}

func (g *Graphics) drawSelf(dst *image.RGBA, world gg.Matrix, alpha float64) {
	if len(g.shapes) == 0 {
		return
	}
	compose.Vector(dst, world, alpha, func(dc *gg.Context) {
		for i := range g.shapes {
			s := &g.shapes[i]
			tracePath(dc, s)
			if s.fill != nil {
				dc.SetColor(hexColor(s.fill.color, s.fill.alpha).Color())
				_ = dc.FillPreserve()
			}
			if s.line.width > 0 {
				dc.SetColor(hexColor(s.line.color, s.line.alpha).Color())
				dc.SetLineWidth(s.line.width)
				_ = dc.StrokePreserve()
			}
			dc.ClearPath()
		}
	})
}

func tracePath(dc *gg.Context, s *shape) {
	switch s.kind {
	case shapeRect:
		dc.DrawRectangle(s.x, s.y, s.w, s.h)
	case shapeCircle:
		dc.DrawCircle(s.x, s.y, s.w)
	case shapeEllipse:
		dc.DrawEllipse(s.x, s.y, s.w, s.h)
	case shapePolygon:
		for i, p := range s.points {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		if s.closed || s.fill != nil {
			dc.ClosePath()
		}
	}
}

func hexColor(c uint32, alpha float64) gg.RGBA {
	return gg.RGBA{
		R: float64(c>>16&0xff) / 255,
		G: float64(c>>8&0xff) / 255,
		B: float64(c&0xff) / 255,
		A: alpha,
	}
}

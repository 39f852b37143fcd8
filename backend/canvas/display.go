package canvas

import (
	"image"
	"math"

	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/internal/compose"
	"github.com/gogpu/gg"
)

// DisplayObject is implemented by everything that can sit on a stage.
type DisplayObject interface {
	backend.Object

	// Base returns the shared properties of the object.
	Base() *Display

	// draw paints the object's content under m, which already includes
	// the object's own transform.
	draw(dst *image.RGBA, m gg.Matrix, alpha float64)

	// bounds returns the untransformed content bounds. ok is false when
	// the object has nothing to measure.
	bounds() (r backend.Rect, ok bool)

	// clone returns a copy detached from any parent.
	clone() DisplayObject

	children() []DisplayObject
}

// Display holds the properties shared by all display objects. Rotation and
// skew are in degrees; (RegX, RegY) is the local point placed at (X, Y).
type Display struct {
	Name string

	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	SkewX, SkewY   float64
	RegX, RegY     float64

	Alpha   float64
	Visible bool

	// MouseEnabled lets the object and its children receive mouse events.
	MouseEnabled bool
	// TickEnabled lets the object and its children receive ticks.
	TickEnabled bool

	// Filters are applied when the object is cached.
	Filters []*ColorMatrixFilter

	// OnTick is called on every stage update.
	OnTick func()
	// OnMouseDown is called when a press lands on the object or one of
	// its descendants.
	OnMouseDown func()

	parent *Container

	cache     *image.RGBA
	cacheRect backend.Rect
}

func newDisplay() Display {
	return Display{
		ScaleX:       1,
		ScaleY:       1,
		Alpha:        1,
		Visible:      true,
		MouseEnabled: true,
		TickEnabled:  true,
	}
}

// Base returns d itself so embedding types satisfy DisplayObject.
func (d *Display) Base() *Display { return d }

// Engine reports the owning engine.
func (d *Display) Engine() string { return backend.NameCanvas }

// Parent returns the container holding the object, or nil.
func (d *Display) Parent() *Container { return d.parent }

// IsCached reports whether the object draws from its cache.
func (d *Display) IsCached() bool { return d.cache != nil }

// GetMatrix returns the matrix mapping local to parent space.
func (d *Display) GetMatrix() gg.Matrix {
	cos, sin := 1.0, 0.0
	if math.Mod(d.Rotation, 360) != 0 {
		r := d.Rotation * math.Pi / 180
		cos, sin = math.Cos(r), math.Sin(r)
	}
	rs := gg.Matrix{
		A: cos * d.ScaleX, B: -sin * d.ScaleY,
		D: sin * d.ScaleX, E: cos * d.ScaleY,
	}

	var m gg.Matrix
	if d.SkewX != 0 || d.SkewY != 0 {
		kx, ky := d.SkewX*math.Pi/180, d.SkewY*math.Pi/180
		m = gg.Matrix{
			A: math.Cos(ky), B: -math.Sin(kx), C: d.X,
			D: math.Sin(ky), E: math.Cos(kx), F: d.Y,
		}.Multiply(rs)
	} else {
		rs.C, rs.F = d.X, d.Y
		m = rs
	}

	if d.RegX != 0 || d.RegY != 0 {
		m.C -= d.RegX*m.A + d.RegY*m.B
		m.F -= d.RegX*m.D + d.RegY*m.E
	}
	return m
}

// GetConcatenatedMatrix returns the matrix mapping local to stage space.
func (d *Display) GetConcatenatedMatrix() gg.Matrix {
	m := d.GetMatrix()
	for p := d.parent; p != nil; p = p.parent {
		m = p.GetMatrix().Multiply(m)
	}
	return m
}

// GlobalToLocal maps a stage point into local space. ok is false when the
// concatenated matrix is singular.
func (d *Display) GlobalToLocal(x, y float64) (lx, ly float64, ok bool) {
	m := d.GetConcatenatedMatrix()
	if !compose.Invertible(m) {
		return 0, 0, false
	}
	p := m.Invert().TransformPoint(gg.Pt(x, y))
	return p.X, p.Y, true
}

// LocalToGlobal maps a local point into stage space.
func (d *Display) LocalToGlobal(x, y float64) (float64, float64) {
	p := d.GetConcatenatedMatrix().TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}

func (d *Display) copyTo(dst *Display) {
	*dst = *d
	dst.parent = nil
	dst.Filters = append([]*ColorMatrixFilter(nil), d.Filters...)
	dst.OnTick, dst.OnMouseDown = nil, nil
	dst.cache, dst.cacheRect = nil, backend.Rect{}
}

// Clone returns a copy of obj with the same properties, detached from any
// parent. Event handlers and the cache are not copied. Containers are
// cloned with their children.
func Clone(obj DisplayObject) DisplayObject {
	return obj.clone()
}

// GetBounds returns the untransformed bounds of obj, or the cache bounds
// when obj is cached.
func GetBounds(obj DisplayObject) (backend.Rect, bool) {
	d := obj.Base()
	if d.cache != nil {
		return d.cacheRect, true
	}
	return obj.bounds()
}

// GetTransformedBounds returns the bounds of obj in its parent's space.
func GetTransformedBounds(obj DisplayObject) (backend.Rect, bool) {
	r, ok := GetBounds(obj)
	if !ok {
		return backend.Rect{}, false
	}
	minX, minY, maxX, maxY := compose.TransformRect(obj.Base().GetMatrix(), r.X, r.Y, r.Width, r.Height)
	return backend.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// HitTest reports whether obj paints a visible pixel at the local point
// (x, y). Alpha and visibility of obj itself are ignored.
func HitTest(obj DisplayObject, x, y float64) bool {
	hit := compose.NewFrame(1, 1)
	drawContent(hit, obj, gg.Translate(-x, -y), 1)
	return compose.AlphaAt(hit, 0, 0) > 1
}

// Cache renders obj into an offscreen image covering its bounds and runs
// its filters over the result. Later draws use the image.
func Cache(obj DisplayObject) error {
	d := obj.Base()
	d.cache = nil
	r, ok := obj.bounds()
	if !ok || r.Empty() {
		return ErrNoBounds
	}
	x0, y0 := math.Floor(r.X), math.Floor(r.Y)
	w := int(math.Ceil(r.X+r.Width) - x0)
	h := int(math.Ceil(r.Y+r.Height) - y0)

	img := compose.NewFrame(w, h)
	drawContent(img, obj, gg.Translate(-x0, -y0), 1)
	for _, f := range d.Filters {
		f.apply(img)
	}
	d.cache = img
	d.cacheRect = backend.Rect{X: x0, Y: y0, Width: float64(w), Height: float64(h)}
	return nil
}

// UpdateCache redraws the cache of a cached object.
func UpdateCache(obj DisplayObject) error {
	if !obj.Base().IsCached() {
		return nil
	}
	return Cache(obj)
}

// Uncache drops the cache; obj draws live again.
func Uncache(obj DisplayObject) {
	d := obj.Base()
	d.cache = nil
	d.cacheRect = backend.Rect{}
}

// drawObject draws obj with its own transform and alpha under the parent
// matrix m.
func drawObject(dst *image.RGBA, obj DisplayObject, m gg.Matrix, alpha float64) {
	d := obj.Base()
	if !d.Visible || d.Alpha <= 0 || d.ScaleX == 0 || d.ScaleY == 0 {
		return
	}
	drawContent(dst, obj, m.Multiply(d.GetMatrix()), alpha*d.Alpha)
}

// drawContent draws obj under m, from the cache when there is one.
func drawContent(dst *image.RGBA, obj DisplayObject, m gg.Matrix, alpha float64) {
	d := obj.Base()
	if d.cache != nil {
		compose.Image(dst, d.cache, m.Multiply(gg.Translate(d.cacheRect.X, d.cacheRect.Y)), alpha)
		return
	}
	obj.draw(dst, m, alpha)
}

// tick delivers a tick to obj and its descendants.
func tick(obj DisplayObject) {
	d := obj.Base()
	if !d.TickEnabled {
		return
	}
	if d.OnTick != nil {
		d.OnTick()
	}
	for _, c := range obj.children() {
		tick(c)
	}
}

// objectUnderPoint returns the front-most mouse-enabled leaf under the
// stage point (x, y), or nil.
func objectUnderPoint(obj DisplayObject, x, y float64) DisplayObject {
	d := obj.Base()
	if !d.Visible || !d.MouseEnabled {
		return nil
	}
	if kids := obj.children(); kids != nil {
		for i := len(kids) - 1; i >= 0; i-- {
			if hit := objectUnderPoint(kids[i], x, y); hit != nil {
				return hit
			}
		}
		return nil
	}
	lx, ly, ok := d.GlobalToLocal(x, y)
	if ok && HitTest(obj, lx, ly) {
		return obj
	}
	return nil
}

// noChildren is embedded by leaf objects.
type noChildren struct{}

func (noChildren) children() []DisplayObject { return nil }

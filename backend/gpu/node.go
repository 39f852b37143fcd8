package gpu

import (
	"image"
	"math"

	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/internal/compose"
	"github.com/gogpu/gg"
)

// DisplayObject is implemented by every node in the scene graph.
type DisplayObject interface {
	backend.Object

	// Base returns the shared transform and state of the object.
	Base() *Node

	// localBounds returns the object's own content bounds in local space,
	// excluding children. ok is false when there is no content.
	localBounds() (r backend.Rect, ok bool)

	// containsLocal reports whether a local point lies on the content.
	containsLocal(x, y float64) bool

	// drawSelf draws the object's own content under world.
	drawSelf(dst *image.RGBA, world gg.Matrix, alpha float64)

	children() []DisplayObject
}

// Node holds the transform and state shared by all display objects.
// Rotation and skew are in radians. The pivot is the local point placed
// at (X, Y).
type Node struct {
	Name string

	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	SkewX, SkewY   float64
	PivotX, PivotY float64

	Alpha   float64
	Visible bool

	// Interactive makes the object a target for pointer events.
	Interactive bool
	// InteractiveChildren lets pointer events and hit tests descend.
	InteractiveChildren bool

	// Filters are applied every frame to the rendered subtree.
	Filters []*ColorMatrixFilter

	// OnPointerDown is called when the object receives a pointer press.
	OnPointerDown func()

	parent *Container

	bounds      backend.Rect
	boundsValid bool
	destroyed   bool
}

func newNode(name string) Node {
	return Node{
		Name:                name,
		ScaleX:              1,
		ScaleY:              1,
		Alpha:               1,
		Visible:             true,
		InteractiveChildren: true,
	}
}

// Base returns n itself so embedding types satisfy DisplayObject.
func (n *Node) Base() *Node { return n }

// Engine reports the owning engine.
func (n *Node) Engine() string { return backend.NameGPU }

// Parent returns the container holding the object, or nil.
func (n *Node) Parent() *Container { return n.parent }

// Destroyed reports whether Destroy has been called.
func (n *Node) Destroyed() bool { return n.destroyed }

// SetTransform sets every transform component at once.
func (n *Node) SetTransform(x, y, scaleX, scaleY, rotation, skewX, skewY, pivotX, pivotY float64) {
	n.X, n.Y = x, y
	n.ScaleX, n.ScaleY = scaleX, scaleY
	n.Rotation = rotation
	n.SkewX, n.SkewY = skewX, skewY
	n.PivotX, n.PivotY = pivotX, pivotY
	n.boundsValid = false
}

// LocalTransform returns the matrix mapping local to parent space.
func (n *Node) LocalTransform() gg.Matrix {
	a := math.Cos(n.Rotation+n.SkewY) * n.ScaleX
	b := math.Sin(n.Rotation+n.SkewY) * n.ScaleX
	c := -math.Sin(n.Rotation-n.SkewX) * n.ScaleY
	d := math.Cos(n.Rotation-n.SkewX) * n.ScaleY
	return gg.Matrix{
		A: a, B: c, C: n.X - (n.PivotX*a + n.PivotY*c),
		D: b, E: d, F: n.Y - (n.PivotX*b + n.PivotY*d),
	}
}

// WorldTransform returns the matrix mapping local to stage space,
// recomputed from the ancestors on every call.
func (n *Node) WorldTransform() gg.Matrix {
	m := n.LocalTransform()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalTransform().Multiply(m)
	}
	return m
}

// ToLocal maps a stage-space point into the object's local space. ok is
// false when the world transform is singular, as with a zero scale.
func (n *Node) ToLocal(x, y float64) (lx, ly float64, ok bool) {
	m := n.WorldTransform()
	if !compose.Invertible(m) {
		return 0, 0, false
	}
	p := m.Invert().TransformPoint(gg.Pt(x, y))
	return p.X, p.Y, true
}

// GetBounds returns the stage-space bounds of obj and its visible
// descendants. With skipUpdate the bounds recorded during the last render
// are returned when still valid.
func GetBounds(obj DisplayObject, skipUpdate bool) backend.Rect {
	n := obj.Base()
	if skipUpdate && n.boundsValid {
		return n.bounds
	}
	r := subtreeBounds(obj, n.WorldTransform())
	n.bounds, n.boundsValid = r, true
	return r
}

func subtreeBounds(obj DisplayObject, world gg.Matrix) backend.Rect {
	var r backend.Rect
	if !obj.Base().Visible {
		return r
	}
	if lb, ok := obj.localBounds(); ok {
		minX, minY, maxX, maxY := compose.TransformRect(world, lb.X, lb.Y, lb.Width, lb.Height)
		r = backend.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	}
	for _, child := range obj.children() {
		r = r.Union(subtreeBounds(child, world.Multiply(child.Base().LocalTransform())))
	}
	return r
}

// render draws obj and its subtree onto dst.
func render(dst *image.RGBA, obj DisplayObject, parentWorld gg.Matrix, parentAlpha float64) {
	n := obj.Base()
	if !n.Visible || n.destroyed {
		return
	}
	world := parentWorld.Multiply(n.LocalTransform())
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return
	}

	target := dst
	if len(n.Filters) > 0 {
		target = compose.NewFrame(dst.Bounds().Dx(), dst.Bounds().Dy())
	}

	obj.drawSelf(target, world, alpha)
	for _, child := range obj.children() {
		render(target, child, world, alpha)
	}

	if target != dst {
		for _, f := range n.Filters {
			f.apply(target)
		}
		compose.Over(dst, target, dst.Bounds().Min, 1)
	}
	n.boundsValid = false
}

// noChildren is embedded by leaf objects.
type noChildren struct{}

func (noChildren) children() []DisplayObject { return nil }

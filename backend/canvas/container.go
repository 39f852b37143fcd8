package canvas

import (
	"image"
	"slices"

	"github.com/entrylabs/ge/backend"
	"github.com/gogpu/gg"
)

// Container groups display objects. Children are drawn in order, so the
// last child is on top.
type Container struct {
	Display

	list []DisplayObject
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{Display: newDisplay()}
}

// AddChild appends objects, removing each from its previous parent first.
func (c *Container) AddChild(objs ...DisplayObject) {
	for _, obj := range objs {
		d := obj.Base()
		if d.parent != nil {
			d.parent.RemoveChild(obj)
		}
		d.parent = c
		c.list = append(c.list, obj)
	}
}

// RemoveChild detaches obj. It reports whether obj was a child.
func (c *Container) RemoveChild(obj DisplayObject) bool {
	i := slices.Index(c.list, obj)
	if i < 0 {
		return false
	}
	c.list = slices.Delete(c.list, i, i+1)
	obj.Base().parent = nil
	return true
}

// RemoveAllChildren detaches every child.
func (c *Container) RemoveAllChildren() {
	for _, obj := range c.list {
		obj.Base().parent = nil
	}
	c.list = nil
}

// Children returns the children in draw order.
func (c *Container) Children() []DisplayObject { return c.list }

// NumChildren returns the number of children.
func (c *Container) NumChildren() int { return len(c.list) }

func (c *Container) children() []DisplayObject {
	if c.list == nil {
		return []DisplayObject{}
	}
	return c.list
}

func (c *Container) draw(dst *image.RGBA, m gg.Matrix, alpha float64) {
	for _, child := range c.list {
		drawObject(dst, child, m, alpha)
	}
}

// bounds is the union of the children's transformed bounds.
func (c *Container) bounds() (backend.Rect, bool) {
	var r backend.Rect
	found := false
	for _, child := range c.list {
		if !child.Base().Visible {
			continue
		}
		cr, ok := GetTransformedBounds(child)
		if !ok {
			continue
		}
		r = r.Union(cr)
		found = true
	}
	return r, found
}

func (c *Container) clone() DisplayObject {
	n := &Container{}
	c.Display.copyTo(&n.Display)
	for _, child := range c.list {
		n.AddChild(child.clone())
	}
	return n
}

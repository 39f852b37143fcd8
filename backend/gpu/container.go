package gpu

import (
	"image"
	"slices"

	"github.com/entrylabs/ge/backend"
	"github.com/gogpu/gg"
)

// Container groups display objects. It draws nothing itself.
type Container struct {
	Node
	list []DisplayObject
}

// NewContainer creates an empty container. name is only used for debugging.
func NewContainer(name string) *Container {
	return &Container{Node: newNode(name)}
}

// AddChild appends objects to the container, removing each from its
// previous parent first.
func (c *Container) AddChild(objs ...DisplayObject) {
	for _, obj := range objs {
		n := obj.Base()
		if n.parent != nil {
			n.parent.RemoveChild(obj)
		}
		n.parent = c
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

// Children returns the children in draw order.
func (c *Container) Children() []DisplayObject {
	return c.list
}

// Destroy detaches the container. With children set, every descendant is
// destroyed too; with textures set, sprite textures are released.
func (c *Container) Destroy(children, textures bool) {
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	if children {
		for _, child := range slices.Clone(c.list) {
			destroyObject(child, textures)
		}
		c.list = nil
	}
	c.destroyed = true
}

func destroyObject(obj DisplayObject, textures bool) {
	switch o := obj.(type) {
	case *Container:
		o.Destroy(true, textures)
	case *Sprite:
		o.Destroy(textures)
	default:
		n := obj.Base()
		if n.parent != nil {
			n.parent.RemoveChild(obj)
		}
		n.destroyed = true
	}
}

func (c *Container) children() []DisplayObject { return c.list }

func (c *Container) localBounds() (backend.Rect, bool) { return backend.Rect{}, false }

func (c *Container) containsLocal(float64, float64) bool { return false }

func (c *Container) drawSelf(*image.RGBA, gg.Matrix, float64) {}

package gpu

import (
	"github.com/gogpu/gg"
)

// PointerData is the last known pointer state.
type PointerData struct {
	// Global is the pointer position in stage space.
	Global gg.Point
}

// InteractionManager tracks the pointer and resolves what lies under it.
type InteractionManager struct {
	Mouse PointerData

	renderer *Renderer
}

// HitTest returns the front-most object under global within root, or nil.
// root itself is tested regardless of its Interactive flag; its children
// are visited only when InteractiveChildren is set.
func (im *InteractionManager) HitTest(global gg.Point, root DisplayObject) DisplayObject {
	if root == nil {
		root = im.renderer.lastRendered
	}
	if root == nil {
		return nil
	}
	return hitTest(root, global, false)
}

// hitTest walks obj's subtree front to back. With interactiveOnly, only
// Interactive objects count as hits.
func hitTest(obj DisplayObject, global gg.Point, interactiveOnly bool) DisplayObject {
	n := obj.Base()
	if !n.Visible || n.destroyed {
		return nil
	}
	if n.InteractiveChildren {
		kids := obj.children()
		for i := len(kids) - 1; i >= 0; i-- {
			if hit := hitTest(kids[i], global, interactiveOnly); hit != nil {
				return hit
			}
		}
	}
	if interactiveOnly && !n.Interactive {
		return nil
	}
	x, y, ok := n.ToLocal(global.X, global.Y)
	if ok && obj.containsLocal(x, y) {
		return obj
	}
	return nil
}

func (im *InteractionManager) pointerMove(x, y float64) {
	im.Mouse.Global = gg.Pt(x, y)
}

func (im *InteractionManager) pointerDown(x, y float64) {
	im.pointerMove(x, y)
	root := im.renderer.lastRendered
	if root == nil {
		return
	}
	target := hitTest(root, im.Mouse.Global, true)
	if target == nil {
		return
	}
	if fn := target.Base().OnPointerDown; fn != nil {
		fn()
	}
}

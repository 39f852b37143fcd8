package gpu

import (
	"image"

	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/internal/compose"
	"github.com/gogpu/gg"
)

// Sprite draws a texture. The anchor is a fraction of the texture size
// placed at the sprite origin.
type Sprite struct {
	Node
	noChildren

	AnchorX, AnchorY float64

	texture *Texture
}

// NewSprite creates a sprite showing tex. A nil texture draws nothing.
func NewSprite(tex *Texture) *Sprite {
	return &Sprite{Node: newNode(""), texture: tex}
}

// SpriteFrom creates a sprite from the cached texture for path.
func SpriteFrom(path string) *Sprite {
	return NewSprite(TextureFromPath(path))
}

// Texture returns the sprite's texture.
func (s *Sprite) Texture() *Texture { return s.texture }

// SetTexture replaces the sprite's texture.
func (s *Sprite) SetTexture(tex *Texture) {
	s.texture = tex
	s.boundsValid = false
}

// Destroy detaches the sprite and, if texture is set, destroys its texture.
func (s *Sprite) Destroy(texture bool) {
	if s.parent != nil {
		s.parent.RemoveChild(s)
	}
	if texture {
		s.texture.Destroy()
	}
	s.destroyed = true
}

func (s *Sprite) localBounds() (backend.Rect, bool) {
	if !s.texture.Valid() {
		return backend.Rect{}, false
	}
	w, h := s.texture.Width(), s.texture.Height()
	return backend.Rect{X: -s.AnchorX * w, Y: -s.AnchorY * h, Width: w, Height: h}, true
}

func (s *Sprite) containsLocal(x, y float64) bool {
	r, ok := s.localBounds()
	return ok && r.Contains(x, y)
}

func (s *Sprite) drawSelf(dst *image.RGBA, world gg.Matrix, alpha float64) {
	r, ok := s.localBounds()
	if !ok {
		return
	}
	compose.Image(dst, s.texture.Image(), world.Multiply(gg.Translate(r.X, r.Y)), alpha)
}

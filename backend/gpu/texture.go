package gpu

import (
	"fmt"
	"image"
	"sync"

	"github.com/entrylabs/ge/backend"
	"github.com/gogpu/gg"
)

// Texture is an image resident for drawing. A texture whose source failed
// to load is kept, invalid, so callers see the same object on every lookup.
type Texture struct {
	path      string
	img       image.Image
	err       error
	destroyed bool
}

// NewTextureFromImage wraps an already decoded image.
func NewTextureFromImage(img image.Image) *Texture {
	return &Texture{img: img}
}

// Engine reports the owning engine.
func (t *Texture) Engine() string { return backend.NameGPU }

// Path returns the source path, empty for textures built from images.
func (t *Texture) Path() string { return t.path }

// Image returns the decoded image, nil when invalid.
func (t *Texture) Image() image.Image {
	if t == nil || t.destroyed {
		return nil
	}
	return t.img
}

// Valid reports whether the texture can be drawn.
func (t *Texture) Valid() bool { return t.Image() != nil }

// Err returns the load error, if any.
func (t *Texture) Err() error { return t.err }

// Width returns the texture width in pixels, 0 when invalid.
func (t *Texture) Width() float64 {
	if img := t.Image(); img != nil {
		return float64(img.Bounds().Dx())
	}
	return 0
}

// Height returns the texture height in pixels, 0 when invalid.
func (t *Texture) Height() float64 {
	if img := t.Image(); img != nil {
		return float64(img.Bounds().Dy())
	}
	return 0
}

// Destroy releases the image and drops the texture from the cache.
func (t *Texture) Destroy() {
	if t == nil || t.destroyed {
		return
	}
	t.destroyed = true
	t.img = nil
	if t.path != "" {
		textures.remove(t.path, t)
	}
}

// textureCache maps source paths to textures so a path is decoded once.
type textureCache struct {
	mu    sync.Mutex
	items map[string]*Texture
}

var textures = &textureCache{items: make(map[string]*Texture)}

func (c *textureCache) get(path string) (*Texture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.items[path]
	return t, ok
}

func (c *textureCache) put(t *Texture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[t.path] = t
}

func (c *textureCache) remove(path string, t *Texture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items[path] == t {
		delete(c.items, path)
	}
}

// TextureFromPath returns the cached texture for path, loading it on first
// use. Load failures are logged and produce an invalid texture.
func TextureFromPath(path string) *Texture {
	if t, ok := textures.get(path); ok {
		return t
	}
	t := &Texture{path: path}
	buf, err := gg.LoadImage(path)
	if err != nil {
		t.err = fmt.Errorf("gpu: load texture %q: %w", path, err)
		Logger().Warn("texture load failed", "path", path, "err", err)
	} else {
		t.img = buf.ToStdImage()
	}
	textures.put(t)
	return t
}

// CachedTexture returns the texture for path without loading it.
func CachedTexture(path string) (*Texture, bool) {
	return textures.get(path)
}

// DestroyTexture destroys the cached texture for path, if any.
func DestroyTexture(path string) {
	if t, ok := textures.get(path); ok {
		t.Destroy()
	}
}

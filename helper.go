package ge

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/entrylabs/ge/atlas"
	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/drag"

	// Both engines register themselves with the backend registry.
	_ "github.com/entrylabs/ge/backend/canvas"
	_ "github.com/entrylabs/ge/backend/gpu"
)

// Helper forwards drawing calls to the engine chosen at Init.
//
// A Helper is not safe for concurrent use; drive it from one goroutine.
type Helper struct {
	opts options

	backend     backend.RenderBackend
	rotateRead  float64
	rotateWrite float64

	app backend.Application

	colorFilter *ColorFilter
	text        *TextHelper
}

// New creates a helper. It must be initialized with Init before use.
func New(opts ...Option) *Helper {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.atlas == nil {
		o.atlas = atlas.NewManager()
	}
	if o.drag == nil {
		o.drag = drag.NewHelper()
	}
	h := &Helper{
		opts:        o,
		rotateRead:  1,
		rotateWrite: 1,
	}
	h.colorFilter = &ColorFilter{h: h}
	h.text = &TextHelper{h: h}
	return h
}

func (h *Helper) logger() *slog.Logger {
	if h.opts.logger != nil {
		return h.opts.logger
	}
	return Logger()
}

// Init selects the GPU engine when useGPU is set and the canvas engine
// otherwise. It must be called exactly once; later calls return
// ErrAlreadyInitialized and change nothing.
//
// The mode is passed on to the drag helper. Under the GPU engine the
// engine's one-time global setup runs and the rotation factors become
// degree/radian conversions.
func (h *Helper) Init(useGPU bool) error {
	if h.backend != nil {
		return ErrAlreadyInitialized
	}
	b, err := backend.Select(useGPU, backend.Config{
		Logger:         h.logger(),
		DeviceProvider: h.opts.provider,
	})
	if err != nil {
		return fmt.Errorf("ge: init (gpu=%v): %w", useGPU, err)
	}
	h.backend = b
	h.opts.drag.Init(b.GPU())
	if b.GPU() {
		h.rotateRead = 180 / math.Pi
		h.rotateWrite = math.Pi / 180
	}
	h.logger().Info("ge: engine selected", "engine", b.Name())
	return nil
}

func (h *Helper) mustBackend() backend.RenderBackend {
	if h.backend == nil {
		panic(errNotInitialized)
	}
	return h.backend
}

// Initialized reports whether Init has succeeded.
func (h *Helper) Initialized() bool { return h.backend != nil }

// IsGPU reports whether the GPU engine is active.
func (h *Helper) IsGPU() bool { return h.mustBackend().GPU() }

// Backend returns the active engine.
func (h *Helper) Backend() backend.RenderBackend { return h.mustBackend() }

// RotateRead converts an engine rotation to degrees by multiplication.
func (h *Helper) RotateRead() float64 { return h.rotateRead }

// RotateWrite converts degrees to an engine rotation by multiplication.
func (h *Helper) RotateWrite() float64 { return h.rotateWrite }

// ColorFilter returns the color filter adapter.
func (h *Helper) ColorFilter() *ColorFilter { return h.colorFilter }

// TextHelper returns the text adapter.
func (h *Helper) TextHelper() *TextHelper { return h.text }

// NewApp creates an application for surface. The newest application is
// the pointer source for HitTestMouse.
func (h *Helper) NewApp(surface backend.Surface) (backend.Application, error) {
	app, err := h.mustBackend().NewApp(surface)
	if err != nil {
		return nil, err
	}
	h.app = app
	h.logger().Debug("ge: application created", "surface", surface.ID)
	return app, nil
}

// App returns the application HitTestMouse reads the pointer from, or nil.
func (h *Helper) App() backend.Application { return h.app }

// DestroyApp destroys the current application. HitTestMouse panics until
// another is created.
func (h *Helper) DestroyApp(opts backend.DestroyOptions) {
	if h.app == nil {
		return
	}
	h.app.Destroy(opts)
	h.app = nil
}

// CloneStamp copies the object drawn for entity into a new object with the
// same transform and appearance. The copy receives no pointer events or
// ticks.
func (h *Helper) CloneStamp(entity backend.Entity) (backend.Object, error) {
	return h.mustBackend().CloneStamp(entity.Object())
}

// HitTestMouse reports whether the current application's pointer is over
// obj. It panics when there is no application.
func (h *Helper) HitTestMouse(obj backend.Object) (bool, error) {
	b := h.mustBackend()
	if h.app == nil {
		panic("ge: HitTestMouse without an application")
	}
	return b.HitTest(h.app, obj)
}

// TransformedBounds returns obj's bounds after its transform: in stage
// space under the GPU engine, in the parent's space under the canvas
// engine.
func (h *Helper) TransformedBounds(obj backend.Object) (backend.Rect, error) {
	return h.mustBackend().TransformedBounds(obj)
}

// NewContainer creates an empty container. debugName is kept on the
// object for inspection.
func (h *Helper) NewContainer(debugName string) backend.Object {
	return h.mustBackend().NewContainer(debugName)
}

// NewTexture creates a texture for path. Under the canvas engine it is a
// *canvas.Image still loading in the background; attach OnLoad before
// relying on its size.
func (h *Helper) NewTexture(path string) backend.Object {
	return h.mustBackend().NewTexture(path)
}

// NewSpriteWithTexture creates a sprite drawing tex. A nil tex gives an
// empty sprite.
func (h *Helper) NewSpriteWithTexture(tex backend.Object) (backend.Object, error) {
	return h.mustBackend().NewSprite(tex)
}

// NewSpriteWithURL creates a sprite drawing the image at url.
func (h *Helper) NewSpriteWithURL(url string) backend.Object {
	return h.mustBackend().NewSpriteFromURL(url)
}

// NewGraphic creates an empty vector drawing.
func (h *Helper) NewGraphic() backend.Object {
	return h.mustBackend().NewGraphics()
}

// RemoveScene releases the atlas textures of sceneID. No-op under the
// canvas engine.
func (h *Helper) RemoveScene(sceneID string) {
	if !h.IsGPU() {
		return
	}
	h.opts.atlas.RemoveScene(sceneID)
}

// ActivateScene makes sceneID the atlas's active scene. No-op under the
// canvas engine.
func (h *Helper) ActivateScene(sceneID string) {
	if !h.IsGPU() {
		return
	}
	h.opts.atlas.ActivateScene(sceneID)
}

// NewText creates a text object.
//
// Deprecated: use TextHelper().NewText.
func (h *Helper) NewText(str, font, color, baseline, align string) backend.Object {
	return h.text.NewText(str, font, color, baseline, align)
}

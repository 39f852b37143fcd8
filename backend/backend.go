package backend

import (
	"errors"
	"image"
	"log/slog"

	"github.com/gogpu/gpucontext"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrForeignObject is returned when an object created by one engine is
	// handed to the other.
	ErrForeignObject = errors.New("backend: object belongs to another engine")

	// ErrUnsupportedObject is returned when an object of the right engine
	// does not support the requested operation (e.g. cloning a filter).
	ErrUnsupportedObject = errors.New("backend: unsupported object")
)

// Engine names.
const (
	// NameGPU is the retained scene-graph engine.
	NameGPU = "gpu"
	// NameCanvas is the display-list engine kept for legacy projects.
	NameCanvas = "canvas"
)

// Object is an opaque handle to something an engine created: a display
// node, a texture, an image or a filter. Engine reports the owner so the
// other engine can reject it.
type Object interface {
	Engine() string
}

// Entity is anything that carries a display object, typically a project
// entity that owns the sprite drawn for it.
type Entity interface {
	Object() Object
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rectangle containing r and o.
// An empty rectangle does not contribute.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	minX, minY := min(r.X, o.X), min(r.Y, o.Y)
	maxX := max(r.X+r.Width, o.X+o.Width)
	maxY := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Surface describes the drawing surface an application is created for.
// ID names the surface the way the host page or window does.
type Surface struct {
	ID     string
	Width  int
	Height int
}

// DestroyOptions controls how much an application releases on Destroy.
type DestroyOptions struct {
	// Children destroys every node under the stage.
	Children bool
	// Texture releases textures referenced by destroyed sprites.
	Texture bool
}

// Application is a rendering surface created by an engine.
type Application interface {
	// Render advances and redraws one frame.
	Render() error

	// Destroy releases the application. It must not be used afterwards.
	Destroy(opts DestroyOptions)

	// Stage returns the root node. Nil after Destroy.
	Stage() Object

	// PointerMove reports the pointer position in surface coordinates.
	PointerMove(x, y float64)

	// PointerDown reports a press at the given surface position and
	// dispatches it to the engine's input targets.
	PointerDown(x, y float64)

	// Frame returns the last rendered frame.
	Frame() *image.RGBA
}

// Config carries what the facade hands to an engine at creation.
type Config struct {
	// Logger receives engine diagnostics. Nil means silent.
	Logger *slog.Logger

	// DeviceProvider, when set, is shared with the GPU accelerator during
	// the GPU engine's one-time setup. Ignored by the canvas engine.
	DeviceProvider gpucontext.DeviceProvider
}

// RenderBackend is the interface every engine implements. The facade holds
// exactly one, selected at initialization, so no call site branches on the
// engine.
//
// Methods taking an Object return ErrForeignObject when the object was
// created by another engine.
type RenderBackend interface {
	// Name returns the engine identifier (NameGPU or NameCanvas).
	Name() string

	// GPU reports whether this is the GPU engine.
	GPU() bool

	// Init performs the engine's one-time global setup.
	Init() error

	// NewApp creates an application drawing to surface.
	NewApp(surface Surface) (Application, error)

	// CloneStamp copies the visual state of obj into a new node that
	// receives neither input nor updates.
	CloneStamp(obj Object) (Object, error)

	// HitTest reports whether the application's current pointer is over obj.
	HitTest(app Application, obj Object) (bool, error)

	// TransformedBounds returns obj's bounds after its transform.
	TransformedBounds(obj Object) (Rect, error)

	NewContainer(debugName string) Object
	NewTexture(path string) Object
	NewSprite(tex Object) (Object, error)
	NewSpriteFromURL(url string) Object
	NewGraphics() Object

	ColorFilters
	TextModel
}

// ColorFilters builds engine-native color-matrix filters.
type ColorFilters interface {
	// HueFilter rotates hue by degrees in [-180, 180].
	HueFilter(degrees float64) Object

	// SaturationFilter adjusts saturation by v in [-100, 100].
	SaturationFilter(v float64) Object

	// ColorMatrixFilter wraps a row-major matrix with 5 columns
	// (R, G, B, A, offset). Offsets use the engine's native units.
	ColorMatrixFilter(m []float64) Object

	// OffsetScale is the factor that converts an offset in 0..255 units to
	// the engine's native offset units.
	OffsetScale() float64

	// SetCache caches or uncaches obj, if the engine has a cache concept.
	SetCache(obj Object, enabled bool) error
}

// TextModel creates text nodes and writes their properties.
// Properties the engine does not model are silently ignored.
type TextModel interface {
	NewText(str, font, color, baseline, align string) Object
	SetTextColor(obj Object, color string) error
	SetTextUnderline(obj Object, on bool) error
	SetTextStrike(obj Object, on bool) error
	SetTextFont(obj Object, font string) error
	SetTextLineHeight(obj Object, height float64) error
	SetTextAlign(obj Object, align string) error
	// SetTextLineWidth sets the wrap width. Nil removes the limit.
	SetTextLineWidth(obj Object, width *float64) error
	SetTextMaxHeight(obj Object, height float64) error
}

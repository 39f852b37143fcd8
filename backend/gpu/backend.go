package gpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/entrylabs/ge/backend"
	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
)

func init() {
	backend.Register(backend.NameGPU, func(cfg backend.Config) backend.RenderBackend {
		return NewBackend(cfg)
	})
}

// setupOnce guards the process-wide accelerator setup shared by every
// Backend value.
var setupOnce sync.Once

// Backend is the GPU scene-graph engine.
type Backend struct {
	provider gpucontext.DeviceProvider
	logger   *slog.Logger
}

// NewBackend creates a GPU engine logging to cfg.Logger. The engine and
// the applications it creates keep that logger; without one they use the
// package logger. Other engines are unaffected.
func NewBackend(cfg backend.Config) *Backend {
	return &Backend{provider: cfg.DeviceProvider, logger: scoped(cfg.Logger)}
}

func (b *Backend) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return Logger()
}

// Name implements backend.RenderBackend.
func (b *Backend) Name() string { return backend.NameGPU }

// GPU implements backend.RenderBackend.
func (b *Backend) GPU() bool { return true }

// Init performs the one-time global setup. Repeated calls, from this or any
// other Backend, are no-ops. A device provider the accelerator rejects is
// logged and rendering falls back to the CPU rasterizer.
func (b *Backend) Init() error {
	setupOnce.Do(func() {
		if b.provider != nil {
			if err := gg.SetAcceleratorDeviceProvider(b.provider); err != nil {
				b.log().Warn("device provider rejected, using CPU rasterizer", "err", err)
			}
		}
		if a := gg.Accelerator(); a != nil {
			b.log().Info("GPU accelerator active", "name", a.Name())
		} else {
			b.log().Info("no GPU accelerator registered, using CPU rasterizer")
		}
	})
	return nil
}

// NewApp implements backend.RenderBackend.
func (b *Backend) NewApp(surface backend.Surface) (backend.Application, error) {
	return NewApplication(surface, WithLogger(b.log()))
}

// CloneStamp creates a non-interactive sprite sharing the source's texture
// and copying its visibility and full transform.
func (b *Backend) CloneStamp(obj backend.Object) (backend.Object, error) {
	src, err := asDisplayObject(obj)
	if err != nil {
		return nil, err
	}
	var tex *Texture
	if s, ok := src.(*Sprite); ok {
		tex = s.Texture()
	}
	stamp := NewSprite(tex)
	stamp.Name = "StampEntity"
	if s, ok := src.(*Sprite); ok {
		stamp.AnchorX, stamp.AnchorY = s.AnchorX, s.AnchorY
	}
	n := src.Base()
	stamp.Visible = n.Visible
	stamp.Interactive = false
	stamp.InteractiveChildren = false
	stamp.SetTransform(n.X, n.Y, n.ScaleX, n.ScaleY, n.Rotation, n.SkewX, n.SkewY, n.PivotX, n.PivotY)
	return stamp, nil
}

// HitTest reports whether the application's pointer lies over obj. It
// panics when app has no interaction plugin.
func (b *Backend) HitTest(app backend.Application, obj backend.Object) (bool, error) {
	a, ok := app.(*Application)
	if !ok || a == nil {
		panic("gpu: hit test without a GPU application")
	}
	im := a.Renderer.Plugins.Interaction
	if im == nil {
		panic("gpu: hit test on a renderer without interaction plugin")
	}
	target, err := asDisplayObject(obj)
	if err != nil {
		return false, err
	}
	return im.HitTest(im.Mouse.Global, target) != nil, nil
}

// TransformedBounds returns obj's bounds in stage space.
func (b *Backend) TransformedBounds(obj backend.Object) (backend.Rect, error) {
	d, err := asDisplayObject(obj)
	if err != nil {
		return backend.Rect{}, err
	}
	return GetBounds(d, false), nil
}

// NewContainer implements backend.RenderBackend.
func (b *Backend) NewContainer(debugName string) backend.Object {
	return NewContainer(debugName)
}

// NewTexture loads or reuses the texture cached for path.
func (b *Backend) NewTexture(path string) backend.Object {
	return TextureFromPath(path)
}

// NewSprite implements backend.RenderBackend.
func (b *Backend) NewSprite(tex backend.Object) (backend.Object, error) {
	if tex == nil {
		return NewSprite(nil), nil
	}
	t, ok := tex.(*Texture)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a texture", foreignOrUnsupported(tex), tex)
	}
	return NewSprite(t), nil
}

// NewSpriteFromURL implements backend.RenderBackend.
func (b *Backend) NewSpriteFromURL(url string) backend.Object {
	return SpriteFrom(url)
}

// NewGraphics implements backend.RenderBackend.
func (b *Backend) NewGraphics() backend.Object {
	return NewGraphics()
}

// HueFilter implements backend.ColorFilters.
func (b *Backend) HueFilter(degrees float64) backend.Object {
	return NewColorMatrixFilter().Hue(degrees)
}

// SaturationFilter implements backend.ColorFilters.
func (b *Backend) SaturationFilter(v float64) backend.Object {
	return NewColorMatrixFilter().Saturate(v / 100)
}

// ColorMatrixFilter builds a filter from the first 20 entries of m.
// Offsets are normalized to 0..1.
func (b *Backend) ColorMatrixFilter(m []float64) backend.Object {
	f := NewColorMatrixFilter()
	f.SetMatrix(m)
	return f
}

// OffsetScale implements backend.ColorFilters.
func (b *Backend) OffsetScale() float64 { return 1.0 / 255 }

// SetCache is a no-op; filters are applied on every frame.
func (b *Backend) SetCache(backend.Object, bool) error { return nil }

// NewText implements backend.TextModel.
func (b *Backend) NewText(str, font, color, baseline, align string) backend.Object {
	return NewText(str, TextStyle{Font: font, Fill: color, TextBaseline: baseline, Align: align})
}

// SetTextColor sets the fill of a GPU text node.
func (b *Backend) SetTextColor(obj backend.Object, color string) error {
	t, err := asText(obj)
	if err != nil {
		return err
	}
	t.Style.Fill = color
	return nil
}

// The remaining text properties are not modeled by GPU text.

func (b *Backend) SetTextUnderline(obj backend.Object, _ bool) error     { return checkOwned(obj) }
func (b *Backend) SetTextStrike(obj backend.Object, _ bool) error        { return checkOwned(obj) }
func (b *Backend) SetTextFont(obj backend.Object, _ string) error        { return checkOwned(obj) }
func (b *Backend) SetTextLineHeight(obj backend.Object, _ float64) error { return checkOwned(obj) }
func (b *Backend) SetTextAlign(obj backend.Object, _ string) error       { return checkOwned(obj) }
func (b *Backend) SetTextLineWidth(obj backend.Object, _ *float64) error { return checkOwned(obj) }
func (b *Backend) SetTextMaxHeight(obj backend.Object, _ float64) error  { return checkOwned(obj) }

func foreignOrUnsupported(obj backend.Object) error {
	if obj != nil && obj.Engine() != backend.NameGPU {
		return backend.ErrForeignObject
	}
	return backend.ErrUnsupportedObject
}

func checkOwned(obj backend.Object) error {
	if obj == nil || obj.Engine() != backend.NameGPU {
		return fmt.Errorf("%w: %T", backend.ErrForeignObject, obj)
	}
	return nil
}

func asDisplayObject(obj backend.Object) (DisplayObject, error) {
	if err := checkOwned(obj); err != nil {
		return nil, err
	}
	d, ok := obj.(DisplayObject)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a display object", backend.ErrUnsupportedObject, obj)
	}
	return d, nil
}

func asText(obj backend.Object) (*Text, error) {
	if err := checkOwned(obj); err != nil {
		return nil, err
	}
	t, ok := obj.(*Text)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not text", backend.ErrUnsupportedObject, obj)
	}
	return t, nil
}

var _ backend.RenderBackend = (*Backend)(nil)
var _ backend.Application = (*Application)(nil)

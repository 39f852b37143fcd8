package canvas

import (
	"fmt"
	"log/slog"

	"github.com/entrylabs/ge/backend"
)

func init() {
	backend.Register(backend.NameCanvas, func(cfg backend.Config) backend.RenderBackend {
		return NewBackend(cfg)
	})
}

// Backend is the canvas display-list engine.
type Backend struct {
	logger *slog.Logger
}

// NewBackend creates a canvas engine logging to cfg.Logger, or to the
// package logger when it is nil. The device provider is ignored.
func NewBackend(cfg backend.Config) *Backend {
	return &Backend{logger: scoped(cfg.Logger)}
}

func (b *Backend) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return Logger()
}

// Name implements backend.RenderBackend.
func (b *Backend) Name() string { return backend.NameCanvas }

// GPU implements backend.RenderBackend.
func (b *Backend) GPU() bool { return false }

// Init implements backend.RenderBackend. The canvas engine has no global
// state to set up.
func (b *Backend) Init() error {
	b.log().Info("canvas engine ready")
	return nil
}

// NewApp implements backend.RenderBackend.
func (b *Backend) NewApp(surface backend.Surface) (backend.Application, error) {
	return newLegacyApplication(surface, b.log())
}

// CloneStamp clones obj and stops the clone from receiving mouse events
// and ticks. Filters are dropped.
func (b *Backend) CloneStamp(obj backend.Object) (backend.Object, error) {
	src, err := asDisplayObject(obj)
	if err != nil {
		return nil, err
	}
	c := Clone(src)
	d := c.Base()
	d.MouseEnabled = false
	d.TickEnabled = false
	d.Filters = nil
	return c, nil
}

// HitTest reports whether obj paints a pixel under the stage's pointer.
// It panics when app is not a live canvas application.
func (b *Backend) HitTest(app backend.Application, obj backend.Object) (bool, error) {
	a, ok := app.(*LegacyApplication)
	if !ok || a == nil || a.stage == nil {
		panic("canvas: hit test without a live canvas application")
	}
	target, err := asDisplayObject(obj)
	if err != nil {
		return false, err
	}
	x, y, ok := target.Base().GlobalToLocal(a.stage.MouseX, a.stage.MouseY)
	if !ok {
		return false, nil
	}
	return HitTest(target, x, y), nil
}

// TransformedBounds returns obj's bounds in its parent's space.
func (b *Backend) TransformedBounds(obj backend.Object) (backend.Rect, error) {
	d, err := asDisplayObject(obj)
	if err != nil {
		return backend.Rect{}, err
	}
	r, ok := GetTransformedBounds(d)
	if !ok {
		return backend.Rect{}, fmt.Errorf("%w: %T", ErrNoBounds, obj)
	}
	return r, nil
}

// NewContainer implements backend.RenderBackend.
func (b *Backend) NewContainer(debugName string) backend.Object {
	c := NewContainer()
	c.Name = debugName
	return c
}

// NewTexture returns an Image that starts loading path in the background.
// Callers wait for it with OnLoad or Wait.
func (b *Backend) NewTexture(path string) backend.Object {
	img := NewImage()
	img.SetSrc(path)
	return img
}

// NewSprite implements backend.RenderBackend.
func (b *Backend) NewSprite(tex backend.Object) (backend.Object, error) {
	if tex == nil {
		return NewBitmap(nil), nil
	}
	img, ok := tex.(*Image)
	if !ok {
		if tex.Engine() != backend.NameCanvas {
			return nil, fmt.Errorf("%w: %T", backend.ErrForeignObject, tex)
		}
		return nil, fmt.Errorf("%w: %T is not an image", backend.ErrUnsupportedObject, tex)
	}
	return NewBitmap(img), nil
}

// NewSpriteFromURL implements backend.RenderBackend.
func (b *Backend) NewSpriteFromURL(url string) backend.Object {
	return NewBitmapFromURL(url)
}

// NewGraphics implements backend.RenderBackend.
func (b *Backend) NewGraphics() backend.Object {
	return NewShape()
}

// HueFilter implements backend.ColorFilters.
func (b *Backend) HueFilter(degrees float64) backend.Object {
	return NewColorMatrixFilter(NewColorMatrix().AdjustColor(0, 0, 0, degrees))
}

// SaturationFilter implements backend.ColorFilters.
func (b *Backend) SaturationFilter(v float64) backend.Object {
	return NewColorMatrixFilter(NewColorMatrix().AdjustSaturation(v))
}

// ColorMatrixFilter copies m into a 5x5 matrix, padding from the identity.
func (b *Backend) ColorMatrixFilter(m []float64) backend.Object {
	return NewColorMatrixFilter(NewColorMatrix().Copy(m))
}

// OffsetScale implements backend.ColorFilters.
func (b *Backend) OffsetScale() float64 { return 1 }

// SetCache caches or uncaches obj. Filters take effect when cached.
func (b *Backend) SetCache(obj backend.Object, enabled bool) error {
	d, err := asDisplayObject(obj)
	if err != nil {
		return err
	}
	if !enabled {
		Uncache(d)
		return nil
	}
	return Cache(d)
}

// NewText creates a text object. The font string is also used as the
// text, matching the long-standing call convention of this engine.
// baseline and align are applied only when non-empty.
func (b *Backend) NewText(_, font, color, baseline, align string) backend.Object {
	t := NewText(font, font, color)
	if baseline != "" {
		t.TextBaseline = baseline
	}
	if align != "" {
		t.TextAlign = align
	}
	return t
}

// SetTextColor implements backend.TextModel.
func (b *Backend) SetTextColor(obj backend.Object, color string) error {
	return withText(obj, func(t *Text) { t.Color = color })
}

// SetTextUnderline implements backend.TextModel.
func (b *Backend) SetTextUnderline(obj backend.Object, on bool) error {
	return withText(obj, func(t *Text) { t.UnderLine = on })
}

// SetTextStrike implements backend.TextModel.
func (b *Backend) SetTextStrike(obj backend.Object, on bool) error {
	return withText(obj, func(t *Text) { t.Strike = on })
}

// SetTextFont implements backend.TextModel.
func (b *Backend) SetTextFont(obj backend.Object, font string) error {
	return withText(obj, func(t *Text) { t.Font = font })
}

// SetTextLineHeight implements backend.TextModel.
func (b *Backend) SetTextLineHeight(obj backend.Object, height float64) error {
	return withText(obj, func(t *Text) { t.LineHeight = height })
}

// SetTextAlign implements backend.TextModel.
func (b *Backend) SetTextAlign(obj backend.Object, align string) error {
	return withText(obj, func(t *Text) { t.TextAlign = align })
}

// SetTextLineWidth implements backend.TextModel.
func (b *Backend) SetTextLineWidth(obj backend.Object, width *float64) error {
	return withText(obj, func(t *Text) {
		if width == nil {
			t.LineWidth = nil
			return
		}
		w := *width
		t.LineWidth = &w
	})
}

// SetTextMaxHeight implements backend.TextModel.
func (b *Backend) SetTextMaxHeight(obj backend.Object, height float64) error {
	return withText(obj, func(t *Text) { t.MaxHeight = height })
}

func asDisplayObject(obj backend.Object) (DisplayObject, error) {
	if obj == nil || obj.Engine() != backend.NameCanvas {
		return nil, fmt.Errorf("%w: %T", backend.ErrForeignObject, obj)
	}
	d, ok := obj.(DisplayObject)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a display object", backend.ErrUnsupportedObject, obj)
	}
	return d, nil
}

func withText(obj backend.Object, set func(*Text)) error {
	d, err := asDisplayObject(obj)
	if err != nil {
		return err
	}
	t, ok := d.(*Text)
	if !ok {
		return fmt.Errorf("%w: %T is not text", backend.ErrUnsupportedObject, obj)
	}
	set(t)
	return nil
}

var _ backend.RenderBackend = (*Backend)(nil)
var _ backend.Application = (*LegacyApplication)(nil)

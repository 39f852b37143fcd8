package gpu

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/internal/compose"
	"github.com/gogpu/gg"
)

// Plugins are the optional parts of a renderer.
type Plugins struct {
	// Interaction is nil when the renderer was created without it.
	Interaction *InteractionManager
}

// Renderer draws a stage into a frame.
type Renderer struct {
	Plugins Plugins

	frame        *image.RGBA
	lastRendered DisplayObject
}

// Render draws root into the renderer's frame.
func (r *Renderer) Render(root DisplayObject) {
	compose.Clear(r.frame)
	render(r.frame, root, gg.Identity(), 1)
	r.lastRendered = root
}

// Frame returns the rendered frame.
func (r *Renderer) Frame() *image.RGBA { return r.frame }

// AppOption configures an Application.
type AppOption func(*appOptions)

type appOptions struct {
	interaction bool
	background  *gg.RGBA
	logger      *slog.Logger
}

// WithoutInteraction creates the renderer without the interaction plugin.
func WithoutInteraction() AppOption {
	return func(o *appOptions) { o.interaction = false }
}

// WithBackground clears each frame to c before drawing.
func WithBackground(c gg.RGBA) AppOption {
	return func(o *appOptions) { o.background = &c }
}

// WithLogger sends the application's diagnostics to l instead of the
// package logger.
func WithLogger(l *slog.Logger) AppOption {
	return func(o *appOptions) { o.logger = l }
}

// Application owns a stage and the renderer that draws it.
type Application struct {
	Renderer *Renderer

	surface    backend.Surface
	stage      *Container
	background *gg.RGBA
	logger     *slog.Logger
	destroyed  bool
}

// NewApplication creates an application drawing to surface.
func NewApplication(surface backend.Surface, opts ...AppOption) (*Application, error) {
	if surface.Width <= 0 || surface.Height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, surface.Width, surface.Height)
	}
	o := appOptions{interaction: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	r := &Renderer{frame: compose.NewFrame(surface.Width, surface.Height)}
	if o.interaction {
		r.Plugins.Interaction = &InteractionManager{renderer: r}
	}
	o.logger.Debug("application created", "surface", surface.ID, "width", surface.Width, "height", surface.Height)
	return &Application{
		Renderer:   r,
		surface:    surface,
		stage:      NewContainer("stage"),
		background: o.background,
		logger:     o.logger,
	}, nil
}

// Engine reports the owning engine.
func (a *Application) Engine() string { return backend.NameGPU }

// Surface returns the surface the application was created for.
func (a *Application) Surface() backend.Surface { return a.surface }

// Stage returns the root container, nil after Destroy.
func (a *Application) Stage() backend.Object {
	if a.destroyed {
		return nil
	}
	return a.stage
}

// Root returns the root container, nil after Destroy.
func (a *Application) Root() *Container {
	if a.destroyed {
		return nil
	}
	return a.stage
}

// Render draws one frame.
func (a *Application) Render() error {
	if a.destroyed {
		return ErrApplicationDestroyed
	}
	a.Renderer.Render(a.stage)
	if a.background != nil {
		bg := compose.NewFrame(a.surface.Width, a.surface.Height)
		fillRGBA(bg, *a.background)
		compose.Over(bg, a.Renderer.frame, image.Point{}, 1)
		copy(a.Renderer.frame.Pix, bg.Pix)
	}
	return nil
}

// Destroy releases the stage and the renderer.
func (a *Application) Destroy(opts backend.DestroyOptions) {
	if a.destroyed {
		return
	}
	a.stage.Destroy(opts.Children, opts.Texture)
	a.Renderer.lastRendered = nil
	a.Renderer.Plugins.Interaction = nil
	a.destroyed = true
	a.logger.Debug("application destroyed", "surface", a.surface.ID)
}

// PointerMove updates the interaction plugin's pointer position.
func (a *Application) PointerMove(x, y float64) {
	if im := a.Renderer.Plugins.Interaction; im != nil {
		im.pointerMove(x, y)
	}
}

// PointerDown dispatches a press to the front-most interactive object.
func (a *Application) PointerDown(x, y float64) {
	if im := a.Renderer.Plugins.Interaction; im != nil {
		im.pointerDown(x, y)
	}
}

// Frame returns the last rendered frame.
func (a *Application) Frame() *image.RGBA { return a.Renderer.frame }

func fillRGBA(img *image.RGBA, c gg.RGBA) {
	p := c.Premultiply()
	r, g, b, al := uint8(p.R*255+0.5), uint8(p.G*255+0.5), uint8(p.B*255+0.5), uint8(p.A*255+0.5)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, al
	}
}

package canvas

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/entrylabs/ge/backend"
)

// mouseOverFrequency is the mouse-over check rate of a LegacyApplication.
const mouseOverFrequency = 10

// LegacyApplication adapts a Stage to backend.Application. It enables
// touch, mouse-over tracking and pointer tracking outside the surface.
type LegacyApplication struct {
	surface backend.Surface
	stage   *Stage
	logger  *slog.Logger
}

// NewLegacyApplication creates a stage for surface.
func NewLegacyApplication(surface backend.Surface) (*LegacyApplication, error) {
	return newLegacyApplication(surface, Logger())
}

func newLegacyApplication(surface backend.Surface, logger *slog.Logger) (*LegacyApplication, error) {
	if surface.Width <= 0 || surface.Height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, surface.Width, surface.Height)
	}
	stage := NewStage(surface.Width, surface.Height)
	EnableTouch(stage)
	stage.EnableMouseOver(mouseOverFrequency)
	stage.MouseMoveOutside = true
	logger.Debug("application created", "surface", surface.ID, "width", surface.Width, "height", surface.Height)
	return &LegacyApplication{surface: surface, stage: stage, logger: logger}, nil
}

// Engine reports the owning engine.
func (a *LegacyApplication) Engine() string { return backend.NameCanvas }

// Surface returns the surface the application was created for.
func (a *LegacyApplication) Surface() backend.Surface { return a.surface }

// Root returns the stage, nil after Destroy.
func (a *LegacyApplication) Root() *Stage { return a.stage }

// Stage returns the stage, nil after Destroy.
func (a *LegacyApplication) Stage() backend.Object {
	if a.stage == nil {
		return nil
	}
	return a.stage
}

// Render updates the stage.
func (a *LegacyApplication) Render() error {
	if a.stage == nil {
		return ErrApplicationDestroyed
	}
	a.stage.Update()
	return nil
}

// Destroy drops the stage. The display objects are left to the caller.
func (a *LegacyApplication) Destroy(backend.DestroyOptions) {
	if a.stage == nil {
		return
	}
	a.stage = nil
	a.logger.Debug("application destroyed", "surface", a.surface.ID)
}

// PointerMove implements backend.Application.
func (a *LegacyApplication) PointerMove(x, y float64) {
	if a.stage != nil {
		a.stage.HandleMouseMove(x, y)
	}
}

// PointerDown implements backend.Application.
func (a *LegacyApplication) PointerDown(x, y float64) {
	if a.stage != nil {
		a.stage.HandleMouseDown(x, y)
	}
}

// Frame returns the last drawn frame, nil after Destroy.
func (a *LegacyApplication) Frame() *image.RGBA {
	if a.stage == nil {
		return nil
	}
	return a.stage.Frame()
}

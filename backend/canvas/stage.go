package canvas

import (
	"image"

	"github.com/entrylabs/ge/internal/compose"
	"github.com/gogpu/gg"
)

// Stage is the root container bound to a drawing surface.
type Stage struct {
	Container

	// MouseX and MouseY are the last pointer position in stage space.
	MouseX, MouseY float64
	// MouseInBounds reports whether the pointer is over the surface.
	MouseInBounds bool
	// MouseMoveOutside keeps MouseX and MouseY updating while the pointer
	// is outside the surface.
	MouseMoveOutside bool
	// AutoClear clears the frame before each draw.
	AutoClear bool

	mouseOverInterval int
	touchEnabled      bool
	frame             *image.RGBA
}

// NewStage creates a stage drawing into a width x height frame.
func NewStage(width, height int) *Stage {
	return &Stage{
		Container: Container{Display: newDisplay()},
		AutoClear: true,
		frame:     compose.NewFrame(width, height),
	}
}

// EnableMouseOver turns on mouse-over tracking, checked frequency times
// per second. Zero turns it off.
func (s *Stage) EnableMouseOver(frequency int) {
	if frequency <= 0 {
		s.mouseOverInterval = 0
		return
	}
	s.mouseOverInterval = 1000 / min(frequency, 50)
}

// MouseOverInterval returns the mouse-over check interval in
// milliseconds, 0 when tracking is off.
func (s *Stage) MouseOverInterval() int { return s.mouseOverInterval }

// TouchEnabled reports whether touches are delivered as mouse input.
func (s *Stage) TouchEnabled() bool { return s.touchEnabled }

// EnableTouch delivers touch input on stage as mouse input.
func EnableTouch(stage *Stage) bool {
	stage.touchEnabled = true
	return true
}

// DisableTouch stops delivering touch input on stage.
func DisableTouch(stage *Stage) {
	stage.touchEnabled = false
}

// Frame returns the frame drawn by the last Update.
func (s *Stage) Frame() *image.RGBA { return s.frame }

// Update ticks every tick-enabled object, then draws the stage.
func (s *Stage) Update() {
	tick(s)
	s.Draw()
}

// Draw draws the display list into the frame.
func (s *Stage) Draw() {
	if s.AutoClear {
		compose.Clear(s.frame)
	}
	drawObject(s.frame, s, gg.Identity(), 1)
}

// HandleMouseMove records a pointer move at surface position (x, y).
func (s *Stage) HandleMouseMove(x, y float64) {
	b := s.frame.Bounds()
	s.MouseInBounds = x >= 0 && y >= 0 && x < float64(b.Dx()) && y < float64(b.Dy())
	if s.MouseInBounds || s.MouseMoveOutside {
		s.MouseX, s.MouseY = x, y
	}
}

// HandleMouseDown records a press at (x, y) and dispatches it to the
// front-most object under the pointer and then to its ancestors.
func (s *Stage) HandleMouseDown(x, y float64) {
	s.HandleMouseMove(x, y)
	if !s.MouseInBounds {
		return
	}
	target := objectUnderPoint(s, s.MouseX, s.MouseY)
	for obj := target; obj != nil; {
		d := obj.Base()
		if d.OnMouseDown != nil {
			d.OnMouseDown()
		}
		if d.parent == nil {
			break
		}
		obj = d.parent
	}
}

// HandleTouchStart delivers a touch as a press when touch is enabled.
func (s *Stage) HandleTouchStart(x, y float64) {
	if s.touchEnabled {
		s.HandleMouseDown(x, y)
	}
}

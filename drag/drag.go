// Package drag maps drag gestures to the event names of the active
// engine. The GPU engine emits pointer events; the canvas engine emits
// mouse events and a press-move stream while a button is held.
package drag

import "fmt"

// Phase is a stage of a drag gesture.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseStart
	PhaseMove
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	default:
		return "none"
	}
}

// Events are the engine event names for each drag phase.
type Events struct {
	Start string
	Move  string
	End   string
}

var (
	gpuEvents    = Events{Start: "pointerdown", Move: "pointermove", End: "pointerup"}
	canvasEvents = Events{Start: "mousedown", Move: "pressmove", End: "pressup"}
)

// Helper holds the engine mode for drag handling.
type Helper struct {
	gpu    bool
	events Events
}

// NewHelper returns a helper set up for the canvas engine until Init.
func NewHelper() *Helper {
	return &Helper{events: canvasEvents}
}

// Init sets the engine mode.
func (h *Helper) Init(isGPU bool) {
	h.gpu = isGPU
	if isGPU {
		h.events = gpuEvents
	} else {
		h.events = canvasEvents
	}
}

// IsGPU reports whether the helper is set up for the GPU engine.
func (h *Helper) IsGPU() bool { return h.gpu }

// Events returns the event names of the current engine.
func (h *Helper) Events() Events { return h.events }

// EventName returns the engine event name for p.
func (h *Helper) EventName(p Phase) (string, error) {
	switch p {
	case PhaseStart:
		return h.events.Start, nil
	case PhaseMove:
		return h.events.Move, nil
	case PhaseEnd:
		return h.events.End, nil
	}
	return "", fmt.Errorf("drag: no event for phase %v", p)
}

// Phase returns the drag phase an engine event belongs to, PhaseNone for
// events of the other engine or unrelated events.
func (h *Helper) Phase(event string) Phase {
	switch event {
	case h.events.Start:
		return PhaseStart
	case h.events.Move:
		return PhaseMove
	case h.events.End:
		return PhaseEnd
	}
	return PhaseNone
}

package viewer

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is what the user asked the viewer to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResize
	ActionZoom
	ActionPan
	ActionReset
	ActionToggleFill
)

// Event is a processed input event.
type Event struct {
	Action Action
	Width  int
	Height int
	// Zoom factor and anchor pixel, or pan offset in pixels.
	Factor float64
	X, Y   float32
}

// keyStep is how far arrow keys pan, in pixels.
const keyStep = 32

// pollEvents drains SDL's queue into events. dragging tracks whether the
// left mouse button is held.
func pollEvents(events []Event, dragging *bool) []Event {
	events = events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			events = append(events, Event{Action: ActionQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				events = append(events, Event{Action: ActionResize, Width: int(e.Data1), Height: int(e.Data2)})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if ev, ok := keyEvent(e.Keysym.Scancode); ok {
				events = append(events, ev)
			}

		case *sdl.MouseWheelEvent:
			x, y, _ := sdl.GetMouseState()
			factor := 1.25
			if e.Y < 0 {
				factor = 1 / factor
			}
			if e.Y != 0 {
				events = append(events, Event{Action: ActionZoom, Factor: factor, X: float32(x), Y: float32(y)})
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				*dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}

		case *sdl.MouseMotionEvent:
			if *dragging {
				events = append(events, Event{Action: ActionPan, X: float32(e.XRel), Y: float32(e.YRel)})
			}
		}
	}

	return events
}

// keyEvent maps a key press to an event. Zoom keys anchor on pixel (0, 0);
// the caller re-anchors them on the window center.
func keyEvent(key sdl.Scancode) (Event, bool) {
	switch key {
	case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
		return Event{Action: ActionQuit}, true
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		return Event{Action: ActionZoom, Factor: 1.25}, true
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		return Event{Action: ActionZoom, Factor: 0.8}, true
	case sdl.SCANCODE_LEFT:
		return Event{Action: ActionPan, X: keyStep}, true
	case sdl.SCANCODE_RIGHT:
		return Event{Action: ActionPan, X: -keyStep}, true
	case sdl.SCANCODE_UP:
		return Event{Action: ActionPan, Y: keyStep}, true
	case sdl.SCANCODE_DOWN:
		return Event{Action: ActionPan, Y: -keyStep}, true
	case sdl.SCANCODE_HOME, sdl.SCANCODE_0:
		return Event{Action: ActionReset}, true
	case sdl.SCANCODE_F:
		return Event{Action: ActionToggleFill}, true
	}
	return Event{}, false
}

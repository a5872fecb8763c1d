// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/tilecollide/pkg/math"
)

// Event types for viewer use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	Wheel  int
}

// Input handles all input processing and tracks held keys.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.handle(event) {
			return true
		}
	}
	return false
}

func (i *Input) handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		sc := e.Keysym.Scancode
		if e.Type == sdl.KEYDOWN {
			i.held[sc] = true
			if e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: sc})
			}
		} else if e.Type == sdl.KEYUP {
			delete(i.held, sc)
			i.events = append(i.events, Event{Type: EventKeyUp, Key: sc})
		}

	case *sdl.MouseWheelEvent:
		i.events = append(i.events, Event{Type: EventMouseWheel, Wheel: int(e.Y)})
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyHeld checks if a key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// Direction returns the movement direction from arrow keys or WASD.
// Opposite keys cancel. The result is not normalized.
func (i *Input) Direction() math.Vec2 {
	var d math.Vec2
	if i.held[sdl.SCANCODE_LEFT] || i.held[sdl.SCANCODE_A] {
		d.X--
	}
	if i.held[sdl.SCANCODE_RIGHT] || i.held[sdl.SCANCODE_D] {
		d.X++
	}
	if i.held[sdl.SCANCODE_DOWN] || i.held[sdl.SCANCODE_S] {
		d.Y--
	}
	if i.held[sdl.SCANCODE_UP] || i.held[sdl.SCANCODE_W] {
		d.Y++
	}
	return d
}

// Running reports whether either shift key is held.
func (i *Input) Running() bool {
	return i.held[sdl.SCANCODE_LSHIFT] || i.held[sdl.SCANCODE_RSHIFT]
}

// Wheel returns the summed scroll delta for this frame.
func (i *Input) Wheel() int {
	total := 0
	for _, e := range i.events {
		if e.Type == EventMouseWheel {
			total += e.Wheel
		}
	}
	return total
}

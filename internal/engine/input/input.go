// Package input turns SDL2 events into showroom events: logical-pixel
// pointer positions, browser-style wheel deltas, touch drags and clicks.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseLeave
	EventClick
	EventWheel
	EventTouchStart
	EventTouchMove
	EventTouchEnd
)

// WheelNotchDelta is the deltaY one wheel notch produces, matching what
// browsers report in pixel mode.
const WheelNotchDelta = 100

// TapSlop is how far, in logical pixels, a press may travel and still count
// as a click.
const TapSlop = 10

// SDL tags mouse events it synthesizes from touches with this id.
const touchMouseID = ^uint32(0)

// Event represents a processed input event. Positions are logical window
// pixels.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	X, Y   float32
	Button uint8
	DeltaY float32 // Positive scrolls forward
}

type press struct {
	active bool
	x, y   float32
	moved  bool
	finger sdl.FingerID
}

func (p *press) begin(x, y float32) {
	*p = press{active: true, x: x, y: y}
}

func (p *press) move(x, y, slop float32) {
	dx, dy := x-p.x, y-p.y
	if dx*dx+dy*dy > slop*slop {
		p.moved = true
	}
}

// Input handles all input processing.
type Input struct {
	// NotchDelta and Slop default to WheelNotchDelta and TapSlop.
	NotchDelta float32
	Slop       float32

	events []Event

	width, height float32
	mouse         press
	touch         press
}

// New creates an input handler for a window of the given logical size.
func New(width, height int) *Input {
	return &Input{
		NotchDelta: WheelNotchDelta,
		Slop:       TapSlop,
		events:     make([]Event, 0, 16),
		width:      float32(width),
		height:     float32(height),
	}
}

// Update polls SDL events and converts them.
// Returns true if the app should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.Translate(event) {
			quit = true
		}
	}
	return quit
}

// Translate converts one SDL event and reports whether it asks to quit.
func (i *Input) Translate(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.emit(Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			i.width, i.height = float32(e.Data1), float32(e.Data2)
			i.emit(Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)})
		case sdl.WINDOWEVENT_LEAVE:
			i.emit(Event{Type: EventMouseLeave})
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			i.emit(Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
		} else if e.Type == sdl.KEYUP {
			i.emit(Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
		}

	case *sdl.MouseMotionEvent:
		if e.Which == touchMouseID {
			break
		}
		x, y := float32(e.X), float32(e.Y)
		if i.mouse.active {
			i.mouse.move(x, y, i.Slop)
		}
		i.emit(Event{Type: EventMouseMove, X: x, Y: y})

	case *sdl.MouseButtonEvent:
		if e.Which == touchMouseID {
			break
		}
		x, y := float32(e.X), float32(e.Y)
		if e.Type == sdl.MOUSEBUTTONDOWN {
			if e.Button == sdl.BUTTON_LEFT {
				i.mouse.begin(x, y)
			}
			i.emit(Event{Type: EventMouseDown, X: x, Y: y, Button: e.Button})
		} else if e.Type == sdl.MOUSEBUTTONUP {
			i.emit(Event{Type: EventMouseUp, X: x, Y: y, Button: e.Button})
			if e.Button == sdl.BUTTON_LEFT && i.mouse.active {
				i.mouse.move(x, y, i.Slop)
				if !i.mouse.moved {
					i.emit(Event{Type: EventClick, X: x, Y: y, Button: e.Button})
				}
				i.mouse.active = false
			}
		}

	case *sdl.MouseWheelEvent:
		dy := -float32(e.Y) * i.NotchDelta
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		if dy != 0 {
			i.emit(Event{Type: EventWheel, DeltaY: dy})
		}

	case *sdl.TouchFingerEvent:
		i.translateTouch(e)
	}
	return false
}

// translateTouch follows the first finger down and ignores the rest.
func (i *Input) translateTouch(e *sdl.TouchFingerEvent) {
	x, y := e.X*i.width, e.Y*i.height
	switch e.Type {
	case sdl.FINGERDOWN:
		if i.touch.active {
			return
		}
		i.touch.begin(x, y)
		i.touch.finger = e.FingerID
		i.emit(Event{Type: EventTouchStart, X: x, Y: y})
	case sdl.FINGERMOTION:
		if !i.touch.active || e.FingerID != i.touch.finger {
			return
		}
		i.touch.move(x, y, i.Slop)
		i.emit(Event{Type: EventTouchMove, X: x, Y: y})
	case sdl.FINGERUP:
		if !i.touch.active || e.FingerID != i.touch.finger {
			return
		}
		i.touch.move(x, y, i.Slop)
		i.emit(Event{Type: EventTouchEnd, X: x, Y: y})
		if !i.touch.moved {
			i.emit(Event{Type: EventClick, X: x, Y: y, Button: sdl.BUTTON_LEFT})
		}
		i.touch.active = false
	}
}

func (i *Input) emit(e Event) {
	i.events = append(i.events, e)
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Reset drops pending events.
func (i *Input) Reset() {
	i.events = i.events[:0]
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

package pointer

import "fmt"

// Mode selects which device classes a tracker listens to.
type Mode int

const (
	// ModeBoth tracks mouse and touch input into the same shared state.
	ModeBoth Mode = iota
	// ModeMouse tracks mouse input only; touch events are ignored.
	ModeMouse
	// ModeTouch tracks touch input only; mouse events are ignored.
	ModeTouch
)

func (m Mode) String() string {
	switch m {
	case ModeMouse:
		return "mouse"
	case ModeTouch:
		return "touch"
	default:
		return "both"
	}
}

// ParseMode maps a config string onto a Mode. An empty string means ModeBoth.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "both":
		return ModeBoth, nil
	case "mouse":
		return ModeMouse, nil
	case "touch":
		return ModeTouch, nil
	default:
		return ModeBoth, fmt.Errorf("pointer: unknown mode %q", s)
	}
}

// Device is the class of input device that produced an event.
type Device int

const (
	DeviceMouse Device = iota
	DeviceTouch
)

// Kind is the lifecycle class of an input event.
type Kind int

const (
	Press Kind = iota
	Move
	Release
)

// Point is a position in viewport coordinates.
type Point struct {
	X, Y float64
}

// Event is a host input event as delivered to the tracker.
//
// Mouse events carry their position in Pos. Touch events carry the active
// contact list in Touches and, on release, the contacts that just ended in
// Changed. Target names the element under a press and is meaningful only
// for Press events.
type Event struct {
	Device  Device
	Kind    Kind
	Pos     Point
	Touches []Point
	Changed []Point
	Target  string
}

// primary extracts the event's coordinate source. Touch events prefer the
// first active contact and fall back to the first changed contact, which
// covers release events where the contact already ended.
func (e Event) primary() (Point, bool) {
	if e.Device == DeviceTouch {
		if len(e.Touches) > 0 {
			return e.Touches[0], true
		}
		if len(e.Changed) > 0 {
			return e.Changed[0], true
		}
		return Point{}, false
	}
	return e.Pos, true
}

// OptBool is a bool that can also be unset. The zero value is unset.
type OptBool struct {
	Bool  bool
	Valid bool
}

// Snapshot is an immutable copy of tracker state handed to consumers.
// GoingDown and GoingRight are unset whenever IsMouseDown is false, and
// until the first move of a press. TouchedElement is meaningful while
// pressed; after release it goes stale rather than being cleared.
type Snapshot struct {
	DeltaX         float64
	DeltaY         float64
	IsMouseDown    bool
	TouchedElement string
	GoingDown      OptBool
	GoingRight     OptBool
}

package driver

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/dragtrack/pointer"
)

// Input polls ebiten each tick and synthesizes press/move/release events
// onto a bus. The subscription scope is the whole window, so drags keep
// reporting after the cursor leaves the region they started on.
//
// Only the first touch contact is treated as the primary pointer;
// additional contacts are carried in the active-touches list but never
// drive state on their own.
type Input struct {
	bus     *pointer.Bus
	regions *Regions

	prevX, prevY int
	cursorSeen   bool

	primary     ebiten.TouchID
	touchActive bool

	touchIDs []ebiten.TouchID
	justIDs  []ebiten.TouchID
}

func NewInput(bus *pointer.Bus, regions *Regions) *Input {
	return &Input{bus: bus, regions: regions}
}

// SetRegions swaps the hit regions used for press targets. The demo calls
// this every tick because moving elements carry their regions with them.
func (i *Input) SetRegions(regions *Regions) {
	i.regions = regions
}

// Update polls mouse and touch state and publishes any resulting events.
// Call once per tick from the game loop.
func (i *Input) Update() {
	i.pollMouse()
	i.pollTouch()
}

func (i *Input) pollMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		i.bus.Publish(pointer.Event{
			Device: pointer.DeviceMouse,
			Kind:   pointer.Press,
			Pos:    pointer.Point{X: x, Y: y},
			Target: i.regions.Hit(x, y),
		})
	}

	// Hosts deliver mousemove regardless of button state; the tracker's
	// pressed guard decides whether it matters.
	if i.cursorSeen && (mx != i.prevX || my != i.prevY) {
		i.bus.Publish(pointer.Event{
			Device: pointer.DeviceMouse,
			Kind:   pointer.Move,
			Pos:    pointer.Point{X: x, Y: y},
		})
	}
	i.prevX, i.prevY = mx, my
	i.cursorSeen = true

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		i.bus.Publish(pointer.Event{
			Device: pointer.DeviceMouse,
			Kind:   pointer.Release,
			Pos:    pointer.Point{X: x, Y: y},
		})
	}
}

func (i *Input) pollTouch() {
	i.touchIDs = ebiten.AppendTouchIDs(i.touchIDs[:0])
	i.justIDs = inpututil.AppendJustPressedTouchIDs(i.justIDs[:0])

	if !i.touchActive && len(i.justIDs) > 0 {
		i.primary = i.justIDs[0]
		i.touchActive = true

		touches := i.activeTouches()
		var target string
		if len(touches) > 0 {
			target = i.regions.Hit(touches[0].X, touches[0].Y)
		}
		i.bus.Publish(pointer.Event{
			Device:  pointer.DeviceTouch,
			Kind:    pointer.Press,
			Touches: touches,
			Target:  target,
		})
		return
	}

	if !i.touchActive {
		return
	}

	if inpututil.IsTouchJustReleased(i.primary) {
		px, py := inpututil.TouchPositionInPreviousTick(i.primary)
		i.touchActive = false
		// The contact already ended, so it appears only in the changed
		// list; any remaining secondary contacts stay in the active list.
		i.bus.Publish(pointer.Event{
			Device:  pointer.DeviceTouch,
			Kind:    pointer.Release,
			Touches: i.activeTouches(),
			Changed: []pointer.Point{{X: float64(px), Y: float64(py)}},
		})
		return
	}

	cx, cy := ebiten.TouchPosition(i.primary)
	px, py := inpututil.TouchPositionInPreviousTick(i.primary)
	if cx != px || cy != py {
		i.bus.Publish(pointer.Event{
			Device:  pointer.DeviceTouch,
			Kind:    pointer.Move,
			Touches: i.activeTouches(),
		})
	}
}

// activeTouches lists current contact positions with the primary contact
// first.
func (i *Input) activeTouches() []pointer.Point {
	touches := make([]pointer.Point, 0, len(i.touchIDs))
	for _, id := range i.touchIDs {
		x, y := ebiten.TouchPosition(id)
		p := pointer.Point{X: float64(x), Y: float64(y)}
		if i.touchActive && id == i.primary {
			touches = append([]pointer.Point{p}, touches...)
			continue
		}
		touches = append(touches, p)
	}
	return touches
}

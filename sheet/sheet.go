// Package sheet implements a bottom sheet that rides tracker snapshots:
// it follows the drag delta while pressed on its grab region and settles
// onto the nearest snap offset with a damped spring when released.
package sheet

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/dragtrack/common"
	"github.com/milk9111/dragtrack/config"
	"github.com/milk9111/dragtrack/driver"
	"github.com/milk9111/dragtrack/pointer"
)

const stepDT = 1.0 / 60.0

type Sheet struct {
	grabRegion string
	x, width   float64
	restY      float64
	offsets    []float64
	minOffset  float64
	maxOffset  float64
	windowH    float64

	space  *cp.Space
	body   *cp.Body
	anchor *cp.Body

	dragging   bool
	dragStartY float64
	// lastTrend is the vertical trend of the most recent move; release
	// events reset the tracker's own trend flags, so the sheet keeps the
	// last seen value to bias snap selection.
	lastTrend pointer.OptBool
}

func New(spec config.SheetSpec, windowH float64) *Sheet {
	s := &Sheet{
		grabRegion: spec.Region,
		x:          spec.X,
		width:      spec.Width,
		restY:      spec.RestY,
		offsets:    append([]float64{}, spec.SnapOffsets...),
		windowH:    windowH,
	}
	if len(s.offsets) == 0 {
		s.offsets = []float64{0}
	}

	s.minOffset = s.offsets[0]
	s.maxOffset = s.offsets[0]
	for _, off := range s.offsets[1:] {
		if off < s.minOffset {
			s.minOffset = off
		}
		if off > s.maxOffset {
			s.maxOffset = off
		}
	}

	stiffness := spec.Stiffness
	if stiffness <= 0 {
		stiffness = 170
	}
	damping := spec.Damping
	if damping <= 0 {
		damping = 18
	}

	s.space = cp.NewSpace()
	s.body = s.space.AddBody(cp.NewBody(1, cp.INFINITY))
	s.anchor = s.space.AddBody(cp.NewKinematicBody())
	s.space.AddConstraint(cp.NewDampedSpring(
		s.anchor, s.body, cp.Vector{}, cp.Vector{}, 0, stiffness, damping))

	start := cp.Vector{X: spec.X, Y: spec.RestY}
	s.body.SetPosition(start)
	s.anchor.SetPosition(start)

	return s
}

// Top returns the sheet's current top edge.
func (s *Sheet) Top() float64 {
	return s.body.Position().Y
}

// GrabRegion is the sheet's current hit rectangle, tracking the sheet as
// it moves.
func (s *Sheet) GrabRegion() driver.Region {
	y := s.Top()
	return driver.Region{
		Name:   s.grabRegion,
		Bounds: common.Rect{X: s.x, Y: y, Width: s.width, Height: s.windowH - y},
	}
}

// Update advances the sheet one tick from the current tracker snapshot.
func (s *Sheet) Update(snap pointer.Snapshot) {
	grabbed := snap.IsMouseDown && snap.TouchedElement == s.grabRegion

	if grabbed {
		if !s.dragging {
			s.dragging = true
			s.dragStartY = s.Top()
		}
		if snap.GoingDown.Valid {
			s.lastTrend = snap.GoingDown
		}

		y := common.Clamp(s.dragStartY+snap.DeltaY, s.restY+s.minOffset, s.restY+s.maxOffset)
		pos := cp.Vector{X: s.x, Y: y}
		s.body.SetPosition(pos)
		s.body.SetVelocity(0, 0)
		s.anchor.SetPosition(pos)
		return
	}

	if s.dragging {
		s.dragging = false
		target := s.snapTarget(s.Top()-s.restY, s.lastTrend)
		s.anchor.SetPosition(cp.Vector{X: s.x, Y: s.restY + target})
		s.lastTrend = pointer.OptBool{}
	}

	s.space.Step(stepDT)

	// The sheet only travels vertically.
	pos := s.body.Position()
	if pos.X != s.x {
		s.body.SetPosition(cp.Vector{X: s.x, Y: pos.Y})
	}
}

// snapTarget picks the offset to settle on. When the release-time trend is
// known, only offsets in the direction of travel are considered, so a
// short fast flick still advances to the next stop; with no candidates in
// that direction (or no trend) it falls back to the absolute nearest.
func (s *Sheet) snapTarget(offset float64, trend pointer.OptBool) float64 {
	if trend.Valid {
		var dir []float64
		for _, off := range s.offsets {
			if trend.Bool && off >= offset {
				dir = append(dir, off)
			}
			if !trend.Bool && off <= offset {
				dir = append(dir, off)
			}
		}
		if len(dir) > 0 {
			return common.Nearest(offset, dir)
		}
	}
	return common.Nearest(offset, s.offsets)
}

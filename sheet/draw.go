package sheet

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	panelColor  = color.NRGBA{R: 0x2b, G: 0x2d, B: 0x3a, A: 0xf0}
	handleColor = color.NRGBA{R: 0x8a, G: 0x8f, B: 0xa8, A: 0xff}
)

// Draw renders the sheet panel and its grab handle.
func (s *Sheet) Draw(screen *ebiten.Image) {
	y := float32(s.Top())
	x := float32(s.x)
	w := float32(s.width)
	h := float32(s.windowH) - y

	vector.DrawFilledRect(screen, x, y, w, h, panelColor, false)

	handleW := float32(48)
	vector.DrawFilledRect(screen, x+(w-handleW)/2, y+8, handleW, 5, handleColor, false)
}

// Package ui draws the title screen and its buttons.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	menuBG      = color.RGBA{0, 0, 0, 255}
	menuBtnNorm = color.RGBA{30, 30, 30, 255}
	menuBtnHov  = color.RGBA{99, 99, 99, 255}
	menuBorder  = color.RGBA{228, 92, 16, 255}
	menuTitle   = color.RGBA{180, 60, 20, 255}
)

// glyph is the size of one debug font character
const (
	glyphW = 6
	glyphH = 16
)

// Button is a clickable menu entry
type Button struct {
	X, Y, W, H int
	Text       string
	Disabled   bool
}

// Contains reports whether screen point (x, y) is inside b
func (b Button) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

func drawButton(screen *ebiten.Image, b Button, selected bool) {
	bg := menuBtnNorm
	if selected {
		bg = menuBtnHov
	}
	x, y, w, h := float32(b.X), float32(b.Y), float32(b.W), float32(b.H)
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)
	if selected {
		vector.StrokeRect(screen, x, y, w, h, 2, menuBorder, false)
	}
	tx := b.X + (b.W-len(b.Text)*glyphW)/2
	ty := b.Y + (b.H-glyphH)/2
	ebitenutil.DebugPrintAt(screen, b.Text, tx, ty)
}

// drawBanner paints text as chunky blocks, one block per lit pixel of a
// 3x5 font, so the title reads at any window size
func drawBanner(screen *ebiten.Image, text string, cx, y, block int) {
	w := len(text) * 4 * block
	x0 := cx - w/2
	for i, r := range text {
		rows, ok := bannerFont[r]
		if !ok {
			continue
		}
		for ry, bits := range rows {
			for rx := 0; rx < 3; rx++ {
				if bits&(1<<(2-rx)) == 0 {
					continue
				}
				px := x0 + (i*4+rx)*block
				py := y + ry*block
				vector.DrawFilledRect(screen, float32(px), float32(py), float32(block-1), float32(block-1), menuTitle, false)
			}
		}
	}
}

var bannerFont = map[rune][5]uint8{
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	' ': {},
}

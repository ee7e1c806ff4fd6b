package render

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// TermCanvas draws the field into a terminal: two columns and one row per
// terrain tile
type TermCanvas struct {
	Screen  tcell.Screen
	Field   core.Rect
	Cell    int // world pixels per terminal row
	OriginX int
	OriginY int
}

// NewTermCanvas creates a canvas for rules' playfield
func NewTermCanvas(s tcell.Screen, rules core.Rules) *TermCanvas {
	return &TermCanvas{Screen: s, Field: rules.Field, Cell: rules.TileSize}
}

// Size returns the terminal columns and rows the field needs
func (c *TermCanvas) Size() (int, int) {
	return c.Field.W * 2 / c.Cell, c.Field.H / c.Cell
}

// CellRange returns the half-open terminal cell range covered by r
func (c *TermCanvas) CellRange(r core.Rect) (x0, y0, x1, y1 int) {
	x0 = c.OriginX + (r.X-c.Field.X)*2/c.Cell
	y0 = c.OriginY + (r.Y-c.Field.Y)/c.Cell
	x1 = c.OriginX + ceilDiv((r.Right()-c.Field.X)*2, c.Cell)
	y1 = c.OriginY + ceilDiv(r.Bottom()-c.Field.Y, c.Cell)
	return
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return a / b
	}
	return (a + b - 1) / b
}

// Blit fills the cells under dst with the glyph for s
func (c *TermCanvas) Blit(s core.Sprite, dst core.Rect) {
	x0, y0, x1, y1 := c.CellRange(dst)
	switch s.Kind {
	case core.SpriteShield:
		return
	case core.SpriteBanner:
		_, st := Glyph(s)
		for i, r := range strconv.Itoa(s.Points) {
			c.Screen.SetContent(x0+i, y0, r, nil, st)
		}
		return
	}
	g, st := Glyph(s)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.Screen.SetContent(x, y, g, nil, st)
		}
	}
}

// DrawText prints lines below the field starting at row y
func (c *TermCanvas) DrawText(lines []string, x, y int) {
	for i, l := range lines {
		col := x
		for _, r := range l {
			c.Screen.SetContent(col, y+i, r, nil, tcell.StyleDefault)
			col++
		}
	}
}

package render

import (
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// EbitenCanvas draws sprites onto an ebiten screen
type EbitenCanvas struct {
	Screen *ebiten.Image
	Sheet  *SpriteSheet
	Camera *Camera
}

// NewEbitenCanvas creates a canvas; sheet may be nil
func NewEbitenCanvas(sheet *SpriteSheet, cam *Camera) *EbitenCanvas {
	if cam == nil {
		cam = NewCamera()
	}
	return &EbitenCanvas{Sheet: sheet, Camera: cam}
}

// Blit draws s scaled into dst
func (c *EbitenCanvas) Blit(s core.Sprite, dst core.Rect) {
	x, y, w, h := c.Camera.WorldToScreen(dst)
	if s.Kind == core.SpriteBanner {
		ebitenutil.DebugPrintAt(c.Screen, strconv.Itoa(s.Points), int(x)+int(w)/4, int(y)+int(h)/4)
		return
	}
	if img := c.Sheet.Image(s); img != nil {
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
		op.GeoM.Translate(x, y)
		c.Screen.DrawImage(img, op)
		return
	}

	clr := FallbackColor(s)
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
	switch s.Kind {
	case core.SpriteShield:
		vector.StrokeRect(c.Screen, fx, fy, fw, fh, 2, clr, false)
	case core.SpriteTank:
		vector.DrawFilledRect(c.Screen, fx+fw/8, fy+fh/8, fw*3/4, fh*3/4, clr, false)
		bx, by, bw, bh := barrel(fx, fy, fw, fh, s.Dir)
		vector.DrawFilledRect(c.Screen, bx, by, bw, bh, clr, false)
	case core.SpriteExplosion:
		vector.DrawFilledCircle(c.Screen, fx+fw/2, fy+fh/2, fw/2*float32(s.Frame+1)/5, clr, false)
	default:
		vector.DrawFilledRect(c.Screen, fx, fy, fw, fh, clr, false)
	}
}

// barrel returns the gun rect of a tank body facing d
func barrel(x, y, w, h float32, d core.Direction) (float32, float32, float32, float32) {
	t := w / 8
	cx, cy := x+w/2, y+h/2
	switch d {
	case core.Up:
		return cx - t/2, y, t, h / 2
	case core.Down:
		return cx - t/2, cy, t, h / 2
	case core.Left:
		return x, cy - t/2, w / 2, t
	default:
		return cx, cy - t/2, w / 2, t
	}
}

// DrawText prints lines top-down starting at (x, y)
func DrawText(screen *ebiten.Image, lines []string, x, y int) {
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, x, y+i*16)
	}
}

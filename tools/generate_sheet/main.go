// Command generate_sheet draws the default sprite sheet into assets/.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/render"
)

const cs = render.CellSize

func main() {
	out := flag.String("out", filepath.Join("assets", render.SheetFile), "output png")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := savePNG(*out, generateSheet()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("  →", *out)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// cell is one sheet cell drawn in "facing up" coordinates
type cell struct {
	img    *image.RGBA
	ox, oy int
	dir    core.Direction
}

func cellAt(img *image.RGBA, s core.Sprite) (cell, bool) {
	col, row, ok := render.CellFor(s)
	if !ok {
		return cell{}, false
	}
	return cell{img: img, ox: col * cs, oy: row * cs, dir: s.Dir}, true
}

// set plots (x, y) after rotating an up-facing drawing towards c.dir
func (c cell) set(x, y int, clr color.RGBA) {
	if x < 0 || y < 0 || x >= cs || y >= cs {
		return
	}
	switch c.dir {
	case core.Down:
		y = cs - 1 - y
	case core.Left:
		x, y = y, x
	case core.Right:
		x, y = cs-1-y, x
	}
	c.img.SetRGBA(c.ox+x, c.oy+y, clr)
}

func (c cell) rect(x, y, w, h int, clr color.RGBA) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.set(xx, yy, clr)
		}
	}
}

func (c cell) circle(cx, cy, r float64, clr color.RGBA) {
	for y := 0; y < cs; y++ {
		for x := 0; x < cs; x++ {
			if math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) <= r {
				c.set(x, y, clr)
			}
		}
	}
}

func shade(c color.RGBA, f float64) color.RGBA {
	m := func(v uint8) uint8 { return uint8(math.Min(255, float64(v)*f)) }
	return color.RGBA{m(c.R), m(c.G), m(c.B), c.A}
}

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func generateSheet() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, render.SheetCols*cs, render.SheetRows*cs))

	for p := core.PaletteGold; p <= core.PaletteRed; p++ {
		for lvl := 0; lvl <= core.LastEnemyLevel; lvl++ {
			for _, d := range core.Directions {
				for f := 0; f < 2; f++ {
					s := core.Sprite{Kind: core.SpriteTank, Palette: p, Level: lvl, Dir: d, Frame: f}
					if c, ok := cellAt(img, s); ok {
						drawTank(c, render.PaletteColors[p], lvl, f)
					}
				}
			}
		}
	}
	for f := 0; f < 4; f++ {
		c, _ := cellAt(img, core.Sprite{Kind: core.SpriteSpawnStar, Frame: f})
		drawStar(c, f)
	}
	for f := 0; f < 2; f++ {
		c, _ := cellAt(img, core.Sprite{Kind: core.SpriteShield, Frame: f})
		drawShield(c, f)
	}
	for _, d := range core.Directions {
		c, _ := cellAt(img, core.Sprite{Kind: core.SpriteBullet, Dir: d})
		c.rect(7, 5, 2, 6, white)
		c.rect(6, 7, 4, 3, white)
	}
	for _, k := range []core.TileKind{core.TileBrick, core.TileSteel, core.TileForest, core.TileIce} {
		c, _ := cellAt(img, core.Sprite{Kind: core.SpriteTile, Tile: k})
		drawTile(c, k, 0)
	}
	for f := 0; f < 2; f++ {
		c, _ := cellAt(img, core.Sprite{Kind: core.SpriteTile, Tile: core.TileWater, Frame: f})
		drawTile(c, core.TileWater, f)
	}
	for _, alive := range []bool{true, false} {
		c, _ := cellAt(img, core.Sprite{Kind: core.SpritePhoenix, Alive: alive})
		drawPhoenix(c, alive)
	}
	for k := core.PowerShield; k < core.NumPowerUps; k++ {
		c, _ := cellAt(img, core.Sprite{Kind: core.SpritePowerUp, PowerUp: k})
		drawPowerUp(c, k)
	}
	for f := 0; f < 5; f++ {
		c, _ := cellAt(img, core.Sprite{Kind: core.SpriteExplosion, Frame: f})
		drawExplosion(c, f)
	}
	return img
}

func drawTank(c cell, body color.RGBA, level, frame int) {
	dark := shade(body, 0.55)
	light := shade(body, 1.3)
	// treads
	for y := 1; y < 15; y++ {
		clr := dark
		if (y+frame)%2 == 0 {
			clr = shade(body, 0.35)
		}
		c.rect(1, y, 3, 1, clr)
		c.rect(12, y, 3, 1, clr)
	}
	c.rect(4, 4, 8, 9, body)
	c.rect(4, 4, 8, 1, light)
	c.circle(8, 9, 2.5, dark)
	// barrel, longer for stronger tiers
	length := 5
	if level%4 >= 2 {
		length = 6
	}
	c.rect(7, 9-length, 2, length, light)
	for i := 0; i < level%4; i++ {
		c.set(5+i*2, 11, white)
	}
	if level == core.LastEnemyLevel {
		c.rect(4, 12, 8, 1, black)
	}
}

func drawStar(c cell, frame int) {
	r := 2.0 + float64(frame)*1.5
	for y := 0; y < cs; y++ {
		for x := 0; x < cs; x++ {
			dx, dy := math.Abs(float64(x)+0.5-8), math.Abs(float64(y)+0.5-8)
			if dx*dy < r && dx+dy < r*2 {
				c.set(x, y, white)
			}
		}
	}
}

func drawShield(c cell, frame int) {
	clr := color.RGBA{255, 255, 255, 200}
	for i := frame; i < cs; i += 3 {
		c.set(i, 0, clr)
		c.set(cs-1, i, clr)
		c.set(cs-1-i, cs-1, clr)
		c.set(0, cs-1-i, clr)
	}
}

func drawTile(c cell, k core.TileKind, frame int) {
	base := render.TileColors[k]
	rng := rand.New(rand.NewSource(int64(k)*31 + int64(frame)))
	switch k {
	case core.TileBrick:
		c.rect(0, 0, cs, cs, base)
		for y := 0; y < cs; y += 4 {
			c.rect(0, y+3, cs, 1, shade(base, 0.5))
			off := (y / 4 % 2) * 4
			for x := off; x < cs; x += 8 {
				c.rect(x, y, 1, 3, shade(base, 0.5))
			}
		}
	case core.TileSteel:
		for q := 0; q < 4; q++ {
			x, y := q%2*8, q/2*8
			c.rect(x, y, 8, 8, shade(base, 0.7))
			c.rect(x+1, y+1, 6, 6, base)
			c.rect(x+2, y+2, 4, 4, shade(base, 1.3))
		}
	case core.TileForest:
		for i := 0; i < 10; i++ {
			c.circle(rng.Float64()*cs, rng.Float64()*cs, 2+rng.Float64()*2, shade(base, 0.8+rng.Float64()*0.5))
		}
	case core.TileIce:
		c.rect(0, 0, cs, cs, base)
		for i := 0; i < cs; i += 4 {
			c.set(i, i, white)
			c.set(i+1, i, white)
		}
	case core.TileWater:
		c.rect(0, 0, cs, cs, base)
		for y := 2 + frame*2; y < cs; y += 5 {
			for x := 0; x < cs; x++ {
				if (x+y)%6 < 3 {
					c.set(x, y, shade(base, 1.6))
				}
			}
		}
	}
}

func drawPhoenix(c cell, alive bool) {
	clr := color.RGBA{230, 200, 60, 255}
	if !alive {
		clr = color.RGBA{90, 60, 40, 255}
	}
	c.rect(7, 2, 2, 12, clr)
	for i := 0; i < 6; i++ {
		c.rect(1+i, 4+i, 6-i, 1, clr)
		c.rect(9, 4+i, 6-i, 1, clr)
	}
	c.rect(5, 13, 6, 2, clr)
}

// powerUpMarks are 4x4 bitmaps, one row per nibble
var powerUpMarks = [...]uint16{
	core.PowerShield:    0x9ff9,
	core.PowerFreeze:    0xf66f,
	core.PowerFortify:   0xf99f,
	core.PowerBullet:    0x6f66,
	core.PowerExplosion: 0x6996,
	core.PowerExtraLife: 0x8888,
	core.PowerSpecial:   0xa5a5,
}

func drawPowerUp(c cell, k core.PowerUpKind) {
	c.rect(1, 1, 14, 14, color.RGBA{240, 60, 200, 255})
	c.rect(2, 2, 12, 12, black)
	mark := powerUpMarks[k]
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if mark&(1<<(15-(y*4+x))) != 0 {
				c.rect(4+x*2, 4+y*2, 2, 2, white)
			}
		}
	}
}

func drawExplosion(c cell, frame int) {
	r := 2 + float64(frame)*1.5
	c.circle(8, 8, r, color.RGBA{255, uint8(200 - 30*frame), 40, 230})
	c.circle(8, 8, r/2, color.RGBA{255, 255, 200, 255})
}

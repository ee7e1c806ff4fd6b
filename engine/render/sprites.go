package render

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/logging"
)

// Sheet layout, in cells of CellSize pixels:
//
//	rows 0..31  tanks, row = palette*8 + level, col = dir*2 + frame
//	row 32      spawn star 0..3, shield 4..5, bullet 8..11 by direction
//	row 33      brick, steel, forest, ice, water 0..1, phoenix 6..7, power-ups 8..14
//	row 34      explosion frames 0..4
const (
	CellSize   = 16
	SheetCols  = 16
	SheetRows  = 35
	rowEffects = 32
	rowTerrain = 33
	rowBlast   = 34
)

// SheetFile is the sprite sheet looked up in the assets directory
const SheetFile = "sheet.png"

// CellFor returns the sheet cell that draws s. Banners have no cell.
func CellFor(s core.Sprite) (col, row int, ok bool) {
	switch s.Kind {
	case core.SpriteTank:
		lvl := max(0, min(s.Level, core.LastEnemyLevel))
		return int(s.Dir)*2 + s.Frame%2, int(s.Palette%4)*8 + lvl, true
	case core.SpriteSpawnStar:
		return s.Frame % 4, rowEffects, true
	case core.SpriteShield:
		return 4 + s.Frame%2, rowEffects, true
	case core.SpriteBullet:
		return 8 + int(s.Dir), rowEffects, true
	case core.SpriteTile:
		if s.Tile == core.TileWater {
			return 4 + s.Frame%2, rowTerrain, true
		}
		return int(s.Tile), rowTerrain, true
	case core.SpritePhoenix:
		if s.Alive {
			return 6, rowTerrain, true
		}
		return 7, rowTerrain, true
	case core.SpritePowerUp:
		return 8 + int(s.PowerUp), rowTerrain, true
	case core.SpriteExplosion:
		return s.Frame % 5, rowBlast, true
	}
	return 0, 0, false
}

// SpriteSheet holds every cell of the sheet, upscaled and ready to draw
type SpriteSheet struct {
	Scale int
	cells [SheetRows * SheetCols]*ebiten.Image
}

// Image returns the image for s, or nil when the sheet lacks it
func (sh *SpriteSheet) Image(s core.Sprite) *ebiten.Image {
	if sh == nil {
		return nil
	}
	col, row, ok := CellFor(s)
	if !ok {
		return nil
	}
	return sh.cells[row*SheetCols+col]
}

// LoadSheet slices the sheet at path into cells upscaled by scale
func LoadSheet(path string, scale int) (*SpriteSheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	sh := &SpriteSheet{Scale: scale}
	b := img.Bounds()
	loaded := 0
	for row := 0; row < SheetRows; row++ {
		for col := 0; col < SheetCols; col++ {
			r := image.Rect(col*CellSize, row*CellSize, (col+1)*CellSize, (row+1)*CellSize).Add(b.Min)
			if !r.In(b) {
				continue
			}
			sh.cells[row*SheetCols+col] = ebiten.NewImageFromImage(ScaleCell(img, r, scale))
			loaded++
		}
	}
	logging.Logger.Debug().Str("path", path).Int("cells", loaded).Msg("Sprite sheet loaded")
	return sh, nil
}

// ScaleCell crops r out of src and upscales it by an integer factor with
// nearest-neighbour sampling
func ScaleCell(src image.Image, r image.Rectangle, scale int) *image.RGBA {
	scale = max(scale, 1)
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx()*scale, r.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, r, draw.Src, nil)
	return dst
}

// AssetsDir finds the assets directory next to the binary or the module
func AssetsDir() string {
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Join(filepath.Dir(exe), "assets")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(filename), "..", "..", "assets")
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	return "assets"
}

// LoadDefaultSheet loads the sheet from the assets directory. A missing
// sheet is not an error: drawing falls back to flat colours.
func LoadDefaultSheet(scale int) *SpriteSheet {
	path := filepath.Join(AssetsDir(), SheetFile)
	sh, err := LoadSheet(path, scale)
	if err != nil {
		logging.Logger.Warn().Err(err).Str("path", path).Msg("No sprite sheet, using flat colours")
		return nil
	}
	return sh
}

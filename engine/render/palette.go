package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// PaletteColors are the tank body colours
var PaletteColors = [...]color.RGBA{
	core.PaletteGold:   {227, 178, 60, 255},
	core.PaletteGreen:  {60, 160, 60, 255},
	core.PaletteSilver: {190, 190, 190, 255},
	core.PaletteRed:    {200, 40, 40, 255},
}

// TileColors are the flat terrain colours used without a sprite sheet
var TileColors = [...]color.RGBA{
	core.TileBrick:  {160, 70, 30, 255},
	core.TileSteel:  {170, 170, 185, 255},
	core.TileForest: {30, 110, 30, 200},
	core.TileIce:    {210, 230, 250, 255},
	core.TileWater:  {40, 90, 200, 255},
}

// FallbackColor returns the flat colour drawn for s when the sheet has no
// image for it
func FallbackColor(s core.Sprite) color.RGBA {
	switch s.Kind {
	case core.SpriteTank:
		return PaletteColors[s.Palette%4]
	case core.SpriteSpawnStar:
		return color.RGBA{255, 255, 255, uint8(80 + 40*(s.Frame%4))}
	case core.SpriteShield:
		return color.RGBA{255, 255, 255, 60}
	case core.SpriteBullet:
		return color.RGBA{240, 240, 240, 255}
	case core.SpriteTile:
		if int(s.Tile) < len(TileColors) {
			return TileColors[s.Tile]
		}
	case core.SpritePhoenix:
		if s.Alive {
			return color.RGBA{230, 200, 60, 255}
		}
		return color.RGBA{90, 60, 40, 255}
	case core.SpritePowerUp:
		return color.RGBA{240, 60, 200, 255}
	case core.SpriteExplosion:
		return color.RGBA{255, uint8(200 - 30*s.Frame), 40, 220}
	case core.SpriteBanner:
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{255, 0, 255, 255}
}

// tankGlyphs point the way the tank faces
var tankGlyphs = [...]rune{core.Up: '▲', core.Down: '▼', core.Left: '◀', core.Right: '▶'}

// powerUpGlyphs label each power-up in the terminal
var powerUpGlyphs = [...]rune{
	core.PowerShield:    'S',
	core.PowerFreeze:    'F',
	core.PowerFortify:   'B',
	core.PowerBullet:    'P',
	core.PowerExplosion: 'G',
	core.PowerExtraLife: 'L',
	core.PowerSpecial:   'H',
}

// Glyph returns the terminal character and style for s
func Glyph(s core.Sprite) (rune, tcell.Style) {
	c := FallbackColor(s)
	fg := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	st := tcell.StyleDefault.Foreground(fg)
	switch s.Kind {
	case core.SpriteTank:
		return tankGlyphs[s.Dir%4], st.Bold(true)
	case core.SpriteSpawnStar:
		return '*', st
	case core.SpriteShield:
		return ' ', tcell.StyleDefault
	case core.SpriteBullet:
		return '•', st
	case core.SpriteTile:
		switch s.Tile {
		case core.TileBrick:
			if s.Shape != core.ShapeFull {
				return '▒', st
			}
			return '▓', st
		case core.TileSteel:
			return '█', st
		case core.TileForest:
			return '♣', st
		case core.TileIce:
			return '░', st
		case core.TileWater:
			return '≈', st
		}
	case core.SpritePhoenix:
		if s.Alive {
			return '✦', st.Bold(true)
		}
		return 'x', st
	case core.SpritePowerUp:
		return powerUpGlyphs[s.PowerUp%core.NumPowerUps], st.Reverse(true)
	case core.SpriteExplosion:
		return '✸', st
	case core.SpriteBanner:
		return ' ', tcell.StyleDefault
	}
	return '?', st
}

package core

// SpriteKind selects which sprite table a Sprite refers to
type SpriteKind uint8

const (
	SpriteTank SpriteKind = iota
	SpriteSpawnStar
	SpriteShield
	SpriteBullet
	SpriteTile
	SpritePhoenix
	SpritePowerUp
	SpriteExplosion
	SpriteBanner
)

// Sprite describes one image to draw. Only the fields relevant to Kind are set.
type Sprite struct {
	Kind    SpriteKind
	Level   int
	Palette Palette
	Dir     Direction
	Frame   int
	Tile    TileKind
	Shape   BrickShape
	PowerUp PowerUpKind
	Points  int
	Large   bool
	Alive   bool
}

// Canvas is the drawing surface the simulation renders into
type Canvas interface {
	Blit(s Sprite, dst Rect)
}

// Draw renders the world back to front. Forest is drawn over tanks.
func (w *World) Draw(c Canvas) {
	now := w.TickCount
	for _, t := range w.Tiles {
		if t.Kind == TileIce || t.Kind == TileWater {
			t.Draw(c, now)
		}
	}
	for _, t := range w.Tiles {
		if t.Kind == TileBrick || t.Kind == TileSteel {
			t.Draw(c, now)
		}
	}
	w.Base.Draw(c)
	for _, t := range w.Tanks {
		t.Draw(c, now)
	}
	for _, b := range w.Bullets {
		b.Draw(c)
	}
	for _, t := range w.Tiles {
		if t.Kind == TileForest {
			t.Draw(c, now)
		}
	}
	for _, e := range w.Explosions {
		e.Draw(c)
	}
	for _, p := range w.PowerUps {
		p.Draw(c, now)
	}
	for _, s := range w.Banners {
		s.Draw(c)
	}
}

func (t *Tank) Draw(c Canvas, now uint64) {
	switch t.State {
	case TankSpawning:
		c.Blit(Sprite{Kind: SpriteSpawnStar, Frame: t.Frame}, t.Rect)
	case TankActive:
		c.Blit(Sprite{Kind: SpriteTank, Level: t.Level, Palette: t.drawPalette(now), Dir: t.Dir, Frame: t.Frame}, t.Rect)
		if t.Shielded(now) {
			c.Blit(Sprite{Kind: SpriteShield, Frame: int(now/4) % 2}, t.Rect)
		}
	}
}

// drawPalette flashes special tanks red and shows armor health
func (t *Tank) drawPalette(now uint64) Palette {
	if t.IsSpecial() && (now/8)%2 == 0 {
		return PaletteRed
	}
	if t.IsEnemy() && TierFor(t.Level).Health > 1 {
		switch t.Health {
		case 1:
			return PaletteSilver
		case 2:
			return PaletteGold
		case 3:
			return PaletteGreen
		}
	}
	return t.Palette
}

func (b *Bullet) Draw(c Canvas) {
	c.Blit(Sprite{Kind: SpriteBullet, Dir: b.Dir}, b.Rect)
}

func (t *Tile) Draw(c Canvas, now uint64) {
	frame := 0
	if t.Kind == TileWater {
		frame = int(now/30) % 2
	}
	c.Blit(Sprite{Kind: SpriteTile, Tile: t.Kind, Shape: t.Shape, Frame: frame}, t.Rect)
}

func (p *Phoenix) Draw(c Canvas) {
	c.Blit(Sprite{Kind: SpritePhoenix, Alive: p.Alive}, p.Rect)
}

func (p *PowerUp) Draw(c Canvas, now uint64) {
	// blink
	if (now/15)%2 == 1 {
		return
	}
	c.Blit(Sprite{Kind: SpritePowerUp, PowerUp: p.Kind}, p.Rect)
}

func (e *Explosion) Draw(c Canvas) {
	size := 64
	if e.Large {
		size = 128
	}
	c.Blit(Sprite{Kind: SpriteExplosion, Frame: e.Frame, Large: e.Large}, RectCentered(e.CX, e.CY, size, size))
}

func (s *ScoreBanner) Draw(c Canvas) {
	c.Blit(Sprite{Kind: SpriteBanner, Points: s.Points}, RectCentered(s.CX, s.CY, 64, 32))
}

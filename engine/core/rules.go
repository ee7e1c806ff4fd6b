package core

import (
	"math"
	"time"
)

// Rules carries every tunable of the simulation. Durations are in ticks.
type Rules struct {
	FPS int

	Field      Rect // playfield in pixels
	TankSize   int
	TileSize   int
	BulletSize int

	BaseTankSpeed   int // px per tick before the tier multiplier
	BaseBulletSpeed int

	SpawnTicks             int
	SpawnFrameTicks        int
	FriendlyParalysisTicks int
	FreezeTicks            int
	StartShieldTicks       int
	ShieldTicks            int
	RespawnTicks           int
	EnemySpawnTicks        int
	AIThinkTicks           int
	AIShotMinTicks         int
	AIShotMaxTicks         int
	PowerUpTicks           int
	FortifyTicks           int
	StageTransitionTicks   int
	GameOverTicks          int
	ExplosionFrameTicks    int
	BannerTicks            int

	PowerUpBonus    int
	PowerStep       int // bullet speed modifier step, in percent
	PowerThreshold  int
	SteelBreakPower int

	EnemyCountMin    int
	EnemyCountMax    int
	SpecialChance    float64
	MaxActiveEnemies int // 0 disables the cap

	StartLives int

	PlayerSpawns [2][2]int
	EnemySpawns  [3][2]int
}

// Ticks converts a wall-clock duration into whole simulation ticks
func Ticks(d time.Duration, fps int) int {
	return int(math.Round(d.Seconds() * float64(fps)))
}

// DefaultRules returns the arcade tuning at 60 ticks per second
func DefaultRules() Rules {
	const fps = 60
	t := func(d time.Duration) int { return Ticks(d, fps) }
	field := Rect{X: 64, Y: 32, W: 832, H: 832}
	return Rules{
		FPS:        fps,
		Field:      field,
		TankSize:   64,
		TileSize:   32,
		BulletSize: 16,

		BaseTankSpeed:   2,
		BaseBulletSpeed: 6,

		SpawnTicks:             t(2 * time.Second),
		SpawnFrameTicks:        t(50 * time.Millisecond),
		FriendlyParalysisTicks: t(2 * time.Second),
		FreezeTicks:            t(5 * time.Second),
		StartShieldTicks:       t(3 * time.Second),
		ShieldTicks:            t(10 * time.Second),
		RespawnTicks:           t(time.Second),
		EnemySpawnTicks:        t(3 * time.Second),
		AIThinkTicks:           t(750 * time.Millisecond),
		AIShotMinTicks:         t(500 * time.Millisecond),
		AIShotMaxTicks:         t(2 * time.Second),
		PowerUpTicks:           t(10 * time.Second),
		FortifyTicks:           t(20 * time.Second),
		StageTransitionTicks:   t(3 * time.Second),
		GameOverTicks:          t(2 * time.Second),
		ExplosionFrameTicks:    t(100 * time.Millisecond),
		BannerTicks:            t(time.Second),

		PowerUpBonus:    500,
		PowerStep:       10,
		PowerThreshold:  150,
		SteelBreakPower: 2,

		EnemyCountMin:    20,
		EnemyCountMax:    20,
		SpecialChance:    0.2,
		MaxActiveEnemies: 4,

		StartLives: 3,

		PlayerSpawns: [2][2]int{
			{field.X + 8*32, field.Bottom() - 64},
			{field.X + 16*32, field.Bottom() - 64},
		},
		EnemySpawns: [3][2]int{
			{field.X, field.Y},
			{field.X + 12*32, field.Y},
			{field.Right() - 64, field.Y},
		},
	}
}

// GridUnit is the snapping granularity for tank motion
func (r Rules) GridUnit() int { return r.TankSize / 2 }

// CellRect returns the pixel rect of grid cell (col, row)
func (r Rules) CellRect(col, row int) Rect {
	return Rect{X: r.Field.X + col*r.TileSize, Y: r.Field.Y + row*r.TileSize, W: r.TileSize, H: r.TileSize}
}

// BaseRing returns the tile cells bordering base that lie inside the field
func (r Rules) BaseRing(base Rect) []Rect {
	var ring []Rect
	ts := r.TileSize
	for y := base.Y - ts; y < base.Bottom()+ts; y += ts {
		for x := base.X - ts; x < base.Right()+ts; x += ts {
			cell := Rect{X: x, Y: y, W: ts, H: ts}
			if cell.Overlaps(base) || !r.Field.Contains(cell) {
				continue
			}
			ring = append(ring, cell)
		}
	}
	return ring
}

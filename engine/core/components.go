package core

// EntityID is a unique identifier for game entities within one World
type EntityID uint64

// ---- Tanks ----

// TankState is the lifecycle phase of a tank
type TankState uint8

const (
	TankSpawning TankState = iota
	TankActive
	TankRespawning
	TankRemoved
)

var tankStateNames = [...]string{"spawning", "active", "respawning", "removed"}

func (s TankState) String() string {
	if int(s) < len(tankStateNames) {
		return tankStateNames[s]
	}
	return "unknown"
}

// ControlKind says who drives a tank
type ControlKind uint8

const (
	ControlPlayer ControlKind = iota
	ControlAI
	ControlSpecialAI // AI tank that drops a power-up on destruction
)

// Palette indexes the four sprite colour variants
type Palette uint8

const (
	PaletteGold Palette = iota
	PaletteGreen
	PaletteSilver
	PaletteRed
)

// Intent is what a tank wants to do on the next tick
type Intent struct {
	Moving bool
	Move   Direction
	Fire   bool
}

// AIState is the steering memory of a computer-driven tank
type AIState struct {
	Probes      [numDirections]Rect
	Candidates  DirSet
	NextThinkAt uint64
	NextShotAt  uint64
}

// Tank is a player or enemy tank
type Tank struct {
	ID      EntityID
	Control ControlKind
	Slot    int // player slot, -1 for enemies
	Level   int
	Palette Palette

	Rect    Rect
	Dir     Direction
	SpawnX  int
	SpawnY  int
	State   TankState
	Health  int
	Speed   int
	Power   int
	Frame   int  // tread animation frame
	Pending bool // startup shield due on activation

	BulletLimit     int
	BulletsInFlight int
	BulletMod       int // bullet speed modifier, percent
	Amphibious      bool

	SpawnedAt      uint64
	RespawnAt      uint64
	ParalyzedUntil uint64
	ShieldUntil    uint64

	Intent Intent
	AI     *AIState
}

func (t *Tank) IsPlayer() bool  { return t.Control == ControlPlayer }
func (t *Tank) IsEnemy() bool   { return t.Control != ControlPlayer }
func (t *Tank) IsSpecial() bool { return t.Control == ControlSpecialAI }

// Tangible reports whether the tank takes part in collisions
func (t *Tank) Tangible() bool { return t.State == TankActive }

// Present reports whether the tank occupies the field, spawning or active
func (t *Tank) Present() bool { return t.State == TankSpawning || t.State == TankActive }

func (t *Tank) Removed() bool { return t.State == TankRemoved }

// Paralyzed reports whether movement is locked at tick now
func (t *Tank) Paralyzed(now uint64) bool { return now < t.ParalyzedUntil }

// Shielded reports whether hits are ignored at tick now
func (t *Tank) Shielded(now uint64) bool { return now < t.ShieldUntil }

// Remove takes the tank out of play. It reports false if already removed.
func (t *Tank) Remove() bool {
	if t.State == TankRemoved {
		return false
	}
	t.State = TankRemoved
	return true
}

// ReleaseBullet decrements the in-flight counter, never below zero
func (t *Tank) ReleaseBullet() {
	if t.BulletsInFlight > 0 {
		t.BulletsInFlight--
	}
}

// ApplyTier resets level-derived stats and clears modifiers
func (t *Tank) ApplyTier(r Rules) {
	st := TierFor(t.Level)
	t.Speed = r.TankSpeed(t.Level)
	t.Power = st.Power
	t.Health = st.Health
	t.BulletLimit = st.BulletLimit
	t.BulletMod = 100
}

// ---- Bullets ----

// Bullet is a projectile in flight
type Bullet struct {
	ID         EntityID
	Owner      EntityID
	OwnerEnemy bool
	OwnerSlot  int // -1 for enemy shots
	Rect       Rect
	Dir        Direction
	Speed      int
	Power      int
	BornAt     uint64
	dead       bool
}

func (b *Bullet) Dead() bool { return b.dead }

// Consume removes the bullet. It reports false if already consumed.
func (b *Bullet) Consume() bool {
	if b.dead {
		return false
	}
	b.dead = true
	return true
}

// ---- Terrain ----

// TileKind is the terrain material of a tile
type TileKind uint8

const (
	TileBrick TileKind = iota
	TileSteel
	TileForest
	TileIce
	TileWater
)

var tileKindNames = [...]string{"brick", "steel", "forest", "ice", "water"}

func (k TileKind) String() string {
	if int(k) < len(tileKindNames) {
		return tileKindNames[k]
	}
	return "unknown"
}

// BrickShape tracks which half of a damaged brick remains
type BrickShape uint8

const (
	ShapeFull BrickShape = iota
	ShapeSmallLeft
	ShapeSmallRight
	ShapeSmallTop
	ShapeSmallBottom
)

// Tile is one terrain cell
type Tile struct {
	ID        EntityID
	Kind      TileKind
	Rect      Rect
	Cell      Rect // full, undamaged cell
	Health    int
	Shape     BrickShape
	Fortified bool
	dead      bool
}

// NewTile builds a full-health tile covering cell
func NewTile(kind TileKind, cell Rect) *Tile {
	t := &Tile{Kind: kind, Rect: cell, Cell: cell, Health: 1}
	if kind == TileBrick {
		t.Health = 2
	}
	return t
}

func (t *Tile) Dead() bool { return t.dead }

func (t *Tile) Destroy() { t.dead = true }

// Impassable reports whether tanks are blocked by t
func (t *Tile) Impassable(amphibious bool) bool {
	switch t.Kind {
	case TileBrick, TileSteel:
		return true
	case TileWater:
		return !amphibious
	}
	return false
}

// BulletTarget reports whether bullets collide with t
func (t *Tile) BulletTarget() bool { return t.Kind == TileBrick || t.Kind == TileSteel }

// Hit applies one bullet impact and reports whether the tile was destroyed
func (t *Tile) Hit(d Direction, power, steelBreakPower int) bool {
	if t.dead {
		return false
	}
	switch t.Kind {
	case TileBrick:
		t.Health--
		if t.Health <= 0 {
			t.dead = true
			return true
		}
		t.Shape, t.Rect = shrinkBrick(t.Cell, d)
	case TileSteel:
		if power > steelBreakPower {
			t.dead = true
			return true
		}
	}
	return false
}

// shrinkBrick keeps the half of cell on the side the bullet was heading
func shrinkBrick(cell Rect, d Direction) (BrickShape, Rect) {
	hw, hh := cell.W/2, cell.H/2
	switch d {
	case Left:
		return ShapeSmallLeft, Rect{X: cell.X, Y: cell.Y, W: hw, H: cell.H}
	case Right:
		return ShapeSmallRight, Rect{X: cell.X + cell.W - hw, Y: cell.Y, W: hw, H: cell.H}
	case Up:
		return ShapeSmallTop, Rect{X: cell.X, Y: cell.Y, W: cell.W, H: hh}
	default:
		return ShapeSmallBottom, Rect{X: cell.X, Y: cell.Y + cell.H - hh, W: cell.W, H: hh}
	}
}

// Phoenix is the base the players defend
type Phoenix struct {
	Rect  Rect
	Alive bool
}

// ---- Power-ups ----

// PowerUpKind enumerates collectible effects
type PowerUpKind uint8

const (
	PowerShield PowerUpKind = iota
	PowerFreeze
	PowerFortify
	PowerBullet
	PowerExplosion
	PowerExtraLife
	PowerSpecial
	NumPowerUps
)

var powerUpNames = [...]string{"shield", "freeze", "fortify", "power", "explosion", "extra_life", "special"}

func (k PowerUpKind) String() string {
	if int(k) < len(powerUpNames) {
		return powerUpNames[k]
	}
	return "unknown"
}

// PowerUp is a collectible lying on the field
type PowerUp struct {
	ID        EntityID
	Kind      PowerUpKind
	Rect      Rect
	ExpiresAt uint64
	dead      bool
}

func (p *PowerUp) Dead() bool { return p.dead }
func (p *PowerUp) Collect()   { p.dead = true }

// ---- Effects ----

// Explosion is a short frame animation with no gameplay effect
type Explosion struct {
	ID          EntityID
	CX, CY      int
	Large       bool
	Frame       int
	NextFrameAt uint64
	dead        bool
}

// Frames is the animation length
func (e *Explosion) Frames() int {
	if e.Large {
		return 5
	}
	return 3
}

func (e *Explosion) Dead() bool { return e.dead }
func (e *Explosion) Finish()    { e.dead = true }

// ScoreBanner shows awarded points for a moment
type ScoreBanner struct {
	ID        EntityID
	CX, CY    int
	Points    int
	ExpiresAt uint64
	dead      bool
}

func (s *ScoreBanner) Dead() bool { return s.dead }
func (s *ScoreBanner) Expire()    { s.dead = true }

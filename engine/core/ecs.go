package core

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// World holds every entity of one running stage
type World struct {
	Rules     Rules
	TickCount uint64
	Rand      *rand.Rand
	Bus       *EventBus
	Log       zerolog.Logger
	Masks     *MaskSet

	Tanks      []*Tank
	Bullets    []*Bullet
	Tiles      []*Tile
	PowerUps   []*PowerUp
	Explosions []*Explosion
	Banners    []*ScoreBanner
	Base       *Phoenix
	Players    []*PlayerState

	Stage   StageState
	Fortify FortifyState

	systems []System
	nextID  EntityID
}

// System processes the world once per tick
type System interface {
	Update(w *World)
	Priority() int
}

// NewWorld creates an empty world seeded for deterministic play
func NewWorld(rules Rules, seed int64) *World {
	return &World{
		Rules: rules,
		Rand:  rand.New(rand.NewSource(seed)),
		Bus:   NewEventBus(),
		Log:   zerolog.Nop(),
		Masks: NewMaskSet(rules.TankSize, rules.BulletSize),
		Base:  &Phoenix{},
	}
}

// NewEntityID generates a unique entity ID
func (w *World) NewEntityID() EntityID {
	w.nextID++
	return w.nextID
}

// AddSystem registers a system
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Tick runs all systems once, sweeps removed entities, then delivers events
func (w *World) Tick() {
	for _, s := range w.systems {
		s.Update(w)
	}
	w.sweep()
	w.Bus.Dispatch()
	w.TickCount++
}

func (w *World) sweep() {
	w.Tanks = sweep(w.Tanks, (*Tank).Removed)
	w.Bullets = sweep(w.Bullets, (*Bullet).Dead)
	w.Tiles = sweep(w.Tiles, (*Tile).Dead)
	w.PowerUps = sweep(w.PowerUps, (*PowerUp).Dead)
	w.Explosions = sweep(w.Explosions, (*Explosion).Dead)
	w.Banners = sweep(w.Banners, (*ScoreBanner).Dead)
}

func sweep[T any](items []*T, dead func(*T) bool) []*T {
	out := items[:0]
	for _, it := range items {
		if !dead(it) {
			out = append(out, it)
		}
	}
	clear(items[len(out):])
	return out
}

// Reset drops every entity but keeps systems, players, and the RNG stream
func (w *World) Reset() {
	w.Tanks = nil
	w.Bullets = nil
	w.Tiles = nil
	w.PowerUps = nil
	w.Explosions = nil
	w.Banners = nil
	w.Base = &Phoenix{}
	w.Stage = StageState{}
	w.Fortify = FortifyState{}
}

// ---- Entity registration ----

func (w *World) AddTank(t *Tank) *Tank {
	t.ID = w.NewEntityID()
	w.Tanks = append(w.Tanks, t)
	return t
}

func (w *World) AddBullet(b *Bullet) *Bullet {
	b.ID = w.NewEntityID()
	w.Bullets = append(w.Bullets, b)
	return b
}

func (w *World) AddTile(t *Tile) *Tile {
	t.ID = w.NewEntityID()
	w.Tiles = append(w.Tiles, t)
	return t
}

func (w *World) AddPowerUp(p *PowerUp) *PowerUp {
	p.ID = w.NewEntityID()
	w.PowerUps = append(w.PowerUps, p)
	return p
}

// AddExplosion starts an explosion animation centered on (cx, cy)
func (w *World) AddExplosion(cx, cy int, large bool) *Explosion {
	e := &Explosion{ID: w.NewEntityID(), CX: cx, CY: cy, Large: large,
		NextFrameAt: w.TickCount + uint64(w.Rules.ExplosionFrameTicks)}
	w.Explosions = append(w.Explosions, e)
	return e
}

// AddBanner shows points centered on (cx, cy)
func (w *World) AddBanner(cx, cy, points int) *ScoreBanner {
	s := &ScoreBanner{ID: w.NewEntityID(), CX: cx, CY: cy, Points: points,
		ExpiresAt: w.TickCount + uint64(w.Rules.BannerTicks)}
	w.Banners = append(w.Banners, s)
	return s
}

// ---- Lookups ----

// TankByID returns the tank with id, or nil once it has been removed
func (w *World) TankByID(id EntityID) *Tank {
	for _, t := range w.Tanks {
		if t.ID == id && !t.Removed() {
			return t
		}
	}
	return nil
}

// PlayerTank returns the tank of a player slot, or nil
func (w *World) PlayerTank(slot int) *Tank {
	for _, t := range w.Tanks {
		if t.IsPlayer() && t.Slot == slot && !t.Removed() {
			return t
		}
	}
	return nil
}

// Player returns the state of a slot, or nil
func (w *World) Player(slot int) *PlayerState {
	if slot < 0 || slot >= len(w.Players) {
		return nil
	}
	return w.Players[slot]
}

// Enemies returns all enemy tanks still in play
func (w *World) Enemies() []*Tank {
	var out []*Tank
	for _, t := range w.Tanks {
		if t.IsEnemy() && !t.Removed() {
			out = append(out, t)
		}
	}
	return out
}

// AllPlayersOut reports whether every player slot has run out of lives.
// A world with no players never runs out.
func (w *World) AllPlayersOut() bool {
	if len(w.Players) == 0 {
		return false
	}
	for _, p := range w.Players {
		if !p.GameOver {
			return false
		}
	}
	return true
}

// ---- Events ----

// Emit queues e stamped with the current tick
func (w *World) Emit(e Event) {
	e.Tick = w.TickCount
	w.Bus.Emit(e)
}

// PlaySound queues a sound cue
func (w *World) PlaySound(s Sound) {
	w.Emit(Event{Type: EvtSound, Sound: s, Slot: -1})
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	return len(w.Tanks) + len(w.Bullets) + len(w.Tiles) + len(w.PowerUps) +
		len(w.Explosions) + len(w.Banners)
}

package core

import "time"

// GameState represents the overall game state
type GameState uint8

const (
	StatePlaying GameState = iota
	StatePaused
	StateGameOver
)

// GameLoop runs the simulation at a fixed timestep regardless of the
// render frame rate
type GameLoop struct {
	TickRate    float64 // fixed ticks per second
	State       GameState
	Step        func() // advances the simulation by one tick
	Now         func() time.Time
	accumulator float64
	lastTime    time.Time
}

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(tickRate float64, step func()) *GameLoop {
	gl := &GameLoop{TickRate: tickRate, Step: step, Now: time.Now}
	gl.lastTime = gl.Now()
	return gl
}

// Update should be called every render frame. It returns the number of
// ticks run.
func (gl *GameLoop) Update() int {
	now := gl.Now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now

	// Cap frame time to avoid spiral of death
	if frameTime > 0.25 {
		frameTime = 0.25
	}

	dt := 1.0 / gl.TickRate
	gl.accumulator += frameTime

	n := 0
	for gl.accumulator >= dt {
		if gl.State == StatePlaying {
			gl.Step()
			n++
		}
		gl.accumulator -= dt
	}
	return n
}

// Play starts or resumes the game
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.lastTime = gl.Now()
}

// Pause pauses the game
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

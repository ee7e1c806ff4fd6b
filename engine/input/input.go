package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// Binding maps a player's buttons to keyboard keys
type Binding struct {
	Up, Down, Left, Right, Fire ebiten.Key
}

// DefaultBindings: player one on WASD + Space, player two on the arrows + Enter
var DefaultBindings = []Binding{
	{Up: ebiten.KeyW, Down: ebiten.KeyS, Left: ebiten.KeyA, Right: ebiten.KeyD, Fire: ebiten.KeySpace},
	{Up: ebiten.KeyUp, Down: ebiten.KeyDown, Left: ebiten.KeyLeft, Right: ebiten.KeyRight, Fire: ebiten.KeyEnter},
}

// Poll reads the current state of b's keys
func (b Binding) Poll() Keys {
	var k Keys
	for _, m := range []struct {
		key ebiten.Key
		bit Keys
	}{
		{b.Up, KeyUp}, {b.Down, KeyDown}, {b.Left, KeyLeft}, {b.Right, KeyRight}, {b.Fire, KeyFire},
	} {
		if ebiten.IsKeyPressed(m.key) {
			k |= m.bit
		}
	}
	return k
}

// InputState tracks keyboard state per frame for every player slot
type InputState struct {
	Bindings    []Binding
	Controllers []*Controller
	Keys        []Keys // last snapshot per slot
}

// NewInputState creates controllers for players slots
func NewInputState(players int) *InputState {
	s := &InputState{
		Bindings: DefaultBindings[:min(players, len(DefaultBindings))],
	}
	for range s.Bindings {
		s.Controllers = append(s.Controllers, &Controller{})
	}
	s.Keys = make([]Keys, len(s.Bindings))
	return s
}

// Update should be called every frame
func (s *InputState) Update() {
	for i, b := range s.Bindings {
		s.Keys[i] = b.Poll()
	}
}

// Intents converts the last snapshot into one intent per slot. Call once
// per simulation tick so fire stays edge-triggered.
func (s *InputState) Intents() []core.Intent {
	out := make([]core.Intent, len(s.Controllers))
	for i, c := range s.Controllers {
		out[i] = c.Intent(s.Keys[i])
	}
	return out
}

// IsKeyJustPressed returns true if key was just pressed this frame
func (s *InputState) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

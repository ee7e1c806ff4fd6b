package systems

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// testWorldOption configures a world built by newTestWorld
type testWorldOption func(w *core.World)

// withPlayers adds n player slots with the default lives
func withPlayers(n int) testWorldOption {
	return func(w *core.World) {
		for i := 0; i < n; i++ {
			w.Players = append(w.Players, core.NewPlayerState(i, w.Rules.StartLives))
		}
	}
}

// withRules replaces the rules before anything is placed
func withRules(mut func(r *core.Rules)) testWorldOption {
	return func(w *core.World) {
		mut(&w.Rules)
	}
}

// newTestWorld returns an empty field with the base at its usual spot and
// every simulation system installed
func newTestWorld(t *testing.T, opts ...testWorldOption) *core.World {
	t.Helper()
	w := core.NewWorld(core.DefaultRules(), 7)
	for _, o := range opts {
		o(w)
	}
	w.Base = &core.Phoenix{Rect: core.Rect{X: w.Rules.Field.X + 12*32, Y: w.Rules.Field.Y + 24*32, W: 64, H: 64}, Alive: true}
	w.Stage = core.StageState{Number: 1, EnemyCount: 20, RemainingToSpawn: 20, AliveOrRemaining: 20}
	Install(w)
	return w
}

// activePlayer places an already-active player tank at (x, y)
func activePlayer(t *testing.T, w *core.World, slot, x, y int, dir core.Direction) *core.Tank {
	t.Helper()
	p := w.Player(slot)
	require.NotNil(t, p, "slot %d not configured", slot)
	tk := NewPlayerTank(w, p)
	tk.Rect.X, tk.Rect.Y = x, y
	tk.SpawnX, tk.SpawnY = x, y
	tk.State = core.TankActive
	tk.Pending = false
	tk.Dir = dir
	return tk
}

// activeEnemy places an already-active enemy tank at (x, y)
func activeEnemy(w *core.World, class, x, y int, dir core.Direction) *core.Tank {
	tk := NewEnemyTank(w, class, x, y, false)
	tk.State = core.TankActive
	tk.Dir = dir
	return tk
}

// tileAt places a tile at grid cell (col, row)
func tileAt(w *core.World, kind core.TileKind, col, row int) *core.Tile {
	return w.AddTile(core.NewTile(kind, w.Rules.CellRect(col, row)))
}

func tickN(w *core.World, n int) {
	for i := 0; i < n; i++ {
		w.Tick()
	}
}

// tickUntil runs ticks until cond holds, failing after limit ticks
func tickUntil(t *testing.T, w *core.World, limit int, cond func() bool) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if cond() {
			return
		}
		w.Tick()
	}
	require.True(t, cond(), "condition not reached within %d ticks", limit)
}

func liveBullets(w *core.World) int {
	n := 0
	for _, b := range w.Bullets {
		if !b.Dead() {
			n++
		}
	}
	return n
}

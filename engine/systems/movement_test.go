package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

func TestMoveTank_SnapsCrossAxisToGrid(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 104, 352, core.Up)

	for i := 0; i < 20; i++ {
		MoveTank(w, tk, core.Up)
		require.Zero(t, (tk.Rect.X-w.Rules.Field.X)%w.Rules.GridUnit(), "x=%d", tk.Rect.X)
	}
	assert.Equal(t, 96, tk.Rect.X)
	assert.Equal(t, 352-20*2, tk.Rect.Y)
}

func TestMoveTank_StopsFlushAgainstBrick(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 128, 352, core.Right)
	brick := tileAt(w, core.TileBrick, 5, 10)
	tileAt(w, core.TileBrick, 5, 11)

	tk.Intent = core.Intent{Moving: true, Move: core.Right}
	tickN(w, 40)

	assert.Equal(t, brick.Rect.X, tk.Rect.Right())
	assert.False(t, tk.Rect.Overlaps(brick.Rect))
}

func TestMoveTank_ParalyzedOnlyTurns(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 320, 352, core.Up)
	ParalyzeTank(w, tk, 100)

	MoveTank(w, tk, core.Left)
	assert.Equal(t, core.Left, tk.Dir)
	assert.Equal(t, 320, tk.Rect.X)
	assert.True(t, tk.Paralyzed(w.TickCount))
}

func TestMoveTank_InactiveIsNoop(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := NewPlayerTank(w, w.Player(0))
	before := tk.Rect

	MoveTank(w, tk, core.Left)
	assert.Equal(t, before, tk.Rect)
	assert.Equal(t, core.Up, tk.Dir)
}

func TestMoveTank_InvalidDirectionPanics(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 320, 352, core.Up)
	assert.Panics(t, func() { MoveTank(w, tk, core.Direction(7)) })
}

func TestMoveTank_SpawningTanksAreIntangible(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 128, 352, core.Right)
	NewEnemyTank(w, 0, 192, 352, false)

	for i := 0; i < 10; i++ {
		MoveTank(w, tk, core.Right)
	}
	assert.Equal(t, 148, tk.Rect.X)
}

func TestMoveTank_ActiveTanksBlock(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 128, 352, core.Right)
	activeEnemy(w, 0, 192, 352, core.Left)

	for i := 0; i < 10; i++ {
		MoveTank(w, tk, core.Right)
	}
	assert.Equal(t, 128, tk.Rect.X)
}

func TestMoveTank_ClampedToField(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 64, 352, core.Left)

	MoveTank(w, tk, core.Left)
	assert.Equal(t, w.Rules.Field.X, tk.Rect.X)
	assert.True(t, w.Rules.Field.Contains(tk.Rect))
}

func TestMoveTank_WaterNeedsAmphibious(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 128, 352, core.Right)
	tileAt(w, core.TileWater, 4, 10)
	tileAt(w, core.TileWater, 4, 11)

	MoveTank(w, tk, core.Right)
	assert.Equal(t, 128, tk.Rect.X)

	tk.Amphibious = true
	MoveTank(w, tk, core.Right)
	assert.Equal(t, 130, tk.Rect.X)
}

func TestMoveTank_ForestAndIcePassable(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 128, 352, core.Right)
	tileAt(w, core.TileForest, 4, 10)
	tileAt(w, core.TileIce, 4, 11)

	MoveTank(w, tk, core.Right)
	assert.Equal(t, 130, tk.Rect.X)
}

func TestResolveOverlap(t *testing.T) {
	obstacle := core.Rect{X: 100, Y: 100, W: 32, H: 32}
	tests := []struct {
		name string
		r    core.Rect
		dir  core.Direction
		want core.Rect
	}{
		{"right", core.Rect{X: 40, Y: 90, W: 64, H: 64}, core.Right, core.Rect{X: 36, Y: 90, W: 64, H: 64}},
		{"left", core.Rect{X: 130, Y: 90, W: 64, H: 64}, core.Left, core.Rect{X: 132, Y: 90, W: 64, H: 64}},
		{"up", core.Rect{X: 90, Y: 128, W: 64, H: 64}, core.Up, core.Rect{X: 90, Y: 132, W: 64, H: 64}},
		{"down", core.Rect{X: 90, Y: 40, W: 64, H: 64}, core.Down, core.Rect{X: 90, Y: 36, W: 64, H: 64}},
		{"no overlap", core.Rect{X: 0, Y: 0, W: 64, H: 64}, core.Right, core.Rect{X: 0, Y: 0, W: 64, H: 64}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveOverlap(tt.r, obstacle, tt.dir))
		})
	}
}

package maplib

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

func newTestMap() *TileMap {
	tm := NewTileMap("test")
	tm.Set(12, 24, CodeFlag)
	return tm
}

func TestBuild_PlacesTilesAtCellCoordinates(t *testing.T) {
	tm := newTestMap()
	tm.Set(0, 0, CodeBrick)
	tm.Set(3, 2, CodeSteel)
	tm.Set(5, 5, CodeWater)

	w := core.NewWorld(core.DefaultRules(), 1)
	require.NoError(t, tm.Build(w))

	require.Len(t, w.Tiles, 3)
	assert.Equal(t, core.Rect{X: 64, Y: 32, W: 32, H: 32}, w.Tiles[0].Rect)
	assert.Equal(t, core.TileBrick, w.Tiles[0].Kind)
	assert.Equal(t, 2, w.Tiles[0].Health)
	assert.Equal(t, core.Rect{X: 64 + 3*32, Y: 32 + 2*32, W: 32, H: 32}, w.Tiles[1].Rect)
	assert.Equal(t, core.TileWater, w.Tiles[2].Kind)

	assert.True(t, w.Base.Alive)
	assert.Equal(t, core.Rect{X: 64 + 12*32, Y: 32 + 24*32, W: 64, H: 64}, w.Base.Rect)
}

func TestBuild_RejectsUnknownCodeWithoutSideEffects(t *testing.T) {
	tm := newTestMap()
	tm.Set(0, 0, CodeBrick)
	tm.Set(7, 7, 99)

	w := core.NewWorld(core.DefaultRules(), 1)
	err := tm.Build(w)
	require.ErrorIs(t, err, ErrUnknownTileCode)
	assert.Empty(t, w.Tiles)
	assert.False(t, w.Base.Alive)
}

func TestValidate(t *testing.T) {
	t.Run("short row", func(t *testing.T) {
		tm := newTestMap()
		tm.Grid[3] = tm.Grid[3][:10]
		assert.ErrorIs(t, tm.Validate(), ErrBadGridShape)
	})
	t.Run("missing rows", func(t *testing.T) {
		tm := newTestMap()
		tm.Grid = tm.Grid[:20]
		assert.ErrorIs(t, tm.Validate(), ErrBadGridShape)
	})
	t.Run("no base", func(t *testing.T) {
		assert.ErrorIs(t, NewTileMap("x").Validate(), ErrNoBase)
	})
}

func TestEncode_RoundTripsLiveTerrain(t *testing.T) {
	tm := newTestMap()
	tm.Set(1, 1, CodeForest)
	tm.Set(2, 1, CodeIce)
	tm.Set(3, 1, CodeBrick)

	w := core.NewWorld(core.DefaultRules(), 1)
	require.NoError(t, tm.Build(w))
	w.Tiles[2].Destroy()

	out := Encode(w, "copy")
	assert.Equal(t, CodeForest, out.At(1, 1))
	assert.Equal(t, CodeIce, out.At(2, 1))
	assert.Equal(t, CodeEmpty, out.At(3, 1))
	assert.Equal(t, CodeFlag, out.At(12, 24))
}

func TestSaveLoadJSON(t *testing.T) {
	tm := newTestMap()
	tm.Set(4, 4, CodeSteel)
	path := filepath.Join(t.TempDir(), "stage.json")
	require.NoError(t, tm.SaveJSON(path))

	got, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, tm.Grid, got.Grid)
	assert.Equal(t, "test", got.Name)

	c, err := LoadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestDefaultCatalogue(t *testing.T) {
	c, err := DefaultCatalogue()
	require.NoError(t, err)
	require.Equal(t, 4, c.Len())

	rules := core.DefaultRules()
	for n := 1; n <= c.Len(); n++ {
		tm, err := c.Stage(n)
		require.NoError(t, err)
		w := core.NewWorld(rules, 1)
		require.NoError(t, tm.Build(w), tm.Name)

		// spawn points are clear of terrain
		for _, sp := range rules.EnemySpawns {
			spawn := core.Rect{X: sp[0], Y: sp[1], W: rules.TankSize, H: rules.TankSize}
			for _, tile := range w.Tiles {
				assert.False(t, tile.Impassable(false) && tile.Rect.Overlaps(spawn), "%s enemy spawn blocked", tm.Name)
			}
		}
		// base ring is brick
		for _, cell := range rules.BaseRing(w.Base.Rect) {
			found := false
			for _, tile := range w.Tiles {
				if tile.Cell == cell {
					found = tile.Kind == core.TileBrick
				}
			}
			assert.True(t, found, "%s ring cell %+v", tm.Name, cell)
		}
	}

	first, _ := c.Stage(1)
	wrapped, err := c.Stage(5)
	require.NoError(t, err)
	assert.Same(t, first, wrapped)

	_, err = c.Stage(0)
	assert.ErrorIs(t, err, ErrUnknownStage)
}

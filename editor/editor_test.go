package editor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/maplib"
)

func TestNewEditor_PlacesBase(t *testing.T) {
	e := NewEditor(core.DefaultRules())
	assert.Equal(t, maplib.CodeFlag, e.Map.At(12, 24))
	assert.NoError(t, e.Map.Validate())
	assert.False(t, e.Modified)
}

func TestEditor_ProtectedCells(t *testing.T) {
	e := NewEditor(core.DefaultRules())
	tests := []struct {
		name     string
		col, row int
		want     bool
	}{
		{"base", 13, 25, true},
		{"player one spawn", 8, 24, true},
		{"player two spawn", 17, 25, true},
		{"left enemy spawn", 1, 1, true},
		{"middle enemy spawn", 12, 0, true},
		{"right enemy spawn", 25, 0, true},
		{"open ground", 6, 6, false},
		{"next to base", 11, 24, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Protected(tt.col, tt.row))
		})
	}
}

func TestEditor_PaintSkipsProtected(t *testing.T) {
	e := NewEditor(core.DefaultRules())
	e.Brush = maplib.CodeSteel
	e.BrushSize = 2
	e.Paint(11, 23)

	assert.Equal(t, maplib.CodeSteel, e.Map.At(11, 23))
	assert.Equal(t, maplib.CodeSteel, e.Map.At(12, 23))
	assert.Equal(t, maplib.CodeSteel, e.Map.At(11, 24))
	assert.Equal(t, maplib.CodeFlag, e.Map.At(12, 24))
	require.Len(t, e.UndoStack, 1)
	assert.Len(t, e.UndoStack[0], 3)
	assert.True(t, e.Modified)
}

func TestEditor_UndoRedo(t *testing.T) {
	e := NewEditor(core.DefaultRules())
	v := e.Version
	e.Paint(4, 4)
	e.Brush = maplib.CodeWater
	e.Paint(4, 4)
	assert.Equal(t, maplib.CodeWater, e.Map.At(4, 4))

	e.Undo()
	assert.Equal(t, maplib.CodeBrick, e.Map.At(4, 4))
	e.Undo()
	assert.Equal(t, maplib.CodeEmpty, e.Map.At(4, 4))
	e.Undo()
	assert.Empty(t, e.UndoStack)

	e.Redo()
	assert.Equal(t, maplib.CodeBrick, e.Map.At(4, 4))
	assert.Greater(t, e.Version, v)

	e.Erase(4, 4)
	assert.Empty(t, e.RedoStack, "a new stroke drops the redo history")
	assert.Equal(t, maplib.CodeEmpty, e.Map.At(4, 4))
}

func TestEditor_RepaintIsNoop(t *testing.T) {
	e := NewEditor(core.DefaultRules())
	e.Paint(5, 5)
	e.Paint(5, 5)
	assert.Len(t, e.UndoStack, 1)
}

func TestEditor_SaveAndLoad(t *testing.T) {
	e := NewEditor(core.DefaultRules())
	assert.ErrorIs(t, e.SaveMap(""), ErrNoPath)

	e.Brush = maplib.CodeForest
	e.Paint(3, 7)
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, e.SaveMap(path))
	assert.False(t, e.Modified)
	assert.Equal(t, path, e.FilePath)

	other := NewEditor(core.DefaultRules())
	require.NoError(t, other.LoadMap(path))
	assert.Equal(t, maplib.CodeForest, other.Map.At(3, 7))
	assert.Empty(t, other.UndoStack)

	assert.Error(t, other.LoadMap(filepath.Join(t.TempDir(), "missing.json")))
}

func TestEditor_CycleBrush(t *testing.T) {
	e := NewEditor(core.DefaultRules())
	seen := map[int]bool{}
	for range Brushes {
		seen[e.Brush] = true
		e.CycleBrush()
	}
	assert.Len(t, seen, len(Brushes))
	assert.Equal(t, maplib.CodeBrick, e.Brush)
}

func TestEditor_PreviewBuildsTerrain(t *testing.T) {
	e := NewEditor(core.DefaultRules())
	e.Brush = maplib.CodeSteel
	e.Paint(2, 2)
	w, err := e.Preview()
	require.NoError(t, err)
	require.NotNil(t, w.Base)
	assert.True(t, w.Base.Alive)

	back := maplib.Encode(w, "preview")
	assert.Equal(t, maplib.CodeSteel, back.At(2, 2))
}

func TestEditor_CellAt(t *testing.T) {
	rules := core.DefaultRules()
	e := NewEditor(rules)
	c, r, ok := e.CellAt(rules.Field.X+3*32+5, rules.Field.Y+31)
	assert.True(t, ok)
	assert.Equal(t, 3, c)
	assert.Equal(t, 0, r)

	_, _, ok = e.CellAt(rules.Field.X-1, rules.Field.Y)
	assert.False(t, ok)
	_, _, ok = e.CellAt(rules.Field.Right(), rules.Field.Y)
	assert.False(t, ok)
}

func TestBrushName(t *testing.T) {
	assert.Equal(t, "Erase", BrushName(maplib.CodeEmpty))
	assert.Equal(t, "code 99", BrushName(99))
}

package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/maplib"
)

func TestEditorApp_RefreshFollowsEdits(t *testing.T) {
	app := NewEditorApp(core.DefaultRules(), zerolog.Nop(), nil)
	app.refresh()
	require.NotNil(t, app.preview)
	first := app.preview

	app.refresh()
	assert.Same(t, first, app.preview, "no edit, no rebuild")

	app.editor.Paint(3, 3)
	app.refresh()
	assert.NotSame(t, first, app.preview)
	assert.Equal(t, maplib.CodeBrick, maplib.Encode(app.preview, "x").At(3, 3))
}

func TestEditorApp_SidebarLines(t *testing.T) {
	app := NewEditorApp(core.DefaultRules(), zerolog.Nop(), nil)
	lines := app.sidebarLines()
	assert.Contains(t, lines, ">1 Brick")
	assert.Contains(t, lines, " 6 Erase")
	assert.NotContains(t, lines, "MODIFIED")

	app.editor.Paint(3, 3)
	app.editor.BrushSize = 2
	lines = app.sidebarLines()
	assert.Contains(t, lines, "MODIFIED")
	assert.Contains(t, lines, "SIZE 2x2")
}

func TestEditorApp_WorldSize(t *testing.T) {
	app := NewEditorApp(core.DefaultRules(), zerolog.Nop(), nil)
	w, h := app.worldSize()
	assert.Equal(t, 64+832+sidebar, w)
	assert.Equal(t, 32+832+32, h)
}

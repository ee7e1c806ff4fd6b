package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/frgonzalezb/Udemy-Battle-City/editor"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/config"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/logging"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/render"
)

const sidebar = 192

var (
	surround   = color.RGBA{99, 99, 99, 255}
	ground     = color.RGBA{0, 0, 0, 255}
	gridColor  = color.RGBA{40, 40, 40, 255}
	hoverColor = color.RGBA{255, 255, 0, 180}
	lockColor  = color.RGBA{200, 40, 40, 120}
)

// EditorApp implements ebiten.Game over a stage editor
type EditorApp struct {
	editor  *editor.Editor
	rules   core.Rules
	log     zerolog.Logger
	canvas  *render.EbitenCanvas
	preview *core.World
	built   int // editor version the preview was built from
	hoverC  int
	hoverR  int
	hover   bool
	status  string
}

func NewEditorApp(rules core.Rules, log zerolog.Logger, sheet *render.SpriteSheet) *EditorApp {
	return &EditorApp{
		editor: editor.NewEditor(rules),
		rules:  rules,
		log:    log,
		canvas: render.NewEbitenCanvas(sheet, nil),
		built:  -1,
	}
}

func (a *EditorApp) worldSize() (int, int) {
	return a.rules.Field.Right() + sidebar, a.rules.Field.Bottom() + a.rules.Field.Y
}

// brushKeys selects Brushes by index
var brushKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6}

func (a *EditorApp) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	ed := a.editor

	for i, k := range brushKeys {
		if i < len(editor.Brushes) && inpututil.IsKeyJustPressed(k) {
			ed.Brush = editor.Brushes[i]
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		ed.BrushSize = 3 - max(ed.BrushSize, 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		ed.CycleBrush()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		ed.ShowGrid = !ed.ShowGrid
	}

	mx, my := ebiten.CursorPosition()
	wx, wy := a.canvas.Camera.ScreenToWorld(mx, my)
	a.hoverC, a.hoverR, a.hover = ed.CellAt(wx, wy)
	if a.hover {
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			ed.Paint(a.hoverC, a.hoverR)
		} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
			ed.Erase(a.hoverC, a.hoverR)
		}
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		if shift {
			ed.Redo()
		} else {
			ed.Undo()
		}
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyY):
		ed.Redo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		a.save()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyN):
		ed.NewMap("Untitled")
		a.status = "new stage"
	}
	return nil
}

func (a *EditorApp) save() {
	path := a.editor.FilePath
	if path == "" {
		path = "stage.json"
	}
	if err := a.editor.SaveMap(path); err != nil {
		a.log.Warn().Err(err).Str("path", path).Msg("Save failed")
		a.status = "save failed"
		return
	}
	a.log.Info().Str("path", path).Msg("Stage saved")
	a.status = "saved " + path
}

// refresh rebuilds the preview world after an edit
func (a *EditorApp) refresh() {
	if a.built == a.editor.Version {
		return
	}
	w, err := a.editor.Preview()
	if err != nil {
		a.log.Debug().Err(err).Msg("Preview unavailable")
		w = nil
	}
	a.preview = w
	a.built = a.editor.Version
}

func (a *EditorApp) Draw(screen *ebiten.Image) {
	a.refresh()
	ww, wh := a.worldSize()
	cam := a.canvas.Camera
	cam.Fit(ww, wh, screen.Bounds().Dx(), screen.Bounds().Dy())

	screen.Fill(ground)
	fillRect(screen, cam, core.Rect{W: ww, H: wh}, surround)
	fillRect(screen, cam, a.rules.Field, ground)

	if a.preview != nil {
		a.canvas.Screen = screen
		a.preview.Draw(a.canvas)
	}

	ed := a.editor
	for r := range ed.Map.Grid {
		for c := range ed.Map.Grid[r] {
			cell := a.rules.CellRect(c, r)
			if ed.Protected(c, r) {
				fillRect(screen, cam, cell, lockColor)
			}
			if ed.ShowGrid {
				strokeRect(screen, cam, cell, gridColor)
			}
		}
	}
	if a.hover {
		n := max(ed.BrushSize, 1)
		cell := a.rules.CellRect(a.hoverC, a.hoverR)
		cell.W, cell.H = cell.W*n, cell.H*n
		strokeRect(screen, cam, cell, hoverColor)
	}

	x, y, _, _ := cam.WorldToScreen(core.Rect{X: a.rules.Field.Right() + 16, Y: a.rules.Field.Y + 16})
	render.DrawText(screen, a.sidebarLines(), int(x), int(y))
}

func (a *EditorApp) sidebarLines() []string {
	ed := a.editor
	lines := []string{ed.Map.Name, ""}
	for i, b := range editor.Brushes {
		mark := " "
		if b == ed.Brush {
			mark = ">"
		}
		lines = append(lines, fmt.Sprintf("%s%d %s", mark, i+1, editor.BrushName(b)))
	}
	lines = append(lines, "", fmt.Sprintf("SIZE %dx%d", max(ed.BrushSize, 1), max(ed.BrushSize, 1)))
	if a.hover {
		lines = append(lines, fmt.Sprintf("CELL %d,%d", a.hoverC, a.hoverR))
	}
	if ed.Modified {
		lines = append(lines, "MODIFIED")
	}
	if a.status != "" {
		lines = append(lines, a.status)
	}
	return append(lines, "", "LMB paint RMB erase", "TAB size G grid", "^Z undo ^Y redo", "^S save ^N new")
}

func fillRect(screen *ebiten.Image, cam *render.Camera, r core.Rect, clr color.Color) {
	x, y, w, h := cam.WorldToScreen(r)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func strokeRect(screen *ebiten.Image, cam *render.Camera, r core.Rect, clr color.Color) {
	x, y, w, h := cam.WorldToScreen(r)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, clr, false)
}

func (a *EditorApp) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func main() {
	cfgPath := flag.String("config", "", "config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.Setup(cfg.LogLevel, os.Stderr, nil)

	app := NewEditorApp(cfg.Rules, log, render.LoadDefaultSheet(2))
	if path := flag.Arg(0); path != "" {
		if err := app.editor.LoadMap(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to load stage")
			app.editor.FilePath = path
		}
	}

	ww, wh := app.worldSize()
	ebiten.SetWindowSize(ww*cfg.Window.Scale, wh*cfg.Window.Scale)
	ebiten.SetWindowTitle(cfg.Window.Title + " - Construction")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("Editor stopped")
		os.Exit(1)
	}
}

// Package editor implements stage construction: painting terrain codes onto
// a stage grid with undo and redo.
package editor

import (
	"errors"
	"fmt"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/maplib"
)

// Brushes lists the codes that can be painted, in selection order
var Brushes = []int{
	maplib.CodeBrick,
	maplib.CodeSteel,
	maplib.CodeForest,
	maplib.CodeIce,
	maplib.CodeWater,
	maplib.CodeEmpty,
}

// BrushName returns a label for a brush code
func BrushName(code int) string {
	switch code {
	case maplib.CodeBrick:
		return "Brick"
	case maplib.CodeSteel:
		return "Steel"
	case maplib.CodeForest:
		return "Forest"
	case maplib.CodeIce:
		return "Ice"
	case maplib.CodeWater:
		return "Water"
	case maplib.CodeEmpty:
		return "Erase"
	}
	return fmt.Sprintf("code %d", code)
}

// ErrNoPath is returned when saving without a file name
var ErrNoPath = errors.New("editor: no file path")

// Action is one cell change, undoable
type Action struct {
	Col, Row int
	Old, New int
}

// Editor holds stage editor state
type Editor struct {
	Map       *maplib.TileMap
	Brush     int
	BrushSize int // cells per side, 1 or 2
	UndoStack [][]Action
	RedoStack [][]Action
	FilePath  string
	Modified  bool
	ShowGrid  bool
	Version   int // bumped on every change

	rules     core.Rules
	protected map[[2]int]bool
}

// DefaultBase is the flag cell of a new stage
var DefaultBase = [2]int{12, 24}

// NewEditor creates an editor on an empty stage with the base in place
func NewEditor(rules core.Rules) *Editor {
	e := &Editor{
		Brush:     maplib.CodeBrick,
		BrushSize: 1,
		ShowGrid:  true,
		rules:     rules,
	}
	e.NewMap("Untitled")
	return e
}

// NewMap starts over with an empty stage
func (e *Editor) NewMap(name string) {
	e.Map = maplib.NewTileMap(name)
	e.Map.Set(DefaultBase[0], DefaultBase[1], maplib.CodeFlag)
	e.FilePath = ""
	e.reset()
}

// LoadMap loads a stage file
func (e *Editor) LoadMap(path string) error {
	tm, err := maplib.LoadJSON(path)
	if err != nil {
		return err
	}
	e.Map = tm
	e.FilePath = path
	e.reset()
	return nil
}

func (e *Editor) reset() {
	e.Modified = false
	e.UndoStack = nil
	e.RedoStack = nil
	e.Version++
	e.protected = e.protectedCells()
}

// SaveMap validates and saves the stage. An empty path reuses the last one.
func (e *Editor) SaveMap(path string) error {
	if path == "" {
		path = e.FilePath
	}
	if path == "" {
		return ErrNoPath
	}
	if err := e.Map.Validate(); err != nil {
		return err
	}
	if err := e.Map.SaveJSON(path); err != nil {
		return err
	}
	e.FilePath = path
	e.Modified = false
	return nil
}

// protectedCells are the base footprint and every spawn point: painting
// there would wall a tank in or bury the base
func (e *Editor) protectedCells() map[[2]int]bool {
	cells := make(map[[2]int]bool)
	ts := e.rules.TileSize
	mark := func(x, y, size int) {
		c0 := (x - e.rules.Field.X) / ts
		r0 := (y - e.rules.Field.Y) / ts
		n := max(size/ts, 1)
		for r := r0; r < r0+n; r++ {
			for c := c0; c < c0+n; c++ {
				cells[[2]int{c, r}] = true
			}
		}
	}
	for r, row := range e.Map.Grid {
		for c, code := range row {
			if code == maplib.CodeFlag {
				cell := e.rules.CellRect(c, r)
				mark(cell.X, cell.Y, 2*ts)
			}
		}
	}
	for _, sp := range e.rules.PlayerSpawns {
		mark(sp[0], sp[1], e.rules.TankSize)
	}
	for _, sp := range e.rules.EnemySpawns {
		mark(sp[0], sp[1], e.rules.TankSize)
	}
	return cells
}

// Protected reports whether the cell cannot be painted
func (e *Editor) Protected(col, row int) bool {
	return e.protected[[2]int{col, row}]
}

// Paint applies the brush with its top-left cell at (col, row)
func (e *Editor) Paint(col, row int) {
	e.paint(col, row, e.Brush)
}

// Erase clears the brush area at (col, row)
func (e *Editor) Erase(col, row int) {
	e.paint(col, row, maplib.CodeEmpty)
}

func (e *Editor) paint(col, row, code int) {
	var actions []Action
	size := max(e.BrushSize, 1)
	for r := row; r < row+size; r++ {
		for c := col; c < col+size; c++ {
			if !e.Map.InBounds(c, r) || e.Protected(c, r) {
				continue
			}
			old := e.Map.At(c, r)
			if old == code {
				continue
			}
			e.Map.Set(c, r, code)
			actions = append(actions, Action{Col: c, Row: r, Old: old, New: code})
		}
	}
	if len(actions) > 0 {
		e.UndoStack = append(e.UndoStack, actions)
		e.RedoStack = nil
		e.Modified = true
		e.Version++
	}
}

// Undo reverts the last stroke
func (e *Editor) Undo() {
	if len(e.UndoStack) == 0 {
		return
	}
	actions := e.UndoStack[len(e.UndoStack)-1]
	e.UndoStack = e.UndoStack[:len(e.UndoStack)-1]
	for _, a := range actions {
		e.Map.Set(a.Col, a.Row, a.Old)
	}
	e.RedoStack = append(e.RedoStack, actions)
	e.Modified = true
	e.Version++
}

// Redo re-applies the last undone stroke
func (e *Editor) Redo() {
	if len(e.RedoStack) == 0 {
		return
	}
	actions := e.RedoStack[len(e.RedoStack)-1]
	e.RedoStack = e.RedoStack[:len(e.RedoStack)-1]
	for _, a := range actions {
		e.Map.Set(a.Col, a.Row, a.New)
	}
	e.UndoStack = append(e.UndoStack, actions)
	e.Modified = true
	e.Version++
}

// CycleBrush selects the next brush
func (e *Editor) CycleBrush() {
	for i, b := range Brushes {
		if b == e.Brush {
			e.Brush = Brushes[(i+1)%len(Brushes)]
			return
		}
	}
	e.Brush = Brushes[0]
}

// Preview builds a world holding the stage's terrain and base for drawing
func (e *Editor) Preview() (*core.World, error) {
	w := core.NewWorld(e.rules, 0)
	if err := e.Map.Build(w); err != nil {
		return nil, err
	}
	return w, nil
}

// CellAt converts a field pixel to a grid cell
func (e *Editor) CellAt(x, y int) (int, int, bool) {
	f := e.rules.Field
	if x < f.X || y < f.Y {
		return 0, 0, false
	}
	col, row := (x-f.X)/e.rules.TileSize, (y-f.Y)/e.rules.TileSize
	return col, row, e.Map.InBounds(col, row)
}

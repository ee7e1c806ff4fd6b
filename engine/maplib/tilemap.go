package maplib

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// Tile codes used in stage grids
const (
	CodeEmpty  = -1
	CodeBrick  = 20
	CodeSteel  = 21
	CodeForest = 22
	CodeIce    = 23
	CodeWater  = 24
	CodeFlag   = 25
)

// GridSize is the number of tile rows and columns in a stage
const GridSize = 26

var (
	ErrUnknownTileCode = errors.New("maplib: unknown tile code")
	ErrBadGridShape    = errors.New("maplib: bad grid shape")
	ErrNoBase          = errors.New("maplib: stage has no base")
)

var codeKinds = map[int]core.TileKind{
	CodeBrick:  core.TileBrick,
	CodeSteel:  core.TileSteel,
	CodeForest: core.TileForest,
	CodeIce:    core.TileIce,
	CodeWater:  core.TileWater,
}

// TileMap is a stage layout of integer tile codes, indexed [row][col]
type TileMap struct {
	Name string  `json:"name"`
	Grid [][]int `json:"grid"`
}

// NewTileMap creates a new empty map
func NewTileMap(name string) *TileMap {
	tm := &TileMap{Name: name, Grid: make([][]int, GridSize)}
	for r := range tm.Grid {
		tm.Grid[r] = make([]int, GridSize)
		for c := range tm.Grid[r] {
			tm.Grid[r][c] = CodeEmpty
		}
	}
	return tm
}

// InBounds checks if coordinates are within map bounds
func (tm *TileMap) InBounds(col, row int) bool {
	return row >= 0 && row < len(tm.Grid) && col >= 0 && col < len(tm.Grid[row])
}

// At returns the code at (col, row), or CodeEmpty out of bounds
func (tm *TileMap) At(col, row int) int {
	if !tm.InBounds(col, row) {
		return CodeEmpty
	}
	return tm.Grid[row][col]
}

// Set writes a code at (col, row)
func (tm *TileMap) Set(col, row, code int) {
	if tm.InBounds(col, row) {
		tm.Grid[row][col] = code
	}
}

// Validate checks the grid shape and every code
func (tm *TileMap) Validate() error {
	if len(tm.Grid) != GridSize {
		return fmt.Errorf("%w: %d rows, want %d", ErrBadGridShape, len(tm.Grid), GridSize)
	}
	flags := 0
	for r, row := range tm.Grid {
		if len(row) != GridSize {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrBadGridShape, r, len(row), GridSize)
		}
		for c, code := range row {
			switch code {
			case CodeEmpty:
			case CodeFlag:
				flags++
			default:
				if _, ok := codeKinds[code]; !ok {
					return fmt.Errorf("%w: %d at col %d row %d", ErrUnknownTileCode, code, c, r)
				}
			}
		}
	}
	if flags == 0 {
		return ErrNoBase
	}
	return nil
}

// Build decodes the grid into terrain tiles and the base of w. Nothing is
// added to w unless the whole grid decodes.
func (tm *TileMap) Build(w *core.World) error {
	if err := tm.Validate(); err != nil {
		return fmt.Errorf("stage %q: %w", tm.Name, err)
	}
	rules := w.Rules
	var base core.Rect
	for r, row := range tm.Grid {
		for c, code := range row {
			if code != CodeFlag || !base.Empty() {
				continue
			}
			cell := rules.CellRect(c, r)
			base = core.Rect{X: cell.X, Y: cell.Y, W: 2 * rules.TileSize, H: 2 * rules.TileSize}
		}
	}
	w.Base = &core.Phoenix{Rect: base, Alive: true}
	for r, row := range tm.Grid {
		for c, code := range row {
			kind, ok := codeKinds[code]
			if !ok {
				continue
			}
			cell := rules.CellRect(c, r)
			if cell.Overlaps(base) {
				continue
			}
			w.AddTile(core.NewTile(kind, cell))
		}
	}
	return nil
}

// Encode reads the live terrain of w back into a grid of codes
func Encode(w *core.World, name string) *TileMap {
	tm := NewTileMap(name)
	rules := w.Rules
	cell := func(rect core.Rect) (int, int) {
		return (rect.X - rules.Field.X) / rules.TileSize, (rect.Y - rules.Field.Y) / rules.TileSize
	}
	for _, t := range w.Tiles {
		if t.Dead() {
			continue
		}
		c, r := cell(t.Cell)
		for code, kind := range codeKinds {
			if kind == t.Kind {
				tm.Set(c, r, code)
			}
		}
	}
	if w.Base != nil && !w.Base.Rect.Empty() {
		c, r := cell(w.Base.Rect)
		tm.Set(c, r, CodeFlag)
	}
	return tm
}

// JSON returns the map in its stage file format
func (tm *TileMap) JSON() ([]byte, error) {
	return json.MarshalIndent(tm, "", "  ")
}

// SaveJSON saves the map to a JSON file
func (tm *TileMap) SaveJSON(path string) error {
	data, err := tm.JSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJSON loads a map from a JSON file
func LoadJSON(path string) (*TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseJSON(data)
}

// ParseJSON decodes and validates a map
func ParseJSON(data []byte) (*TileMap, error) {
	var tm TileMap
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, err
	}
	if err := tm.Validate(); err != nil {
		return nil, fmt.Errorf("stage %q: %w", tm.Name, err)
	}
	return &tm, nil
}

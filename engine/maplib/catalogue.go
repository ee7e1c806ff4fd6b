package maplib

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

//go:embed stages/*.json
var builtin embed.FS

var ErrUnknownStage = errors.New("maplib: unknown stage")

// Catalogue is the ordered list of playable stages
type Catalogue struct {
	stages []*TileMap
}

// NewCatalogue wraps an ordered list of maps
func NewCatalogue(stages ...*TileMap) *Catalogue {
	return &Catalogue{stages: stages}
}

// DefaultCatalogue returns the stages compiled into the binary
func DefaultCatalogue() (*Catalogue, error) {
	names, err := builtin.ReadDir("stages")
	if err != nil {
		return nil, err
	}
	c := &Catalogue{}
	for _, e := range names {
		data, err := builtin.ReadFile("stages/" + e.Name())
		if err != nil {
			return nil, err
		}
		tm, err := ParseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		c.stages = append(c.stages, tm)
	}
	return c, nil
}

// LoadDir reads every *.json stage in dir, ordered by file name
func LoadDir(dir string) (*Catalogue, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no stages in %s", os.ErrNotExist, dir)
	}
	sort.Strings(paths)
	c := &Catalogue{}
	for _, p := range paths {
		tm, err := LoadJSON(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		c.stages = append(c.stages, tm)
	}
	return c, nil
}

// Len returns the number of distinct stages
func (c *Catalogue) Len() int { return len(c.stages) }

// Stage returns stage n (1-based). Numbers past the end wrap around.
func (c *Catalogue) Stage(n int) (*TileMap, error) {
	if n < 1 || len(c.stages) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStage, n)
	}
	return c.stages[(n-1)%len(c.stages)], nil
}

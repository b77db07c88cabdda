// Package layouts loads predefined puzzler starting boards from YAML files.
// This package depends on the simulation core but core does not depend on
// layouts.
package layouts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-puzzler/internal/games/puzzler/core"
)

// ErrNotFound is returned when no layout has the requested ID.
var ErrNotFound = errors.New("layout not found")

// yamlLayout is the file structure of a layout.
type yamlLayout struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name"`
	Size   yamlSize   `yaml:"size"`
	Player *yamlCoord `yaml:"player,omitempty"`
	Rows   []string   `yaml:"rows"` // Top row first
}

type yamlSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type yamlCoord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Layout is a validated starting board.
type Layout struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Rows     []string // Top row first, one token code per cell
	Player   *core.Coord
	FilePath string
}

// Parse decodes and validates a layout document.
func Parse(data []byte) (Layout, error) {
	var yl yamlLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	l := Layout{
		ID:     yl.ID,
		Name:   yl.Name,
		Width:  yl.Size.W,
		Height: yl.Size.H,
		Rows:   make([]string, len(yl.Rows)),
	}
	for i, row := range yl.Rows {
		l.Rows[i] = strings.ReplaceAll(row, " ", "")
	}
	if l.Height == 0 {
		l.Height = len(l.Rows)
	}
	if l.Width == 0 && len(l.Rows) > 0 {
		l.Width = len(l.Rows[0])
	}
	if l.Name == "" {
		l.Name = l.ID
	}
	if yl.Player != nil {
		c := core.C(yl.Player.X, yl.Player.Y)
		l.Player = &c
	}

	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks that the rows match the declared size and contain only
// token codes.
func (l Layout) Validate() error {
	if l.ID == "" {
		return errors.New("layout has no id")
	}
	if l.Width < 3 || l.Height < 3 {
		return fmt.Errorf("layout %s: board must be at least 3x3, got %dx%d", l.ID, l.Width, l.Height)
	}
	if len(l.Rows) != l.Height {
		return fmt.Errorf("layout %s: expected %d rows, got %d", l.ID, l.Height, len(l.Rows))
	}
	for i, row := range l.Rows {
		if len(row) != l.Width {
			return fmt.Errorf("layout %s: row %d has %d cells, want %d", l.ID, i, len(row), l.Width)
		}
		for _, r := range row {
			if _, ok := core.TokenFromRune(r); !ok {
				return fmt.Errorf("layout %s: row %d: unknown token %q", l.ID, i, r)
			}
		}
	}
	if matches := core.BoardFromRows(l.Rows, nil, nil).GetMatches(); len(matches) > 0 {
		return fmt.Errorf("layout %s: starts with a match at %v", l.ID, matches[0].Origin)
	}
	if p := l.Player; p != nil {
		if p.X < 0 || p.Y < 0 || p.X >= l.Width || p.Y >= l.Height {
			return fmt.Errorf("layout %s: player %v outside the board", l.ID, *p)
		}
	}
	return nil
}

// Options returns the puzzle options that start a game from this layout.
func (l Layout) Options() []core.Option {
	opts := []core.Option{core.WithLayout(l.Rows)}
	if l.Player != nil {
		opts = append(opts, core.WithPlayerStart(*l.Player))
	}
	return opts
}

// Loader handles loading layouts from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new layout loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all layout files.
// Invalid files are skipped. Returns layouts sorted by ID.
func (l *Loader) LoadAll() ([]Layout, error) {
	var layouts []Layout

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		layout, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		layouts = append(layouts, layout)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].ID < layouts[j].ID
	})
	return layouts, nil
}

// LoadFile loads a single layout file.
func (l *Loader) LoadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	layout, err := Parse(data)
	if err != nil {
		return Layout{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	layout.FilePath = path
	return layout, nil
}

// LoadByID loads a specific layout by ID.
func (l *Loader) LoadByID(id string) (Layout, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return Layout{}, err
	}

	for _, layout := range layouts {
		if layout.ID == id {
			return layout, nil
		}
	}
	return Layout{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all layout IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(layouts))
	for i, layout := range layouts {
		ids[i] = layout.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

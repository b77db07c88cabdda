package layouts

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the layouts shipped with the binary, sorted by ID.
func Builtin() ([]Layout, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("reading builtin layouts: %w", err)
	}

	var layouts []Layout
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(path.Ext(e.Name())) {
			continue
		}
		data, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading builtin layout %s: %w", e.Name(), err)
		}
		layout, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("builtin layout %s: %w", e.Name(), err)
		}
		layouts = append(layouts, layout)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].ID < layouts[j].ID
	})
	return layouts, nil
}

// Resolve finds a layout by reference. A reference naming an existing file
// is loaded from disk; anything else is looked up by ID among the layouts
// in dir (if set) and then the builtin ones.
func Resolve(ref, dir string) (Layout, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return NewLoader("").LoadFile(ref)
	}

	if dir != "" {
		layout, err := NewLoader(dir).LoadByID(ref)
		if err == nil {
			return layout, nil
		}
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, fs.ErrNotExist) {
			return Layout{}, err
		}
	}

	builtin, err := Builtin()
	if err != nil {
		return Layout{}, err
	}
	for _, layout := range builtin {
		if layout.ID == ref {
			return layout, nil
		}
	}
	return Layout{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
}

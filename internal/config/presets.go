package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ArrayPreset is one array file found in a preset directory.
type ArrayPreset struct {
	ID    string // file name without extension
	File  string
	Array ArrayConfig
}

// ListArrayFiles loads every *.yaml preset in dir, sorted by ID.
// Files that fail to parse are passed to skip (if non-nil) and left out.
func ListArrayFiles(dir string, skip func(path string, err error)) ([]ArrayPreset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []ArrayPreset
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		a, err := LoadArrayFile(path)
		if err != nil {
			if skip != nil {
				skip(path, err)
			}
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".yaml")
		if a.Name == "" {
			a.Name = id
		}
		out = append(out, ArrayPreset{ID: id, File: path, Array: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadFile parses a YAML profile file, validates it, and registers it
// with the manager. Unknown fields are rejected to catch typos early.
func (m *Manager) LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}

	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}

	if err := m.Register(&p); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	return p.Clone(), nil
}

// LoadDir registers every .yaml/.yml profile under dir (non-recursive).
// Files load in sorted name order so registration is deterministic.
// Returns the number of profiles registered.
func (m *Manager) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("load scenarios from %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		if _, err := m.LoadFile(filepath.Join(dir, name)); err != nil {
			return 0, err
		}
	}
	return len(files), nil
}

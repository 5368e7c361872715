package scenario

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"cuelang.org/go/cue"
)

// ErrNotFound marks lookups of unregistered scenario names. Callers match
// it with errors.Is; the wrapping message lists the available names.
var ErrNotFound = errors.New("scenario not found")

// Manager is the scenario registry. It is an explicitly constructed,
// explicitly passed value - never package-global state - so tests can use
// isolated registries and parallel runs never share mutation.
//
// A Manager is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	cuectx   *cue.Context
	schema   cue.Value
}

// NewManager creates a Manager pre-loaded with the built-in profiles.
func NewManager() *Manager {
	ctx := newCueContext()
	m := &Manager{
		profiles: make(map[string]*Profile),
		cuectx:   ctx,
		schema:   compileSchema(ctx),
	}
	for _, p := range builtinProfiles() {
		if err := m.Register(p); err != nil {
			// Built-ins ship with the binary; failing to register one is
			// a programming error, not a runtime condition.
			panic(fmt.Sprintf("scenario: built-in %q invalid: %v", p.Name, err))
		}
	}
	return m
}

// Names returns the registered scenario names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.profiles))
	for name := range m.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a clone of the named profile. Unknown names produce an
// error wrapping ErrNotFound that lists every available scenario.
func (m *Manager) Get(name string) (*Profile, error) {
	m.mu.RLock()
	p, ok := m.profiles[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)",
			ErrNotFound, name, strings.Join(m.Names(), ", "))
	}
	return p.Clone(), nil
}

// Register validates and stores a profile. The stored copy is a clone, so
// later mutation of the argument cannot corrupt the registry.
func (m *Manager) Register(p *Profile) error {
	if p == nil {
		return fmt.Errorf("register scenario: nil profile")
	}
	if res := m.Validate(p); !res.Valid {
		msgs := make([]string, len(res.Errors))
		for i, e := range res.Errors {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("register scenario %q: %s", p.Name, strings.Join(msgs, "; "))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.Name] = p.Clone()
	return nil
}

// CreateCustom derives a new profile from a registered base by deep-merge:
// entity rates and distribution weights override per key, nested structs
// merge field-by-field. The derived profile is validated and registered
// before being returned.
func (m *Manager) CreateCustom(baseName, newName string, o Overrides) (*Profile, error) {
	if newName == "" {
		return nil, fmt.Errorf("create scenario: new name must not be empty")
	}
	base, err := m.Get(baseName)
	if err != nil {
		return nil, fmt.Errorf("create scenario %q: %w", newName, err)
	}
	derived := merge(base, newName, o)
	if err := m.Register(derived); err != nil {
		return nil, err
	}
	return derived.Clone(), nil
}

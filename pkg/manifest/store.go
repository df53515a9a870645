package manifest

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-phractal/pkg/component"
)

// Store holds definitions by name, providing discovery and duplication
// safeguards. Loaders fill it from manifest files; callers can also register
// definitions built in code.
type Store struct {
	mu          sync.RWMutex
	definitions map[string]*component.Definition
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		definitions: make(map[string]*component.Definition),
	}
}

// Register adds a definition by its Name(). Duplicate names return an error.
func (s *Store) Register(def *component.Definition) error {
	if def == nil {
		return fmt.Errorf("manifest: definition is required")
	}
	name := def.Name()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.definitions[name]; exists {
		return fmt.Errorf("manifest: component %q already registered", name)
	}
	s.definitions[name] = def
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (s *Store) MustRegister(def *component.Definition) {
	if err := s.Register(def); err != nil {
		panic(err)
	}
}

// Get retrieves a definition by name.
func (s *Store) Get(name string) (*component.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.definitions[name]
	if !ok {
		return nil, fmt.Errorf("manifest: component %q not found", name)
	}
	return def, nil
}

// Has reports whether a definition is registered.
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.definitions[name]
	return ok
}

// List returns the registered component names, sorted.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.definitions))
	for name := range s.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.definitions) == 0
}

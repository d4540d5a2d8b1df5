package colormap

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
)

// Registry holds named gradients. The zero value is not usable; create
// registries with NewRegistry.
type Registry struct {
	mu sync.RWMutex
	m  map[string]*Gradient
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[string]*Gradient)}
}

// Default is the process-wide registry used when LoadDir is given a nil
// registry. Library callers that want isolation should use their own.
var Default = NewRegistry()

// Register adds a gradient under its name. Registering a name twice is
// an error.
func (r *Registry) Register(g *Gradient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.m[g.Name()]; ok {
		return fmt.Errorf("colormap: %q already registered", g.Name())
	}
	r.m[g.Name()] = g
	return nil
}

// Lookup returns the gradient registered under name.
func (r *Registry) Lookup(name string) (*Gradient, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.m[name]
	return g, ok
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.m))
	for name := range r.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadDir parses every .txt ramp file in dir and registers the resulting
// gradients, each named after its file's base name. A nil registry loads
// into Default.
func LoadDir(reg *Registry, dir string) error {
	if reg == nil {
		reg = Default
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return fmt.Errorf("colormap: glob %s: %w", dir, err)
	}

	for _, path := range paths {
		g, err := ParseFile(path)
		if err != nil {
			return err
		}
		if err := reg.Register(g); err != nil {
			return err
		}
	}
	return nil
}

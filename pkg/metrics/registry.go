// pkg/metrics/registry.go
package metrics

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry tracks the collectors of all running components
type Registry struct {
	collectors map[string]*Collector
	mu         sync.RWMutex
}

var (
	globalRegistry = NewRegistry()
)

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		collectors: make(map[string]*Collector),
	}
}

// GetGlobalRegistry returns the global collector registry
func GetGlobalRegistry() *Registry {
	return globalRegistry
}

// Register adds a collector under its name
func (r *Registry) Register(collector *Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := collector.Name()
	if _, exists := r.collectors[name]; exists {
		return fmt.Errorf("collector %s already registered", name)
	}

	r.collectors[name] = collector
	return nil
}

// Get retrieves a collector by name
func (r *Registry) Get(name string) (*Collector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	collector, exists := r.collectors[name]
	return collector, exists
}

// Unregister removes a collector from the registry
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.collectors, name)
}

// List returns all registered collector names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.collectors))
}

// Snapshots returns the current summary of every registered collector
func (r *Registry) Snapshots() map[string]Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]Summary, len(r.collectors))
	for name, c := range r.collectors {
		result[name] = c.Snapshot()
	}
	return result
}

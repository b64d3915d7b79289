package project

import (
	"fmt"
	"sort"
)

// Registry holds the set of discovered subproject descriptors for a single
// run, keyed by subproject name. It is populated once by discovery and
// read-only afterwards.
type Registry struct {
	descriptors map[string]*Descriptor
}

// NewRegistry creates and initializes an empty Registry instance.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]*Descriptor),
	}
}

// Add inserts a descriptor into the registry. An error is returned if a
// subproject with the same name is already registered.
func (r *Registry) Add(d *Descriptor) error {
	if _, exists := r.descriptors[d.Name]; exists {
		return fmt.Errorf("duplicate subproject name %q (at %s)", d.Name, d.Root)
	}
	r.descriptors[d.Name] = d
	return nil
}

// Get returns the descriptor registered under the given name.
func (r *Registry) Get(name string) (*Descriptor, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}

// Has reports whether a subproject with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.descriptors[name]
	return ok
}

// Len returns the number of registered subprojects.
func (r *Registry) Len() int {
	return len(r.descriptors)
}

// Names returns all registered subproject names in ascending order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

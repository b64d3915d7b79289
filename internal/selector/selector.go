// Package selector resolves and applies the named filter predicates declared
// in the workspace configuration. Selectors are pure attribute-membership
// tests over subproject descriptors; the engine carries no semantics of its
// own beyond applying the configured data.
package selector

import (
	"fmt"

	"github.com/vk/subgrid/internal/config"
	"github.com/vk/subgrid/internal/project"
)

// NotFoundError reports a lookup of a selector key that the workspace
// configuration does not declare.
type NotFoundError struct {
	Key string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("selector not declared in workspace configuration: %s", e.Key)
}

// Selector is a resolved, ready-to-apply predicate over descriptors.
type Selector struct {
	key       string
	attribute string
	values    map[string]struct{}
}

// Resolve looks up the named selector among the configured definitions.
func Resolve(key string, defs map[string]*config.SelectorDef) (*Selector, error) {
	def, ok := defs[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}

	values := make(map[string]struct{}, len(def.Values))
	for _, v := range def.Values {
		values[v] = struct{}{}
	}
	return &Selector{
		key:       def.Key,
		attribute: def.Attribute,
		values:    values,
	}, nil
}

// Key returns the configuration key this selector was resolved from.
func (s *Selector) Key() string {
	return s.key
}

// Matches reports whether the descriptor satisfies the predicate. It is a
// pure function of the descriptor and the selector's configured values.
func (s *Selector) Matches(d *project.Descriptor) bool {
	switch s.attribute {
	case "tags":
		for _, tag := range d.Tags {
			if _, ok := s.values[tag]; ok {
				return true
			}
		}
		return false
	case "name":
		_, ok := s.values[d.Name]
		return ok
	case "version":
		_, ok := s.values[d.Version]
		return ok
	}
	// Unknown attributes are rejected at config load; nothing matches here.
	return false
}

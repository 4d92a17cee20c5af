// Package nodetype defines the registry of node kinds available on the
// editor palette, each with its handle resolver. The registry is an
// explicit value handed to whatever needs it; nothing here is global.
package nodetype

import (
	"fmt"
	"sort"

	"github.com/flowlua/scriptgraph"
)

// Definition describes one registered node kind.
type Definition interface {
	// Kind is the registry tag stored on nodes of this type.
	Kind() string

	// Defaults returns a fresh default data payload for a new node.
	Defaults() map[string]any

	// Handles resolves the kind's current port set from node data.
	// Implementations must be pure and total: no mutation of data, no
	// panic on any payload reachable through the editor (nil included),
	// and both slices of the result always non-nil.
	Handles(data map[string]any) scriptgraph.HandleSet
}

// DataValidator is implemented by kinds whose data payload is constrained
// beyond what the resolver tolerates, e.g. the arithmetic expression string.
type DataValidator interface {
	ValidateData(data map[string]any) error
}

// Registry maps node kind tags to their definitions.
type Registry struct {
	defs map[string]Definition
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a definition. Registering a kind twice is an error.
func (r *Registry) Register(d Definition) error {
	if _, ok := r.defs[d.Kind()]; ok {
		return fmt.Errorf("nodetype: kind %q already registered", d.Kind())
	}
	r.defs[d.Kind()] = d
	return nil
}

// Lookup returns the definition for a kind.
func (r *Registry) Lookup(kind string) (Definition, bool) {
	d, ok := r.defs[kind]
	return d, ok
}

// Kinds returns all registered kind tags, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.defs))
	for k := range r.defs {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Handles resolves a kind's handle sets for the given data payload.
// Satisfies scriptgraph.Resolver.
func (r *Registry) Handles(kind string, data map[string]any) (scriptgraph.HandleSet, bool) {
	d, ok := r.defs[kind]
	if !ok {
		return scriptgraph.HandleSet{}, false
	}
	return copySet(d.Handles(data)), true
}

// Defaults returns a fresh default payload for a kind.
// Satisfies scriptgraph.Resolver.
func (r *Registry) Defaults(kind string) (map[string]any, bool) {
	d, ok := r.defs[kind]
	if !ok {
		return nil, false
	}
	return d.Defaults(), true
}

// ValidateData checks a data payload against the kind's constraints, for
// kinds that declare any.
func (r *Registry) ValidateData(kind string, data map[string]any) error {
	d, ok := r.defs[kind]
	if !ok {
		return scriptgraph.ErrUnknownKind
	}
	if v, ok := d.(DataValidator); ok {
		return v.ValidateData(data)
	}
	return nil
}

// copySet gives callers their own slices so resolver results can never be
// mutated back into a definition.
func copySet(hs scriptgraph.HandleSet) scriptgraph.HandleSet {
	return scriptgraph.HandleSet{
		Inputs:  append([]scriptgraph.Handle{}, hs.Inputs...),
		Outputs: append([]scriptgraph.Handle{}, hs.Outputs...),
	}
}

// stringField reads a string out of a data payload, tolerating a nil map,
// a missing key, or a value of the wrong type.
func stringField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	s, _ := data[key].(string)
	return s
}

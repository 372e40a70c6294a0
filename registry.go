package concierge

import "fmt"

// Registry is a closed, ordered collection of tools keyed by signature name.
// The set is fixed at construction; lookups after that can only fail with
// ErrToolNotFound.
type Registry struct {
	tools  []Tool
	byName map[string]Tool
}

// NewRegistry builds a Registry from the given tools. Duplicate names and
// malformed signatures fail fast here rather than surfacing at dispatch time.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{byName: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		sig := t.Signature()
		if err := sig.validate(); err != nil {
			return nil, fmt.Errorf("register %q: %w", sig.Name, err)
		}
		if _, dup := r.byName[sig.Name]; dup {
			return nil, fmt.Errorf("register %q: duplicate tool name: %w", sig.Name, ErrValidation)
		}
		r.byName[sig.Name] = t
		r.tools = append(r.tools, t)
	}
	return r, nil
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool { return r.tools }

// Lookup resolves a tool by name.
func (r *Registry) Lookup(name string) (Tool, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrToolNotFound)
	}
	return t, nil
}

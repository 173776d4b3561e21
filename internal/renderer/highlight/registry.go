package highlight

import (
	"sync"
)

// Registry is an ordered table of grammars consulted when a document's
// filename is set. Earlier registrations win when several grammars match.
type Registry struct {
	mu       sync.RWMutex
	grammars []*Grammar
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns a registry holding the built-in grammars.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltinGrammars(r)
	return r
}

// RegisterBuiltinGrammars registers all built-in grammars.
func RegisterBuiltinGrammars(r *Registry) {
	r.Register(CGrammar())
	r.Register(GoGrammar())
	r.Register(PythonGrammar())
}

// Register adds g to the registry. A grammar with the same filetype as an
// existing entry replaces it in place, keeping its priority.
func (r *Registry) Register(g *Grammar) {
	if g == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.grammars {
		if existing.Filetype == g.Filetype {
			r.grammars[i] = g
			return
		}
	}
	r.grammars = append(r.grammars, g)
}

// Select returns the first grammar whose file patterns match filename,
// or nil if none does.
func (r *Registry) Select(filename string) *Grammar {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.grammars {
		if g.Matches(filename) {
			return g
		}
	}
	return nil
}

// ByFiletype returns the grammar registered under filetype.
func (r *Registry) ByFiletype(filetype string) (*Grammar, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.grammars {
		if g.Filetype == filetype {
			return g, true
		}
	}
	return nil, false
}

// Grammars returns the registered grammars in priority order.
func (r *Registry) Grammars() []*Grammar {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Grammar, len(r.grammars))
	copy(out, r.grammars)
	return out
}

// Len returns the number of registered grammars.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.grammars)
}

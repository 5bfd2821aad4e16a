package handlers

import (
	"sort"
)

// Registry holds the priority-ordered handler list plus the generic
// fallback. It is built once at startup and never mutated afterwards, so
// concurrent queries share it without locking.
type Registry struct {
	handlers []Handler
	fallback Handler
}

// NewRegistry builds the registry with the built-in domain handlers and
// the generic fallback.
func NewRegistry() *Registry {
	r := &Registry{fallback: NewGenericHandler()}
	r.register(NewAdmissionsHandler())
	r.register(NewFinancialAidHandler())
	r.register(NewCostsHandler())
	return r
}

// NewRegistryWith builds a registry from an explicit handler set. The
// fallback must match every query.
func NewRegistryWith(fallback Handler, hs ...Handler) *Registry {
	r := &Registry{fallback: fallback}
	for _, h := range hs {
		r.register(h)
	}
	return r
}

func (r *Registry) register(h Handler) {
	r.handlers = append(r.handlers, h)
	// Stable sort keeps registration order for equal priorities.
	sort.SliceStable(r.handlers, func(i, j int) bool {
		return r.handlers[i].Priority() > r.handlers[j].Priority()
	})
}

// Route selects the single handler for a query: the first match in
// priority order, or the fallback. Exactly one handler runs per query.
func (r *Registry) Route(query string) Handler {
	for _, h := range r.handlers {
		if h.Matches(query) {
			return h
		}
	}
	return r.fallback
}

// Handlers returns the routing order, fallback last.
func (r *Registry) Handlers() []Handler {
	out := make([]Handler, 0, len(r.handlers)+1)
	out = append(out, r.handlers...)
	return append(out, r.fallback)
}

package executor

import (
	"chepyshell/internal/catalog"
)

// Entry is one callable method of the target.
type Entry struct {
	Name        string
	GoName      string
	Params      []catalog.ParamSpec
	KeywordOnly bool // parameters can only be bound by flag name
}

// Param returns the parameter named flag.
func (e Entry) Param(flag string) (catalog.ParamSpec, bool) {
	for _, p := range e.Params {
		if p.Flag == flag {
			return p, true
		}
	}
	return catalog.ParamSpec{}, false
}

// Registry holds the methods the executor can call.
type Registry struct {
	entries map[string]*Entry
}

// NewRegistry creates a registry with every method of cat.
func NewRegistry(cat *catalog.Catalog) *Registry {
	r := &Registry{entries: make(map[string]*Entry, cat.Len())}
	for _, m := range cat.Methods() {
		r.entries[m.Name] = &Entry{
			Name:   m.Name,
			GoName: m.GoName,
			Params: m.Params,
		}
	}
	return r
}

// Lookup returns a copy of the entry for name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Has reports whether name is a registered method.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// MarkKeywordOnly disables positional binding for name. Marking an entry again has
// no further effect. It reports whether name is registered.
func (r *Registry) MarkKeywordOnly(name string) bool {
	e, ok := r.entries[name]
	if !ok {
		return false
	}
	e.KeywordOnly = true
	return true
}

// Len returns the number of registered methods.
func (r *Registry) Len() int {
	return len(r.entries)
}

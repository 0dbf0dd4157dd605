// Package catalog derives the command grammar of the shell from the target library.
// A Catalog maps every public method name to its parameters and documentation and is
// rebuilt from the Source whenever the completer or validator asks for it.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"chepyshell/internal/logger"
)

// ParamSpec describes one flag of a method.
type ParamSpec struct {
	Flag        string
	Description string
	Type        string
	Default     string
	HasDefault  bool
	Optional    bool
}

// MethodSpec describes one method of the target.
type MethodSpec struct {
	Name             string
	GoName           string
	Params           []ParamSpec
	ShortDescription string
	ReturnTypeName   string
}

// Param returns the parameter named flag.
func (m MethodSpec) Param(flag string) (ParamSpec, bool) {
	for _, p := range m.Params {
		if p.Flag == flag {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// Catalog maps method names to their MethodSpec. Names iterate in sorted order.
type Catalog struct {
	specs map[string]MethodSpec
	order []string
}

// New creates a catalog from specs. Later duplicates of a name are ignored.
func New(specs ...MethodSpec) *Catalog {
	c := &Catalog{specs: make(map[string]MethodSpec, len(specs))}
	for _, spec := range specs {
		c.add(spec)
	}
	return c
}

func (c *Catalog) add(spec MethodSpec) bool {
	if _, exists := c.specs[spec.Name]; exists {
		return false
	}
	c.specs[spec.Name] = spec
	idx := sort.SearchStrings(c.order, spec.Name)
	c.order = append(c.order, "")
	copy(c.order[idx+1:], c.order[idx:])
	c.order[idx] = spec.Name
	return true
}

// Lookup returns the spec for name.
func (c *Catalog) Lookup(name string) (MethodSpec, bool) {
	spec, ok := c.specs[name]
	return spec, ok
}

// Has reports whether name is a method of the catalog.
func (c *Catalog) Has(name string) bool {
	_, ok := c.specs[name]
	return ok
}

// Names returns all method names in sorted order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Methods returns all specs in name order.
func (c *Catalog) Methods() []MethodSpec {
	out := make([]MethodSpec, len(c.order))
	for i, name := range c.order {
		out[i] = c.specs[name]
	}
	return out
}

// Len returns the number of methods.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Loader produces a catalog on demand.
type Loader interface {
	Catalog() *Catalog
}

// Static is a Loader that always returns the same catalog.
type Static struct {
	C *Catalog
}

// Catalog implements Loader.
func (s Static) Catalog() *Catalog {
	if s.C == nil {
		return New()
	}
	return s.C
}

// Builder is a Loader that rebuilds the catalog from its source on every call.
type Builder struct {
	source Source
	parser DocParser
}

// NewBuilder creates a Builder. A nil parser uses GoogleDocParser.
func NewBuilder(source Source, parser DocParser) *Builder {
	if parser == nil {
		parser = GoogleDocParser{}
	}
	return &Builder{source: source, parser: parser}
}

// Catalog implements Loader.
func (b *Builder) Catalog() *Catalog {
	return Build(b.source, b.parser)
}

// Build introspects src and returns the catalog of every usable method.
// Methods that fail introspection or doc parsing are skipped; the build never fails.
func Build(src Source, parser DocParser) *Catalog {
	c := New()

	methods, err := src.Methods()
	if err != nil {
		logger.Debug("Failed to list methods", "error", err)
		return c
	}

	for _, m := range methods {
		if m.Property {
			continue
		}
		spec, err := Describe(m, parser)
		if err != nil {
			logger.Debug("Skipping method", "method", m.Name, "error", err)
			continue
		}
		if !c.add(spec) {
			logger.Debug("Skipping duplicate method", "method", m.Name, "go_name", m.GoName)
		}
	}

	return c
}

// ErrNoReturns is returned by Describe when a doc comment lacks a Returns section.
var ErrNoReturns = errors.New("doc comment has no Returns section")

// Describe turns one raw method into a MethodSpec.
// Parameters are paired with the parsed doc parameters by position.
func Describe(m RawMethod, parser DocParser) (MethodSpec, error) {
	if m.Err != nil {
		return MethodSpec{}, m.Err
	}

	doc, err := parser.Parse(m.Doc)
	if err != nil {
		return MethodSpec{}, fmt.Errorf("failed to parse doc of %s: %w", m.Name, err)
	}
	if doc.Returns == nil {
		return MethodSpec{}, ErrNoReturns
	}

	spec := MethodSpec{
		Name:             m.Name,
		GoName:           m.GoName,
		ShortDescription: doc.Summary,
		ReturnTypeName:   doc.Returns.TypeName,
		Params:           make([]ParamSpec, 0, len(m.Params)),
	}

	for i, flag := range m.Params {
		if i >= len(doc.Params) {
			return MethodSpec{}, fmt.Errorf("parameter %s of %s is not documented", flag, m.Name)
		}
		pd := doc.Params[i]
		spec.Params = append(spec.Params, ParamSpec{
			Flag:        flag,
			Description: pd.Description,
			Type:        pd.Type,
			Default:     pd.Default,
			HasDefault:  pd.HasDefault,
			Optional:    pd.Optional,
		})
	}

	return spec, nil
}

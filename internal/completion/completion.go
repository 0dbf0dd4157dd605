// Package completion produces prompt completions from the method catalog.
//
// The Provider implements the core rules: after a recognized method name it offers the
// method's flags first, inside a flag region it keeps offering those flags, and
// otherwise it offers every method. Merge and Fuzzy layer additional sources and fuzzy
// ranking on top, and ReadlineAdapter plugs the result into chzyer/readline.
package completion

import (
	"strings"
	"unicode"

	"chepyshell/internal/catalog"
	"chepyshell/internal/session"
)

// FlagPrefix introduces a long flag on the command line.
const FlagPrefix = "--"

// Style is a visual hint attached to a completion.
type Style string

const (
	// StyleNone renders the completion normally.
	StyleNone Style = ""
	// StyleChainBreak marks a method whose result cannot be chained further.
	StyleChainBreak Style = "chain-break"
)

// Completion is one candidate.
type Completion struct {
	Text          string
	StartPosition int // relative to the cursor, replaces the word being typed
	DisplayMeta   string
	Style         Style
}

// Document is the line being edited.
type Document struct {
	Text           string
	CursorPosition int // byte offset into Text
}

// NewDocument returns a document with the cursor at the end of text.
func NewDocument(text string) Document {
	return Document{Text: text, CursorPosition: len(text)}
}

// TextBeforeCursor returns the text left of the cursor.
func (d Document) TextBeforeCursor() string {
	if d.CursorPosition < 0 || d.CursorPosition > len(d.Text) {
		return d.Text
	}
	return d.Text[:d.CursorPosition]
}

// WordBeforeCursor returns the run of non-space characters that ends at the cursor.
func (d Document) WordBeforeCursor() string {
	before := d.TextBeforeCursor()
	start := strings.LastIndexFunc(before, unicode.IsSpace)
	return before[start+1:]
}

// Completer produces completions for a document.
type Completer interface {
	Complete(doc Document) []Completion
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(doc Document) []Completion

// Complete implements Completer.
func (f CompleterFunc) Complete(doc Document) []Completion {
	return f(doc)
}

// Provider completes method names and flags from a catalog.
type Provider struct {
	loader    catalog.Loader
	state     *session.State
	fluentTyp string
}

// NewProvider creates a Provider. fluentType is the return type name that keeps the
// method chain going; any other documented return type is styled as a chain break.
func NewProvider(loader catalog.Loader, state *session.State, fluentType string) *Provider {
	return &Provider{loader: loader, state: state, fluentTyp: fluentType}
}

type candidate struct {
	text  string
	meta  string
	style Style
}

// Complete implements Completer. The catalog is rebuilt on every call.
func (p *Provider) Complete(doc Document) []Completion {
	cat := p.loader.Catalog()
	word := doc.WordBeforeCursor()

	last := ""
	if tokens := strings.Fields(doc.TextBeforeCursor()); len(tokens) > 0 {
		last = tokens[len(tokens)-1]
	}

	var candidates []candidate
	switch {
	case !strings.HasPrefix(last, FlagPrefix) && cat.Has(last):
		spec, _ := cat.Lookup(last)
		p.state.PendingFlagOptions = flagOptions(spec)
		candidates = append(flagCandidates(p.state.PendingFlagOptions), p.methodCandidates(cat)...)
	case strings.HasPrefix(last, FlagPrefix):
		candidates = flagCandidates(p.state.PendingFlagOptions)
	default:
		candidates = p.methodCandidates(cat)
	}

	var out []Completion
	for _, c := range candidates {
		if !strings.HasPrefix(c.text, word) {
			continue
		}
		out = append(out, Completion{
			Text:          c.text,
			StartPosition: -len(word),
			DisplayMeta:   c.meta,
			Style:         c.style,
		})
	}
	return out
}

func (p *Provider) methodCandidates(cat *catalog.Catalog) []candidate {
	methods := cat.Methods()
	out := make([]candidate, 0, len(methods))
	for _, m := range methods {
		c := candidate{text: m.Name, meta: m.ShortDescription}
		if m.ReturnTypeName != "" && m.ReturnTypeName != p.fluentTyp {
			c.style = StyleChainBreak
		}
		out = append(out, c)
	}
	return out
}

func flagOptions(spec catalog.MethodSpec) []session.FlagOption {
	out := make([]session.FlagOption, len(spec.Params))
	for i, param := range spec.Params {
		out[i] = session.FlagOption{Name: FlagPrefix + param.Flag, Description: param.Description}
	}
	return out
}

func flagCandidates(flags []session.FlagOption) []candidate {
	out := make([]candidate, len(flags))
	for i, f := range flags {
		out[i] = candidate{text: f.Name, meta: f.Description}
	}
	return out
}

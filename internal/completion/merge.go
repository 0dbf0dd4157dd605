package completion

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Merge returns a completer that yields the completions of every source in order.
func Merge(completers ...Completer) Completer {
	return CompleterFunc(func(doc Document) []Completion {
		var out []Completion
		for _, c := range completers {
			out = append(out, c.Complete(doc)...)
		}
		return out
	})
}

// FuzzyCompleter asks its inner completer for every candidate at the current position
// and keeps the ones that fuzzy-match the word being typed, best match first.
type FuzzyCompleter struct {
	inner Completer
}

// Fuzzy wraps inner with fuzzy matching.
func Fuzzy(inner Completer) *FuzzyCompleter {
	return &FuzzyCompleter{inner: inner}
}

// Complete implements Completer.
func (f *FuzzyCompleter) Complete(doc Document) []Completion {
	before := doc.TextBeforeCursor()
	word := doc.WordBeforeCursor()

	// A partial flag keeps its prefix so the inner completer stays in the flag region.
	keep := ""
	if strings.HasPrefix(word, FlagPrefix) {
		keep = FlagPrefix
	}
	candidates := f.inner.Complete(NewDocument(before[:len(before)-len(word)] + keep))

	if word == keep {
		return candidates
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}

	matches := fuzzy.Find(word, texts)
	out := make([]Completion, 0, len(matches))
	for _, m := range matches {
		c := candidates[m.Index]
		c.StartPosition = -len(word)
		out = append(out, c)
	}
	return out
}

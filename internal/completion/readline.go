package completion

import (
	"strings"

	"github.com/chzyer/readline"
)

// ReadlineAdapter connects a Completer to chzyer/readline.
//
// readline only appends suffixes to the word under the cursor, so Do reports the
// candidates that extend the typed word. When the word only fuzzy-matches, the
// Listener side replaces it with the best candidate on Tab.
type ReadlineAdapter struct {
	completer Completer
	onHint    func(doc Document, completions []Completion)
}

// Ensure ReadlineAdapter implements the readline interfaces at compile time.
var (
	_ readline.AutoCompleter = (*ReadlineAdapter)(nil)
	_ readline.Listener      = (*ReadlineAdapter)(nil)
)

// NewReadlineAdapter creates an adapter. The completer runs after every edit; onHint,
// when non-nil, receives the completions for the new line.
func NewReadlineAdapter(completer Completer, onHint func(doc Document, completions []Completion)) *ReadlineAdapter {
	return &ReadlineAdapter{completer: completer, onHint: onHint}
}

func documentAt(line []rune, pos int) Document {
	if pos > len(line) {
		pos = len(line)
	}
	return Document{Text: string(line), CursorPosition: len(string(line[:pos]))}
}

// Do implements readline.AutoCompleter.
func (a *ReadlineAdapter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	doc := documentAt(line, pos)
	word := doc.WordBeforeCursor()

	for _, c := range a.completer.Complete(doc) {
		if strings.HasPrefix(c.Text, word) && c.Text != word {
			newLine = append(newLine, []rune(c.Text[len(word):]))
		}
	}
	return newLine, len([]rune(word))
}

// OnChange implements readline.Listener.
func (a *ReadlineAdapter) OnChange(line []rune, pos int, key rune) (newLine []rune, newPos int, ok bool) {
	switch key {
	case readline.CharEnter, readline.CharCtrlJ, readline.CharInterrupt:
		return nil, 0, false
	case readline.CharTab:
		return a.replaceWithFuzzyMatch(line, pos)
	}

	// Completing on every edit keeps the pending flags of the last method current.
	doc := documentAt(line, pos)
	completions := a.completer.Complete(doc)
	if a.onHint != nil {
		a.onHint(doc, completions)
	}
	return nil, 0, false
}

func (a *ReadlineAdapter) replaceWithFuzzyMatch(line []rune, pos int) ([]rune, int, bool) {
	doc := documentAt(line, pos)
	word := doc.WordBeforeCursor()
	if word == "" {
		return nil, 0, false
	}

	completions := a.completer.Complete(doc)
	if len(completions) == 0 {
		return nil, 0, false
	}
	for _, c := range completions {
		if strings.HasPrefix(c.Text, word) {
			// readline already completed the prefix
			return nil, 0, false
		}
	}

	if pos > len(line) {
		pos = len(line)
	}
	best := []rune(completions[0].Text)
	start := pos - len([]rune(word))

	replaced := make([]rune, 0, len(line)-len([]rune(word))+len(best))
	replaced = append(replaced, line[:start]...)
	replaced = append(replaced, best...)
	replaced = append(replaced, line[pos:]...)
	return replaced, start + len(best), true
}

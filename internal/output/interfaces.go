// Package output is the console output layer of the shell.
// Styling is injected through a StyleProvider so the printer works the same with a
// theme, with plain prefixes, or with JSON lines for scripting.
package output

// StyleProvider renders text for a semantic type. The theme package implements it.
type StyleProvider interface {
	// Style returns the TextStyle for the given semantic type.
	Style(semantic SemanticType) TextStyle

	// IsAvailable reports whether styles can be used. The printer falls back to plain
	// text otherwise.
	IsAvailable() bool

	// MarkdownStyle names the glamour style used for markdown ("dark", "light", "notty").
	MarkdownStyle() string
}

// TextStyle renders one piece of text.
type TextStyle interface {
	Render(text string) string
}

// TextStyleFunc adapts a function to TextStyle.
type TextStyleFunc func(text string) string

// Render implements TextStyle.
func (f TextStyleFunc) Render(text string) string {
	return f(text)
}

// Mode defines the output modes of the printer.
type Mode int

const (
	// ModeAuto styles output when a StyleProvider is available.
	ModeAuto Mode = iota

	// ModePlain prints text with plain semantic prefixes.
	ModePlain

	// ModeJSON prints one JSON object per message.
	ModeJSON
)

// SemanticType is the meaning of a piece of output.
type SemanticType string

const (
	// SemanticPlain is text without semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticInfo is informational text.
	SemanticInfo SemanticType = "info"
	// SemanticSuccess is success text.
	SemanticSuccess SemanticType = "success"
	// SemanticWarning is warning text.
	SemanticWarning SemanticType = "warning"
	// SemanticError is error text.
	SemanticError SemanticType = "error"
	// SemanticHighlight is a regex match or other emphasized span.
	SemanticHighlight SemanticType = "highlight"
	// SemanticResult is the value produced by a command.
	SemanticResult SemanticType = "result"
	// SemanticMarkdown is markdown rendered by glamour.
	SemanticMarkdown SemanticType = "markdown"
)

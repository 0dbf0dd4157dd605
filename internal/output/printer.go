package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Printer writes semantic output with optional styling.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	wordWrap      int

	mu sync.Mutex
}

// NewPrinter creates a Printer. By default it writes to os.Stdout in ModeAuto.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer:   os.Stdout,
		mode:     ModeAuto,
		wordWrap: 80,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Print outputs text without styling or newline.
func (p *Printer) Print(text string) {
	p.output(SemanticPlain, text, false)
}

// Println outputs text followed by a newline.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info outputs informational text.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success outputs success text.
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Warning outputs warning text.
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error outputs error text.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Result outputs the value of a command.
func (p *Printer) Result(value any) {
	p.output(SemanticResult, fmt.Sprint(value), true)
}

// Highlight returns text rendered with the highlight style without printing it.
func (p *Printer) Highlight(text string) string {
	return p.Render(SemanticHighlight, text)
}

// Render returns text rendered for semantic without printing it.
func (p *Printer) Render(semantic SemanticType, text string) string {
	return p.style(semantic).Render(text)
}

// Markdown renders markdown with glamour, wrapped at the printer's word wrap width,
// and prints it. Plain and JSON modes print the source unchanged.
func (p *Printer) Markdown(text string) {
	if p.mode != ModeAuto || p.styleProvider == nil {
		p.output(SemanticMarkdown, text, true)
		return
	}

	rendered, err := p.renderMarkdown(text)
	if err != nil {
		p.output(SemanticMarkdown, text, true)
		return
	}
	p.output(SemanticPlain, rendered, false)
}

func (p *Printer) renderMarkdown(text string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(p.styleProvider.MarkdownStyle()),
		glamour.WithWordWrap(p.wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return renderer.Render(text)
}

func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var finalText string
	if p.mode == ModeJSON {
		finalText = renderJSON(semantic, text)
	} else {
		finalText = p.style(semantic).Render(text)
		if addNewline && !strings.HasSuffix(finalText, "\n") {
			finalText += "\n"
		}
	}

	_, _ = fmt.Fprint(p.writer, finalText)
}

func (p *Printer) style(semantic SemanticType) TextStyle {
	if p.IsStylable() {
		return p.styleProvider.Style(semantic)
	}
	return plainProvider.Style(semantic)
}

func renderJSON(semantic SemanticType, text string) string {
	data, err := json.Marshal(map[string]any{
		"type":    semantic,
		"message": text,
	})
	if err != nil {
		return text + "\n"
	}
	return string(data) + "\n"
}

// IsStylable reports whether the printer applies styles.
func (p *Printer) IsStylable() bool {
	return p.mode == ModeAuto && p.styleProvider != nil && p.styleProvider.IsAvailable()
}

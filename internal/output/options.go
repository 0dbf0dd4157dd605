package output

import (
	"fmt"
	"io"
	"strings"
)

// Option is a functional option for configuring Printer instances.
type Option func(*Printer)

// WithStyles configures the printer to use provider for styling.
// A nil or unavailable provider leaves the printer on plain text.
func WithStyles(provider StyleProvider) Option {
	return func(p *Printer) {
		if provider != nil && provider.IsAvailable() {
			p.styleProvider = provider
		}
	}
}

// WithWriter configures the destination of the output. Default is os.Stdout.
func WithWriter(writer io.Writer) Option {
	return func(p *Printer) {
		if writer != nil {
			p.writer = writer
		}
	}
}

// PlainText forces plain output, ignoring any StyleProvider.
func PlainText() Option {
	return func(p *Printer) {
		p.mode = ModePlain
	}
}

// JSON configures the printer for JSON lines output.
func JSON() Option {
	return func(p *Printer) {
		p.mode = ModeJSON
	}
}

// WithWordWrap sets the markdown wrap width. Zero disables wrapping.
func WithWordWrap(width int) Option {
	return func(p *Printer) {
		p.wordWrap = width
	}
}

// Mode names accepted by ParseMode.
const (
	ModeNameAuto  = "auto"
	ModeNamePlain = "plain"
	ModeNameJSON  = "json"
)

// ParseMode maps a mode name from the command line or config to a printer option.
func ParseMode(name string) (Option, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ModeNameAuto:
		return func(*Printer) {}, nil
	case ModeNamePlain:
		return PlainText(), nil
	case ModeNameJSON:
		return JSON(), nil
	default:
		return nil, fmt.Errorf("unknown output mode %q (want %s, %s or %s)", name, ModeNameAuto, ModeNamePlain, ModeNameJSON)
	}
}

package validation

import (
	"errors"
	"strings"

	"github.com/chzyer/readline"
)

// Painter highlights the offending token while the line is being typed.
type Painter struct {
	validator *Validator
	render    func(...string) string
}

var _ readline.Painter = (*Painter)(nil)

// NewPainter creates a Painter. render styles the invalid token, for example a
// lipgloss style's Render method.
func NewPainter(validator *Validator, render func(...string) string) *Painter {
	return &Painter{validator: validator, render: render}
}

// Paint implements readline.Painter. The cursor position is unaffected because
// readline positions the cursor from the unpainted buffer.
func (p *Painter) Paint(line []rune, _ int) []rune {
	text := string(line)

	var verr *Error
	if err := p.validator.Validate(text); !errors.As(err, &verr) {
		return line
	}

	idx := strings.LastIndex(text, verr.Token)
	if idx < 0 {
		return line
	}
	painted := text[:idx] + p.render(verr.Token) + text[idx+len(verr.Token):]
	return []rune(painted)
}

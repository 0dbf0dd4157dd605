// Package validation checks an edited line against the method catalog before it is
// accepted by the prompt loop.
package validation

import (
	"fmt"
	"strings"

	"chepyshell/internal/catalog"
	"chepyshell/internal/completion"
)

// ErrorPosition is the cursor offset reported for every validation failure.
const ErrorPosition = 1

// Error reports a token that is neither a method, a flag nor a quoted literal.
type Error struct {
	Position int
	Token    string
	Message  string
}

func (e *Error) Error() string {
	return e.Message
}

// Caret returns a marker line pointing at the error position.
func (e *Error) Caret() string {
	return strings.Repeat(" ", e.Position) + "^"
}

// Validator validates lines against the catalog. The catalog is rebuilt on every call.
type Validator struct {
	loader catalog.Loader
}

// NewValidator creates a Validator reading from loader.
func NewValidator(loader catalog.Loader) *Validator {
	return &Validator{loader: loader}
}

// Validate returns nil when the line is acceptable or an *Error naming the last token.
//
// Only the final token is checked, and only when the token before it is not a flag,
// since that token would be the flag's value.
func (v *Validator) Validate(line string) error {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return nil
	}

	prev, last := tokens[len(tokens)-2], tokens[len(tokens)-1]
	if strings.HasPrefix(prev, completion.FlagPrefix) {
		return nil
	}
	if isQuoted(last) || strings.HasPrefix(last, completion.FlagPrefix) {
		return nil
	}
	if v.loader.Catalog().Has(last) {
		return nil
	}

	return &Error{
		Position: ErrorPosition,
		Token:    last,
		Message:  fmt.Sprintf("%s is not a valid Chepy method", last),
	}
}

func isQuoted(token string) bool {
	return strings.ContainsAny(token, `"'`)
}

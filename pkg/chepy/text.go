package chepy

import (
	"fmt"
	"regexp"
	"strings"
)

// ToUpperCase converts the state to upper case.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) ToUpperCase() *Chepy {
	return c.set([]byte(strings.ToUpper(string(c.state))))
}

// ToLowerCase converts the state to lower case.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) ToLowerCase() *Chepy {
	return c.set([]byte(strings.ToLower(string(c.state))))
}

// Reverse reverses the state in groups of count bytes.
//
// Args:
//   - count (int, optional): size of the groups that keep their inner order. Defaults to 1.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) Reverse(count int) *Chepy {
	if count < 1 {
		count = 1
	}
	var chunks [][]byte
	for i := 0; i < len(c.state); i += count {
		end := min(i+count, len(c.state))
		chunks = append(chunks, c.state[i:end])
	}
	out := make([]byte, 0, len(c.state))
	for i := len(chunks) - 1; i >= 0; i-- {
		out = append(out, chunks[i]...)
	}
	return c.set(out)
}

// Rot13 rotates every ASCII letter of the state by 13 places.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) Rot13() *Chepy {
	out := make([]byte, len(c.state))
	for i, b := range c.state {
		switch {
		case b >= 'a' && b <= 'z':
			out[i] = 'a' + (b-'a'+13)%26
		case b >= 'A' && b <= 'Z':
			out[i] = 'A' + (b-'A'+13)%26
		default:
			out[i] = b
		}
	}
	return c.set(out)
}

// StrReplace replaces every match of a regular expression in the state.
//
// Args:
//   - pattern (string): regular expression to look for.
//   - repl (string): replacement text, may reference groups as $1.
//   - ignore_case (bool, optional): match case insensitively. Defaults to false.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) StrReplace(pattern, repl string, ignoreCase bool) (*Chepy, error) {
	re, err := compile(pattern, ignoreCase)
	if err != nil {
		return nil, err
	}
	return c.set(re.ReplaceAll(c.state, []byte(repl))), nil
}

// RegexSearch keeps every match of a regular expression, one per line.
//
// Args:
//   - pattern (string): regular expression to look for.
//   - ignore_case (bool, optional): match case insensitively. Defaults to false.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) RegexSearch(pattern string, ignoreCase bool) (*Chepy, error) {
	re, err := compile(pattern, ignoreCase)
	if err != nil {
		return nil, err
	}
	matches := re.FindAll(c.state, -1)
	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = string(m)
	}
	return c.set([]byte(strings.Join(lines, "\n"))), nil
}

func compile(pattern string, ignoreCase bool) (*regexp.Regexp, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}

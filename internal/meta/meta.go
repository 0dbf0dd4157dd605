// Package meta implements the cli_* commands of the shell. They inspect the current
// result without being added to the command chain.
package meta

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"chepyshell/internal/completion"
	"chepyshell/internal/executor"
	"chepyshell/internal/output"
)

// Prefix starts every meta-command name.
const Prefix = "cli_"

var (
	metaLine  = regexp.MustCompile(`^` + Prefix + `.+`)
	metaToken = regexp.MustCompile(`\s+` + Prefix + `\w+`)
)

// ErrNoResult is returned by commands that need a result before any command ran.
var ErrNoResult = errors.New("no result yet, run a command first")

// IsMeta reports whether line invokes a meta-command.
func IsMeta(line string) bool {
	return metaLine.MatchString(line)
}

// StripTokens removes every whitespace-led meta-command token from command.
func StripTokens(command string) string {
	return metaToken.ReplaceAllString(command, "")
}

// Call is what a handler receives.
type Call struct {
	Result  any      // current object, nil before the first command
	Args    []string // tokens after the command name, unquoted
	Command string   // accumulated command buffer
	Printer *output.Printer
}

// Handler runs a meta-command.
type Handler func(call Call) error

// Command is one entry of the lookup table.
type Command struct {
	Name        string
	Usage       string
	Description string
	Handler     Handler
}

// Registry is the lookup table of meta-commands.
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a registry holding commands.
func NewRegistry(commands ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(commands))}
	for _, c := range commands {
		r.Register(c)
	}
	return r
}

// Register adds or replaces a command.
func (r *Registry) Register(c Command) {
	r.commands[c.Name] = c
}

// Lookup returns the command called name.
func (r *Registry) Lookup(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Commands returns every command sorted by name.
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Run parses line and invokes the matching handler.
func (r *Registry) Run(line string, call Call) error {
	tokens, err := executor.Tokenize(line)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty meta-command")
	}

	c, ok := r.commands[tokens[0]]
	if !ok {
		return fmt.Errorf("%s is not a valid cli command", tokens[0])
	}
	call.Args = tokens[1:]
	return c.Handler(call)
}

// Completer offers the meta-command names.
func (r *Registry) Completer() completion.Completer {
	return completion.CompleterFunc(func(doc completion.Document) []completion.Completion {
		word := doc.WordBeforeCursor()
		var out []completion.Completion
		for _, c := range r.Commands() {
			if !strings.HasPrefix(c.Name, word) {
				continue
			}
			out = append(out, completion.Completion{
				Text:          c.Name,
				StartPosition: -len(word),
				DisplayMeta:   c.Description,
			})
		}
		return out
	})
}

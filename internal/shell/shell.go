// Package shell runs the interactive prompt of chepy.
//
// Every accepted line is validated against the method catalog, appended to the
// command buffer and dispatched either to a meta-command or to the executor, which
// replays the whole buffer. The type of the last result is shown right-aligned above
// the prompt.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/chzyer/readline"
	"golang.org/x/term"

	"chepyshell/internal/catalog"
	"chepyshell/internal/completion"
	"chepyshell/internal/logger"
	"chepyshell/internal/meta"
	"chepyshell/internal/output"
	"chepyshell/internal/session"
	"chepyshell/internal/theme"
	"chepyshell/internal/validation"
	"chepyshell/pkg/chepy"
)

// Farewell is printed when the user leaves the shell.
const Farewell = "OKBye"

// Options configures a Shell.
type Options struct {
	Data        string
	IsFile      bool
	HistoryFile string
	Fuzzy       bool
	Hints       bool
	Version     string

	Stdin  io.ReadCloser // defaults to os.Stdin
	Stdout io.Writer     // defaults to os.Stdout
}

// LineReader reads edited lines. *readline.Instance implements it.
type LineReader interface {
	Readline() (string, error)
	ReadlineWithDefault(def string) (string, error)
	SaveHistory(line string) error
}

// Shell is the interactive prompt loop.
type Shell struct {
	opts       Options
	state      *session.State
	completer  completion.Completer
	validator  *validation.Validator
	dispatcher *Dispatcher
	theme      *theme.Theme
	printer    *output.Printer
	out        io.Writer
	width      func() int
	log        *log.Logger
}

// New wires a Shell.
func New(opts Options, loader catalog.Loader, runner Runner, metas *meta.Registry, th *theme.Theme, printer *output.Printer) *Shell {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	state := session.New()
	completer := completion.Merge(completion.NewProvider(loader, state, chepy.TypeName), metas.Completer())
	if opts.Fuzzy {
		completer = completion.Fuzzy(completer)
	}

	return &Shell{
		opts:       opts,
		state:      state,
		completer:  completer,
		validator:  validation.NewValidator(loader),
		dispatcher: NewDispatcher(runner, metas, loader, state, NewCommandBuffer(opts.Data, opts.IsFile), printer),
		theme:      th,
		printer:    printer,
		out:        out,
		width:      terminalWidth,
		log:        logger.NewStyledLogger("shell"),
	}
}

// State returns the session state shared with the completer.
func (s *Shell) State() *session.State {
	return s.state
}

// Dispatcher returns the dispatcher of accepted lines.
func (s *Shell) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// Prompt returns the rendered prompt.
func (s *Shell) Prompt() string {
	prompt := s.theme.Render(theme.RoleName, fmt.Sprintf("[Chepy %s] # ", s.opts.Version))
	if s.opts.IsFile {
		prompt += s.theme.Render(theme.RoleFile, "File ")
	}
	return prompt
}

// Run reads lines until the user interrupts the shell.
func (s *Shell) Run(ctx context.Context) error {
	adapter := completion.NewReadlineAdapter(s.completer, s.hintFunc())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 s.Prompt(),
		HistoryFile:            s.opts.HistoryFile,
		DisableAutoSaveHistory: true,
		HistorySearchFold:      true,
		AutoComplete:           adapter,
		Listener:               adapter,
		Painter:                validation.NewPainter(s.validator, s.theme.Get(theme.RoleError).Render),
		InterruptPrompt:        "^C",
		Stdin:                  s.opts.Stdin,
		Stdout:                 s.out,
		FuncGetWidth:           s.width,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize line editor: %w", err)
	}
	defer func() { _ = rl.Close() }()

	return s.loop(ctx, rl)
}

func (s *Shell) loop(ctx context.Context, r LineReader) error {
	for {
		if ctx.Err() != nil {
			return s.farewell()
		}

		s.drawStatus()
		line, err := s.readAccepted(r)
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return s.farewell()
		}
		if err != nil {
			return fmt.Errorf("failed to read line: %w", err)
		}

		if err := r.SaveHistory(line); err != nil {
			s.log.Warn("Failed to save history", "error", err)
		}
		if err := s.dispatcher.Dispatch(ctx, line); err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return s.farewell()
			}
			s.printer.Error(err.Error())
		}
	}
}

// farewell ends the session. Interrupts end it the same way wherever they arrive.
func (s *Shell) farewell() error {
	s.printer.Println(Farewell)
	return nil
}

// readAccepted reads until a line passes validation. Rejected lines are offered again
// for editing.
func (s *Shell) readAccepted(r LineReader) (string, error) {
	line, err := r.Readline()
	for err == nil {
		verr := s.validator.Validate(line)
		if verr == nil {
			return line, nil
		}
		s.showValidationError(verr)
		line, err = r.ReadlineWithDefault(line)
	}
	return "", err
}

func (s *Shell) showValidationError(err error) {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		s.printer.Error(err.Error())
		return
	}
	indent := strings.Repeat(" ", ansi.StringWidth(s.Prompt()))
	s.printer.Println(indent + verr.Caret())
	s.printer.Error(verr.Message)
}

func (s *Shell) drawStatus() {
	_, _ = fmt.Fprintln(s.out, statusLine(s.theme, s.width(), "", s.state.StatusText()))
}

func (s *Shell) hintFunc() func(completion.Document, []completion.Completion) {
	if !s.opts.Hints {
		return nil
	}
	return func(_ completion.Document, completions []completion.Completion) {
		redrawAbove(s.out, statusLine(s.theme, s.width(), hintText(s.theme, completions), s.state.StatusText()))
	}
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

package meta

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"

	"chepyshell/internal/output"
)

// stateful is implemented by the fluent target type.
type stateful interface {
	State() []byte
	PreviousState() []byte
}

// Default returns the registry with every built-in meta-command.
func Default() *Registry {
	r := NewRegistry(
		Command{Name: "cli_show_length", Description: "Show the length of the current state", Handler: showLength},
		Command{Name: "cli_show_type", Description: "Show the type of the current state", Handler: showType},
		Command{Name: "cli_show_state", Description: "Show the current state", Handler: showState},
		Command{Name: "cli_show_dict_keys", Description: "Show the keys of a dict state", Handler: showDictKeys},
		Command{Name: "cli_highlight", Usage: `cli_highlight "<regex>"`, Description: "Highlight regex matches in the current state", Handler: highlight},
		Command{Name: "cli_diff", Description: "Diff the previous and the current state", Handler: diff},
		Command{Name: "cli_copy", Description: "Copy the current state to the clipboard", Handler: copyState},
		Command{Name: "cli_show_command", Description: "Show the accumulated command", Handler: showCommand},
	)
	r.Register(Command{
		Name:        "cli_help",
		Description: "List the cli commands",
		Handler: func(call Call) error {
			call.Printer.Markdown(helpMarkdown(r))
			return nil
		},
	})
	return r
}

func helpMarkdown(r *Registry) string {
	var sb strings.Builder
	sb.WriteString("# cli commands\n\n| Command | Description |\n|---|---|\n")
	for _, c := range r.Commands() {
		usage := c.Usage
		if usage == "" {
			usage = c.Name
		}
		fmt.Fprintf(&sb, "| `%s` | %s |\n", usage, c.Description)
	}
	return sb.String()
}

func stateText(result any) (string, error) {
	switch v := result.(type) {
	case nil:
		return "", ErrNoResult
	case stateful:
		return string(v.State()), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func showLength(call Call) error {
	switch v := call.Result.(type) {
	case nil:
		return ErrNoResult
	case stateful:
		call.Printer.Result(len(v.State()))
		return nil
	}

	rv := reflect.ValueOf(call.Result)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		call.Printer.Result(rv.Len())
	default:
		call.Printer.Result(len(fmt.Sprint(call.Result)))
	}
	return nil
}

func showType(call Call) error {
	if call.Result == nil {
		return ErrNoResult
	}
	call.Printer.Result(TypeName(call.Result))
	return nil
}

// TypeName returns the unqualified type name of v, without pointer markers.
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func showState(call Call) error {
	text, err := stateText(call.Result)
	if err != nil {
		return err
	}
	call.Printer.Result(text)
	return nil
}

func showDictKeys(call Call) error {
	var dict map[string]any
	switch v := call.Result.(type) {
	case nil:
		return ErrNoResult
	case map[string]any:
		dict = v
	case stateful:
		// YAML is a superset of JSON
		if err := yaml.Unmarshal(v.State(), &dict); err != nil || dict == nil {
			return fmt.Errorf("current state is not a dict")
		}
	default:
		return fmt.Errorf("current state is a %s, not a dict", TypeName(v))
	}

	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data, err := yaml.Marshal(keys)
	if err != nil {
		return fmt.Errorf("failed to render keys: %w", err)
	}
	call.Printer.Print(string(data))
	return nil
}

func highlight(call Call) error {
	if len(call.Args) != 1 {
		return fmt.Errorf(`usage: cli_highlight "<regex>"`)
	}
	re, err := regexp.Compile(call.Args[0])
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}

	text, err := stateText(call.Result)
	if err != nil {
		return err
	}
	call.Printer.Println(re.ReplaceAllStringFunc(text, call.Printer.Highlight))
	return nil
}

func diff(call Call) error {
	s, ok := call.Result.(stateful)
	if !ok {
		if call.Result == nil {
			return ErrNoResult
		}
		return fmt.Errorf("a %s has no state history", TypeName(call.Result))
	}
	prev := s.PreviousState()
	if prev == nil {
		call.Printer.Info("No previous state")
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(string(prev), string(s.State()), false))
	call.Printer.Println(renderDiff(diffs, call.Printer))
	return nil
}

func renderDiff(diffs []diffmatchpatch.Diff, printer *output.Printer) string {
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			if printer.IsStylable() {
				sb.WriteString(printer.Render(output.SemanticSuccess, d.Text))
			} else {
				sb.WriteString("{+" + d.Text + "+}")
			}
		case diffmatchpatch.DiffDelete:
			if printer.IsStylable() {
				sb.WriteString(printer.Render(output.SemanticError, d.Text))
			} else {
				sb.WriteString("[-" + d.Text + "-]")
			}
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

func copyState(call Call) error {
	text, err := stateText(call.Result)
	if err != nil {
		return err
	}

	if !clipboardAvailable {
		call.Printer.Warning("Clipboard not available on this platform, state printed instead")
		call.Printer.Result(text)
		return nil
	}
	if err := initClipboard(); err != nil {
		call.Printer.Warning(fmt.Sprintf("Clipboard initialization failed: %v", err))
		call.Printer.Result(text)
		return nil
	}
	if err := writeToClipboard(text); err != nil {
		return fmt.Errorf("failed to copy: %w", err)
	}
	call.Printer.Success("Copied state to clipboard")
	return nil
}

func showCommand(call Call) error {
	call.Printer.Result(strings.TrimSpace(call.Command))
	return nil
}

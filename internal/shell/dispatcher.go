package shell

import (
	"context"
	"fmt"
	"reflect"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"chepyshell/internal/catalog"
	"chepyshell/internal/executor"
	"chepyshell/internal/logger"
	"chepyshell/internal/meta"
	"chepyshell/internal/output"
	"chepyshell/internal/session"
)

// Runner executes an accumulated command.
type Runner interface {
	Execute(ctx context.Context, command string) (any, error)
	Registry() *executor.Registry
}

// Dispatcher routes accepted lines to the meta-commands or the executor.
type Dispatcher struct {
	runner  Runner
	metas   *meta.Registry
	loader  catalog.Loader
	state   *session.State
	buffer  *CommandBuffer
	printer *output.Printer
	log     *log.Logger

	result any
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(runner Runner, metas *meta.Registry, loader catalog.Loader, state *session.State, buffer *CommandBuffer, printer *output.Printer) *Dispatcher {
	return &Dispatcher{
		runner:  runner,
		metas:   metas,
		loader:  loader,
		state:   state,
		buffer:  buffer,
		printer: printer,
		log:     logger.NewStyledLogger("dispatch"),
	}
}

// Result returns the current object, nil before the first successful command.
func (d *Dispatcher) Result() any {
	return d.result
}

// Dispatch handles one accepted line.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) error {
	snapshot := d.buffer.Snapshot()
	d.buffer.Append(line)

	if meta.IsMeta(line) {
		return d.metas.Run(line, meta.Call{
			Result:  d.result,
			Command: d.buffer.String(),
			Printer: d.printer,
		})
	}

	names := d.loader.Catalog().Names()
	registry := d.runner.Registry()
	for _, name := range names {
		registry.MarkKeywordOnly(name)
	}

	command := d.buffer.String()
	logger.Dispatch(command, len(names))

	result, err := d.runner.Execute(ctx, command)
	if err != nil {
		d.buffer.Restore(snapshot)
		d.log.Error("Command failed", "line", line, "error", err)
		return err
	}

	d.result = result
	d.state.LastResultTypeName = session.PlaceholderTypeName
	if isSet(result) {
		d.state.LastResultTypeName = meta.TypeName(result)
	}
	d.printer.Result(formatResult(result))
	return nil
}

// isSet reports whether v holds something worth naming in the status line. Zero
// numbers, false, empty strings and empty collections do not.
func isSet(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return false
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return !rv.IsZero()
	default:
		return true
	}
}

// formatResult renders maps and slices as YAML and everything else with fmt.
func formatResult(v any) string {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice:
		if _, isBytes := v.([]byte); isBytes {
			break
		}
		data, err := yaml.Marshal(v)
		if err == nil {
			return string(data)
		}
	}
	return fmt.Sprint(v)
}

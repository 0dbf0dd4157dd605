// Package executor runs an accumulated shell command against the target library.
//
// A command is a run of constructor flags followed by a chain of method calls, each
// with its own flags:
//
//	--data "hello" --is_file=false to_hex --delimiter ":" to_upper_case
//
// Methods are looked up in a Registry built from the catalog and invoked through
// reflection. The chain continues while each call returns the constructor's type.
package executor

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"chepyshell/internal/completion"
	"chepyshell/internal/logger"
	"chepyshell/pkg/chepy"
)

// BindError reports a command token that could not be bound to a call.
type BindError struct {
	Method  string
	Token   string
	Message string
}

func (e *BindError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("%s: %s", e.Token, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Token, e.Message)
}

// Constructor builds the initial object from the leading flags of a command.
type Constructor func(flags map[string]string) (any, error)

// ChepyConstructor builds a *chepy.Chepy from --data and --is_file.
func ChepyConstructor(flags map[string]string) (any, error) {
	data, ok := flags["data"]
	if !ok {
		return nil, &BindError{Token: "--data", Message: "missing required flag"}
	}

	isFile := false
	if raw, ok := flags["is_file"]; ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &BindError{Token: "--is_file", Message: fmt.Sprintf("invalid boolean %q", raw)}
		}
		isFile = v
	}

	return chepy.New(data, isFile)
}

// Executor binds and runs commands.
type Executor struct {
	registry    *Registry
	constructor Constructor
}

// New creates an Executor.
func New(registry *Registry, constructor Constructor) *Executor {
	return &Executor{registry: registry, constructor: constructor}
}

// Registry returns the method registry.
func (e *Executor) Registry() *Registry {
	return e.registry
}

// Execute runs command and returns the final value of the chain.
func (e *Executor) Execute(ctx context.Context, command string) (any, error) {
	tokens, err := Tokenize(command)
	if err != nil {
		return nil, err
	}

	flags, i := constructorFlags(tokens)
	current, err := e.constructor(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to construct target: %w", err)
	}
	fluent := reflect.TypeOf(current)

	for i < len(tokens) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := tokens[i]
		entry, ok := e.registry.Lookup(name)
		if !ok {
			return nil, &BindError{Token: name, Message: "is not a valid Chepy method"}
		}
		if reflect.TypeOf(current) != fluent {
			return nil, &BindError{Method: name, Token: name, Message: fmt.Sprintf("cannot be called on a %T result", current)}
		}

		var values map[string]string
		values, i, err = e.bind(entry, tokens, i+1)
		if err != nil {
			return nil, err
		}

		logger.Debug("Calling method", "method", entry.GoName, "args", values)
		current, err = call(current, entry, values)
		if err != nil {
			return nil, err
		}
	}

	return current, nil
}

func constructorFlags(tokens []string) (map[string]string, int) {
	flags := make(map[string]string)
	i := 0
	for i < len(tokens) && strings.HasPrefix(tokens[i], completion.FlagPrefix) {
		name, value, hasValue := splitFlag(tokens[i])
		i++
		if !hasValue {
			if i < len(tokens) && !strings.HasPrefix(tokens[i], completion.FlagPrefix) && !isSwitch(name, tokens, i) {
				value = tokens[i]
				i++
			} else {
				value = "true"
			}
		}
		flags[name] = value
	}
	return flags, i
}

// isSwitch reports whether a bare constructor flag is a switch. Only is_file is
// a boolean constructor flag.
func isSwitch(name string, tokens []string, i int) bool {
	if name != "is_file" {
		return false
	}
	_, err := strconv.ParseBool(tokens[i])
	return err != nil
}

func splitFlag(token string) (name, value string, hasValue bool) {
	name, value, hasValue = strings.Cut(strings.TrimPrefix(token, completion.FlagPrefix), "=")
	return strings.ReplaceAll(name, "-", "_"), value, hasValue
}

// bind consumes the arguments of entry starting at tokens[i] and returns the raw
// values by parameter name together with the index of the next method token.
func (e *Executor) bind(entry Entry, tokens []string, i int) (map[string]string, int, error) {
	values := make(map[string]string, len(entry.Params))
	positional := 0

	for i < len(tokens) {
		tok := tokens[i]

		if strings.HasPrefix(tok, completion.FlagPrefix) {
			name, value, hasValue := splitFlag(tok)
			param, ok := entry.Param(name)
			if !ok {
				return nil, i, &BindError{Method: entry.Name, Token: tok, Message: "unknown flag"}
			}
			i++
			if !hasValue {
				switch {
				case param.Type == "bool" && (i >= len(tokens) || !isBool(tokens[i])):
					value = "true"
				case i < len(tokens):
					value = tokens[i]
					i++
				default:
					return nil, i, &BindError{Method: entry.Name, Token: tok, Message: "flag needs a value"}
				}
			}
			values[name] = value
			continue
		}

		if entry.KeywordOnly {
			break
		}
		next := nextUnbound(entry, values, positional)
		// A method name only fills a parameter that has no default.
		if next < 0 || (e.registry.Has(tok) && entry.Params[next].HasDefault) {
			break
		}
		values[entry.Params[next].Flag] = tok
		positional = next + 1
		i++
	}

	return values, i, nil
}

func nextUnbound(entry Entry, values map[string]string, from int) int {
	for j := from; j < len(entry.Params); j++ {
		if _, bound := values[entry.Params[j].Flag]; !bound {
			return j
		}
	}
	return -1
}

func isBool(s string) bool {
	_, err := strconv.ParseBool(s)
	return err == nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func call(target any, entry Entry, values map[string]string) (any, error) {
	method := reflect.ValueOf(target).MethodByName(entry.GoName)
	if !method.IsValid() {
		return nil, fmt.Errorf("%T has no method %s", target, entry.GoName)
	}

	mt := method.Type()
	if mt.NumIn() != len(entry.Params) {
		return nil, fmt.Errorf("%s takes %d arguments, catalog lists %d", entry.GoName, mt.NumIn(), len(entry.Params))
	}

	args := make([]reflect.Value, mt.NumIn())
	for j, param := range entry.Params {
		raw, ok := values[param.Flag]
		if !ok {
			if !param.HasDefault {
				return nil, &BindError{Method: entry.Name, Token: completion.FlagPrefix + param.Flag, Message: "missing required argument"}
			}
			raw = param.Default
		}
		v, err := convert(raw, mt.In(j))
		if err != nil {
			return nil, &BindError{Method: entry.Name, Token: completion.FlagPrefix + param.Flag, Message: err.Error()}
		}
		args[j] = v
	}

	out := method.Call(args)
	if n := len(out); n > 0 && mt.Out(n-1) == errorType {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return nil, fmt.Errorf("%s failed: %w", entry.Name, err)
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return target, nil
	}
	return out[0].Interface(), nil
}

// ErrUnsupportedType is returned for parameters that cannot be bound from text.
var ErrUnsupportedType = errors.New("unsupported parameter type")

func convert(raw string, typ reflect.Type) (reflect.Value, error) {
	v := reflect.New(typ).Elem()
	switch typ.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return v, fmt.Errorf("invalid boolean %q", raw)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 0, typ.Bits())
		if err != nil {
			return v, fmt.Errorf("invalid integer %q", raw)
		}
		v.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, typ.Bits())
		if err != nil {
			return v, fmt.Errorf("invalid number %q", raw)
		}
		v.SetFloat(f)
	default:
		return v, fmt.Errorf("%w %s", ErrUnsupportedType, typ)
	}
	return v, nil
}

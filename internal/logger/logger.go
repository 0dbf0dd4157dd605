// Package logger provides centralized logging for the chepy shell.
// It wraps a charmbracelet/log logger that stays quiet by default so log lines do not
// interleave with the interactive prompt.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the global logger instance used throughout the shell.
var Logger *log.Logger

// destination is where Logger and component loggers write.
var destination io.Writer = os.Stderr

// logFile is the file opened by Configure, closed when the output changes again.
var logFile *os.File

func init() {
	Logger = log.New(destination)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.WarnLevel)
}

// Configure sets up the logger from CLI flags and environment variables.
// Precedence: logLevel argument > CHEPY_LOG_LEVEL > "warn".
func Configure(logLevel string, path string) error {
	level := logLevel
	if level == "" {
		level = strings.ToLower(os.Getenv("CHEPY_LOG_LEVEL"))
	}

	var output io.Writer = os.Stderr
	var file *os.File
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		output, file = f, f
	}

	_ = Close()
	logFile = file
	destination = output
	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(parseLogLevel(level))
	return nil
}

// Close closes the log file opened by Configure, if any, and sends logs back to stderr.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	destination = os.Stderr
	Logger.SetOutput(os.Stderr)
	return err
}

// SetOutput redirects the global logger, keeping its level. Used by tests.
func SetOutput(w io.Writer) {
	_ = Close()
	level := Logger.GetLevel()
	destination = w
	Logger = log.New(w)
	Logger.SetTimeFormat("")
	Logger.SetLevel(level)
}

// parseLogLevel converts string to log level
func parseLogLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Fatal logs a fatal message with optional key-value pairs and exits.
func Fatal(msg interface{}, keyvals ...interface{}) {
	Logger.Fatal(msg, keyvals...)
}

// Dispatch logs a command buffer being handed to the executor.
func Dispatch(command string, methods int) {
	Debug("Dispatching command", "command", command, "methods", methods)
}

// NewStyledLogger creates a component logger with a prefix and colored levels.
// The prefix names the component, e.g. "catalog" or "shell".
func NewStyledLogger(prefix string) *log.Logger {
	styles := log.DefaultStyles()

	levels := map[log.Level]struct {
		label string
		color string
	}{
		log.DebugLevel: {"DEBUG", "240"},
		log.InfoLevel:  {"INFO", "33"},
		log.WarnLevel:  {"WARN", "214"},
		log.ErrorLevel: {"ERROR", "196"},
		log.FatalLevel: {"FATAL", "88"},
	}
	for level, s := range levels {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(s.label).
			Padding(0, 1, 0, 1).
			Background(lipgloss.Color(s.color)).
			Foreground(lipgloss.Color("15"))
	}

	styles.Keys["method"] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	componentLogger := log.NewWithOptions(destination, log.Options{
		Prefix: prefix + " ",
	})
	componentLogger.SetStyles(styles)
	componentLogger.SetLevel(Logger.GetLevel())

	return componentLogger
}

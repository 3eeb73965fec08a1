// Package app wires the quickfind components into an application: the
// command table, the event subscriptions, logging and the interactive
// terminal loop.
package app

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LogLevelTrace is for per-command state dumps.
	LogLevelTrace LogLevel = iota
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelTrace:
		return "TRACE"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "trace":
		return LogLevelTrace
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// logFilter is shared by a logger and every logger derived from it.
type logFilter struct {
	mu        sync.RWMutex
	level     LogLevel
	disabled  bool
	watchlist []string
	blocklist []string
}

// allows reports whether a message from component at level is written.
// A watchlisted component logs at every level; a blocklisted one is
// dropped unless it is also watchlisted.
func (f *logFilter) allows(level LogLevel, component string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.disabled {
		return false
	}
	if component != "" && slices.Contains(f.watchlist, component) {
		return true
	}
	if level < f.level {
		return false
	}
	return component == "" || !slices.Contains(f.blocklist, component)
}

// Logger provides structured logging for the application.
type Logger struct {
	mu     *sync.Mutex
	filter *logFilter
	output io.Writer
	prefix string
	fields map[string]any
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Prefix is prepended to all log messages.
	Prefix string
	// Watchlist names components that log at every level.
	Watchlist []string
	// Blocklist names components whose messages are dropped.
	Blocklist []string
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
		Prefix: "quickfind",
	}
}

// NewLogger creates a new logger with the given configuration.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{
		mu: &sync.Mutex{},
		filter: &logFilter{
			level:     cfg.Level,
			watchlist: slices.Clone(cfg.Watchlist),
			blocklist: slices.Clone(cfg.Blocklist),
		},
		output: cfg.Output,
		prefix: cfg.Prefix,
		fields: make(map[string]any),
	}
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a new logger with the given fields added. The new
// logger shares level, lists and output with l.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	newFields := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &Logger{
		mu:     l.mu,
		filter: l.filter,
		output: l.output,
		prefix: l.prefix,
		fields: newFields,
	}
}

// WithComponent returns a new logger with the component field set.
// Watchlist and blocklist entries match component names.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.filter.mu.Lock()
	defer l.filter.mu.Unlock()
	l.filter.level = level
}

// Level returns the minimum log level.
func (l *Logger) Level() LogLevel {
	l.filter.mu.RLock()
	defer l.filter.mu.RUnlock()
	return l.filter.level
}

// SetLists replaces the component watchlist and blocklist.
func (l *Logger) SetLists(watchlist, blocklist []string) {
	l.filter.mu.Lock()
	defer l.filter.mu.Unlock()
	l.filter.watchlist = slices.Clone(watchlist)
	l.filter.blocklist = slices.Clone(blocklist)
}

// SetOutput sets the output writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// Disable disables all logging.
func (l *Logger) Disable() {
	l.filter.mu.Lock()
	defer l.filter.mu.Unlock()
	l.filter.disabled = true
}

// Enable enables logging.
func (l *Logger) Enable() {
	l.filter.mu.Lock()
	defer l.filter.mu.Unlock()
	l.filter.disabled = false
}

// Trace logs a trace message.
func (l *Logger) Trace(msg string, args ...any) {
	l.log(LogLevelTrace, msg, args...)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LogLevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LogLevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LogLevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LogLevelError, msg, args...)
}

// log writes a log message if the level is enabled.
func (l *Logger) log(level LogLevel, msg string, args ...any) {
	component, _ := l.fields["component"].(string)
	if !l.filter.allows(level, component) {
		return
	}

	timestamp := time.Now().Format("2006-01-02T15:04:05.000")

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	if l.prefix != "" {
		fmt.Fprintf(&b, "%s [%s] %s: %s", timestamp, level.String(), l.prefix, msg)
	} else {
		fmt.Fprintf(&b, "%s [%s] %s", timestamp, level.String(), msg)
	}

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, l.fields[k])
		}
		b.WriteString("}")
	}
	b.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.output, b.String())
}

// NullLogger is a logger that discards all output.
var NullLogger = &Logger{
	mu:     &sync.Mutex{},
	filter: &logFilter{disabled: true},
	output: io.Discard,
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	if app.logger == nil {
		return NullLogger
	}
	return app.logger
}

// logComponentError logs an error with component context.
func (app *Application) logComponentError(component string, err error) {
	if err != nil {
		app.Logger().WithComponent(component).Error("error: %v", err)
	}
}

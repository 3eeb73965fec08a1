package quickfind

// Logger receives session diagnostics. *app.Logger satisfies it.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Trace(string, ...any) {}
func (nopLogger) Debug(string, ...any) {}

type options struct {
	logger Logger
	checks bool
}

func defaultOptions() options {
	return options{logger: nopLogger{}}
}

// Option configures sessions.
type Option func(*options)

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithChecks enables invariant checks. A violated invariant panics with an
// *InvariantError instead of degrading to an alert.
func WithChecks(enabled bool) Option {
	return func(o *options) {
		o.checks = enabled
	}
}

package app

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/quickfind/internal/config"
	"github.com/dshills/quickfind/internal/config/notify"
	"github.com/dshills/quickfind/internal/event"
	"github.com/dshills/quickfind/internal/host"
	"github.com/dshills/quickfind/internal/quickfind"
	"github.com/dshills/quickfind/internal/renderer/backend"
	"github.com/dshills/quickfind/internal/renderer/gutter"
	"github.com/dshills/quickfind/internal/renderer/statusline"
)

// Application is the central coordinator. Every entry point (Execute,
// the event loop, the settings watcher) takes mu, so event handlers run
// with it held and never lock.
type Application struct {
	mu sync.Mutex

	// Core infrastructure
	bus    *event.Bus
	config *config.Store
	logger *Logger

	// Documents and their match sessions
	documents *host.Manager
	sessions  *quickfind.Manager

	// Presentation
	backend backend.Backend
	status  *statusline.StatusLine
	gutter  *gutter.Gutter
	keymap  *Keymap

	metrics *Metrics

	// lastAlert is the alert of the most recent command.
	lastAlert string

	subs      []*event.Subscription
	configSub *notify.Subscription

	running atomic.Bool
	closed  bool

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the settings file. Empty uses
	// config.DefaultPath.
	ConfigPath string

	// Files are files to open on startup.
	Files []string

	// Debug enables debug logging and invariant checks.
	Debug bool

	// LogLevel overrides the log_level setting.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// Watch enables live reload of the settings file.
	Watch bool

	// Backend is the terminal for Run. Headless use leaves it nil.
	Backend backend.Backend

	// ConfigOptions are extra settings store options, such as a test
	// file system.
	ConfigOptions []config.Option
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		backend: opts.Backend,
		status:  statusline.New(),
		gutter:  gutter.New(gutter.DefaultConfig()),
		metrics: NewMetrics(),
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the settings store.
func (app *Application) Config() *config.Store {
	return app.config
}

// Documents returns the document manager.
func (app *Application) Documents() *host.Manager {
	return app.documents
}

// Sessions returns the match session manager.
func (app *Application) Sessions() *quickfind.Manager {
	return app.sessions
}

// Bus returns the event bus.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Keymap returns the active key bindings.
func (app *Application) Keymap() *Keymap {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.keymap
}

// LastAlert returns the alert raised by the most recent command, or ""
// when it completed normally.
func (app *Application) LastAlert() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.lastAlert
}

// Lock runs fn with the application lock held. Scripting surfaces use it
// to read documents and sessions consistently.
func (app *Application) Lock(fn func()) {
	app.mu.Lock()
	defer app.mu.Unlock()
	fn()
}

// session returns the match session of doc, creating it on first use.
func (app *Application) session(doc *host.Document) *quickfind.Session {
	return app.sessions.Get(doc.ID(), doc)
}

// Session returns the match session of the document id, if one exists.
func (app *Application) Session(id string) (*quickfind.Session, bool) {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.sessions.Lookup(id)
}

// Open opens a file and makes it the active document.
func (app *Application) Open(ctx context.Context, path string) (*host.Document, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	doc, err := app.documents.Open(ctx, path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	return doc, nil
}

// OpenText opens an unsaved document holding text.
func (app *Application) OpenText(ctx context.Context, name, text string) (*host.Document, error) {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.documents.OpenText(ctx, name, text)
}

// Activate makes the document id the active one.
func (app *Application) Activate(ctx context.Context, id string) error {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.documents.SetActive(ctx, id)
}

// Close closes the document id and drops its session.
func (app *Application) Close(ctx context.Context, id string) error {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.documents.Close(ctx, id)
}

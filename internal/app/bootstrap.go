package app

import (
	"context"

	"github.com/dshills/quickfind/internal/config"
	"github.com/dshills/quickfind/internal/config/notify"
	"github.com/dshills/quickfind/internal/event"
	"github.com/dshills/quickfind/internal/event/events"
	"github.com/dshills/quickfind/internal/host"
	"github.com/dshills/quickfind/internal/quickfind"
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Logger, reconfigured once settings are loaded
	cfg := DefaultLoggerConfig()
	if app.opts.LogOutput != nil {
		cfg.Output = app.opts.LogOutput
	}
	app.logger = NewLogger(cfg)

	// 2. Event bus
	app.bus = event.NewBus()

	// 3. Settings; a broken settings file falls back to defaults
	path := app.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	configLog := app.logger.WithComponent("config")
	storeOpts := []config.Option{
		config.WithPath(path),
		config.WithWatcher(app.opts.Watch),
		config.WithErrorHandler(func(err error) {
			configLog.Warn("reload failed: %v", err)
		}),
	}
	app.config = config.New(append(storeOpts, app.opts.ConfigOptions...)...)
	if err := app.config.Load(context.Background()); err != nil {
		configLog.Warn("using defaults: %v", err)
	}
	settings := app.config.Settings()
	app.applyLogSettings(settings)
	app.setKeymap(settings)

	// 4. Documents and sessions
	app.documents = host.NewManager(app.bus)
	app.sessions = quickfind.NewManager(
		quickfind.WithLogger(app.logger.WithComponent("quickfind")),
		quickfind.WithChecks(app.opts.Debug || settings.Debug),
	)

	// 5. Wiring
	if err := app.subscribe(); err != nil {
		app.config.Close()
		app.bus.Close()
		return NewOperationError("bootstrap", "subscriptions", err)
	}
	app.configSub = app.config.Subscribe(app.onConfigChange)

	// 6. Files from the command line
	ctx := context.Background()
	errs := NewErrorList()
	for _, path := range app.opts.Files {
		if _, err := app.documents.Open(ctx, path); err != nil {
			errs.Add(NewOperationError("open", path, err))
		}
	}
	app.logComponentError("host", errs.AsError())

	app.Logger().WithComponent("app").Debug("quickfind loaded, %d document(s)", app.documents.Count())
	return nil
}

// applyLogSettings sets the log level and component lists from settings.
// The debug setting or -debug lowers the level to at least DEBUG.
func (app *Application) applyLogSettings(s config.Settings) {
	level := ParseLogLevel(s.LogLevel)
	if app.opts.LogLevel != "" {
		level = ParseLogLevel(app.opts.LogLevel)
	}
	if (app.opts.Debug || s.Debug) && level > LogLevelDebug {
		level = LogLevelDebug
	}
	app.logger.SetLevel(level)
	app.logger.SetLists(s.DebugWatchlist, s.DebugBlocklist)
}

// onConfigChange runs on the settings watcher goroutine for reloads and on
// the caller's goroutine for flag toggles, where mu is already held.
func (app *Application) onConfigChange(change notify.Change) {
	if change.Source != config.SourceReload {
		return
	}
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.closed {
		return
	}
	err := app.bus.Publish(context.Background(), event.NewEvent(events.TopicConfigReloaded,
		events.ConfigReloaded{Path: app.config.Path()}, eventSource))
	app.logComponentError("config", err)
}

// setKeymap rebuilds the key bindings from settings.
func (app *Application) setKeymap(s config.Settings) {
	app.keymap = NewKeymap(s.Keymap)
	for _, b := range app.keymap.Unknown() {
		app.Logger().WithComponent("app").Warn("ignoring key binding %s: unknown command", b)
	}
}

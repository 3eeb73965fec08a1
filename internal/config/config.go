package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/quickfind/internal/config/loader"
	"github.com/dshills/quickfind/internal/config/notify"
	"github.com/dshills/quickfind/internal/config/watcher"
)

// Change sources reported to subscribers.
const (
	SourceToggle = "toggle"
	SourceReload = "reload"
)

// Store owns the quickfind settings and the live find flags.
type Store struct {
	mu sync.RWMutex

	settings Settings
	flags    Flags

	path string
	fs   loader.FileSystem
	file *loader.FileLoader

	envPrefix string

	enableWatcher bool
	watcher       *watcher.Watcher

	notifier *notify.Notifier
	onError  func(error)
}

// Option configures a Store instance.
type Option func(*Store)

// WithPath sets the settings file path.
func WithPath(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// WithFileSystem sets the file system used to read and write settings.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(s *Store) {
		s.fs = fsys
	}
}

// WithEnvPrefix sets the environment override prefix. An empty prefix
// disables environment overrides.
func WithEnvPrefix(prefix string) Option {
	return func(s *Store) {
		s.envPrefix = prefix
	}
}

// WithWatcher enables file watching for live reload.
func WithWatcher(enable bool) Option {
	return func(s *Store) {
		s.enableWatcher = enable
	}
}

// WithErrorHandler sets a callback for errors raised by background reloads.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Store) {
		s.onError = fn
	}
}

// New creates a Store holding the defaults. Call Load to read the settings file.
func New(opts ...Option) *Store {
	defaults := Defaults()
	s := &Store{
		settings:  defaults,
		flags:     defaults.DefaultFlags(),
		fs:        loader.DefaultFS(),
		envPrefix: loader.EnvPrefix,
		notifier:  notify.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "quickfind", "settings.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quickfind", "settings.toml")
}

// Path returns the settings file path, or "" if none is configured.
func (s *Store) Path() string {
	return s.path
}

// Load reads settings from all sources and resets the flags to the
// loaded defaults. A missing settings file is not an error.
func (s *Store) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.path != "" && s.file == nil {
		fl, err := loader.NewFileLoaderWithFS(s.fs, s.path)
		if err != nil {
			return fmt.Errorf("settings file %s: %w", s.path, err)
		}
		s.file = fl
	}

	settings, err := s.read()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = settings
	s.flags = settings.DefaultFlags()
	startWatcher := s.enableWatcher && s.path != "" && s.watcher == nil
	s.mu.Unlock()

	if startWatcher {
		if err := s.startWatcher(); err != nil {
			return err
		}
	}
	return nil
}

// read resolves defaults, file and environment into a Settings value.
// Bad individual values are reported but do not stop the load.
func (s *Store) read() (Settings, error) {
	settings := Defaults()

	if s.file != nil {
		values, err := s.file.Load()
		if err != nil {
			return settings, err
		}
		if err := settings.Apply(values); err != nil {
			return settings, fmt.Errorf("settings file %s: %w", s.path, err)
		}
	}

	if s.envPrefix != "" {
		values, err := loader.NewEnvLoader(s.envPrefix).Load()
		if err != nil {
			return settings, err
		}
		if err := settings.Apply(values); err != nil {
			return settings, fmt.Errorf("environment: %w", err)
		}
	}

	return settings, nil
}

// Reload re-reads the settings and notifies subscribers.
// The live flags are kept; only their persisted defaults change.
func (s *Store) Reload() error {
	settings, err := s.read()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	s.notifier.NotifyReload(SourceReload)
	return nil
}

func (s *Store) startWatcher() error {
	w, err := watcher.New()
	if err != nil {
		return err
	}
	w.OnChange(func(watcher.Event) {
		if err := s.Reload(); err != nil {
			s.reportError(err)
		}
	})
	w.OnError(s.reportError)
	if err := w.Watch(s.path); err != nil {
		_ = w.Close()
		return err
	}

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()
	return nil
}

func (s *Store) reportError(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}

// Close stops the watcher and drops subscribers.
func (s *Store) Close() {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w != nil {
		_ = w.Close()
	}
	s.notifier.Close()
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// Flags returns a snapshot of the live find flags.
func (s *Store) Flags() Flags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags
}

// SetFlags replaces the live find flags.
func (s *Store) SetFlags(f Flags) {
	s.mu.Lock()
	old := s.flags
	s.flags = f
	s.mu.Unlock()

	s.notifyFlagChanges(old, f)
}

// ToggleCaseSensitive flips case sensitivity and returns the new value.
func (s *Store) ToggleCaseSensitive() bool {
	f := s.Flags()
	f.CaseSensitive = !f.CaseSensitive
	s.SetFlags(f)
	return f.CaseSensitive
}

// ToggleWholeWord flips whole-word matching and returns the new value.
func (s *Store) ToggleWholeWord() bool {
	f := s.Flags()
	f.WholeWord = !f.WholeWord
	s.SetFlags(f)
	return f.WholeWord
}

// ToggleWrapScan flips wrap scanning and returns the new value.
func (s *Store) ToggleWrapScan() bool {
	f := s.Flags()
	f.WrapScan = !f.WrapScan
	s.SetFlags(f)
	return f.WrapScan
}

// Flip toggles every flag enabled by the flip_* settings. It reports
// whether case or whole word changed, which invalidates any built ring.
func (s *Store) Flip() (Flags, bool) {
	s.mu.RLock()
	settings := s.settings
	f := s.flags
	s.mu.RUnlock()

	reset := false
	if settings.FlipCase {
		f.CaseSensitive = !f.CaseSensitive
		reset = true
	}
	if settings.FlipWholeWord {
		f.WholeWord = !f.WholeWord
		reset = true
	}
	if settings.FlipWrapScan {
		f.WrapScan = !f.WrapScan
	}
	s.SetFlags(f)
	return f, reset
}

// SaveFlags writes the live flags to the settings file as the new defaults.
func (s *Store) SaveFlags() error {
	if s.file == nil {
		return ErrNoSettingsFile
	}
	f := s.Flags()
	err := s.file.Save(map[string]any{
		KeyCaseSensitive: f.CaseSensitive,
		KeyWholeWord:     f.WholeWord,
		KeyWrapScan:      f.WrapScan,
	})
	if err != nil {
		return fmt.Errorf("saving flags: %w", err)
	}

	s.mu.Lock()
	s.settings.DefaultCaseSensitive = f.CaseSensitive
	s.settings.DefaultWholeWord = f.WholeWord
	s.settings.DefaultWrapScan = f.WrapScan
	s.mu.Unlock()
	return nil
}

// Subscribe registers an observer for flag changes and reloads.
func (s *Store) Subscribe(observer notify.Observer) *notify.Subscription {
	return s.notifier.Subscribe(observer)
}

func (s *Store) notifyFlagChanges(old, f Flags) {
	if old.CaseSensitive != f.CaseSensitive {
		s.notifier.NotifySet(KeyCaseSensitive, old.CaseSensitive, f.CaseSensitive, SourceToggle)
	}
	if old.WholeWord != f.WholeWord {
		s.notifier.NotifySet(KeyWholeWord, old.WholeWord, f.WholeWord, SourceToggle)
	}
	if old.WrapScan != f.WrapScan {
		s.notifier.NotifySet(KeyWrapScan, old.WrapScan, f.WrapScan, SourceToggle)
	}
}

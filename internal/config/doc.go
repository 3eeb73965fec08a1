// Package config provides the settings store for quickfind.
//
// The Store owns the process-wide find flags (case sensitivity, whole word,
// wrap scan) and the presentation options that shape the status line and
// the gutter indicator. Sessions take a Flags snapshot when they build their
// ring, and read the wrap flag again on every command.
//
// # Sources
//
// Settings are resolved from lowest to highest priority:
//
//  1. Built-in defaults (see Defaults)
//  2. The settings file (.toml, .json, .sublime-settings, .yaml or .yml)
//  3. QUICKFIND_* environment variables
//
// # Settings File
//
// Keys are flat and match the names used by the Sublime plug-in settings:
//
//	# ~/.config/quickfind/settings.toml
//	default_case_sensitive = true
//	default_whole_word = true
//	default_wrap_scan = false
//	wrap_scan_flag_char = "R"
//	wrap_scan_flag_position = 3
//	indicator = "icon"
//
//	[keymap]
//	"alt+n" = "goto_next"
//
// # Persistence
//
// Toggles change the in-memory flags only. SaveFlags writes the three
// default_* keys back to the settings file and leaves every other key
// untouched; the application calls it when a document is about to be
// saved and save_flags_on_save is enabled.
//
// # Live Reload
//
// With WithWatcher enabled the settings file is watched through fsnotify
// and every change reloads the store and notifies subscribers.
package config

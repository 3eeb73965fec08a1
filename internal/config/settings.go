package config

import (
	"errors"
	"fmt"
	"strings"
)

// Setting keys.
const (
	KeyCaseSensitive        = "default_case_sensitive"
	KeyWholeWord            = "default_whole_word"
	KeyWrapScan             = "default_wrap_scan"
	KeyWrapScanFlagChar     = "wrap_scan_flag_char"
	KeyWrapScanFlagPosition = "wrap_scan_flag_position"
	KeyShowTilde            = "show_tilde"
	KeyShowAlert            = "show_alert"
	KeyShowNotice           = "show_notice"
	KeyIndicator            = "indicator"
	KeyFlipCase             = "flip_case"
	KeyFlipWholeWord        = "flip_whole_word"
	KeyFlipWrapScan         = "flip_wrap_scan"
	KeySaveFlagsOnSave      = "save_flags_on_save"
	KeyDebug                = "debug"
	KeyDebugWatchlist       = "debug_watchlist"
	KeyDebugBlocklist       = "debug_blocklist"
	KeyLogLevel             = "log_level"
	KeyKeymap               = "keymap"
)

// Indicator selects how the gutter marks the current match.
type Indicator uint8

const (
	// IndicatorIcon draws a dot for an unselected match and a circle with
	// no outline for a selected one.
	IndicatorIcon Indicator = iota
	// IndicatorSuperimpose draws the outline only.
	IndicatorSuperimpose
	// IndicatorNone draws the outline only when the match is not selected.
	IndicatorNone
)

// String returns the settings name of the indicator style.
func (i Indicator) String() string {
	switch i {
	case IndicatorIcon:
		return "icon"
	case IndicatorSuperimpose:
		return "superimpose"
	case IndicatorNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseIndicator parses an indicator style name.
func ParseIndicator(s string) (Indicator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "icon":
		return IndicatorIcon, nil
	case "superimpose":
		return IndicatorSuperimpose, nil
	case "none":
		return IndicatorNone, nil
	default:
		return IndicatorIcon, &ValidationError{Key: KeyIndicator, Message: "must be icon, superimpose or none", Value: s, Code: ErrCodeInvalidEnum}
	}
}

// Flags are the three find flags.
type Flags struct {
	CaseSensitive bool
	WholeWord     bool
	WrapScan      bool
}

// Settings holds every quickfind option.
type Settings struct {
	DefaultCaseSensitive bool
	DefaultWholeWord     bool
	DefaultWrapScan      bool

	WrapScanFlagChar     string
	WrapScanFlagPosition int
	ShowTilde            bool
	ShowAlert            bool
	ShowNotice           bool
	Indicator            Indicator

	FlipCase      bool
	FlipWholeWord bool
	FlipWrapScan  bool

	SaveFlagsOnSave bool

	Debug          bool
	DebugWatchlist []string
	DebugBlocklist []string
	LogLevel       string

	// Keymap maps a key name such as "alt+n" to a command name.
	Keymap map[string]string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		DefaultCaseSensitive: true,
		DefaultWholeWord:     true,
		DefaultWrapScan:      true,
		WrapScanFlagChar:     "R",
		WrapScanFlagPosition: 3,
		ShowTilde:            false,
		ShowAlert:            true,
		ShowNotice:           true,
		Indicator:            IndicatorIcon,
		FlipCase:             true,
		FlipWholeWord:        true,
		FlipWrapScan:         false,
		SaveFlagsOnSave:      true,
		LogLevel:             "info",
	}
}

// DefaultFlags returns the flags the settings start with.
func (s Settings) DefaultFlags() Flags {
	return Flags{
		CaseSensitive: s.DefaultCaseSensitive,
		WholeWord:     s.DefaultWholeWord,
		WrapScan:      s.DefaultWrapScan,
	}
}

// Clone returns a copy that shares no slices or maps with s.
func (s Settings) Clone() Settings {
	c := s
	c.DebugWatchlist = append([]string(nil), s.DebugWatchlist...)
	c.DebugBlocklist = append([]string(nil), s.DebugBlocklist...)
	if s.Keymap != nil {
		c.Keymap = make(map[string]string, len(s.Keymap))
		for k, v := range s.Keymap {
			c.Keymap[k] = v
		}
	}
	return c
}

// Apply overlays values on s. Unknown keys are ignored. Every bad value is
// reported; good values are applied regardless.
func (s *Settings) Apply(values map[string]any) error {
	var errs []error
	setBool := func(key string, dst *bool) {
		v, ok := values[key]
		if !ok {
			return
		}
		b, ok := v.(bool)
		if !ok {
			errs = append(errs, &TypeError{Key: key, Expected: "bool", Actual: typeName(v)})
			return
		}
		*dst = b
	}
	setStrings := func(key string, dst *[]string) {
		v, ok := values[key]
		if !ok {
			return
		}
		list, err := toStringSlice(key, v)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = list
	}

	setBool(KeyCaseSensitive, &s.DefaultCaseSensitive)
	setBool(KeyWholeWord, &s.DefaultWholeWord)
	setBool(KeyWrapScan, &s.DefaultWrapScan)
	setBool(KeyShowTilde, &s.ShowTilde)
	setBool(KeyShowAlert, &s.ShowAlert)
	setBool(KeyShowNotice, &s.ShowNotice)
	setBool(KeyFlipCase, &s.FlipCase)
	setBool(KeyFlipWholeWord, &s.FlipWholeWord)
	setBool(KeyFlipWrapScan, &s.FlipWrapScan)
	setBool(KeySaveFlagsOnSave, &s.SaveFlagsOnSave)
	setBool(KeyDebug, &s.Debug)
	setStrings(KeyDebugWatchlist, &s.DebugWatchlist)
	setStrings(KeyDebugBlocklist, &s.DebugBlocklist)

	if v, ok := values[KeyWrapScanFlagChar]; ok {
		// A non-string char is stringified, matching str() in the plug-in.
		c := fmt.Sprint(v)
		if c == "" {
			errs = append(errs, &ValidationError{Key: KeyWrapScanFlagChar, Message: "must not be empty", Value: v, Code: ErrCodeInvalidValue})
		} else {
			s.WrapScanFlagChar = c
		}
	}

	if v, ok := values[KeyWrapScanFlagPosition]; ok {
		n, err := toInt(KeyWrapScanFlagPosition, v)
		if err != nil {
			errs = append(errs, err)
		} else {
			// Positions other than 1 and 2 put the wrap flag last.
			s.WrapScanFlagPosition = n
		}
	}

	if v, ok := values[KeyIndicator]; ok {
		str, isString := v.(string)
		if !isString {
			errs = append(errs, &TypeError{Key: KeyIndicator, Expected: "string", Actual: typeName(v)})
		} else if ind, err := ParseIndicator(str); err != nil {
			errs = append(errs, err)
		} else {
			s.Indicator = ind
		}
	}

	if v, ok := values[KeyLogLevel]; ok {
		str, isString := v.(string)
		if !isString {
			errs = append(errs, &TypeError{Key: KeyLogLevel, Expected: "string", Actual: typeName(v)})
		} else {
			s.LogLevel = str
		}
	}

	if v, ok := values[KeyKeymap]; ok {
		table, isMap := v.(map[string]any)
		if !isMap {
			errs = append(errs, &TypeError{Key: KeyKeymap, Expected: "table", Actual: typeName(v)})
		} else {
			keymap := make(map[string]string, len(table))
			for key, cmd := range table {
				name, isString := cmd.(string)
				if !isString {
					errs = append(errs, &TypeError{Key: KeyKeymap + "." + key, Expected: "string", Actual: typeName(cmd)})
					continue
				}
				keymap[key] = name
			}
			s.Keymap = keymap
		}
	}

	return errors.Join(errs...)
}

func toInt(key string, v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, &ValidationError{Key: key, Message: "must be a whole number", Value: v, Code: ErrCodeOutOfRange}
		}
		return int(val), nil
	default:
		return 0, &TypeError{Key: key, Expected: "int", Actual: typeName(v)}
	}
}

func toStringSlice(key string, v any) ([]string, error) {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...), nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Key: key, Expected: "[]string", Actual: typeName(v)}
			}
			result[i] = s
		}
		return result, nil
	case string:
		if val == "" {
			return nil, nil
		}
		return strings.Split(val, ","), nil
	default:
		return nil, &TypeError{Key: key, Expected: "[]string", Actual: typeName(v)}
	}
}

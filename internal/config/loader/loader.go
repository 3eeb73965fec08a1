// Package loader provides settings file loading for quickfind.
//
// The loader package parses settings files in TOML, JSON (including the
// Sublime-style .sublime-settings file) and YAML into flat key/value maps,
// writes selected keys back without disturbing the rest of the file, and
// reads overrides from environment variables.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedFormat is returned for a settings file with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// Codec decodes a settings document into a map and merges updated values
// back into an existing document.
type Codec interface {
	// Decode parses data. Empty data yields an empty map.
	Decode(data []byte) (map[string]any, error)

	// Encode returns existing with every key in values set.
	// Keys not present in values are preserved.
	Encode(existing []byte, values map[string]any) ([]byte, error)

	// Name returns the format name for diagnostics.
	Name() string
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// WriteFile writes data to path, creating parent directories.
	WriteFile(path string, data []byte) error
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path, creating parent directories.
func (OSFS) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// CodecFor picks a codec from the file extension of path.
func CodecFor(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOMLCodec{}, nil
	case ".json", ".sublime-settings":
		return JSONCodec{}, nil
	case ".yaml", ".yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// FileLoader reads and writes one settings file.
type FileLoader struct {
	fs    FileSystem
	path  string
	codec Codec
}

// NewFileLoader creates a loader for path, choosing the codec by extension.
func NewFileLoader(path string) (*FileLoader, error) {
	return NewFileLoaderWithFS(DefaultFS(), path)
}

// NewFileLoaderWithFS creates a loader with a custom file system.
func NewFileLoaderWithFS(fsys FileSystem, path string) (*FileLoader, error) {
	codec, err := CodecFor(path)
	if err != nil {
		return nil, err
	}
	return &FileLoader{fs: fsys, path: path, codec: codec}, nil
}

// Path returns the settings file path.
func (l *FileLoader) Path() string {
	return l.path
}

// Load reads the settings file.
// Returns nil, nil if the file doesn't exist (not an error).
func (l *FileLoader) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", l.path, err)
	}
	values, err := l.codec.Decode(data)
	if err != nil {
		return nil, &ParseError{Path: l.path, Format: l.codec.Name(), Message: err.Error(), Err: err}
	}
	return values, nil
}

// Save merges values into the settings file, creating it if necessary.
func (l *FileLoader) Save(values map[string]any) error {
	existing, err := l.fs.ReadFile(l.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading settings file %s: %w", l.path, err)
	}
	data, err := l.codec.Encode(existing, values)
	if err != nil {
		return &ParseError{Path: l.path, Format: l.codec.Name(), Message: err.Error(), Err: err}
	}
	if err := l.fs.WriteFile(l.path, data); err != nil {
		return fmt.Errorf("writing settings file %s: %w", l.path, err)
	}
	return nil
}

// ParseError represents an error while parsing or encoding a settings file.
type ParseError struct {
	Path    string
	Format  string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parse error in %s: %s", e.Format, e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

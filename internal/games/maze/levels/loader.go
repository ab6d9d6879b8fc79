// Package levels loads maze layouts from YAML files and the built-in set.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-maze/internal/games/maze/levels/formats"
	"github.com/vovakirdan/tui-maze/internal/games/maze/sim"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrLevelNotFound is returned when no level carries the requested ID.
var ErrLevelNotFound = errors.New("level not found")

// Level is a validated level plus where it came from.
type Level struct {
	formats.Level
	FilePath string
}

// Builtin reports whether the level ships with the binary.
func (l *Level) Builtin() bool {
	return strings.HasPrefix(l.FilePath, "builtin:")
}

// Volumes builds the wall boxes for the level.
func (l *Level) Volumes(size sim.WallSize) *sim.Volumes {
	return sim.BuildVolumes(l.Map, size)
}

// FileError records a level file that failed to load.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Loader handles loading levels from a directory.
// An empty Root loads only the built-in levels.
type Loader struct {
	Root string

	// Skipped collects files the last LoadAll could not parse.
	Skipped []FileError
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll returns the built-in levels merged with every level file under
// Root. A file whose ID matches a built-in level replaces it.
// Levels are sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	l.Skipped = nil

	byID := make(map[string]Level)
	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}
	for _, lvl := range builtin {
		byID[lvl.ID] = lvl
	}

	if l.Root != "" {
		if _, err := os.Stat(l.Root); err == nil {
			err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
					return nil
				}

				lvl, err := l.LoadFile(path)
				if err != nil {
					l.Skipped = append(l.Skipped, FileError{Path: path, Err: err})
					return nil
				}
				byID[lvl.ID] = lvl
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
			}
		}
	}

	return sortedLevels(byID), nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return Level{Level: parsed, FilePath: path}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Builtin returns the levels compiled into the binary, sorted by ID.
func Builtin() ([]Level, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("reading builtin levels: %w", err)
	}

	byID := make(map[string]Level, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading builtin level %s: %w", e.Name(), err)
		}
		parsed, err := formats.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing builtin level %s: %w", e.Name(), err)
		}
		byID[parsed.ID] = Level{Level: parsed, FilePath: "builtin:" + e.Name()}
	}

	return sortedLevels(byID), nil
}

// MustBuiltin is Builtin for package init paths.
func MustBuiltin() []Level {
	levels, err := Builtin()
	if err != nil {
		panic(err)
	}
	return levels
}

func sortedLevels(byID map[string]Level) []Level {
	levels := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		levels = append(levels, lvl)
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, e := range formats.FormatExtensions() {
		if ext == e {
			return true
		}
	}
	return false
}

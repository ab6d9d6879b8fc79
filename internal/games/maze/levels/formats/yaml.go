// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze/sim"
)

// Level validation errors.
var (
	ErrMissingID    = errors.New("level has no id")
	ErrSpawnBlocked = errors.New("spawn is not on an open cell")
	ErrGoalBlocked  = errors.New("goal is not on an open cell")
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows"`
	Spawn    YAMLSpawn         `yaml:"spawn"`
	Goal     *YAMLCell         `yaml:"goal,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLCell is a grid coordinate.
type YAMLCell struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// YAMLSpawn is the start cell and facing. Yaw 0 faces -Z (up the map),
// 90 faces -X, -90 faces +X, 180 faces +Z.
type YAMLSpawn struct {
	Col    int     `yaml:"col"`
	Row    int     `yaml:"row"`
	YawDeg float64 `yaml:"yaw_deg"`
}

// GridPos is a cell on the map.
type GridPos struct {
	Col int
	Row int
}

// Center returns the world position of the cell center on the floor.
func (p GridPos) Center() core.Vec3 {
	return core.V3(float64(p.Col), 0, float64(p.Row))
}

// Level represents a parsed and validated level.
type Level struct {
	ID       string
	Name     string
	Map      *sim.Map
	Spawn    GridPos
	SpawnYaw float64 // radians
	Goal     *GridPos
	Metadata map[string]string
}

// HasGoal reports whether the level defines a goal cell.
func (l *Level) HasGoal() bool {
	return l.Goal != nil
}

// ParseYAML parses and validates a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yl.Level()
}

// Level converts the raw YAML structure to a validated Level.
func (yl YAMLLevel) Level() (Level, error) {
	if yl.ID == "" {
		return Level{}, ErrMissingID
	}

	m, err := sim.ParseRows(yl.Rows)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	level := Level{
		ID:       yl.ID,
		Name:     name,
		Map:      m,
		Spawn:    GridPos{Col: yl.Spawn.Col, Row: yl.Spawn.Row},
		SpawnYaw: yl.Spawn.YawDeg * math.Pi / 180,
		Metadata: yl.Metadata,
	}

	if err := checkOpen(m, level.Spawn, ErrSpawnBlocked); err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	if yl.Goal != nil {
		goal := GridPos{Col: yl.Goal.Col, Row: yl.Goal.Row}
		if err := checkOpen(m, goal, ErrGoalBlocked); err != nil {
			return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
		}
		level.Goal = &goal
	}

	return level, nil
}

// MarshalYAML renders a level back to the file format.
func MarshalYAML(l Level) ([]byte, error) {
	yl := YAMLLevel{
		ID:   l.ID,
		Name: l.Name,
		Rows: l.Map.Strings(),
		Spawn: YAMLSpawn{
			Col:    l.Spawn.Col,
			Row:    l.Spawn.Row,
			YawDeg: l.SpawnYaw * 180 / math.Pi,
		},
		Metadata: l.Metadata,
	}
	if l.Goal != nil {
		yl.Goal = &YAMLCell{Col: l.Goal.Col, Row: l.Goal.Row}
	}
	return yaml.Marshal(yl)
}

func checkOpen(m *sim.Map, p GridPos, blocked error) error {
	if !m.InBounds(p.Col, p.Row) {
		return fmt.Errorf("%w: (%d, %d) on a %dx%d map", sim.ErrOutOfBounds, p.Col, p.Row, m.Cols(), m.Rows())
	}
	if !m.IsOpen(p.Col, p.Row) {
		return fmt.Errorf("%w: (%d, %d)", blocked, p.Col, p.Row)
	}
	return nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

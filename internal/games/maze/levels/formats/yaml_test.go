package formats

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/games/maze/sim"
)

const validLevel = `
id: tiny
name: Tiny
rows:
  - "#####"
  - "#...#"
  - "#####"
spawn:
  col: 1
  row: 1
  yaw_deg: 90
goal:
  col: 3
  row: 1
metadata:
  author: test
`

func TestParseYAML(t *testing.T) {
	lvl, err := ParseYAML([]byte(validLevel))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}

	if lvl.ID != "tiny" || lvl.Name != "Tiny" {
		t.Errorf("id/name = %q/%q", lvl.ID, lvl.Name)
	}
	if lvl.Map.Cols() != 5 || lvl.Map.Rows() != 3 {
		t.Errorf("map size = %dx%d, want 5x3", lvl.Map.Cols(), lvl.Map.Rows())
	}
	if lvl.Spawn != (GridPos{Col: 1, Row: 1}) {
		t.Errorf("spawn = %+v", lvl.Spawn)
	}
	if math.Abs(lvl.SpawnYaw-math.Pi/2) > 1e-12 {
		t.Errorf("spawn yaw = %v, want pi/2", lvl.SpawnYaw)
	}
	if !lvl.HasGoal() || *lvl.Goal != (GridPos{Col: 3, Row: 1}) {
		t.Errorf("goal = %+v", lvl.Goal)
	}
	if lvl.Metadata["author"] != "test" {
		t.Errorf("metadata = %v", lvl.Metadata)
	}
}

func TestParseYAMLNameDefaultsToID(t *testing.T) {
	lvl, err := ParseYAML([]byte("id: bare\nrows: [\"###\", \"#.#\", \"###\"]\nspawn: {col: 1, row: 1}\n"))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if lvl.Name != "bare" {
		t.Errorf("name = %q, want bare", lvl.Name)
	}
	if lvl.HasGoal() {
		t.Error("level without goal reports one")
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"missing id", "rows: [\"#.#\"]\nspawn: {col: 1, row: 0}\n", ErrMissingID},
		{"ragged rows", "id: x\nrows: [\"###\", \"#.\"]\nspawn: {col: 1, row: 1}\n", sim.ErrMalformedMap},
		{"empty rows", "id: x\nrows: []\n", sim.ErrMalformedMap},
		{"bad glyph", "id: x\nrows: [\"#?#\"]\nspawn: {col: 0, row: 0}\n", sim.ErrInvalidCell},
		{"spawn in wall", "id: x\nrows: [\"###\", \"#.#\"]\nspawn: {col: 0, row: 0}\n", ErrSpawnBlocked},
		{"spawn off map", "id: x\nrows: [\"###\", \"#.#\"]\nspawn: {col: 5, row: 1}\n", sim.ErrOutOfBounds},
		{"goal in wall", "id: x\nrows: [\"###\", \"#.#\"]\nspawn: {col: 1, row: 1}\ngoal: {col: 2, row: 1}\n", ErrGoalBlocked},
		{"goal off map", "id: x\nrows: [\"###\", \"#.#\"]\nspawn: {col: 1, row: 1}\ngoal: {col: 1, row: -1}\n", sim.ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseYAMLSyntaxError(t *testing.T) {
	if _, err := ParseYAML([]byte("id: [unterminated")); err == nil {
		t.Error("expected error for broken yaml")
	}
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	lvl, err := ParseYAML([]byte(validLevel))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}

	data, err := MarshalYAML(lvl)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}

	back, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("re-parse: %v\n%s", err, data)
	}

	got, want := back.Map.Strings(), lvl.Map.Strings()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
	if *back.Goal != *lvl.Goal || back.Spawn != lvl.Spawn {
		t.Errorf("spawn/goal changed: %+v %+v", back.Spawn, back.Goal)
	}
}

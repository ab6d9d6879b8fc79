package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-maze/internal/storage"
)

type fakeLister map[string][]storage.Run

func (f fakeLister) BestRuns(levelID string, _ int) ([]storage.Run, error) {
	return f[levelID], nil
}

func TestRunsModelEmpty(t *testing.T) {
	m := NewRunsModel(nil, 60, 20, "")
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty board should say no runs")
	}
}

func TestRunsModelRows(t *testing.T) {
	m := RunsModel{
		source: fakeLister{"reference": {
			{ID: "a", LevelID: "reference", Duration: 1500 * time.Millisecond, Distance: 4.3, CreatedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)},
		}},
		keys:   DefaultRunsKeyMap(),
		width:  60,
		height: 20,
	}
	m.table = m.createTable()
	m.loadRuns("reference")

	rows := m.table.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	want := []string{"#1", "1.50s", "4.3", "Jan 02 03:04"}
	for i, w := range want {
		if rows[0][i] != w {
			t.Errorf("column %d = %q, want %q", i, rows[0][i], w)
		}
	}
}

func TestRunsModelBackAndQuit(t *testing.T) {
	m := NewRunsModel(nil, 60, 20, "")
	next, _ := m.Update(runeKey("b"))
	if !next.(RunsModel).IsGoingBack() {
		t.Error("b should go back")
	}

	next, _ = m.Update(runeKey("q"))
	if !next.(RunsModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Reference", 20); got != "Reference" {
		t.Errorf("short string changed: %q", got)
	}
	if got := truncate("Switchback Corridor", 8); got != "Switchb." {
		t.Errorf("truncate = %q", got)
	}
}

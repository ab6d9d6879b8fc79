package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	durations := []time.Duration{12 * time.Second, 8500 * time.Millisecond, 20 * time.Second}
	for _, d := range durations {
		if _, err := store.SaveRun("reference", d, 9.5); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun("spiral", 40*time.Second, 31); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.BestRuns("reference", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Fastest first
	want := []time.Duration{8500 * time.Millisecond, 12 * time.Second, 20 * time.Second}
	for i, d := range want {
		if runs[i].Duration != d {
			t.Errorf("runs[%d].Duration = %v, want %v", i, runs[i].Duration, d)
		}
		if runs[i].LevelID != "reference" {
			t.Errorf("runs[%d].LevelID = %q", i, runs[i].LevelID)
		}
		if runs[i].Distance != 9.5 {
			t.Errorf("runs[%d].Distance = %v", i, runs[i].Distance)
		}
		if runs[i].CreatedAt.IsZero() {
			t.Errorf("runs[%d].CreatedAt not set", i)
		}
	}

	spiral, err := store.BestRuns("spiral", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(spiral) != 1 {
		t.Errorf("Expected 1 spiral run, got %d", len(spiral))
	}
}

func TestStoreRunIDs(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun("reference", time.Second, 1)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("run id %q is not a uuid: %v", id, err)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil || run.ID != id || run.Duration != time.Second {
		t.Errorf("RunByID() = %+v", run)
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("RunByID(unknown) = %+v, %v; want nil, nil", missing, err)
	}
}

func TestStoreRejectsInvalidRun(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name     string
		level    string
		duration time.Duration
	}{
		{"no level", "", time.Second},
		{"zero duration", "reference", 0},
		{"negative duration", "reference", -time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.SaveRun(tt.level, tt.duration, 1); !errors.Is(err, ErrInvalidRun) {
				t.Errorf("SaveRun() err = %v, want ErrInvalidRun", err)
			}
		})
	}
}

func TestStoreBestRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 15; i++ {
		if _, err := store.SaveRun("corridor", time.Duration(i)*time.Second, float64(i)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.BestRuns("corridor", 5)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}

	// Non-positive limit falls back to 10
	runs, err = store.BestRuns("corridor", 0)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("Expected 10 runs, got %d", len(runs))
	}
}

func TestStoreBestTime(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.BestTime("reference")
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if ok {
		t.Error("Expected no best time for empty level")
	}

	for _, d := range []time.Duration{5 * time.Second, 3 * time.Second, 9 * time.Second} {
		if _, err := store.SaveRun("reference", d, 1); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	best, ok, err := store.BestTime("reference")
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if !ok || best != 3*time.Second {
		t.Errorf("BestTime() = %v, %v; want 3s, true", best, ok)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	for _, level := range []string{"reference", "reference", "spiral"} {
		if _, err := store.SaveRun(level, time.Second, 1); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	if err := store.ClearRuns("reference"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.AllRuns("reference")
	if len(runs) != 0 {
		t.Errorf("Expected 0 reference runs after clear, got %d", len(runs))
	}

	runs, _ = store.AllRuns("spiral")
	if len(runs) != 1 {
		t.Errorf("Expected spiral runs untouched, got %d", len(runs))
	}
}

func TestStoreAllRuns(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := 0; i < 20; i++ {
		id, err := store.SaveRun("spiral", time.Duration(i+1)*time.Second, 2)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := store.AllRuns("spiral")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(runs) != 20 {
		t.Fatalf("Expected 20 runs, got %d", len(runs))
	}
	// Newest first
	if runs[0].ID != ids[len(ids)-1] {
		t.Errorf("first run = %s, want newest %s", runs[0].ID, ids[len(ids)-1])
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.LevelStats("reference")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestTime != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveRun("reference", 4*time.Second, 6)
	store.SaveRun("reference", 2*time.Second, 5)
	store.SaveRun("spiral", 30*time.Second, 40)

	stats, err := store.LevelStats("reference")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, want 2", stats.Runs)
	}
	if stats.BestTime != 2*time.Second {
		t.Errorf("BestTime = %v, want 2s", stats.BestTime)
	}
	if stats.AvgTime != 3*time.Second {
		t.Errorf("AvgTime = %v, want 3s", stats.AvgTime)
	}
	if stats.TotalDistance != 11 {
		t.Errorf("TotalDistance = %v, want 11", stats.TotalDistance)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	all, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(all))
	}
	if all["spiral"].Runs != 1 || all["spiral"].BestTime != 30*time.Second {
		t.Errorf("spiral stats = %+v", all["spiral"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun("reference", time.Second, 1); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	runs, err := store.AllRuns("reference")
	if err != nil || len(runs) != 1 {
		t.Errorf("AllRuns() after reopen = %d runs, %v", len(runs), err)
	}
}

// Package storage provides SQLite-based persistence for finished maze runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrInvalidRun is returned when a run has no level or no duration.
var ErrInvalidRun = errors.New("storage: invalid run")

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished attempt at a level.
type Run struct {
	ID        string // uuid
	LevelID   string
	Duration  time.Duration
	Distance  float64 // grid units
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			level_id TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			distance REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(level_id, duration_ms ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run for the given level.
// Returns the generated run ID.
func (s *Store) SaveRun(levelID string, duration time.Duration, distance float64) (string, error) {
	if levelID == "" || duration <= 0 {
		return "", fmt.Errorf("%w: level %q, duration %v", ErrInvalidRun, levelID, duration)
	}

	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, level_id, duration_ms, distance) VALUES (?, ?, ?, ?)",
		id, levelID, duration.Milliseconds(), distance,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return id, nil
}

// BestRuns retrieves the N fastest runs for the given level.
func (s *Store) BestRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, duration_ms, distance, created_at
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY duration_ms ASC, created_at ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// AllRuns retrieves every run for the given level, newest first.
func (s *Store) AllRuns(levelID string) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, level_id, duration_ms, distance, created_at
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY created_at DESC, rowid DESC`,
		levelID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunByID retrieves a run by its ID. Returns nil if there is none.
func (s *Store) RunByID(id string) (*Run, error) {
	var r Run
	var ms int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, level_id, duration_ms, distance, created_at
		 FROM runs
		 WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.LevelID, &ms, &r.Distance, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.Duration = time.Duration(ms) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// BestTime returns the fastest run duration for the given level.
// ok is false if the level has no runs.
func (s *Store) BestTime(levelID string) (best time.Duration, ok bool, err error) {
	var ms sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(duration_ms) FROM runs WHERE level_id = ?",
		levelID,
	).Scan(&ms)

	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !ms.Valid {
		return 0, false, nil
	}

	return time.Duration(ms.Int64) * time.Millisecond, true, nil
}

// ClearRuns deletes all runs for the given level.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID       string
	Runs          int
	BestTime      time.Duration
	AvgTime       time.Duration
	TotalDistance float64
	LastPlayed    time.Time
}

// LevelStats retrieves aggregated statistics for a specific level.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var bestMS int64
	var avgMS float64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(duration_ms), 0), COALESCE(AVG(duration_ms), 0),
		        COALESCE(SUM(distance), 0), MAX(created_at)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &bestMS, &avgMS, &stats.TotalDistance, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	stats.BestTime = time.Duration(bestMS) * time.Millisecond
	stats.AvgTime = time.Duration(avgMS * float64(time.Millisecond))
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllLevelStats retrieves statistics for every level that has runs.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MIN(duration_ms), AVG(duration_ms), SUM(distance), MAX(created_at)
		 FROM runs
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var bestMS int64
		var avgMS float64
		var lastPlayed any
		if err := rows.Scan(&ls.LevelID, &ls.Runs, &bestMS, &avgMS, &ls.TotalDistance, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}

		ls.BestTime = time.Duration(bestMS) * time.Millisecond
		ls.AvgTime = time.Duration(avgMS * float64(time.Millisecond))
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.LevelID] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ms int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &ms, &r.Distance, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

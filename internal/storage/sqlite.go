// Package storage provides SQLite-based persistence for the replay
// viewing library: which logs were watched, when, and how far.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the viewing library.
type Store struct {
	db *sql.DB
}

// ViewEntry records one viewing of a replay file.
type ViewEntry struct {
	ID         int64
	Path       string
	Player     string
	Radius     int
	Turns      int
	FinalScore int
	LastTurn   int // cursor position when the viewer closed the file
	ViewedAt   time.Time
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
		CREATE TABLE IF NOT EXISTS views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			radius INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			final_score INTEGER NOT NULL,
			last_turn INTEGER NOT NULL DEFAULT 0,
			viewed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_views_path ON views(path);
		CREATE INDEX IF NOT EXISTS idx_views_recent ON views(viewed_at DESC);
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

// RecordView saves a viewing record. Returns the ID of the inserted row.
func (s *Store) RecordView(e ViewEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO views (path, player, radius, turns, final_score, last_turn)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Path, e.Player, e.Radius, e.Turns, e.FinalScore, e.LastTurn,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record view: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Recent retrieves the most recently viewed replays, newest first.
func (s *Store) Recent(limit int) ([]ViewEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, path, player, radius, turns, final_score, last_turn, viewed_at
		 FROM views
		 ORDER BY viewed_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query views: %w", err)
	}
	defer rows.Close()

	var entries []ViewEntry
	for rows.Next() {
		var e ViewEntry
		var viewedAt any
		if err := rows.Scan(&e.ID, &e.Path, &e.Player, &e.Radius, &e.Turns, &e.FinalScore, &e.LastTurn, &viewedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.ViewedAt = parseTimestamp(viewedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LastView returns the most recent viewing record for the given path,
// or nil if the replay has never been opened.
func (s *Store) LastView(path string) (*ViewEntry, error) {
	var e ViewEntry
	var viewedAt any

	err := s.db.QueryRow(
		`SELECT id, path, player, radius, turns, final_score, last_turn, viewed_at
		 FROM views
		 WHERE path = ?
		 ORDER BY viewed_at DESC, id DESC
		 LIMIT 1`,
		path,
	).Scan(&e.ID, &e.Path, &e.Player, &e.Radius, &e.Turns, &e.FinalScore, &e.LastTurn, &viewedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query last view: %w", err)
	}

	e.ViewedAt = parseTimestamp(viewedAt)
	return &e, nil
}

// LibraryStats contains aggregated statistics across all viewings.
type LibraryStats struct {
	ViewCount   int
	UniqueFiles int
	BestScore   int
	AvgScore    float64
	LastViewed  time.Time
}

// Stats retrieves aggregated statistics for the whole library.
func (s *Store) Stats() (*LibraryStats, error) {
	stats := &LibraryStats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT path), COALESCE(MAX(final_score), 0), COALESCE(AVG(final_score), 0)
		 FROM views`,
	).Scan(&stats.ViewCount, &stats.UniqueFiles, &stats.BestScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get library stats: %w", err)
	}

	var lastViewed any
	err = s.db.QueryRow(
		`SELECT viewed_at FROM views ORDER BY viewed_at DESC, id DESC LIMIT 1`,
	).Scan(&lastViewed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last viewed: %w", err)
	}
	if err == nil {
		stats.LastViewed = parseTimestamp(lastViewed)
	}

	return stats, nil
}

// ClearHistory deletes every viewing record.
func (s *Store) ClearHistory() error {
	_, err := s.db.Exec("DELETE FROM views")
	if err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// parseTimestamp handles the driver returning either time.Time or a
// formatted string for DATETIME columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

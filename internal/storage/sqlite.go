// Package storage keeps finished play-session statistics in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Session is one finished play session on a board variant.
type Session struct {
	ID           int64
	Variant      string
	Seed         int64
	Rows         int
	Columns      int
	Colors       int
	Selections   int
	TilesCleared int
	LargestGroup int
	Recreations  int
	Duration     time.Duration
	CreatedAt    time.Time
}

// VariantStats aggregates all sessions of one variant.
type VariantStats struct {
	Variant      string
	Sessions     int
	Selections   int
	TilesCleared int
	LargestGroup int
	Recreations  int
	PlayTime     time.Duration
	LastPlayed   time.Time
}

// AvgGroup returns the mean number of tiles removed per selection.
func (v VariantStats) AvgGroup() float64 {
	if v.Selections == 0 {
		return 0
	}
	return float64(v.TilesCleared) / float64(v.Selections)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			board_rows INTEGER NOT NULL DEFAULT 0,
			board_columns INTEGER NOT NULL DEFAULT 0,
			colors INTEGER NOT NULL DEFAULT 0,
			selections INTEGER NOT NULL DEFAULT 0,
			tiles_cleared INTEGER NOT NULL DEFAULT 0,
			largest_group INTEGER NOT NULL DEFAULT 0,
			recreations INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_variant ON sessions(variant, created_at DESC);
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

// SaveSession records a finished session and returns its row ID.
func (s *Store) SaveSession(rec Session) (int64, error) {
	if rec.Variant == "" {
		return 0, errors.New("storage: session has no variant")
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (variant, seed, board_rows, board_columns, colors, selections, tiles_cleared, largest_group, recreations, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Variant, rec.Seed, rec.Rows, rec.Columns, rec.Colors,
		rec.Selections, rec.TilesCleared, rec.LargestGroup, rec.Recreations,
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentSessions returns the latest sessions of a variant, newest first.
// An empty variant matches every variant.
func (s *Store) RecentSessions(variant string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, variant, seed, board_rows, board_columns, colors, selections, tiles_cleared,
		        largest_group, recreations, duration_ms, created_at
		 FROM sessions
		 WHERE ? = '' OR variant = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var rec Session
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&rec.ID, &rec.Variant, &rec.Seed, &rec.Rows, &rec.Columns, &rec.Colors,
			&rec.Selections, &rec.TilesCleared, &rec.LargestGroup, &rec.Recreations,
			&durationMS, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sessions, nil
}

// Stats aggregates every session of one variant.
// A variant with no sessions yields zero counters.
func (s *Store) Stats(variant string) (VariantStats, error) {
	stats := VariantStats{Variant: variant}

	var durationMS int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(selections), 0), COALESCE(SUM(tiles_cleared), 0),
		        COALESCE(MAX(largest_group), 0), COALESCE(SUM(recreations), 0),
		        COALESCE(SUM(duration_ms), 0), MAX(created_at)
		 FROM sessions WHERE variant = ?`,
		variant,
	).Scan(&stats.Sessions, &stats.Selections, &stats.TilesCleared,
		&stats.LargestGroup, &stats.Recreations, &durationMS, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}

	stats.PlayTime = time.Duration(durationMS) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats aggregates sessions per variant for every variant played so far.
func (s *Store) AllStats() (map[string]VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), SUM(selections), SUM(tiles_cleared), MAX(largest_group),
		        SUM(recreations), SUM(duration_ms), MAX(created_at)
		 FROM sessions
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all variant stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]VariantStats)
	for rows.Next() {
		var v VariantStats
		var durationMS int64
		var lastPlayed any
		if err := rows.Scan(&v.Variant, &v.Sessions, &v.Selections, &v.TilesCleared,
			&v.LargestGroup, &v.Recreations, &durationMS, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		v.PlayTime = time.Duration(durationMS) * time.Millisecond
		v.LastPlayed = parseTime(lastPlayed)
		all[v.Variant] = v
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return all, nil
}

// ClearSessions deletes all sessions of a variant.
func (s *Store) ClearSessions(variant string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE variant = ?", variant); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
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

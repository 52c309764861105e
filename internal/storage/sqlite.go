// Package storage provides SQLite-based persistence for engine call journals.
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

// Store manages the SQLite database connection for the call journal.
type Store struct {
	db *sql.DB
}

// Run is one recorded bridge session: a replayed scenario, a monitor
// session or a gamepad session.
type Run struct {
	ID        int64
	Label     string
	Source    string // "replay", "monitor", "gamepad"
	Calls     int
	CreatedAt time.Time
}

// CallEntry is one engine boundary call within a run.
type CallEntry struct {
	RunID     int64
	Seq       int
	Name      string
	Args      string
	CreatedAt time.Time
}

// String renders the call as it appears in the call log.
func (c CallEntry) String() string {
	return c.Name + "(" + c.Args + ")"
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

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// One connection: concurrent journal sinks queue up instead of
	// failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			source TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS calls (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			name TEXT NOT NULL,
			args TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (run_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_calls_name ON calls(run_id, name);
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

// BeginRun creates a new run and returns its ID.
func (s *Store) BeginRun(label, source string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (label, source) VALUES (?, ?)",
		label, source,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// AppendCall records one boundary call of a run.
func (s *Store) AppendCall(runID int64, seq int, name, args string) error {
	_, err := s.db.Exec(
		"INSERT INTO calls (run_id, seq, name, args) VALUES (?, ?, ?, ?)",
		runID, seq, name, args,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot append call %d of run %d: %w", seq, runID, err)
	}
	return nil
}

// Calls retrieves all calls of a run in sequence order.
func (s *Store) Calls(runID int64) ([]CallEntry, error) {
	rows, err := s.db.Query(
		`SELECT run_id, seq, name, args, created_at
		 FROM calls
		 WHERE run_id = ?
		 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query calls: %w", err)
	}
	defer rows.Close()

	var entries []CallEntry
	for rows.Next() {
		var e CallEntry
		var createdAt any
		if err := rows.Scan(&e.RunID, &e.Seq, &e.Name, &e.Args, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// CountCalls returns how many calls named name a run recorded.
func (s *Store) CountCalls(runID int64, name string) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM calls WHERE run_id = ? AND name = ?",
		runID, name,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count calls: %w", err)
	}
	return n, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.label, r.source, r.created_at,
		        (SELECT COUNT(*) FROM calls c WHERE c.run_id = r.id)
		 FROM runs r
		 ORDER BY r.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Label, &r.Source, &createdAt, &r.Calls); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves one run. Returns nil if it does not exist.
func (s *Store) RunByID(id int64) (*Run, error) {
	var r Run
	var createdAt any

	err := s.db.QueryRow(
		`SELECT r.id, r.label, r.source, r.created_at,
		        (SELECT COUNT(*) FROM calls c WHERE c.run_id = r.id)
		 FROM runs r
		 WHERE r.id = ?`,
		id,
	).Scan(&r.ID, &r.Label, &r.Source, &createdAt, &r.Calls)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// DeleteRun deletes a run and its calls.
func (s *Store) DeleteRun(id int64) error {
	if _, err := s.db.Exec("DELETE FROM calls WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete calls: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	return nil
}

// ClearRuns deletes every run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM calls"); err != nil {
		return fmt.Errorf("storage: cannot clear calls: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
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

// Package history records every rollback invocation, including dry runs
// and failures, in a project-local SQLite store. Writes are best-effort
// from the caller's point of view: a history failure never fails a
// rollback.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db   *sql.DB
	path string
}

type Record struct {
	ID         string `json:"id"`
	Method     string `json:"method"`
	Target     string `json:"target"`
	DryRun     bool   `json:"dry_run"`
	Outcome    string `json:"outcome"` // success / failure
	Detail     string `json:"detail"`
	DurationMs int64  `json:"duration_ms"`
	CreatedAt  string `json:"created_at"` // RFC3339
}

// Open creates or opens the history database at path with WAL mode and a
// 5 second busy timeout, creating the rollbacks table if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("history: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("history: %s: %w", p, err)
		}
	}

	ddl := `CREATE TABLE IF NOT EXISTS rollbacks (
		id          TEXT PRIMARY KEY,
		method      TEXT NOT NULL,
		target      TEXT NOT NULL,
		dry_run     INTEGER NOT NULL DEFAULT 0,
		outcome     TEXT NOT NULL,
		detail      TEXT NOT NULL DEFAULT '',
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create table: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Path() string {
	return s.path
}

// Append stores one rollback record, filling ID and CreatedAt.
func (s *Store) Append(r Record) error {
	r.ID = uuid.New().String()
	r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	dry := 0
	if r.DryRun {
		dry = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO rollbacks (id, method, target, dry_run, outcome, detail, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Method, r.Target, dry, r.Outcome, r.Detail, r.DurationMs, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("history: append: %w", err)
	}
	return nil
}

// Recent returns the latest n records, newest first.
func (s *Store) Recent(n int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, method, target, dry_run, outcome, detail, duration_ms, created_at
		 FROM rollbacks ORDER BY created_at DESC, id LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var dry int
		if err := rows.Scan(&r.ID, &r.Method, &r.Target, &dry, &r.Outcome, &r.Detail, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		r.DryRun = dry != 0
		records = append(records, r)
	}
	return records, rows.Err()
}

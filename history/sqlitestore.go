package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed sqlite_schema.sql
var sqliteSchema string

// SQLiteStoreConfig configures the SQLite history store.
type SQLiteStoreConfig struct {
	// DSN is the database connection string, e.g. a file path.
	DSN string

	// MaxEntries keeps at most this many entries (0 = keep everything).
	MaxEntries int
}

// SQLiteStore persists history to a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	cfg SQLiteStoreConfig
}

// NewSQLiteStore opens (or creates) a SQLite history store.
func NewSQLiteStore(cfg SQLiteStoreConfig) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("history: open: %w", err)
	}

	// Create schema.
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &SQLiteStore{db: db, cfg: cfg}, nil
}

// Append stores an entry and prunes the oldest entries beyond MaxEntries.
func (s *SQLiteStore) Append(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (id, expr, result, stage, error, time)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Expr,
		// Text keeps NaN and infinities, which SQLite REAL cannot hold.
		strconv.FormatFloat(e.Result, 'g', -1, 64),
		e.Stage,
		e.Error,
		e.Time.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("history: append: %w", err)
	}
	if s.cfg.MaxEntries > 0 {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM history WHERE seq NOT IN
			 (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)`, s.cfg.MaxEntries,
		); err != nil {
			return fmt.Errorf("history: prune: %w", err)
		}
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, expr, result, stage, error, time FROM history ORDER BY seq DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e              Entry
			result, tstamp string
		)
		if err := rows.Scan(&e.ID, &e.Expr, &result, &e.Stage, &e.Error, &tstamp); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		if e.Result, err = strconv.ParseFloat(result, 64); err != nil {
			return nil, fmt.Errorf("history: parse result %q: %w", result, err)
		}
		if e.Time, err = time.Parse(time.RFC3339Nano, tstamp); err != nil {
			return nil, fmt.Errorf("history: parse time %q: %w", tstamp, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)

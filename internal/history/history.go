// Package history keeps an append-only record of profiling runs in a
// local SQLite file, so repeated snapshots of the same dataset can be
// compared over time.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/datasnap/datasnap/internal/profiler"
)

// Run is one stored profiling run.
type Run struct {
	ID              int64
	Source          string
	CreatedAt       time.Time
	RowCount        int
	ColumnCount     int
	RowsWithMissing int
	RowsAllMissing  int
	DuplicateRows   int
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func initializeSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			created_at TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			column_count INTEGER NOT NULL,
			rows_with_missing INTEGER NOT NULL,
			rows_all_missing INTEGER NOT NULL,
			duplicate_rows INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_columns (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			name TEXT NOT NULL,
			dtype TEXT NOT NULL,
			count INTEGER NOT NULL,
			null_count INTEGER NOT NULL,
			empty_count INTEGER NOT NULL,
			unique_count INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize history schema: %w", err)
		}
	}
	return nil
}

// Save appends one run and its per-column rows in a single transaction.
func (s *Store) Save(source string, rep *profiler.Report) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (source, created_at, row_count, column_count,
			rows_with_missing, rows_all_missing, duplicate_rows)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		source,
		time.Now().UTC().Format(time.RFC3339),
		rep.Meta.RowCount,
		rep.Meta.ColumnCount,
		rep.Meta.RowsWithMissing,
		rep.Meta.RowsAllMissing,
		rep.Meta.DuplicateRows,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO run_columns (run_id, name, dtype, count, null_count,
			empty_count, unique_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, col := range rep.Columns {
		_, err := stmt.Exec(runID, col.Name, string(col.DType),
			col.Count, col.NullCount, col.EmptyCount, col.UniqueCount)
		if err != nil {
			return fmt.Errorf("failed to insert column row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// List returns all stored runs, newest first.
func (s *Store) List() ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, source, created_at, row_count, column_count,
			rows_with_missing, rows_all_missing, duplicate_rows
		FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Source, &created, &r.RowCount,
			&r.ColumnCount, &r.RowsWithMissing, &r.RowsAllMissing,
			&r.DuplicateRows); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an existing database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLite opens (or creates) the database at path and ensures the schema
// exists. Use ":memory:" for an ephemeral database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	s := NewSQLiteStore(db)
	if err := s.CreateTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTable creates the forms table. Safe to run at startup.
func (s *SQLiteStore) CreateTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS forms (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			title              TEXT NOT NULL COLLATE NOCASE,
			status             TEXT NOT NULL DEFAULT 'Active',
			configuration_json TEXT NOT NULL DEFAULT '',
			created            TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_forms_status_title
			ON forms (status, title COLLATE NOCASE);
	`)
	if err != nil {
		return fmt.Errorf("store: create table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Add(ctx context.Context, record FormRecord) (int64, error) {
	if record.Status == "" {
		record.Status = StatusActive
	}
	if record.Created.IsZero() {
		record.Created = time.Now().UTC()
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO forms (title, status, configuration_json, created)
		 VALUES (?, ?, ?, ?)`,
		record.Title, record.Status, record.ConfigurationJSON, record.Created,
	)
	if err != nil {
		return 0, fmt.Errorf("store: insert form: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: last insert id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (FormRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, status, configuration_json, created FROM forms WHERE id = ?`, id)

	var record FormRecord
	err := row.Scan(&record.ID, &record.Title, &record.Status, &record.ConfigurationJSON, &record.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return FormRecord{}, ErrNotFound
	}
	if err != nil {
		return FormRecord{}, fmt.Errorf("store: get form %d: %w", id, err)
	}
	return record, nil
}

func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]FormRecord, error) {
	status := filter.Status
	if status == "" {
		status = StatusActive
	}

	var b strings.Builder
	b.WriteString(`SELECT id, title, status, configuration_json, created
		FROM forms WHERE status = ?
		ORDER BY title COLLATE NOCASE ASC, id ASC`)
	args := []any{status}
	if filter.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("store: query forms: %w", err)
	}
	defer rows.Close()

	var records []FormRecord
	for rows.Next() {
		var record FormRecord
		if err := rows.Scan(&record.ID, &record.Title, &record.Status, &record.ConfigurationJSON, &record.Created); err != nil {
			return nil, fmt.Errorf("store: scan form: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate forms: %w", err)
	}
	return records, nil
}

// Package history persists executed queries in a local SQLite file.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"
)

// MaxEntriesPerDatabase caps how many entries are kept for one database.
const MaxEntriesPerDatabase = 500

const columns = `id, db_name, query, executed_at, duration_ms, row_count, status, error_message`

// Store manages query history persistence.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the XDG data path of the history file.
func DefaultPath() (string, error) {
	return xdg.DataFile("pgpeek/history.db")
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			db_name TEXT NOT NULL,
			query TEXT NOT NULL,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			duration_ms INTEGER NOT NULL,
			row_count INTEGER NOT NULL,
			status TEXT NOT NULL,
			error_message TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_history_database ON history(db_name);
		CREATE INDEX IF NOT EXISTS idx_history_executed_at ON history(executed_at);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	store := &Store{db: db}
	if err := store.cleanup(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prune history: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records an execution and sets entry.ID.
func (s *Store) Add(entry *Entry) error {
	res, err := s.db.Exec(`
		INSERT INTO history (db_name, query, executed_at, duration_ms, row_count, status, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.Database,
		entry.Query,
		entry.ExecutedAt.UTC(),
		entry.DurationMs,
		entry.RowCount,
		entry.Status,
		entry.ErrorMessage,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id

	return s.enforceLimit(entry.Database, MaxEntriesPerDatabase)
}

// enforceLimit keeps only the most recent limit entries of a database.
func (s *Store) enforceLimit(database string, limit int) error {
	_, err := s.db.Exec(`
		DELETE FROM history
		WHERE db_name = ?
		AND id NOT IN (
			SELECT id FROM history
			WHERE db_name = ?
			ORDER BY executed_at DESC, id DESC
			LIMIT ?
		)
	`, database, database, limit)
	return err
}

// List returns entries of a database, newest first.
func (s *Store) List(database string, limit, offset int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT `+columns+`
		FROM history
		WHERE db_name = ?
		ORDER BY executed_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, database, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Search finds entries of a database whose query contains substr.
func (s *Store) Search(database, substr string, limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT `+columns+`
		FROM history
		WHERE db_name = ? AND query LIKE ?
		ORDER BY executed_at DESC, id DESC
		LIMIT ?
	`, database, "%"+substr+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Database, &e.Query, &e.ExecutedAt,
			&e.DurationMs, &e.RowCount, &e.Status, &e.ErrorMessage); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get retrieves a single entry. It returns nil when id is unknown.
func (s *Store) Get(id int64) (*Entry, error) {
	row := s.db.QueryRow(`SELECT `+columns+` FROM history WHERE id = ?`, id)

	var e Entry
	err := row.Scan(&e.ID, &e.Database, &e.Query, &e.ExecutedAt,
		&e.DurationMs, &e.RowCount, &e.Status, &e.ErrorMessage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes an entry.
func (s *Store) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM history WHERE id = ?", id)
	return err
}

// cleanup removes entries older than 90 days.
func (s *Store) cleanup() error {
	_, err := s.db.Exec(`
		DELETE FROM history
		WHERE executed_at < datetime('now', '-90 days')
	`)
	return err
}

// Count returns the number of entries of a database.
func (s *Store) Count(database string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM history WHERE db_name = ?`, database).Scan(&count)
	return count, err
}

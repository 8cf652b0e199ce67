package db

import (
	"context"
	"database/sql"
	"log/slog"
)

const (
	listDatabasesQuery = `
		SELECT datname
		FROM pg_database
		WHERE datistemplate = false
		ORDER BY datname`

	listTablesQuery = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		ORDER BY table_name`
)

// ListDatabases returns the non-template databases of the server in
// ascending order, using the session connection.
func (s *Session) ListDatabases(ctx context.Context) ([]string, error) {
	_, conn, ok := s.snapshot()
	if !ok {
		return nil, ErrNotConnected
	}
	return queryNames(ctx, conn, listDatabasesQuery)
}

// ListTables returns the base tables of the public schema of database in
// ascending order. It uses its own connection scoped to database.
func (s *Session) ListTables(ctx context.Context, database string) ([]string, error) {
	var tables []string
	err := s.withDatabase(ctx, database, func(conn *sql.DB) error {
		var err error
		tables, err = queryNames(ctx, conn, listTablesQuery)
		return err
	})
	if err != nil {
		s.logger.Debug("list tables failed", slog.String("database", database), slog.String("error", err.Error()))
		return nil, err
	}
	return tables, nil
}

// queryNames runs a single-column catalog query.
func queryNames(ctx context.Context, conn *sql.DB, query string) ([]string, error) {
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, WrapQueryError(query, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, WrapQueryError(query, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapQueryError(query, err)
	}
	return names, nil
}

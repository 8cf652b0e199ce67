package db

import (
	"context"
	"database/sql"
	"log/slog"
)

// QueryRequest is one free-form statement execution.
type QueryRequest struct {
	Database  string
	Statement string
	// Limit caps the rows through ApplyRowCap; zero or less disables it.
	Limit int
}

// TableRequest is one default table scan.
type TableRequest struct {
	Database  string
	Table     string
	Limit     int
	SortBy    string
	SortOrder string
}

// RunQuery executes a caller-supplied statement against database. The
// statement runs verbatim apart from the row cap.
func (s *Session) RunQuery(ctx context.Context, req QueryRequest) (*Result, error) {
	statement := ApplyRowCap(req.Statement, req.Limit)
	return s.run(ctx, req.Database, statement)
}

// TableData scans table in database, optionally sorted. A non-positive
// limit falls back to DefaultRowLimit.
func (s *Session) TableData(ctx context.Context, req TableRequest) (*Result, error) {
	order, err := ParseSortOrder(req.SortOrder)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultRowLimit
	}
	return s.run(ctx, req.Database, TableQuery(req.Table, req.SortBy, order, limit))
}

func (s *Session) run(ctx context.Context, database, statement string) (*Result, error) {
	var result *Result
	err := s.withDatabase(ctx, database, func(conn *sql.DB) error {
		var err error
		result, err = execute(ctx, conn, statement)
		return err
	})
	if err != nil {
		s.logger.Debug("statement failed",
			slog.String("database", database),
			slog.String("statement", statement),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Debug("statement executed",
		slog.String("database", database),
		slog.String("statement", statement),
		slog.Int64("rows", result.RowCount),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

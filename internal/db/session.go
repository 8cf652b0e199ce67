package db

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/stdlib"
)

// probeQuery is the round trip used to validate a new session.
const probeQuery = "SELECT NOW()"

// Opener opens a database handle for a credential. The handle may connect
// lazily; callers own it and must Close it.
type Opener func(ctx context.Context, cred Credential) (*sql.DB, error)

// OpenPostgres is the production Opener backed by pgx.
func OpenPostgres(_ context.Context, cred Credential) (*sql.DB, error) {
	cfg, err := cred.ConnConfig()
	if err != nil {
		return nil, WrapConnectionError(err)
	}
	conn := stdlib.OpenDB(*cfg)
	conn.SetMaxOpenConns(1)
	return conn, nil
}

// Session holds the single active credential of a process along with the
// connection that validated it. A new Connect replaces the session for every
// caller; operations already running keep the credential they started with.
type Session struct {
	open   Opener
	logger *slog.Logger

	mu   sync.RWMutex
	cred *Credential
	conn *sql.DB
}

// NewSession creates a disconnected session. A nil opener means
// OpenPostgres; a nil logger discards.
func NewSession(open Opener, logger *slog.Logger) *Session {
	if open == nil {
		open = OpenPostgres
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{open: open, logger: logger}
}

// Connect parses connectionString, closes any current session, probes the
// server and installs the new credential. On failure no session remains.
func (s *Session) Connect(ctx context.Context, connectionString string) (Credential, error) {
	s.detach()

	cred, err := ParseConnectionString(connectionString)
	if err != nil {
		s.logger.Debug("connection string rejected", slog.String("error", err.Error()))
		return Credential{}, WrapConnectionError(err)
	}

	s.logger.Debug("connecting",
		slog.String("host", cred.Host),
		slog.Int("port", cred.Port),
		slog.String("database", cred.Database),
		slog.String("user", cred.User),
		slog.Bool("password", cred.HasPassword()),
	)

	conn, err := s.open(ctx, cred)
	if err != nil {
		return Credential{}, err
	}

	var now any
	if err := conn.QueryRowContext(ctx, probeQuery).Scan(&now); err != nil {
		_ = conn.Close()
		return Credential{}, WrapConnectionError(err)
	}

	s.install(cred, conn)
	s.logger.Info("session established", slog.String("target", cred.String()))
	return cred, nil
}

// Credential returns the active credential.
func (s *Session) Credential() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return Credential{}, false
	}
	return *s.cred, true
}

// Connected reports whether a session is installed.
func (s *Session) Connected() bool {
	_, ok := s.Credential()
	return ok
}

// Close discards the session.
func (s *Session) Close() error {
	return s.detach()
}

// snapshot returns the current credential and session connection.
func (s *Session) snapshot() (Credential, *sql.DB, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return Credential{}, nil, false
	}
	return *s.cred, s.conn, true
}

func (s *Session) install(cred Credential, conn *sql.DB) {
	s.mu.Lock()
	prev := s.conn
	s.cred = &cred
	s.conn = conn
	s.mu.Unlock()

	// A concurrent Connect may have installed a session after our detach.
	if prev != nil {
		_ = prev.Close()
	}
}

func (s *Session) detach() error {
	s.mu.Lock()
	prev := s.conn
	s.cred = nil
	s.conn = nil
	s.mu.Unlock()

	if prev == nil {
		return nil
	}
	return prev.Close()
}

// withDatabase opens a short-lived connection to database using the
// current credential and closes it once fn returns.
func (s *Session) withDatabase(ctx context.Context, database string, fn func(conn *sql.DB) error) error {
	cred, ok := s.Credential()
	if !ok {
		return ErrNotConnected
	}

	target := cred.WithDatabase(database)
	conn, err := s.open(ctx, target)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			s.logger.Debug("closing connection", slog.String("database", database), slog.String("error", cerr.Error()))
		}
	}()

	return fn(conn)
}

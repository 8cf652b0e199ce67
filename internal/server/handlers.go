package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nhath/pgpeek/internal/db"
)

// Handlers provides the HTTP handlers for the API.
type Handlers struct {
	session      *db.Session
	defaultLimit int
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(session *db.Session, defaultLimit int, logger *slog.Logger) *Handlers {
	return &Handlers{
		session:      session,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// Connect replaces the session with one built from the posted connection string.
func (h *Handlers) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ConnectResponse{Success: false, Error: err.Error()})
		return
	}

	if _, err := h.session.Connect(r.Context(), req.ConnectionString); err != nil {
		h.logger.Warn("connect failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ConnectResponse{Success: false, Error: db.Message(err)})
		return
	}

	writeJSON(w, http.StatusOK, ConnectResponse{Success: true, Message: "Connected successfully"})
}

// Databases lists the server's databases.
func (h *Handlers) Databases(w http.ResponseWriter, r *http.Request) {
	databases, err := h.session.ListDatabases(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, databases)
}

// Tables lists the tables of one database.
func (h *Handlers) Tables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.session.ListTables(r.Context(), urlParam(r, "database"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

// Query runs a free-form statement.
func (h *Handlers) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	limit := h.defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	result, err := h.session.RunQuery(r.Context(), db.QueryRequest{
		Database:  req.Database,
		Statement: req.Query,
		Limit:     limit,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// TableData scans a table with optional sorting.
func (h *Handlers) TableData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Unparseable limits fall back to the default, like a missing one.
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = h.defaultLimit
	}

	result, err := h.session.TableData(r.Context(), db.TableRequest{
		Database:  urlParam(r, "database"),
		Table:     urlParam(r, "table"),
		Limit:     limit,
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Warn("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: db.Message(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, db.ErrNotConnected), errors.Is(err, db.ErrInvalidSortOrder):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// urlParam returns a decoded path parameter. chi matches on the raw path
// when the request carried escaped characters.
func urlParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// writeJSON encodes v before writing the header so an encode failure is
// reported as a 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

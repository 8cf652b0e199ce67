package ui

import (
	"time"

	"github.com/nhath/pgpeek/internal/client"
	"github.com/nhath/pgpeek/internal/history"
)

// connectedMsg reports a connect outcome.
type connectedMsg struct {
	message string
	err     error
}

// databasesMsg carries the database list.
type databasesMsg struct {
	names []string
	err   error
}

// tablesMsg carries the table list of one database.
type tablesMsg struct {
	database string
	names    []string
	err      error
}

// resultMsg carries a table-data or query outcome.
type resultMsg struct {
	fetch   Fetch
	result  *client.Result
	err     error
	elapsed time.Duration
}

// historyLoadedMsg is sent when history loads from SQLite.
type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}

// DebounceMsg fires the delayed table refetch after a row limit change.
// Stale IDs are ignored.
type DebounceMsg struct {
	ID int
}

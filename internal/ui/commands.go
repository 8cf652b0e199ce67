package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/pgpeek/internal/client"
	"github.com/nhath/pgpeek/internal/history"
)

// historyPageSize is how many entries the history popup lists.
const historyPageSize = 20

// run turns a fetch into the API call that performs it.
func (m Model) run(f *Fetch) tea.Cmd {
	if f == nil {
		return nil
	}
	api := m.api
	fetch := *f

	var call tea.Cmd
	switch fetch.Kind {
	case FetchConnect:
		call = func() tea.Msg {
			message, err := api.Connect(context.Background(), fetch.ConnectionString)
			return connectedMsg{message: message, err: err}
		}
	case FetchDatabases:
		call = func() tea.Msg {
			names, err := api.Databases(context.Background())
			return databasesMsg{names: names, err: err}
		}
	case FetchTables:
		call = func() tea.Msg {
			names, err := api.Tables(context.Background(), fetch.Database)
			return tablesMsg{database: fetch.Database, names: names, err: err}
		}
	case FetchTableData:
		call = func() tea.Msg {
			start := time.Now()
			result, err := api.TableData(context.Background(), fetch.Database, fetch.Table, client.TableParams{
				Limit:     fetch.Limit,
				SortBy:    fetch.SortBy,
				SortOrder: fetch.SortOrder,
			})
			return resultMsg{fetch: fetch, result: result, err: err, elapsed: time.Since(start)}
		}
	case FetchQuery:
		call = func() tea.Msg {
			start := time.Now()
			result, err := api.Query(context.Background(), fetch.Database, fetch.Statement, fetch.Limit)
			return resultMsg{fetch: fetch, result: result, err: err, elapsed: time.Since(start)}
		}
	default:
		return nil
	}

	if m.browser.Busy {
		return tea.Batch(call, m.spinner.Tick)
	}
	return call
}

// debounce schedules a DebounceMsg carrying the current debounce ID.
func (m Model) debounce() tea.Cmd {
	id := m.debounceID
	return tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return DebounceMsg{ID: id}
	})
}

func (m Model) loadHistoryCmd() tea.Cmd {
	store := m.store
	database := m.browser.Database
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := store.List(database, historyPageSize, 0)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m Model) recordHistoryCmd(msg resultMsg) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}

	entry := &history.Entry{
		Database:   msg.fetch.Database,
		Query:      msg.fetch.Statement,
		ExecutedAt: time.Now(),
		DurationMs: msg.elapsed.Milliseconds(),
		Status:     history.StatusSuccess,
	}
	if msg.err != nil {
		entry.Status = history.StatusError
		entry.ErrorMessage = msg.err.Error()
	} else if msg.result != nil {
		entry.RowCount = msg.result.RowCount
	}

	return func() tea.Msg {
		if err := store.Add(entry); err != nil {
			return historyLoadedMsg{err: err}
		}
		return nil
	}
}

func (m Model) deleteHistoryCmd(id int64) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		if err := store.Delete(id); err != nil {
			return historyLoadedMsg{err: err}
		}
		return m.loadHistoryCmd()()
	}
}

package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	rtable "github.com/nhath/pgpeek/internal/ui/components/table"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.browser.Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case connectedMsg:
		next := m.browser.ConnectDone(msg.err)
		if msg.err == nil {
			m.statusMsg = msg.message
			m.dbCursor, m.tableCursor = 0, 0
			m.editor.SetValue("")
			m.setFocus(paneDatabases)
		}
		return m, m.run(next)

	case databasesMsg:
		m.browser.DatabasesDone(msg.names, msg.err)
		m.dbCursor = clamp(m.dbCursor, len(m.browser.Databases))
		return m, nil

	case tablesMsg:
		m.browser.TablesDone(msg.database, msg.names, msg.err)
		m.tableCursor = clamp(m.tableCursor, len(m.browser.Tables))
		return m, nil

	case resultMsg:
		m.browser.ResultDone(msg.fetch, msg.result, msg.err)
		if msg.err == nil && msg.result != nil && msg.fetch.Database == m.browser.Database {
			m.statusMsg = fmt.Sprintf("%d rows in %s", msg.result.RowCount, msg.elapsed.Round(time.Millisecond))
		}
		m.refreshResults()
		if msg.fetch.Kind == FetchQuery {
			return m, m.recordHistoryCmd(msg)
		}
		return m, nil

	case DebounceMsg:
		if msg.ID != m.debounceID {
			return m, nil
		}
		return m, m.run(m.browser.Refresh())

	case historyLoadedMsg:
		if msg.err != nil {
			m.statusMsg = "history: " + msg.err.Error()
			return m, nil
		}
		m.historyEntries = msg.entries
		m.historyCursor = clamp(m.historyCursor, len(m.historyEntries))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Close, m.keys.Help) {
			m.showHelp = false
		}
		return m, nil
	}
	if m.showHistory {
		return m.handleHistoryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NextPane):
		m.setFocus((m.focus + 1) % paneCount)
		return m, nil
	case key.Matches(msg, m.keys.PrevPane):
		m.setFocus((m.focus + paneCount - 1) % paneCount)
		return m, nil
	case key.Matches(msg, m.keys.Execute):
		m.browser.Query = m.editor.Value()
		return m, m.run(m.browser.ExecuteQuery())
	case key.Matches(msg, m.keys.History):
		m.showHistory = true
		m.historyCursor = 0
		return m, m.loadHistoryCmd()
	}

	switch m.focus {
	case paneConnect:
		if key.Matches(msg, m.keys.Select) {
			return m, m.run(m.browser.Connect(m.connInput.Value()))
		}
		var cmd tea.Cmd
		m.connInput, cmd = m.connInput.Update(msg)
		return m, cmd

	case paneQuery:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		m.browser.Query = m.editor.Value()
		return m, cmd
	}

	// Panes without text input share the remaining bindings.
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.LimitUp):
		return m.changeRowLimit(1)
	case key.Matches(msg, m.keys.LimitDown):
		return m.changeRowLimit(-1)
	}

	switch m.focus {
	case paneDatabases:
		return m.handleDatabasesKey(msg)
	case paneTables:
		return m.handleTablesKey(msg)
	case paneResults:
		return m.handleResultsKey(msg)
	}
	return m, nil
}

func (m Model) handleDatabasesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.dbCursor = clamp(m.dbCursor-1, len(m.browser.Databases))
	case key.Matches(msg, m.keys.Down):
		m.dbCursor = clamp(m.dbCursor+1, len(m.browser.Databases))
	case key.Matches(msg, m.keys.Select):
		if len(m.browser.Databases) == 0 {
			return m, nil
		}
		f := m.browser.SelectDatabase(m.browser.Databases[m.dbCursor])
		m.tableCursor = 0
		m.colCursor = 0
		m.editor.SetValue("")
		m.setFocus(paneTables)
		return m, m.run(f)
	}
	return m, nil
}

func (m Model) handleTablesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.tableCursor = clamp(m.tableCursor-1, len(m.browser.Tables))
	case key.Matches(msg, m.keys.Down):
		m.tableCursor = clamp(m.tableCursor+1, len(m.browser.Tables))
	case key.Matches(msg, m.keys.Select):
		if len(m.browser.Tables) == 0 {
			return m, nil
		}
		f := m.browser.SelectTable(m.browser.Tables[m.tableCursor])
		m.editor.SetValue(m.browser.Query)
		m.colCursor = 0
		m.setFocus(paneResults)
		return m, m.run(f)
	}
	return m, nil
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := 0
	if m.browser.Result != nil {
		fields = len(m.browser.Result.Fields)
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.colCursor = clamp(m.colCursor-1, fields)
		m.refreshResults()
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.colCursor = clamp(m.colCursor+1, fields)
		m.refreshResults()
		return m, nil
	case key.Matches(msg, m.keys.Sort):
		if fields == 0 {
			return m, nil
		}
		f := m.browser.Sort(m.browser.Result.Fields[m.colCursor].Name)
		m.refreshResults()
		return m, m.run(f)
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close, m.keys.History):
		m.showHistory = false
	case key.Matches(msg, m.keys.Up):
		m.historyCursor = clamp(m.historyCursor-1, len(m.historyEntries))
	case key.Matches(msg, m.keys.Down):
		m.historyCursor = clamp(m.historyCursor+1, len(m.historyEntries))
	case key.Matches(msg, m.keys.Select):
		if len(m.historyEntries) == 0 {
			return m, nil
		}
		m.editor.SetValue(m.historyEntries[m.historyCursor].Query)
		m.browser.Query = m.editor.Value()
		m.showHistory = false
		m.setFocus(paneQuery)
	case key.Matches(msg, m.keys.Delete):
		if len(m.historyEntries) == 0 {
			return m, nil
		}
		return m, m.deleteHistoryCmd(m.historyEntries[m.historyCursor].ID)
	}
	return m, nil
}

// changeRowLimit moves to the neighbouring row limit option and schedules a
// debounced refetch when a table is selected.
func (m Model) changeRowLimit(step int) (tea.Model, tea.Cmd) {
	limit := nextLimit(m.opts.RowLimits, m.browser.Limit, step)
	m.statusMsg = fmt.Sprintf("Row limit %d", limit)
	if !m.browser.SetRowLimit(limit) {
		return m, nil
	}
	m.debounceID++
	return m, m.debounce()
}

func (m *Model) setFocus(p pane) {
	m.focus = p
	m.connInput.Blur()
	m.editor.Blur()
	switch p {
	case paneConnect:
		m.connInput.Focus()
	case paneQuery:
		m.editor.Focus()
	}
	m.refreshResults()
}

func (m *Model) refreshResults() {
	m.colCursor = clamp(m.colCursor, m.fieldCount())
	selected := -1
	if m.focus == paneResults {
		selected = m.colCursor
	}
	m.results = rtable.FromResult(m.browser.Result, rtable.View{
		SortColumn: m.browser.SortColumn,
		SortOrder:  m.browser.SortOrder,
		Selected:   selected,
		PageSize:   m.pageSize(),
	}).Focused(m.focus == paneResults)
}

func (m Model) fieldCount() int {
	if m.browser.Result == nil {
		return 0
	}
	return len(m.browser.Result.Fields)
}

// clamp bounds i to [0, n).
func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

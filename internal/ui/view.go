package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 30

// View renders the presenter.
func (m Model) View() string {
	header := m.renderHeader()
	status := m.renderStatusBar()

	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(status), 6)
	sidebar := m.renderSidebar(bodyHeight)
	main := m.renderMain(bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, status)

	switch {
	case m.showHelp:
		return m.renderHelpPopup(screen)
	case m.showHistory:
		return m.renderHistoryPopup(screen)
	}
	return screen
}

func (m Model) renderHeader() string {
	title := PaneTitleStyle.Render("PostgreSQL Database Viewer")

	style := PaneStyle
	if m.focus == paneConnect {
		style = PaneFocusedStyle
	}
	bar := style.Width(max(m.width-2, 20)).Render(m.connInput.View())

	lines := []string{title, bar}
	if m.browser.Err != "" {
		lines = append(lines, ErrorStyle.Width(m.width).Render(m.browser.Err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderSidebar(height int) string {
	half := max(height/2, 3)

	dbs := m.renderList("Databases", m.browser.Databases, m.dbCursor, m.browser.Database,
		m.focus == paneDatabases, half)
	tables := m.renderList("Tables", m.browser.Tables, m.tableCursor, m.browser.Table,
		m.focus == paneTables, height-half)

	return lipgloss.JoinVertical(lipgloss.Left, dbs, tables)
}

// renderList draws a titled list. The cursor row is highlighted when the
// pane has focus; the active item is marked.
func (m Model) renderList(title string, items []string, cursor int, active string, focused bool, height int) string {
	style := PaneStyle
	if focused {
		style = PaneFocusedStyle
	}

	inner := max(height-3, 1)
	start := 0
	if cursor >= inner {
		start = cursor - inner + 1
	}

	var b strings.Builder
	b.WriteString(PaneTitleStyle.Render(title))
	if len(items) == 0 {
		b.WriteString("\n" + MetaStyle.Render("(none)"))
	}
	for i := start; i < len(items) && i < start+inner; i++ {
		name := truncate(items[i], sidebarWidth-6)
		line := "  " + name
		switch {
		case focused && i == cursor:
			line = CursorStyle.Render("› " + name)
		case items[i] == active:
			line = ItemActiveStyle.Render("● " + name)
		default:
			line = ItemStyle.Render(line)
		}
		b.WriteString("\n" + line)
	}

	return style.Width(sidebarWidth - 2).Height(height - 2).Render(b.String())
}

func (m Model) renderMain(height int) string {
	width := max(m.width-sidebarWidth, 20)

	queryStyle := PaneStyle
	var query string
	if m.focus == paneQuery {
		queryStyle = PaneFocusedStyle
		query = m.editor.View()
	} else if v := m.editor.Value(); v != "" {
		query = m.highlighter.SQL(v)
	} else {
		query = MetaStyle.Render(m.editor.Placeholder)
	}
	editor := queryStyle.Width(width - 2).Render(
		PaneTitleStyle.Render("Query") + "\n" + query)

	resultStyle := PaneStyle
	if m.focus == paneResults {
		resultStyle = PaneFocusedStyle
	}

	var results string
	switch {
	case m.browser.Result != nil:
		results = m.results.View()
	case m.browser.Table != "" && m.browser.Busy:
		results = MetaStyle.Render("Loading...")
	default:
		results = MetaStyle.Render("Select a table to view data")
	}

	title := PaneTitleStyle.Render("Results")
	if m.browser.Table != "" {
		title += MetaStyle.Render(fmt.Sprintf("  %s.%s", m.browser.Database, m.browser.Table))
	}
	resultHeight := max(height-lipgloss.Height(editor)-2, 3)
	pane := resultStyle.Width(width - 2).Height(resultHeight).Render(title + "\n" + results)

	return lipgloss.JoinVertical(lipgloss.Left, editor, pane)
}

// resize fits inputs to the window.
func (m *Model) resize() {
	width := max(m.width-sidebarWidth-4, 20)
	m.editor.SetWidth(width)
	m.connInput.Width = max(m.width-8, 20)
	m.refreshResults()
}

// pageSize is how many result rows fit the results pane.
func (m Model) pageSize() int {
	// header, connect bar, editor, borders, table chrome and status bar
	return max(m.height-22, 5)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

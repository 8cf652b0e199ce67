package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/nhath/pgpeek/internal/history"
)

func (m Model) renderHistoryPopup(main string) string {
	var content strings.Builder

	title := "Query History"
	if m.browser.Database != "" {
		title += " · " + m.browser.Database
	}
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render(title))
	content.WriteString("\n\n")

	width := min(max(m.width-12, 40), 100)

	if m.store == nil {
		content.WriteString(MetaStyle.Render("History is disabled"))
	} else if len(m.historyEntries) == 0 {
		content.WriteString(MetaStyle.Render("No queries yet"))
	}

	for i, e := range m.historyEntries {
		content.WriteString(m.renderHistoryEntry(e, i == m.historyCursor, width-8))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(lipgloss.NewStyle().Faint(true).Render("enter load · d delete · esc close"))

	popupBox := PopupStyle.
		Width(width).
		MaxHeight(max(m.height-4, 10)).
		Render(content.String())

	return overlay.Composite(popupBox, main, overlay.Center, overlay.Center, 0, 0)
}

func (m Model) renderHistoryEntry(e history.Entry, selected bool, width int) string {
	icon := lipgloss.NewStyle().Foreground(successColor).Render("✓")
	if e.Status == history.StatusError {
		icon = lipgloss.NewStyle().Foreground(errorColor).Render("✗")
	}

	meta := MetaStyle.Render(fmt.Sprintf("%s · %dms · %d rows",
		e.ExecutedAt.Local().Format("01-02 15:04"), e.DurationMs, e.RowCount))

	query := e.QueryPreview(max(width-lipgloss.Width(meta)-4, 10))
	if selected {
		query = CursorStyle.Render(query)
	} else {
		query = m.highlighter.SQL(query)
	}
	return fmt.Sprintf("%s %s  %s", icon, query, meta)
}

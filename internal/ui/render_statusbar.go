package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderStatusBar() string {
	var parts []string

	// 1. Stage
	parts = append(parts, StageStyle.Render(m.browser.Stage.String()))

	// 2. Selection
	if m.browser.Database != "" {
		target := m.browser.Database
		if m.browser.Table != "" {
			target += "." + m.browser.Table
		}
		parts = append(parts, ConnectionStyle.Render(target))
	}

	// 3. Limit and sort
	meta := fmt.Sprintf("limit %d", m.browser.Limit)
	if m.browser.SortColumn != "" {
		meta += fmt.Sprintf(" · %s %s", m.browser.SortColumn, m.browser.SortOrder)
	}
	parts = append(parts, ConnectionStyle.Render(meta))

	// 4. Loading indicator
	if m.browser.Busy {
		loadingStyle := lipgloss.NewStyle().Foreground(warningColor).Padding(0, 1)
		parts = append(parts, loadingStyle.Render(m.spinner.View()+" Loading..."))
	}

	// 5. Status message
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Background(successColor).Foreground(bgPrimary).Padding(0, 1)
		parts = append(parts, statusStyle.Render("✓ "+m.statusMsg))
	}

	// 6. Error indicator
	if m.browser.Err != "" {
		errorStyle := lipgloss.NewStyle().Background(errorColor).Foreground(textPrimary).Padding(0, 1)
		parts = append(parts, errorStyle.Render("⚠ "+truncate(m.browser.Err, 40)))
	}

	parts = append(parts, MetaStyle.Padding(0, 1).Render("? help"))

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return StatusBarStyle.Width(m.width).Render(content)
}

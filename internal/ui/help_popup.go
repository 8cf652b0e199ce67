package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

func (m Model) renderHelpPopup(main string) string {
	var content strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("⌨️  Keyboard Shortcuts")
	content.WriteString(title)
	content.WriteString("\n\n")

	k := m.keys
	section := func(name string, bindings ...key.Binding) {
		header := lipgloss.NewStyle().Bold(true).Foreground(highlightColor).Render(name)
		content.WriteString(header + "\n")
		for _, b := range bindings {
			h := b.Help()
			keyStyle := lipgloss.NewStyle().Foreground(successColor).Width(12)
			descStyle := lipgloss.NewStyle().Foreground(textSecondary)
			content.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
		content.WriteString("\n")
	}

	section("Navigation", k.NextPane, k.PrevPane, k.Up, k.Down, k.Select)
	section("Results", k.Left, k.Right, k.Sort, k.LimitUp, k.LimitDown)
	section("Query", k.Execute, k.History, k.Delete)
	section("Other", k.Help, k.Close, k.Quit)

	content.WriteString(lipgloss.NewStyle().Faint(true).Render("Press Esc or ? to close"))

	popupBox := PopupStyle.
		Width(50).
		MaxHeight(max(m.height-4, 10)).
		Render(content.String())

	return overlay.Composite(popupBox, main, overlay.Center, overlay.Center, 0, 0)
}

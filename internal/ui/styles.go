package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/pgpeek/internal/config"
)

// Theme colors, set by InitStyles.
var (
	textPrimary   lipgloss.Color
	textSecondary lipgloss.Color
	textFaint     lipgloss.Color

	accentColor    lipgloss.Color
	successColor   lipgloss.Color
	errorColor     lipgloss.Color
	highlightColor lipgloss.Color
	warningColor   lipgloss.Color

	bgPrimary   lipgloss.Color
	bgSecondary lipgloss.Color

	StatusBarStyle   lipgloss.Style
	StageStyle       lipgloss.Style
	ConnectionStyle  lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style
	ItemStyle        lipgloss.Style
	ItemActiveStyle  lipgloss.Style
	CursorStyle      lipgloss.Style
	MetaStyle        lipgloss.Style
	ErrorStyle       lipgloss.Style
	PopupStyle       lipgloss.Style
)

// InitStyles initializes the global styles from the configured theme.
func InitStyles(theme config.Theme) {
	textPrimary = lipgloss.Color(theme.TextPrimary)
	textSecondary = lipgloss.Color(theme.TextSecondary)
	textFaint = lipgloss.Color(theme.TextFaint)

	accentColor = lipgloss.Color(theme.Accent)
	successColor = lipgloss.Color(theme.Success)
	errorColor = lipgloss.Color(theme.Error)
	highlightColor = lipgloss.Color(theme.Highlight)
	warningColor = lipgloss.Color(theme.Warning)

	bgPrimary = lipgloss.Color(theme.BgPrimary)
	bgSecondary = lipgloss.Color(theme.BgSecondary)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Background(bgSecondary)

	StageStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(successColor).
		Foreground(bgPrimary)

	ConnectionStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(bgSecondary).
		Foreground(textPrimary)

	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(textFaint).
		Padding(0, 1)

	PaneFocusedStyle = PaneStyle.
		BorderForeground(highlightColor)

	PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor)

	ItemStyle = lipgloss.NewStyle().
		Foreground(textPrimary)

	ItemActiveStyle = lipgloss.NewStyle().
		Foreground(successColor).
		Bold(true)

	CursorStyle = lipgloss.NewStyle().
		Foreground(bgPrimary).
		Background(highlightColor).
		Bold(true)

	MetaStyle = lipgloss.NewStyle().
		Foreground(textFaint).
		Italic(true)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	PopupStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(highlightColor).
		Padding(1, 2)
}

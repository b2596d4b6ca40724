// Package styles holds the lipgloss colors and styles shared by console output
// and the debug logger.
package styles

import "github.com/charmbracelet/lipgloss"

// Adaptive colors pick a light or dark variant based on the terminal background.
var (
	ColorError   = lipgloss.AdaptiveColor{Light: "#D73737", Dark: "#FF5555"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#E67E22", Dark: "#FFB86C"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#27AE60", Dark: "#50FA7B"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#2980B9", Dark: "#8BE9FD"}
	ColorPurple  = lipgloss.AdaptiveColor{Light: "#8E44AD", Dark: "#BD93F9"}
	ColorComment = lipgloss.AdaptiveColor{Light: "#6C7A89", Dark: "#6272A4"}
)

var (
	Error    = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	Warning  = lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)
	Success  = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	Info     = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
	Location = lipgloss.NewStyle().Foreground(ColorPurple)
	Comment  = lipgloss.NewStyle().Foreground(ColorComment)
)

// NamespaceColors is the palette the debug logger cycles through so that each
// namespace keeps a stable color across lines.
var NamespaceColors = []lipgloss.AdaptiveColor{
	ColorInfo,
	ColorSuccess,
	ColorWarning,
	ColorPurple,
	ColorError,
	ColorComment,
}

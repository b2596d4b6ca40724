package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tbb-tools/tbtools/pkg/styles"
	"github.com/tbb-tools/tbtools/pkg/tty"
)

// LayoutInfoSection renders a "label: value" line with the label padded to
// width so consecutive sections line up.
func LayoutInfoSection(label string, value string, width int) string {
	padded := label + ":"
	if pad := width - lipgloss.Width(padded); pad > 0 {
		padded += strings.Repeat(" ", pad)
	}
	return "  " + applyStyle(styles.Comment, padded) + " " + value
}

// LayoutTitleBox renders title inside a rounded border. Outside a terminal
// the title is underlined with "=" instead.
func LayoutTitleBox(title string, width int) string {
	if !tty.IsStderrTerminal() {
		return title + "\n" + strings.Repeat("=", max(lipgloss.Width(title), 1))
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.ColorInfo).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.ColorInfo).
		Padding(0, 1).
		Width(width).
		Render(title)
}

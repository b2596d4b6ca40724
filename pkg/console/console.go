// Package console formats the user-facing messages both tools print to stderr.
package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tbb-tools/tbtools/pkg/logger"
	"github.com/tbb-tools/tbtools/pkg/styles"
	"github.com/tbb-tools/tbtools/pkg/tty"
)

var consoleLog = logger.New("console:console")

// applyStyle renders text with style only when stderr is a terminal, so that
// CI logs and redirected output stay free of escape sequences.
func applyStyle(style lipgloss.Style, text string) string {
	if tty.IsStderrTerminal() {
		return style.Render(text)
	}
	return text
}

// FormatErrorMessage formats a simple error message.
func FormatErrorMessage(message string) string {
	return applyStyle(styles.Error, "✗ ") + message
}

// FormatWarningMessage formats a warning message.
func FormatWarningMessage(message string) string {
	return applyStyle(styles.Warning, "⚠ ") + message
}

// FormatInfoMessage formats an informational message.
func FormatInfoMessage(message string) string {
	return applyStyle(styles.Info, "ℹ ") + message
}

// FormatSuccessMessage formats a success message.
func FormatSuccessMessage(message string) string {
	return applyStyle(styles.Success, "✓ ") + message
}

// FormatLocationMessage formats a message pointing at a file or directory.
func FormatLocationMessage(message string) string {
	return applyStyle(styles.Location, "📁 ") + message
}

// FormatCommandMessage formats a command about to be executed.
func FormatCommandMessage(command string) string {
	return applyStyle(styles.Info, "⚡ ") + command
}

// FormatListItem formats an indented bullet.
func FormatListItem(item string) string {
	return "  " + applyStyle(styles.Comment, "•") + " " + item
}

// FormatErrorWithSuggestions formats an error followed by a list of suggestions.
func FormatErrorWithSuggestions(message string, suggestions []string) string {
	var b strings.Builder
	b.WriteString(FormatErrorMessage(message))

	if len(suggestions) > 0 {
		b.WriteString("\n\nSuggestions:\n")
		for _, suggestion := range suggestions {
			b.WriteString(FormatListItem(suggestion))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// ToRelativePath converts an absolute path to one relative to the working
// directory when that is shorter to read. Relative paths are returned as is.
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}

	wd, err := os.Getwd()
	if err != nil {
		consoleLog.Printf("Could not get working directory: %v", err)
		return path
	}

	rel, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}
	return rel
}

// FormatPathList formats paths as list items, one per line.
func FormatPathList(paths []string) string {
	lines := make([]string, 0, len(paths))
	for _, p := range paths {
		lines = append(lines, FormatListItem(ToRelativePath(p)))
	}
	return strings.Join(lines, "\n")
}

// FormatCount renders "n noun" with a naive plural.
func FormatCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

//go:build !integration

package console

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatErrorWithSuggestions(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		suggestions []string
		expected    []string
	}{
		{
			name:    "error with suggestions",
			message: "invalid architecture 'aarch64' for platform 'linux'",
			suggestions: []string{
				"Use --arch x86_64",
				"Use --arch i686",
			},
			expected: []string{
				"✗",
				"invalid architecture 'aarch64' for platform 'linux'",
				"Suggestions:",
				"• Use --arch x86_64",
				"• Use --arch i686",
			},
		},
		{
			name:        "error without suggestions",
			message:     "missing emoji asset",
			suggestions: []string{},
			expected: []string{
				"✗",
				"missing emoji asset",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := FormatErrorWithSuggestions(tt.message, tt.suggestions)

			for _, expected := range tt.expected {
				if !strings.Contains(output, expected) {
					t.Errorf("Expected output to contain '%s', but got:\n%s", expected, output)
				}
			}

			if len(tt.suggestions) == 0 && strings.Contains(output, "Suggestions:") {
				t.Errorf("Expected no suggestions section for empty suggestions, got:\n%s", output)
			}
		})
	}
}

func TestFormatMessages(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		icon   string
	}{
		{"error", FormatErrorMessage, "✗"},
		{"warning", FormatWarningMessage, "⚠"},
		{"info", FormatInfoMessage, "ℹ"},
		{"success", FormatSuccessMessage, "✓"},
		{"location", FormatLocationMessage, "📁"},
		{"command", FormatCommandMessage, "⚡"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.format("Lang ga doesn't have all the emoji descriptions!")
			assert.Contains(t, output, "Lang ga doesn't have all the emoji descriptions!")
			assert.Contains(t, output, tt.icon)
		})
	}
}

func TestToRelativePath(t *testing.T) {
	assert.Equal(t, "connectionPane.js", ToRelativePath("connectionPane.js"))
	assert.Equal(t, filepath.Join("a", "b.svg"), ToRelativePath(filepath.Join("a", "b.svg")))

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	abs := filepath.Join(wd, "bridgemoji", "1f4a1.svg")
	assert.Equal(t, filepath.Join("bridgemoji", "1f4a1.svg"), ToRelativePath(abs))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1 asset", FormatCount(1, "asset"))
	assert.Equal(t, "0 assets", FormatCount(0, "asset"))
	assert.Equal(t, "35 languages", FormatCount(35, "language"))
}

func TestLayoutInfoSection(t *testing.T) {
	output := LayoutInfoSection("Binary", "Browser/firefox.exe", 12)
	assert.Contains(t, output, "Binary:")
	assert.Contains(t, output, "Browser/firefox.exe")

	// Labels shorter than the width are padded so values line up.
	short := LayoutInfoSection("URL", "x", 12)
	long := LayoutInfoSection("Binary", "x", 12)
	assert.Equal(t, len(short), len(long))
}

func TestLayoutTitleBox(t *testing.T) {
	output := LayoutTitleBox("Startup test", 40)
	assert.Contains(t, output, "Startup test")
}

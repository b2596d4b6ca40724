//go:build !integration

package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		shell    string
		contains string
	}{
		{shell: "bash", contains: "bash completion V2 for startup-test"},
		{shell: "zsh", contains: "#compdef startup-test"},
		{shell: "fish", contains: "complete -c startup-test"},
		{shell: "powershell", contains: "startup-test"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			root := NewStartupTestCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetErr(&bytes.Buffer{})
			root.SetArgs([]string{"completion", tt.shell})

			require.NoError(t, root.Execute())
			assert.Contains(t, out.String(), tt.contains)
		})
	}
}

func TestCompletionCommandRejectsUnknownShell(t *testing.T) {
	root := NewBridgemojiCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "tcsh"})

	assert.Error(t, root.Execute())
}

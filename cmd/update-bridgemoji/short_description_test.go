//go:build !integration

package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// TestShortDescriptionConsistency checks that Short descriptions follow CLI
// conventions and do not end with punctuation.
func TestShortDescriptionConsistency(t *testing.T) {
	allCommands := append([]*cobra.Command{rootCmd}, rootCmd.Commands()...)

	for _, cmd := range allCommands {
		t.Run("command "+cmd.Name()+" has no trailing punctuation", func(t *testing.T) {
			short := cmd.Short
			if short == "" {
				t.Skip("Command has no Short description")
			}

			lastChar := short[len(short)-1:]
			if lastChar == "." || lastChar == "!" || lastChar == "?" {
				t.Errorf("Command '%s' Short description should not end with punctuation. Got: %q", cmd.Name(), short)
			}
		})
	}
}

// TestLongDescriptionHasExamples checks that the root command documents how
// it is invoked.
func TestLongDescriptionHasExamples(t *testing.T) {
	if !strings.Contains(rootCmd.Long, "Examples:") {
		t.Errorf("Command '%s' Long description should contain an Examples section", rootCmd.Name())
	}
	for _, flag := range []string{"--root", "--config", "twemoji"} {
		if !strings.Contains(rootCmd.Long, flag) {
			t.Errorf("Command '%s' Long description should show %s in its examples", rootCmd.Name(), flag)
		}
	}
}

func TestVersionIsSet(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("rootCmd.Version should be set")
	}
}

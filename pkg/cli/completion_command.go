package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tbb-tools/tbtools/pkg/logger"
)

var completionLog = logger.New("cli:completion")

// NewCompletionCommand creates the completion command. It writes the script
// for the tool it is attached to, so the same command serves both binaries.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [shell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script.

For startup-test the --platform, --arch and --browser values are completed,
with --arch restricted to the architectures of the chosen platform.

Supported shells: bash, zsh, fish, powershell

Examples:
  startup-test completion bash > ~/.bash_completion.d/startup-test
  update-bridgemoji completion zsh > "${fpath[1]}/_update-bridgemoji"
  startup-test completion fish > ~/.config/fish/completions/startup-test.fish`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := args[0]
			root := cmd.Root()
			out := cmd.OutOrStdout()
			completionLog.Printf("Generating %s completion script for %s", shell, root.Name())

			switch shell {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", shell)
			}
		},
	}

	return cmd
}

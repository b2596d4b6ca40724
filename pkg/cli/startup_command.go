package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tbb-tools/tbtools/pkg/console"
	"github.com/tbb-tools/tbtools/pkg/envutil"
	"github.com/tbb-tools/tbtools/pkg/logger"
	"github.com/tbb-tools/tbtools/pkg/nightly"
)

var startupLog = logger.New("cli:startup")

// Crash test helper invoked for every smoke test.
const (
	DefaultPython = "python3"
	DefaultRunner = "testing/mozharness/scripts/does_it_crash.py"
)

// Environment overrides for the launcher.
const (
	BaseURLEnvVar = "TBB_NIGHTLY_BASE_URL"
	RunForEnvVar  = "TBB_STARTUP_TEST_RUN_FOR"
)

// dateFlagLayout is the layout accepted by --date.
const dateFlagLayout = "2006-01-02"

// StartupTestOptions holds everything RunStartupTest needs.
type StartupTestOptions struct {
	Platform string
	Arch     string
	Browser  string

	// Date overrides today's date (YYYY-MM-DD). The nightly of the day
	// before is tested either way.
	Date    string
	BaseURL string
	Python  string
	Runner  string
	RunFor  int
	DryRun  bool
	Verbose bool

	Now    func() time.Time
	Exec   CommandRunner
	Stdout io.Writer
	Stderr io.Writer
}

// NewStartupTestCommand creates the root command of the startup-test tool.
func NewStartupTestCommand() *cobra.Command {
	opts := StartupTestOptions{}

	cmd := &cobra.Command{
		Use:   "startup-test",
		Short: "Download and start yesterday's Tor Browser or Mullvad Browser nightly",
		Long: `Download yesterday's nightly build of Tor Browser or Mullvad Browser and check
that it starts without crashing.

The download URL is computed from the platform, architecture and browser, and
handed to the crash test helper together with the path of the browser
executable inside the archive. The helper runs the browser for 30 seconds.

Valid architectures depend on the platform:
  linux, windows: x86_64, i686
  macos:          x86_64, aarch64 (universal build, not part of the URL)

Environment:
  TBB_NIGHTLY_BASE_URL       override the nightly download location
  TBB_STARTUP_TEST_RUN_FOR   seconds the browser is kept running (1-3600)
  DEBUG                      enable debug logs, e.g. DEBUG=nightly:*,cli:*

Examples:
  startup-test --platform linux --arch x86_64 --browser tor
  startup-test --platform macos --arch aarch64 --browser mullvad
  startup-test --platform windows --arch i686 --browser tor --dry-run`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			return RunStartupTest(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Platform, "platform", "", "Platform of the build (linux, macos or windows)")
	cmd.Flags().StringVar(&opts.Arch, "arch", "", "Architecture of the build, validated against --platform")
	cmd.Flags().StringVar(&opts.Browser, "browser", "", "Browser to test (tor or mullvad)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "Pretend today is this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Python, "python", DefaultPython, "Python interpreter running the crash test helper")
	cmd.Flags().StringVar(&opts.Runner, "runner", DefaultRunner, "Path of the crash test helper script")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Print the build that would be tested without starting it")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Print the computed build before starting the test")

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Err: err}
	})

	registerStartupCompletions(cmd)
	cmd.AddCommand(NewCompletionCommand())
	return cmd
}

func registerStartupCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("platform", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return stringValues(nightly.Platforms), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("arch", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		platform, _ := cmd.Flags().GetString("platform")
		if platform == "" {
			return []string{string(nightly.ArchX86_64), string(nightly.ArchI686), string(nightly.ArchAarch64)}, cobra.ShellCompDirectiveNoFileComp
		}
		return stringValues(nightly.ValidArchitectures(nightly.Platform(platform))), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("browser", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return stringValues(nightly.Browsers), cobra.ShellCompDirectiveNoFileComp
	})
}

// RunStartupTest validates the target, computes the nightly build and runs the
// crash test helper against it once. Nothing is started when validation fails.
// The helper's own exit status is logged but not turned into an error.
func RunStartupTest(ctx context.Context, opts StartupTestOptions) error {
	opts = withStartupDefaults(opts)
	startupLog.Printf("Starting startup test: platform=%s arch=%s browser=%s dryRun=%v", opts.Platform, opts.Arch, opts.Browser, opts.DryRun)

	target := nightly.Target{
		Platform: nightly.Platform(opts.Platform),
		Arch:     nightly.Architecture(opts.Arch),
		Browser:  nightly.Browser(opts.Browser),
	}
	if err := target.Validate(); err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}

	now, err := resolveNow(opts)
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}

	build, err := nightly.NewBuild(target, now, opts.BaseURL)
	if err != nil {
		return err
	}

	args := append([]string{opts.Runner}, nightly.SmokeTestArgs(build, opts.RunFor)...)

	if opts.DryRun {
		printBuild(opts.Stdout, build, opts.Python, args)
		return nil
	}

	if ci := DetectCI(); opts.Verbose || ci != "" {
		if ci != "" {
			fmt.Fprintln(opts.Stderr, console.FormatInfoMessage("Running in "+ci))
		}
		printBuild(opts.Stderr, build, opts.Python, args)
	}

	if err := opts.Exec.Run(ctx, opts.Python, args...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			startupLog.Printf("Startup test interrupted: %v", ctxErr)
			return ctxErr
		}
		if isChildExit(err) {
			startupLog.Printf("Crash test helper exited unsuccessfully: %v", err)
			return nil
		}
		return fmt.Errorf("failed to start crash test helper: %w", err)
	}

	startupLog.Print("Crash test helper finished")
	return nil
}

func withStartupDefaults(opts StartupTestOptions) StartupTestOptions {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Exec == nil {
		opts.Exec = ExecRunner{}
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Python == "" {
		opts.Python = DefaultPython
	}
	if opts.Runner == "" {
		opts.Runner = DefaultRunner
	}
	if opts.BaseURL == "" {
		opts.BaseURL = envutil.GetURLFromEnv(BaseURLEnvVar, nightly.DefaultBaseURL, startupLog)
	}
	if opts.RunFor == 0 {
		opts.RunFor = envutil.GetIntFromEnv(RunForEnvVar, nightly.DefaultRunFor, 1, 3600, startupLog)
	}
	return opts
}

func resolveNow(opts StartupTestOptions) (time.Time, error) {
	if opts.Date == "" {
		return opts.Now(), nil
	}
	day, err := time.ParseInLocation(dateFlagLayout, opts.Date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("argument --date: invalid date '%s' (expected YYYY-MM-DD)", opts.Date)
	}
	startupLog.Printf("Using --date override: %s", day.Format(dateFlagLayout))
	return day, nil
}

func printBuild(w io.Writer, build *nightly.Build, python string, args []string) {
	const width = 9
	fmt.Fprintln(w, console.LayoutInfoSection("Target", build.Target.String(), width))
	fmt.Fprintln(w, console.LayoutInfoSection("Nightly", build.Date, width))
	fmt.Fprintln(w, console.LayoutInfoSection("URL", build.URL, width))
	fmt.Fprintln(w, console.LayoutInfoSection("Binary", build.BinaryPath, width))
	fmt.Fprintln(w, console.FormatCommandMessage(python+" "+strings.Join(args, " ")))
}

func stringValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

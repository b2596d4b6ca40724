package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tbb-tools/tbtools/pkg/bridgemoji"
	"github.com/tbb-tools/tbtools/pkg/console"
	"github.com/tbb-tools/tbtools/pkg/envutil"
	"github.com/tbb-tools/tbtools/pkg/gitutil"
	"github.com/tbb-tools/tbtools/pkg/logger"
)

var bridgemojiLog = logger.New("cli:bridgemoji")

// WorkersEnvVar sets the default number of languages parsed at once.
const WorkersEnvVar = "TBB_BRIDGEMOJI_WORKERS"

// BridgemojiOptions holds everything RunBridgemoji needs.
type BridgemojiOptions struct {
	TwemojiDir string
	CLDRDir    string

	// Root is the browser source tree. When empty it is searched for from the
	// working directory.
	Root       string
	ConfigPath string
	// EmojiList reads the emoji from a JSON array file instead of the pane
	// script.
	EmojiList         string
	Workers           int
	ContinueOnMissing bool
	Verbose           bool

	Stderr io.Writer
}

// NewBridgemojiCommand creates the root command of the update-bridgemoji tool.
func NewBridgemojiCommand() *cobra.Command {
	opts := BridgemojiOptions{}

	cmd := &cobra.Command{
		Use:   "update-bridgemoji twemoji-svg-dir cldr-dir",
		Short: "Update the bridge emoji artwork and their localized descriptions",
		Long: `Update the bridge emoji artwork from Twemoji and their localized descriptions
from the Unicode CLDR.

The emoji list is read from the makeBridgeId function of connectionPane.js.
The bridgemoji directory next to it is emptied and refilled with the SVG file
of every emoji, then the text-to-speech annotation of each emoji is collected
for every shipped language and written to bridgemoji-annotations.json.

Get the SVG files from twe-svg.zip of https://github.com/mozilla/twemoji-colr
and a checkout of https://github.com/unicode-org/cldr.git.

Environment:
  TBB_BRIDGEMOJI_WORKERS   number of languages parsed at once (1-64)
  DEBUG                    enable debug logs, e.g. DEBUG=bridgemoji:*

Examples:
  update-bridgemoji ~/twemoji/svg ~/src/cldr
  update-bridgemoji --root ~/src/tor-browser ~/twemoji/svg ~/src/cldr
  update-bridgemoji --config bridgemoji.yml --workers 8 ~/twemoji/svg ~/src/cldr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return &ExitError{
					Code: ExitFailure,
					Err:  fmt.Errorf("usage: %s twemoji-svg-dir cldr-dir", cmd.Name()),
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.TwemojiDir = args[0]
			opts.CLDRDir = args[1]
			if !cmd.Flags().Changed("workers") {
				opts.Workers = 0
			}
			opts.Stderr = cmd.ErrOrStderr()
			return RunBridgemoji(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", "", "Browser source tree (default: found from the current directory)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&opts.EmojiList, "emoji-list", "", "Read the emoji from a JSON array file instead of connectionPane.js")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "j", 1, "Number of languages parsed at once")
	cmd.Flags().BoolVar(&opts.ContinueOnMissing, "continue-on-missing", false, "Skip emoji without artwork instead of failing")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "List every copied asset")

	_ = cmd.MarkFlagDirname("root")
	_ = cmd.MarkFlagFilename("config", "yml", "yaml")
	_ = cmd.MarkFlagFilename("emoji-list", "json")

	cmd.AddCommand(NewCompletionCommand())
	return cmd
}

// RunBridgemoji runs the four synchronization stages in order: read the emoji
// list, refresh the artwork, collect the annotations and write them out. A
// failure in one stage stops the run before the next stage starts.
func RunBridgemoji(ctx context.Context, opts BridgemojiOptions) error {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	warn := func(msg string) {
		fmt.Fprintln(opts.Stderr, console.FormatWarningMessage(msg))
	}

	if err := ValidateInputDirectory(opts.TwemojiDir, "twemoji-svg-dir"); err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}
	if err := ValidateInputDirectory(opts.CLDRDir, "cldr-dir"); err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}

	cfg, err := loadBridgemojiConfig(opts)
	if err != nil {
		return err
	}

	root, err := resolveSourceRoot(opts.Root, cfg.PanelDir)
	if err != nil {
		return err
	}
	paths := cfg.Resolve(root)
	bridgemojiLog.Printf("Resolved paths: %+v", paths)

	// Stage 1: emoji list.
	emojis, err := paths.Source().Emojis()
	if err != nil {
		return err
	}
	set, err := bridgemoji.NewEmojiSet(emojis)
	if err != nil {
		var unsupported *bridgemoji.UnsupportedEmojiError
		if errors.As(err, &unsupported) {
			return &ExitError{Code: ExitUnsupportedEmoji, Err: err}
		}
		return err
	}
	bridgemojiLog.Printf("Read %d emoji", set.Len())

	// Stage 2: artwork.
	synced, err := bridgemoji.SyncAssets(opts.TwemojiDir, paths.AssetsDir, set, bridgemoji.SyncOptions{
		ContinueOnMissing: cfg.ContinueOnMissing,
		Warn:              warn,
	})
	if err != nil {
		return err
	}
	if opts.Verbose {
		fmt.Fprintln(opts.Stderr, console.FormatPathList(synced.Copied))
	}
	fmt.Fprintln(opts.Stderr, console.FormatSuccessMessage(
		fmt.Sprintf("Copied %s to %s", console.FormatCount(len(synced.Copied), "asset"), console.ToRelativePath(paths.AssetsDir))))

	// Stage 3: annotations.
	extracted, err := bridgemoji.ExtractAnnotations(ctx, opts.CLDRDir, cfg.Languages, set, bridgemoji.ExtractOptions{
		Workers: cfg.Workers,
		Warn:    warn,
	})
	if err != nil {
		return err
	}
	bridgemojiLog.Print(extracted.Describe())

	// Stage 4: output.
	extracted.Table.Finalize(cfg.Languages, cfg.Renames)
	if err := bridgemoji.WriteAnnotations(paths.OutputFile, extracted.Table); err != nil {
		return err
	}
	fmt.Fprintln(opts.Stderr, console.FormatLocationMessage(
		fmt.Sprintf("Wrote annotations for %s to %s",
			console.FormatCount(len(extracted.Table.Languages()), "language"), console.ToRelativePath(paths.OutputFile))))

	return nil
}

// resolveSourceRoot returns root when set. Otherwise it looks for the browser
// tree around the working directory and falls back to the working directory.
func resolveSourceRoot(root, panelDir string) (string, error) {
	if root != "" {
		return root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	if found, ok := gitutil.FindSourceRoot(wd, panelDir); ok {
		bridgemojiLog.Printf("Using source root %s", found)
		return found, nil
	}
	return wd, nil
}

// loadBridgemojiConfig layers, from lowest to highest priority: defaults, the
// workers environment variable, the config file and the command line flags.
func loadBridgemojiConfig(opts BridgemojiOptions) (bridgemoji.Config, error) {
	cfg := bridgemoji.DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := bridgemoji.LoadConfig(opts.ConfigPath)
		if err != nil {
			return bridgemoji.Config{}, err
		}
		cfg = loaded
	}

	if cfg.Workers == 0 {
		cfg.Workers = envutil.GetIntFromEnv(WorkersEnvVar, 1, 1, 64, bridgemojiLog)
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	if opts.ContinueOnMissing {
		cfg.ContinueOnMissing = true
	}
	if opts.EmojiList != "" {
		abs, err := filepath.Abs(opts.EmojiList)
		if err != nil {
			return bridgemoji.Config{}, fmt.Errorf("failed to resolve %s: %w", opts.EmojiList, err)
		}
		cfg.EmojiList = abs
	}

	bridgemojiLog.Printf("Effective config: languages=%d workers=%d continueOnMissing=%v", len(cfg.Languages), cfg.Workers, cfg.ContinueOnMissing)
	return cfg, nil
}

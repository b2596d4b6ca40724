package bridgemoji

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tbb-tools/tbtools/pkg/logger"
)

var assetsLog = logger.New("bridgemoji:assets")

// ErrMissingAsset is returned when the artwork for an emoji is not in the
// source directory.
var ErrMissingAsset = errors.New("missing emoji asset")

// SyncOptions tunes SyncAssets.
type SyncOptions struct {
	// ContinueOnMissing skips emoji without artwork instead of failing.
	ContinueOnMissing bool
	// Warn receives one message per skipped emoji. May be nil.
	Warn func(msg string)
}

// SyncResult lists what SyncAssets did.
type SyncResult struct {
	Removed []string
	Copied  []string
	Missing []string
}

// SyncAssets makes destDir hold exactly the artwork of the emoji in set,
// copied from srcDir. destDir is created if needed and every entry already in
// it is removed.
//
// All source files are checked before destDir is touched, so a missing asset
// leaves the destination unchanged unless opts.ContinueOnMissing is set.
func SyncAssets(srcDir, destDir string, set *EmojiSet, opts SyncOptions) (*SyncResult, error) {
	names := set.AssetNames()
	assetsLog.Printf("Syncing %d assets from %s to %s", len(names), srcDir, destDir)

	result := &SyncResult{}
	toCopy := make([]string, 0, len(names))
	for _, name := range names {
		src := filepath.Join(srcDir, name)
		info, err := os.Stat(src)
		if err == nil && info.Mode().IsRegular() {
			toCopy = append(toCopy, name)
			continue
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat %s: %w", src, err)
		}
		if !opts.ContinueOnMissing {
			return nil, fmt.Errorf("%w: %s", ErrMissingAsset, src)
		}
		result.Missing = append(result.Missing, name)
		if opts.Warn != nil {
			opts.Warn(fmt.Sprintf("Skipping %s: not found in %s", name, srcDir))
		}
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", destDir, err)
	}

	removed, err := clearDir(destDir)
	if err != nil {
		return nil, err
	}
	result.Removed = removed

	for _, name := range toCopy {
		if err := copyFile(filepath.Join(srcDir, name), filepath.Join(destDir, name)); err != nil {
			return nil, err
		}
		result.Copied = append(result.Copied, name)
	}

	assetsLog.Printf("Removed %d entries, copied %d assets, skipped %d", len(result.Removed), len(result.Copied), len(result.Missing))
	return result, nil
}

func clearDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	removed := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed = append(removed, entry.Name())
	}
	return removed, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

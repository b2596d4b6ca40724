//go:build !integration

package bridgemoji

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbb-tools/tbtools/pkg/testutil"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names
}

func twemojiDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := testutil.TempDir(t, "twemoji-*")
	for _, name := range names {
		testutil.WriteFile(t, dir, name, "<svg id=\""+name+"\"/>")
	}
	return dir
}

func TestSyncAssets(t *testing.T) {
	src := twemojiDir(t, "1f47d.svg", "1f4a1.svg", "1f408.svg", "1f600.svg")
	dest := filepath.Join(testutil.TempDir(t, "panel-*"), "bridgemoji")
	testutil.WriteFile(t, dest, "stale.svg", "old")
	testutil.WriteFile(t, dest, "nested/old.svg", "old")

	set := mustEmojiSet(t, alien, bulb)
	result, err := SyncAssets(src, dest, set, SyncOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"1f47d.svg", "1f4a1.svg"}, listDir(t, dest))
	assert.Equal(t, []string{"1f47d.svg", "1f4a1.svg"}, result.Copied)
	assert.ElementsMatch(t, []string{"stale.svg", "nested"}, result.Removed)
	assert.Empty(t, result.Missing)

	content, err := os.ReadFile(filepath.Join(dest, "1f4a1.svg"))
	require.NoError(t, err)
	assert.Equal(t, `<svg id="1f4a1.svg"/>`, string(content))
}

func TestSyncAssetsCreatesDestination(t *testing.T) {
	src := twemojiDir(t, "1f408.svg")
	dest := filepath.Join(testutil.TempDir(t, "panel-*"), "a", "b", "bridgemoji")

	_, err := SyncAssets(src, dest, mustEmojiSet(t, cat), SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1f408.svg"}, listDir(t, dest))
}

func TestSyncAssetsMissingLeavesDestinationUntouched(t *testing.T) {
	src := twemojiDir(t, "1f47d.svg")
	dest := testutil.TempDir(t, "bridgemoji-*")
	testutil.WriteFile(t, dest, "keep.svg", "old")

	_, err := SyncAssets(src, dest, mustEmojiSet(t, alien, bulb), SyncOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAsset)
	assert.Contains(t, err.Error(), "1f4a1.svg")

	assert.Equal(t, []string{"keep.svg"}, listDir(t, dest))
}

func TestSyncAssetsContinueOnMissing(t *testing.T) {
	src := twemojiDir(t, "1f47d.svg", "1f408.svg")
	dest := testutil.TempDir(t, "bridgemoji-*")
	testutil.WriteFile(t, dest, "keep.svg", "old")

	var warnings []string
	result, err := SyncAssets(src, dest, mustEmojiSet(t, alien, bulb, cat), SyncOptions{
		ContinueOnMissing: true,
		Warn:              func(msg string) { warnings = append(warnings, msg) },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1f408.svg", "1f47d.svg"}, listDir(t, dest))
	assert.Equal(t, []string{"1f4a1.svg"}, result.Missing)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "1f4a1.svg")
}

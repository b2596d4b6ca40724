//go:build !integration

package bridgemoji

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbb-tools/tbtools/pkg/testutil"
)

func TestParsePaneScript(t *testing.T) {
	emojis, err := ParsePaneScript(paneScript(alien, bulb, cat))
	require.NoError(t, err)
	assert.Equal(t, []string{alien, bulb, cat}, emojis)
}

func TestParsePaneScriptIgnoresEarlierArrays(t *testing.T) {
	script := "const emojis = [\"x\", \"y\"];\n" + paneScript(bulb)
	emojis, err := ParsePaneScript(script)
	require.NoError(t, err)
	assert.Equal(t, []string{bulb}, emojis)
}

func TestParsePaneScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr error
	}{
		{
			name:    "missing function",
			script:  "const emojis = [\"💡\"];",
			wantErr: ErrAnchorNotFound,
		},
		{
			name:    "missing variable",
			script:  "function makeBridgeId(bridgeString) {\n  return [];\n}\n",
			wantErr: ErrAnchorNotFound,
		},
		{
			name:    "missing closing bracket",
			script:  "function makeBridgeId(bridgeString) {\n  const emojis = [\"💡\",\n",
			wantErr: ErrAnchorNotFound,
		},
		{
			name:    "single quoted strings",
			script:  "function makeBridgeId(bridgeString) {\n  const emojis = ['💡', '🐈'];\n}\n",
			wantErr: ErrMalformedList,
		},
		{
			name:    "not an array",
			script:  "function makeBridgeId(bridgeString) {\n  const emojis = new Array(3); x[0]\n}\n",
			wantErr: ErrMalformedList,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePaneScript(tt.script)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestPaneScriptSource(t *testing.T) {
	dir := testutil.TempDir(t, "pane-*")
	path := testutil.WriteFile(t, dir, "connectionPane.js", paneScript(cat, bulb))

	emojis, err := PaneScriptSource{Path: path}.Emojis()
	require.NoError(t, err)
	assert.Equal(t, []string{cat, bulb}, emojis)

	_, err = PaneScriptSource{Path: dir + "/missing.js"}.Emojis()
	require.Error(t, err)
}

func TestJSONListSource(t *testing.T) {
	dir := testutil.TempDir(t, "list-*")
	path := testutil.WriteFile(t, dir, "emojis.json", `["`+alien+`", "`+bulb+`"]`)

	var source EmojiListSource = JSONListSource{Path: path}
	emojis, err := source.Emojis()
	require.NoError(t, err)
	assert.Equal(t, []string{alien, bulb}, emojis)

	bad := testutil.WriteFile(t, dir, "bad.json", `{"emojis": []}`)
	_, err = JSONListSource{Path: bad}.Emojis()
	assert.ErrorIs(t, err, ErrMalformedList)

	null := testutil.WriteFile(t, dir, "null.json", `null`)
	_, err = JSONListSource{Path: null}.Emojis()
	assert.ErrorIs(t, err, ErrMalformedList)
}

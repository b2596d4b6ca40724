// Package bridgemoji keeps the emoji used to represent bridges in sync with
// their Twemoji artwork and their localized CLDR descriptions.
package bridgemoji

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tbb-tools/tbtools/pkg/logger"
)

var sourceLog = logger.New("bridgemoji:source")

var (
	// ErrAnchorNotFound is returned when the pane script does not contain the
	// markers around the emoji array.
	ErrAnchorNotFound = errors.New("emoji list anchor not found")

	// ErrMalformedList is returned when the emoji array is not a JSON array
	// of strings.
	ErrMalformedList = errors.New("malformed emoji list")
)

// Markers locating the emoji array inside connectionPane.js.
const (
	MakeBridgeIDAnchor = "function makeBridgeId(bridgeString) {"
	EmojisVarAnchor    = "const emojis = "
)

// EmojiListSource produces the ordered list of bridge emoji.
type EmojiListSource interface {
	Emojis() ([]string, error)
}

// PaneScriptSource reads the emoji array embedded in the connection
// preferences pane script.
type PaneScriptSource struct {
	Path string
}

// Emojis implements EmojiListSource.
func (s PaneScriptSource) Emojis() ([]string, error) {
	sourceLog.Printf("Reading emoji list from pane script %s", s.Path)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pane script: %w", err)
	}
	emojis, err := ParsePaneScript(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return emojis, nil
}

// ParsePaneScript extracts the array assigned to "const emojis" inside
// makeBridgeId. The array must be valid JSON once trailing commas and
// whitespace are removed.
func ParsePaneScript(script string) ([]string, error) {
	fnOffset := strings.Index(script, MakeBridgeIDAnchor)
	if fnOffset < 0 {
		return nil, fmt.Errorf("%w: %q", ErrAnchorNotFound, MakeBridgeIDAnchor)
	}
	rest := script[fnOffset:]

	varOffset := strings.Index(rest, EmojisVarAnchor)
	if varOffset < 0 {
		return nil, fmt.Errorf("%w: %q after %q", ErrAnchorNotFound, EmojisVarAnchor, MakeBridgeIDAnchor)
	}
	rest = rest[varOffset+len(EmojisVarAnchor):]

	closeOffset := strings.Index(rest, "]")
	if closeOffset < 0 {
		return nil, fmt.Errorf("%w: closing \"]\" of the emoji array", ErrAnchorNotFound)
	}

	literal := strings.Trim(rest[:closeOffset], "\t\r\n ,") + "]"
	sourceLog.Printf("Extracted emoji array literal of %d bytes", len(literal))

	return decodeList([]byte(literal))
}

// JSONListSource reads the emoji list from a file holding a plain JSON array.
type JSONListSource struct {
	Path string
}

// Emojis implements EmojiListSource.
func (s JSONListSource) Emojis() ([]string, error) {
	sourceLog.Printf("Reading emoji list from JSON file %s", s.Path)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read emoji list: %w", err)
	}
	emojis, err := decodeList(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return emojis, nil
}

func decodeList(data []byte) ([]string, error) {
	var emojis []string
	if err := json.Unmarshal(data, &emojis); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedList, err)
	}
	if emojis == nil {
		return nil, fmt.Errorf("%w: expected an array", ErrMalformedList)
	}
	return emojis, nil
}

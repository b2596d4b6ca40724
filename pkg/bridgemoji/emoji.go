package bridgemoji

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// VariationSelector16 requests the emoji (colored) presentation of the
// preceding character. It is the only second code point an entry may carry.
const VariationSelector16 = '\uFE0F'

// UnsupportedEmojiError is returned for list entries that are not a single
// significant code point.
type UnsupportedEmojiError struct {
	Emoji  string
	Index  int
	Reason string
}

func (e *UnsupportedEmojiError) Error() string {
	return fmt.Sprintf("Unsupported emoji %s (entry %d): %s", e.Emoji, e.Index, e.Reason)
}

// EmojiSet is the ordered emoji list together with the code point each entry
// stands for.
type EmojiSet struct {
	Emojis     []string
	Codepoints []rune

	index map[rune]int
}

// NewEmojiSet checks that every entry is one code point, optionally followed
// by U+FE0F, and records that code point.
func NewEmojiSet(emojis []string) (*EmojiSet, error) {
	set := &EmojiSet{
		Emojis:     emojis,
		Codepoints: make([]rune, 0, len(emojis)),
		index:      make(map[rune]int, len(emojis)),
	}

	for i, e := range emojis {
		cp, err := significantCodepoint(e)
		if err != nil {
			return nil, &UnsupportedEmojiError{Emoji: e, Index: i, Reason: err.Error()}
		}
		set.Codepoints = append(set.Codepoints, cp)
		// The first entry wins when a code point is listed twice.
		if _, seen := set.index[cp]; !seen {
			set.index[cp] = i
		}
	}

	return set, nil
}

func significantCodepoint(e string) (rune, error) {
	if !utf8.ValidString(e) {
		return 0, errors.New("invalid UTF-8")
	}
	runes := []rune(e)
	switch {
	case len(runes) == 0:
		return 0, errors.New("empty entry")
	case len(runes) > 2, len(runes) == 2 && runes[1] != VariationSelector16:
		return 0, errors.New("too many codepoints")
	}
	return runes[0], nil
}

// Len returns the number of entries, duplicates included.
func (s *EmojiSet) Len() int {
	return len(s.Emojis)
}

// Lookup returns the list entry for cp.
func (s *EmojiSet) Lookup(cp rune) (string, bool) {
	i, ok := s.index[cp]
	if !ok {
		return "", false
	}
	return s.Emojis[i], true
}

// AssetName is the Twemoji file name for cp: lowercase hex, no padding.
func AssetName(cp rune) string {
	return fmt.Sprintf("%x.svg", cp)
}

// AssetNames returns the file names of the artwork for every code point, in
// list order and without duplicates.
func (s *EmojiSet) AssetNames() []string {
	seen := make(map[rune]bool, len(s.Codepoints))
	names := make([]string, 0, len(s.Codepoints))
	for _, cp := range s.Codepoints {
		if seen[cp] {
			continue
		}
		seen[cp] = true
		names = append(names, AssetName(cp))
	}
	return names
}

package bridgemoji

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tbb-tools/tbtools/pkg/logger"
)

var tableLog = logger.New("bridgemoji:table")

// DefaultRenames maps CLDR locale names to the locale codes the browser uses.
var DefaultRenames = map[string]string{
	"zh":      "zh-CN",
	"zh_Hant": "zh-TW",
}

// Annotations maps a list entry to its localized description.
type Annotations map[string]string

// AnnotationTable holds the descriptions of every language. It serializes
// languages in insertion order and descriptions in emoji list order.
type AnnotationTable struct {
	set     *EmojiSet
	order   []string
	entries map[string]Annotations
}

// NewAnnotationTable creates an empty table for the emoji in set.
func NewAnnotationTable(set *EmojiSet) *AnnotationTable {
	return &AnnotationTable{
		set:     set,
		entries: make(map[string]Annotations),
	}
}

// Set stores the descriptions of lang, appending lang if it is new.
func (t *AnnotationTable) Set(lang string, a Annotations) {
	if a == nil {
		a = Annotations{}
	}
	if _, ok := t.entries[lang]; !ok {
		t.order = append(t.order, lang)
	}
	t.entries[lang] = a
}

// Get returns the descriptions of lang.
func (t *AnnotationTable) Get(lang string) (Annotations, bool) {
	a, ok := t.entries[lang]
	return a, ok
}

// Languages returns the language keys in serialization order.
func (t *AnnotationTable) Languages() []string {
	return slices.Clone(t.order)
}

// Rename moves the descriptions of from to the key to, which is placed last.
// It reports whether from was present.
func (t *AnnotationTable) Rename(from, to string) bool {
	a, ok := t.entries[from]
	if !ok {
		return false
	}
	delete(t.entries, from)
	t.order = slices.DeleteFunc(t.order, func(l string) bool { return l == from || l == to })
	t.order = append(t.order, to)
	t.entries[to] = a
	return true
}

// Finalize applies renames in the order of langs, so output is stable. Keys
// without a rename are left alone.
func (t *AnnotationTable) Finalize(langs []string, renames map[string]string) {
	for _, from := range langs {
		to, ok := renames[from]
		if !ok {
			continue
		}
		if t.Rename(from, to) {
			tableLog.Printf("Renamed language %s to %s", from, to)
		}
	}
}

// MarshalJSON implements json.Marshaler. Non-ASCII and HTML characters are
// written literally.
func (t *AnnotationTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, lang := range t.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, lang); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := t.writeRecord(&buf, t.entries[lang]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (t *AnnotationTable) writeRecord(buf *bytes.Buffer, a Annotations) error {
	buf.WriteByte('{')
	first := true
	written := make(map[string]bool, len(a))
	for _, emoji := range t.keyOrder(a) {
		if written[emoji] {
			continue
		}
		written[emoji] = true
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeString(buf, emoji); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeString(buf, a[emoji]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// keyOrder lists the keys of a in emoji list order, followed by any key the
// list does not know about in sorted order.
func (t *AnnotationTable) keyOrder(a Annotations) []string {
	keys := make([]string, 0, len(a))
	known := make(map[string]bool, len(a))
	if t.set != nil {
		for _, emoji := range t.set.Emojis {
			if _, ok := a[emoji]; ok {
				keys = append(keys, emoji)
				known[emoji] = true
			}
		}
	}
	var extra []string
	for k := range a {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// EncodeAnnotations renders t as two-space indented JSON with a trailing
// newline.
func EncodeAnnotations(t *AnnotationTable) ([]byte, error) {
	compact, err := t.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// WriteAnnotations writes t to path, replacing any previous content.
func WriteAnnotations(path string, t *AnnotationTable) error {
	data, err := EncodeAnnotations(t)
	if err != nil {
		return fmt.Errorf("failed to encode annotations: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	tableLog.Printf("Wrote %d bytes of annotations for %d languages to %s", len(data), len(t.order), path)
	return nil
}

package bridgemoji

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/sourcegraph/conc/pool"
	"github.com/tbb-tools/tbtools/pkg/logger"
)

var annotationsLog = logger.New("bridgemoji:annotations")

// TTSType marks the CLDR annotation holding the spoken description of a
// character, as opposed to its search keywords.
const TTSType = "tts"

// Languages are the CLDR locales the bridge emoji descriptions are shipped in.
// "nb" is left out because its annotation file is empty.
var Languages = []string{
	"ar", "ca", "cs", "da", "de", "el", "en", "es", "fa", "fr",
	"ga", "he", "hu", "id", "is", "it", "ja", "ka", "ko", "lt",
	"mk", "ms", "my", "nl", "pl", "pt", "ro", "ru", "sv", "th",
	"tr", "uk", "vi",
	"zh",      // zh-CN, zh-hans
	"zh_Hant", // zh-TW, zh-hant
}

// AnnotationPath is the CLDR file holding the annotations for lang.
func AnnotationPath(cldrDir, lang string) string {
	return filepath.Join(cldrDir, "common", "annotations", lang+".xml")
}

type annotationElement struct {
	CP   string `xml:"cp,attr"`
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

// ParseAnnotations reads a CLDR annotations document and returns the tts
// descriptions of the emoji in set, keyed by their list entry.
func ParseAnnotations(r io.Reader, set *EmojiSet) (Annotations, error) {
	record := make(Annotations)
	dec := xml.NewDecoder(r)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "annotation" {
			continue
		}

		var ann annotationElement
		if err := dec.DecodeElement(&ann, &start); err != nil {
			return nil, err
		}
		if utf8.RuneCountInString(ann.CP) != 1 {
			continue
		}
		cp, _ := utf8.DecodeRuneInString(ann.CP)
		emoji, ok := set.Lookup(cp)
		if !ok || ann.Type != TTSType {
			continue
		}
		if ann.Text == "" {
			annotationsLog.Printf("Ignoring empty tts annotation for %U", cp)
			continue
		}
		record[emoji] = ann.Text
	}

	return record, nil
}

// ReadLanguage parses the annotation file of lang under cldrDir.
func ReadLanguage(cldrDir, lang string, set *EmojiSet) (Annotations, error) {
	path := AnnotationPath(cldrDir, lang)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotations for %s: %w", lang, err)
	}
	defer f.Close()

	record, err := ParseAnnotations(f, set)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	annotationsLog.Printf("Read %d/%d descriptions for %s", len(record), set.Len(), lang)
	return record, nil
}

// ExtractOptions tunes ExtractAnnotations.
type ExtractOptions struct {
	// Workers bounds how many languages are parsed at once. Values below 1
	// mean one at a time.
	Workers int
	// Warn receives one message per language missing descriptions. May be nil.
	Warn func(msg string)
}

// ExtractResult is the outcome of ExtractAnnotations.
type ExtractResult struct {
	Table *AnnotationTable
	// Incomplete lists, in language order, the languages that do not
	// describe every emoji.
	Incomplete []string
}

type languageRecord struct {
	lang   string
	record Annotations
}

// ExtractAnnotations reads the descriptions of every emoji in set for each
// language. A language that lacks some descriptions is reported through
// opts.Warn and kept with what it has; a file that cannot be read or parsed
// aborts the extraction.
func ExtractAnnotations(ctx context.Context, cldrDir string, langs []string, set *EmojiSet, opts ExtractOptions) (*ExtractResult, error) {
	workers := max(opts.Workers, 1)
	annotationsLog.Printf("Extracting annotations for %d languages with %d worker(s)", len(langs), workers)

	p := pool.NewWithResults[languageRecord]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(workers)

	for _, lang := range langs {
		p.Go(func(ctx context.Context) (languageRecord, error) {
			if err := ctx.Err(); err != nil {
				return languageRecord{}, err
			}
			record, err := ReadLanguage(cldrDir, lang, set)
			if err != nil {
				return languageRecord{}, err
			}
			return languageRecord{lang: lang, record: record}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	byLang := make(map[string]Annotations, len(results))
	for _, r := range results {
		byLang[r.lang] = r.record
	}

	out := &ExtractResult{Table: NewAnnotationTable(set)}
	for _, lang := range langs {
		record := byLang[lang]
		out.Table.Set(lang, record)
		if len(record) != set.Len() {
			out.Incomplete = append(out.Incomplete, lang)
			if opts.Warn != nil {
				opts.Warn(IncompleteLanguageMessage(lang))
			}
		}
	}

	return out, nil
}

// IncompleteLanguageMessage is the warning printed for a language that does
// not describe every emoji.
func IncompleteLanguageMessage(lang string) string {
	return fmt.Sprintf("Lang %s doesn't have all the emoji descriptions!", lang)
}

// Describe returns a short human summary of r.
func (r *ExtractResult) Describe() string {
	if len(r.Incomplete) == 0 {
		return fmt.Sprintf("%d languages fully described", len(r.Table.Languages()))
	}
	return fmt.Sprintf("%d languages, incomplete: %s", len(r.Table.Languages()), strings.Join(r.Incomplete, ", "))
}

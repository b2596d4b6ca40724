//go:build !integration

package bridgemoji

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tbb-tools/tbtools/pkg/testutil"
)

const (
	alien = "\U0001F47D\uFE0F"
	bulb  = "\U0001F4A1"
	cat   = "\U0001F408"
)

// paneScript returns a connectionPane.js excerpt declaring emojis the way the
// real file does, trailing comma included.
func paneScript(emojis ...string) string {
	var b strings.Builder
	b.WriteString("\"use strict\";\n\nconst { TorSettings } = ChromeUtils.importESModule(\"resource://gre/modules/TorSettings.sys.mjs\");\n\n")
	b.WriteString("function makeBridgeId(bridgeString) {\n")
	b.WriteString("  // JS uses UTF-16. While most of these emojis are surrogate pairs, a few\n")
	b.WriteString("  // ones fit one UTF-16 character.\n")
	b.WriteString("  const emojis = [\n")
	for _, e := range emojis {
		fmt.Fprintf(&b, "    %q,\n", e)
	}
	b.WriteString("  ];\n")
	b.WriteString("  const bytes = new TextEncoder().encode(bridgeString);\n")
	b.WriteString("  return [emojis[bytes[0] % emojis.length]];\n")
	b.WriteString("}\n")
	return b.String()
}

type tts struct {
	cp   string
	text string
}

// cldrAnnotations renders a CLDR annotations document. Every entry gets a
// keyword annotation and a tts one, like the real data set.
func cldrAnnotations(lang string, entries ...tts) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n")
	b.WriteString("<!DOCTYPE ldml SYSTEM \"../../common/dtd/ldml.dtd\">\n")
	b.WriteString("<ldml>\n\t<identity>\n\t\t<version number=\"$Revision$\"/>\n")
	fmt.Fprintf(&b, "\t\t<language type=%q/>\n\t</identity>\n\t<annotations>\n", lang)
	for _, e := range entries {
		fmt.Fprintf(&b, "\t\t<annotation cp=%q>%s | keyword</annotation>\n", e.cp, xmlEscape(e.text))
		fmt.Fprintf(&b, "\t\t<annotation cp=%q type=\"tts\">%s</annotation>\n", e.cp, xmlEscape(e.text))
	}
	b.WriteString("\t</annotations>\n</ldml>\n")
	return b.String()
}

func xmlEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

func writeCLDR(t *testing.T, cldrDir, lang string, entries ...tts) {
	t.Helper()
	testutil.WriteFile(t, cldrDir, "common/annotations/"+lang+".xml", cldrAnnotations(lang, entries...))
}

func mustEmojiSet(t *testing.T, emojis ...string) *EmojiSet {
	t.Helper()
	set, err := NewEmojiSet(emojis)
	if err != nil {
		t.Fatalf("NewEmojiSet: %v", err)
	}
	return set
}

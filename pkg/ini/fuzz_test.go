package ini

import (
	"strings"
	"testing"
)

// FuzzParse tests that Parse never panics and that every accepted input
// serializes back to itself
func FuzzParse(f *testing.F) {
	f.Add("")
	f.Add("[hoge]\nfuga=piyo\n")
	f.Add(commentedDoc)
	f.Add("[hoge]\rfuga=piyo\r")
	f.Add("[hoge]\r\nfuga=piyo")
	f.Add("  [a]  \n ]k[ ;#= v=w \n\n# c\n")
	f.Add("k=v\n")
	f.Add("[a\n")
	f.Add("[a]\r\nk=a\rb\r\n")

	f.Fuzz(func(t *testing.T, data string) {
		doc, err := Parse(data)
		if err != nil || mixedLineEndings(data) {
			return
		}
		if got := doc.String(); got != data {
			t.Fatalf("String() = %q, want %q", got, data)
		}
	})
}

// FuzzRoundTrip tests that edits keep the document parseable, idempotent and
// that the edited value reads back
func FuzzRoundTrip(f *testing.F) {
	f.Add("[hoge]\nfuga=piyo\n", "hoge", "fuga", "mama")
	f.Add("[hoge]\r\n ; test\r\nfuga=piyo", "java", "wawa", "poyo")
	f.Add("", "a", "k", "v")

	f.Fuzz(func(t *testing.T, data, section, key, value string) {
		doc, err := Parse(data)
		if err != nil || mixedLineEndings(data) {
			return
		}
		if checkSectionName(section) != nil || checkKey(key) != nil || checkValue(key, value) != nil {
			return
		}
		// A stray "\r" in a CRLF document is data; a value containing one
		// would change how the edited text is split into lines.
		if strings.ContainsAny(section+key+value, "\r\n") {
			return
		}

		doc.Set(section, key, value)
		text := doc.String()

		again, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q) after Set error: %v", text, err)
		}
		if got := again.String(); got != text {
			t.Fatalf("re-stringify = %q, want %q", got, text)
		}
		if got, ok := again.Get(section, key); !ok || got != value {
			t.Fatalf("Get(%q, %q) = %q, %v, want %q", section, key, got, ok, value)
		}
	})
}

// mixedLineEndings reports whether text uses a line ending other than the
// one detected for it. Such text is normalized to a single style on output.
func mixedLineEndings(text string) bool {
	if strings.Contains(text, "\r\n") {
		return strings.Count(text, "\n") != strings.Count(text, "\r\n")
	}
	return strings.Contains(text, "\r") && strings.Contains(text, "\n")
}

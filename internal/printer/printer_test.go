package printer

import (
	"bytes"
	"testing"

	"github.com/shapestone/shape-ini/internal/parser"
	"github.com/shapestone/shape-ini/pkg/tree"
)

// roundTripInputs covers every line-ending style, with and without a final newline.
var roundTripInputs = []string{
	"",
	"\n",
	"\n\n\n",
	"[hoge]\nfuga=piyo\n",
	"[hoge]\nfuga=piyo",
	"\n\n[hoge]\n\nfuga=piyo\n\n",
	";test\n[hoge]\n ;  exam\nfoo=bar\n ;  java\nfuga=piyo\n ;  vavava\n ;  vava\n",
	"[hoge]\rfuga=piyo\r",
	"[hoge]\r\nfuga=piyo\r\n",
	"[hoge]\r\nfuga=piyo",
	"[hoge]\rfuga=piyo",
	"  [ a b ]\t \n\tkey \t=  value  \n",
	"[a=b;c#d]\n]key[;#=x=y[z];#\n",
	"# top\n   \n[s]\n\t#\n",
	"[s]\nk=1\nk=2\n[s]\nk=3\n",
	"[mixed]\r\nk=a\rb\r\n",
	"[unicode]\n名前=値\n",
}

// TestPrintRoundTrip checks that printing an unedited tree reproduces the input.
func TestPrintRoundTrip(t *testing.T) {
	for _, input := range roundTripInputs {
		doc, err := parser.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", input, err)
		}
		if got := Print(doc); got != input {
			t.Errorf("Print(Parse(%q)) = %q", input, got)
		}
	}
}

// TestPrintIdempotent checks that re-parsing printed output is stable.
func TestPrintIdempotent(t *testing.T) {
	for _, input := range roundTripInputs {
		doc, err := parser.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", input, err)
		}
		once := Print(doc)

		again, err := parser.Parse(once)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", once, err)
		}
		if twice := Print(again); twice != once {
			t.Errorf("second print = %q, want %q", twice, once)
		}
	}
}

// TestPrintAfterEdit checks output after edits through the model.
func TestPrintAfterEdit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		section  string
		key      string
		value    string
		expected string
	}{
		{
			name:     "modify existing key",
			input:    "[hoge]\n ; test\nfuga=piyo\n",
			section:  "hoge",
			key:      "fuga",
			value:    "mama",
			expected: "[hoge]\n ; test\nfuga=mama\n",
		},
		{
			name:     "add key",
			input:    "[hoge]\n ; test\nfuga=piyo\n",
			section:  "hoge",
			key:      "mono",
			value:    "mama",
			expected: "[hoge]\n ; test\nfuga=piyo\nmono=mama\n",
		},
		{
			name:     "add section",
			input:    "[hoge]\nfuga=piyo\n",
			section:  "java",
			key:      "wawa",
			value:    "poyo",
			expected: "[hoge]\nfuga=piyo\n[java]\nwawa=poyo\n",
		},
		{
			name:     "modify keeps spacing",
			input:    "[s]\n  k =  old  \n",
			section:  "s",
			key:      "k ",
			value:    "new",
			expected: "[s]\n  k =  new\n",
		},
		{
			name:     "add section to CRLF document",
			input:    "[a]\r\nk=v\r\n",
			section:  "b",
			key:      "x",
			value:    "y",
			expected: "[a]\r\nk=v\r\n[b]\r\nx=y\r\n",
		},
		{
			name:     "add key after trailing comments",
			input:    "[a]\nk=v\n; note\n\n",
			section:  "a",
			key:      "n",
			value:    "1",
			expected: "[a]\nk=v\n; note\n\nn=1\n",
		},
		{
			name:     "add section without final newline",
			input:    "[a]\nk=v",
			section:  "b",
			key:      "x",
			value:    "y",
			expected: "[a]\nk=v\n[b]\nx=y",
		},
		{
			name:     "modify first duplicate only",
			input:    "[s]\nk=1\nk=2\n[s]\nk=3\n",
			section:  "s",
			key:      "k",
			value:    "9",
			expected: "[s]\nk=9\nk=2\n[s]\nk=3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			doc.Set(tt.section, tt.key, tt.value)
			if got := Print(doc); got != tt.expected {
				t.Errorf("Print() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestPrintConstructed checks printing of trees built by hand.
func TestPrintConstructed(t *testing.T) {
	doc := &tree.Document{
		LeadingLines: []tree.IgnorableLine{
			&tree.Comment{Mark: "#", SpaceAfterMark: " ", Text: "generated", Terminator: "\n"},
			&tree.EmptyLine{Text: "\n"},
		},
	}
	doc.Set("server", "host", "localhost")
	doc.Set("server", "port", "8080")

	want := "# generated\n\n[server]\nhost=localhost\nport=8080\n"
	if got := Print(doc); got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

// TestFprint checks the writer variant.
func TestFprint(t *testing.T) {
	doc, err := parser.Parse("[a]\r\nk=v")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	var buf bytes.Buffer
	n, err := Fprint(&buf, doc)
	if err != nil {
		t.Fatalf("Fprint() error: %v", err)
	}
	if buf.String() != "[a]\r\nk=v" {
		t.Errorf("Fprint() wrote %q", buf.String())
	}
	if n != int64(buf.Len()) {
		t.Errorf("Fprint() = %d, want %d", n, buf.Len())
	}
}

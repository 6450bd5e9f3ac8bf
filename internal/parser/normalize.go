package parser

import (
	"strings"

	"github.com/shapestone/shape-ini/pkg/tree"
)

// Normalize collapses line endings to "\n" and guarantees a final newline.
//
// The first "\r\n" found decides the document's line ending; failing that,
// any "\r" does. Only the detected ending is rewritten, so in a CRLF document
// a lone "\r" stays in the text as an ordinary character.
func Normalize(text string) (string, tree.Metadata) {
	meta := tree.Metadata{LineEnding: tree.LF}

	switch {
	case strings.Contains(text, tree.CRLF):
		text = strings.ReplaceAll(text, tree.CRLF, tree.LF)
		meta.LineEnding = tree.CRLF
	case strings.Contains(text, tree.CR):
		text = strings.ReplaceAll(text, tree.CR, tree.LF)
		meta.LineEnding = tree.CR
	}

	if !strings.HasSuffix(text, tree.LF) {
		text += tree.LF
		meta.SyntheticNewline = true
	}

	return text, meta
}

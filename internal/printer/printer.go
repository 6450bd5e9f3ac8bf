// Package printer serializes INI document trees back to text.
//
// Printing is the exact inverse of parsing: fragments are written in tree
// order, the newline appended by the parser is dropped again, and "\n" is
// mapped back to the document's original line ending.
package printer

import (
	"io"
	"strings"

	"github.com/shapestone/shape-ini/pkg/tree"
)

// Print returns the text of doc.
func Print(doc *tree.Document) string {
	var b strings.Builder
	writeDocument(&b, doc)
	return finish(b.String(), doc.Meta)
}

// Fprint writes the text of doc to w.
func Fprint(w io.Writer, doc *tree.Document) (int64, error) {
	n, err := io.WriteString(w, Print(doc))
	return int64(n), err
}

// finish undoes the input normalization recorded in meta.
func finish(text string, meta tree.Metadata) string {
	if meta.SyntheticNewline && strings.HasSuffix(text, tree.LF) {
		text = text[:len(text)-1]
	}
	if meta.LineEnding != "" && meta.LineEnding != tree.LF {
		text = strings.ReplaceAll(text, tree.LF, meta.LineEnding)
	}
	return text
}

func writeDocument(b *strings.Builder, doc *tree.Document) {
	writeLines(b, doc.LeadingLines)
	for _, s := range doc.Sections {
		writeSection(b, s)
	}
}

func writeSection(b *strings.Builder, s *tree.Section) {
	b.WriteString(s.Header.SpaceBefore)
	b.WriteByte('[')
	b.WriteString(s.Header.Name)
	b.WriteByte(']')
	b.WriteString(s.Header.SpaceAfter)
	writeLines(b, s.Comments)
	for _, e := range s.Entries {
		writeEntry(b, e)
	}
}

func writeEntry(b *strings.Builder, e *tree.Entry) {
	b.WriteString(e.SpaceBeforeKey)
	b.WriteString(e.Key)
	b.WriteByte('=')
	b.WriteString(e.SpaceAfterEqual)
	b.WriteString(e.Value)
	b.WriteString(e.Terminator)
	writeLines(b, e.TrailingComments)
}

func writeLines(b *strings.Builder, lines []tree.IgnorableLine) {
	for _, line := range lines {
		WriteLine(b, line)
	}
}

// WriteLine writes a single ignorable line without line-ending mapping.
func WriteLine(b *strings.Builder, line tree.IgnorableLine) {
	switch l := line.(type) {
	case *tree.EmptyLine:
		b.WriteString(l.Text)
	case *tree.Comment:
		b.WriteString(l.SpaceBeforeMark)
		b.WriteString(l.Mark)
		b.WriteString(l.SpaceAfterMark)
		b.WriteString(l.Text)
		b.WriteString(l.Terminator)
	}
}

package parser

import (
	"fmt"
	"strings"

	"github.com/shapestone/shape-ini/pkg/tree"
)

// dump renders a document tree for failure messages.
func dump(doc *tree.Document) string {
	if doc == nil {
		return "<nil>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "meta=%+v\n", doc.Meta)
	dumpLines(&b, "  leading", doc.LeadingLines)
	for _, s := range doc.Sections {
		fmt.Fprintf(&b, "  section %+v\n", s.Header)
		dumpLines(&b, "    comment", s.Comments)
		for _, e := range s.Entries {
			fmt.Fprintf(&b, "    entry before=%q key=%q after=%q value=%q term=%q\n",
				e.SpaceBeforeKey, e.Key, e.SpaceAfterEqual, e.Value, e.Terminator)
			dumpLines(&b, "      trailing", e.TrailingComments)
		}
	}
	return b.String()
}

func dumpLines(b *strings.Builder, label string, lines []tree.IgnorableLine) {
	for _, line := range lines {
		switch l := line.(type) {
		case *tree.EmptyLine:
			fmt.Fprintf(b, "%s empty %q\n", label, l.Text)
		case *tree.Comment:
			fmt.Fprintf(b, "%s comment %+v\n", label, *l)
		}
	}
}

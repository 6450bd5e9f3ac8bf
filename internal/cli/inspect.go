package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-ini/pkg/tree"
)

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show the formatting tree of a file",
		Long: `Print every node of the lossless document tree with all of its fields
quoted, including the whitespace and line terminators kept for round trips.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return writeTree(out, NewStyles(out, a.useColor(out)), doc.Raw())
		},
	}
}

// treeWriter renders document nodes one per line.
type treeWriter struct {
	b      strings.Builder
	styles *Styles
}

func writeTree(w io.Writer, styles *Styles, doc *tree.Document) error {
	t := &treeWriter{styles: styles}

	t.node(0, "document",
		"line-ending", doc.Meta.LineEnding,
		"synthetic-newline", fmt.Sprint(doc.Meta.SyntheticNewline))
	t.lines(1, doc.LeadingLines)
	for _, s := range doc.Sections {
		t.node(1, "section",
			"before", s.Header.SpaceBefore,
			"name", s.Header.Name,
			"after", s.Header.SpaceAfter)
		t.lines(2, s.Comments)
		for _, e := range s.Entries {
			t.node(2, "entry",
				"before", e.SpaceBeforeKey,
				"key", e.Key,
				"after-equal", e.SpaceAfterEqual,
				"value", e.Value,
				"end", e.Terminator)
			t.lines(3, e.TrailingComments)
		}
	}

	_, err := io.WriteString(w, t.b.String())
	return err
}

func (t *treeWriter) lines(depth int, lines []tree.IgnorableLine) {
	for _, line := range lines {
		switch l := line.(type) {
		case *tree.EmptyLine:
			t.node(depth, "empty", "text", l.Text)
		case *tree.Comment:
			t.node(depth, "comment",
				"before", l.SpaceBeforeMark,
				"mark", l.Mark,
				"after", l.SpaceAfterMark,
				"text", l.Text,
				"end", l.Terminator)
		}
	}
}

// node writes a kind followed by name/value pairs. Values are quoted so that
// whitespace is visible.
func (t *treeWriter) node(depth int, kind string, fields ...string) {
	t.b.WriteString(strings.Repeat("  ", depth))
	if depth == 0 {
		t.b.WriteString(t.styles.Title.Render(kind))
	} else {
		t.b.WriteString(t.styles.Kind.Render(kind))
	}
	for i := 0; i+1 < len(fields); i += 2 {
		t.b.WriteByte(' ')
		t.b.WriteString(t.styles.Muted.Render(fields[i] + "="))
		t.b.WriteString(t.styles.Value.Render(fmt.Sprintf("%q", fields[i+1])))
	}
	t.b.WriteByte('\n')
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type lineOp int

const (
	lineEqual lineOp = iota
	lineDelete
	lineInsert
)

type diffLine struct {
	op   lineOp
	text string
}

// lineDiff compares two texts line by line.
func lineDiff(before, after string) []diffLine {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(displayLines(before), displayLines(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []diffLine
	for _, d := range diffs {
		op := lineEqual
		switch d.Type {
		case diffpatch.DiffDelete:
			op = lineDelete
		case diffpatch.DiffInsert:
			op = lineInsert
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text != "" {
				out = append(out, diffLine{op: op, text: strings.TrimSuffix(text, "\n")})
			}
		}
	}
	return out
}

// displayLines maps every line ending to "\n" so CR and CRLF files diff by
// line. A missing final newline is added.
func displayLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

// writeDiff prints a unified-style diff with the configured context.
func (a *app) writeDiff(w io.Writer, path, before, after string) error {
	colored := a.useColor(w)
	paint := func(attr color.Attribute) *color.Color {
		c := color.New(attr)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	header := paint(color.Bold)
	removed := paint(color.FgRed)
	added := paint(color.FgGreen)
	gap := paint(color.FgCyan)

	lines := lineDiff(before, after)
	keep := contextMask(lines, a.cfg.DiffContext)

	changed := false
	for _, l := range lines {
		if l.op != lineEqual {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	var b strings.Builder
	header.Fprintf(&b, "--- %s\n", path)
	header.Fprintf(&b, "+++ %s\n", path)
	skipped := false
	for i, l := range lines {
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped {
			gap.Fprintln(&b, "@@")
			skipped = false
		}
		switch l.op {
		case lineDelete:
			removed.Fprintf(&b, "-%s\n", l.text)
		case lineInsert:
			added.Fprintf(&b, "+%s\n", l.text)
		default:
			fmt.Fprintf(&b, " %s\n", l.text)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// contextMask marks changed lines and the n unchanged lines around them.
func contextMask(lines []diffLine, n int) []bool {
	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.op == lineEqual {
			continue
		}
		lo, hi := max(0, i-n), min(len(lines)-1, i+n)
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}
	return keep
}

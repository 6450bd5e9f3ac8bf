package ini

import (
	"fmt"

	"github.com/shapestone/shape-ini/pkg/tree"
)

// Builder provides a fluent API for building INI documents with canonical
// formatting: "[name]" headers, "key=value" entries and "; text" comments.
//
// Comments and blank lines attach to whatever precedes them: the document
// head, the current section header or the last entry. The first invalid
// name, value or call is reported by Build.
//
// Example:
//
//	doc, err := ini.NewBuilder().
//	    Comment("generated").
//	    Section("server").
//	    Set("host", "localhost").
//	    Set("port", "80").
//	    Build()
type Builder struct {
	doc     *tree.Document
	section *tree.Section
	entry   *tree.Entry
	err     error
}

// NewBuilder creates an empty document builder using "\n" line endings.
func NewBuilder() *Builder {
	return &Builder{
		doc: &tree.Document{Meta: tree.Metadata{LineEnding: tree.LF}},
	}
}

// LineEnding sets the line ending used when the document is written.
// It must be tree.LF, tree.CR or tree.CRLF.
func (b *Builder) LineEnding(ending string) *Builder {
	switch ending {
	case tree.LF, tree.CR, tree.CRLF:
		b.doc.Meta.LineEnding = ending
	default:
		b.fail(fmt.Errorf("ini: unsupported line ending %q", ending))
	}
	return b
}

// Comment adds a "; text" comment line.
func (b *Builder) Comment(text string) *Builder {
	if err := checkComment(text); err != nil {
		return b.fail(err)
	}
	c := &tree.Comment{Mark: ";", Text: text, Terminator: tree.LF}
	if text != "" {
		c.SpaceAfterMark = " "
	}
	b.addLine(c)
	return b
}

// Blank adds an empty line.
func (b *Builder) Blank() *Builder {
	b.addLine(&tree.EmptyLine{Text: tree.LF})
	return b
}

// Section starts a new section. Calling it twice with the same name produces
// a duplicate section.
func (b *Builder) Section(name string) *Builder {
	if err := checkSectionName(name); err != nil {
		return b.fail(err)
	}
	b.section = tree.NewSection(name)
	b.entry = nil
	b.doc.Sections = append(b.doc.Sections, b.section)
	return b
}

// Set adds key=value to the current section, or replaces the value if the
// key was already set in it.
func (b *Builder) Set(key, value string) *Builder {
	if b.section == nil {
		return b.fail(fmt.Errorf("ini: key %q set before any section", key))
	}
	if err := checkKey(key); err != nil {
		return b.fail(err)
	}
	if err := checkValue(key, value); err != nil {
		return b.fail(err)
	}
	if e := b.section.FindEntry(key); e != nil {
		e.Value = value
		return b
	}
	b.entry = tree.NewEntry(key, value)
	b.section.Entries = append(b.section.Entries, b.entry)
	return b
}

// Build returns the document built so far, or the first error recorded.
// The builder can keep being used; later calls do not affect the returned
// document.
func (b *Builder) Build() (*Document, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Document{tree: b.doc.Clone()}, nil
}

func (b *Builder) addLine(line tree.IgnorableLine) {
	switch {
	case b.entry != nil:
		b.entry.TrailingComments = append(b.entry.TrailingComments, line)
	case b.section != nil:
		b.section.Comments = append(b.section.Comments, line)
	default:
		b.doc.LeadingLines = append(b.doc.LeadingLines, line)
	}
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

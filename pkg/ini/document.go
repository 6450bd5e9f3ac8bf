package ini

import (
	"io"

	"github.com/shapestone/shape-ini/internal/fastparser"
	"github.com/shapestone/shape-ini/internal/printer"
	"github.com/shapestone/shape-ini/pkg/tree"
)

// Document is a parsed INI document together with its formatting.
//
// The zero value is not usable; obtain documents from Parse, Builder.Build or
// FromAST.
type Document struct {
	tree *tree.Document
}

// Set assigns value to key in section.
//
// If the section does not exist it is appended at the end of the document as
// "[section]\nkey=value\n". If the key does not exist it is appended at the
// end of the first section with that name as "key=value\n". Otherwise the
// value of the first matching entry is replaced and everything around it is
// kept. Names are matched exactly, including any spaces before "=". Set
// never fails.
//
// Example:
//
//	doc, _ := ini.Parse("[hoge]\nfuga = piyo ; x\n")
//	doc.Set("hoge", "fuga ", "mama")
//	doc.String() // "[hoge]\nfuga = mama\n"
func (d *Document) Set(section, key, value string) {
	d.tree.Set(section, key, value)
}

// Get returns the value of key in the first section named section.
func (d *Document) Get(section, key string) (string, bool) {
	s := d.tree.FindSection(section)
	if s == nil {
		return "", false
	}
	e := s.FindEntry(key)
	if e == nil {
		return "", false
	}
	return e.Value, true
}

// String returns the document text.
func (d *Document) String() string {
	return printer.Print(d.tree)
}

// Bytes returns the document text as a byte slice.
func (d *Document) Bytes() []byte {
	return []byte(printer.Print(d.tree))
}

// WriteTo writes the document text to w. It implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return printer.Fprint(w, d.tree)
}

// ToObject returns the sections and entries as nested maps.
//
// Comments and formatting are dropped. When a section name or a key within
// a section occurs more than once, the first occurrence wins, matching Get
// and Set.
func (d *Document) ToObject() map[string]map[string]string {
	return d.object().Values
}

// SectionNames returns section names in document order, without duplicates.
func (d *Document) SectionNames() []string {
	return d.object().Sections
}

// Keys returns the keys of the first section named section in document
// order, without duplicates. It returns nil if there is no such section.
func (d *Document) Keys(section string) []string {
	return d.object().Keys[section]
}

// object projects the tree the same way the fast scanner projects text.
func (d *Document) object() *fastparser.Object {
	obj := fastparser.NewObject()
	for _, s := range d.tree.Sections {
		if !obj.AddSection(s.Header.Name) {
			continue
		}
		for _, e := range s.Entries {
			obj.Add(s.Header.Name, e.Key, e.Value)
		}
	}
	return obj
}

// Raw returns a snapshot of the full formatting tree.
//
// The snapshot is a deep copy: changing it does not affect the document, and
// later edits to the document do not show up in it.
func (d *Document) Raw() *tree.Document {
	return d.tree.Clone()
}

// Clone returns an independent deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{tree: d.tree.Clone()}
}

// LineEnding returns the line ending detected in the parsed input:
// tree.LF, tree.CR or tree.CRLF.
func (d *Document) LineEnding() string {
	if d.tree.Meta.LineEnding == "" {
		return tree.LF
	}
	return d.tree.Meta.LineEnding
}

// Package tree defines the formatting-preserving INI document model.
//
// Every byte of a parsed document lives in some field of some node: section
// names, keys and values, but also the spaces around them, comment markers,
// comment text, blank lines and line terminators. Serializing the tree in
// order (see the printer) reproduces the input exactly.
//
// Terminators are always stored as "\n". The document's Metadata records the
// line ending of the original input so that it can be restored on output.
//
// Shape of a document:
//
//	Document
//	├── LeadingLines  []IgnorableLine   blank lines and comments before the first section
//	└── Sections      []*Section
//	    ├── Header                      "  [name]  \n"
//	    ├── Comments  []IgnorableLine   between the header and the first entry
//	    └── Entries   []*Entry
//	        └── TrailingComments []IgnorableLine
//
// Duplicate section names and duplicate keys are legal. Lookups and edits
// act on the first match.
package tree

// Line endings recognized in input documents.
const (
	LF   = "\n"
	CR   = "\r"
	CRLF = "\r\n"
)

// Metadata describes transformations applied to the raw input before parsing.
type Metadata struct {
	// LineEnding is the line ending detected in the raw input.
	LineEnding string
	// SyntheticNewline is set when the raw input did not end with a line
	// ending and one was appended before parsing.
	SyntheticNewline bool
}

// Document is the root of a parsed INI file.
type Document struct {
	LeadingLines []IgnorableLine
	Sections     []*Section
	Meta         Metadata
}

// Section is a section header followed by its body.
type Section struct {
	Header   Header
	Comments []IgnorableLine
	Entries  []*Entry
}

// Header is a "[name]" line.
// SpaceAfter holds the whitespace after "]" followed by the line terminator.
type Header struct {
	SpaceBefore string
	Name        string
	SpaceAfter  string
}

// Entry is a "key=value" line and the ignorable lines that follow it.
// The key keeps any whitespace between its last character and "=".
type Entry struct {
	SpaceBeforeKey   string
	Key              string
	SpaceAfterEqual  string
	Value            string
	Terminator       string
	TrailingComments []IgnorableLine
}

// IgnorableLine is a line without key/value semantics: *EmptyLine or *Comment.
type IgnorableLine interface {
	isIgnorable()
}

// EmptyLine is a line of optional whitespace. Text includes the terminator.
type EmptyLine struct {
	Text string
}

// Comment is a line starting (after optional whitespace) with ";" or "#".
type Comment struct {
	SpaceBeforeMark string
	Mark            string
	SpaceAfterMark  string
	Text            string
	Terminator      string
}

func (*EmptyLine) isIgnorable() {}
func (*Comment) isIgnorable()   {}

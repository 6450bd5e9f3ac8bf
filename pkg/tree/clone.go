package tree

// Clone returns a deep copy of the document.
// Mutating the copy never affects d, and vice versa.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		LeadingLines: cloneLines(d.LeadingLines),
		Meta:         d.Meta,
	}
	if d.Sections != nil {
		out.Sections = make([]*Section, len(d.Sections))
		for i, s := range d.Sections {
			out.Sections[i] = s.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() *Section {
	out := &Section{
		Header:   s.Header,
		Comments: cloneLines(s.Comments),
	}
	if s.Entries != nil {
		out.Entries = make([]*Entry, len(s.Entries))
		for i, e := range s.Entries {
			out.Entries[i] = e.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	out := *e
	out.TrailingComments = cloneLines(e.TrailingComments)
	return &out
}

func cloneLines(lines []IgnorableLine) []IgnorableLine {
	if lines == nil {
		return nil
	}
	out := make([]IgnorableLine, len(lines))
	for i, line := range lines {
		switch l := line.(type) {
		case *EmptyLine:
			c := *l
			out[i] = &c
		case *Comment:
			c := *l
			out[i] = &c
		default:
			out[i] = line
		}
	}
	return out
}

package tree

// NewSection returns a section with canonical formatting and no entries.
func NewSection(name string) *Section {
	return &Section{
		Header: Header{Name: name, SpaceAfter: LF},
	}
}

// NewEntry returns a "key=value" entry with canonical formatting.
func NewEntry(key, value string) *Entry {
	return &Entry{Key: key, Value: value, Terminator: LF}
}

// FindSection returns the first section named name, or nil.
func (d *Document) FindSection(name string) *Section {
	for _, s := range d.Sections {
		if s.Header.Name == name {
			return s
		}
	}
	return nil
}

// FindEntry returns the first entry with the given key, or nil.
func (s *Section) FindEntry(key string) *Entry {
	for _, e := range s.Entries {
		if e.Key == key {
			return e
		}
	}
	return nil
}

// Set assigns value to key in section.
//
// A missing section is appended to the document and a missing key is
// appended to the section, both with canonical formatting. An existing entry
// only has its Value replaced; its spacing, terminator and trailing comments
// are kept.
func (d *Document) Set(section, key, value string) {
	s := d.FindSection(section)
	if s == nil {
		s = NewSection(section)
		s.Entries = append(s.Entries, NewEntry(key, value))
		d.Sections = append(d.Sections, s)
		return
	}

	e := s.FindEntry(key)
	if e == nil {
		s.Entries = append(s.Entries, NewEntry(key, value))
		return
	}
	e.Value = value
}

package ini

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"sort"
)

var textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

// Marshal returns the INI encoding of v.
//
// v must be a map with string keys or a struct; each map value or exported
// struct field is one section. A section is itself a map with string keys or
// a struct whose exported fields are the entries. Entry values must be
// strings or implement encoding.TextMarshaler: INI values are untyped text,
// so numbers and booleans are not converted.
//
// Struct fields are written in declaration order and map keys in sorted
// order. Sections are separated by an empty line.
//
// The encoding of each struct field can be customized by the format string
// stored under the "ini" key in the struct field's tag. The format string
// gives the name of the section or key, possibly followed by ",omitempty".
// Without a tag the lowercased field name is used. Fields tagged "-" are
// skipped, as are nil pointers.
//
// A *Document is written as is, formatting included.
//
// Example:
//
//	type Config struct {
//	    Server struct {
//	        Host string `ini:"host"`
//	        Port string `ini:"port"`
//	    } `ini:"server"`
//	}
//	var cfg Config
//	cfg.Server.Host = "localhost"
//	cfg.Server.Port = "80"
//	data, err := ini.Marshal(cfg)
//	// data is []byte("[server]\nhost=localhost\nport=80\n")
func Marshal(v any) ([]byte, error) {
	if doc, ok := v.(*Document); ok {
		return doc.Bytes(), nil
	}

	sections, err := collectSections(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	for i, s := range sections {
		if i > 0 {
			b.Blank()
		}
		b.Section(s.name)
		for _, kv := range s.entries {
			b.Set(kv.key, kv.value)
		}
	}
	doc, err := b.Build()
	if err != nil {
		return nil, err
	}
	return doc.Bytes(), nil
}

// Apply sets every entry of v into the document, as Marshal would encode it.
//
// Existing entries keep their formatting and only change value; new keys and
// sections are appended. Nothing is changed if v cannot be encoded.
func (d *Document) Apply(v any) error {
	sections, err := collectSections(reflect.ValueOf(v))
	if err != nil {
		return err
	}
	for _, s := range sections {
		if err := checkSectionName(s.name); err != nil {
			return err
		}
		for _, kv := range s.entries {
			if err := checkKey(kv.key); err != nil {
				return err
			}
			if err := checkValue(kv.key, kv.value); err != nil {
				return err
			}
		}
	}
	for _, s := range sections {
		for _, kv := range s.entries {
			d.Set(s.name, kv.key, kv.value)
		}
	}
	return nil
}

type sectionData struct {
	name    string
	entries []keyValue
}

type keyValue struct {
	key   string
	value string
}

// collectSections flattens a map or struct of sections.
func collectSections(rv reflect.Value) ([]sectionData, error) {
	rv, ok := indirect(rv)
	if !ok {
		return nil, errors.New("ini: Marshal(nil)")
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("ini: unsupported map key type %s", rv.Type().Key())
		}
		var sections []sectionData
		for _, name := range sortedKeys(rv) {
			entries, present, err := collectEntries(rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key())))
			if err != nil {
				return nil, fmt.Errorf("ini: section %q: %w", name, err)
			}
			if present {
				sections = append(sections, sectionData{name: name, entries: entries})
			}
		}
		return sections, nil

	case reflect.Struct:
		var sections []sectionData
		for _, info := range cachedFields(rv.Type()) {
			fv := rv.Field(info.index)
			if info.omitEmpty && isEmptyValue(fv) {
				continue
			}
			entries, present, err := collectEntries(fv)
			if err != nil {
				return nil, fmt.Errorf("ini: section %q: %w", info.name, err)
			}
			if present {
				sections = append(sections, sectionData{name: info.name, entries: entries})
			}
		}
		return sections, nil
	}

	return nil, fmt.Errorf("ini: cannot marshal %s: want a map or struct of sections", rv.Type())
}

// collectEntries flattens one section. present is false for nil sections.
func collectEntries(rv reflect.Value) (entries []keyValue, present bool, err error) {
	rv, ok := indirect(rv)
	if !ok {
		return nil, false, nil
	}
	if rv.Type().Implements(textMarshalerType) {
		return nil, false, fmt.Errorf("%s is a value, not a section", rv.Type())
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		for _, key := range sortedKeys(rv) {
			value, ok, err := stringValue(rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())))
			if err != nil {
				return nil, false, fmt.Errorf("key %q: %w", key, err)
			}
			if ok {
				entries = append(entries, keyValue{key: key, value: value})
			}
		}
		return entries, true, nil

	case reflect.Struct:
		for _, info := range cachedFields(rv.Type()) {
			fv := rv.Field(info.index)
			if info.omitEmpty && isEmptyValue(fv) {
				continue
			}
			value, ok, err := stringValue(fv)
			if err != nil {
				return nil, false, fmt.Errorf("key %q: %w", info.name, err)
			}
			if ok {
				entries = append(entries, keyValue{key: info.name, value: value})
			}
		}
		return entries, true, nil
	}

	return nil, false, fmt.Errorf("cannot marshal %s as a section", rv.Type())
}

// stringValue returns the text of an entry value. ok is false for nil.
func stringValue(rv reflect.Value) (value string, ok bool, err error) {
	if !rv.IsValid() {
		return "", false, nil
	}
	if (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return "", false, nil
	}

	if rv.Type().Implements(textMarshalerType) {
		return marshalText(rv.Interface().(encoding.TextMarshaler))
	}
	if rv.CanAddr() && rv.Addr().Type().Implements(textMarshalerType) {
		return marshalText(rv.Addr().Interface().(encoding.TextMarshaler))
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return stringValue(rv.Elem())
	case reflect.String:
		return rv.String(), true, nil
	}
	return "", false, fmt.Errorf("unsupported type %s", rv.Type())
}

func marshalText(m encoding.TextMarshaler) (string, bool, error) {
	text, err := m.MarshalText()
	if err != nil {
		return "", false, err
	}
	return string(text), true, nil
}

// indirect dereferences pointers and interfaces. ok is false at a nil.
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return rv, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}

func sortedKeys(rv reflect.Value) []string {
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return keys
}

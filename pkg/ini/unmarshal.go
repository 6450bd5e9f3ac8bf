package ini

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"

	"github.com/shapestone/shape-ini/internal/fastparser"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Unmarshal parses the INI-encoded data and stores the result in the value
// pointed to by v.
//
// Unmarshal uses the inverse of the encodings that Marshal uses, allocating
// maps and pointers as necessary:
//
//   - a map with string keys receives one element per section
//   - a struct receives sections into its exported fields, matched by tag or
//     lowercased field name, preferring an exact match but also accepting a
//     case-insensitive one
//   - an empty interface receives map[string]any of map[string]any
//
// Entries are stored into string fields, map elements of string kind,
// interfaces, or types implementing encoding.TextUnmarshaler. Sections and
// keys without a matching field are ignored. When a section or key occurs
// more than once, the first occurrence is used.
//
// If the data is not valid INI, Unmarshal returns a *ParseError.
//
// Example:
//
//	var cfg map[string]map[string]string
//	err := ini.Unmarshal([]byte("[server]\nport=80\n"), &cfg)
//	// cfg["server"]["port"] == "80"
func Unmarshal(data []byte, v any) error {
	rv, err := unmarshalTarget(v)
	if err != nil {
		return err
	}

	// Fast path: project the text without building the formatting tree
	obj, err := fastparser.Parse(data)
	if err != nil {
		// Re-parse for a detailed *ParseError
		if _, perr := Parse(string(data)); perr != nil {
			return perr
		}
		return err
	}
	return unmarshalDocument(obj, rv)
}

// UnmarshalDocument stores the sections of an already parsed document in the
// value pointed to by v. See Unmarshal.
func UnmarshalDocument(doc *Document, v any) error {
	rv, err := unmarshalTarget(v)
	if err != nil {
		return err
	}
	return unmarshalDocument(doc.object(), rv)
}

// unmarshalTarget checks that v is a non-nil pointer and returns its element.
func unmarshalTarget(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return rv, errors.New("ini: Unmarshal(nil)")
	}
	if rv.Kind() != reflect.Ptr {
		return rv, errors.New("ini: Unmarshal(non-pointer " + rv.Type().String() + ")")
	}
	if rv.IsNil() {
		return rv, errors.New("ini: Unmarshal(nil " + rv.Type().String() + ")")
	}
	return rv.Elem(), nil
}

func unmarshalDocument(proj *fastparser.Object, rv reflect.Value) error {
	obj := proj.Values
	names := proj.Sections
	rv = allocate(rv)

	switch rv.Kind() {
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			break
		}
		m := make(map[string]any, len(obj))
		for name, entries := range obj {
			m[name] = sectionToInterface(entries)
		}
		rv.Set(reflect.ValueOf(m))
		return nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("ini: unsupported map key type %s", rv.Type().Key())
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeMapWithSize(rv.Type(), len(names)))
		}
		for _, name := range names {
			elem := reflect.New(rv.Type().Elem()).Elem()
			if err := unmarshalSection(obj[name], proj.Keys[name], elem); err != nil {
				return fmt.Errorf("ini: section %q: %w", name, err)
			}
			rv.SetMapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()), elem)
		}
		return nil

	case reflect.Struct:
		for _, info := range cachedFields(rv.Type()) {
			name, ok := lookupFold(names, info.name)
			if !ok {
				continue
			}
			if err := unmarshalSection(obj[name], proj.Keys[name], rv.Field(info.index)); err != nil {
				return fmt.Errorf("ini: section %q: %w", name, err)
			}
		}
		return nil
	}

	return fmt.Errorf("ini: cannot unmarshal document into %s", rv.Type())
}

// unmarshalSection stores one section; keys lists its keys in document order.
func unmarshalSection(entries map[string]string, keys []string, rv reflect.Value) error {
	rv = allocate(rv)

	switch rv.Kind() {
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			break
		}
		rv.Set(reflect.ValueOf(sectionToInterface(entries)))
		return nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeMapWithSize(rv.Type(), len(entries)))
		}
		for key, value := range entries {
			elem := reflect.New(rv.Type().Elem()).Elem()
			if err := setString(elem, value); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			rv.SetMapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()), elem)
		}
		return nil

	case reflect.Struct:
		if reflect.PointerTo(rv.Type()).Implements(textUnmarshalerType) {
			break
		}
		for _, info := range cachedFields(rv.Type()) {
			key, ok := lookupFold(keys, info.name)
			if !ok {
				continue
			}
			if err := setString(rv.Field(info.index), entries[key]); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
		}
		return nil
	}

	return fmt.Errorf("cannot unmarshal section into %s", rv.Type())
}

// setString stores an entry value into rv.
func setString(rv reflect.Value, value string) error {
	if rv.Kind() != reflect.Ptr && rv.CanAddr() && rv.Addr().Type().Implements(textUnmarshalerType) {
		return rv.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value))
	}

	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return setString(rv.Elem(), value)
	case reflect.String:
		rv.SetString(value)
		return nil
	case reflect.Interface:
		if rv.NumMethod() == 0 {
			rv.Set(reflect.ValueOf(value))
			return nil
		}
	}
	return fmt.Errorf("cannot unmarshal string into %s", rv.Type())
}

// allocate follows pointers, allocating nil ones.
func allocate(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}
	return rv
}

func sectionToInterface(entries map[string]string) map[string]any {
	m := make(map[string]any, len(entries))
	for key, value := range entries {
		m[key] = value
	}
	return m
}

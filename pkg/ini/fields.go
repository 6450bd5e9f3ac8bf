package ini

import (
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
)

// fieldInfo contains information about a struct field for marshaling/unmarshaling
type fieldInfo struct {
	index     int
	name      string
	omitEmpty bool
}

// Field cache: atomic.Value copy-on-write map, read lock-free.
var fieldCache atomic.Value
var fieldCacheMu sync.Mutex

func init() {
	fieldCache.Store(make(map[reflect.Type][]fieldInfo))
}

// cachedFields returns the exported, non-skipped fields of struct type t in
// declaration order.
func cachedFields(t reflect.Type) []fieldInfo {
	m := fieldCache.Load().(map[reflect.Type][]fieldInfo)
	if fields, ok := m[t]; ok {
		return fields
	}

	fieldCacheMu.Lock()
	defer fieldCacheMu.Unlock()

	m = fieldCache.Load().(map[reflect.Type][]fieldInfo)
	if fields, ok := m[t]; ok {
		return fields
	}

	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		info, skip := getFieldInfo(field)
		if skip {
			continue
		}
		info.index = i
		fields = append(fields, info)
	}

	next := make(map[reflect.Type][]fieldInfo, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	next[t] = fields
	fieldCache.Store(next)
	return fields
}

// getFieldInfo extracts field information from a struct field tag.
// skip is true for fields tagged "-".
func getFieldInfo(field reflect.StructField) (info fieldInfo, skip bool) {
	tag := field.Tag.Get("ini")

	// No tag - use lowercase field name
	if tag == "" {
		return fieldInfo{name: strings.ToLower(field.Name)}, false
	}

	parts := strings.Split(tag, ",")
	name := parts[0]

	if name == "-" && len(parts) == 1 {
		return fieldInfo{}, true
	}

	if name == "" {
		name = strings.ToLower(field.Name)
	}

	info = fieldInfo{name: name}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			info.omitEmpty = true
		}
	}
	return info, false
}

// isEmptyValue checks if a reflect.Value is considered empty
func isEmptyValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return rv.IsNil()
	case reflect.Struct:
		return rv.IsZero()
	}
	return false
}

// lookupFold finds name in names, preferring an exact match and falling back
// to the first case-insensitive match.
func lookupFold(names []string, name string) (string, bool) {
	for _, n := range names {
		if n == name {
			return n, true
		}
	}
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

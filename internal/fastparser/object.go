package fastparser

// Object is the plain projection of an INI document: section names, keys and
// values without comments or formatting. The first occurrence of a duplicate
// section or key wins.
type Object struct {
	// Sections lists section names in document order.
	Sections []string
	// Keys lists the keys of each section in document order.
	Keys map[string][]string
	// Values maps section name to key to value.
	Values map[string]map[string]string
}

// NewObject returns an empty projection.
func NewObject() *Object {
	return &Object{
		Keys:   make(map[string][]string),
		Values: make(map[string]map[string]string),
	}
}

// AddSection records a section. It returns false if the name was already
// recorded, in which case the entries of this occurrence must be ignored.
func (o *Object) AddSection(name string) bool {
	if _, seen := o.Values[name]; seen {
		return false
	}
	o.Sections = append(o.Sections, name)
	o.Keys[name] = []string{}
	o.Values[name] = make(map[string]string)
	return true
}

// Add records key=value in a recorded section unless the key is already set.
func (o *Object) Add(section, key, value string) {
	values := o.Values[section]
	if _, seen := values[key]; seen {
		return
	}
	values[key] = value
	o.Keys[section] = append(o.Keys[section], key)
}

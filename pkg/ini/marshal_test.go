package ini

import (
	"strings"
	"testing"
)

type serverSection struct {
	Host    string `ini:"host"`
	Port    string `ini:"port"`
	Comment string `ini:"comment,omitempty"`
	Ignored string `ini:"-"`
	secret  string
}

type appConfig struct {
	Server   serverSection     `ini:"server"`
	Database *databaseSection  `ini:"database"`
	Labels   map[string]string `ini:"labels,omitempty"`
}

type databaseSection struct {
	DSN   string
	Level level
}

// level marshals itself as text.
type level int

func (l level) MarshalText() ([]byte, error) {
	switch l {
	case 0:
		return []byte("info"), nil
	case 1:
		return []byte("debug"), nil
	}
	return nil, errUnknownLevel
}

func (l *level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*l = 0
	case "debug":
		*l = 1
	default:
		return errUnknownLevel
	}
	return nil
}

type levelError struct{}

func (levelError) Error() string { return "unknown level" }

var errUnknownLevel = levelError{}

// TestMarshal_Struct verifies struct encoding
func TestMarshal_Struct(t *testing.T) {
	cfg := appConfig{
		Server:   serverSection{Host: "localhost", Port: "80", Ignored: "x", secret: "y"},
		Database: &databaseSection{DSN: "file:a.db", Level: 1},
	}

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	expected := "[server]\nhost=localhost\nport=80\n\n[database]\ndsn=file:a.db\nlevel=debug\n"
	if string(data) != expected {
		t.Errorf("Marshal() = %q, want %q", data, expected)
	}
}

// TestMarshal_NilSection verifies nil section pointers are skipped
func TestMarshal_NilSection(t *testing.T) {
	data, err := Marshal(&appConfig{Server: serverSection{Host: "h", Port: "p"}})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if got := string(data); got != "[server]\nhost=h\nport=p\n" {
		t.Errorf("Marshal() = %q", got)
	}
}

// TestMarshal_Map verifies map encoding in sorted order
func TestMarshal_Map(t *testing.T) {
	data, err := Marshal(map[string]map[string]string{
		"b": {"y": "2", "x": "1"},
		"a": {},
	})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if got := string(data); got != "[a]\n\n[b]\nx=1\ny=2\n" {
		t.Errorf("Marshal() = %q", got)
	}
}

// TestMarshal_Interface verifies map[string]any sections
func TestMarshal_Interface(t *testing.T) {
	data, err := Marshal(map[string]any{
		"s": map[string]any{"k": "v", "skip": nil},
	})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if got := string(data); got != "[s]\nk=v\n" {
		t.Errorf("Marshal() = %q", got)
	}
}

// TestMarshal_Document verifies documents keep their formatting
func TestMarshal_Document(t *testing.T) {
	doc, _ := Parse(commentedDoc)
	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != commentedDoc {
		t.Errorf("Marshal() = %q", data)
	}
}

// TestMarshal_Errors verifies unsupported input
func TestMarshal_Errors(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr string
	}{
		{"nil", nil, "Marshal(nil)"},
		{"scalar", "text", "want a map or struct"},
		{"int value", map[string]map[string]int{"a": {"k": 1}}, "unsupported type int"},
		{"bool field", struct{ S struct{ B bool } }{}, "unsupported type bool"},
		{"top-level value", struct{ Name string }{Name: "x"}, "as a section"},
		{"int keys", map[int]map[string]string{1: {}}, "map key type"},
		{"newline value", map[string]map[string]string{"a": {"k": "1\n2"}}, "line break"},
		{"bad section", map[string]map[string]string{"[a]": {"k": "v"}}, "section name"},
		{"text marshaler error", map[string]map[string]level{"a": {"k": 7}}, "unknown level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(tt.value)
			if err == nil {
				t.Fatal("Marshal() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Marshal() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

// TestApply verifies struct values are set into an existing document
func TestApply(t *testing.T) {
	input := "; app\n[server]\nhost = old   ; keep spacing\nport = 80\n"
	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	err = doc.Apply(struct {
		Server struct {
			Host string `ini:"host "`
			TLS  string `ini:"tls"`
		} `ini:"server"`
		Cache map[string]string `ini:"cache"`
	}{
		Server: struct {
			Host string `ini:"host "`
			TLS  string `ini:"tls"`
		}{Host: "new", TLS: "on"},
		Cache: map[string]string{"size": "10"},
	})
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	expected := "; app\n[server]\nhost = new\nport = 80\ntls=on\n[cache]\nsize=10\n"
	if got := doc.String(); got != expected {
		t.Errorf("String() = %q, want %q", got, expected)
	}
}

// TestApply_AllOrNothing verifies invalid values leave the document unchanged
func TestApply_AllOrNothing(t *testing.T) {
	input := "[a]\nk=v\n"
	doc, _ := Parse(input)

	err := doc.Apply(map[string]map[string]string{"a": {"k": "changed", "bad=key": "x"}})
	if err == nil {
		t.Fatal("Apply() error = nil")
	}
	if got := doc.String(); got != input {
		t.Errorf("document changed by failed Apply(): %q", got)
	}
}

package ini

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

// TestEncoder_Document verifies documents are encoded losslessly
func TestEncoder_Document(t *testing.T) {
	input := "[a]\r\n  k = v ; x\r\n"
	doc, _ := Parse(input)

	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(doc); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if buf.String() != input {
		t.Errorf("Encode() wrote %q, want %q", buf.String(), input)
	}
}

// TestEncoder_Value verifies other values go through Marshal
func TestEncoder_Value(t *testing.T) {
	var buf bytes.Buffer
	err := NewEncoder(&buf).Encode(map[string]map[string]string{"a": {"k": "v"}})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if buf.String() != "[a]\nk=v\n" {
		t.Errorf("Encode() wrote %q", buf.String())
	}

	if err := NewEncoder(&buf).Encode(42); err == nil {
		t.Error("Encode(42) error = nil")
	}
}

// TestDecoder_Document verifies decoding into a Document
func TestDecoder_Document(t *testing.T) {
	var doc Document
	if err := NewDecoder(strings.NewReader(commentedDoc)).Decode(&doc); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if doc.String() != commentedDoc {
		t.Errorf("String() = %q", doc.String())
	}
}

// TestDecoder_Value verifies decoding into Go values
func TestDecoder_Value(t *testing.T) {
	var got map[string]map[string]string
	if err := NewDecoder(strings.NewReader("[a]\nk=v\n")).Decode(&got); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if want := (map[string]map[string]string{"a": {"k": "v"}}); !reflect.DeepEqual(got, want) {
		t.Errorf("Decode() = %v, want %v", got, want)
	}

	if err := NewDecoder(strings.NewReader("k=v\n")).Decode(&got); err == nil {
		t.Error("Decode() of invalid INI error = nil")
	}
}

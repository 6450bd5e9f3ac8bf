// Package ini provides lossless INI parsing, editing and serialization.
//
// A parsed Document remembers every byte of its source: spacing, comments,
// blank lines, the line-ending style and whether the input ended with a
// newline. Serializing an unedited document reproduces the input exactly,
// and Set changes only the region it edits.
//
// Grammar: see internal/parser for the EBNF. Anything that is not one of the
// structural characters "[", "]", "=", ";", "#" or a line break is data;
// there is no quoting, escaping, type coercion or multi-line value.
//
// # Thread Safety
//
// All package-level functions are safe for concurrent use. A Document is not
// safe for concurrent mutation; use Clone to hand independent copies to
// other goroutines.
//
// # Parsing APIs
//
//   - Parse(string) - Parses INI text held in memory
//   - ParseBytes([]byte) - Parses INI bytes
//   - ParseReader(io.Reader) - Reads all of r and parses it
//   - Validate(string) - Reports the first syntax error, if any
//
// # Example usage:
//
//	doc, err := ini.Parse("[server]\nport=80\n")
//	if err != nil {
//	    // handle error
//	}
//	doc.Set("server", "port", "8080")
//	fmt.Print(doc.String()) // "[server]\nport=8080\n"
package ini

import (
	"errors"
	"fmt"
	"io"

	"github.com/shapestone/shape-ini/internal/parser"
)

// ParseError reports the location of a syntax error and the grammar
// alternatives that were expected there. Match it with errors.As.
type ParseError = parser.ParseError

// ErrNotFound is returned when a requested section or key does not exist.
var ErrNotFound = errors.New("ini: not found")

// Parse parses INI text into a Document.
//
// Parsing is all-or-nothing: on a syntax error the returned error is a
// *ParseError and no document is returned.
//
// Example:
//
//	doc, err := ini.Parse("; comment\n[hoge]\nfuga=piyo\n")
//	value, _ := doc.Get("hoge", "fuga") // "piyo"
func Parse(text string) (*Document, error) {
	t, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return &Document{tree: t}, nil
}

// ParseBytes parses INI data into a Document.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(string(data))
}

// ParseReader reads r to the end and parses the result.
//
// Line-ending detection needs the whole input, so the text is buffered
// before parsing.
//
// Example:
//
//	file, err := os.Open("config.ini")
//	if err != nil {
//	    return err
//	}
//	defer file.Close()
//
//	doc, err := ini.ParseReader(file)
//	if err != nil {
//	    return fmt.Errorf("parsing failed: %w", err)
//	}
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ini: read: %w", err)
	}
	return ParseBytes(data)
}

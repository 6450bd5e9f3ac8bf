// Package fastparser implements a high-performance INI scanner without tree construction.
//
// This scanner is optimized for the common case of unmarshaling INI directly into Go types.
// It accepts exactly the language of the lossless parser but keeps only sections, keys and
// values, slicing them straight out of the input instead of tokenizing it and recording
// every piece of formatting.
package fastparser

import (
	"fmt"
	"unicode/utf8"

	"github.com/shapestone/shape-ini/internal/parser"
)

// Error reports the line of the first syntax error. It carries less detail
// than parser.ParseError; callers wanting positions and expectations re-parse
// with the lossless parser.
type Error struct {
	Line   int
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ini: line %d: %s", e.Line, e.Reason)
}

// Parser scans normalized INI text line by line.
type Parser struct {
	data    string
	pos     int
	length  int
	line    int
	object  *Object
	section string
	inside  bool // a header has been seen
	skip    bool // current section is a duplicate
}

// Parse normalizes data and returns its projection.
func Parse(data []byte) (*Object, error) {
	text, _ := parser.Normalize(string(data))
	if !utf8.ValidString(text) {
		return nil, &Error{Line: 1, Reason: "invalid UTF-8"}
	}
	return NewParser(text).Parse()
}

// NewParser creates a scanner over normalized text (see parser.Normalize).
func NewParser(text string) *Parser {
	return &Parser{
		data:   text,
		length: len(text),
		line:   1,
		object: NewObject(),
	}
}

// Parse scans every line and returns the projection.
func (p *Parser) Parse() (*Object, error) {
	for p.pos < p.length {
		p.skipSpaces()
		if p.pos >= p.length {
			return nil, p.errorf("missing newline")
		}

		switch p.data[p.pos] {
		case '\n':
			p.advanceLine()
		case ';', '#':
			p.skipToNextLine()
		case '[':
			if err := p.parseHeader(); err != nil {
				return nil, err
			}
		case '=':
			return nil, p.errorf("unexpected '='")
		default:
			if !p.inside {
				return nil, p.errorf("entry outside a section")
			}
			if err := p.parseEntry(); err != nil {
				return nil, err
			}
		}
	}
	return p.object, nil
}

// parseHeader scans "[name]" followed by optional spaces.
func (p *Parser) parseHeader() error {
	p.pos++ // '['
	start := p.pos
	for p.pos < p.length {
		c := p.data[p.pos]
		if c == '[' || c == ']' || c == '\n' {
			break
		}
		p.pos++
	}
	name := p.data[start:p.pos]
	if name == "" {
		return p.errorf("empty section name")
	}
	if p.pos >= p.length || p.data[p.pos] != ']' {
		return p.errorf("expected ']'")
	}
	p.pos++

	p.skipSpaces()
	if p.pos >= p.length || p.data[p.pos] != '\n' {
		return p.errorf("unexpected text after section header")
	}
	p.advanceLine()

	p.section = name
	p.inside = true
	p.skip = !p.object.AddSection(name)
	return nil
}

// parseEntry scans "key=value". The key runs up to the first '=' and keeps
// trailing spaces; the value starts after the spaces following '='.
func (p *Parser) parseEntry() error {
	start := p.pos
	for p.pos < p.length && p.data[p.pos] != '=' && p.data[p.pos] != '\n' {
		p.pos++
	}
	if p.pos >= p.length || p.data[p.pos] != '=' {
		return p.errorf("expected '='")
	}
	key := p.data[start:p.pos]
	p.pos++

	p.skipSpaces()
	start = p.pos
	for p.pos < p.length && p.data[p.pos] != '\n' {
		p.pos++
	}
	value := p.data[start:p.pos]
	p.advanceLine()

	if !p.skip {
		p.object.Add(p.section, key, value)
	}
	return nil
}

// advanceLine consumes the newline at the current position.
func (p *Parser) advanceLine() {
	if p.pos < p.length {
		p.pos++
		p.line++
	}
}

// skipSpaces skips spaces and tabs.
func (p *Parser) skipSpaces() {
	for p.pos < p.length && isWhitespace(p.data[p.pos]) {
		p.pos++
	}
}

// skipToNextLine skips past the next newline.
func (p *Parser) skipToNextLine() {
	for p.pos < p.length && p.data[p.pos] != '\n' {
		p.pos++
	}
	p.advanceLine()
}

func (p *Parser) errorf(format string, args ...any) *Error {
	return &Error{Line: p.line, Reason: fmt.Sprintf(format, args...)}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

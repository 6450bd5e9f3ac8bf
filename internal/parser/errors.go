package parser

import (
	"fmt"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-ini/internal/tokenizer"
)

// Grammar alternatives named in parse errors.
const (
	expectSection     = "section header"
	expectSectionName = "section name"
	expectKey         = "key"
	expectComment     = "comment"
	expectEmptyLine   = "empty line"
	expectEqual       = "'='"
	expectLBracket    = "'['"
	expectRBracket    = "']'"
	expectNewline     = "newline"
)

// ParseError reports input that matches no grammar alternative.
//
// Line and Column are 1-based and refer to the original text; Offset is a
// byte offset into the normalized text (line endings collapsed to "\n").
type ParseError struct {
	Offset   int
	Line     int
	Column   int
	Found    string
	Expected []string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("ini: line %d, column %d: unexpected %s", e.Line, e.Column, e.Found)
	if len(e.Expected) > 0 {
		msg += ", expected " + alternatives(e.Expected)
	}
	return msg
}

// Position returns the error location as a Shape AST position.
func (e *ParseError) Position() ast.Position {
	return ast.NewPosition(e.Offset, e.Line, e.Column)
}

func alternatives(expected []string) string {
	switch len(expected) {
	case 1:
		return expected[0]
	case 2:
		return expected[0] + " or " + expected[1]
	}
	return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
}

// unexpected builds a ParseError at the current token.
func (p *Parser) unexpected(expected ...string) *ParseError {
	token := p.peek()
	if token == nil {
		return &ParseError{
			Offset:   p.end.Offset,
			Line:     p.end.Line,
			Column:   p.end.Column,
			Found:    "end of input",
			Expected: expected,
		}
	}
	return &ParseError{
		Offset:   token.Pos.Offset,
		Line:     token.Pos.Line,
		Column:   token.Pos.Column,
		Found:    token.Describe(),
		Expected: expected,
	}
}

// fromInvalidInput converts a tokenizer failure into a ParseError.
func fromInvalidInput(err *tokenizer.InvalidInputError) *ParseError {
	return &ParseError{
		Offset: err.Pos.Offset,
		Line:   err.Pos.Line,
		Column: err.Pos.Column,
		Found:  err.Reason,
	}
}

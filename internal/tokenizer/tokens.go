// Package tokenizer provides INI tokenization using Shape's tokenizer framework.
package tokenizer

import (
	"fmt"
	"unicode/utf8"
)

// Token type constants for the INI alphabet.
// Every character of a normalized document maps to exactly one of these kinds.
const (
	TokenNewline   = "Newline"   // \n
	TokenEqual     = "Equal"     // =
	TokenLBracket  = "LBracket"  // [
	TokenRBracket  = "RBracket"  // ]
	TokenSpace     = "Space"     // space or tab
	TokenSemicolon = "Semicolon" // ;
	TokenHash      = "Hash"      // #
	TokenOtherChar = "OtherChar" // anything else
)

// Position locates a token in the normalized input.
// Line and Column are 1-based; Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// advance returns the position immediately after text.
func (p Position) advance(text string) Position {
	for _, r := range text {
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	p.Offset += len(text)
	return p
}

// Token is a scanned token together with its source position.
// Text holds the literal characters; Space and OtherChar tokens may
// carry a run of several characters of the same kind.
type Token struct {
	Kind string
	Text string
	Pos  Position
}

// Describe renders the token for error messages.
func (t Token) Describe() string {
	switch t.Kind {
	case TokenNewline:
		return "newline"
	case TokenSpace:
		return "whitespace"
	case TokenOtherChar:
		r, _ := utf8.DecodeRuneInString(t.Text)
		return fmt.Sprintf("character %q", r)
	default:
		return fmt.Sprintf("'%s'", t.Text)
	}
}

// IsStructural reports whether r has a dedicated token kind.
func IsStructural(r rune) bool {
	switch r {
	case '\n', '=', '[', ']', ' ', '\t', ';', '#':
		return true
	}
	return false
}

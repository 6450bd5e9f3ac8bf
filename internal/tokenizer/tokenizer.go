package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewTokenizer creates a tokenizer for the INI alphabet.
//
// Whitespace is significant in a lossless parse, so the tokenizer is built
// without the framework's whitespace skipping and every space or tab becomes
// a Space token. OtherCharMatcher comes last and matches anything the
// structural matchers did not.
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.CharMatcherFunc(TokenNewline, '\n'),
		tokenizer.CharMatcherFunc(TokenEqual, '='),
		tokenizer.CharMatcherFunc(TokenLBracket, '['),
		tokenizer.CharMatcherFunc(TokenRBracket, ']'),
		tokenizer.CharMatcherFunc(TokenSemicolon, ';'),
		tokenizer.CharMatcherFunc(TokenHash, '#'),
		tokenizer.CharMatcherFunc(TokenSpace, ' '),
		tokenizer.CharMatcherFunc(TokenSpace, '\t'),
		OtherCharMatcher(),
	)
}

// OtherCharMatcher creates a matcher for a single non-structural character.
func OtherCharMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || IsStructural(r) {
			return nil
		}
		stream.NextChar()
		return tokenizer.NewToken(TokenOtherChar, []rune{r})
	}
}

// InvalidInputError reports input the tokenizer cannot classify.
type InvalidInputError struct {
	Pos    Position
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Reason)
}

// Tokenize scans normalized text into a token list.
//
// Runs of spaces and runs of other characters are coalesced (see
// RunTokenizer). The input must be valid UTF-8; an invalid byte is the only
// input the alphabet cannot classify.
func Tokenize(text string) ([]Token, error) {
	start := Position{Line: 1, Column: 1}

	if !utf8.ValidString(text) {
		bad := invalidOffset(text)
		return nil, &InvalidInputError{
			Pos:    start.advance(text[:bad]),
			Reason: fmt.Sprintf("invalid UTF-8 byte 0x%02x", text[bad]),
		}
	}

	runs := NewRunTokenizer(NewTokenizer())
	runs.Initialize(text)

	tokens := make([]Token, 0, len(text)/4+1)
	pos := start
	for {
		token, ok := runs.NextToken()
		if !ok {
			break
		}
		value := token.ValueString()
		if value == "" || !strings.HasPrefix(text[pos.Offset:], value) {
			return nil, &InvalidInputError{Pos: pos, Reason: "scanner lost sync with input"}
		}
		tokens = append(tokens, Token{Kind: token.Kind(), Text: value, Pos: pos})
		pos = pos.advance(value)
	}

	if pos.Offset != len(text) {
		r, _ := utf8.DecodeRuneInString(text[pos.Offset:])
		return nil, &InvalidInputError{Pos: pos, Reason: fmt.Sprintf("unrecognized character %q", r)}
	}

	return tokens, nil
}

// invalidOffset returns the byte offset of the first invalid UTF-8 sequence.
func invalidOffset(text string) int {
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(text)
}

// Package parser implements lossless recursive descent parsing for INI text.
// Each production rule of the grammar corresponds to a parse function, and
// every token consumed is stored in some field of the resulting tree.
//
// Grammar:
//
//	Document      = { IgnorableLine } { Section } ;
//	Section       = Spaces "[" SectionChar { SectionChar } "]" Spaces Newline
//	                { IgnorableLine } { Entry } ;
//	Entry         = Spaces KeyHead { KeyChar } "=" Spaces { ValueChar } Newline
//	                { IgnorableLine } ;
//	IgnorableLine = Spaces ( CommentMark Spaces { ValueChar } Newline | Newline ) ;
//	CommentMark   = ";" | "#" ;
//	SectionChar   = CommentMark | Space | "=" | OtherChar ;
//	KeyHead       = "]" | OtherChar ;
//	KeyChar       = CommentMark | "[" | Space | KeyHead ;
//	ValueChar     = KeyChar | "=" ;
//
// Lines are told apart by their first non-space token, so the parser looks
// past leading whitespace before choosing a production.
package parser

import (
	"errors"

	"github.com/shapestone/shape-ini/internal/tokenizer"
	"github.com/shapestone/shape-ini/pkg/tree"
)

// kindSet is a character class over token kinds.
type kindSet map[string]bool

func kinds(k ...string) kindSet {
	s := make(kindSet, len(k))
	for _, kind := range k {
		s[kind] = true
	}
	return s
}

var (
	spaceKinds       = kinds(tokenizer.TokenSpace)
	commentMarkKinds = kinds(tokenizer.TokenSemicolon, tokenizer.TokenHash)
	sectionCharKinds = kinds(tokenizer.TokenSemicolon, tokenizer.TokenHash, tokenizer.TokenSpace,
		tokenizer.TokenEqual, tokenizer.TokenOtherChar)
	keyHeadKinds = kinds(tokenizer.TokenRBracket, tokenizer.TokenOtherChar)
	keyCharKinds = kinds(tokenizer.TokenSemicolon, tokenizer.TokenHash, tokenizer.TokenLBracket,
		tokenizer.TokenSpace, tokenizer.TokenRBracket, tokenizer.TokenOtherChar)
	valueCharKinds = kinds(tokenizer.TokenSemicolon, tokenizer.TokenHash, tokenizer.TokenLBracket,
		tokenizer.TokenSpace, tokenizer.TokenRBracket, tokenizer.TokenOtherChar, tokenizer.TokenEqual)
)

// Parser is a recursive descent parser over a token list.
type Parser struct {
	tokens []tokenizer.Token
	pos    int
	end    tokenizer.Position // position just past the last token
}

// Parse normalizes, tokenizes and parses text into a document tree.
// Parsing is all-or-nothing: on error no tree is returned.
func Parse(text string) (*tree.Document, error) {
	normalized, meta := Normalize(text)

	tokens, err := tokenizer.Tokenize(normalized)
	if err != nil {
		var invalid *tokenizer.InvalidInputError
		if errors.As(err, &invalid) {
			return nil, fromInvalidInput(invalid)
		}
		return nil, err
	}

	doc, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, err
	}
	doc.Meta = meta
	return doc, nil
}

// NewParser creates a parser over tokens produced by tokenizer.Tokenize.
func NewParser(tokens []tokenizer.Token) *Parser {
	end := tokenizer.Position{Line: 1, Column: 1}
	if n := len(tokens); n > 0 {
		last := tokens[n-1]
		end = last.Pos
		end.Offset += len(last.Text)
		if last.Kind == tokenizer.TokenNewline {
			end.Line++
			end.Column = 1
		} else {
			end.Column += len([]rune(last.Text))
		}
	}
	return &Parser{tokens: tokens, end: end}
}

// Parse parses the whole token list as a document.
//
// Grammar:
//
//	Document = { IgnorableLine } { Section } ;
func (p *Parser) Parse() (*tree.Document, error) {
	doc := &tree.Document{Meta: tree.Metadata{LineEnding: tree.LF}}

	for p.atIgnorableLine() {
		line, err := p.parseIgnorableLine()
		if err != nil {
			return nil, err
		}
		doc.LeadingLines = append(doc.LeadingLines, line)
	}

	for p.peek() != nil {
		if p.lineStart() != tokenizer.TokenLBracket {
			p.skipSpaces()
			return nil, p.unexpected(expectSection, expectComment, expectEmptyLine)
		}
		section, err := p.parseSection()
		if err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, section)
	}

	return doc, nil
}

// parseSection parses a section header and its body.
//
// Grammar:
//
//	Section = Header { IgnorableLine } { Entry } ;
//
// The body ends at the next header line or at end of input.
func (p *Parser) parseSection() (*tree.Section, error) {
	header, err := p.parseHeader()
	if err != nil {
		return nil, err
	}
	section := &tree.Section{Header: header}

	for p.atIgnorableLine() {
		line, err := p.parseIgnorableLine()
		if err != nil {
			return nil, err
		}
		section.Comments = append(section.Comments, line)
	}

	for p.peek() != nil {
		kind := p.lineStart()
		if kind == tokenizer.TokenLBracket {
			break
		}
		if !keyHeadKinds[kind] {
			p.skipSpaces()
			return nil, p.unexpected(expectKey, expectSection, expectComment, expectEmptyLine)
		}
		entry, err := p.parseEntry()
		if err != nil {
			return nil, err
		}
		section.Entries = append(section.Entries, entry)
	}

	return section, nil
}

// parseHeader parses a section header line.
//
// Grammar:
//
//	Header = Spaces "[" SectionChar { SectionChar } "]" Spaces Newline ;
func (p *Parser) parseHeader() (tree.Header, error) {
	var header tree.Header
	header.SpaceBefore = p.parseSpaces()

	if _, err := p.expect(tokenizer.TokenLBracket, expectLBracket); err != nil {
		return header, err
	}

	header.Name = p.parseRun(sectionCharKinds)
	if header.Name == "" {
		return header, p.unexpected(expectSectionName)
	}

	if _, err := p.expect(tokenizer.TokenRBracket, expectRBracket, expectSectionName); err != nil {
		return header, err
	}

	spaces := p.parseSpaces()
	newline, err := p.expect(tokenizer.TokenNewline, expectNewline)
	if err != nil {
		return header, err
	}
	header.SpaceAfter = spaces + newline
	return header, nil
}

// parseEntry parses a key/value line and the ignorable lines after it.
//
// Grammar:
//
//	Entry = Spaces KeyHead { KeyChar } "=" ValueLine { IgnorableLine } ;
func (p *Parser) parseEntry() (*tree.Entry, error) {
	entry := &tree.Entry{SpaceBeforeKey: p.parseSpaces()}

	head := p.peek()
	if head == nil || !keyHeadKinds[head.Kind] {
		return nil, p.unexpected(expectKey)
	}
	p.advance()
	entry.Key = head.Text + p.parseRun(keyCharKinds)

	if _, err := p.expect(tokenizer.TokenEqual, expectEqual); err != nil {
		return nil, err
	}

	var err error
	entry.SpaceAfterEqual, entry.Value, entry.Terminator, err = p.parseValueLine()
	if err != nil {
		return nil, err
	}

	for p.atIgnorableLine() {
		line, err := p.parseIgnorableLine()
		if err != nil {
			return nil, err
		}
		entry.TrailingComments = append(entry.TrailingComments, line)
	}

	return entry, nil
}

// parseIgnorableLine parses a comment or an empty line.
//
// Grammar:
//
//	IgnorableLine = Spaces ( CommentMark ValueLine | Newline ) ;
//
// The comment alternative is tried first; a line of only whitespace is an
// empty line.
func (p *Parser) parseIgnorableLine() (tree.IgnorableLine, error) {
	spaces := p.parseSpaces()

	token := p.peek()
	switch {
	case token != nil && commentMarkKinds[token.Kind]:
		p.advance()
		comment := &tree.Comment{SpaceBeforeMark: spaces, Mark: token.Text}
		var err error
		comment.SpaceAfterMark, comment.Text, comment.Terminator, err = p.parseValueLine()
		if err != nil {
			return nil, err
		}
		return comment, nil

	case token != nil && token.Kind == tokenizer.TokenNewline:
		p.advance()
		return &tree.EmptyLine{Text: spaces + token.Text}, nil
	}

	return nil, p.unexpected(expectComment, expectEmptyLine)
}

// parseValueLine parses the rest of a line after "=" or a comment mark.
//
// Grammar:
//
//	ValueLine = Spaces { ValueChar } Newline ;
//
// Whitespace after the value belongs to the value.
func (p *Parser) parseValueLine() (spaces, value, newline string, err error) {
	spaces = p.parseSpaces()
	value = p.parseRun(valueCharKinds)
	newline, err = p.expect(tokenizer.TokenNewline, expectNewline)
	return spaces, value, newline, err
}

// parseSpaces consumes a run of whitespace.
//
// Grammar:
//
//	Spaces = { Space } ;
func (p *Parser) parseSpaces() string {
	return p.parseRun(spaceKinds)
}

// parseRun consumes tokens while their kind is in class and returns their text.
func (p *Parser) parseRun(class kindSet) string {
	start := p.pos
	for p.pos < len(p.tokens) && class[p.tokens[p.pos].Kind] {
		p.pos++
	}
	if p.pos-start == 1 {
		return p.tokens[start].Text
	}
	var text []byte
	for _, token := range p.tokens[start:p.pos] {
		text = append(text, token.Text...)
	}
	return string(text)
}

// Helper methods

// peek returns the current token, or nil at end of input.
func (p *Parser) peek() *tokenizer.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

// advance moves to the next token.
func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// expect consumes a token of the given kind and returns its text.
// expected names the alternatives reported if the token does not match.
func (p *Parser) expect(kind string, expected ...string) (string, error) {
	token := p.peek()
	if token == nil || token.Kind != kind {
		return "", p.unexpected(expected...)
	}
	p.advance()
	return token.Text, nil
}

// lineStart returns the kind of the first non-space token at or after the
// current position without consuming anything. It returns "" at end of input.
func (p *Parser) lineStart() string {
	for i := p.pos; i < len(p.tokens); i++ {
		if p.tokens[i].Kind != tokenizer.TokenSpace {
			return p.tokens[i].Kind
		}
	}
	return ""
}

// atIgnorableLine reports whether the next line is a comment or an empty line.
func (p *Parser) atIgnorableLine() bool {
	kind := p.lineStart()
	return commentMarkKinds[kind] || kind == tokenizer.TokenNewline
}

// skipSpaces moves past whitespace so errors point at the offending token.
func (p *Parser) skipSpaces() {
	p.parseSpaces()
}

package ini

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validate checks whether text is syntactically valid INI.
//
// Returns nil if the text parses, or the *ParseError describing the first
// problem.
//
// Example:
//
//	if err := ini.Validate("=value\n"); err != nil {
//	    fmt.Println(err) // ini: line 1, column 1: unexpected '=', expected section header, comment or empty line
//	}
func Validate(text string) error {
	_, err := Parse(text)
	return err
}

// The checks below guard generated output (Marshal, Builder, FromAST) so that
// it parses back into the same names and values. Set does not use them: an
// edit stores whatever it is given.

const lineBreaks = "\r\n"

// checkSectionName reports whether name can appear between "[" and "]".
func checkSectionName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("ini: empty section name")
	case !utf8.ValidString(name):
		return fmt.Errorf("ini: section name %q is not valid UTF-8", name)
	case strings.ContainsAny(name, "[]"+lineBreaks):
		return fmt.Errorf("ini: section name %q contains '[', ']' or a line break", name)
	}
	return nil
}

// checkKey reports whether key can start an entry line and stop at "=".
func checkKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("ini: empty key")
	case !utf8.ValidString(key):
		return fmt.Errorf("ini: key %q is not valid UTF-8", key)
	case strings.ContainsAny(key[:1], " \t;#["):
		return fmt.Errorf("ini: key %q starts with %q", key, key[:1])
	case strings.ContainsAny(key, "="+lineBreaks):
		return fmt.Errorf("ini: key %q contains '=' or a line break", key)
	}
	return nil
}

// checkValue reports whether value survives a round trip as a single line.
// Leading whitespace would be read back as spacing after "=".
func checkValue(key, value string) error {
	return checkLineText("value of "+key, value)
}

// checkComment reports whether text can follow a comment mark.
func checkComment(text string) error {
	return checkLineText("comment", text)
}

func checkLineText(what, text string) error {
	switch {
	case !utf8.ValidString(text):
		return fmt.Errorf("ini: %s %q is not valid UTF-8", what, text)
	case strings.ContainsAny(text, lineBreaks):
		return fmt.Errorf("ini: %s %q contains a line break", what, text)
	case text != "" && strings.ContainsAny(text[:1], " \t"):
		return fmt.Errorf("ini: %s %q starts with whitespace", what, text)
	}
	return nil
}

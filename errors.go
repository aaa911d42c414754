package dumd

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrEmptyDocument reports input that produced no tokens at all.
	ErrEmptyDocument = errors.New("empty document")
	// ErrEmptyContent reports delimiters that matched around nothing.
	ErrEmptyContent = errors.New("empty content")
	// ErrUnexpectedChar reports a structural character the grammar did not allow.
	ErrUnexpectedChar = errors.New("unexpected character")
	// ErrUnexpectedString reports text where only structural tokens were valid.
	ErrUnexpectedString = errors.New("unexpected string")
	// ErrUnexpectedEnd reports input that ended before a required delimiter.
	ErrUnexpectedEnd = errors.New("unexpected end of input")
	// ErrInvalidURL reports a link or reference target that is not a URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrIncompleteData reports options missing a required field.
	ErrIncompleteData = errors.New("incomplete builder data")
)

var errRelativeURL = errors.New("relative URL without a base")

// ParseError describes why an input is not a valid instance of a construct.
// Kind is one of the package sentinels, so errors.Is(err, ErrUnexpectedChar)
// works on any error returned by this package.
type ParseError struct {
	Kind error
	// Char is set for ErrUnexpectedChar.
	Char rune
	// Text is set for ErrUnexpectedString and ErrInvalidURL.
	Text string
	// Err is the URL parser's error for ErrInvalidURL.
	Err error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrUnexpectedChar:
		return fmt.Sprintf("%v %s", e.Kind, strconv.QuoteRune(e.Char))
	case ErrUnexpectedString:
		return fmt.Sprintf("%v %q", e.Kind, e.Text)
	case ErrInvalidURL:
		if e.Err != nil {
			return fmt.Sprintf("%v %q: %v", e.Kind, e.Text, e.Err)
		}
		return fmt.Sprintf("%v %q", e.Kind, e.Text)
	}
	if e.Kind == nil {
		return "parse error"
	}
	return e.Kind.Error()
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func emptyDocument() error { return &ParseError{Kind: ErrEmptyDocument} }

func emptyContent() error { return &ParseError{Kind: ErrEmptyContent} }

func unexpectedEnd() error { return &ParseError{Kind: ErrUnexpectedEnd} }

func incompleteData() error { return &ParseError{Kind: ErrIncompleteData} }

func unexpectedChar(c rune) error {
	return &ParseError{Kind: ErrUnexpectedChar, Char: c}
}

func unexpectedString(s string) error {
	return &ParseError{Kind: ErrUnexpectedString, Text: s}
}

func invalidURL(target string, err error) error {
	return &ParseError{Kind: ErrInvalidURL, Text: target, Err: err}
}

// unexpectedToken reports t as either a stray character or a stray string.
func unexpectedToken(t Token) error {
	if t.Kind == tokenRun {
		return unexpectedChar(t.Char)
	}
	return unexpectedString(t.Text)
}

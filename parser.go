package dumd

import (
	"fmt"
	"strings"
)

// Element is a parsed markup construct. String returns its markup source;
// parsing that source yields an equal value.
type Element interface {
	fmt.Stringer
	element()
}

// Option configures a Parser.
type Option func(*config)

type config struct {
	lenientEmphasis bool
	referenceRune   func(rune) bool
}

// WithLenientEmphasis accepts an emphasis closing run longer than its
// opening run and drops the extra stars. The default requires equal runs.
func WithLenientEmphasis(enabled bool) Option {
	return func(cfg *config) {
		cfg.lenientEmphasis = enabled
	}
}

// WithReferenceRunes sets which runes a link target may contain when it is
// read as a reference name instead of a URL. nil restores the default set.
func WithReferenceRunes(fn func(rune) bool) Option {
	return func(cfg *config) {
		cfg.referenceRune = fn
	}
}

// DefaultReferenceRune admits letters, digits and ? ! . , ; : ' ".
func DefaultReferenceRune(r rune) bool {
	return isDigit(r) || isLetter(r) || strings.ContainsRune(`?!.,;:'"`, r)
}

// Parser parses single constructs. It is immutable and safe for concurrent use.
type Parser struct {
	cfg config
}

// NewParser returns a Parser configured by opts.
func NewParser(opts ...Option) *Parser {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.referenceRune == nil {
		cfg.referenceRune = DefaultReferenceRune
	}
	return &Parser{cfg: cfg}
}

var defaultParser = NewParser()

// parseWhole tokenizes src, runs fn and requires that fn consumed every token.
func parseWhole[T any](p *Parser, src string, fn func(*Parser, *cursor) (T, error)) (T, error) {
	var zero T
	toks := Tokenize(src)
	if len(toks) == 0 {
		return zero, emptyDocument()
	}
	c := newCursor(toks)
	v, err := fn(p, c)
	if err != nil {
		return zero, err
	}
	if err := c.expectEnd(); err != nil {
		return zero, err
	}
	return v, nil
}

// Code parses src as exactly one code span or fenced code block.
func (p *Parser) Code(src string) (Code, error) { return parseWhole(p, src, parseCode) }

// Heading parses src as exactly one ATX or setext heading.
func (p *Parser) Heading(src string) (Heading, error) { return parseWhole(p, src, parseHeading) }

// Item parses src as exactly one inline item.
func (p *Parser) Item(src string) (Item, error) { return parseWhole(p, src, (*Parser).parseItem) }

// Reference parses src as exactly one reference definition.
func (p *Parser) Reference(src string) (Reference, error) {
	return parseWhole(p, src, parseReference)
}

// List parses src as exactly one list.
func (p *Parser) List(src string) (List, error) { return parseWhole(p, src, parseList) }

// Paragraph parses src as lines of inline items and code spans.
func (p *Parser) Paragraph(src string) (Paragraph, error) {
	return parseWhole(p, src, (*Parser).parseParagraph)
}

// ParseCode parses src with the default parser.
func ParseCode(src string) (Code, error) { return defaultParser.Code(src) }

// ParseHeading parses src with the default parser.
func ParseHeading(src string) (Heading, error) { return defaultParser.Heading(src) }

// ParseItem parses src with the default parser.
func ParseItem(src string) (Item, error) { return defaultParser.Item(src) }

// ParseReference parses src with the default parser.
func ParseReference(src string) (Reference, error) { return defaultParser.Reference(src) }

// ParseList parses src with the default parser.
func ParseList(src string) (List, error) { return defaultParser.List(src) }

// ParseParagraph parses src with the default parser.
func ParseParagraph(src string) (Paragraph, error) { return defaultParser.Paragraph(src) }

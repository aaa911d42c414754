package dumd

import (
	"slices"
	"strings"
)

// Inline is an element that can appear inside a paragraph line: an Item or
// a code span.
type Inline interface {
	Element
	inline()
}

// Paragraph is one or more lines of inline elements.
type Paragraph struct {
	lines [][]Inline
}

func (Paragraph) element() {}
func (Paragraph) block()   {}

// Lines returns a copy of the paragraph's lines.
func (p Paragraph) Lines() [][]Inline {
	out := make([][]Inline, len(p.lines))
	for i, l := range p.lines {
		out[i] = slices.Clone(l)
	}
	return out
}

// Equal reports structural equality.
func (p Paragraph) Equal(o Paragraph) bool {
	return slices.EqualFunc(p.lines, o.lines, func(a, b []Inline) bool {
		return slices.Equal(a, b)
	})
}

func (p Paragraph) String() string {
	var b strings.Builder
	for i, line := range p.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, in := range line {
			b.WriteString(in.String())
		}
	}
	return b.String()
}

func (p *Parser) parseParagraph(c *cursor) (Paragraph, error) {
	var para Paragraph
	for !c.done() {
		line, err := p.parseInlineLine(c)
		if err != nil {
			return Paragraph{}, err
		}
		para.lines = append(para.lines, line)
		if err := paragraphLineEnd(c); err != nil {
			return Paragraph{}, err
		}
	}
	return para, nil
}

// parseInlineLine reads inline elements up to a newline or the end of input.
func (p *Parser) parseInlineLine(c *cursor) ([]Inline, error) {
	var line []Inline
	for {
		t, ok := c.peek()
		if !ok || isNewline(t) {
			break
		}
		var (
			in  Inline
			err error
		)
		switch {
		case t.IsRun('`', 1), t.IsRun('`', 2):
			in, err = parseCode(p, c)
		case t.IsRun('`', 0):
			err = unexpectedChar('`')
		default:
			in, err = p.parseItem(c)
		}
		if err != nil {
			return nil, err
		}
		line = append(line, in)
	}
	if len(line) == 0 {
		if t, ok := c.peek(); ok {
			return nil, unexpectedToken(t)
		}
		return nil, unexpectedEnd()
	}
	return line, nil
}

func paragraphLineEnd(c *cursor) error {
	t, ok := c.next()
	if !ok || t.IsRun('\n', 1) {
		return nil
	}
	return unexpectedToken(t)
}

// NewParagraph builds a paragraph from lines of inline elements. The result
// must read back as the same lines, so for example two adjacent plain items
// are rejected.
func NewParagraph(lines ...[]Inline) (Paragraph, error) {
	if len(lines) == 0 {
		return Paragraph{}, incompleteData()
	}
	para := Paragraph{lines: make([][]Inline, 0, len(lines))}
	for _, line := range lines {
		if len(line) == 0 {
			return Paragraph{}, incompleteData()
		}
		for _, in := range line {
			if in == nil {
				return Paragraph{}, incompleteData()
			}
			if code, ok := in.(Code); ok && !code.Inline() {
				return Paragraph{}, unexpectedChar('`')
			}
		}
		para.lines = append(para.lines, slices.Clone(line))
	}
	src := para.String()
	back, err := defaultParser.Paragraph(src)
	if err != nil {
		return Paragraph{}, err
	}
	if !back.Equal(para) {
		return Paragraph{}, unexpectedString(src)
	}
	return para, nil
}

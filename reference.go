package dumd

import (
	"cmp"
	"strings"
)

// referenceNameRunes are the punctuation runs a reference name may contain
// besides text and numbers.
const referenceNameRunes = `!?.,;:'"`

// Reference is a link definition: [name]: <href> "title".
type Reference struct {
	name  string
	href  string
	title string
}

func (Reference) element() {}
func (Reference) block()   {}

func (r Reference) Name() string  { return r.name }
func (r Reference) Href() string  { return r.href }
func (r Reference) Title() string { return r.title }

func (r Reference) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(r.name)
	b.WriteString("]: <")
	b.WriteString(r.href)
	b.WriteByte('>')
	if r.title != "" {
		open, close := titleDelims(r.title)
		b.WriteByte(' ')
		b.WriteByte(open)
		b.WriteString(r.title)
		b.WriteByte(close)
	}
	return b.String()
}

// titleDelims picks the first delimiter pair that does not occur in title.
func titleDelims(title string) (byte, byte) {
	switch {
	case !strings.Contains(title, `"`):
		return '"', '"'
	case !strings.Contains(title, `'`):
		return '\'', '\''
	}
	return '(', ')'
}

// Compare orders references by name, href and title.
func (r Reference) Compare(o Reference) int {
	return cmp.Or(
		strings.Compare(r.name, o.name),
		strings.Compare(r.href, o.href),
		strings.Compare(r.title, o.title),
	)
}

func parseReference(_ *Parser, c *cursor) (Reference, error) {
	if err := c.expect('[', 1); err != nil {
		return Reference{}, err
	}
	name, err := referenceName(c)
	if err != nil {
		return Reference{}, err
	}
	if err := c.expect(':', 1); err != nil {
		return Reference{}, err
	}
	c.accept(' ', 0)
	if t, ok := c.peek(); ok && t.IsRun('<', 1) {
		c.pos++
		raw, err := bracketedURL(c)
		if err != nil {
			return Reference{}, err
		}
		c.accept(' ', 0)
		return finishReference(name, raw, c)
	}
	// Text tokens fold spaces, so the unbracketed form is split on the
	// first space of its source and the remainder re-tokenized as the title.
	rest, _ := c.collect(func(Token) bool { return false })
	if strings.Contains(rest, "\n") {
		return Reference{}, unexpectedChar('\n')
	}
	raw, tail, _ := strings.Cut(rest, " ")
	if strings.Contains(raw, ">") {
		return Reference{}, unexpectedChar('>')
	}
	if raw == "" {
		return Reference{}, invalidURL(raw, errRelativeURL)
	}
	return finishReference(name, raw, newCursor(Tokenize(strings.TrimLeft(tail, " "))))
}

func finishReference(name, raw string, c *cursor) (Reference, error) {
	u, err := parseAbsoluteURL(raw)
	if err != nil {
		return Reference{}, invalidURL(raw, err)
	}
	title, err := referenceTitle(c)
	if err != nil {
		return Reference{}, err
	}
	if err := c.expectEnd(); err != nil {
		return Reference{}, err
	}
	return Reference{name: name, href: u.String(), title: title}, nil
}

// referenceName reads the name through the closing "]".
func referenceName(c *cursor) (string, error) {
	var b strings.Builder
	for {
		t, ok := c.next()
		if !ok {
			return "", unexpectedEnd()
		}
		switch {
		case t.Kind != tokenRun, strings.ContainsRune(referenceNameRunes, t.Char):
			b.WriteString(t.String())
		case t.IsRun(']', 1) && b.Len() > 0:
			return b.String(), nil
		default:
			return "", unexpectedChar(t.Char)
		}
	}
}

// bracketedURL reads after "<" through the mandatory ">".
func bracketedURL(c *cursor) (string, error) {
	var b strings.Builder
	for {
		t, ok := c.next()
		if !ok {
			return "", unexpectedChar('<')
		}
		switch {
		case t.IsRun('>', 1):
			return b.String(), nil
		case t.IsRun('>', 0):
			return "", unexpectedChar('>')
		case isNewline(t):
			return "", unexpectedChar('\n')
		}
		b.WriteString(t.String())
	}
}

// referenceTitle reads an optional "title", 'title' or (title). No tokens
// means no title.
func referenceTitle(c *cursor) (string, error) {
	open, ok := c.next()
	if !ok {
		return "", nil
	}
	var closer rune
	switch {
	case open.IsRun('"', 1), open.IsRun('\'', 1):
		closer = open.Char
	case open.IsRun('(', 1):
		closer = ')'
	default:
		return "", unexpectedToken(open)
	}
	var b strings.Builder
	for {
		t, ok := c.next()
		if !ok {
			return "", unexpectedEnd()
		}
		switch {
		case t.IsRun(closer, 1):
			return b.String(), nil
		case isNewline(t):
			return "", unexpectedChar('\n')
		}
		b.WriteString(t.String())
	}
}

// ReferenceOptions describes a Reference for NewReference.
type ReferenceOptions struct {
	Name  string
	Href  string
	Title string
}

// NewReference validates opts and returns the Reference they describe.
func NewReference(opts ReferenceOptions) (Reference, error) {
	if opts.Name == "" || opts.Href == "" {
		return Reference{}, incompleteData()
	}
	for _, t := range Tokenize(opts.Name) {
		if t.Kind == tokenRun && !strings.ContainsRune(referenceNameRunes, t.Char) {
			return Reference{}, unexpectedChar(t.Char)
		}
	}
	u, err := parseAbsoluteURL(opts.Href)
	if err != nil {
		return Reference{}, invalidURL(opts.Href, err)
	}
	href := u.String()
	if i := strings.IndexAny(href, ">\n"); i >= 0 {
		return Reference{}, unexpectedChar(rune(href[i]))
	}
	switch {
	case strings.Contains(opts.Title, "\n"):
		return Reference{}, unexpectedChar('\n')
	case strings.ContainsRune(opts.Title, '"') && strings.ContainsRune(opts.Title, '\'') &&
		strings.ContainsRune(opts.Title, ')'):
		return Reference{}, unexpectedChar(')')
	}
	return Reference{name: opts.Name, href: href, title: opts.Title}, nil
}

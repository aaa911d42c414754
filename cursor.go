package dumd

import "strings"

// cursor walks a token slice. It only ever moves forward; peeking is an index
// read, so no token is consumed twice.
type cursor struct {
	toks []Token
	pos  int
}

func newCursor(toks []Token) *cursor {
	return &cursor{toks: toks}
}

func (c *cursor) done() bool {
	return c.pos >= len(c.toks)
}

func (c *cursor) peek() (Token, bool) {
	return c.peekAt(0)
}

func (c *cursor) peekAt(off int) (Token, bool) {
	i := c.pos + off
	if i < 0 || i >= len(c.toks) {
		return Token{}, false
	}
	return c.toks[i], true
}

func (c *cursor) next() (Token, bool) {
	t, ok := c.peek()
	if ok {
		c.pos++
	}
	return t, ok
}

// expect consumes the next token and requires it to be a run of ch. A count
// of 0 accepts any run length.
func (c *cursor) expect(ch rune, count int) error {
	t, ok := c.next()
	if !ok {
		return unexpectedEnd()
	}
	if !t.IsRun(ch, count) {
		return unexpectedToken(t)
	}
	return nil
}

// expectEnd fails on the first leftover token.
func (c *cursor) expectEnd() error {
	if t, ok := c.peek(); ok {
		return unexpectedToken(t)
	}
	return nil
}

// accept consumes the next token only when it is a run of ch.
func (c *cursor) accept(ch rune, count int) bool {
	t, ok := c.peek()
	if !ok || !t.IsRun(ch, count) {
		return false
	}
	c.pos++
	return true
}

// collect concatenates token text until stop matches or input runs out.
// The stopping token is left in place; found reports whether one was seen.
func (c *cursor) collect(stop func(Token) bool) (text string, found bool) {
	var b strings.Builder
	for {
		t, ok := c.peek()
		if !ok {
			return b.String(), false
		}
		if stop(t) {
			return b.String(), true
		}
		b.WriteString(t.String())
		c.pos++
	}
}

func isNewline(t Token) bool {
	return t.IsRun('\n', 0)
}

// collectLine reads the rest of the current line. Empty lines are
// ErrUnexpectedEnd.
func (c *cursor) collectLine() (string, error) {
	text, _ := c.collect(isNewline)
	if text == "" {
		if t, ok := c.peek(); ok {
			return "", unexpectedToken(t)
		}
		return "", unexpectedEnd()
	}
	return text, nil
}

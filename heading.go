package dumd

import (
	"cmp"
	"strings"
)

// HeadingLevel is the depth of a heading, Level1 through Level6.
type HeadingLevel uint8

const (
	Level1 HeadingLevel = iota + 1
	Level2
	Level3
	Level4
	Level5
	Level6
)

// Increment returns the next deeper level, saturating at Level6.
func (l HeadingLevel) Increment() HeadingLevel {
	if l >= Level6 {
		return Level6
	}
	return l + 1
}

// Decrement returns the next shallower level, saturating at Level1.
func (l HeadingLevel) Decrement() HeadingLevel {
	if l <= Level1 {
		return Level1
	}
	return l - 1
}

// Int returns the level as the number of '#' it serializes to.
func (l HeadingLevel) Int() int { return int(l) }

// Heading is a single-line title. Content is plain text; emphasis markers
// inside it are kept literally.
type Heading struct {
	level   HeadingLevel
	content string
}

func (Heading) element() {}
func (Heading) block()   {}

func (h Heading) Level() HeadingLevel { return h.level }
func (h Heading) Content() string     { return h.content }

// String always uses the ATX form, even for headings parsed from setext.
func (h Heading) String() string {
	return repeatRune('#', h.level.Int()) + " " + h.content
}

// Compare orders headings by level, then content.
func (h Heading) Compare(o Heading) int {
	return cmp.Or(cmp.Compare(h.level, o.level), strings.Compare(h.content, o.content))
}

func parseHeading(_ *Parser, c *cursor) (Heading, error) {
	t, ok := c.peek()
	if !ok {
		return Heading{}, unexpectedEnd()
	}
	if t.IsRun('#', 0) {
		return parseATXHeading(c)
	}
	return parseSetextHeading(c)
}

func parseATXHeading(c *cursor) (Heading, error) {
	t, _ := c.next()
	if t.Count > int(Level6) {
		return Heading{}, unexpectedChar('#')
	}
	c.accept(' ', 0)
	content, found := c.collect(isNewline)
	if found {
		return Heading{}, unexpectedChar('\n')
	}
	if content == "" {
		return Heading{}, unexpectedEnd()
	}
	return Heading{level: HeadingLevel(t.Count), content: content}, nil
}

// parseSetextHeading reads a text line underlined by '=' (Level1) or
// '-' (Level2).
func parseSetextHeading(c *cursor) (Heading, error) {
	if t, _ := c.peek(); t.IsRun(' ', 0) {
		return Heading{}, unexpectedChar(' ')
	}
	content, found := c.collect(isNewline)
	if !found {
		return Heading{}, unexpectedEnd()
	}
	if content == "" {
		return Heading{}, unexpectedChar('\n')
	}
	if err := c.expect('\n', 1); err != nil {
		return Heading{}, err
	}
	u, ok := c.next()
	switch {
	case !ok:
		return Heading{}, unexpectedEnd()
	case u.IsRun('=', 0):
		return Heading{level: Level1, content: content}, nil
	case u.IsRun('-', 0):
		return Heading{level: Level2, content: content}, nil
	}
	return Heading{}, unexpectedToken(u)
}

// HeadingOptions describes a Heading for NewHeading. A zero Level means Level1.
type HeadingOptions struct {
	Level   HeadingLevel
	Content string
}

// NewHeading validates opts and returns the Heading they describe.
func NewHeading(opts HeadingOptions) (Heading, error) {
	if opts.Content == "" {
		return Heading{}, incompleteData()
	}
	level := opts.Level
	if level == 0 {
		level = Level1
	}
	switch {
	case level > Level6:
		return Heading{}, unexpectedChar('#')
	case strings.HasPrefix(opts.Content, " "):
		return Heading{}, unexpectedChar(' ')
	case strings.Contains(opts.Content, "\n"):
		return Heading{}, unexpectedChar('\n')
	}
	return Heading{level: level, content: opts.Content}, nil
}

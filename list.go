package dumd

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// ListEntry is one top-level line of a list with the indented lines under it.
type ListEntry struct {
	content string
	sub     []string
}

func (e ListEntry) Content() string { return e.content }
func (e ListEntry) Sub() []string   { return slices.Clone(e.sub) }

func (e ListEntry) equal(o ListEntry) bool {
	return e.content == o.content && slices.Equal(e.sub, o.sub)
}

// List is an ordered or unordered list. Entry content is plain text.
type List struct {
	ordered bool
	start   int
	entries []ListEntry
}

func (List) element() {}
func (List) block()   {}

func (l List) Ordered() bool { return l.ordered }

// Start is the number of the first entry of an ordered list, 0 otherwise.
func (l List) Start() int { return l.start }

func (l List) Entries() []ListEntry { return slices.Clone(l.entries) }

func (l List) Len() int { return len(l.entries) }

// Equal reports structural equality.
func (l List) Equal(o List) bool {
	return l.ordered == o.ordered && l.start == o.start &&
		slices.EqualFunc(l.entries, o.entries, ListEntry.equal)
}

func (l List) String() string {
	var b strings.Builder
	for i, e := range l.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		if l.ordered {
			b.WriteString(strconv.Itoa(l.start + i))
			b.WriteString(". ")
		} else {
			b.WriteString("- ")
		}
		b.WriteString(e.content)
		for _, s := range e.sub {
			if l.ordered {
				b.WriteString("\n\t1. ")
			} else {
				b.WriteString("\n\t- ")
			}
			b.WriteString(s)
		}
	}
	return b.String()
}

func parseList(_ *Parser, c *cursor) (List, error) {
	var l List
	for first := true; !c.done(); first = false {
		nested, indent := listIndent(c)
		mark := c.pos
		ordered, num, err := listMarker(c)
		if err != nil {
			return List{}, err
		}
		if first {
			if nested {
				return List{}, unexpectedChar(indent)
			}
			l.ordered, l.start = ordered, num
		} else if ordered != l.ordered {
			return List{}, unexpectedToken(c.toks[c.pos-1])
		}
		if err := c.expect(' ', 0); err != nil {
			return List{}, err
		}
		content, err := c.collectLine()
		if err != nil {
			return List{}, err
		}
		if nested {
			last := &l.entries[len(l.entries)-1]
			last.sub = append(last.sub, content)
		} else {
			if l.ordered && l.start > math.MaxInt-len(l.entries) {
				return List{}, unexpectedString(c.toks[mark].Text)
			}
			l.entries = append(l.entries, ListEntry{content: content})
		}
		if err := listLineEnd(c); err != nil {
			return List{}, err
		}
	}
	if len(l.entries) == 0 {
		return List{}, unexpectedEnd()
	}
	return l, nil
}

// listIndent consumes leading whitespace. A tab or two or more spaces nests
// the line; a single space is ignored.
func listIndent(c *cursor) (bool, rune) {
	t, ok := c.peek()
	switch {
	case !ok:
		return false, 0
	case t.IsRun('\t', 1):
		c.pos++
		return true, '\t'
	case t.IsRun(' ', 1):
		c.pos++
	case t.IsRun(' ', 0):
		c.pos++
		return true, ' '
	}
	return false, 0
}

func listMarker(c *cursor) (ordered bool, num int, err error) {
	t, ok := c.next()
	switch {
	case !ok:
		return false, 0, unexpectedEnd()
	case t.IsRun('-', 1), t.IsRun('+', 1), t.IsRun('*', 1):
		return false, 0, nil
	case t.isListMarker():
		n, err := t.whole()
		if err != nil {
			return false, 0, unexpectedString(t.Text)
		}
		return true, n, nil
	}
	return false, 0, unexpectedToken(t)
}

// listLineEnd consumes the newline ending an entry. A blank line is an error;
// a single trailing newline is not.
func listLineEnd(c *cursor) error {
	t, ok := c.next()
	switch {
	case !ok:
		return nil
	case t.IsRun('\n', 1):
		return nil
	}
	return unexpectedToken(t)
}

// ListEntryOptions describes one entry for NewList.
type ListEntryOptions struct {
	Content string
	Sub     []string
}

// ListOptions describes a List for NewList. Start defaults to 1 for ordered
// lists and is ignored for unordered ones.
type ListOptions struct {
	Ordered bool
	Start   int
	Entries []ListEntryOptions
}

// NewList validates opts and returns the List they describe.
func NewList(opts ListOptions) (List, error) {
	if len(opts.Entries) == 0 {
		return List{}, incompleteData()
	}
	l := List{ordered: opts.Ordered}
	if opts.Ordered {
		switch {
		case opts.Start < 0:
			return List{}, unexpectedChar('-')
		case opts.Start == 0:
			l.start = 1
		case opts.Start > math.MaxInt-(len(opts.Entries)-1):
			return List{}, unexpectedString(strconv.Itoa(opts.Start))
		default:
			l.start = opts.Start
		}
	}
	l.entries = make([]ListEntry, 0, len(opts.Entries))
	for _, e := range opts.Entries {
		if err := validateListLine(e.Content); err != nil {
			return List{}, err
		}
		for _, s := range e.Sub {
			if err := validateListLine(s); err != nil {
				return List{}, err
			}
		}
		l.entries = append(l.entries, ListEntry{content: e.Content, sub: slices.Clone(e.Sub)})
	}
	return l, nil
}

func validateListLine(s string) error {
	switch {
	case s == "":
		return incompleteData()
	case strings.HasPrefix(s, " "):
		return unexpectedChar(' ')
	case strings.Contains(s, "\n"):
		return unexpectedChar('\n')
	}
	return nil
}

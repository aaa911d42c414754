package dumd

import (
	"cmp"
	"net/url"
	"strings"
)

// ItemKind tags the variant held by an Item.
type ItemKind uint8

const (
	ItemDef ItemKind = iota
	ItemItalic
	ItemBold
	ItemBoldItalic
	ItemLink
)

func (k ItemKind) String() string {
	switch k {
	case ItemDef:
		return "def"
	case ItemItalic:
		return "italic"
	case ItemBold:
		return "bold"
	case ItemBoldItalic:
		return "bold-italic"
	case ItemLink:
		return "link"
	}
	return "unknown"
}

// asterisk applies one more '*' to an opening run.
func (k ItemKind) asterisk() (ItemKind, error) {
	switch k {
	case ItemDef:
		return ItemItalic, nil
	case ItemItalic:
		return ItemBold, nil
	case ItemBold:
		return ItemBoldItalic, nil
	}
	return k, unexpectedChar('*')
}

// ToggleBold adds or removes bold. Links are returned unchanged.
func (k ItemKind) ToggleBold() ItemKind {
	switch k {
	case ItemDef:
		return ItemBold
	case ItemBold:
		return ItemDef
	case ItemItalic:
		return ItemBoldItalic
	case ItemBoldItalic:
		return ItemItalic
	}
	return k
}

// ToggleItalic adds or removes italic. Links are returned unchanged.
func (k ItemKind) ToggleItalic() ItemKind {
	switch k {
	case ItemDef:
		return ItemItalic
	case ItemItalic:
		return ItemDef
	case ItemBold:
		return ItemBoldItalic
	case ItemBoldItalic:
		return ItemBold
	}
	return k
}

// stars is the emphasis marker for k, empty for Def and links.
func (k ItemKind) stars() string {
	switch k {
	case ItemItalic:
		return "*"
	case ItemBold:
		return "**"
	case ItemBoldItalic:
		return "***"
	}
	return ""
}

// SourceKind says how a link target was written.
type SourceKind uint8

const (
	SourceNone SourceKind = iota
	SourceURL
	SourceRef
)

// LinkSource is a link target: an absolute URL in canonical form or the name
// of a Reference defined elsewhere in the document.
type LinkSource struct {
	kind  SourceKind
	value string
}

func (s LinkSource) Kind() SourceKind { return s.kind }
func (s LinkSource) String() string   { return s.value }

// URL parses the target. It fails for reference sources.
func (s LinkSource) URL() (*url.URL, error) {
	if s.kind != SourceURL {
		return nil, invalidURL(s.value, errRelativeURL)
	}
	return url.Parse(s.value)
}

// Link is an inline link or image.
type Link struct {
	name string
	src  LinkSource
	img  bool
}

func (l Link) Name() string       { return l.name }
func (l Link) Source() LinkSource { return l.src }
func (l Link) Image() bool        { return l.img }

func (l Link) String() string {
	var b strings.Builder
	if l.img {
		b.WriteByte('!')
	}
	b.WriteByte('[')
	b.WriteString(l.name)
	b.WriteString("](")
	b.WriteString(l.src.value)
	b.WriteByte(')')
	return b.String()
}

// Item is one inline run of a paragraph: plain text, emphasized text or a
// link.
type Item struct {
	kind ItemKind
	text string
	link Link
}

func (Item) element() {}
func (Item) inline()  {}

func (it Item) Kind() ItemKind { return it.kind }

// Text returns the payload of a plain or emphasized item and the name of a
// link item.
func (it Item) Text() string {
	if it.kind == ItemLink {
		return it.link.name
	}
	return it.text
}

// Link returns the link of an ItemLink.
func (it Item) Link() (Link, bool) {
	return it.link, it.kind == ItemLink
}

func (it Item) String() string {
	if it.kind == ItemLink {
		return it.link.String()
	}
	s := it.kind.stars()
	return s + it.text + s
}

// Compare orders items by kind and then by their fields.
func (it Item) Compare(o Item) int {
	return cmp.Or(
		cmp.Compare(it.kind, o.kind),
		strings.Compare(it.text, o.text),
		strings.Compare(it.link.name, o.link.name),
		cmp.Compare(it.link.src.kind, o.link.src.kind),
		strings.Compare(it.link.src.value, o.link.src.value),
		compareBool(it.link.img, o.link.img),
	)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}
	return -1
}

func (p *Parser) parseItem(c *cursor) (Item, error) {
	t, ok := c.peek()
	if !ok {
		return Item{}, unexpectedEnd()
	}
	switch {
	case t.IsRun('*', 0):
		return p.parseEmphasis(c)
	case t.IsRun('[', 1), opensImage(c):
		l, err := p.parseLink(c)
		if err != nil {
			return Item{}, err
		}
		return Item{kind: ItemLink, link: l}, nil
	case t.IsRun('[', 0), t.IsRun('`', 0), isNewline(t):
		return Item{}, unexpectedToken(t)
	}
	return Item{kind: ItemDef, text: collectPlain(c)}, nil
}

// opensImage reports whether the cursor sits on "![".
func opensImage(c *cursor) bool {
	t, _ := c.peek()
	n, _ := c.peekAt(1)
	return t.IsRun('!', 1) && n.IsRun('[', 1)
}

// collectPlain reads plain text up to the next inline opener or newline.
func collectPlain(c *cursor) string {
	var b strings.Builder
	for {
		t, ok := c.peek()
		if !ok || endsPlain(t) || opensImage(c) {
			return b.String()
		}
		b.WriteString(t.String())
		c.pos++
	}
}

func endsPlain(t Token) bool {
	return t.IsRun('*', 0) || t.IsRun('[', 0) || t.IsRun('`', 0) || isNewline(t)
}

func (p *Parser) parseEmphasis(c *cursor) (Item, error) {
	open, _ := c.next()
	kind := ItemItalic
	for i := 1; i < open.Count; i++ {
		var err error
		if kind, err = kind.asterisk(); err != nil {
			return Item{}, err
		}
	}
	var b strings.Builder
	for {
		t, ok := c.next()
		if !ok {
			return Item{}, unexpectedEnd()
		}
		switch {
		case isNewline(t):
			return Item{}, unexpectedChar('\n')
		case t.IsRun('*', 0):
			if t.Count < open.Count {
				return Item{}, unexpectedEnd()
			}
			if t.Count > open.Count && !p.cfg.lenientEmphasis {
				return Item{}, unexpectedChar('*')
			}
			return Item{kind: kind, text: b.String()}, nil
		default:
			b.WriteString(t.String())
		}
	}
}

func (p *Parser) parseLink(c *cursor) (Link, error) {
	img := c.accept('!', 1)
	if err := c.expect('[', 1); err != nil {
		return Link{}, err
	}
	name, err := linkName(c)
	if err != nil {
		return Link{}, err
	}
	if err := c.expect('(', 1); err != nil {
		return Link{}, err
	}
	target, err := linkTarget(c)
	if err != nil {
		return Link{}, err
	}
	src, err := p.resolveTarget(target, img)
	if err != nil {
		return Link{}, err
	}
	return Link{name: name, src: src, img: img}, nil
}

// linkName reads up to and including the closing ']'.
func linkName(c *cursor) (string, error) {
	var b strings.Builder
	for {
		t, ok := c.next()
		if !ok {
			return "", unexpectedEnd()
		}
		switch {
		case t.IsRun(']', 1):
			if b.Len() == 0 {
				return "", unexpectedChar(']')
			}
			return b.String(), nil
		case t.IsRun(']', 0), t.IsRun('[', 0):
			return "", unexpectedChar(t.Char)
		case isNewline(t):
			return "", unexpectedChar('\n')
		}
		b.WriteString(t.String())
	}
}

// linkTarget reads up to and including the closing ')'.
func linkTarget(c *cursor) (string, error) {
	var b strings.Builder
	for {
		t, ok := c.next()
		if !ok {
			return "", unexpectedEnd()
		}
		switch {
		case t.IsRun(')', 1):
			return b.String(), nil
		case t.IsRun(')', 0):
			return "", unexpectedChar(')')
		case isNewline(t):
			return "", unexpectedChar('\n')
		}
		b.WriteString(t.String())
	}
}

// resolveTarget turns a link target into a source. Targets that are not
// absolute URLs become reference names when the policy admits every rune;
// images never fall back.
func (p *Parser) resolveTarget(target string, img bool) (LinkSource, error) {
	u, err := parseAbsoluteURL(target)
	if err == nil {
		return LinkSource{kind: SourceURL, value: u.String()}, nil
	}
	if img || target == "" || !allRunes(target, p.cfg.referenceRune) {
		return LinkSource{}, invalidURL(target, err)
	}
	return LinkSource{kind: SourceRef, value: target}, nil
}

func parseAbsoluteURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, errRelativeURL
	}
	return u, nil
}

func allRunes(s string, fn func(rune) bool) bool {
	for _, r := range s {
		if !fn(r) {
			return false
		}
	}
	return true
}

// ItemOptions describes a plain or emphasized Item for NewItem.
type ItemOptions struct {
	Text   string
	Bold   bool
	Italic bool
}

// NewItem validates opts and returns the Item they describe.
func NewItem(opts ItemOptions) (Item, error) {
	if opts.Text == "" {
		return Item{}, incompleteData()
	}
	kind := ItemDef
	if opts.Bold {
		kind = kind.ToggleBold()
	}
	if opts.Italic {
		kind = kind.ToggleItalic()
	}
	forbidden := "*\n"
	if kind == ItemDef {
		forbidden = "*[`\n"
	}
	if i := strings.IndexAny(opts.Text, forbidden); i >= 0 {
		return Item{}, unexpectedChar(rune(opts.Text[i]))
	}
	return Item{kind: kind, text: opts.Text}, nil
}

// NewLinkItem wraps l as an inline item.
func NewLinkItem(l Link) Item {
	return Item{kind: ItemLink, link: l}
}

// LinkOptions describes a Link for NewLink. URL takes precedence over Ref.
type LinkOptions struct {
	Name  string
	URL   string
	Ref   string
	Image bool
}

// NewLink validates opts and returns the Link they describe.
func NewLink(opts LinkOptions) (Link, error) {
	if opts.Name == "" || (opts.URL == "" && opts.Ref == "") {
		return Link{}, incompleteData()
	}
	if i := strings.IndexAny(opts.Name, "[]\n"); i >= 0 {
		return Link{}, unexpectedChar(rune(opts.Name[i]))
	}
	l := Link{name: opts.Name, img: opts.Image}
	if opts.URL != "" {
		u, err := parseAbsoluteURL(opts.URL)
		if err != nil {
			return Link{}, invalidURL(opts.URL, err)
		}
		canon := u.String()
		if i := strings.IndexAny(canon, ")\n"); i >= 0 {
			return Link{}, unexpectedChar(rune(canon[i]))
		}
		l.src = LinkSource{kind: SourceURL, value: canon}
		return l, nil
	}
	if opts.Image || !allRunes(opts.Ref, DefaultReferenceRune) {
		return Link{}, invalidURL(opts.Ref, errRelativeURL)
	}
	if _, err := parseAbsoluteURL(opts.Ref); err == nil {
		return Link{}, unexpectedString(opts.Ref)
	}
	l.src = LinkSource{kind: SourceRef, value: opts.Ref}
	return l, nil
}

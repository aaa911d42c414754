package dumd

import (
	"cmp"
	"strings"
)

// Lang is a recognized code block language.
type Lang uint8

const (
	LangNone Lang = iota
	LangC
	LangCpp
	LangCSharp
	LangGo
	LangHaskell
	LangJava
	LangJavaScript
	LangLua
	LangPython
	LangRuby
	LangRust
	LangUnknown
)

var langNames = [...]string{
	LangNone:       "",
	LangC:          "c",
	LangCpp:        "cpp",
	LangCSharp:     "csharp",
	LangGo:         "go",
	LangHaskell:    "haskell",
	LangJava:       "java",
	LangJavaScript: "javascript",
	LangLua:        "lua",
	LangPython:     "python",
	LangRuby:       "ruby",
	LangRust:       "rust",
	LangUnknown:    "unknown",
}

var langByTag = func() map[string]Lang {
	m := map[string]Lang{
		"c++":    LangCpp,
		"cs":     LangCSharp,
		"c#":     LangCSharp,
		"golang": LangGo,
		"hs":     LangHaskell,
		"js":     LangJavaScript,
		"py":     LangPython,
		"rb":     LangRuby,
		"rs":     LangRust,
	}
	for l := LangC; l < LangUnknown; l++ {
		m[langNames[l]] = l
	}
	return m
}()

func (l Lang) String() string {
	if int(l) < len(langNames) {
		return langNames[l]
	}
	return langNames[LangUnknown]
}

// CodeKind is the language of a code element plus the fence length it was
// written with. Tag is only set for LangUnknown.
type CodeKind struct {
	Lang  Lang
	Tag   string
	Fence int
}

// LookupCodeKind resolves a fence tag. Matching is case-insensitive; an empty
// tag is LangNone and an unrecognized one is LangUnknown. Fence is 0.
func LookupCodeKind(tag string) CodeKind {
	if tag == "" {
		return CodeKind{}
	}
	if l, ok := langByTag[strings.ToLower(tag)]; ok {
		return CodeKind{Lang: l}
	}
	return CodeKind{Lang: LangUnknown, Tag: tag}
}

// NoneKind is an untagged kind with the given fence length.
func NoneKind(fence int) CodeKind {
	return CodeKind{Fence: fence}
}

// UnknownKind is an unrecognized tag with the given fence length.
func UnknownKind(tag string, fence int) CodeKind {
	return CodeKind{Lang: LangUnknown, Tag: tag, Fence: fence}
}

func (k CodeKind) indent(n int) CodeKind {
	k.Fence += n
	return k
}

// TagString is the tag written after an opening fence.
func (k CodeKind) TagString() string {
	if k.Lang == LangUnknown {
		return k.Tag
	}
	return k.Lang.String()
}

// Code is an inline code span (fence 1 or 2) or a fenced block (fence >= 3).
type Code struct {
	content string
	kind    CodeKind
}

func (Code) element() {}
func (Code) inline()  {}
func (Code) block()   {}

// Content returns the code without fences.
func (c Code) Content() string { return c.content }

// Kind returns the language and fence length.
func (c Code) Kind() CodeKind { return c.kind }

// Inline reports whether c is a code span rather than a block.
func (c Code) Inline() bool { return c.kind.Fence < 3 }

func (c Code) String() string {
	fence := repeatRune('`', c.kind.Fence)
	if c.Inline() {
		return fence + c.content + fence
	}
	return fence + c.kind.TagString() + "\n" + c.content + "\n" + fence
}

// Compare orders code by kind, fence and content.
func (c Code) Compare(o Code) int {
	return cmp.Or(
		cmp.Compare(c.kind.Lang, o.kind.Lang),
		strings.Compare(c.kind.Tag, o.kind.Tag),
		cmp.Compare(c.kind.Fence, o.kind.Fence),
		strings.Compare(c.content, o.content),
	)
}

func parseCode(_ *Parser, c *cursor) (Code, error) {
	t, ok := c.next()
	if !ok {
		return Code{}, unexpectedEnd()
	}
	if !t.IsRun('`', 0) {
		return Code{}, unexpectedToken(t)
	}
	if t.Count < 3 {
		return parseCodeSpan(c, t.Count)
	}
	return parseCodeBlock(c, t.Count)
}

// parseCodeSpan reads after an opening fence of 1 or 2 backticks. Shorter
// backtick runs are content; any run of at least n closes.
func parseCodeSpan(c *cursor, n int) (Code, error) {
	var b strings.Builder
	for {
		t, ok := c.next()
		if !ok {
			return Code{}, unexpectedEnd()
		}
		switch {
		case isNewline(t):
			return Code{}, unexpectedChar('\n')
		case t.IsRun('`', 0) && t.Count >= n:
			if b.Len() == 0 {
				return Code{}, emptyContent()
			}
			return Code{content: b.String(), kind: NoneKind(n)}, nil
		default:
			b.WriteString(t.String())
		}
	}
}

func parseCodeBlock(c *cursor, n int) (Code, error) {
	tag, err := scanFenceTag(c)
	if err != nil {
		return Code{}, err
	}
	tag = strings.TrimRight(tag, " ")
	nl, _ := c.next()
	var b strings.Builder
	b.WriteString(repeatRune('\n', nl.Count-1))
	for {
		t, ok := c.next()
		if !ok {
			return Code{}, unexpectedEnd()
		}
		if t.IsRun('`', 0) && t.Count >= n {
			break
		}
		b.WriteString(t.String())
	}
	return Code{
		content: strings.TrimSuffix(b.String(), "\n"),
		kind:    LookupCodeKind(tag).indent(n),
	}, nil
}

// scanFenceTag reads the tag up to, not including, the first newline.
func scanFenceTag(c *cursor) (string, error) {
	c.accept(' ', 0)
	var b strings.Builder
	for {
		t, ok := c.peek()
		if !ok {
			return "", unexpectedEnd()
		}
		if isNewline(t) {
			return b.String(), nil
		}
		if t.Kind == tokenRun && !strings.ContainsRune("+#-_.", t.Char) {
			return "", unexpectedChar(t.Char)
		}
		b.WriteString(t.String())
		c.pos++
	}
}

// CodeOptions describes a Code value for NewCode.
type CodeOptions struct {
	Content string
	// Kind.Fence is required; 1 or 2 makes a span, 3 or more a block.
	Kind CodeKind
}

// NewCode validates opts and returns the Code they describe.
func NewCode(opts CodeOptions) (Code, error) {
	kind := opts.Kind
	if kind.Fence <= 0 || kind.Lang > LangUnknown {
		return Code{}, incompleteData()
	}
	if kind.Lang == LangUnknown && kind.Tag == "" {
		return Code{}, incompleteData()
	}
	if kind.Lang != LangUnknown {
		kind.Tag = ""
	}
	if maxRun(opts.Content, '`') >= kind.Fence {
		return Code{}, unexpectedChar('`')
	}
	if kind.Fence < 3 {
		switch {
		case kind.Lang != LangNone:
			return Code{}, unexpectedString(kind.TagString())
		case opts.Content == "":
			return Code{}, emptyContent()
		case strings.Contains(opts.Content, "\n"):
			return Code{}, unexpectedChar('\n')
		case strings.HasPrefix(opts.Content, "`") || strings.HasSuffix(opts.Content, "`"):
			return Code{}, unexpectedChar('`')
		}
		return Code{content: opts.Content, kind: kind}, nil
	}
	if err := validateFenceTag(kind.TagString()); err != nil {
		return Code{}, err
	}
	return Code{content: opts.Content, kind: kind}, nil
}

func validateFenceTag(tag string) error {
	if tag == "" {
		return nil
	}
	c := newCursor(Tokenize(tag + "\n"))
	got, err := scanFenceTag(c)
	if err != nil {
		return err
	}
	if strings.TrimRight(got, " ") != tag {
		return unexpectedString(tag)
	}
	return nil
}

// maxRun is the longest run of r in s.
func maxRun(s string, r rune) int {
	best, cur := 0, 0
	for _, c := range s {
		if c != r {
			cur = 0
			continue
		}
		cur++
		best = max(best, cur)
	}
	return best
}

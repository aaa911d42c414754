package dumd

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Block is an element that stands on its own between blank lines.
type Block interface {
	Element
	block()
}

// Document is a parsed source file: optional front matter followed by blocks.
type Document struct {
	// FrontMatter is the raw front matter block including delimiters.
	FrontMatter string
	// Meta holds the decoded front matter, nil when there is none.
	Meta   map[string]any
	Blocks []Block
}

// Body serializes the blocks separated by blank lines.
func (d Document) Body() string {
	var b strings.Builder
	for i, blk := range d.Blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(blk.String())
	}
	return b.String()
}

// String serializes the whole document. Parsing the result yields an equal
// Document.
func (d Document) String() string {
	var b strings.Builder
	if d.FrontMatter != "" {
		b.WriteString(d.FrontMatter)
		b.WriteString("\n\n")
	}
	if len(d.Blocks) > 0 {
		b.WriteString(d.Body())
		b.WriteByte('\n')
	}
	return b.String()
}

// Equal compares front matter text and blocks. Meta is derived from
// FrontMatter and is not compared.
func (d Document) Equal(o Document) bool {
	if d.FrontMatter != o.FrontMatter || len(d.Blocks) != len(o.Blocks) {
		return false
	}
	for i := range d.Blocks {
		if !blockEqual(d.Blocks[i], o.Blocks[i]) {
			return false
		}
	}
	return true
}

func blockEqual(a, b Block) bool {
	switch a := a.(type) {
	case List:
		b, ok := b.(List)
		return ok && a.Equal(b)
	case Paragraph:
		b, ok := b.(Paragraph)
		return ok && a.Equal(b)
	}
	return a == b
}

// Reference returns the reference definition named name.
func (d Document) Reference(name string) (Reference, bool) {
	for _, blk := range d.Blocks {
		if r, ok := blk.(Reference); ok && r.name == name {
			return r, true
		}
	}
	return Reference{}, false
}

// Resolve returns the URL a link points at, following reference names
// through the document's definitions.
func (d Document) Resolve(l Link) (string, bool) {
	switch l.src.kind {
	case SourceURL:
		return l.src.value, true
	case SourceRef:
		if r, ok := d.Reference(l.src.value); ok {
			return r.href, true
		}
	}
	return "", false
}

// ParseDocument parses src with the default parser.
func ParseDocument(src []byte) (Document, error) {
	return defaultParser.Document(src)
}

// Document validates and NFC-normalizes src, splits off front matter and
// parses each blank-line separated block. Errors name the failing block,
// counted from 1, and wrap the element error.
func (p *Parser) Document(src []byte) (Document, error) {
	if err := ValidateInput(src); err != nil {
		return Document{}, err
	}
	src = norm.NFC.Bytes(trimBOM(src))
	var doc Document
	raw, body := splitFrontMatter(src)
	if raw != nil {
		meta, err := decodeFrontMatter(raw)
		if err != nil {
			return Document{}, err
		}
		doc.FrontMatter = string(raw)
		doc.Meta = meta
	}
	text := strings.ReplaceAll(string(body), "\r\n", "\n")
	for i, blk := range splitBlocks(text) {
		b, err := p.parseBlock(blk.text)
		if err != nil {
			return Document{}, fmt.Errorf("block %d: line %d: %w", i+1, blk.line, err)
		}
		doc.Blocks = append(doc.Blocks, b)
	}
	return doc, nil
}

type rawBlock struct {
	text string
	line int
}

// splitBlocks cuts text at blank lines. A line opening a fence of three or
// more backticks starts its own block, which runs through the line holding
// the closing fence regardless of blank lines in between.
func splitBlocks(text string) []rawBlock {
	var (
		out   []rawBlock
		cur   []string
		start int
		fence int
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, rawBlock{text: strings.Join(cur, "\n"), line: start})
			cur = cur[:0]
		}
	}
	for i, line := range strings.Split(text, "\n") {
		switch {
		case fence > 0:
			cur = append(cur, line)
			if maxRun(line, '`') >= fence {
				flush()
				fence = 0
			}
		case openingFence(line) >= 3:
			flush()
			cur, start, fence = append(cur, line), i+1, openingFence(line)
		case strings.TrimSpace(line) == "":
			flush()
		default:
			if len(cur) == 0 {
				start = i + 1
			}
			cur = append(cur, line)
		}
	}
	flush()
	return out
}

func openingFence(line string) int {
	return len(line) - len(strings.TrimLeft(line, "`"))
}

// parseBlock picks a grammar from the first tokens of src.
func (p *Parser) parseBlock(src string) (Block, error) {
	toks := Tokenize(src)
	if len(toks) == 0 {
		return nil, emptyDocument()
	}
	first := toks[0]
	switch {
	case first.IsRun('#', 0):
		return p.Heading(src)
	case first.IsRun('`', 0) && first.Count >= 3:
		return p.Code(src)
	case first.IsRun('[', 1) && definesReference(toks):
		return p.Reference(src)
	case isSetext(src):
		return p.Heading(src)
	case startsList(toks):
		return p.List(src)
	}
	return p.Paragraph(src)
}

// definesReference reports whether the first line reads "[...]:".
func definesReference(toks []Token) bool {
	for i := 1; i < len(toks)-1; i++ {
		t := toks[i]
		if isNewline(t) {
			return false
		}
		if t.IsRun(']', 0) {
			return t.Count == 1 && toks[i+1].IsRun(':', 1)
		}
	}
	return false
}

func isSetext(src string) bool {
	first, under, ok := strings.Cut(src, "\n")
	if !ok || first == "" || under == "" || strings.Contains(under, "\n") {
		return false
	}
	return strings.Trim(under, "=") == "" || strings.Trim(under, "-") == ""
}

func startsList(toks []Token) bool {
	i := 0
	if toks[0].IsRun(' ', 1) {
		i++
	}
	if i+1 >= len(toks) {
		return false
	}
	m := toks[i]
	isMarker := m.IsRun('-', 1) || m.IsRun('+', 1) || m.IsRun('*', 1) || m.isListMarker()
	return isMarker && toks[i+1].IsRun(' ', 0)
}

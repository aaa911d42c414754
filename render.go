package dumd

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"

	"pkt.systems/dumd/internal/palette"
)

const codeBlockIndent = 2

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Width   int
	Theme   Theme
	Options []RenderOption
	// Parser parses the input. Nil uses the default parser.
	Parser *Parser
}

// Render parses a document from Reader and writes it to Writer as styled
// terminal text. A Width of 0 disables wrapping.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: Reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: Writer is nil")
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("render: read: %w", err)
	}
	p := req.Parser
	if p == nil {
		p = defaultParser
	}
	doc, err := p.Document(src)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return RenderDocument(req.Writer, doc, req.Width, req.Theme, req.Options...)
}

// RenderDocument writes an already parsed document as styled terminal text.
func RenderDocument(w io.Writer, doc Document, width int, theme Theme, opts ...RenderOption) error {
	if theme == nil {
		theme = DefaultTheme()
	}
	var cfg renderConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	r := renderer{
		width:  max(width, 0),
		styles: theme.Styles(),
		cfg:    cfg,
		doc:    doc,
	}
	for i, blk := range doc.Blocks {
		if i > 0 {
			r.buf.WriteByte('\n')
		}
		r.block(blk)
	}
	if _, err := w.Write(r.buf.Bytes()); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}
	return nil
}

type renderer struct {
	buf    bytes.Buffer
	width  int
	styles Styles
	cfg    renderConfig
	doc    Document
}

// piece is a run of text in one style. link is the OSC 8 target, if any.
type piece struct {
	text  string
	style Style
	link  string
}

type word struct {
	parts []piece
	width int
}

func (r *renderer) block(b Block) {
	switch b := b.(type) {
	case Heading:
		lvl := min(max(b.level, Level1), Level6)
		st := r.styles.Heading[lvl-1]
		lead := piece{text: repeatRune('#', lvl.Int()) + " ", style: st}
		r.wrap(lead, []piece{{text: b.content, style: st}}, lvl.Int()+1)
	case Paragraph:
		var body []piece
		for i, line := range b.lines {
			if i > 0 {
				body = append(body, piece{text: " "})
			}
			for _, in := range line {
				body = r.appendInline(body, in)
			}
		}
		r.wrap(piece{}, body, 0)
	case List:
		r.list(b)
	case Code:
		if b.Inline() {
			r.wrap(piece{}, r.appendInline(nil, b), 0)
			return
		}
		r.codeBlock(b)
	case Reference:
		lead := piece{text: "[" + b.name + "]: ", style: r.styles.Reference}
		href := r.fitURL(b.href, ansi.PrintableRuneWidth(lead.text))
		body := []piece{{text: href, style: r.styles.LinkURL, link: r.linkTarget(b.href)}}
		if b.title != "" {
			body = append(body, piece{text: " " + strconv.Quote(b.title), style: r.styles.Text})
		}
		r.wrap(lead, body, 2)
	}
}

func (r *renderer) list(l List) {
	for i, e := range l.entries {
		marker := "- "
		if l.ordered {
			marker = strconv.Itoa(l.start+i) + ". "
		}
		r.wrap(piece{text: marker, style: r.styles.ListMarker},
			[]piece{{text: e.content, style: r.styles.Text}}, ansi.PrintableRuneWidth(marker))
		for j, s := range e.sub {
			sub := "  - "
			if l.ordered {
				sub = "  " + strconv.Itoa(j+1) + ". "
			}
			r.wrap(piece{text: sub, style: r.styles.ListMarker},
				[]piece{{text: s, style: r.styles.Text}}, ansi.PrintableRuneWidth(sub))
		}
	}
}

// codeBlock writes the body indented and unwrapped; long lines overflow.
// Blank lines stay empty.
func (r *renderer) codeBlock(c Code) {
	body := indent.String(c.content, codeBlockIndent)
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) != "" {
			r.emit(piece{text: line, style: r.styles.CodeBlock})
		}
		r.buf.WriteByte('\n')
	}
}

func (r *renderer) appendInline(dst []piece, in Inline) []piece {
	switch in := in.(type) {
	case Code:
		return append(dst, piece{text: in.content, style: r.styles.CodeInline})
	case Item:
		switch in.kind {
		case ItemItalic:
			return append(dst, piece{text: in.text, style: r.styles.Emphasis})
		case ItemBold:
			return append(dst, piece{text: in.text, style: r.styles.Strong})
		case ItemBoldItalic:
			return append(dst, piece{text: in.text, style: r.styles.EmphasisStrong})
		case ItemLink:
			return r.appendLink(dst, in.link)
		}
		return append(dst, piece{text: in.text, style: r.styles.Text})
	}
	return append(dst, piece{text: in.String(), style: r.styles.Text})
}

// appendLink renders the name as link text. Without OSC 8 the target follows
// in parentheses; unresolved reference names follow in brackets.
func (r *renderer) appendLink(dst []piece, l Link) []piece {
	target, ok := r.doc.Resolve(l)
	name := piece{text: l.name, style: r.styles.LinkText}
	if !ok {
		return append(dst, name, piece{text: " [" + l.src.value + "]", style: r.styles.LinkURL})
	}
	if r.cfg.osc8 {
		name.link = target
		return append(dst, name)
	}
	return append(dst, name, piece{text: " (" + r.fitURL(target, 2) + ")", style: r.styles.LinkURL})
}

func (r *renderer) linkTarget(url string) string {
	if r.cfg.osc8 {
		return url
	}
	return ""
}

// fitURL shortens a displayed URL to the columns left after used. OSC 8
// targets always carry the full URL.
func (r *renderer) fitURL(url string, used int) string {
	if r.width == 0 || r.width-used < 1 {
		return url
	}
	return fitURL(url, r.width-used)
}

// wrap writes lead followed by the words of body, breaking lines greedily at
// the configured width. Continuation lines are indented by indent columns.
func (r *renderer) wrap(lead piece, body []piece, indent int) {
	col := 0
	if lead.text != "" {
		r.emit(lead)
		col = ansi.PrintableRuneWidth(lead.text)
	}
	first := true
	for _, w := range splitWords(body) {
		if !first {
			if r.width > 0 && col+1+w.width > r.width {
				r.newline(indent)
				col = indent
			} else {
				r.buf.WriteByte(' ')
				col++
			}
		}
		col = r.emitWord(w, col, indent)
		first = false
	}
	r.buf.WriteByte('\n')
}

func (r *renderer) emitWord(w word, col, indent int) int {
	if !r.cfg.softWrap || r.width == 0 || col+w.width <= r.width {
		for _, p := range w.parts {
			r.emit(p)
		}
		return col + w.width
	}
	for _, p := range w.parts {
		var chunk strings.Builder
		for _, c := range p.text {
			cw := ansi.PrintableRuneWidth(string(c))
			if col+cw > r.width && col > indent {
				r.emit(piece{text: chunk.String(), style: p.style, link: p.link})
				chunk.Reset()
				r.newline(indent)
				col = indent
			}
			chunk.WriteRune(c)
			col += cw
		}
		r.emit(piece{text: chunk.String(), style: p.style, link: p.link})
	}
	return col
}

func (r *renderer) newline(indent int) {
	r.buf.WriteByte('\n')
	r.buf.WriteString(strings.Repeat(" ", indent))
}

func (r *renderer) emit(p piece) {
	if p.text == "" {
		return
	}
	if p.style.Prefix != "" {
		r.buf.WriteString(p.style.Prefix)
	}
	if p.link != "" {
		r.buf.WriteString(osc8Start)
		r.buf.WriteString(p.link)
		r.buf.WriteString("\x1b\\")
	}
	r.buf.WriteString(p.text)
	if p.link != "" {
		r.buf.WriteString(osc8End)
	}
	if p.style.Prefix != "" {
		r.buf.WriteString(palette.Reset)
	}
}

// splitWords breaks styled text at spaces. Runs of spaces collapse.
func splitWords(body []piece) []word {
	var (
		out []word
		cur word
	)
	for _, p := range body {
		for i, f := range strings.Split(p.text, " ") {
			if i > 0 && len(cur.parts) > 0 {
				out = append(out, cur)
				cur = word{}
			}
			if f == "" {
				continue
			}
			cur.parts = append(cur.parts, piece{text: f, style: p.style, link: p.link})
			cur.width += ansi.PrintableRuneWidth(f)
		}
	}
	if len(cur.parts) > 0 {
		out = append(out, cur)
	}
	return out
}

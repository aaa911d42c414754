package dumd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	gmrenderer "github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// HTMLOption configures FormatHTML.
type HTMLOption func(*htmlConfig)

type htmlConfig struct {
	headingIDs bool
	hardWraps  bool
}

// WithHeadingIDs adds generated id attributes to headings.
func WithHeadingIDs(enabled bool) HTMLOption {
	return func(cfg *htmlConfig) {
		cfg.headingIDs = enabled
	}
}

// WithHardWraps renders line breaks inside paragraphs as <br>.
func WithHardWraps(enabled bool) HTMLOption {
	return func(cfg *htmlConfig) {
		cfg.hardWraps = enabled
	}
}

func newHTMLEngine(cfg htmlConfig) goldmark.Markdown {
	var parserOptions []parser.Option
	if cfg.headingIDs {
		parserOptions = append(parserOptions, parser.WithAutoHeadingID())
	}
	var rendererOptions []gmrenderer.Option
	if cfg.hardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	return goldmark.New(
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}

// FormatHTML writes doc as HTML. Links that name a reference are resolved
// against the document first; front matter is omitted.
func FormatHTML(w io.Writer, doc Document, opts ...HTMLOption) error {
	var cfg htmlConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	var buf bytes.Buffer
	if err := newHTMLEngine(cfg).Convert([]byte(doc.Resolved().Body()), &buf); err != nil {
		return fmt.Errorf("format html: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("format html: write: %w", err)
	}
	return nil
}

// Resolved returns a copy of d whose links point at URLs wherever a
// reference definition for their name exists.
func (d Document) Resolved() Document {
	out := d
	out.Blocks = make([]Block, len(d.Blocks))
	for i, blk := range d.Blocks {
		p, ok := blk.(Paragraph)
		if !ok {
			out.Blocks[i] = blk
			continue
		}
		lines := p.Lines()
		for _, line := range lines {
			for j, in := range line {
				it, ok := in.(Item)
				if !ok || it.kind != ItemLink || it.link.src.kind != SourceRef {
					continue
				}
				if href, ok := d.Resolve(it.link); ok {
					it.link.src = LinkSource{kind: SourceURL, value: href}
					line[j] = it
				}
			}
		}
		out.Blocks[i] = Paragraph{lines: lines}
	}
	return out
}

package dumd

import (
	"errors"
	"testing"
	"unicode"
)

func TestParseItem(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		kind ItemKind
		text string
	}{
		{name: "bold", src: "**bold text**", kind: ItemBold, text: "bold text"},
		{name: "italic", src: "*it*", kind: ItemItalic, text: "it"},
		{name: "bold italic", src: "***both***", kind: ItemBoldItalic, text: "both"},
		{name: "plain", src: "plain words", kind: ItemDef, text: "plain words"},
		{name: "plain keeps leading space", src: " spaced", kind: ItemDef, text: " spaced"},
		{name: "plain with punctuation", src: "a]b (c)!", kind: ItemDef, text: "a]b (c)!"},
		{name: "emphasis keeps inner markup", src: "*a [b] `c`*", kind: ItemItalic, text: "a [b] `c`"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseItem(tc.src)
			if err != nil {
				t.Fatalf("ParseItem(%q): %v", tc.src, err)
			}
			if got.Kind() != tc.kind || got.Text() != tc.text {
				t.Fatalf("got %s %q, want %s %q", got.Kind(), got.Text(), tc.kind, tc.text)
			}
			if got.String() != tc.src {
				t.Fatalf("String() = %q, want %q", got.String(), tc.src)
			}
		})
	}
}

func TestParseItemLinks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		src    string
		link   string
		source SourceKind
		target string
		image  bool
	}{
		{name: "url", src: "[link](https://example.com)", link: "link", source: SourceURL, target: "https://example.com"},
		{name: "url with query", src: "[q](https://example.com/a?b=1#c)", link: "q", source: SourceURL, target: "https://example.com/a?b=1#c"},
		{name: "image", src: "![logo](https://example.com/logo.png)", link: "logo", source: SourceURL, target: "https://example.com/logo.png", image: true},
		{name: "reference", src: "[manual](manual)", link: "manual", source: SourceRef, target: "manual"},
		{name: "numbered reference", src: "[see](1)", link: "see", source: SourceRef, target: "1"},
		{name: "mailto", src: "[mail](mailto:me@example.com)", link: "mail", source: SourceURL, target: "mailto:me@example.com"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			it, err := ParseItem(tc.src)
			if err != nil {
				t.Fatalf("ParseItem(%q): %v", tc.src, err)
			}
			l, ok := it.Link()
			if !ok || it.Kind() != ItemLink {
				t.Fatalf("expected link item, got %s", it.Kind())
			}
			if l.Name() != tc.link || l.Source().Kind() != tc.source || l.Source().String() != tc.target || l.Image() != tc.image {
				t.Fatalf("unexpected link %+v", l)
			}
			if it.Text() != tc.link {
				t.Fatalf("Text() = %q, want link name", it.Text())
			}
			if it.String() != tc.src {
				t.Fatalf("String() = %q, want %q", it.String(), tc.src)
			}
		})
	}
}

func TestParseItemErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want error
		char rune
	}{
		{name: "trailing punctuation", src: "**bold text**?", want: ErrUnexpectedChar, char: '?'},
		{name: "short close", src: "**a*", want: ErrUnexpectedEnd},
		{name: "long close", src: "*a**", want: ErrUnexpectedChar, char: '*'},
		{name: "four stars", src: "****x****", want: ErrUnexpectedChar, char: '*'},
		{name: "unclosed emphasis", src: "*open", want: ErrUnexpectedEnd},
		{name: "emphasis across lines", src: "*a\nb*", want: ErrUnexpectedChar, char: '\n'},
		{name: "image without url", src: "![logo](logo)", want: ErrInvalidURL},
		{name: "target with space", src: "[x](my ref)", want: ErrInvalidURL},
		{name: "relative path", src: "[x](docs/intro)", want: ErrInvalidURL},
		{name: "empty name", src: "[](https://example.com)", want: ErrUnexpectedChar, char: ']'},
		{name: "double bracket", src: "[[x]](https://example.com)", want: ErrUnexpectedChar, char: '['},
		{name: "missing target", src: "[x]", want: ErrUnexpectedEnd},
		{name: "unclosed target", src: "[x](https://example.com", want: ErrUnexpectedEnd},
		{name: "code is not an item", src: "`x`", want: ErrUnexpectedChar, char: '`'},
		{name: "two items", src: "*a*b", want: ErrUnexpectedString},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseItem(tc.src)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ParseItem(%q) error = %v, want %v", tc.src, err, tc.want)
			}
			if tc.char != 0 {
				var pe *ParseError
				if !errors.As(err, &pe) || pe.Char != tc.char {
					t.Fatalf("expected char %q, got %v", tc.char, err)
				}
			}
		})
	}
}

func TestParserOptions(t *testing.T) {
	t.Parallel()
	lenient := NewParser(WithLenientEmphasis(true))
	it, err := lenient.Item("*a**")
	if err != nil {
		t.Fatalf("lenient parse: %v", err)
	}
	if it.Kind() != ItemItalic || it.Text() != "a" {
		t.Fatalf("unexpected item %s %q", it.Kind(), it.Text())
	}
	if _, err := lenient.Item("**a*"); !errors.Is(err, ErrUnexpectedEnd) {
		t.Fatalf("short close must still fail, got %v", err)
	}

	spaced := NewParser(WithReferenceRunes(func(r rune) bool {
		return r == ' ' || DefaultReferenceRune(r)
	}))
	it, err = spaced.Item("[x](my ref)")
	if err != nil {
		t.Fatalf("custom reference runes: %v", err)
	}
	if l, _ := it.Link(); l.Source().Kind() != SourceRef || l.Source().String() != "my ref" {
		t.Fatalf("unexpected source %+v", l.Source())
	}

	digits := NewParser(WithReferenceRunes(unicode.IsDigit))
	if _, err := digits.Item("[x](manual)"); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
	if _, err := NewParser(WithReferenceRunes(nil)).Item("[x](manual)"); err != nil {
		t.Fatalf("nil policy should restore the default: %v", err)
	}
}

func TestItemKindToggles(t *testing.T) {
	t.Parallel()
	tests := []struct {
		kind         ItemKind
		bold, italic ItemKind
	}{
		{kind: ItemDef, bold: ItemBold, italic: ItemItalic},
		{kind: ItemItalic, bold: ItemBoldItalic, italic: ItemDef},
		{kind: ItemBold, bold: ItemDef, italic: ItemBoldItalic},
		{kind: ItemBoldItalic, bold: ItemItalic, italic: ItemBold},
		{kind: ItemLink, bold: ItemLink, italic: ItemLink},
	}
	for _, tc := range tests {
		if got := tc.kind.ToggleBold(); got != tc.bold {
			t.Fatalf("%s.ToggleBold() = %s, want %s", tc.kind, got, tc.bold)
		}
		if got := tc.kind.ToggleItalic(); got != tc.italic {
			t.Fatalf("%s.ToggleItalic() = %s, want %s", tc.kind, got, tc.italic)
		}
		if tc.kind.ToggleBold().ToggleBold() != tc.kind {
			t.Fatalf("ToggleBold is not self-inverse for %s", tc.kind)
		}
	}
}

func TestNewItem(t *testing.T) {
	t.Parallel()
	tests := []struct {
		opts ItemOptions
		want string
	}{
		{opts: ItemOptions{Text: "hi"}, want: "hi"},
		{opts: ItemOptions{Text: "hi", Bold: true}, want: "**hi**"},
		{opts: ItemOptions{Text: "hi", Italic: true}, want: "*hi*"},
		{opts: ItemOptions{Text: "a [b]", Bold: true, Italic: true}, want: "***a [b]***"},
	}
	for _, tc := range tests {
		it, err := NewItem(tc.opts)
		if err != nil {
			t.Fatalf("NewItem(%+v): %v", tc.opts, err)
		}
		if it.String() != tc.want {
			t.Fatalf("String() = %q, want %q", it.String(), tc.want)
		}
		back, err := ParseItem(it.String())
		if err != nil || back.Compare(it) != 0 {
			t.Fatalf("round trip of %q: %v", it.String(), err)
		}
	}

	bad := []struct {
		opts ItemOptions
		want error
	}{
		{opts: ItemOptions{}, want: ErrIncompleteData},
		{opts: ItemOptions{Text: "a*b", Italic: true}, want: ErrUnexpectedChar},
		{opts: ItemOptions{Text: "a[b"}, want: ErrUnexpectedChar},
		{opts: ItemOptions{Text: "a\nb", Bold: true}, want: ErrUnexpectedChar},
	}
	for _, tc := range bad {
		if _, err := NewItem(tc.opts); !errors.Is(err, tc.want) {
			t.Fatalf("NewItem(%+v) error = %v, want %v", tc.opts, err, tc.want)
		}
	}
}

func TestNewLink(t *testing.T) {
	t.Parallel()
	l, err := NewLink(LinkOptions{Name: "site", URL: "https://example.com/x"})
	if err != nil {
		t.Fatalf("NewLink: %v", err)
	}
	u, err := l.Source().URL()
	if err != nil || u.Host != "example.com" {
		t.Fatalf("URL() = %v, %v", u, err)
	}
	it := NewLinkItem(l)
	back, err := ParseItem(it.String())
	if err != nil || back.Compare(it) != 0 {
		t.Fatalf("round trip of %q: %v", it.String(), err)
	}

	ref, err := NewLink(LinkOptions{Name: "docs", Ref: "manual"})
	if err != nil {
		t.Fatalf("NewLink ref: %v", err)
	}
	if _, err := ref.Source().URL(); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("reference URL() error = %v", err)
	}

	bad := []struct {
		opts LinkOptions
		want error
	}{
		{opts: LinkOptions{URL: "https://example.com"}, want: ErrIncompleteData},
		{opts: LinkOptions{Name: "x"}, want: ErrIncompleteData},
		{opts: LinkOptions{Name: "a]b", URL: "https://example.com"}, want: ErrUnexpectedChar},
		{opts: LinkOptions{Name: "x", URL: "relative/path"}, want: ErrInvalidURL},
		{opts: LinkOptions{Name: "x", Ref: "manual", Image: true}, want: ErrInvalidURL},
		{opts: LinkOptions{Name: "x", Ref: "my/ref"}, want: ErrInvalidURL},
		{opts: LinkOptions{Name: "x", Ref: "mailto:me"}, want: ErrUnexpectedString},
	}
	for _, tc := range bad {
		if _, err := NewLink(tc.opts); !errors.Is(err, tc.want) {
			t.Fatalf("NewLink(%+v) error = %v, want %v", tc.opts, err, tc.want)
		}
	}
}

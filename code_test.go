package dumd

import (
	"errors"
	"testing"
)

func TestParseCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		src     string
		content string
		kind    CodeKind
	}{
		{name: "double span", src: "``code``", content: "code", kind: NoneKind(2)},
		{name: "unknown tag", src: "```code\na type of code\n```", content: "a type of code", kind: UnknownKind("code", 3)},
		{name: "single span", src: "`x := 1`", content: "x := 1", kind: NoneKind(1)},
		{name: "span keeps shorter fence", src: "``a`b``", content: "a`b", kind: NoneKind(2)},
		{name: "known tag", src: "```go\nfmt.Println(1)\n```", content: "fmt.Println(1)", kind: CodeKind{Lang: LangGo, Fence: 3}},
		{name: "alias tag", src: "```JS\nlet a\n```", content: "let a", kind: CodeKind{Lang: LangJavaScript, Fence: 3}},
		{name: "no tag", src: "```\nplain\n```", content: "plain", kind: NoneKind(3)},
		{name: "long fence", src: "````\n```\ninner\n```\n````", content: "```\ninner\n```", kind: NoneKind(4)},
		{name: "tag spaces", src: "``` rust \nfn f() {}\n```", content: "fn f() {}", kind: CodeKind{Lang: LangRust, Fence: 3}},
		{name: "blank lines kept", src: "```\n\na\n\nb\n```", content: "\na\n\nb", kind: NoneKind(3)},
		{name: "dashed tag", src: "```objective-c\nx\n```", content: "x", kind: UnknownKind("objective-c", 3)},
		{name: "longer block close", src: "```\nx\n`````", content: "x", kind: NoneKind(3)},
		{name: "longer span close", src: "`x```", content: "x", kind: NoneKind(1)},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCode(tc.src)
			if err != nil {
				t.Fatalf("ParseCode(%q): %v", tc.src, err)
			}
			if got.Content() != tc.content {
				t.Fatalf("content = %q, want %q", got.Content(), tc.content)
			}
			if got.Kind() != tc.kind {
				t.Fatalf("kind = %+v, want %+v", got.Kind(), tc.kind)
			}
			back, err := ParseCode(got.String())
			if err != nil {
				t.Fatalf("reparse %q: %v", got.String(), err)
			}
			if back.Compare(got) != 0 {
				t.Fatalf("round trip mismatch: %+v vs %+v", back, got)
			}
		})
	}
}

func TestParseCodeErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want error
		char rune
	}{
		{name: "empty input", src: "", want: ErrEmptyDocument},
		{name: "bare fence", src: "````", want: ErrUnexpectedEnd},
		{name: "text after span", src: "`` ``x", want: ErrUnexpectedString},
		{name: "unterminated span", src: "`abc", want: ErrUnexpectedEnd},
		{name: "span across lines", src: "`a\nb`", want: ErrUnexpectedChar, char: '\n'},
		{name: "unterminated block", src: "```go\nx", want: ErrUnexpectedEnd},
		{name: "tag punctuation", src: "```go!\nx\n```", want: ErrUnexpectedChar, char: '!'},
		{name: "not code", src: "abc", want: ErrUnexpectedString},
		{name: "trailing text", src: "`a`b", want: ErrUnexpectedString},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCode(tc.src)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ParseCode(%q) error = %v, want %v", tc.src, err, tc.want)
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

func TestLookupCodeKind(t *testing.T) {
	t.Parallel()
	tests := map[string]CodeKind{
		"":        {},
		"go":      {Lang: LangGo},
		"Golang":  {Lang: LangGo},
		"c++":     {Lang: LangCpp},
		"C#":      {Lang: LangCSharp},
		"py":      {Lang: LangPython},
		"haskell": {Lang: LangHaskell},
		"zig":     {Lang: LangUnknown, Tag: "zig"},
	}
	for tag, want := range tests {
		if got := LookupCodeKind(tag); got != want {
			t.Fatalf("LookupCodeKind(%q) = %+v, want %+v", tag, got, want)
		}
	}
	if got := (CodeKind{Lang: LangCpp}).TagString(); got != "cpp" {
		t.Fatalf("TagString = %q", got)
	}
}

func TestNewCode(t *testing.T) {
	t.Parallel()
	good := []CodeOptions{
		{Content: "x", Kind: NoneKind(1)},
		{Content: "a`b", Kind: NoneKind(2)},
		{Content: "fn main() {}", Kind: CodeKind{Lang: LangRust, Fence: 3}},
		{Content: "```\nnested\n```", Kind: NoneKind(4)},
		{Content: "x", Kind: UnknownKind("my-lang", 3)},
	}
	for _, opts := range good {
		c, err := NewCode(opts)
		if err != nil {
			t.Fatalf("NewCode(%+v): %v", opts, err)
		}
		back, err := ParseCode(c.String())
		if err != nil {
			t.Fatalf("reparse %q: %v", c.String(), err)
		}
		if back.Compare(c) != 0 {
			t.Fatalf("round trip mismatch for %q", c.String())
		}
	}

	bad := []struct {
		opts CodeOptions
		want error
	}{
		{opts: CodeOptions{Content: "x"}, want: ErrIncompleteData},
		{opts: CodeOptions{Content: "x", Kind: CodeKind{Lang: LangUnknown, Fence: 3}}, want: ErrIncompleteData},
		{opts: CodeOptions{Content: "", Kind: NoneKind(1)}, want: ErrEmptyContent},
		{opts: CodeOptions{Content: "a``b", Kind: NoneKind(2)}, want: ErrUnexpectedChar},
		{opts: CodeOptions{Content: "a\nb", Kind: NoneKind(1)}, want: ErrUnexpectedChar},
		{opts: CodeOptions{Content: "x", Kind: CodeKind{Lang: LangGo, Fence: 1}}, want: ErrUnexpectedString},
		{opts: CodeOptions{Content: "x", Kind: UnknownKind("bad!", 3)}, want: ErrUnexpectedChar},
		{opts: CodeOptions{Content: "```", Kind: NoneKind(3)}, want: ErrUnexpectedChar},
	}
	for _, tc := range bad {
		if _, err := NewCode(tc.opts); !errors.Is(err, tc.want) {
			t.Fatalf("NewCode(%+v) error = %v, want %v", tc.opts, err, tc.want)
		}
	}
}

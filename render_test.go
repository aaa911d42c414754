package dumd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func TestHeadingsIncludeMarkers(t *testing.T) {
	src := []byte("# One\n\n## Two\n\n### Three\n")
	out := stripANSI(renderDoc(t, src, 0))
	for _, want := range []string{"# One", "## Two", "### Three"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing heading %q in %q", want, out)
		}
	}
}

func TestListItemsRenderText(t *testing.T) {
	src := []byte("- one\n- two\n\n- three\n  - nested\n")
	out := stripANSI(renderDoc(t, src, 0))
	for _, item := range []string{"one", "two", "three", "nested"} {
		if !strings.Contains(out, item) {
			t.Fatalf("missing list item %q in %q", item, out)
		}
	}
	if strings.Contains(out, "- -") {
		t.Fatalf("nested list marker rendered inline: %q", out)
	}
}

func TestOSC8Links(t *testing.T) {
	src := []byte("See [website](https://example.com) now.\n")
	no := stripANSI(renderDoc(t, src, 0))
	if !strings.Contains(no, "website (https://example.com)") {
		t.Fatalf("expected fallback link rendering, got %q", no)
	}
	osc := renderDocWithOptions(t, src, 0, WithOSC8(true))
	if !strings.Contains(osc, "\x1b]8;;https://example.com\x1b\\") {
		t.Fatalf("missing OSC 8 start sequence")
	}
	if !strings.Contains(osc, "\x1b]8;;\x1b\\") {
		t.Fatalf("missing OSC 8 end sequence")
	}
	if strings.Contains(stripANSI(osc), "(https://example.com)") {
		t.Fatalf("OSC 8 output should not print the target: %q", stripANSI(osc))
	}
}

func TestReferenceLinksResolveWhenRendering(t *testing.T) {
	src := []byte("Read [the manual](manual) or [this](nowhere).\n\n[manual]: <https://example.com/manual>\n")
	out := stripANSI(renderDoc(t, src, 0))
	if !strings.Contains(out, "the manual (https://example.com/manual)") {
		t.Fatalf("reference link not resolved: %q", out)
	}
	if !strings.Contains(out, "this [nowhere]") {
		t.Fatalf("unresolved reference not marked: %q", out)
	}
	if !strings.Contains(out, "[manual]: https://example.com/manual") {
		t.Fatalf("missing definition line: %q", out)
	}
}

func TestBlankLineBetweenListAndHeading(t *testing.T) {
	src := []byte("1. First\n2. Second\n\n## Header\n")
	out := stripANSI(renderDoc(t, src, 0))
	if !strings.Contains(out, "Second\n\n## Header") {
		t.Fatalf("expected blank line before header, got %q", out)
	}
}

func TestRenderLongURLIsShortened(t *testing.T) {
	src := []byte("[x](https://example.com/a/very/long/path/that/does/not/fit)\n")
	out := stripANSI(renderDoc(t, src, 30))
	for i, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if w := ansi.PrintableRuneWidth(line); w > 30 {
			t.Fatalf("line %d is %d columns: %q", i+1, w, line)
		}
	}
	if !strings.Contains(out, "…") {
		t.Fatalf("expected an ellipsis in %q", out)
	}
}

func TestSoftWrapBreaksLongWords(t *testing.T) {
	src := []byte("tiny supercalifragilisticexpialidocious word\n")
	hard := stripANSI(renderDoc(t, src, 10))
	if !strings.Contains(hard, "supercalifragilisticexpialidocious") {
		t.Fatalf("word should overflow without soft wrap: %q", hard)
	}
	soft := stripANSI(renderDocWithOptions(t, src, 10, WithSoftWrap(true)))
	for i, line := range strings.Split(strings.TrimSuffix(soft, "\n"), "\n") {
		if w := ansi.PrintableRuneWidth(line); w > 10 {
			t.Fatalf("soft wrapped line %d is %d columns: %q", i+1, w, line)
		}
	}
}

func TestCodeBlockIsNotWrapped(t *testing.T) {
	src := []byte("```\nthis line is much longer than the width\n```\n")
	out := stripANSI(renderDoc(t, src, 10))
	if out != "  this line is much longer than the width\n" {
		t.Fatalf("unexpected code rendering %q", out)
	}
}

func TestRenderRequiresReaderAndWriter(t *testing.T) {
	if err := Render(RenderRequest{Writer: &bytes.Buffer{}}); err == nil {
		t.Fatalf("expected error for nil reader")
	}
	if err := Render(RenderRequest{Reader: strings.NewReader("x")}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
	err := Render(RenderRequest{Reader: strings.NewReader("####### x"), Writer: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "block 1") {
		t.Fatalf("expected block error, got %v", err)
	}
}

func TestHTTPRender(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("# Remote\n\nBody text.\n"))
	}))
	defer server.Close()

	var out bytes.Buffer
	err := HTTPRender(context.Background(), HTTPRenderRequest{
		URL:    server.URL + "/doc.md",
		Client: server.Client(),
		Writer: &out,
		Theme:  BoringTheme(),
	})
	if err != nil {
		t.Fatalf("HTTPRender: %v", err)
	}
	if out.String() != "# Remote\n\nBody text.\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	err = HTTPRender(context.Background(), HTTPRenderRequest{
		URL:    server.URL + "/missing",
		Writer: &out,
	})
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
	if _, err := FetchHTTP(context.Background(), nil, "ftp://example.com/x"); err == nil {
		t.Fatalf("expected unsupported scheme error")
	}
}

func TestDetectOSC8(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{name: "empty", env: map[string]string{}, want: false},
		{name: "forced off", env: map[string]string{"OSC8": "0", "TERM_PROGRAM": "WezTerm"}, want: false},
		{name: "forced on", env: map[string]string{"OSC8": "1"}, want: true},
		{name: "known terminal", env: map[string]string{"TERM_PROGRAM": "ghostty"}, want: true},
		{name: "kitty", env: map[string]string{"TERM": "xterm-kitty"}, want: true},
		{name: "new vte", env: map[string]string{"VTE_VERSION": "6003"}, want: true},
		{name: "old vte", env: map[string]string{"VTE_VERSION": "4200"}, want: false},
	}
	for _, tc := range tests {
		getenv := func(k string) string { return tc.env[k] }
		if got := detectOSC8(getenv); got != tc.want {
			t.Fatalf("%s: detectOSC8 = %t, want %t", tc.name, got, tc.want)
		}
	}
}

func TestFitURL(t *testing.T) {
	tests := []struct {
		url   string
		limit int
		want  string
	}{
		{url: "https://example.com", limit: 40, want: "https://example.com"},
		{url: "https://example.com/abc", limit: 16, want: "example.com/abc"},
		{url: "https://example.com/abcdef", limit: 10, want: "https://e…"},
	}
	for _, tc := range tests {
		if got := fitURL(tc.url, tc.limit); got != tc.want {
			t.Fatalf("fitURL(%q, %d) = %q, want %q", tc.url, tc.limit, got, tc.want)
		}
	}
}

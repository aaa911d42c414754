package main

import (
	"context"
	"encoding/json"
	goflag "flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/dumd"
	"pkt.systems/version"
)

const (
	defaultThemeName = "default"
	defaultWidth     = 80
)

func init() {
	version.SetDefaultModule("pkt.systems/dumd")
}

// options is everything convert needs besides input and output.
type options struct {
	format          string
	theme           dumd.Theme
	width           int
	osc8            bool
	softWrap        bool
	lenientEmphasis bool
	headingIDs      bool
}

func main() {
	var (
		format          string
		themeName       string
		widthFlag       int
		osc8Flag        string
		listThemes      bool
		outPath         string
		boring          bool
		lenientEmphasis bool
		softWrap        bool
		headingIDs      bool
	)

	flags := pflag.NewFlagSet("dumd", pflag.ExitOnError)
	flags.StringVarP(&format, "format", "f", "ansi", "Output format: ansi|markdown|html|json|tokens")
	flags.StringVarP(&themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&osc8Flag, "osc8", "8", "auto", "OSC8 hyperlinks: auto|on|off")
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&boring, "boring", "b", false, "Generate non-ANSI output")
	flags.BoolVar(&lenientEmphasis, "lenient-emphasis", false, "Accept emphasis closed by more stars than it was opened with")
	flags.BoolVar(&softWrap, "soft-wrap", false, "Break words longer than the width")
	flags.BoolVar(&headingIDs, "heading-ids", false, "Add id attributes to headings in html output")
	flags.AddGoFlagSet(goflag.CommandLine)

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: dumd [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, markup is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	// glog refuses to log until the go flag set reports itself parsed.
	_ = goflag.CommandLine.Parse([]string{})
	defer glog.Flush()

	if listThemes {
		printThemes(os.Stdout)
		return
	}

	theme, ok := dumd.ThemeByName(themeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown theme %q\n\n", themeName)
		printThemes(os.Stderr)
		exit(2)
	}
	if boring {
		theme = dumd.BoringTheme()
	}

	args := flags.Args()
	reader, closer, err := openInputs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	osc8, err := resolveOSC8(osc8Flag, writer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --osc8 %q: %v\n", osc8Flag, err)
		exit(2)
	}

	opts := options{
		format:          format,
		theme:           theme,
		width:           resolveWidth(widthFlag),
		osc8:            osc8,
		softWrap:        softWrap,
		lenientEmphasis: lenientEmphasis,
		headingIDs:      headingIDs,
	}
	glog.V(1).Infof("converting %d input(s) to %s, width %d, theme %s", max(len(args), 1), format, opts.width, theme.Name())
	if err := convert(reader, writer, opts); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", format, err)
		exit(1)
	}
}

// exit flushes pending log output, which os.Exit would otherwise drop.
func exit(code int) {
	glog.Flush()
	os.Exit(code)
}

func convert(r io.Reader, w io.Writer, opts options) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	glog.V(2).Infof("read %s of input", humanize.Bytes(uint64(len(src))))
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format == "tokens" {
		if err := dumd.ValidateInput(src); err != nil {
			return err
		}
		return writeJSON(w, dumd.Tokenize(string(src)))
	}
	var parserOpts []dumd.Option
	if opts.lenientEmphasis {
		parserOpts = append(parserOpts, dumd.WithLenientEmphasis(true))
	}
	doc, err := dumd.NewParser(parserOpts...).Document(src)
	if err != nil {
		return err
	}
	glog.V(2).Infof("parsed %d block(s), front matter: %t", len(doc.Blocks), doc.FrontMatter != "")
	switch format {
	case "", "ansi":
		return dumd.RenderDocument(w, doc, opts.width, opts.theme,
			dumd.WithOSC8(opts.osc8), dumd.WithSoftWrap(opts.softWrap))
	case "markdown", "md":
		_, err := io.WriteString(w, doc.String())
		return err
	case "html":
		return dumd.FormatHTML(w, doc, dumd.WithHeadingIDs(opts.headingIDs))
	case "json":
		return writeJSON(w, doc)
	}
	return fmt.Errorf("unknown format %q", opts.format)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printThemes(w io.Writer) {
	for _, name := range dumd.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

// resolveOSC8 maps the flag value to a setting. auto only enables links when
// writing to a terminal that supports them.
func resolveOSC8(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return isTerminal(w) && dumd.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

// multiInputReader reads its sources one after another, opening each lazily.
type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				glog.V(1).Infof("fetching %s", raw)
				body, err := dumd.FetchHTTP(context.Background(), nil, raw)
				if err != nil {
					return nil, nil, err
				}
				return body, body, nil
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	clean := normalizePath(path)
	glog.V(1).Infof("reading %s", clean)
	f, err := os.Open(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

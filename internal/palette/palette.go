// Package palette holds the ANSI color sets behind the built-in themes.
package palette

import (
	"strconv"
	"strings"
)

// SGR attributes shared by every palette.
const (
	Reset     = "\x1b[0m"
	Bold      = "\x1b[1m"
	Italic    = "\x1b[3m"
	Underline = "\x1b[4m"
)

// Palette maps each semantic role to an ANSI foreground sequence.
type Palette struct {
	Text           string
	H1             string
	H2             string
	H3             string
	H4             string
	H5             string
	H6             string
	Emphasis       string
	Strong         string
	EmphasisStrong string
	CodeInline     string
	CodeBlock      string
	ListMarker     string
	LinkText       string
	LinkURL        string
	Reference      string
}

// FG returns the 24-bit foreground sequence for a "#rrggbb" color. Malformed
// input yields "".
func FG(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ""
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("\x1b[38;2;")
	b.WriteString(strconv.Itoa(int(v >> 16 & 0xff)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(v >> 8 & 0xff)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(v & 0xff)))
	b.WriteByte('m')
	return b.String()
}

func build(text, h1, h2, h3, em, strong, code, marker, link, url string) Palette {
	return Palette{
		Text:           FG(text),
		H1:             FG(h1),
		H2:             FG(h2),
		H3:             FG(h3),
		H4:             FG(h3),
		H5:             FG(text),
		H6:             FG(text),
		Emphasis:       FG(em),
		Strong:         FG(strong),
		EmphasisStrong: FG(h1),
		CodeInline:     FG(code),
		CodeBlock:      FG(code),
		ListMarker:     FG(marker),
		LinkText:       FG(link),
		LinkURL:        FG(url),
		Reference:      FG(url),
	}
}

var (
	PaletteDefault = Palette{
		Text:           "",
		H1:             "\x1b[1;38;5;81m",
		H2:             "\x1b[1;38;5;117m",
		H3:             "\x1b[1;38;5;153m",
		H4:             "\x1b[38;5;153m",
		H5:             "\x1b[38;5;188m",
		H6:             "\x1b[38;5;250m",
		Emphasis:       "\x1b[38;5;223m",
		Strong:         "\x1b[38;5;215m",
		EmphasisStrong: "\x1b[38;5;209m",
		CodeInline:     "\x1b[38;5;150m",
		CodeBlock:      "\x1b[38;5;114m",
		ListMarker:     "\x1b[38;5;75m",
		LinkText:       "\x1b[38;5;39m",
		LinkURL:        "\x1b[38;5;244m",
		Reference:      "\x1b[38;5;246m",
	}
	PaletteGruvbox        = build("#ebdbb2", "#fb4934", "#fabd2f", "#b8bb26", "#83a598", "#fe8019", "#8ec07c", "#d3869b", "#83a598", "#928374")
	PaletteGruvboxLight   = build("#3c3836", "#9d0006", "#b57614", "#79740e", "#076678", "#af3a03", "#427b58", "#8f3f71", "#076678", "#7c6f64")
	PaletteDracula        = build("#f8f8f2", "#ff79c6", "#bd93f9", "#8be9fd", "#f1fa8c", "#ffb86c", "#50fa7b", "#ff79c6", "#8be9fd", "#6272a4")
	PaletteNord           = build("#d8dee9", "#88c0d0", "#81a1c1", "#5e81ac", "#ebcb8b", "#d08770", "#a3be8c", "#b48ead", "#88c0d0", "#4c566a")
	PaletteTokyoNight     = build("#c0caf5", "#7aa2f7", "#bb9af7", "#7dcfff", "#e0af68", "#ff9e64", "#9ece6a", "#bb9af7", "#7dcfff", "#565f89")
	PaletteCatppuccin     = build("#cdd6f4", "#f38ba8", "#fab387", "#f9e2af", "#cba6f7", "#eba0ac", "#a6e3a1", "#89b4fa", "#89dceb", "#6c7086")
	PaletteRosePine       = build("#e0def4", "#eb6f92", "#f6c177", "#ebbcba", "#c4a7e7", "#eb6f92", "#9ccfd8", "#31748f", "#9ccfd8", "#6e6a86")
	PaletteSolarizedDark  = build("#839496", "#b58900", "#cb4b16", "#d33682", "#6c71c4", "#dc322f", "#859900", "#2aa198", "#268bd2", "#586e75")
	PaletteSolarizedLight = build("#657b83", "#b58900", "#cb4b16", "#d33682", "#6c71c4", "#dc322f", "#859900", "#2aa198", "#268bd2", "#93a1a1")
	PaletteGithubDark     = build("#c9d1d9", "#79c0ff", "#d2a8ff", "#ffa657", "#a5d6ff", "#ff7b72", "#7ee787", "#79c0ff", "#58a6ff", "#8b949e")
	PaletteGithubLight    = build("#24292f", "#0550ae", "#8250df", "#953800", "#0a3069", "#cf222e", "#116329", "#0550ae", "#0969da", "#6e7781")
	PaletteOneDark        = build("#abb2bf", "#e06c75", "#61afef", "#c678dd", "#e5c07b", "#d19a66", "#98c379", "#56b6c2", "#61afef", "#5c6370")
)

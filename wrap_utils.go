package dumd

import (
	"strings"

	"github.com/muesli/reflow/ansi"
)

const ellipsis = "…"

// truncateWithEllipsis cuts text to at most limit columns, counting wide
// runes as two, and marks the cut with an ellipsis.
func truncateWithEllipsis(text string, limit int) string {
	if ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	var b strings.Builder
	col := 0
	for _, r := range text {
		w := ansi.PrintableRuneWidth(string(r))
		if col+w > limit-1 {
			break
		}
		b.WriteRune(r)
		col += w
	}
	b.WriteString(ellipsis)
	return b.String()
}

// fitURL shortens url to limit columns, dropping the scheme before
// truncating.
func fitURL(url string, limit int) string {
	if ansi.PrintableRuneWidth(url) <= limit {
		return url
	}
	if _, rest, ok := strings.Cut(url, "://"); ok && ansi.PrintableRuneWidth(rest) <= limit {
		return rest
	}
	return truncateWithEllipsis(url, limit)
}

package dumd

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// splitFrontMatter separates a leading front matter block from src. raw is
// the block including its delimiters, without the final line break. A start
// delimiter that is not followed by metadata, or that is never closed, is
// left in the body.
func splitFrontMatter(src []byte) (raw, body []byte) {
	openLine, openNext := nextLine(src, 0)
	delim, ok := parseOpeningFrontMatterDelimiter(openLine)
	if !ok || openNext == len(src) {
		return nil, src
	}
	secondLine, secondNext := nextLine(src, openNext)
	if !frontMatterMetadataLikely(secondLine) {
		return nil, src
	}
	closeNext, found := findClosingFrontMatterDelimiter(src, secondNext, delim)
	if !found {
		return nil, src
	}
	raw = bytes.TrimRight(src[:closeNext], "\r\n")
	return trimBOM(raw), src[closeNext:]
}

// decodeFrontMatter unmarshals the YAML, TOML or JSON block returned by
// splitFrontMatter.
func decodeFrontMatter(raw []byte) (map[string]any, error) {
	meta := map[string]any{}
	// The decoder expects the block to end in a line break.
	src := append(bytes.Clone(raw), '\n')
	if _, err := frontmatter.Parse(bytes.NewReader(src), &meta); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	return meta, nil
}

// nextLine returns the line starting at start without its terminator, and
// the offset of the following line.
func nextLine(src []byte, start int) ([]byte, int) {
	if start >= len(src) {
		return nil, len(src)
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src)
	}
	lineEnd := start + i
	return trimCR(src[start:lineEnd]), lineEnd + 1
}

func parseOpeningFrontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), true
	default:
		return nil, false
	}
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	return bytes.Contains(trimmed, []byte(":")) || bytes.Contains(trimmed, []byte("="))
}

func findClosingFrontMatterDelimiter(src []byte, start int, delim []byte) (int, bool) {
	for idx := start; idx < len(src); {
		line, next := nextLine(src, idx)
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return next, true
		}
		idx = next
	}
	return 0, false
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

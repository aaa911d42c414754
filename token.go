package dumd

import (
	"strconv"
	"strings"
)

// Token is one lexical unit of markup source.
type Token struct {
	Kind TokenKind
	// Char and Count describe a run; Count is always >= 1.
	Char  rune
	Count int
	// Text holds the literal of a text or number token.
	Text string
}

type tokenKind uint8

// TokenKind is the exported alias of tokenKind for tooling.
type TokenKind = tokenKind

const (
	tokenRun tokenKind = iota
	tokenText
	tokenNumber
)

const (
	// TokenRun is a maximal run of one repeated non-alphanumeric rune.
	TokenRun tokenKind = tokenRun
	// TokenText is a run of letters, possibly with digits and spaces folded in.
	TokenText tokenKind = tokenText
	// TokenNumber is a digit run with an optional dot and fraction.
	TokenNumber tokenKind = tokenNumber
)

func (k tokenKind) String() string {
	switch k {
	case tokenRun:
		return "run"
	case tokenText:
		return "text"
	case tokenNumber:
		return "number"
	default:
		return "token(" + strconv.Itoa(int(k)) + ")"
	}
}

// RunOf returns a run token of count repetitions of c.
func RunOf(c rune, count int) Token {
	return Token{Kind: tokenRun, Char: c, Count: count}
}

// TextOf returns a text token.
func TextOf(s string) Token {
	return Token{Kind: tokenText, Text: s}
}

// NumberOf returns a number token for the literal s, e.g. "1", "1." or "3.14".
func NumberOf(s string) Token {
	return Token{Kind: tokenNumber, Text: s}
}

// String returns the source text the token was scanned from.
func (t Token) String() string {
	if t.Kind == tokenRun {
		return repeatRune(t.Char, t.Count)
	}
	return t.Text
}

// IsRun reports whether t is a run of c. A count of 0 matches any length.
func (t Token) IsRun(c rune, count int) bool {
	return t.Kind == tokenRun && t.Char == c && (count == 0 || t.Count == count)
}

// Whole returns the integer part of a number token. Digits that do not fit
// an int clamp to math.MaxInt; the literal text is always exact.
func (t Token) Whole() int {
	n, _ := t.whole()
	return n
}

func (t Token) whole() (int, error) {
	if t.Kind != tokenNumber {
		return 0, nil
	}
	whole, _, _ := strings.Cut(t.Text, ".")
	return strconv.Atoi(whole)
}

// Fraction returns the fractional part of a number token and whether the
// literal contained a dot. "1." yields (0, true). Like Whole, fractions that
// do not fit an int clamp to math.MaxInt.
func (t Token) Fraction() (int, bool) {
	if t.Kind != tokenNumber {
		return 0, false
	}
	_, frac, ok := strings.Cut(t.Text, ".")
	if !ok {
		return 0, false
	}
	n, _ := strconv.Atoi(frac)
	return n, true
}

// isListMarker reports whether t is an ordered-list marker such as "3.".
func (t Token) isListMarker() bool {
	return t.Kind == tokenNumber && strings.HasSuffix(t.Text, ".") && strings.Count(t.Text, ".") == 1
}

var runeStrings = func() [128]string {
	var out [128]string
	for i := range out {
		out[i] = string(rune(i))
	}
	return out
}()

func repeatRune(c rune, n int) string {
	if n <= 0 {
		return ""
	}
	if c >= 0 && c < 128 {
		if n == 1 {
			return runeStrings[c]
		}
		return strings.Repeat(runeStrings[c], n)
	}
	return strings.Repeat(string(c), n)
}

func tokensString(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.String())
	}
	return b.String()
}

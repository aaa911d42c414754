package dumd

import (
	"strings"
	"unicode"
)

type accKind uint8

const (
	accNone accKind = iota
	accText
	accNumber
)

// lexer holds the scan state of one Tokenize call. A pending run and an open
// accumulator are never live at the same time.
type lexer struct {
	tokens []Token
	run    rune
	count  int
	acc    accKind
	dot    bool
	buf    strings.Builder
}

// Tokenize scans text left to right into runs, text and numbers. It never
// fails: anything it cannot classify becomes a run. For valid UTF-8 text,
// concatenating the String of every returned token reproduces text exactly;
// invalid bytes come back as utf8.RuneError.
func Tokenize(text string) []Token {
	lx := lexer{tokens: make([]Token, 0, len(text)/4+1)}
	for _, r := range text {
		lx.feed(r)
	}
	lx.flush()
	return lx.tokens
}

func (lx *lexer) feed(r rune) {
	switch {
	case isDigit(r):
		if lx.acc == accNone {
			lx.flushRun()
			lx.acc = accNumber
			lx.dot = false
		}
		lx.buf.WriteRune(r)
	case isLetter(r):
		lx.flushRun()
		lx.acc = accText
		lx.buf.WriteRune(r)
	case r == '.' && lx.acc == accNumber && !lx.dot:
		lx.dot = true
		lx.buf.WriteRune(r)
	case r == ' ' && lx.acc == accText:
		lx.buf.WriteRune(r)
	default:
		if lx.count > 0 && lx.run == r {
			lx.count++
			return
		}
		lx.flush()
		lx.run = r
		lx.count = 1
	}
}

func (lx *lexer) flushRun() {
	if lx.count == 0 {
		return
	}
	lx.tokens = append(lx.tokens, RunOf(lx.run, lx.count))
	lx.run = 0
	lx.count = 0
}

func (lx *lexer) flushAcc() {
	switch lx.acc {
	case accText:
		lx.tokens = append(lx.tokens, TextOf(lx.buf.String()))
	case accNumber:
		lx.tokens = append(lx.tokens, NumberOf(lx.buf.String()))
	default:
		return
	}
	lx.buf.Reset()
	lx.acc = accNone
	lx.dot = false
}

func (lx *lexer) flush() {
	lx.flushRun()
	lx.flushAcc()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isLetter also admits non-ASCII digits and combining marks so decomposed
// words stay in one text token.
func isLetter(r rune) bool {
	if r < 0x80 {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

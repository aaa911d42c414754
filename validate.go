package dumd

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns an error if src is not valid UTF-8 or looks binary:
// it holds a NUL byte, or at least maxControlPct percent of a sample of
// minBinarySample bytes or more are control characters. Errors wrap
// ErrInvalidUTF8 or ErrBinaryInput and name the byte offset when there is one.
func ValidateInput(src []byte) error {
	control := 0
	for off := 0; off < len(src); {
		r, size := utf8.DecodeRune(src[off:])
		switch {
		case r == utf8.RuneError && size == 1:
			return fmt.Errorf("%w at byte %d", ErrInvalidUTF8, off)
		case r == 0:
			return fmt.Errorf("%w: NUL at byte %d", ErrBinaryInput, off)
		case isControlRune(r):
			control++
		}
		off += size
	}
	if len(src) >= minBinarySample && control*100 >= len(src)*maxControlPct {
		return fmt.Errorf("%w: %d of %d bytes are control characters", ErrBinaryInput, control, len(src))
	}
	return nil
}

// isControlRune reports C0 controls other than the whitespace markup uses,
// plus DEL.
func isControlRune(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r':
		return false
	}
	return r < 0x20 || r == 0x7F
}

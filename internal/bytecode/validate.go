// Package bytecode validates and normalizes raw bytecode input before
// decoding. It is encoding-level only: no opcode-aware logic lives here.
package bytecode

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DefaultMaxBytes caps decoded input size to guard against pathologically
// large inputs. The ceiling is well above any deployable contract (EIP-170
// limits runtime code to 24KB).
const DefaultMaxBytes = 1 << 24

// ErrorKind identifies which validation check rejected the input.
type ErrorKind int

const (
	EmptyInput ErrorKind = iota
	InvalidCharacter
	OddLength
	TooLarge
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyInput:
		return "empty input"
	case InvalidCharacter:
		return "invalid character"
	case OddLength:
		return "odd length"
	case TooLarge:
		return "too large"
	default:
		return "unknown"
	}
}

// ValidationError is a fatal input rejection. It blocks parsing entirely,
// unlike the structural errors the parser accumulates.
type ValidationError struct {
	Kind ErrorKind
	Char rune // offending character, InvalidCharacter only
	Pos  int  // digit position of Char, InvalidCharacter only
	Size int  // decoded size in bytes, TooLarge only
	Max  int  // configured ceiling, TooLarge only
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case EmptyInput:
		return "bytecode cannot be empty"
	case InvalidCharacter:
		return fmt.Sprintf("bytecode contains invalid character %q at position %d (must be hexadecimal: 0-9, a-f, A-F)", e.Char, e.Pos)
	case OddLength:
		return "bytecode must have even length (each byte = 2 hex characters)"
	case TooLarge:
		return fmt.Sprintf("bytecode is %d bytes, exceeds limit of %d bytes", e.Size, e.Max)
	default:
		return "invalid bytecode"
	}
}

// Clean validates a textual hex input and returns the decoded bytes, using
// the default size ceiling.
func Clean(raw string) ([]byte, error) {
	return CleanN(raw, DefaultMaxBytes)
}

// CleanN validates a textual hex input against a caller-chosen size ceiling.
//
// Checks run in order and short-circuit on first failure: non-empty, optional
// case-insensitive 0x prefix strip, hex character set, even digit count, size
// ceiling. Edge whitespace is trimmed and internal whitespace dropped before
// any check; "0x..." and "..." with the same digits normalize identically.
func CleanN(raw string, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	s := strings.TrimSpace(raw)
	if s != "" {
		s = dropWhitespace(s)
	}
	if s == "" {
		return nil, &ValidationError{Kind: EmptyInput}
	}

	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if s == "" {
		return nil, &ValidationError{Kind: EmptyInput}
	}

	for i, r := range s {
		if !isHexDigit(r) {
			return nil, &ValidationError{Kind: InvalidCharacter, Char: r, Pos: i}
		}
	}

	if len(s)%2 != 0 {
		return nil, &ValidationError{Kind: OddLength}
	}

	if len(s)/2 > maxBytes {
		return nil, &ValidationError{Kind: TooLarge, Size: len(s) / 2, Max: maxBytes}
	}

	data, err := hex.DecodeString(strings.ToLower(s))
	if err != nil {
		// Unreachable after the character and length checks above.
		return nil, fmt.Errorf("failed to decode hex: %w", err)
	}
	return data, nil
}

// FromRaw validates an already-decoded byte buffer. Only the empty and size
// checks apply; the returned slice is an owned copy.
func FromRaw(data []byte, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if len(data) == 0 {
		return nil, &ValidationError{Kind: EmptyInput}
	}
	if len(data) > maxBytes {
		return nil, &ValidationError{Kind: TooLarge, Size: len(data), Max: maxBytes}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func dropWhitespace(s string) string {
	if !strings.ContainsAny(s, " \t\r\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\r', '\n':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

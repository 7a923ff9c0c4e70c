// Package transform implements the fixed character substitutions used by the
// example functions: digit shifts, Caesar shifts and letter/number encoding.
package transform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned when an argument cannot be transformed.
var ErrInvalidInput = errors.New("invalid input")

// Increment parses s as a base-10 integer and returns it plus one.
func Increment(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, s)
	}
	return n + 1, nil
}

// ShiftDigits replaces every ASCII digit d with (d+k) mod 10.
func ShiftDigits(s string, k int) string {
	return strings.Map(func(r rune) rune {
		if !isDigit(r) {
			return r
		}
		return '0' + rune(mod(int(r-'0')+k, 10))
	}, s)
}

// AddSeven replaces every digit with the last digit of itself plus seven.
func AddSeven(s string) string {
	return ShiftDigits(s, 7)
}

// SubtractSeven replaces every digit with the last digit of itself minus
// seven. Unlike AddSeven, the input must consist of digits only.
func SubtractSeven(s string) (string, error) {
	for i, r := range s {
		if !isDigit(r) {
			return "", fmt.Errorf("%w: non-digit %q at offset %d", ErrInvalidInput, r, i)
		}
	}
	return ShiftDigits(s, -7), nil
}

// ShiftLetters applies a Caesar shift of k positions to ASCII letters,
// preserving case. A negative k shifts to the left.
func ShiftLetters(s string, k int) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'a' + rune(mod(int(r-'a')+k, 26))
		case r >= 'A' && r <= 'Z':
			return 'A' + rune(mod(int(r-'A')+k, 26))
		}
		return r
	}, s)
}

// MoveLeft shifts every letter seven positions to the left.
func MoveLeft(s string) string {
	return ShiftLetters(s, -7)
}

// EncodeLetters turns a-z into 01-26 and A-Z into 27-52.
func EncodeLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			fmt.Fprintf(&b, "%02d", r-'a'+1)
		case r >= 'A' && r <= 'Z':
			fmt.Fprintf(&b, "%02d", r-'A'+27)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DecodeLetters reads s as consecutive two-digit codes in 01-52 and returns
// the letters they stand for.
func DecodeLetters(s string) (string, error) {
	if len(s)%2 != 0 {
		return "", fmt.Errorf("%w: odd length %d", ErrInvalidInput, len(s))
	}

	var b strings.Builder
	b.Grow(len(s) / 2)
	for i := 0; i < len(s); i += 2 {
		pair := s[i : i+2]
		if !isDigit(rune(pair[0])) || !isDigit(rune(pair[1])) {
			return "", fmt.Errorf("%w: %q is not a number", ErrInvalidInput, pair)
		}
		n := int(pair[0]-'0')*10 + int(pair[1]-'0')
		switch {
		case n >= 1 && n <= 26:
			b.WriteByte(byte('a' + n - 1))
		case n >= 27 && n <= 52:
			b.WriteByte(byte('A' + n - 27))
		default:
			return "", fmt.Errorf("%w: code %d out of range 1-52", ErrInvalidInput, n)
		}
	}
	return b.String(), nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// mod is the non-negative remainder.
func mod(a, n int) int {
	return ((a % n) + n) % n
}

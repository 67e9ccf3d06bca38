// Package rcstr encodes string literals for resource scripts.
// Narrow literals escape with three-digit octal sequences, wide literals with
// four-digit hex sequences.
package rcstr

import (
	"strconv"
	"unicode/utf16"
)

const hexDigits = "0123456789abcdef"

// NeedsNarrowEscape reports whether b must be written as an octal escape.
func NeedsNarrowEscape(b byte) bool {
	switch {
	case b <= 0x1f:
		return true
	case b == '\\', b == '"', b == 0x7f:
		return true
	default:
		return false
	}
}

// NeedsWideEscape reports whether the UTF-16 unit u must be written as a hex escape.
// Backslash is not escaped this way; wide literals double it instead.
func NeedsWideEscape(u uint16) bool {
	switch {
	case u <= 0x1f:
		return true
	case u == '"', u == 0x7f:
		return true
	case u >= 0x20 && u <= 0x7e:
		return false
	default:
		return true
	}
}

// AppendNarrow appends s as a quoted narrow literal. Bytes outside the escape set,
// including UTF-8 continuation bytes, pass through verbatim.
func AppendNarrow(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		b := s[i]
		if !NeedsNarrowEscape(b) {
			dst = append(dst, b)
			continue
		}
		dst = append(dst, '\\', '0'+(b>>6)&7, '0'+(b>>3)&7, '0'+b&7)
	}
	return append(dst, '"')
}

// AppendWide appends s as an L-prefixed wide literal. Invalid UTF-8 sequences
// become U+FFFD.
func AppendWide(dst []byte, s string) []byte {
	dst = append(dst, 'L', '"')
	for _, u := range utf16.Encode([]rune(s)) {
		switch {
		case u == '\\':
			dst = append(dst, '\\', '\\')
		case NeedsWideEscape(u):
			dst = append(dst, '\\', 'x',
				hexDigits[u>>12&0xf], hexDigits[u>>8&0xf], hexDigits[u>>4&0xf], hexDigits[u&0xf])
		default:
			dst = append(dst, byte(u))
		}
	}
	return append(dst, '"')
}

// AppendPreferNarrow appends s as a narrow literal when every character is plain
// ASCII and as a wide literal otherwise.
func AppendPreferNarrow(dst []byte, s string) []byte {
	if IsASCII(s) {
		return AppendNarrow(dst, s)
	}
	return AppendWide(dst, s)
}

// IsASCII reports whether s holds only 7-bit characters.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Long formats a 32-bit value with the long-literal suffix.
func Long(v uint32) string {
	return strconv.FormatUint(uint64(v), 10) + "L"
}

// LongInt formats a signed 32-bit value with the long-literal suffix.
func LongInt(v int32) string {
	return strconv.FormatInt(int64(v), 10) + "L"
}

// Word formats a 16-bit value without a suffix.
func Word(v uint16) string {
	return strconv.FormatUint(uint64(v), 10)
}

// Short formats a signed 16-bit value without a suffix.
func Short(v int16) string {
	return strconv.FormatInt(int64(v), 10)
}

// Byte formats an 8-bit value without a suffix.
func Byte(v uint8) string {
	return strconv.FormatUint(uint64(v), 10)
}

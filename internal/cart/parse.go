package cart

import (
	"strconv"
	"strings"
	"unicode"
)

// ParsePrice keeps only the digits of a rendered price ("Rs. 2,499" -> 2499).
// ok is false when the text holds no digit at all, or when the digits do not
// fit an int; the price then defaults to 0.
func ParsePrice(text string) (price int, ok bool) {
	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseQuantity reads a quantity the way a number input is read on the
// storefront: leading integer prefix, and anything that yields no number or
// zero becomes 1. Negative values pass through.
func ParseQuantity(text string) int {
	n, ok := leadingInt(text)
	if !ok || n == 0 {
		return 1
	}
	return n
}

// leadingInt parses an optional sign followed by digits after leading
// whitespace and ignores whatever follows ("12abc" -> 12, "abc" -> not ok).
// A digit run too long for an int counts as no number.
func leadingInt(text string) (int, bool) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

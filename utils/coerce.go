package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// CoerceInt parses a lenient quantity value.
// Leading whitespace and an optional sign are accepted, then the longest run of
// decimal digits is parsed ("3", " 3 ", "3abc", "3.7" -> 3).
// Anything without leading digits, a negative result, or an overflow coerces to 0.
// This function never fails: it is the single place where quantity leniency lives.
func CoerceInt(value string) int {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0
	}

	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || neg {
		return 0
	}
	return n
}

// CoercePrice strips every non-digit character ("1 500 ₸" -> "1500") and parses the rest.
// Empty or overflowing input coerces to 0.
func CoercePrice(value string) int {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}

	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// AddCapped adds two non-negative ints, stopping at math.MaxInt instead of wrapping.
func AddCapped(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// MulCapped multiplies two non-negative ints, stopping at math.MaxInt instead of wrapping.
func MulCapped(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

var productNameReplacer = strings.NewReplacer(
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
	"«", "",
	"»", "",
	`"`, "",
	"&", " and ",
)

// SanitizeProductName makes a product name safe for formulas and labels:
// newlines become spaces, «» and " are dropped, & becomes " and ", and the result is trimmed.
// Applying it twice yields the same string as applying it once.
func SanitizeProductName(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimFunc(productNameReplacer.Replace(name), unicode.IsSpace)
}

// TruncateRunes cuts s to at most max characters without splitting a multi-byte rune.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}

// FormatOrderDate formats t as DD.MM.YYYY.
func FormatOrderDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// Package pystr implements Python str method semantics over Go strings.
// Positions and widths count code points, not bytes.
package pystr

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrEmptySeparator reports split or replace with an empty separator where
// Python rejects it.
var ErrEmptySeparator = errors.New("empty separator")

// Len returns the number of code points in s.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Upper returns s with all letters upper-cased.
func Upper(s string) string { return strings.ToUpper(s) }

// Lower returns s with all letters lower-cased.
func Lower(s string) string { return strings.ToLower(s) }

// Strip removes leading and trailing whitespace.
func Strip(s string) string { return strings.TrimFunc(s, unicode.IsSpace) }

// LStrip removes leading whitespace.
func LStrip(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) }

// RStrip removes trailing whitespace.
func RStrip(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }

// StripChars removes leading and trailing characters found in chars.
func StripChars(s, chars string) string { return strings.Trim(s, chars) }

// LStripChars removes leading characters found in chars.
func LStripChars(s, chars string) string { return strings.TrimLeft(s, chars) }

// RStripChars removes trailing characters found in chars.
func RStripChars(s, chars string) string { return strings.TrimRight(s, chars) }

// Replace replaces every occurrence of old with new. An empty old inserts new
// between every code point and at both ends.
func Replace(s, old, new string) string {
	return strings.ReplaceAll(s, old, new)
}

// Find returns the code point index of the first occurrence of sub, or -1.
func Find(s, sub string) int {
	i := strings.Index(s, sub)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:i])
}

// Count returns the number of non-overlapping occurrences of sub. An empty sub
// matches between every code point.
func Count(s, sub string) int {
	return strings.Count(s, sub)
}

// StartsWith reports whether s begins with prefix.
func StartsWith(s, prefix string) bool { return strings.HasPrefix(s, prefix) }

// EndsWith reports whether s ends with suffix.
func EndsWith(s, suffix string) bool { return strings.HasSuffix(s, suffix) }

// SplitWhitespace splits s on runs of whitespace, dropping empty fields.
func SplitWhitespace(s string) []string {
	return strings.Fields(s)
}

// Split splits s on every occurrence of sep.
func Split(s, sep string) ([]string, error) {
	if sep == "" {
		return nil, ErrEmptySeparator
	}
	return strings.Split(s, sep), nil
}

// Join concatenates parts with sep between them.
func Join(sep string, parts []string) string {
	return strings.Join(parts, sep)
}

// Center pads s on both sides with fill to width code points. The extra
// padding character goes left when both the padding and width are odd.
func Center(s string, width int, fill rune) string {
	n := Len(s)
	if width <= n {
		return s
	}
	marg := width - n
	left := marg/2 + (marg & width & 1)
	f := string(fill)
	return strings.Repeat(f, left) + s + strings.Repeat(f, marg-left)
}

// ZFill pads a numeric string with zeros on the left to width, keeping a
// leading sign in front.
func ZFill(s string, width int) string {
	n := Len(s)
	if width <= n {
		return s
	}
	pad := strings.Repeat("0", width-n)
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[:1] + pad + s[1:]
	}
	return pad + s
}

// Capitalize upper-cases the first code point and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Title upper-cases letters that follow a non-letter and lower-cases the rest.
func Title(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToTitle(r))
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}

// Reverse returns s with its code points in reverse order.
func Reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func all(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

// IsDigit reports whether s is non-empty and every code point is a digit.
func IsDigit(s string) bool { return all(s, unicode.IsDigit) }

// IsAlpha reports whether s is non-empty and every code point is a letter.
func IsAlpha(s string) bool { return all(s, unicode.IsLetter) }

// IsAlnum reports whether s is non-empty and every code point is a letter or digit.
func IsAlnum(s string) bool {
	return all(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })
}

// IsSpace reports whether s is non-empty and every code point is whitespace.
func IsSpace(s string) bool { return all(s, unicode.IsSpace) }

// Repeat returns n copies of s. Non-positive n yields the empty string.
func Repeat(s string, n int) string {
	if n <= 0 || s == "" {
		return ""
	}
	return strings.Repeat(s, n)
}

// Runes returns s as code points for indexing and slicing.
func Runes(s string) []rune {
	return []rune(s)
}

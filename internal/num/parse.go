package num

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

// stripUnderscores removes single underscores that sit between two digits.
func stripUnderscores(s string) (string, *ParseError) {
	if strings.IndexByte(s, '_') < 0 {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '_' {
			b.WriteByte(c)
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", &ParseError{Kind: ParseBadUnderscore}
		}
	}
	return b.String(), nil
}

// ParseIntDigits validates a base-10 integer literal with Python rules:
// surrounding whitespace, one optional sign, digits with single underscores.
// It returns the normalised literal accepted by strconv.
func ParseIntDigits(s string) (string, *ParseError) {
	s = trimSpace(s)
	if s == "" {
		return "", &ParseError{Kind: ParseEmpty}
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	if i == len(s) {
		return "", &ParseError{Kind: ParseNoDigits}
	}
	for j := i; j < len(s); j++ {
		c := s[j]
		switch {
		case isDigit(c), c == '_':
		case c == '+' || c == '-':
			return "", &ParseError{Kind: ParseMultipleSigns}
		default:
			return "", &ParseError{Kind: ParseBadChar}
		}
	}
	return stripUnderscores(s)
}

// ParseInt64 parses a Python integer literal into an int64.
func ParseInt64(s string) (int64, *ParseError) {
	lit, perr := ParseIntDigits(s)
	if perr != nil {
		return 0, perr
	}
	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &ParseError{Kind: ParseRange}
		}
		return 0, &ParseError{Kind: ParseBadChar}
	}
	return v, nil
}

// ParseBigInt parses a Python integer literal of any magnitude.
func ParseBigInt(s string) (*big.Int, *ParseError) {
	lit, perr := ParseIntDigits(s)
	if perr != nil {
		return nil, perr
	}
	v, ok := new(big.Int).SetString(lit, 10)
	if !ok {
		return nil, &ParseError{Kind: ParseBadChar}
	}
	return v, nil
}

// normaliseFloat validates a Python float literal and returns the form accepted by strconv.
func normaliseFloat(s string) (string, FloatClass, *ParseError) {
	s = trimSpace(s)
	if s == "" {
		return "", FloatFinite, &ParseError{Kind: ParseEmpty}
	}
	body := s
	neg := false
	if body[0] == '+' || body[0] == '-' {
		neg = body[0] == '-'
		body = body[1:]
	}
	switch strings.ToLower(body) {
	case "inf", "infinity":
		if neg {
			return s, FloatNegInf, nil
		}
		return s, FloatPosInf, nil
	case "nan":
		return s, FloatNaN, nil
	}
	if body == "" {
		return "", FloatFinite, &ParseError{Kind: ParseNoDigits}
	}
	dots, digits, seenExp := 0, 0, false
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case isDigit(c):
			digits++
		case c == '_':
		case c == '.':
			if seenExp {
				return "", FloatFinite, &ParseError{Kind: ParseBadChar}
			}
			dots++
			if dots > 1 {
				return "", FloatFinite, &ParseError{Kind: ParseMultipleDots}
			}
		case c == 'e' || c == 'E':
			if seenExp || digits == 0 {
				return "", FloatFinite, &ParseError{Kind: ParseBadChar}
			}
			seenExp = true
			if i+1 < len(body) && (body[i+1] == '+' || body[i+1] == '-') {
				i++
			}
			if i+1 >= len(body) {
				return "", FloatFinite, &ParseError{Kind: ParseBadChar}
			}
		case c == '+' || c == '-':
			return "", FloatFinite, &ParseError{Kind: ParseMultipleSigns}
		default:
			return "", FloatFinite, &ParseError{Kind: ParseBadChar}
		}
	}
	if digits == 0 {
		return "", FloatFinite, &ParseError{Kind: ParseNoDigits}
	}
	lit, perr := stripUnderscores(s)
	if perr != nil {
		return "", FloatFinite, perr
	}
	return lit, FloatFinite, nil
}

// ParseFloat parses a Python float literal for the requested bit size (32 or 64).
// Values beyond the range of the bit size round to infinity, as Python does.
func ParseFloat(s string, bitSize int) (float64, FloatClass, *ParseError) {
	lit, class, perr := normaliseFloat(s)
	if perr != nil {
		return 0, FloatFinite, perr
	}
	switch class {
	case FloatPosInf:
		return math.Inf(1), class, nil
	case FloatNegInf:
		return math.Inf(-1), class, nil
	case FloatNaN:
		return math.NaN(), class, nil
	}
	f, err := strconv.ParseFloat(lit, bitSize)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f, Classify(f), nil
		}
		return 0, FloatFinite, &ParseError{Kind: ParseBadChar}
	}
	return f, FloatFinite, nil
}

// ParseExt parses a Python float literal at extended precision.
// NaN is reported through the class with a nil value.
func ParseExt(s string) (*big.Float, FloatClass, *ParseError) {
	lit, class, perr := normaliseFloat(s)
	if perr != nil {
		return nil, FloatFinite, perr
	}
	switch class {
	case FloatPosInf:
		return NewExt().SetInf(false), class, nil
	case FloatNegInf:
		return NewExt().SetInf(true), class, nil
	case FloatNaN:
		return nil, class, nil
	}
	f, _, err := big.ParseFloat(lit, 10, ExtPrec, big.ToNearestEven)
	if err != nil {
		return nil, FloatFinite, &ParseError{Kind: ParseBadChar}
	}
	return f, FloatFinite, nil
}

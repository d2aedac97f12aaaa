package num

// ParseErrKind says why a number literal was rejected.
type ParseErrKind uint8

const (
	ParseInvalid ParseErrKind = iota
	ParseEmpty
	ParseBadChar
	ParseMultipleSigns
	ParseMultipleDots
	ParseNoDigits
	ParseBadUnderscore
	ParseRange
)

var parseErrLabels = [...]string{
	ParseInvalid:       "invalid",
	ParseEmpty:         "empty",
	ParseBadChar:       "bad character",
	ParseMultipleSigns: "multiple signs",
	ParseMultipleDots:  "multiple dots",
	ParseNoDigits:      "no digits",
	ParseBadUnderscore: "misplaced underscore",
	ParseRange:         "out of range",
}

func (k ParseErrKind) String() string {
	if int(k) < len(parseErrLabels) {
		return parseErrLabels[k]
	}
	return parseErrLabels[ParseInvalid]
}

// ParseError is returned by the literal parsers in this package.
type ParseError struct {
	Kind ParseErrKind
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return e.Kind.String()
}

// Overflows reports a well-formed literal whose value does not fit the
// requested width.
func (e *ParseError) Overflows() bool {
	return e != nil && e.Kind == ParseRange
}

// Package pylex splits Python expression text into tokens. It covers the
// literal and operator subset used by ParseLiteral and the calculator.
package pylex

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	EOF Kind = iota
	Int
	Float
	String
	Name
	Op
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case Int:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Name:
		return "name"
	case Op:
		return "operator"
	default:
		return "unknown"
	}
}

// Token is one lexical unit. Text is the decoded contents for strings and
// the source text otherwise. Pos is the byte offset in the input.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}

// Is reports whether t is the operator or name op.
func (t Token) Is(op string) bool {
	return (t.Kind == Op || t.Kind == Name) && t.Text == op
}

// ErrSyntax reports input that is not a valid token stream.
var ErrSyntax = errors.New("invalid syntax")

func syntaxErrorf(pos int, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: "+format, append([]any{ErrSyntax, pos}, args...)...)
}

// operators lists multi-character operators before their prefixes.
var operators = []string{
	"//=", "==", "!=", "<=", ">=", "//", "+=", "-=", "*=", "/=", "%=",
	"+", "-", "*", "/", "%", "&", "|", "^", "~", "<", ">", "=",
	"(", ")", "[", "]", "{", "}", ",", ":", ".", ";",
}

// Tokenize returns the tokens of src, ending with an EOF token.
func Tokenize(src string) ([]Token, error) {
	r := &reader{input: src}
	var out []Token
	for {
		t, err := r.next()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if t.Kind == EOF {
			return out, nil
		}
	}
}

type reader struct {
	input string
	pos   int
}

func (r *reader) skipSpace() {
	for r.pos < len(r.input) {
		switch r.input[r.pos] {
		case ' ', '\t', '\n', '\r':
			r.pos++
		case '#':
			for r.pos < len(r.input) && r.input[r.pos] != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

func (r *reader) next() (Token, error) {
	r.skipSpace()
	start := r.pos
	if r.pos >= len(r.input) {
		return Token{Kind: EOF, Pos: start}, nil
	}
	c := r.input[r.pos]
	switch {
	case isDigit(c) || (c == '.' && r.pos+1 < len(r.input) && isDigit(r.input[r.pos+1])):
		return r.number()
	case c == '\'' || c == '"':
		s, err := r.quoted(c)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: String, Text: s, Pos: start}, nil
	}
	if ch, size := utf8.DecodeRuneInString(r.input[r.pos:]); ch == '_' || unicode.IsLetter(ch) {
		r.pos += size
		for r.pos < len(r.input) {
			ch, size = utf8.DecodeRuneInString(r.input[r.pos:])
			if ch != '_' && !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
				break
			}
			r.pos += size
		}
		return Token{Kind: Name, Text: r.input[start:r.pos], Pos: start}, nil
	}
	for _, op := range operators {
		if strings.HasPrefix(r.input[r.pos:], op) {
			r.pos += len(op)
			return Token{Kind: Op, Text: op, Pos: start}, nil
		}
	}
	ch, _ := utf8.DecodeRuneInString(r.input[r.pos:])
	return Token{}, syntaxErrorf(start, "unexpected character %q", ch)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (r *reader) digits() {
	for r.pos < len(r.input) && (isDigit(r.input[r.pos]) || r.input[r.pos] == '_') {
		r.pos++
	}
}

func (r *reader) number() (Token, error) {
	start := r.pos
	kind := Int
	r.digits()
	if r.pos < len(r.input) && r.input[r.pos] == '.' {
		kind = Float
		r.pos++
		r.digits()
	}
	if r.pos < len(r.input) && (r.input[r.pos] == 'e' || r.input[r.pos] == 'E') {
		kind = Float
		r.pos++
		if r.pos < len(r.input) && (r.input[r.pos] == '+' || r.input[r.pos] == '-') {
			r.pos++
		}
		if r.pos >= len(r.input) || !isDigit(r.input[r.pos]) {
			return Token{}, syntaxErrorf(start, "malformed exponent in %q", r.input[start:r.pos])
		}
		r.digits()
	}
	if r.pos < len(r.input) {
		if ch, _ := utf8.DecodeRuneInString(r.input[r.pos:]); ch == '_' || unicode.IsLetter(ch) {
			return Token{}, syntaxErrorf(start, "invalid number literal")
		}
	}
	return Token{Kind: kind, Text: r.input[start:r.pos], Pos: start}, nil
}

// quoted decodes a string literal delimited by q with Python escapes.
func (r *reader) quoted(q byte) (string, error) {
	start := r.pos
	r.pos++
	var b strings.Builder
	for r.pos < len(r.input) {
		c := r.input[r.pos]
		switch {
		case c == q:
			r.pos++
			return b.String(), nil
		case c == '\n':
			return "", syntaxErrorf(start, "unterminated string literal")
		case c != '\\':
			b.WriteByte(c)
			r.pos++
			continue
		}
		r.pos++
		if r.pos >= len(r.input) {
			break
		}
		e := r.input[r.pos]
		r.pos++
		switch e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'x', 'u', 'U':
			n := map[byte]int{'x': 2, 'u': 4, 'U': 8}[e]
			if r.pos+n > len(r.input) {
				return "", syntaxErrorf(r.pos-2, "truncated \\%c escape", e)
			}
			v, err := strconv.ParseUint(r.input[r.pos:r.pos+n], 16, 32)
			if err != nil || v > unicode.MaxRune {
				return "", syntaxErrorf(r.pos-2, "invalid \\%c escape", e)
			}
			b.WriteRune(rune(v))
			r.pos += n
		default:
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return "", syntaxErrorf(start, "unterminated string literal")
}

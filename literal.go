package pythonic

import (
	"fmt"
	"math/big"
	"strings"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/num"
	"github.com/jacoelho/pythonic/internal/pylex"
)

// ParseNumber converts a Python number literal. Integers take the narrowest
// signed tag that holds them; literals with a fraction or exponent are doubles.
func ParseNumber(text string) (Value, error) {
	if v, perr := parseInteger(text); perr == nil {
		return v, nil
	}
	f, _, perr := num.ParseFloat(text, 64)
	if perr != nil {
		return Value{}, parseError("literal", text, perr)
	}
	return F64(f), nil
}

// parseInteger reads a base-10 integer literal. Literals past int64 fall
// back to arbitrary precision.
func parseInteger(text string) (Value, *num.ParseError) {
	n, perr := num.ParseInt64(text)
	if perr == nil {
		return Int(n), nil
	}
	if !perr.Overflows() {
		return Value{}, perr
	}
	r, perr := num.ParseBigInt(text)
	if perr != nil {
		return Value{}, perr
	}
	return fitInt(r, TagI32), nil
}

// ParseLiteral parses a Python literal: None, booleans, numbers, strings and
// list, dict and set displays built from them. Adjacent strings concatenate.
// set() is the empty set and {} the empty dict.
func ParseLiteral(src string) (Value, error) {
	toks, err := pylex.Tokenize(src)
	if err != nil {
		return Value{}, pyerrors.New(pyerrors.ValueParse, "literal", err.Error())
	}
	p := &literalParser{toks: toks}
	v, err := p.value()
	if err != nil {
		return Value{}, err
	}
	if t := p.peek(); t.Kind != pylex.EOF {
		return Value{}, p.errorf(t, "unexpected %s %q", t.Kind, t.Text)
	}
	return v, nil
}

type literalParser struct {
	toks []pylex.Token
	pos  int
}

func (p *literalParser) peek() pylex.Token { return p.toks[p.pos] }

func (p *literalParser) advance() pylex.Token {
	t := p.toks[p.pos]
	if t.Kind != pylex.EOF {
		p.pos++
	}
	return t
}

func (p *literalParser) accept(op string) bool {
	if p.peek().Is(op) {
		p.pos++
		return true
	}
	return false
}

func (p *literalParser) expect(op string) error {
	if !p.accept(op) {
		t := p.peek()
		return p.errorf(t, "expected %q", op)
	}
	return nil
}

func (p *literalParser) errorf(t pylex.Token, format string, args ...any) error {
	return pyerrors.New(pyerrors.ValueParse, "literal",
		fmt.Sprintf("offset %d: ", t.Pos)+fmt.Sprintf(format, args...))
}

func (p *literalParser) value() (Value, error) {
	t := p.advance()
	switch t.Kind {
	case pylex.Int, pylex.Float:
		return ParseNumber(t.Text)
	case pylex.String:
		var b strings.Builder
		b.WriteString(t.Text)
		for p.peek().Kind == pylex.String {
			b.WriteString(p.advance().Text)
		}
		return Str(b.String()), nil
	case pylex.Name:
		switch t.Text {
		case "None":
			return None(), nil
		case "True":
			return True, nil
		case "False":
			return False, nil
		case "inf", "nan":
			return ParseNumber(t.Text)
		case "set":
			if err := p.expect("("); err != nil {
				return Value{}, err
			}
			if err := p.expect(")"); err != nil {
				return Value{}, err
			}
			return NewSet()
		}
	case pylex.Op:
		switch t.Text {
		case "-", "+":
			n := p.peek()
			if n.Kind != pylex.Int && n.Kind != pylex.Float && !n.Is("inf") {
				return Value{}, p.errorf(n, "expected a number after %q", t.Text)
			}
			p.advance()
			return ParseNumber(t.Text + n.Text)
		case "[":
			items, err := p.items("]")
			if err != nil {
				return Value{}, err
			}
			return listOf(items), nil
		case "{":
			return p.brace()
		}
	}
	return Value{}, p.errorf(t, "unexpected %s %q", t.Kind, t.Text)
}

// items parses comma separated values up to the closing delimiter.
func (p *literalParser) items(closing string) ([]Value, error) {
	var out []Value
	for !p.accept(closing) {
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if !p.accept(",") {
			if err := p.expect(closing); err != nil {
				return nil, err
			}
			break
		}
	}
	return out, nil
}

// brace parses a dict or set display after its opening brace.
func (p *literalParser) brace() (Value, error) {
	if p.accept("}") {
		return NewDict(), nil
	}
	first, err := p.value()
	if err != nil {
		return Value{}, err
	}
	if !p.accept(":") {
		rest := []Value{first}
		if p.accept(",") {
			more, err := p.items("}")
			if err != nil {
				return Value{}, err
			}
			rest = append(rest, more...)
		} else if err := p.expect("}"); err != nil {
			return Value{}, err
		}
		return NewSet(rest...)
	}
	d := NewDict()
	key := first
	for {
		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		if err := d.SetItem(key, v); err != nil {
			return Value{}, err
		}
		if !p.accept(",") || p.peek().Is("}") {
			break
		}
		if key, err = p.value(); err != nil {
			return Value{}, err
		}
		if err := p.expect(":"); err != nil {
			return Value{}, err
		}
	}
	if err := p.expect("}"); err != nil {
		return Value{}, err
	}
	return d, nil
}

// Of converts a Go value to a Value. Slices become lists, maps with string
// keys become dicts, and a Value is cloned. Unsupported types fail with
// TypeMismatch.
func Of(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return None(), nil
	case Value:
		return x.Clone(), nil
	case bool:
		return Bool(x), nil
	case int8:
		return I32(int32(x)), nil
	case int16:
		return I32(int32(x)), nil
	case int32:
		return I32(x), nil
	case int64:
		return I64(x), nil
	case int:
		return ISize(x), nil
	case uint8:
		return U32(uint32(x)), nil
	case uint16:
		return U32(uint32(x)), nil
	case uint32:
		return U32(x), nil
	case uint64:
		return U64(x), nil
	case uint:
		return USize(x), nil
	case uintptr:
		return USize(uint(x)), nil
	case float32:
		return F32(x), nil
	case float64:
		return F64(x), nil
	case *big.Float:
		return F80(x), nil
	case string:
		return Str(x), nil
	case []Value:
		return NewList(x...), nil
	case []any:
		items := make([]Value, len(x))
		for i, e := range x {
			v, err := Of(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return listOf(items), nil
	case map[string]Value:
		return DictFrom(x), nil
	case map[string]any:
		d := &Dict{items: make(map[string]Value, len(x))}
		for k, e := range x {
			v, err := Of(e)
			if err != nil {
				return Value{}, err
			}
			d.items[k] = v
		}
		return Value{tag: TagDict, ref: d}, nil
	default:
		return Value{}, pyerrors.Newf(pyerrors.TypeMismatch, "of", "unsupported Go type %T", x)
	}
}

package pythonic

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/num"
)

// MarshalJSON encodes v as JSON. Sets become arrays and both dict kinds
// become objects in their iteration order. NaN, infinities and graphs have no
// JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	if err := writeJSON(&b, v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalJSON replaces v with the value decoded by FromJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	r, err := FromJSON(data)
	if err != nil {
		return err
	}
	*v = r
	return nil
}

func writeJSON(b *bytes.Buffer, v Value) error {
	const op = "json"
	switch {
	case v.tag == TagNone:
		b.WriteString("null")
	case v.tag == TagBool:
		b.WriteString(strconv.FormatBool(v.UncheckedBool()))
	case v.tag.IsUnsigned():
		b.WriteString(strconv.FormatUint(v.bits, 10))
	case v.tag.IsSigned():
		b.WriteString(strconv.FormatInt(int64(v.bits), 10))
	case v.tag.IsFloat():
		f := float64Of(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return pyerrors.Newf(pyerrors.InvalidArgument, op, "%s has no JSON form", v.Repr())
		}
		b.WriteString(v.Repr())
	case v.tag == TagStr:
		s, err := json.Marshal(v.UncheckedStr())
		if err != nil {
			return err
		}
		b.Write(s)
	case v.tag == TagList || isSetLike(v):
		b.WriteByte('[')
		first := true
		for e := range v.All() {
			if !first {
				b.WriteByte(',')
			}
			first = false
			if err := writeJSON(b, e); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case v.tag == TagDict || v.tag == TagOrderedDict:
		entries, _ := dictAll(v)
		b.WriteByte('{')
		first := true
		for k, e := range entries {
			if !first {
				b.WriteByte(',')
			}
			first = false
			key, err := json.Marshal(k)
			if err != nil {
				return err
			}
			b.Write(key)
			b.WriteByte(':')
			if err := writeJSON(b, e); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return pyerrors.Newf(pyerrors.TypeMismatch, op, "object of type '%s' is not JSON serializable", v.TypeName())
	}
	return nil
}

// FromJSON decodes one JSON document. Objects become ordered dicts in
// document order, integers take the narrowest signed tag that holds them and
// other numbers become doubles. Malformed input fails with ValueParse.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, pyerrors.New(pyerrors.ValueParse, "json", "trailing data after JSON value")
	}
	return v, nil
}

func jsonSyntax(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return pyerrors.New(pyerrors.ValueParse, "json", err.Error())
}

func decodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, jsonSyntax(err)
	}
	switch t := tok.(type) {
	case nil:
		return None(), nil
	case bool:
		return Bool(t), nil
	case string:
		return Str(t), nil
	case json.Number:
		return jsonNumber(t.String())
	case json.Delim:
		switch t {
		case '[':
			var items []Value
			for dec.More() {
				e, err := decodeJSON(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, e)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, jsonSyntax(err)
			}
			return listOf(items), nil
		case '{':
			d := newOrderedDict(0)
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Value{}, jsonSyntax(err)
				}
				k, _ := kt.(string)
				e, err := decodeJSON(dec)
				if err != nil {
					return Value{}, err
				}
				d.items.Set(k, e)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, jsonSyntax(err)
			}
			return Value{tag: TagOrderedDict, ref: d}, nil
		}
	}
	return Value{}, pyerrors.Newf(pyerrors.ValueParse, "json", "unexpected token %v", tok)
}

func jsonNumber(s string) (Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		v, perr := parseInteger(s)
		if perr != nil {
			return Value{}, parseError("json", s, perr)
		}
		return v, nil
	}
	f, _, perr := num.ParseFloat(s, 64)
	if perr != nil {
		return Value{}, parseError("json", s, perr)
	}
	return F64(f), nil
}

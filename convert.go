package pythonic

import (
	"math"
	"math/big"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/num"
	"github.com/jacoelho/pythonic/internal/promote"
)

// ToInt converts v to I32. Strings are parsed as Python integer literals and
// floats truncate toward zero.
func ToInt(v Value) (Value, error) { return toInteger("int", v, TagI32) }

// ToUint converts v to U32.
func ToUint(v Value) (Value, error) { return toInteger("unsigned int", v, TagU32) }

// ToLong converts v to I64.
func ToLong(v Value) (Value, error) { return toInteger("long", v, TagI64) }

// ToLongLong converts v to ISize.
func ToLongLong(v Value) (Value, error) { return toInteger("long long", v, TagISize) }

// ToFloat converts v to F32. Strings are parsed as Python float literals,
// including inf and nan.
func ToFloat(v Value) (Value, error) { return toFloating("float", v, TagF32) }

// ToDouble converts v to F64.
func ToDouble(v Value) (Value, error) { return toFloating("double", v, TagF64) }

// ToLongDouble converts v to F80. NaN stays an F64.
func ToLongDouble(v Value) (Value, error) { return toFloating("long double", v, TagF80) }

// ToString returns the str of v.
func ToString(v Value) Value { return Str(v.String()) }

// ToBool returns the truthiness of v.
func ToBool(v Value) Value { return Bool(v.Truthy()) }

func parseError(op, s string, perr *num.ParseError) error {
	if perr.Overflows() {
		return pyerrors.Newf(pyerrors.Overflow, op, "literal %q is out of range", s)
	}
	return pyerrors.Newf(pyerrors.ValueParse, op, "invalid literal %q: %s", s, perr.Error())
}

func toInteger(op string, v Value, t Tag) (Value, error) {
	var r *big.Int
	switch {
	case v.tag.IsIntegral():
		r = bigInt(v)
	case v.tag.IsFloat():
		if isNaN(v) {
			return Value{}, pyerrors.New(pyerrors.ValueParse, op, "cannot convert float NaN to integer")
		}
		x := workOf(v)
		if x.IsInf() {
			return Value{}, pyerrors.New(pyerrors.Overflow, op, "cannot convert float infinity to integer")
		}
		r, _ = x.Int(nil)
	case v.tag == TagStr:
		parsed, perr := num.ParseBigInt(v.UncheckedStr())
		if perr != nil {
			return Value{}, parseError(op, v.UncheckedStr(), perr)
		}
		r = parsed
	default:
		return Value{}, pyerrors.Newf(pyerrors.TypeMismatch, op, "cannot convert %s to %s", v.TypeName(), t.Name())
	}
	if promote.FitInt(r, t) != t {
		return Value{}, pyerrors.Newf(pyerrors.Overflow, op, "%s does not fit in %s", r.String(), t.Name())
	}
	return intValue(t, r), nil
}

func toFloating(op string, v Value, t Tag) (Value, error) {
	switch {
	case v.tag == TagStr:
		s := v.UncheckedStr()
		if t == TagF80 {
			x, class, perr := num.ParseExt(s)
			if perr != nil {
				return Value{}, parseError(op, s, perr)
			}
			if class == num.FloatNaN {
				return F64(math.NaN()), nil
			}
			return ext(x), nil
		}
		f, _, perr := num.ParseFloat(s, t.Bits())
		if perr != nil {
			return Value{}, parseError(op, s, perr)
		}
		return floatOfTag(t, f), nil
	case v.tag.IsNumeric():
		if isNaN(v) {
			return floatOfTag(t, math.NaN()), nil
		}
		if t == TagF80 {
			return ext(num.Round(workOf(v))), nil
		}
		if v.tag == TagF80 || v.tag.IsIntegral() {
			return bigValue(t, workOf(v)), nil
		}
		return floatOfTag(t, v.UncheckedFloat64()), nil
	default:
		return Value{}, pyerrors.Newf(pyerrors.TypeMismatch, op, "cannot convert %s to %s", v.TypeName(), t.Name())
	}
}

// floatOfTag rounds f to an F32 or F64; NaN under F80 stays an F64.
func floatOfTag(t Tag, f float64) Value {
	switch t {
	case TagF32:
		return F32(float32(f))
	case TagF80:
		return F80FromFloat64(f)
	default:
		return F64(f)
	}
}

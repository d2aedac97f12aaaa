package pythonic

import (
	"math"
	"math/big"

	"github.com/jacoelho/pythonic/internal/num"
	"github.com/jacoelho/pythonic/internal/promote"
)

// isNaN reports whether a numeric value is a float NaN. F80 never holds NaN.
func isNaN(v Value) bool {
	return (v.tag == TagF32 || v.tag == TagF64) && math.IsNaN(v.UncheckedFloat64())
}

// bigInt returns the exact integer held by a Bool or integer value.
func bigInt(v Value) *big.Int {
	if v.tag.IsUnsigned() {
		return new(big.Int).SetUint64(v.bits)
	}
	return big.NewInt(int64(v.bits))
}

// float64Of converts any numeric value to the nearest float64.
func float64Of(v Value) float64 {
	switch {
	case v.tag == TagF32 || v.tag == TagF64:
		return v.UncheckedFloat64()
	case v.tag == TagF80:
		return num.BigFloat64(v.UncheckedBigFloat())
	case v.tag.IsUnsigned():
		return float64(v.bits)
	default:
		return float64(int64(v.bits))
	}
}

// workOf converts a non-NaN numeric value to a working-precision float.
func workOf(v Value) *big.Float {
	switch {
	case v.tag == TagF32 || v.tag == TagF64:
		return num.WorkFromFloat64(v.UncheckedFloat64())
	case v.tag == TagF80:
		return num.WorkFrom(v.UncheckedBigFloat())
	case v.tag.IsUnsigned():
		return num.WorkFromUint64(v.bits)
	default:
		return num.WorkFromInt64(int64(v.bits))
	}
}

// intValue encodes r under an integral tag it is known to fit.
func intValue(t Tag, r *big.Int) Value {
	switch {
	case t == TagBool:
		return Bool(r.Sign() != 0)
	case t.IsUnsigned():
		return Value{tag: t, bits: r.Uint64()}
	default:
		return Value{tag: t, bits: uint64(r.Int64())}
	}
}

// bigValue encodes x under a float tag it is known to fit.
func bigValue(t Tag, x *big.Float) Value {
	switch t {
	case TagF32:
		f, _ := x.Float32()
		return F32(f)
	case TagF64:
		return F64(num.BigFloat64(x))
	default:
		return ext(num.Round(x))
	}
}

// fitInt re-encodes an exact integer result in the narrowest tag at or above min.
func fitInt(r *big.Int, min Tag) Value {
	t := promote.FitInt(r, min)
	if t.IsIntegral() {
		return intValue(t, r)
	}
	return bigValue(t, num.NewWork().SetInt(r))
}

// fitFloat re-encodes a float64 result computed for result tag min, rounding
// to float32 when min is F32 and the result stays in range.
func fitFloat(f float64, min Tag) Value {
	if promote.FitFloat64(f, min) == TagF32 {
		return F32(float32(f))
	}
	return F64(f)
}

// bigIntOf truncates a finite float value to an integer.
func bigIntOf(v Value) (*big.Int, bool) {
	if v.tag.IsIntegral() {
		return bigInt(v), true
	}
	if isNaN(v) {
		return nil, false
	}
	x := workOf(v)
	if x.IsInf() {
		return nil, false
	}
	r, _ := x.Int(nil)
	return r, true
}

package num

import (
	"math"
	"math/big"
)

// ExtPrec is the mantissa precision of the extended float tag, matching x87 80-bit floats.
const ExtPrec = 64

// WorkPrec is the precision used for intermediate promoted results before re-encoding.
const WorkPrec = 256

// NewExt returns a zero extended float.
func NewExt() *big.Float {
	return new(big.Float).SetPrec(ExtPrec).SetMode(big.ToNearestEven)
}

// NewWork returns a zero float with working precision.
func NewWork() *big.Float {
	return new(big.Float).SetPrec(WorkPrec).SetMode(big.ToNearestEven)
}

// ExtFromFloat64 converts f to an extended float. f must not be NaN.
func ExtFromFloat64(f float64) *big.Float {
	return NewExt().SetFloat64(f)
}

// ExtFromInt64 converts v to an extended float exactly.
func ExtFromInt64(v int64) *big.Float {
	return NewExt().SetInt64(v)
}

// ExtFromUint64 converts v to an extended float exactly.
func ExtFromUint64(v uint64) *big.Float {
	return NewExt().SetUint64(v)
}

// Round returns x rounded to extended precision. x is not modified.
func Round(x *big.Float) *big.Float {
	return NewExt().Set(x)
}

// WorkFromFloat64 converts f to a working-precision float. f must not be NaN.
func WorkFromFloat64(f float64) *big.Float {
	return NewWork().SetFloat64(f)
}

// WorkFromInt64 converts v to a working-precision float.
func WorkFromInt64(v int64) *big.Float {
	return NewWork().SetInt64(v)
}

// WorkFromUint64 converts v to a working-precision float.
func WorkFromUint64(v uint64) *big.Float {
	return NewWork().SetUint64(v)
}

// WorkFrom widens x to working precision.
func WorkFrom(x *big.Float) *big.Float {
	return NewWork().Set(x)
}

// BigAdd returns a+b at working precision. The boolean is false when the result is NaN.
func BigAdd(a, b *big.Float) (*big.Float, bool) {
	if a.IsInf() && b.IsInf() && a.Signbit() != b.Signbit() {
		return nil, false
	}
	return NewWork().Add(a, b), true
}

// BigSub returns a-b at working precision. The boolean is false when the result is NaN.
func BigSub(a, b *big.Float) (*big.Float, bool) {
	if a.IsInf() && b.IsInf() && a.Signbit() == b.Signbit() {
		return nil, false
	}
	return NewWork().Sub(a, b), true
}

// BigMul returns a*b at working precision. The boolean is false when the result is NaN.
func BigMul(a, b *big.Float) (*big.Float, bool) {
	if (a.IsInf() && b.Sign() == 0) || (b.IsInf() && a.Sign() == 0) {
		return nil, false
	}
	return NewWork().Mul(a, b), true
}

// BigQuo returns a/b at working precision. b must be non-zero.
// The boolean is false when the result is NaN.
func BigQuo(a, b *big.Float) (*big.Float, bool) {
	if a.IsInf() && b.IsInf() {
		return nil, false
	}
	return NewWork().Quo(a, b), true
}

// BigFloorDiv returns floor(a/b). b must be non-zero and both operands finite.
func BigFloorDiv(a, b *big.Float) *big.Float {
	q := NewWork().Quo(a, b)
	return BigFloor(q)
}

// BigFloorMod returns a - b*floor(a/b), carrying the sign of b. b must be non-zero.
func BigFloorMod(a, b *big.Float) *big.Float {
	q := BigFloorDiv(a, b)
	p := NewWork().Mul(q, b)
	return NewWork().Sub(a, p)
}

// BigFloor returns the largest integer not greater than x. x must be finite.
func BigFloor(x *big.Float) *big.Float {
	if x.IsInt() {
		return NewWork().Set(x)
	}
	i, _ := x.Int(nil)
	f := NewWork().SetInt(i)
	if x.Sign() < 0 {
		f.Sub(f, NewWork().SetInt64(1))
	}
	return f
}

// BigFloat64 converts x to the nearest float64, saturating to infinity.
func BigFloat64(x *big.Float) float64 {
	f, _ := x.Float64()
	return f
}

// ExactFloat64 reports x as a float64 when the conversion is exact.
func ExactFloat64(x *big.Float) (float64, bool) {
	f, acc := x.Float64()
	if acc != big.Exact {
		return f, false
	}
	if math.IsInf(f, 0) && !x.IsInf() {
		return f, false
	}
	return f, true
}

// ExactFloat32 reports x as a float32 when the conversion is exact.
func ExactFloat32(x *big.Float) (float32, bool) {
	f, acc := x.Float32()
	if acc != big.Exact {
		return f, false
	}
	if math.IsInf(float64(f), 0) && !x.IsInf() {
		return f, false
	}
	return f, true
}

// ExactExt reports whether x is representable at extended precision without rounding.
func ExactExt(x *big.Float) bool {
	if x.IsInf() || x.Sign() == 0 {
		return true
	}
	return x.MinPrec() <= ExtPrec
}

// ExactInt64 reports x as an int64 when x is an integer in range.
func ExactInt64(x *big.Float) (int64, bool) {
	if x.IsInf() || !x.IsInt() {
		return 0, false
	}
	v, acc := x.Int64()
	return v, acc == big.Exact
}

// ExactUint64 reports x as a uint64 when x is a non-negative integer in range.
func ExactUint64(x *big.Float) (uint64, bool) {
	if x.IsInf() || !x.IsInt() || x.Sign() < 0 {
		return 0, false
	}
	v, acc := x.Uint64()
	return v, acc == big.Exact
}

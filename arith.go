package pythonic

import (
	"math"
	"math/big"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/num"
	"github.com/jacoelho/pythonic/internal/promote"
)

// Policy selects how an integer result that does not fit its tag is handled.
type Policy uint8

const (
	// Throw fails with Overflow when the result does not fit the promoted tag.
	Throw Policy = iota
	// Promote re-encodes the exact result further up the promotion ladder.
	Promote
	// Wrap truncates the result to the promoted width in two's complement.
	Wrap
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Throw:
		return "throw"
	case Promote:
		return "promote"
	case Wrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// Add returns a + b.
func Add(a, b Value) (Value, error) { return binary(promote.Add, a, b) }

// Sub returns a - b.
func Sub(a, b Value) (Value, error) { return binary(promote.Sub, a, b) }

// Mul returns a * b.
func Mul(a, b Value) (Value, error) { return binary(promote.Mul, a, b) }

// Div returns a / b. Two integers divide with floor semantics and give an
// integer; any float operand gives a float.
func Div(a, b Value) (Value, error) { return binary(promote.Div, a, b) }

// FloorDiv returns a // b.
func FloorDiv(a, b Value) (Value, error) { return binary(promote.FloorDiv, a, b) }

// TrueDiv returns a / b as a float.
func TrueDiv(a, b Value) (Value, error) { return binary(promote.TrueDiv, a, b) }

// Mod returns a % b with the sign of b.
func Mod(a, b Value) (Value, error) { return binary(promote.Mod, a, b) }

// BitAnd returns a & b, or the intersection of two sets.
func BitAnd(a, b Value) (Value, error) { return binary(promote.And, a, b) }

// BitOr returns a | b, the union of two sets, or the merge of two dicts.
func BitOr(a, b Value) (Value, error) { return binary(promote.Or, a, b) }

// BitXor returns a ^ b, or the symmetric difference of two sets.
func BitXor(a, b Value) (Value, error) { return binary(promote.Xor, a, b) }

// AddWith returns a + b resolving integer overflow with p.
func AddWith(a, b Value, p Policy) (Value, error) { return generic(promote.Add, a, b, p) }

// SubWith returns a - b resolving integer overflow with p.
func SubWith(a, b Value, p Policy) (Value, error) { return generic(promote.Sub, a, b, p) }

// MulWith returns a * b resolving integer overflow with p.
func MulWith(a, b Value, p Policy) (Value, error) { return generic(promote.Mul, a, b, p) }

// AddAssign replaces v with v + b.
func (v *Value) AddAssign(b Value) error { return v.assign(promote.Add, b) }

// SubAssign replaces v with v - b.
func (v *Value) SubAssign(b Value) error { return v.assign(promote.Sub, b) }

// MulAssign replaces v with v * b.
func (v *Value) MulAssign(b Value) error { return v.assign(promote.Mul, b) }

// DivAssign replaces v with v / b.
func (v *Value) DivAssign(b Value) error { return v.assign(promote.Div, b) }

// ModAssign replaces v with v % b.
func (v *Value) ModAssign(b Value) error { return v.assign(promote.Mod, b) }

// assign runs op and stores the result in v; v is unchanged on error.
// In-place operators share the kernels and checks of their binary forms.
func (v *Value) assign(op promote.Op, b Value) error {
	r, err := binary(op, *v, b)
	if err != nil {
		return err
	}
	*v = r
	return nil
}

// binary dispatches through the kernel matrix and falls back to promotion.
func binary(op promote.Op, a, b Value) (Value, error) {
	if k := lookup(op, a.tag, b.tag); k != nil {
		return k(a, b)
	}
	return generic(op, a, b, Promote)
}

// generic is the promotion path: compute exactly, then smart-fit.
func generic(op promote.Op, a, b Value, p Policy) (Value, error) {
	if !a.tag.IsNumeric() || !b.tag.IsNumeric() {
		return sequenceOp(op, a, b)
	}
	rt, ok := promote.Result(op, a.tag, b.tag)
	if !ok {
		return Value{}, unsupported(op, a, b)
	}
	if rt.IsFloat() {
		return floatOp(op, rt, a, b)
	}
	return intOp(op, rt, a, b, p)
}

func unsupported(op promote.Op, a, b Value) error {
	return pyerrors.Newf(pyerrors.TypeMismatch, op.String(),
		"unsupported operand types: %s and %s", a.TypeName(), b.TypeName())
}

func zeroDivision(op promote.Op) error {
	return pyerrors.New(pyerrors.ZeroDivision, op.String(), "division by zero")
}

func overflow(op promote.Op, t Tag) error {
	return pyerrors.Newf(pyerrors.Overflow, op.String(), "result does not fit in %s", t.Name())
}

// intOp computes op over two integral operands exactly and encodes the result
// under rt according to p.
func intOp(op promote.Op, rt Tag, a, b Value, p Policy) (Value, error) {
	x, y := bigInt(a), bigInt(b)
	r := new(big.Int)
	switch op {
	case promote.Add:
		r.Add(x, y)
	case promote.Sub:
		r.Sub(x, y)
	case promote.Mul:
		r.Mul(x, y)
	case promote.Div, promote.FloorDiv:
		if y.Sign() == 0 {
			return Value{}, zeroDivision(op)
		}
		m := new(big.Int)
		r.QuoRem(x, y, m)
		if m.Sign() != 0 && (m.Sign() < 0) != (y.Sign() < 0) {
			r.Sub(r, big.NewInt(1))
		}
	case promote.Mod:
		if y.Sign() == 0 {
			return Value{}, zeroDivision(op)
		}
		floorMod(r, x, y)
	case promote.And:
		r.And(x, y)
	case promote.Or:
		r.Or(x, y)
	case promote.Xor:
		r.Xor(x, y)
	}
	return encodeInt(op, r, rt, p)
}

// floorMod sets r to x mod y with the sign of y.
func floorMod(r, x, y *big.Int) {
	r.Rem(x, y)
	if r.Sign() != 0 && (r.Sign() < 0) != (y.Sign() < 0) {
		r.Add(r, y)
	}
}

func encodeInt(op promote.Op, r *big.Int, rt Tag, p Policy) (Value, error) {
	if rt == TagBool {
		return Bool(r.Sign() != 0), nil
	}
	if rt.IsUnsigned() && r.Sign() < 0 && p != Wrap {
		return fitInt(r, rt), nil
	}
	switch p {
	case Promote:
		return fitInt(r, rt), nil
	case Wrap:
		return wrapInt(r, rt), nil
	default:
		if promote.FitInt(r, rt) != rt {
			return Value{}, overflow(op, rt)
		}
		return intValue(rt, r), nil
	}
}

// wrapInt truncates r to the width of t in two's complement.
func wrapInt(r *big.Int, t Tag) Value {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(t.Bits()))
	m := new(big.Int).Mod(r, mod)
	u := m.Uint64()
	if t.IsUnsigned() {
		return Value{tag: t, bits: u}
	}
	return Value{tag: t, bits: uint64(num.WrapInt(int64(u), t.Bits()))}
}

// floatOp computes op for a floating result tag rt.
func floatOp(op promote.Op, rt Tag, a, b Value) (Value, error) {
	if a.tag == TagF80 || b.tag == TagF80 {
		return bigFloatOp(op, a, b)
	}
	if op == promote.TrueDiv && a.tag.IsIntegral() && b.tag.IsIntegral() {
		return intTrueDiv(a, b)
	}
	x, y := float64Of(a), float64Of(b)
	var r float64
	switch op {
	case promote.Add:
		r = x + y
	case promote.Sub:
		r = x - y
	case promote.Mul:
		r = x * y
	case promote.Div, promote.TrueDiv:
		if y == 0 {
			return Value{}, zeroDivision(op)
		}
		r = x / y
	case promote.FloorDiv:
		if y == 0 {
			return Value{}, zeroDivision(op)
		}
		r = num.FloorDivFloat(x, y)
	case promote.Mod:
		if y == 0 {
			return Value{}, zeroDivision(op)
		}
		r = num.FloorModFloat(x, y)
	}
	if math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return bigFloatOp(op, a, b)
	}
	return fitFloat(r, rt), nil
}

// intTrueDiv divides two integers exactly and rounds once to float64.
func intTrueDiv(a, b Value) (Value, error) {
	y := bigInt(b)
	if y.Sign() == 0 {
		return Value{}, zeroDivision(promote.TrueDiv)
	}
	q := num.NewWork().Quo(num.NewWork().SetInt(bigInt(a)), num.NewWork().SetInt(y))
	return F64(num.BigFloat64(q)), nil
}

// bigFloatOp computes op at working precision and returns an F80, or an F64
// NaN when the result is undefined.
func bigFloatOp(op promote.Op, a, b Value) (Value, error) {
	if isNaN(a) || isNaN(b) {
		if op.IsDivision() && float64Of(b) == 0 {
			return Value{}, zeroDivision(op)
		}
		return F64(math.NaN()), nil
	}
	x, y := workOf(a), workOf(b)
	if op.IsDivision() && y.Sign() == 0 {
		return Value{}, zeroDivision(op)
	}
	var (
		r  *big.Float
		ok = true
	)
	switch op {
	case promote.Add:
		r, ok = num.BigAdd(x, y)
	case promote.Sub:
		r, ok = num.BigSub(x, y)
	case promote.Mul:
		r, ok = num.BigMul(x, y)
	case promote.Div, promote.TrueDiv:
		r, ok = num.BigQuo(x, y)
	case promote.FloorDiv, promote.Mod:
		if x.IsInf() || y.IsInf() {
			return infFloorOp(op, a, b), nil
		}
		if op == promote.FloorDiv {
			r = num.BigFloorDiv(x, y)
		} else {
			r = num.BigFloorMod(x, y)
		}
	}
	if !ok {
		return F64(math.NaN()), nil
	}
	return ext(num.Round(r)), nil
}

// infFloorOp handles floor division and modulo with an infinite operand by
// following float64 semantics and widening the result.
func infFloorOp(op promote.Op, a, b Value) Value {
	x, y := float64Of(a), float64Of(b)
	var r float64
	if op == promote.FloorDiv {
		r = num.FloorDivFloat(x, y)
	} else {
		r = num.FloorModFloat(x, y)
	}
	return F80FromFloat64(r)
}

// Neg returns -v. The result tag is the signed counterpart of v's tag.
func Neg(v Value) (Value, error) {
	const op = "neg"
	switch {
	case v.tag == TagBool:
		return I32(-int32(v.bits)), nil
	case v.tag.IsSigned():
		r, ok := num.NegInt(int64(v.bits), v.tag.Bits())
		if !ok {
			return Value{}, pyerrors.Newf(pyerrors.Overflow, op, "result does not fit in %s", v.tag.Name())
		}
		return Value{tag: v.tag, bits: uint64(r)}, nil
	case v.tag.IsUnsigned():
		return fitInt(new(big.Int).Neg(bigInt(v)), v.tag.Signed()), nil
	case v.tag == TagF32 || v.tag == TagF64:
		return Value{tag: v.tag, bits: math.Float64bits(-v.UncheckedFloat64())}, nil
	case v.tag == TagF80:
		return ext(num.NewExt().Neg(v.UncheckedBigFloat())), nil
	default:
		return Value{}, pyerrors.Newf(pyerrors.TypeMismatch, op, "bad operand type for unary -: %s", v.TypeName())
	}
}

// Not returns the boolean negation of v's truthiness.
func Not(v Value) Value {
	return Bool(!v.Truthy())
}

// Abs returns the absolute value of a number.
func Abs(v Value) (Value, error) {
	if !v.tag.IsNumeric() {
		return Value{}, pyerrors.Newf(pyerrors.TypeMismatch, "abs", "bad operand type for abs(): %s", v.TypeName())
	}
	switch {
	case v.tag == TagBool:
		return I32(int32(v.bits)), nil
	case v.tag.IsUnsigned():
		return v, nil
	case v.tag.IsSigned():
		if int64(v.bits) >= 0 {
			return v, nil
		}
		return fitInt(new(big.Int).Neg(bigInt(v)), v.tag), nil
	case v.tag == TagF32 || v.tag == TagF64:
		return Value{tag: v.tag, bits: math.Float64bits(math.Abs(v.UncheckedFloat64()))}, nil
	case v.tag == TagF80:
		return ext(num.NewExt().Abs(v.UncheckedBigFloat())), nil
	}
	return v, nil
}

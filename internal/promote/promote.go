// Package promote implements the type algebra that pairs two numeric tags
// with a result tag for each operator, and the smart-fit ladders that
// re-encode an exact result in the narrowest tag at or above that result tag.
package promote

import (
	"math/big"

	"github.com/jacoelho/pythonic/internal/num"
	"github.com/jacoelho/pythonic/internal/tags"
)

// Op identifies a binary operator for promotion purposes.
type Op uint8

const (
	Add Op = iota
	Sub
	Mul
	Div
	Mod
	FloorDiv
	TrueDiv
	And
	Or
	Xor

	opCount
)

// NumOps is the number of operators.
const NumOps = int(opCount)

var opNames = [opCount]string{
	Add:      "+",
	Sub:      "-",
	Mul:      "*",
	Div:      "/",
	Mod:      "%",
	FloorDiv: "//",
	TrueDiv:  "truediv",
	And:      "&",
	Or:       "|",
	Xor:      "^",
}

// String returns the operator symbol.
func (op Op) String() string {
	if op >= opCount {
		return "?"
	}
	return opNames[op]
}

// IsBitwise reports whether op is &, | or ^.
func (op Op) IsBitwise() bool {
	return op == And || op == Or || op == Xor
}

// IsDivision reports whether op fails on a zero divisor.
func (op Op) IsDivision() bool {
	switch op {
	case Div, Mod, FloorDiv, TrueDiv:
		return true
	default:
		return false
	}
}

// Result returns the promoted tag for numeric operands a and b under op.
// The boolean is false when no promotion exists.
func Result(op Op, a, b tags.Tag) (tags.Tag, bool) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return tags.Invalid, false
	}
	if op.IsBitwise() {
		if !a.IsIntegral() || !b.IsIntegral() {
			return tags.Invalid, false
		}
		if a == tags.Bool && b == tags.Bool {
			return tags.Bool, true
		}
		return integerResult(a, b), true
	}

	hasFloat := a.IsFloat() || b.IsFloat()
	switch op {
	case TrueDiv:
		if !hasFloat {
			return tags.F64, true
		}
		return floatResult(a, b), true
	case Div:
		if hasFloat {
			return floatResult(a, b), true
		}
		return integerResult(a, b), true
	default:
		if hasFloat {
			return tags.Higher(a, b), true
		}
		return integerResult(a, b), true
	}
}

// integerResult applies the +/* rule to two integral tags: highest rank,
// signed when either side is signed or Bool.
func integerResult(a, b tags.Tag) tags.Tag {
	h := tags.Higher(a, b)
	if h == tags.Bool {
		return tags.I32
	}
	if a.IsSigned() || b.IsSigned() || a == tags.Bool || b == tags.Bool {
		return h.Signed()
	}
	return h
}

// floatResult picks the highest floating tag among the operands, widened to
// F64 when the other side is a 64-bit integer that F32 cannot hold.
func floatResult(a, b tags.Tag) tags.Tag {
	h := tags.Higher(a, b)
	if h != tags.F32 {
		return h
	}
	other := a
	if a.IsFloat() {
		other = b
	}
	if other.IsInteger() && other.Bits() == 64 {
		return tags.F64
	}
	return h
}

// Negate returns the result tag of unary negation.
func Negate(t tags.Tag) (tags.Tag, bool) {
	if !t.IsNumeric() {
		return tags.Invalid, false
	}
	return t.Signed(), true
}

var (
	unsignedLadder = [...]tags.Tag{tags.U32, tags.U64, tags.USize}
	signedLadder   = [...]tags.Tag{tags.I32, tags.I64, tags.ISize}
	floatLadder    = [...]tags.Tag{tags.F32, tags.F64, tags.F80}
)

// FitInt returns the narrowest tag at or above min that represents the
// integer r exactly. Unsigned minimums stay unsigned while r is non-negative;
// a negative r moves to the signed ladder. Results outside every integer
// range continue onto the float ladder, ending at F80.
func FitInt(r *big.Int, min tags.Tag) tags.Tag {
	if min == tags.Bool {
		if r.Sign() == 0 || (r.IsInt64() && r.Int64() == 1) {
			return tags.Bool
		}
		min = tags.I32
	}
	if min.IsUnsigned() && r.Sign() >= 0 {
		for _, t := range unsignedLadder {
			if t.Rank() >= min.Rank() && fitsInt(r, t) {
				return t
			}
		}
	}
	if min.IsInteger() {
		start := min.Signed()
		for _, t := range signedLadder {
			if t.Rank() >= start.Rank() && fitsInt(r, t) {
				return t
			}
		}
	}
	x := num.NewWork().SetInt(r)
	return FitBig(x, tags.F32)
}

func fitsInt(r *big.Int, t tags.Tag) bool {
	if t.IsUnsigned() {
		return r.Sign() >= 0 && r.IsUint64() && num.FitsUint(r.Uint64(), t.Bits())
	}
	return r.IsInt64() && num.FitsInt(r.Int64(), t.Bits())
}

// FitFloat64 returns F32 or F64 for a result computed in float64 arithmetic.
// min must be F32 or F64. An F32 result stays F32 unless rounding overflows.
func FitFloat64(f float64, min tags.Tag) tags.Tag {
	if min == tags.F32 && num.InFloat32Range(f) {
		return tags.F32
	}
	return tags.F64
}

// FitBig returns the narrowest float tag at or above min that represents x
// exactly, or F80 when none does.
func FitBig(x *big.Float, min tags.Tag) tags.Tag {
	for _, t := range floatLadder {
		if t.Rank() < min.Rank() {
			continue
		}
		switch t {
		case tags.F32:
			if _, ok := num.ExactFloat32(x); ok {
				return t
			}
		case tags.F64:
			if _, ok := num.ExactFloat64(x); ok {
				return t
			}
		}
	}
	return tags.F80
}

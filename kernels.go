package pythonic

import (
	"math/big"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/num"
	"github.com/jacoelho/pythonic/internal/promote"
	"github.com/jacoelho/pythonic/internal/tags"
)

// Kernel computes a binary operation for one pair of operand tags.
type Kernel func(a, b Value) (Value, error)

// kernels is the sparse dispatch matrix indexed by operator and operand tags.
// Absent cells fall back to the promotion path.
var kernels [promote.NumOps][tags.Count][tags.Count]Kernel

func init() {
	for op := promote.Op(0); int(op) < promote.NumOps; op++ {
		for _, t := range []Tag{TagI32, TagI64, TagISize} {
			kernels[op][t][t] = signedKernel(op, t)
		}
		for _, t := range []Tag{TagU32, TagU64, TagUSize} {
			kernels[op][t][t] = unsignedKernel(op, t)
		}
		if !op.IsBitwise() {
			for _, t := range []Tag{TagF32, TagF64, TagF80} {
				kernels[op][t][t] = floatKernel(op, t, t)
			}
			for _, pair := range [][2]Tag{
				{TagI32, TagF64}, {TagF64, TagI32},
				{TagI64, TagF64}, {TagF64, TagI64},
				{TagF32, TagF64}, {TagF64, TagF32},
			} {
				kernels[op][pair[0]][pair[1]] = floatKernel(op, pair[0], pair[1])
			}
		}
		kernels[op][TagI32][TagI64] = widenKernel(op)
		kernels[op][TagI64][TagI32] = widenKernel(op)
	}
	for _, op := range []promote.Op{promote.And, promote.Or, promote.Xor} {
		kernels[op][TagBool][TagBool] = boolKernel(op)
	}
	kernels[promote.Add][TagStr][TagStr] = concatStr
	kernels[promote.Add][TagList][TagList] = concatList
}

// lookup returns the kernel for op over tags a and b, or nil.
func lookup(op promote.Op, a, b Tag) Kernel {
	if int(op) >= promote.NumOps || !a.Valid() || !b.Valid() {
		return nil
	}
	return kernels[op][a][b]
}

// signedKernel returns the checked same-width kernel for a signed tag.
func signedKernel(op promote.Op, t Tag) Kernel {
	w := t.Bits()
	checked := func(f func(x, y int64) (int64, bool)) Kernel {
		return func(a, b Value) (Value, error) {
			r, ok := f(int64(a.bits), int64(b.bits))
			if !ok {
				return Value{}, overflow(op, t)
			}
			return Value{tag: t, bits: uint64(r)}, nil
		}
	}
	divisor := func(f func(x, y int64) (int64, bool)) Kernel {
		k := checked(f)
		return func(a, b Value) (Value, error) {
			if b.bits == 0 {
				return Value{}, zeroDivision(op)
			}
			return k(a, b)
		}
	}
	switch op {
	case promote.Add:
		return checked(func(x, y int64) (int64, bool) { return num.AddInt(x, y, w) })
	case promote.Sub:
		return checked(func(x, y int64) (int64, bool) { return num.SubInt(x, y, w) })
	case promote.Mul:
		return checked(func(x, y int64) (int64, bool) { return num.MulInt(x, y, w) })
	case promote.Div, promote.FloorDiv:
		return divisor(func(x, y int64) (int64, bool) { return num.FloorDivInt(x, y, w) })
	case promote.Mod:
		return divisor(func(x, y int64) (int64, bool) { return num.FloorModInt(x, y), true })
	case promote.And:
		return checked(func(x, y int64) (int64, bool) { return x & y, true })
	case promote.Or:
		return checked(func(x, y int64) (int64, bool) { return x | y, true })
	case promote.Xor:
		return checked(func(x, y int64) (int64, bool) { return x ^ y, true })
	default:
		// TrueDiv always yields a float
		return floatKernel(op, t, t)
	}
}

// unsignedKernel returns the checked same-width kernel for an unsigned tag.
// A negative difference re-widens onto the signed ladder.
func unsignedKernel(op promote.Op, t Tag) Kernel {
	w := t.Bits()
	checked := func(f func(x, y uint64) (uint64, bool)) Kernel {
		return func(a, b Value) (Value, error) {
			r, ok := f(a.bits, b.bits)
			if !ok {
				return Value{}, overflow(op, t)
			}
			return Value{tag: t, bits: r}, nil
		}
	}
	divisor := func(f func(x, y uint64) uint64) Kernel {
		return func(a, b Value) (Value, error) {
			if b.bits == 0 {
				return Value{}, zeroDivision(op)
			}
			return Value{tag: t, bits: f(a.bits, b.bits)}, nil
		}
	}
	switch op {
	case promote.Add:
		return checked(func(x, y uint64) (uint64, bool) { return num.AddUint(x, y, w) })
	case promote.Sub:
		return func(a, b Value) (Value, error) {
			if r, ok := num.SubUint(a.bits, b.bits); ok {
				return Value{tag: t, bits: r}, nil
			}
			d := new(big.Int).Sub(bigInt(a), bigInt(b))
			return fitInt(d, t), nil
		}
	case promote.Mul:
		return checked(func(x, y uint64) (uint64, bool) { return num.MulUint(x, y, w) })
	case promote.Div, promote.FloorDiv:
		return divisor(func(x, y uint64) uint64 { return x / y })
	case promote.Mod:
		return divisor(func(x, y uint64) uint64 { return x % y })
	case promote.And:
		return checked(func(x, y uint64) (uint64, bool) { return x & y, true })
	case promote.Or:
		return checked(func(x, y uint64) (uint64, bool) { return x | y, true })
	case promote.Xor:
		return checked(func(x, y uint64) (uint64, bool) { return x ^ y, true })
	default:
		return floatKernel(op, t, t)
	}
}

// floatKernel binds the promoted result tag of a float pair once.
func floatKernel(op promote.Op, a, b Tag) Kernel {
	rt, _ := promote.Result(op, a, b)
	return func(x, y Value) (Value, error) {
		return floatOp(op, rt, x, y)
	}
}

// widenKernel handles I32 with I64 in int64 arithmetic, falling back to the
// promotion path when the I64 result overflows.
func widenKernel(op promote.Op) Kernel {
	fast := signedKernel(op, TagI64)
	return func(a, b Value) (Value, error) {
		r, err := fast(a, b)
		if !pyerrors.IsKind(err, pyerrors.Overflow) {
			return r, err
		}
		return generic(op, a, b, Promote)
	}
}

func boolKernel(op promote.Op) Kernel {
	return func(a, b Value) (Value, error) {
		switch op {
		case promote.And:
			return Bool(a.bits&b.bits != 0), nil
		case promote.Or:
			return Bool(a.bits|b.bits != 0), nil
		default:
			return Bool(a.bits^b.bits != 0), nil
		}
	}
}

func concatStr(a, b Value) (Value, error) {
	return Str(a.UncheckedStr() + b.UncheckedStr()), nil
}

func concatList(a, b Value) (Value, error) {
	x, y := a.UncheckedList(), b.UncheckedList()
	out := &List{items: make([]Value, 0, len(x.items)+len(y.items))}
	for _, v := range x.items {
		out.items = append(out.items, v.Clone())
	}
	for _, v := range y.items {
		out.items = append(out.items, v.Clone())
	}
	return Value{tag: TagList, ref: out}, nil
}

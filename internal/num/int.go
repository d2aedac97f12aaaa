package num

import (
	"math"
	"math/bits"
)

// MinInt returns the smallest signed value representable in width bits (32 or 64).
func MinInt(width int) int64 {
	if width == 32 {
		return math.MinInt32
	}
	return math.MinInt64
}

// MaxInt returns the largest signed value representable in width bits.
func MaxInt(width int) int64 {
	if width == 32 {
		return math.MaxInt32
	}
	return math.MaxInt64
}

// MaxUint returns the largest unsigned value representable in width bits.
func MaxUint(width int) uint64 {
	if width == 32 {
		return math.MaxUint32
	}
	return math.MaxUint64
}

// FitsInt reports whether v is representable as a signed width-bit integer.
func FitsInt(v int64, width int) bool {
	return v >= MinInt(width) && v <= MaxInt(width)
}

// FitsUint reports whether v is representable as an unsigned width-bit integer.
func FitsUint(v uint64, width int) bool {
	return v <= MaxUint(width)
}

// WrapInt truncates v to width bits and sign-extends the result.
func WrapInt(v int64, width int) int64 {
	if width == 32 {
		return int64(int32(v))
	}
	return v
}

// WrapUint truncates v to width bits.
func WrapUint(v uint64, width int) uint64 {
	if width == 32 {
		return uint64(uint32(v))
	}
	return v
}

// AddInt returns a+b and whether it fits in width bits.
func AddInt(a, b int64, width int) (int64, bool) {
	s := a + b
	if width == 64 {
		// overflow iff both operands share a sign that the sum does not
		if (a >= 0) == (b >= 0) && (s >= 0) != (a >= 0) {
			return s, false
		}
		return s, true
	}
	return s, FitsInt(s, width)
}

// SubInt returns a-b and whether it fits in width bits.
func SubInt(a, b int64, width int) (int64, bool) {
	d := a - b
	if width == 64 {
		if (a >= 0) != (b >= 0) && (d >= 0) != (a >= 0) {
			return d, false
		}
		return d, true
	}
	return d, FitsInt(d, width)
}

// MulInt returns a*b and whether it fits in width bits.
func MulInt(a, b int64, width int) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if width == 64 {
		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return p, false
		}
		if p/b != a {
			return p, false
		}
		return p, true
	}
	return p, FitsInt(p, width)
}

// FloorDivInt returns the floor of a/b and whether it fits in width bits.
// b must be non-zero.
func FloorDivInt(a, b int64, width int) (int64, bool) {
	if b == -1 && a == MinInt(width) {
		return a, false
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q, true
}

// FloorModInt returns a modulo b with the sign of b. b must be non-zero.
func FloorModInt(a, b int64) int64 {
	if b == -1 {
		return 0
	}
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// NegInt returns -a and whether it fits in width bits.
func NegInt(a int64, width int) (int64, bool) {
	if a == MinInt(width) {
		return a, false
	}
	return -a, true
}

// AddUint returns a+b and whether it fits in width bits.
func AddUint(a, b uint64, width int) (uint64, bool) {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return s, false
	}
	return s, FitsUint(s, width)
}

// SubUint returns a-b and whether the difference is non-negative.
func SubUint(a, b uint64) (uint64, bool) {
	d, borrow := bits.Sub64(a, b, 0)
	return d, borrow == 0
}

// MulUint returns a*b and whether it fits in width bits.
func MulUint(a, b uint64, width int) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return lo, false
	}
	return lo, FitsUint(lo, width)
}

// AbsDiffUint returns |a-b| as an unsigned magnitude and whether a < b.
func AbsDiffUint(a, b uint64) (uint64, bool) {
	if a >= b {
		return a - b, false
	}
	return b - a, true
}

// CompareIntUint compares a signed and an unsigned integer exactly.
func CompareIntUint(a int64, b uint64) int {
	if a < 0 {
		return -1
	}
	ua := uint64(a)
	switch {
	case ua < b:
		return -1
	case ua > b:
		return 1
	default:
		return 0
	}
}

// CompareInt compares two signed integers.
func CompareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareUint compares two unsigned integers.
func CompareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

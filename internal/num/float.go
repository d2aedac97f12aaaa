package num

import "math"

// FloatClass identifies the ordering class of a float value.
type FloatClass uint8

const (
	FloatFinite FloatClass = iota
	FloatPosInf
	FloatNegInf
	FloatNaN
)

// Classify returns the class of f.
func Classify(f float64) FloatClass {
	switch {
	case math.IsNaN(f):
		return FloatNaN
	case math.IsInf(f, 1):
		return FloatPosInf
	case math.IsInf(f, -1):
		return FloatNegInf
	default:
		return FloatFinite
	}
}

// CompareFloat compares two float values.
// The boolean result is false when either side is NaN (unordered).
func CompareFloat(a, b float64) (int, bool) {
	ac, bc := Classify(a), Classify(b)
	if ac == FloatNaN || bc == FloatNaN {
		return 0, false
	}
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	default:
		return 0, true
	}
}

// InFloat32Range reports whether rounding f to float32 keeps it finite.
// Infinities and NaN are in range.
func InFloat32Range(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return true
	}
	return !math.IsInf(float64(float32(f)), 0)
}

// FloorModFloat returns a modulo b with the sign of b. b must be non-zero.
func FloorModFloat(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 {
		if (m < 0) != (b < 0) {
			m += b
		}
		return m
	}
	return math.Copysign(0, b)
}

// FloorDivFloat returns the floor of a/b. b must be non-zero.
func FloorDivFloat(a, b float64) float64 {
	m := math.Mod(a, b)
	q := (a - m) / b
	if m != 0 && ((b < 0) != (m < 0)) {
		q--
	}
	if q == 0 {
		return math.Copysign(0, a/b)
	}
	fq := math.Floor(q)
	if q-fq > 0.5 {
		fq++
	}
	return fq
}

// IsIntegral reports whether f is finite and has no fractional part.
func IsIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

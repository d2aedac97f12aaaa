// Package valuekey encodes canonical key bytes for dynamic values.
// Two values that compare equal produce identical keys, so keys can be hashed
// or used directly as Go map keys.
package valuekey

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/big"
	"slices"
)

// Key kinds. Every key starts with one of these bytes.
const (
	KindNone        byte = 'z'
	KindInt         byte = 'i'
	KindFloat       byte = 'f'
	KindExt         byte = 'p'
	KindPosInf      byte = '+'
	KindNegInf      byte = '-'
	KindNaN         byte = 'n'
	KindStr         byte = 's'
	KindList        byte = 'l'
	KindSet         byte = 'S'
	KindOrderedSet  byte = 'O'
	KindDict        byte = 'd'
	KindOrderedDict byte = 'D'
)

const (
	signNeg  byte = 0
	signZero byte = 1
	signPos  byte = 2
)

const canonicalNaN64 = 0x7ff8000000000000

// NoneKey appends the key of None.
func NoneKey(dst []byte) []byte {
	return append(dst, KindNone)
}

// IntKey appends the key of the integer whose sign is neg and magnitude mag.
// Booleans encode as 0 and 1 so that True and 1 share a key.
func IntKey(dst []byte, neg bool, mag uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], mag)
	b := buf[:]
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return appendMagnitude(dst, neg, b)
}

// Int64Key appends the key of v.
func Int64Key(dst []byte, v int64) []byte {
	if v < 0 {
		return IntKey(dst, true, uint64(-(v+1))+1)
	}
	return IntKey(dst, false, uint64(v))
}

// BigIntKey appends the key of an arbitrary precision integer.
func BigIntKey(dst []byte, v *big.Int) []byte {
	return appendMagnitude(dst, v.Sign() < 0, v.Bytes())
}

func appendMagnitude(dst []byte, neg bool, mag []byte) []byte {
	sign := signPos
	switch {
	case len(mag) == 0:
		sign = signZero
	case neg:
		sign = signNeg
	}
	dst = append(dst, KindInt, sign)
	dst = AppendUvarint(dst, uint64(len(mag)))
	return append(dst, mag...)
}

// Float64Key appends the key of f. Integral values encode as integers, -0
// encodes as 0 and every NaN shares one key.
func Float64Key(dst []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		dst = append(dst, KindNaN)
		return binary.BigEndian.AppendUint64(dst, canonicalNaN64)
	case math.IsInf(f, 1):
		return append(dst, KindPosInf)
	case math.IsInf(f, -1):
		return append(dst, KindNegInf)
	case f == 0:
		return IntKey(dst, false, 0)
	}
	if f == math.Trunc(f) {
		if math.Abs(f) < 1<<63 {
			return Int64Key(dst, int64(f))
		}
		i, _ := new(big.Float).SetFloat64(f).Int(nil)
		return BigIntKey(dst, i)
	}
	dst = append(dst, KindFloat)
	return binary.BigEndian.AppendUint64(dst, math.Float64bits(f))
}

// ExtKey appends the key of an extended float. Values that a float64 holds
// exactly share the float64 key.
func ExtKey(dst []byte, x *big.Float) []byte {
	if x.IsInf() {
		if x.Signbit() {
			return append(dst, KindNegInf)
		}
		return append(dst, KindPosInf)
	}
	if x.IsInt() {
		i, _ := x.Int(nil)
		return BigIntKey(dst, i)
	}
	if f, acc := x.Float64(); acc == big.Exact {
		dst = append(dst, KindFloat)
		return binary.BigEndian.AppendUint64(dst, math.Float64bits(f))
	}
	text := x.Text('p', 0)
	dst = append(dst, KindExt)
	dst = AppendUvarint(dst, uint64(len(text)))
	return append(dst, text...)
}

// StringKey appends the key of a string.
func StringKey(dst []byte, s string) []byte {
	dst = append(dst, KindStr)
	dst = AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// SeqKey appends an order-sensitive key built from element keys.
func SeqKey(dst []byte, kind byte, elems [][]byte) []byte {
	dst = append(dst, kind)
	dst = AppendUvarint(dst, uint64(len(elems)))
	for _, e := range elems {
		dst = AppendUvarint(dst, uint64(len(e)))
		dst = append(dst, e...)
	}
	return dst
}

// UnorderedKey appends an order-insensitive key: element keys are sorted
// before encoding. elems is sorted in place.
func UnorderedKey(dst []byte, kind byte, elems [][]byte) []byte {
	slices.SortFunc(elems, bytes.Compare)
	return SeqKey(dst, kind, elems)
}

// Pair is one key/value entry of a mapping key.
type Pair struct {
	Name  string
	Value []byte
}

// PairsKey appends the key of a mapping. When sorted is true entries are
// ordered by name first, so insertion order does not matter. pairs may be
// reordered.
func PairsKey(dst []byte, kind byte, pairs []Pair, sorted bool) []byte {
	if sorted {
		slices.SortFunc(pairs, func(a, b Pair) int {
			if a.Name < b.Name {
				return -1
			}
			if a.Name > b.Name {
				return 1
			}
			return 0
		})
	}
	dst = append(dst, kind)
	dst = AppendUvarint(dst, uint64(len(pairs)))
	for _, p := range pairs {
		dst = AppendUvarint(dst, uint64(len(p.Name)))
		dst = append(dst, p.Name...)
		dst = AppendUvarint(dst, uint64(len(p.Value)))
		dst = append(dst, p.Value...)
	}
	return dst
}

// AppendUvarint appends v as a varint-encoded uint64.
func AppendUvarint(dst []byte, v uint64) []byte {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	return append(dst, buf[:n]...)
}

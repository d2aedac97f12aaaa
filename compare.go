package pythonic

import (
	"bytes"
	"strings"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/num"
)

// Equal reports structural equality. Numbers compare by value across widths,
// NaN equals NaN, and values of different non-numeric tags are unequal.
// Graphs are equal only to themselves.
func Equal(a, b Value) bool {
	if a.tag.IsNumeric() && b.tag.IsNumeric() {
		an, bn := isNaN(a), isNaN(b)
		if an || bn {
			return an && bn
		}
		c, _ := compareNumbers(a, b)
		return c == 0
	}
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case TagNone:
		return true
	case TagStr:
		return a.UncheckedStr() == b.UncheckedStr()
	case TagList:
		return equalSlices(a.UncheckedList().items, b.UncheckedList().items)
	case TagSet:
		x, y := a.UncheckedSet().items, b.UncheckedSet().items
		if len(x) != len(y) {
			return false
		}
		for k := range x {
			if _, ok := y[k]; !ok {
				return false
			}
		}
		return true
	case TagOrderedSet:
		return equalSlices(a.UncheckedOrderedSet().slice(), b.UncheckedOrderedSet().slice())
	case TagDict:
		x, y := a.UncheckedDict().items, b.UncheckedDict().items
		if len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case TagOrderedDict:
		x, y := a.UncheckedOrderedDict().items, b.UncheckedOrderedDict().items
		if x.Len() != y.Len() {
			return false
		}
		for i := range x.Len() {
			xk, xv := x.At(i)
			yk, yv := y.At(i)
			if xk != yk || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case TagGraph:
		return a.UncheckedGraph() == b.UncheckedGraph()
	default:
		return false
	}
}

func equalSlices(x, y []Value) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !Equal(x[i], y[i]) {
			return false
		}
	}
	return true
}

// NotEqual reports !Equal(a, b).
func NotEqual(a, b Value) bool { return !Equal(a, b) }

// Equal reports Equal(v, o).
func (v Value) Equal(o Value) bool { return Equal(v, o) }

// Compare orders v against o. See the package function Compare.
func (v Value) Compare(o Value) (int, error) { return Compare(v, o) }

// compareNumbers compares two numeric values exactly. The boolean is false
// when either side is NaN.
func compareNumbers(a, b Value) (int, bool) {
	if isNaN(a) || isNaN(b) {
		return 0, false
	}
	switch {
	case a.tag.IsIntegral() && b.tag.IsIntegral():
		au, bu := a.tag.IsUnsigned(), b.tag.IsUnsigned()
		switch {
		case au && bu:
			return num.CompareUint(a.bits, b.bits), true
		case au:
			return -num.CompareIntUint(int64(b.bits), a.bits), true
		case bu:
			return num.CompareIntUint(int64(a.bits), b.bits), true
		default:
			return num.CompareInt(int64(a.bits), int64(b.bits)), true
		}
	case (a.tag == TagF32 || a.tag == TagF64) && (b.tag == TagF32 || b.tag == TagF64):
		return num.CompareFloat(a.UncheckedFloat64(), b.UncheckedFloat64())
	default:
		return workOf(a).Cmp(workOf(b)), true
	}
}

func unordered(a, b Value) error {
	return pyerrors.Newf(pyerrors.InvalidArgument, "compare",
		"%s and %s are unordered", a.Repr(), b.Repr())
}

func notOrderable(a, b Value) error {
	return pyerrors.Newf(pyerrors.TypeMismatch, "compare",
		"ordering not supported between %s and %s", a.TypeName(), b.TypeName())
}

// Compare returns -1, 0 or 1 ordering a against b. Numbers compare by value;
// strings and lists compare lexicographically; sets are ordered by inclusion.
// Values of different non-numeric tags order by tag. Ordering None against
// another value, ordering dicts or graphs, and NaN fail.
func Compare(a, b Value) (int, error) {
	if a.tag.IsNumeric() && b.tag.IsNumeric() {
		c, ok := compareNumbers(a, b)
		if !ok {
			return 0, unordered(a, b)
		}
		return c, nil
	}
	if a.tag == TagNone || b.tag == TagNone {
		if a.tag == b.tag {
			return 0, nil
		}
		return 0, notOrderable(a, b)
	}
	if a.tag.Order() != b.tag.Order() {
		return cmpInt(a.tag.Order(), b.tag.Order()), nil
	}
	switch a.tag {
	case TagStr:
		return strings.Compare(a.UncheckedStr(), b.UncheckedStr()), nil
	case TagList:
		return compareSlices(a.UncheckedList().items, b.UncheckedList().items)
	case TagSet, TagOrderedSet:
		sub, _ := IsSubset(a, b)
		sup, _ := IsSubset(b, a)
		switch {
		case sub && sup:
			return 0, nil
		case sub:
			return -1, nil
		case sup:
			return 1, nil
		default:
			return 0, unordered(a, b)
		}
	default:
		return 0, notOrderable(a, b)
	}
}

func compareSlices(x, y []Value) (int, error) {
	for i := 0; i < len(x) && i < len(y); i++ {
		if Equal(x[i], y[i]) {
			continue
		}
		return Compare(x[i], y[i])
	}
	return cmpInt(len(x), len(y)), nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports a < b. Unordered pairs fail with the error from Compare.
func Less(a, b Value) (bool, error) { return orderedBy(a, b, func(c int) bool { return c < 0 }) }

// LessEqual reports a <= b.
func LessEqual(a, b Value) (bool, error) { return orderedBy(a, b, func(c int) bool { return c <= 0 }) }

// Greater reports a > b.
func Greater(a, b Value) (bool, error) { return orderedBy(a, b, func(c int) bool { return c > 0 }) }

// GreaterEqual reports a >= b.
func GreaterEqual(a, b Value) (bool, error) { return orderedBy(a, b, func(c int) bool { return c >= 0 }) }

func orderedBy(a, b Value, pred func(int) bool) (bool, error) {
	c, err := Compare(a, b)
	if err != nil {
		return false, err
	}
	return pred(c), nil
}

// totalCompare is a total order over all values, consistent with Equal. It
// orders ordered sets and breaks ties where Compare fails.
func totalCompare(a, b Value) int {
	if a.tag.Order() != b.tag.Order() {
		return cmpInt(a.tag.Order(), b.tag.Order())
	}
	switch {
	case a.tag.IsNumeric():
		an, bn := isNaN(a), isNaN(b)
		switch {
		case an && bn:
			return 0
		case an:
			return -1
		case bn:
			return 1
		}
		c, _ := compareNumbers(a, b)
		return c
	case a.tag == TagNone:
		return 0
	case a.tag == TagStr:
		return strings.Compare(a.UncheckedStr(), b.UncheckedStr())
	case a.tag == TagList:
		x, y := a.UncheckedList().items, b.UncheckedList().items
		for i := 0; i < len(x) && i < len(y); i++ {
			if c := totalCompare(x[i], y[i]); c != 0 {
				return c
			}
		}
		return cmpInt(len(x), len(y))
	case a.tag == TagGraph:
		if a.UncheckedGraph() == b.UncheckedGraph() {
			return 0
		}
		return cmpInt(a.UncheckedGraph().NodeCount(), b.UncheckedGraph().NodeCount())
	}
	ka, _ := appendKey(nil, a)
	kb, _ := appendKey(nil, b)
	return bytes.Compare(ka, kb)
}

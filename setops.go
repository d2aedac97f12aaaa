package pythonic

import (
	"math"
	"strings"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/promote"
)

func isSetLike(v Value) bool {
	return v.tag == TagSet || v.tag == TagOrderedSet
}

// members returns the elements of a set or ordered set.
func members(v Value) []Value {
	if v.tag == TagOrderedSet {
		return v.UncheckedOrderedSet().slice()
	}
	s := v.UncheckedSet()
	out := make([]Value, 0, s.Len())
	for e := range s.All() {
		out = append(out, e)
	}
	return out
}

func setHas(v Value, x Value) bool {
	if v.tag == TagOrderedSet {
		return v.UncheckedOrderedSet().items.Contains(x)
	}
	return v.UncheckedSet().has(x)
}

// emptyLike returns an empty set with the tag of v.
func emptyLike(v Value) Value {
	if v.tag == TagOrderedSet {
		return Value{tag: TagOrderedSet, ref: newOrderedSet()}
	}
	return Value{tag: TagSet, ref: &Set{items: make(map[string]Value)}}
}

func setOperands(op string, a, b Value) error {
	if !isSetLike(a) || !isSetLike(b) {
		return pyerrors.Newf(pyerrors.TypeMismatch, op,
			"unsupported operand types: %s and %s", a.TypeName(), b.TypeName())
	}
	return nil
}

// Union returns the elements of a or b. The result has the tag of a.
func Union(a, b Value) (Value, error) {
	if err := setOperands("union", a, b); err != nil {
		return Value{}, err
	}
	out := a.Clone()
	for _, e := range members(b) {
		if err := out.Add(e); err != nil {
			return Value{}, err
		}
	}
	return out, nil
}

// Intersection returns the elements of a that are also in b.
func Intersection(a, b Value) (Value, error) {
	return filterSet("intersection", a, b, true)
}

// Difference returns the elements of a that are not in b.
func Difference(a, b Value) (Value, error) {
	return filterSet("difference", a, b, false)
}

func filterSet(op string, a, b Value, keep bool) (Value, error) {
	if err := setOperands(op, a, b); err != nil {
		return Value{}, err
	}
	out := emptyLike(a)
	for _, e := range members(a) {
		if setHas(b, e) == keep {
			if err := out.Add(e); err != nil {
				return Value{}, err
			}
		}
	}
	return out, nil
}

// SymmetricDifference returns the elements in exactly one of a and b.
func SymmetricDifference(a, b Value) (Value, error) {
	left, err := Difference(a, b)
	if err != nil {
		return Value{}, err
	}
	right, err := Difference(b, a)
	if err != nil {
		return Value{}, err
	}
	return Union(left, right)
}

// IsSubset reports whether every element of a is in b.
func IsSubset(a, b Value) (bool, error) {
	if err := setOperands("issubset", a, b); err != nil {
		return false, err
	}
	for _, e := range members(a) {
		if !setHas(b, e) {
			return false, nil
		}
	}
	return true, nil
}

// mergeDicts returns a copy of a updated with the entries of b. Ordered dicts
// keep the order of a and append new keys of b.
func mergeDicts(a, b Value) (Value, error) {
	out := a.Clone()
	if err := out.Update(b); err != nil {
		return Value{}, err
	}
	return out, nil
}

// repeatCount converts a repetition operand to a non-negative count.
func repeatCount(op promote.Op, n Value, size int) (int, error) {
	if n.tag.IsUnsigned() && n.bits > math.MaxInt64 {
		return 0, pyerrors.New(pyerrors.InvalidArgument, op.String(), "repeat count too large")
	}
	c := int64(n.bits)
	if c <= 0 || size == 0 {
		return 0, nil
	}
	if c > math.MaxInt32 || c*int64(size) > math.MaxInt32 {
		return 0, pyerrors.New(pyerrors.InvalidArgument, op.String(), "repeat result too large")
	}
	return int(c), nil
}

// sequenceOp implements the operators on strings, lists, sets and dicts.
func sequenceOp(op promote.Op, a, b Value) (Value, error) {
	switch op {
	case promote.Add:
		switch {
		case a.tag == TagStr && b.tag == TagStr:
			return concatStr(a, b)
		case a.tag == TagList && b.tag == TagList:
			return concatList(a, b)
		}
	case promote.Mul:
		seq, n := a, b
		if a.tag.IsIntegral() {
			seq, n = b, a
		}
		if !n.tag.IsIntegral() || (seq.tag != TagStr && seq.tag != TagList) {
			break
		}
		size, _ := seq.Len()
		if seq.tag == TagStr {
			size = len(seq.UncheckedStr())
		}
		count, err := repeatCount(op, n, size)
		if err != nil {
			return Value{}, err
		}
		if seq.tag == TagStr {
			return Str(strings.Repeat(seq.UncheckedStr(), count)), nil
		}
		items := seq.UncheckedList().items
		out := &List{items: make([]Value, 0, len(items)*count)}
		for range count {
			for _, e := range items {
				out.items = append(out.items, e.Clone())
			}
		}
		return Value{tag: TagList, ref: out}, nil
	case promote.Or:
		switch {
		case isSetLike(a) && isSetLike(b):
			return Union(a, b)
		case a.tag == TagDict && b.tag == TagDict, a.tag == TagOrderedDict && b.tag == TagOrderedDict:
			return mergeDicts(a, b)
		}
	case promote.And:
		if isSetLike(a) && isSetLike(b) {
			return Intersection(a, b)
		}
	case promote.Xor:
		if isSetLike(a) && isSetLike(b) {
			return SymmetricDifference(a, b)
		}
	case promote.Sub:
		if isSetLike(a) && isSetLike(b) {
			return Difference(a, b)
		}
	}
	return Value{}, unsupported(op, a, b)
}

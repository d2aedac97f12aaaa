package pythonic

import (
	"hash/maphash"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/valuekey"
	"github.com/jacoelho/pythonic/internal/xiter"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a hash of v that agrees with Equal: equal values hash alike,
// including numbers of different widths. Graphs are unhashable.
func (v Value) Hash() (uint64, error) {
	key, err := appendKey(nil, v)
	if err != nil {
		return 0, err
	}
	return maphash.Bytes(hashSeed, key), nil
}

// Key returns the canonical key of v, usable as a Go map key.
func (v Value) Key() (string, error) {
	key, err := appendKey(nil, v)
	if err != nil {
		return "", err
	}
	return string(key), nil
}

func appendKey(dst []byte, v Value) ([]byte, error) {
	switch {
	case v.tag == TagNone:
		return valuekey.NoneKey(dst), nil
	case v.tag.IsUnsigned():
		return valuekey.IntKey(dst, false, v.bits), nil
	case v.tag.IsIntegral():
		return valuekey.Int64Key(dst, int64(v.bits)), nil
	case v.tag == TagF32 || v.tag == TagF64:
		return valuekey.Float64Key(dst, v.UncheckedFloat64()), nil
	case v.tag == TagF80:
		return valuekey.ExtKey(dst, v.UncheckedBigFloat()), nil
	case v.tag == TagStr:
		return valuekey.StringKey(dst, v.UncheckedStr()), nil
	case v.tag == TagList:
		elems, err := elemKeys(v.UncheckedList().items)
		if err != nil {
			return nil, err
		}
		return valuekey.SeqKey(dst, valuekey.KindList, elems), nil
	case v.tag == TagSet:
		elems := make([][]byte, 0, len(v.UncheckedSet().items))
		for k := range xiter.SortedKeys(v.UncheckedSet().items) {
			elems = append(elems, []byte(k))
		}
		return valuekey.SeqKey(dst, valuekey.KindSet, elems), nil
	case v.tag == TagOrderedSet:
		elems, err := elemKeys(v.UncheckedOrderedSet().slice())
		if err != nil {
			return nil, err
		}
		return valuekey.UnorderedKey(dst, valuekey.KindOrderedSet, elems), nil
	case v.tag == TagDict:
		pairs, err := pairKeys(v.UncheckedDict().items, len(v.UncheckedDict().items))
		if err != nil {
			return nil, err
		}
		return valuekey.PairsKey(dst, valuekey.KindDict, pairs, true), nil
	case v.tag == TagOrderedDict:
		d := v.UncheckedOrderedDict()
		pairs := make([]valuekey.Pair, 0, d.items.Len())
		for k, e := range d.items.All() {
			b, err := appendKey(nil, e)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, valuekey.Pair{Name: k, Value: b})
		}
		return valuekey.PairsKey(dst, valuekey.KindOrderedDict, pairs, false), nil
	default:
		return nil, pyerrors.Newf(pyerrors.TypeMismatch, "hash", "unhashable type: %s", v.TypeName())
	}
}

func elemKeys(items []Value) ([][]byte, error) {
	elems := make([][]byte, len(items))
	for i, e := range items {
		b, err := appendKey(nil, e)
		if err != nil {
			return nil, err
		}
		elems[i] = b
	}
	return elems, nil
}

func pairKeys(m map[string]Value, n int) ([]valuekey.Pair, error) {
	pairs := make([]valuekey.Pair, 0, n)
	for k, e := range m {
		b, err := appendKey(nil, e)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, valuekey.Pair{Name: k, Value: b})
	}
	return pairs, nil
}

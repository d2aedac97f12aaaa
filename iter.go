package pythonic

import (
	"iter"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/xiter"
)

// Iter returns a sequence over v: the characters of a string, the elements
// of a list or set, or the keys of a dict. Other values fail with
// IterationUnsupported. Yielded values share payloads with the container.
func (v Value) Iter() (iter.Seq[Value], error) {
	switch v.tag {
	case TagStr:
		s := v.UncheckedStr()
		return func(yield func(Value) bool) {
			for _, r := range s {
				if !yield(Str(string(r))) {
					return
				}
			}
		}, nil
	case TagList:
		return v.UncheckedList().All(), nil
	case TagSet:
		return v.UncheckedSet().All(), nil
	case TagOrderedSet:
		return v.UncheckedOrderedSet().All(), nil
	case TagDict, TagOrderedDict:
		entries, _ := dictAll(v)
		return func(yield func(Value) bool) {
			for k := range entries {
				if !yield(Str(k)) {
					return
				}
			}
		}, nil
	default:
		return nil, pyerrors.Newf(pyerrors.IterationUnsupported, "iter", "'%s' object is not iterable", v.TypeName())
	}
}

// All yields the elements Iter would, or nothing when v is not iterable.
func (v Value) All() iter.Seq[Value] {
	seq, err := v.Iter()
	if err != nil {
		return func(func(Value) bool) {}
	}
	return seq
}

// Enumerate yields the elements of v with their positions.
func (v Value) Enumerate() iter.Seq2[int, Value] {
	return xiter.Enumerate(v.All(), 0)
}

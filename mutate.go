package pythonic

import (
	"slices"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/pyslice"
	"github.com/jacoelho/pythonic/internal/pystr"
)

// noAttribute reports a container method called on a receiver that lacks it.
func noAttribute(name string, v Value) error {
	return pyerrors.Newf(pyerrors.AttributeUnsupported, name, "'%s' object has no attribute '%s'", v.TypeName(), name)
}

// listReceiver returns the list payload of v for the method name.
func (v *Value) listReceiver(name string) (*List, error) {
	if v.tag != TagList {
		return nil, noAttribute(name, *v)
	}
	return v.UncheckedList(), nil
}

// Append adds a copy of x to the end of a list.
func (v *Value) Append(x Value) error {
	l, err := v.listReceiver("append")
	if err != nil {
		return err
	}
	l.items = append(l.items, x.Clone())
	return nil
}

// Add inserts a copy of x into a set or ordered set.
func (v *Value) Add(x Value) error {
	switch v.tag {
	case TagSet:
		return v.UncheckedSet().add(x)
	case TagOrderedSet:
		return v.UncheckedOrderedSet().add(x)
	default:
		return noAttribute("add", *v)
	}
}

// Insert places a copy of x before index i of a list. Out of range indices
// clamp to the ends.
func (v *Value) Insert(i int, x Value) error {
	l, err := v.listReceiver("insert")
	if err != nil {
		return err
	}
	n := len(l.items)
	if i < 0 {
		i = max(i+n, 0)
	}
	i = min(i, n)
	l.items = slices.Insert(l.items, i, x.Clone())
	return nil
}

// Extend appends copies of every element of the iterable other to a list.
func (v *Value) Extend(other Value) error {
	l, err := v.listReceiver("extend")
	if err != nil {
		return err
	}
	seq, err := other.Iter()
	if err != nil {
		return err
	}
	// collect first: other may be v itself
	items := make([]Value, 0)
	for e := range seq {
		items = append(items, e.Clone())
	}
	l.items = append(l.items, items...)
	return nil
}

// Update adds every element of other to a set, or every entry of other to a
// dict.
func (v *Value) Update(other Value) error {
	const op = "update"
	switch v.tag {
	case TagSet, TagOrderedSet:
		seq, err := other.Iter()
		if err != nil {
			return err
		}
		items := make([]Value, 0)
		for e := range seq {
			items = append(items, e)
		}
		for _, e := range items {
			if err := v.Add(e); err != nil {
				return err
			}
		}
		return nil
	case TagDict, TagOrderedDict:
		entries, ok := dictAll(other)
		if !ok {
			return mismatch(op, "dict", other)
		}
		type entry struct {
			k string
			v Value
		}
		var pending []entry
		for k, e := range entries {
			pending = append(pending, entry{k, e.Clone()})
		}
		for _, e := range pending {
			if err := v.SetItem(Str(e.k), e.v); err != nil {
				return err
			}
		}
		return nil
	default:
		return noAttribute(op, *v)
	}
}

// Remove deletes the first element equal to x from a list, x from a set, or
// the key x from a dict. An absent element fails.
func (v *Value) Remove(x Value) error {
	const op = "remove"
	switch v.tag {
	case TagList:
		l := v.UncheckedList()
		i := slices.IndexFunc(l.items, func(e Value) bool { return Equal(e, x) })
		if i < 0 {
			return pyerrors.Newf(pyerrors.InvalidArgument, op, "%s not in list", x.Repr())
		}
		l.items = slices.Delete(l.items, i, i+1)
		return nil
	case TagSet, TagOrderedSet:
		found, err := v.discard(x)
		if err != nil {
			return err
		}
		if !found {
			return pyerrors.Newf(pyerrors.KeyMissing, op, "%s not in set", x.Repr())
		}
		return nil
	case TagDict, TagOrderedDict:
		_, err := v.PopKey(x)
		return err
	default:
		return noAttribute(op, *v)
	}
}

// Discard removes x from a set when present.
func (v *Value) Discard(x Value) error {
	_, err := v.discard(x)
	return err
}

func (v *Value) discard(x Value) (bool, error) {
	if v.tag != TagSet && v.tag != TagOrderedSet {
		return false, noAttribute("discard", *v)
	}
	k, err := x.Key()
	if err != nil {
		return false, err
	}
	switch v.tag {
	case TagSet:
		s := v.UncheckedSet()
		_, ok := s.items[k]
		delete(s.items, k)
		return ok, nil
	default:
		return v.UncheckedOrderedSet().items.Delete(x), nil
	}
}

// Pop removes and returns the last element of a list, or the first element
// of a set in iteration order.
func (v *Value) Pop() (Value, error) {
	const op = "pop"
	switch v.tag {
	case TagList:
		return v.PopAt(-1)
	case TagSet:
		s := v.UncheckedSet()
		for e := range s.All() {
			k, _ := e.Key()
			delete(s.items, k)
			return e, nil
		}
		return Value{}, pyerrors.New(pyerrors.KeyMissing, op, "pop from an empty set")
	case TagOrderedSet:
		e, ok := v.UncheckedOrderedSet().items.PopMin()
		if !ok {
			return Value{}, pyerrors.New(pyerrors.KeyMissing, op, "pop from an empty set")
		}
		return e, nil
	default:
		return Value{}, noAttribute(op, *v)
	}
}

// PopAt removes and returns the list element at index i.
func (v *Value) PopAt(i int) (Value, error) {
	const op = "pop"
	l, err := v.listReceiver(op)
	if err != nil {
		return Value{}, err
	}
	if len(l.items) == 0 {
		return Value{}, pyerrors.New(pyerrors.IndexOutOfRange, op, "pop from empty list")
	}
	idx, ok := pyslice.Index(i, len(l.items))
	if !ok {
		return Value{}, indexError(op, i, len(l.items))
	}
	e := l.items[idx]
	l.items = slices.Delete(l.items, idx, idx+1)
	return e, nil
}

// PopKey removes key from a dict and returns its value.
func (v *Value) PopKey(key Value) (Value, error) {
	const op = "pop"
	if v.tag != TagDict && v.tag != TagOrderedDict {
		return Value{}, noAttribute(op, *v)
	}
	k, err := dictKey(op, key)
	if err != nil {
		return Value{}, err
	}
	var (
		out Value
		ok  bool
	)
	switch v.tag {
	case TagDict:
		d := v.UncheckedDict()
		out, ok = d.items[k]
		delete(d.items, k)
	default:
		out, ok = v.UncheckedOrderedDict().items.Delete(k)
	}
	if !ok {
		return Value{}, missingKey(op, k)
	}
	return out, nil
}

// Clear removes every element of a container.
func (v *Value) Clear() error {
	switch v.tag {
	case TagList:
		l := v.UncheckedList()
		clear(l.items)
		l.items = l.items[:0]
	case TagSet:
		clear(v.UncheckedSet().items)
	case TagDict:
		clear(v.UncheckedDict().items)
	case TagOrderedSet:
		v.UncheckedOrderedSet().items.Clear()
	case TagOrderedDict:
		v.UncheckedOrderedDict().items.Clear()
	default:
		return noAttribute("clear", *v)
	}
	return nil
}

// IndexOf returns the position of the first element equal to x in a list, or
// of the substring x in a string. An absent x fails with InvalidArgument.
func (v Value) IndexOf(x Value) (int, error) {
	const op = "index_of"
	switch v.tag {
	case TagList:
		if i := slices.IndexFunc(v.UncheckedList().items, func(e Value) bool { return Equal(e, x) }); i >= 0 {
			return i, nil
		}
		return 0, pyerrors.Newf(pyerrors.InvalidArgument, op, "%s is not in list", x.Repr())
	case TagStr:
		sub, err := x.AsStr()
		if err != nil {
			return 0, err
		}
		if i := pystr.Find(v.UncheckedStr(), sub); i >= 0 {
			return i, nil
		}
		return 0, pyerrors.New(pyerrors.InvalidArgument, op, "substring not found")
	default:
		return 0, pyerrors.Newf(pyerrors.AttributeUnsupported, op, "'%s' object has no attribute 'index'", v.TypeName())
	}
}

// Count returns how many list elements equal x, or how many non-overlapping
// times the substring x occurs in a string.
func (v Value) Count(x Value) (int, error) {
	const op = "count"
	switch v.tag {
	case TagList:
		n := 0
		for _, e := range v.UncheckedList().items {
			if Equal(e, x) {
				n++
			}
		}
		return n, nil
	case TagStr:
		sub, err := x.AsStr()
		if err != nil {
			return 0, err
		}
		return pystr.Count(v.UncheckedStr(), sub), nil
	default:
		return 0, noAttribute(op, v)
	}
}

// Reverse reverses a list in place.
func (v *Value) Reverse() error {
	l, err := v.listReceiver("reverse")
	if err != nil {
		return err
	}
	slices.Reverse(l.items)
	return nil
}

// Sort sorts a list in place, stably, by Compare. The list is unchanged when
// two elements are not orderable.
func (v *Value) Sort() error {
	l, err := v.listReceiver("sort")
	if err != nil {
		return err
	}
	sorted, err := sortValues(l.items)
	if err != nil {
		return err
	}
	l.items = sorted
	return nil
}

// sortValues returns a stably sorted copy of items, or the first ordering error.
func sortValues(items []Value) ([]Value, error) {
	out := slices.Clone(items)
	var first error
	slices.SortStableFunc(out, func(a, b Value) int {
		c, err := Compare(a, b)
		if err != nil {
			if first == nil {
				first = err
			}
			return totalCompare(a, b)
		}
		return c
	})
	if first != nil {
		return nil, first
	}
	return out, nil
}

package pythonic

import (
	"iter"
	"math"
	"slices"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/ordered"
	"github.com/jacoelho/pythonic/internal/pyslice"
	"github.com/jacoelho/pythonic/internal/pystr"
	"github.com/jacoelho/pythonic/internal/xiter"
)

// List is a growable sequence of values.
type List struct {
	items []Value
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// All yields the elements in order.
func (l *List) All() iter.Seq[Value] { return xiter.Slice(l.items) }

func (l *List) clone() *List {
	out := &List{items: make([]Value, len(l.items))}
	for i, v := range l.items {
		out.items[i] = v.Clone()
	}
	return out
}

// Set is an unordered collection of distinct hashable values, keyed by their
// canonical key.
type Set struct {
	items map[string]Value
}

// Len returns the number of elements.
func (s *Set) Len() int { return len(s.items) }

// All yields the elements in canonical key order.
func (s *Set) All() iter.Seq[Value] { return xiter.ValuesBySortedKeys(s.items) }

func (s *Set) clone() *Set {
	out := &Set{items: make(map[string]Value, len(s.items))}
	for k, v := range s.items {
		out.items[k] = v.Clone()
	}
	return out
}

func (s *Set) add(v Value) error {
	k, err := v.Key()
	if err != nil {
		return err
	}
	if _, ok := s.items[k]; !ok {
		s.items[k] = v.Clone()
	}
	return nil
}

func (s *Set) has(v Value) bool {
	k, err := v.Key()
	if err != nil {
		return false
	}
	_, ok := s.items[k]
	return ok
}

// Dict maps strings to values. Iteration follows sorted key order.
type Dict struct {
	items map[string]Value
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.items) }

// All yields entries in sorted key order.
func (d *Dict) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for k := range xiter.SortedKeys(d.items) {
			if !yield(k, d.items[k]) {
				return
			}
		}
	}
}

func (d *Dict) clone() *Dict {
	out := &Dict{items: make(map[string]Value, len(d.items))}
	for k, v := range d.items {
		out.items[k] = v.Clone()
	}
	return out
}

// OrderedSet keeps distinct values sorted by value.
type OrderedSet struct {
	items *ordered.SortedSet[Value]
}

func newOrderedSet() *OrderedSet {
	return &OrderedSet{items: ordered.NewSortedSet(totalCompare)}
}

// Len returns the number of elements.
func (s *OrderedSet) Len() int { return s.items.Len() }

// All yields the elements in ascending order.
func (s *OrderedSet) All() iter.Seq[Value] { return s.items.All() }

func (s *OrderedSet) slice() []Value { return slices.Collect(s.items.All()) }

func (s *OrderedSet) clone() *OrderedSet {
	return &OrderedSet{items: s.items.Clone(Value.Clone)}
}

func (s *OrderedSet) add(v Value) error {
	if _, err := v.Key(); err != nil {
		return err
	}
	if !s.items.Contains(v) {
		s.items.Add(v.Clone())
	}
	return nil
}

// OrderedDict maps strings to values and remembers insertion order.
type OrderedDict struct {
	items *ordered.Map[Value]
}

func newOrderedDict(n int) *OrderedDict {
	return &OrderedDict{items: ordered.NewMap[Value](n)}
}

// Len returns the number of entries.
func (d *OrderedDict) Len() int { return d.items.Len() }

// All yields entries in insertion order.
func (d *OrderedDict) All() iter.Seq2[string, Value] { return d.items.All() }

func (d *OrderedDict) clone() *OrderedDict {
	return &OrderedDict{items: d.items.Clone(Value.Clone)}
}

// NewList returns a list holding copies of items.
func NewList(items ...Value) Value {
	l := &List{items: make([]Value, len(items))}
	for i, v := range items {
		l.items[i] = v.Clone()
	}
	return Value{tag: TagList, ref: l}
}

// NewSet returns a set of the distinct items. Unhashable items fail with
// TypeMismatch.
func NewSet(items ...Value) (Value, error) {
	s := &Set{items: make(map[string]Value, len(items))}
	for _, v := range items {
		if err := s.add(v); err != nil {
			return Value{}, err
		}
	}
	return Value{tag: TagSet, ref: s}, nil
}

// NewOrderedSet returns a sorted set of the distinct items.
func NewOrderedSet(items ...Value) (Value, error) {
	s := newOrderedSet()
	for _, v := range items {
		if err := s.add(v); err != nil {
			return Value{}, err
		}
	}
	return Value{tag: TagOrderedSet, ref: s}, nil
}

// NewDict returns an empty dict.
func NewDict() Value {
	return Value{tag: TagDict, ref: &Dict{items: make(map[string]Value)}}
}

// DictFrom returns a dict holding copies of the entries of m.
func DictFrom(m map[string]Value) Value {
	d := &Dict{items: make(map[string]Value, len(m))}
	for k, v := range m {
		d.items[k] = v.Clone()
	}
	return Value{tag: TagDict, ref: d}
}

// NewOrderedDict returns an empty ordered dict.
func NewOrderedDict() Value {
	return Value{tag: TagOrderedDict, ref: newOrderedDict(0)}
}

// Len returns the length of a string (in code points), container or graph
// (in nodes). Scalars fail with TypeMismatch.
func (v Value) Len() (int, error) {
	switch v.tag {
	case TagStr:
		return pystr.Len(v.UncheckedStr()), nil
	case TagList:
		return v.UncheckedList().Len(), nil
	case TagSet:
		return v.UncheckedSet().Len(), nil
	case TagDict:
		return v.UncheckedDict().Len(), nil
	case TagOrderedSet:
		return v.UncheckedOrderedSet().Len(), nil
	case TagOrderedDict:
		return v.UncheckedOrderedDict().Len(), nil
	case TagGraph:
		return v.UncheckedGraph().NodeCount(), nil
	default:
		return 0, pyerrors.Newf(pyerrors.TypeMismatch, "len", "object of type '%s' has no len()", v.TypeName())
	}
}

// toIndex converts an integral value to an int. Values beyond the int range
// saturate so that they normalise out of range.
func toIndex(op string, i Value) (int, error) {
	if !i.tag.IsIntegral() {
		return 0, pyerrors.Newf(pyerrors.TypeMismatch, op, "indices must be integers, not %s", i.TypeName())
	}
	if i.tag.IsUnsigned() {
		if i.bits > math.MaxInt {
			return math.MaxInt, nil
		}
		return int(i.bits), nil
	}
	return int(int64(i.bits)), nil
}

func indexError(op string, i, n int) error {
	return pyerrors.Newf(pyerrors.IndexOutOfRange, op, "index %d out of range for length %d", i, n)
}

func dictKey(op string, k Value) (string, error) {
	if k.tag != TagStr {
		return "", pyerrors.Newf(pyerrors.TypeMismatch, op, "dict keys must be str, not %s", k.TypeName())
	}
	return k.UncheckedStr(), nil
}

func missingKey(op, k string) error {
	return pyerrors.Newf(pyerrors.KeyMissing, op, "key %q not found", k)
}

// Index returns v[i]. Lists, strings and ordered sets take integer indices,
// negative ones counting from the end; dicts take string keys.
// The result shares any container payload with the element.
func (v Value) Index(i Value) (Value, error) {
	const op = "index"
	switch v.tag {
	case TagList, TagStr, TagOrderedSet:
		n, _ := v.Len()
		raw, err := toIndex(op, i)
		if err != nil {
			return Value{}, err
		}
		idx, ok := pyslice.Index(raw, n)
		if !ok {
			return Value{}, indexError(op, raw, n)
		}
		switch v.tag {
		case TagList:
			return v.UncheckedList().items[idx], nil
		case TagStr:
			return Str(string(pystr.Runes(v.UncheckedStr())[idx])), nil
		default:
			return v.UncheckedOrderedSet().items.At(idx), nil
		}
	case TagDict, TagOrderedDict:
		return v.Get(i)
	default:
		return Value{}, pyerrors.Newf(pyerrors.TypeMismatch, op, "'%s' object is not subscriptable", v.TypeName())
	}
}

// Get returns the value stored under key in a dict. A missing key fails with
// KeyMissing. Like Index, the result shares its payload with the stored entry.
func (v Value) Get(key Value) (Value, error) {
	const op = "get"
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
		out, ok = v.UncheckedDict().items[k]
	case TagOrderedDict:
		out, ok = v.UncheckedOrderedDict().items.Get(k)
	default:
		return Value{}, mismatch(op, "dict", v)
	}
	if !ok {
		return Value{}, missingKey(op, k)
	}
	return out, nil
}

// GetOr returns the value stored under key, or def when key is absent.
func (v Value) GetOr(key, def Value) (Value, error) {
	out, err := v.Get(key)
	if pyerrors.IsKind(err, pyerrors.KeyMissing) {
		return def, nil
	}
	return out, err
}

// SetIndex stores a copy of x at v[i]. Lists take integer indices; dicts take
// string keys and create missing entries.
func (v *Value) SetIndex(i, x Value) error {
	const op = "set_index"
	switch v.tag {
	case TagList:
		l := v.UncheckedList()
		raw, err := toIndex(op, i)
		if err != nil {
			return err
		}
		idx, ok := pyslice.Index(raw, len(l.items))
		if !ok {
			return indexError(op, raw, len(l.items))
		}
		l.items[idx] = x.Clone()
		return nil
	case TagDict, TagOrderedDict:
		return v.SetItem(i, x)
	default:
		return pyerrors.Newf(pyerrors.TypeMismatch, op, "'%s' object does not support item assignment", v.TypeName())
	}
}

// SetItem stores a copy of x under key in a dict, creating the entry when
// missing. Lists delegate to SetIndex.
func (v *Value) SetItem(key, x Value) error {
	const op = "set_item"
	if v.tag == TagList {
		return v.SetIndex(key, x)
	}
	k, err := dictKey(op, key)
	if err != nil {
		return err
	}
	switch v.tag {
	case TagDict:
		v.UncheckedDict().items[k] = x.Clone()
	case TagOrderedDict:
		v.UncheckedOrderedDict().items.Set(k, x.Clone())
	default:
		return mismatch(op, "dict", *v)
	}
	return nil
}

// Setdefault returns the value under key, first storing def when absent.
func (v *Value) Setdefault(key, def Value) (Value, error) {
	out, err := v.Get(key)
	if !pyerrors.IsKind(err, pyerrors.KeyMissing) {
		return out, err
	}
	if err := v.SetItem(key, def); err != nil {
		return Value{}, err
	}
	return v.Get(key)
}

func sliceBound(op string, b Value) (pyslice.Bound, error) {
	if b.tag == TagNone {
		return pyslice.Bound{}, nil
	}
	n, err := toIndex(op, b)
	if err != nil {
		return pyslice.Bound{}, err
	}
	return pyslice.At(n), nil
}

// Slice returns v[start:stop:step] for a list or string. None bounds take
// their defaults; a zero step fails with InvalidArgument.
func (v Value) Slice(start, stop, step Value) (Value, error) {
	const op = "slice"
	if v.tag != TagList && v.tag != TagStr {
		return Value{}, pyerrors.Newf(pyerrors.TypeMismatch, op, "'%s' object is not sliceable", v.TypeName())
	}
	var bounds [3]pyslice.Bound
	for i, b := range [3]Value{start, stop, step} {
		bound, err := sliceBound(op, b)
		if err != nil {
			return Value{}, err
		}
		bounds[i] = bound
	}
	n, _ := v.Len()
	r, err := pyslice.Indices(n, bounds[0], bounds[1], bounds[2])
	if err != nil {
		return Value{}, pyerrors.New(pyerrors.InvalidArgument, op, err.Error())
	}
	if v.tag == TagStr {
		runes := pystr.Runes(v.UncheckedStr())
		out := make([]rune, 0, r.Len)
		for i := range r.All() {
			out = append(out, runes[i])
		}
		return Str(string(out)), nil
	}
	items := v.UncheckedList().items
	out := &List{items: make([]Value, 0, r.Len)}
	for i := range r.All() {
		out.items = append(out.items, items[i].Clone())
	}
	return Value{tag: TagList, ref: out}, nil
}

// Contains reports x in v: element membership for lists and sets, key
// membership for dicts, substring search for strings.
func (v Value) Contains(x Value) (bool, error) {
	const op = "contains"
	switch v.tag {
	case TagStr:
		if x.tag != TagStr {
			return false, pyerrors.Newf(pyerrors.TypeMismatch, op, "'in <string>' requires string as left operand, not %s", x.TypeName())
		}
		return pystr.Find(v.UncheckedStr(), x.UncheckedStr()) >= 0, nil
	case TagList:
		return slices.ContainsFunc(v.UncheckedList().items, func(e Value) bool { return Equal(e, x) }), nil
	case TagSet:
		if _, err := x.Key(); err != nil {
			return false, err
		}
		return v.UncheckedSet().has(x), nil
	case TagOrderedSet:
		if _, err := x.Key(); err != nil {
			return false, err
		}
		return v.UncheckedOrderedSet().items.Contains(x), nil
	case TagDict:
		if x.tag != TagStr {
			return false, nil
		}
		_, ok := v.UncheckedDict().items[x.UncheckedStr()]
		return ok, nil
	case TagOrderedDict:
		return x.tag == TagStr && v.UncheckedOrderedDict().items.Has(x.UncheckedStr()), nil
	default:
		return false, pyerrors.Newf(pyerrors.TypeMismatch, op, "argument of type '%s' is not iterable", v.TypeName())
	}
}

// Keys returns the keys of a dict as a list of strings.
func (v Value) Keys() (Value, error) {
	return v.dictView("keys", func(k string, _ Value) Value { return Str(k) })
}

// Values returns the values of a dict as a list.
func (v Value) Values() (Value, error) {
	return v.dictView("values", func(_ string, e Value) Value { return e.Clone() })
}

// Items returns the entries of a dict as a list of [key, value] lists.
func (v Value) Items() (Value, error) {
	return v.dictView("items", func(k string, e Value) Value {
		return Value{tag: TagList, ref: &List{items: []Value{Str(k), e.Clone()}}}
	})
}

func (v Value) dictView(op string, f func(string, Value) Value) (Value, error) {
	entries, ok := dictAll(v)
	if !ok {
		return Value{}, mismatch(op, "dict", v)
	}
	out := &List{}
	for k, e := range entries {
		out.items = append(out.items, f(k, e))
	}
	return Value{tag: TagList, ref: out}, nil
}

// dictAll yields the entries of either dict kind in iteration order.
func dictAll(v Value) (iter.Seq2[string, Value], bool) {
	switch v.tag {
	case TagDict:
		return v.UncheckedDict().All(), true
	case TagOrderedDict:
		return v.UncheckedOrderedDict().All(), true
	default:
		return nil, false
	}
}

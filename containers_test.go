package pythonic_test

import (
	"testing"

	"github.com/jacoelho/pythonic"
	pyerrors "github.com/jacoelho/pythonic/errors"
)

func TestIndex(t *testing.T) {
	list := mustLiteral(t, "[10, 'a', [1, 2]]")
	tests := []struct {
		name string
		v    pythonic.Value
		i    pythonic.Value
		want pythonic.Value
	}{
		{"first", list, pythonic.I32(0), pythonic.I32(10)},
		{"negative", list, pythonic.I64(-1), mustLiteral(t, "[1, 2]")},
		{"unsigned index", list, pythonic.U32(1), pythonic.Str("a")},
		{"bool index", list, pythonic.True, pythonic.Str("a")},
		{"string code point", pythonic.Str("héllo"), pythonic.I32(1), pythonic.Str("é")},
		{"string negative", pythonic.Str("héllo"), pythonic.I32(-1), pythonic.Str("o")},
		{"dict key", mustLiteral(t, "{'k': 3}"), pythonic.Str("k"), pythonic.I32(3)},
		{"ordered set", mustOrderedSet(t, pythonic.I32(3), pythonic.I32(1), pythonic.I32(2)), pythonic.I32(0), pythonic.I32(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Index(tt.i)
			if err != nil {
				t.Fatalf("Index(%s) error = %v", tt.i.Repr(), err)
			}
			if !sameValue(got, tt.want) {
				t.Fatalf("Index(%s) = %s, want %s", tt.i.Repr(), got.Repr(), tt.want.Repr())
			}
		})
	}
}

func mustOrderedSet(t *testing.T, items ...pythonic.Value) pythonic.Value {
	t.Helper()
	s, err := pythonic.NewOrderedSet(items...)
	if err != nil {
		t.Fatalf("NewOrderedSet() error = %v", err)
	}
	return s
}

func TestIndexErrors(t *testing.T) {
	tests := []struct {
		name string
		v    pythonic.Value
		i    pythonic.Value
		want pyerrors.Kind
	}{
		{"past end", mustLiteral(t, "[1, 2]"), pythonic.I32(2), pyerrors.IndexOutOfRange},
		{"before start", mustLiteral(t, "[1, 2]"), pythonic.I32(-3), pyerrors.IndexOutOfRange},
		{"huge unsigned", mustLiteral(t, "[1]"), pythonic.U64(1 << 63), pyerrors.IndexOutOfRange},
		{"float index", mustLiteral(t, "[1]"), pythonic.F64(0), pyerrors.TypeMismatch},
		{"missing key", mustLiteral(t, "{'a': 1}"), pythonic.Str("b"), pyerrors.KeyMissing},
		{"non str key", mustLiteral(t, "{'a': 1}"), pythonic.I32(1), pyerrors.TypeMismatch},
		{"scalar", pythonic.I32(5), pythonic.I32(0), pyerrors.TypeMismatch},
		{"set", mustLiteral(t, "{1}"), pythonic.I32(0), pyerrors.TypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.v.Index(tt.i)
			if !pyerrors.IsKind(err, tt.want) {
				t.Fatalf("Index(%s) error = %v, want %s", tt.i.Repr(), err, tt.want)
			}
		})
	}
}

func TestSetIndexAndItems(t *testing.T) {
	list := mustLiteral(t, "[1, 2, 3]")
	if err := list.SetIndex(pythonic.I32(-1), pythonic.Str("z")); err != nil {
		t.Fatalf("SetIndex() error = %v", err)
	}
	if want := mustLiteral(t, "[1, 2, 'z']"); !pythonic.Equal(list, want) {
		t.Fatalf("list = %s, want %s", list.Repr(), want.Repr())
	}
	if err := list.SetIndex(pythonic.I32(3), pythonic.None()); !pyerrors.IsKind(err, pyerrors.IndexOutOfRange) {
		t.Fatalf("SetIndex(3) error = %v, want index out of range", err)
	}

	d := pythonic.NewDict()
	if err := d.SetItem(pythonic.Str("a"), pythonic.I32(1)); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if err := d.SetIndex(pythonic.Str("a"), pythonic.I32(2)); err != nil {
		t.Fatalf("SetIndex() error = %v", err)
	}
	if got, _ := d.Get(pythonic.Str("a")); !sameValue(got, pythonic.I32(2)) {
		t.Fatalf("Get(a) = %s, want 2", got.Repr())
	}
	if got, _ := d.GetOr(pythonic.Str("b"), pythonic.Str("dflt")); !sameValue(got, pythonic.Str("dflt")) {
		t.Fatalf("GetOr(b) = %s, want 'dflt'", got.Repr())
	}
	got, err := d.Setdefault(pythonic.Str("b"), pythonic.NewList())
	if err != nil {
		t.Fatalf("Setdefault() error = %v", err)
	}
	if !sameValue(got, pythonic.NewList()) {
		t.Fatalf("Setdefault() = %s, want []", got.Repr())
	}
	if n, _ := d.Len(); n != 2 {
		t.Fatalf("Len() = %d, want 2", n)
	}
	if err := d.SetItem(pythonic.I32(1), pythonic.None()); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("SetItem(1) error = %v, want type mismatch", err)
	}
}

func TestInsertionsCopy(t *testing.T) {
	inner := mustLiteral(t, "[1]")
	outer := pythonic.NewList()
	if err := outer.Append(inner); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := inner.Append(pythonic.I32(2)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if want := mustLiteral(t, "[[1]]"); !pythonic.Equal(outer, want) {
		t.Fatalf("outer = %s, want %s", outer.Repr(), want.Repr())
	}

	clone := outer.Clone()
	first, _ := clone.Index(pythonic.I32(0))
	if err := first.Append(pythonic.I32(9)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if want := mustLiteral(t, "[[1]]"); !pythonic.Equal(outer, want) {
		t.Fatalf("Clone() shares payload: outer = %s", outer.Repr())
	}
	if want := mustLiteral(t, "[[1, 9]]"); !pythonic.Equal(clone, want) {
		t.Fatalf("Index() did not share payload: clone = %s", clone.Repr())
	}
}

func TestSlice(t *testing.T) {
	none := pythonic.None()
	list := mustLiteral(t, "[0, 1, 2, 3, 4]")
	tests := []struct {
		name              string
		v                 pythonic.Value
		start, stop, step pythonic.Value
		want              pythonic.Value
	}{
		{"copy", list, none, none, none, list},
		{"reverse", list, none, none, pythonic.I32(-1), mustLiteral(t, "[4, 3, 2, 1, 0]")},
		{"range", list, pythonic.I32(1), pythonic.I32(3), none, mustLiteral(t, "[1, 2]")},
		{"negative start", list, pythonic.I32(-2), none, none, mustLiteral(t, "[3, 4]")},
		{"step two", list, none, none, pythonic.I32(2), mustLiteral(t, "[0, 2, 4]")},
		{"out of range clamps", list, pythonic.I32(-100), pythonic.I32(100), none, list},
		{"empty", list, pythonic.I32(3), pythonic.I32(1), none, pythonic.NewList()},
		{"string reverse", pythonic.Str("héllo"), none, none, pythonic.I32(-1), pythonic.Str("olléh")},
		{"string range", pythonic.Str("abcdef"), pythonic.I32(1), pythonic.I32(-1), pythonic.I32(2), pythonic.Str("bd")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Slice(tt.start, tt.stop, tt.step)
			if err != nil {
				t.Fatalf("Slice() error = %v", err)
			}
			if !sameValue(got, tt.want) {
				t.Fatalf("Slice() = %s, want %s", got.Repr(), tt.want.Repr())
			}
		})
	}

	if _, err := list.Slice(none, none, pythonic.I32(0)); !pyerrors.IsKind(err, pyerrors.InvalidArgument) {
		t.Fatalf("Slice(step=0) error = %v, want invalid argument", err)
	}
	if _, err := mustLiteral(t, "{1}").Slice(none, none, none); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("Slice(set) error = %v, want type mismatch", err)
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name string
		v, x pythonic.Value
		want bool
	}{
		{"list numeric", mustLiteral(t, "[1, 2]"), pythonic.F64(2), true},
		{"list missing", mustLiteral(t, "[1, 2]"), pythonic.I32(3), false},
		{"set", mustLiteral(t, "{1, 'a'}"), pythonic.Str("a"), true},
		{"set cross width", mustLiteral(t, "{1}"), pythonic.U64(1), true},
		{"dict key", mustLiteral(t, "{'a': 1}"), pythonic.Str("a"), true},
		{"dict value is not key", mustLiteral(t, "{'a': 1}"), pythonic.I32(1), false},
		{"substring", pythonic.Str("hello"), pythonic.Str("ell"), true},
		{"empty substring", pythonic.Str("hello"), pythonic.Str(""), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Contains(tt.x)
			if err != nil {
				t.Fatalf("Contains(%s) error = %v", tt.x.Repr(), err)
			}
			if got != tt.want {
				t.Fatalf("Contains(%s) = %v, want %v", tt.x.Repr(), got, tt.want)
			}
		})
	}
	if _, err := pythonic.Str("a").Contains(pythonic.I32(1)); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("Contains(1) on str error = %v, want type mismatch", err)
	}
	if _, err := pythonic.I32(1).Contains(pythonic.I32(1)); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("Contains on int error = %v, want type mismatch", err)
	}
}

func TestListMutation(t *testing.T) {
	l := mustLiteral(t, "[3, 1, 2]")
	if err := l.Insert(0, pythonic.I32(0)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := l.Insert(100, pythonic.I32(9)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := l.Insert(-1, pythonic.I32(8)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if want := mustLiteral(t, "[0, 3, 1, 2, 8, 9]"); !pythonic.Equal(l, want) {
		t.Fatalf("after Insert = %s, want %s", l.Repr(), want.Repr())
	}
	if err := l.Remove(pythonic.I32(8)); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := l.Remove(pythonic.I32(8)); !pyerrors.IsKind(err, pyerrors.InvalidArgument) {
		t.Fatalf("Remove(absent) error = %v, want invalid argument", err)
	}
	last, err := l.Pop()
	if err != nil || !sameValue(last, pythonic.I32(9)) {
		t.Fatalf("Pop() = %s, %v, want 9", last.Repr(), err)
	}
	first, err := l.PopAt(0)
	if err != nil || !sameValue(first, pythonic.I32(0)) {
		t.Fatalf("PopAt(0) = %s, %v, want 0", first.Repr(), err)
	}
	if err := l.Sort(); err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	if want := mustLiteral(t, "[1, 2, 3]"); !pythonic.Equal(l, want) {
		t.Fatalf("after Sort = %s, want %s", l.Repr(), want.Repr())
	}
	if err := l.Extend(l); err != nil {
		t.Fatalf("Extend(self) error = %v", err)
	}
	if n, _ := l.Len(); n != 6 {
		t.Fatalf("Len() after self Extend = %d, want 6", n)
	}
	if i, err := l.IndexOf(pythonic.I32(3)); err != nil || i != 2 {
		t.Fatalf("IndexOf(3) = %d, %v, want 2", i, err)
	}
	if c, _ := l.Count(pythonic.F64(1)); c != 2 {
		t.Fatalf("Count(1.0) = %d, want 2", c)
	}
	if err := l.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := l.Pop(); !pyerrors.IsKind(err, pyerrors.IndexOutOfRange) {
		t.Fatalf("Pop(empty) error = %v, want index out of range", err)
	}
}

func TestSortUnorderable(t *testing.T) {
	l := mustLiteral(t, "[2, None, 1]")
	if err := l.Sort(); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("Sort() error = %v, want type mismatch", err)
	}
	if want := mustLiteral(t, "[2, None, 1]"); !pythonic.Equal(l, want) {
		t.Fatalf("failed Sort changed list to %s", l.Repr())
	}
}

func TestSortIsStable(t *testing.T) {
	l := pythonic.NewList(pythonic.F64(1), pythonic.I32(0), pythonic.I32(1), pythonic.True)
	if err := l.Sort(); err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	wantTags := []pythonic.Tag{pythonic.TagI32, pythonic.TagF64, pythonic.TagI32, pythonic.TagBool}
	for i, tag := range wantTags {
		e, _ := l.Index(pythonic.I32(int32(i)))
		if e.Tag() != tag {
			t.Fatalf("element %d tag = %s, want %s", i, e.Tag(), tag)
		}
	}
}

func TestMutatorsRejectScalarReceiver(t *testing.T) {
	x := pythonic.I32(1)
	tests := []struct {
		name string
		call func(v *pythonic.Value) error
	}{
		{"append", func(v *pythonic.Value) error { return v.Append(x) }},
		{"add", func(v *pythonic.Value) error { return v.Add(x) }},
		{"insert", func(v *pythonic.Value) error { return v.Insert(0, x) }},
		{"extend", func(v *pythonic.Value) error { return v.Extend(pythonic.NewList()) }},
		{"update", func(v *pythonic.Value) error { return v.Update(pythonic.NewList()) }},
		{"remove", func(v *pythonic.Value) error { return v.Remove(x) }},
		{"discard", func(v *pythonic.Value) error { return v.Discard(x) }},
		{"pop", func(v *pythonic.Value) error { _, err := v.Pop(); return err }},
		{"pop index", func(v *pythonic.Value) error { _, err := v.PopAt(0); return err }},
		{"pop key", func(v *pythonic.Value) error { _, err := v.PopKey(x); return err }},
		{"clear", func(v *pythonic.Value) error { return v.Clear() }},
		{"reverse", func(v *pythonic.Value) error { return v.Reverse() }},
		{"sort", func(v *pythonic.Value) error { return v.Sort() }},
		{"count", func(v *pythonic.Value) error { _, err := v.Count(x); return err }},
		{"index of", func(v *pythonic.Value) error { _, err := v.IndexOf(x); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := pythonic.I32(1)
			if err := tt.call(&v); !pyerrors.IsKind(err, pyerrors.AttributeUnsupported) {
				t.Fatalf("%s on int error = %v, want attribute unsupported", tt.name, err)
			}
			if !sameValue(v, pythonic.I32(1)) {
				t.Fatalf("receiver changed to %s", v.Repr())
			}
		})
	}
}

func TestReadsAliasElements(t *testing.T) {
	l := mustLiteral(t, "[[1]]")
	elem, err := l.Index(pythonic.I32(0))
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if err := elem.Append(pythonic.I32(2)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if want := mustLiteral(t, "[[1, 2]]"); !pythonic.Equal(l, want) {
		t.Fatalf("Index() result did not alias: l = %s, want %s", l.Repr(), want.Repr())
	}

	d := mustLiteral(t, "{'k': [1]}")
	entry, err := d.Get(pythonic.Str("k"))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	own := entry.Clone()
	if err := own.Append(pythonic.I32(3)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if want := mustLiteral(t, "{'k': [1]}"); !pythonic.Equal(d, want) {
		t.Fatalf("Clone() of Get() result aliased: d = %s", d.Repr())
	}
	if err := entry.Append(pythonic.I32(4)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if want := mustLiteral(t, "{'k': [1, 4]}"); !pythonic.Equal(d, want) {
		t.Fatalf("Get() result did not alias: d = %s, want %s", d.Repr(), want.Repr())
	}

	other := pythonic.NewList()
	if err := other.Append(entry); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := entry.Append(pythonic.I32(5)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if want := mustLiteral(t, "[[1, 4]]"); !pythonic.Equal(other, want) {
		t.Fatalf("stored element aliased its source: other = %s", other.Repr())
	}
}

func TestDictMutation(t *testing.T) {
	d := mustLiteral(t, "{'a': 1, 'b': 2}")
	if err := d.Update(mustLiteral(t, "{'b': 3, 'c': 4}")); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if want := mustLiteral(t, "{'a': 1, 'b': 3, 'c': 4}"); !pythonic.Equal(d, want) {
		t.Fatalf("after Update = %s, want %s", d.Repr(), want.Repr())
	}
	v, err := d.PopKey(pythonic.Str("a"))
	if err != nil || !sameValue(v, pythonic.I32(1)) {
		t.Fatalf("PopKey(a) = %s, %v, want 1", v.Repr(), err)
	}
	if _, err := d.PopKey(pythonic.Str("a")); !pyerrors.IsKind(err, pyerrors.KeyMissing) {
		t.Fatalf("PopKey(a) again error = %v, want key missing", err)
	}
	keys, err := d.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if want := mustLiteral(t, "['b', 'c']"); !pythonic.Equal(keys, want) {
		t.Fatalf("Keys() = %s, want %s", keys.Repr(), want.Repr())
	}
	items, _ := d.Items()
	if want := mustLiteral(t, "[['b', 3], ['c', 4]]"); !pythonic.Equal(items, want) {
		t.Fatalf("Items() = %s, want %s", items.Repr(), want.Repr())
	}
}

func TestOrderedDictKeepsInsertionOrder(t *testing.T) {
	d := pythonic.NewOrderedDict()
	for _, k := range []string{"z", "a", "m"} {
		if err := d.SetItem(pythonic.Str(k), pythonic.Str(k)); err != nil {
			t.Fatalf("SetItem() error = %v", err)
		}
	}
	if err := d.SetItem(pythonic.Str("z"), pythonic.I32(0)); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	keys, _ := d.Keys()
	if want := mustLiteral(t, "['z', 'a', 'm']"); !pythonic.Equal(keys, want) {
		t.Fatalf("Keys() = %s, want %s", keys.Repr(), want.Repr())
	}
	if _, err := d.PopKey(pythonic.Str("a")); err != nil {
		t.Fatalf("PopKey() error = %v", err)
	}
	values, _ := d.Values()
	if want := mustLiteral(t, "[0, 'm']"); !pythonic.Equal(values, want) {
		t.Fatalf("Values() = %s, want %s", values.Repr(), want.Repr())
	}
}

func TestSetMutation(t *testing.T) {
	s := mustSet(t)
	for _, x := range []pythonic.Value{pythonic.I32(1), pythonic.F64(1), pythonic.Str("a")} {
		if err := s.Add(x); err != nil {
			t.Fatalf("Add(%s) error = %v", x.Repr(), err)
		}
	}
	if n, _ := s.Len(); n != 2 {
		t.Fatalf("Len() = %d, want 2", n)
	}
	if err := s.Add(pythonic.NewGraph(0)); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("Add(graph) error = %v, want type mismatch", err)
	}
	if err := s.Discard(pythonic.Str("missing")); err != nil {
		t.Fatalf("Discard(missing) error = %v", err)
	}
	if err := s.Remove(pythonic.Str("missing")); !pyerrors.IsKind(err, pyerrors.KeyMissing) {
		t.Fatalf("Remove(missing) error = %v, want key missing", err)
	}
	if err := s.Remove(pythonic.I32(1)); err != nil {
		t.Fatalf("Remove(1) error = %v", err)
	}
	e, err := s.Pop()
	if err != nil || !sameValue(e, pythonic.Str("a")) {
		t.Fatalf("Pop() = %s, %v, want 'a'", e.Repr(), err)
	}
	if _, err := s.Pop(); !pyerrors.IsKind(err, pyerrors.KeyMissing) {
		t.Fatalf("Pop(empty) error = %v, want key missing", err)
	}
}

func TestOrderedSetIsSorted(t *testing.T) {
	s := mustOrderedSet(t, pythonic.Str("b"), pythonic.I32(3), pythonic.Str("a"), pythonic.I32(1))
	var got []string
	for e := range s.All() {
		got = append(got, e.Repr())
	}
	want := []string{"1", "3", "'a'", "'b'"}
	if len(got) != len(want) {
		t.Fatalf("All() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("All() = %v, want %v", got, want)
		}
	}
	first, err := s.Pop()
	if err != nil || !sameValue(first, pythonic.I32(1)) {
		t.Fatalf("Pop() = %s, %v, want 1", first.Repr(), err)
	}
}

func TestLen(t *testing.T) {
	tests := []struct {
		v    pythonic.Value
		want int
	}{
		{pythonic.Str("héllo"), 5},
		{mustLiteral(t, "[1, [2, 3]]"), 2},
		{mustLiteral(t, "{1, 1.0, 2}"), 2},
		{mustLiteral(t, "{'a': 1}"), 1},
		{pythonic.NewGraph(4), 4},
	}
	for _, tt := range tests {
		t.Run(tt.v.Repr(), func(t *testing.T) {
			got, err := tt.v.Len()
			if err != nil || got != tt.want {
				t.Fatalf("Len() = %d, %v, want %d", got, err, tt.want)
			}
		})
	}
	if _, err := pythonic.I32(1).Len(); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("Len(int) error = %v, want type mismatch", err)
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    pythonic.Value
		want bool
	}{
		{pythonic.None(), false},
		{pythonic.False, false},
		{pythonic.I32(0), false},
		{pythonic.F64(0), false},
		{pythonic.Str(""), false},
		{pythonic.NewList(), false},
		{pythonic.NewDict(), false},
		{pythonic.I64(-1), true},
		{pythonic.Str("0"), true},
		{mustLiteral(t, "[0]"), true},
	}
	for _, tt := range tests {
		t.Run(tt.v.Repr(), func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Fatalf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

package pythonic

import (
	"slices"

	pyerrors "github.com/jacoelho/pythonic/errors"
)

// collect copies the elements of an iterable value into a new slice.
func collect(v Value) ([]Value, error) {
	seq, err := v.Iter()
	if err != nil {
		return nil, err
	}
	var out []Value
	for e := range seq {
		out = append(out, e.Clone())
	}
	return out, nil
}

func listOf(items []Value) Value {
	return Value{tag: TagList, ref: &List{items: items}}
}

// Len returns len(v) as an integer value.
func Len(v Value) (Value, error) {
	n, err := v.Len()
	if err != nil {
		return Value{}, err
	}
	return Int(int64(n)), nil
}

// Min returns the smallest element of an iterable value.
func Min(v Value) (Value, error) {
	items, err := collect(v)
	if err != nil {
		return Value{}, err
	}
	return extreme("min", items, -1)
}

// Max returns the largest element of an iterable value.
func Max(v Value) (Value, error) {
	items, err := collect(v)
	if err != nil {
		return Value{}, err
	}
	return extreme("max", items, 1)
}

// MinOf returns the smallest argument.
func MinOf(args ...Value) (Value, error) { return extreme("min", args, -1) }

// MaxOf returns the largest argument.
func MaxOf(args ...Value) (Value, error) { return extreme("max", args, 1) }

// extreme returns the first item x for which no later item compares as want
// against it.
func extreme(op string, items []Value, want int) (Value, error) {
	if len(items) == 0 {
		return Value{}, pyerrors.Newf(pyerrors.InvalidArgument, op, "%s() arg is an empty sequence", op)
	}
	best := items[0]
	for _, x := range items[1:] {
		c, err := Compare(x, best)
		if err != nil {
			return Value{}, err
		}
		if c == want {
			best = x
		}
	}
	return best.Clone(), nil
}

// Sum adds the elements of an iterable value to start.
func Sum(v, start Value) (Value, error) {
	items, err := collect(v)
	if err != nil {
		return Value{}, err
	}
	return FastSum(items, start)
}

// Sorted returns a new sorted list of the elements of v. Equal elements keep
// their relative order in both directions.
func Sorted(v Value, reverse bool) (Value, error) {
	items, err := collect(v)
	if err != nil {
		return Value{}, err
	}
	sort := sortValues
	if reverse {
		sort = sortDescending
	}
	out, err := sort(items)
	if err != nil {
		return Value{}, err
	}
	return listOf(out), nil
}

func sortDescending(items []Value) ([]Value, error) {
	out := slices.Clone(items)
	var first error
	slices.SortStableFunc(out, func(a, b Value) int {
		c, err := Compare(b, a)
		if err != nil && first == nil {
			first = err
		}
		return c
	})
	if first != nil {
		return nil, first
	}
	return out, nil
}

// Reversed returns a new list of the elements of v in reverse order.
func Reversed(v Value) (Value, error) {
	items, err := collect(v)
	if err != nil {
		return Value{}, err
	}
	slices.Reverse(items)
	return listOf(items), nil
}

// AllTrue reports whether every element of v is truthy.
func AllTrue(v Value) (bool, error) {
	seq, err := v.Iter()
	if err != nil {
		return false, err
	}
	for e := range seq {
		if !e.Truthy() {
			return false, nil
		}
	}
	return true, nil
}

// AnyTrue reports whether some element of v is truthy.
func AnyTrue(v Value) (bool, error) {
	seq, err := v.Iter()
	if err != nil {
		return false, err
	}
	for e := range seq {
		if e.Truthy() {
			return true, nil
		}
	}
	return false, nil
}

// Map returns the list of fn applied to each element of v.
func Map(fn func(Value) (Value, error), v Value) (Value, error) {
	seq, err := v.Iter()
	if err != nil {
		return Value{}, err
	}
	var out []Value
	for e := range seq {
		r, err := fn(e)
		if err != nil {
			return Value{}, err
		}
		out = append(out, r.Clone())
	}
	return listOf(out), nil
}

// Filter returns the list of elements of v for which keep holds. A nil keep
// selects truthy elements.
func Filter(keep func(Value) bool, v Value) (Value, error) {
	if keep == nil {
		keep = Value.Truthy
	}
	seq, err := v.Iter()
	if err != nil {
		return Value{}, err
	}
	var out []Value
	for e := range seq {
		if keep(e) {
			out = append(out, e.Clone())
		}
	}
	return listOf(out), nil
}

// Reduce folds fn over the elements of v. Without an initial value the first
// element seeds the fold and an empty v fails with InvalidArgument.
func Reduce(fn func(acc, x Value) (Value, error), v Value, initial ...Value) (Value, error) {
	items, err := collect(v)
	if err != nil {
		return Value{}, err
	}
	var acc Value
	switch {
	case len(initial) > 0:
		acc = initial[0].Clone()
	case len(items) == 0:
		return Value{}, pyerrors.New(pyerrors.InvalidArgument, "reduce", "reduce() of empty iterable with no initial value")
	default:
		acc, items = items[0], items[1:]
	}
	for _, x := range items {
		if acc, err = fn(acc, x); err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

// Range returns the list of integers from start up to stop by step.
func Range(start, stop, step int64) (Value, error) {
	if step == 0 {
		return Value{}, pyerrors.New(pyerrors.InvalidArgument, "range", "range() arg 3 must not be zero")
	}
	var out []Value
	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		out = append(out, Int(i))
		if next := i + step; (step > 0) != (next > i) {
			break
		}
	}
	return listOf(out), nil
}

// Enumerate returns the list of [index, element] pairs of v, counting from start.
func Enumerate(v Value, start int) (Value, error) {
	items, err := collect(v)
	if err != nil {
		return Value{}, err
	}
	out := make([]Value, len(items))
	for i, e := range items {
		out[i] = listOf([]Value{Int(int64(start + i)), e})
	}
	return listOf(out), nil
}

// Zip returns the list of tuples, as lists, of corresponding elements. The
// result is as long as the shortest argument.
func Zip(vs ...Value) (Value, error) {
	cols := make([][]Value, len(vs))
	n := -1
	for i, v := range vs {
		items, err := collect(v)
		if err != nil {
			return Value{}, err
		}
		cols[i] = items
		if n < 0 || len(items) < n {
			n = len(items)
		}
	}
	out := make([]Value, max(n, 0))
	for i := range out {
		row := make([]Value, len(cols))
		for j := range cols {
			row[j] = cols[j][i]
		}
		out[i] = listOf(row)
	}
	return listOf(out), nil
}

// Flatten returns a list of the elements of v with nested lists expanded.
func Flatten(v Value) (Value, error) {
	l, err := v.AsList()
	if err != nil {
		return Value{}, err
	}
	var out []Value
	var walk func(items []Value)
	walk = func(items []Value) {
		for _, e := range items {
			if e.tag == TagList {
				walk(e.UncheckedList().items)
				continue
			}
			out = append(out, e.Clone())
		}
	}
	walk(l.items)
	return listOf(out), nil
}

// Unique returns the distinct elements of v in first-seen order.
func Unique(v Value) (Value, error) {
	seq, err := v.Iter()
	if err != nil {
		return Value{}, err
	}
	seen := make(map[string]struct{})
	var out []Value
	for e := range seq {
		k, err := e.Key()
		if err != nil {
			return Value{}, err
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e.Clone())
	}
	return listOf(out), nil
}

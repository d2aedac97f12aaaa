package pyslice

import (
	"errors"
	"iter"
)

// ErrZeroStep reports a slice step of zero.
var ErrZeroStep = errors.New("slice step cannot be zero")

// Bound is an optional slice argument. A zero Bound means None.
type Bound struct {
	N   int
	Set bool
}

// At returns a present bound.
func At(n int) Bound {
	return Bound{N: n, Set: true}
}

// Range is a normalised slice: Len positions starting at Start, Step apart.
type Range struct {
	Start int
	Step  int
	Len   int
}

// Index normalises a possibly negative index. ok is false when the result
// falls outside [0, n).
func Index(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// Indices resolves start, stop and step against length n the way Python's
// slice.indices does.
func Indices(n int, start, stop, step Bound) (Range, error) {
	st := 1
	if step.Set {
		if step.N == 0 {
			return Range{}, ErrZeroStep
		}
		st = step.N
	}

	var lo, hi int
	if st > 0 {
		lo = clamp(start, n, 0, 0, n)
		hi = clamp(stop, n, n, 0, n)
	} else {
		lo = clamp(start, n, n-1, -1, n-1)
		hi = clamp(stop, n, -1, -1, n-1)
	}

	count := 0
	switch {
	case st > 0 && lo < hi:
		count = (hi-lo-1)/st + 1
	case st < 0 && lo > hi:
		count = (lo-hi-1)/-st + 1
	}
	return Range{Start: lo, Step: st, Len: count}, nil
}

func clamp(b Bound, n, def, lower, upper int) int {
	if !b.Set {
		return def
	}
	i := b.N
	if i < 0 {
		i += n
		if i < lower {
			i = lower
		}
		return i
	}
	if i > upper {
		i = upper
	}
	return i
}

// All yields the positions selected by r.
func (r Range) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		pos := r.Start
		for range r.Len {
			if !yield(pos) {
				return
			}
			pos += r.Step
		}
	}
}

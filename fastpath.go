package pythonic

import (
	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/promote"
	"github.com/jacoelho/pythonic/internal/tags"
)

// noCopy makes go vet's copylocks check flag copies of a CachedOp.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// CachedOp memoises the kernel for the last operand tag pair seen at one call
// site. A CachedOp is not safe for concurrent use.
type CachedOp struct {
	noCopy noCopy

	op     promote.Op
	left   Tag
	right  Tag
	kernel Kernel
}

func newCachedOp(op promote.Op) *CachedOp {
	return &CachedOp{op: op, left: tags.Invalid, right: tags.Invalid}
}

// NewCachedAdd returns a cache for a + b.
func NewCachedAdd() *CachedOp { return newCachedOp(promote.Add) }

// NewCachedSub returns a cache for a - b.
func NewCachedSub() *CachedOp { return newCachedOp(promote.Sub) }

// NewCachedMul returns a cache for a * b.
func NewCachedMul() *CachedOp { return newCachedOp(promote.Mul) }

// NewCachedDiv returns a cache for a / b.
func NewCachedDiv() *CachedOp { return newCachedOp(promote.Div) }

// NewCachedMod returns a cache for a % b.
func NewCachedMod() *CachedOp { return newCachedOp(promote.Mod) }

// Invoke computes the operation. When the operand tags match the cached pair
// the memoised kernel runs directly; otherwise the matrix is consulted and a
// found kernel replaces the cached one. Pairs without a kernel take the
// promotion path and leave the cache untouched.
func (c *CachedOp) Invoke(a, b Value) (Value, error) {
	if c.kernel != nil && a.tag == c.left && b.tag == c.right {
		return c.kernel(a, b)
	}
	k := lookup(c.op, a.tag, b.tag)
	if k == nil {
		return generic(c.op, a, b, Promote)
	}
	c.left, c.right, c.kernel = a.tag, b.tag, k
	return k(a, b)
}

// HasFastPath reports whether a kernel is cached for tags a and b.
func (c *CachedOp) HasFastPath(a, b Tag) bool {
	return c.kernel != nil && a == c.left && b == c.right
}

// Reset empties the cache.
func (c *CachedOp) Reset() {
	c.left, c.right, c.kernel = tags.Invalid, tags.Invalid, nil
}

// Accumulator folds values into a running total through a CachedOp.
type Accumulator struct {
	op    *CachedOp
	total Value
}

// NewAccumulator returns an accumulator starting at initial and combining
// with op.
func NewAccumulator(op *CachedOp, initial Value) *Accumulator {
	return &Accumulator{op: op, total: initial.Clone()}
}

// Push combines x into the total. The total is unchanged on error.
func (a *Accumulator) Push(x Value) error {
	r, err := a.op.Invoke(a.total, x)
	if err != nil {
		return err
	}
	a.total = r
	return nil
}

// Value returns the running total.
func (a *Accumulator) Value() Value { return a.total }

// FastSum adds items to initial through a cached kernel.
func FastSum(items []Value, initial Value) (Value, error) {
	return fold(NewCachedAdd(), items, initial)
}

// FastProduct multiplies items starting at initial through a cached kernel.
func FastProduct(items []Value, initial Value) (Value, error) {
	return fold(NewCachedMul(), items, initial)
}

// FastDot returns the sum of the pairwise products of a and b.
func FastDot(a, b []Value) (Value, error) {
	if len(a) != len(b) {
		return Value{}, pyerrors.Newf(pyerrors.InvalidArgument, "dot", "length mismatch: %d and %d", len(a), len(b))
	}
	mul, add := NewCachedMul(), NewCachedAdd()
	total := I32(0)
	for i := range a {
		p, err := mul.Invoke(a[i], b[i])
		if err != nil {
			return Value{}, err
		}
		if total, err = add.Invoke(total, p); err != nil {
			return Value{}, err
		}
	}
	return total, nil
}

func fold(op *CachedOp, items []Value, initial Value) (Value, error) {
	acc := NewAccumulator(op, initial)
	for _, x := range items {
		if err := acc.Push(x); err != nil {
			return Value{}, err
		}
	}
	return acc.Value(), nil
}

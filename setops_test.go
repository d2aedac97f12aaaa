package pythonic_test

import (
	"testing"

	"github.com/jacoelho/pythonic"
	pyerrors "github.com/jacoelho/pythonic/errors"
)

func TestSetOperations(t *testing.T) {
	a := mustLiteral(t, "{1, 2, 3}")
	b := mustLiteral(t, "{3.0, 4}")
	tests := []struct {
		name string
		fn   binaryOp
		want pythonic.Value
	}{
		{"union", pythonic.Union, mustLiteral(t, "{1, 2, 3, 4}")},
		{"intersection", pythonic.Intersection, mustLiteral(t, "{3}")},
		{"difference", pythonic.Difference, mustLiteral(t, "{1, 2}")},
		{"symmetric difference", pythonic.SymmetricDifference, mustLiteral(t, "{1, 2, 4}")},
		{"or operator", pythonic.BitOr, mustLiteral(t, "{1, 2, 3, 4}")},
		{"and operator", pythonic.BitAnd, mustLiteral(t, "{3}")},
		{"sub operator", pythonic.Sub, mustLiteral(t, "{1, 2}")},
		{"xor operator", pythonic.BitXor, mustLiteral(t, "{1, 2, 4}")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(a, b)
			if err != nil {
				t.Fatalf("%s error = %v", tt.name, err)
			}
			if !sameValue(got, tt.want) {
				t.Fatalf("%s = %s, want %s", tt.name, got.Repr(), tt.want.Repr())
			}
		})
	}
	if want := mustLiteral(t, "{1, 2, 3}"); !pythonic.Equal(a, want) {
		t.Fatalf("operands modified: %s", a.Repr())
	}
}

func TestSetOperationsKeepLeftTag(t *testing.T) {
	left := mustOrderedSet(t, pythonic.I32(2), pythonic.I32(1))
	got, err := pythonic.Union(left, mustLiteral(t, "{0}"))
	if err != nil {
		t.Fatalf("Union() error = %v", err)
	}
	if got.Tag() != pythonic.TagOrderedSet {
		t.Fatalf("Union() tag = %s, want OrderedSet", got.Tag())
	}
	if got.Repr() != "{0, 1, 2}" {
		t.Fatalf("Union() = %s, want {0, 1, 2}", got.Repr())
	}
}

func TestIsSubset(t *testing.T) {
	ok, err := pythonic.IsSubset(mustLiteral(t, "{1}"), mustLiteral(t, "{1.0, 2}"))
	if err != nil || !ok {
		t.Fatalf("IsSubset() = %v, %v, want true", ok, err)
	}
	ok, _ = pythonic.IsSubset(mustLiteral(t, "{1, 5}"), mustLiteral(t, "{1, 2}"))
	if ok {
		t.Fatalf("IsSubset() = true, want false")
	}
	if _, err := pythonic.IsSubset(mustLiteral(t, "[1]"), mustLiteral(t, "{1}")); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("IsSubset(list) error = %v, want type mismatch", err)
	}
}

func TestSetOperandErrors(t *testing.T) {
	for _, fn := range []binaryOp{pythonic.Union, pythonic.Intersection, pythonic.Difference, pythonic.SymmetricDifference} {
		if _, err := fn(mustLiteral(t, "{1}"), mustLiteral(t, "[1]")); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
			t.Fatalf("set op with list error = %v, want type mismatch", err)
		}
	}
}

func TestDictMerge(t *testing.T) {
	a := mustLiteral(t, "{'a': 1, 'b': 2}")
	b := mustLiteral(t, "{'b': 20, 'c': 3}")
	got, err := pythonic.BitOr(a, b)
	if err != nil {
		t.Fatalf("BitOr() error = %v", err)
	}
	if want := mustLiteral(t, "{'a': 1, 'b': 20, 'c': 3}"); !sameValue(got, want) {
		t.Fatalf("BitOr() = %s, want %s", got.Repr(), want.Repr())
	}
	if n, _ := a.Len(); n != 2 {
		t.Fatalf("left operand modified: %s", a.Repr())
	}
	if _, err := pythonic.BitOr(a, pythonic.NewOrderedDict()); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("BitOr(dict, ordered dict) error = %v, want type mismatch", err)
	}
}

func TestRepeat(t *testing.T) {
	tests := []struct {
		name string
		a, b pythonic.Value
		want pythonic.Value
	}{
		{"str times int", pythonic.Str("ab"), pythonic.I32(3), pythonic.Str("ababab")},
		{"int times str", pythonic.U64(2), pythonic.Str("x"), pythonic.Str("xx")},
		{"list", mustLiteral(t, "[1, [2]]"), pythonic.I32(2), mustLiteral(t, "[1, [2], 1, [2]]")},
		{"zero", pythonic.Str("ab"), pythonic.I32(0), pythonic.Str("")},
		{"negative", mustLiteral(t, "[1]"), pythonic.I64(-4), pythonic.NewList()},
		{"bool", pythonic.Str("ab"), pythonic.True, pythonic.Str("ab")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pythonic.Mul(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Mul() error = %v", err)
			}
			if !sameValue(got, tt.want) {
				t.Fatalf("Mul() = %s, want %s", got.Repr(), tt.want.Repr())
			}
		})
	}
	if _, err := pythonic.Mul(pythonic.Str("ab"), pythonic.I64(1<<40)); !pyerrors.IsKind(err, pyerrors.InvalidArgument) {
		t.Fatalf("Mul(huge repeat) error = %v, want invalid argument", err)
	}
	if _, err := pythonic.Mul(pythonic.Str("ab"), pythonic.F64(2)); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("Mul(str, float) error = %v, want type mismatch", err)
	}
}

func TestRepeatCopiesElements(t *testing.T) {
	got, err := pythonic.Mul(mustLiteral(t, "[[0]]"), pythonic.I32(2))
	if err != nil {
		t.Fatalf("Mul() error = %v", err)
	}
	first, _ := got.Index(pythonic.I32(0))
	if err := first.Append(pythonic.I32(1)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if want := mustLiteral(t, "[[0, 1], [0]]"); !pythonic.Equal(got, want) {
		t.Fatalf("repeated elements share storage: %s", got.Repr())
	}
}

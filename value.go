package pythonic

import (
	"math"
	"math/big"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/num"
)

// Value is a dynamically typed datum. Primitives live inline in bits; strings,
// extended floats and containers live in ref.
//
// Assigning a Value aliases its container payload. Use Clone for an
// independent copy and Take to move ownership out of a variable.
// The zero Value is the integer 0 with tag I32.
type Value struct {
	tag  Tag
	bits uint64
	ref  any
}

// None returns the None value.
func None() Value {
	return Value{tag: TagNone}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	if b {
		return Value{tag: TagBool, bits: 1}
	}
	return Value{tag: TagBool}
}

// True and False are the boolean singletons.
var (
	True  = Bool(true)
	False = Bool(false)
)

// I32 returns a 32-bit signed integer value.
func I32(v int32) Value {
	return Value{tag: TagI32, bits: uint64(int64(v))}
}

// I64 returns a 64-bit signed integer value.
func I64(v int64) Value {
	return Value{tag: TagI64, bits: uint64(v)}
}

// ISize returns a platform signed integer value.
func ISize(v int) Value {
	return Value{tag: TagISize, bits: uint64(int64(v))}
}

// U32 returns a 32-bit unsigned integer value.
func U32(v uint32) Value {
	return Value{tag: TagU32, bits: uint64(v)}
}

// U64 returns a 64-bit unsigned integer value.
func U64(v uint64) Value {
	return Value{tag: TagU64, bits: v}
}

// USize returns a platform unsigned integer value.
func USize(v uint) Value {
	return Value{tag: TagUSize, bits: uint64(v)}
}

// F32 returns a single precision float value.
func F32(v float32) Value {
	return Value{tag: TagF32, bits: math.Float64bits(float64(v))}
}

// F64 returns a double precision float value.
func F64(v float64) Value {
	return Value{tag: TagF64, bits: math.Float64bits(v)}
}

// F80 returns an extended precision float value holding x rounded to a
// 64-bit mantissa. x is copied.
func F80(x *big.Float) Value {
	if x == nil {
		return F64(math.NaN())
	}
	return Value{tag: TagF80, ref: num.Round(x)}
}

// F80FromFloat64 widens f to extended precision. NaN has no extended form and
// stays a double.
func F80FromFloat64(f float64) Value {
	if math.IsNaN(f) {
		return F64(f)
	}
	return Value{tag: TagF80, ref: num.ExtFromFloat64(f)}
}

// Int returns the narrowest signed integer value holding v: I32 when it fits,
// I64 otherwise.
func Int(v int64) Value {
	if num.FitsInt(v, 32) {
		return I32(int32(v))
	}
	return I64(v)
}

// Str returns a string value.
func Str(s string) Value {
	return Value{tag: TagStr, ref: s}
}

// ext wraps an already rounded extended float without copying.
func ext(x *big.Float) Value {
	return Value{tag: TagF80, ref: x}
}

// Tag returns the type discriminator.
func (v Value) Tag() Tag {
	return v.tag
}

// TypeName returns the Python-facing type name, such as "int" or "dict".
func (v Value) TypeName() string {
	return v.tag.Name()
}

// IsNone reports whether v is None.
func (v Value) IsNone() bool { return v.tag == TagNone }

// IsNumeric reports whether v is a bool, integer or float.
func (v Value) IsNumeric() bool { return v.tag.IsNumeric() }

// IsInteger reports whether v carries an integer tag. Bool is not an integer.
func (v Value) IsInteger() bool { return v.tag.IsInteger() }

// IsFloat reports whether v carries a float tag.
func (v Value) IsFloat() bool { return v.tag.IsFloat() }

// IsContainer reports whether v is a list, set, dict or one of their ordered variants.
func (v Value) IsContainer() bool { return v.tag.IsContainer() }

// Unchecked accessors assume the caller has checked the tag.

// UncheckedBool returns the payload of a Bool.
func (v Value) UncheckedBool() bool { return v.bits != 0 }

// UncheckedInt64 returns the payload of a signed integer.
func (v Value) UncheckedInt64() int64 { return int64(v.bits) }

// UncheckedUint64 returns the payload of an unsigned integer.
func (v Value) UncheckedUint64() uint64 { return v.bits }

// UncheckedFloat64 returns the payload of an F32 or F64.
func (v Value) UncheckedFloat64() float64 { return math.Float64frombits(v.bits) }

// UncheckedBigFloat returns the payload of an F80. It must not be modified.
func (v Value) UncheckedBigFloat() *big.Float { return v.ref.(*big.Float) }

// UncheckedStr returns the payload of a Str.
func (v Value) UncheckedStr() string { return v.ref.(string) }

// UncheckedList returns the payload of a List.
func (v Value) UncheckedList() *List { return v.ref.(*List) }

// UncheckedSet returns the payload of a Set.
func (v Value) UncheckedSet() *Set { return v.ref.(*Set) }

// UncheckedDict returns the payload of a Dict.
func (v Value) UncheckedDict() *Dict { return v.ref.(*Dict) }

// UncheckedOrderedSet returns the payload of an OrderedSet.
func (v Value) UncheckedOrderedSet() *OrderedSet { return v.ref.(*OrderedSet) }

// UncheckedOrderedDict returns the payload of an OrderedDict.
func (v Value) UncheckedOrderedDict() *OrderedDict { return v.ref.(*OrderedDict) }

// UncheckedGraph returns the payload of a Graph.
func (v Value) UncheckedGraph() *Graph { return v.ref.(*Graph) }

func mismatch(op string, want string, v Value) error {
	return pyerrors.Newf(pyerrors.TypeMismatch, op, "expected %s, got %s", want, v.TypeName())
}

// AsBool returns the payload of a Bool.
func (v Value) AsBool() (bool, error) {
	if v.tag != TagBool {
		return false, mismatch("as_bool", "bool", v)
	}
	return v.UncheckedBool(), nil
}

// AsInt64 returns the payload of a signed integer tag.
func (v Value) AsInt64() (int64, error) {
	if !v.tag.IsSigned() {
		return 0, mismatch("as_int64", "signed integer", v)
	}
	return v.UncheckedInt64(), nil
}

// AsUint64 returns the payload of an unsigned integer tag.
func (v Value) AsUint64() (uint64, error) {
	if !v.tag.IsUnsigned() {
		return 0, mismatch("as_uint64", "unsigned integer", v)
	}
	return v.UncheckedUint64(), nil
}

// AsFloat64 returns the payload of an F32 or F64.
func (v Value) AsFloat64() (float64, error) {
	if v.tag != TagF32 && v.tag != TagF64 {
		return 0, mismatch("as_float64", "float or double", v)
	}
	return v.UncheckedFloat64(), nil
}

// AsBigFloat returns a copy of the payload of an F80.
func (v Value) AsBigFloat() (*big.Float, error) {
	if v.tag != TagF80 {
		return nil, mismatch("as_big_float", "long double", v)
	}
	return num.Round(v.UncheckedBigFloat()), nil
}

// AsStr returns the payload of a Str.
func (v Value) AsStr() (string, error) {
	if v.tag != TagStr {
		return "", mismatch("as_str", "str", v)
	}
	return v.UncheckedStr(), nil
}

// AsList returns the payload of a List.
func (v Value) AsList() (*List, error) {
	if v.tag != TagList {
		return nil, mismatch("as_list", "list", v)
	}
	return v.UncheckedList(), nil
}

// AsSet returns the payload of a Set.
func (v Value) AsSet() (*Set, error) {
	if v.tag != TagSet {
		return nil, mismatch("as_set", "set", v)
	}
	return v.UncheckedSet(), nil
}

// AsDict returns the payload of a Dict.
func (v Value) AsDict() (*Dict, error) {
	if v.tag != TagDict {
		return nil, mismatch("as_dict", "dict", v)
	}
	return v.UncheckedDict(), nil
}

// AsOrderedSet returns the payload of an OrderedSet.
func (v Value) AsOrderedSet() (*OrderedSet, error) {
	if v.tag != TagOrderedSet {
		return nil, mismatch("as_ordered_set", "ordered_set", v)
	}
	return v.UncheckedOrderedSet(), nil
}

// AsOrderedDict returns the payload of an OrderedDict.
func (v Value) AsOrderedDict() (*OrderedDict, error) {
	if v.tag != TagOrderedDict {
		return nil, mismatch("as_ordered_dict", "ordered_dict", v)
	}
	return v.UncheckedOrderedDict(), nil
}

// AsGraph returns the shared payload of a Graph.
func (v Value) AsGraph() (*Graph, error) {
	if v.tag != TagGraph {
		return nil, mismatch("as_graph", "graph", v)
	}
	return v.UncheckedGraph(), nil
}

// Clone returns a deep copy of v. Graph payloads are shared, not copied.
func (v Value) Clone() Value {
	switch v.tag {
	case TagList:
		return Value{tag: TagList, ref: v.UncheckedList().clone()}
	case TagSet:
		return Value{tag: TagSet, ref: v.UncheckedSet().clone()}
	case TagDict:
		return Value{tag: TagDict, ref: v.UncheckedDict().clone()}
	case TagOrderedSet:
		return Value{tag: TagOrderedSet, ref: v.UncheckedOrderedSet().clone()}
	case TagOrderedDict:
		return Value{tag: TagOrderedDict, ref: v.UncheckedOrderedDict().clone()}
	default:
		return v
	}
}

// Take moves the value out of v and leaves None behind.
func (v *Value) Take() Value {
	out := *v
	*v = None()
	return out
}

// Truthy reports Python truthiness: None, False, zero and empty containers are false.
func (v Value) Truthy() bool {
	switch v.tag {
	case TagNone:
		return false
	case TagBool, TagI32, TagI64, TagISize, TagU32, TagU64, TagUSize:
		return v.bits != 0
	case TagF32, TagF64:
		return v.UncheckedFloat64() != 0
	case TagF80:
		return v.UncheckedBigFloat().Sign() != 0
	case TagStr:
		return v.UncheckedStr() != ""
	case TagGraph:
		return v.UncheckedGraph().NodeCount() > 0
	default:
		n, _ := v.Len()
		return n > 0
	}
}

package tags

// Tag is the one-byte discriminator of a dynamic value.
type Tag uint8

// I32 is zero so that a zero value decodes as the integer 0.
const (
	I32 Tag = iota
	None
	Bool
	I64
	ISize
	U32
	U64
	USize
	F32
	F64
	F80
	Str
	List
	Set
	Dict
	OrderedSet
	OrderedDict
	Graph

	// Count is the number of tags.
	Count = int(Graph) + 1
)

// Invalid is never assigned to a value; it marks an empty cache key.
const Invalid Tag = 0xFF

// Promotion ranks of the numeric tags. Non-numeric tags have rank -1.
const (
	RankBool  = 0
	RankU32   = 1
	RankI32   = 2
	RankU64   = 3
	RankI64   = 4
	RankUSize = 5
	RankISize = 6
	RankF32   = 7
	RankF64   = 8
	RankF80   = 9
)

var names = [Count]string{
	I32:         "int",
	None:        "NoneType",
	Bool:        "bool",
	I64:         "long",
	ISize:       "long long",
	U32:         "unsigned int",
	U64:         "unsigned long",
	USize:       "unsigned long long",
	F32:         "float",
	F64:         "double",
	F80:         "long double",
	Str:         "str",
	List:        "list",
	Set:         "set",
	Dict:        "dict",
	OrderedSet:  "ordered_set",
	OrderedDict: "ordered_dict",
	Graph:       "graph",
}

var labels = [Count]string{
	I32:         "I32",
	None:        "None",
	Bool:        "Bool",
	I64:         "I64",
	ISize:       "ISize",
	U32:         "U32",
	U64:         "U64",
	USize:       "USize",
	F32:         "F32",
	F64:         "F64",
	F80:         "F80",
	Str:         "Str",
	List:        "List",
	Set:         "Set",
	Dict:        "Dict",
	OrderedSet:  "OrderedSet",
	OrderedDict: "OrderedDict",
	Graph:       "Graph",
}

var ranks = [Count]int8{
	I32:         RankI32,
	None:        -1,
	Bool:        RankBool,
	I64:         RankI64,
	ISize:       RankISize,
	U32:         RankU32,
	U64:         RankU64,
	USize:       RankUSize,
	F32:         RankF32,
	F64:         RankF64,
	F80:         RankF80,
	Str:         -1,
	List:        -1,
	Set:         -1,
	Dict:        -1,
	OrderedSet:  -1,
	OrderedDict: -1,
	Graph:       -1,
}

// order is the cross-type ordering used when two non-numeric tags differ.
// All numeric tags share one slot so numbers interleave by value.
var order = [Count]uint8{
	None:        0,
	Bool:        1,
	I32:         1,
	I64:         1,
	ISize:       1,
	U32:         1,
	U64:         1,
	USize:       1,
	F32:         1,
	F64:         1,
	F80:         1,
	Str:         2,
	List:        3,
	Set:         4,
	OrderedSet:  5,
	Dict:        6,
	OrderedDict: 7,
	Graph:       8,
}

var byRank = [...]Tag{Bool, U32, I32, U64, I64, USize, ISize, F32, F64, F80}

// Valid reports whether t is a defined tag.
func (t Tag) Valid() bool {
	return int(t) < Count
}

// Name returns the Python-facing type name.
func (t Tag) Name() string {
	if !t.Valid() {
		return "unknown"
	}
	return names[t]
}

// String returns the tag label.
func (t Tag) String() string {
	if !t.Valid() {
		return "Invalid"
	}
	return labels[t]
}

// Rank returns the promotion rank, or -1 for non-numeric tags.
func (t Tag) Rank() int {
	if !t.Valid() {
		return -1
	}
	return int(ranks[t])
}

// Order returns the cross-type ordering slot.
func (t Tag) Order() int {
	if !t.Valid() {
		return len(order)
	}
	return int(order[t])
}

// FromRank returns the numeric tag with the given rank.
func FromRank(rank int) (Tag, bool) {
	if rank < 0 || rank >= len(byRank) {
		return Invalid, false
	}
	return byRank[rank], true
}

// IsNumeric reports whether t is Bool, an integer, or a float tag.
func (t Tag) IsNumeric() bool {
	return t.Rank() >= 0
}

// IsInteger reports whether t is an integer tag. Bool is not an integer tag.
func (t Tag) IsInteger() bool {
	switch t {
	case I32, I64, ISize, U32, U64, USize:
		return true
	default:
		return false
	}
}

// IsIntegral reports whether t is Bool or an integer tag.
func (t Tag) IsIntegral() bool {
	return t == Bool || t.IsInteger()
}

// IsSigned reports whether t is a signed integer tag.
func (t Tag) IsSigned() bool {
	switch t {
	case I32, I64, ISize:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether t is an unsigned integer tag.
func (t Tag) IsUnsigned() bool {
	switch t {
	case U32, U64, USize:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is a floating tag.
func (t Tag) IsFloat() bool {
	return t == F32 || t == F64 || t == F80
}

// IsHeap reports whether values of t carry a heap payload.
func (t Tag) IsHeap() bool {
	switch t {
	case F80, Str, List, Set, Dict, OrderedSet, OrderedDict, Graph:
		return true
	default:
		return false
	}
}

// IsContainer reports whether t is a collection tag.
func (t Tag) IsContainer() bool {
	switch t {
	case List, Set, Dict, OrderedSet, OrderedDict:
		return true
	default:
		return false
	}
}

// Bits returns the storage width in bits of an integer or float tag.
func (t Tag) Bits() int {
	switch t {
	case Bool:
		return 1
	case I32, U32, F32:
		return 32
	case I64, ISize, U64, USize, F64:
		return 64
	case F80:
		return 80
	default:
		return 0
	}
}

// Signed returns the signed counterpart used for subtraction and negation.
func (t Tag) Signed() Tag {
	switch t {
	case Bool, U32:
		return I32
	case U64:
		return I64
	case USize:
		return ISize
	default:
		return t
	}
}

// Higher returns whichever numeric tag has the greater rank.
func Higher(a, b Tag) Tag {
	if a.Rank() >= b.Rank() {
		return a
	}
	return b
}

package pythonic

import "github.com/jacoelho/pythonic/internal/tags"

// Tag is the one-byte type discriminator of a Value.
type Tag = tags.Tag

// Tags of every Value kind. TagI32 is zero so the zero Value is I32(0).
const (
	TagI32         = tags.I32
	TagNone        = tags.None
	TagBool        = tags.Bool
	TagI64         = tags.I64
	TagISize       = tags.ISize
	TagU32         = tags.U32
	TagU64         = tags.U64
	TagUSize       = tags.USize
	TagF32         = tags.F32
	TagF64         = tags.F64
	TagF80         = tags.F80
	TagStr         = tags.Str
	TagList        = tags.List
	TagSet         = tags.Set
	TagDict        = tags.Dict
	TagOrderedSet  = tags.OrderedSet
	TagOrderedDict = tags.OrderedDict
	TagGraph       = tags.Graph
)

package pythonic

import (
	"unicode/utf8"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/pystr"
)

type method func(v *Value, args []Value) (Value, error)

type methodTable map[string]method

var (
	strMethods  methodTable
	listMethods methodTable
	setMethods  methodTable
	dictMethods methodTable
)

func init() {
	strMethods = methodTable{
		"upper":      strUnary(pystr.Upper),
		"lower":      strUnary(pystr.Lower),
		"capitalize": strUnary(pystr.Capitalize),
		"title":      strUnary(pystr.Title),
		"reverse":    strUnary(pystr.Reverse),
		"strip":      strStrip(pystr.Strip, pystr.StripChars),
		"lstrip":     strStrip(pystr.LStrip, pystr.LStripChars),
		"rstrip":     strStrip(pystr.RStrip, pystr.RStripChars),
		"isdigit":    strPredicate(pystr.IsDigit),
		"isalpha":    strPredicate(pystr.IsAlpha),
		"isalnum":    strPredicate(pystr.IsAlnum),
		"isspace":    strPredicate(pystr.IsSpace),
		"startswith": strTest(pystr.StartsWith),
		"endswith":   strTest(pystr.EndsWith),
		"replace":    strReplace,
		"find":       strFind,
		"index":      indexMethod,
		"count":      countMethod,
		"split":      strSplit,
		"join":       strJoin,
		"center":     strCenter,
		"zfill":      strZFill,
	}
	listMethods = methodTable{
		"append": mutator(1, func(v *Value, a []Value) error { return v.Append(a[0]) }),
		"extend": mutator(1, func(v *Value, a []Value) error { return v.Extend(a[0]) }),
		"remove": mutator(1, func(v *Value, a []Value) error { return v.Remove(a[0]) }),
		"clear":  mutator(0, func(v *Value, _ []Value) error { return v.Clear() }),
		"reverse": mutator(0, func(v *Value, _ []Value) error {
			return v.Reverse()
		}),
		"sort":   mutator(0, func(v *Value, _ []Value) error { return v.Sort() }),
		"insert": listInsert,
		"pop":    listPop,
		"index":  indexMethod,
		"count":  countMethod,
		"copy":   copyMethod,
	}
	setMethods = methodTable{
		"add":                  mutator(1, func(v *Value, a []Value) error { return v.Add(a[0]) }),
		"remove":               mutator(1, func(v *Value, a []Value) error { return v.Remove(a[0]) }),
		"discard":              mutator(1, func(v *Value, a []Value) error { return v.Discard(a[0]) }),
		"update":               mutator(1, func(v *Value, a []Value) error { return v.Update(a[0]) }),
		"clear":                mutator(0, func(v *Value, _ []Value) error { return v.Clear() }),
		"pop":                  setPop,
		"union":                setBinary(Union),
		"intersection":         setBinary(Intersection),
		"difference":           setBinary(Difference),
		"symmetric_difference": setBinary(SymmetricDifference),
		"issubset":             setSubset,
		"copy":                 copyMethod,
	}
	dictMethods = methodTable{
		"get":        dictGet,
		"keys":       viewMethod(Value.Keys),
		"values":     viewMethod(Value.Values),
		"items":      viewMethod(Value.Items),
		"pop":        dictPop,
		"setdefault": dictSetdefault,
		"update":     mutator(1, func(v *Value, a []Value) error { return v.Update(a[0]) }),
		"clear":      mutator(0, func(v *Value, _ []Value) error { return v.Clear() }),
		"copy":       copyMethod,
	}
}

// CallMethod invokes the Python method name on v with args. Mutating methods
// change v in place. Unknown methods fail with AttributeUnsupported.
func (v *Value) CallMethod(name string, args ...Value) (Value, error) {
	var table methodTable
	switch v.tag {
	case TagStr:
		table = strMethods
	case TagList:
		table = listMethods
	case TagSet, TagOrderedSet:
		table = setMethods
	case TagDict, TagOrderedDict:
		table = dictMethods
	}
	m, ok := table[name]
	if !ok {
		return Value{}, pyerrors.Newf(pyerrors.AttributeUnsupported, name,
			"'%s' object has no attribute '%s'", v.TypeName(), name)
	}
	return m(v, args)
}

// HasMethod reports whether CallMethod knows name for v's tag.
func (v Value) HasMethod(name string) bool {
	switch v.tag {
	case TagStr:
		_, ok := strMethods[name]
		return ok
	case TagList:
		_, ok := listMethods[name]
		return ok
	case TagSet, TagOrderedSet:
		_, ok := setMethods[name]
		return ok
	case TagDict, TagOrderedDict:
		_, ok := dictMethods[name]
		return ok
	default:
		return false
	}
}

func arity(name string, args []Value, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return pyerrors.Newf(pyerrors.InvalidArgument, name, "takes %d arguments, got %d", lo, len(args))
		}
		return pyerrors.Newf(pyerrors.InvalidArgument, name, "takes %d to %d arguments, got %d", lo, hi, len(args))
	}
	return nil
}

func intArg(name string, a Value) (int, error) {
	if !a.tag.IsIntegral() {
		return 0, pyerrors.Newf(pyerrors.TypeMismatch, name, "expected an integer argument, got %s", a.TypeName())
	}
	return toIndex(name, a)
}

func strArg(name string, a Value) (string, error) {
	if a.tag != TagStr {
		return "", pyerrors.Newf(pyerrors.TypeMismatch, name, "expected a str argument, got %s", a.TypeName())
	}
	return a.UncheckedStr(), nil
}

func mutator(n int, f func(v *Value, args []Value) error) method {
	return func(v *Value, args []Value) (Value, error) {
		if err := arity("method", args, n, n); err != nil {
			return Value{}, err
		}
		if err := f(v, args); err != nil {
			return Value{}, err
		}
		return None(), nil
	}
}

func strUnary(f func(string) string) method {
	return func(v *Value, args []Value) (Value, error) {
		if err := arity("method", args, 0, 0); err != nil {
			return Value{}, err
		}
		return Str(f(v.UncheckedStr())), nil
	}
}

func strPredicate(f func(string) bool) method {
	return func(v *Value, args []Value) (Value, error) {
		if err := arity("method", args, 0, 0); err != nil {
			return Value{}, err
		}
		return Bool(f(v.UncheckedStr())), nil
	}
}

func strTest(f func(s, arg string) bool) method {
	return func(v *Value, args []Value) (Value, error) {
		if err := arity("method", args, 1, 1); err != nil {
			return Value{}, err
		}
		arg, err := strArg("method", args[0])
		if err != nil {
			return Value{}, err
		}
		return Bool(f(v.UncheckedStr(), arg)), nil
	}
}

func strStrip(space func(string) string, chars func(s, chars string) string) method {
	return func(v *Value, args []Value) (Value, error) {
		if err := arity("strip", args, 0, 1); err != nil {
			return Value{}, err
		}
		if len(args) == 0 || args[0].tag == TagNone {
			return Str(space(v.UncheckedStr())), nil
		}
		set, err := strArg("strip", args[0])
		if err != nil {
			return Value{}, err
		}
		return Str(chars(v.UncheckedStr(), set)), nil
	}
}

func strReplace(v *Value, args []Value) (Value, error) {
	if err := arity("replace", args, 2, 2); err != nil {
		return Value{}, err
	}
	old, err := strArg("replace", args[0])
	if err != nil {
		return Value{}, err
	}
	repl, err := strArg("replace", args[1])
	if err != nil {
		return Value{}, err
	}
	return Str(pystr.Replace(v.UncheckedStr(), old, repl)), nil
}

func strFind(v *Value, args []Value) (Value, error) {
	if err := arity("find", args, 1, 1); err != nil {
		return Value{}, err
	}
	sub, err := strArg("find", args[0])
	if err != nil {
		return Value{}, err
	}
	return Int(int64(pystr.Find(v.UncheckedStr(), sub))), nil
}

func strSplit(v *Value, args []Value) (Value, error) {
	if err := arity("split", args, 0, 1); err != nil {
		return Value{}, err
	}
	var parts []string
	if len(args) == 0 || args[0].tag == TagNone {
		parts = pystr.SplitWhitespace(v.UncheckedStr())
	} else {
		sep, err := strArg("split", args[0])
		if err != nil {
			return Value{}, err
		}
		parts, err = pystr.Split(v.UncheckedStr(), sep)
		if err != nil {
			return Value{}, pyerrors.New(pyerrors.InvalidArgument, "split", err.Error())
		}
	}
	out := &List{items: make([]Value, len(parts))}
	for i, p := range parts {
		out.items[i] = Str(p)
	}
	return Value{tag: TagList, ref: out}, nil
}

func strJoin(v *Value, args []Value) (Value, error) {
	if err := arity("join", args, 1, 1); err != nil {
		return Value{}, err
	}
	seq, err := args[0].Iter()
	if err != nil {
		return Value{}, err
	}
	var parts []string
	for e := range seq {
		s, err := strArg("join", e)
		if err != nil {
			return Value{}, err
		}
		parts = append(parts, s)
	}
	return Str(pystr.Join(v.UncheckedStr(), parts)), nil
}

func strCenter(v *Value, args []Value) (Value, error) {
	if err := arity("center", args, 1, 2); err != nil {
		return Value{}, err
	}
	width, err := intArg("center", args[0])
	if err != nil {
		return Value{}, err
	}
	fill := ' '
	if len(args) == 2 {
		f, err := strArg("center", args[1])
		if err != nil {
			return Value{}, err
		}
		if utf8.RuneCountInString(f) != 1 {
			return Value{}, pyerrors.New(pyerrors.InvalidArgument, "center", "the fill character must be exactly one character long")
		}
		fill, _ = utf8.DecodeRuneInString(f)
	}
	return Str(pystr.Center(v.UncheckedStr(), width, fill)), nil
}

func strZFill(v *Value, args []Value) (Value, error) {
	if err := arity("zfill", args, 1, 1); err != nil {
		return Value{}, err
	}
	width, err := intArg("zfill", args[0])
	if err != nil {
		return Value{}, err
	}
	return Str(pystr.ZFill(v.UncheckedStr(), width)), nil
}

func indexMethod(v *Value, args []Value) (Value, error) {
	if err := arity("index", args, 1, 1); err != nil {
		return Value{}, err
	}
	i, err := v.IndexOf(args[0])
	if err != nil {
		return Value{}, err
	}
	return Int(int64(i)), nil
}

func countMethod(v *Value, args []Value) (Value, error) {
	if err := arity("count", args, 1, 1); err != nil {
		return Value{}, err
	}
	n, err := v.Count(args[0])
	if err != nil {
		return Value{}, err
	}
	return Int(int64(n)), nil
}

func copyMethod(v *Value, args []Value) (Value, error) {
	if err := arity("copy", args, 0, 0); err != nil {
		return Value{}, err
	}
	return v.Clone(), nil
}

func listInsert(v *Value, args []Value) (Value, error) {
	if err := arity("insert", args, 2, 2); err != nil {
		return Value{}, err
	}
	i, err := intArg("insert", args[0])
	if err != nil {
		return Value{}, err
	}
	return None(), v.Insert(i, args[1])
}

func listPop(v *Value, args []Value) (Value, error) {
	if err := arity("pop", args, 0, 1); err != nil {
		return Value{}, err
	}
	if len(args) == 0 {
		return v.Pop()
	}
	i, err := intArg("pop", args[0])
	if err != nil {
		return Value{}, err
	}
	return v.PopAt(i)
}

func setPop(v *Value, args []Value) (Value, error) {
	if err := arity("pop", args, 0, 0); err != nil {
		return Value{}, err
	}
	return v.Pop()
}

func setBinary(f func(a, b Value) (Value, error)) method {
	return func(v *Value, args []Value) (Value, error) {
		if err := arity("method", args, 1, 1); err != nil {
			return Value{}, err
		}
		return f(*v, args[0])
	}
}

func setSubset(v *Value, args []Value) (Value, error) {
	if err := arity("issubset", args, 1, 1); err != nil {
		return Value{}, err
	}
	ok, err := IsSubset(*v, args[0])
	if err != nil {
		return Value{}, err
	}
	return Bool(ok), nil
}

func dictGet(v *Value, args []Value) (Value, error) {
	if err := arity("get", args, 1, 2); err != nil {
		return Value{}, err
	}
	def := None()
	if len(args) == 2 {
		def = args[1]
	}
	return v.GetOr(args[0], def)
}

func viewMethod(f func(Value) (Value, error)) method {
	return func(v *Value, args []Value) (Value, error) {
		if err := arity("method", args, 0, 0); err != nil {
			return Value{}, err
		}
		return f(*v)
	}
}

func dictPop(v *Value, args []Value) (Value, error) {
	if err := arity("pop", args, 1, 2); err != nil {
		return Value{}, err
	}
	out, err := v.PopKey(args[0])
	if len(args) == 2 && pyerrors.IsKind(err, pyerrors.KeyMissing) {
		return args[1], nil
	}
	return out, err
}

func dictSetdefault(v *Value, args []Value) (Value, error) {
	if err := arity("setdefault", args, 1, 2); err != nil {
		return Value{}, err
	}
	def := None()
	if len(args) == 2 {
		def = args[1]
	}
	return v.Setdefault(args[0], def)
}

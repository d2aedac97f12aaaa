package main

import (
	"math"
	"slices"

	"github.com/jacoelho/pythonic"
	pyerrors "github.com/jacoelho/pythonic/errors"
)

type builtin func(args []pythonic.Value) (pythonic.Value, error)

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"len":       unary("len", pythonic.Len),
		"min":       extreme("min", pythonic.Min, pythonic.MinOf),
		"max":       extreme("max", pythonic.Max, pythonic.MaxOf),
		"sum":       sum,
		"sorted":    sorted,
		"reversed":  unary("reversed", pythonic.Reversed),
		"all":       predicate("all", pythonic.AllTrue),
		"any":       predicate("any", pythonic.AnyTrue),
		"range":     rangeOf,
		"enumerate": enumerate,
		"zip":       func(args []pythonic.Value) (pythonic.Value, error) { return pythonic.Zip(args...) },
		"flatten":   unary("flatten", pythonic.Flatten),
		"unique":    unary("unique", pythonic.Unique),
		"abs":       unary("abs", pythonic.Abs),
		"int":       unary("int", pythonic.ToInt),
		"long":      unary("long", pythonic.ToLong),
		"float":     unary("float", pythonic.ToDouble),
		"str":       unary("str", infallible(pythonic.ToString)),
		"bool":      unary("bool", infallible(pythonic.ToBool)),
		"repr":      unary("repr", infallible(func(v pythonic.Value) pythonic.Value { return pythonic.Str(v.Repr()) })),
		"list": collect("list", func(items ...pythonic.Value) (pythonic.Value, error) {
			return pythonic.NewList(items...), nil
		}),
		"set":  collect("set", pythonic.NewSet),
		"json": unary("json", toJSON),
		"parse_json": unary("parse_json", func(v pythonic.Value) (pythonic.Value, error) {
			s, err := v.AsStr()
			if err != nil {
				return pythonic.Value{}, err
			}
			return pythonic.FromJSON([]byte(s))
		}),
		"parse_yaml": unary("parse_yaml", func(v pythonic.Value) (pythonic.Value, error) {
			s, err := v.AsStr()
			if err != nil {
				return pythonic.Value{}, err
			}
			return pythonic.FromYAML([]byte(s))
		}),
		"graph":         newGraph,
		"add_edge":      addEdge,
		"shortest_path": shortestPath,
	}
}

func arity(name string, args []pythonic.Value, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return pyerrors.Newf(pyerrors.InvalidArgument, name, "expected %d arguments, got %d", lo, len(args))
		}
		return pyerrors.Newf(pyerrors.InvalidArgument, name, "expected %d to %d arguments, got %d", lo, hi, len(args))
	}
	return nil
}

func unary(name string, fn func(pythonic.Value) (pythonic.Value, error)) builtin {
	return func(args []pythonic.Value) (pythonic.Value, error) {
		if err := arity(name, args, 1, 1); err != nil {
			return pythonic.Value{}, err
		}
		return fn(args[0])
	}
}

func infallible(fn func(pythonic.Value) pythonic.Value) func(pythonic.Value) (pythonic.Value, error) {
	return func(v pythonic.Value) (pythonic.Value, error) { return fn(v), nil }
}

func predicate(name string, fn func(pythonic.Value) (bool, error)) builtin {
	return unary(name, func(v pythonic.Value) (pythonic.Value, error) {
		ok, err := fn(v)
		return pythonic.Bool(ok), err
	})
}

func extreme(name string, ofIterable func(pythonic.Value) (pythonic.Value, error), ofArgs func(...pythonic.Value) (pythonic.Value, error)) builtin {
	return func(args []pythonic.Value) (pythonic.Value, error) {
		switch len(args) {
		case 0:
			return pythonic.Value{}, arity(name, args, 1, math.MaxInt)
		case 1:
			return ofIterable(args[0])
		default:
			return ofArgs(args...)
		}
	}
}

func collect(name string, build func(...pythonic.Value) (pythonic.Value, error)) builtin {
	return func(args []pythonic.Value) (pythonic.Value, error) {
		if err := arity(name, args, 0, 1); err != nil {
			return pythonic.Value{}, err
		}
		if len(args) == 0 {
			return build()
		}
		seq, err := args[0].Iter()
		if err != nil {
			return pythonic.Value{}, err
		}
		return build(slices.Collect(seq)...)
	}
}

func integer(name string, v pythonic.Value) (int64, error) {
	if !v.IsInteger() && v.Tag() != pythonic.TagBool {
		return 0, pyerrors.Newf(pyerrors.TypeMismatch, name, "'%s' object cannot be interpreted as an integer", v.TypeName())
	}
	n, err := pythonic.ToLong(v)
	if err != nil {
		return 0, err
	}
	return n.AsInt64()
}

func sum(args []pythonic.Value) (pythonic.Value, error) {
	if err := arity("sum", args, 1, 2); err != nil {
		return pythonic.Value{}, err
	}
	start := pythonic.I32(0)
	if len(args) == 2 {
		start = args[1]
	}
	return pythonic.Sum(args[0], start)
}

func sorted(args []pythonic.Value) (pythonic.Value, error) {
	if err := arity("sorted", args, 1, 2); err != nil {
		return pythonic.Value{}, err
	}
	reverse := len(args) == 2 && args[1].Truthy()
	return pythonic.Sorted(args[0], reverse)
}

func rangeOf(args []pythonic.Value) (pythonic.Value, error) {
	if err := arity("range", args, 1, 3); err != nil {
		return pythonic.Value{}, err
	}
	bounds := []int64{0, 0, 1}
	for i, a := range args {
		n, err := integer("range", a)
		if err != nil {
			return pythonic.Value{}, err
		}
		bounds[i] = n
	}
	if len(args) == 1 {
		bounds[0], bounds[1] = 0, bounds[0]
	}
	return pythonic.Range(bounds[0], bounds[1], bounds[2])
}

func enumerate(args []pythonic.Value) (pythonic.Value, error) {
	if err := arity("enumerate", args, 1, 2); err != nil {
		return pythonic.Value{}, err
	}
	var start int64
	if len(args) == 2 {
		n, err := integer("enumerate", args[1])
		if err != nil {
			return pythonic.Value{}, err
		}
		start = n
	}
	return pythonic.Enumerate(args[0], int(start))
}

func toJSON(v pythonic.Value) (pythonic.Value, error) {
	b, err := v.MarshalJSON()
	if err != nil {
		return pythonic.Value{}, err
	}
	return pythonic.Str(string(b)), nil
}

func newGraph(args []pythonic.Value) (pythonic.Value, error) {
	if err := arity("graph", args, 0, 1); err != nil {
		return pythonic.Value{}, err
	}
	var n int64
	if len(args) == 1 {
		var err error
		if n, err = integer("graph", args[0]); err != nil {
			return pythonic.Value{}, err
		}
	}
	return pythonic.NewGraph(int(n)), nil
}

// addEdge implements add_edge(g, u, v, weight=1, directed=False).
func addEdge(args []pythonic.Value) (pythonic.Value, error) {
	if err := arity("add_edge", args, 3, 5); err != nil {
		return pythonic.Value{}, err
	}
	g, err := args[0].AsGraph()
	if err != nil {
		return pythonic.Value{}, err
	}
	u, err := integer("add_edge", args[1])
	if err != nil {
		return pythonic.Value{}, err
	}
	v, err := integer("add_edge", args[2])
	if err != nil {
		return pythonic.Value{}, err
	}
	w := 1.0
	if len(args) >= 4 {
		f, err := pythonic.ToDouble(args[3])
		if err != nil {
			return pythonic.Value{}, err
		}
		if w, err = f.AsFloat64(); err != nil {
			return pythonic.Value{}, err
		}
	}
	directed := len(args) == 5 && args[4].Truthy()
	return pythonic.None(), g.AddEdge(int(u), int(v), w, math.NaN(), directed)
}

// shortestPath returns {'nodes': [...], 'dist': d} for a route between two nodes.
func shortestPath(args []pythonic.Value) (pythonic.Value, error) {
	if err := arity("shortest_path", args, 3, 3); err != nil {
		return pythonic.Value{}, err
	}
	g, err := args[0].AsGraph()
	if err != nil {
		return pythonic.Value{}, err
	}
	src, err := integer("shortest_path", args[1])
	if err != nil {
		return pythonic.Value{}, err
	}
	dst, err := integer("shortest_path", args[2])
	if err != nil {
		return pythonic.Value{}, err
	}
	p, err := g.ShortestPath(int(src), int(dst))
	if err != nil {
		return pythonic.Value{}, err
	}
	nodes := make([]pythonic.Value, len(p.Nodes))
	for i, n := range p.Nodes {
		nodes[i] = pythonic.I64(int64(n))
	}
	out := pythonic.NewOrderedDict()
	if err := out.SetItem(pythonic.Str("nodes"), pythonic.NewList(nodes...)); err != nil {
		return pythonic.Value{}, err
	}
	if err := out.SetItem(pythonic.Str("dist"), pythonic.F64(p.Dist)); err != nil {
		return pythonic.Value{}, err
	}
	return out, nil
}

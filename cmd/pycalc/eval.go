package main

import (
	"maps"
	"slices"

	"github.com/jacoelho/pythonic"
	pyerrors "github.com/jacoelho/pythonic/errors"
)

// calc holds the variables of one session.
type calc struct {
	vars map[string]pythonic.Value
}

func newCalc() *calc {
	return &calc{vars: make(map[string]pythonic.Value)}
}

// run executes one line and returns the values of its expression statements
// that are not None.
func (c *calc) run(line string) ([]pythonic.Value, error) {
	stmts, err := parseLine(line)
	if err != nil {
		return nil, err
	}
	var out []pythonic.Value
	for _, s := range stmts {
		v, show, err := s.exec(c)
		if err != nil {
			return out, err
		}
		if show && !v.IsNone() {
			out = append(out, v)
		}
	}
	return out, nil
}

// names returns the defined variables in sorted order.
func (c *calc) names() []string {
	return slices.Sorted(maps.Keys(c.vars))
}

func (s *exprStmt) exec(c *calc) (pythonic.Value, bool, error) {
	v, err := s.x.eval(c)
	return v, true, err
}

func (s *assignStmt) exec(c *calc) (pythonic.Value, bool, error) {
	v, err := s.value.eval(c)
	if err != nil {
		return pythonic.Value{}, false, err
	}
	if s.op != "=" {
		cur, err := s.target.eval(c)
		if err != nil {
			return pythonic.Value{}, false, err
		}
		if v, err = augmented(s.op, cur, v); err != nil {
			return pythonic.Value{}, false, err
		}
	}
	switch t := s.target.(type) {
	case *nameNode:
		c.vars[t.name] = v
	case *indexNode:
		container, err := t.x.eval(c)
		if err != nil {
			return pythonic.Value{}, false, err
		}
		idx, err := t.index.eval(c)
		if err != nil {
			return pythonic.Value{}, false, err
		}
		if err := container.SetIndex(idx, v); err != nil {
			return pythonic.Value{}, false, err
		}
	}
	return pythonic.None(), false, nil
}

func augmented(op string, cur, v pythonic.Value) (pythonic.Value, error) {
	var err error
	switch op {
	case "+=":
		err = cur.AddAssign(v)
	case "-=":
		err = cur.SubAssign(v)
	case "*=":
		err = cur.MulAssign(v)
	case "/=":
		err = cur.DivAssign(v)
	case "%=":
		err = cur.ModAssign(v)
	case "//=":
		cur, err = pythonic.FloorDiv(cur, v)
	}
	return cur, err
}

func (n *constNode) eval(*calc) (pythonic.Value, error) { return n.v.Clone(), nil }

func (n *nameNode) eval(c *calc) (pythonic.Value, error) {
	v, ok := c.vars[n.name]
	if !ok {
		return pythonic.Value{}, pyerrors.Newf(pyerrors.KeyMissing, "name", "name '%s' is not defined", n.name)
	}
	return v, nil
}

func (n *unaryNode) eval(c *calc) (pythonic.Value, error) {
	x, err := n.x.eval(c)
	if err != nil {
		return pythonic.Value{}, err
	}
	if n.op == "-" {
		return pythonic.Neg(x)
	}
	if !x.IsNumeric() {
		return pythonic.Value{}, pyerrors.Newf(pyerrors.TypeMismatch, "pos", "bad operand type for unary +: '%s'", x.TypeName())
	}
	return x, nil
}

func (n *notNode) eval(c *calc) (pythonic.Value, error) {
	x, err := n.x.eval(c)
	if err != nil {
		return pythonic.Value{}, err
	}
	return pythonic.Not(x), nil
}

var binaryOps = map[string]func(a, b pythonic.Value) (pythonic.Value, error){
	"+":  pythonic.Add,
	"-":  pythonic.Sub,
	"*":  pythonic.Mul,
	"/":  pythonic.Div,
	"//": pythonic.FloorDiv,
	"%":  pythonic.Mod,
	"&":  pythonic.BitAnd,
	"|":  pythonic.BitOr,
	"^":  pythonic.BitXor,
}

func (n *binaryNode) eval(c *calc) (pythonic.Value, error) {
	l, err := n.l.eval(c)
	if err != nil {
		return pythonic.Value{}, err
	}
	r, err := n.r.eval(c)
	if err != nil {
		return pythonic.Value{}, err
	}
	return binaryOps[n.op](l, r)
}

func (n *logicNode) eval(c *calc) (pythonic.Value, error) {
	l, err := n.l.eval(c)
	if err != nil {
		return pythonic.Value{}, err
	}
	if l.Truthy() != n.and {
		return l, nil
	}
	return n.r.eval(c)
}

func (n *compareNode) eval(c *calc) (pythonic.Value, error) {
	l, err := n.operands[0].eval(c)
	if err != nil {
		return pythonic.Value{}, err
	}
	for i, op := range n.ops {
		r, err := n.operands[i+1].eval(c)
		if err != nil {
			return pythonic.Value{}, err
		}
		ok, err := compare(op, l, r)
		if err != nil || !ok {
			return pythonic.False, err
		}
		l = r
	}
	return pythonic.True, nil
}

func compare(op string, l, r pythonic.Value) (bool, error) {
	switch op {
	case "==":
		return pythonic.Equal(l, r), nil
	case "!=":
		return pythonic.NotEqual(l, r), nil
	case "in":
		return r.Contains(l)
	case "not in":
		ok, err := r.Contains(l)
		return !ok, err
	}
	c, err := pythonic.Compare(l, r)
	if err != nil {
		return false, err
	}
	switch op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	default:
		return c >= 0, nil
	}
}

func evalAll(c *calc, nodes []node) ([]pythonic.Value, error) {
	out := make([]pythonic.Value, 0, len(nodes))
	for _, n := range nodes {
		v, err := n.eval(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (n *listNode) eval(c *calc) (pythonic.Value, error) {
	items, err := evalAll(c, n.items)
	if err != nil {
		return pythonic.Value{}, err
	}
	return pythonic.NewList(items...), nil
}

func (n *setNode) eval(c *calc) (pythonic.Value, error) {
	items, err := evalAll(c, n.items)
	if err != nil {
		return pythonic.Value{}, err
	}
	return pythonic.NewSet(items...)
}

func (n *dictNode) eval(c *calc) (pythonic.Value, error) {
	d := pythonic.NewDict()
	for i := range n.keys {
		k, err := n.keys[i].eval(c)
		if err != nil {
			return pythonic.Value{}, err
		}
		v, err := n.vals[i].eval(c)
		if err != nil {
			return pythonic.Value{}, err
		}
		if err := d.SetItem(k, v); err != nil {
			return pythonic.Value{}, err
		}
	}
	return d, nil
}

func (n *indexNode) eval(c *calc) (pythonic.Value, error) {
	x, err := n.x.eval(c)
	if err != nil {
		return pythonic.Value{}, err
	}
	idx, err := n.index.eval(c)
	if err != nil {
		return pythonic.Value{}, err
	}
	return x.Index(idx)
}

func evalOptional(c *calc, n node) (pythonic.Value, error) {
	if n == nil {
		return pythonic.None(), nil
	}
	return n.eval(c)
}

func (n *sliceNode) eval(c *calc) (pythonic.Value, error) {
	x, err := n.x.eval(c)
	if err != nil {
		return pythonic.Value{}, err
	}
	var bounds [3]pythonic.Value
	for i, b := range []node{n.start, n.stop, n.step} {
		if bounds[i], err = evalOptional(c, b); err != nil {
			return pythonic.Value{}, err
		}
	}
	return x.Slice(bounds[0], bounds[1], bounds[2])
}

func (n *methodNode) eval(c *calc) (pythonic.Value, error) {
	recv, err := n.recv.eval(c)
	if err != nil {
		return pythonic.Value{}, err
	}
	args, err := evalAll(c, n.args)
	if err != nil {
		return pythonic.Value{}, err
	}
	out, err := recv.CallMethod(n.name, args...)
	if err != nil {
		return pythonic.Value{}, err
	}
	if name, ok := n.recv.(*nameNode); ok {
		c.vars[name.name] = recv
	}
	return out, nil
}

func (n *callNode) eval(c *calc) (pythonic.Value, error) {
	fn, ok := builtins[n.name]
	if !ok {
		return pythonic.Value{}, pyerrors.Newf(pyerrors.KeyMissing, "call", "name '%s' is not defined", n.name)
	}
	args, err := evalAll(c, n.args)
	if err != nil {
		return pythonic.Value{}, err
	}
	return fn(args)
}

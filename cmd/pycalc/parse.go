package main

import (
	"fmt"

	"github.com/jacoelho/pythonic"
	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/pylex"
)

type node interface {
	eval(c *calc) (pythonic.Value, error)
}

type stmt interface {
	exec(c *calc) (pythonic.Value, bool, error)
}

type (
	constNode struct{ v pythonic.Value }
	nameNode  struct {
		name string
		pos  int
	}
	unaryNode struct {
		op string
		x  node
	}
	notNode    struct{ x node }
	binaryNode struct {
		op   string
		l, r node
	}
	logicNode struct {
		and  bool
		l, r node
	}
	compareNode struct {
		ops      []string
		operands []node
	}
	listNode struct{ items []node }
	setNode  struct{ items []node }
	dictNode struct{ keys, vals []node }
	indexNode struct {
		x, index node
	}
	sliceNode struct {
		x                 node
		start, stop, step node
	}
	methodNode struct {
		recv node
		name string
		args []node
	}
	callNode struct {
		name string
		pos  int
		args []node
	}
)

type (
	exprStmt   struct{ x node }
	assignStmt struct {
		target node
		op     string
		value  node
	}
)

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "//=": true, "%=": true,
}

var compareOps = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

type parser struct {
	toks []pylex.Token
	pos  int
}

// parseLine parses one line of input into statements separated by ';'.
func parseLine(src string) ([]stmt, error) {
	toks, err := pylex.Tokenize(src)
	if err != nil {
		return nil, pyerrors.New(pyerrors.ValueParse, "syntax", err.Error())
	}
	p := &parser{toks: toks}
	var out []stmt
	for {
		for p.peek().Is(";") {
			p.advance()
		}
		if p.peek().Kind == pylex.EOF {
			return out, nil
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		if t := p.peek(); t.Kind != pylex.EOF && !t.Is(";") {
			return nil, p.errorf(t, "unexpected %s %q", t.Kind, t.Text)
		}
	}
}

func (p *parser) peek() pylex.Token { return p.toks[p.pos] }

func (p *parser) advance() pylex.Token {
	t := p.toks[p.pos]
	if t.Kind != pylex.EOF {
		p.pos++
	}
	return t
}

func (p *parser) accept(op string) bool {
	if p.peek().Is(op) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(op string) error {
	if t := p.peek(); !t.Is(op) {
		return p.errorf(t, "expected %q, found %s %q", op, t.Kind, t.Text)
	}
	p.advance()
	return nil
}

func (p *parser) errorf(t pylex.Token, format string, args ...any) error {
	return pyerrors.Newf(pyerrors.ValueParse, "syntax", "offset %d: %s", t.Pos, fmt.Sprintf(format, args...))
}

func (p *parser) statement() (stmt, error) {
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.Kind != pylex.Op || !assignOps[t.Text] {
		return &exprStmt{x: x}, nil
	}
	switch x.(type) {
	case *nameNode, *indexNode:
	default:
		return nil, p.errorf(t, "cannot assign to expression")
	}
	p.advance()
	v, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &assignStmt{target: x, op: t.Text, value: v}, nil
}

func (p *parser) expr() (node, error) { return p.or() }

func (p *parser) or() (node, error) {
	l, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.accept("or") {
		r, err := p.and()
		if err != nil {
			return nil, err
		}
		l = &logicNode{l: l, r: r}
	}
	return l, nil
}

func (p *parser) and() (node, error) {
	l, err := p.not()
	if err != nil {
		return nil, err
	}
	for p.accept("and") {
		r, err := p.not()
		if err != nil {
			return nil, err
		}
		l = &logicNode{and: true, l: l, r: r}
	}
	return l, nil
}

func (p *parser) not() (node, error) {
	if p.accept("not") {
		x, err := p.not()
		if err != nil {
			return nil, err
		}
		return &notNode{x: x}, nil
	}
	return p.comparison()
}

func (p *parser) comparison() (node, error) {
	first, err := p.binary(0)
	if err != nil {
		return nil, err
	}
	cmp := &compareNode{operands: []node{first}}
	for {
		t := p.peek()
		var op string
		switch {
		case t.Kind == pylex.Op && compareOps[t.Text]:
			op = t.Text
			p.advance()
		case t.Is("in"):
			op = "in"
			p.advance()
		case t.Is("not") && p.toks[p.pos+1].Is("in"):
			op = "not in"
			p.advance()
			p.advance()
		default:
			if len(cmp.ops) == 0 {
				return first, nil
			}
			return cmp, nil
		}
		r, err := p.binary(0)
		if err != nil {
			return nil, err
		}
		cmp.ops = append(cmp.ops, op)
		cmp.operands = append(cmp.operands, r)
	}
}

// levels lists binary operators from loosest to tightest binding.
var levels = [][]string{
	{"|"},
	{"^"},
	{"&"},
	{"+", "-"},
	{"*", "/", "//", "%"},
}

func (p *parser) binary(level int) (node, error) {
	if level == len(levels) {
		return p.unary()
	}
	l, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.Kind != pylex.Op || !contains(levels[level], t.Text) {
			return l, nil
		}
		p.advance()
		r, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}
		l = &binaryNode{op: t.Text, l: l, r: r}
	}
}

func contains(ops []string, op string) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

func (p *parser) unary() (node, error) {
	if t := p.peek(); t.Is("-") || t.Is("+") {
		p.advance()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: t.Text, x: x}, nil
	}
	return p.postfix()
}

func (p *parser) postfix() (node, error) {
	x, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept("["):
			x, err = p.subscript(x)
			if err != nil {
				return nil, err
			}
		case p.accept("."):
			t := p.advance()
			if t.Kind != pylex.Name {
				return nil, p.errorf(t, "expected a method name, found %s %q", t.Kind, t.Text)
			}
			if err := p.expect("("); err != nil {
				return nil, err
			}
			args, err := p.items(")")
			if err != nil {
				return nil, err
			}
			x = &methodNode{recv: x, name: t.Text, args: args}
		default:
			return x, nil
		}
	}
}

func (p *parser) subscript(x node) (node, error) {
	var start node
	if !p.peek().Is(":") {
		idx, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.accept("]") {
			return &indexNode{x: x, index: idx}, nil
		}
		start = idx
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	s := &sliceNode{x: x, start: start}
	var err error
	if s.stop, err = p.optional(":", "]"); err != nil {
		return nil, err
	}
	if p.accept(":") {
		if s.step, err = p.optional("]"); err != nil {
			return nil, err
		}
	}
	return s, p.expect("]")
}

// optional parses an expression unless the next token is one of stops.
func (p *parser) optional(stops ...string) (node, error) {
	for _, s := range stops {
		if p.peek().Is(s) {
			return nil, nil
		}
	}
	return p.expr()
}

// items parses a comma separated list closed by end, allowing a trailing comma.
func (p *parser) items(end string) ([]node, error) {
	var out []node
	for !p.accept(end) {
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		out = append(out, x)
		if !p.accept(",") {
			if err := p.expect(end); err != nil {
				return nil, err
			}
			break
		}
	}
	return out, nil
}

func (p *parser) atom() (node, error) {
	t := p.advance()
	switch t.Kind {
	case pylex.Int, pylex.Float:
		v, err := pythonic.ParseNumber(t.Text)
		if err != nil {
			return nil, err
		}
		return &constNode{v: v}, nil
	case pylex.String:
		s := t.Text
		for p.peek().Kind == pylex.String {
			s += p.advance().Text
		}
		return &constNode{v: pythonic.Str(s)}, nil
	case pylex.Name:
		switch t.Text {
		case "None":
			return &constNode{v: pythonic.None()}, nil
		case "True":
			return &constNode{v: pythonic.True}, nil
		case "False":
			return &constNode{v: pythonic.False}, nil
		case "inf", "nan":
			v, err := pythonic.ParseNumber(t.Text)
			if err != nil {
				return nil, err
			}
			return &constNode{v: v}, nil
		}
		if p.accept("(") {
			args, err := p.items(")")
			if err != nil {
				return nil, err
			}
			return &callNode{name: t.Text, pos: t.Pos, args: args}, nil
		}
		return &nameNode{name: t.Text, pos: t.Pos}, nil
	case pylex.Op:
		switch t.Text {
		case "(":
			x, err := p.expr()
			if err != nil {
				return nil, err
			}
			return x, p.expect(")")
		case "[":
			items, err := p.items("]")
			if err != nil {
				return nil, err
			}
			return &listNode{items: items}, nil
		case "{":
			return p.braces()
		}
	}
	return nil, p.errorf(t, "unexpected %s %q", t.Kind, t.Text)
}

// braces parses a dict or set display after its opening brace. {} is a dict.
func (p *parser) braces() (node, error) {
	if p.accept("}") {
		return &dictNode{}, nil
	}
	first, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.accept(":") {
		items := []node{first}
		if p.accept(",") {
			rest, err := p.items("}")
			if err != nil {
				return nil, err
			}
			items = append(items, rest...)
		} else if err := p.expect("}"); err != nil {
			return nil, err
		}
		return &setNode{items: items}, nil
	}
	d := &dictNode{}
	key := first
	for {
		val, err := p.expr()
		if err != nil {
			return nil, err
		}
		d.keys = append(d.keys, key)
		d.vals = append(d.vals, val)
		if !p.accept(",") || p.peek().Is("}") {
			return d, p.expect("}")
		}
		if key, err = p.expr(); err != nil {
			return nil, err
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
	}
}

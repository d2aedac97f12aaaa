package pythonic

import (
	"math"
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"

	pyerrors "github.com/jacoelho/pythonic/errors"
	"github.com/jacoelho/pythonic/internal/num"
)

var (
	_ yaml.Marshaler   = Value{}
	_ yaml.Unmarshaler = (*Value)(nil)
)

// MarshalYAML returns the YAML node for v. Sets become sequences and both
// dict kinds become mappings in their iteration order.
func (v Value) MarshalYAML() (any, error) {
	return yamlNode(v)
}

// UnmarshalYAML replaces v with the value held by node.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	r, err := fromYAMLNode(node)
	if err != nil {
		return err
	}
	*v = r
	return nil
}

// FromYAML decodes one YAML document. Mappings become ordered dicts in
// document order and scalars follow their resolved YAML tag.
func FromYAML(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Value{}, pyerrors.New(pyerrors.ValueParse, "yaml", err.Error())
	}
	if node.Kind == 0 {
		return None(), nil
	}
	return fromYAMLNode(&node)
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlNode(v Value) (*yaml.Node, error) {
	switch {
	case v.tag == TagNone:
		return scalar("!!null", "null"), nil
	case v.tag == TagBool:
		return scalar("!!bool", strconv.FormatBool(v.UncheckedBool())), nil
	case v.tag.IsInteger():
		return scalar("!!int", v.Repr()), nil
	case v.tag.IsFloat():
		f := float64Of(v)
		switch {
		case math.IsNaN(f):
			return scalar("!!float", ".nan"), nil
		case math.IsInf(f, 1):
			return scalar("!!float", ".inf"), nil
		case math.IsInf(f, -1):
			return scalar("!!float", "-.inf"), nil
		}
		return scalar("!!float", v.Repr()), nil
	case v.tag == TagStr:
		return scalar("!!str", v.UncheckedStr()), nil
	case v.tag == TagList || isSetLike(v):
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for e := range v.All() {
			c, err := yamlNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case v.tag == TagDict || v.tag == TagOrderedDict:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		entries, _ := dictAll(v)
		for k, e := range entries {
			c, err := yamlNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, scalar("!!str", k), c)
		}
		return n, nil
	default:
		return nil, pyerrors.Newf(pyerrors.TypeMismatch, "yaml", "object of type '%s' is not YAML serializable", v.TypeName())
	}
}

func fromYAMLNode(n *yaml.Node) (Value, error) {
	const op = "yaml"
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return None(), nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			e, err := fromYAMLNode(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, e)
		}
		return listOf(items), nil
	case yaml.MappingNode:
		d := newOrderedDict(len(n.Content) / 2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return Value{}, pyerrors.Newf(pyerrors.ValueParse, op, "line %d: mapping keys must be scalars", k.Line)
			}
			e, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			d.items.Set(k.Value, e)
		}
		return Value{tag: TagOrderedDict, ref: d}, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return Value{}, pyerrors.Newf(pyerrors.ValueParse, op, "line %d: unsupported YAML node", n.Line)
	}
}

func yamlScalar(n *yaml.Node) (Value, error) {
	const op = "yaml"
	switch n.ShortTag() {
	case "!!null":
		return None(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, pyerrors.New(pyerrors.ValueParse, op, err.Error())
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return fitInt(big.NewInt(i), TagI32), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return fitInt(new(big.Int).SetUint64(u), TagI32), nil
		}
		r, perr := num.ParseBigInt(n.Value)
		if perr != nil {
			return Value{}, parseError(op, n.Value, perr)
		}
		return fitInt(r, TagI32), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, pyerrors.New(pyerrors.ValueParse, op, err.Error())
		}
		return F64(f), nil
	default:
		return Str(n.Value), nil
	}
}

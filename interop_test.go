package pythonic_test

import (
	"encoding/json"
	"math"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/jacoelho/pythonic"
	pyerrors "github.com/jacoelho/pythonic/errors"
)

func TestFromJSON(t *testing.T) {
	v, err := pythonic.FromJSON([]byte(`{"b": 1, "a": [true, null, 2.5, "x"], "big": 3000000000}`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if v.Tag() != pythonic.TagOrderedDict {
		t.Fatalf("FromJSON() tag = %s, want OrderedDict", v.Tag())
	}
	if want := "{'b': 1, 'a': [True, None, 2.5, 'x'], 'big': 3000000000}"; v.Repr() != want {
		t.Fatalf("FromJSON() = %s, want %s", v.Repr(), want)
	}
	b, _ := v.Get(pythonic.Str("b"))
	if b.Tag() != pythonic.TagI32 {
		t.Fatalf("small integer tag = %s, want I32", b.Tag())
	}
	big, _ := v.Get(pythonic.Str("big"))
	if big.Tag() != pythonic.TagI64 {
		t.Fatalf("large integer tag = %s, want I64", big.Tag())
	}
}

func TestFromJSONErrors(t *testing.T) {
	for _, input := range []string{`1 2`, `{"a":`, `[1,]`, ``, `{"a" 1}`} {
		t.Run(input, func(t *testing.T) {
			if _, err := pythonic.FromJSON([]byte(input)); !pyerrors.IsKind(err, pyerrors.ValueParse) {
				t.Fatalf("FromJSON(%q) error = %v, want value parse", input, err)
			}
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		v    pythonic.Value
		want string
	}{
		{"dict sorted", mustLiteral(t, "{'b': [1, 2.5, None], 'a': 'x'}"), `{"a":"x","b":[1,2.5,null]}`},
		{"set", mustLiteral(t, "{3}"), `[3]`},
		{"bool", pythonic.False, `false`},
		{"unsigned", pythonic.U64(math.MaxUint64), `18446744073709551615`},
		{"whole float", pythonic.F64(2), `2.0`},
		{"escaped string", pythonic.Str("a\"b\n"), `"a\"b\n"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.v)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("json.Marshal() = %s, want %s", got, tt.want)
			}
		})
	}

	for _, v := range []pythonic.Value{pythonic.F64(math.NaN()), pythonic.F32(float32(math.Inf(1)))} {
		if _, err := v.MarshalJSON(); !pyerrors.IsKind(err, pyerrors.InvalidArgument) {
			t.Fatalf("MarshalJSON(%s) error = %v, want invalid argument", v.Repr(), err)
		}
	}
	if _, err := pythonic.NewList(pythonic.NewGraph(1)).MarshalJSON(); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("MarshalJSON(graph) error = %v, want type mismatch", err)
	}
}

func TestJSONStructField(t *testing.T) {
	var doc struct {
		Name  string         `json:"name"`
		Value pythonic.Value `json:"value"`
	}
	if err := json.Unmarshal([]byte(`{"name": "n", "value": [1, {"k": 2}]}`), &doc); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if doc.Value.Repr() != "[1, {'k': 2}]" {
		t.Fatalf("Value = %s, want [1, {'k': 2}]", doc.Value.Repr())
	}
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if want := `{"name":"n","value":[1,{"k":2}]}`; string(out) != want {
		t.Fatalf("json.Marshal() = %s, want %s", out, want)
	}
}

func TestFromYAML(t *testing.T) {
	v, err := pythonic.FromYAML([]byte("b: 1\na: [x, 2.5, true]\nc: ~\nn: 3000000000\nq: '7'\n"))
	if err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}
	if want := "{'b': 1, 'a': ['x', 2.5, True], 'c': None, 'n': 3000000000, 'q': '7'}"; v.Repr() != want {
		t.Fatalf("FromYAML() = %s, want %s", v.Repr(), want)
	}
	n, _ := v.Get(pythonic.Str("n"))
	if n.Tag() != pythonic.TagI64 {
		t.Fatalf("large integer tag = %s, want I64", n.Tag())
	}

	anchors, err := pythonic.FromYAML([]byte("base: &b [1, 2]\ncopy: *b\n"))
	if err != nil {
		t.Fatalf("FromYAML(anchors) error = %v", err)
	}
	if want := "{'base': [1, 2], 'copy': [1, 2]}"; anchors.Repr() != want {
		t.Fatalf("FromYAML(anchors) = %s, want %s", anchors.Repr(), want)
	}

	empty, err := pythonic.FromYAML(nil)
	if err != nil || !empty.IsNone() {
		t.Fatalf("FromYAML(nil) = %s, %v, want None", empty.Repr(), err)
	}
}

func TestFromYAMLErrors(t *testing.T) {
	for _, input := range []string{"a: [", "? [1]\n: x\n", "a: b: c"} {
		t.Run(input, func(t *testing.T) {
			if _, err := pythonic.FromYAML([]byte(input)); !pyerrors.IsKind(err, pyerrors.ValueParse) {
				t.Fatalf("FromYAML(%q) error = %v, want value parse", input, err)
			}
		})
	}
}

func TestMarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(mustLiteral(t, "[1, 'x', None, True]"))
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	if want := "- 1\n- x\n- null\n- true\n"; string(out) != want {
		t.Fatalf("yaml.Marshal() = %q, want %q", out, want)
	}

	v := mustLiteral(t, "{'a': [1, 2.5, 'three'], 'n': None, 's': '123', 'f': nan}")
	out, err = yaml.Marshal(v)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	back, err := pythonic.FromYAML(out)
	if err != nil {
		t.Fatalf("FromYAML() error = %v\n%s", err, out)
	}
	if back.Repr() != v.Repr() {
		t.Fatalf("round trip = %s, want %s\n%s", back.Repr(), v.Repr(), out)
	}

	if _, err := pythonic.NewGraph(0).MarshalYAML(); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("MarshalYAML(graph) error = %v, want type mismatch", err)
	}
}

func TestYAMLStructField(t *testing.T) {
	var doc struct {
		Value pythonic.Value `yaml:"value"`
	}
	if err := yaml.Unmarshal([]byte("value:\n  k: [1, 2]\n"), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if doc.Value.Repr() != "{'k': [1, 2]}" {
		t.Fatalf("Value = %s, want {'k': [1, 2]}", doc.Value.Repr())
	}
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		src  string
		want pythonic.Value
	}{
		{"42", pythonic.I32(42)},
		{"-2147483648", pythonic.I32(math.MinInt32)},
		{"2147483648", pythonic.I64(2147483648)},
		{"2.5e3", pythonic.F64(2500)},
		{"-inf", pythonic.F64(math.Inf(-1))},
		{"'a' \"b\"", pythonic.Str("ab")},
		{"None", pythonic.None()},
		{"True", pythonic.True},
		{"set()", mustSet(t)},
		{"{}", pythonic.NewDict()},
		{"{1, 2,}", mustSet(t, pythonic.I32(1), pythonic.I32(2))},
		{"{'a': 1,}", pythonic.DictFrom(map[string]pythonic.Value{"a": pythonic.I32(1)})},
		{"[]", pythonic.NewList()},
		{"[1, [2, []],]", pythonic.NewList(pythonic.I32(1), pythonic.NewList(pythonic.I32(2), pythonic.NewList()))},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := pythonic.ParseLiteral(tt.src)
			if err != nil {
				t.Fatalf("ParseLiteral(%q) error = %v", tt.src, err)
			}
			if !sameValue(got, tt.want) {
				t.Fatalf("ParseLiteral(%q) = %s (%s), want %s (%s)", tt.src, got.Repr(), got.Tag(), tt.want.Repr(), tt.want.Tag())
			}
		})
	}
}

func TestParseLiteralErrors(t *testing.T) {
	tests := []struct {
		src  string
		want pyerrors.Kind
	}{
		{"[1, 2", pyerrors.ValueParse},
		{"1 2", pyerrors.ValueParse},
		{"x", pyerrors.ValueParse},
		{"- 'a'", pyerrors.ValueParse},
		{"'open", pyerrors.ValueParse},
		{"set(1)", pyerrors.ValueParse},
		{"{1: 2}", pyerrors.TypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if _, err := pythonic.ParseLiteral(tt.src); !pyerrors.IsKind(err, tt.want) {
				t.Fatalf("ParseLiteral(%q) error = %v, want %s", tt.src, err, tt.want)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	got, err := pythonic.ParseNumber("9223372036854775807")
	if err != nil || !sameValue(got, pythonic.I64(math.MaxInt64)) {
		t.Fatalf("ParseNumber(max int64) = %s, %v", got.Repr(), err)
	}
	if got, err := pythonic.ParseNumber("-1_000"); err != nil || !sameValue(got, pythonic.I32(-1000)) {
		t.Fatalf("ParseNumber(-1_000) = %s, %v", got.Repr(), err)
	}
	if got, err := pythonic.ParseNumber("9223372036854775808"); err != nil || !got.IsFloat() {
		t.Fatalf("ParseNumber(past int64) = %s, %v, want a float", got.Repr(), err)
	}
	if _, err := pythonic.ParseNumber("1.2.3"); !pyerrors.IsKind(err, pyerrors.ValueParse) {
		t.Fatalf("ParseNumber(1.2.3) error = %v, want value parse", err)
	}
}

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want pythonic.Value
	}{
		{"nil", nil, pythonic.None()},
		{"bool", true, pythonic.True},
		{"int8", int8(-3), pythonic.I32(-3)},
		{"int", 7, pythonic.ISize(7)},
		{"uint8", uint8(3), pythonic.U32(3)},
		{"uint64", uint64(1 << 40), pythonic.U64(1 << 40)},
		{"float32", float32(0.5), pythonic.F32(0.5)},
		{"string", "s", pythonic.Str("s")},
		{"any slice", []any{int32(1), "x", nil}, mustLiteral(t, "[1, 'x', None]")},
		{"nested map", map[string]any{"a": []any{2.5}}, mustLiteral(t, "{'a': [2.5]}")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pythonic.Of(tt.in)
			if err != nil {
				t.Fatalf("Of(%v) error = %v", tt.in, err)
			}
			if !sameValue(got, tt.want) {
				t.Fatalf("Of(%v) = %s (%s), want %s (%s)", tt.in, got.Repr(), got.Tag(), tt.want.Repr(), tt.want.Tag())
			}
		})
	}
	if _, err := pythonic.Of(struct{}{}); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("Of(struct) error = %v, want type mismatch", err)
	}
	if _, err := pythonic.Of([]any{complex(1, 2)}); !pyerrors.IsKind(err, pyerrors.TypeMismatch) {
		t.Fatalf("Of([complex]) error = %v, want type mismatch", err)
	}
}

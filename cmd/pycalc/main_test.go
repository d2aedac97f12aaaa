package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jacoelho/pythonic"
)

func runCalc(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := runWithArgs(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"precedence", "1 + 2 * 3", "7\n"},
		{"string repeat", "'ab' * 2", "'abab'\n"},
		{"integer division floors", "7 // 2; 7 % 3; -7 / 2", "3\n1\n-4\n"},
		{"mixed promotes", "1 + 0.5", "1.5\n"},
		{"comparisons", "1 < 2 < 3; 1 == 1.0; 'a' in 'abc'; 2 not in [1]; 3 < 2", "True\nTrue\nTrue\nTrue\nFalse\n"},
		{"logic", "0 or 'x'; 1 and 0; not []", "'x'\n0\nTrue\n"},
		{"method mutates variable", "x = [3, 1, 2]; x.sort(); x", "[1, 2, 3]\n"},
		{"string method", "'a,b'.split(',')", "['a', 'b']\n"},
		{"item assignment", "d = {'a': 1}; d['b'] = 2; d", "{'a': 1, 'b': 2}\n"},
		{"set union", "s = {1, 2} | {3}; len(s)", "3\n"},
		{"slices", "'hello'[::-1]; [1, 2, 3, 4][1:3]", "'olleh'\n[2, 3]\n"},
		{"builtins", "sum(range(5)); sorted([3, 1, 2], True); max(1, 2.5)", "10\n[3, 2, 1]\n2.5\n"},
		{"augmented assignment", "n = 2; n *= 3; n -= 1; n", "5\n"},
		{"nested index assignment", "m = [[0], [1]]; m[1][0] = 9; m", "[[0], [9]]\n"},
		{"json round trip", "parse_json(json({'k': [1, None]}))", "{'k': [1, None]}\n"},
		{"graph", "g = graph(3); add_edge(g, 0, 1); add_edge(g, 1, 2); shortest_path(g, 0, 2)",
			"{'nodes': [0, 1, 2], 'dist': 2.0}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCalc(t, "", "-e", tt.src)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr = %q", code, stderr)
			}
			if stdout != tt.want {
				t.Fatalf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"overflow", "2147483647 + 1", "overflow"},
		{"undefined name", "y + 1", "name 'y' is not defined"},
		{"unknown builtin", "nope(1)", "name 'nope' is not defined"},
		{"syntax", "1 +", "value-parse"},
		{"bad assignment target", "1 = 2", "cannot assign"},
		{"unordered", "None < 1", "type-mismatch"},
		{"arity", "len()", "expected 1 arguments"},
		{"missing method", "[1].upper()", "attribute-unsupported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCalc(t, "", "-e", tt.src)
			if code != 1 {
				t.Fatalf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Fatalf("stderr = %q, want it to contain %q", stderr, tt.want)
			}
		})
	}
}

func TestScriptFromStdin(t *testing.T) {
	code, stdout, stderr := runCalc(t, "x = 2\nx *= 3\n\nx\nx + 'a'\nx\n")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stdout != "6\n" {
		t.Fatalf("stdout = %q, want %q", stdout, "6\n")
	}
	if !strings.Contains(stderr, "stopped at line 5") {
		t.Fatalf("stderr = %q, want the failing line", stderr)
	}
}

func TestFormats(t *testing.T) {
	tests := []struct {
		format string
		src    string
		want   string
	}{
		{"json", "{'b': [1, None]}", "{\"b\":[1,null]}\n"},
		{"yaml", "[1, 'x']", "- 1\n- x\n"},
		{"str", "'plain'", "plain\n"},
		{"pretty", "[1]", "[\n  1\n]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			code, stdout, stderr := runCalc(t, "", "-format", tt.format, "-e", tt.src)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr = %q", code, stderr)
			}
			if stdout != tt.want {
				t.Fatalf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-format", "xml", "-e", "1"},
		{"-bogus"},
		{"a.py", "b.py"},
	} {
		code, _, stderr := runCalc(t, "", args...)
		if code != 2 {
			t.Fatalf("runWithArgs(%v) = %d, want 2", args, code)
		}
		if !strings.Contains(stderr, "Usage") {
			t.Fatalf("runWithArgs(%v) stderr = %q, want usage", args, stderr)
		}
	}
}

func TestComplete(t *testing.T) {
	s := &session{calc: newCalc()}
	s.calc.vars["sorted_items"] = pythonic.NewList()
	got := s.complete("y = sor")
	want := []string{"y = sorted_items", "y = sorted("}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("complete() = %v, want %v", got, want)
	}
	if got := s.complete("x + "); got != nil {
		t.Fatalf("complete() after an operator = %v, want nil", got)
	}
}

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		want string
		e    Error
	}{
		{
			name: "kind only",
			e:    Error{Kind: Overflow},
			want: "overflow",
		},
		{
			name: "message only",
			e:    Error{Kind: KeyMissing, Message: "key 'x' not found"},
			want: "[key-missing] key 'x' not found",
		},
		{
			name: "op only",
			e:    Error{Kind: ZeroDivision, Op: "mod"},
			want: "[zero-division] mod",
		},
		{
			name: "op and message",
			e:    Error{Kind: TypeMismatch, Op: "add", Message: "int and str"},
			want: "[type-mismatch] add: int and str",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNilErrorFormatting(t *testing.T) {
	var e *Error
	if got := e.Error(); got != "pythonic <nil>" {
		t.Fatalf("Error() = %q, want %q", got, "pythonic <nil>")
	}
}

func TestNewf(t *testing.T) {
	e := Newf(IndexOutOfRange, "index", "index %d out of range for length %d", 5, 3)
	if e.Kind != IndexOutOfRange {
		t.Fatalf("Kind = %q, want %q", e.Kind, IndexOutOfRange)
	}
	if e.Message != "index 5 out of range for length 3" {
		t.Fatalf("Message = %q", e.Message)
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", New(Overflow, "mul", "int overflow"))
	if !errors.Is(err, Overflow.Err()) {
		t.Fatalf("errors.Is(%v, Overflow) = false, want true", err)
	}
	if errors.Is(err, ZeroDivision.Err()) {
		t.Fatalf("errors.Is(%v, ZeroDivision) = true, want false", err)
	}
}

func TestKindOf(t *testing.T) {
	if _, ok := KindOf(nil); ok {
		t.Fatalf("KindOf(nil) ok = true")
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Fatalf("KindOf(plain) ok = true")
	}
	err := fmt.Errorf("ctx: %w", New(GraphError, "dfs", "bad node"))
	kind, ok := KindOf(err)
	if !ok || kind != GraphError {
		t.Fatalf("KindOf() = %q, %v, want %q, true", kind, ok, GraphError)
	}
	if !IsKind(err, GraphError) {
		t.Fatalf("IsKind() = false")
	}
}

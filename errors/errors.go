package errors

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a value-core failure.
type Kind string

const (
	// TypeMismatch indicates an operation applied to tags with no kernel or promotion.
	TypeMismatch Kind = "type-mismatch"
	// ZeroDivision indicates a division or modulo by zero.
	ZeroDivision Kind = "zero-division"
	// Overflow indicates checked arithmetic could not represent the result.
	Overflow Kind = "overflow"
	// IndexOutOfRange indicates a sequence index outside [0, len).
	IndexOutOfRange Kind = "index-out-of-range"
	// KeyMissing indicates a read of an absent dict key.
	KeyMissing Kind = "key-missing"
	// ValueParse indicates a string could not be converted to a number.
	ValueParse Kind = "value-parse"
	// AttributeUnsupported indicates a method is not defined for the receiver's tag.
	AttributeUnsupported Kind = "attribute-unsupported"
	// IterationUnsupported indicates iteration over a non-iterable tag.
	IterationUnsupported Kind = "iteration-unsupported"
	// InvalidArgument indicates an argument outside the operation's domain.
	InvalidArgument Kind = "invalid-argument"
	// GraphError indicates an invalid node or a malformed graph.
	GraphError Kind = "graph-error"
)

// Err returns a sentinel error of this kind for use with errors.Is.
func (k Kind) Err() error {
	return &Error{Kind: k}
}

// Error describes a failed operation with its kind, the operation name, and a message.
type Error struct {
	Kind    Kind
	Op      string
	Message string
}

// Error formats the error for display.
func (e *Error) Error() string {
	if e == nil {
		return "pythonic <nil>"
	}
	switch {
	case e.Op != "" && e.Message != "":
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Op, e.Message)
	case e.Message != "":
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	case e.Op != "":
		return fmt.Sprintf("[%s] %s", e.Kind, e.Op)
	default:
		return string(e.Kind)
	}
}

// Is reports whether target is an *Error of the same kind.
// Op and Message are ignored so that Kind.Err() works as a sentinel.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) || other == nil || e == nil {
		return false
	}
	return e.Kind == other.Kind
}

// New builds an Error for op with a fixed message.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Message: msg}
}

// Newf formats a message and builds an Error.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return New(kind, op, fmt.Sprintf(format, args...))
}

// KindOf extracts the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	if err == nil {
		return "", false
	}
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	got, ok := KindOf(err)
	return ok && got == kind
}

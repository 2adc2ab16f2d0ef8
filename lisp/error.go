package lisp

import "fmt"

// ErrorKind classifies a RuntimeError.
type ErrorKind int

// Possible ErrorKind values
const (
	ErrorUnknown ErrorKind = iota
	UnboundVariable
	ArityMismatch
	TypeMismatch
	ImproperListApplication
	IllegalEmptyApplication
	IllegalInvocation
	StackOverflow
	numErrorKinds
)

var errorKindStrings = [numErrorKinds]string{
	ErrorUnknown:            "error",
	UnboundVariable:         "unbound variable",
	ArityMismatch:           "arity mismatch",
	TypeMismatch:            "type mismatch",
	ImproperListApplication: "improper list application",
	IllegalEmptyApplication: "illegal empty application",
	IllegalInvocation:       "illegal invocation",
	StackOverflow:           "stack overflow",
}

func (k ErrorKind) String() string {
	if k < 0 || k >= numErrorKinds {
		return errorKindStrings[ErrorUnknown]
	}
	return errorKindStrings[k]
}

// Sentinel errors for use with errors.Is.  A RuntimeError matches the
// sentinel of its Kind.
var (
	ErrUnboundVariable         = &RuntimeError{Kind: UnboundVariable}
	ErrArityMismatch           = &RuntimeError{Kind: ArityMismatch}
	ErrTypeMismatch            = &RuntimeError{Kind: TypeMismatch}
	ErrImproperListApplication = &RuntimeError{Kind: ImproperListApplication}
	ErrIllegalEmptyApplication = &RuntimeError{Kind: IllegalEmptyApplication}
	ErrIllegalInvocation       = &RuntimeError{Kind: IllegalInvocation}
	ErrStackOverflow           = &RuntimeError{Kind: StackOverflow}
)

// RuntimeError is an error signaled while evaluating an expression.
type RuntimeError struct {
	Kind ErrorKind
	Msg  string
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is reports whether target is the sentinel for e's Kind.
func (e *RuntimeError) Is(target error) bool {
	t, ok := target.(*RuntimeError)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Kind == e.Kind
}

func rerrorf(kind ErrorKind, format string, v ...interface{}) error {
	return &RuntimeError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, v...),
	}
}

// berrArity returns an ArityMismatch error for the builtin name.
func berrArity(name string, expect string, given int) error {
	return rerrorf(ArityMismatch, "'%s' requires %s, given %d", name, expect, given)
}

// berrType returns a TypeMismatch error for the builtin name.
func berrType(name string, expect string, given *LVal) error {
	return rerrorf(TypeMismatch, "argument to '%s' must be of type %s, given %v", name, expect, given)
}

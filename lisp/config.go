package lisp

import (
	"errors"
	"io"
	"log"
	"os"
)

// DefaultMaxDepth is the default limit on nested (non-tail) evaluation.
const DefaultMaxDepth = 50000

// Runtime holds the state shared by every environment of one interpreter
// instance.
type Runtime struct {
	Stdout io.Writer
	Stderr io.Writer
	Reader Reader

	// StrictSet makes set! fail with UnboundVariable when no frame binds the
	// symbol.  When false set! defines the symbol in the local frame.
	StrictSet bool

	// MaxDepth limits nested evaluation.  Tail calls do not count against
	// it.  A value of zero disables the check.
	MaxDepth int

	// Trace logs each top-level form and its result to Stderr.
	Trace bool

	depth  int
	logger *log.Logger
}

func newRuntime() *Runtime {
	return &Runtime{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		MaxDepth: DefaultMaxDepth,
	}
}

// Logger returns a logger that writes to rt.Stderr.
func (rt *Runtime) Logger() *log.Logger {
	if rt.logger == nil || rt.logger.Writer() != rt.Stderr {
		rt.logger = log.New(rt.Stderr, "kuao: ", 0)
	}
	return rt.logger
}

// Config is a function that configures the runtime of a root environment.
type Config func(rt *Runtime) error

// WithStdout returns a Config that makes display write to w instead of the
// default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(rt *Runtime) error {
		rt.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes environments write diagnostic
// output to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(rt *Runtime) error {
		rt.Stderr = w
		return nil
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(rt *Runtime) error {
		rt.Reader = r
		return nil
	}
}

// WithStrictSet returns a Config controlling whether set! of an unbound
// symbol is an error.
func WithStrictSet(strict bool) Config {
	return func(rt *Runtime) error {
		rt.StrictSet = strict
		return nil
	}
}

// WithMaxDepth returns a Config that will prevent nested evaluation from
// exceeding n levels.  Tail calls are not nested.
func WithMaxDepth(n int) Config {
	return func(rt *Runtime) error {
		if n < 0 {
			return errors.New("maximum depth cannot be negative")
		}
		rt.MaxDepth = n
		return nil
	}
}

// WithTrace returns a Config that enables logging of each top-level form
// loaded by the environment.
func WithTrace(trace bool) Config {
	return func(rt *Runtime) error {
		rt.Trace = trace
		return nil
	}
}

package lisp

import "io"

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// NewStream returns a Stream that parses forms from r.  The name is used
	// in error locations.
	NewStream(name string, r io.Reader) Stream
}

// Stream yields top-level forms one at a time.
type Stream interface {
	// ReadForm returns the next form.  When no forms remain ReadForm returns
	// a false second value and a nil error.
	ReadForm() (*LVal, bool, error)
}

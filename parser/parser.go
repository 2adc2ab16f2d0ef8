/*
Package parser provides a lisp parser.

	sexp     := atom | '(' pairtail | quote sexp
	pairtail := ')' | sexp pairtail | '.' sexp ')'
	quote    := "'" | '`' | ',' | ',@'
	atom     := string | number | symbol | '#t' | '#f'
	number   := digit digit*
	string   := '"' ( char | '\' escape )* '"'
	escape   := 'n' | 'r' | 'f' | '"' | '\'
	symbol   := initial subsequent*
	initial  := letter | '+' | '-' | '*' | '/' | '<' | '=' | '>' | '!' | '?' |
	            ':' | '$' | '%' | '_' | '&' | '~' | '^'
	subsequent := initial | digit

Letters and digits are ASCII.  A char is any character other than '"' and
'\'.

A dot is only legal after at least one element of a list.  Comments run from
';' to the end of the line.
*/
package parser

import (
	"bytes"
	"io"

	"github.com/sjothen/kuao/lisp"
	"github.com/sjothen/kuao/parser/rdparser"
	"github.com/sjothen/kuao/parser/token"
)

// NewReader returns a new lisp.Reader.
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// NewStream returns a lisp.Stream that reads forms from r one at a time.
func NewStream(name string, r io.Reader) lisp.Stream {
	return rdparser.New(token.NewScanner(name, r))
}

// ReadOne reads the next form from s.  When s has no forms remaining ReadOne
// returns a false second value and a nil error.
func ReadOne(s lisp.Stream) (*lisp.LVal, bool, error) {
	return s.ReadForm()
}

// ParseLVal parses LVal values from text and returns them.
func ParseLVal(text []byte) ([]*lisp.LVal, error) {
	p := rdparser.New(token.NewScanner("<string>", bytes.NewReader(text)))
	return p.ParseProgram()
}

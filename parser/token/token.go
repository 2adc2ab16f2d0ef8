package token

import "fmt"

// Token is a lexical unit produced by the lexer.  For STRING tokens Text holds
// the decoded string contents, with escapes already processed.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	switch tok.Type {
	case STRING:
		return fmt.Sprintf("%q", tok.Text)
	case SYMBOL, INT, BOOL:
		return tok.Text
	default:
		return tok.Type.String()
	}
}

type Type uint

// Type constants used for the kuao lexer/parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Atomic expressions & literals
	SYMBOL
	INT
	STRING
	BOOL

	// Quote-family markers
	QUOTE
	QUASIQUOTE
	UNQUOTE
	UNQUOTE_SPLICING

	// Delimiters
	DOT
	PAREN_L
	PAREN_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:          "invalid",
		ERROR:            "error",
		EOF:              "EOF",
		SYMBOL:           "symbol",
		INT:              "int",
		STRING:           "string",
		BOOL:             "boolean",
		QUOTE:            "'",
		QUASIQUOTE:       "`",
		UNQUOTE:          ",",
		UNQUOTE_SPLICING: ",@",
		DOT:              ".",
		PAREN_L:          "(",
		PAREN_R:          ")",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// IsQuoteMarker returns true if typ is one of the quote-family prefix
// markers.
func (typ Type) IsQuoteMarker() bool {
	switch typ {
	case QUOTE, QUASIQUOTE, UNQUOTE, UNQUOTE_SPLICING:
		return true
	}
	return false
}

type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "<unknown>"
	}
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

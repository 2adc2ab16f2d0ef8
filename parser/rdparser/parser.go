package rdparser

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/sjothen/kuao/lisp"
	"github.com/sjothen/kuao/parser/lexer"
	"github.com/sjothen/kuao/parser/token"
)

// Error is a syntax error in otherwise well formed tokens.
type Error struct {
	Source *token.Location
	Msg    string

	// Incomplete is true when the input ended inside an expression, so that
	// more input could complete it.
	Incomplete bool
}

// IsIncomplete returns true if err is a parse error caused by input ending
// inside an expression.
func IsIncomplete(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Incomplete
}

func (err *Error) Error() string {
	return fmt.Sprintf("%v: parse error: %s", err.Source, err.Msg)
}

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// NewStream implements lisp.Reader.
func (*reader) NewStream(name string, r io.Reader) lisp.Stream {
	return New(token.NewScanner(name, r))
}

var quoteSymbols = map[token.Type]string{
	token.QUOTE:            "quote",
	token.QUASIQUOTE:       "quasiquote",
	token.UNQUOTE:          "unquote",
	token.UNQUOTE_SPLICING: "unquote-splicing",
}

// Parser is a lisp parser.
type Parser struct {
	lex *lexer.Lexer
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return &Parser{
		lex: lexer.New(scanner),
	}
}

// ReadForm implements lisp.Stream.
func (p *Parser) ReadForm() (*lisp.LVal, bool, error) {
	return p.ParseForm()
}

// ParseForm parses the next top-level form.  When the input is exhausted
// ParseForm returns a false second value and a nil error.
func (p *Parser) ParseForm() (*lisp.LVal, bool, error) {
	tok := p.lex.NextToken()
	if tok.Type == token.EOF {
		return nil, false, nil
	}
	p.lex.Unread(tok)
	v, err := p.ParseExpression()
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// ParseProgram parses every remaining form.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for {
		v, ok, err := p.ParseForm()
		if err != nil {
			return nil, err
		}
		if !ok {
			return exprs, nil
		}
		exprs = append(exprs, v)
	}
}

// ParseExpression parses one expression.  End of input is an error.
func (p *Parser) ParseExpression() (*lisp.LVal, error) {
	tok := p.lex.NextToken()
	switch tok.Type {
	case token.INT:
		return p.ParseLiteralInt(tok)
	case token.STRING:
		return lisp.String(tok.Text), nil
	case token.BOOL:
		return lisp.Bool(tok.Text == "#t"), nil
	case token.SYMBOL:
		return lisp.Symbol(tok.Text), nil
	case token.QUOTE, token.QUASIQUOTE, token.UNQUOTE, token.UNQUOTE_SPLICING:
		return p.ParseQuote(tok)
	case token.PAREN_L:
		return p.ParseConsExpression(tok)
	case token.ERROR:
		return nil, p.lex.Err()
	case token.EOF:
		return nil, p.incompletef(tok, "unexpected end of input")
	default:
		return nil, p.errorf(tok, "unexpected token '%s'", tok.Type)
	}
}

func (p *Parser) ParseLiteralInt(tok *token.Token) (*lisp.LVal, error) {
	x, err := strconv.Atoi(tok.Text)
	if err != nil {
		return nil, p.errorf(tok, "integer literal overflows int: %v", tok.Text)
	}
	return lisp.Number(x), nil
}

// ParseQuote desugars a quote-family marker followed by an expression into
// the corresponding two element list.
func (p *Parser) ParseQuote(mark *token.Token) (*lisp.LVal, error) {
	v, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return lisp.List(lisp.Symbol(quoteSymbols[mark.Type]), v), nil
}

// ParseConsExpression parses the elements of a list after its opening
// parenthesis, including an optional dotted tail.
func (p *Parser) ParseConsExpression(open *token.Token) (*lisp.LVal, error) {
	var cells []*lisp.LVal
	for {
		tok := p.lex.NextToken()
		switch tok.Type {
		case token.PAREN_R:
			return lisp.List(cells...), nil
		case token.DOT:
			if len(cells) == 0 {
				return nil, p.errorf(tok, "expected expression before '.'")
			}
			tail, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			closing := p.lex.NextToken()
			switch closing.Type {
			case token.ERROR:
				return nil, p.lex.Err()
			case token.EOF:
				return nil, p.incompletef(closing, "unmatched %s opened at %v", open.Type, open.Source)
			}
			if closing.Type != token.PAREN_R {
				return nil, p.errorf(closing, "expected token ')', got '%s'", closing)
			}
			return lisp.ListTail(cells, tail), nil
		case token.EOF:
			return nil, p.incompletef(tok, "unmatched %s opened at %v", open.Type, open.Source)
		case token.ERROR:
			return nil, p.lex.Err()
		default:
			p.lex.Unread(tok)
			x, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			cells = append(cells, x)
		}
	}
}

func (p *Parser) errorf(tok *token.Token, format string, v ...interface{}) error {
	return &Error{
		Source: tok.Source,
		Msg:    fmt.Sprintf(format, v...),
	}
}

func (p *Parser) incompletef(tok *token.Token, format string, v ...interface{}) error {
	return &Error{
		Source:     tok.Source,
		Msg:        fmt.Sprintf(format, v...),
		Incomplete: true,
	}
}

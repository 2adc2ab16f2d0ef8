package lexer

import (
	"fmt"
	"io"
	"strings"

	"github.com/sjothen/kuao/parser/token"
)

const miscWordSymbols = "+-*/<=>!?:$%_&~^"

// escapes maps the character following a backslash in a string literal to
// the character it denotes.
var escapes = map[rune]rune{
	'n':  '\n',
	'r':  '\r',
	'f':  '\f',
	'"':  '"',
	'\\': '\\',
}

// Error is a lexical error (unterminated string, unknown escape, malformed
// boolean, unexpected character).
type Error struct {
	Source *token.Location
	Msg    string
}

func (err *Error) Error() string {
	return fmt.Sprintf("%v: lex error: %s", err.Source, err.Msg)
}

// Lexer produces tokens from a token.Scanner.  A Lexer supports exactly one
// token of pushback through Unread.
type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	unread *token.Token
	err    *Error
}

func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
	}
	return lex
}

// Err returns the error that caused the lexer to produce an ERROR token.
func (lex *Lexer) Err() error {
	if lex.err == nil {
		return nil
	}
	return lex.err
}

// Unread pushes tok back so that it is returned by the next call to
// NextToken.  Unread panics if a token is already pushed back.
func (lex *Lexer) Unread(tok *token.Token) {
	if lex.unread != nil {
		panic("lexer: token already unread")
	}
	lex.unread = tok
}

// NextToken returns the next token in the stream.  Whitespace and comments are
// skipped.  Once an ERROR token has been returned every subsequent call returns
// an ERROR token as well.
func (lex *Lexer) NextToken() *token.Token {
	if lex.unread != nil {
		tok := lex.unread
		lex.unread = nil
		return tok
	}
	if lex.err != nil {
		return lex.emit(token.ERROR, lex.err.Msg)
	}
	err := lex.skipWhitespace()
	if err != nil {
		return lex.emitError(err, true)
	}
	err = lex.readChar()
	if err != nil {
		return lex.emitError(err, true)
	}
	switch lex.ch {
	case '(':
		return lex.charToken(token.PAREN_L)
	case ')':
		return lex.charToken(token.PAREN_R)
	case '.':
		return lex.charToken(token.DOT)
	case '\'':
		return lex.charToken(token.QUOTE)
	case '`':
		return lex.charToken(token.QUASIQUOTE)
	case ',':
		if lex.peekRune() == '@' {
			if err := lex.readChar(); err != nil {
				return lex.emitError(err, false)
			}
			return lex.charToken(token.UNQUOTE_SPLICING)
		}
		return lex.charToken(token.UNQUOTE)
	case '#':
		return lex.readBool()
	case '"':
		return lex.readString()
	default:
		if isDigit(lex.ch) {
			return lex.readNumber()
		}
		if isWordStart(lex.ch) {
			err := lex.readSymbol()
			if err != nil {
				return lex.emitError(err, false)
			}
			return lex.scanner.EmitToken(token.SYMBOL)
		}
		return lex.errorf("unexpected text starting with %q", lex.ch)
	}
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error, expectEOF bool) *token.Token {
	if err == io.EOF {
		if expectEOF {
			return lex.emit(token.EOF, "")
		}
		return lex.errorf("unexpected EOF")
	}
	return lex.errorf("%v", err)
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	lex.err = &Error{
		Source: lex.scanner.LocStart(),
		Msg:    fmt.Sprintf(format, v...),
	}
	return lex.emit(token.ERROR, lex.err.Msg)
}

func (lex *Lexer) charToken(typ token.Type) *token.Token {
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) readBool() *token.Token {
	err := lex.readChar()
	if err == io.EOF {
		return lex.errorf("boolean must be #t or #f")
	}
	if err != nil {
		return lex.emitError(err, false)
	}
	switch lex.ch {
	case 't', 'f':
		return lex.scanner.EmitToken(token.BOOL)
	default:
		return lex.errorf("boolean must be #t or #f (got #%c)", lex.ch)
	}
}

func (lex *Lexer) readString() *token.Token {
	var buf strings.Builder
	for {
		err := lex.readChar()
		if err == io.EOF {
			return lex.errorf("unterminated string literal")
		}
		if err != nil {
			return lex.emitError(err, false)
		}
		switch lex.ch {
		case '"':
			return lex.emit(token.STRING, buf.String())
		case '\\':
			err := lex.readChar()
			if err == io.EOF {
				return lex.errorf("unterminated string literal")
			}
			if err != nil {
				return lex.emitError(err, false)
			}
			c, ok := escapes[lex.ch]
			if !ok {
				return lex.errorf("unknown escape code '%c' in string", lex.ch)
			}
			buf.WriteRune(c)
		default:
			buf.WriteRune(lex.ch)
		}
	}
}

func (lex *Lexer) readSymbol() error {
	for isWord(lex.peekRune()) {
		err := lex.readChar()
		if err != nil {
			return err
		}
	}
	return nil
}

func (lex *Lexer) readNumber() *token.Token {
	for isDigit(lex.peekRune()) {
		err := lex.readChar()
		if err != nil {
			return lex.emitError(err, false)
		}
	}
	// the returned string may not actually be a usable number (overflow), but
	// we can find that out at parse time -- not scan time.
	return lex.scanner.EmitToken(token.INT)
}

func (lex *Lexer) skipWhitespace() error {
	for {
		c, ok := lex.scanner.Peek()
		switch {
		case !ok:
			lex.scanner.Ignore()
			return nil
		case isSpace(c):
			if err := lex.readChar(); err != nil {
				return err
			}
		case c == ';':
			for ok && c != '\n' {
				if err := lex.readChar(); err != nil {
					return err
				}
				c, ok = lex.scanner.Peek()
			}
		default:
			lex.scanner.Ignore()
			return nil
		}
	}
}

// peekRune returns the next rune or zero when none can be read.  Zero is not
// a member of any character class so it stops every scanning loop.
func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readChar() error {
	err := lex.scanner.ScanRune()
	if err != nil {
		return err
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isLetter(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isWordStart(c rune) bool {
	return isLetter(c) || strings.ContainsRune(miscWordSymbols, c)
}

func isWord(c rune) bool {
	return isWordStart(c) || isDigit(c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

package token

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Scanner is a cursor over a rune stream with a single rune of lookahead.
// Scanned runes accumulate into the text of the current token until the text
// is emitted or ignored.
type Scanner struct {
	file string
	r    *bufio.Reader

	c      rune // current rune, the last one scanned
	peek   rune
	peeked bool
	err    error // sticky read error, returned once lookahead is exhausted

	pos  int // byte offset of the next rune
	line int // line of the next rune
	col  int // column of the next rune

	start Location // location of the first rune of the current token
	text  strings.Builder
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, r io.Reader) *Scanner {
	s := &Scanner{
		file: file,
		r:    bufio.NewReader(r),
		line: 1,
		col:  1,
	}
	s.Ignore()
	return s
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.text.Reset()
	s.start = Location{
		File: s.file,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return s.text.String()
}

// Rune returns the current unicode rune that is being scanned.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned, if there are any.  If EOF or an
// invalid utf-8 sequence prevents further runes from being scanned Peek
// returns a false second value and the next call to s.ScanRune will return an
// error that reflects the cause.
func (s *Scanner) Peek() (rune, bool) {
	if s.peeked {
		return s.peek, true
	}
	if s.err != nil {
		return 0, false
	}
	c, n, err := s.r.ReadRune()
	if err != nil {
		s.err = err
		return 0, false
	}
	if c == utf8.RuneError && n == 1 {
		s.err = fmt.Errorf("invalid utf-8 sequence in source text at byte %d", s.pos)
		return 0, false
	}
	s.peek = c
	s.peeked = true
	return c, true
}

// ScanRune consumes the next rune, appending it to the current token text.
// At the end of the input ScanRune returns io.EOF.
func (s *Scanner) ScanRune() error {
	c, ok := s.Peek()
	if !ok {
		return s.err
	}
	s.peeked = false
	s.c = c
	s.text.WriteRune(c)
	s.pos += utf8.RuneLen(c)
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

// LocStart returns a Location referencing the beginning of the current token.
func (s *Scanner) LocStart() *Location {
	loc := s.start
	return &loc
}

// Loc returns a Location referencing the next rune to be scanned.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}

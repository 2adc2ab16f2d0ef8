package rdparser

import (
	"strings"
	"testing"

	"github.com/sjothen/kuao/lisp"
	"github.com/sjothen/kuao/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(src string) ([]*lisp.LVal, error) {
	return New(token.NewScanner("test", strings.NewReader(src))).ParseProgram()
}

func TestParser(t *testing.T) {
	tests := []struct {
		src    string
		result []string
	}{
		{"", nil},
		{"  ; nothing here\n", nil},
		{"1 x \"s\" #t #f", []string{"1", "x", `"s"`, "#t", "#f"}},
		{"()", []string{"()"}},
		{"(a (b c) . d)", []string{"(a (b c) . d)"}},
		{"(a . (b c))", []string{"(a b c)"}},
		{"(a . ())", []string{"(a)"}},
		{"'x `(a ,b ,@c)", []string{"'x", "`(a ,b ,@c)"}},
		{"(quote)", []string{"(quote)"}},
		{"(quote a b)", []string{"(quote a b)"}},
		{"(define (f . args)\n  args)", []string{"(define (f . args) args)"}},
		{`"line\nbreak"`, []string{`"line\nbreak"`}},
	}
	for i, test := range tests {
		exprs, err := parseString(test.src)
		if !assert.NoError(t, err, "test %d", i) {
			continue
		}
		var printed []string
		for _, v := range exprs {
			printed = append(printed, v.String())
		}
		assert.Equal(t, test.result, printed, "test %d", i)
	}
}

func TestParserQuoteDesugar(t *testing.T) {
	exprs, err := parseString(",@x")
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	v := exprs[0]
	assert.Equal(t, lisp.LPair, v.Type)
	assert.Equal(t, "unquote-splicing", v.Car.Str)
	assert.Equal(t, "x", v.Cdr.Car.Str)
	assert.True(t, v.Cdr.Cdr.IsNull())
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		src        string
		msg        string
		incomplete bool
	}{
		{"(1 2", "test:1:5: parse error: unmatched ( opened at test:1:1", true},
		{"'", "test:1:2: parse error: unexpected end of input", true},
		{"(a .", "test:1:5: parse error: unexpected end of input", true},
		{"(a . b", "test:1:7: parse error: unmatched ( opened at test:1:1", true},
		{"(a . b ; comment\n", "test:2:1: parse error: unmatched ( opened at test:1:1", true},
		{")", "test:1:1: parse error: unexpected token ')'", false},
		{"(. 1)", "test:1:2: parse error: expected expression before '.'", false},
		{"(1 . 2 3)", "test:1:8: parse error: expected token ')', got '3'", false},
		{"99999999999999999999", "test:1:1: parse error: integer literal overflows int: 99999999999999999999", false},
		{`(display "abc`, "test:1:10: lex error: unterminated string literal", false},
	}
	for i, test := range tests {
		_, err := parseString(test.src)
		if !assert.Error(t, err, "test %d", i) {
			continue
		}
		assert.Equal(t, test.msg, err.Error(), "test %d", i)
		assert.Equal(t, test.incomplete, IsIncomplete(err), "test %d", i)
	}
}

func TestParseFormStream(t *testing.T) {
	p := New(token.NewScanner("test", strings.NewReader("(+ 1 2) foo (")))
	v, ok, err := p.ReadForm()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "(+ 1 2)", v.String())
	v, ok, err = p.ReadForm()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "foo", v.String())
	_, ok, err = p.ReadForm()
	assert.False(t, ok)
	assert.True(t, IsIncomplete(err))

	p = New(token.NewScanner("test", strings.NewReader("x")))
	_, ok, err = p.ReadForm()
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = p.ReadForm()
	assert.NoError(t, err)
	assert.False(t, ok)
}

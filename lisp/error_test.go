package lisp_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sjothen/kuao/lisp"
	"github.com/sjothen/kuao/parser"
	"github.com/sjothen/kuao/parser/rdparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuntimeErrorKinds(t *testing.T) {
	env, err := lisp.BuildToplevel(lisp.WithReader(parser.NewReader()))
	require.NoError(t, err)
	tests := []struct {
		expr string
		kind error
	}{
		{"undefined-symbol", lisp.ErrUnboundVariable},
		{"(car 1 2)", lisp.ErrArityMismatch},
		{"((lambda (x) x))", lisp.ErrArityMismatch},
		{"(+ 'a 1)", lisp.ErrTypeMismatch},
		{"(car 1)", lisp.ErrTypeMismatch},
		{"(+ 1 . 2)", lisp.ErrImproperListApplication},
		{"()", lisp.ErrIllegalEmptyApplication},
		{"(1 2)", lisp.ErrIllegalInvocation},
		{`("f")`, lisp.ErrIllegalInvocation},
	}
	for i, test := range tests {
		exprs, err := parser.ParseLVal([]byte(test.expr))
		require.NoError(t, err, "test %d", i)
		require.Len(t, exprs, 1, "test %d", i)
		_, err = env.Eval(exprs[0])
		assert.ErrorIs(t, err, test.kind, "test %d: %s", i, test.expr)
		var rerr *lisp.RuntimeError
		if assert.True(t, errors.As(err, &rerr), "test %d", i) {
			assert.NotEmpty(t, rerr.Msg, "test %d", i)
		}
	}
}

func TestLoad(t *testing.T) {
	var stdout bytes.Buffer
	env, err := lisp.BuildToplevel(
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(&stdout),
	)
	require.NoError(t, err)

	err = env.LoadString("test", `(define x 1) (display x) (newline)`)
	require.NoError(t, err)
	assert.Equal(t, "1\n", stdout.String())

	// forms before an error take effect
	err = env.LoadString("test", "(define y 2) (car y) (define z 3)")
	assert.ErrorIs(t, err, lisp.ErrTypeMismatch)
	assert.EqualError(t, err, "test: type mismatch: cannot take car of non-pair 2")
	_, err = env.Lookup(lisp.Symbol("y"))
	assert.NoError(t, err)
	_, err = env.Lookup(lisp.Symbol("z"))
	assert.ErrorIs(t, err, lisp.ErrUnboundVariable)

	// forms are read one at a time, so a syntax error is only found after
	// the preceding forms are evaluated
	err = env.LoadString("test", "(define w 4) (1 2")
	assert.True(t, rdparser.IsIncomplete(err))
	_, err = env.Lookup(lisp.Symbol("w"))
	assert.NoError(t, err)

	env, err = lisp.BuildToplevel()
	require.NoError(t, err)
	assert.Error(t, env.LoadString("test", "1"))
}

func TestTrace(t *testing.T) {
	var stderr bytes.Buffer
	env, err := lisp.BuildToplevel(
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(&stderr),
		lisp.WithTrace(true),
	)
	require.NoError(t, err)
	err = env.LoadString("test", "(define x 1) x (car x)")
	assert.Error(t, err)
	expect := "kuao: test: (define x 1) => #(undef)\n" +
		"kuao: test: x => 1\n" +
		"kuao: test: (car x) => type mismatch: cannot take car of non-pair 1\n"
	assert.Equal(t, expect, stderr.String())
}

// Package kuaotest runs table driven tests of lisp expressions.
package kuaotest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sjothen/kuao/lisp"
	"github.com/sjothen/kuao/lisp/lisplib"
	"github.com/sjothen/kuao/parser"
)

// Runner is a test runner.
type Runner struct {
	// Loader is used to initialize the test environment after the builtins
	// are installed.  When Loader is nil lisplib.LoadLibrary is used.
	Loader func(*lisp.LEnv) error

	// Config is applied to each test environment.
	Config []lisp.Config
}

// NewEnv returns a toplevel environment whose display output is written to
// stdout.
func (r *Runner) NewEnv(stdout *bytes.Buffer) (*lisp.LEnv, error) {
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stdout),
	}
	env, err := lisp.BuildToplevel(append(config, r.Config...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lisp environment: %w", err)
	}
	loader := r.Loader
	if loader == nil {
		loader = lisplib.LoadLibrary
	}
	err = loader(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	return env, nil
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result, or the error message
	Output string // text written by display while evaluating Expr
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// EvalString parses the single expression in expr and evaluates it in env.
// The printed result is returned, or the message of the runtime error.
func EvalString(env *lisp.LEnv, expr string) (string, error) {
	v, err := parser.ParseLVal([]byte(expr))
	if err != nil {
		return "", fmt.Errorf("parse error: %w", err)
	}
	if len(v) != 1 {
		return "", fmt.Errorf("expected one expression (got %d)", len(v))
	}
	result, err := env.Eval(v[0])
	if err != nil {
		return err.Error(), nil
	}
	return result.String(), nil
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs using
// the default Runner.
func RunTestSuite(t *testing.T, tests TestSuite) {
	(&Runner{}).RunTestSuite(t, tests)
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			var stdout bytes.Buffer
			env, err := r.NewEnv(&stdout)
			if err != nil {
				t.Fatal(err)
			}
			for j, expr := range test.TestSequence {
				stdout.Reset()
				result, err := EvalString(env, expr.Expr)
				if err != nil {
					t.Errorf("test %d %q: expr %d: %v", i, test.Name, j, err)
					continue
				}
				if result != expr.Result {
					t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
				}
				if stdout.String() != expr.Output {
					t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, stdout.String())
				}
			}
		})
	}
}

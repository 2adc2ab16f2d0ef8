package repl

import (
	"bytes"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/sjothen/kuao/lisp"
	"github.com/sjothen/kuao/lisp/lisplib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptReader is a LineReader that returns a fixed sequence of lines and
// records the prompt in effect for each read.
type scriptReader struct {
	lines   []string
	errs    map[int]error
	prompt  string
	prompts []string
	n       int
}

func (r *scriptReader) Readline() (string, error) {
	r.prompts = append(r.prompts, r.prompt)
	i := r.n
	r.n++
	if err, ok := r.errs[i]; ok {
		return "", err
	}
	if i >= len(r.lines) {
		return "", io.EOF
	}
	return r.lines[i], nil
}

func (r *scriptReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

func newTestEnv(t *testing.T, stdout io.Writer) *lisp.LEnv {
	env, err := lisplib.NewEnv(lisp.WithStdout(stdout))
	require.NoError(t, err)
	return env
}

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := newTestEnv(t, &stdout)
	rl := &scriptReader{
		prompt: "> ",
		lines: []string{
			"(define x 1)",
			"(+ x",
			"   2)",
			"(car x)",
			`(display "hi") x`,
			"'(1 . 2)",
		},
	}
	err := Run(env, rl, "> ", &stdout, &stderr)
	assert.NoError(t, err)
	assert.Equal(t, "3\nhi1\n(1 . 2)\n", stdout.String())
	assert.Equal(t, "type mismatch: cannot take car of non-pair 1\n", stderr.String())
	assert.Equal(t, []string{"> ", "> ", "  ", "> ", "> ", "> ", "> "}, rl.prompts)
}

func TestRunInterrupt(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := newTestEnv(t, &stdout)
	rl := &scriptReader{
		prompt: "> ",
		lines:  []string{"(+ 1", "", "(+ 2 3)"},
		errs:   map[int]error{1: readline.ErrInterrupt},
	}
	err := Run(env, rl, "> ", &stdout, &stderr)
	assert.NoError(t, err)
	assert.Equal(t, "5\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunSyntaxError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := newTestEnv(t, &stdout)
	rl := &scriptReader{
		prompt: "> ",
		lines:  []string{"1", "(1 . 2 3)", "4"},
	}
	err := Run(env, rl, "> ", &stdout, &stderr)
	assert.Error(t, err)
	assert.Equal(t, "1\n", stdout.String())
	assert.Equal(t, 2, rl.n)
}

func TestRunDottedTailContinues(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := newTestEnv(t, &stdout)
	rl := &scriptReader{
		prompt: "> ",
		lines:  []string{"'(a . b", ")"},
	}
	err := Run(env, rl, "> ", &stdout, &stderr)
	assert.NoError(t, err)
	assert.Equal(t, "(a . b)\n", stdout.String())
	assert.Equal(t, []string{"> ", "  ", "> "}, rl.prompts)
}

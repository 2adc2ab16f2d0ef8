package repl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sjothen/kuao/lisp"
	"github.com/sjothen/kuao/parser"
	"github.com/sjothen/kuao/parser/rdparser"
)

// LineReader is the line editing interface used by the repl.  It is satisfied
// by *readline.Instance.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// RunRepl runs a simple repl reading from the terminal.  Runtime errors are
// reported and the session continues.  Syntax errors end the session and are
// returned.
func RunRepl(env *lisp.LEnv, prompt string) error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()
	return Run(env, rl, prompt, rl.Stdout(), rl.Stderr())
}

// Run evaluates forms read from rl until the input ends.  The values of forms
// are printed to stdout, runtime errors to stderr.
func Run(env *lisp.LEnv, rl LineReader, prompt string, stdout, stderr io.Writer) error {
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf bytes.Buffer
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		buf.WriteString(line)
		buf.WriteByte('\n')

		forms, err := parser.ParseLVal(buf.Bytes())
		if rdparser.IsIncomplete(err) {
			rl.SetPrompt(contPrompt)
			continue
		}
		buf.Reset()
		rl.SetPrompt(prompt)
		if err != nil {
			return err
		}
		for _, form := range forms {
			v, err := env.Eval(form)
			if err != nil {
				errln(stderr, err)
				continue
			}
			if v.Type != lisp.LUndefined {
				fmt.Fprintln(stdout, v)
			}
		}
	}
}

func errln(w io.Writer, v ...interface{}) {
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, v...)
}

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sjothen/kuao/lisp"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run lisp code",
	Long:  `Run lisp code supplied via the command line or a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for i, arg := range args {
			if runExpression {
				name := fmt.Sprintf("<expression %d>", i+1)
				err = runSource(env, name, strings.NewReader(arg), runPrint)
			} else {
				err = runFile(env, arg, runPrint)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	},
}

func runFile(env *lisp.LEnv, path string, print bool) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return runSource(env, path, bytes.NewReader(b), print)
}

// runSource evaluates the forms in r one at a time, stopping at the first
// error.  When print is true the value of each form is written to stdout.
func runSource(env *lisp.LEnv, name string, r io.Reader, print bool) error {
	if !print {
		return env.Load(name, r)
	}
	stream := env.Runtime.Reader.NewStream(name, r)
	for {
		form, ok, err := stream.ReadForm()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		v, err := env.Eval(form)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if v.Type != lisp.LUndefined {
			fmt.Fprintln(env.Runtime.Stdout, v)
		}
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}

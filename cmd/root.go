package cmd

import (
	"fmt"
	"os"

	"github.com/sjothen/kuao/lisp"
	"github.com/sjothen/kuao/lisp/lisplib"
	"github.com/sjothen/kuao/parser"
	"github.com/sjothen/kuao/repl"
	"github.com/spf13/cobra"
)

var (
	rootNoPrelude bool
	rootStrictSet bool
	rootMaxDepth  int
	rootTrace     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kuao [file]",
	Short: "A small Scheme interpreter",
	Long: `Evaluate kuao lisp code.  With a file argument the file is run and any
error aborts the run.  Without arguments an interactive session is started.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if len(args) == 0 {
			err = repl.RunRepl(env, "kuao> ")
		} else {
			err = runFile(env, args[0], false)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen once
// to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootNoPrelude, "no-prelude", false,
		"Do not load the prelude before evaluating input")
	rootCmd.PersistentFlags().BoolVar(&rootStrictSet, "strict-set", false,
		"Make set! of an unbound variable an error")
	rootCmd.PersistentFlags().IntVar(&rootMaxDepth, "max-depth", lisp.DefaultMaxDepth,
		"Maximum nested evaluation depth (0 for no limit)")
	rootCmd.PersistentFlags().BoolVar(&rootTrace, "trace", false,
		"Log each top-level form and its value to stderr")
}

// newEnv builds the toplevel environment described by the persistent flags.
func newEnv() (*lisp.LEnv, error) {
	env, err := lisp.BuildToplevel(
		lisp.WithReader(parser.NewReader()),
		lisp.WithStrictSet(rootStrictSet),
		lisp.WithMaxDepth(rootMaxDepth),
		lisp.WithTrace(rootTrace),
	)
	if err != nil {
		return nil, err
	}
	if rootNoPrelude {
		return env, nil
	}
	err = lisplib.LoadLibrary(env)
	if err != nil {
		return nil, err
	}
	return env, nil
}

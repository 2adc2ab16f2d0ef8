// Package lisplib is used to conveniently load the prelude for the kuao
// environment
package lisplib

import (
	_ "embed" // for the prelude source

	"github.com/sjothen/kuao/lisp"
	"github.com/sjothen/kuao/parser"
)

// BootFileName is the name reported in errors raised by the prelude.
const BootFileName = "boot.kuao"

//go:embed boot.kuao
var bootSource string

// LoadLibrary evaluates the prelude in env, which should be a toplevel
// environment.  If env has no reader the default parser is installed.
func LoadLibrary(env *lisp.LEnv) error {
	if env.Runtime.Reader == nil {
		env.Runtime.Reader = parser.NewReader()
	}
	return env.LoadString(BootFileName, bootSource)
}

// NewEnv builds a toplevel environment configured by config and loads the
// prelude into it.
func NewEnv(config ...lisp.Config) (*lisp.LEnv, error) {
	config = append([]lisp.Config{lisp.WithReader(parser.NewReader())}, config...)
	env, err := lisp.BuildToplevel(config...)
	if err != nil {
		return nil, err
	}
	err = LoadLibrary(env)
	if err != nil {
		return nil, err
	}
	return env, nil
}

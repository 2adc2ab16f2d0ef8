package lisp

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// LEnv is a lisp environment frame.  Frames form a chain through Parent; the
// frame without a parent is the toplevel environment.
type LEnv struct {
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
}

// NewEnv returns initializes and returns a new LEnv.  A nil parent creates a
// root environment with a fresh Runtime.
func NewEnv(parent *LEnv) *LEnv {
	var rt *Runtime
	if parent != nil {
		rt = parent.Runtime
	} else {
		rt = newRuntime()
	}
	return &LEnv{
		Scope:   make(map[string]*LVal),
		Parent:  parent,
		Runtime: rt,
	}
}

// BuildToplevel returns a fresh root environment containing every special
// operator and primitive, configured by config.
func BuildToplevel(config ...Config) (*LEnv, error) {
	env := NewEnv(nil)
	err := InitializeUserEnv(env, config...)
	if err != nil {
		return nil, err
	}
	return env, nil
}

// InitializeUserEnv applies config to the runtime of env and adds the
// default special operators and builtins to env.
func InitializeUserEnv(env *LEnv, config ...Config) error {
	for _, fn := range config {
		err := fn(env.Runtime)
		if err != nil {
			return err
		}
	}
	env.AddSpecialOps()
	env.AddBuiltins()
	return nil
}

// Root returns the toplevel environment of the chain containing env.
func (env *LEnv) Root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// Lookup returns the value bound to sym in the nearest frame binding it.
func (env *LEnv) Lookup(sym *LVal) (*LVal, error) {
	if sym.Type != LSymbol {
		return nil, rerrorf(TypeMismatch, "cannot look up non-symbol %v", sym)
	}
	frame := env.find(sym.Str)
	if frame == nil {
		return nil, rerrorf(UnboundVariable, "%s", sym.Str)
	}
	return frame.Scope[sym.Str], nil
}

// Define binds sym to v in env itself, shadowing any binding of sym in an
// ancestor frame.
func (env *LEnv) Define(sym, v *LVal) {
	if sym.Type != LSymbol {
		panic("non-symbol key: " + sym.String())
	}
	if v == nil {
		panic("nil value")
	}
	env.Scope[sym.Str] = v
}

// Update rebinds sym to v in the nearest frame that binds it.  If no frame
// binds sym then sym is defined in env, unless the runtime requires strict
// set! semantics.
func (env *LEnv) Update(sym, v *LVal) error {
	frame := env.find(sym.Str)
	if frame == nil {
		if env.Runtime.StrictSet {
			return rerrorf(UnboundVariable, "cannot set! %s", sym.Str)
		}
		frame = env
	}
	frame.Define(sym, v)
	return nil
}

func (env *LEnv) find(name string) *LEnv {
	for ; env != nil; env = env.Parent {
		if _, ok := env.Scope[name]; ok {
			return env
		}
	}
	return nil
}

// AddSpecialOps binds the given special operators to their names in env.  When
// called with no arguments AddSpecialOps adds the DefaultSpecialOps to env.
func (env *LEnv) AddSpecialOps(ops ...LBuiltinDef) {
	if len(ops) == 0 {
		ops = DefaultSpecialOps()
	}
	for _, op := range ops {
		k := Symbol(op.Name())
		if env.find(k.Str) != nil {
			panic("symbol already defined: " + op.Name())
		}
		env.Define(k, SpecialOp(op.Name(), op.Eval))
	}
}

// AddBuiltins binds the given funs to their names in env.  When called with no
// arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		k := Symbol(f.Name())
		if env.find(k.Str) != nil {
			panic("symbol already defined: " + f.Name())
		}
		env.Define(k, Primitive(f.Name(), f.Eval))
	}
}

// Load reads forms from r and evaluates each in env before reading the next.
// Any read or evaluation error stops loading and is returned.
func (env *LEnv) Load(name string, r io.Reader) error {
	rt := env.Runtime
	if rt.Reader == nil {
		return errors.New("no reader configured for environment")
	}
	stream := rt.Reader.NewStream(name, r)
	for {
		form, ok, err := stream.ReadForm()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		v, err := env.Eval(form)
		if rt.Trace {
			rt.Logger().Printf("%s: %v => %v", name, form, traceResult(v, err))
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
}

// LoadString evaluates the forms in source.
func (env *LEnv) LoadString(name string, source string) error {
	return env.Load(name, strings.NewReader(source))
}

func traceResult(v *LVal, err error) interface{} {
	if err != nil {
		return err
	}
	return v
}

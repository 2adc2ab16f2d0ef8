package lisp

// Eval evaluates v in the context (scope) of env and returns the resulting
// value.  Deferred tail calls are driven to completion so the returned value
// is never a tail-call marker.
func (env *LEnv) Eval(v *LVal) (*LVal, error) {
	return drive(env.eval(v))
}

// drive is the trampoline.  It repeatedly evaluates deferred tail calls until
// a concrete value is produced.
func drive(v *LVal, err error) (*LVal, error) {
	for err == nil && v.Type == LMarkTailCall {
		v, err = v.Env.evalSequence(v.Body)
	}
	return v, err
}

// eval evaluates v and may return a deferred tail call.
func (env *LEnv) eval(v *LVal) (*LVal, error) {
	switch v.Type {
	case LString, LNumber, LBool:
		return v, nil
	case LSymbol:
		return env.Lookup(v)
	case LNull:
		return nil, rerrorf(IllegalEmptyApplication, "cannot evaluate empty procedure application")
	case LPair:
		return env.evalPair(v)
	case LUndefined, LClosure, LMacro, LSpecialOp, LPrimitive:
		// Values spliced into syntax by macros evaluate to themselves.
		return v, nil
	default:
		return nil, rerrorf(ErrorUnknown, "cannot evaluate %v", v.Type)
	}
}

func (env *LEnv) evalPair(s *LVal) (*LVal, error) {
	if !s.Proper {
		return nil, rerrorf(ImproperListApplication, "cannot evaluate improper list application: %v", s)
	}
	rt := env.Runtime
	rt.depth++
	defer func() { rt.depth-- }()
	if rt.MaxDepth > 0 && rt.depth > rt.MaxDepth {
		return nil, rerrorf(StackOverflow, "maximum evaluation depth %d exceeded", rt.MaxDepth)
	}

	f, err := env.Eval(s.Car)
	if err != nil {
		return nil, err
	}
	switch f.Type {
	case LSpecialOp:
		return f.Builtin(env, s.Cdr)
	case LPrimitive:
		args, err := env.evalArgs(s.Cdr)
		if err != nil {
			return nil, err
		}
		return f.Builtin(env, args)
	case LClosure:
		args, err := env.evalArgs(s.Cdr)
		if err != nil {
			return nil, err
		}
		return applyClosure(f, args)
	case LMacro:
		expansion, err := expandMacro(f, s.Cdr)
		if err != nil {
			return nil, err
		}
		expansion, err = env.macroexpand(expansion)
		if err != nil {
			return nil, err
		}
		// Expansion is syntactic so the result is evaluated in the caller's
		// environment, not the macro's.
		return tailCall(env, List(expansion)), nil
	default:
		return nil, rerrorf(IllegalInvocation, "cannot apply '%v' to '%v'", f, s.Cdr)
	}
}

// evalArgs evaluates each element of the proper list args from left to right.
func (env *LEnv) evalArgs(args *LVal) (*LVal, error) {
	var vals []*LVal
	for ; args.Type == LPair; args = args.Cdr {
		v, err := env.Eval(args.Car)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return List(vals...), nil
}

// evalSequence evaluates the forms in the proper list body.  All forms but the
// last are driven to a value; the last is evaluated in tail position and may
// produce a deferred call.  An empty body produces Undefined.
func (env *LEnv) evalSequence(body *LVal) (*LVal, error) {
	if body.Type != LPair {
		return Undefined(), nil
	}
	for ; body.Cdr.Type == LPair; body = body.Cdr {
		_, err := env.Eval(body.Car)
		if err != nil {
			return nil, err
		}
	}
	return env.eval(body.Car)
}

// applyClosure binds args in a new frame extending the closure's captured
// environment and returns the body as a deferred call.
func applyClosure(fun *LVal, args *LVal) (*LVal, error) {
	callenv := NewEnv(fun.Env)
	err := bindFormals(callenv, "closure", fun.Str, fun.Formals, args)
	if err != nil {
		return nil, err
	}
	return tailCall(callenv, fun.Body), nil
}

// bindFormals binds the parameter list formals to the values in args within
// env.
func bindFormals(env *LEnv, kind string, name string, formals *LVal, args *LVal) error {
	switch formals.Type {
	case LNull:
		if !args.IsNull() {
			return arityError(kind, name, 0, true, args.Len())
		}
		return nil
	case LSymbol:
		env.Define(formals, args)
		return nil
	case LPair:
		nparam := formals.Len()
		nargs := args.Len()
		if (formals.Proper && nargs != nparam) || (!formals.Proper && nargs < nparam) {
			return arityError(kind, name, nparam, formals.Proper, nargs)
		}
		p, a := formals, args
		for ; p.Type == LPair; p, a = p.Cdr, a.Cdr {
			env.Define(p.Car, a.Car)
		}
		if p.Type == LSymbol {
			env.Define(p, a)
		}
		return nil
	default:
		return rerrorf(TypeMismatch, "%s params must be a symbol or list, given %v", kind, formals)
	}
}

func arityError(kind string, name string, nparam int, exact bool, nargs int) error {
	who := kind
	if name != "" {
		who += " " + name
	}
	plus := ""
	if !exact {
		plus = "+"
	}
	return rerrorf(ArityMismatch, "%s requires %d%s arguments, given %d", who, nparam, plus, nargs)
}

// checkFormals validates a parameter list: the empty list, a symbol, or a
// possibly improper list of symbols.
func checkFormals(kind string, formals *LVal) error {
	p := formals
	for ; p.Type == LPair; p = p.Cdr {
		if p.Car.Type != LSymbol {
			return rerrorf(TypeMismatch, "%s parameter must be a symbol, given %v", kind, p.Car)
		}
	}
	if !p.IsNull() && p.Type != LSymbol {
		return rerrorf(TypeMismatch, "%s params must be a symbol or list, given %v", kind, formals)
	}
	return nil
}

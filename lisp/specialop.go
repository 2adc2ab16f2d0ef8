package lisp

var langSpecialOps = []*langBuiltin{
	{"quote", opQuote},
	{"quasiquote", opQuasiquote},
	{"define", opDefine},
	{"define-macro", opDefineMacro},
	{"set!", opSet},
	{"lambda", opLambda},
	{"if", opIf},
	{"begin", opBegin},
	{"let", opLet},
	{"and", opAnd},
	{"or", opOr},
}

// DefaultSpecialOps returns the default set of LBuiltinDef added to LEnv
// objects when LEnv.AddSpecialOps is called without arguments.
func DefaultSpecialOps() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langSpecialOps))
	for i := range ops {
		ops[i] = langSpecialOps[i]
	}
	return ops
}

func opQuote(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() != 1 {
		return nil, berrArity("quote", "1 argument", args.Len())
	}
	return args.Car, nil
}

// (define name expr)
// (define (name . params) body...)
func opDefine(env *LEnv, args *LVal) (*LVal, error) {
	n := args.Len()
	if n < 2 {
		return nil, berrArity("define", "at least 2 arguments", n)
	}
	target := args.Car
	switch target.Type {
	case LSymbol:
		if n != 2 {
			return nil, berrArity("define", "2 arguments", n)
		}
		v, err := env.Eval(args.Cdr.Car)
		if err != nil {
			return nil, err
		}
		env.Define(target, v)
	case LPair:
		name := target.Car
		if name.Type != LSymbol {
			return nil, berrType("define", "symbol", name)
		}
		if err := checkFormals("closure", target.Cdr); err != nil {
			return nil, err
		}
		fun := Closure(env, target.Cdr, args.Cdr)
		fun.Str = name.Str
		env.Define(name, fun)
	default:
		return nil, berrType("define", "symbol or list", target)
	}
	return Undefined(), nil
}

// (set! name expr)
func opSet(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() != 2 {
		return nil, berrArity("set!", "2 arguments", args.Len())
	}
	sym := args.Car
	if sym.Type != LSymbol {
		return nil, berrType("set!", "symbol", sym)
	}
	v, err := env.Eval(args.Cdr.Car)
	if err != nil {
		return nil, err
	}
	err = env.Update(sym, v)
	if err != nil {
		return nil, err
	}
	return Undefined(), nil
}

// (lambda params body...)
func opLambda(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() < 2 {
		return nil, berrArity("lambda", "at least 2 arguments", args.Len())
	}
	if err := checkFormals("lambda", args.Car); err != nil {
		return nil, err
	}
	return Closure(env, args.Car, args.Cdr), nil
}

// (if test-form then-form [else-form])
func opIf(env *LEnv, args *LVal) (*LVal, error) {
	n := args.Len()
	if n != 2 && n != 3 {
		return nil, berrArity("if", "2 or 3 arguments", n)
	}
	test, err := env.Eval(args.Car)
	if err != nil {
		return nil, err
	}
	if !test.IsFalse() {
		return env.eval(args.Cdr.Car)
	}
	if n == 2 {
		return Undefined(), nil
	}
	return env.eval(args.Cdr.Cdr.Car)
}

func opBegin(env *LEnv, args *LVal) (*LVal, error) {
	return env.evalSequence(args)
}

// (let ((name init) ...) body...)
//
// let is an immediately applied lambda: the initializers are evaluated in env
// and bound to the names in a frame extending env.
func opLet(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() < 2 {
		return nil, berrArity("let", "at least 2 arguments", args.Len())
	}
	bindings := args.Car
	if !bindings.IsList() {
		return nil, berrType("let", "list of bindings", bindings)
	}
	var names, vals []*LVal
	for b := bindings; b.Type == LPair; b = b.Cdr {
		bind := b.Car
		if !bind.IsList() || bind.Len() != 2 || bind.Car.Type != LSymbol {
			return nil, rerrorf(TypeMismatch, "key-value pair in 'let' must be proper list of length 2, given %v", bind)
		}
		v, err := env.Eval(bind.Cdr.Car)
		if err != nil {
			return nil, err
		}
		names = append(names, bind.Car)
		vals = append(vals, v)
	}
	fun := Closure(env, List(names...), args.Cdr)
	return applyClosure(fun, List(vals...))
}

func opAnd(env *LEnv, args *LVal) (*LVal, error) {
	if args.IsNull() {
		return Bool(true), nil
	}
	for ; args.Cdr.Type == LPair; args = args.Cdr {
		v, err := env.Eval(args.Car)
		if err != nil {
			return nil, err
		}
		if v.IsFalse() {
			return v, nil
		}
	}
	return env.eval(args.Car)
}

func opOr(env *LEnv, args *LVal) (*LVal, error) {
	if args.IsNull() {
		return Bool(false), nil
	}
	for ; args.Cdr.Type == LPair; args = args.Cdr {
		v, err := env.Eval(args.Car)
		if err != nil {
			return nil, err
		}
		if !v.IsFalse() {
			return v, nil
		}
	}
	return env.eval(args.Car)
}

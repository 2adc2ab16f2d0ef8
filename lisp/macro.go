package lisp

// (define-macro (name . params) template)
func opDefineMacro(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() != 2 {
		return nil, berrArity("define-macro", "2 arguments", args.Len())
	}
	head := args.Car
	if head.Type != LPair {
		return nil, berrType("define-macro", "list", head)
	}
	name := head.Car
	if name.Type != LSymbol {
		return nil, berrType("define-macro", "symbol", name)
	}
	if err := checkFormals("macro", head.Cdr); err != nil {
		return nil, err
	}
	env.Define(name, Macro(name.Str, env, head.Cdr, args.Cdr.Car))
	return Undefined(), nil
}

// expandMacro performs one expansion of mac applied to the unevaluated
// argument forms.  A template headed by quasiquote is instantiated in a frame
// binding the macro parameters; any other body is the expansion itself.
func expandMacro(mac *LVal, forms *LVal) (*LVal, error) {
	menv := NewEnv(mac.Env)
	err := bindFormals(menv, "macro", mac.Str, mac.Formals, forms)
	if err != nil {
		return nil, err
	}
	if !mac.Body.isForm("quasiquote") {
		return mac.Body, nil
	}
	return menv.Eval(mac.Body)
}

// macroCall returns the macro named by the head of form, if form is an
// application of a macro bound in env.
func (env *LEnv) macroCall(form *LVal) (*LVal, bool) {
	if form.Type != LPair || !form.Proper || form.Car.Type != LSymbol {
		return nil, false
	}
	frame := env.find(form.Car.Str)
	if frame == nil {
		return nil, false
	}
	v := frame.Scope[form.Car.Str]
	if v.Type != LMacro {
		return nil, false
	}
	return v, true
}

// macroexpand1 expands form once if it is a macro application.  The second
// return value reports whether an expansion happened.
func (env *LEnv) macroexpand1(form *LVal) (*LVal, bool, error) {
	mac, ok := env.macroCall(form)
	if !ok {
		return form, false, nil
	}
	v, err := expandMacro(mac, form.Cdr)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// macroexpand expands form until its head is no longer a macro.
func (env *LEnv) macroexpand(form *LVal) (*LVal, error) {
	for {
		v, ok, err := env.macroexpand1(form)
		if err != nil {
			return nil, err
		}
		if !ok {
			return form, nil
		}
		form = v
	}
}

func builtinMacroexpand1(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() != 1 {
		return nil, berrArity("macroexpand-1", "1 argument", args.Len())
	}
	v, _, err := env.macroexpand1(args.Car)
	return v, err
}

func builtinMacroexpand(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() != 1 {
		return nil, berrArity("macroexpand", "1 argument", args.Len())
	}
	return env.macroexpand(args.Car)
}

package lisp

const (
	symQuasiquote      = "quasiquote"
	symUnquote         = "unquote"
	symUnquoteSplicing = "unquote-splicing"
)

// (quasiquote template)
func opQuasiquote(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() != 1 {
		return nil, berrArity(symQuasiquote, "1 argument", args.Len())
	}
	v, err := env.quasiquote(args.Car, 1)
	if err != nil {
		return nil, err
	}
	if v.Type == LMarkSplice {
		return nil, rerrorf(TypeMismatch, "unquote-splicing used outside of a list")
	}
	return v, nil
}

// quasiquote instantiates tmpl at the given nesting depth.  The result of an
// unquote-splicing at depth 1 is a splice marker which the enclosing list walk
// concatenates into its result.
func (env *LEnv) quasiquote(tmpl *LVal, depth int) (*LVal, error) {
	if tmpl.Type != LPair {
		return tmpl, nil
	}
	if tmpl.Car.Type == LSymbol {
		switch tmpl.Car.Str {
		case symUnquote, symUnquoteSplicing:
			operand, err := qqOperand(tmpl)
			if err != nil {
				return nil, err
			}
			if depth == 1 {
				v, err := env.Eval(operand)
				if err != nil {
					return nil, err
				}
				if tmpl.Car.Str == symUnquoteSplicing {
					return splice(v), nil
				}
				return v, nil
			}
			inner, err := env.quasiquote(operand, depth-1)
			if err != nil {
				return nil, err
			}
			return qqWrap(tmpl.Car.Str, inner)
		case symQuasiquote:
			operand, err := qqOperand(tmpl)
			if err != nil {
				return nil, err
			}
			inner, err := env.quasiquote(operand, depth+1)
			if err != nil {
				return nil, err
			}
			return qqWrap(symQuasiquote, inner)
		}
	}
	return env.quasiquoteList(tmpl, depth)
}

// quasiquoteList processes the elements of a list template.  The spine is
// walked iteratively; a cdr that is itself an unquote-family form (a dotted
// tail written as `(a . ,b)`) is processed as the tail.
func (env *LEnv) quasiquoteList(tmpl *LVal, depth int) (*LVal, error) {
	var cells []*LVal
	p := tmpl
	for {
		v, err := env.quasiquote(p.Car, depth)
		if err != nil {
			return nil, err
		}
		cells, err = appendSpliced(cells, v)
		if err != nil {
			return nil, err
		}
		if p.Cdr.Type != LPair || isQuasiForm(p.Cdr) {
			break
		}
		p = p.Cdr
	}
	tail, err := env.quasiquote(p.Cdr, depth)
	if err != nil {
		return nil, err
	}
	if tail.Type == LMarkSplice {
		if !tail.Car.IsList() {
			return nil, rerrorf(TypeMismatch, "unquote-splicing requires a list, given %v", tail.Car)
		}
		return ListTail(cells, tail.Car), nil
	}
	return ListTail(cells, tail), nil
}

func appendSpliced(cells []*LVal, v *LVal) ([]*LVal, error) {
	if v.Type != LMarkSplice {
		return append(cells, v), nil
	}
	if !v.Car.IsList() {
		return nil, rerrorf(TypeMismatch, "unquote-splicing requires a list, given %v", v.Car)
	}
	return append(cells, v.Car.Slice()...), nil
}

func isQuasiForm(v *LVal) bool {
	return v.isForm(symUnquote) || v.isForm(symUnquoteSplicing) || v.isForm(symQuasiquote)
}

func qqOperand(form *LVal) (*LVal, error) {
	if form.Cdr.Type != LPair || !form.Cdr.Cdr.IsNull() {
		return nil, berrArity(form.Car.Str, "1 argument", form.Cdr.Len())
	}
	return form.Cdr.Car, nil
}

// qqWrap rebuilds a nested quasiquote-family form as literal data.
func qqWrap(name string, inner *LVal) (*LVal, error) {
	if inner.Type == LMarkSplice {
		if !inner.Car.IsList() {
			return nil, rerrorf(TypeMismatch, "unquote-splicing requires a list, given %v", inner.Car)
		}
		return Cons(Symbol(name), inner.Car), nil
	}
	return List(Symbol(name), inner), nil
}

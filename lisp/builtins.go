package lisp

import "io"

// LBuiltinDef is a built-in function or special operator.
type LBuiltinDef interface {
	Name() string
	Eval(env *LEnv, args *LVal) (*LVal, error)
}

type langBuiltin struct {
	name string
	fun  LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Eval(env *LEnv, args *LVal) (*LVal, error) {
	return fun.fun(env, args)
}

// NewBuiltin returns an LBuiltinDef that can be passed to AddBuiltins or
// AddSpecialOps.
func NewBuiltin(name string, fn LBuiltin) LBuiltinDef {
	return &langBuiltin{name, fn}
}

var langBuiltins = []*langBuiltin{
	{"+", builtinAdd},
	{"-", builtinSub},
	{"*", builtinMul},
	{"<", builtinLT},
	{">", builtinGT},
	{"<=", builtinLEq},
	{">=", builtinGEq},
	{"=", builtinEqNum},
	{"car", builtinCAR},
	{"cdr", builtinCDR},
	{"cons", builtinCons},
	{"null?", builtinNullP},
	{"pair?", builtinPairP},
	{"list?", builtinListP},
	{"not", builtinNot},
	{"apply", builtinApply},
	{"eqv?", builtinEqvP},
	{"eval", builtinEval},
	{"display", builtinDisplay},
	{"newline", builtinNewline},
	{"macroexpand", builtinMacroexpand},
	{"macroexpand-1", builtinMacroexpand1},
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins))
	for i := range ops {
		ops[i] = langBuiltins[i]
	}
	return ops
}

func checkNumbers(name string, args *LVal) error {
	for ; args.Type == LPair; args = args.Cdr {
		if args.Car.Type != LNumber {
			return berrType(name, "number", args.Car)
		}
	}
	return nil
}

func builtinAdd(env *LEnv, args *LVal) (*LVal, error) {
	if err := checkNumbers("+", args); err != nil {
		return nil, err
	}
	sum := 0
	for ; args.Type == LPair; args = args.Cdr {
		sum += args.Car.Num
	}
	return Number(sum), nil
}

func builtinMul(env *LEnv, args *LVal) (*LVal, error) {
	if err := checkNumbers("*", args); err != nil {
		return nil, err
	}
	prod := 1
	for ; args.Type == LPair; args = args.Cdr {
		prod *= args.Car.Num
	}
	return Number(prod), nil
}

func builtinSub(env *LEnv, args *LVal) (*LVal, error) {
	if args.IsNull() {
		return nil, berrArity("-", "at least 1 argument", 0)
	}
	if err := checkNumbers("-", args); err != nil {
		return nil, err
	}
	if args.Cdr.IsNull() {
		return Number(-args.Car.Num), nil
	}
	diff := args.Car.Num
	for args = args.Cdr; args.Type == LPair; args = args.Cdr {
		diff -= args.Car.Num
	}
	return Number(diff), nil
}

// compareNumbers checks that cmp holds for every adjacent pair of arguments,
// left to right, stopping at the first pair for which it does not.
func compareNumbers(name string, args *LVal, cmp func(a, b int) bool) (*LVal, error) {
	if args.Len() < 2 {
		return nil, berrArity(name, "at least 2 arguments", args.Len())
	}
	prev := args.Car
	if prev.Type != LNumber {
		return nil, berrType(name, "number", prev)
	}
	for args = args.Cdr; args.Type == LPair; args = args.Cdr {
		x := args.Car
		if x.Type != LNumber {
			return nil, berrType(name, "number", x)
		}
		if !cmp(prev.Num, x.Num) {
			return Bool(false), nil
		}
		prev = x
	}
	return Bool(true), nil
}

func builtinLT(env *LEnv, args *LVal) (*LVal, error) {
	return compareNumbers("<", args, func(a, b int) bool { return a < b })
}

func builtinGT(env *LEnv, args *LVal) (*LVal, error) {
	return compareNumbers(">", args, func(a, b int) bool { return a > b })
}

func builtinLEq(env *LEnv, args *LVal) (*LVal, error) {
	return compareNumbers("<=", args, func(a, b int) bool { return a <= b })
}

func builtinGEq(env *LEnv, args *LVal) (*LVal, error) {
	return compareNumbers(">=", args, func(a, b int) bool { return a >= b })
}

func builtinEqNum(env *LEnv, args *LVal) (*LVal, error) {
	return compareNumbers("=", args, func(a, b int) bool { return a == b })
}

func builtinCAR(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() != 1 {
		return nil, berrArity("car", "1 argument", args.Len())
	}
	if args.Car.Type != LPair {
		return nil, rerrorf(TypeMismatch, "cannot take car of non-pair %v", args.Car)
	}
	return args.Car.Car, nil
}

func builtinCDR(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() != 1 {
		return nil, berrArity("cdr", "1 argument", args.Len())
	}
	if args.Car.Type != LPair {
		return nil, rerrorf(TypeMismatch, "cannot take cdr of non-pair %v", args.Car)
	}
	return args.Car.Cdr, nil
}

func builtinCons(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() != 2 {
		return nil, berrArity("cons", "2 arguments", args.Len())
	}
	return Cons(args.Car, args.Cdr.Car), nil
}

func unaryPredicate(name string, args *LVal, pred func(v *LVal) bool) (*LVal, error) {
	if args.Len() != 1 {
		return nil, berrArity(name, "1 argument", args.Len())
	}
	return Bool(pred(args.Car)), nil
}

func builtinNullP(env *LEnv, args *LVal) (*LVal, error) {
	return unaryPredicate("null?", args, (*LVal).IsNull)
}

func builtinPairP(env *LEnv, args *LVal) (*LVal, error) {
	return unaryPredicate("pair?", args, func(v *LVal) bool { return v.Type == LPair })
}

func builtinListP(env *LEnv, args *LVal) (*LVal, error) {
	return unaryPredicate("list?", args, (*LVal).IsList)
}

func builtinNot(env *LEnv, args *LVal) (*LVal, error) {
	return unaryPredicate("not", args, (*LVal).IsFalse)
}

// (eqv? a b)
func builtinEqvP(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() != 2 {
		return nil, berrArity("eqv?", "2 arguments", args.Len())
	}
	return Bool(Eqv(args.Car, args.Cdr.Car)), nil
}

// Eqv reports whether a and b are equivalent: symbols and numbers compare by
// value, every other value by identity.
func Eqv(a, b *LVal) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LSymbol:
		return a.Str == b.Str
	case LNumber:
		return a.Num == b.Num
	case LNull:
		return true
	default:
		return a == b
	}
}

// (apply fn list)
func builtinApply(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() != 2 {
		return nil, berrArity("apply", "2 arguments", args.Len())
	}
	fn, lis := args.Car, args.Cdr.Car
	if !lis.IsList() {
		return nil, berrType("apply", "list", lis)
	}
	switch fn.Type {
	case LPrimitive:
		return fn.Builtin(env, lis)
	case LClosure:
		return applyClosure(fn, lis)
	default:
		return nil, rerrorf(IllegalInvocation, "cannot apply '%v' to '%v'", fn, lis)
	}
}

// (eval expr) evaluates expr in the toplevel environment.
func builtinEval(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() != 1 {
		return nil, berrArity("eval", "1 argument", args.Len())
	}
	return env.Root().eval(args.Car)
}

func builtinDisplay(env *LEnv, args *LVal) (*LVal, error) {
	if args.Len() != 1 {
		return nil, berrArity("display", "1 argument", args.Len())
	}
	_, err := io.WriteString(env.Runtime.Stdout, args.Car.Display())
	if err != nil {
		return nil, err
	}
	return Undefined(), nil
}

func builtinNewline(env *LEnv, args *LVal) (*LVal, error) {
	if !args.IsNull() {
		return nil, berrArity("newline", "0 arguments", args.Len())
	}
	_, err := io.WriteString(env.Runtime.Stdout, "\n")
	if err != nil {
		return nil, err
	}
	return Undefined(), nil
}

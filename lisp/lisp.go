package lisp

import (
	"strconv"
	"strings"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LString
	LNumber
	LSymbol
	LBool
	LPair
	LNull
	LUndefined
	LClosure
	LMacro
	LSpecialOp
	LPrimitive

	// Markers used internally by the evaluator.  Marker values are never
	// visible to lisp code.
	LMarkTailCall
	LMarkSplice

	numLValTypes
)

var lvalTypeStrings = [numLValTypes]string{
	LInvalid:      "INVALID",
	LString:       "string",
	LNumber:       "number",
	LSymbol:       "symbol",
	LBool:         "boolean",
	LPair:         "pair",
	LNull:         "null",
	LUndefined:    "undefined",
	LClosure:      "closure",
	LMacro:        "macro",
	LSpecialOp:    "special-op",
	LPrimitive:    "primitive",
	LMarkTailCall: "tail-call-marker",
	LMarkSplice:   "splice-marker",
}

func (t LValType) String() string {
	if t >= numLValTypes {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LBuiltin is a host function implementing a special operator or a
// primitive.  Special operators receive their unevaluated operand list,
// primitives receive the list of evaluated arguments.  Either may return a
// deferred tail call.
type LBuiltin func(env *LEnv, args *LVal) (*LVal, error)

// LVal is a lisp value.  Which fields are meaningful depends on Type.
type LVal struct {
	Type LValType

	// Num is the value of an LNumber.
	Num int

	// Str holds the contents of an LString, the name of an LSymbol, or the
	// name of a callable (empty for anonymous closures).
	Str string

	// Pair cells.  Proper is computed by Cons and never changes.
	Car    *LVal
	Cdr    *LVal
	Proper bool

	// Callable fields.  For closures and macros Env is the captured
	// environment.  For tail-call markers Body is a sequence of forms and Env
	// is the environment to evaluate them in.
	Builtin LBuiltin
	Env     *LEnv
	Formals *LVal
	Body    *LVal
}

var (
	lnull  = &LVal{Type: LNull}
	lundef = &LVal{Type: LUndefined}
	ltrue  = &LVal{Type: LBool}
	lfalse = &LVal{Type: LBool}
)

// Null returns the empty list.
func Null() *LVal {
	return lnull
}

// Undefined returns the value produced by forms that have no useful value.
func Undefined() *LVal {
	return lundef
}

// Bool returns one of the two boolean singletons.
func Bool(b bool) *LVal {
	if b {
		return ltrue
	}
	return lfalse
}

// String returns an LVal representing the string s.
func String(s string) *LVal {
	return &LVal{
		Type: LString,
		Str:  s,
	}
}

// Number returns an LVal representing the number x.
func Number(x int) *LVal {
	return &LVal{
		Type: LNumber,
		Num:  x,
	}
}

// Symbol returns an LVal representing the symbol s.
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// Cons returns a new pair.  The pair is proper if cdr is the empty list or a
// proper pair.
func Cons(car, cdr *LVal) *LVal {
	return &LVal{
		Type:   LPair,
		Car:    car,
		Cdr:    cdr,
		Proper: cdr.IsNull() || (cdr.Type == LPair && cdr.Proper),
	}
}

// List returns a proper list containing the given values.
func List(v ...*LVal) *LVal {
	return ListTail(v, Null())
}

// ListTail returns a list containing the given values followed by tail.  When
// tail is not the empty list the result is improper.
func ListTail(v []*LVal, tail *LVal) *LVal {
	lis := tail
	for i := len(v) - 1; i >= 0; i-- {
		lis = Cons(v[i], lis)
	}
	return lis
}

// SpecialOp returns an LVal representing a special operator.
func SpecialOp(name string, fn LBuiltin) *LVal {
	return &LVal{
		Type:    LSpecialOp,
		Str:     name,
		Builtin: fn,
	}
}

// Primitive returns an LVal representing a primitive function.
func Primitive(name string, fn LBuiltin) *LVal {
	return &LVal{
		Type:    LPrimitive,
		Str:     name,
		Builtin: fn,
	}
}

// Closure returns a function that closes over env.
func Closure(env *LEnv, formals *LVal, body *LVal) *LVal {
	return &LVal{
		Type:    LClosure,
		Env:     env,
		Formals: formals,
		Body:    body,
	}
}

// Macro returns a macro named name that was defined in env.
func Macro(name string, env *LEnv, formals *LVal, body *LVal) *LVal {
	return &LVal{
		Type:    LMacro,
		Str:     name,
		Env:     env,
		Formals: formals,
		Body:    body,
	}
}

// tailCall returns a deferred evaluation of the sequence body in env.
func tailCall(env *LEnv, body *LVal) *LVal {
	return &LVal{
		Type: LMarkTailCall,
		Env:  env,
		Body: body,
	}
}

func splice(lis *LVal) *LVal {
	return &LVal{
		Type: LMarkSplice,
		Car:  lis,
	}
}

// IsNull returns true if v is the empty list.
func (v *LVal) IsNull() bool {
	return v == lnull
}

// IsFalse returns true if v is the false boolean.  Every other value is
// true in a conditional.
func (v *LVal) IsFalse() bool {
	return v == lfalse
}

// IsList returns true if v is the empty list or a proper pair.
func (v *LVal) IsList() bool {
	return v.IsNull() || (v.Type == LPair && v.Proper)
}

// isForm returns true if v is a pair whose head is the symbol name.
func (v *LVal) isForm(name string) bool {
	return v.Type == LPair && v.Car.Type == LSymbol && v.Car.Str == name
}

// Len returns the number of pairs in the spine of v.  An improper tail is not
// counted.
func (v *LVal) Len() int {
	n := 0
	for ; v.Type == LPair; v = v.Cdr {
		n++
	}
	return n
}

// Slice returns the cars of the pairs in the spine of v.
func (v *LVal) Slice() []*LVal {
	var cells []*LVal
	for ; v.Type == LPair; v = v.Cdr {
		cells = append(cells, v.Car)
	}
	return cells
}

// Tail returns the value terminating the spine of v: the empty list for a
// proper list, otherwise the final cdr.
func (v *LVal) Tail() *LVal {
	for v.Type == LPair {
		v = v.Cdr
	}
	return v
}

var quoteShorthand = map[string]string{
	"quote":            "'",
	"quasiquote":       "`",
	"unquote":          ",",
	"unquote-splicing": ",@",
}

// String returns the printed representation of v.
func (v *LVal) String() string {
	var buf strings.Builder
	v.write(&buf)
	return buf.String()
}

// Display returns the text written by the display primitive: the raw
// contents of a string, the printed form of any other value.
func (v *LVal) Display() string {
	if v.Type == LString {
		return v.Str
	}
	return v.String()
}

func (v *LVal) write(buf *strings.Builder) {
	switch v.Type {
	case LString:
		writeQuoted(buf, v.Str)
	case LNumber:
		buf.WriteString(strconv.Itoa(v.Num))
	case LSymbol:
		buf.WriteString(v.Str)
	case LBool:
		if v == ltrue {
			buf.WriteString("#t")
		} else {
			buf.WriteString("#f")
		}
	case LNull:
		buf.WriteString("()")
	case LUndefined:
		buf.WriteString("#(undef)")
	case LPair:
		writePair(buf, v)
	case LClosure:
		if v.Str == "" {
			buf.WriteString("#(lambda)")
		} else {
			buf.WriteString("#(function " + v.Str + ")")
		}
	case LMacro:
		buf.WriteString("#(macro " + v.Str + ")")
	case LSpecialOp:
		buf.WriteString("#(syntax " + v.Str + ")")
	case LPrimitive:
		buf.WriteString("#(primitive " + v.Str + ")")
	default:
		buf.WriteString("#(" + v.Type.String() + ")")
	}
}

func writePair(buf *strings.Builder, v *LVal) {
	if v.Car.Type == LSymbol && v.Cdr.Type == LPair && v.Cdr.Cdr.IsNull() {
		if mark, ok := quoteShorthand[v.Car.Str]; ok {
			buf.WriteString(mark)
			v.Cdr.Car.write(buf)
			return
		}
	}
	buf.WriteString("(")
	for {
		v.Car.write(buf)
		switch {
		case v.Cdr.IsNull():
			buf.WriteString(")")
			return
		case v.Cdr.Type == LPair:
			buf.WriteString(" ")
			v = v.Cdr
		default:
			buf.WriteString(" . ")
			v.Cdr.write(buf)
			buf.WriteString(")")
			return
		}
	}
}

func writeQuoted(buf *strings.Builder, s string) {
	buf.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			buf.WriteRune(c)
		}
	}
	buf.WriteByte('"')
}

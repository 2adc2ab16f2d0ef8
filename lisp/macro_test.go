package lisp_test

import (
	"testing"

	"github.com/sjothen/kuao/kuaotest"
)

func TestMacros(t *testing.T) {
	tests := kuaotest.TestSuite{
		{"quasiquote", kuaotest.TestSequence{
			{"`(reverse '(1 2 3))", "(reverse '(1 2 3))", ""},
			{"`,(reverse '(1 2 3))", "(3 2 1)", ""},
			{"`(1 ,(+ 1 1) ,@(list 3 4))", "(1 2 3 4)", ""},
			{"`(1 ,@(list 2 3) 4)", "(1 2 3 4)", ""},
			{"(quasiquote (1 (unquote-splicing (list 2 3)) 4))", "(1 2 3 4)", ""},
			{"`(1 ,@'() 2)", "(1 2)", ""},
			{"`(1 . ,(+ 1 1))", "(1 . 2)", ""},
			{"`(1 ,@'(2 3) . 4)", "(1 2 3 . 4)", ""},
			{"(let ((xs '(2 1))) `(a ,xs ,@xs))", "(a (2 1) 2 1)", ""},
			{"`(1 `(2 ,(3 ,(+ 1 3))))", "(1 `(2 ,(3 4)))", ""},
			{"`,test-symbol", "unbound variable: test-symbol", ""},
			{"`,@'(1 2)", "type mismatch: unquote-splicing used outside of a list", ""},
			{"`(1 ,@2)", "type mismatch: unquote-splicing requires a list, given 2", ""},
		}},
		{"define-macro", kuaotest.TestSequence{
			{"(define-macro (m0) `(+ 1 1))", "#(undef)", ""},
			{"(define-macro (m1 x) `(+ ,x 1))", "#(undef)", ""},
			{"(define-macro (m2 x y) `(+ ,x ,y))", "#(undef)", ""},
			{"m0", "#(macro m0)", ""},
			{"(m0)", "2", ""},
			{"(m1 1)", "2", ""},
			{"(m2 1 2)", "3", ""},
			{"(m1)", "arity mismatch: macro m1 requires 1 arguments, given 0", ""},
			{"(macroexpand '(m0))", "(+ 1 1)", ""},
			{"(macroexpand '(m1 (* 2 3)))", "(+ (* 2 3) 1)", ""},
			{"(macroexpand '(m2 (* 2 3) (m0)))", "(+ (* 2 3) (m0))", ""},
			{"(macroexpand-1 '(m1 (m0)))", "(+ (m0) 1)", ""},
			{"(macroexpand '(+ 1 2))", "(+ 1 2)", ""},
			{"(define-macro m 1)", "type mismatch: argument to 'define-macro' must be of type list, given m", ""},
		}},
		{"explicit quasiquote template", kuaotest.TestSequence{
			{"(define-macro (my-if c t e) (quasiquote (if (unquote c) (unquote t) (unquote e))))", "#(undef)", ""},
			{"(my-if #t 1 2)", "1", ""},
			{"(my-if #f (undefined-function) 2)", "2", ""},
			{"(my-if (= 1 1) 'yes (undefined-function))", "yes", ""},
			{"(macroexpand '(my-if a b c))", "(if a b c)", ""},
		}},
		{"macroexpand", kuaotest.TestSequence{
			{"(define-macro (my-or . xs) `(or ,@xs))", "#(undef)", ""},
			{"(define-macro (m . xs) `(my-or ,(car xs) (m ,@(cdr xs))))", "#(undef)", ""},
			{"(macroexpand-1 '(m 1 2 3))", "(my-or 1 (m 2 3))", ""},
			{"(macroexpand '(m 1 2 3))", "(or 1 (m 2 3))", ""},
			{"(m 1 2 3)", "1", ""},
		}},
		{"macro arguments are not evaluated", kuaotest.TestSequence{
			{"(define-macro (swap-args f a b) `(,f ,b ,a))", "#(undef)", ""},
			{"(swap-args - 1 10)", "9", ""},
			{"(define-macro (my-quote x) `',x)", "#(undef)", ""},
			{"(my-quote (undefined-function 1))", "(undefined-function 1)", ""},
		}},
		{"expansion evaluates in caller env", kuaotest.TestSequence{
			{"(define-macro (five) 5)", "#(undef)", ""},
			{"(five)", "5", ""},
			{"(define-macro (inc-x) (+ x 1))", "#(undef)", ""},
			{"(inc-x)", "unbound variable: x", ""},
			{"(define x 10)", "#(undef)", ""},
			{"(inc-x)", "11", ""},
			{"(let ((x 20)) (inc-x))", "21", ""},
		}},
		{"macro defining macros", kuaotest.TestSequence{
			{"(define-macro (def-const name val) `(define-macro (,name) ,val))", "#(undef)", ""},
			{"(def-const seven 7)", "#(undef)", ""},
			{"(seven)", "7", ""},
		}},
		{"prelude macros", kuaotest.TestSequence{
			{"(cond ((= 1 2) 'a) ((= 1 1) 'b) (else 'c))", "b", ""},
			{"(cond ((= 1 2) 'a) (else 'c))", "c", ""},
			{"(cond (#f 1))", "#f", ""},
			{"(macroexpand-1 '(cond (else 1 2)))", "(begin 1 2)", ""},
			{"(when #t 1 2)", "2", ""},
			{"(when #f 1)", "#(undef)", ""},
			{"(macroexpand '(when x y))", "(if x (begin y))", ""},
			{"(unless #f 1)", "1", ""},
			{"(unless #t 1)", "#f", ""},
		}},
	}
	kuaotest.RunTestSuite(t, tests)
}

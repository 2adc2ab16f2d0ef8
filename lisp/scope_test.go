package lisp_test

import (
	"testing"

	"github.com/sjothen/kuao/kuaotest"
	"github.com/sjothen/kuao/lisp"
)

func TestScope(t *testing.T) {
	tests := kuaotest.TestSuite{
		{"lexical scope", kuaotest.TestSequence{
			{"(let ((x 1)) x)", "1", ""},
			{"x", "unbound variable: x", ""},
			{"(define x 1)", "#(undef)", ""},
			{"(let ((x 2)) x)", "2", ""},
			{"x", "1", ""},
			{"(let ((x 3)) (define (fn y) (+ x y)))", "#(undef)", ""},
			{"fn", "unbound variable: fn", ""},
			{"(define fn (let ((x 3)) (lambda (y) (+ x y))))", "#(undef)", ""},
			{"(let ((x 2)) (fn 2))", "5", ""},
			{"(((lambda (x) (lambda () (+ x 2))) 3))", "5", ""},
		}},
		{"toplevel rebinding is visible to closures", kuaotest.TestSequence{
			{"(define x 1)", "#(undef)", ""},
			{"(define (f) x)", "#(undef)", ""},
			{"(set! x 2)", "#(undef)", ""},
			{"(f)", "2", ""},
			{"(define x 3)", "#(undef)", ""},
			{"(f)", "3", ""},
		}},
		{"closures share frames", kuaotest.TestSequence{
			{`(define (make-counter)
				(let ((n 0))
					(lambda ()
						(set! n (+ n 1))
						n)))`, "#(undef)", ""},
			{"(define c1 (make-counter))", "#(undef)", ""},
			{"(define c2 (make-counter))", "#(undef)", ""},
			{"(c1)", "1", ""},
			{"(c1)", "2", ""},
			{"(c2)", "1", ""},
		}},
		{"self reference", kuaotest.TestSequence{
			{"(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))", "#(undef)", ""},
			{"(fact 10)", "3628800", ""},
		}},
	}
	kuaotest.RunTestSuite(t, tests)
}

func TestStrictSet(t *testing.T) {
	tests := kuaotest.TestSuite{
		{"strict set!", kuaotest.TestSequence{
			{"(set! y 5)", "unbound variable: cannot set! y", ""},
			{"y", "unbound variable: y", ""},
			{"(define y 1)", "#(undef)", ""},
			{"(set! y 5)", "#(undef)", ""},
			{"y", "5", ""},
		}},
	}
	r := &kuaotest.Runner{Config: []lisp.Config{lisp.WithStrictSet(true)}}
	r.RunTestSuite(t, tests)
}

package calc_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"decimal", "3.5", 3.5},
		{"lead-dot", ".5", 0.5},
		{"plus", "+5", 5},
		{"neg", "-5", -5},
		{"negneg", "--5", 5},
		{"plusneg", "+-5", -5},
		{"add", "4+5+6", 4 + 5 + 6},
		{"sub", "4-5-6", 4 - 5 - 6},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "100/4/5", 5},
		{"prec", "2 + 3 * 4", 14},
		{"left-assoc", "10 - 3 + 2", 9},
		{"left-assoc-div", "20 / 4 * 2", 10},
		{"grouped", "(2 + 3) * 4", 20},
		{"neg-add", "-5 + 10", 5},
		{"mixed", "10 + 2 * 6 - (4 / 2)", 20},
		{"nested", "100 / (2 + 3) * 2", 40},
		{"neg-group", "-(2 - 5) * 2", 6},
		{"zero-numerator", "0 / 5", 0},
		{"inf", "1" + strings.Repeat("0", 400) + " * 0 + 1", math.NaN()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := calc.Tokenize(c.src)
			if err != nil {
				t.Fatal(c.src, "failed to scan:", err)
			}
			a, err := calc.Parse(toks)
			if err != nil {
				t.Fatal(c.src, "failed to parse:", err)
			}
			r, err := calc.Eval(a)
			if err != nil {
				t.Fatal("evaluation error:", err)
			}
			if r != c.r && !(math.IsNaN(r) && math.IsNaN(c.r)) {
				t.Errorf("wrong result: want %g, got %g", c.r, r)
			}
		})
	}
}

func TestEvalDivZero(t *testing.T) {
	cases := []struct {
		name string
		src  string
		pos  int
	}{
		{"literal", "10 / 0", 3},
		{"decimal", "1 / 0.0", 2},
		{"neg-zero", "1 / -0", 2},
		{"computed", "1 / (2 - 2)", 2},
		{"nested", "(1 + 1/0) * 2", 6},
		{"zero-zero", "0/0", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := calc.Tokenize(c.src)
			if err != nil {
				t.Fatal(err)
			}
			a, err := calc.Parse(toks)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			r, err := calc.Eval(a)
			if err == nil {
				t.Fatalf("%q: expected error, got %g", c.src, r)
			}
			var ee *calc.EvalError
			if !errors.As(err, &ee) {
				t.Fatalf("%q: wrong error type %T", c.src, err)
			}
			if ee.Reason != "division by zero" {
				t.Errorf("%q: wrong reason %q", c.src, ee.Reason)
			}
			if ee.Pos() != c.pos {
				t.Errorf("%q: want position %d, got %d", c.src, c.pos, ee.Pos())
			}
		})
	}
}

func TestEvalTinyDivisor(t *testing.T) {
	r, err := calc.Eval(&calc.BinaryOp{
		Op:    calc.OpDiv,
		Left:  &calc.Number{Value: 1},
		Right: &calc.Number{Value: math.SmallestNonzeroFloat64},
	})
	if err != nil {
		t.Fatalf("nonzero divisor rejected: %v", err)
	}
	if !math.IsInf(r, 1) {
		t.Errorf("want +Inf, got %g", r)
	}
}

func TestEvalOperators(t *testing.T) {
	// Every operator must have defined semantics.
	for _, op := range []calc.ArithOp{calc.OpAdd, calc.OpSub, calc.OpMul, calc.OpDiv} {
		n := &calc.BinaryOp{Op: op, Left: &calc.Number{Value: 6}, Right: &calc.Number{Value: 3}}
		if _, err := calc.Eval(n); err != nil {
			t.Errorf("%v: %v", op, err)
		}
	}
	for _, s := range []calc.Sign{calc.SignPlus, calc.SignMinus} {
		n := &calc.UnaryOp{Op: s, Operand: &calc.Number{Value: 6}}
		if _, err := calc.Eval(n); err != nil {
			t.Errorf("%v: %v", s, err)
		}
	}
}

func TestEvalInvalidOperatorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic for invalid operator")
		}
	}()
	calc.Eval(&calc.BinaryOp{Op: calc.ArithOp(42), Left: &calc.Number{}, Right: &calc.Number{Value: 1}})
}

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
		{"decimal", "0.5+.5", 1},
		{"neg", "-1", -1},
		{"add", "4+5+6", 15},
		{"sub", "4-5-6", -7},
		{"mul", "4*5*6", 120},
		{"div", "8/4/2", 1},
		{"div-frac", "100/8", 12.5},
		{"pow", "2 ^ 3 ^ 2", 512},
		{"pow-chain", "4^3^2", 262144},
		{"prec-mul", "2 + 3 * 4", 14},
		{"prec-parens", "(2 + 3) * 4", 20},
		{"prec-mixed", "1+2*3-4/2", 5},
		{"prec-pow-mul", "2 ^ 2 * 3", 12},
		{"prec-mul-pow", "3 * 2 ^ 2", 12},
		{"prec-pow-rhs", "2*3^2", 18},
		{"unary-start", "-3 + 5", 2},
		{"unary-after-op", "3 - -5", 8},
		{"unary-no-space", "3--5", 8},
		{"unary-paren", "(-2) ^ 2", 4},
		{"unary-pow", "-2^2", 4},
		{"unary-exponent", "2^-1", 0.5},
		{"nested", "((1))", 1},
		{"nested-sub", "1 - (2 - 3)", 2},
		{"nested-mul", "2*(3+4)*5", 70},
		{"nested-pow", "(1+2)^(1+1)", 9},
		{"nested-deep", "((2 + 3) * (4 - (1 + 1))) / 5", 2},
		{"spaces", " 1 + 2 ", 3},
		{"spaces-in-number", "1 2 + 3", 15},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Eval(c.src)
			if err != nil {
				t.Fatalf("%q: evaluation error: %v", c.src, err)
			}
			if r != c.r {
				t.Errorf("%q: wrong result: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvalNonFinite(t *testing.T) {
	r, err := calc.Eval("(-8) ^ (1/3)")
	if err != nil {
		t.Fatal("evaluation error:", err)
	}
	if !math.IsNaN(r) {
		t.Errorf("want NaN, got %g", r)
	}
	r, err = calc.Eval("10 ^ 400")
	if err != nil {
		t.Fatal("evaluation error:", err)
	}
	if !math.IsInf(r, 1) {
		t.Errorf("want +Inf, got %g", r)
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  calc.Kind
		col  int
	}{
		{"div-zero", "5 / 0", calc.DivisionByZero, 3},
		{"div-zero-expr", "5 / (1 - 1)", calc.DivisionByZero, 3},
		{"div-neg-zero", "5/-0", calc.DivisionByZero, 2},
		{"unclosed", "(1 + 2", calc.MismatchedParentheses, 7},
		{"unopened", "1 + 2)", calc.MismatchedParentheses, 6},
		{"backward", ")(", calc.MismatchedParentheses, 1},
		{"trailing-op", "1 +", calc.MisplacedOperator, 3},
		{"leading-op", "* 2", calc.MisplacedOperator, 1},
		{"double-op", "1 + * 2", calc.MisplacedOperator, 3},
		{"empty", "", calc.MisplacedOperator, 1},
		{"blank", "   ", calc.MisplacedOperator, 1},
		{"empty-parens", "()", calc.MisplacedOperator, 2},
		{"empty-nested", "1 + ()", calc.MisplacedOperator, 6},
		{"adjacent-terms", "(2)(3)", calc.MisplacedOperator, 6},
		{"number-then-parens", "2(3)", calc.MisplacedOperator, 4},
		{"invalid-char", "2 $ 3", calc.InvalidCharacter, 3},
		{"letter", "1 + x", calc.InvalidCharacter, 5},
		{"bracket", "[1]", calc.InvalidCharacter, 1},
		{"bad-number", "1.2.3", calc.NumericDecodeFailure, 1},
		{"bare-minus", "-", calc.NumericDecodeFailure, 1},
		{"minus-paren", "-(1)", calc.NumericDecodeFailure, 1},
		{"dot", "1 + .", calc.NumericDecodeFailure, 5},
		{"overflow", "1" + strings.Repeat("0", 400), calc.NumericDecodeFailure, 1},
		{"overflow-neg", "2 * -1" + strings.Repeat("0", 400), calc.NumericDecodeFailure, 5},
		{"underflow", "1/0." + strings.Repeat("0", 400) + "1", calc.NumericDecodeFailure, 3},
		{"too-deep", strings.Repeat("(", calc.MaxNesting+1) + "1" + strings.Repeat(")", calc.MaxNesting+1), calc.MismatchedParentheses, calc.MaxNesting + 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Eval(c.src)
			if err == nil {
				t.Fatalf("%q: want %v, got result %g", c.src, c.err, r)
			}
			if !errors.Is(err, c.err) {
				t.Errorf("%q: want %v, got %v", c.src, c.err, err)
			}
			var ie calc.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q: error %v does not implement InputError", c.src, err)
			}
			if ie.Pos() != c.col {
				t.Errorf("%q: want error at %d, got %d (%v)", c.src, c.col, ie.Pos(), err)
			}
		})
	}
}

func TestEvalTokensUnbalanced(t *testing.T) {
	cases := []string{"(1", "1)", "((1)", "(1))"}
	for _, src := range cases {
		_, err := calc.EvalTokens(calc.Tokenize(src))
		if !errors.Is(err, calc.MismatchedParentheses) {
			t.Errorf("%q: want %v, got %v", src, calc.MismatchedParentheses, err)
		}
	}
}

func TestEvalTokensUnknownOperator(t *testing.T) {
	toks := []calc.Token{
		{Kind: calc.TokenNum, Text: "1", Col: 1},
		{Kind: calc.TokenOp, Text: "%", Col: 2},
		{Kind: calc.TokenNum, Text: "2", Col: 3},
	}
	_, err := calc.EvalTokens(toks)
	if !errors.Is(err, calc.UnknownOperator) {
		t.Fatalf("want %v, got %v", calc.UnknownOperator, err)
	}
	var ie calc.InputError
	if !errors.As(err, &ie) || ie.Pos() != 2 {
		t.Errorf("want error at 2, got %v", err)
	}
}

func TestEvalNesting(t *testing.T) {
	src := strings.Repeat("(", calc.MaxNesting) + "1" + strings.Repeat(")", calc.MaxNesting)
	r, err := calc.Eval(src)
	if err != nil {
		t.Fatalf("nesting %d deep: evaluation error: %v", calc.MaxNesting, err)
	}
	if r != 1 {
		t.Errorf("nesting %d deep: want 1, got %g", calc.MaxNesting, r)
	}
}

func TestEvalOutOfRangeMessage(t *testing.T) {
	_, err := calc.Eval("1" + strings.Repeat("0", 400))
	if err == nil || !strings.HasSuffix(err.Error(), ": out of range") {
		t.Errorf("want out of range error, got %v", err)
	}
}

func TestEvalTokensMatchesEval(t *testing.T) {
	srcs := []string{"2 + 3 * 4", "(2 + 3) * 4", "2 ^ 3 ^ 2", "3 - -5", "(-2) ^ 2"}
	for _, src := range srcs {
		want, err := calc.Eval(src)
		if err != nil {
			t.Fatalf("%q: evaluation error: %v", src, err)
		}
		got, err := calc.EvalTokens(calc.Tokenize(src))
		if err != nil {
			t.Fatalf("%q: evaluation error: %v", src, err)
		}
		if got != want {
			t.Errorf("%q: Eval gave %g but EvalTokens gave %g", src, want, got)
		}
	}
}

func TestEvalIdempotent(t *testing.T) {
	srcs := []string{"2 + 3 * 4", "(1 + 2) ^ 2 / 3", "-1.5 * (2 - -2)"}
	for _, src := range srcs {
		a, err := calc.Eval(src)
		if err != nil {
			t.Fatalf("%q: evaluation error: %v", src, err)
		}
		// An error in between must not leave anything behind.
		if _, err := calc.Eval("1 / 0"); err == nil {
			t.Fatal("1 / 0 did not fail")
		}
		b, err := calc.Eval(src)
		if err != nil {
			t.Fatalf("%q: evaluation error on second try: %v", src, err)
		}
		if a != b {
			t.Errorf("%q: first result %g, second %g", src, a, b)
		}
	}
}

func TestEvalWhitespace(t *testing.T) {
	cases := [][]string{
		{"1+2", " 1 + 2 ", "\t1\t+\t2\n"},
		{"(2+3)*4", "( 2 + 3 ) * 4", "(2+3) *4"},
		{"3--5", "3 - -5", "3 -  - 5"},
	}
	for _, c := range cases {
		want, err := calc.Eval(c[0])
		if err != nil {
			t.Fatalf("%q: evaluation error: %v", c[0], err)
		}
		for _, src := range c[1:] {
			got, err := calc.Eval(src)
			if err != nil {
				t.Errorf("%q: evaluation error: %v", src, err)
				continue
			}
			if got != want {
				t.Errorf("%q: want %g like %q, got %g", src, want, c[0], got)
			}
		}
	}
}

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{"5 / 0", `3: division by zero "/"`},
		{"(1 + 2", "7: mismatched parentheses: unclosed ("},
		{"1 + 2)", `6: mismatched parentheses ")"`},
		{"2 $ 3", `3: invalid character "$"`},
		{"1.2.3", `1: invalid number "1.2.3"`},
		{"1 +", `3: misplaced operator "+"`},
		{"", "1: misplaced operator: no expression"},
	}
	for _, c := range cases {
		_, err := calc.Eval(c.src)
		if err == nil {
			t.Errorf("%q: no error", c.src)
			continue
		}
		if err.Error() != c.msg {
			t.Errorf("%q: want message %q, got %q", c.src, c.msg, err.Error())
		}
	}
}

package calc

import "math"

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

// binop gets the binary operator for a token string. If there is no such
// operator, then the result has a prec of 0.
func binop(text string) operator {
	switch text {
	case "+", "-":
		return operator{1, false}
	case "*", "/":
		return operator{2, false}
	case "^":
		return operator{3, true}
	default:
		return operator{}
	}
}

// yields returns whether an operator already on the stack must be applied
// before next is pushed.
func (p operator) yields(next operator) bool {
	if p.prec != next.prec {
		return p.prec > next.prec
	}
	return !next.right
}

// Precedence returns the binding strength of a binary operator. Higher binds
// more tightly. The boolean result is false if op is not an operator.
func Precedence(op string) (int, bool) {
	p := binop(op)
	return int(p.prec), p.prec != 0
}

// Apply computes a op b. Division by exactly zero is an error. Exponentiation
// follows math.Pow, so e.g. a negative base with a fractional exponent
// results in NaN rather than an error.
func Apply(a, b float64, op string) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, DivisionByZero
		}
		return a / b, nil
	case "^":
		return math.Pow(a, b), nil
	default:
		return 0, UnknownOperator
	}
}

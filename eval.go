package calc

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxNesting is the deepest parenthesis nesting that Eval accepts.
const MaxNesting = 10000

// evaluator holds the token cursor shared by every level of a recursive
// evaluation. A nested level advances pos past its own close parenthesis
// before returning to its caller.
type evaluator struct {
	toks []Token
	pos  int
	// end is the column one past the last rune of the input, used for errors
	// detected at the end of the token sequence.
	end int
}

// Eval evaluates an arithmetic expression. The parentheses in src are checked
// for balance before its tokens are evaluated. Errors are of type *Error.
func Eval(src string) (float64, error) {
	if col, ok := balance(src); !ok {
		if col > utf8.RuneCountInString(src) {
			return 0, &Error{Kind: MismatchedParentheses, Col: col, Detail: "unclosed ("}
		}
		return 0, &Error{Kind: MismatchedParentheses, Col: col, Text: ")"}
	}
	return EvalTokens(Tokenize(src))
}

// EvalTokens evaluates a token sequence as produced by Tokenize. Unbalanced
// parentheses are reported as MismatchedParentheses when the evaluator
// reaches them, after any errors earlier in the sequence.
func EvalTokens(toks []Token) (float64, error) {
	e := evaluator{toks: toks, end: 1}
	if len(toks) > 0 {
		last := toks[len(toks)-1]
		e.end = last.Col + len([]rune(last.Text))
	}
	return e.expr(0)
}

// expr evaluates tokens until a close parenthesis or the end of the sequence,
// consuming the close parenthesis if there is one. depth is the number of
// open parentheses enclosing this subexpression.
func (e *evaluator) expr(depth int) (float64, error) {
	var (
		nums []float64
		ops  []Token
	)
	// reduce pops the top operator and applies it to the top two operands.
	reduce := func() error {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if len(nums) < 2 {
			return &Error{Kind: MisplacedOperator, Col: op.Col, Text: op.Text}
		}
		a, b := nums[len(nums)-2], nums[len(nums)-1]
		r, err := Apply(a, b, op.Text)
		if err != nil {
			var k Kind
			if !errors.As(err, &k) {
				return err
			}
			return &Error{Kind: k, Col: op.Col, Text: op.Text}
		}
		nums = append(nums[:len(nums)-2], r)
		return nil
	}
	closed := false
loop:
	for e.pos < len(e.toks) {
		tok := e.toks[e.pos]
		switch tok.Kind {
		case TokenOpen:
			if depth >= MaxNesting {
				return 0, &Error{Kind: MismatchedParentheses, Col: tok.Col, Text: tok.Text, Detail: "nested more than " + strconv.Itoa(MaxNesting) + " deep"}
			}
			e.pos++
			r, err := e.expr(depth + 1)
			if err != nil {
				return 0, err
			}
			nums = append(nums, r)
		case TokenNum:
			r, err := decode(tok)
			if err != nil {
				return 0, err
			}
			nums = append(nums, r)
			e.pos++
		case TokenOp:
			next := binop(tok.Text)
			if next.prec == 0 {
				return 0, &Error{Kind: UnknownOperator, Col: tok.Col, Text: tok.Text}
			}
			for len(ops) > 0 && binop(ops[len(ops)-1].Text).yields(next) {
				if err := reduce(); err != nil {
					return 0, err
				}
			}
			ops = append(ops, tok)
			e.pos++
		case TokenClose:
			if depth == 0 {
				return 0, &Error{Kind: MismatchedParentheses, Col: tok.Col, Text: tok.Text}
			}
			e.pos++
			closed = true
			break loop
		default:
			return 0, &Error{Kind: InvalidCharacter, Col: tok.Col, Text: tok.Text}
		}
	}
	if depth > 0 && !closed {
		return 0, &Error{Kind: MismatchedParentheses, Col: e.end, Detail: "unclosed ("}
	}
	for len(ops) > 0 {
		if err := reduce(); err != nil {
			return 0, err
		}
	}
	switch len(nums) {
	case 1:
		return nums[0], nil
	case 0:
		if len(e.toks) == 0 {
			return 0, &Error{Kind: MisplacedOperator, Col: e.end, Detail: "no expression"}
		}
		return 0, &Error{Kind: MisplacedOperator, Col: e.frameEnd(), Detail: "empty subexpression"}
	default:
		return 0, &Error{Kind: MisplacedOperator, Col: e.frameEnd(), Detail: "missing operator between operands"}
	}
}

// decode converts a numeric literal to a float64. Literals too large or too
// small in magnitude to represent as a nonzero finite float64 fail rather
// than becoming infinity or zero.
func decode(tok Token) (float64, error) {
	r, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && ne.Err == strconv.ErrRange {
			return 0, &Error{Kind: NumericDecodeFailure, Col: tok.Col, Text: tok.Text, Detail: "out of range"}
		}
		return 0, &Error{Kind: NumericDecodeFailure, Col: tok.Col, Text: tok.Text}
	}
	// ParseFloat rounds tiny values to zero without reporting it.
	if r == 0 && strings.ContainsAny(tok.Text, "123456789") {
		return 0, &Error{Kind: NumericDecodeFailure, Col: tok.Col, Text: tok.Text, Detail: "out of range"}
	}
	return r, nil
}

// frameEnd returns the column of the last token consumed, or the end of input
// if nothing has been consumed.
func (e *evaluator) frameEnd() int {
	if e.pos == 0 || e.pos > len(e.toks) {
		return e.end
	}
	return e.toks[e.pos-1].Col
}

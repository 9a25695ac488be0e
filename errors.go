package calc

import "strconv"

// Kind classifies an evaluation failure. Kind implements error so that
// callers can test for a class of failure with errors.Is:
//
//	if errors.Is(err, calc.DivisionByZero) { ... }
type Kind int8

const (
	kindNone Kind = iota
	// MismatchedParentheses indicates a ) with no matching (, or a ( that is
	// never closed.
	MismatchedParentheses
	// InvalidCharacter indicates a rune that is not a digit, decimal point,
	// operator, parenthesis, or whitespace.
	InvalidCharacter
	// DivisionByZero indicates a division whose right-hand side is zero.
	DivisionByZero
	// UnknownOperator indicates an operator outside + - * / ^.
	UnknownOperator
	// MisplacedOperator indicates an operator without two operands, or an
	// expression that does not reduce to exactly one value.
	MisplacedOperator
	// NumericDecodeFailure indicates a numeric literal that is not a valid
	// number, e.g. "1.2.3" or a lone "-".
	NumericDecodeFailure
)

func (k Kind) String() string {
	switch k {
	case kindNone:
		return "none"
	case MismatchedParentheses:
		return "mismatched parentheses"
	case InvalidCharacter:
		return "invalid character"
	case DivisionByZero:
		return "division by zero"
	case UnknownOperator:
		return "unknown operator"
	case MisplacedOperator:
		return "misplaced operator"
	case NumericDecodeFailure:
		return "invalid number"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k Kind) Error() string {
	return k.String()
}

// Error is an evaluation failure. It unwraps to its Kind and implements
// InputError.
type Error struct {
	// Kind is the class of failure.
	Kind Kind
	// Col is the 1-based rune column of the token that caused the error. For
	// errors detected at the end of input, it is one past the last rune.
	Col int
	// Text is the offending token, if any.
	Text string
	// Detail optionally elaborates on Kind.
	Detail string
}

func (err *Error) Error() string {
	msg := err.Kind.String()
	if err.Text != "" {
		msg += " " + strconv.Quote(err.Text)
	}
	if err.Detail != "" {
		msg += ": " + err.Detail
	}
	if err.Col <= 0 {
		return msg
	}
	return errpos(err.Col, msg)
}

func (err *Error) Unwrap() error {
	return err.Kind
}

func (err *Error) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var _ InputError = (*Error)(nil)

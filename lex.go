package calc

import (
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical unit of an expression.
type Token struct {
	// Kind is the token's category.
	Kind TokenKind
	// Text is the token as it appears in the input, without whitespace.
	Text string
	// Col is the 1-based rune column at which the token starts.
	Col int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Col)
}

// TokenKind is the category of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNum is a numeric literal, possibly with a leading minus sign. It
	// is not guaranteed to be a valid number.
	TokenNum
	// TokenOp is one of the operators + - * / ^.
	TokenOp
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenInvalid is any other rune.
	TokenInvalid
)

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	case TokenInvalid:
		return "Invalid"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^"

// Tokenize splits an expression into tokens. Whitespace is discarded entirely,
// so "1 000" is the single literal "1000". A minus sign begins a numeric
// literal instead of being an operator when it is the first significant rune
// of the input or follows an open parenthesis or another operator.
//
// Tokenize never fails. Runes that belong to no token category become
// TokenInvalid tokens, and malformed numbers are detected when they are
// decoded.
func Tokenize(src string) []Token {
	var (
		toks []Token
		num  strings.Builder
		// start is the column at which num began.
		start int
		// prev is the previous significant rune, or 0 at the start.
		prev rune
		col  int
	)
	flush := func() {
		if num.Len() == 0 {
			return
		}
		toks = append(toks, Token{Kind: TokenNum, Text: num.String(), Col: start})
		num.Reset()
	}
	for _, r := range src {
		col++
		if unicode.IsSpace(r) {
			continue
		}
		if isNumRune(r, prev) {
			if num.Len() == 0 {
				start = col
			}
			num.WriteRune(r)
			prev = r
			continue
		}
		flush()
		tok := Token{Kind: TokenInvalid, Text: string(r), Col: col}
		switch {
		case strings.ContainsRune(Operators, r):
			tok.Kind = TokenOp
		case r == '(':
			tok.Kind = TokenOpen
		case r == ')':
			tok.Kind = TokenClose
		}
		toks = append(toks, tok)
		prev = r
	}
	flush()
	return toks
}

// isNumRune returns whether r continues or begins a numeric literal given the
// previous significant rune.
func isNumRune(r, prev rune) bool {
	switch {
	case '0' <= r && r <= '9', r == '.':
		return true
	case r == '-':
		return prev == 0 || prev == '(' || strings.ContainsRune(Operators, prev)
	default:
		return false
	}
}

// Balanced returns whether the parentheses in src nest correctly: no prefix
// closes more parentheses than it opens, and the whole string closes exactly
// as many as it opens.
func Balanced(src string) bool {
	_, ok := balance(src)
	return ok
}

// balance checks parenthesis nesting. If src is unbalanced, col is the column
// of the first ) that has no matching (, or one past the end of src if some (
// is never closed.
func balance(src string) (col int, ok bool) {
	depth := 0
	for _, r := range src {
		col++
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return col, false
			}
		}
	}
	return col + 1, depth == 0
}

// Package calc implements a float64 calculator for infix arithmetic.
//
// Expressions are made of numbers, the binary operators + - * / ^, and
// parentheses. "^" is exponentiation; it binds most tightly and groups from
// the right, so "2^3^2" is "2^(3^2)". The other operators group from the
// left, with * and / binding more tightly than + and -.
//
// There is no unary operator. Instead, a minus sign at the start of an
// expression, after an open parenthesis, or after another operator begins a
// negative number: "3 - -5" is 8 and "(-2)^2" is 4.
//
// Evaluation does not build a syntax tree. Eval checks that parentheses
// balance, splits the input into tokens, and evaluates them in a single pass
// with an operand stack and an operator stack per parenthesis depth.
//
package calc

// Package calc implements a four-function calculator for infix arithmetic.
//
// An expression is scanned into tokens, parsed into a syntax tree, and
// evaluated to a float64. Multiplication and division bind tighter than
// addition and subtraction, operators of equal precedence group left to
// right, and any factor may carry a chain of sign prefixes, so "--5" is 5
// and "2 + 3 * 4" is 14.
//
// Tokenize, Parse, and Eval expose the three stages individually. Run
// composes them and tags a failure with the stage that produced it, and
// RunTrace additionally returns the intermediate tokens and tree.
//
package calc

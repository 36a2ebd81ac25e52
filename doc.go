// Package eecalc implements an arbitrary-precision expression calculator as
// a two-stage engine: Parse converts an infix token sequence to postfix
// (reverse Polish) order with the shunting-yard algorithm, and an Evaluator
// executes the postfix sequence on a value stack.
//
// Operands are arbitrary-precision integers and reals, booleans, and named
// variables. Variables are handles into a SymbolTable, so assignments made
// while evaluating one expression are visible to every later expression in
// the same session. Malformed input of any shape, including hand-built
// postfix sequences, is reported as an error rather than a crash.
package eecalc

package eecalc

import "errors"

// Failures reported by Parse and Evaluator.Evaluate. Each aborts the current
// expression only; callers report the error and keep accepting expressions.
// Errors are wrapped with context, so match them with errors.Is.
var (
	// ErrMismatchedParenthesis indicates unbalanced or unmatched grouping.
	ErrMismatchedParenthesis = errors.New("mismatched parenthesis")
	// ErrMisplacedSeparator indicates an argument separator outside any
	// function argument list.
	ErrMisplacedSeparator = errors.New("misplaced argument separator")
	// ErrUnknownToken indicates a token kind the parser or evaluator does
	// not recognize.
	ErrUnknownToken = errors.New("unknown token")
	// ErrInsufficientOperands indicates a stack underflow relative to an
	// operation's arity, or an empty postfix sequence.
	ErrInsufficientOperands = errors.New("insufficient operands")
	// ErrTooManyOperands indicates dangling operands after a full scan.
	ErrTooManyOperands = errors.New("too many operands")
	// ErrInvalidOperandType indicates an operand kind unsupported by the
	// operator or function, e.g. a boolean in arithmetic.
	ErrInvalidOperandType = errors.New("invalid operand type")
	// ErrDivisionByZero indicates division or modulus by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNegativeFactorial indicates factorial of a negative integer.
	ErrNegativeFactorial = errors.New("factorial of negative integer")
	// ErrNegativeExponent indicates an integer power with a negative
	// integer exponent.
	ErrNegativeExponent = errors.New("negative exponent in integer power")
	// ErrUninitializedVariable indicates a read of a variable that has
	// never been assigned.
	ErrUninitializedVariable = errors.New("uninitialized variable")
	// ErrAssignmentTarget indicates an assignment whose left operand is
	// not a variable.
	ErrAssignmentTarget = errors.New("assignment target is not a variable")
	// ErrResultUnavailable indicates a result(n) call with no stored
	// result at index n.
	ErrResultUnavailable = errors.New("stored result unavailable")
)

package eecalc

import (
	"fmt"

	"github.com/ahrtr/gocontainer/stack"
)

// Parse converts an infix token sequence to postfix (reverse Polish) order
// with the shunting-yard algorithm. The operator stack holds only operator,
// function, and left-parenthesis tokens; functions and left parentheses act
// as barriers that no operator pops across. Parse is a pure function: it
// never mutates its input and the same infix sequence always yields the
// same postfix sequence.
//
// Equal precedence is resolved by the top-of-stack operator's associativity
// class alone: a left-associative top pops, anything else stays. That gives
// a-b-c its (a-b)-c grouping and a^b^c its a^(b^c) grouping.
func Parse(infix []Token) ([]Token, error) {
	output := make([]Token, 0, len(infix))
	ops := stack.New()

	for _, tok := range infix {
		switch tok.Kind {
		case TokOperand:
			output = append(output, tok)
		case TokOperator:
			if !tok.Op.valid() {
				return nil, fmt.Errorf("%w: %v", ErrUnknownToken, tok)
			}
			for !ops.IsEmpty() {
				top := ops.Peek().(Token)
				if top.Kind != TokOperator {
					break
				}
				if top.Op.Prec() < tok.Op.Prec() {
					break
				}
				if top.Op.Prec() == tok.Op.Prec() && top.Op.Assoc() != LeftAssociative {
					break
				}
				output = append(output, top)
				ops.Pop()
			}
			ops.Push(tok)
		case TokFunction:
			if !tok.Fn.valid() {
				return nil, fmt.Errorf("%w: %v", ErrUnknownToken, tok)
			}
			ops.Push(tok)
		case TokLeftParen:
			ops.Push(tok)
		case TokRightParen:
			for {
				if ops.IsEmpty() {
					return nil, fmt.Errorf("%w: unmatched )", ErrMismatchedParenthesis)
				}
				top := ops.Pop().(Token)
				if top.Kind == TokLeftParen {
					break
				}
				output = append(output, top)
			}
			// A function before the opening parenthesis follows its
			// fully reduced argument list into the output.
			if !ops.IsEmpty() {
				if top := ops.Peek().(Token); top.Kind == TokFunction {
					output = append(output, top)
					ops.Pop()
				}
			}
		case TokSeparator:
			for {
				if ops.IsEmpty() {
					return nil, fmt.Errorf("%w: separator outside argument list", ErrMisplacedSeparator)
				}
				top := ops.Peek().(Token)
				if top.Kind == TokLeftParen {
					break
				}
				output = append(output, top)
				ops.Pop()
			}
		default:
			return nil, fmt.Errorf("%w: %v", ErrUnknownToken, tok)
		}
	}

	for !ops.IsEmpty() {
		top := ops.Pop().(Token)
		if top.Kind == TokLeftParen || top.Kind == TokRightParen {
			return nil, fmt.Errorf("%w: unclosed (", ErrMismatchedParenthesis)
		}
		output = append(output, top)
	}
	return output, nil
}

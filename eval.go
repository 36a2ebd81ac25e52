package eecalc

import (
	"fmt"
	"io"
	"strings"

	"github.com/edwingeng/deque"
)

// DefaultPrec is the working precision in bits when none is configured.
const DefaultPrec = 64

// ResultAccessor resolves a result(n) call to the operand produced by the
// n-th previously evaluated expression, 1-based. The second result reports
// whether a stored result exists at that index.
type ResultAccessor func(n int) (Operand, bool)

// Evaluator executes postfix token sequences on a value stack. It owns no
// storage that outlives a call except the symbol table it was built with,
// which is shared by every expression in a session. Not safe for concurrent
// use.
type Evaluator struct {
	syms    *SymbolTable
	results ResultAccessor
	prec    uint
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithSymbols makes the evaluator resolve variables through t instead of a
// fresh table, so sessions can share variable state.
func WithSymbols(t *SymbolTable) EvaluatorOption {
	return func(ev *Evaluator) { ev.syms = t }
}

// WithResults injects the stored-results accessor backing result(n).
func WithResults(f ResultAccessor) EvaluatorOption {
	return func(ev *Evaluator) { ev.results = f }
}

// WithPrec sets the precision of real computations in bits.
func WithPrec(prec uint) EvaluatorOption {
	return func(ev *Evaluator) { ev.prec = prec }
}

// NewEvaluator creates an evaluator with a fresh symbol table and the
// default precision, then applies options in order.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	ev := &Evaluator{syms: NewSymbolTable(), prec: DefaultPrec}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Symbols returns the evaluator's symbol table.
func (ev *Evaluator) Symbols() *SymbolTable { return ev.syms }

// Prec returns the precision of real computations in bits.
func (ev *Evaluator) Prec() uint { return ev.prec }

// Evaluate executes one postfix token sequence and returns the single
// resulting operand. Operand tokens are pushed as-is; in particular a
// variable is pushed as its handle, undereferenced, so assignment can
// target it. Operators and functions verify the stack holds their arity,
// pop that many operands in reverse push order, and push their result.
//
// Evaluate is safe against arbitrary postfix input, not only Parse output:
// arity and stack-depth checks reject sequences no well-formed expression
// produces.
func (ev *Evaluator) Evaluate(postfix []Token) (Operand, error) {
	if len(postfix) == 0 {
		return Operand{}, fmt.Errorf("%w: empty expression", ErrInsufficientOperands)
	}
	st := deque.NewDeque()
	for _, tok := range postfix {
		var (
			arity int
			eval  evalFunc
			name  string
		)
		switch tok.Kind {
		case TokOperand:
			st.PushBack(tok.Val)
			continue
		case TokOperator:
			if !tok.Op.valid() {
				return Operand{}, fmt.Errorf("%w: %v", ErrUnknownToken, tok)
			}
			arity, eval, name = tok.Op.Arity(), opTable[tok.Op].eval, tok.Op.String()
		case TokFunction:
			if !tok.Fn.valid() {
				return Operand{}, fmt.Errorf("%w: %v", ErrUnknownToken, tok)
			}
			arity, eval, name = tok.Fn.Arity(), fnTable[tok.Fn].eval, tok.Fn.String()
		default:
			return Operand{}, fmt.Errorf("%w: %v", ErrUnknownToken, tok)
		}
		if st.Len() < arity {
			return Operand{}, fmt.Errorf("%w: %s needs %d", ErrInsufficientOperands, name, arity)
		}
		args := make([]Operand, arity)
		for i := arity - 1; i >= 0; i-- {
			args[i] = st.PopBack().(Operand)
		}
		r, err := eval(ev, args)
		if err != nil {
			return Operand{}, err
		}
		st.PushBack(r)
	}
	switch st.Len() {
	case 1:
		return st.PopBack().(Operand), nil
	case 0:
		return Operand{}, ErrInsufficientOperands
	default:
		return Operand{}, fmt.Errorf("%w: %d values remain", ErrTooManyOperands, st.Len())
	}
}

// deref reads through a variable to its held value. Every consumer except
// the left operand of assignment dereferences before use.
func (ev *Evaluator) deref(v Operand) (Operand, error) {
	if v.kind != KindVariable {
		return v, nil
	}
	r, ok := ev.syms.Value(v.sym)
	if !ok {
		return Operand{}, fmt.Errorf("%w: %s", ErrUninitializedVariable, ev.syms.Name(v.sym))
	}
	return r, nil
}

func (ev *Evaluator) derefPair(args []Operand) (Operand, Operand, error) {
	l, err := ev.deref(args[0])
	if err != nil {
		return Operand{}, Operand{}, err
	}
	r, err := ev.deref(args[1])
	if err != nil {
		return Operand{}, Operand{}, err
	}
	return l, r, nil
}

// Resolve dereferences a variable result for display; non-variable operands
// pass through. Presentation layers call this so an assignment echoes the
// assigned value.
func (ev *Evaluator) Resolve(v Operand) (Operand, error) {
	return ev.deref(v)
}

// Eval lexes, parses, and evaluates one expression from src.
func (ev *Evaluator) Eval(src io.RuneScanner) (Operand, error) {
	infix, err := ev.Lex(src)
	if err != nil {
		return Operand{}, err
	}
	postfix, err := Parse(infix)
	if err != nil {
		return Operand{}, err
	}
	return ev.Evaluate(postfix)
}

// EvalString is a shortcut to evaluate a string expression.
func (ev *Evaluator) EvalString(src string) (Operand, error) {
	return ev.Eval(strings.NewReader(src))
}

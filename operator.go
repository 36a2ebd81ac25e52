package eecalc

import (
	"fmt"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// OpKind identifies an entry in the operator catalog.
type OpKind int8

const (
	OpNone OpKind = iota
	OpAssignment
	OpOr
	OpNor
	OpXor
	OpXnor
	OpAnd
	OpNand
	OpEquality
	OpInequality
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpAddition
	OpSubtraction
	OpMultiplication
	OpDivision
	OpModulus
	OpIdentity
	OpNegation
	OpNot
	OpPower
	OpFactorial
)

// Precedence orders operators from loosest to tightest binding.
type Precedence int8

const (
	PrecAssignment Precedence = iota + 1
	PrecLogicalOr
	PrecLogicalAnd
	PrecEquality
	PrecRelational
	PrecAdditive
	PrecMultiplicative
	PrecUnary
	PrecPower
	PrecPostfix
)

// Associativity is the tie-break class between operators of equal
// precedence.
type Associativity int8

const (
	LeftAssociative Associativity = iota
	RightAssociative
	NonAssociative
)

type evalFunc func(ev *Evaluator, args []Operand) (Operand, error)

type opInfo struct {
	name  string
	arity int
	prec  Precedence
	assoc Associativity
	eval  evalFunc
}

// opTable is the operator catalog: one row per OpKind carrying arity,
// precedence, associativity, and the evaluation rule. Dispatch is by tag,
// never by type.
var opTable = [...]opInfo{
	OpAssignment:     {"=", 2, PrecAssignment, RightAssociative, evalAssignment},
	OpOr:             {"or", 2, PrecLogicalOr, LeftAssociative, logical("or", func(l, r bool) bool { return l || r })},
	OpNor:            {"nor", 2, PrecLogicalOr, LeftAssociative, logical("nor", func(l, r bool) bool { return !(l || r) })},
	OpXor:            {"xor", 2, PrecLogicalOr, LeftAssociative, logical("xor", func(l, r bool) bool { return l != r })},
	OpXnor:           {"xnor", 2, PrecLogicalOr, LeftAssociative, logical("xnor", func(l, r bool) bool { return l == r })},
	OpAnd:            {"and", 2, PrecLogicalAnd, LeftAssociative, logical("and", func(l, r bool) bool { return l && r })},
	OpNand:           {"nand", 2, PrecLogicalAnd, LeftAssociative, logical("nand", func(l, r bool) bool { return !(l && r) })},
	OpEquality:       {"==", 2, PrecEquality, LeftAssociative, comparison("==", func(c int) bool { return c == 0 })},
	OpInequality:     {"!=", 2, PrecEquality, LeftAssociative, comparison("!=", func(c int) bool { return c != 0 })},
	OpLess:           {"<", 2, PrecRelational, LeftAssociative, comparison("<", func(c int) bool { return c < 0 })},
	OpLessEqual:      {"<=", 2, PrecRelational, LeftAssociative, comparison("<=", func(c int) bool { return c <= 0 })},
	OpGreater:        {">", 2, PrecRelational, LeftAssociative, comparison(">", func(c int) bool { return c > 0 })},
	OpGreaterEqual:   {">=", 2, PrecRelational, LeftAssociative, comparison(">=", func(c int) bool { return c >= 0 })},
	OpAddition:       {"+", 2, PrecAdditive, LeftAssociative, arithmetic("+", (*big.Int).Add, (*big.Float).Add)},
	OpSubtraction:    {"-", 2, PrecAdditive, LeftAssociative, arithmetic("-", (*big.Int).Sub, (*big.Float).Sub)},
	OpMultiplication: {"*", 2, PrecMultiplicative, LeftAssociative, arithmetic("*", (*big.Int).Mul, (*big.Float).Mul)},
	OpDivision:       {"/", 2, PrecMultiplicative, LeftAssociative, evalDivision},
	OpModulus:        {"mod", 2, PrecMultiplicative, LeftAssociative, evalModulus},
	OpIdentity:       {"+", 1, PrecUnary, NonAssociative, evalIdentity},
	OpNegation:       {"-", 1, PrecUnary, NonAssociative, evalNegation},
	OpNot:            {"not", 1, PrecUnary, NonAssociative, evalNot},
	OpPower:          {"^", 2, PrecPower, RightAssociative, evalPower},
	OpFactorial:      {"!", 1, PrecPostfix, NonAssociative, evalFactorial},
}

// opNames maps the word-form operators recognized by the lexer.
var opNames = map[string]OpKind{
	"and":  OpAnd,
	"nand": OpNand,
	"or":   OpOr,
	"nor":  OpNor,
	"xor":  OpXor,
	"xnor": OpXnor,
	"not":  OpNot,
	"mod":  OpModulus,
}

func (k OpKind) valid() bool { return k > OpNone && int(k) < len(opTable) }

func (k OpKind) String() string {
	if !k.valid() {
		return "<op>"
	}
	return opTable[k].name
}

// Arity is the number of operands the operator consumes.
func (k OpKind) Arity() int { return opTable[k].arity }

// Prec is the operator's precedence level.
func (k OpKind) Prec() Precedence { return opTable[k].prec }

// Assoc is the operator's associativity class.
func (k OpKind) Assoc() Associativity { return opTable[k].assoc }

// logical builds the evaluation rule for a boolean connective. Booleans are
// the only valid operands.
func logical(name string, f func(l, r bool) bool) evalFunc {
	return func(ev *Evaluator, args []Operand) (Operand, error) {
		l, r, err := ev.derefPair(args)
		if err != nil {
			return Operand{}, err
		}
		if l.kind != KindBoolean || r.kind != KindBoolean {
			return Operand{}, fmt.Errorf("%w: %s requires booleans, got %s and %s", ErrInvalidOperandType, name, l.kind, r.kind)
		}
		return Boolean(f(l.b, r.b)), nil
	}
}

// comparison builds the evaluation rule for an equality or relational
// operator over the result of a three-way compare. Two booleans order as
// false < true; numerics compare after promotion; mixing boolean with
// numeric is a type error.
func comparison(name string, f func(c int) bool) evalFunc {
	return func(ev *Evaluator, args []Operand) (Operand, error) {
		l, r, err := ev.derefPair(args)
		if err != nil {
			return Operand{}, err
		}
		switch {
		case l.kind == KindBoolean && r.kind == KindBoolean:
			return Boolean(f(cmpBool(l.b, r.b))), nil
		case l.numeric() && r.numeric():
			l, r = promote(ev.prec, l, r)
			if l.kind == KindInteger {
				return Boolean(f(l.i.Cmp(r.i))), nil
			}
			return Boolean(f(l.r.Cmp(r.r))), nil
		}
		return Operand{}, fmt.Errorf("%w: cannot compare %s and %s with %s", ErrInvalidOperandType, l.kind, r.kind, name)
	}
}

func cmpBool(l, r bool) int {
	switch {
	case l == r:
		return 0
	case r: // false < true
		return -1
	}
	return 1
}

// arithmetic builds the evaluation rule for a closed numeric operator with
// one implementation per numeric kind. Promotion runs first, so fi sees two
// integers and fr two reals.
func arithmetic(name string, fi func(z, x, y *big.Int) *big.Int, fr func(z, x, y *big.Float) *big.Float) evalFunc {
	return func(ev *Evaluator, args []Operand) (Operand, error) {
		l, r, err := ev.derefPair(args)
		if err != nil {
			return Operand{}, err
		}
		if !l.numeric() || !r.numeric() {
			return Operand{}, fmt.Errorf("%w: %s requires numeric operands, got %s and %s", ErrInvalidOperandType, name, l.kind, r.kind)
		}
		l, r = promote(ev.prec, l, r)
		if l.kind == KindInteger {
			return Integer(fi(new(big.Int), l.i, r.i)), nil
		}
		return Real(fr(new(big.Float).SetPrec(ev.prec), l.r, r.r)), nil
	}
}

func evalDivision(ev *Evaluator, args []Operand) (Operand, error) {
	l, r, err := ev.derefPair(args)
	if err != nil {
		return Operand{}, err
	}
	if !l.numeric() || !r.numeric() {
		return Operand{}, fmt.Errorf("%w: / requires numeric operands, got %s and %s", ErrInvalidOperandType, l.kind, r.kind)
	}
	if zero(r) {
		return Operand{}, fmt.Errorf("%w: %s / %s", ErrDivisionByZero, l, r)
	}
	l, r = promote(ev.prec, l, r)
	if l.kind == KindInteger {
		// Integer division truncates toward zero.
		return Integer(new(big.Int).Quo(l.i, r.i)), nil
	}
	return Real(new(big.Float).SetPrec(ev.prec).Quo(l.r, r.r)), nil
}

func evalModulus(ev *Evaluator, args []Operand) (Operand, error) {
	l, r, err := ev.derefPair(args)
	if err != nil {
		return Operand{}, err
	}
	if l.kind != KindInteger || r.kind != KindInteger {
		return Operand{}, fmt.Errorf("%w: mod requires integers, got %s and %s", ErrInvalidOperandType, l.kind, r.kind)
	}
	if r.i.Sign() == 0 {
		return Operand{}, fmt.Errorf("%w: %s mod 0", ErrDivisionByZero, l)
	}
	return Integer(new(big.Int).Rem(l.i, r.i)), nil
}

func evalIdentity(ev *Evaluator, args []Operand) (Operand, error) {
	v, err := ev.deref(args[0])
	if err != nil {
		return Operand{}, err
	}
	if !v.numeric() {
		return Operand{}, fmt.Errorf("%w: unary + requires a numeric operand, got %s", ErrInvalidOperandType, v.kind)
	}
	return v, nil
}

func evalNegation(ev *Evaluator, args []Operand) (Operand, error) {
	v, err := ev.deref(args[0])
	if err != nil {
		return Operand{}, err
	}
	switch v.kind {
	case KindInteger:
		return Integer(new(big.Int).Neg(v.i)), nil
	case KindReal:
		return Real(new(big.Float).SetPrec(ev.prec).Neg(v.r)), nil
	}
	return Operand{}, fmt.Errorf("%w: unary - requires a numeric operand, got %s", ErrInvalidOperandType, v.kind)
}

func evalNot(ev *Evaluator, args []Operand) (Operand, error) {
	v, err := ev.deref(args[0])
	if err != nil {
		return Operand{}, err
	}
	if v.kind != KindBoolean {
		return Operand{}, fmt.Errorf("%w: not requires a boolean operand, got %s", ErrInvalidOperandType, v.kind)
	}
	return Boolean(!v.b), nil
}

func evalFactorial(ev *Evaluator, args []Operand) (Operand, error) {
	v, err := ev.deref(args[0])
	if err != nil {
		return Operand{}, err
	}
	if v.kind != KindInteger {
		return Operand{}, fmt.Errorf("%w: factorial requires an integer operand, got %s", ErrInvalidOperandType, v.kind)
	}
	if v.i.Sign() < 0 {
		return Operand{}, fmt.Errorf("%w: %s!", ErrNegativeFactorial, v)
	}
	if !v.i.IsInt64() {
		return Operand{}, fmt.Errorf("%w: %s! is too large", ErrInvalidOperandType, v)
	}
	return Integer(new(big.Int).MulRange(1, v.i.Int64())), nil
}

// evalPower implements ^ and the pow function. Integer base and non-negative
// integer exponent stay integer; a negative integer exponent over integers is
// rejected. Any real operand promotes to real; an integer-valued exponent is
// computed by squaring, which permits negative bases and yields a reciprocal
// for negative exponents.
func evalPower(ev *Evaluator, args []Operand) (Operand, error) {
	l, r, err := ev.derefPair(args)
	if err != nil {
		return Operand{}, err
	}
	if !l.numeric() || !r.numeric() {
		return Operand{}, fmt.Errorf("%w: ^ requires numeric operands, got %s and %s", ErrInvalidOperandType, l.kind, r.kind)
	}
	if l.kind == KindInteger && r.kind == KindInteger {
		if r.i.Sign() < 0 {
			return Operand{}, fmt.Errorf("%w: %s ^ %s", ErrNegativeExponent, l, r)
		}
		return Integer(new(big.Int).Exp(l.i, r.i, nil)), nil
	}
	base := toReal(ev.prec, l)
	if r.kind == KindInteger {
		return realPowInt(ev.prec, base.r, r.i)
	}
	if r.r.IsInt() {
		e, _ := r.r.Int(nil)
		return realPowInt(ev.prec, base.r, e)
	}
	if base.r.Signbit() {
		return Operand{}, fmt.Errorf("%w: negative base %s with non-integer exponent", ErrInvalidOperandType, base)
	}
	return Real(bigfloat.Pow(new(big.Float).SetPrec(ev.prec), base.r, r.r)), nil
}

// realPowInt raises base to an integer exponent by squaring.
func realPowInt(prec uint, base *big.Float, exp *big.Int) (Operand, error) {
	e := new(big.Int).Abs(exp)
	if !e.IsUint64() {
		return Operand{}, fmt.Errorf("%w: exponent %s is too large", ErrInvalidOperandType, exp)
	}
	z := new(big.Float).SetPrec(prec).SetInt64(1)
	b := new(big.Float).SetPrec(prec).Set(base)
	for n := e.Uint64(); n > 0; n >>= 1 {
		if n&1 == 1 {
			z.Mul(z, b)
		}
		b.Mul(b, b)
	}
	if exp.Sign() < 0 {
		if z.Sign() == 0 {
			return Operand{}, fmt.Errorf("%w: 0 raised to %s", ErrDivisionByZero, exp)
		}
		z.Quo(new(big.Float).SetPrec(prec).SetInt64(1), z)
	}
	return Real(z), nil
}

// evalAssignment stores the dereferenced right value into the left operand's
// variable slot and yields the variable itself, so chained reads and the
// displayed result reflect the assignment. The left operand is the one place
// a variable is not dereferenced.
func evalAssignment(ev *Evaluator, args []Operand) (Operand, error) {
	target := args[0]
	if target.kind != KindVariable {
		return Operand{}, fmt.Errorf("%w: %s", ErrAssignmentTarget, target)
	}
	v, err := ev.deref(args[1])
	if err != nil {
		return Operand{}, err
	}
	ev.syms.Assign(target.sym, v)
	return target, nil
}

func zero(v Operand) bool {
	switch v.kind {
	case KindInteger:
		return v.i.Sign() == 0
	case KindReal:
		return v.r.Sign() == 0
	}
	return false
}

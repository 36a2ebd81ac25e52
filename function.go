package eecalc

import (
	"fmt"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// FuncKind identifies an entry in the function catalog. Functions carry no
// precedence or associativity; their argument grouping is always explicit
// parentheses with comma separators.
type FuncKind int8

const (
	FnNone FuncKind = iota
	FnAbs
	FnArccos
	FnArcsin
	FnArctan
	FnArctan2
	FnCeil
	FnCos
	FnExp
	FnFloor
	FnLb
	FnLn
	FnLog
	FnMax
	FnMin
	FnPow
	FnResult
	FnSin
	FnSqrt
	FnTan
)

type fnInfo struct {
	name  string
	arity int
	eval  evalFunc
}

// fnTable is the function catalog. exp, ln, log, and lb run at the working
// precision via bigfloat; the trigonometric functions have no
// arbitrary-precision implementation available, so they compute at float64
// precision and widen the result.
var fnTable = [...]fnInfo{
	FnAbs:     {"abs", 1, evalAbs},
	FnArccos:  {"arccos", 1, realFunc("arccos", math.Acos)},
	FnArcsin:  {"arcsin", 1, realFunc("arcsin", math.Asin)},
	FnArctan:  {"arctan", 1, realFunc("arctan", math.Atan)},
	FnArctan2: {"arctan2", 2, evalArctan2},
	FnCeil:    {"ceil", 1, evalCeil},
	FnCos:     {"cos", 1, realFunc("cos", math.Cos)},
	FnExp:     {"exp", 1, evalExp},
	FnFloor:   {"floor", 1, evalFloor},
	FnLb:      {"lb", 1, logFunc("lb", 2)},
	FnLn:      {"ln", 1, evalLn},
	FnLog:     {"log", 1, logFunc("log", 10)},
	FnMax:     {"max", 2, extremum("max", 1)},
	FnMin:     {"min", 2, extremum("min", -1)},
	FnPow:     {"pow", 2, evalPower},
	FnResult:  {"result", 1, evalStoredResult},
	FnSin:     {"sin", 1, realFunc("sin", math.Sin)},
	FnSqrt:    {"sqrt", 1, evalSqrt},
	FnTan:     {"tan", 1, realFunc("tan", math.Tan)},
}

var fnNames = make(map[string]FuncKind, len(fnTable))

func init() {
	for k := range fnTable {
		if fnTable[k].name != "" {
			fnNames[fnTable[k].name] = FuncKind(k)
		}
	}
}

// FunctionNamed resolves a function name to its catalog entry.
func FunctionNamed(name string) (FuncKind, bool) {
	k, ok := fnNames[name]
	return k, ok
}

func (k FuncKind) valid() bool { return k > FnNone && int(k) < len(fnTable) }

func (k FuncKind) String() string {
	if !k.valid() {
		return "<func>"
	}
	return fnTable[k].name
}

// Arity is the number of arguments the function consumes.
func (k FuncKind) Arity() int { return fnTable[k].arity }

// realOperand dereferences and widens a numeric argument to a real.
func realOperand(ev *Evaluator, name string, arg Operand) (Operand, error) {
	v, err := ev.deref(arg)
	if err != nil {
		return Operand{}, err
	}
	if !v.numeric() {
		return Operand{}, fmt.Errorf("%w: %s requires a numeric argument, got %s", ErrInvalidOperandType, name, v.kind)
	}
	return toReal(ev.prec, v), nil
}

// realFunc adapts a float64 function into a catalog entry. The result is
// widened back to the working precision; a NaN or infinite result reports
// the argument as out of domain.
func realFunc(name string, f func(float64) float64) evalFunc {
	return func(ev *Evaluator, args []Operand) (Operand, error) {
		v, err := realOperand(ev, name, args[0])
		if err != nil {
			return Operand{}, err
		}
		x, _ := v.r.Float64()
		y := f(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return Operand{}, fmt.Errorf("%w: %s outside domain of %s", ErrInvalidOperandType, v, name)
		}
		return Real(new(big.Float).SetPrec(ev.prec).SetFloat64(y)), nil
	}
}

func evalAbs(ev *Evaluator, args []Operand) (Operand, error) {
	v, err := ev.deref(args[0])
	if err != nil {
		return Operand{}, err
	}
	switch v.kind {
	case KindInteger:
		return Integer(new(big.Int).Abs(v.i)), nil
	case KindReal:
		return Real(new(big.Float).SetPrec(ev.prec).Abs(v.r)), nil
	}
	return Operand{}, fmt.Errorf("%w: abs requires a numeric argument, got %s", ErrInvalidOperandType, v.kind)
}

func evalCeil(ev *Evaluator, args []Operand) (Operand, error) {
	return roundToward(ev, "ceil", args[0], 1)
}

func evalFloor(ev *Evaluator, args []Operand) (Operand, error) {
	return roundToward(ev, "floor", args[0], -1)
}

// roundToward rounds a real to an integral real, toward +inf for dir > 0 and
// toward -inf for dir < 0. Integer arguments pass through untouched.
func roundToward(ev *Evaluator, name string, arg Operand, dir int) (Operand, error) {
	v, err := ev.deref(arg)
	if err != nil {
		return Operand{}, err
	}
	if v.kind == KindInteger {
		return v, nil
	}
	if v.kind != KindReal {
		return Operand{}, fmt.Errorf("%w: %s requires a numeric argument, got %s", ErrInvalidOperandType, name, v.kind)
	}
	i, _ := v.r.Int(nil) // truncates toward zero
	if !v.r.IsInt() {
		if dir > 0 && v.r.Sign() > 0 {
			i.Add(i, big.NewInt(1))
		}
		if dir < 0 && v.r.Sign() < 0 {
			i.Sub(i, big.NewInt(1))
		}
	}
	return Real(new(big.Float).SetPrec(ev.prec).SetInt(i)), nil
}

func evalExp(ev *Evaluator, args []Operand) (Operand, error) {
	v, err := realOperand(ev, "exp", args[0])
	if err != nil {
		return Operand{}, err
	}
	return Real(bigfloat.Exp(new(big.Float).SetPrec(ev.prec), v.r)), nil
}

func evalLn(ev *Evaluator, args []Operand) (Operand, error) {
	v, err := realOperand(ev, "ln", args[0])
	if err != nil {
		return Operand{}, err
	}
	if v.r.Sign() <= 0 {
		return Operand{}, fmt.Errorf("%w: %s outside domain of ln", ErrInvalidOperandType, v)
	}
	return Real(bigfloat.Log(new(big.Float).SetPrec(ev.prec), v.r)), nil
}

// logFunc builds a logarithm of a fixed integer base as ln(x)/ln(base).
func logFunc(name string, base int64) evalFunc {
	return func(ev *Evaluator, args []Operand) (Operand, error) {
		v, err := realOperand(ev, name, args[0])
		if err != nil {
			return Operand{}, err
		}
		if v.r.Sign() <= 0 {
			return Operand{}, fmt.Errorf("%w: %s outside domain of %s", ErrInvalidOperandType, v, name)
		}
		z := bigfloat.Log(new(big.Float).SetPrec(ev.prec), v.r)
		d := bigfloat.Log(new(big.Float).SetPrec(ev.prec), new(big.Float).SetPrec(ev.prec).SetInt64(base))
		return Real(z.Quo(z, d)), nil
	}
}

func evalSqrt(ev *Evaluator, args []Operand) (Operand, error) {
	v, err := realOperand(ev, "sqrt", args[0])
	if err != nil {
		return Operand{}, err
	}
	if v.r.Sign() < 0 {
		return Operand{}, fmt.Errorf("%w: %s outside domain of sqrt", ErrInvalidOperandType, v)
	}
	return Real(new(big.Float).SetPrec(ev.prec).Sqrt(v.r)), nil
}

// extremum builds max (sign 1) and min (sign -1) over two numeric arguments,
// promoted before comparison.
func extremum(name string, sign int) evalFunc {
	return func(ev *Evaluator, args []Operand) (Operand, error) {
		l, r, err := ev.derefPair(args)
		if err != nil {
			return Operand{}, err
		}
		if !l.numeric() || !r.numeric() {
			return Operand{}, fmt.Errorf("%w: %s requires numeric arguments, got %s and %s", ErrInvalidOperandType, name, l.kind, r.kind)
		}
		l, r = promote(ev.prec, l, r)
		var c int
		if l.kind == KindInteger {
			c = l.i.Cmp(r.i)
		} else {
			c = l.r.Cmp(r.r)
		}
		if c*sign >= 0 {
			return l, nil
		}
		return r, nil
	}
}

func evalArctan2(ev *Evaluator, args []Operand) (Operand, error) {
	y, err := realOperand(ev, "arctan2", args[0])
	if err != nil {
		return Operand{}, err
	}
	x, err := realOperand(ev, "arctan2", args[1])
	if err != nil {
		return Operand{}, err
	}
	yf, _ := y.r.Float64()
	xf, _ := x.r.Float64()
	return Real(new(big.Float).SetPrec(ev.prec).SetFloat64(math.Atan2(yf, xf))), nil
}

// evalStoredResult resolves result(n) through the evaluator's injected
// results-history accessor; the catalog itself stores nothing.
func evalStoredResult(ev *Evaluator, args []Operand) (Operand, error) {
	v, err := ev.deref(args[0])
	if err != nil {
		return Operand{}, err
	}
	if v.kind != KindInteger {
		return Operand{}, fmt.Errorf("%w: result requires an integer argument, got %s", ErrInvalidOperandType, v.kind)
	}
	if ev.results == nil {
		return Operand{}, fmt.Errorf("%w: no results history", ErrResultUnavailable)
	}
	if !v.i.IsInt64() {
		return Operand{}, fmt.Errorf("%w: result(%s)", ErrResultUnavailable, v)
	}
	r, ok := ev.results(int(v.i.Int64()))
	if !ok {
		return Operand{}, fmt.Errorf("%w: result(%s)", ErrResultUnavailable, v)
	}
	return r, nil
}

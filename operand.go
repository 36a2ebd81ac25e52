package eecalc

import (
	"fmt"
	"math/big"
	"strconv"
)

// OperandKind discriminates the operand union.
type OperandKind int8

const (
	KindNone OperandKind = iota
	KindInteger
	KindReal
	KindBoolean
	KindVariable
)

func (k OperandKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindBoolean:
		return "boolean"
	case KindVariable:
		return "variable"
	}
	return "<none>"
}

// Operand is a value produced or consumed during evaluation: an
// arbitrary-precision integer, an arbitrary-precision real, a boolean, or a
// handle to a slot in a SymbolTable. The zero Operand has KindNone and is
// never a valid value.
type Operand struct {
	kind OperandKind
	i    *big.Int
	r    *big.Float
	b    bool
	sym  int
	name string
}

func Integer(v *big.Int) Operand { return Operand{kind: KindInteger, i: v} }
func Int64(v int64) Operand      { return Integer(big.NewInt(v)) }
func Real(v *big.Float) Operand  { return Operand{kind: KindReal, r: v} }
func Boolean(v bool) Operand     { return Operand{kind: KindBoolean, b: v} }

// Variable wraps a symbol-table handle. Copies of the operand still alias
// the same slot, so assignment through one copy is visible to all of them.
func Variable(handle int, name string) Operand {
	return Operand{kind: KindVariable, sym: handle, name: name}
}

func (v Operand) Kind() OperandKind { return v.kind }

// Int returns the wrapped integer. Valid only for KindInteger.
func (v Operand) Int() *big.Int { return v.i }

// Float returns the wrapped real. Valid only for KindReal.
func (v Operand) Float() *big.Float { return v.r }

// Bool returns the wrapped boolean. Valid only for KindBoolean.
func (v Operand) Bool() bool { return v.b }

// Handle returns the symbol-table slot index. Valid only for KindVariable.
func (v Operand) Handle() int { return v.sym }

func (v Operand) String() string {
	switch v.kind {
	case KindInteger:
		return v.i.String()
	case KindReal:
		return v.r.Text('g', -1)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindVariable:
		return v.name
	}
	return "<none>"
}

func (v Operand) numeric() bool {
	return v.kind == KindInteger || v.kind == KindReal
}

// toReal widens an integer operand to a real of the given precision.
func toReal(prec uint, v Operand) Operand {
	if v.kind == KindReal {
		return v
	}
	return Real(new(big.Float).SetPrec(prec).SetInt(v.i))
}

// promote unifies two numeric operands: if either is real, both become real;
// two integers stay integers. Callers must have checked numeric().
func promote(prec uint, l, r Operand) (Operand, Operand) {
	if l.kind == KindReal || r.kind == KindReal {
		return toReal(prec, l), toReal(prec, r)
	}
	return l, r
}

// ParseLiteral reconstructs an operand from its kind name and display text,
// the inverse of Kind().String() and String() for non-variable operands.
func ParseLiteral(kind, text string, prec uint) (Operand, error) {
	switch kind {
	case "integer":
		i, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Operand{}, fmt.Errorf("invalid integer literal %q", text)
		}
		return Integer(i), nil
	case "real":
		f, _, err := big.ParseFloat(text, 10, prec, big.ToNearestEven)
		if err != nil {
			return Operand{}, fmt.Errorf("invalid real literal %q: %v", text, err)
		}
		return Real(f), nil
	case "boolean":
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Operand{}, fmt.Errorf("invalid boolean literal %q", text)
		}
		return Boolean(b), nil
	}
	return Operand{}, fmt.Errorf("unknown literal kind %q", kind)
}

// SymbolTable owns the backing storage for variables. The engine holds only
// slot indices; every occurrence of a name within one session aliases the
// same slot, which is what makes assignment side effects observable across
// expressions. Not safe for concurrent use.
type SymbolTable struct {
	slots []symbolSlot
	index map[string]int
}

type symbolSlot struct {
	name string
	val  Operand
	set  bool
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: make(map[string]int)}
}

// Intern returns the handle for name, creating an empty slot on first use.
func (t *SymbolTable) Intern(name string) int {
	if h, ok := t.index[name]; ok {
		return h
	}
	h := len(t.slots)
	t.slots = append(t.slots, symbolSlot{name: name})
	t.index[name] = h
	return h
}

// Name returns the name that was interned for handle h.
func (t *SymbolTable) Name(h int) string { return t.slots[h].name }

// Assign stores v as the held value of slot h.
func (t *SymbolTable) Assign(h int, v Operand) {
	t.slots[h].val = v
	t.slots[h].set = true
}

// Value returns the held value of slot h, and whether one has been assigned.
func (t *SymbolTable) Value(h int) (Operand, bool) {
	s := t.slots[h]
	return s.val, s.set
}

// Len reports the number of interned names.
func (t *SymbolTable) Len() int { return len(t.slots) }

// Each calls f for every slot that holds a value, in interning order.
func (t *SymbolTable) Each(f func(name string, v Operand)) {
	for _, s := range t.slots {
		if s.set {
			f(s.name, s.val)
		}
	}
}

package eecalc

// TokenKind classifies a token without knowing its concrete content.
type TokenKind int8

const (
	TokNone TokenKind = iota
	// TokOperand is a value: integer, real, boolean, or variable.
	TokOperand
	// TokOperator is an entry in the operator catalog.
	TokOperator
	// TokFunction is an entry in the function catalog.
	TokFunction
	// TokLeftParen is an open parenthesis.
	TokLeftParen
	// TokRightParen is a close parenthesis.
	TokRightParen
	// TokSeparator is a function argument separator.
	TokSeparator
)

// Token is one element of an infix or postfix sequence. Tokens are immutable
// once created; the parser and evaluator only reorder and forward them. The
// one exception is a variable operand, whose slot in the symbol table may be
// written through assignment.
type Token struct {
	Kind TokenKind
	Op   OpKind
	Fn   FuncKind
	Val  Operand
}

func OperandToken(v Operand) Token    { return Token{Kind: TokOperand, Val: v} }
func OperatorToken(op OpKind) Token   { return Token{Kind: TokOperator, Op: op} }
func FunctionToken(fn FuncKind) Token { return Token{Kind: TokFunction, Fn: fn} }
func LeftParenToken() Token           { return Token{Kind: TokLeftParen} }
func RightParenToken() Token          { return Token{Kind: TokRightParen} }
func SeparatorToken() Token           { return Token{Kind: TokSeparator} }

func (t Token) String() string {
	switch t.Kind {
	case TokOperand:
		return t.Val.String()
	case TokOperator:
		return t.Op.String()
	case TokFunction:
		return t.Fn.String()
	case TokLeftParen:
		return "("
	case TokRightParen:
		return ")"
	case TokSeparator:
		return ","
	}
	return "<none>"
}

package eecalc

import (
	"errors"
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// lexer splits raw expression text into the infix token sequence consumed
// by Parse. Variable names are interned in the evaluator's symbol table, so
// every occurrence of a name within a session yields the same handle.
type lexer struct {
	src  io.RuneScanner
	ev   *Evaluator
	buf  strings.Builder
	rune int
	// prev and prevOp classify the previous token, which decides whether
	// + and - are prefix or binary.
	prev   TokenKind
	prevOp OpKind
}

// Lex scans one expression from src into an infix token sequence.
func (ev *Evaluator) Lex(src io.RuneScanner) ([]Token, error) {
	l := &lexer{src: src, ev: ev, rune: 1}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return nil, err
		}
		l.prev, l.prevOp = tok.Kind, tok.Op
		toks = append(toks, tok)
	}
}

// LexString is a shortcut to scan a string expression.
func (ev *Evaluator) LexString(src string) ([]Token, error) {
	return ev.Lex(strings.NewReader(src))
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// accept consumes the next rune if it equals want.
func (l *lexer) accept(want rune) bool {
	r, err := l.readRune()
	if err != nil {
		return false
	}
	if r == want {
		return true
	}
	l.unreadRune()
	return false
}

// next scans the next token from the input. The end of the input is
// reported as io.EOF.
func (l *lexer) next() (Token, error) {
	for {
		pos := l.rune
		r, err := l.readRune()
		if err != nil {
			return Token{}, err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			return l.scanNum(pos)
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			return l.scanIdent(pos)
		case r == '(':
			return LeftParenToken(), nil
		case r == ')':
			return RightParenToken(), nil
		case r == ',':
			return SeparatorToken(), nil
		default:
			return l.scanOp(r, pos)
		}
	}
}

// prefix reports whether the next + or - is a prefix operator: at the start
// of the expression, after a left parenthesis or separator, or after any
// operator except the postfix factorial.
func (l *lexer) prefix() bool {
	switch l.prev {
	case TokNone, TokLeftParen, TokSeparator:
		return true
	case TokOperator:
		return l.prevOp != OpFactorial
	}
	return false
}

func (l *lexer) scanOp(r rune, pos int) (Token, error) {
	switch r {
	case '+':
		if l.prefix() {
			return OperatorToken(OpIdentity), nil
		}
		return OperatorToken(OpAddition), nil
	case '-':
		if l.prefix() {
			return OperatorToken(OpNegation), nil
		}
		return OperatorToken(OpSubtraction), nil
	case '*':
		return OperatorToken(OpMultiplication), nil
	case '/':
		return OperatorToken(OpDivision), nil
	case '%':
		return OperatorToken(OpModulus), nil
	case '^':
		return OperatorToken(OpPower), nil
	case '=':
		if l.accept('=') {
			return OperatorToken(OpEquality), nil
		}
		return OperatorToken(OpAssignment), nil
	case '!':
		if l.accept('=') {
			return OperatorToken(OpInequality), nil
		}
		return OperatorToken(OpFactorial), nil
	case '<':
		if l.accept('=') {
			return OperatorToken(OpLessEqual), nil
		}
		return OperatorToken(OpLess), nil
	case '>':
		if l.accept('=') {
			return OperatorToken(OpGreaterEqual), nil
		}
		return OperatorToken(OpGreater), nil
	}
	// Write the rune so that it shows up in the error message.
	l.buf.WriteRune(r)
	return Token{}, l.error("", pos)
}

func (l *lexer) scanNum(pos int) (Token, error) {
	defer l.buf.Reset()
	var dig, dot, e, le, ed bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Token{}, err
		}
		if r == '+' || r == '-' {
			// A sign anywhere other than immediately following an
			// exponent marker starts a new token.
			if !le {
				l.unreadRune()
				break
			}
			le = false
			l.buf.WriteRune(r)
			continue
		}
		switch {
		case '0' <= r && r <= '9':
			l.buf.WriteRune(r)
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
		case r == '.':
			if dot || e {
				l.buf.WriteRune(r)
				return Token{}, l.error("number", pos)
			}
			l.buf.WriteRune(r)
			dot = true
			le = false
		case r == 'e' || r == 'E':
			if !dig || e {
				l.buf.WriteRune(r)
				return Token{}, l.error("number", pos)
			}
			l.buf.WriteRune(r)
			e = true
			le = true
		default:
			l.unreadRune()
			goto done
		}
	}
done:
	if (!dig && !ed) || (e && !ed) {
		return Token{}, l.error("number", pos)
	}
	text := l.buf.String()
	if dot || e {
		f, _, err := big.ParseFloat(text, 10, l.ev.prec, big.ToNearestEven)
		if err != nil {
			return Token{}, l.error("number", pos)
		}
		return OperandToken(Real(f)), nil
	}
	i, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return Token{}, l.error("number", pos)
	}
	return OperandToken(Integer(i)), nil
}

func (l *lexer) scanIdent(pos int) (Token, error) {
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Token{}, err
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			goto done
		}
	}
done:
	text := l.buf.String()
	switch text {
	case "true":
		return OperandToken(Boolean(true)), nil
	case "false":
		return OperandToken(Boolean(false)), nil
	}
	if op, ok := opNames[text]; ok {
		return OperatorToken(op), nil
	}
	if fn, ok := FunctionNamed(text); ok {
		return FunctionToken(fn), nil
	}
	h := l.ev.syms.Intern(text)
	return OperandToken(Variable(h, text)), nil
}

func (l *lexer) error(kind string, pos int) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  pos,
	}
}

// LexError indicates an invalid token in the raw expression text.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning, e.g. "number", or
	// the empty string if a token kind hadn't been decided.
	Kind string
	// Col is the rune position of the start of the offending token.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}

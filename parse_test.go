package eecalc_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wverity/eecalc"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"single", "2", "2"},
		{"precedence", "2+3*4", "2 3 4 * +"},
		{"group", "(2+3)*4", "2 3 + 4 *"},
		{"left-assoc", "4-5-6", "4 5 - 6 -"},
		{"right-assoc", "2^3^2", "2 3 2 ^ ^"},
		{"mixed", "1+2*3^4", "1 2 3 4 ^ * +"},
		{"call", "max(3, 5)", "3 5 max"},
		{"nested-call", "pow(2, 1+4)", "2 1 4 + pow"},
		{"call-of-call", "abs(min(1, 2))", "1 2 min abs"},
		{"assign", "a = 5", "a 5 ="},
		{"chain-assign", "a = b = 5", "a b 5 = ="},
		{"not", "not true", "true not"},
		{"factorial", "3!", "3 !"},
		{"negated-factorial", "-4!", "4 ! -"},
		{"equality", "1+2 == 4-1", "1 2 + 4 1 - =="},
		{"logic", "true or false and true", "true false true and or"},
		{"relational", "1 < 2 == 3 >= 4", "1 2 < 3 4 >= =="},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ev := eecalc.NewEvaluator()
			infix, err := ev.LexString(c.src)
			if err != nil {
				t.Fatalf("%q failed to lex: %v", c.src, err)
			}
			postfix, err := eecalc.Parse(infix)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := tokenText(postfix); got != c.want {
				t.Errorf("%q parsed wrong:\n\twant %q\n\tgot  %q", c.src, c.want, got)
			}
		})
	}
}

// TestParsePure checks that Parse neither modifies its input nor depends on
// state between calls.
func TestParsePure(t *testing.T) {
	ev := eecalc.NewEvaluator()
	infix, err := ev.LexString("a = max(2^3^2, 10*(4+5))")
	if err != nil {
		t.Fatal(err)
	}
	before := make([]eecalc.Token, len(infix))
	copy(before, infix)
	first, err := eecalc.Parse(infix)
	if err != nil {
		t.Fatal(err)
	}
	second, err := eecalc.Parse(infix)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(infix, before) {
		t.Error("Parse modified its input")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two parses of the same input disagree:\n\tfirst  %q\n\tsecond %q", tokenText(first), tokenText(second))
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"unclosed", "(1 + 2", eecalc.ErrMismatchedParenthesis},
		{"unopened", "1 + 2)", eecalc.ErrMismatchedParenthesis},
		{"unclosed-call", "max(3, 5", eecalc.ErrMismatchedParenthesis},
		{"stray-separator", "1, 2", eecalc.ErrMisplacedSeparator},
		{"leading-separator", ", 1", eecalc.ErrMisplacedSeparator},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ev := eecalc.NewEvaluator()
			infix, err := ev.LexString(c.src)
			if err != nil {
				t.Fatalf("%q failed to lex: %v", c.src, err)
			}
			if _, err := eecalc.Parse(infix); !errors.Is(err, c.err) {
				t.Errorf("%q gave error %v, want %v", c.src, err, c.err)
			}
		})
	}
}

func TestParseUnknownToken(t *testing.T) {
	cases := []struct {
		name  string
		infix []eecalc.Token
	}{
		{"zero-token", []eecalc.Token{{}}},
		{"invalid-operator", []eecalc.Token{eecalc.OperatorToken(eecalc.OpKind(-1))}},
		{"invalid-function", []eecalc.Token{eecalc.FunctionToken(eecalc.FuncKind(127))}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := eecalc.Parse(c.infix); !errors.Is(err, eecalc.ErrUnknownToken) {
				t.Errorf("parse gave error %v, want %v", err, eecalc.ErrUnknownToken)
			}
		})
	}
}

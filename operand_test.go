package eecalc_test

import (
	"testing"

	"github.com/wverity/eecalc"
)

func TestParseLiteral(t *testing.T) {
	cases := []struct {
		name string
		kind string
		text string
		want eecalc.OperandKind
	}{
		{"integer", "integer", "-42", eecalc.KindInteger},
		{"huge-integer", "integer", "18446744073709551616", eecalc.KindInteger},
		{"real", "real", "2.5", eecalc.KindReal},
		{"real-exponent", "real", "1.5e2", eecalc.KindReal},
		{"boolean", "boolean", "true", eecalc.KindBoolean},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := eecalc.ParseLiteral(c.kind, c.text, eecalc.DefaultPrec)
			if err != nil {
				t.Fatalf("ParseLiteral(%q, %q) failed: %v", c.kind, c.text, err)
			}
			if v.Kind() != c.want {
				t.Errorf("ParseLiteral(%q, %q) gave a %v, want %v", c.kind, c.text, v.Kind(), c.want)
			}
			// String followed by ParseLiteral with the same kind must
			// reproduce the operand, since session restore depends on it.
			back, err := eecalc.ParseLiteral(v.Kind().String(), v.String(), eecalc.DefaultPrec)
			if err != nil {
				t.Fatalf("reparsing %q failed: %v", v, err)
			}
			if back.String() != v.String() {
				t.Errorf("reparsing %q gave %q", v, back)
			}
		})
	}

	bad := []struct{ kind, text string }{
		{"integer", "2.5"},
		{"real", "nope"},
		{"boolean", "2"},
		{"variable", "x"},
		{"matrix", "1"},
	}
	for _, c := range bad {
		if _, err := eecalc.ParseLiteral(c.kind, c.text, eecalc.DefaultPrec); err == nil {
			t.Errorf("ParseLiteral(%q, %q) succeeded", c.kind, c.text)
		}
	}
}

func TestSymbolTable(t *testing.T) {
	syms := eecalc.NewSymbolTable()
	x := syms.Intern("x")
	y := syms.Intern("y")
	if x == y {
		t.Fatal("x and y interned to the same handle")
	}
	if syms.Intern("x") != x {
		t.Error("reinterning x gave a new handle")
	}
	if syms.Name(x) != "x" || syms.Name(y) != "y" {
		t.Errorf("handles named %q and %q, want x and y", syms.Name(x), syms.Name(y))
	}
	if _, ok := syms.Value(x); ok {
		t.Error("unassigned slot reports a value")
	}
	syms.Assign(x, eecalc.Int64(5))
	v, ok := syms.Value(x)
	if !ok || v.Int().Int64() != 5 {
		t.Errorf("x holds %v, want 5", v)
	}
	var seen []string
	syms.Each(func(name string, v eecalc.Operand) {
		seen = append(seen, name)
	})
	if len(seen) != 1 || seen[0] != "x" {
		t.Errorf("Each visited %q, want only x", seen)
	}
	if syms.Len() != 2 {
		t.Errorf("Len is %d, want 2", syms.Len())
	}
}

package eecalc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/wverity/eecalc"
)

func TestFunctionsExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind eecalc.OperandKind
		want string
	}{
		{"abs-int", "abs(0-4)", eecalc.KindInteger, "4"},
		{"abs-real", "abs(0-2.5)", eecalc.KindReal, "2.5"},
		{"abs-positive", "abs(7)", eecalc.KindInteger, "7"},
		{"floor", "floor(2.5)", eecalc.KindReal, "2"},
		{"floor-negative", "floor(0-2.5)", eecalc.KindReal, "-3"},
		{"floor-integral", "floor(2.0)", eecalc.KindReal, "2"},
		{"floor-int", "floor(3)", eecalc.KindInteger, "3"},
		{"ceil", "ceil(2.5)", eecalc.KindReal, "3"},
		{"ceil-negative", "ceil(0-2.5)", eecalc.KindReal, "-2"},
		{"max", "max(3, 5)", eecalc.KindInteger, "5"},
		{"min", "min(3, 5)", eecalc.KindInteger, "3"},
		{"max-promotes", "max(2, 2.5)", eecalc.KindReal, "2.5"},
		{"min-negative", "min(0-1, 1)", eecalc.KindInteger, "-1"},
		{"pow", "pow(2, 10)", eecalc.KindInteger, "1024"},
		{"pow-real", "pow(2.0, 0-2)", eecalc.KindReal, "0.25"},
		{"sqrt", "sqrt(9)", eecalc.KindReal, "3"},
		{"sqrt-real", "sqrt(2.25)", eecalc.KindReal, "1.5"},
		{"sqrt-zero", "sqrt(0)", eecalc.KindReal, "0"},
		{"nested", "max(abs(0-3), min(2, 5))", eecalc.KindInteger, "3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ev := eecalc.NewEvaluator()
			res := evalString(t, ev, c.src)
			if res.Kind() != c.kind {
				t.Errorf("%q gave a %v, want %v", c.src, res.Kind(), c.kind)
			}
			if got := res.String(); got != c.want {
				t.Errorf("%q evaluated wrong:\n\twant %q\n\tgot  %q", c.src, c.want, got)
			}
		})
	}
}

// TestFunctionsApprox checks the transcendental functions against float64
// references. Results carry the working precision, so comparison happens
// after narrowing to float64.
func TestFunctionsApprox(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"exp-zero", "exp(0)", 1},
		{"exp-one", "exp(1)", math.E},
		{"ln-one", "ln(1)", 0},
		{"ln-e", "ln(exp(1))", 1},
		{"log", "log(1000)", 3},
		{"lb", "lb(8)", 3},
		{"lb-fraction", "lb(0.5)", -1},
		{"sin", "sin(0)", 0},
		{"cos", "cos(0)", 1},
		{"tan", "tan(0)", 0},
		{"arcsin", "arcsin(1)", math.Pi / 2},
		{"arccos", "arccos(1)", 0},
		{"arctan", "arctan(1)", math.Pi / 4},
		{"arctan2", "arctan2(1, 1)", math.Pi / 4},
		{"arctan2-axis", "arctan2(1, 0)", math.Pi / 2},
		{"pow-root", "4^0.5", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ev := eecalc.NewEvaluator()
			res := evalString(t, ev, c.src)
			if res.Kind() != eecalc.KindReal {
				t.Fatalf("%q gave a %v, want %v", c.src, res.Kind(), eecalc.KindReal)
			}
			got, _ := res.Float().Float64()
			if math.Abs(got-c.want) > 1e-12 {
				t.Errorf("%q evaluated to %g, want %g", c.src, got, c.want)
			}
		})
	}
}

func TestFunctionErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"ln-zero", "ln(0)", eecalc.ErrInvalidOperandType},
		{"log-negative", "log(0-1)", eecalc.ErrInvalidOperandType},
		{"sqrt-negative", "sqrt(0-1)", eecalc.ErrInvalidOperandType},
		{"arccos-domain", "arccos(2)", eecalc.ErrInvalidOperandType},
		{"abs-boolean", "abs(true)", eecalc.ErrInvalidOperandType},
		{"max-boolean", "max(true, 1)", eecalc.ErrInvalidOperandType},
		{"missing-argument", "max(3)", eecalc.ErrInsufficientOperands},
		{"extra-argument", "sin(1, 2)", eecalc.ErrTooManyOperands},
		{"unset-argument", "sqrt(z)", eecalc.ErrUninitializedVariable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ev := eecalc.NewEvaluator()
			if _, err := ev.EvalString(c.src); !errors.Is(err, c.err) {
				t.Errorf("%q gave error %v, want %v", c.src, err, c.err)
			}
		})
	}
}

func TestFunctionNamed(t *testing.T) {
	for _, name := range []string{"abs", "arctan2", "lb", "max", "pow", "result", "sqrt"} {
		fn, ok := eecalc.FunctionNamed(name)
		if !ok {
			t.Errorf("FunctionNamed(%q) found nothing", name)
			continue
		}
		if fn.String() != name {
			t.Errorf("FunctionNamed(%q) gave %v", name, fn)
		}
	}
	if _, ok := eecalc.FunctionNamed("nonesuch"); ok {
		t.Error("FunctionNamed found a function named nonesuch")
	}
}

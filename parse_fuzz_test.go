//go:build go1.18
// +build go1.18

package eecalc_test

import (
	"testing"

	"github.com/wverity/eecalc"
)

func FuzzParse(f *testing.F) {
	f.Add("x = 5")
	f.Add("max(2^3^2, 10*(4+5))")
	f.Add("1, 2")
	f.Fuzz(func(t *testing.T, s string) {
		ev := eecalc.NewEvaluator()
		infix, err := ev.LexString(s)
		if err != nil {
			return
		}
		eecalc.Parse(infix)
	})
}

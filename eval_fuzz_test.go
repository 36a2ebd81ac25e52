//go:build go1.18
// +build go1.18

package eecalc_test

import (
	"testing"

	"github.com/wverity/eecalc"
)

func FuzzEval(f *testing.F) {
	f.Add("x = 5")
	f.Add("true nand (1 < 2)")
	f.Add("2^(0-1)!")
	f.Fuzz(func(t *testing.T, s string) {
		ev := eecalc.NewEvaluator()
		ev.EvalString(s)
	})
}

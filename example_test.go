package eecalc_test

import (
	"fmt"

	"github.com/wverity/eecalc"
)

func ExampleEvaluator_EvalString() {
	ev := eecalc.NewEvaluator()

	for _, src := range []string{
		"x = 2^10",
		"x / 4.0",
		"max(x, 2000) > 1024",
	} {
		res, err := ev.EvalString(src)
		if err != nil {
			fmt.Println(err)
			continue
		}
		res, _ = ev.Resolve(res)
		fmt.Println(res)
	}

	// Output:
	// 1024
	// 256
	// true
}

func ExampleParse() {
	ev := eecalc.NewEvaluator()
	infix, _ := ev.LexString("(1 + 2) * 3^4")
	postfix, _ := eecalc.Parse(infix)
	for i, tok := range infix {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(tok)
	}
	fmt.Println()
	for i, tok := range postfix {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(tok)
	}
	fmt.Println()

	// Output:
	// ( 1 + 2 ) * 3 ^ 4
	// 1 2 + 3 4 ^ *
}

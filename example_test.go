package calc_test

import (
	"fmt"
	"math"

	"github.com/zephyrtronium/calc"
)

func ExampleCalculator_Eval() {
	c := calc.New()
	fmt.Println(c.Eval("a=100;b=-a-100;c=a-2*b/a;c"))
	fmt.Println(c.Eval("a+b"))
	fmt.Println(c.Eval("2*2<<11>>1"))
	fmt.Println(c.Eval("0xff & ~0b1010"))

	// Output:
	// 104 <nil>
	// -100 <nil>
	// 4096 <nil>
	// 245 <nil>
}

func ExampleCalculator_DefineBinaryFunc() {
	c := calc.New()
	c.DefineBinaryFunc("hypot", math.Hypot)
	fmt.Println(c.Eval("hypot(3, 4) * 2"))

	// Output:
	// 10 <nil>
}

func ExampleInputError() {
	_, err := calc.EvalString("1 + (2 * 3")
	if err, ok := err.(calc.InputError); ok {
		fmt.Println(err.Pos(), err)
	}

	// Output:
	// 5 5: open bracket ( with no close bracket
}

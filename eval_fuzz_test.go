package calc_test

import (
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y=2;x*y")
	f.Add("0x1f<<3>>1")
	f.Fuzz(func(t *testing.T, s string) {
		calc.EvalString(s, calc.SetVar("x", 0))
	})
}

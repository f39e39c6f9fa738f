package calc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// UnaryFunc is a function of one variable callable as name(x).
type UnaryFunc func(x float64) float64

// BinaryFunc is a function of two variables callable as name(x, y).
type BinaryFunc func(x, y float64) float64

var globalfuncs = map[string]UnaryFunc{
	"sqrt":      math.Sqrt,
	"ceil":      math.Ceil,
	"cos":       math.Cos,
	"sin":       math.Sin,
	"tan":       math.Tan,
	"log":       math.Log,
	"floor":     math.Floor,
	"acos":      math.Acos,
	"asin":      math.Asin,
	"atan":      math.Atan,
	"exp":       math.Exp,
	"log2":      math.Log2,
	"log10":     math.Log10,
	"erf":       math.Erf,
	"round":     math.Round,
	"factorial": factorial,
}

var globalbinfuncs = map[string]BinaryFunc{
	"pow": math.Pow,
	"max": func(x, y float64) float64 {
		if x > y {
			return x
		}
		return y
	},
	"min": func(x, y float64) float64 {
		if x < y {
			return x
		}
		return y
	},
}

// factorial multiplies the integers from 2 through x. Anything past 170!
// overflows to +Inf.
func factorial(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	if x > 170 {
		return math.Inf(1)
	}
	v := 1.0
	for i := 2.0; i <= x; i++ {
		v *= i
	}
	return v
}

// constprec is the precision at which the built-in constants are computed
// before rounding to float64.
const constprec = 128

var globalconsts = map[string]float64{
	"pi": constant(bigfloat.Pi),
	"e": constant(func(z *big.Float) *big.Float {
		one := new(big.Float).SetPrec(constprec).SetInt64(1)
		return bigfloat.Exp(z, one)
	}),
	"sqrt2": constant(func(z *big.Float) *big.Float {
		two := new(big.Float).SetPrec(constprec).SetInt64(2)
		return z.Sqrt(two)
	}),
}

// constant evaluates f at high precision and rounds the result to the
// nearest float64.
func constant(f func(z *big.Float) *big.Float) float64 {
	z := new(big.Float).SetPrec(constprec)
	f(z)
	v, _ := z.Float64()
	return v
}

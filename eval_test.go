package calc_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc"
)

// near asserts that got is within a relative 1e-12 of want.
func near(t *testing.T, want, got float64, msgAndArgs ...interface{}) {
	t.Helper()
	switch {
	case math.IsInf(want, 0), want == 0:
		assert.Equal(t, want, got, msgAndArgs...)
	default:
		assert.InEpsilon(t, want, got, 1e-12, msgAndArgs...)
	}
}

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"int", "1", 1},
		{"float", "1.5", 1.5},
		{"add", "4+5+6", 4 + 5 + 6},
		{"sub", "4-5-6", 4 - 5 - 6},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "4/5/6", 4.0 / 5.0 / 6.0},
		{"mod", "7%3", 1},
		{"mod-neg", "-7%3", -1},
		{"mod-float", "5.5%2", 1.5},
		{"pow", "2**10", 1024},
		{"and", "12&10", 8},
		{"or", "12|10", 14},
		{"xor", "12^10", 6},
		{"not-zero", "!0", 1},
		{"not-nonzero", "!3", 0},
		{"negate", "~5", -6},
		{"shl", "1<<10", 1024},
		{"shr", "1024>>3", 128},
		{"shift-group", "(1<<2)*3", 12},
		{"group", "(1+2)*3", 9},
		{"neg-group", "-(1+2)*3", -9},
		{"float-div-zero", "1/0.0", math.Inf(1)},
		{"computed-div-zero", "1/(1-1)", math.Inf(1)},
		{"pi", "pi", math.Pi},
		{"e", "e", math.E},
		{"sqrt2", "sqrt2", math.Sqrt2},
		{"factorial", "factorial(5)", 120},
		{"max", "max(3,7)", 7},
		{"min", "min(3,7)", 3},
		{"round", "round(2.5)", 3},
		{"neg-func", "-sqrt(16)", -4},
		{"statements", "1;2;3", 3},
		{"empty", "", 0},
		{"only-seps", ";;;", 0},
		{"only-assign", "a=1", 0},

		{"shift-loosest", "2*2<<11>>1", 4096},
		{"bits", "19199&(172121|1910)^123", 516},
		{"vars", "a=100;b=-a-100;c=a-2*b/a;c", 104},
		{"many-seps", ";;;;y=10000*200;;;a=100;;;b=100;;;a+100+b*y;", 200000200},
		{"nested-funcs", "cos(12.34/(111.22*exp(3)))", 0.9999847430913299},
		{"bases", "0xffffeeAA / 0b0101010 + 0o7777 - 100", 102265015.42857143},
		{"shr-neg", "-311>>2", -78},
		{"pow-neg", "9**-3/12", 0.00011431184270690443},
		{"assign-shift", "a=10<<2;a+1", 41},
		{"assign-chain", "a=1000;x=a;b=x;b", 1000},
		{"hex-sum", "10+0x11 + 100", 127},
		{"octal-float", "0o10111 + 111.1234", 4280.1234},
		{"trailing-dot", "1.001+0.-100", -98.999},
		{"neg-log", "-1+-log(101010)", -12.52297480082323},
		{"neg-pow", "1*-pow(2,3)", -8},
		{"exp-literal", "100e3-100*pow(4,7)", -1538400},
		{"signs", "1 + -100 + 100 - +1000 - +1000 + -10100", -12099},
		{"sub-pos", "1-+100", -99},
		{"add-neg", "1+-100", -99},
		{"const-assign", "e3=12345;log2(e3)", 13.591639216030144},
		{"ident-digits", "a12=100;1+3*a12/10", 31},
		{"pow-shift", "pow(10<<2,20)", 1.099511627776e+32},
		{"mixed", "10-9+12*3/pow(2,10)-10*192", -1918.96484375},
		{"cos-pow", "100-cos(17)+pow(3,8)", 6661.275163338051},
		{"exp", "exp(10)", 22026.465794806718},
		{"func-group", "sin((2+1))", 0.1411200080598672},
		{"func-sum", "cos(2+(100)+100)", 0.591345375451585},
		{"exponents", "-12e-3+12.33e+2-10.e1", 1132.988},
		{"multiline", "a=2;\nb=3;\na*b", 6},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			got, err := calc.New().Eval(c.src)
			require.NoError(t, err, "evaluating %q", c.src)
			near(t, c.want, got, "evaluating %q", c.src)
		})
	}
}

func TestEvalUserFuncs(t *testing.T) {
	c := calc.New(
		calc.SetFunc("func", func(x float64) float64 { return 2 * x }),
		calc.SetBinaryFunc("h", func(x, y float64) float64 { return x*10000 + y*2000 }),
		calc.SetVar("var", 999999),
	)
	cases := []struct {
		src  string
		want float64
	}{
		{"h(-13e-4,-5)/log(100000)", -869.7181294594521},
		{"func(100)-sin(cos(pow(12,5)))", 199.47680614214548},
		{"5/func(111)+12", 12.022522522522523},
		{"a=pi;b=a;a+10.1+var/1000;", 1013.2405926535898},
	}
	for _, tc := range cases {
		got, err := c.Eval(tc.src)
		require.NoError(t, err, "evaluating %q", tc.src)
		near(t, tc.want, got, "evaluating %q", tc.src)
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  interface{}
		pos  int
	}{
		{"double-plus", "1++100", new(*calc.LexError), 3},
		{"double-minus", "1--100", new(*calc.LexError), 3},
		{"many-minus", "1. - - - - -100", new(*calc.LexError), 6},
		{"bad-char", "1 $ 2", new(*calc.LexError), 3},
		{"unclosed", "(1+2", new(*calc.BracketError), 1},
		{"unopened", "1+2)", new(*calc.BracketError), 4},
		{"unregistered", "nope(1)", new(*calc.UnregisteredFuncError), 1},
		{"undefined", "x+1", new(*calc.AssignError), 1},
		{"no-value", "x=", new(*calc.AssignError), 1},
		{"undefined-value", "x=y", new(*calc.NameError), 3},
		{"empty-call", "cos()", new(*calc.CallError), 1},
		{"too-many-args", "max(1,2,3)", new(*calc.CallError), 1},
		{"missing-op", "1 2", new(*calc.OperatorError), 3},
		{"stray-equal", "1=2", new(*calc.OperatorError), 2},
		{"no-operand", "*", new(*calc.OperandError), 1},
		{"missing-left", "1+", new(*calc.OperandError), 2},
		{"missing-arg", "max(1)", new(*calc.OperandError), 1},
		{"comma", "1,2", new(*calc.SeparatorError), 2},
		{"div-zero", "1/0", new(*calc.DivZeroError), 2},
		{"div-zero-group", "5/(0)", new(*calc.DivZeroError), 2},
		{"negate-float", "~1.5", new(*calc.NegateTypeError), 1},
		{"negate-expr", "~(1+1)", new(*calc.NegateTypeError), 1},
		{"shift-float", "1.5<<1", new(*calc.ShiftError), 4},
		{"shift-by-float", "1<<1.5", new(*calc.ShiftError), 2},
		{"shift-neg", "1<<-1", new(*calc.ShiftError), 2},
		{"negate-twice", "~~5", new(*calc.NegateTypeError), 1},
		{"hex-overflow", "0xffffffffffffffff", new(*calc.LexError), 1},
		{"assign-negated", "-a=3", new(*calc.OperatorError), 3},
		{"assign-in-unary-arg", "sqrt(a=4)", new(*calc.AssignError), 6},
		{"assign-in-binary-arg", "max(b=2,3)", new(*calc.AssignError), 5},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			_, err := calc.New().Eval(c.src)
			require.Error(t, err, "evaluating %q", c.src)
			require.True(t, errors.As(err, c.err), "evaluating %q: wrong error type %T (%v)", c.src, err, err)
			var ierr calc.InputError
			require.True(t, errors.As(err, &ierr))
			assert.Equal(t, c.pos, ierr.Pos(), "evaluating %q: %v", c.src, err)
		})
	}
}

func TestExec(t *testing.T) {
	c := calc.New()
	v, ok, err := c.Exec("a=1;b=2")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0.0, v)

	v, ok, err = c.Exec("a+b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestPersistence(t *testing.T) {
	c := calc.New()
	_, err := c.Eval("x=5")
	require.NoError(t, err)
	v, err := c.Eval("x*2")
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	// Assignments before an error still take effect.
	_, err = c.Eval("y=7;1/0")
	require.Error(t, err)
	y, ok := c.Lookup("y")
	require.True(t, ok)
	assert.Equal(t, 7.0, y)
}

func TestReassign(t *testing.T) {
	c := calc.New()
	v, err := c.Eval("a=1;a=2;a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = c.Eval("a=3*4;a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	c.Define("a", 9)
	v, err = c.Eval("a")
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)
}

func TestIdempotent(t *testing.T) {
	c := calc.New(calc.SetVar("r", 2.5))
	for _, src := range []string{
		"cos(12.34/(111.22*exp(3)))+pi*2*r",
		"x=3;x*pi/7",
		"max(sqrt(r), -0x10) ** 3 - 1",
	} {
		a, err := c.Eval(src)
		require.NoError(t, err, "evaluating %q", src)
		b, err := c.Eval(src)
		require.NoError(t, err, "evaluating %q again", src)
		assert.Equal(t, math.Float64bits(a), math.Float64bits(b), "evaluating %q: %v then %v", src, a, b)
	}
}

func TestDefineFunc(t *testing.T) {
	c := calc.New()
	_, err := c.Eval("twice(2)")
	var unreg *calc.UnregisteredFuncError
	require.True(t, errors.As(err, &unreg))
	assert.Equal(t, "twice", unreg.Func)

	c.DefineFunc("twice", func(x float64) float64 { return 2 * x })
	c.DefineBinaryFunc("hyp", math.Hypot)
	v, err := c.Eval("twice(hyp(3,4))")
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	c.DefineFunc("twice", nil)
	_, err = c.Eval("twice(2)")
	assert.True(t, errors.As(err, &unreg))
}

func TestRemoveFuncDuringEval(t *testing.T) {
	c := calc.New()
	c.DefineFunc("once", func(x float64) float64 {
		c.RemoveFunc("once")
		return x
	})
	_, err := c.Eval("once(1)+once(2)")
	var undecl *calc.UndeclaredFuncError
	require.True(t, errors.As(err, &undecl), "wrong error %T (%v)", err, err)
	assert.Equal(t, "once", undecl.Func)
	assert.Equal(t, 9, undecl.Pos())
}

func TestRemovePow(t *testing.T) {
	c := calc.New().RemoveFunc("pow")
	_, err := c.Eval("2**3")
	var undecl *calc.UndeclaredFuncError
	require.True(t, errors.As(err, &undecl))
	assert.Equal(t, "pow", undecl.Func)
}

func TestNoDefaultFuncs(t *testing.T) {
	_, err := calc.EvalString("cos(0)", calc.NoDefaultFuncs())
	var unreg *calc.UnregisteredFuncError
	assert.True(t, errors.As(err, &unreg))

	// Functions set by options survive regardless of order.
	v, err := calc.EvalString("cos(0)+pi", calc.SetFunc("cos", math.Cos), calc.NoDefaultFuncs())
	require.NoError(t, err)
	near(t, 1+math.Pi, v)
}

func TestVars(t *testing.T) {
	c := calc.New(calc.SetVars(map[string]float64{"zz": 1, "aa": 2}))
	_, err := c.Eval("mm=3")
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "e", "mm", "pi", "sqrt2", "zz"}, c.Vars())
}

func TestClone(t *testing.T) {
	c := calc.New(calc.SetVar("x", 1))
	d := c.Clone(calc.SetVar("y", 2))
	_, err := d.Eval("z=3")
	require.NoError(t, err)
	d.RemoveFunc("cos")

	_, ok := c.Lookup("y")
	assert.False(t, ok, "clone option leaked into original")
	_, ok = c.Lookup("z")
	assert.False(t, ok, "clone assignment leaked into original")
	v, err := c.Eval("cos(0)+x")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	v, err = d.Eval("x+y+z")
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	e := c.Clone(calc.NoDefaultFuncs())
	_, err = e.Eval("cos(0)")
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 2})
	c := calc.New(calc.Logger(log))
	_, err := c.Eval("a=1;a=2;a+1")
	require.NoError(t, err)
	all := strings.Join(lines, "\n")
	assert.Contains(t, all, `"msg"="assign" "name"="a" "value"=1`)
	assert.Contains(t, all, `"msg"="ignoring reassignment" "name"="a"`)
	assert.Contains(t, all, `"msg"="built" "tree"="([1] + [1])"`)
	assert.Contains(t, all, `"msg"="scanned"`)
}

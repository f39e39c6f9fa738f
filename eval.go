package calc

import (
	"math"

	"github.com/go-logr/logr"
)

// Calculator evaluates expressions. Variables assigned by an expression
// persist in the calculator for later expressions. It is not safe to use a
// Calculator concurrently.
type Calculator struct {
	reg *registry
	log logr.Logger
}

// New creates a calculator with the default functions and constants, then
// applies options to it.
func New(opts ...Option) *Calculator {
	c := Calculator{
		reg: newRegistry(!hasNoDefaults(opts)),
		log: logr.Discard(),
	}
	c.apply(opts)
	return &c
}

// Clone creates a copy of a calculator and applies options to it. Changes
// to either calculator's variables or functions do not affect the other.
func (c *Calculator) Clone(opts ...Option) *Calculator {
	n := Calculator{reg: c.reg.clone(), log: c.log}
	if hasNoDefaults(opts) {
		n.reg.removeDefaults()
	}
	n.apply(opts)
	return &n
}

// Eval evaluates text and returns the value of its last expression. If text
// contains only assignments, the result is 0. Assignments made before an
// error remain in effect.
func (c *Calculator) Eval(text string) (float64, error) {
	v, _, err := c.Exec(text)
	return v, err
}

// Exec evaluates text like Eval. ok reports whether text contained any
// expression besides assignments.
func (c *Calculator) Exec(text string) (v float64, ok bool, err error) {
	toks, err := lex(text, c.reg).all()
	if err != nil {
		return 0, false, err
	}
	if c.log.V(2).Enabled() {
		s := make([]string, len(toks))
		for i, t := range toks {
			s[i] = t.String()
		}
		c.log.V(2).Info("scanned", "text", text, "tokens", s)
	}
	cur := &tokenCursor{toks: toks}
	for cur.i < len(toks) {
		root, err := c.buildTree(cur)
		if err != nil {
			return 0, false, err
		}
		if root != nil {
			c.log.V(2).Info("built", "tree", root.String())
			v, err = c.calcValue(root)
			if err != nil {
				return 0, false, err
			}
			ok = true
		}
		if cur.i >= len(toks) {
			break
		}
		switch t := toks[cur.i]; {
		case t.kind == tokenSep:
			cur.i++
		case t.isComma():
			return 0, false, &SeparatorError{Col: t.pos, Sep: ","}
		default:
			return 0, false, &BracketError{Col: t.pos, Right: ")"}
		}
	}
	return v, ok, nil
}

// EvalString is a shortcut to evaluate text with a new calculator.
func EvalString(text string, opts ...Option) (float64, error) {
	return New(opts...).Eval(text)
}

// Define sets a variable, overwriting any previous value. Unlike an
// assignment within an expression, Define always takes effect.
func (c *Calculator) Define(name string, v float64) *Calculator {
	c.reg.putConst(name, v)
	return c
}

// DefineFunc registers a unary function. Passing nil for fn removes it.
func (c *Calculator) DefineFunc(name string, fn UnaryFunc) *Calculator {
	if fn == nil {
		delete(c.reg.unary, name)
		return c
	}
	c.reg.unary[name] = fn
	return c
}

// DefineBinaryFunc registers a binary function. Passing nil for fn removes
// it. The ** operator calls the binary function named pow.
func (c *Calculator) DefineBinaryFunc(name string, fn BinaryFunc) *Calculator {
	if fn == nil {
		delete(c.reg.binary, name)
		return c
	}
	c.reg.binary[name] = fn
	return c
}

// RemoveFunc unregisters any function with the given name.
func (c *Calculator) RemoveFunc(name string) *Calculator {
	delete(c.reg.unary, name)
	delete(c.reg.binary, name)
	return c
}

// Lookup returns the value of a variable or constant.
func (c *Calculator) Lookup(name string) (float64, bool) {
	v, ok := c.reg.consts[name]
	return v, ok
}

// Vars returns the names of all variables and constants in sorted order.
func (c *Calculator) Vars() []string {
	names := make([]string, 0, len(c.reg.consts))
	for k := range c.reg.consts {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// calcValue evaluates a tree in post-order, storing each node's value in the
// node.
func (c *Calculator) calcValue(n *node) (float64, error) {
	if n == nil {
		return 0, nil
	}
	switch n.kind {
	case nodeInt, nodeFloat:
		return n.value, nil
	}
	for _, k := range [...]*node{n.left, n.right} {
		if k == nil {
			continue
		}
		v, err := c.calcValue(k)
		if err != nil {
			return 0, err
		}
		k.value = v
	}
	v, err := c.apply1(n)
	if err != nil {
		return 0, err
	}
	n.value = v
	return v, nil
}

// apply1 computes the value of a single node whose children are evaluated.
func (c *Calculator) apply1(n *node) (float64, error) {
	switch n.kind {
	case nodeFunc:
		x := n.child()
		if x == nil {
			return 0, &OperandError{Col: n.pos, Op: n.name, Want: 1}
		}
		f := c.reg.unary[n.name]
		if f == nil {
			return 0, &UndeclaredFuncError{Col: n.pos, Func: n.name}
		}
		return negif(f(x.value), n.neg), nil
	case nodeBinaryFunc:
		if n.left == nil || n.right == nil {
			return 0, &OperandError{Col: n.pos, Op: n.name, Want: 2}
		}
		f := c.reg.binary[n.name]
		if f == nil {
			return 0, &UndeclaredFuncError{Col: n.pos, Func: n.name}
		}
		return negif(f(n.left.value, n.right.value), n.neg), nil
	case nodeNot:
		x := n.child()
		if x == nil {
			return 0, &OperandError{Col: n.pos, Op: n.op(), Want: 1}
		}
		if int64(x.value) == 0 {
			return 1, nil
		}
		return 0, nil
	case nodeNegate:
		x := n.child()
		if x == nil {
			return 0, &OperandError{Col: n.pos, Op: n.op(), Want: 1}
		}
		if x.kind != nodeInt {
			return 0, &NegateTypeError{Col: n.pos, X: x.value}
		}
		return float64(^int64(x.value)), nil
	case nodeNone:
		panic("calc: invalid node")
	}
	l, r := n.left, n.right
	if l == nil || r == nil {
		return 0, &OperandError{Col: n.pos, Op: n.op(), Want: 2}
	}
	switch n.kind {
	case nodeAdd:
		return l.value + r.value, nil
	case nodeSub:
		return l.value - r.value, nil
	case nodeMul:
		return l.value * r.value, nil
	case nodeDiv:
		if r.kind == nodeInt && r.value == 0 {
			return 0, &DivZeroError{Col: n.pos, X: l.value}
		}
		return l.value / r.value, nil
	case nodeMod:
		return math.Mod(l.value, r.value), nil
	case nodeAnd:
		return float64(int64(l.value) & int64(r.value)), nil
	case nodeOr:
		return float64(int64(l.value) | int64(r.value)), nil
	case nodeXor:
		return float64(int64(l.value) ^ int64(r.value)), nil
	case nodeShl, nodeShr:
		if l.kind == nodeFloat || r.kind == nodeFloat {
			return 0, &ShiftError{Col: n.pos, Op: n.op(), Float: true, N: r.value}
		}
		if r.value < 0 {
			return 0, &ShiftError{Col: n.pos, Op: n.op(), N: r.value}
		}
		if n.kind == nodeShl {
			return float64(int64(l.value) << uint64(r.value)), nil
		}
		return float64(int64(l.value) >> uint64(r.value)), nil
	case nodePow:
		f := c.reg.binary["pow"]
		if f == nil {
			return 0, &UndeclaredFuncError{Col: n.pos, Func: "pow"}
		}
		return f(l.value, r.value), nil
	default:
		panic("calc: invalid node " + n.op())
	}
}

func negif(x float64, neg bool) float64 {
	if neg {
		return -x
	}
	return x
}

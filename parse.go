package calc

// tokenCursor is a position in a token list, shared by every level of a
// recursive parse. Whenever buildTree returns, with or without an error, i is
// the index of the first token it did not consume.
type tokenCursor struct {
	toks []token
	i    int
}

// kindAt returns the kind of the token k places past the cursor, or
// tokenNone past the end.
func (c *tokenCursor) kindAt(k int) tokenKind {
	if c.i+k >= len(c.toks) {
		return tokenNone
	}
	return c.toks[c.i+k].kind
}

// operator is an entry on the operator stack.
type operator struct {
	kind tokenKind
	pos  int
}

// frame holds the two stacks for one level of buildTree.
type frame struct {
	ops   []operator
	nodes []*node
}

func (f *frame) empty() bool {
	return len(f.ops) == 0 && len(f.nodes) == 0
}

func (f *frame) push(n *node) {
	f.nodes = append(f.nodes, n)
}

func (f *frame) pop() *node {
	if len(f.nodes) == 0 {
		return nil
	}
	n := f.nodes[len(f.nodes)-1]
	f.nodes = f.nodes[:len(f.nodes)-1]
	return n
}

// fold pops the top operator and its operands and pushes the node they form.
func (f *frame) fold() error {
	op := f.ops[len(f.ops)-1]
	f.ops = f.ops[:len(f.ops)-1]
	if op.kind == tokenGroupOpen {
		return &BracketError{Col: op.pos}
	}
	n := &node{kind: opnodes[op.kind], pos: op.pos}
	if op.kind.unary() {
		n.left = f.pop()
		if n.left == nil {
			return &OperandError{Col: op.pos, Op: op.kind.String(), Want: 1}
		}
	} else {
		n.right = f.pop()
		if n.right == nil {
			return &OperandError{Col: op.pos, Op: op.kind.String(), Want: 2}
		}
		// A missing left operand is left for the evaluator to reject.
		n.left = f.pop()
	}
	f.push(n)
	return nil
}

// operator folds every stacked operator that binds at least as tightly as k,
// then stacks k. Prefix operators fold nothing, since nothing to their left
// can be their operand.
func (f *frame) operator(k tokenKind, pos int) error {
	if !k.unary() {
		for len(f.ops) > 0 && k.priority() <= f.ops[len(f.ops)-1].kind.priority() {
			if err := f.fold(); err != nil {
				return err
			}
		}
	}
	f.ops = append(f.ops, operator{kind: k, pos: pos})
	return nil
}

// closeGroup folds operators down to the matching open group marker.
func (f *frame) closeGroup(pos int) error {
	for len(f.ops) > 0 && f.ops[len(f.ops)-1].kind != tokenGroupOpen {
		if err := f.fold(); err != nil {
			return err
		}
	}
	if len(f.ops) == 0 {
		return &BracketError{Col: pos, Right: ")"}
	}
	f.ops = f.ops[:len(f.ops)-1]
	return nil
}

// finish folds the remaining operators and returns the root, if any.
func (f *frame) finish() (*node, error) {
	for len(f.ops) > 0 {
		if err := f.fold(); err != nil {
			return nil, err
		}
	}
	switch len(f.nodes) {
	case 0:
		return nil, nil
	case 1:
		return f.nodes[0], nil
	default:
		return nil, &OperatorError{Col: f.nodes[1].pos}
	}
}

// buildTree builds a tree from tokens starting at cur. It stops before a
// function's close bracket, an argument separator, a statement separator
// following an expression, or the end of the tokens. Assignment statements
// are executed as they are parsed and do not appear in the tree. If the
// tokens contain only assignments, the result is nil with no error.
func (c *Calculator) buildTree(cur *tokenCursor) (*node, error) {
	var f frame
	for ; cur.i < len(cur.toks); cur.i++ {
		tok := cur.toks[cur.i]
		switch tok.kind {
		case tokenFuncClose:
			return f.finish()
		case tokenOther:
			if tok.isComma() {
				return f.finish()
			}
			panic("calc: unknown token: " + tok.String())
		case tokenSep:
			if f.empty() {
				continue
			}
			return f.finish()
		case tokenGroupOpen:
			f.ops = append(f.ops, operator{kind: tokenGroupOpen, pos: tok.pos})
		case tokenGroupClose:
			if err := f.closeGroup(tok.pos); err != nil {
				return nil, err
			}
		case tokenInt:
			f.push(&node{kind: nodeInt, value: float64(tok.i), pos: tok.pos})
		case tokenFloat:
			if tok.text != "" && cur.kindAt(1) == tokenEqual {
				// The lexer substituted an assigned variable.
				if err := c.assign(cur, false); err != nil {
					return nil, err
				}
				continue
			}
			f.push(&node{kind: nodeFloat, value: tok.f, pos: tok.pos})
		case tokenIdent:
			v, ok := c.reg.consts[tok.text]
			switch {
			case tok.neg && cur.kindAt(1) == tokenEqual:
				// -a = 3
				return nil, &OperatorError{Col: cur.toks[cur.i+1].pos, Operator: "="}
			case ok && cur.kindAt(1) == tokenEqual:
				if err := c.assign(cur, false); err != nil {
					return nil, err
				}
			case ok:
				f.push(&node{kind: nodeFloat, value: v, pos: tok.pos})
			case cur.kindAt(1) == tokenEqual:
				if err := c.assign(cur, true); err != nil {
					return nil, err
				}
			default:
				return nil, &AssignError{Col: tok.pos, Name: tok.text}
			}
		case tokenFunc:
			n, err := c.call(cur)
			if err != nil {
				return nil, err
			}
			f.push(n)
		case tokenBinaryFunc:
			n, err := c.binaryCall(cur)
			if err != nil {
				return nil, err
			}
			f.push(n)
		case tokenEqual:
			return nil, &OperatorError{Col: tok.pos, Operator: "="}
		default:
			if !tok.kind.isOperator() {
				panic("calc: unknown token: " + tok.String())
			}
			if err := f.operator(tok.kind, tok.pos); err != nil {
				return nil, err
			}
		}
	}
	return f.finish()
}

// assign executes an assignment statement. cur is at the variable and moves
// to the last token of the statement, so that the caller's next step passes
// over it. If store is false, the statement is parsed but has no effect: a
// variable that already has a value keeps it.
func (c *Calculator) assign(cur *tokenCursor, store bool) error {
	name := cur.toks[cur.i]
	cur.i += 2
	if cur.i >= len(cur.toks) || cur.toks[cur.i].kind == tokenSep {
		return &AssignError{Col: name.pos, Name: name.text, NoValue: true}
	}
	if !store {
		c.log.V(1).Info("ignoring reassignment", "name", name.text)
	}
	val := cur.toks[cur.i]
	if k := cur.kindAt(1); k != tokenNone && k != tokenSep {
		// The value is an expression. Build it, evaluate it, and throw the
		// tree away.
		n, err := c.buildTree(cur)
		if err != nil {
			return err
		}
		if n == nil {
			return &AssignError{Col: name.pos, Name: name.text, NoValue: true}
		}
		switch cur.kindAt(0) {
		case tokenFuncClose, tokenOther:
			return &AssignError{Col: name.pos, Name: name.text, InCall: true}
		case tokenNone:
			cur.i--
		}
		if !store {
			return nil
		}
		v, err := c.calcValue(n)
		if err != nil {
			return err
		}
		c.define(name.text, v)
		return nil
	}
	var v float64
	switch val.kind {
	case tokenInt:
		v = float64(val.i)
	case tokenFloat:
		v = val.f
	case tokenIdent:
		x, ok := c.reg.consts[val.text]
		if !ok && store {
			return &NameError{Col: val.pos, Name: val.text}
		}
		v = x
	default:
		return &AssignError{Col: name.pos, Name: name.text, NoValue: true}
	}
	if cur.kindAt(1) == tokenSep {
		cur.i++
	}
	if store {
		c.define(name.text, v)
	}
	return nil
}

// define commits an assignment.
func (c *Calculator) define(name string, v float64) {
	c.log.V(1).Info("assign", "name", name, "value", v)
	c.reg.putConst(name, v)
}

// call builds a unary function call. cur is at the function name and moves
// to the close bracket.
func (c *Calculator) call(cur *tokenCursor) (*node, error) {
	fn := cur.toks[cur.i]
	if cur.kindAt(1) != tokenFuncOpen {
		return nil, &CallError{Col: fn.pos, Func: fn.text, Missing: "("}
	}
	cur.i += 2
	if cur.i >= len(cur.toks) {
		return nil, &CallError{Col: fn.pos, Func: fn.text, Missing: ")"}
	}
	// f() and f(,) have no argument.
	if nx := cur.toks[cur.i]; nx.kind == tokenFuncClose || nx.isComma() && cur.kindAt(1) == tokenFuncClose {
		return nil, &CallError{Col: fn.pos, Func: fn.text, Missing: "argument"}
	}
	arg, err := c.buildTree(cur)
	if err != nil {
		return nil, err
	}
	if cur.kindAt(0) != tokenFuncClose {
		return nil, &CallError{Col: fn.pos, Func: fn.text, Missing: ")"}
	}
	if arg == nil {
		return nil, &CallError{Col: fn.pos, Func: fn.text, Missing: "argument"}
	}
	return &node{kind: nodeFunc, name: fn.text, neg: fn.neg, pos: fn.pos, left: arg}, nil
}

// binaryCall builds a binary function call. cur is at the function name and
// moves to the close bracket. Missing arguments are left nil for the
// evaluator to reject.
func (c *Calculator) binaryCall(cur *tokenCursor) (*node, error) {
	fn := cur.toks[cur.i]
	if cur.kindAt(1) != tokenFuncOpen {
		return nil, &CallError{Col: fn.pos, Func: fn.text, Missing: "("}
	}
	cur.i += 2
	if cur.i >= len(cur.toks) {
		return nil, &CallError{Col: fn.pos, Func: fn.text, Missing: ")"}
	}
	x, err := c.buildTree(cur)
	if err != nil {
		return nil, err
	}
	var y *node
	if cur.i < len(cur.toks) && cur.toks[cur.i].isComma() {
		cur.i++
		y, err = c.buildTree(cur)
		if err != nil {
			return nil, err
		}
	}
	if cur.kindAt(0) != tokenFuncClose {
		return nil, &CallError{Col: fn.pos, Func: fn.text, Missing: ")"}
	}
	return &node{kind: nodeBinaryFunc, name: fn.text, neg: fn.neg, pos: fn.pos, left: x, right: y}, nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

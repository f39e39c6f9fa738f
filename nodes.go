package calc

import (
	"strconv"
	"strings"
)

// node is a node in the expression tree. A node owns its children; no node
// is shared between trees.
type node struct {
	kind nodeKind
	// name is the function name for nodeFunc and nodeBinaryFunc.
	name string
	// neg negates the result of a function.
	neg bool
	// value is the node's value. Literals have it from construction; the
	// evaluator fills it for everything else.
	value float64
	pos   int

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeInt   // integer literal
	nodeFloat // float literal or resolved variable

	nodeFunc       // name(left)
	nodeBinaryFunc // name(left, right)

	nodeNot    // !left
	nodeNegate // ~left

	nodeAdd
	nodeSub
	nodeMul
	nodeDiv
	nodeMod
	nodeAnd
	nodeOr
	nodeXor
	nodeShl
	nodeShr
	nodePow
)

// opnodes maps operator tokens to the nodes they build.
var opnodes = map[tokenKind]nodeKind{
	tokenNot:    nodeNot,
	tokenNegate: nodeNegate,
	tokenAdd:    nodeAdd,
	tokenSub:    nodeSub,
	tokenMul:    nodeMul,
	tokenDiv:    nodeDiv,
	tokenMod:    nodeMod,
	tokenAnd:    nodeAnd,
	tokenOr:     nodeOr,
	tokenXor:    nodeXor,
	tokenShl:    nodeShl,
	tokenShr:    nodeShr,
	tokenPow:    nodePow,
}

var nodeOps = [...]string{
	nodeNot:    "!",
	nodeNegate: "~",
	nodeAdd:    "+",
	nodeSub:    "-",
	nodeMul:    "*",
	nodeDiv:    "/",
	nodeMod:    "%",
	nodeAnd:    "&",
	nodeOr:     "|",
	nodeXor:    "^",
	nodeShl:    "<<",
	nodeShr:    ">>",
	nodePow:    "**",
}

// op is the operator symbol for an operator node, or the function name.
func (n *node) op() string {
	switch n.kind {
	case nodeFunc, nodeBinaryFunc:
		return n.name
	default:
		if n.kind < 0 || int(n.kind) >= len(nodeOps) {
			return "$"
		}
		return nodeOps[n.kind]
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes n fully parenthesized, alternating round and square brackets
// by depth.
func (n *node) fmt(b *strings.Builder, square bool) {
	if n == nil {
		b.WriteByte('_')
		return
	}
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeInt:
		b.WriteString(strconv.FormatInt(int64(n.value), 10))
	case nodeFloat:
		b.WriteString(strconv.FormatFloat(n.value, 'g', -1, 64))
	case nodeFunc:
		if n.neg {
			b.WriteByte('-')
		}
		b.WriteString(n.name)
		n.child().fmt(b, !square)
	case nodeBinaryFunc:
		if n.neg {
			b.WriteByte('-')
		}
		b.WriteString(n.name)
		n.left.fmt(b, !square)
		b.WriteString(", ")
		n.right.fmt(b, !square)
	case nodeNot, nodeNegate:
		b.WriteString(n.op())
		n.child().fmt(b, !square)
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
	default:
		n.left.fmt(b, !square)
		b.WriteString(" " + n.op() + " ")
		n.right.fmt(b, !square)
	}
}

// child is the operand of a unary node, whichever side holds it.
func (n *node) child() *node {
	if n.left != nil {
		return n.left
	}
	return n.right
}

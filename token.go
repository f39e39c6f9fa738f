package calc

import "strconv"

type token struct {
	kind tokenKind
	// i is the value of an integer literal.
	i int64
	// f is the value of a float literal.
	f float64
	// text is the name of an identifier or function. For a float literal
	// substituted for a variable, it is the variable's name.
	text string
	// neg is set on identifiers and functions written with a leading minus.
	neg bool
	// c is the character of a tokenOther.
	c   rune
	pos int
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenInt is an integer literal. Hex, octal, and binary literals are
	// integers converted at scan time.
	tokenInt
	// tokenFloat is a literal with a decimal point or exponent.
	tokenFloat
	// tokenIdent is a variable name.
	tokenIdent

	tokenAnd    // &
	tokenOr     // |
	tokenNot    // !
	tokenXor    // ^
	tokenNegate // ~
	tokenEqual  // =
	tokenAdd    // +
	tokenSub    // -
	tokenMul    // *
	tokenDiv    // /
	tokenMod    // %
	tokenShl    // <<
	tokenShr    // >>
	tokenPow    // **

	// tokenFunc names a unary function. Its argument list follows.
	tokenFunc
	// tokenBinaryFunc names a binary function.
	tokenBinaryFunc
	// tokenSep ends an assignment statement.
	tokenSep
	tokenFuncOpen
	tokenFuncClose
	tokenGroupOpen
	tokenGroupClose
	// tokenOther is any other punctuation the parser gives meaning to,
	// currently only the argument separator.
	tokenOther
)

var tokenKinds = [...]string{
	tokenNone:       "None",
	tokenInt:        "Int",
	tokenFloat:      "Float",
	tokenIdent:      "Ident",
	tokenAnd:        "&",
	tokenOr:         "|",
	tokenNot:        "!",
	tokenXor:        "^",
	tokenNegate:     "~",
	tokenEqual:      "=",
	tokenAdd:        "+",
	tokenSub:        "-",
	tokenMul:        "*",
	tokenDiv:        "/",
	tokenMod:        "%",
	tokenShl:        "<<",
	tokenShr:        ">>",
	tokenPow:        "**",
	tokenFunc:       "Func",
	tokenBinaryFunc: "BinaryFunc",
	tokenSep:        ";",
	tokenFuncOpen:   "FuncOpen",
	tokenFuncClose:  "FuncClose",
	tokenGroupOpen:  "(",
	tokenGroupClose: ")",
	tokenOther:      "Other",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKinds) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKinds[k]
}

// isOperator reports whether the parser folds tokens of kind k into nodes.
func (k tokenKind) isOperator() bool {
	return tokenAnd <= k && k <= tokenPow && k != tokenEqual
}

// unary reports whether k is a prefix operator.
func (k tokenKind) unary() bool {
	return k == tokenNot || k == tokenNegate
}

// priority is the binding strength of an operator. Higher binds tighter.
func (k tokenKind) priority() int {
	switch k {
	case tokenFunc, tokenBinaryFunc, tokenPow, tokenNot, tokenNegate:
		return 200
	case tokenMul, tokenDiv, tokenMod, tokenXor, tokenAnd, tokenOr:
		return 100
	case tokenAdd, tokenSub:
		return 90
	case tokenShl, tokenShr:
		return 0
	case tokenGroupOpen:
		// An open group is a barrier for folding.
		return -1
	default:
		return 0
	}
}

// isComma reports whether t separates binary function arguments.
func (t token) isComma() bool {
	return t.kind == tokenOther && t.c == ','
}

// lexeme is the source text t represents, or close to it for literals.
func (t token) lexeme() string {
	switch t.kind {
	case tokenInt:
		return strconv.FormatInt(t.i, 10)
	case tokenFloat:
		if t.text != "" {
			return t.text
		}
		return strconv.FormatFloat(t.f, 'g', -1, 64)
	case tokenIdent, tokenFunc, tokenBinaryFunc:
		if t.neg {
			return "-" + t.text
		}
		return t.text
	case tokenFuncOpen:
		return "("
	case tokenFuncClose:
		return ")"
	case tokenOther:
		return string(t.c)
	default:
		return t.kind.String()
	}
}

func (t token) String() string {
	return t.kind.String() + ":" + t.lexeme() + "@" + strconv.Itoa(t.pos)
}

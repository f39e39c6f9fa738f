package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// bracket is an open parenthesis awaiting its match.
type bracket struct {
	// fn is set when the bracket opens a function's argument list.
	fn  bool
	col int
}

type lexer struct {
	src  *reader
	reg  *registry
	buf  strings.Builder
	toks []token
	// brackets holds the open parentheses. It classifies each ) and detects
	// unbalanced input.
	brackets []bracket
	// last is the first rune of the previous token, or the last rune of a
	// previous number. It decides whether + and - are signs or operators.
	last rune
	// fn is set after a function name so that the next ( opens arguments.
	fn bool
}

func lex(text string, reg *registry) *lexer {
	return &lexer{
		src: newReader(text),
		reg: reg,
	}
}

// all scans the entire input. On error, the result holds the tokens scanned
// before it.
func (l *lexer) all() ([]token, error) {
	for !l.src.done() {
		if err := l.scan(); err != nil {
			return l.toks, err
		}
	}
	if n := len(l.brackets); n > 0 {
		return l.toks, &BracketError{Col: l.brackets[n-1].col}
	}
	return l.toks, nil
}

func (l *lexer) emit(t token) {
	l.toks = append(l.toks, t)
}

// scan appends the next token, or possibly several for a signed variable, to
// the token list. Reaching the end of the input produces no tokens.
func (l *lexer) scan() error {
	var c rune
	for {
		c = l.src.get()
		switch {
		case c == eof:
			return nil
		case unicode.IsSpace(c):
			continue
		case c == '+', c == '-':
			// ++ and -- are errors even with space between them.
			at := l.src.ptr
			nc := l.src.get()
			for unicode.IsSpace(nc) {
				nc = l.src.get()
			}
			if nc == c {
				l.buf.Reset()
				l.buf.WriteRune(c)
				l.buf.WriteRune(nc)
				return l.error("operator", "consecutive signs", l.src.col())
			}
			l.src.ptr = at
		}
		break
	}
	pos := l.src.col()
	minus := false
	if (c == '+' || c == '-') && l.signs() {
		sign := c
		minus = c == '-'
		c = l.src.get()
		for unicode.IsSpace(c) {
			c = l.src.get()
		}
		if c == eof {
			l.buf.Reset()
			l.buf.WriteRune(sign)
			return l.error("", "sign with no operand", pos)
		}
		if minus && !isDigit(c) && c != '.' && !unicode.IsLetter(c) {
			// -(x) -> -1 * (x)
			l.emit(token{kind: tokenInt, i: -1, pos: pos})
			l.emit(token{kind: tokenMul, pos: pos})
			minus = false
		}
		pos = l.src.col()
	}
	l.last = c

	switch c {
	case '&':
		l.emit(token{kind: tokenAnd, pos: pos})
	case '|':
		l.emit(token{kind: tokenOr, pos: pos})
	case '!':
		l.emit(token{kind: tokenNot, pos: pos})
	case '^':
		l.emit(token{kind: tokenXor, pos: pos})
	case '~':
		l.emit(token{kind: tokenNegate, pos: pos})
	case '+':
		l.emit(token{kind: tokenAdd, pos: pos})
	case '-':
		l.emit(token{kind: tokenSub, pos: pos})
	case '/':
		l.emit(token{kind: tokenDiv, pos: pos})
	case '=':
		l.emit(token{kind: tokenEqual, pos: pos})
	case '%':
		l.emit(token{kind: tokenMod, pos: pos})
	case '*':
		if l.src.geteq('*') {
			l.emit(token{kind: tokenPow, pos: pos})
		} else {
			l.emit(token{kind: tokenMul, pos: pos})
		}
	case '<', '>':
		if !l.src.geteq(c) {
			l.buf.Reset()
			l.buf.WriteRune(c)
			return l.error("operator", "expected "+string(c)+string(c), pos)
		}
		if c == '<' {
			l.emit(token{kind: tokenShl, pos: pos})
		} else {
			l.emit(token{kind: tokenShr, pos: pos})
		}
	case ';':
		if n := len(l.toks); n > 0 && l.toks[n-1].kind == tokenSep {
			return nil
		}
		l.emit(token{kind: tokenSep, pos: pos})
	case '(':
		l.brackets = append(l.brackets, bracket{fn: l.fn, col: pos})
		if l.fn {
			l.emit(token{kind: tokenFuncOpen, pos: pos})
		} else {
			l.emit(token{kind: tokenGroupOpen, pos: pos})
		}
		l.fn = false
	case ')':
		n := len(l.brackets)
		if n == 0 {
			return &BracketError{Col: pos, Right: ")"}
		}
		b := l.brackets[n-1]
		l.brackets = l.brackets[:n-1]
		if b.fn {
			l.emit(token{kind: tokenFuncClose, pos: pos})
		} else {
			l.emit(token{kind: tokenGroupClose, pos: pos})
		}
		l.fn = false
	case ',':
		l.emit(token{kind: tokenOther, c: c, pos: pos})
	default:
		switch {
		case isDigit(c), c == '.':
			return l.scanNum(c, minus, pos)
		case unicode.IsLetter(c):
			return l.scanIdent(c, minus, pos)
		}
		l.buf.Reset()
		l.buf.WriteRune(c)
		return l.error("", "unrecognized character", pos)
	}
	return nil
}

// signs reports whether a + or - at the current position belongs to the
// operand that follows it rather than being a binary operator.
func (l *lexer) signs() bool {
	switch {
	case l.last == ')', isExponent(l.last), isDigit(l.last), l.last == '.':
		return false
	case unicode.IsLetter(l.last):
		return false
	default:
		return true
	}
}

// scanNum scans a number starting with c, which the reader has consumed.
func (l *lexer) scanNum(c rune, minus bool, pos int) error {
	l.buf.Reset()
	if minus {
		l.buf.WriteByte('-')
	}
	if c == '0' {
		switch p := l.src.peek(); p {
		case 'x':
			l.src.get()
			return l.scanBase(16, "hex", minus, pos)
		case 'o':
			l.src.get()
			return l.scanBase(8, "octal", minus, pos)
		case 'b':
			l.src.get()
			return l.scanBase(2, "binary", minus, pos)
		default:
			if isDigit(p) {
				l.buf.WriteRune(c)
				l.buf.WriteRune(p)
				return l.error("number", "leading zero", pos)
			}
		}
	}
	var dot, exp, expdig, sign bool
scan:
	for ; ; c = l.src.get() {
		switch {
		case isDigit(c):
			expdig = exp
		case c == '.':
			if dot || exp {
				l.buf.WriteRune(c)
				return l.error("number", "unexpected .", pos)
			}
			dot = true
		case isExponent(c):
			if exp {
				l.buf.WriteRune(c)
				return l.error("number", "repeated exponent", pos)
			}
			exp = true
		case (c == '+' || c == '-') && !sign && isExponent(l.src.backc()):
			sign = true
		default:
			break scan
		}
		l.buf.WriteRune(c)
	}
	l.src.back()
	l.last = l.src.cur()
	if exp && !expdig {
		return l.error("number", "exponent has no digits", pos)
	}
	text := l.buf.String()
	if !dot && !exp {
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return l.error("number", "out of range", pos)
		}
		l.emit(token{kind: tokenInt, i: v, pos: pos})
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return l.error("number", "malformed", pos)
	}
	l.emit(token{kind: tokenFloat, f: v, pos: pos})
	return nil
}

// scanBase scans the digits of a hex, octal, or binary integer after its
// prefix.
func (l *lexer) scanBase(base int, kind string, minus bool, pos int) error {
	l.buf.WriteByte('0')
	l.buf.WriteRune(l.src.cur())
	start := l.buf.Len()
	for {
		c := l.src.get()
		d := digitval(c)
		if d < 0 {
			break
		}
		l.buf.WriteRune(c)
		if d >= base {
			return l.error(kind, "invalid digit", pos)
		}
	}
	l.src.back()
	l.last = l.src.cur()
	digits := l.buf.String()[start:]
	if digits == "" {
		return l.error(kind, "no digits", pos)
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil || u > math.MaxInt64 && !(minus && u == 1<<63) {
		return l.error(kind, "out of range", pos)
	}
	v := int64(u)
	if minus {
		v = -v
	}
	l.emit(token{kind: tokenInt, i: v, pos: pos})
	return nil
}

// scanIdent scans a function or variable name starting with c, which the
// reader has consumed.
func (l *lexer) scanIdent(c rune, minus bool, pos int) error {
	l.buf.Reset()
	for unicode.IsLetter(c) || isDigit(c) {
		l.buf.WriteRune(c)
		c = l.src.get()
	}
	l.src.back()
	name := l.buf.String()
	if c == '(' {
		var kind tokenKind
		switch {
		case l.reg.isUnary(name):
			kind = tokenFunc
		case l.reg.isBinary(name):
			kind = tokenBinaryFunc
		default:
			return &UnregisteredFuncError{Col: pos, Func: name}
		}
		l.fn = true
		l.emit(token{kind: kind, text: name, neg: minus, pos: pos})
		return nil
	}
	w, ok := l.reg.words[name]
	if !ok {
		w = token{kind: tokenIdent, text: name}
		l.reg.words[name] = w
		w.neg, w.pos = minus, pos
		l.emit(w)
		return nil
	}
	if minus {
		// -a -> -1 * a
		l.emit(token{kind: tokenInt, i: -1, pos: pos})
		l.emit(token{kind: tokenMul, pos: pos})
	}
	if v, ok := l.reg.consts[name]; ok {
		l.emit(token{kind: tokenFloat, f: v, text: name, pos: pos})
		return nil
	}
	w.pos = pos
	l.emit(w)
	return nil
}

func (l *lexer) error(kind, reason string, col int) error {
	line, lc := l.src.linecol(col)
	return &LexError{
		Text:   l.buf.String(),
		Kind:   kind,
		Reason: reason,
		Col:    lc,
		Line:   line,
		Offset: col,
	}
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isExponent(c rune) bool {
	return c == 'e' || c == 'E'
}

// digitval is the value of c as a digit in bases up to 36, or -1.
func digitval(c rune) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "hex", "octal", "binary", "operator", or the empty string (if a token
	// kind hadn't been decided).
	Kind string
	// Reason describes what is wrong with the token.
	Reason string
	// Col is the column within Line at which the token starts.
	Col int
	// Line is the 1-based line on which the token starts.
	Line int
	// Offset is the column at which the token starts, counting the whole
	// input as a single line. Pos returns it.
	Offset int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Line > 1 {
		pos = "line " + strconv.Itoa(err.Line) + ", " + pos
	}
	msg := "invalid token at " + pos
	if err.Kind != "" {
		msg = "invalid " + err.Kind + " token at " + pos
	}
	msg += ": " + err.Text
	if err.Reason != "" {
		msg += " (" + err.Reason + ")"
	}
	return msg
}

func (err *LexError) Pos() int {
	return err.Offset
}

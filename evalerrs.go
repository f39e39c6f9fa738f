package calc

import "strconv"

// DivZeroError is an error indicating division by an integer literal zero.
// Division by a float zero follows IEEE 754 instead.
type DivZeroError struct {
	// Col is the position of the division operator.
	Col int
	// X is the dividend.
	X float64
}

func (err *DivZeroError) Error() string {
	return errpos(err.Col, "division by zero: "+strconv.FormatFloat(err.X, 'g', -1, 64)+"/0")
}

func (err *DivZeroError) Pos() int {
	return err.Col
}

// NegateTypeError is an error indicating ~ applied to something other than
// an integer literal.
type NegateTypeError struct {
	// Col is the position of the ~ operator.
	Col int
	// X is the operand.
	X float64
}

func (err *NegateTypeError) Error() string {
	return errpos(err.Col, "cannot negate non-integer "+strconv.FormatFloat(err.X, 'g', -1, 64))
}

func (err *NegateTypeError) Pos() int {
	return err.Col
}

// ShiftError is an error indicating a shift of or by a float literal, or by
// a negative count.
type ShiftError struct {
	// Col is the position of the shift operator.
	Col int
	// Op is "<<" or ">>".
	Op string
	// Float is set when an operand is a float literal. Otherwise, the count
	// was negative.
	Float bool
	// N is the shift count.
	N float64
}

func (err *ShiftError) Error() string {
	if err.Float {
		return errpos(err.Col, "cannot shift float operand with "+err.Op)
	}
	return errpos(err.Col, "negative shift count "+strconv.FormatFloat(err.N, 'g', -1, 64)+" for "+err.Op)
}

func (err *ShiftError) Pos() int {
	return err.Col
}

// UndeclaredFuncError is an error indicating a call to a function that was
// removed between scanning and evaluation.
type UndeclaredFuncError struct {
	// Col is the position of the call.
	Col int
	// Func is the function name.
	Func string
}

func (err *UndeclaredFuncError) Error() string {
	return errpos(err.Col, "function "+strconv.Quote(err.Func)+" not declared")
}

func (err *UndeclaredFuncError) Pos() int {
	return err.Col
}

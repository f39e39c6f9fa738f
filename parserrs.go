package calc

import "strconv"

// BracketError is an error indicating unmatched parentheses. It implements
// InputError.
type BracketError struct {
	// Col is the position of the bracket.
	Col int
	// Right is ")" for a close with no open, or "" for an open that was
	// never closed.
	Right string
}

func (err *BracketError) Error() string {
	if err.Right == "" {
		return errpos(err.Col, "open bracket ( with no close bracket")
	}
	return errpos(err.Col, "unexpected "+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// UnregisteredFuncError is an error indicating a call to a name that is not
// a registered function. It implements InputError.
type UnregisteredFuncError struct {
	// Col is the position of the name.
	Col int
	// Func is the name that was called.
	Func string
}

func (err *UnregisteredFuncError) Error() string {
	return errpos(err.Col, "function "+strconv.Quote(err.Func)+" is not registered")
}

func (err *UnregisteredFuncError) Pos() int {
	return err.Col
}

// CallError is an error indicating a malformed function call. It implements
// InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Missing is what the call lacks: "(", ")", or "argument".
	Missing string
}

func (err *CallError) Error() string {
	switch err.Missing {
	case "(", ")":
		return errpos(err.Col, "call to "+err.Func+" missing "+err.Missing)
	default:
		return errpos(err.Col, "call to "+err.Func+" missing "+err.Missing+"s")
	}
}

func (err *CallError) Pos() int {
	return err.Col
}

// NameError is an error indicating a variable used before assignment. It
// implements InputError.
type NameError struct {
	// Col is the position of the variable.
	Col int
	// Name is the variable that was missing.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "undefined variable: "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// AssignError is an error indicating a new name that is not followed by =,
// an assignment with no value, or an assignment in an argument list. It
// implements InputError.
type AssignError struct {
	// Col is the position of the name.
	Col int
	// Name is the variable.
	Name string
	// NoValue is set when = is present but no value follows.
	NoValue bool
	// InCall is set when the assignment is a function argument.
	InCall bool
}

func (err *AssignError) Error() string {
	switch {
	case err.NoValue:
		return errpos(err.Col, "assignment to "+strconv.Quote(err.Name)+" has no value")
	case err.InCall:
		return errpos(err.Col, "assignment to "+strconv.Quote(err.Name)+" cannot be a function argument")
	}
	return errpos(err.Col, "undefined variable "+strconv.Quote(err.Name)+" is not followed by =")
}

func (err *AssignError) Pos() int {
	return err.Col
}

// OperatorError is an error indicating an operator where none is allowed,
// or two operands with no operator between them. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator or of the second operand.
	Col int
	// Operator is the unexpected operator, or "" for a missing one.
	Operator string
}

func (err *OperatorError) Error() string {
	if err.Operator == "" {
		return errpos(err.Col, "missing operator")
	}
	return errpos(err.Col, "unexpected operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// OperandError is an error indicating an operator or function without
// enough operands. It implements InputError.
type OperandError struct {
	// Col is the position of the operator or function.
	Col int
	// Op is the operator or function name.
	Op string
	// Want is the number of operands Op takes.
	Want int
}

func (err *OperandError) Error() string {
	if err.Want == 1 {
		return errpos(err.Col, err.Op+" needs an operand")
	}
	return errpos(err.Col, err.Op+" needs "+strconv.Itoa(err.Want)+" operands")
}

func (err *OperandError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside a function call.
// It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based column of the rune or token that caused the
	// error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*UnregisteredFuncError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*AssignError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*DivZeroError)(nil)
	_ InputError = (*NegateTypeError)(nil)
	_ InputError = (*ShiftError)(nil)
	_ InputError = (*UndeclaredFuncError)(nil)
)

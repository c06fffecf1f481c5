package curve

import (
	"errors"
	"fmt"
)

// ErrArithmetic matches every *ArithmeticError through errors.Is.
var ErrArithmetic = errors.New("arithmetic error")

// Reason says which checked operation failed.
type Reason uint8

const (
	Overflow Reason = iota + 1
	Underflow
	DivideByZero
)

func (r Reason) String() string {
	switch r {
	case Overflow:
		return "overflow"
	case Underflow:
		return "underflow"
	case DivideByZero:
		return "division by zero"
	default:
		return fmt.Sprintf("reason(%d)", uint8(r))
	}
}

// ArithmeticError is the only failure the curve math produces. Callers reject the
// whole operation when they see one; nothing has been applied.
type ArithmeticError struct {
	Op     string
	Reason Reason
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrArithmetic, e.Op, e.Reason)
}

func (e *ArithmeticError) Is(target error) bool {
	return target == ErrArithmetic
}

func overflow(op string) error     { return &ArithmeticError{Op: op, Reason: Overflow} }
func underflow(op string) error    { return &ArithmeticError{Op: op, Reason: Underflow} }
func divideByZero(op string) error { return &ArithmeticError{Op: op, Reason: DivideByZero} }

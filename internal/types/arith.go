package types

import (
	"errors"
	"fmt"

	"github.com/nbeerbower/hemlock/internal/value"
)

// ErrDivByZero, ErrModByZero, ErrBitwiseNonInteger are the recoverable
// runtime errors for the corresponding arithmetic failures.
var (
	ErrDivByZero         = errors.New("division by zero")
	ErrModByZero         = errors.New("modulo by zero")
	ErrBitwiseNonInteger = errors.New("bitwise operation on non-integer")
)

// BinaryNumeric applies promotion-lattice arithmetic: both operands
// promote to the join of their kinds, then the result collapses to the
// storage kind.
func BinaryNumeric(op string, a, b value.Value) (value.Value, error) {
	resultKind := ResultKind(a.Kind(), b.Kind())
	switch op {
	case "+", "-", "*":
		if IsFloatKind(resultKind) {
			af, bf := AsFloat64(a), AsFloat64(b)
			var r float64
			switch op {
			case "+":
				r = af + bf
			case "-":
				r = af - bf
			case "*":
				r = af * bf
			}
			return MakeResult(resultKind, r, 0), nil
		}
		ai, bi := AsInt64(a), AsInt64(b)
		var r int64
		switch op {
		case "+":
			r = ai + bi
		case "-":
			r = ai - bi
		case "*":
			r = ai * bi
		}
		return MakeResult(resultKind, 0, r), nil
	case "/":
		if IsFloatKind(resultKind) {
			return MakeResult(resultKind, AsFloat64(a)/AsFloat64(b), 0), nil
		}
		bi := AsInt64(b)
		if bi == 0 {
			return value.Null(), ErrDivByZero
		}
		return MakeResult(resultKind, 0, AsInt64(a)/bi), nil
	case "%":
		if IsFloatKind(resultKind) {
			return value.Null(), fmt.Errorf("%% requires integer operands")
		}
		bi := AsInt64(b)
		if bi == 0 {
			return value.Null(), ErrModByZero
		}
		return MakeResult(resultKind, 0, AsInt64(a)%bi), nil
	case "&", "|", "^", "<<", ">>":
		if IsFloatKind(resultKind) {
			return value.Null(), ErrBitwiseNonInteger
		}
		ai, bi := AsInt64(a), AsInt64(b)
		var r int64
		switch op {
		case "&":
			r = ai & bi
		case "|":
			r = ai | bi
		case "^":
			r = ai ^ bi
		case "<<":
			r = ai << uint(bi)
		case ">>":
			r = ai >> uint(bi)
		}
		return MakeResult(resultKind, 0, r), nil
	}
	return value.Null(), fmt.Errorf("unknown operator %q", op)
}

// Compare returns -1/0/1 for ordered comparison of two numeric values
// after promotion, used by <, <=, >, >=.
func Compare(a, b value.Value) int {
	resultKind := ResultKind(a.Kind(), b.Kind())
	if IsFloatKind(resultKind) {
		af, bf := AsFloat64(a), AsFloat64(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	ai, bi := AsInt64(a), AsInt64(b)
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	default:
		return 0
	}
}

// Package math includes overflow checked integer helpers.
package math

import (
	"math/bits"

	"github.com/pkg/errors"
)

var (
	// ErrOverflow is produced when a current value exceeds uint64 range.
	ErrOverflow = errors.New("integer overflow")
	// ErrDivByZero returns an error for division by zero.
	ErrDivByZero = errors.New("integer divide by zero")
	// ErrMulOverflow is returned when the product of two values exceeds uint64.
	ErrMulOverflow = errors.New("multiplication overflows")
	// ErrAddOverflow is returned when the sum of two values exceeds uint64.
	ErrAddOverflow = errors.New("addition overflows")
	// ErrSubUnderflow is returned when a subtraction would go below zero.
	ErrSubUnderflow = errors.New("subtraction underflow")
)

// Max returns the larger integer of the two
// given ones.This is used over the Max function
// in the standard math library because that max function
// has to check for some special floating point cases
// making it slower by a magnitude of 10.
func Max(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// Mul64 multiples 2 64-bit unsigned integers and checks if they
// lead to an overflow. If they do not, it returns the result
// without an error.
func Mul64(a, b uint64) (uint64, error) {
	overflows, val := bits.Mul64(a, b)
	if overflows > 0 {
		return 0, ErrMulOverflow
	}
	return val, nil
}

// Div64 divides two 64-bit unsigned integers and checks for errors.
func Div64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivByZero
	}
	val, _ := bits.Div64(0, a, b)
	return val, nil
}

// Add64 adds 2 64-bit unsigned integers and checks if they
// lead to an overflow. If they do not, it returns the result
// without an error.
func Add64(a, b uint64) (uint64, error) {
	res, carry := bits.Add64(a, b, 0 /* carry */)
	if carry > 0 {
		return 0, ErrAddOverflow
	}
	return res, nil
}

// Sub64 subtracts two 64-bit unsigned integers and checks for errors.
func Sub64(a, b uint64) (uint64, error) {
	res, borrow := bits.Sub64(a, b, 0 /* borrow */)
	if borrow > 0 {
		return 0, ErrSubUnderflow
	}
	return res, nil
}

// TwoThirdsFloor returns floor(2*n/3) without overflowing on large inputs.
func TwoThirdsFloor(n uint64) uint64 {
	return 2*(n/3) + (2*(n%3))/3
}

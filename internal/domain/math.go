package domain

import (
	"fmt"
	"math/bits"
)

// SafeAdd returns a+b, or ErrArithmeticOverflow if the sum does not fit in uint64.
func SafeAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%d + %d: %w", a, b, ErrArithmeticOverflow)
	}
	return sum, nil
}

// SafeMul returns a*b, or ErrArithmeticOverflow if the product does not fit in uint64.
func SafeMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, fmt.Errorf("%d * %d: %w", a, b, ErrArithmeticOverflow)
	}
	return lo, nil
}

// MulDiv returns a*b/div with the product held in a 128-bit intermediate, so
// a*b may exceed 64 bits as long as the truncated quotient fits.
// div == 0 fails with ErrInvalidInput; a quotient wider than 64 bits fails
// with ErrArithmeticOverflow.
func MulDiv(a, b, div uint64) (uint64, error) {
	if div == 0 {
		return 0, fmt.Errorf("division by zero: %w", ErrInvalidInput)
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= div {
		return 0, fmt.Errorf("%d * %d / %d: %w", a, b, div, ErrArithmeticOverflow)
	}
	quo, _ := bits.Div64(hi, lo, div)
	return quo, nil
}

// Pow10 returns 10^n. n > 19 does not fit in uint64 and fails with
// ErrArithmeticOverflow.
func Pow10(n uint8) (uint64, error) {
	if n > 19 {
		return 0, fmt.Errorf("10^%d: %w", n, ErrArithmeticOverflow)
	}
	out := uint64(1)
	for range n {
		out *= 10
	}
	return out, nil
}

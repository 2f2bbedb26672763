package fixedpoint

import (
	"errors"
	"math/big"
)

// Scale is the number of fractional units per whole unit. All amounts in the
// engine are integers at this scale; floats never enter pool arithmetic.
const Scale uint64 = 1_000_000

// BpsDenominator is the divisor for basis-point rates (10000 = 100%).
const BpsDenominator uint64 = 10_000

var (
	// ErrOverflow means a result does not fit in uint64. It indicates a
	// configuration or scale error and is treated as fatal by callers.
	ErrOverflow = errors.New("arithmetic overflow")

	// ErrDivideByZero means a caller passed a zero divisor.
	ErrDivideByZero = errors.New("divide by zero")
)

// MulDiv computes floor(a*b/c) using a double-width intermediate so the
// product cannot overflow before the division.
func MulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrDivideByZero
	}

	product := new(big.Int).Mul(
		new(big.Int).SetUint64(a),
		new(big.Int).SetUint64(b),
	)
	product.Quo(product, new(big.Int).SetUint64(c))

	if !product.IsUint64() {
		return 0, ErrOverflow
	}
	return product.Uint64(), nil
}

// Bps computes floor(amount * rate / 10000), the basis-point cut of amount.
func Bps(amount, rate uint64) (uint64, error) {
	return MulDiv(amount, rate, BpsDenominator)
}

// SqrtProduct computes floor(sqrt(a*b)), the geometric mean of two amounts.
// The result always fits in uint64, so no error path exists.
func SqrtProduct(a, b uint64) uint64 {
	product := new(big.Int).Mul(
		new(big.Int).SetUint64(a),
		new(big.Int).SetUint64(b),
	)
	return product.Sqrt(product).Uint64()
}

// AddChecked returns a+b or ErrOverflow if the sum exceeds uint64.
func AddChecked(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

package fixedpoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMulDivFloors(t *testing.T) {
	got, err := MulDiv(1000, 100, 1100)
	require.NoError(t, err)
	require.Equal(t, uint64(90), got)

	got, err = MulDiv(7, 3, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(10), got)
}

func TestMulDivLargeIntermediate(t *testing.T) {
	// a*b overflows uint64 but the quotient fits.
	got, err := MulDiv(math.MaxUint64, 2, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64/2), got)
}

func TestMulDivOverflow(t *testing.T) {
	_, err := MulDiv(math.MaxUint64, 2, 1)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestMulDivZeroDivisor(t *testing.T) {
	_, err := MulDiv(1, 1, 0)
	require.ErrorIs(t, err, ErrDivideByZero)
}

func TestBps(t *testing.T) {
	// 30 bps of 100 floors to zero.
	got, err := Bps(100, 30)
	require.NoError(t, err)
	require.Equal(t, uint64(0), got)

	got, err = Bps(10_000, 30)
	require.NoError(t, err)
	require.Equal(t, uint64(30), got)

	got, err = Bps(1_000_000, 30)
	require.NoError(t, err)
	require.Equal(t, uint64(3_000), got)
}

func TestSqrtProduct(t *testing.T) {
	require.Equal(t, uint64(1000), SqrtProduct(1000, 1000))
	require.Equal(t, uint64(707_106), SqrtProduct(500_000, 1_000_000))
	require.Equal(t, uint64(0), SqrtProduct(0, 12345))
	require.Equal(t, uint64(math.MaxUint64), SqrtProduct(math.MaxUint64, math.MaxUint64))
}

func TestAddChecked(t *testing.T) {
	got, err := AddChecked(1, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), got)

	_, err = AddChecked(math.MaxUint64, 1)
	require.ErrorIs(t, err, ErrOverflow)
}

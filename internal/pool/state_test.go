package pool

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"dexsim/internal/fixedpoint"
	"dexsim/internal/model"
)

func TestNewStateRejectsFullFee(t *testing.T) {
	_, err := NewState(10_000)
	require.Error(t, err)

	state, err := NewState(30)
	require.NoError(t, err)
	require.Equal(t, uint64(30), state.Snapshot().FeeRateBps)
}

func TestStatePrimitives(t *testing.T) {
	state, err := NewState(30)
	require.NoError(t, err)

	require.NoError(t, state.credit(model.AssetBase, 1000))
	require.NoError(t, state.credit(model.AssetQuote, 500))
	require.NoError(t, state.mintShares(700))

	snap := state.Snapshot()
	require.Equal(t, uint64(1000), snap.ReserveBase)
	require.Equal(t, uint64(500), snap.ReserveQuote)
	require.Equal(t, uint64(700), snap.TotalShares)

	require.NoError(t, state.debit(model.AssetBase, 400))
	require.Equal(t, uint64(600), state.Snapshot().ReserveBase)

	require.ErrorIs(t, state.debit(model.AssetBase, 601), ErrInsufficientReserve)
	require.ErrorIs(t, state.burnShares(701), ErrInsufficientShares)

	// Failed primitives leave state untouched.
	snap = state.Snapshot()
	require.Equal(t, uint64(600), snap.ReserveBase)
	require.Equal(t, uint64(700), snap.TotalShares)
}

func TestStateCreditOverflow(t *testing.T) {
	state, err := NewState(0)
	require.NoError(t, err)

	require.NoError(t, state.credit(model.AssetBase, math.MaxUint64))
	require.ErrorIs(t, state.credit(model.AssetBase, 1), fixedpoint.ErrOverflow)
}

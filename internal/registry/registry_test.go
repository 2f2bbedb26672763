package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dexsim/internal/model"
)

func TestFundAndBalances(t *testing.T) {
	reg := New()
	reg.Fund("alice", 1000, 2000)
	reg.Fund("alice", 500, 0)

	require.Equal(t, uint64(1500), reg.BalanceOf("alice", model.AssetBase))
	require.Equal(t, uint64(2000), reg.BalanceOf("alice", model.AssetQuote))
	require.Zero(t, reg.BalanceOf("stranger", model.AssetBase))
}

func TestDebitPairAllOrNothing(t *testing.T) {
	reg := New()
	reg.Fund("alice", 1000, 100)

	// Quote side is short; base must remain untouched.
	err := reg.DebitPair("alice", 500, 200)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.Equal(t, uint64(1000), reg.BalanceOf("alice", model.AssetBase))
	require.Equal(t, uint64(100), reg.BalanceOf("alice", model.AssetQuote))

	require.NoError(t, reg.DebitPair("alice", 500, 100))
	require.Equal(t, uint64(500), reg.BalanceOf("alice", model.AssetBase))
	require.Zero(t, reg.BalanceOf("alice", model.AssetQuote))
}

func TestDebitUnknownParticipant(t *testing.T) {
	reg := New()
	err := reg.DebitPair("ghost", 1, 1)
	require.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestSingleAssetDebitCredit(t *testing.T) {
	reg := New()
	reg.Fund("alice", 1000, 1000)

	require.NoError(t, reg.Debit("alice", model.AssetBase, 300))
	reg.Credit("alice", model.AssetQuote, 250)

	require.Equal(t, uint64(700), reg.BalanceOf("alice", model.AssetBase))
	require.Equal(t, uint64(1250), reg.BalanceOf("alice", model.AssetQuote))
}

func TestSharesLifecycle(t *testing.T) {
	reg := New()
	reg.Fund("alice", 0, 0)
	reg.AddShares("alice", 1000)
	reg.AddShares("bob", 500)

	require.Equal(t, uint64(1000), reg.SharesOf("alice"))

	positions := reg.Positions()
	require.Equal(t, []model.Position{
		{Participant: "alice", Shares: 1000},
		{Participant: "bob", Shares: 500},
	}, positions)

	require.ErrorIs(t, reg.BurnShares("alice", 1001), ErrInsufficientBalance)
	require.NoError(t, reg.BurnShares("alice", 1000))
	require.Zero(t, reg.SharesOf("alice"))

	// Burning to zero destroys the position but keeps the account.
	positions = reg.Positions()
	require.Equal(t, []model.Position{{Participant: "bob", Shares: 500}}, positions)
	require.Contains(t, reg.Participants(), "alice")
}

func TestBurnSharesUnknownParticipant(t *testing.T) {
	reg := New()
	require.ErrorIs(t, reg.BurnShares("ghost", 1), ErrUnknownParticipant)
}

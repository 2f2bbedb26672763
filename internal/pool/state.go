package pool

import (
	"fmt"

	"dexsim/internal/fixedpoint"
	"dexsim/internal/model"
)

// State holds the canonical reserves and share supply for one trading pair.
// It is only mutated through the Engine; the primitives below operate on a
// scratch copy so a failed operation never leaves partial state behind.
//
// Invariant: totalShares == 0 iff both reserves are zero, and both reserves
// are positive whenever totalShares > 0.
type State struct {
	reserveBase  uint64
	reserveQuote uint64
	totalShares  uint64
	feeRateBps   uint64
}

// NewState creates an empty pool with the given fee rate. The fee rate is
// fixed for the life of the pool.
func NewState(feeRateBps uint64) (*State, error) {
	if feeRateBps >= fixedpoint.BpsDenominator {
		return nil, fmt.Errorf("fee rate %d bps must be below %d", feeRateBps, fixedpoint.BpsDenominator)
	}
	return &State{feeRateBps: feeRateBps}, nil
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() model.PoolSnapshot {
	return model.PoolSnapshot{
		ReserveBase:  s.reserveBase,
		ReserveQuote: s.reserveQuote,
		TotalShares:  s.totalShares,
		FeeRateBps:   s.feeRateBps,
	}
}

func (s *State) reserve(asset model.Asset) uint64 {
	if asset == model.AssetBase {
		return s.reserveBase
	}
	return s.reserveQuote
}

func (s *State) credit(asset model.Asset, amount uint64) error {
	next, err := fixedpoint.AddChecked(s.reserve(asset), amount)
	if err != nil {
		return err
	}
	s.setReserve(asset, next)
	return nil
}

func (s *State) debit(asset model.Asset, amount uint64) error {
	current := s.reserve(asset)
	if amount > current {
		return ErrInsufficientReserve
	}
	s.setReserve(asset, current-amount)
	return nil
}

func (s *State) mintShares(amount uint64) error {
	next, err := fixedpoint.AddChecked(s.totalShares, amount)
	if err != nil {
		return err
	}
	s.totalShares = next
	return nil
}

func (s *State) burnShares(amount uint64) error {
	if amount > s.totalShares {
		return ErrInsufficientShares
	}
	s.totalShares -= amount
	return nil
}

func (s *State) setReserve(asset model.Asset, amount uint64) {
	if asset == model.AssetBase {
		s.reserveBase = amount
		return
	}
	s.reserveQuote = amount
}

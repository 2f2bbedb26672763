package pool

import (
	"fmt"

	"go.uber.org/zap"

	"dexsim/internal/fixedpoint"
	"dexsim/internal/model"
)

// QuoteAgainst prices a swap against a pool snapshot without side effects.
//
// The fee is taken off the input before pricing but the full input amount is
// credited to the reserve, so the fee stays in the pool and grows the product
// k for shareholders:
//
//	amountOut = floor(reserveOut * inAfterFee / (reserveIn + inAfterFee))
func QuoteAgainst(snap model.PoolSnapshot, amountIn uint64, assetIn model.Asset) (model.SwapQuote, error) {
	if !assetIn.Valid() {
		return model.SwapQuote{}, fmt.Errorf("unknown asset %q", assetIn)
	}
	if amountIn == 0 {
		return model.SwapQuote{}, ErrZeroAmount
	}
	if snap.Empty() {
		return model.SwapQuote{}, ErrInsufficientLiquidity
	}

	reserveIn, reserveOut := snap.ReserveBase, snap.ReserveQuote
	if assetIn == model.AssetQuote {
		reserveIn, reserveOut = reserveOut, reserveIn
	}

	feePaid, err := fixedpoint.Bps(amountIn, snap.FeeRateBps)
	if err != nil {
		return model.SwapQuote{}, err
	}
	inAfterFee := amountIn - feePaid

	denominator, err := fixedpoint.AddChecked(reserveIn, inAfterFee)
	if err != nil {
		return model.SwapQuote{}, err
	}
	amountOut, err := fixedpoint.MulDiv(reserveOut, inAfterFee, denominator)
	if err != nil {
		return model.SwapQuote{}, err
	}
	if amountOut == 0 || amountOut >= reserveOut {
		return model.SwapQuote{}, ErrInsufficientLiquidity
	}

	newReserveIn, err := fixedpoint.AddChecked(reserveIn, amountIn)
	if err != nil {
		return model.SwapQuote{}, err
	}
	newReserveOut := reserveOut - amountOut

	quote := model.SwapQuote{
		AssetIn:         assetIn,
		AmountIn:        amountIn,
		AmountOut:       amountOut,
		FeePaid:         feePaid,
		NewReserveBase:  newReserveIn,
		NewReserveQuote: newReserveOut,
	}
	if assetIn == model.AssetQuote {
		quote.NewReserveBase, quote.NewReserveQuote = newReserveOut, newReserveIn
	}
	return quote, nil
}

// Quote prices a swap against the current pool state. The result is stale the
// moment another operation commits; Swap re-quotes under the engine lock
// before executing.
func (e *Engine) Quote(amountIn uint64, assetIn model.Asset) (model.SwapQuote, error) {
	return QuoteAgainst(e.Snapshot(), amountIn, assetIn)
}

// Swap prices and executes a swap atomically. It mutates pool reserves only;
// the caller settles the participant's asset balances from the returned quote.
func (e *Engine) Swap(participant string, amountIn uint64, assetIn model.Asset) (model.SwapQuote, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	quote, err := QuoteAgainst(e.state.Snapshot(), amountIn, assetIn)
	if err != nil {
		return model.SwapQuote{}, err
	}

	next := *e.state
	if err := next.credit(assetIn, amountIn); err != nil {
		return model.SwapQuote{}, err
	}
	if err := next.debit(assetIn.Other(), quote.AmountOut); err != nil {
		return model.SwapQuote{}, err
	}
	*e.state = next

	e.logger.Debug("swap executed",
		zap.String("participant", participant),
		zap.String("asset_in", string(assetIn)),
		zap.Uint64("amount_in", amountIn),
		zap.Uint64("amount_out", quote.AmountOut),
		zap.Uint64("fee_paid", quote.FeePaid),
	)
	return quote, nil
}

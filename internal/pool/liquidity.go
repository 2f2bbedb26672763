package pool

import (
	"go.uber.org/zap"

	"dexsim/internal/fixedpoint"
	"dexsim/internal/model"
)

// AddLiquidity deposits both assets and mints shares to the participant.
//
// On an empty pool the deposit calibrates the implied price and mints
// floor(sqrt(amountBaseIn * amountQuoteIn)) shares. On an active pool the
// minted amount is the minimum of the per-asset proportional claims, so a
// deposit skewed from the pool ratio can never mint excess shares. Both input
// amounts are credited in full either way; any excess beyond the binding
// ratio is retained by the pool and accrues to existing shareholders.
func (e *Engine) AddLiquidity(participant string, amountBaseIn, amountQuoteIn uint64) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	shares, err := e.sharesForDeposit(amountBaseIn, amountQuoteIn)
	if err != nil {
		return 0, err
	}

	next := *e.state
	if err := next.credit(model.AssetBase, amountBaseIn); err != nil {
		return 0, err
	}
	if err := next.credit(model.AssetQuote, amountQuoteIn); err != nil {
		return 0, err
	}
	if err := next.mintShares(shares); err != nil {
		return 0, err
	}

	// The registry debit is the last fallible step; pool state commits only
	// after it succeeds, so a rejected deposit leaves everything untouched.
	if err := e.registry.DebitPair(participant, amountBaseIn, amountQuoteIn); err != nil {
		return 0, err
	}
	e.registry.AddShares(participant, shares)
	*e.state = next

	e.logger.Debug("liquidity added",
		zap.String("participant", participant),
		zap.Uint64("amount_base_in", amountBaseIn),
		zap.Uint64("amount_quote_in", amountQuoteIn),
		zap.Uint64("shares_minted", shares),
		zap.Uint64("total_shares", e.state.totalShares),
	)
	return shares, nil
}

// RemoveLiquidity burns shares and pays out the proportional slice of both
// reserves, floored. The participant's position is destroyed when it reaches
// zero. Burning the entire supply returns the pool to its empty state.
func (e *Engine) RemoveLiquidity(participant string, sharesToBurn uint64) (amountBaseOut, amountQuoteOut uint64, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if sharesToBurn == 0 {
		return 0, 0, ErrZeroAmount
	}
	if e.registry.SharesOf(participant) < sharesToBurn {
		return 0, 0, ErrInsufficientShares
	}

	amountBaseOut, err = fixedpoint.MulDiv(sharesToBurn, e.state.reserveBase, e.state.totalShares)
	if err != nil {
		return 0, 0, err
	}
	amountQuoteOut, err = fixedpoint.MulDiv(sharesToBurn, e.state.reserveQuote, e.state.totalShares)
	if err != nil {
		return 0, 0, err
	}

	next := *e.state
	if err := next.burnShares(sharesToBurn); err != nil {
		return 0, 0, err
	}
	if err := next.debit(model.AssetBase, amountBaseOut); err != nil {
		return 0, 0, ErrPoolDrained
	}
	if err := next.debit(model.AssetQuote, amountQuoteOut); err != nil {
		return 0, 0, ErrPoolDrained
	}
	if next.totalShares == 0 && (next.reserveBase != 0 || next.reserveQuote != 0) {
		return 0, 0, ErrPoolDrained
	}

	if err := e.registry.BurnShares(participant, sharesToBurn); err != nil {
		return 0, 0, err
	}
	e.registry.CreditPair(participant, amountBaseOut, amountQuoteOut)
	*e.state = next

	e.logger.Debug("liquidity removed",
		zap.String("participant", participant),
		zap.Uint64("shares_burned", sharesToBurn),
		zap.Uint64("amount_base_out", amountBaseOut),
		zap.Uint64("amount_quote_out", amountQuoteOut),
		zap.Uint64("total_shares", e.state.totalShares),
	)
	return amountBaseOut, amountQuoteOut, nil
}

func (e *Engine) sharesForDeposit(amountBaseIn, amountQuoteIn uint64) (uint64, error) {
	if e.state.totalShares == 0 {
		if amountBaseIn == 0 || amountQuoteIn == 0 {
			return 0, ErrZeroLiquidity
		}
		return fixedpoint.SqrtProduct(amountBaseIn, amountQuoteIn), nil
	}

	fromBase, err := fixedpoint.MulDiv(amountBaseIn, e.state.totalShares, e.state.reserveBase)
	if err != nil {
		return 0, err
	}
	fromQuote, err := fixedpoint.MulDiv(amountQuoteIn, e.state.totalShares, e.state.reserveQuote)
	if err != nil {
		return 0, err
	}

	shares := fromBase
	if fromQuote < shares {
		shares = fromQuote
	}
	if shares == 0 {
		return 0, ErrZeroLiquidity
	}
	return shares, nil
}

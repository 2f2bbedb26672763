package pool

import "errors"

var (
	// ErrZeroAmount is returned when a swap input amount is zero.
	ErrZeroAmount = errors.New("zero amount")

	// ErrZeroLiquidity is returned when a deposit would mint zero shares.
	ErrZeroLiquidity = errors.New("zero liquidity")

	// ErrInsufficientReserve is returned when a debit exceeds a reserve.
	ErrInsufficientReserve = errors.New("insufficient reserve")

	// ErrInsufficientShares is returned when a burn exceeds outstanding shares.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrInsufficientLiquidity is returned when a swap would drain the output
	// reserve or deliver nothing.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")

	// ErrPoolDrained means a proportional withdrawal computed a payout the
	// reserves cannot cover. It indicates a logic defect and is fatal.
	ErrPoolDrained = errors.New("pool drained")
)

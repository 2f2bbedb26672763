package model

// SwapQuote is the result of pricing one swap. It is computed and consumed
// within a single call and never stored.
type SwapQuote struct {
	AssetIn         Asset  `json:"asset_in"`
	AmountIn        uint64 `json:"amount_in"`
	AmountOut       uint64 `json:"amount_out"`
	FeePaid         uint64 `json:"fee_paid"`
	NewReserveBase  uint64 `json:"new_reserve_base"`
	NewReserveQuote uint64 `json:"new_reserve_quote"`
}

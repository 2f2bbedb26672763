package model

// PoolSnapshot is a read-only copy of pool state at one point in time.
type PoolSnapshot struct {
	ReserveBase  uint64 `json:"reserve_base"`
	ReserveQuote uint64 `json:"reserve_quote"`
	TotalShares  uint64 `json:"total_shares"`
	FeeRateBps   uint64 `json:"fee_rate_bps"`
}

// Empty reports whether the pool has no outstanding shares.
func (s PoolSnapshot) Empty() bool {
	return s.TotalShares == 0
}

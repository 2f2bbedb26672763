package sim

import "dexsim/internal/model"

// SessionTotals accumulates activity counters for one session.
type SessionTotals struct {
	Steps        uint64
	Rejected     uint64
	SwapCount    uint64
	VolumeBase   uint64
	VolumeQuote  uint64
	FeesBase     uint64
	FeesQuote    uint64
	SharesMinted uint64
	SharesBurned uint64
}

func (t *SessionTotals) addSwap(quote model.SwapQuote) {
	t.SwapCount++
	if quote.AssetIn == model.AssetBase {
		t.VolumeBase += quote.AmountIn
		t.VolumeQuote += quote.AmountOut
		t.FeesBase += quote.FeePaid
	} else {
		t.VolumeQuote += quote.AmountIn
		t.VolumeBase += quote.AmountOut
		t.FeesQuote += quote.FeePaid
	}
}

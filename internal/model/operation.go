package model

import "encoding/json"

// Operation kinds recorded in the journal.
const (
	OpFund            = "fund"
	OpAddLiquidity    = "add_liquidity"
	OpRemoveLiquidity = "remove_liquidity"
	OpSwap            = "swap"
)

// OperationRecord is the journaled outcome of one pool operation, committed
// or rejected.
type OperationRecord struct {
	ID             string `json:"id"`
	SessionID      string `json:"session_id"`
	Seq            uint64 `json:"seq"`
	Kind           string `json:"kind"`
	Participant    string `json:"participant"`
	AssetIn        string `json:"asset_in,omitempty"`
	AmountIn       uint64 `json:"amount_in,omitempty"`
	AmountOut      uint64 `json:"amount_out,omitempty"`
	FeePaid        uint64 `json:"fee_paid,omitempty"`
	AmountBaseIn   uint64 `json:"amount_base_in,omitempty"`
	AmountQuoteIn  uint64 `json:"amount_quote_in,omitempty"`
	AmountBaseOut  uint64 `json:"amount_base_out,omitempty"`
	AmountQuoteOut uint64 `json:"amount_quote_out,omitempty"`
	SharesMinted   uint64 `json:"shares_minted,omitempty"`
	SharesBurned   uint64 `json:"shares_burned,omitempty"`
	ReserveBase    uint64 `json:"reserve_base"`
	ReserveQuote   uint64 `json:"reserve_quote"`
	TotalShares    uint64 `json:"total_shares"`
	Rejected       bool   `json:"rejected,omitempty"`
	Error          string `json:"error,omitempty"`
	AppliedAt      string `json:"applied_at"`
}

// MarshalJSON ensures OperationRecord is encoded with stable field names.
func (r OperationRecord) MarshalJSON() ([]byte, error) {
	type Alias OperationRecord
	return json.Marshal(Alias(r))
}

// UnmarshalJSON decodes an OperationRecord from JSON.
func (r *OperationRecord) UnmarshalJSON(data []byte) error {
	type Alias OperationRecord
	var a Alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = OperationRecord(a)
	return nil
}

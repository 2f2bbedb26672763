package model

// ScenarioStep is one scripted operation in a simulation session.
//
// For remove_liquidity steps, Shares == 0 means the participant's full
// position.
type ScenarioStep struct {
	Kind        string `json:"kind"`
	Participant string `json:"participant"`
	AmountBase  uint64 `json:"amount_base,omitempty"`
	AmountQuote uint64 `json:"amount_quote,omitempty"`
	AssetIn     Asset  `json:"asset_in,omitempty"`
	AmountIn    uint64 `json:"amount_in,omitempty"`
	Shares      uint64 `json:"shares,omitempty"`
}

package model

// Position is a participant's claim on the pool, denominated in shares.
type Position struct {
	Participant string `json:"participant"`
	Shares      uint64 `json:"shares"`
}

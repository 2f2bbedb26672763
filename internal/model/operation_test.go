package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestOperationRecordJSONRoundTrip(t *testing.T) {
	original := OperationRecord{
		ID:           "5f2d3c9a-1111-2222-3333-444455556666",
		SessionID:    "9a8b7c6d-aaaa-bbbb-cccc-ddddeeeeffff",
		Seq:          7,
		Kind:         OpSwap,
		Participant:  "trader_one",
		AssetIn:      "base",
		AmountIn:     100_000,
		AmountOut:    181_322,
		FeePaid:      300,
		ReserveBase:  1_100_000,
		ReserveQuote: 1_818_678,
		TotalShares:  1_414_212,
		AppliedAt:    "2024-01-01T00:00:00Z",
	}

	b, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded OperationRecord
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round-trip mismatch: %+v != %+v", original, decoded)
	}
}

func TestRejectedOperationOmitsZeroAmounts(t *testing.T) {
	record := OperationRecord{
		ID:          "id",
		SessionID:   "session",
		Seq:         1,
		Kind:        OpAddLiquidity,
		Participant: "alice",
		Rejected:    true,
		Error:       "insufficient balance",
		AppliedAt:   "2024-01-01T00:00:00Z",
	}

	b, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if _, ok := decoded["amount_in"]; ok {
		t.Fatalf("zero amount_in should be omitted")
	}
	if decoded["rejected"] != true {
		t.Fatalf("rejected flag missing")
	}
	if decoded["error"] != "insufficient balance" {
		t.Fatalf("error string missing")
	}
}

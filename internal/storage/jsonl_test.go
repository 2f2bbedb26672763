package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"dexsim/internal/model"
)

func TestJsonlJournalAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	journal := NewJsonlJournal(path)

	first := model.OperationRecord{
		ID:          "op-1",
		SessionID:   "session-1",
		Seq:         1,
		Kind:        model.OpFund,
		Participant: "alice",
		AppliedAt:   "2024-01-01T00:00:00Z",
	}
	second := model.OperationRecord{
		ID:           "op-2",
		SessionID:    "session-1",
		Seq:          2,
		Kind:         model.OpSwap,
		Participant:  "bob",
		AssetIn:      "base",
		AmountIn:     100,
		AmountOut:    90,
		ReserveBase:  1100,
		ReserveQuote: 910,
		TotalShares:  1000,
		AppliedAt:    "2024-01-01T00:00:01Z",
	}

	if err := journal.Append(context.Background(), []model.OperationRecord{first}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := journal.Append(context.Background(), []model.OperationRecord{second}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer file.Close()

	var decoded []model.OperationRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var record model.OperationRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		decoded = append(decoded, record)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan journal: %v", err)
	}

	want := []model.OperationRecord{first, second}
	if !reflect.DeepEqual(decoded, want) {
		t.Fatalf("journal mismatch: %+v != %+v", decoded, want)
	}
}

func TestJsonlJournalEmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	journal := NewJsonlJournal(path)

	if err := journal.Append(context.Background(), nil); err != nil {
		t.Fatalf("empty append failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("empty append should not create the file")
	}
}

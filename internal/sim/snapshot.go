package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dexsim/internal/model"
)

// SnapshotRecord is the persisted pool snapshot with session progress.
type SnapshotRecord struct {
	SessionID string             `json:"session_id"`
	LastSeq   uint64             `json:"last_seq"`
	Pool      model.PoolSnapshot `json:"pool"`
	UpdatedAt string             `json:"updated_at"`
}

// SnapshotStore persists pool snapshots to a local file.
type SnapshotStore struct {
	path    string
	enabled bool
}

func NewSnapshotStore(path string, enabled bool) *SnapshotStore {
	return &SnapshotStore{path: path, enabled: enabled}
}

// Load reads the last saved snapshot, if any.
func (s *SnapshotStore) Load() (SnapshotRecord, bool, error) {
	if !s.enabled {
		return SnapshotRecord{}, false, nil
	}

	stat, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return SnapshotRecord{}, false, nil
		}
		return SnapshotRecord{}, false, fmt.Errorf("stat snapshot: %w", err)
	}
	if stat.IsDir() {
		return SnapshotRecord{}, false, fmt.Errorf("snapshot path is a directory")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return SnapshotRecord{}, false, fmt.Errorf("read snapshot: %w", err)
	}

	var record SnapshotRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return SnapshotRecord{}, false, fmt.Errorf("parse snapshot: %w", err)
	}

	return record, true, nil
}

// SaveSnapshot writes the snapshot atomically via a temp file rename.
func (s *SnapshotStore) SaveSnapshot(_ context.Context, sessionID string, seq uint64, snap model.PoolSnapshot) error {
	if !s.enabled {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	record := SnapshotRecord{
		SessionID: sessionID,
		LastSeq:   seq,
		Pool:      snap,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot tmp: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}

	return nil
}

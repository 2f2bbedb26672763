package storage

import (
	"context"

	"dexsim/internal/model"
)

// Journal defines a sink for operation records.
type Journal interface {
	Append(ctx context.Context, records []model.OperationRecord) error
}

// SnapshotSink persists the latest pool snapshot for a session.
type SnapshotSink interface {
	SaveSnapshot(ctx context.Context, sessionID string, seq uint64, snap model.PoolSnapshot) error
}

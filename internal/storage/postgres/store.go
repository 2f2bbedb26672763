package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dexsim/internal/model"
)

// Store provides Postgres persistence for the operation journal and pool
// snapshots.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Append inserts a batch of operation records. Records already present
// (by id) are skipped, so replaying a journal is idempotent.
func (s *Store) Append(ctx context.Context, records []model.OperationRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO pool_operations (
				id, session_id, seq, kind, participant, asset_in,
				amount_in, amount_out, fee_paid,
				amount_base_in, amount_quote_in, amount_base_out, amount_quote_out,
				shares_minted, shares_burned,
				reserve_base, reserve_quote, total_shares,
				rejected, error, applied_at, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,now())
			ON CONFLICT (id) DO NOTHING
		`,
			r.ID,
			r.SessionID,
			int64(r.Seq),
			r.Kind,
			r.Participant,
			r.AssetIn,
			int64(r.AmountIn),
			int64(r.AmountOut),
			int64(r.FeePaid),
			int64(r.AmountBaseIn),
			int64(r.AmountQuoteIn),
			int64(r.AmountBaseOut),
			int64(r.AmountQuoteOut),
			int64(r.SharesMinted),
			int64(r.SharesBurned),
			int64(r.ReserveBase),
			int64(r.ReserveQuote),
			int64(r.TotalShares),
			r.Rejected,
			r.Error,
			r.AppliedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// SaveSnapshot upserts the latest pool snapshot for a session.
func (s *Store) SaveSnapshot(ctx context.Context, sessionID string, seq uint64, snap model.PoolSnapshot) error {
	if sessionID == "" {
		return fmt.Errorf("session id required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO pool_snapshots (
			session_id, last_seq, reserve_base, reserve_quote, total_shares, fee_rate_bps, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (session_id) DO UPDATE SET
			last_seq = EXCLUDED.last_seq,
			reserve_base = EXCLUDED.reserve_base,
			reserve_quote = EXCLUDED.reserve_quote,
			total_shares = EXCLUDED.total_shares,
			fee_rate_bps = EXCLUDED.fee_rate_bps,
			updated_at = now()
	`,
		sessionID,
		int64(seq),
		int64(snap.ReserveBase),
		int64(snap.ReserveQuote),
		int64(snap.TotalShares),
		int64(snap.FeeRateBps),
	)
	return err
}

// LoadState returns the last applied sequence number for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var seq uint64
	row := s.pool.QueryRow(ctx, `SELECT last_seq FROM session_state WHERE name=$1`, name)
	if err := row.Scan(&seq); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return seq, true, nil
}

// SaveState upserts the last applied sequence number for a name.
func (s *Store) SaveState(ctx context.Context, name string, seq uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO session_state (name, last_seq, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_seq = EXCLUDED.last_seq, updated_at = now()
	`, name, seq)
	return err
}

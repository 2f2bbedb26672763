package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dexsim/internal/fixedpoint"
	"dexsim/internal/model"
	"dexsim/internal/pool"
	"dexsim/internal/registry"
	"dexsim/internal/storage"
)

// Runner applies a scenario step by step against the pool engine, journaling
// every outcome and persisting a snapshot after each committed step.
//
// Recoverable rejections (insufficient balance, dust trades, and so on) are
// journaled and the session continues; overflow and drained-pool errors abort
// the session because they indicate a scale or logic defect.
type Runner struct {
	sessionID string
	engine    *pool.Engine
	registry  *registry.Registry
	journals  []storage.Journal
	snapshots []storage.SnapshotSink
	logger    *zap.Logger
	seq       uint64
	totals    SessionTotals
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(sessionID string, engine *pool.Engine, reg *registry.Registry, journals []storage.Journal, snapshots []storage.SnapshotSink, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		sessionID: sessionID,
		engine:    engine,
		registry:  reg,
		journals:  journals,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Run executes the scenario and returns the session totals.
func (r *Runner) Run(ctx context.Context, scenario Scenario) (SessionTotals, error) {
	if r.engine == nil {
		return r.totals, fmt.Errorf("engine is nil")
	}
	if r.registry == nil {
		return r.totals, fmt.Errorf("registry is nil")
	}

	r.logger.Info("session start",
		zap.String("session_id", r.sessionID),
		zap.String("scenario", scenario.Name),
		zap.Int("steps", len(scenario.Steps)),
	)

	for _, step := range scenario.Steps {
		select {
		case <-ctx.Done():
			return r.totals, ctx.Err()
		default:
		}

		record, err := r.applyStep(step)
		if err != nil && !isRecoverable(err) {
			return r.totals, fmt.Errorf("step %d (%s): %w", record.Seq, step.Kind, err)
		}

		if err := r.publish(ctx, record); err != nil {
			return r.totals, err
		}

		if record.Rejected {
			r.logger.Warn("step rejected",
				zap.Uint64("seq", record.Seq),
				zap.String("kind", record.Kind),
				zap.String("participant", record.Participant),
				zap.String("error", record.Error),
			)
		} else {
			r.logger.Info("step applied",
				zap.Uint64("seq", record.Seq),
				zap.String("kind", record.Kind),
				zap.String("participant", record.Participant),
				zap.Uint64("reserve_base", record.ReserveBase),
				zap.Uint64("reserve_quote", record.ReserveQuote),
				zap.Uint64("total_shares", record.TotalShares),
			)
		}
	}

	r.logger.Info("session complete",
		zap.String("session_id", r.sessionID),
		zap.Uint64("steps", r.totals.Steps),
		zap.Uint64("rejected", r.totals.Rejected),
		zap.Uint64("swap_count", r.totals.SwapCount),
		zap.Uint64("volume_base", r.totals.VolumeBase),
		zap.Uint64("volume_quote", r.totals.VolumeQuote),
		zap.Uint64("fees_base", r.totals.FeesBase),
		zap.Uint64("fees_quote", r.totals.FeesQuote),
	)

	return r.totals, nil
}

func (r *Runner) applyStep(step model.ScenarioStep) (model.OperationRecord, error) {
	r.seq++
	r.totals.Steps++

	record := model.OperationRecord{
		ID:          uuid.NewString(),
		SessionID:   r.sessionID,
		Seq:         r.seq,
		Kind:        step.Kind,
		Participant: step.Participant,
	}

	var err error
	switch step.Kind {
	case model.OpFund:
		r.registry.Fund(step.Participant, step.AmountBase, step.AmountQuote)
		record.AmountBaseIn = step.AmountBase
		record.AmountQuoteIn = step.AmountQuote

	case model.OpAddLiquidity:
		record.AmountBaseIn = step.AmountBase
		record.AmountQuoteIn = step.AmountQuote
		var minted uint64
		minted, err = r.engine.AddLiquidity(step.Participant, step.AmountBase, step.AmountQuote)
		if err == nil {
			record.SharesMinted = minted
			r.totals.SharesMinted += minted
		}

	case model.OpRemoveLiquidity:
		shares := step.Shares
		if shares == 0 {
			shares = r.registry.SharesOf(step.Participant)
		}
		record.SharesBurned = shares
		var baseOut, quoteOut uint64
		baseOut, quoteOut, err = r.engine.RemoveLiquidity(step.Participant, shares)
		if err == nil {
			record.AmountBaseOut = baseOut
			record.AmountQuoteOut = quoteOut
			r.totals.SharesBurned += shares
		} else {
			record.SharesBurned = 0
		}

	case model.OpSwap:
		record.AssetIn = string(step.AssetIn)
		record.AmountIn = step.AmountIn
		err = r.applySwap(step, &record)

	default:
		err = fmt.Errorf("unknown step kind %q", step.Kind)
	}

	snap := r.engine.Snapshot()
	record.ReserveBase = snap.ReserveBase
	record.ReserveQuote = snap.ReserveQuote
	record.TotalShares = snap.TotalShares
	record.AppliedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if err != nil {
		record.Rejected = true
		record.Error = err.Error()
		r.totals.Rejected++
	}

	return record, err
}

// applySwap pre-checks the trader's balance, executes the swap against the
// pool, then settles the trader's balances from the quote. The engine only
// touches pool reserves; settlement is this runner's responsibility.
func (r *Runner) applySwap(step model.ScenarioStep, record *model.OperationRecord) error {
	if !step.AssetIn.Valid() {
		return fmt.Errorf("unknown asset %q", step.AssetIn)
	}
	if r.registry.BalanceOf(step.Participant, step.AssetIn) < step.AmountIn {
		return registry.ErrInsufficientBalance
	}

	quote, err := r.engine.Swap(step.Participant, step.AmountIn, step.AssetIn)
	if err != nil {
		return err
	}

	if err := r.registry.Debit(step.Participant, step.AssetIn, quote.AmountIn); err != nil {
		// Pre-checked above; only reachable if settlement raced the check.
		return fmt.Errorf("settle swap debit: %w", err)
	}
	r.registry.Credit(step.Participant, step.AssetIn.Other(), quote.AmountOut)

	record.AmountOut = quote.AmountOut
	record.FeePaid = quote.FeePaid
	r.totals.addSwap(quote)
	return nil
}

func (r *Runner) publish(ctx context.Context, record model.OperationRecord) error {
	batch := []model.OperationRecord{record}
	for _, journal := range r.journals {
		if err := journal.Append(ctx, batch); err != nil {
			return fmt.Errorf("append journal: %w", err)
		}
	}

	snap := r.engine.Snapshot()
	for _, sink := range r.snapshots {
		if err := sink.SaveSnapshot(ctx, r.sessionID, record.Seq, snap); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	}
	return nil
}

// isRecoverable reports whether the session may continue after the error.
// Overflow means amounts left the representable scale; a drained pool means
// the proportional formula was violated. Both halt the session.
func isRecoverable(err error) bool {
	if errors.Is(err, fixedpoint.ErrOverflow) || errors.Is(err, fixedpoint.ErrDivideByZero) {
		return false
	}
	if errors.Is(err, pool.ErrPoolDrained) {
		return false
	}
	switch {
	case errors.Is(err, pool.ErrZeroAmount),
		errors.Is(err, pool.ErrZeroLiquidity),
		errors.Is(err, pool.ErrInsufficientReserve),
		errors.Is(err, pool.ErrInsufficientShares),
		errors.Is(err, pool.ErrInsufficientLiquidity),
		errors.Is(err, registry.ErrInsufficientBalance),
		errors.Is(err, registry.ErrUnknownParticipant):
		return true
	}
	return false
}

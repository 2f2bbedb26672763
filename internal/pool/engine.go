package pool

import (
	"sync"

	"go.uber.org/zap"

	"dexsim/internal/model"
	"dexsim/internal/registry"
)

// Engine serializes liquidity and swap operations against one pool. The mutex
// is held for the full read-modify-write of every mutating operation and
// released on all exit paths, so no caller can observe partial state.
type Engine struct {
	mu       sync.Mutex
	state    *State
	registry *registry.Registry
	logger   *zap.Logger
}

// NewEngine wires a pool state to the participant registry.
func NewEngine(state *State, reg *registry.Registry, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{state: state, registry: reg, logger: logger}
}

// Snapshot returns a consistent copy of the pool state.
func (e *Engine) Snapshot() model.PoolSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Snapshot()
}

// Reserves returns the current reserves and share supply.
func (e *Engine) Reserves() (reserveBase, reserveQuote, totalShares uint64) {
	snap := e.Snapshot()
	return snap.ReserveBase, snap.ReserveQuote, snap.TotalShares
}

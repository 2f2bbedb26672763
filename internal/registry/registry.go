package registry

import (
	"errors"
	"sort"
	"sync"

	"dexsim/internal/model"
)

var (
	// ErrUnknownParticipant is returned when an identity has never been funded.
	ErrUnknownParticipant = errors.New("unknown participant")

	// ErrInsufficientBalance is returned when a debit exceeds the spendable balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type holdings struct {
	base   uint64
	quote  uint64
	shares uint64
}

// Registry maps participant identities to their spendable asset balances and
// their LP-token position. The pool engine mutates it atomically with pool
// state for liquidity operations; swap settlement is the caller's job.
type Registry struct {
	mu       sync.RWMutex
	accounts map[string]*holdings
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{accounts: make(map[string]*holdings)}
}

// Fund credits spendable balances, creating the participant if needed.
func (r *Registry) Fund(participant string, amountBase, amountQuote uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct := r.account(participant)
	acct.base += amountBase
	acct.quote += amountQuote
}

// BalanceOf returns the spendable balance of one asset.
func (r *Registry) BalanceOf(participant string, asset model.Asset) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.accounts[participant]
	if !ok {
		return 0
	}
	if asset == model.AssetBase {
		return acct.base
	}
	return acct.quote
}

// SharesOf returns the participant's LP-token position, zero if none.
func (r *Registry) SharesOf(participant string) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.accounts[participant]
	if !ok {
		return 0
	}
	return acct.shares
}

// DebitPair removes both asset amounts from the participant's spendable
// balances. Both debits apply or neither does.
func (r *Registry) DebitPair(participant string, amountBase, amountQuote uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, ok := r.accounts[participant]
	if !ok {
		return ErrUnknownParticipant
	}
	if acct.base < amountBase || acct.quote < amountQuote {
		return ErrInsufficientBalance
	}
	acct.base -= amountBase
	acct.quote -= amountQuote
	return nil
}

// CreditPair adds both asset amounts to the participant's spendable balances.
func (r *Registry) CreditPair(participant string, amountBase, amountQuote uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct := r.account(participant)
	acct.base += amountBase
	acct.quote += amountQuote
}

// Debit removes one asset amount from the participant's spendable balance.
func (r *Registry) Debit(participant string, asset model.Asset, amount uint64) error {
	if asset == model.AssetBase {
		return r.DebitPair(participant, amount, 0)
	}
	return r.DebitPair(participant, 0, amount)
}

// Credit adds one asset amount to the participant's spendable balance.
func (r *Registry) Credit(participant string, asset model.Asset, amount uint64) {
	if asset == model.AssetBase {
		r.CreditPair(participant, amount, 0)
		return
	}
	r.CreditPair(participant, 0, amount)
}

// AddShares increases the participant's position, creating it if needed.
func (r *Registry) AddShares(participant string, shares uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct := r.account(participant)
	acct.shares += shares
}

// BurnShares decreases the participant's position. A position that reaches
// zero shares is destroyed; the account itself remains for its balances.
func (r *Registry) BurnShares(participant string, shares uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, ok := r.accounts[participant]
	if !ok {
		return ErrUnknownParticipant
	}
	if acct.shares < shares {
		return ErrInsufficientBalance
	}
	acct.shares -= shares
	return nil
}

// Positions returns all non-zero positions sorted by participant.
func (r *Registry) Positions() []model.Position {
	r.mu.RLock()
	defer r.mu.RUnlock()
	positions := make([]model.Position, 0, len(r.accounts))
	for participant, acct := range r.accounts {
		if acct.shares == 0 {
			continue
		}
		positions = append(positions, model.Position{Participant: participant, Shares: acct.shares})
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Participant < positions[j].Participant
	})
	return positions
}

// Participants returns all known identities sorted by name.
func (r *Registry) Participants() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.accounts))
	for participant := range r.accounts {
		names = append(names, participant)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) account(participant string) *holdings {
	acct, ok := r.accounts[participant]
	if !ok {
		acct = &holdings{}
		r.accounts[participant] = acct
	}
	return acct
}

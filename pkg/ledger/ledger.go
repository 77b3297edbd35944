package ledger

import (
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/cpnvalentinperez/BotTranferTelegram/pkg/store"
)

// ErrInvalidAmount is returned when a command argument cannot be parsed as a
// number, or when a non-positive delta is rejected by configuration.
var ErrInvalidAmount = errors.New("importe inválido")

// Milestone is the accumulated-balance threshold whose first crossing
// triggers the one-time celebratory notification.
var Milestone = decimal.NewFromInt(1_000_000)

// Options configures ledger behavior.
type Options struct {
	// AllowNegative accepts zero or negative deltas in Add as corrections.
	// When false, Add rejects them with ErrInvalidAmount.
	AllowNegative bool
}

// Ledger holds the accumulated balance and the milestone flag, persisting
// through the injected store after every mutation. All mutating operations
// are serialized; the read-modify-write on the balance is not atomic and
// handlers may run concurrently in webhook mode.
type Ledger struct {
	mu    sync.Mutex
	state store.State
	st    store.Store
	opts  Options
}

// Result reports the outcome of a mutation.
type Result struct {
	// Total is the balance after the mutation.
	Total decimal.Decimal
	// Crossed is true exactly when this mutation moved the balance across
	// the milestone for the first time since the last reset.
	Crossed bool
}

// New creates a Ledger seeded from the store. A store with no prior state
// yields a zero balance with the milestone un-armed.
func New(st store.Store, opts Options) (*Ledger, error) {
	state, err := st.Load()
	if err != nil {
		return nil, err
	}
	return &Ledger{state: state, st: st, opts: opts}, nil
}

// ParseAmount parses a command argument as a decimal amount, accepting a
// comma or a dot as the decimal marker.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Add applies a delta to the accumulated balance and persists.
func (l *Ledger) Add(delta decimal.Decimal) (Result, error) {
	if !l.opts.AllowNegative && delta.Sign() <= 0 {
		return Result{}, ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Saldo = l.state.Saldo.Add(delta)
	crossed := l.checkMilestoneLocked()
	l.persistLocked()
	return Result{Total: l.state.Saldo, Crossed: crossed}, nil
}

// SetBalance overwrites the accumulated balance and persists.
func (l *Ledger) SetBalance(total decimal.Decimal) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Saldo = total
	crossed := l.checkMilestoneLocked()
	l.persistLocked()
	return Result{Total: l.state.Saldo, Crossed: crossed}, nil
}

// Balance returns the current accumulated balance without touching the store.
func (l *Ledger) Balance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Saldo
}

// MilestoneReached reports whether the milestone flag is set.
func (l *Ledger) MilestoneReached() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.AvisoMillon
}

// Reset zeroes the balance, re-arms the milestone, and persists.
func (l *Ledger) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = store.State{}
	l.persistLocked()
	return nil
}

// checkMilestoneLocked arms the sticky milestone flag on the first crossing
// of an epoch. The flag only clears on Reset, so a balance that drops back
// below the threshold and climbs again does not re-fire.
func (l *Ledger) checkMilestoneLocked() bool {
	if l.state.AvisoMillon || l.state.Saldo.LessThan(Milestone) {
		return false
	}
	l.state.AvisoMillon = true
	return true
}

// persistLocked saves best-effort: a failed save is logged and swallowed,
// and the in-memory state stays authoritative for the process lifetime.
func (l *Ledger) persistLocked() {
	if err := l.st.Save(l.state); err != nil {
		log.Printf("error guardando estado: %v", err)
	}
}

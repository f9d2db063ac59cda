// Package memoryrepo keeps credit accounts and ledger entries in process
// memory. A single mutex plays the role of the account row lock, so it
// serialises delta application the same way the Postgres repository does.
package memoryrepo

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/creditmeter/internal/domain"
)

type Repository struct {
	mu sync.RWMutex

	nextID   int64
	accounts map[string]*domain.CreditAccount
	entries  map[string][]domain.LedgerEntry

	now func() time.Time
}

func New() *Repository {
	return &Repository{
		accounts: make(map[string]*domain.CreditAccount),
		entries:  make(map[string][]domain.LedgerEntry),
		now:      time.Now,
	}
}

func (r *Repository) insertLocked(userID string) *domain.CreditAccount {
	if account, ok := r.accounts[userID]; ok {
		return account
	}
	r.nextID++
	now := r.now()
	account := &domain.CreditAccount{
		ID:                r.nextID,
		UserID:            userID,
		BalanceMicrocents: decimal.Zero,
		Currency:          domain.CurrencyUSD,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	r.accounts[userID] = account
	return account
}

func (r *Repository) InsertAccountIfAbsent(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insertLocked(userID)
	return nil
}

func (r *Repository) GetAccount(_ context.Context, userID string) (*domain.CreditAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *account
	return &clone, nil
}

func (r *Repository) ApplyDelta(ctx context.Context, entry *domain.LedgerEntry) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	account := r.insertLocked(entry.UserID)
	entry.CreatedAt = r.now()
	if entry.Metadata == nil {
		entry.Metadata = map[string]any{}
	}
	r.entries[entry.UserID] = append(r.entries[entry.UserID], *entry)

	account.BalanceMicrocents = account.BalanceMicrocents.Add(entry.AmountMicrocents)
	account.UpdatedAt = entry.CreatedAt
	return account.BalanceMicrocents, nil
}

func (r *Repository) ListEntries(_ context.Context, userID string, limit, offset int) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.entries[userID]
	result := make([]domain.LedgerEntry, 0, limit)
	for i := len(all) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		result = append(result, all[i])
	}
	return result, nil
}

func (r *Repository) UpdateSettings(_ context.Context, userID string, settings domain.AccountSettings) (*domain.CreditAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account := r.insertLocked(userID)
	account.AutoReloadEnabled = settings.AutoReloadEnabled
	account.AutoReloadThresholdMicrocents = settings.AutoReloadThresholdMicrocents
	account.AutoReloadAmountMicrocents = settings.AutoReloadAmountMicrocents
	account.UpdatedAt = r.now()

	clone := *account
	return &clone, nil
}

func (r *Repository) SumEntries(_ context.Context, userID string) (decimal.Decimal, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum := decimal.Zero
	for _, entry := range r.entries[userID] {
		sum = sum.Add(entry.AmountMicrocents)
	}
	return sum, int64(len(r.entries[userID])), nil
}

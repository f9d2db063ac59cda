package creditrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/creditmeter/internal/domain"
	"github.com/GlebRadaev/creditmeter/internal/pg"
)

const accountColumns = `id, user_id, balance_microcents, currency, auto_reload_enabled,
        auto_reload_threshold_microcents, auto_reload_amount_microcents, created_at, updated_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanAccount(row pgx.Row) (*domain.CreditAccount, error) {
	var account domain.CreditAccount
	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.BalanceMicrocents,
		&account.Currency,
		&account.AutoReloadEnabled,
		&account.AutoReloadThresholdMicrocents,
		&account.AutoReloadAmountMicrocents,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// InsertAccountIfAbsent creates a zero-balance account. Concurrent callers
// for the same user all succeed and exactly one row is written.
func (r *Repository) InsertAccountIfAbsent(ctx context.Context, userID string) error {
	query := `
        INSERT INTO credit_account (user_id, balance_microcents, currency)
        VALUES ($1, 0, 'USD')
        ON CONFLICT (user_id) DO NOTHING
    `
	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't insert credit account", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetAccount(ctx context.Context, userID string) (*domain.CreditAccount, error) {
	query := `
        SELECT ` + accountColumns + `
        FROM credit_account
        WHERE user_id = $1
    `
	account, err := scanAccount(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		zap.L().Error("can't get credit account", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return account, nil
}

// ApplyDelta records entry and moves the balance by entry.AmountMicrocents in
// one transaction. The increment happens in SQL, so the account row lock
// orders concurrent writers. entry.CreatedAt is filled from the database.
func (r *Repository) ApplyDelta(ctx context.Context, entry *domain.LedgerEntry) (decimal.Decimal, error) {
	insertEntry := `
        INSERT INTO credit_ledger (id, user_id, amount_microcents, entry_type, reason, external_source, metadata)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at
    `
	updateBalance := `
        UPDATE credit_account
        SET balance_microcents = balance_microcents + $1, updated_at = NOW()
        WHERE user_id = $2
        RETURNING balance_microcents
    `
	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	var balance decimal.Decimal
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := r.InsertAccountIfAbsent(ctx, entry.UserID); err != nil {
			return err
		}

		row := r.db.QueryRow(ctx, insertEntry,
			entry.ID, entry.UserID, entry.AmountMicrocents, string(entry.EntryType),
			entry.Reason, entry.ExternalSource, metadata,
		)
		if err := row.Scan(&entry.CreatedAt); err != nil {
			zap.L().Error("can't insert ledger entry", zap.String("user_id", entry.UserID), zap.Error(err))
			return err
		}

		row = r.db.QueryRow(ctx, updateBalance, entry.AmountMicrocents, entry.UserID)
		if err := row.Scan(&balance); err != nil {
			zap.L().Error("can't update credit balance", zap.String("user_id", entry.UserID), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func (r *Repository) ListEntries(ctx context.Context, userID string, limit, offset int) ([]domain.LedgerEntry, error) {
	query := `
        SELECT id, user_id, amount_microcents, entry_type, reason, external_source, metadata, created_at
        FROM credit_ledger
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		zap.L().Error("can't list ledger entries", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0, limit)
	for rows.Next() {
		var (
			entry     domain.LedgerEntry
			entryType string
		)
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.AmountMicrocents, &entryType,
			&entry.Reason, &entry.ExternalSource, &entry.Metadata, &entry.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan ledger entry row", zap.Error(err))
			return nil, err
		}
		entry.EntryType = domain.EntryType(entryType)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate ledger entries", zap.Error(err))
		return nil, err
	}
	return entries, nil
}

// UpdateSettings stores auto-reload settings, creating the account if needed.
// Balance and ledger are left untouched.
func (r *Repository) UpdateSettings(ctx context.Context, userID string, settings domain.AccountSettings) (*domain.CreditAccount, error) {
	query := `
        UPDATE credit_account
        SET auto_reload_enabled = $1,
            auto_reload_threshold_microcents = $2,
            auto_reload_amount_microcents = $3,
            updated_at = NOW()
        WHERE user_id = $4
        RETURNING ` + accountColumns

	var account *domain.CreditAccount
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := r.InsertAccountIfAbsent(ctx, userID); err != nil {
			return err
		}
		row := r.db.QueryRow(ctx, query,
			settings.AutoReloadEnabled,
			settings.AutoReloadThresholdMicrocents,
			settings.AutoReloadAmountMicrocents,
			userID,
		)
		var err error
		account, err = scanAccount(row)
		if err != nil {
			zap.L().Error("can't update credit account settings", zap.String("user_id", userID), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// SumEntries returns the ledger total and entry count for a user.
func (r *Repository) SumEntries(ctx context.Context, userID string) (decimal.Decimal, int64, error) {
	query := `
        SELECT COALESCE(SUM(amount_microcents), 0), COUNT(*)
        FROM credit_ledger
        WHERE user_id = $1
    `
	var (
		sum   decimal.Decimal
		count int64
	)
	if err := r.db.QueryRow(ctx, query, userID).Scan(&sum, &count); err != nil {
		zap.L().Error("can't sum ledger entries", zap.String("user_id", userID), zap.Error(err))
		return decimal.Zero, 0, err
	}
	return sum, count, nil
}

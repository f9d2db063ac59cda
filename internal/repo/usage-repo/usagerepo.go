package usagerepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/creditmeter/internal/domain"
	"github.com/GlebRadaev/creditmeter/internal/pg"
)

const chargeColumns = `id, user_id, generation_id, model, status, cost_usd, total_microcents,
        ledger_entry_id, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCharge(row scanner) (*domain.UsageCharge, error) {
	var (
		charge domain.UsageCharge
		status string
	)
	err := row.Scan(
		&charge.ID,
		&charge.UserID,
		&charge.GenerationID,
		&charge.Model,
		&status,
		&charge.CostUsd,
		&charge.TotalMicrocents,
		&charge.LedgerEntryID,
		&charge.CreatedAt,
		&charge.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	charge.Status = domain.UsageStatus(status)
	return &charge, nil
}

// Create queues a completion. It reports false when the generation was
// already recorded, in which case charge is left unchanged.
func (r *Repository) Create(ctx context.Context, charge *domain.UsageCharge) (bool, error) {
	query := `
        INSERT INTO usage_charges (user_id, generation_id, model, status)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (generation_id) DO NOTHING
        RETURNING id, created_at, updated_at
    `
	row := r.db.QueryRow(ctx, query, charge.UserID, charge.GenerationID, charge.Model, string(domain.UsageStatusNew))
	err := row.Scan(&charge.ID, &charge.CreatedAt, &charge.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		zap.L().Error("can't create usage charge", zap.String("generation_id", charge.GenerationID), zap.Error(err))
		return false, err
	}
	charge.Status = domain.UsageStatusNew
	return true, nil
}

func (r *Repository) GetByGenerationID(ctx context.Context, generationID string) (*domain.UsageCharge, error) {
	query := `
        SELECT ` + chargeColumns + `
        FROM usage_charges
        WHERE generation_id = $1
    `
	charge, err := scanCharge(r.db.QueryRow(ctx, query, generationID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		zap.L().Error("can't get usage charge", zap.String("generation_id", generationID), zap.Error(err))
		return nil, err
	}
	return charge, nil
}

// LockByID reads a charge with a row lock held until the surrounding
// transaction ends.
func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.UsageCharge, error) {
	query := `
        SELECT ` + chargeColumns + `
        FROM usage_charges
        WHERE id = $1
        FOR UPDATE
    `
	charge, err := scanCharge(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		zap.L().Error("can't lock usage charge", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return charge, nil
}

func (r *Repository) FindForProcessing(ctx context.Context, limit uint32) ([]domain.UsageCharge, error) {
	query := `
        SELECT ` + chargeColumns + `
        FROM usage_charges
        WHERE status = 'NEW'
        ORDER BY created_at ASC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, int(limit))
	if err != nil {
		zap.L().Error("can't get usage charges for processing", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var charges []domain.UsageCharge
	for rows.Next() {
		charge, err := scanCharge(rows)
		if err != nil {
			zap.L().Error("can't scan usage charge row", zap.Error(err))
			return nil, err
		}
		charges = append(charges, *charge)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate usage charges", zap.Error(err))
		return nil, err
	}
	return charges, nil
}

// MarkCharged settles a charge. entryID is nil when the priced total was zero
// and no ledger entry was written.
func (r *Repository) MarkCharged(ctx context.Context, id int64, costUsd string, total decimal.Decimal, entryID *uuid.UUID) error {
	query := `
        UPDATE usage_charges
        SET status = $1, cost_usd = $2, total_microcents = $3, ledger_entry_id = $4, updated_at = NOW()
        WHERE id = $5
    `
	_, err := r.db.Exec(ctx, query, string(domain.UsageStatusCharged), costUsd, total, entryID, id)
	if err != nil {
		zap.L().Error("can't mark usage charge as charged", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) MarkInvalid(ctx context.Context, id int64, costUsd *string) error {
	query := `
        UPDATE usage_charges
        SET status = $1, cost_usd = $2, updated_at = NOW()
        WHERE id = $3
    `
	_, err := r.db.Exec(ctx, query, string(domain.UsageStatusInvalid), costUsd, id)
	if err != nil {
		zap.L().Error("can't mark usage charge as invalid", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

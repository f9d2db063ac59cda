package usageservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/creditmeter/internal/currency"
	"github.com/GlebRadaev/creditmeter/internal/domain"
	"github.com/GlebRadaev/creditmeter/internal/pg"
	"github.com/GlebRadaev/creditmeter/internal/service/creditservice"
)

//go:generate mockgen -source=usageservice.go -destination=mock_usageservice.go -package=usageservice

type Repo interface {
	Create(ctx context.Context, charge *domain.UsageCharge) (bool, error)
	GetByGenerationID(ctx context.Context, generationID string) (*domain.UsageCharge, error)
	LockByID(ctx context.Context, id int64) (*domain.UsageCharge, error)
	FindForProcessing(ctx context.Context, limit uint32) ([]domain.UsageCharge, error)
	MarkCharged(ctx context.Context, id int64, costUsd string, total decimal.Decimal, entryID *uuid.UUID) error
	MarkInvalid(ctx context.Context, id int64, costUsd *string) error
}

type Charger interface {
	ChargeUsage(ctx context.Context, userID string, costUsd any, in creditservice.ChargeInput) (creditservice.ChargeResult, error)
}

var ErrGenerationOwner = errors.New("generation belongs to another user")

type Service struct {
	repo      Repo
	charger   Charger
	txManager pg.TXManager
}

func New(repo Repo, charger Charger, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		charger:   charger,
		txManager: txManager,
	}
}

type SubmitInput struct {
	UserID       string
	GenerationID string
	Model        string
	CostUsd      *string
}

// Submit records a finished generation. Repeated submissions of the same
// generation return the stored charge. When the caller already knows the
// cost the charge is settled right away, otherwise it waits for metering.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.UsageCharge, error) {
	charge := &domain.UsageCharge{
		UserID:       in.UserID,
		GenerationID: in.GenerationID,
		Model:        in.Model,
	}
	created, err := s.repo.Create(ctx, charge)
	if err != nil {
		zap.L().Error("failed to record usage", zap.String("generation_id", in.GenerationID), zap.Error(err))
		return nil, err
	}
	if !created {
		existing, err := s.repo.GetByGenerationID(ctx, in.GenerationID)
		if err != nil {
			return nil, err
		}
		if existing.UserID != in.UserID {
			return nil, ErrGenerationOwner
		}
		return existing, nil
	}

	if in.CostUsd == nil {
		return charge, nil
	}
	if _, ok := currency.SafeParseUsdToMicrocents(*in.CostUsd); !ok {
		zap.L().Warn("ignoring unparsable reported cost, leaving usage for metering",
			zap.String("generation_id", in.GenerationID), zap.String("cost_usd", *in.CostUsd))
		return charge, nil
	}
	return s.Settle(ctx, charge.ID, *in.CostUsd)
}

// Settle charges a pending usage record exactly once. The usage row is locked
// for the whole transaction, so concurrent settlements of one generation
// serialise and all but the first see it already settled.
func (s *Service) Settle(ctx context.Context, chargeID int64, costUsd string) (*domain.UsageCharge, error) {
	var settled *domain.UsageCharge
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		charge, err := s.repo.LockByID(ctx, chargeID)
		if err != nil {
			return err
		}
		if charge.Status != domain.UsageStatusNew {
			settled = charge
			return nil
		}

		result, err := s.charger.ChargeUsage(ctx, charge.UserID, costUsd, creditservice.ChargeInput{
			GenerationID: charge.GenerationID,
			Model:        charge.Model,
		})
		if domain.IsValidation(err) {
			zap.L().Warn("usage cost rejected", zap.String("generation_id", charge.GenerationID), zap.Error(err))
			if err := s.repo.MarkInvalid(ctx, charge.ID, &costUsd); err != nil {
				return err
			}
			charge.Status = domain.UsageStatusInvalid
			charge.CostUsd = &costUsd
			settled = charge
			return nil
		}
		if err != nil {
			return fmt.Errorf("charge generation %s: %w", charge.GenerationID, err)
		}

		var entryID *uuid.UUID
		if result.Entry != nil {
			entryID = &result.Entry.ID
		}
		if err := s.repo.MarkCharged(ctx, charge.ID, costUsd, result.ChargedMicrocents, entryID); err != nil {
			return err
		}

		charge.Status = domain.UsageStatusCharged
		charge.CostUsd = &costUsd
		charge.TotalMicrocents = &result.ChargedMicrocents
		charge.LedgerEntryID = entryID
		settled = charge
		return nil
	})
	if err != nil {
		zap.L().Error("failed to settle usage", zap.Int64("charge_id", chargeID), zap.Error(err))
		return nil, err
	}
	return settled, nil
}

// Reject marks a pending charge invalid, for gateway answers without a usable
// cost. Already settled charges are left as they are.
func (s *Service) Reject(ctx context.Context, chargeID int64, costUsd *string) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		charge, err := s.repo.LockByID(ctx, chargeID)
		if err != nil {
			return err
		}
		if charge.Status != domain.UsageStatusNew {
			return nil
		}
		return s.repo.MarkInvalid(ctx, chargeID, costUsd)
	})
}

func (s *Service) Pending(ctx context.Context, limit uint32) ([]domain.UsageCharge, error) {
	charges, err := s.repo.FindForProcessing(ctx, limit)
	if err != nil {
		zap.L().Error("failed to load pending usage", zap.Error(err))
		return nil, err
	}
	return charges, nil
}

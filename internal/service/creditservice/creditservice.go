package creditservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/creditmeter/internal/currency"
	"github.com/GlebRadaev/creditmeter/internal/domain"
	"github.com/GlebRadaev/creditmeter/internal/pricing"
)

//go:generate mockgen -source=creditservice.go -destination=mock_creditservice.go -package=creditservice

type Repo interface {
	InsertAccountIfAbsent(ctx context.Context, userID string) error
	GetAccount(ctx context.Context, userID string) (*domain.CreditAccount, error)
	ApplyDelta(ctx context.Context, entry *domain.LedgerEntry) (decimal.Decimal, error)
	ListEntries(ctx context.Context, userID string, limit, offset int) ([]domain.LedgerEntry, error)
	UpdateSettings(ctx context.Context, userID string, settings domain.AccountSettings) (*domain.CreditAccount, error)
	SumEntries(ctx context.Context, userID string) (decimal.Decimal, int64, error)
}

const (
	DefaultLedgerLimit = 50
	MaxLedgerLimit     = 100

	adminSource = "admin"
	usageReason = "usage"
)

type Service struct {
	repo    Repo
	pricing pricing.Options
}

func New(repo Repo, opts pricing.Options) *Service {
	return &Service{
		repo:    repo,
		pricing: opts,
	}
}

// CreditDeltaInput describes one signed balance movement. A zero EntryID is
// replaced with a fresh UUID.
type CreditDeltaInput struct {
	EntryID          uuid.UUID
	UserID           string
	AmountMicrocents decimal.Decimal
	EntryType        domain.EntryType
	Reason           string
	ExternalSource   string
	Metadata         map[string]any
}

type ListOptions struct {
	Limit  int
	Offset int
}

// Normalize clamps the page to what ListCreditLedger actually serves: a zero
// limit means DefaultLedgerLimit, others are bounded to [1, MaxLedgerLimit].
func (o ListOptions) Normalize() ListOptions {
	switch {
	case o.Limit == 0:
		o.Limit = DefaultLedgerLimit
	case o.Limit < 1:
		o.Limit = 1
	case o.Limit > MaxLedgerLimit:
		o.Limit = MaxLedgerLimit
	}
	o.Offset = max(o.Offset, 0)
	return o
}

type Reconciliation struct {
	UserID              string
	BalanceMicrocents   decimal.Decimal
	LedgerSumMicrocents decimal.Decimal
	EntryCount          int64
}

func (r Reconciliation) Consistent() bool {
	return r.BalanceMicrocents.Equal(r.LedgerSumMicrocents)
}

type ChargeInput struct {
	GenerationID string
	Model        string
	Reason       string
}

// ChargeResult carries the priced breakdown and, when something was billed,
// the ledger entry written for it.
type ChargeResult struct {
	Breakdown         pricing.CostBreakdown
	ChargedMicrocents decimal.Decimal
	Entry             *domain.LedgerEntry
	BalanceMicrocents decimal.Decimal
}

func (s *Service) EnsureCreditAccount(ctx context.Context, userID string) (*domain.CreditAccount, error) {
	if err := s.repo.InsertAccountIfAbsent(ctx, userID); err != nil {
		zap.L().Error("failed to ensure credit account", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		zap.L().Error("failed to read credit account", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return account, nil
}

// GetCreditAccount reads an account without creating it.
func (s *Service) GetCreditAccount(ctx context.Context, userID string) (*domain.CreditAccount, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		zap.L().Error("failed to read credit account", zap.String("user_id", userID), zap.Error(err))
	}
	return account, err
}

// ApplyCreditDelta appends one ledger entry and moves the balance by the same
// amount, atomically. It returns the balance after the move. Insufficient
// funds never block a delta.
func (s *Service) ApplyCreditDelta(ctx context.Context, in CreditDeltaInput) (decimal.Decimal, error) {
	_, balance, err := s.apply(ctx, in)
	return balance, err
}

func (s *Service) apply(ctx context.Context, in CreditDeltaInput) (*domain.LedgerEntry, decimal.Decimal, error) {
	if in.AmountMicrocents.IsZero() {
		return nil, decimal.Zero, fmt.Errorf("%w: delta must be nonzero", domain.ErrInvalidAmount)
	}
	if !in.AmountMicrocents.IsInteger() {
		return nil, decimal.Zero, fmt.Errorf("%w: delta %s is not a whole number of microcents", domain.ErrInvalidAmount, in.AmountMicrocents)
	}
	if err := currency.CheckRange(in.AmountMicrocents); err != nil {
		return nil, decimal.Zero, err
	}
	if !in.EntryType.Valid() {
		return nil, decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidEntryType, in.EntryType)
	}

	entry := &domain.LedgerEntry{
		ID:               in.EntryID,
		UserID:           in.UserID,
		AmountMicrocents: in.AmountMicrocents,
		EntryType:        in.EntryType,
		Reason:           in.Reason,
		ExternalSource:   in.ExternalSource,
		Metadata:         in.Metadata,
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	balance, err := s.repo.ApplyDelta(ctx, entry)
	if err != nil {
		zap.L().Error("failed to apply credit delta",
			zap.String("user_id", in.UserID),
			zap.String("entry_type", string(in.EntryType)),
			zap.Stringer("amount_microcents", in.AmountMicrocents),
			zap.Error(err),
		)
		return nil, decimal.Zero, err
	}
	return entry, balance, nil
}

func (s *Service) ListCreditLedger(ctx context.Context, userID string, opts ListOptions) ([]domain.LedgerEntry, error) {
	opts = opts.Normalize()
	entries, err := s.repo.ListEntries(ctx, userID, opts.Limit, opts.Offset)
	if err != nil {
		zap.L().Error("failed to list credit ledger", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return entries, nil
}

// UpdateCreditAccountSettings persists auto-reload settings. When disabled,
// stored threshold and amount are cleared.
func (s *Service) UpdateCreditAccountSettings(ctx context.Context, userID string, settings domain.AccountSettings) (*domain.CreditAccount, error) {
	normalized, err := validateSettings(settings)
	if err != nil {
		return nil, err
	}
	account, err := s.repo.UpdateSettings(ctx, userID, normalized)
	if err != nil {
		zap.L().Error("failed to update credit account settings", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return account, nil
}

func validateSettings(settings domain.AccountSettings) (domain.AccountSettings, error) {
	if !settings.AutoReloadEnabled {
		return domain.AccountSettings{}, nil
	}

	threshold, amount := settings.AutoReloadThresholdMicrocents, settings.AutoReloadAmountMicrocents
	switch {
	case threshold == nil:
		return settings, fmt.Errorf("%w: auto-reload threshold is required", domain.ErrInvalidSettings)
	case amount == nil:
		return settings, fmt.Errorf("%w: auto-reload amount is required", domain.ErrInvalidSettings)
	case threshold.Sign() < 0 || !threshold.IsInteger():
		return settings, fmt.Errorf("%w: auto-reload threshold must be a nonnegative whole microcent value", domain.ErrInvalidSettings)
	case amount.Sign() <= 0 || !amount.IsInteger():
		return settings, fmt.Errorf("%w: auto-reload amount must be a positive whole microcent value", domain.ErrInvalidSettings)
	}
	if err := currency.CheckRange(*threshold); err != nil {
		return settings, fmt.Errorf("auto-reload threshold: %w", err)
	}
	if err := currency.CheckRange(*amount); err != nil {
		return settings, fmt.Errorf("auto-reload amount: %w", err)
	}
	return settings, nil
}

// ReconcileCreditAccount compares the stored balance with the ledger sum.
// Reads are not locked, so a delta committing in between shows up as a
// transient mismatch.
func (s *Service) ReconcileCreditAccount(ctx context.Context, userID string) (Reconciliation, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return Reconciliation{}, err
	}
	sum, count, err := s.repo.SumEntries(ctx, userID)
	if err != nil {
		zap.L().Error("failed to sum credit ledger", zap.String("user_id", userID), zap.Error(err))
		return Reconciliation{}, err
	}

	result := Reconciliation{
		UserID:              userID,
		BalanceMicrocents:   account.BalanceMicrocents,
		LedgerSumMicrocents: sum,
		EntryCount:          count,
	}
	if !result.Consistent() {
		zap.L().Warn("credit balance differs from ledger sum",
			zap.String("user_id", userID),
			zap.Stringer("balance_microcents", result.BalanceMicrocents),
			zap.Stringer("ledger_sum_microcents", result.LedgerSumMicrocents),
		)
	}
	return result, nil
}

// ChargeUsage prices a gateway cost and debits the rounded total. A total of
// zero cents writes nothing.
func (s *Service) ChargeUsage(ctx context.Context, userID string, costUsd any, in ChargeInput) (ChargeResult, error) {
	breakdown, err := pricing.PriceGatewayCost(costUsd, s.pricing)
	if err != nil {
		return ChargeResult{}, err
	}

	result := ChargeResult{Breakdown: breakdown, ChargedMicrocents: decimal.Zero}
	if breakdown.TotalCents == 0 {
		return result, nil
	}

	metadata := breakdown.Metadata()
	if in.GenerationID != "" {
		metadata["generationId"] = in.GenerationID
	}
	if in.Model != "" {
		metadata["model"] = in.Model
	}
	reason := in.Reason
	if reason == "" {
		reason = usageReason
	}

	charged := currency.CentsToMicrocents(breakdown.TotalCents)
	entry, balance, err := s.apply(ctx, CreditDeltaInput{
		UserID:           userID,
		AmountMicrocents: charged.Neg(),
		EntryType:        domain.EntryTypeCharge,
		Reason:           reason,
		ExternalSource:   in.GenerationID,
		Metadata:         metadata,
	})
	if err != nil {
		return ChargeResult{}, err
	}

	result.ChargedMicrocents = charged
	result.Entry = entry
	result.BalanceMicrocents = balance
	return result, nil
}

// AdjustCredits applies a signed USD admin adjustment.
func (s *Service) AdjustCredits(ctx context.Context, userID, amountUsd, reason, actor string) (*domain.LedgerEntry, decimal.Decimal, error) {
	amount, err := currency.ParseSignedUsdToMicrocents(amountUsd)
	if err != nil {
		return nil, decimal.Zero, err
	}

	entry, balance, err := s.apply(ctx, CreditDeltaInput{
		UserID:           userID,
		AmountMicrocents: amount,
		EntryType:        domain.EntryTypeAdjustment,
		Reason:           reason,
		ExternalSource:   adminSource,
		Metadata:         map[string]any{"actor": actor, "amountUsd": currency.FormatMicrocentsUsd(amount)},
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	zap.L().Info("credits adjusted",
		zap.String("user_id", userID),
		zap.String("actor", actor),
		zap.Stringer("amount_microcents", amount),
	)
	return entry, balance, nil
}

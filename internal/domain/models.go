package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const CurrencyUSD = "USD"

type EntryType string

const (
	EntryTypeCharge     EntryType = "charge"
	EntryTypeAdjustment EntryType = "adjustment"
	EntryTypeAutoReload EntryType = "auto_reload"
	EntryTypePurchase   EntryType = "purchase"
	EntryTypeRefund     EntryType = "refund"
)

func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeCharge, EntryTypeAdjustment, EntryTypeAutoReload, EntryTypePurchase, EntryTypeRefund:
		return true
	}
	return false
}

// CreditAccount is the materialized projection of a user's ledger. Balance is
// only ever changed as a side effect of inserting a LedgerEntry.
type CreditAccount struct {
	ID                            int64            `db:"id"`
	UserID                        string           `db:"user_id"`
	BalanceMicrocents             decimal.Decimal  `db:"balance_microcents"`
	Currency                      string           `db:"currency"`
	AutoReloadEnabled             bool             `db:"auto_reload_enabled"`
	AutoReloadThresholdMicrocents *decimal.Decimal `db:"auto_reload_threshold_microcents"`
	AutoReloadAmountMicrocents    *decimal.Decimal `db:"auto_reload_amount_microcents"`
	CreatedAt                     time.Time        `db:"created_at"`
	UpdatedAt                     time.Time        `db:"updated_at"`
}

type LedgerEntry struct {
	ID               uuid.UUID       `db:"id"`
	UserID           string          `db:"user_id"`
	AmountMicrocents decimal.Decimal `db:"amount_microcents"`
	EntryType        EntryType       `db:"entry_type"`
	Reason           string          `db:"reason"`
	ExternalSource   string          `db:"external_source"`
	Metadata         map[string]any  `db:"metadata"`
	CreatedAt        time.Time       `db:"created_at"`
}

type AccountSettings struct {
	AutoReloadEnabled             bool
	AutoReloadThresholdMicrocents *decimal.Decimal
	AutoReloadAmountMicrocents    *decimal.Decimal
}

type UsageStatus string

const (
	UsageStatusNew     UsageStatus = "NEW"
	UsageStatusCharged UsageStatus = "CHARGED"
	UsageStatusInvalid UsageStatus = "INVALID"
)

// UsageCharge is a completed generation waiting for (or settled with) its
// gateway-reported cost.
type UsageCharge struct {
	ID              int64            `db:"id"`
	UserID          string           `db:"user_id"`
	GenerationID    string           `db:"generation_id"`
	Model           string           `db:"model"`
	Status          UsageStatus      `db:"status"`
	CostUsd         *string          `db:"cost_usd"`
	TotalMicrocents *decimal.Decimal `db:"total_microcents"`
	LedgerEntryID   *uuid.UUID       `db:"ledger_entry_id"`
	CreatedAt       time.Time        `db:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at"`
}

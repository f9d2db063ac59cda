package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/creditmeter/internal/currency"
	"github.com/GlebRadaev/creditmeter/internal/domain"
)

// CreditAccountDTO is the wire form of a credit account. Microcent values are
// decimal strings so no client parses them as floats.
type CreditAccountDTO struct {
	UserID                        string    `json:"userId" example:"64f1c0de"`
	Currency                      string    `json:"currency" example:"USD"`
	BalanceMicrocents             string    `json:"balanceMicrocents" example:"3850000"`
	BalanceUsd                    string    `json:"balanceUsd" example:"0.0385"`
	AutoReloadEnabled             bool      `json:"autoReloadEnabled" example:"false"`
	AutoReloadThresholdMicrocents *string   `json:"autoReloadThresholdMicrocents" example:"100000000"`
	AutoReloadAmountMicrocents    *string   `json:"autoReloadAmountMicrocents" example:"1000000000"`
	CreatedAt                     time.Time `json:"createdAt" example:"2024-06-01T12:00:00Z"`
	UpdatedAt                     time.Time `json:"updatedAt" example:"2024-06-01T12:00:00Z"`
}

func SerializeCreditAccount(account *domain.CreditAccount) CreditAccountDTO {
	return CreditAccountDTO{
		UserID:                        account.UserID,
		Currency:                      account.Currency,
		BalanceMicrocents:             account.BalanceMicrocents.String(),
		BalanceUsd:                    currency.FormatMicrocentsUsd(account.BalanceMicrocents),
		AutoReloadEnabled:             account.AutoReloadEnabled,
		AutoReloadThresholdMicrocents: decimalString(account.AutoReloadThresholdMicrocents),
		AutoReloadAmountMicrocents:    decimalString(account.AutoReloadAmountMicrocents),
		CreatedAt:                     account.CreatedAt,
		UpdatedAt:                     account.UpdatedAt,
	}
}

type LedgerEntryDTO struct {
	ID               string         `json:"id" example:"4f1c2a1e-8d53-4b3f-9a55-0d6b1c8b1e11"`
	AmountMicrocents string         `json:"amountMicrocents" example:"-1150000"`
	EntryType        string         `json:"entryType" example:"charge"`
	Reason           string         `json:"reason" example:"usage"`
	ExternalSource   string         `json:"externalSource" example:"gen-123"`
	Metadata         map[string]any `json:"metadata"`
	CreatedAt        time.Time      `json:"createdAt" example:"2024-06-01T12:00:00Z"`
}

func SerializeLedgerEntry(entry domain.LedgerEntry) LedgerEntryDTO {
	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return LedgerEntryDTO{
		ID:               entry.ID.String(),
		AmountMicrocents: entry.AmountMicrocents.String(),
		EntryType:        string(entry.EntryType),
		Reason:           entry.Reason,
		ExternalSource:   entry.ExternalSource,
		Metadata:         metadata,
		CreatedAt:        entry.CreatedAt,
	}
}

type LedgerResponseDTO struct {
	Entries []LedgerEntryDTO `json:"entries"`
	Limit   int              `json:"limit" example:"50"`
	Offset  int              `json:"offset" example:"0"`
}

func SerializeLedger(entries []domain.LedgerEntry, limit, offset int) LedgerResponseDTO {
	response := LedgerResponseDTO{
		Entries: make([]LedgerEntryDTO, len(entries)),
		Limit:   limit,
		Offset:  offset,
	}
	for i, e := range entries {
		response.Entries[i] = SerializeLedgerEntry(e)
	}
	return response
}

type UpdateSettingsRequestDTO struct {
	AutoReloadEnabled             bool    `json:"autoReloadEnabled" example:"true"`
	AutoReloadThresholdMicrocents *string `json:"autoReloadThresholdMicrocents,omitempty" validate:"omitempty,numeric" example:"100000000"`
	AutoReloadAmountMicrocents    *string `json:"autoReloadAmountMicrocents,omitempty" validate:"omitempty,numeric" example:"1000000000"`
}

// ToDomain parses the microcent strings. Range and presence rules are left to
// the credit service.
func (r UpdateSettingsRequestDTO) ToDomain() (domain.AccountSettings, error) {
	threshold, err := parseMicrocents(r.AutoReloadThresholdMicrocents)
	if err != nil {
		return domain.AccountSettings{}, fmt.Errorf("%w: threshold: %w", domain.ErrInvalidSettings, err)
	}
	amount, err := parseMicrocents(r.AutoReloadAmountMicrocents)
	if err != nil {
		return domain.AccountSettings{}, fmt.Errorf("%w: amount: %w", domain.ErrInvalidSettings, err)
	}
	return domain.AccountSettings{
		AutoReloadEnabled:             r.AutoReloadEnabled,
		AutoReloadThresholdMicrocents: threshold,
		AutoReloadAmountMicrocents:    amount,
	}, nil
}

type AdjustmentRequestDTO struct {
	AmountUsd string `json:"amountUsd" validate:"required,numeric" example:"-1.25"`
	Reason    string `json:"reason" validate:"required,max=500" example:"goodwill credit"`
}

type AdjustmentResponseDTO struct {
	Entry             LedgerEntryDTO `json:"entry"`
	BalanceMicrocents string         `json:"balanceMicrocents" example:"3850000"`
}

type ReconciliationDTO struct {
	UserID              string `json:"userId" example:"64f1c0de"`
	BalanceMicrocents   string `json:"balanceMicrocents" example:"3850000"`
	LedgerSumMicrocents string `json:"ledgerSumMicrocents" example:"3850000"`
	EntryCount          int64  `json:"entryCount" example:"2"`
	Consistent          bool   `json:"consistent" example:"true"`
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseMicrocents(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	if !d.IsInteger() {
		return nil, fmt.Errorf("%s is not a whole number of microcents", *s)
	}
	return &d, nil
}

package dto

import (
	"time"

	"github.com/GlebRadaev/creditmeter/internal/domain"
)

type SubmitUsageRequestDTO struct {
	GenerationID string  `json:"generationId" validate:"required,max=255" example:"gen-1718000000-abc"`
	Model        string  `json:"model" validate:"max=255" example:"openai/gpt-4o"`
	CostUsd      *string `json:"costUsd,omitempty" example:"0.0034"`
}

type UsageChargeDTO struct {
	GenerationID    string    `json:"generationId" example:"gen-1718000000-abc"`
	Model           string    `json:"model" example:"openai/gpt-4o"`
	Status          string    `json:"status" example:"CHARGED"`
	CostUsd         *string   `json:"costUsd,omitempty" example:"0.0034"`
	TotalMicrocents *string   `json:"totalMicrocents,omitempty" example:"1000000"`
	LedgerEntryID   *string   `json:"ledgerEntryId,omitempty" example:"4f1c2a1e-8d53-4b3f-9a55-0d6b1c8b1e11"`
	CreatedAt       time.Time `json:"createdAt" example:"2024-06-01T12:00:00Z"`
}

func SerializeUsageCharge(charge *domain.UsageCharge) UsageChargeDTO {
	response := UsageChargeDTO{
		GenerationID:    charge.GenerationID,
		Model:           charge.Model,
		Status:          string(charge.Status),
		CostUsd:         charge.CostUsd,
		TotalMicrocents: decimalString(charge.TotalMicrocents),
		CreatedAt:       charge.CreatedAt,
	}
	if charge.LedgerEntryID != nil {
		id := charge.LedgerEntryID.String()
		response.LedgerEntryID = &id
	}
	return response
}

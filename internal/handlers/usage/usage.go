package usage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/creditmeter/internal/domain"
	"github.com/GlebRadaev/creditmeter/internal/dto"
	"github.com/GlebRadaev/creditmeter/internal/handlers/httperr"
	"github.com/GlebRadaev/creditmeter/internal/service/usageservice"
	"github.com/GlebRadaev/creditmeter/pkg/auth"
	"github.com/GlebRadaev/creditmeter/pkg/utils"
	"github.com/GlebRadaev/creditmeter/pkg/validate"
)

//go:generate mockgen -source=usage.go -destination=mock_usage.go -package=usage
type Service interface {
	Submit(ctx context.Context, in usageservice.SubmitInput) (*domain.UsageCharge, error)
}

type UsageHandler struct {
	usageService Service
}

func New(usageService Service) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
	}
}

// SubmitGeneration godoc
//
//	@Summary		Record a finished generation
//	@Description	Called by the chat backend once a generation completes. costUsd is honoured only for admin (service) tokens, which settles the charge at once; for other callers it is ignored and the charge is left for the metering worker. Repeated submissions return the stored charge.
//	@Tags			Usage
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SubmitUsageRequestDTO	true	"Generation"
//	@Success		200		{object}	dto.UsageChargeDTO			"Charge settled"
//	@Success		202		{object}	dto.UsageChargeDTO			"Charge waiting for metering"
//	@Failure		400		{object}	utils.Response				"Invalid request"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		409		{object}	utils.Response				"Generation belongs to another user"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/usage/generations [post]
func (h *UsageHandler) SubmitGeneration(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	var req dto.SubmitUsageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httperr.Respond(w, err)
		return
	}

	in := usageservice.SubmitInput{
		UserID:       userID,
		GenerationID: req.GenerationID,
		Model:        req.Model,
	}
	// Only trusted service tokens may report a cost. Everyone else is billed
	// from the gateway by the metering worker.
	if admin, _ := r.Context().Value(auth.AdminKey).(bool); admin {
		in.CostUsd = req.CostUsd
	}

	charge, err := h.usageService.Submit(r.Context(), in)
	if err != nil {
		if errors.Is(err, usageservice.ErrGenerationOwner) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		httperr.Respond(w, err)
		return
	}

	status := http.StatusOK
	if charge.Status == domain.UsageStatusNew {
		status = http.StatusAccepted
	}
	utils.RespondWithJSON(w, status, dto.SerializeUsageCharge(charge))
}

package credits

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/creditmeter/internal/domain"
	"github.com/GlebRadaev/creditmeter/internal/dto"
	"github.com/GlebRadaev/creditmeter/internal/handlers/httperr"
	"github.com/GlebRadaev/creditmeter/internal/service/creditservice"
	"github.com/GlebRadaev/creditmeter/pkg/auth"
	"github.com/GlebRadaev/creditmeter/pkg/utils"
	"github.com/GlebRadaev/creditmeter/pkg/validate"
)

//go:generate mockgen -source=credits.go -destination=mock_credits.go -package=credits
type Service interface {
	EnsureCreditAccount(ctx context.Context, userID string) (*domain.CreditAccount, error)
	ListCreditLedger(ctx context.Context, userID string, opts creditservice.ListOptions) ([]domain.LedgerEntry, error)
	UpdateCreditAccountSettings(ctx context.Context, userID string, settings domain.AccountSettings) (*domain.CreditAccount, error)
}

type CreditsHandler struct {
	creditService Service
}

func New(creditService Service) *CreditsHandler {
	return &CreditsHandler{
		creditService: creditService,
	}
}

// GetAccount godoc
//
//	@Summary		Get credit account
//	@Description	Return the credit account of the authenticated user, creating an empty one on first access.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.CreditAccountDTO	"Credit account"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/credits [get]
func (h *CreditsHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	account, err := h.creditService.EnsureCreditAccount(r.Context(), userID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SerializeCreditAccount(account))
}

// GetLedger godoc
//
//	@Summary		List ledger entries
//	@Description	List ledger entries of the authenticated user, newest first.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int						false	"Page size (1-100, default 50)"
//	@Param			offset	query		int						false	"Entries to skip"
//	@Success		200		{object}	dto.LedgerResponseDTO	"Ledger page"
//	@Failure		400		{object}	utils.Response			"Invalid paging parameters"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/credits/ledger [get]
func (h *CreditsHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	var opts creditservice.ListOptions
	var err error
	if v := r.URL.Query().Get("limit"); v != "" {
		if opts.Limit, err = strconv.Atoi(v); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if opts.Offset, err = strconv.Atoi(v); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid offset")
			return
		}
	}
	opts = opts.Normalize()

	entries, err := h.creditService.ListCreditLedger(r.Context(), userID, opts)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SerializeLedger(entries, opts.Limit, opts.Offset))
}

// UpdateSettings godoc
//
//	@Summary		Update auto-reload settings
//	@Description	Enable or disable auto-reload. Threshold and amount are whole microcents given as strings.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.UpdateSettingsRequestDTO	true	"Settings"
//	@Success		200		{object}	dto.CreditAccountDTO			"Updated account"
//	@Failure		400		{object}	utils.Response					"Invalid settings"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/credits/settings [put]
func (h *CreditsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	var req dto.UpdateSettingsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httperr.Respond(w, err)
		return
	}
	settings, err := req.ToDomain()
	if err != nil {
		httperr.Respond(w, err)
		return
	}

	account, err := h.creditService.UpdateCreditAccountSettings(r.Context(), userID, settings)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SerializeCreditAccount(account))
}

package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/creditmeter/internal/domain"
	"github.com/GlebRadaev/creditmeter/internal/dto"
	"github.com/GlebRadaev/creditmeter/internal/handlers/httperr"
	"github.com/GlebRadaev/creditmeter/internal/service/creditservice"
	"github.com/GlebRadaev/creditmeter/pkg/auth"
	"github.com/GlebRadaev/creditmeter/pkg/utils"
	"github.com/GlebRadaev/creditmeter/pkg/validate"
)

//go:generate mockgen -source=admin.go -destination=mock_admin.go -package=admin
type Service interface {
	GetCreditAccount(ctx context.Context, userID string) (*domain.CreditAccount, error)
	AdjustCredits(ctx context.Context, userID, amountUsd, reason, actor string) (*domain.LedgerEntry, decimal.Decimal, error)
	ReconcileCreditAccount(ctx context.Context, userID string) (creditservice.Reconciliation, error)
}

type AdminHandler struct {
	creditService Service
}

func New(creditService Service) *AdminHandler {
	return &AdminHandler{
		creditService: creditService,
	}
}

// Adjust godoc
//
//	@Summary		Adjust user credits
//	@Description	Credit or debit a user's account by a signed USD amount. The acting admin is recorded in the entry metadata.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		string						true	"User ID"
//	@Param			request	body		dto.AdjustmentRequestDTO	true	"Adjustment"
//	@Success		201		{object}	dto.AdjustmentResponseDTO	"Entry written"
//	@Failure		400		{object}	utils.Response				"Invalid amount"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		403		{object}	utils.Response				"Not an admin"
//	@Failure		409		{object}	utils.Response				"Concurrent update, retry"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/credits/{userID}/adjustments [post]
func (h *AdminHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	actor := r.Context().Value(auth.UserIDKey).(string)
	userID := chi.URLParam(r, "userID")

	var req dto.AdjustmentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httperr.Respond(w, err)
		return
	}

	entry, balance, err := h.creditService.AdjustCredits(r.Context(), userID, req.AmountUsd, req.Reason, actor)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.AdjustmentResponseDTO{
		Entry:             dto.SerializeLedgerEntry(*entry),
		BalanceMicrocents: balance.String(),
	})
}

// GetAccount godoc
//
//	@Summary		Get a user's credit account
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userID	path		string					true	"User ID"
//	@Success		200		{object}	dto.CreditAccountDTO	"Credit account"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		403		{object}	utils.Response			"Not an admin"
//	@Failure		404		{object}	utils.Response			"Account not found"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/credits/{userID} [get]
func (h *AdminHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.creditService.GetCreditAccount(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SerializeCreditAccount(account))
}

// Reconcile godoc
//
//	@Summary		Reconcile balance with ledger
//	@Description	Compare the stored balance with the sum of all ledger entries. Read only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userID	path		string					true	"User ID"
//	@Success		200		{object}	dto.ReconciliationDTO	"Reconciliation result"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		403		{object}	utils.Response			"Not an admin"
//	@Failure		404		{object}	utils.Response			"Account not found"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/credits/{userID}/reconcile [get]
func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	rec, err := h.creditService.ReconcileCreditAccount(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ReconciliationDTO{
		UserID:              rec.UserID,
		BalanceMicrocents:   rec.BalanceMicrocents.String(),
		LedgerSumMicrocents: rec.LedgerSumMicrocents.String(),
		EntryCount:          rec.EntryCount,
		Consistent:          rec.Consistent(),
	})
}

package httperr

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/GlebRadaev/creditmeter/internal/domain"
	"github.com/GlebRadaev/creditmeter/pkg/utils"
	"github.com/GlebRadaev/creditmeter/pkg/validate"
)

// Respond writes the status matching a service error. Unknown errors are
// logged and reported as 500 without details.
func Respond(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err), errors.Is(err, validate.ErrInvalid):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrConcurrencyConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		zap.L().Error("request failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/ledger"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/staking"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/transfer"
)

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ok writes a success envelope.
func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, models.APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// fail writes an error envelope with an explicit status and code.
func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, models.APIResponse{
		Success:   false,
		Error:     &models.ErrorDetail{Code: code, Message: message},
		Timestamp: timestamp(),
	})
}

// failErr maps a service error onto the envelope. Domain precondition
// errors become 4xx with stable codes; ledger and auth failures surface
// the underlying detail verbatim.
func failErr(c echo.Context, err error) error {
	status, code := errorStatus(err)
	return fail(c, status, code, err.Error())
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, staking.ErrPoolNotFound):
		return http.StatusNotFound, "pool_not_found"
	case errors.Is(err, staking.ErrStakerNotAuthorized):
		return http.StatusForbidden, "staker_not_authorized"
	case errors.Is(err, staking.ErrHoldingNotFound):
		return http.StatusNotFound, "holding_not_found"
	case errors.Is(err, staking.ErrIssuerMismatch):
		return http.StatusBadRequest, "issuer_mismatch"
	case errors.Is(err, staking.ErrInsufficientBalance),
		errors.Is(err, transfer.ErrInsufficientBalance):
		return http.StatusBadRequest, "insufficient_balance"
	case errors.Is(err, staking.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid_amount"
	}

	var ledgerErr *ledger.LedgerError
	if errors.As(err, &ledgerErr) {
		code := ledgerErr.Code
		if code == "" {
			code = "ledger_error"
		}
		if ledgerErr.StatusCode >= http.StatusBadRequest {
			return ledgerErr.StatusCode, code
		}
		return http.StatusInternalServerError, code
	}

	var authErr *ledger.AuthError
	if errors.As(err, &authErr) {
		return http.StatusInternalServerError, "auth_error"
	}

	return http.StatusInternalServerError, "internal_error"
}

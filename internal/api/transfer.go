package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/transfer"
)

// TransferHandler serves direct transfer and transfer history endpoints.
type TransferHandler struct {
	service *transfer.Service
}

func NewTransferHandler(service *transfer.Service) *TransferHandler {
	return &TransferHandler{service: service}
}

// transferDirect handles POST /api/v1/transfer/direct
func (h *TransferHandler) transferDirect(c echo.Context) error {
	var req models.TransferRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_request", "invalid request body")
	}
	if req.Sender == "" || req.Receiver == "" {
		return fail(c, http.StatusBadRequest, "missing_fields", "sender and receiver are required")
	}
	if !req.Amount.IsPositive() {
		return fail(c, http.StatusBadRequest, "invalid_amount", "amount must be greater than zero")
	}

	result, err := h.service.DirectTransfer(c.Request().Context(), req.Sender, req.Receiver, req.Amount)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, result)
}

// getHistory handles GET /api/v1/transfer/history/:partyId
func (h *TransferHandler) getHistory(c echo.Context) error {
	partyID := c.Param("partyId")
	if partyID == "" {
		return fail(c, http.StatusBadRequest, "missing_party", "party id is required")
	}

	result, err := h.service.History(c.Request().Context(), partyID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, result)
}

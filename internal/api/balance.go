package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/balance"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
)

// BalanceHandler serves balance and contract listing endpoints.
type BalanceHandler struct {
	service *balance.Service
}

func NewBalanceHandler(service *balance.Service) *BalanceHandler {
	return &BalanceHandler{service: service}
}

// getAllBalances handles GET /api/v1/balance
func (h *BalanceHandler) getAllBalances(c echo.Context) error {
	result, err := h.service.CheckBalance(c.Request().Context(), "", "")
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, result)
}

// getBalanceByOwner handles GET /api/v1/balance/:owner
func (h *BalanceHandler) getBalanceByOwner(c echo.Context) error {
	owner := c.Param("owner")
	if owner == "" {
		return fail(c, http.StatusBadRequest, "missing_owner", "owner address is required")
	}

	result, err := h.service.CheckBalance(c.Request().Context(), "", owner)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, result)
}

// advancedQuery handles POST /api/v1/balance/query
func (h *BalanceHandler) advancedQuery(c echo.Context) error {
	var req models.BalanceQueryRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_request", "invalid request body")
	}

	result, err := h.service.CheckBalance(c.Request().Context(), req.PartyID, req.OwnerAddress)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, result)
}

// contractsByOwnerResult narrows a balance result to the contract details.
type contractsByOwnerResult struct {
	Contracts    []models.Holding `json:"contracts"`
	Count        int              `json:"count"`
	TotalBalance decimal.Decimal  `json:"totalBalance"`
}

// getContractsByOwner handles GET /api/v1/contracts/:owner
func (h *BalanceHandler) getContractsByOwner(c echo.Context) error {
	owner := c.Param("owner")
	if owner == "" {
		return fail(c, http.StatusBadRequest, "missing_owner", "owner address is required")
	}

	result, err := h.service.CheckBalance(c.Request().Context(), "", owner)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, contractsByOwnerResult{
		Contracts:    result.Contracts,
		Count:        len(result.Contracts),
		TotalBalance: result.TotalBalance,
	})
}

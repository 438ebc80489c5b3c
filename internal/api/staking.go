package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/staking"
)

// StakingHandler serves pool, stake and holding endpoints.
type StakingHandler struct {
	service *staking.Service
}

func NewStakingHandler(service *staking.Service) *StakingHandler {
	return &StakingHandler{service: service}
}

// getConfig handles GET /api/v1/staking/config
func (h *StakingHandler) getConfig(c echo.Context) error {
	return ok(c, h.service.Config())
}

// getLedgerEnd handles GET /api/v1/staking/ledger-end
func (h *StakingHandler) getLedgerEnd(c echo.Context) error {
	offset, err := h.service.LedgerEnd(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]models.Offset{"offset": offset})
}

// createPool handles POST /api/v1/staking/pool/create
func (h *StakingHandler) createPool(c echo.Context) error {
	var req models.CreatePoolRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_request", "invalid request body")
	}

	result, err := h.service.CreatePool(c.Request().Context(), req.Issuer)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, result)
}

// addStaker handles POST /api/v1/staking/pool/add-staker
func (h *StakingHandler) addStaker(c echo.Context) error {
	var req models.AddStakerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_request", "invalid request body")
	}
	if req.PoolContractID == "" || req.NewStaker == "" {
		return fail(c, http.StatusBadRequest, "missing_fields", "poolContractId and newStaker are required")
	}

	result, err := h.service.AddStaker(c.Request().Context(), req.PoolContractID, req.NewStaker)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, result)
}

// getPool handles GET /api/v1/staking/pool/:poolContractId
func (h *StakingHandler) getPool(c echo.Context) error {
	poolContractID := c.Param("poolContractId")
	if poolContractID == "" {
		return fail(c, http.StatusBadRequest, "missing_pool", "pool contract id is required")
	}

	pool, err := h.service.GetPool(c.Request().Context(), poolContractID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, pool)
}

// getPools handles GET /api/v1/staking/pools
func (h *StakingHandler) getPools(c echo.Context) error {
	result, err := h.service.ListPools(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, result)
}

// deposit handles POST /api/v1/staking/pool/deposit
func (h *StakingHandler) deposit(c echo.Context) error {
	var req models.DepositRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_request", "invalid request body")
	}
	if req.PoolContractID == "" || req.Staker == "" || req.HoldingCid == "" || req.Amount == "" {
		return fail(c, http.StatusBadRequest, "missing_fields",
			"poolContractId, staker, holdingCid and amount are required")
	}

	result, err := h.service.Deposit(c.Request().Context(), staking.DepositParams{
		PoolContractID: req.PoolContractID,
		Staker:         req.Staker,
		HoldingCid:     req.HoldingCid,
		Amount:         req.Amount,
	})
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, result)
}

// withdraw handles POST /api/v1/staking/stake/withdraw
func (h *StakingHandler) withdraw(c echo.Context) error {
	var req models.WithdrawRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_request", "invalid request body")
	}
	if req.StakeContractID == "" || req.Staker == "" {
		return fail(c, http.StatusBadRequest, "missing_fields", "stakeContractId and staker are required")
	}

	result, err := h.service.Withdraw(c.Request().Context(), req.StakeContractID, req.Staker)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, result)
}

// getStakes handles GET /api/v1/staking/stakes
func (h *StakingHandler) getStakes(c echo.Context) error {
	result, err := h.service.ListStakes(c.Request().Context(), c.QueryParam("staker"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, result)
}

// getHoldings handles GET /api/v1/staking/holdings
func (h *StakingHandler) getHoldings(c echo.Context) error {
	result, err := h.service.ListHoldings(c.Request().Context(), c.QueryParam("owner"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, result)
}

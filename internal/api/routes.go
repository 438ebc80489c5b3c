package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(e *echo.Echo, balance *BalanceHandler, staking *StakingHandler, transfer *TransferHandler) {
	// Health check
	e.GET("/health", healthCheck)

	// API v1 routes
	v1 := e.Group("/api/v1")

	// Balance routes
	v1.GET("/balance", balance.getAllBalances)
	v1.GET("/balance/:owner", balance.getBalanceByOwner)
	v1.POST("/balance/query", balance.advancedQuery)
	v1.GET("/contracts/:owner", balance.getContractsByOwner)

	// Staking routes
	stake := v1.Group("/staking")
	stake.GET("/config", staking.getConfig)
	stake.GET("/ledger-end", staking.getLedgerEnd)
	stake.POST("/pool/create", staking.createPool)
	stake.POST("/pool/add-staker", staking.addStaker)
	stake.GET("/pool/:poolContractId", staking.getPool)
	stake.GET("/pools", staking.getPools)
	stake.POST("/pool/deposit", staking.deposit)
	stake.POST("/stake/withdraw", staking.withdraw)
	stake.GET("/stakes", staking.getStakes)
	stake.GET("/holdings", staking.getHoldings)

	// Transfer routes
	xfer := v1.Group("/transfer")
	xfer.POST("/direct", transfer.transferDirect)
	xfer.GET("/history/:partyId", transfer.getHistory)
}

// healthCheck returns the health status of the service
func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Ledger gateway is healthy",
		Data: map[string]string{
			"status":  "ok",
			"service": "ledger-gateway",
		},
		Timestamp: timestamp(),
	})
}

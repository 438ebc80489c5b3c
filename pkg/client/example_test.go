package client_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kshitijjpd/ALPENDBACKEND/pkg/client"
)

// Example demonstrates the staking workflow against a running gateway.
// This is documentation only and does not run.
func Example() {
	// Create a new client
	c, err := client.New("http://localhost:3001",
		client.WithTimeout(30*time.Second),
		client.WithUserAgent("example-app/1.0"),
	)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx := context.Background()

	// Check service health
	if err := c.HealthCheck(ctx); err != nil {
		log.Fatalf("Service unhealthy: %v", err)
	}

	// Step 1: Create a staking pool (issuer defaults to the coin issuer)
	pool, err := c.CreatePool(ctx, "")
	if err != nil {
		log.Fatalf("Failed to create pool: %v", err)
	}
	fmt.Printf("Pool created: %s\n", pool.ContractID)

	// Step 2: Authorize a staker on the pool. The exercise archives the
	// pool and creates a successor contract; later calls must use the
	// new contract id.
	staker := "staker::12203f0e...c1"
	added, err := c.AddStaker(ctx, pool.ContractID, staker)
	if err != nil {
		log.Fatalf("Failed to add staker: %v", err)
	}
	fmt.Printf("Staker added, pool is now: %s\n", added.NewPoolContractID)

	// Step 3: Find a holding of the staker to deposit
	holdings, err := c.Holdings(ctx, staker)
	if err != nil {
		log.Fatalf("Failed to list holdings: %v", err)
	}
	if holdings.Count == 0 {
		log.Fatal("Staker has no holdings")
	}
	holding := holdings.Holdings[0]

	// Step 4: Deposit into the pool
	deposit, err := c.Deposit(ctx, added.NewPoolContractID, staker, holding.ContractID, "100")
	if err != nil {
		if apiErr, ok := err.(*client.APIError); ok {
			if apiErr.IsForbidden() {
				log.Fatalf("Staker not authorized: %v", err)
			}
			if apiErr.IsNotFound() {
				log.Fatalf("Pool or holding gone: %v", err)
			}
		}
		log.Fatalf("Failed to deposit: %v", err)
	}
	fmt.Printf("Stake created: %s\n", deposit.StakeContractID)

	// Step 5: Later, withdraw the stake back into a holding
	withdrawn, err := c.Withdraw(ctx, deposit.StakeContractID, staker)
	if err != nil {
		log.Fatalf("Failed to withdraw: %v", err)
	}
	fmt.Printf("Holding restored: %s\n", withdrawn.HoldingContractID)
}

// Example_transfer demonstrates a direct transfer between two parties.
// This is documentation only and does not run.
func Example_transfer() {
	c, err := client.New("http://localhost:3001")
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx := context.Background()
	sender := "alice::1220ab...01"
	receiver := "bob::1220cd...02"

	amount := decimal.RequireFromString("2.5")
	result, err := c.Transfer(ctx, sender, receiver, amount)
	if err != nil {
		if apiErr, ok := err.(*client.APIError); ok && apiErr.IsBadRequest() {
			log.Fatalf("Transfer rejected: %v", err)
		}
		log.Fatalf("Failed to transfer: %v", err)
	}

	fmt.Printf("Transfer %s, update %s\n",
		result.TransactionDetails.Status, result.TransactionDetails.UpdateID)
	for _, contract := range result.NewContracts {
		fmt.Printf("  new holding %s: %s %s -> %s\n",
			contract.ContractID, contract.Amount, contract.Symbol, contract.Owner)
	}
}

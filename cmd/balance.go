package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// balanceCmd represents the balance command
var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Balance query commands",
	Long:  `Commands for querying holding balances through the gateway.`,
}

// balanceGetCmd represents the balance get command
var balanceGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Get balances",
	Long: `Get the balance summary for the gateway operator party,
optionally filtered to a single owner.`,
	RunE: runBalanceGet,
}

// balanceQueryCmd represents the balance query command
var balanceQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Advanced balance query",
	Long:  `Query balances with an explicit ledger party and owner filter.`,
	RunE:  runBalanceQuery,
}

// contractsCmd represents the contracts command
var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "List holding contracts for an owner",
	RunE:  runContracts,
}

var (
	ownerFlag string
	partyFlag string
)

func init() {
	clientCmd.AddCommand(balanceCmd)
	balanceCmd.AddCommand(balanceGetCmd)
	balanceCmd.AddCommand(balanceQueryCmd)
	balanceCmd.AddCommand(contractsCmd)

	balanceGetCmd.Flags().StringVar(&ownerFlag, "owner", "", "owner party to filter by")

	balanceQueryCmd.Flags().StringVar(&partyFlag, "party", "", "ledger party to query as")
	balanceQueryCmd.Flags().StringVar(&ownerFlag, "owner", "", "owner party to filter by")

	contractsCmd.Flags().StringVar(&ownerFlag, "owner", "", "owner party (required)")
	contractsCmd.MarkFlagRequired("owner")
}

func runBalanceGet(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	if ownerFlag != "" {
		resp, err := c.BalanceByOwner(newContext(), ownerFlag)
		if err != nil {
			return fmt.Errorf("getting balance: %w", err)
		}
		return printJSON(resp)
	}

	resp, err := c.Balances(newContext())
	if err != nil {
		return fmt.Errorf("getting balances: %w", err)
	}
	return printJSON(resp)
}

func runBalanceQuery(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	resp, err := c.QueryBalance(newContext(), partyFlag, ownerFlag)
	if err != nil {
		return fmt.Errorf("querying balance: %w", err)
	}
	return printJSON(resp)
}

func runContracts(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	resp, err := c.ContractsByOwner(newContext(), ownerFlag)
	if err != nil {
		return fmt.Errorf("getting contracts: %w", err)
	}
	return printJSON(resp)
}

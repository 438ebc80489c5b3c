package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kshitijjpd/ALPENDBACKEND/pkg/client"
)

// stakingCmd represents the staking command
var stakingCmd = &cobra.Command{
	Use:   "staking",
	Short: "Staking pool commands",
	Long:  `Commands for managing staking pools, stakes, and holdings.`,
}

var stakingConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the gateway staking configuration",
	RunE:  runStakingConfig,
}

var poolCreateCmd = &cobra.Command{
	Use:   "create-pool",
	Short: "Create a new staking pool",
	Long: `Create a staking pool operated by the gateway operator.
Without --issuer the gateway's configured coin issuer is used.`,
	RunE: runPoolCreate,
}

var addStakerCmd = &cobra.Command{
	Use:   "add-staker",
	Short: "Authorize a staker on a pool",
	RunE:  runAddStaker,
}

var poolsCmd = &cobra.Command{
	Use:   "pools",
	Short: "List active staking pools",
	RunE:  runPools,
}

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Deposit a holding into a pool",
	Long: `Deposit a coin holding into a staking pool.

The gateway verifies the pool exists, the staker is authorized, the
holding belongs to the staker, issuers match, and the holding covers
the amount before exercising the deposit.`,
	RunE: runDeposit,
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Withdraw a stake",
	RunE:  runWithdraw,
}

var stakesCmd = &cobra.Command{
	Use:   "stakes",
	Short: "List active stakes",
	RunE:  runStakes,
}

var holdingsCmd = &cobra.Command{
	Use:   "holdings",
	Short: "List active holdings",
	RunE:  runHoldings,
}

var (
	issuerFlag     string
	poolCidFlag    string
	stakerFlag     string
	holdingCidFlag string
	amountFlag     string
	stakeCidFlag   string
)

func init() {
	clientCmd.AddCommand(stakingCmd)
	stakingCmd.AddCommand(stakingConfigCmd)
	stakingCmd.AddCommand(poolCreateCmd)
	stakingCmd.AddCommand(addStakerCmd)
	stakingCmd.AddCommand(poolsCmd)
	stakingCmd.AddCommand(depositCmd)
	stakingCmd.AddCommand(withdrawCmd)
	stakingCmd.AddCommand(stakesCmd)
	stakingCmd.AddCommand(holdingsCmd)

	poolCreateCmd.Flags().StringVar(&issuerFlag, "issuer", "", "issuer party for the pool")

	addStakerCmd.Flags().StringVar(&poolCidFlag, "pool", "", "pool contract ID (required)")
	addStakerCmd.Flags().StringVar(&stakerFlag, "staker", "", "staker party to authorize (required)")
	addStakerCmd.MarkFlagRequired("pool")
	addStakerCmd.MarkFlagRequired("staker")

	depositCmd.Flags().StringVar(&poolCidFlag, "pool", "", "pool contract ID (required)")
	depositCmd.Flags().StringVar(&stakerFlag, "staker", "", "staker party (required)")
	depositCmd.Flags().StringVar(&holdingCidFlag, "holding", "", "holding contract ID (required)")
	depositCmd.Flags().StringVar(&amountFlag, "amount", "", "amount to deposit (required)")
	depositCmd.MarkFlagRequired("pool")
	depositCmd.MarkFlagRequired("staker")
	depositCmd.MarkFlagRequired("holding")
	depositCmd.MarkFlagRequired("amount")

	withdrawCmd.Flags().StringVar(&stakeCidFlag, "stake", "", "stake contract ID (required)")
	withdrawCmd.Flags().StringVar(&stakerFlag, "staker", "", "staker party (required)")
	withdrawCmd.MarkFlagRequired("stake")
	withdrawCmd.MarkFlagRequired("staker")

	stakesCmd.Flags().StringVar(&stakerFlag, "staker", "", "staker party to filter by")

	holdingsCmd.Flags().StringVar(&ownerFlag, "owner", "", "owner party to filter by")
}

func runStakingConfig(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	resp, err := c.StakingConfig(newContext())
	if err != nil {
		return fmt.Errorf("getting staking config: %w", err)
	}
	return printJSON(resp)
}

func runPoolCreate(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	resp, err := c.CreatePool(newContext(), issuerFlag)
	if err != nil {
		return fmt.Errorf("creating pool: %w", err)
	}
	return printJSON(resp)
}

func runAddStaker(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	resp, err := c.AddStaker(newContext(), poolCidFlag, stakerFlag)
	if err != nil {
		if apiErr, ok := err.(*client.APIError); ok && apiErr.IsNotFound() {
			return fmt.Errorf("pool not found: %w", err)
		}
		return fmt.Errorf("adding staker: %w", err)
	}
	return printJSON(resp)
}

func runPools(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	resp, err := c.Pools(newContext())
	if err != nil {
		return fmt.Errorf("getting pools: %w", err)
	}
	return printJSON(resp)
}

func runDeposit(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	resp, err := c.Deposit(newContext(), poolCidFlag, stakerFlag, holdingCidFlag, amountFlag)
	if err != nil {
		if apiErr, ok := err.(*client.APIError); ok {
			if apiErr.IsForbidden() {
				return fmt.Errorf("staker not authorized on pool: %w", err)
			}
			if apiErr.IsNotFound() {
				return fmt.Errorf("pool or holding not found: %w", err)
			}
		}
		return fmt.Errorf("depositing: %w", err)
	}
	return printJSON(resp)
}

func runWithdraw(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	resp, err := c.Withdraw(newContext(), stakeCidFlag, stakerFlag)
	if err != nil {
		return fmt.Errorf("withdrawing: %w", err)
	}
	return printJSON(resp)
}

func runStakes(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	resp, err := c.Stakes(newContext(), stakerFlag)
	if err != nil {
		return fmt.Errorf("getting stakes: %w", err)
	}
	return printJSON(resp)
}

func runHoldings(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	resp, err := c.Holdings(newContext(), ownerFlag)
	if err != nil {
		return fmt.Errorf("getting holdings: %w", err)
	}
	return printJSON(resp)
}

package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Kshitijjpd/ALPENDBACKEND/pkg/client"
)

// transferCmd represents the transfer command
var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer commands",
	Long:  `Commands for direct transfers and transfer history.`,
}

var transferSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Execute a direct transfer",
	Long: `Transfer an amount between two parties. The gateway picks the
first holding of the sender that covers the amount.`,
	RunE: runTransferSend,
}

var transferHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show transfer history for a party",
	RunE:  runTransferHistory,
}

var (
	senderFlag   string
	receiverFlag string
)

func init() {
	clientCmd.AddCommand(transferCmd)
	transferCmd.AddCommand(transferSendCmd)
	transferCmd.AddCommand(transferHistoryCmd)

	transferSendCmd.Flags().StringVar(&senderFlag, "sender", "", "sender party (required)")
	transferSendCmd.Flags().StringVar(&receiverFlag, "receiver", "", "receiver party (required)")
	transferSendCmd.Flags().StringVar(&amountFlag, "amount", "", "amount in display units (required)")
	transferSendCmd.MarkFlagRequired("sender")
	transferSendCmd.MarkFlagRequired("receiver")
	transferSendCmd.MarkFlagRequired("amount")

	transferHistoryCmd.Flags().StringVar(&partyFlag, "party", "", "party ID (required)")
	transferHistoryCmd.MarkFlagRequired("party")
}

func runTransferSend(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	amount, err := decimal.NewFromString(amountFlag)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountFlag, err)
	}

	resp, err := c.Transfer(newContext(), senderFlag, receiverFlag, amount)
	if err != nil {
		if apiErr, ok := err.(*client.APIError); ok && apiErr.IsBadRequest() {
			return fmt.Errorf("transfer rejected: %w", err)
		}
		return fmt.Errorf("transferring: %w", err)
	}
	return printJSON(resp)
}

func runTransferHistory(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	resp, err := c.TransferHistory(newContext(), partyFlag)
	if err != nil {
		return fmt.Errorf("getting transfer history: %w", err)
	}
	return printJSON(resp)
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kshitijjpd/ALPENDBACKEND/pkg/client"
)

var (
	apiURL  string
	timeout time.Duration
)

// clientCmd represents the client command
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Ledger gateway CLI client",
	Long: `CLI client for interacting with the gateway API.

Provides commands for balance queries, staking pool management,
deposits, withdrawals, and direct transfers.`,
}

func init() {
	rootCmd.AddCommand(clientCmd)

	// Client-specific flags
	clientCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:3001", "gateway API base URL")
	clientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
}

// newClient creates a configured gateway client
func newClient() (*client.Client, error) {
	baseURL := apiURL
	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}

	return client.New(baseURL,
		client.WithTimeout(timeout),
		client.WithUserAgent("ledger-gateway-cli/1.0"),
	)
}

// newContext creates a context for API calls
func newContext() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	_ = cancel // We'll let the client handle timeout
	return ctx
}

// printJSON pretty prints an API response
func printJSON(v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("formatting response: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

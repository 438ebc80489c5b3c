package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/api"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/balance"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/config"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/ledger"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/server"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/staking"
	"github.com/Kshitijjpd/ALPENDBACKEND/internal/transfer"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway HTTP server",
	Long:  `Start the ledger gateway HTTP server with configured endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := GetConfig().Validate(); err != nil {
			return err
		}

		app := fx.New(
			fx.Provide(
				// Configuration
				func() *config.Config { return GetConfig() },

				// Ledger access
				ledger.NewTokenSource,
				ledger.NewClient,

				// Services
				balance.New,
				staking.New,
				transfer.New,

				// Handlers and server
				api.NewBalanceHandler,
				api.NewStakingHandler,
				api.NewTransferHandler,
				server.New,
			),
			fx.Invoke(registerServer),
		)

		app.Run()
		return nil
	},
}

// registerServer ties the HTTP server to the fx application lifecycle.
func registerServer(lc fx.Lifecycle, srv *server.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil {
					srv.Echo().Logger.Fatal("server start failed: ", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().String("host", "0.0.0.0", "server host")
	serveCmd.Flags().Int("port", 3001, "server port")

	// Ledger flags
	serveCmd.Flags().String("ledger-url", "", "ledger JSON API base URL")
	serveCmd.Flags().String("operator-party", "", "default operator party")
	serveCmd.Flags().String("dso-party", "", "canton coin issuer party")

	cobra.CheckErr(v.BindPFlag("server.host", serveCmd.Flags().Lookup("host")))
	cobra.CheckErr(v.BindPFlag("server.port", serveCmd.Flags().Lookup("port")))
	cobra.CheckErr(v.BindPFlag("ledger.url", serveCmd.Flags().Lookup("ledger-url")))
	cobra.CheckErr(v.BindPFlag("ledger.operator_party", serveCmd.Flags().Lookup("operator-party")))
	cobra.CheckErr(v.BindPFlag("ledger.dso_party", serveCmd.Flags().Lookup("dso-party")))
}

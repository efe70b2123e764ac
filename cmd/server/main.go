package main

import (
	"fmt"
	"os"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/config"
	"github.com/spf13/cobra"
)

// @title MyFuel Transaction Processor API
// @version 1.0
// @description Webhook API that approves or rejects fuel card purchases against organization balances and card limits
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "myfuel",
		Short: "MyFuel fuel card transaction processor",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitViper(configFile)
		},
		RunE: runServe,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", ".env", "config file read before environment variables")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the processor tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			db, err := database.InitDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Println("[DATABASE] Schema is up to date")
			return nil
		},
	}
}

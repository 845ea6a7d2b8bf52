package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebenezer-app/ebenezer/internal/app"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := app.Migrate(cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Migrazioni applicate (%s)\n", cfg.Backend)

			return nil
		},
	}
}

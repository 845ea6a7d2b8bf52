package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ebenezer-app/ebenezer/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ebenezer",
		Short:         "Ebenezer ledger administration",
		Long:          `Manage the Ebenezer ledger from the command line: apply migrations, create users, export and import movements.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(signupCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(importCmd())

	return root
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	slog.Debug("configuration loaded", "backend", cfg.Backend)

	return cfg, nil
}

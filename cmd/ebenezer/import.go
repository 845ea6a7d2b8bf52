package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ebenezer-app/ebenezer/internal/app"
	"github.com/ebenezer-app/ebenezer/internal/importer"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import movements from an exported Ebenezer CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}

	addCredentialFlags(cmd)

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := signIn(cmd, a)
	if err != nil {
		return err
	}

	ms, err := a.Import.Import(cmd.Context(), u.ID, importer.SourceEbenezer, f)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Importati %d movimenti\n", len(ms))

	return nil
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ebenezer-app/ebenezer/internal/app"
	"github.com/ebenezer-app/ebenezer/internal/export"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's movements to CSV or PDF",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}

	addCredentialFlags(cmd)
	cmd.Flags().String("format", string(export.FormatCSV), "output format (csv, pdf)")
	cmd.Flags().String("out", "", "output directory (default: EXPORT_DIR)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if out == "" {
		out = cfg.Export.Dir
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

	doc, err := a.Export.Export(cmd.Context(), u.ID, export.Format(format), time.Now())
	if err != nil {
		return err
	}

	path, err := export.WriteFile(out, doc)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Esportato in %s\n", path)

	return nil
}

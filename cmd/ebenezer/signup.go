package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebenezer-app/ebenezer/internal/app"
)

func signupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE:  runSignup,
	}

	cmd.Flags().String("email", "", "email address of the new user")
	cmd.Flags().String("password", "", "password of the new user")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runSignup(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.Identity.SignUp(cmd.Context(), email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Utente creato: %s (%s)\n", u.Email, u.ID)

	return nil
}

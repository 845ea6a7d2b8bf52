package main

import (
	"github.com/spf13/cobra"

	"github.com/ebenezer-app/ebenezer/internal/app"
	"github.com/ebenezer-app/ebenezer/internal/identity"
)

func addCredentialFlags(cmd *cobra.Command) {
	cmd.Flags().String("email", "", "email of the ledger owner")
	cmd.Flags().String("password", "", "password of the ledger owner")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
}

func signIn(cmd *cobra.Command, a *app.App) (*identity.User, error) {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	return a.Identity.SignIn(cmd.Context(), email, password)
}

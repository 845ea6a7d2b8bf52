package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/ebenezer-app/ebenezer/internal/app"
	"github.com/ebenezer-app/ebenezer/internal/config"
	ebenezerHttp "github.com/ebenezer-app/ebenezer/internal/http"
	authHandler "github.com/ebenezer-app/ebenezer/internal/http/auth"
	exportHandler "github.com/ebenezer-app/ebenezer/internal/http/export"
	importHandler "github.com/ebenezer-app/ebenezer/internal/http/importcsv"
	movementHandler "github.com/ebenezer-app/ebenezer/internal/http/movement"
	summaryHandler "github.com/ebenezer-app/ebenezer/internal/http/summary"
	"github.com/ebenezer-app/ebenezer/internal/identity"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := cfg.RequireSecret(); err != nil {
		slog.Error("refusing to start without a signing key", "error", err)
		os.Exit(1)
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialise application", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	tokens := identity.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var (
		authH     = authHandler.NewHandler(a.Identity, tokens)
		movementH = movementHandler.NewHandler(a.Movements)
		summaryH  = summaryHandler.NewHandler(a.Export)
		exportH   = exportHandler.NewHandler(a.Export)
		importH   = importHandler.NewHandler(a.Import)
	)

	router := ebenezerHttp.New(
		ebenezerHttp.Options{Timeout: cfg.Server.Timeout, AllowedOrigins: cfg.Server.AllowedOrigins},
		tokens, authH, movementH, summaryH, exportH, importH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "backend", cfg.Backend)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

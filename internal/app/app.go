// Package app wires configuration, storage and services into one value shared by the binaries.
package app

import (
	"fmt"
	"log/slog"

	"github.com/ebenezer-app/ebenezer/internal/config"
	"github.com/ebenezer-app/ebenezer/internal/database"
	"github.com/ebenezer-app/ebenezer/internal/export"
	"github.com/ebenezer-app/ebenezer/internal/identity"
	identityStore "github.com/ebenezer-app/ebenezer/internal/identity/store"
	"github.com/ebenezer-app/ebenezer/internal/importer"
	"github.com/ebenezer-app/ebenezer/internal/movement"
	movementStore "github.com/ebenezer-app/ebenezer/internal/movement/store"
)

type App struct {
	Config *config.Config
	DB     *database.DB

	Identity  *identity.Service
	Movements *movement.Service
	Export    *export.Service
	Import    *importer.Service
}

// Migrate applies the schema for the configured backend.
func Migrate(cfg *config.Config) error {
	if err := database.Migrate(database.Dialect(cfg.Backend), cfg.DSN()); err != nil {
		return fmt.Errorf("migrating %s database: %w", cfg.Backend, err)
	}

	return nil
}

// New migrates and opens the configured backend and builds every service on top of it.
func New(cfg *config.Config) (*App, error) {
	if err := Migrate(cfg); err != nil {
		return nil, err
	}

	db, err := database.Open(database.Dialect(cfg.Backend), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	slog.Info("database ready", "backend", cfg.Backend)

	movements := movement.NewService(movementStore.New(db))
	exports := export.NewService(movements)

	return &App{
		Config:    cfg,
		DB:        db,
		Identity:  identity.NewService(identityStore.New(db)),
		Movements: movements,
		Export:    exports,
		Import:    importer.NewService(movements),
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ebenezer-app/ebenezer/internal/database"
	"github.com/ebenezer-app/ebenezer/internal/identity"
)

// pgUniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const pgUniqueViolation = "23505"

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*identity.User, error) {
	var u identity.User

	if err := s.Scan(&u.ID, &u.Email, &u.PasswordHash, database.ScanTime(&u.CreatedAt)); err != nil {
		return nil, err
	}

	return &u, nil
}

const selectUserColumns = `id, email, password_hash, created_at`

func (s *Store) CreateUser(ctx context.Context, u *identity.User) error {
	query := `INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, s.db.Rebind(query), u.ID, u.Email, u.PasswordHash, s.db.Timestamp(u.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return identity.ErrEmailAlreadyRegistered
		}

		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE email = ?`

	return s.getUser(ctx, query, email)
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE id = ?`

	return s.getUser(ctx, query, id)
}

func (s *Store) getUser(ctx context.Context, query string, arg any) (*identity.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, s.db.Rebind(query), arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identity.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	// modernc.org/sqlite reports constraint failures in the message only.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ebenezer-app/ebenezer/internal/database"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanMovement reads a movement row in selectMovementColumns order.
func scanMovement(s scanner) (*movement.Movement, error) {
	var m movement.Movement

	var tipo, settore, metodo, categoria string

	if err := s.Scan(
		&m.ID, &m.UserID, &tipo, &settore, &metodo, &categoria,
		&m.Description, &m.Amount,
		database.ScanTime(&m.Date), database.ScanTime(&m.CreatedAt),
	); err != nil {
		return nil, err
	}

	m.Type = movement.Type(tipo)
	m.Sector = movement.Sector(settore)
	m.PaymentMethod = movement.PaymentMethod(metodo)
	m.Category = movement.Category(categoria)

	return &m, nil
}

const selectMovementColumns = `
	id, user_id, tipo, settore, metodo_pagamento, categoria,
	descrizione, importo, data, created_at
`

const insertMovementQuery = `
	INSERT INTO movimenti (id, user_id, tipo, settore, metodo_pagamento, categoria, descrizione, importo, data, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (s *Store) insertArgs(m *movement.Movement) []any {
	return []any{
		m.ID,
		m.UserID,
		string(m.Type),
		string(m.Sector),
		string(m.PaymentMethod),
		string(m.Category),
		m.Description,
		m.Amount,
		s.db.Date(m.Date),
		s.db.Timestamp(m.CreatedAt),
	}
}

func (s *Store) InsertMovement(ctx context.Context, m *movement.Movement) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(insertMovementQuery), s.insertArgs(m)...); err != nil {
		return fmt.Errorf("inserting movement: %w", err)
	}

	return nil
}

// InsertMovements stores every movement or none of them.
func (s *Store) InsertMovements(ctx context.Context, ms []*movement.Movement) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, s.db.Rebind(insertMovementQuery))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range ms {
		if _, err := stmt.ExecContext(ctx, s.insertArgs(m)...); err != nil {
			return fmt.Errorf("inserting movement %s: %w", m.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) ListMovements(ctx context.Context, userID uuid.UUID) ([]*movement.Movement, error) {
	query := `SELECT ` + selectMovementColumns + `
		FROM movimenti
		WHERE user_id = ?
		ORDER BY data DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	var ms []*movement.Movement

	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}

		ms = append(ms, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movements: %w", err)
	}

	return ms, nil
}

// DeleteMovement removes the movement only when it belongs to userID.
// A mismatch or a missing id affects no rows and is not an error.
func (s *Store) DeleteMovement(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM movimenti WHERE id = ? AND user_id = ?`

	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), id, userID); err != nil {
		return fmt.Errorf("deleting movement: %w", err)
	}

	return nil
}

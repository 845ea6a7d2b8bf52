// Package identity authenticates users and tracks who is currently signed in.
package identity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials     = errors.New("Credenziali non valide")
	ErrEmailAlreadyRegistered = errors.New("Email già registrata")
	ErrNoSession              = errors.New("Utente non autenticato")
	ErrNotFound               = errors.New("user not found")
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

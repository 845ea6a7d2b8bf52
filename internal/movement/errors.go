package movement

import (
	"errors"
	"fmt"
)

var ErrNotAuthenticated = errors.New("utente non autenticato")

// ValidationError reports a movement rejected before reaching the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campo %s non valido: %s", e.Field, e.Reason)
}

// StoreError wraps a failure of the underlying movement store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=identity
type Repository interface {
	// CreateUser returns ErrEmailAlreadyRegistered when the email is taken.
	CreateUser(ctx context.Context, u *User) error
	// GetUserByEmail and GetUser return ErrNotFound when there is no match.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
}

type Service struct {
	repo Repository
	cost int
	now  func() time.Time
}

type Option func(*Service)

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, cost: bcrypt.DefaultCost, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NormalizeEmail trims and lower-cases an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) SignUp(ctx context.Context, email, password string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, ErrEmailAlreadyRegistered) {
			return nil, ErrEmailAlreadyRegistered
		}

		return nil, fmt.Errorf("creating user: %w", err)
	}

	slog.InfoContext(ctx, "user signed up", "user_id", u.ID)

	return u, nil
}

// SignIn verifies the credentials. An unknown email and a wrong password
// are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) User(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNoSession
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

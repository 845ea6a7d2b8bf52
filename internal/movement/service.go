package movement

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=movement
type Repository interface {
	InsertMovement(ctx context.Context, m *Movement) error
	InsertMovements(ctx context.Context, ms []*Movement) error
	ListMovements(ctx context.Context, userID uuid.UUID) ([]*Movement, error)
	DeleteMovement(ctx context.Context, id, userID uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for default dates and created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateParams carries a movement as submitted by a user.
// A zero Date means "today".
type CreateParams struct {
	Type          Type          `validate:"required"`
	Sector        Sector        `validate:"required"`
	PaymentMethod PaymentMethod `validate:"required"`
	Category      Category      `validate:"required"`
	Description   string        `validate:"required"`
	Amount        int64         `validate:"gt=0"`
	Date          time.Time
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Movement, error) {
	m, err := s.build(userID, params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.InsertMovement(ctx, m); err != nil {
		return nil, &StoreError{Op: "inserimento movimento", Err: err}
	}

	return m, nil
}

// CreateBatch validates every entry before inserting any of them, then inserts them atomically.
func (s *Service) CreateBatch(ctx context.Context, userID uuid.UUID, params []CreateParams) ([]*Movement, error) {
	if len(params) == 0 {
		return nil, nil
	}

	ms := make([]*Movement, 0, len(params))

	for _, p := range params {
		m, err := s.build(userID, p)
		if err != nil {
			return nil, err
		}

		ms = append(ms, m)
	}

	if err := s.repo.InsertMovements(ctx, ms); err != nil {
		return nil, &StoreError{Op: "inserimento movimenti", Err: err}
	}

	return ms, nil
}

// List returns the user's movements, newest date first, then newest created_at first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Movement, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	ms, err := s.repo.ListMovements(ctx, userID)
	if err != nil {
		return nil, &StoreError{Op: "lettura movimenti", Err: err}
	}

	SortNewestFirst(ms)

	return ms, nil
}

// Delete removes the movement only if it belongs to userID; otherwise it is a no-op.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrNotAuthenticated
	}

	if err := s.repo.DeleteMovement(ctx, id, userID); err != nil {
		return &StoreError{Op: "eliminazione movimento", Err: err}
	}

	return nil
}

func (s *Service) build(userID uuid.UUID, p CreateParams) (*Movement, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	p.Description = strings.TrimSpace(p.Description)
	if err := validateParams(p); err != nil {
		return nil, err
	}

	now := s.now()

	// The default day is read in the clock's own location; time.Now is local time.
	date := p.Date
	if date.IsZero() {
		date = now
	}

	return &Movement{
		ID:            uuid.New(),
		UserID:        userID,
		Type:          p.Type,
		Sector:        p.Sector,
		PaymentMethod: p.PaymentMethod,
		Category:      p.Category,
		Description:   p.Description,
		Amount:        p.Amount,
		Date:          DateOnly(date),
		CreatedAt:     now.UTC(),
	}, nil
}

// SortNewestFirst orders movements by date descending, then created_at descending.
func SortNewestFirst(ms []*Movement) {
	slices.SortStableFunc(ms, func(a, b *Movement) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}

		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
}

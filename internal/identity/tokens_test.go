package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	u := &User{ID: uuid.New(), Email: "anna@example.com"}

	tokens := NewTokens("test-secret", time.Hour)
	tokens.now = func() time.Time { return now }

	signed, err := tokens.Issue(u)
	require.NoError(t, err)

	got, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Email, got.Email)

	t.Run("Expired", func(t *testing.T) {
		later := NewTokens("test-secret", time.Hour)
		later.now = func() time.Time { return now.Add(2 * time.Hour) }

		_, err := later.Parse(signed)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokens("other-secret", time.Hour)
		other.now = tokens.now

		_, err := other.Parse(signed)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tokens.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

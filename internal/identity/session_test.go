package identity_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/ebenezer-app/ebenezer/internal/identity"
)

func newSession(t *testing.T) (*identity.Session, *identity.User) {
	t.Helper()

	stored := &identity.User{ID: uuid.New(), Email: "anna@example.com", PasswordHash: hashed(t, "segreta")}

	ctrl := gomock.NewController(t)
	repo := identity.NewMockRepository(ctrl)
	repo.EXPECT().GetUserByEmail(gomock.Any(), "anna@example.com").Return(stored, nil).AnyTimes()
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return identity.NewSession(identity.NewService(repo, identity.WithHashCost(bcrypt.MinCost))), stored
}

func TestSession_OnChange(t *testing.T) {
	ctx := context.Background()
	sess, stored := newSession(t)

	var got []*identity.User

	unsubscribe := sess.OnChange(func(u *identity.User) { got = append(got, u) })

	require.Len(t, got, 1)
	assert.Nil(t, got[0], "callback runs immediately with the signed-out state")

	_, err := sess.SignIn(ctx, "anna@example.com", "segreta")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, stored.ID, got[1].ID)
	assert.Equal(t, stored.ID, sess.Current().ID)

	_, err = sess.SignIn(ctx, "anna@example.com", "sbagliata")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	assert.Len(t, got, 2, "failed sign in does not notify")

	sess.SignOut()
	require.Len(t, got, 3)
	assert.Nil(t, got[2])
	assert.Nil(t, sess.Current())

	unsubscribe()

	_, err = sess.SignUp(ctx, "nuovo@example.com", "segreta")
	require.NoError(t, err)
	assert.Len(t, got, 3, "unsubscribed callback is not called")
	assert.Equal(t, "nuovo@example.com", sess.Current().Email)
}

func TestSession_SubscriberCanReadSession(t *testing.T) {
	sess, _ := newSession(t)

	var seen []*identity.User

	sess.OnChange(func(*identity.User) { seen = append(seen, sess.Current()) })

	_, err := sess.SignIn(context.Background(), "anna@example.com", "segreta")
	require.NoError(t, err)
	require.Len(t, seen, 2)
	assert.NotNil(t, seen[1])
}

func TestSession_Concurrent(t *testing.T) {
	sess, _ := newSession(t)

	var (
		mu    sync.Mutex
		calls int
	)

	sess.OnChange(func(*identity.User) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			sess.SignOut()
			_ = sess.Current()
		})
	}
	wg.Wait()

	assert.Equal(t, 21, calls)
}

func TestSession_ConcurrentChangesArriveInOrder(t *testing.T) {
	ctx := context.Background()
	sess, _ := newSession(t)

	var (
		mu   sync.Mutex
		last = map[int]*identity.User{}
	)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			if i%2 == 0 {
				_, _ = sess.SignIn(ctx, "anna@example.com", "segreta")
			} else {
				sess.SignOut()
			}
		})

		wg.Go(func() {
			sess.OnChange(func(u *identity.User) {
				mu.Lock()
				last[i] = u
				mu.Unlock()
			})
		})
	}
	wg.Wait()

	current := sess.Current()

	require.Len(t, last, 20)

	for i, u := range last {
		assert.Equal(t, current == nil, u == nil, "subscriber %d ended on a stale user", i)
	}
}

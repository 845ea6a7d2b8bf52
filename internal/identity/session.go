package identity

import (
	"context"
	"sync"
)

// Session is the observable signed-in user of an interactive client.
// It is safe for concurrent use.
type Session struct {
	svc *Service

	// notifyMu orders state changes together with their notifications, so every
	// subscriber sees changes in the order they were made.
	notifyMu sync.Mutex

	mu          sync.Mutex
	user        *User
	nextID      int
	subscribers map[int]func(*User)
}

func NewSession(svc *Service) *Session {
	return &Session{svc: svc, subscribers: make(map[int]func(*User))}
}

// Current returns the signed-in user, or nil.
func (s *Session) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.user
}

func (s *Session) SignIn(ctx context.Context, email, password string) (*User, error) {
	u, err := s.svc.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.set(u)

	return u, nil
}

func (s *Session) SignUp(ctx context.Context, email, password string) (*User, error) {
	u, err := s.svc.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.set(u)

	return u, nil
}

func (s *Session) SignOut() {
	s.set(nil)
}

// OnChange calls cb with the current user right away and again after every
// sign in, sign up or sign out. The returned func unsubscribes.
// cb may read the session but must not sign in or out from inside the callback.
func (s *Session) OnChange(cb func(*User)) func() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = cb
	current := s.user
	s.mu.Unlock()

	cb(current)

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// set stores u and notifies subscribers outside the state lock, so callbacks
// may read the session.
func (s *Session) set(u *User) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.user = u

	cbs := make([]func(*User), 0, len(s.subscribers))
	for _, cb := range s.subscribers {
		cbs = append(cbs, cb)
	}
	s.mu.Unlock()

	for _, cb := range cbs {
		cb(u)
	}
}

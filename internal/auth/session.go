// Package auth owns the signed-in user: token login against the tracker,
// the keyring-cached session and the authorize/logout observers.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/julianstephens/timesheet/internal/keyring"
	"github.com/julianstephens/timesheet/internal/logger"
	"github.com/julianstephens/timesheet/internal/tracker"
)

var (
	// ErrUnauthorized is returned when no user is signed in.
	ErrUnauthorized = errors.New("not logged in, run `timesheet login`")
	// ErrEmptyToken is returned by Login for a blank token.
	ErrEmptyToken = errors.New("token cannot be empty")
)

// User is the signed-in account.
type User struct {
	ID    string
	Name  string
	Token string
}

// Authenticator verifies tokens. *tracker.Client satisfies it.
type Authenticator interface {
	SetToken(token string)
	ResetToken()
	Myself(ctx context.Context) (tracker.User, error)
}

// Store persists the session between runs.
type Store interface {
	Load() (keyring.Session, error)
	Save(keyring.Session) error
	Clear() error
}

// Session tracks the current user and keeps the client token in step.
type Session struct {
	client Authenticator
	store  Store

	mu          sync.Mutex
	user        *User
	onAuthorize []func(User)
	onLogout    []func()
}

// NewSession returns a signed-out session.
func NewSession(client Authenticator, store Store) *Session {
	return &Session{client: client, store: store}
}

// OnAuthorize registers fn to run after every successful Login or Restore.
func (s *Session) OnAuthorize(fn func(User)) {
	s.mu.Lock()
	s.onAuthorize = append(s.onAuthorize, fn)
	s.mu.Unlock()
}

// OnLogout registers fn to run after Logout.
func (s *Session) OnLogout(fn func()) {
	s.mu.Lock()
	s.onLogout = append(s.onLogout, fn)
	s.mu.Unlock()
}

// Login verifies token with the tracker. On failure the session is left as
// it was: a signed-in user keeps their token, otherwise the client token is
// cleared.
func (s *Session) Login(ctx context.Context, token string) (User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return User{}, ErrEmptyToken
	}

	s.client.SetToken(token)
	me, err := s.client.Myself(ctx)
	if err != nil {
		s.restoreToken()
		logger.Warn("Login failed", "error", err)
		return User{}, fmt.Errorf("login failed: %w", err)
	}

	user := User{ID: me.ID, Name: me.Name, Token: token}
	if err := s.store.Save(keyring.Session{Token: token, UserID: user.ID, UserName: user.Name}); err != nil {
		logger.Warn("Session not cached", "error", err)
	}

	logger.Info("Logged in", "user", user.ID)
	s.authorize(user)
	return user, nil
}

// Restore signs in from the cached session without contacting the tracker.
func (s *Session) Restore() (User, error) {
	cached, err := s.store.Load()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return User{}, ErrUnauthorized
		}
		return User{}, fmt.Errorf("failed to restore session: %w", err)
	}

	user := User{ID: cached.UserID, Name: cached.UserName, Token: cached.Token}
	s.client.SetToken(user.Token)
	logger.Debug("Session restored", "user", user.ID)
	s.authorize(user)
	return user, nil
}

// Logout forgets the user, the client token and the cached session.
func (s *Session) Logout() error {
	s.client.ResetToken()

	s.mu.Lock()
	s.user = nil
	observers := append([]func(){}, s.onLogout...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear cached session: %w", err)
	}
	return nil
}

// Current returns the signed-in user.
func (s *Session) Current() (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return User{}, ErrUnauthorized
	}
	return *s.user, nil
}

func (s *Session) restoreToken() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user != nil {
		s.client.SetToken(s.user.Token)
		return
	}
	s.client.ResetToken()
}

// Authorized reports whether a user is signed in.
func (s *Session) Authorized() bool {
	_, err := s.Current()
	return err == nil
}

func (s *Session) authorize(user User) {
	s.mu.Lock()
	s.user = &user
	observers := append([]func(User){}, s.onAuthorize...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(user)
	}
}

// Package session owns the authenticated session: the bearer token, the
// current user record, and the loading/authenticated/unauthenticated state
// the UI gates on.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/state"
)

// Status is the session lifecycle state.
type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

// Session validates, establishes, and tears down the signed-in session.
// Construct one per process and wire HandleUnauthorized into the api client
// so any 401 anywhere evicts the stored credentials.
type Session struct {
	client *api.Client
	store  *state.DB

	mu      sync.RWMutex
	status  Status
	user    *models.User
	lastErr string
}

// New creates a session in the loading state.
func New(client *api.Client, store *state.DB) *Session {
	return &Session{client: client, store: store, status: StatusLoading}
}

// Token exposes the stored bearer token; intended as the api client's
// token source.
func (s *Session) Token() string {
	return s.store.Token()
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// User returns the signed-in user, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// LastError returns the most recent auth failure message, or "".
func (s *Session) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Dismiss clears the error slot.
func (s *Session) Dismiss() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// Restore validates any stored token against the service at startup. An
// invalid or missing token resolves to unauthenticated and clears storage.
func (s *Session) Restore(ctx context.Context) {
	if s.store.Token() == "" || s.store.User() == nil {
		s.transition(StatusUnauthenticated, nil)
		return
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		logger.Warn("stored token rejected, clearing session", zap.Error(err))
		s.store.ClearSession()
		s.transition(StatusUnauthenticated, nil)
		return
	}
	s.transition(StatusAuthenticated, userFromWire(*user))
}

// Login exchanges credentials for a token and enters the authenticated state.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.Dismiss()
	resp, err := s.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.fail("login failed", err)
		return err
	}

	user := userFromWire(resp.User)
	if err := s.store.SaveSession(resp.AccessToken, *user); err != nil {
		s.fail("saving session failed", err)
		return err
	}
	s.transition(StatusAuthenticated, user)
	logger.Info("signed in", zap.String("user_id", user.ID))
	return nil
}

// Signup registers a new account, then logs in with the same credentials.
func (s *Session) Signup(ctx context.Context, email, password, name string) error {
	s.Dismiss()
	if _, err := s.client.Register(ctx, api.RegisterRequest{Email: email, Password: password, Name: name}); err != nil {
		s.fail("signup failed", err)
		return err
	}
	return s.Login(ctx, email, password)
}

// Logout clears stored credentials and enters the unauthenticated state.
func (s *Session) Logout() {
	s.store.ClearSession()
	s.transition(StatusUnauthenticated, nil)
	logger.Info("signed out")
}

// HandleUnauthorized is the api client's 401 hook: any authentication
// failure anywhere tears the session down.
func (s *Session) HandleUnauthorized() {
	s.store.ClearSession()
	s.transition(StatusUnauthenticated, nil)
	logger.Warn("session expired on 401")
}

func (s *Session) transition(status Status, user *models.User) {
	s.mu.Lock()
	s.status = status
	s.user = user
	s.mu.Unlock()
}

func (s *Session) fail(msg string, err error) {
	logger.Error(msg, err)
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}

func userFromWire(u api.User) *models.User {
	return &models.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: api.ParseTime(u.CreatedAt),
	}
}

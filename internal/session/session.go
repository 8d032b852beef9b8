// Package session holds the authenticated console session. The session is
// created explicitly at sign-in and torn down at sign-out; nothing in the
// module reads ambient globals.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/glowdesk/partner-console/pkg/logging"
)

// Session is an authenticated console session.
type Session struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// New builds a session from a bearer token. When the token is a JWT the
// identity fields are read from its claims without verifying the signature
// (the server is the verifier); any other token yields a session with only
// the token set.
func New(token string) *Session {
	s := &Session{Token: token}
	if token == "" {
		return s
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s
	}
	if sub, err := claims.GetSubject(); err == nil {
		s.UserID = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}
	if email, ok := claims["email"].(string); ok {
		s.Email = email
	}
	return s
}

// Active reports whether the session can still be used at the given time.
// A session without an expiry claim never expires client-side.
func (s *Session) Active(now time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	if s.ExpiresAt.IsZero() {
		return true
	}
	return now.Before(s.ExpiresAt)
}

// Manager owns the current session for the lifetime of the app.
type Manager struct {
	mu      sync.RWMutex
	current *Session
	logger  *logging.Logger
}

// NewManager constructs a session manager.
func NewManager(logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{logger: logger.Component("session")}
}

// SignIn replaces the current session with one built from the token.
func (m *Manager) SignIn(token string) *Session {
	s := New(token)
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	m.logger.Info("signed in", "user_id", s.UserID)
	return s
}

// SignOut tears down the current session.
func (m *Manager) SignOut() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	m.logger.Info("signed out")
}

// Current returns the active session, or nil when signed out.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Token returns the current bearer token. Satisfies api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

type ctxKey string

const sessionKey ctxKey = "console.session"

// WithSession stores the session in context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext extracts the session if present.
func FromContext(ctx context.Context) (*Session, bool) {
	val := ctx.Value(sessionKey)
	if val == nil {
		return nil, false
	}
	s, ok := val.(*Session)
	return s, ok && s != nil
}

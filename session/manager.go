// Package session owns the authentication state of one browser: it acquires
// session tokens from the VOC API, keeps them in a token store, and answers
// whether the stored session is usable right now.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jrsteele09/voc-portal/token"
	"github.com/jrsteele09/voc-portal/vocapi"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Authenticator is the part of the VOC API the manager calls.
type Authenticator interface {
	Login(ctx context.Context, creds vocapi.Credentials) (*vocapi.AuthResponse, error)
	Register(ctx context.Context, user vocapi.UserData) (*vocapi.AuthResponse, error)
	ForgetPassword(ctx context.Context, email string) (*vocapi.Acknowledgement, error)
}

// TokenStore is the persisted home of the session token.
type TokenStore interface {
	Set(token string)
	Get() (string, bool)
	Clear()
}

// State is the derived, in-memory view of a session.
type State struct {
	Authenticated bool
	LastError     string
}

var _ oauth2.TokenSource = (*Manager)(nil)

// Manager is the single authority for changing or querying the session of
// one browser. It performs no request deduplication: callers must not submit
// the same login twice while the first is in flight.
type Manager struct {
	mu    sync.Mutex
	store TokenStore
	api   Authenticator
	state State
}

// NewManager mounts a manager over store, reading it once to seed State.
func NewManager(store TokenStore, api Authenticator) *Manager {
	m := &Manager{
		store: store,
		api:   api,
	}
	m.state.Authenticated = m.HasValidSession()
	return m
}

// Login sends creds to the API. A response carrying a token opens the
// session and is returned. A response without a token returns (nil, nil)
// and leaves the stored token untouched. Failures return *AuthError.
func (m *Manager) Login(ctx context.Context, creds vocapi.Credentials) (*vocapi.AuthResponse, error) {
	m.setLastError("")
	resp, err := m.api.Login(ctx, creds)
	if err != nil {
		return nil, m.fail(OpLogin, err)
	}
	return m.open(resp), nil
}

// Signup behaves like Login against the registration endpoint.
func (m *Manager) Signup(ctx context.Context, user vocapi.UserData) (*vocapi.AuthResponse, error) {
	m.setLastError("")
	resp, err := m.api.Register(ctx, user)
	if err != nil {
		return nil, m.fail(OpSignup, err)
	}
	return m.open(resp), nil
}

// RequestPasswordReset asks the API to email a reset link. Session state is
// not affected.
func (m *Manager) RequestPasswordReset(ctx context.Context, email string) (*vocapi.Acknowledgement, error) {
	m.setLastError("")
	ack, err := m.api.ForgetPassword(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, m.fail(OpPasswordReset, err)
	}
	return ack, nil
}

// Logout forgets the stored token. It never fails and may be called repeatedly.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Clear()
	m.state = State{}
}

// Invalidate moves the session to anonymous after a caller has observed that
// it is no longer valid, and drops the stored token if it is expired or
// unreadable. A valid stored token is kept.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if raw, ok := m.store.Get(); ok && token.IsExpired(raw) {
		m.store.Clear()
	}
	m.state.Authenticated = false
}

// Reject ends a session the API refused. The stored token is dropped even
// when its exp has not passed, since the API is the authority on validity.
func (m *Manager) Reject() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Clear()
	m.state.Authenticated = false
}

// CurrentToken returns the stored token when it is present and unexpired.
// An expired token is reported as absent but left in the store.
func (m *Manager) CurrentToken() (string, bool) {
	raw, ok := m.store.Get()
	if !ok || token.IsExpired(raw) {
		return "", false
	}
	return raw, true
}

// CurrentUserID returns the subject of the current token.
func (m *Manager) CurrentUserID() (string, bool) {
	raw, ok := m.CurrentToken()
	if !ok {
		return "", false
	}
	return token.ExtractUserID(raw)
}

func (m *Manager) HasValidSession() bool {
	_, ok := m.CurrentToken()
	return ok
}

// State returns a snapshot of the derived session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Token implements oauth2.TokenSource so API clients can attach the current
// token as a bearer credential.
func (m *Manager) Token() (*oauth2.Token, error) {
	raw, ok := m.CurrentToken()
	if !ok {
		return nil, ErrNoSession
	}

	t := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}
	if claims, err := token.DecodePayload(raw); err == nil {
		if exp, ok, err := claims.Expiry(); ok && err == nil {
			t.Expiry = exp
		}
	}
	return t, nil
}

func (m *Manager) open(resp *vocapi.AuthResponse) *vocapi.AuthResponse {
	if resp == nil || resp.Token == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Set(resp.Token)
	m.state.Authenticated = true
	return resp
}

func (m *Manager) fail(op Op, err error) error {
	authErr := &AuthError{Op: op, Message: op.defaultMessage(), Err: err}

	var apiErr *vocapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		authErr.Message = apiErr.Message
	}

	log.Warn().Err(err).Str("op", string(op)).Msg("session: authentication request failed")
	m.setLastError(authErr.Message)
	return authErr
}

func (m *Manager) setLastError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.LastError = msg
}

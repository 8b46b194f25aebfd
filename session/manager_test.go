package session_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
	"github.com/jrsteele09/voc-portal/session"
	"github.com/jrsteele09/voc-portal/tokenstore"
	"github.com/jrsteele09/voc-portal/vocapi"
	"github.com/stretchr/testify/require"
)

const (
	// payload {"userId":42,"exp":9999999999}
	validToken = "a.eyJ1c2VySWQiOjQyLCJleHAiOjk5OTk5OTk5OTl9.sig"
	// payload {"exp":1}
	expiredToken = "a.eyJleHAiOjF9.sig"
)

// fakeAuthenticator returns canned responses and records calls.
type fakeAuthenticator struct {
	resp   *vocapi.AuthResponse
	ack    *vocapi.Acknowledgement
	err    error
	calls  int
	emails []string
}

func (f *fakeAuthenticator) Login(_ context.Context, creds vocapi.Credentials) (*vocapi.AuthResponse, error) {
	f.calls++
	f.emails = append(f.emails, creds.Email)
	return f.resp, f.err
}

func (f *fakeAuthenticator) Register(_ context.Context, user vocapi.UserData) (*vocapi.AuthResponse, error) {
	f.calls++
	f.emails = append(f.emails, user.Email)
	return f.resp, f.err
}

func (f *fakeAuthenticator) ForgetPassword(_ context.Context, email string) (*vocapi.Acknowledgement, error) {
	f.calls++
	f.emails = append(f.emails, email)
	return f.ack, f.err
}

type testFixture struct {
	store   *tokenstore.Store
	api     *fakeAuthenticator
	manager *session.Manager
}

func setupTestFixture(t *testing.T, stored string) *testFixture {
	t.Helper()
	store := tokenstore.New(tokenstore.NewInMemoryRepo(), "browser-1")
	if stored != "" {
		store.Set(stored)
	}
	api := &fakeAuthenticator{}
	return &testFixture{
		store:   store,
		api:     api,
		manager: session.NewManager(store, api),
	}
}

func tokenWithPayload(t *testing.T, payload map[string]interface{}) string {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return "h." + base64.RawURLEncoding.EncodeToString(body) + ".s"
}

func TestNewManager_SeedsStateFromStore(t *testing.T) {
	require.False(t, setupTestFixture(t, "").manager.State().Authenticated)
	require.True(t, setupTestFixture(t, validToken).manager.State().Authenticated)
	require.False(t, setupTestFixture(t, expiredToken).manager.State().Authenticated)
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("token in response opens the session", func(t *testing.T) {
		f := setupTestFixture(t, "")
		f.api.resp = &vocapi.AuthResponse{Token: validToken}

		resp, err := f.manager.Login(ctx, vocapi.Credentials{Email: "ana@example.com", Password: "pw"})
		require.NoError(t, err)
		require.Equal(t, validToken, resp.Token)

		current, ok := f.manager.CurrentToken()
		require.True(t, ok)
		require.Equal(t, validToken, current)
		require.True(t, f.manager.HasValidSession())
		require.True(t, f.manager.State().Authenticated)

		userID, ok := f.manager.CurrentUserID()
		require.True(t, ok)
		require.Equal(t, "42", userID)
	})

	t.Run("response without token leaves storage alone", func(t *testing.T) {
		previous := tokenWithPayload(t, map[string]interface{}{"userId": 1, "exp": time.Now().Add(time.Hour).Unix()})
		f := setupTestFixture(t, previous)
		f.api.resp = &vocapi.AuthResponse{Message: "check your inbox"}

		resp, err := f.manager.Login(ctx, vocapi.Credentials{})
		require.NoError(t, err)
		require.Nil(t, resp)

		stored, ok := f.store.Get()
		require.True(t, ok)
		require.Equal(t, previous, stored)
	})

	t.Run("response without token on empty store", func(t *testing.T) {
		f := setupTestFixture(t, "")
		f.api.resp = &vocapi.AuthResponse{}

		resp, err := f.manager.Login(ctx, vocapi.Credentials{})
		require.NoError(t, err)
		require.Nil(t, resp)
		_, ok := f.store.Get()
		require.False(t, ok)
		require.False(t, f.manager.State().Authenticated)
	})

	t.Run("server message becomes the auth error", func(t *testing.T) {
		f := setupTestFixture(t, "")
		f.api.err = &vocapi.APIError{StatusCode: http.StatusUnauthorized, Message: "invalid credentials"}

		_, err := f.manager.Login(ctx, vocapi.Credentials{})
		var authErr *session.AuthError
		require.ErrorAs(t, err, &authErr)
		require.Equal(t, session.OpLogin, authErr.Op)
		require.Equal(t, "invalid credentials", authErr.Message)
		require.ErrorIs(t, err, vocerrors.ErrAuthFailed)
		require.Equal(t, "invalid credentials", f.manager.State().LastError)
		require.False(t, f.manager.HasValidSession())
	})

	t.Run("generic failure uses the default message", func(t *testing.T) {
		f := setupTestFixture(t, "")
		f.api.err = errors.New("dial tcp: connection refused")

		_, err := f.manager.Login(ctx, vocapi.Credentials{})
		require.EqualError(t, err, "An error occurred during login")
	})

	t.Run("successful retry clears the last error", func(t *testing.T) {
		f := setupTestFixture(t, "")
		f.api.err = errors.New("boom")
		_, _ = f.manager.Login(ctx, vocapi.Credentials{})
		require.NotEmpty(t, f.manager.State().LastError)

		f.api.err = nil
		f.api.resp = &vocapi.AuthResponse{Token: validToken}
		_, err := f.manager.Login(ctx, vocapi.Credentials{})
		require.NoError(t, err)
		require.Empty(t, f.manager.State().LastError)
	})
}

func TestManager_Signup(t *testing.T) {
	ctx := context.Background()

	f := setupTestFixture(t, "")
	f.api.resp = &vocapi.AuthResponse{Token: validToken}
	resp, err := f.manager.Signup(ctx, vocapi.UserData{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.True(t, f.manager.HasValidSession())

	f = setupTestFixture(t, "")
	f.api.err = errors.New("boom")
	_, err = f.manager.Signup(ctx, vocapi.UserData{})
	require.EqualError(t, err, "An error occurred during signup")
}

func TestManager_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	f := setupTestFixture(t, "")
	f.api.ack = &vocapi.Acknowledgement{Message: "Reset link sent"}
	ack, err := f.manager.RequestPasswordReset(ctx, "  ana@example.com ")
	require.NoError(t, err)
	require.Equal(t, "Reset link sent", ack.Message)
	require.Equal(t, []string{"ana@example.com"}, f.api.emails)
	require.False(t, f.manager.State().Authenticated)

	f.api.err = errors.New("boom")
	_, err = f.manager.RequestPasswordReset(ctx, "ana@example.com")
	require.EqualError(t, err, "An error occurred during forget password")
}

func TestManager_Logout(t *testing.T) {
	f := setupTestFixture(t, validToken)
	require.True(t, f.manager.HasValidSession())

	f.manager.Logout()
	require.False(t, f.manager.HasValidSession())
	require.False(t, f.manager.State().Authenticated)

	f.manager.Logout()
	require.False(t, f.manager.HasValidSession())
	_, ok := f.store.Get()
	require.False(t, ok)
}

func TestManager_ExpiredTokenIsNotClearedOnRead(t *testing.T) {
	f := setupTestFixture(t, expiredToken)

	_, ok := f.manager.CurrentToken()
	require.False(t, ok)
	_, ok = f.manager.CurrentUserID()
	require.False(t, ok)
	require.False(t, f.manager.HasValidSession())

	stored, ok := f.store.Get()
	require.True(t, ok, "reading must not mutate the store")
	require.Equal(t, expiredToken, stored)
}

func TestManager_Invalidate(t *testing.T) {
	t.Run("expired token is dropped", func(t *testing.T) {
		f := setupTestFixture(t, "")
		f.api.resp = &vocapi.AuthResponse{Token: expiredToken}
		_, err := f.manager.Login(context.Background(), vocapi.Credentials{})
		require.NoError(t, err)
		require.True(t, f.manager.State().Authenticated)

		f.manager.Invalidate()
		require.False(t, f.manager.State().Authenticated)
		_, ok := f.store.Get()
		require.False(t, ok)
	})

	t.Run("malformed token is dropped", func(t *testing.T) {
		f := setupTestFixture(t, "not-a-jwt")
		f.manager.Invalidate()
		_, ok := f.store.Get()
		require.False(t, ok)
	})

	t.Run("valid token is kept", func(t *testing.T) {
		f := setupTestFixture(t, validToken)
		f.manager.Invalidate()
		require.False(t, f.manager.State().Authenticated)
		_, ok := f.store.Get()
		require.True(t, ok)
	})
}

func TestManager_Reject(t *testing.T) {
	f := setupTestFixture(t, validToken)
	require.True(t, f.manager.State().Authenticated)

	f.manager.Reject()
	require.False(t, f.manager.State().Authenticated)
	require.False(t, f.manager.HasValidSession())
	_, ok := f.store.Get()
	require.False(t, ok)

	// Rejecting an already empty session is harmless
	f.manager.Reject()
	require.False(t, f.manager.HasValidSession())
}

func TestManager_TokenSource(t *testing.T) {
	f := setupTestFixture(t, "")
	_, err := f.manager.Token()
	require.ErrorIs(t, err, session.ErrNoSession)

	f.store.Set(validToken)
	tok, err := f.manager.Token()
	require.NoError(t, err)
	require.Equal(t, validToken, tok.AccessToken)
	require.Equal(t, "Bearer", tok.Type())
	require.Equal(t, int64(9999999999), tok.Expiry.Unix())
}

func TestManager_AgainstRemoteAPI(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case vocapi.PathLogin:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
		case "/user/profile":
			require.Equal(t, "Bearer "+validToken, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"id":42,"name":"Ana"}`))
		}
	}))
	defer srv.Close()

	client := vocapi.New(srv.URL)
	store := tokenstore.New(tokenstore.NewInMemoryRepo(), "browser-1")
	m := session.NewManager(store, client)

	_, err := m.Login(ctx, vocapi.Credentials{Email: "ana@example.com", Password: "wrong"})
	var authErr *session.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "invalid credentials", authErr.Message)

	authed := client.Authenticated(m)
	_, err = authed.GetUserProfile(ctx)
	require.ErrorIs(t, err, session.ErrNoSession)

	store.Set(validToken)
	profile, err := authed.GetUserProfile(ctx)
	require.NoError(t, err)
	require.Equal(t, "Ana", profile.Name)
}

func TestContext(t *testing.T) {
	_, ok := session.FromContext(context.Background())
	require.False(t, ok)

	m := setupTestFixture(t, "").manager
	got, ok := session.FromContext(session.WithManager(context.Background(), m))
	require.True(t, ok)
	require.Same(t, m, got)
}

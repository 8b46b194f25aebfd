package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
	"github.com/jrsteele09/voc-portal/session"
	"github.com/jrsteele09/voc-portal/vocapi"
	"github.com/stretchr/testify/require"
)

func TestWelcomeNotifications(t *testing.T) {
	notifications := []vocapi.Notification{
		{ID: "1", Message: "first"},
		{ID: "2", Message: "second", Read: true},
	}

	views := welcomeNotifications(&vocapi.Profile{Name: "Ada"}, notifications)
	require.Len(t, views, 2)
	require.True(t, views[0].IsWelcome)
	require.Equal(t, "Welcome to our VOC platform, Ada!", views[0].Message)
	require.Equal(t, "second", views[1].Message)
	require.Equal(t, "first", notifications[0].Message)

	views = welcomeNotifications(nil, notifications)
	require.False(t, views[0].IsWelcome)
	require.Equal(t, "first", views[0].Message)

	require.Empty(t, welcomeNotifications(&vocapi.Profile{Name: "Ada"}, nil))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth error", &session.AuthError{Op: session.OpLogin, Message: "Invalid credentials"}, "Invalid credentials"},
		{"api error", &vocapi.APIError{StatusCode: 500, Message: "Failed to fetch user profile"}, "Failed to fetch user profile"},
		{"in flight", vocerrors.ErrRequestInFlight, msgInFlight},
		{"wrapped rate limit", vocerrors.Wrapf(vocerrors.ErrRateLimited, "login"), msgRateLimited},
		{"other", errors.New("boom"), "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, userMessage(tt.err, "fallback"))
		})
	}
}

func TestSessionLost(t *testing.T) {
	require.True(t, sessionLost(&vocapi.APIError{StatusCode: 401}))
	require.True(t, sessionLost(vocerrors.Wrapf(session.ErrNoSession, "get profile")))
	require.False(t, sessionLost(&vocapi.APIError{StatusCode: 500}))
	require.False(t, sessionLost(nil))
}

func TestParseSettingsForm(t *testing.T) {
	tests := []struct {
		name  string
		query string
		ok    bool
	}{
		{"defaults", "profileVisibility=public", true},
		{"bad visibility", "profileVisibility=everyone", false},
		{"bad volume", "profileVisibility=public&volume=200", false},
		{"volume", "profileVisibility=private&volume=10", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptestRequest(t, tt.query)
			_, ok := parseSettingsForm(r)
			require.Equal(t, tt.ok, ok)
		})
	}
}

func TestActiveBusinessTab(t *testing.T) {
	require.Equal(t, "Groups and teams", activeBusinessTab("Groups and teams"))
	require.Equal(t, "Employees or individuals", activeBusinessTab("unknown"))
}

func httptestRequest(t *testing.T, query string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/settings?"+query, nil)
	require.NoError(t, r.ParseForm())
	return r
}

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/voc-portal/session"
	"github.com/jrsteele09/voc-portal/tokenstore"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Mount(t *testing.T) {
	repo := tokenstore.NewInMemoryRepo()
	require.NoError(t, repo.Upsert(context.Background(), "browser-b", tokenstore.TokenKey, validToken))

	r := session.NewRegistry(repo, &fakeAuthenticator{}, time.Minute)

	a := r.Mount("browser-a")
	require.Same(t, a, r.Mount("browser-a"))
	require.False(t, a.State().Authenticated)

	b := r.Mount("browser-b")
	require.NotSame(t, a, b)
	require.True(t, b.State().Authenticated, "state is seeded from the stored token")
	require.Equal(t, 2, r.Len())

	b.Logout()
	require.False(t, r.Mount("browser-b").HasValidSession())
	require.False(t, r.Mount("browser-c").HasValidSession())
}

func TestRegistry_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := session.NewRegistry(tokenstore.NewInMemoryRepo(), &fakeAuthenticator{}, time.Minute)
	r.NowTimeFunc = func() time.Time { return now }

	first := r.Mount("browser-a")
	r.Mount("browser-b")

	now = now.Add(45 * time.Second)
	r.Mount("browser-b")

	now = now.Add(30 * time.Second)
	require.Equal(t, 1, r.Sweep())
	require.Equal(t, 1, r.Len())
	require.NotSame(t, first, r.Mount("browser-a"), "swept scopes are remounted fresh")

	r.Unmount("browser-a")
	r.Unmount("browser-b")
	require.Zero(t, r.Len())
}

func TestRegistry_RunStopsWithContext(t *testing.T) {
	r := session.NewRegistry(tokenstore.NewInMemoryRepo(), &fakeAuthenticator{}, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

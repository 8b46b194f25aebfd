package server

import (
	"testing"
	"time"

	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestSubmitGuardRejectsConcurrentRequest(t *testing.T) {
	g := newSubmitGuard(rate.Inf, 1)

	release, err := g.acquire("scope-a")
	require.NoError(t, err)

	_, err = g.acquire("scope-a")
	require.ErrorIs(t, err, vocerrors.ErrRequestInFlight)

	// Other browsers are unaffected
	releaseB, err := g.acquire("scope-b")
	require.NoError(t, err)
	releaseB()

	release()
	release, err = g.acquire("scope-a")
	require.NoError(t, err)
	release()
}

func TestSubmitGuardRateLimits(t *testing.T) {
	g := newSubmitGuard(rate.Every(time.Hour), 2)

	for i := 0; i < 2; i++ {
		release, err := g.acquire("scope")
		require.NoError(t, err)
		release()
	}

	_, err := g.acquire("scope")
	require.ErrorIs(t, err, vocerrors.ErrRateLimited)
	require.Equal(t, msgRateLimited, userMessage(err, ""))
}

func TestSubmitGuardPrune(t *testing.T) {
	g := newSubmitGuard(rate.Inf, 1)

	release, err := g.acquire("idle")
	require.NoError(t, err)
	release()

	busy, err := g.acquire("busy")
	require.NoError(t, err)
	defer busy()

	require.Equal(t, 1, g.prune(time.Now().Add(time.Minute)))
	require.Len(t, g.scopes, 1)
	require.Contains(t, g.scopes, "busy")
}


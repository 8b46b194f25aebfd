package server

import (
	"context"
	"sync"
	"time"

	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
	"golang.org/x/time/rate"
)

type submitState struct {
	limiter  *rate.Limiter
	inFlight bool
	lastSeen time.Time
}

// submitGuard stops a browser from sending an authentication request while
// another is still outstanding, and throttles repeated attempts.
type submitGuard struct {
	mu     sync.Mutex
	limit  rate.Limit
	burst  int
	scopes map[string]*submitState
}

func newSubmitGuard(limit rate.Limit, burst int) *submitGuard {
	return &submitGuard{
		limit:  limit,
		burst:  burst,
		scopes: make(map[string]*submitState),
	}
}

// acquire claims the submit slot for scope. The returned release must be
// called once the request has completed.
func (g *submitGuard) acquire(scope string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.scopes[scope]
	if !ok {
		st = &submitState{limiter: rate.NewLimiter(g.limit, g.burst)}
		g.scopes[scope] = st
	}
	st.lastSeen = time.Now()

	if st.inFlight {
		return nil, vocerrors.ErrRequestInFlight
	}
	if !st.limiter.Allow() {
		return nil, vocerrors.ErrRateLimited
	}

	st.inFlight = true
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		st.inFlight = false
	}, nil
}

// prune forgets scopes not seen since before cutoff.
func (g *submitGuard) prune(cutoff time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for scope, st := range g.scopes {
		if !st.inFlight && st.lastSeen.Before(cutoff) {
			delete(g.scopes, scope)
			removed++
		}
	}
	return removed
}

func (g *submitGuard) Run(ctx context.Context, idle time.Duration) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(idle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.prune(time.Now().Add(-idle))
		}
	}
}

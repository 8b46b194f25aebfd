package session

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/voc-portal/tokenstore"
	"github.com/rs/zerolog/log"
)

type mounted struct {
	manager  *Manager
	lastSeen time.Time
}

// Registry keeps one Manager per browser scope. A manager is mounted the
// first time its scope is seen and unmounted after it has been idle for the
// configured period; its stored token outlives it in the token repo.
type Registry struct {
	mu       sync.Mutex
	repo     tokenstore.Repo
	api      Authenticator
	idle     time.Duration
	managers map[string]*mounted

	// NowTimeFunc is the clock used for idle tracking
	NowTimeFunc func() time.Time
}

func NewRegistry(repo tokenstore.Repo, api Authenticator, idle time.Duration) *Registry {
	return &Registry{
		repo:        repo,
		api:         api,
		idle:        idle,
		managers:    make(map[string]*mounted),
		NowTimeFunc: time.Now,
	}
}

// Mount returns the manager for scope, creating it on first use.
func (r *Registry) Mount(scope string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.NowTimeFunc()
	if m, ok := r.managers[scope]; ok {
		m.lastSeen = now
		return m.manager
	}

	m := NewManager(tokenstore.New(r.repo, scope), r.api)
	r.managers[scope] = &mounted{manager: m, lastSeen: now}
	return m
}

// Unmount drops the in-memory manager for scope.
func (r *Registry) Unmount(scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.managers, scope)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.managers)
}

// Sweep unmounts managers idle for longer than the configured period and
// returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.NowTimeFunc().Add(-r.idle)
	removed := 0
	for scope, m := range r.managers {
		if m.lastSeen.Before(cutoff) {
			delete(r.managers, scope)
			removed++
		}
	}
	return removed
}

// Run sweeps periodically until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	interval := r.idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Debug().Int("unmounted", n).Msg("session: swept idle managers")
			}
		}
	}
}

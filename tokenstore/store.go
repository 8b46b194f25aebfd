// Package tokenstore persists the session token of one browser scope.
package tokenstore

import (
	"context"
	"errors"
	"time"

	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
	"github.com/rs/zerolog/log"
)

// TokenKey is the single entry a Store manages within its scope.
const TokenKey = "token"

const defaultOpTimeout = 2 * time.Second

// Store holds exactly one session token for one scope. Its operations are
// synchronous and never report errors: a backend failure is logged and a
// read that fails behaves like an empty store.
//
// By convention only the session manager writes a Store.
type Store struct {
	repo      Repo
	scope     string
	opTimeout time.Duration
}

func New(repo Repo, scope string) *Store {
	return &Store{
		repo:      repo,
		scope:     scope,
		opTimeout: defaultOpTimeout,
	}
}

// Set overwrites the stored token. Setting an empty token clears the store.
func (s *Store) Set(token string) {
	if token == "" {
		s.Clear()
		return
	}
	ctx, cancel := s.context()
	defer cancel()

	if err := s.repo.Upsert(ctx, s.scope, TokenKey, token); err != nil {
		log.Err(err).Str("scope", s.scope).Msg("tokenstore: failed to persist token")
	}
}

// Get returns the stored token, or false when none is stored.
func (s *Store) Get() (string, bool) {
	ctx, cancel := s.context()
	defer cancel()

	token, err := s.repo.Get(ctx, s.scope, TokenKey)
	if err != nil {
		if !errors.Is(err, vocerrors.ErrNotFound) {
			log.Err(err).Str("scope", s.scope).Msg("tokenstore: failed to read token")
		}
		return "", false
	}
	return token, token != ""
}

// Clear removes the stored token; clearing an empty store is a no-op.
func (s *Store) Clear() {
	ctx, cancel := s.context()
	defer cancel()

	if err := s.repo.Delete(ctx, s.scope, TokenKey); err != nil {
		log.Err(err).Str("scope", s.scope).Msg("tokenstore: failed to clear token")
	}
}

func (s *Store) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.opTimeout)
}

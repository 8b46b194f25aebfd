package tokenstore

import (
	"context"
	"fmt"
	"sync"

	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo keeps values for the lifetime of the process.
type InMemoryRepo struct {
	mu     sync.RWMutex
	values map[string]map[string]string // scope -> key -> value
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		values: make(map[string]map[string]string),
	}
}

func (r *InMemoryRepo) Upsert(_ context.Context, scope, key, value string) error {
	if scope == "" {
		return fmt.Errorf("scope is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.values[scope]; !ok {
		r.values[scope] = make(map[string]string)
	}
	r.values[scope][key] = value
	return nil
}

func (r *InMemoryRepo) Get(_ context.Context, scope, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.values[scope][key]
	if !ok {
		return "", vocerrors.ErrNotFound
	}
	return value, nil
}

func (r *InMemoryRepo) Delete(_ context.Context, scope, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	scoped, ok := r.values[scope]
	if !ok {
		return nil
	}
	delete(scoped, key)

	// Clean up empty scope map
	if len(scoped) == 0 {
		delete(r.values, scope)
	}
	return nil
}

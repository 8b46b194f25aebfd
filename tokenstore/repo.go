package tokenstore

import "context"

// Repo is a string key/value store partitioned by scope. Each scope plays the
// role of one browser origin: values written under one scope are invisible to
// every other scope.
type Repo interface {
	// Upsert creates or replaces the value stored under key
	Upsert(ctx context.Context, scope, key, value string) error

	// Get returns the value stored under key or errors.ErrNotFound
	Get(ctx context.Context, scope, key string) (string, error)

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, scope, key string) error
}

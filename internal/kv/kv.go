// Package kv provides the key-value persistence substrate used for the
// catalog cache and the stored API key.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("key not found")

// Store is the minimal key-value capability the rest of the application needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// BatchSetter is implemented by stores that can write several keys atomically.
type BatchSetter interface {
	SetMany(ctx context.Context, values map[string]string) error
}

// SetAll writes every value, atomically when the store supports it.
func SetAll(ctx context.Context, s Store, values map[string]string) error {
	if b, ok := s.(BatchSetter); ok {
		return b.SetMany(ctx, values)
	}
	for k, v := range values {
		if err := s.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

// Package credential persists the account API key between sessions.
package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/kv"
)

// Key is the storage key holding the API key.
const Key = "gw2ApiKey"

// Store reads and writes the API key through a key-value store.
type Store struct {
	kv kv.Store
}

// NewStore creates a credential store backed by s.
func NewStore(s kv.Store) *Store {
	return &Store{kv: s}
}

// Save persists key after trimming surrounding whitespace.
func (s *Store) Save(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return common.ErrMissingCredential
	}
	if err := s.kv.Set(ctx, Key, key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	return nil
}

// Load returns the saved API key, or "" when none is stored.
func (s *Store) Load(ctx context.Context) (string, error) {
	key, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load API key: %w", err)
	}
	return strings.TrimSpace(key), nil
}

// Clear removes the saved API key. Clearing an absent key is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, Key); err != nil {
		return fmt.Errorf("failed to clear API key: %w", err)
	}
	return nil
}

// Resolve picks the credential for this run. An explicit override wins
// over the stored key.
func (s *Store) Resolve(ctx context.Context, override string) (string, error) {
	if override = strings.TrimSpace(override); override != "" {
		return override, nil
	}
	return s.Load(ctx)
}

// Mask hides all but the first and last four characters of key.
func Mask(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

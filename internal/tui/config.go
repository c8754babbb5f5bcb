package tui

import (
	"context"

	"github.com/Veraticus/skinvault/internal/model"
	"github.com/Veraticus/skinvault/internal/tui/themes"
)

// CatalogRefresher rebuilds the catalog, bypassing any cache.
type CatalogRefresher interface {
	Refresh(ctx context.Context) ([]model.CanonicalSkin, error)
}

// CredentialStore persists the API key entered in the browser.
type CredentialStore interface {
	Save(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Config holds TUI configuration.
type Config struct {
	Context     context.Context
	Refresher   CatalogRefresher
	Credentials CredentialStore
	Theme       themes.Theme
	Credential  string
	Width       int
	Height      int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Context: context.Background(),
		Theme:   themes.Default,
		Width:   80,
		Height:  24,
	}
}

// WithContext sets the context used for background requests.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		if ctx != nil {
			c.Context = ctx
		}
	}
}

// WithCredential sets the API key the session starts with.
func WithCredential(key string) Option {
	return func(c *Config) {
		c.Credential = key
	}
}

// WithCredentialStore persists keys entered in the browser.
func WithCredentialStore(s CredentialStore) Option {
	return func(c *Config) {
		c.Credentials = s
	}
}

// WithRefresher enables the refresh binding.
func WithRefresher(r CatalogRefresher) Option {
	return func(c *Config) {
		c.Refresher = r
	}
}

// WithTheme sets the color theme.
func WithTheme(t themes.Theme) Option {
	return func(c *Config) {
		c.Theme = t
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

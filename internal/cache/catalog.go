// Package cache persists the reduced skin catalog with a freshness window.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/kv"
	"github.com/Veraticus/skinvault/internal/model"
)

// Well-known slots holding the catalog blob and its capture time.
const (
	CatalogKey     = "weaponSkinsCache"
	CatalogTimeKey = "weaponSkinsCacheTime"
)

// DefaultTTL is how long a cached catalog stays usable.
const DefaultTTL = 24 * time.Hour

// CatalogCache reads and writes the catalog snapshot through a kv.Store.
type CatalogCache struct {
	store kv.Store
	now   func() time.Time
	ttl   time.Duration
}

// Option configures a CatalogCache.
type Option func(*CatalogCache)

// WithTTL overrides the freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *CatalogCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the time source used by Read.
func WithClock(now func() time.Time) Option {
	return func(c *CatalogCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCatalogCache creates a cache over store.
func NewCatalogCache(store kv.Store, opts ...Option) *CatalogCache {
	c := &CatalogCache{
		store: store,
		ttl:   DefaultTTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured freshness window.
func (c *CatalogCache) TTL() time.Duration {
	return c.ttl
}

// IsFresh reports whether entry is still inside the freshness window at now.
func (c *CatalogCache) IsFresh(entry model.CachedCatalog, now time.Time) bool {
	return now.Sub(entry.CapturedAt) < c.ttl
}

// Read returns the cached catalog if it exists, decodes, and is fresh.
// Every other outcome is a miss; the reason is logged at debug level only.
func (c *CatalogCache) Read(ctx context.Context) (model.CachedCatalog, bool) {
	entry, err := c.load(ctx)
	if err != nil {
		common.LogDebug("Catalog cache miss", common.Fields{"reason": err.Error()})
		return model.CachedCatalog{}, false
	}

	if !c.IsFresh(entry, c.now()) {
		common.LogDebug("Catalog cache miss", common.Fields{
			"reason":      "expired",
			"captured_at": entry.CapturedAt,
		})
		return model.CachedCatalog{}, false
	}

	return entry, true
}

// CapturedAt returns when the stored catalog was written, fresh or not.
func (c *CatalogCache) CapturedAt(ctx context.Context) (time.Time, int, bool) {
	entry, err := c.load(ctx)
	if err != nil {
		return time.Time{}, 0, false
	}
	return entry.CapturedAt, len(entry.Skins), true
}

// Write stores skins captured at the given time. Both slots are written together.
func (c *CatalogCache) Write(ctx context.Context, skins []model.CanonicalSkin, at time.Time) error {
	if skins == nil {
		skins = []model.CanonicalSkin{}
	}

	payload, err := json.Marshal(skins)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrCacheWriteFailed, err)
	}

	err = kv.SetAll(ctx, c.store, map[string]string{
		CatalogKey:     string(payload),
		CatalogTimeKey: strconv.FormatInt(at.UnixMilli(), 10),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrCacheWriteFailed, err)
	}
	return nil
}

// Invalidate removes the cached catalog so the next Read misses.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	for _, key := range []string{CatalogKey, CatalogTimeKey} {
		if err := c.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to invalidate catalog cache: %w", err)
		}
	}
	return nil
}

func (c *CatalogCache) load(ctx context.Context) (model.CachedCatalog, error) {
	payload, err := c.store.Get(ctx, CatalogKey)
	if err != nil {
		return model.CachedCatalog{}, invalid("catalog slot", err)
	}
	stamp, err := c.store.Get(ctx, CatalogTimeKey)
	if err != nil {
		return model.CachedCatalog{}, invalid("timestamp slot", err)
	}

	millis, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return model.CachedCatalog{}, invalid("timestamp", err)
	}

	var skins []model.CanonicalSkin
	if err := json.Unmarshal([]byte(payload), &skins); err != nil {
		return model.CachedCatalog{}, invalid("payload", err)
	}
	if skins == nil {
		return model.CachedCatalog{}, invalid("payload", errors.New("null catalog"))
	}

	return model.CachedCatalog{
		Skins:      skins,
		CapturedAt: time.UnixMilli(millis),
	}, nil
}

func invalid(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrCacheReadInvalid, what, err)
}

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/model"
)

// Cache is the persistence the service writes through to.
type Cache interface {
	Read(ctx context.Context) (model.CachedCatalog, bool)
	Write(ctx context.Context, skins []model.CanonicalSkin, at time.Time) error
	Invalidate(ctx context.Context) error
}

// Service produces the canonical skin catalog, from cache when possible.
type Service struct {
	source     Source
	cache      Cache
	now        func() time.Time
	onProgress ProgressFunc
	preference Preference
	batchSize  int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPreference selects how duplicate skins are resolved.
func WithPreference(p Preference) ServiceOption {
	return func(s *Service) {
		s.preference = p
	}
}

// WithBatchSize sets the number of ids per remote call.
func WithBatchSize(n int) ServiceOption {
	return func(s *Service) {
		s.batchSize = clampBatchSize(n)
	}
}

// WithProgress registers a callback invoked after each fetched batch.
func WithProgress(fn ProgressFunc) ServiceOption {
	return func(s *Service) {
		s.onProgress = fn
	}
}

// WithClock overrides the time source used to stamp cache writes.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a catalog service. cache may be nil to disable caching.
func NewService(source Source, cache Cache, opts ...ServiceOption) *Service {
	s := &Service{
		source:     source,
		cache:      cache,
		now:        time.Now,
		preference: PreferLowest,
		batchSize:  MaxBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the cached catalog if it is fresh, otherwise rebuilds it.
func (s *Service) Load(ctx context.Context) ([]model.CanonicalSkin, error) {
	if s.cache != nil {
		if entry, ok := s.cache.Read(ctx); ok {
			common.LogInfo("Loaded catalog from cache", common.Fields{
				"skins":     len(entry.Skins),
				"cache_age": s.now().Sub(entry.CapturedAt).Round(time.Minute).String(),
			})
			return entry.Skins, nil
		}
	}
	return s.rebuild(ctx)
}

// Refresh discards any cached catalog and rebuilds it from the remote API.
func (s *Service) Refresh(ctx context.Context) ([]model.CanonicalSkin, error) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			common.LogWarn(err, "Failed to invalidate catalog cache", nil)
		}
	}
	return s.rebuild(ctx)
}

// Build runs fetch, classify and reduce without touching the cache.
func (s *Service) Build(ctx context.Context) ([]model.CanonicalSkin, error) {
	items, err := FetchAll(ctx, s.source, FetchOptions{
		BatchSize:  s.batchSize,
		OnProgress: s.onProgress,
	})
	if err != nil {
		return nil, err
	}

	weapons := make([]model.RawItem, 0, len(items)/4)
	rejected := make(map[string]int)
	for _, item := range items {
		if reason := Reject(item); reason != "" {
			rejected[reason]++
			continue
		}
		weapons = append(weapons, item)
	}

	skins := Reduce(weapons, s.preference)

	common.LogDebug("Classification rejections", common.Fields{"by_reason": rejected})
	common.LogInfo("Built weapon skin catalog", common.Fields{
		"items":      len(items),
		"weapons":    len(weapons),
		"skins":      len(skins),
		"preference": string(s.preference),
	})

	return skins, nil
}

func (s *Service) rebuild(ctx context.Context) ([]model.CanonicalSkin, error) {
	skins, err := s.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}

	if s.cache != nil {
		// The in-memory catalog is still usable when the write fails.
		if err := s.cache.Write(ctx, skins, s.now()); err != nil {
			common.LogWarn(err, "Failed to save catalog cache", common.Fields{"skins": len(skins)})
		}
	}

	return skins, nil
}

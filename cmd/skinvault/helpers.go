package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/skinvault/internal/cache"
	"github.com/Veraticus/skinvault/internal/catalog"
	"github.com/Veraticus/skinvault/internal/collection"
	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/config"
	"github.com/Veraticus/skinvault/internal/credential"
	"github.com/Veraticus/skinvault/internal/gw2"
	"github.com/Veraticus/skinvault/internal/kv"
	"github.com/Veraticus/skinvault/internal/model"
	"github.com/Veraticus/skinvault/internal/tui"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// Compile-time checks that the concrete types satisfy the consumer interfaces.
var (
	_ catalog.Source           = (*gw2.Client)(nil)
	_ collection.AccountSource = (*gw2.Client)(nil)
	_ catalog.Cache            = (*cache.CatalogCache)(nil)
	_ collection.CatalogLoader = (*catalog.Service)(nil)
	_ tui.CatalogRefresher     = (*catalog.Service)(nil)
	_ tui.CredentialStore      = (*credential.Store)(nil)
	_ kv.BatchSetter           = (*kv.SQLiteStore)(nil)
)

// app bundles the services a command needs.
type app struct {
	store       kv.Store
	closeStore  func() error
	client      *gw2.Client
	cache       *cache.CatalogCache
	catalog     *catalog.Service
	credentials *credential.Store
	settings    config.Settings
	retry       common.RetryOptions
}

type appOptions struct {
	onProgress catalog.ProgressFunc
}

// newApp wires storage, the API client and the catalog service from configuration.
func newApp(ctx context.Context, v *viper.Viper, opts appOptions) (*app, error) {
	settings, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := initStore(ctx, settings)
	if err != nil {
		return nil, err
	}

	a, err := buildApp(store, settings, opts)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	a.closeStore = closeStore
	return a, nil
}

// buildApp wires everything on top of an already opened store.
func buildApp(store kv.Store, settings config.Settings, opts appOptions) (*app, error) {
	client, err := gw2.NewClient(settings.API)
	if err != nil {
		return nil, err
	}

	catalogCache := cache.NewCatalogCache(store, cache.WithTTL(settings.CacheTTL))
	serviceOpts := []catalog.ServiceOption{
		catalog.WithPreference(settings.Preference),
		catalog.WithBatchSize(settings.BatchSize),
	}
	if opts.onProgress != nil {
		serviceOpts = append(serviceOpts, catalog.WithProgress(opts.onProgress))
	}

	return &app{
		store:       store,
		closeStore:  func() error { return nil },
		client:      client,
		cache:       catalogCache,
		catalog:     catalog.NewService(client, catalogCache, serviceOpts...),
		credentials: credential.NewStore(store),
		settings:    settings,
		retry: common.RetryOptions{
			MaxAttempts:  settings.Retries + 1,
			InitialDelay: time.Second,
			MaxDelay:     time.Minute,
			Multiplier:   2,
		},
	}, nil
}

// Close releases the store.
func (a *app) Close() error {
	return a.closeStore()
}

// loader returns the catalog loader, retrying transient failures when configured.
func (a *app) loader() *retryingLoader {
	return &retryingLoader{service: a.catalog, opts: a.retry}
}

// credential picks the API key for this run: a configured key wins over the stored one.
func (a *app) credential(ctx context.Context) (string, error) {
	return a.credentials.Resolve(ctx, a.settings.APIKey)
}

// initStore opens the configured key-value store with auto-migration.
func initStore(ctx context.Context, settings config.Settings) (kv.Store, func() error, error) {
	if settings.NoPersist {
		return kv.NewMemoryStore(), func() error { return nil }, nil
	}

	store, err := kv.NewSQLiteStore(settings.DBPath)
	if err != nil {
		return nil, nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, store.Close, nil
}

// retryingLoader wraps catalog loads in common.WithRetry.
type retryingLoader struct {
	service *catalog.Service
	opts    common.RetryOptions
}

func (r *retryingLoader) Load(ctx context.Context) ([]model.CanonicalSkin, error) {
	return r.do(ctx, r.service.Load)
}

func (r *retryingLoader) Refresh(ctx context.Context) ([]model.CanonicalSkin, error) {
	return r.do(ctx, r.service.Refresh)
}

func (r *retryingLoader) do(ctx context.Context, fn func(context.Context) ([]model.CanonicalSkin, error)) ([]model.CanonicalSkin, error) {
	var skins []model.CanonicalSkin
	err := common.WithRetry(ctx, func() error {
		var err error
		skins, err = fn(ctx)
		return err
	}, r.opts)
	return skins, err
}

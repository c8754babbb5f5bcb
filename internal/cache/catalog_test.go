package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/kv"
	"github.com/Veraticus/skinvault/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type failingStore struct {
	kv.Store
	err error
}

func (f failingStore) Set(context.Context, string, string) error { return f.err }

func testSkins() []model.CanonicalSkin {
	return []model.CanonicalSkin{
		{ID: 55, Name: "Ancient Sword", Icon: "https://render/55.png", Rarity: model.RarityMasterwork, WeaponType: model.WeaponSword, ChatLink: "[&AgH1WQAA]"},
		{ID: 60, Name: "Krait Shooter", Icon: "https://render/60.png", Rarity: model.RarityExotic, WeaponType: model.WeaponPistol, ChatLink: "[&AgGMAAAA]"},
	}
}

func TestCatalogCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	capturedAt := time.UnixMilli(1_700_000_000_000)
	clock := &fakeClock{now: capturedAt}
	c := NewCatalogCache(kv.NewMemoryStore(), WithClock(clock.Now))

	require.NoError(t, c.Write(ctx, testSkins(), capturedAt))

	entry, ok := c.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, testSkins(), entry.Skins)
	assert.True(t, capturedAt.Equal(entry.CapturedAt))

	clock.now = capturedAt.Add(86_399_999 * time.Millisecond)
	_, ok = c.Read(ctx)
	assert.True(t, ok, "entry should still be fresh just inside the window")

	clock.now = capturedAt.Add(86_400_001 * time.Millisecond)
	_, ok = c.Read(ctx)
	assert.False(t, ok, "entry should be stale after the window")
}

func TestCatalogCache_IsFresh(t *testing.T) {
	c := NewCatalogCache(kv.NewMemoryStore())
	at := time.UnixMilli(1_000)
	entry := model.CachedCatalog{CapturedAt: at}

	assert.True(t, c.IsFresh(entry, at))
	assert.True(t, c.IsFresh(entry, at.Add(DefaultTTL-time.Millisecond)))
	assert.False(t, c.IsFresh(entry, at.Add(DefaultTTL)))

	short := NewCatalogCache(kv.NewMemoryStore(), WithTTL(time.Hour))
	assert.Equal(t, time.Hour, short.TTL())
	assert.False(t, short.IsFresh(entry, at.Add(2*time.Hour)))
}

func TestCatalogCache_Misses(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		values map[string]string
		name   string
	}{
		{name: "empty store", values: map[string]string{}},
		{name: "missing timestamp", values: map[string]string{CatalogKey: `[]`}},
		{name: "missing payload", values: map[string]string{CatalogTimeKey: "1700000000000"}},
		{name: "malformed payload", values: map[string]string{CatalogKey: `{not json`, CatalogTimeKey: "1700000000000"}},
		{name: "null payload", values: map[string]string{CatalogKey: `null`, CatalogTimeKey: "1700000000000"}},
		{name: "malformed timestamp", values: map[string]string{CatalogKey: `[]`, CatalogTimeKey: "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kv.NewMemoryStore()
			require.NoError(t, store.SetMany(ctx, tt.values))

			c := NewCatalogCache(store, WithClock(func() time.Time { return time.UnixMilli(1_700_000_000_000) }))
			_, ok := c.Read(ctx)
			assert.False(t, ok)

			_, err := c.load(ctx)
			assert.ErrorIs(t, err, common.ErrCacheReadInvalid)
		})
	}
}

func TestCatalogCache_EmptyCatalogIsAHit(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(5_000)
	c := NewCatalogCache(kv.NewMemoryStore(), WithClock(func() time.Time { return now }))

	require.NoError(t, c.Write(ctx, nil, now))

	entry, ok := c.Read(ctx)
	require.True(t, ok)
	assert.Empty(t, entry.Skins)
	assert.NotNil(t, entry.Skins)
}

func TestCatalogCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(5_000)
	store := kv.NewMemoryStore()
	c := NewCatalogCache(store, WithClock(func() time.Time { return now }))

	require.NoError(t, c.Write(ctx, testSkins(), now))
	require.NoError(t, c.Invalidate(ctx))

	_, ok := c.Read(ctx)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestCatalogCache_CapturedAt(t *testing.T) {
	ctx := context.Background()
	at := time.UnixMilli(1_700_000_000_000)
	c := NewCatalogCache(kv.NewMemoryStore(), WithClock(func() time.Time { return at.Add(72 * time.Hour) }))

	_, _, ok := c.CapturedAt(ctx)
	assert.False(t, ok)

	require.NoError(t, c.Write(ctx, testSkins(), at))

	got, count, ok := c.CapturedAt(ctx)
	require.True(t, ok)
	assert.True(t, at.Equal(got))
	assert.Equal(t, 2, count)

	// Stale entries still report their capture time.
	_, fresh := c.Read(ctx)
	assert.False(t, fresh)
}

func TestCatalogCache_WriteFailure(t *testing.T) {
	errDisk := errors.New("disk full")
	c := NewCatalogCache(failingStore{Store: kv.NewMemoryStore(), err: errDisk})

	err := c.Write(context.Background(), testSkins(), time.Now())
	assert.ErrorIs(t, err, common.ErrCacheWriteFailed)
	assert.ErrorIs(t, err, errDisk)
}

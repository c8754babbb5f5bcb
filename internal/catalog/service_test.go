package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/skinvault/internal/cache"
	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/gw2"
	"github.com/Veraticus/skinvault/internal/kv"
	"github.com/Veraticus/skinvault/internal/model"
	"github.com/Veraticus/skinvault/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenCache struct {
	writes int
}

func (b *brokenCache) Read(context.Context) (model.CachedCatalog, bool) {
	return model.CachedCatalog{}, false
}

func (b *brokenCache) Write(context.Context, []model.CanonicalSkin, time.Time) error {
	b.writes++
	return common.ErrCacheWriteFailed
}

func (b *brokenCache) Invalidate(context.Context) error {
	return errors.New("read-only")
}

func scenarioItems() []model.RawItem {
	return []model.RawItem{
		testutil.Weapon(1, 55, "Berserker's Ancient Sword").WithRarity(model.RarityRare).Build(),
		testutil.Weapon(2, 60, "Krait Shooter").WithWeaponType("Pistol").Build(),
		testutil.Weapon(3, 55, "Mighty Ancient Sword").WithRarity(model.RarityMasterwork).Build(),
		testutil.Weapon(4, 61, "Box of Fun").Build(),
		testutil.Weapon(5, 0, "Salvage Kit").WithType("Tool").Build(),
		testutil.Weapon(6, 99, "Twilight").WithWeaponType("Greatsword").WithRarity(model.RarityLegendary).WithoutStats().Build(),
	}
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newTestService(t *testing.T, client *gw2.MockClient, clk *clock) (*Service, *cache.CatalogCache) {
	t.Helper()
	c := cache.NewCatalogCache(testutil.SetupTestStore(t), cache.WithClock(clk.Now))
	return NewService(client, c, WithClock(clk.Now)), c
}

func TestService_BuildsCatalog(t *testing.T) {
	client := gw2.NewMockClient(scenarioItems()...)
	clk := &clock{now: time.UnixMilli(1_700_000_000_000)}
	svc, _ := newTestService(t, client, clk)

	skins, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, skins, 3)
	assert.Equal(t, 55, skins[0].ID)
	assert.Equal(t, model.RarityMasterwork, skins[0].Rarity)
	assert.Equal(t, "Ancient Sword", skins[0].Name)
	assert.Equal(t, 60, skins[1].ID)
	assert.Equal(t, model.WeaponPistol, skins[1].WeaponType)
	assert.Equal(t, 99, skins[2].ID)
}

func TestService_UsesFreshCache(t *testing.T) {
	client := gw2.NewMockClient(scenarioItems()...)
	clk := &clock{now: time.UnixMilli(1_700_000_000_000)}
	svc, _ := newTestService(t, client, clk)
	ctx := context.Background()

	first, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, client.ItemIDsCalls)

	clk.now = clk.now.Add(23 * time.Hour)
	second, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.ItemIDsCalls, "fresh cache must not refetch")

	clk.now = clk.now.Add(2 * time.Hour)
	third, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, third)
	assert.Equal(t, 2, client.ItemIDsCalls, "stale cache triggers a rebuild")
}

func TestService_Refresh(t *testing.T) {
	client := gw2.NewMockClient(scenarioItems()...)
	clk := &clock{now: time.UnixMilli(1_700_000_000_000)}
	svc, c := newTestService(t, client, clk)
	ctx := context.Background()

	_, err := svc.Load(ctx)
	require.NoError(t, err)

	clk.now = clk.now.Add(time.Minute)
	_, err = svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, client.ItemIDsCalls)

	at, count, ok := c.CapturedAt(ctx)
	require.True(t, ok)
	assert.True(t, clk.now.Equal(at))
	assert.Equal(t, 3, count)
}

func TestService_FetchFailureLeavesCacheUntouched(t *testing.T) {
	client := gw2.NewMockClient(scenarioItems()...)
	client.ItemsFn = func(context.Context, []int) ([]model.RawItem, error) {
		return nil, errors.New("timeout")
	}
	clk := &clock{now: time.UnixMilli(1_700_000_000_000)}
	svc, c := newTestService(t, client, clk)

	skins, err := svc.Load(context.Background())
	assert.Nil(t, skins)
	assert.ErrorIs(t, err, common.ErrFetchFailed)

	_, _, ok := c.CapturedAt(context.Background())
	assert.False(t, ok)
}

func TestService_CacheWriteFailureIsSwallowed(t *testing.T) {
	client := gw2.NewMockClient(scenarioItems()...)
	broken := &brokenCache{}
	svc := NewService(client, broken)

	skins, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, skins, 3)
	assert.Equal(t, 1, broken.writes)

	skins, err = svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, skins, 3)
}

func TestService_WithoutCache(t *testing.T) {
	client := gw2.NewMockClient(scenarioItems()...)
	svc := NewService(client, nil, WithBatchSize(2), WithPreference(PreferHighest))

	skins, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, skins, 3)
	assert.Equal(t, model.RarityRare, skins[0].Rarity)
	assert.Len(t, client.ItemsCalls, 3)
}

func TestService_ReportsProgress(t *testing.T) {
	client := gw2.NewMockClient(scenarioItems()...)
	var last [2]int
	svc := NewService(client, cache.NewCatalogCache(kv.NewMemoryStore()), WithBatchSize(4), WithProgress(func(done, total int) {
		last = [2]int{done, total}
	}))

	_, err := svc.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [2]int{6, 6}, last)
}

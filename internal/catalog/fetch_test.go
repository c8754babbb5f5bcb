package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/gw2"
	"github.com/Veraticus/skinvault/internal/model"
	"github.com/Veraticus/skinvault/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockCatalog(n int) (*gw2.MockClient, []model.RawItem) {
	items := make([]model.RawItem, n)
	for i := range items {
		items[i] = testutil.Weapon(i+1, 5000+i, "Sword").Build()
	}
	return gw2.NewMockClient(items...), items
}

func TestPages_SequentialBatches(t *testing.T) {
	client, items := mockCatalog(450)
	ids, err := client.ItemIDs(context.Background())
	require.NoError(t, err)

	var sizes []int
	var got []model.RawItem
	for page, err := range Pages(context.Background(), client, ids, 200) {
		require.NoError(t, err)
		sizes = append(sizes, len(page))
		got = append(got, page...)
	}

	assert.Equal(t, []int{200, 200, 50}, sizes)
	assert.Equal(t, items, got)
	require.Len(t, client.ItemsCalls, 3)
	assert.Equal(t, 1, client.ItemsCalls[0][0])
	assert.Equal(t, 201, client.ItemsCalls[1][0])
	assert.Equal(t, 401, client.ItemsCalls[2][0])
}

func TestPages_Restartable(t *testing.T) {
	client, _ := mockCatalog(5)
	ids := []int{1, 2, 3, 4, 5}
	pages := Pages(context.Background(), client, ids, 2)

	count := func() int {
		n := 0
		for page, err := range pages {
			require.NoError(t, err)
			n += len(page)
		}
		return n
	}

	assert.Equal(t, 5, count())
	assert.Equal(t, 5, count())
	assert.Len(t, client.ItemsCalls, 6)
}

func TestPages_LazyAndStoppable(t *testing.T) {
	client, _ := mockCatalog(10)
	ids := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	pages := Pages(context.Background(), client, ids, 3)

	assert.Empty(t, client.ItemsCalls, "nothing is fetched before ranging")

	for range pages {
		break
	}
	assert.Len(t, client.ItemsCalls, 1)
}

func TestPages_ClampsBatchSize(t *testing.T) {
	client, _ := mockCatalog(401)
	ids, err := client.ItemIDs(context.Background())
	require.NoError(t, err)

	for _, err := range Pages(context.Background(), client, ids, 1000) {
		require.NoError(t, err)
	}
	for _, call := range client.ItemsCalls {
		assert.LessOrEqual(t, len(call), MaxBatchSize)
	}
	assert.Len(t, client.ItemsCalls, 3)
}

func TestFetchAll(t *testing.T) {
	client, items := mockCatalog(250)

	var progress [][2]int
	got, err := FetchAll(context.Background(), client, FetchOptions{
		BatchSize: 100,
		OnProgress: func(fetched, total int) {
			progress = append(progress, [2]int{fetched, total})
		},
	})

	require.NoError(t, err)
	assert.Equal(t, items, got)
	assert.Equal(t, 1, client.ItemIDsCalls)
	assert.Equal(t, [][2]int{{100, 250}, {200, 250}, {250, 250}}, progress)
}

func TestFetchAll_EmptyCatalog(t *testing.T) {
	got, err := FetchAll(context.Background(), gw2.NewMockClient(), FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchAll_BatchFailureDiscardsPartialResults(t *testing.T) {
	client, items := mockCatalog(450)
	errBoom := errors.New("connection reset")
	serve := client.ItemsFn
	client.ItemsFn = func(ctx context.Context, ids []int) ([]model.RawItem, error) {
		if ids[0] == 401 {
			return nil, errBoom
		}
		return serve(ctx, ids)
	}

	got, err := FetchAll(context.Background(), client, FetchOptions{})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, common.ErrFetchFailed)
	assert.ErrorIs(t, err, errBoom)
	assert.Len(t, client.ItemsCalls, 3, "no retry after the failing batch")
	assert.NotEmpty(t, items)
}

func TestFetchAll_IDListFailure(t *testing.T) {
	client := gw2.NewMockClient()
	client.ItemIDsFn = func(context.Context) ([]int, error) {
		return nil, errors.New("503")
	}

	_, err := FetchAll(context.Background(), client, FetchOptions{})
	assert.ErrorIs(t, err, common.ErrFetchFailed)
	assert.Empty(t, client.ItemsCalls)
}

func TestFetchAll_Canceled(t *testing.T) {
	client, _ := mockCatalog(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchAll(ctx, client, FetchOptions{})
	assert.ErrorIs(t, err, common.ErrFetchFailed)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, client.ItemsCalls)
}

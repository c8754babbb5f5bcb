package credential

import (
	"context"
	"testing"

	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/kv"
	"github.com/Veraticus/skinvault/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := testutil.SetupTestStore(t)
	store := NewStore(backend)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Save(ctx, "  ABCD-1234-EFGH  "))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ABCD-1234-EFGH", got)

	raw, err := backend.Get(ctx, Key)
	require.NoError(t, err)
	assert.Equal(t, "ABCD-1234-EFGH", raw)

	require.NoError(t, store.Clear(ctx))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Clear(ctx), "clearing twice is fine")
}

func TestStore_SaveRejectsBlank(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())

	err := store.Save(context.Background(), "   ")
	assert.ErrorIs(t, err, common.ErrMissingCredential)
}

func TestStore_Resolve(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore())
	require.NoError(t, store.Save(ctx, "STORED"))

	got, err := store.Resolve(ctx, " FLAG ")
	require.NoError(t, err)
	assert.Equal(t, "FLAG", got)

	got, err = store.Resolve(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "STORED", got)
}

func TestMask(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "empty", key: "", want: ""},
		{name: "short", key: "abcd", want: "****"},
		{name: "exactly eight", key: "abcdefgh", want: "********"},
		{name: "long", key: "ABCD-1234-WXYZ", want: "ABCD******WXYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mask(tt.key))
		})
	}
}

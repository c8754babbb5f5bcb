package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/gw2"
	"github.com/Veraticus/skinvault/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLoader struct {
	err   error
	skins []model.CanonicalSkin
}

func (s staticLoader) Load(context.Context) ([]model.CanonicalSkin, error) {
	return s.skins, s.err
}

func TestSession_Load(t *testing.T) {
	source := accountMock(map[string][]int{"KEY-A": {55, 99}})
	catalog := []model.CanonicalSkin{
		{ID: 55, Name: "Ancient Sword", WeaponType: model.WeaponSword, Rarity: model.RarityMasterwork},
		{ID: 60, Name: "Krait Shooter", WeaponType: model.WeaponPistol, Rarity: model.RarityExotic},
		{ID: 99, Name: "Twilight", WeaponType: model.WeaponGreatsword, Rarity: model.RarityLegendary},
	}
	session := NewSession(staticLoader{skins: catalog}, NewTracker(source))

	require.NoError(t, session.Load(context.Background(), "KEY-A"))

	view := session.View(model.FilterState{})
	assert.Equal(t, Stats{Total: 3, Unlocked: 2, Percentage: 67}, view.Stats)
	assert.Equal(t, 3, view.Shown)
	assert.Equal(t, catalog, session.Skins())
}

func TestSession_OwnedFailureDegrades(t *testing.T) {
	source := accountMock(nil)
	catalog := []model.CanonicalSkin{{ID: 55, Name: "Ancient Sword"}}
	session := NewSession(staticLoader{skins: catalog}, NewTracker(source))

	require.NoError(t, session.Load(context.Background(), "BAD-KEY"))
	assert.Equal(t, Stats{Total: 1}, session.View(model.FilterState{}).Stats)
}

func TestSession_CatalogFailureIsTerminal(t *testing.T) {
	session := NewSession(staticLoader{err: common.ErrFetchFailed}, NewTracker(gw2.NewMockClient()))

	err := session.Load(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrFetchFailed)
	assert.Empty(t, session.Skins())
}

func TestSession_SetCredential(t *testing.T) {
	source := accountMock(map[string][]int{"KEY-A": {55}})
	session := NewSession(staticLoader{skins: []model.CanonicalSkin{{ID: 55}}}, NewTracker(source))
	require.NoError(t, session.Load(context.Background(), ""))
	assert.Equal(t, 0, source.AccountCalls())

	res := session.SetCredential(context.Background(), "KEY-A")
	require.NoError(t, res.Err)
	assert.Equal(t, 100, session.View(model.FilterState{}).Stats.Percentage)

	session.SetCredential(context.Background(), "")
	assert.Equal(t, 0, session.View(model.FilterState{}).Stats.Unlocked)
	assert.Equal(t, 1, source.AccountCalls())
	assert.Same(t, session.Tracker(), session.Tracker())
	assert.False(t, errors.Is(res.Err, common.ErrCredentialFetchFailed))
}

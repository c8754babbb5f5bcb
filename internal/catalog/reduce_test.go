package catalog

import (
	"testing"

	"github.com/Veraticus/skinvault/internal/model"
	"github.com/Veraticus/skinvault/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Berserker's Ancient Sword", want: "Ancient Sword"},
		{input: "Viper's Krait Shooter", want: "Krait Shooter"},
		{input: "Mighty Bronze Axe", want: "Bronze Axe"},
		{input: "Valkyrie Pearl Carver", want: "Pearl Carver"},
		{input: "Berserker's Mighty Sword", want: "Mighty Sword"},
		{input: "Berserker'sSword", want: "Berserker'sSword"},
		{input: "Berserker's", want: "Berserker's"},
		{input: "Twilight", want: "Twilight"},
		{input: "The Mighty Sword", want: "The Mighty Sword"},
		{input: "mighty Sword", want: "mighty Sword"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanName(tt.input))
		})
	}
}

func TestReduce_LowestRarityWins(t *testing.T) {
	items := []model.RawItem{
		testutil.Weapon(1, 55, "Berserker's Ancient Sword").WithRarity(model.RarityRare).Build(),
		testutil.Weapon(2, 55, "Mighty Ancient Sword").WithRarity(model.RarityMasterwork).Build(),
	}

	skins := Reduce(items, PreferLowest)
	require.Len(t, skins, 1)
	assert.Equal(t, 55, skins[0].ID)
	assert.Equal(t, model.RarityMasterwork, skins[0].Rarity)
	assert.Equal(t, "Ancient Sword", skins[0].Name)
	assert.Equal(t, items[1].Icon, skins[0].Icon)
	assert.Equal(t, items[1].ChatLink, skins[0].ChatLink)
	assert.Equal(t, model.WeaponSword, skins[0].WeaponType)
}

func TestReduce_TiesKeepFirstSeen(t *testing.T) {
	items := []model.RawItem{
		testutil.Weapon(1, 7, "First Staff").WithWeaponType("Staff").WithRarity(model.RarityFine).Build(),
		testutil.Weapon(2, 7, "Second Staff").WithWeaponType("Staff").WithRarity(model.RarityFine).Build(),
		testutil.Weapon(3, 7, "Third Staff").WithWeaponType("Staff").WithRarity(model.RarityExotic).Build(),
	}

	skins := Reduce(items, PreferLowest)
	require.Len(t, skins, 1)
	assert.Equal(t, "First Staff", skins[0].Name)
}

func TestReduce_UnknownRarityNeverReplaces(t *testing.T) {
	items := []model.RawItem{
		testutil.Weapon(1, 7, "Known Staff").WithRarity(model.RarityExotic).Build(),
		testutil.Weapon(2, 7, "Odd Staff").WithRarity("Mythic").Build(),
	}

	skins := Reduce(items, PreferLowest)
	require.Len(t, skins, 1)
	assert.Equal(t, "Known Staff", skins[0].Name)
}

func TestReduce_PreferHighest(t *testing.T) {
	items := []model.RawItem{
		testutil.Weapon(1, 55, "Ancient Sword").WithRarity(model.RarityMasterwork).Build(),
		testutil.Weapon(2, 55, "Ancient Sword").WithRarity(model.RarityExotic).Build(),
		testutil.Weapon(3, 55, "Ancient Sword").WithRarity(model.RarityRare).Build(),
	}

	skins := Reduce(items, PreferHighest)
	require.Len(t, skins, 1)
	assert.Equal(t, model.RarityExotic, skins[0].Rarity)
}

func TestReduce_InvariantsOverMixedCatalog(t *testing.T) {
	rarities := model.Rarities()
	var items []model.RawItem
	minBySkin := make(map[int]model.Rarity)

	// Deterministic spread of 400 items over 37 skins and all rarities.
	for i := 0; i < 400; i++ {
		skin := 1000 + (i*7)%37
		rarity := rarities[(i*5+3)%len(rarities)]
		items = append(items, testutil.Weapon(i, skin, "Item").WithRarity(rarity).Build())

		if current, ok := minBySkin[skin]; !ok || rarity.Less(current) {
			minBySkin[skin] = rarity
		}
	}

	skins := Reduce(items, PreferLowest)
	assert.Len(t, skins, len(minBySkin))

	seen := make(map[int]bool)
	for _, s := range skins {
		assert.False(t, seen[s.ID], "skin %d appears twice", s.ID)
		seen[s.ID] = true
		assert.Equal(t, minBySkin[s.ID], s.Rarity, "skin %d", s.ID)
	}

	// Output follows first-seen order.
	assert.Equal(t, items[0].DefaultSkin, skins[0].ID)
	assert.Equal(t, items[1].DefaultSkin, skins[1].ID)
}

func TestReduce_Empty(t *testing.T) {
	assert.Empty(t, Reduce(nil, PreferLowest))
}

func TestParsePreference(t *testing.T) {
	p, err := ParsePreference("")
	require.NoError(t, err)
	assert.Equal(t, PreferLowest, p)

	p, err = ParsePreference("Highest")
	require.NoError(t, err)
	assert.Equal(t, PreferHighest, p)

	_, err = ParsePreference("median")
	assert.Error(t, err)
}

// Package collection merges the skin catalog with an account's unlocks into
// filterable collection views.
package collection

import (
	"math"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Veraticus/skinvault/internal/model"
)

// Stats summarizes how much of a catalog is unlocked.
type Stats struct {
	Total      int `json:"total" yaml:"total"`
	Unlocked   int `json:"unlocked" yaml:"unlocked"`
	Percentage int `json:"percentage" yaml:"percentage"`
}

// CategoryStat is the unlock summary of one weapon type.
type CategoryStat struct {
	WeaponType model.WeaponType `json:"weapon_type" yaml:"weapon_type"`
	Stats      `yaml:",inline"`
}

// SkinView is one catalog row with its unlock status.
type SkinView struct {
	model.CanonicalSkin `yaml:",inline"`
	Unlocked            bool `json:"unlocked" yaml:"unlocked"`
}

// View is everything a presentation layer needs to render the collection.
type View struct {
	Filter      model.FilterState  `json:"-" yaml:"-"`
	Skins       []SkinView         `json:"skins" yaml:"skins"`
	Categories  []CategoryStat     `json:"categories" yaml:"categories"`
	WeaponTypes []model.WeaponType `json:"weapon_types" yaml:"weapon_types"`
	Stats       Stats              `json:"stats" yaml:"stats"`
	Shown       int                `json:"shown" yaml:"shown"`
}

// IsUnlocked reports whether the account owns skinID.
func IsUnlocked(skinID int, owned model.OwnedSet) bool {
	return owned.Has(skinID)
}

// ApplyFilters keeps the skins matching every selector in f, preserving order.
// With all selectors unrestricted the input is returned unchanged.
func ApplyFilters(skins []model.CanonicalSkin, f model.FilterState) []model.CanonicalSkin {
	if f.IsZero() {
		return skins
	}

	fold := cases.Fold()
	query := fold.String(f.Search)

	out := make([]model.CanonicalSkin, 0, len(skins))
	for _, skin := range skins {
		if !f.MatchesAllTypes() && string(skin.WeaponType) != f.WeaponType {
			continue
		}
		if !f.MatchesAllRarities() && string(skin.Rarity) != f.Rarity {
			continue
		}
		if query != "" && !strings.Contains(fold.String(skin.Name), query) {
			continue
		}
		out = append(out, skin)
	}
	return out
}

// ComputeStats counts unlocked skins. The percentage is 0 for an empty catalog.
func ComputeStats(skins []model.CanonicalSkin, owned model.OwnedSet) Stats {
	stats := Stats{Total: len(skins)}
	for _, skin := range skins {
		if owned.Has(skin.ID) {
			stats.Unlocked++
		}
	}
	stats.Percentage = percentage(stats.Unlocked, stats.Total)
	return stats
}

// CategoryCounts returns per weapon type stats in canonical weapon order,
// skipping types with no skins.
func CategoryCounts(skins []model.CanonicalSkin, owned model.OwnedSet) []CategoryStat {
	byType := make(map[model.WeaponType]*Stats)
	for _, skin := range skins {
		s, ok := byType[skin.WeaponType]
		if !ok {
			s = &Stats{}
			byType[skin.WeaponType] = s
		}
		s.Total++
		if owned.Has(skin.ID) {
			s.Unlocked++
		}
	}

	out := make([]CategoryStat, 0, len(byType))
	for _, w := range model.WeaponTypes() {
		s, ok := byType[w]
		if !ok {
			continue
		}
		s.Percentage = percentage(s.Unlocked, s.Total)
		out = append(out, CategoryStat{WeaponType: w, Stats: *s})
	}
	return out
}

// AvailableWeaponTypes lists the weapon types present in skins, sorted by name.
func AvailableWeaponTypes(skins []model.CanonicalSkin) []model.WeaponType {
	seen := make(map[model.WeaponType]struct{})
	types := make([]model.WeaponType, 0, len(model.WeaponTypes()))
	for _, skin := range skins {
		if skin.WeaponType == "" {
			continue
		}
		if _, ok := seen[skin.WeaponType]; ok {
			continue
		}
		seen[skin.WeaponType] = struct{}{}
		types = append(types, skin.WeaponType)
	}
	slices.Sort(types)
	return types
}

// BuildView merges the catalog with the owned set and applies f.
// Stats always cover the whole catalog; Skins only the filtered rows.
func BuildView(skins []model.CanonicalSkin, owned model.OwnedSet, f model.FilterState) View {
	filtered := ApplyFilters(skins, f)

	rows := make([]SkinView, len(filtered))
	for i, skin := range filtered {
		rows[i] = SkinView{CanonicalSkin: skin, Unlocked: owned.Has(skin.ID)}
	}

	return View{
		Filter:      f,
		Skins:       rows,
		Categories:  CategoryCounts(skins, owned),
		WeaponTypes: AvailableWeaponTypes(skins),
		Stats:       ComputeStats(skins, owned),
		Shown:       len(rows),
	}
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

package catalog

import (
	"fmt"
	"strings"

	"github.com/Veraticus/skinvault/internal/model"
)

// Preference decides which item represents a skin when several share it.
type Preference string

const (
	// PreferLowest keeps the easiest item to obtain.
	PreferLowest Preference = "lowest"
	// PreferHighest keeps the most prestigious item.
	PreferHighest Preference = "highest"
)

// ParsePreference validates a configured rarity preference.
func ParsePreference(s string) (Preference, error) {
	switch Preference(strings.ToLower(s)) {
	case PreferLowest, "":
		return PreferLowest, nil
	case PreferHighest:
		return PreferHighest, nil
	default:
		return "", fmt.Errorf("unknown rarity preference %q (want lowest or highest)", s)
	}
}

func (p Preference) replaces(candidate, current model.Rarity) bool {
	if p == PreferHighest {
		return current.Less(candidate)
	}
	return candidate.Less(current)
}

// statPrefixes are the stat-combination adjectives the game prepends to weapon names.
var statPrefixes = []string{
	"Mighty", "Precise", "Vigorous", "Malign", "Healing", "Tough", "Vital",
	"Hearty", "Ravaging", "Rejuvenating", "Honed", "Strong", "Potent",
	"Enduring", "Forsaken", "Berserker's", "Rampager's", "Soldier's",
	"Settler's", "Cleric's", "Magi's", "Shaman's", "Knight's", "Cavalier's",
	"Nomad's", "Sentinel's", "Giver's", "Carrion", "Rabid", "Dire", "Mending",
	"Apothecary's", "Sinister", "Celestial", "Trailblazer's", "Commander's",
	"Wanderer's", "Marauder's", "Crusader's", "Viper's", "Seraph's",
	"Marshal's", "Harrier's", "Grieving", "Zealot's", "Minstrel's",
	"Diviner's", "Valkyrie", "Assassin's",
}

// CleanName strips one leading stat prefix followed by a space.
func CleanName(name string) string {
	for _, prefix := range statPrefixes {
		if rest, ok := strings.CutPrefix(name, prefix+" "); ok {
			return rest
		}
	}
	return name
}

// Reduce collapses classified items into one CanonicalSkin per skin id,
// in first-seen order. Ties keep the first item seen.
func Reduce(items []model.RawItem, pref Preference) []model.CanonicalSkin {
	index := make(map[int]int, len(items))
	skins := make([]model.CanonicalSkin, 0, len(items))

	for _, item := range items {
		skin := toCanonical(item)

		pos, seen := index[item.DefaultSkin]
		if !seen {
			index[item.DefaultSkin] = len(skins)
			skins = append(skins, skin)
			continue
		}

		if pref.replaces(item.Rarity, skins[pos].Rarity) {
			skins[pos] = skin
		}
	}

	return skins
}

func toCanonical(item model.RawItem) model.CanonicalSkin {
	skin := model.CanonicalSkin{
		ID:       item.DefaultSkin,
		Name:     CleanName(item.Name),
		Icon:     item.Icon,
		Rarity:   item.Rarity,
		ChatLink: item.ChatLink,
	}
	if item.Details != nil {
		skin.WeaponType = model.WeaponType(item.Details.Type)
	}
	return skin
}

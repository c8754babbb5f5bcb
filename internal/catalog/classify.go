package catalog

import (
	"regexp"
	"strings"

	"github.com/Veraticus/skinvault/internal/model"
)

// Rejection reasons reported by Reject.
const (
	ReasonNotWeapon     = "not a weapon with a skin"
	ReasonBadName       = "blank or placeholder name"
	ReasonNoDetails     = "missing weapon details"
	ReasonNoPower       = "missing weapon power"
	ReasonQuestItem     = "account-bound quest item"
	ReasonExcluded      = "excluded keyword"
	ReasonNoStats       = "no stats and not ascended or legendary"
	ReasonUnknownWeapon = "unknown weapon type"
)

var placeholderName = regexp.MustCompile(`^\(\(\d+\)\)$`)

// excludedKeywords matches novelty tools, story-only weapons and PvP-only skins.
var excludedKeywords = []string{
	"fireworks",
	"scanner",
	"adjuster",
	"polarizer",
	"box of fun",
	"caladbolg",
	"gladiator weapon",
}

// Classify reports whether item is a real equippable weapon that contributes a skin.
func Classify(item model.RawItem) bool {
	return Reject(item) == ""
}

// Reject returns the first reason item fails classification, or "" if it passes.
func Reject(item model.RawItem) string {
	if item.Type != model.ItemTypeWeapon || item.DefaultSkin == 0 {
		return ReasonNotWeapon
	}

	if strings.TrimSpace(item.Name) == "" || placeholderName.MatchString(item.Name) {
		return ReasonBadName
	}

	details := item.Details
	if details == nil || details.Type == "" {
		return ReasonNoDetails
	}

	if details.MinPower <= 0 || details.MaxPower <= 0 {
		return ReasonNoPower
	}

	// NoSell + AccountBound is story loot unless it binds like real gear.
	if item.HasFlag(model.FlagNoSell) && item.HasFlag(model.FlagAccountBound) &&
		!item.HasFlag(model.FlagSoulbindOnAcquire) && !item.HasFlag(model.FlagSoulBindOnUse) {
		return ReasonQuestItem
	}

	name := strings.ToLower(item.Name)
	for _, keyword := range excludedKeywords {
		if strings.Contains(name, keyword) {
			return ReasonExcluded
		}
	}

	if !item.HasStats() && item.Rarity != model.RarityAscended && item.Rarity != model.RarityLegendary {
		return ReasonNoStats
	}

	if !model.WeaponType(details.Type).Valid() {
		return ReasonUnknownWeapon
	}

	return ""
}

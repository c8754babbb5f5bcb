package model

import (
	"fmt"
	"strings"
)

// Rarity is the quality tier of an item.
type Rarity string

// Rarities in ascending order.
const (
	RarityJunk       Rarity = "Junk"
	RarityBasic      Rarity = "Basic"
	RarityFine       Rarity = "Fine"
	RarityMasterwork Rarity = "Masterwork"
	RarityRare       Rarity = "Rare"
	RarityExotic     Rarity = "Exotic"
	RarityAscended   Rarity = "Ascended"
	RarityLegendary  Rarity = "Legendary"
)

var rarityOrder = []Rarity{
	RarityJunk,
	RarityBasic,
	RarityFine,
	RarityMasterwork,
	RarityRare,
	RarityExotic,
	RarityAscended,
	RarityLegendary,
}

// Rarities returns every rarity from Junk to Legendary.
func Rarities() []Rarity {
	out := make([]Rarity, len(rarityOrder))
	copy(out, rarityOrder)
	return out
}

// Rank returns the position of r in the total order, or -1 if r is unknown.
func (r Rarity) Rank() int {
	for i, known := range rarityOrder {
		if r == known {
			return i
		}
	}
	return -1
}

// Valid reports whether r is one of the known rarities.
func (r Rarity) Valid() bool {
	return r.Rank() >= 0
}

// Less reports whether r ranks strictly below other.
// Unknown rarities are never ordered against anything.
func (r Rarity) Less(other Rarity) bool {
	a, b := r.Rank(), other.Rank()
	if a < 0 || b < 0 {
		return false
	}
	return a < b
}

// String implements fmt.Stringer.
func (r Rarity) String() string {
	return string(r)
}

// ParseRarity resolves a rarity name case-insensitively.
func ParseRarity(s string) (Rarity, error) {
	for _, r := range rarityOrder {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown rarity %q", s)
}

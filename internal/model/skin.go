package model

import (
	"strings"
	"time"
)

// CanonicalSkin is the single record standing for every item that shares a skin id.
type CanonicalSkin struct {
	Name       string     `json:"name" yaml:"name"`
	Icon       string     `json:"icon" yaml:"icon"`
	Rarity     Rarity     `json:"rarity" yaml:"rarity"`
	WeaponType WeaponType `json:"weapon_type" yaml:"weapon_type"`
	ChatLink   string     `json:"chat_link" yaml:"chat_link"`
	ID         int        `json:"id" yaml:"id"`
}

// CachedCatalog is a persisted catalog snapshot and the moment it was captured.
type CachedCatalog struct {
	CapturedAt time.Time
	Skins      []CanonicalSkin
}

// OwnedSet is the set of skin ids unlocked on an account.
type OwnedSet map[int]struct{}

// NewOwnedSet builds an OwnedSet from a list of skin ids.
func NewOwnedSet(ids []int) OwnedSet {
	set := make(OwnedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is unlocked. A nil set owns nothing.
func (s OwnedSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of unlocked ids.
func (s OwnedSet) Len() int {
	return len(s)
}

// All is the selector value that matches every weapon type or rarity.
const All = "all"

// FilterState holds the user's current view filters. It is never persisted.
type FilterState struct {
	WeaponType string
	Rarity     string
	Search     string
}

// MatchesAllTypes reports whether the weapon type selector is unrestricted.
func (f FilterState) MatchesAllTypes() bool {
	return f.WeaponType == "" || strings.EqualFold(f.WeaponType, All)
}

// MatchesAllRarities reports whether the rarity selector is unrestricted.
func (f FilterState) MatchesAllRarities() bool {
	return f.Rarity == "" || strings.EqualFold(f.Rarity, All)
}

// IsZero reports whether no filter narrows the catalog.
func (f FilterState) IsZero() bool {
	return f.MatchesAllTypes() && f.MatchesAllRarities() && f.Search == ""
}

// Package model defines the core data types shared across skinvault.
package model

// ItemTypeWeapon is the remote type tag carried by every weapon item.
const ItemTypeWeapon = "Weapon"

// Item flags that decide whether an account-bound weapon is a real drop.
const (
	FlagNoSell            = "NoSell"
	FlagAccountBound      = "AccountBound"
	FlagSoulbindOnAcquire = "SoulbindOnAcquire"
	FlagSoulBindOnUse     = "SoulBindOnUse"
)

// RawItem is a single record from the remote item catalog.
// It only lives for the duration of one fetch cycle.
type RawItem struct {
	Details     *WeaponDetails `json:"details,omitempty"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Rarity      Rarity         `json:"rarity"`
	Icon        string         `json:"icon"`
	ChatLink    string         `json:"chat_link"`
	Flags       []string       `json:"flags"`
	ID          int            `json:"id"`
	DefaultSkin int            `json:"default_skin,omitempty"` // 0 when the item has no skin
}

// WeaponDetails is the weapon-specific sub-record of a RawItem.
type WeaponDetails struct {
	InfixUpgrade *InfixUpgrade `json:"infix_upgrade,omitempty"`
	Type         string        `json:"type"`
	StatChoices  []int         `json:"stat_choices,omitempty"` // non-nil means selectable stats exist
	MinPower     int           `json:"min_power"`
	MaxPower     int           `json:"max_power"`
}

// InfixUpgrade is the fixed stat bonus rolled into an item.
type InfixUpgrade struct {
	Attributes []Attribute `json:"attributes,omitempty"`
	ID         int         `json:"id"`
}

// Attribute is one stat modifier of an infix upgrade.
type Attribute struct {
	Attribute string `json:"attribute"`
	Modifier  int    `json:"modifier"`
}

// HasFlag reports whether the item carries the given flag.
func (i RawItem) HasFlag(flag string) bool {
	for _, f := range i.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// HasStats reports whether the item has a fixed or selectable stat payload.
func (i RawItem) HasStats() bool {
	if i.Details == nil {
		return false
	}
	return i.Details.InfixUpgrade != nil || i.Details.StatChoices != nil
}

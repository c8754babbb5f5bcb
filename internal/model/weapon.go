package model

import (
	"fmt"
	"strings"
)

// WeaponType is one of the equippable weapon kinds that carry a skin.
type WeaponType string

// Weapon types, grouped as one-handed, off-hand, two-handed and aquatic.
const (
	WeaponAxe        WeaponType = "Axe"
	WeaponDagger     WeaponType = "Dagger"
	WeaponMace       WeaponType = "Mace"
	WeaponPistol     WeaponType = "Pistol"
	WeaponScepter    WeaponType = "Scepter"
	WeaponSword      WeaponType = "Sword"
	WeaponFocus      WeaponType = "Focus"
	WeaponShield     WeaponType = "Shield"
	WeaponTorch      WeaponType = "Torch"
	WeaponWarhorn    WeaponType = "Warhorn"
	WeaponGreatsword WeaponType = "Greatsword"
	WeaponHammer     WeaponType = "Hammer"
	WeaponLongbow    WeaponType = "Longbow"
	WeaponRifle      WeaponType = "Rifle"
	WeaponShortBow   WeaponType = "ShortBow"
	WeaponStaff      WeaponType = "Staff"
	WeaponHarpoon    WeaponType = "Harpoon"
	WeaponSpeargun   WeaponType = "Speargun"
	WeaponTrident    WeaponType = "Trident"
)

var weaponTypes = []WeaponType{
	WeaponAxe, WeaponDagger, WeaponMace, WeaponPistol, WeaponScepter, WeaponSword,
	WeaponFocus, WeaponShield, WeaponTorch, WeaponWarhorn,
	WeaponGreatsword, WeaponHammer, WeaponLongbow, WeaponRifle, WeaponShortBow, WeaponStaff,
	WeaponHarpoon, WeaponSpeargun, WeaponTrident,
}

// WeaponTypes returns every weapon type in canonical order.
func WeaponTypes() []WeaponType {
	out := make([]WeaponType, len(weaponTypes))
	copy(out, weaponTypes)
	return out
}

// Valid reports whether w belongs to the closed set of weapon types.
// The comparison is exact; remote records use the canonical spelling.
func (w WeaponType) Valid() bool {
	for _, known := range weaponTypes {
		if w == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (w WeaponType) String() string {
	return string(w)
}

// ParseWeaponType resolves user input to a weapon type case-insensitively.
func ParseWeaponType(s string) (WeaponType, error) {
	for _, w := range weaponTypes {
		if strings.EqualFold(s, string(w)) {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown weapon type %q", s)
}

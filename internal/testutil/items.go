package testutil

import (
	"fmt"

	"github.com/Veraticus/skinvault/internal/model"
)

// ItemBuilder builds RawItem fixtures. The zero configuration is a valid
// exotic sword that passes classification.
//
// Example:
//
//	item := testutil.Weapon(1, 55, "Berserker's Ancient Sword").
//		WithRarity(model.RarityRare).
//		Build()
type ItemBuilder struct {
	item model.RawItem
}

// Weapon starts a builder for a classifiable weapon item.
func Weapon(id, skinID int, name string) *ItemBuilder {
	return &ItemBuilder{item: model.RawItem{
		ID:          id,
		Name:        name,
		Type:        model.ItemTypeWeapon,
		Rarity:      model.RarityExotic,
		Icon:        fmt.Sprintf("https://render.guildwars2.com/file/%d.png", id),
		ChatLink:    fmt.Sprintf("[&item%d]", id),
		DefaultSkin: skinID,
		Flags:       []string{model.FlagSoulBindOnUse},
		Details: &model.WeaponDetails{
			Type:         string(model.WeaponSword),
			MinPower:     905,
			MaxPower:     1000,
			InfixUpgrade: &model.InfixUpgrade{ID: 161},
		},
	}}
}

// WithRarity sets the item rarity.
func (b *ItemBuilder) WithRarity(r model.Rarity) *ItemBuilder {
	b.item.Rarity = r
	return b
}

// WithWeaponType sets the weapon-details type.
func (b *ItemBuilder) WithWeaponType(w string) *ItemBuilder {
	b.ensureDetails().Type = w
	return b
}

// WithType sets the top-level item type tag.
func (b *ItemBuilder) WithType(t string) *ItemBuilder {
	b.item.Type = t
	return b
}

// WithFlags replaces the item flags.
func (b *ItemBuilder) WithFlags(flags ...string) *ItemBuilder {
	b.item.Flags = flags
	return b
}

// WithPower sets the min and max power.
func (b *ItemBuilder) WithPower(minPower, maxPower int) *ItemBuilder {
	d := b.ensureDetails()
	d.MinPower = minPower
	d.MaxPower = maxPower
	return b
}

// WithoutStats removes both the infix upgrade and the stat choices.
func (b *ItemBuilder) WithoutStats() *ItemBuilder {
	d := b.ensureDetails()
	d.InfixUpgrade = nil
	d.StatChoices = nil
	return b
}

// WithStatChoices replaces the fixed stats with selectable ones.
func (b *ItemBuilder) WithStatChoices(choices ...int) *ItemBuilder {
	d := b.ensureDetails()
	d.InfixUpgrade = nil
	if choices == nil {
		choices = []int{}
	}
	d.StatChoices = choices
	return b
}

// WithoutDetails drops the weapon-details sub-record.
func (b *ItemBuilder) WithoutDetails() *ItemBuilder {
	b.item.Details = nil
	return b
}

// WithoutSkin clears the default skin id.
func (b *ItemBuilder) WithoutSkin() *ItemBuilder {
	b.item.DefaultSkin = 0
	return b
}

// Build returns a copy of the configured item.
func (b *ItemBuilder) Build() model.RawItem {
	item := b.item
	item.Flags = append([]string(nil), b.item.Flags...)
	if b.item.Details != nil {
		details := *b.item.Details
		item.Details = &details
	}
	return item
}

func (b *ItemBuilder) ensureDetails() *model.WeaponDetails {
	if b.item.Details == nil {
		b.item.Details = &model.WeaponDetails{}
	}
	return b.item.Details
}

// Skin builds a CanonicalSkin fixture.
func Skin(id int, name string, weapon model.WeaponType, rarity model.Rarity) model.CanonicalSkin {
	return model.CanonicalSkin{
		ID:         id,
		Name:       name,
		Icon:       fmt.Sprintf("https://render.guildwars2.com/file/skin-%d.png", id),
		Rarity:     rarity,
		WeaponType: weapon,
		ChatLink:   fmt.Sprintf("[&skin%d]", id),
	}
}

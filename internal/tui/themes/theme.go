// Package themes holds the color schemes of the collection browser.
package themes

import (
	"github.com/Veraticus/skinvault/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Rarity        map[model.Rarity]lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Unlocked      lipgloss.Style
	Locked        lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

// RarityStyle returns the name style for r, falling back to Normal.
func (t Theme) RarityStyle(r model.Rarity) lipgloss.Style {
	if s, ok := t.Rarity[r]; ok {
		return s
	}
	return t.Normal
}

func rarityStyles(colors map[model.Rarity]string) map[model.Rarity]lipgloss.Style {
	out := make(map[model.Rarity]lipgloss.Style, len(colors))
	for r, c := range colors {
		out[r] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return out
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#c9a227"),
	Muted:   lipgloss.Color("#737373"),
	Border:  lipgloss.Color("#404040"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#c9a227")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#404040")).
		Bold(true),
	Unlocked: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	Locked: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#525252")),
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),

	StatusSuccess: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")).
		Bold(true),
	StatusWarning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")).
		Bold(true),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	StatusPending: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")).
		Italic(true),

	Rarity: rarityStyles(map[model.Rarity]string{
		model.RarityJunk:       "#aaaaaa",
		model.RarityBasic:      "#ffffff",
		model.RarityFine:       "#62a4da",
		model.RarityMasterwork: "#1a9306",
		model.RarityRare:       "#fcd00b",
		model.RarityExotic:     "#ffa405",
		model.RarityAscended:   "#fb3e8d",
		model.RarityLegendary:  "#a06bd6",
	}),
}

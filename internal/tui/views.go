package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/skinvault/internal/collection"
	"github.com/Veraticus/skinvault/internal/model"
)

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return m.renderError()
	}
	if m.loading && m.skins == nil {
		return m.renderLoading()
	}

	sections := []string{
		m.renderHeader(),
		m.renderFilters(),
		m.renderList(),
		m.renderStatus(),
		m.help.View(m.keymap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Loading weapon skin catalog..."),
		"",
		m.spinner.View(),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("The first load fetches every item and can take a minute."),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderError() string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.StatusError.Render("Failed to load catalog"),
		"",
		m.theme.Normal.Render(m.err.Error()),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press q to quit."),
	)
	return m.theme.RoundedBox.Render(content)
}

func (m Model) renderHeader() string {
	stats := m.view.Stats
	title := m.theme.Title.Render("⚔️  Weapon Skin Collection")

	line := fmt.Sprintf("%s %s", m.progress.ViewAs(float64(stats.Percentage)/100),
		m.theme.Bold.Render(fmt.Sprintf("%d/%d unlocked (%d%%)", stats.Unlocked, stats.Total, stats.Percentage)))
	if m.fetching {
		line += " " + m.theme.StatusPending.Render("updating...")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, line)
}

func (m Model) renderFilters() string {
	switch m.mode {
	case ModeSearch:
		return m.search.View()
	case ModeKey:
		return m.keyInput.View()
	}

	label := lipgloss.NewStyle().Foreground(m.theme.Muted)
	parts := []string{
		label.Render("Type: ") + displaySelector(m.filter.WeaponType),
		label.Render("Rarity: ") + displaySelector(m.filter.Rarity),
	}
	if m.filter.Search != "" {
		parts = append(parts, label.Render("Search: ")+m.filter.Search)
	}
	parts = append(parts, label.Render(fmt.Sprintf("Showing %d", m.view.Shown)))
	return strings.Join(parts, "  ")
}

func (m Model) renderList() string {
	if len(m.view.Skins) == 0 {
		msg := "No skins match the current filters."
		if len(m.skins) == 0 {
			msg = "The catalog is empty."
		}
		return m.theme.StatusPending.Render(msg)
	}

	height := m.listHeight()
	end := min(m.offset+height, len(m.view.Skins))

	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderRow(m.view.Skins[i], i == m.cursor))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderRow(skin collection.SkinView, selected bool) string {
	mark := m.theme.Locked.Render("○")
	if skin.Unlocked {
		mark = m.theme.Unlocked.Render("●")
	}

	name := m.theme.RarityStyle(skin.Rarity).Render(truncate(skin.Name, 40))
	row := fmt.Sprintf("%s %s %s %s",
		mark,
		lipgloss.NewStyle().Width(42).Render(name),
		lipgloss.NewStyle().Width(12).Render(string(skin.WeaponType)),
		skin.Rarity)

	if selected {
		return m.theme.Selected.Render(row)
	}
	return row
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.theme.StatusError.Render(m.status)
	}
	return m.theme.StatusSuccess.Render(m.status)
}

func displaySelector(v string) string {
	if v == "" {
		return "All"
	}
	if strings.EqualFold(v, model.All) {
		return "All"
	}
	return v
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

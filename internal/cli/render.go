package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/skinvault/internal/collection"
	"github.com/Veraticus/skinvault/internal/model"
)

// Format is an output format for the collection command.
type Format string

// Supported output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat resolves an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use table, json or yaml)", s)
	}
}

// RenderView writes view to w in the given format.
func RenderView(w io.Writer, view collection.View, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable, "":
		return renderTable(w, view)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderTable(w io.Writer, view collection.View) error {
	if len(view.Skins) == 0 {
		if _, err := fmt.Fprintln(w, InfoStyle.Render("No skins match the current filters.")); err != nil {
			return err
		}
		return renderSummary(w, view)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render(" "),
		HeaderStyle.Render("ID"),
		HeaderStyle.Render("Name"),
		HeaderStyle.Render("Type"),
		HeaderStyle.Render("Rarity"))

	for _, skin := range view.Skins {
		mark := SubtleStyle.Render(LockedIcon)
		if skin.Unlocked {
			mark = SuccessStyle.Render(UnlockedIcon)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			mark,
			skin.ID,
			RarityStyle(skin.Rarity).Render(skin.Name),
			skin.WeaponType,
			skin.Rarity)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return renderSummary(w, view)
}

func renderSummary(w io.Writer, view collection.View) error {
	_, err := fmt.Fprintf(w, "%s %s (showing %d)\n",
		ChartIcon,
		FormatStats(view.Stats),
		view.Shown)
	return err
}

// FormatStats renders the overall unlock line.
func FormatStats(s collection.Stats) string {
	return fmt.Sprintf("%d/%d unlocked (%d%%)", s.Unlocked, s.Total, s.Percentage)
}

// RenderCategories writes the per weapon type breakdown.
func RenderCategories(w io.Writer, categories []collection.CategoryStat) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%d/%d\t%d%%\n", c.WeaponType, c.Unlocked, c.Total, c.Percentage)
	}
	return tw.Flush()
}

// CatalogStatus is what the status command reports about the cached catalog.
type CatalogStatus struct {
	CapturedAt time.Time
	TTL        time.Duration
	Skins      int
	Cached     bool
	Fresh      bool
}

// RenderCatalogStatus writes a box describing the cached catalog.
func RenderCatalogStatus(w io.Writer, s CatalogStatus, now time.Time) error {
	var b strings.Builder
	if !s.Cached {
		b.WriteString(WarningStyle.Render("No cached catalog."))
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("Run 'skinvault catalog refresh' to build one."))
	} else {
		age := now.Sub(s.CapturedAt).Truncate(time.Second)
		fmt.Fprintf(&b, "Skins:    %d\n", s.Skins)
		fmt.Fprintf(&b, "Captured: %s (%s ago)\n", s.CapturedAt.Local().Format(time.RFC3339), age)
		state := SuccessStyle.Render("fresh")
		if !s.Fresh {
			state = WarningStyle.Render("stale")
		}
		fmt.Fprintf(&b, "Status:   %s (ttl %s)", state, s.TTL)
	}

	_, err := fmt.Fprintln(w, RenderBox("Catalog cache", b.String()))
	return err
}

// DescribeFilter summarizes active filters for display.
func DescribeFilter(f model.FilterState) string {
	if f.IsZero() {
		return "all skins"
	}
	var parts []string
	if !f.MatchesAllTypes() {
		parts = append(parts, "type="+f.WeaponType)
	}
	if !f.MatchesAllRarities() {
		parts = append(parts, "rarity="+f.Rarity)
	}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.Search))
	}
	return strings.Join(parts, " ")
}

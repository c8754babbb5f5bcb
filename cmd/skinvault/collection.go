package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/skinvault/internal/cli"
	"github.com/Veraticus/skinvault/internal/collection"
	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/model"
)

type collectionFlags struct {
	weaponType string
	rarity     string
	search     string
	format     string
	categories bool
}

func collectionCmd() *cobra.Command {
	var flags collectionFlags

	cmd := &cobra.Command{
		Use:   "collection",
		Short: "List weapon skins and which ones you have unlocked",
		Long: `List the weapon skin catalog merged with your account's unlocks.

Filters narrow the listed skins; the unlock totals always cover the whole catalog.

Examples:
  skinvault collection --type Greatsword
  skinvault collection --rarity legendary --format json
  skinvault collection --search "dawn"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			format, err := cli.ParseFormat(flags.format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, viper.GetViper(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			key, err := a.credential(ctx)
			if err != nil {
				return err
			}

			session := collection.NewSession(a.loader(), collection.NewTracker(a.client))
			return showCollection(ctx, cmd.OutOrStdout(), session, key, filter, format, flags.categories)
		},
	}

	cmd.Flags().StringVar(&flags.weaponType, "type", model.All, "weapon type to show (e.g. Sword, ShortBow)")
	cmd.Flags().StringVar(&flags.rarity, "rarity", model.All, "rarity to show (e.g. Exotic)")
	cmd.Flags().StringVar(&flags.search, "search", "", "case-insensitive substring of the skin name")
	cmd.Flags().StringVarP(&flags.format, "format", "o", string(cli.FormatTable), "output format (table, json, yaml)")
	cmd.Flags().BoolVar(&flags.categories, "categories", false, "also print unlock totals per weapon type")

	return cmd
}

// filter validates the selector flags and resolves them to canonical spelling.
func (f collectionFlags) filter() (model.FilterState, error) {
	state := model.FilterState{Search: f.search}

	if t := strings.TrimSpace(f.weaponType); t != "" && !strings.EqualFold(t, model.All) {
		w, err := model.ParseWeaponType(t)
		if err != nil {
			return state, common.NewUserError(fmt.Sprintf("Unknown weapon type %q", t), err)
		}
		state.WeaponType = string(w)
	}

	if r := strings.TrimSpace(f.rarity); r != "" && !strings.EqualFold(r, model.All) {
		rarity, err := model.ParseRarity(r)
		if err != nil {
			return state, common.NewUserError(fmt.Sprintf("Unknown rarity %q", r), err)
		}
		state.Rarity = string(rarity)
	}

	return state, nil
}

// showCollection loads the session and renders the filtered view.
func showCollection(ctx context.Context, w io.Writer, session *collection.Session, key string, filter model.FilterState, format cli.Format, categories bool) error {
	if err := session.Load(ctx, key); err != nil {
		return common.NewUserError("Could not load the skin catalog", err)
	}

	if format == cli.FormatTable {
		if key == "" {
			fmt.Fprintln(w, cli.FormatWarning("No API key set; showing every skin as locked. Run 'skinvault auth set <key>'."))
		}
		if !filter.IsZero() {
			fmt.Fprintln(w, cli.SubtleStyle.Render("Filtered by "+cli.DescribeFilter(filter)))
		}
	}

	view := session.View(filter)
	if err := cli.RenderView(w, view, format); err != nil {
		return fmt.Errorf("failed to render collection: %w", err)
	}

	if categories && format == cli.FormatTable {
		fmt.Fprintln(w)
		return cli.RenderCategories(w, view.Categories)
	}
	return nil
}

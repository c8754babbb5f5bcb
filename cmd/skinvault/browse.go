package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/skinvault/internal/collection"
	"github.com/Veraticus/skinvault/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse your collection interactively",
		Long: `Open a full-screen browser over the weapon skin catalog.

Keys: / search, t weapon type, r rarity, c clear filters, k enter API key,
Ctrl+R refresh the catalog, ? help, q quit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			loader := a.loader()
			return tui.Run(ctx, loader, collection.NewTracker(a.client),
				tui.WithCredential(key),
				tui.WithCredentialStore(a.credentials),
				tui.WithRefresher(loader),
			)
		},
	}
}
